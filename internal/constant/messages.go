package constant

// Canned replies for the paths that must not depend on any collaborator:
// the crisis safety path, the empty-retrieval path, and the generator
// failure path. Keyed by language with an English fallback.

var safetyMessages = map[string]string{
	"en": "What you just shared matters, and I want to make sure you get real support. Please reach out to someone you trust or a crisis line right now — in many countries you can dial 988 or your local emergency number. I'm here to keep talking, but a human who can be with you is what you deserve most in this moment.",
	"ru": "То, чем вы поделились, очень важно, и я хочу, чтобы вы получили настоящую поддержку. Пожалуйста, обратитесь прямо сейчас к близкому человеку или на линию доверия — в России это 8-800-2000-122. Я рядом и готов продолжать разговор, но сейчас вам больше всего нужен живой человек рядом.",
}

var noMatchMessages = map[string]string{
	"en": "I don't have specific material for this yet, but let's keep going with what you've shared.",
	"ru": "У меня пока нет подходящего материала на эту тему, но давайте продолжим с тем, чем вы поделились.",
}

var technicalDifficultyMessages = map[string]string{
	"en": "I'm having a technical difficulty putting my response together. Your progress is saved — please try again in a moment.",
	"ru": "У меня возникла техническая сложность с ответом. Ваш прогресс сохранён — пожалуйста, попробуйте ещё раз через минуту.",
}

// SafetyMessage is the fixed crisis-path reply.
func SafetyMessage(language string) string {
	return pick(safetyMessages, language)
}

// NoMatchMessage is the fixed reply when retrieval has zero candidates.
func NoMatchMessage(language string) string {
	return pick(noMatchMessages, language)
}

// TechnicalDifficultyMessage is the fixed reply when generation fails.
func TechnicalDifficultyMessage(language string) string {
	return pick(technicalDifficultyMessages, language)
}

func pick(messages map[string]string, language string) string {
	if msg, ok := messages[language]; ok {
		return msg
	}
	return messages[DefaultLanguage]
}
