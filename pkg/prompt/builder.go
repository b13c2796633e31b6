package prompt

import (
	"strings"

	"shadowwork-be/pkg/stage"
)

// Builder assembles the generation prompt for one turn: stage guidance,
// retrieved supporting content, and the raw user message.
type Builder struct {
	// templates maps language -> stage -> guidance text. Missing entries
	// fall back to the built-in defaults for that language, then to
	// English.
	templates map[string]map[stage.Stage]string
}

// NewBuilder creates a builder. Authored templates (if any) are merged
// over the built-in defaults.
func NewBuilder(authored map[string]map[stage.Stage]string) *Builder {
	templates := make(map[string]map[stage.Stage]string, len(defaultTemplates))
	for lang, byStage := range defaultTemplates {
		merged := make(map[stage.Stage]string, len(byStage))
		for s, t := range byStage {
			merged[s] = t
		}
		templates[lang] = merged
	}
	for lang, byStage := range authored {
		if templates[lang] == nil {
			templates[lang] = make(map[stage.Stage]string, len(byStage))
		}
		for s, t := range byStage {
			templates[lang][s] = t
		}
	}
	return &Builder{templates: templates}
}

// Build assembles the final prompt. contextText may be empty when
// retrieval found nothing; the prompt still instructs the model how to
// respond for the stage.
func (b *Builder) Build(language string, s stage.Stage, contextText, userText string) string {
	var prompt strings.Builder

	prompt.WriteString("<stage_guidance>\n")
	prompt.WriteString(b.guidance(language, s))
	prompt.WriteString("\n</stage_guidance>\n\n")

	if contextText != "" {
		prompt.WriteString("<supporting_context>\n")
		prompt.WriteString(contextText)
		prompt.WriteString("\n</supporting_context>\n\n")
	}

	prompt.WriteString("<user_message>\n")
	prompt.WriteString(userText)
	prompt.WriteString("\n</user_message>\n\n")

	prompt.WriteString("Respond in the user's language, following the stage guidance. Base any factual claims on the supporting context when it is present.")

	return prompt.String()
}

func (b *Builder) guidance(language string, s stage.Stage) string {
	if byStage, ok := b.templates[language]; ok {
		if t, ok := byStage[s]; ok {
			return t
		}
	}
	return defaultTemplates["en"][s]
}

var defaultTemplates = map[string]map[stage.Stage]string{
	"en": {
		stage.Shadow: "The user is in the shadow phase: they are circling a difficult truth without naming it. " +
			"Reflect their words back gently, name the avoidance pattern you observe without judgment, and ask one question that invites them to look closer. Do not push for commitments.",
		stage.Truth: "The user has acknowledged something real about themselves. " +
			"Hold that acknowledgement steady: affirm the courage it took, deepen the insight with the supporting context, and explore what this truth means in their daily life. Do not rush toward action plans.",
		stage.Integration: "The user is ready to act on what they have learned. " +
			"Help them turn insight into one small, concrete practice. Be specific, encouraging, and practical.",
	},
	"ru": {
		stage.Shadow: "Пользователь в фазе тени: он кружит вокруг трудной правды, не называя её. " +
			"Мягко отразите его слова, без осуждения назовите замеченный паттерн избегания и задайте один вопрос, приглашающий посмотреть глубже. Не требуйте обязательств.",
		stage.Truth: "Пользователь признал нечто настоящее о себе. " +
			"Поддержите это признание: отметьте смелость, углубите инсайт с опорой на контекст и исследуйте, что эта правда значит в его повседневной жизни. Не торопите с планом действий.",
		stage.Integration: "Пользователь готов действовать на основе осознанного. " +
			"Помогите превратить инсайт в одну маленькую конкретную практику. Будьте конкретны, поддерживающи и практичны.",
	},
}
