package signal

// Supported language codes for the built-in tables.
const (
	LanguageEnglish = "en"
	LanguageRussian = "ru"
)

// defaultTables are the built-in phrase sets. Phrases must be stored
// lowercase with single spaces; Detect normalizes input the same way.
//
// The crisis lexicon is deliberately conservative: a false positive
// costs one safety reply, a false negative costs much more.
var defaultTables = map[string]PatternTable{
	LanguageEnglish: {
		Defensive: []string{
			"it's fine",
			"its fine",
			"i'm fine",
			"im fine",
			"everything is fine",
			"nothing is wrong",
			"not a big deal",
			"no big deal",
			"it's not my fault",
			"not my fault",
			"just tired",
			"i don't have a problem",
			"they made me",
			"because of them",
			"whatever",
		},
		Acknowledged: []string{
			"i see that i",
			"i notice that i",
			"i notice i",
			"i realize that i",
			"i realize i",
			"i realise that i",
			"i realise i",
			"i understand that i",
			"i admit that i",
			"i admit i",
			"now i see",
		},
		Ready: []string{
			"i will",
			"i'll start",
			"i am going to",
			"i'm going to",
			"starting today",
			"starting tomorrow",
			"from now on",
			"i commit to",
			"i promise to",
			"i'm ready to",
			"i am ready to",
		},
		Crisis: []string{
			"kill myself",
			"end my life",
			"want to die",
			"don't want to live",
			"dont want to live",
			"suicide",
			"suicidal",
			"hurt myself",
			"harm myself",
			"self-harm",
			"self harm",
		},
	},
	LanguageRussian: {
		Defensive: []string{
			"все нормально",
			"всё нормально",
			"все в порядке",
			"всё в порядке",
			"ничего страшного",
			"просто устал",
			"просто устала",
			"это не моя вина",
			"не моя вина",
			"у меня нет проблем",
			"это из-за них",
			"меня заставили",
		},
		Acknowledged: []string{
			"я вижу, что я",
			"я вижу что я",
			"я замечаю",
			"я понимаю, что я",
			"я понимаю что я",
			"я осознаю",
			"я признаю",
			"теперь я вижу",
		},
		Ready: []string{
			"я буду",
			"я начну",
			"с сегодняшнего дня",
			"с завтрашнего дня",
			"я обещаю",
			"я готов",
			"я готова",
			"я решил",
			"я решила",
		},
		Crisis: []string{
			"покончить с собой",
			"убить себя",
			"не хочу жить",
			"хочу умереть",
			"суицид",
			"причинить себе вред",
			"навредить себе",
		},
	},
}
