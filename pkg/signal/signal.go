package signal

import "strings"

// Result is the per-turn classification of one user message.
// It is ephemeral: produced fresh each turn and consumed immediately
// by the stage machine, never persisted.
type Result struct {
	Defensive    bool `json:"defensive"`
	Acknowledged bool `json:"acknowledged"`
	Ready        bool `json:"ready"`
	Crisis       bool `json:"crisis"`
}

// PatternTable holds the phrase sets for one language.
type PatternTable struct {
	Defensive    []string
	Acknowledged []string
	Ready        []string
	Crisis       []string
}

// Detector classifies raw user text into signals using per-language
// phrase tables. Detection is a pure function of the input: no external
// calls, no state, same text always yields the same Result.
type Detector struct {
	tables      map[string]PatternTable
	defaultLang string
}

// Config overrides the built-in phrase tables.
type Config struct {
	Tables          map[string]PatternTable
	DefaultLanguage string
}

// NewDetector creates a detector with the built-in tables.
func NewDetector() *Detector {
	return NewDetectorWithConfig(Config{})
}

// NewDetectorWithConfig creates a detector with custom tables merged over
// the defaults. Phrase tables are tuning data, not logic; callers that
// author their own content usually author their own tables too.
func NewDetectorWithConfig(cfg Config) *Detector {
	tables := make(map[string]PatternTable, len(defaultTables))
	for lang, table := range defaultTables {
		tables[lang] = table
	}
	for lang, table := range cfg.Tables {
		tables[lang] = table
	}

	defaultLang := cfg.DefaultLanguage
	if defaultLang == "" {
		defaultLang = LanguageEnglish
	}

	return &Detector{
		tables:      tables,
		defaultLang: defaultLang,
	}
}

// Detect classifies one message. Unknown languages fall back to the
// default language table; text matching nothing yields an all-false
// Result. Detect never fails.
func (d *Detector) Detect(text string, language string) Result {
	table, ok := d.tables[strings.ToLower(language)]
	if !ok {
		table = d.tables[d.defaultLang]
	}

	normalized := normalize(text)

	// Crisis is checked first and takes priority downstream regardless
	// of the other flags.
	return Result{
		Crisis:       matchesAny(normalized, table.Crisis),
		Defensive:    matchesAny(normalized, table.Defensive),
		Acknowledged: matchesAny(normalized, table.Acknowledged),
		Ready:        matchesAny(normalized, table.Ready),
	}
}

// normalize lowercases and collapses the whitespace the phrase tables
// assume. Phrases are stored pre-normalized.
func normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

func matchesAny(normalized string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(normalized, phrase) {
			return true
		}
	}
	return false
}
