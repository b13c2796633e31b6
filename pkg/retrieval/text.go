package retrieval

import (
	"encoding/json"
	"fmt"

	"shadowwork-be/pkg/stage"
)

// StageText is a chunk body: either one plain string or a map of
// per-stage variants. The shape is decided once when content is loaded;
// retrieval only ever goes through ForStage.
//
// Persisted layout: `"text": "..."` or
// `"text": {"shadow": "...", "truth": "...", "integration": "..."}`.
type StageText struct {
	plain    string
	perStage map[stage.Stage]string
	isPlain  bool
}

// NewPlainText wraps a single-variant body.
func NewPlainText(text string) StageText {
	return StageText{plain: text, isPlain: true}
}

// NewPerStageText wraps per-stage variants. Authors may omit stages;
// ForStage degrades instead of erroring.
func NewPerStageText(variants map[stage.Stage]string) StageText {
	m := make(map[stage.Stage]string, len(variants))
	for k, v := range variants {
		m[k] = v
	}
	return StageText{perStage: m}
}

// IsZero reports whether no body was authored at all.
func (t StageText) IsZero() bool {
	return !t.isPlain && len(t.perStage) == 0
}

// ForStage resolves the body for the requested stage. Missing variants
// fall back truth -> shadow -> the whole map serialized as a string.
// This order is a content-authoring contract: authors may ship only a
// truth variant and every stage still gets usable text.
func (t StageText) ForStage(s stage.Stage) string {
	if t.isPlain {
		return t.plain
	}
	if text, ok := t.perStage[s]; ok {
		return text
	}
	if text, ok := t.perStage[stage.Truth]; ok {
		return text
	}
	if text, ok := t.perStage[stage.Shadow]; ok {
		return text
	}
	// Last resort: serialize whatever the author wrote. json.Marshal
	// sorts map keys, so this stays deterministic.
	plain := make(map[string]string, len(t.perStage))
	for k, v := range t.perStage {
		plain[string(k)] = v
	}
	raw, err := json.Marshal(plain)
	if err != nil {
		return ""
	}
	return string(raw)
}

// MarshalJSON writes the persisted layout back out.
func (t StageText) MarshalJSON() ([]byte, error) {
	if t.isPlain {
		return json.Marshal(t.plain)
	}
	plain := make(map[string]string, len(t.perStage))
	for k, v := range t.perStage {
		plain[string(k)] = v
	}
	return json.Marshal(plain)
}

// UnmarshalJSON accepts either shape and rejects unknown stage keys.
func (t *StageText) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		*t = NewPlainText(plain)
		return nil
	}

	var variants map[string]string
	if err := json.Unmarshal(data, &variants); err != nil {
		return fmt.Errorf("text must be a string or a stage-to-string map: %w", err)
	}

	perStage := make(map[stage.Stage]string, len(variants))
	for k, v := range variants {
		s, err := stage.Parse(k)
		if err != nil {
			return fmt.Errorf("text variant: %w", err)
		}
		perStage[s] = v
	}
	*t = StageText{perStage: perStage}
	return nil
}
