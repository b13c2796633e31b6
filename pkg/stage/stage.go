package stage

import "fmt"

// Stage is the phase of a guided self-reflection conversation.
// The vocabulary is a closed set; anything else is rejected at the
// boundary by Parse.
type Stage string

const (
	Shadow      Stage = "shadow"
	Truth       Stage = "truth"
	Integration Stage = "integration"
)

// Parse validates a raw stage string.
func Parse(s string) (Stage, error) {
	switch Stage(s) {
	case Shadow, Truth, Integration:
		return Stage(s), nil
	default:
		return "", fmt.Errorf("unknown stage: %q", s)
	}
}

// Valid reports whether s belongs to the closed stage vocabulary.
func (s Stage) Valid() bool {
	switch s {
	case Shadow, Truth, Integration:
		return true
	}
	return false
}

func (s Stage) String() string {
	return string(s)
}
