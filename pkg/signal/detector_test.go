package signal

import (
	"testing"
)

func TestDetect(t *testing.T) {
	d := NewDetector()

	tests := []struct {
		name     string
		text     string
		language string
		want     Result
	}{
		{
			name:     "neutral text matches nothing",
			text:     "I went for a walk this morning",
			language: "en",
			want:     Result{},
		},
		{
			name:     "defensive phrase",
			text:     "I'm fine, everything is fine",
			language: "en",
			want:     Result{Defensive: true},
		},
		{
			name:     "acknowledgement phrase",
			text:     "I admit I avoid this conversation",
			language: "en",
			want:     Result{Acknowledged: true},
		},
		{
			name:     "readiness phrase",
			text:     "I'm ready to face this",
			language: "en",
			want:     Result{Ready: true},
		},
		{
			name:     "crisis phrase sets crisis alongside others",
			text:     "I don't want to live anymore",
			language: "en",
			want:     Result{Crisis: true},
		},
		{
			name:     "case and whitespace insensitive",
			text:     "  EVERYTHING   IS FINE  ",
			language: "en",
			want:     Result{Defensive: true},
		},
		{
			name:     "russian defensive phrase",
			text:     "да все нормально, просто устал",
			language: "ru",
			want:     Result{Defensive: true},
		},
		{
			name:     "unknown language falls back to default table",
			text:     "everything is fine",
			language: "xx",
			want:     Result{Defensive: true},
		},
		{
			name:     "empty text",
			text:     "",
			language: "en",
			want:     Result{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.Detect(tt.text, tt.language)
			if got != tt.want {
				t.Errorf("Detect(%q, %q) = %+v, want %+v", tt.text, tt.language, got, tt.want)
			}
		})
	}
}

func TestDetectDeterministic(t *testing.T) {
	d := NewDetector()
	text := "honestly I'm fine but what can I do about it"
	first := d.Detect(text, "en")
	for i := 0; i < 10; i++ {
		if got := d.Detect(text, "en"); got != first {
			t.Fatalf("Detect is not deterministic: run %d gave %+v, first gave %+v", i, got, first)
		}
	}
}

func TestDetectWithCustomTables(t *testing.T) {
	d := NewDetectorWithConfig(Config{
		Tables: map[string]PatternTable{
			"en": {Defensive: []string{"custom phrase"}},
		},
	})

	if got := d.Detect("this is my custom phrase", "en"); !got.Defensive {
		t.Errorf("custom table not applied: %+v", got)
	}
	// The override replaces the whole table for that language.
	if got := d.Detect("everything is fine", "en"); got.Defensive {
		t.Errorf("default table leaked through override: %+v", got)
	}
}
