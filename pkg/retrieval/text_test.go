package retrieval

import (
	"encoding/json"
	"testing"

	"shadowwork-be/pkg/stage"
)

func TestStageTextForStage(t *testing.T) {
	tests := []struct {
		name string
		text StageText
		s    stage.Stage
		want string
	}{
		{
			name: "plain text ignores stage",
			text: NewPlainText("same for everyone"),
			s:    stage.Integration,
			want: "same for everyone",
		},
		{
			name: "exact variant wins",
			text: NewPerStageText(map[stage.Stage]string{
				stage.Shadow: "shadow text",
				stage.Truth:  "truth text",
			}),
			s:    stage.Shadow,
			want: "shadow text",
		},
		{
			name: "missing variant falls back to truth",
			text: NewPerStageText(map[stage.Stage]string{
				stage.Shadow: "shadow text",
				stage.Truth:  "truth text",
			}),
			s:    stage.Integration,
			want: "truth text",
		},
		{
			name: "then to shadow",
			text: NewPerStageText(map[stage.Stage]string{
				stage.Shadow: "shadow text",
			}),
			s:    stage.Integration,
			want: "shadow text",
		},
		{
			name: "last resort serializes the map",
			text: NewPerStageText(map[stage.Stage]string{
				stage.Integration: "integration text",
			}),
			s:    stage.Truth,
			want: `{"integration":"integration text"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.text.ForStage(tt.s); got != tt.want {
				t.Errorf("ForStage(%s) = %q, want %q", tt.s, got, tt.want)
			}
		})
	}
}

func TestStageTextJSON(t *testing.T) {
	var plain StageText
	if err := json.Unmarshal([]byte(`"just a string"`), &plain); err != nil {
		t.Fatalf("plain unmarshal: %v", err)
	}
	if got := plain.ForStage(stage.Shadow); got != "just a string" {
		t.Errorf("plain ForStage = %q", got)
	}

	var variants StageText
	if err := json.Unmarshal([]byte(`{"shadow":"s","truth":"t"}`), &variants); err != nil {
		t.Fatalf("variants unmarshal: %v", err)
	}
	if got := variants.ForStage(stage.Truth); got != "t" {
		t.Errorf("variant ForStage = %q", got)
	}

	var bad StageText
	if err := json.Unmarshal([]byte(`{"shadow":"s","nirvana":"n"}`), &bad); err == nil {
		t.Error("unknown stage key should be rejected")
	}

	// Round trip keeps the shape.
	raw, err := json.Marshal(variants)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back StageText
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("round trip unmarshal: %v", err)
	}
	if got := back.ForStage(stage.Shadow); got != "s" {
		t.Errorf("round trip ForStage = %q", got)
	}
}
