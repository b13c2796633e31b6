package prompt

import (
	"strings"
	"testing"

	"shadowwork-be/pkg/stage"
)

func TestBuild(t *testing.T) {
	b := NewBuilder(nil)

	p := b.Build("en", stage.Shadow, "retrieved context", "user message here")

	for _, want := range []string{
		"<stage_guidance>",
		"<supporting_context>\nretrieved context",
		"<user_message>\nuser message here",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q:\n%s", want, p)
		}
	}
}

func TestBuildWithoutContext(t *testing.T) {
	b := NewBuilder(nil)

	p := b.Build("en", stage.Truth, "", "user message")
	if strings.Contains(p, "<supporting_context>") {
		t.Error("empty context should omit the supporting_context block")
	}
	if !strings.Contains(p, "<user_message>") {
		t.Error("user message block missing")
	}
}

func TestBuildGuidanceVariesByStage(t *testing.T) {
	b := NewBuilder(nil)

	shadow := b.Build("en", stage.Shadow, "", "msg")
	integration := b.Build("en", stage.Integration, "", "msg")
	if shadow == integration {
		t.Error("guidance should differ between stages")
	}
}

func TestBuildLanguageFallback(t *testing.T) {
	b := NewBuilder(nil)

	// Unknown language uses English guidance.
	unknown := b.Build("de", stage.Shadow, "", "msg")
	english := b.Build("en", stage.Shadow, "", "msg")
	if unknown != english {
		t.Error("unknown language should fall back to English guidance")
	}
}

func TestBuildAuthoredOverride(t *testing.T) {
	b := NewBuilder(map[string]map[stage.Stage]string{
		"en": {stage.Shadow: "custom shadow guidance"},
	})

	p := b.Build("en", stage.Shadow, "", "msg")
	if !strings.Contains(p, "custom shadow guidance") {
		t.Error("authored template not applied")
	}

	// Other stages keep the defaults.
	p = b.Build("en", stage.Truth, "", "msg")
	if strings.Contains(p, "custom shadow guidance") {
		t.Error("override leaked into another stage")
	}
}
