package transliterate

import (
	"context"
	"testing"

	"alias-resolver/internal/alias"
)

func TestTransliterateRejectsOtherScripts(t *testing.T) {
	j := NewJapanese()
	if _, err := j.Transliterate(context.Background(), "東京", "Cyrl", alias.SpacingSpaced); err == nil {
		t.Error("Expected an error for a non-Latin target")
	}
}

func TestTransliterateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewJapanese().Transliterate(ctx, "東京", alias.ScriptLatin, alias.SpacingSpaced); err == nil {
		t.Error("Expected a cancelled context to abort")
	}
}

func TestTransliterateDictionary(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping dictionary load in short mode")
	}

	j := NewJapanese()
	got, err := j.Transliterate(context.Background(), "東京", alias.ScriptLatin, alias.SpacingSpaced)
	if err != nil {
		t.Fatalf("Transliterate failed: %v", err)
	}
	if got != "toukyou" {
		t.Errorf("Expected toukyou, got %q", got)
	}

	spaced, err := j.Transliterate(context.Background(), "東京へ行く", alias.ScriptLatin, alias.SpacingSpaced)
	if err != nil {
		t.Fatalf("Transliterate failed: %v", err)
	}
	if spaced != "toukyou e iku" {
		t.Errorf("Expected \"toukyou e iku\", got %q", spaced)
	}
}
