package alias

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// DefaultRatioThreshold is the readability score a name must exceed
	DefaultRatioThreshold = 0.8

	ScriptLatin      = "Latn"
	ScriptJapanese   = "Jpan"
	LanguageEnglish  = "eng"
	LanguageJapanese = "jpn"
)

// ErrNoTransliterator is returned by Resolve when romanization is required
// but the resolver was built without a Transliterator.
var ErrNoTransliterator = errors.New("no transliterator configured")

// SpacingMode controls how romanized words are joined
type SpacingMode int

const (
	SpacingNormal SpacingMode = iota
	SpacingSpaced
)

// Transliterator romanizes text into the target script.
type Transliterator interface {
	Transliterate(ctx context.Context, text, targetScript string, mode SpacingMode) (string, error)
}

// Resolver keeps the best name seen so far for a single entity. It is not
// safe for concurrent use and is meant to be discarded after one evaluation.
type Resolver struct {
	best           Candidate
	threshold      float64
	transliterator Transliterator
}

// NewResolver starts a resolver from the entity's current name and tags.
func NewResolver(name, script, lang string, transliterator Transliterator) *Resolver {
	return &Resolver{
		best:           NewCandidate(name, script, lang),
		threshold:      DefaultRatioThreshold,
		transliterator: transliterator,
	}
}

// SetRatioThreshold overrides the threshold. A nil value keeps the current one.
func (r *Resolver) SetRatioThreshold(threshold *float64) {
	if threshold != nil {
		r.threshold = *threshold
	}
}

// RatioThreshold returns the threshold in effect
func (r *Resolver) RatioThreshold() float64 {
	return r.threshold
}

// Best returns the current best candidate
func (r *Resolver) Best() Candidate {
	return r.best
}

// Offer challenges the current best with a new name and reports whether it
// was accepted. Checks run in order and the first failing one rejects.
func (r *Resolver) Offer(name, script, lang string) bool {
	challenger := NewCandidate(name, script, lang)

	if challenger.score < r.best.score {
		return false
	}
	if r.best.script == ScriptLatin && challenger.script != ScriptLatin {
		return false
	}
	if r.best.language == LanguageEnglish && challenger.language != LanguageEnglish {
		return false
	}

	r.best = challenger
	return true
}

// IsGoodRatio reports whether the best candidate's score is strictly above
// the threshold.
func (r *Resolver) IsGoodRatio() bool {
	return r.best.score > r.threshold
}

// NeedsUpdate reports whether more candidates are worth gathering. A good
// ratio or an explicit goal script or language tag ends the search.
func (r *Resolver) NeedsUpdate() bool {
	return !r.IsGoodRatio() &&
		r.best.script != ScriptLatin &&
		r.best.language != LanguageEnglish
}

// Classify grades the current best candidate.
func (r *Resolver) Classify() ConfidenceLevel {
	good := r.IsGoodRatio()
	if good && (r.best.script == ScriptLatin || r.best.language == LanguageEnglish) {
		return Good
	}
	if good || r.isJapanese() {
		return Medium
	}
	return Bad
}

// Resolve returns the display value for the best candidate. Japanese names
// that fail the ratio check are romanized and title cased.
func (r *Resolver) Resolve(ctx context.Context) (string, error) {
	if r.IsGoodRatio() || !r.isJapanese() {
		return r.best.value, nil
	}
	if r.transliterator == nil {
		return "", ErrNoTransliterator
	}

	romanized, err := r.transliterator.Transliterate(ctx, r.best.value, ScriptLatin, SpacingSpaced)
	if err != nil {
		return "", fmt.Errorf("failed to romanize %q: %w", r.best.value, err)
	}

	titled := cases.Title(language.Und, cases.NoLower).String(romanized)
	return strings.TrimRightFunc(titled, unicode.IsSpace), nil
}

func (r *Resolver) isJapanese() bool {
	return r.best.script == ScriptJapanese || r.best.language == LanguageJapanese
}
