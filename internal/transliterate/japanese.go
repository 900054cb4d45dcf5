package transliterate

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"alias-resolver/internal/alias"
)

const posParticle = "助詞"

// particles whose reading differs from their spelling
var particleReadings = map[string]string{
	"は": "wa",
	"へ": "e",
	"を": "o",
}

// Japanese romanizes Japanese text with a morphological analyzer backed by
// the IPA dictionary. The dictionary is loaded on first use.
type Japanese struct {
	once sync.Once
	tok  *tokenizer.Tokenizer
	err  error
}

// NewJapanese returns a romanizer. Construction is cheap; the dictionary is
// loaded lazily.
func NewJapanese() *Japanese {
	return &Japanese{}
}

func (j *Japanese) load() (*tokenizer.Tokenizer, error) {
	j.once.Do(func() {
		j.tok, j.err = tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
		if j.err != nil {
			j.err = fmt.Errorf("failed to load IPA dictionary: %w", j.err)
		}
	})
	return j.tok, j.err
}

// Transliterate implements alias.Transliterator. Only Latin output is
// supported.
func (j *Japanese) Transliterate(ctx context.Context, text, targetScript string, mode alias.SpacingMode) (string, error) {
	if targetScript != alias.ScriptLatin {
		return "", fmt.Errorf("unsupported target script %q", targetScript)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	t, err := j.load()
	if err != nil {
		return "", err
	}

	var words []string
	for _, token := range t.Tokenize(text) {
		if strings.TrimSpace(token.Surface) == "" {
			continue
		}
		words = append(words, romanizeToken(token))
	}

	separator := ""
	if mode == alias.SpacingSpaced {
		separator = " "
	}
	return strings.Join(words, separator), nil
}

func romanizeToken(token tokenizer.Token) string {
	if pos := token.POS(); len(pos) > 0 && pos[0] == posParticle {
		if reading, ok := particleReadings[token.Surface]; ok {
			return reading
		}
	}

	if reading, ok := token.Reading(); ok && reading != "*" && isKana(reading) {
		return kanaToRomaji(reading)
	}
	if isKana(token.Surface) {
		return kanaToRomaji(token.Surface)
	}
	return token.Surface
}
