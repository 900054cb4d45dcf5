package transliterate

import (
	"strings"
	"unicode"

	"github.com/gosimple/unidecode"
)

const (
	sokuon    = 'ッ'
	longVowel = 'ー'
)

// Per-mora readings that differ from Hepburn
var hepburn = map[string]string{
	"zi": "ji",
	"di": "ji",
	"du": "zu",
	"hu": "fu",
	"wi": "i",
	"we": "e",
	"wo": "o",
}

// small kana that merge into the previous mora
var (
	smallY     = map[rune]string{'ャ': "a", 'ュ': "u", 'ョ': "o"}
	smallVowel = map[rune]string{'ァ': "a", 'ィ': "i", 'ゥ': "u", 'ェ': "e", 'ォ': "o"}
)

// toKatakana folds hiragana onto katakana so the merge rules see one script.
func toKatakana(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'ぁ' && r <= 'ゖ' {
			return r + ('ァ' - 'ぁ')
		}
		return r
	}, s)
}

// isKana reports whether every rune of s is hiragana, katakana or a long
// vowel mark.
func isKana(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.In(r, unicode.Hiragana, unicode.Katakana) && r != longVowel {
			return false
		}
	}
	return true
}

// kanaToRomaji converts a kana reading to Hepburn without macrons. Long
// vowel marks are dropped and runes that are not kana are kept.
func kanaToRomaji(reading string) string {
	var morae []string
	double := false

	for _, r := range toKatakana(reading) {
		last := len(morae) - 1
		if vowel, ok := smallY[r]; ok && last >= 0 && strings.HasSuffix(morae[last], "i") {
			morae[last] = contractY(morae[last], vowel)
			continue
		}
		if vowel, ok := smallVowel[r]; ok && last >= 0 {
			morae[last] = contractVowel(morae[last], vowel)
			continue
		}

		switch {
		case r == sokuon:
			double = true
			continue
		case r == longVowel:
			continue
		case !unicode.Is(unicode.Katakana, r):
			morae = append(morae, string(r))
			double = false
			continue
		}

		mora := unidecode.Unidecode(string(r))
		if h, ok := hepburn[mora]; ok {
			mora = h
		}
		if double && mora != "" {
			mora = geminate(mora)
		}
		double = false
		morae = append(morae, mora)
	}

	return strings.Join(morae, "")
}

// contractY merges a small ya/yu/yo: ki+ya is kya, shi+ya is sha.
func contractY(mora, vowel string) string {
	stem := strings.TrimSuffix(mora, "i")
	if strings.HasSuffix(stem, "sh") || strings.HasSuffix(stem, "ch") || strings.HasSuffix(stem, "j") {
		return stem + vowel
	}
	return stem + "y" + vowel
}

// contractVowel replaces the vowel of the previous mora: fu+a is fa.
func contractVowel(mora, vowel string) string {
	switch mora {
	case "u":
		return "w" + vowel
	case "i":
		return "y" + vowel
	}
	return strings.TrimRight(mora, "aiueo") + vowel
}

// geminate doubles the leading consonant after a small tsu. Vowels and n
// take no doubling.
func geminate(mora string) string {
	if strings.HasPrefix(mora, "ch") {
		return "t" + mora
	}
	if c := mora[0]; !strings.ContainsRune("aiueon", rune(c)) {
		return string(c) + mora
	}
	return mora
}
