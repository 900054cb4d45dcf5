package transliterate

import "testing"

func TestKanaToRomaji(t *testing.T) {
	cases := map[string]string{
		"トウキョウ":  "toukyou",
		"きょうと":   "kyouto",
		"ラーメン":   "ramen",
		"マッチャ":   "matcha",
		"ガッコウ":   "gakkou",
		"シャシン":   "shashin",
		"ヨネヅ":    "yonezu",
		"フォーク":   "foku",
		"ヴァイオリン": "vaiorin",
		"ン":      "n",
		"チェック":   "chekku",
		"ジェット":   "jetto",
		"ウィンドウ":  "windou",
		"パーティー":  "pati",
		"ヲ":      "o",
	}
	for in, want := range cases {
		if got := kanaToRomaji(in); got != want {
			t.Errorf("kanaToRomaji(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestKanaToRomajiKeepsUnknownRunes(t *testing.T) {
	if got := kanaToRomaji("ア1B"); got != "a1B" {
		t.Errorf("Expected unknown runes to pass through, got %q", got)
	}
}

func TestKanaToRomajiSmallKanaAtStart(t *testing.T) {
	if got := kanaToRomaji("ャア"); got != "yaa" {
		t.Errorf("Expected a leading small kana to read on its own, got %q", got)
	}
	if got := kanaToRomaji("アッ"); got != "a" {
		t.Errorf("Expected a trailing small tsu to be dropped, got %q", got)
	}
}

func TestIsKana(t *testing.T) {
	if !isKana("ひらがなカタカナー") {
		t.Error("Expected kana to be recognized")
	}
	for _, s := range []string{"", "東京", "abc", "カナa"} {
		if isKana(s) {
			t.Errorf("Expected %q not to be kana", s)
		}
	}
}

func TestToKatakana(t *testing.T) {
	if got := toKatakana("さくら"); got != "サクラ" {
		t.Errorf("Expected サクラ, got %s", got)
	}
}
