package alias

// Candidate is a name under consideration together with the script and
// language it was tagged with. Empty tags mean "unknown".
type Candidate struct {
	value    string
	script   string
	language string
	score    float64
}

// NewCandidate builds a candidate and computes its readability score
func NewCandidate(value, script, language string) Candidate {
	return Candidate{
		value:    value,
		script:   script,
		language: language,
		score:    Score(value),
	}
}

// Value returns the candidate text
func (c Candidate) Value() string {
	return c.value
}

// Script returns the script tag, or "" when none was supplied
func (c Candidate) Script() string {
	return c.script
}

// Language returns the language tag, or "" when none was supplied
func (c Candidate) Language() string {
	return c.language
}

// ValidCharPercent is the fraction of printable ASCII runes in the value.
func (c Candidate) ValidCharPercent() float64 {
	return c.score
}

// Score returns the fraction of runes in s within 0x20..0x7E. An empty
// string scores 0.
func Score(s string) float64 {
	if s == "" {
		return 0
	}

	var total, valid int
	for _, r := range s {
		total++
		if r >= 0x20 && r <= 0x7E {
			valid++
		}
	}
	return float64(valid) / float64(total)
}
