package alias

// ConfidenceLevel classifies how well a chosen name matches the goal script
// and language. Higher is better.
type ConfidenceLevel int

const (
	Unknown ConfidenceLevel = iota
	Bad
	Medium
	Good
)

var levelNames = [...]string{
	Unknown: "Unknown",
	Bad:     "Bad",
	Medium:  "Medium",
	Good:    "Good",
}

func (l ConfidenceLevel) String() string {
	if l < Unknown || int(l) >= len(levelNames) {
		return levelNames[Unknown]
	}
	return levelNames[l]
}

// ParseConfidenceLevel matches a level by its exact name.
func ParseConfidenceLevel(s string) (ConfidenceLevel, bool) {
	for i, name := range levelNames {
		if name == s {
			return ConfidenceLevel(i), true
		}
	}
	return Unknown, false
}
