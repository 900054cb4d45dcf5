package alias

import (
	"strings"
	"time"
)

const (
	// StateDelimiter separates the three fields of an encoded state. It is
	// not escaped; a name containing it is only safe in the last field.
	StateDelimiter = "|"

	// StateTimeLayout is the fixed, locale independent timestamp format.
	// Timestamps are written and read in UTC.
	StateTimeLayout = "1/2/2006 3:04:05 PM"
)

// State is the record persisted on an entity between passes.
type State struct {
	Status    ConfidenceLevel
	UpdatedAt time.Time // zero when never recorded
	Name      string
	HasName   bool
}

// DecodeState parses a stored state. It never fails: anything it cannot
// read falls back to Unknown, no timestamp and no name.
func DecodeState(raw string) State {
	var state State
	parts := strings.SplitN(raw, StateDelimiter, 3)

	if level, ok := ParseConfidenceLevel(parts[0]); ok {
		state.Status = level
	}

	if len(parts) > 1 {
		if t, err := time.ParseInLocation(StateTimeLayout, parts[1], time.UTC); err == nil {
			state.UpdatedAt = t
		}
	}

	if len(parts) > 2 && strings.TrimSpace(parts[2]) != "" {
		state.Name = parts[2]
		state.HasName = true
	}

	return state
}

// Encode renders the state as Status|timestamp|name.
func (s State) Encode() string {
	var updated, name string
	if !s.UpdatedAt.IsZero() {
		updated = s.UpdatedAt.UTC().Format(StateTimeLayout)
	}
	if s.HasName {
		name = s.Name
	}
	return s.Status.String() + StateDelimiter + updated + StateDelimiter + name
}

// IsStale reports whether the entity should be evaluated again.
func (s State) IsStale(liveName string) bool {
	if s.Status == Unknown {
		return true
	}
	return !s.HasName || s.Name != liveName
}

// Apply records the outcome of an evaluation. It returns true, and stamps
// the state with now, only when the name or the level changed.
func (s *State) Apply(liveName string, level ConfidenceLevel, now time.Time) bool {
	if s.HasName && s.Name == liveName && s.Status == level {
		return false
	}

	s.Name = liveName
	s.HasName = true
	s.Status = level
	s.UpdatedAt = now.Truncate(time.Second)
	return true
}
