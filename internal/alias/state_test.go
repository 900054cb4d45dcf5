package alias

import (
	"testing"
	"time"
)

func TestDecodeStateSample(t *testing.T) {
	state := DecodeState("Good|3/10/2024 5:00:00 PM|Tokyo")

	if state.Status != Good {
		t.Errorf("Expected Good, got %s", state.Status)
	}
	want := time.Date(2024, time.March, 10, 17, 0, 0, 0, time.UTC)
	if !state.UpdatedAt.Equal(want) {
		t.Errorf("Expected %v, got %v", want, state.UpdatedAt)
	}
	if !state.HasName || state.Name != "Tokyo" {
		t.Errorf("Expected name Tokyo, got %q (%v)", state.Name, state.HasName)
	}
}

func TestDecodeStateEmpty(t *testing.T) {
	state := DecodeState("")
	if state.Status != Unknown || !state.UpdatedAt.IsZero() || state.HasName {
		t.Errorf("Expected Unknown/none/none, got %+v", state)
	}
}

func TestDecodeStateMalformed(t *testing.T) {
	inputs := []string{
		"|",
		"||",
		"Great|yesterday|",
		"Medium|2024-03-10T17:00:00Z|   ",
		"\x00\xff|\xfe",
	}
	for _, raw := range inputs {
		state := DecodeState(raw)
		if state.HasName {
			t.Errorf("DecodeState(%q): expected no name, got %q", raw, state.Name)
		}
		if !state.UpdatedAt.IsZero() {
			t.Errorf("DecodeState(%q): expected no timestamp, got %v", raw, state.UpdatedAt)
		}
	}

	if DecodeState("good|3/10/2024 5:00:00 PM|").Status != Unknown {
		t.Error("Expected status names to be case sensitive")
	}
	if DecodeState("Medium|bad time|Osaka").Status != Medium {
		t.Error("Expected status to survive a bad timestamp")
	}
}

func TestDecodeStateKeepsExtraDelimiters(t *testing.T) {
	state := DecodeState("Bad||AC|DC | Live")
	if state.Name != "AC|DC | Live" {
		t.Errorf("Expected extra delimiters in the name, got %q", state.Name)
	}
	if !state.UpdatedAt.IsZero() {
		t.Errorf("Expected no timestamp, got %v", state.UpdatedAt)
	}
}

func TestDecodeStateNameVerbatim(t *testing.T) {
	state := DecodeState("Good|| Tokyo ")
	if state.Name != " Tokyo " {
		t.Errorf("Expected the name verbatim, got %q", state.Name)
	}
}

func TestEncodeState(t *testing.T) {
	state := State{
		Status:    Good,
		UpdatedAt: time.Date(2024, time.March, 10, 17, 0, 0, 0, time.UTC),
		Name:      "Tokyo",
		HasName:   true,
	}
	if got := state.Encode(); got != "Good|3/10/2024 5:00:00 PM|Tokyo" {
		t.Errorf("Unexpected encoding: %q", got)
	}

	if got := (State{}).Encode(); got != "Unknown||" {
		t.Errorf("Expected Unknown||, got %q", got)
	}
}

func TestStateRoundTrip(t *testing.T) {
	states := []State{
		{},
		{Status: Bad},
		{Status: Medium, Name: "東京", HasName: true},
		{Status: Good, UpdatedAt: time.Date(1999, time.December, 31, 23, 59, 59, 0, time.UTC)},
		{Status: Good, UpdatedAt: time.Date(2024, time.January, 1, 0, 0, 1, 0, time.UTC), Name: "Kyoto", HasName: true},
	}

	for _, want := range states {
		got := DecodeState(want.Encode())
		if got.Status != want.Status || got.Name != want.Name || got.HasName != want.HasName {
			t.Errorf("Round trip mismatch: want %+v, got %+v", want, got)
		}
		if !got.UpdatedAt.Equal(want.UpdatedAt) {
			t.Errorf("Timestamp mismatch: want %v, got %v", want.UpdatedAt, got.UpdatedAt)
		}
	}
}

func TestStateRoundTripAcrossDST(t *testing.T) {
	zone, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("Time zone data unavailable: %v", err)
	}
	saved := time.Local
	time.Local = zone
	defer func() { time.Local = saved }()

	// 06:30 UTC is 1:30 AM EST, inside the repeated fall-back hour
	instant := time.Date(2024, time.November, 3, 6, 30, 0, 0, time.UTC).In(zone)
	state := State{Status: Good, UpdatedAt: instant, Name: "Tokyo", HasName: true}

	encoded := state.Encode()
	if encoded != "Good|11/3/2024 6:30:00 AM|Tokyo" {
		t.Errorf("Expected the timestamp in UTC, got %q", encoded)
	}
	if got := DecodeState(encoded).UpdatedAt; !got.Equal(instant) {
		t.Errorf("Expected %v after decoding, got %v", instant, got)
	}

	earlier := time.Date(2024, time.November, 3, 5, 30, 0, 0, time.UTC).In(zone)
	if got := DecodeState(State{Status: Good, UpdatedAt: earlier}.Encode()).UpdatedAt; !got.Equal(earlier) {
		t.Errorf("Expected %v after decoding, got %v", earlier, got)
	}
}

func TestStateNormalizationIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"Good|3/10/2024 5:00:00 PM|Tokyo",
		"Medium|garbage|  ",
		"Bad|03/05/2024 09:07:00 AM|a|b",
		"nonsense",
	}
	for _, raw := range inputs {
		once := DecodeState(raw).Encode()
		twice := DecodeState(once).Encode()
		if once != twice {
			t.Errorf("Normalization of %q not idempotent: %q vs %q", raw, once, twice)
		}
	}
}

func TestStateIsStale(t *testing.T) {
	if !(State{}).IsStale("anything") {
		t.Error("Expected a fresh state to be stale")
	}
	if !(State{Status: Unknown, Name: "Tokyo", HasName: true}).IsStale("Tokyo") {
		t.Error("Expected Unknown status to be stale regardless of name")
	}

	state := State{Status: Good, Name: "Tokyo", HasName: true}
	if state.IsStale("Tokyo") {
		t.Error("Expected matching name to be fresh")
	}
	if !state.IsStale("東京") {
		t.Error("Expected a renamed entity to be stale")
	}
	if !(State{Status: Good}).IsStale("") {
		t.Error("Expected an absent stored name to differ from a live name")
	}
}

func TestStateApply(t *testing.T) {
	now := time.Date(2025, time.May, 1, 12, 30, 45, 500, time.UTC)
	state := State{Status: Medium, Name: "東京", HasName: true}

	if !state.Apply("Tokyo", Good, now) {
		t.Fatal("Expected a change to be reported")
	}
	if state.Name != "Tokyo" || state.Status != Good {
		t.Errorf("Unexpected state after apply: %+v", state)
	}
	if !state.UpdatedAt.Equal(now.Truncate(time.Second)) {
		t.Errorf("Expected timestamp %v, got %v", now.Truncate(time.Second), state.UpdatedAt)
	}

	later := now.Add(time.Hour)
	if state.Apply("Tokyo", Good, later) {
		t.Error("Expected no change for identical name and status")
	}
	if !state.UpdatedAt.Equal(now.Truncate(time.Second)) {
		t.Error("Expected timestamp to be untouched when nothing changed")
	}

	if !state.Apply("Tokyo", Bad, later) {
		t.Error("Expected a status downgrade to be reported")
	}
}
