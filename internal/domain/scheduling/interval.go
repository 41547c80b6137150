package scheduling

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the wire and storage format for clinic-local calendar dates.
// Dates carry no timezone; all times are clinic wall-clock.
const DateLayout = "2006-01-02"

// TimeOfDay is a clock time with minute granularity, stored as minutes since
// midnight. It marshals to/from "15:04" strings.
type TimeOfDay int

// ParseTimeOfDay parses an "HH:MM" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, want HH:MM", s)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ValidDate reports whether s is a well-formed calendar date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// Interval is a half-open time range [Start, End) on a single calendar date.
// Invariant: Start < End. Intervals are ephemeral, never persisted directly.
type Interval struct {
	Date  string    `json:"date"`
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

// Overlaps reports whether two intervals intersect. Intervals on different
// dates never overlap, and touching endpoints do not overlap.
func (a Interval) Overlaps(b Interval) bool {
	if a.Date != b.Date {
		return false
	}
	return a.Start < b.End && b.Start < a.End
}

// Contains reports whether the instant t on date falls inside the interval.
func (a Interval) Contains(date string, t TimeOfDay) bool {
	return a.Date == date && a.Start <= t && t < a.End
}

// Duration returns the interval length in minutes.
func (a Interval) Duration() int {
	return int(a.End - a.Start)
}

// Valid reports whether the interval has a well-formed date and Start < End.
func (a Interval) Valid() bool {
	return ValidDate(a.Date) && a.Start < a.End
}
