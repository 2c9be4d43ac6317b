package handler

import (
	"encoding/json"
	"fmt"
	"time"
)

// localTimeLayout is how flight times travel over the wire: the wall clock at
// the airport, without a zone.
const localTimeLayout = "2006-01-02T15:04:05"

// LocalTime is an airport-local wall-clock time. Inputs may omit seconds or
// carry an offset; an offset is dropped and the clock reading kept.
type LocalTime struct {
	time.Time
}

// MarshalJSON writes the wall clock without a zone.
func (t LocalTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(localTimeLayout))
}

// UnmarshalJSON accepts "2006-01-02T15:04:05", "2006-01-02T15:04" or RFC 3339.
func (t *LocalTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	for _, layout := range []string{localTimeLayout, "2006-01-02T15:04", time.RFC3339} {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = wallClock(parsed)
			return nil
		}
	}
	return fmt.Errorf("invalid local time %q: want YYYY-MM-DDTHH:MM[:SS]", s)
}

// wallClock returns the same clock reading in UTC.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

func localTimePtr(t *time.Time) *LocalTime {
	if t == nil {
		return nil
	}
	return &LocalTime{Time: *t}
}

func timePtr(t *LocalTime) *time.Time {
	if t == nil {
		return nil
	}
	v := t.Time
	return &v
}
