package model

import (
	"time"
)

// TimeEntry represents one recorded work session.
// A nil EndMillis means the session is still open.
type TimeEntry struct {
	ID           string    `json:"id"`
	DateEpochDay int64     `json:"date_epoch_day"`
	StartMillis  int64     `json:"start_millis"`
	EndMillis    *int64    `json:"end_millis,omitempty"`
	PauseMinutes int       `json:"pause_minutes"` // stored but not yet used in aggregation
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsOpen returns true if this entry has no end time yet.
func (e *TimeEntry) IsOpen() bool {
	return e.EndMillis == nil
}

// DurationMillis returns the closed duration of the entry in milliseconds.
// Open entries and inverted start/end pairs both yield 0.
func (e *TimeEntry) DurationMillis() int64 {
	if e.EndMillis == nil {
		return 0
	}
	d := *e.EndMillis - e.StartMillis
	if d < 0 {
		return 0
	}
	return d
}

// InProgress is the single currently-open session, held in memory while
// the session runs.
type InProgress struct {
	StartMillis int64 `json:"start_millis"`
}

// MonthSummary is the derived aggregate for one month's entries.
// It is recomputed on every query and never persisted.
type MonthSummary struct {
	TotalMillis int64 `json:"total_millis"`
	DaysWorked  int   `json:"days_worked"`
}
