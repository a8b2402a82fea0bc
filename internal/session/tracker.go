package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/dori/horas/internal/db"
	"github.com/dori/horas/internal/model"
	"github.com/dori/horas/internal/month"
)

// Tracker owns the open-session state. All start/stop sequences are
// serialized through its mutex so two concurrent starts cannot create
// two open entries.
type Tracker struct {
	mu  sync.Mutex
	db  *db.DB
	loc *time.Location
	now func() time.Time
}

// NewTracker creates a tracker over the given store. A nil now clock
// defaults to time.Now; tests inject a fixed clock.
func NewTracker(database *db.DB, loc *time.Location, now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	return &Tracker{db: database, loc: loc, now: now}
}

// Start opens a new session filed under today's calendar day in the
// app zone. It is a no-op if a session is already open.
func (t *Tracker) Start() (*model.InProgress, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	open, err := t.db.GetOpenEntry()
	if err != nil {
		return nil, fmt.Errorf("failed to query open entry: %w", err)
	}
	if open != nil {
		return &model.InProgress{StartMillis: open.StartMillis}, nil
	}

	now := t.now()
	entry, err := t.db.CreateEntry(month.EpochDay(now, t.loc), now.UnixMilli(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}

	return &model.InProgress{StartMillis: entry.StartMillis}, nil
}

// Stop closes the open session at the current instant. It is a no-op
// if nothing is running.
func (t *Tracker) Stop() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	open, err := t.db.GetOpenEntry()
	if err != nil {
		return fmt.Errorf("failed to query open entry: %w", err)
	}
	if open == nil {
		return nil
	}

	if err := t.db.CloseEntry(open.ID, t.now().UnixMilli()); err != nil {
		return fmt.Errorf("failed to close entry: %w", err)
	}
	return nil
}

// Open returns the in-progress session, or nil if none is running.
func (t *Tracker) Open() (*model.InProgress, error) {
	open, err := t.db.GetOpenEntry()
	if err != nil {
		return nil, err
	}
	if open == nil {
		return nil, nil
	}
	return &model.InProgress{StartMillis: open.StartMillis}, nil
}

// Backfill records a past session for an explicit day. A nil endMs
// files it as still open.
func (t *Tracker) Backfill(epochDay, startMs int64, endMs *int64) (*model.TimeEntry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.db.CreateEntry(epochDay, startMs, endMs)
}

// EditTimes replaces an entry's start and end instants.
func (t *Tracker) EditTimes(entry *model.TimeEntry, startMs int64, endMs *int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.db.UpdateEntryTimes(entry.ID, startMs, endMs)
}
