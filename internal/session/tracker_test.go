package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/dori/horas/internal/db"
	"github.com/dori/horas/internal/month"
)

func newTestTracker(t *testing.T, now time.Time) (*Tracker, *db.DB) {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	tracker := NewTracker(database, time.UTC, func() time.Time { return now })
	return tracker, database
}

func TestStartFilesUnderToday(t *testing.T) {
	now := time.Date(2025, 8, 15, 9, 0, 0, 0, time.UTC)
	tracker, database := newTestTracker(t, now)

	open, err := tracker.Start()
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if open.StartMillis != now.UnixMilli() {
		t.Errorf("start = %d, want %d", open.StartMillis, now.UnixMilli())
	}

	entry, err := database.GetOpenEntry()
	if err != nil {
		t.Fatalf("GetOpenEntry failed: %v", err)
	}
	if entry == nil {
		t.Fatal("no open entry after Start")
	}
	if want := month.EpochDay(now, time.UTC); entry.DateEpochDay != want {
		t.Errorf("filed under day %d, want %d", entry.DateEpochDay, want)
	}
}

func TestStartIsIdempotentWhileOpen(t *testing.T) {
	now := time.Date(2025, 8, 15, 9, 0, 0, 0, time.UTC)
	tracker, database := newTestTracker(t, now)

	first, err := tracker.Start()
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	second, err := tracker.Start()
	if err != nil {
		t.Fatalf("second Start failed: %v", err)
	}

	if second.StartMillis != first.StartMillis {
		t.Errorf("second Start returned a different session: %d vs %d",
			second.StartMillis, first.StartMillis)
	}

	entries, err := database.GetRange(0, 30_000)
	if err != nil {
		t.Fatalf("GetRange failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("got %d entries after double start, want 1", len(entries))
	}
}

func TestStopClosesSession(t *testing.T) {
	start := time.Date(2025, 8, 15, 9, 0, 0, 0, time.UTC)
	tracker, database := newTestTracker(t, start)

	if _, err := tracker.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	end := start.Add(90 * time.Minute)
	stopTracker := NewTracker(database, time.UTC, func() time.Time { return end })
	if err := stopTracker.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	open, err := tracker.Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if open != nil {
		t.Error("session still open after Stop")
	}

	entries, _ := database.GetRange(0, 30_000)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if got := entries[0].DurationMillis(); got != 90*60_000 {
		t.Errorf("duration = %d, want %d", got, 90*60_000)
	}
}

func TestStopWithoutSessionIsNoop(t *testing.T) {
	tracker, _ := newTestTracker(t, time.Date(2025, 8, 15, 9, 0, 0, 0, time.UTC))

	if err := tracker.Stop(); err != nil {
		t.Fatalf("Stop without session failed: %v", err)
	}
}

func TestBackfillAndEdit(t *testing.T) {
	now := time.Date(2025, 8, 15, 9, 0, 0, 0, time.UTC)
	tracker, database := newTestTracker(t, now)

	end := int64(5_000_000)
	entry, err := tracker.Backfill(20310, 1_000_000, &end)
	if err != nil {
		t.Fatalf("Backfill failed: %v", err)
	}

	// Backfilled closed entries never show up as the open session
	open, _ := tracker.Open()
	if open != nil {
		t.Error("backfilled closed entry reported as open")
	}

	newEnd := int64(6_000_000)
	if err := tracker.EditTimes(entry, 2_000_000, &newEnd); err != nil {
		t.Fatalf("EditTimes failed: %v", err)
	}

	got, _ := database.GetEntry(entry.ID)
	if got.StartMillis != 2_000_000 || *got.EndMillis != 6_000_000 {
		t.Errorf("edit not applied: %+v", got)
	}
}
