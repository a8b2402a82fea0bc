package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func ptr(v int64) *int64 { return &v }

func TestCreateAndGetEntry(t *testing.T) {
	db := openTestDB(t)

	created, err := db.CreateEntry(20315, 1_000_000, ptr(2_000_000))
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}
	if created.ID == "" {
		t.Fatal("entry got no ID")
	}

	got, err := db.GetEntry(created.ID)
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if got == nil {
		t.Fatal("entry not found")
	}
	if got.DateEpochDay != 20315 || got.StartMillis != 1_000_000 {
		t.Errorf("entry mismatch: %+v", got)
	}
	if got.EndMillis == nil || *got.EndMillis != 2_000_000 {
		t.Errorf("end mismatch: %+v", got.EndMillis)
	}

	missing, err := db.GetEntry("nope")
	if err != nil {
		t.Fatalf("GetEntry(missing) failed: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing entry")
	}
}

func TestGetOpenEntryMostRecentWins(t *testing.T) {
	db := openTestDB(t)

	// No open entry yet
	open, err := db.GetOpenEntry()
	if err != nil {
		t.Fatalf("GetOpenEntry failed: %v", err)
	}
	if open != nil {
		t.Fatal("expected no open entry")
	}

	if _, err := db.CreateEntry(20315, 1_000, nil); err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}
	second, err := db.CreateEntry(20315, 2_000, nil)
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}

	// Two open entries should not happen, but the most recently
	// started one is authoritative when it does.
	open, err = db.GetOpenEntry()
	if err != nil {
		t.Fatalf("GetOpenEntry failed: %v", err)
	}
	if open == nil || open.ID != second.ID {
		t.Errorf("expected most recent open entry, got %+v", open)
	}
}

func TestCloseEntry(t *testing.T) {
	db := openTestDB(t)

	created, err := db.CreateEntry(20315, 1_000, nil)
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}

	if err := db.CloseEntry(created.ID, 9_000); err != nil {
		t.Fatalf("CloseEntry failed: %v", err)
	}

	open, err := db.GetOpenEntry()
	if err != nil {
		t.Fatalf("GetOpenEntry failed: %v", err)
	}
	if open != nil {
		t.Error("entry still open after close")
	}

	got, _ := db.GetEntry(created.ID)
	if got.EndMillis == nil || *got.EndMillis != 9_000 {
		t.Errorf("end not stored: %+v", got.EndMillis)
	}
}

func TestGetRangeOrdering(t *testing.T) {
	db := openTestDB(t)

	// Insert out of order across two days
	db.CreateEntry(20316, 500, ptr(600))
	db.CreateEntry(20315, 9_000, ptr(9_500))
	db.CreateEntry(20315, 1_000, ptr(2_000))

	entries, err := db.GetRange(20315, 20316)
	if err != nil {
		t.Fatalf("GetRange failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}

	// Day ascending, then start ascending
	if entries[0].StartMillis != 1_000 || entries[1].StartMillis != 9_000 || entries[2].StartMillis != 500 {
		t.Errorf("wrong order: %d, %d, %d",
			entries[0].StartMillis, entries[1].StartMillis, entries[2].StartMillis)
	}

	// Range excludes other days
	outside, err := db.GetRange(20320, 20330)
	if err != nil {
		t.Fatalf("GetRange failed: %v", err)
	}
	if len(outside) != 0 {
		t.Errorf("got %d entries outside range, want 0", len(outside))
	}
}

func TestGetDayEntries(t *testing.T) {
	db := openTestDB(t)

	db.CreateEntry(20315, 9_000, ptr(9_500))
	db.CreateEntry(20315, 1_000, ptr(2_000))
	db.CreateEntry(20316, 500, ptr(600))

	entries, err := db.GetDayEntries(20315)
	if err != nil {
		t.Fatalf("GetDayEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].StartMillis != 1_000 || entries[1].StartMillis != 9_000 {
		t.Errorf("wrong order: %d, %d", entries[0].StartMillis, entries[1].StartMillis)
	}

	empty, err := db.GetDayEntries(20317)
	if err != nil {
		t.Fatalf("GetDayEntries failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("got %d entries for empty day, want 0", len(empty))
	}
}

func TestUpdateEntryTimes(t *testing.T) {
	db := openTestDB(t)

	created, _ := db.CreateEntry(20315, 1_000, ptr(2_000))

	if err := db.UpdateEntryTimes(created.ID, 3_000, ptr(4_000)); err != nil {
		t.Fatalf("UpdateEntryTimes failed: %v", err)
	}
	got, _ := db.GetEntry(created.ID)
	if got.StartMillis != 3_000 || got.EndMillis == nil || *got.EndMillis != 4_000 {
		t.Errorf("times not updated: %+v", got)
	}

	// Reopening with a nil end
	if err := db.UpdateEntryTimes(created.ID, 3_000, nil); err != nil {
		t.Fatalf("UpdateEntryTimes failed: %v", err)
	}
	got, _ = db.GetEntry(created.ID)
	if got.EndMillis != nil {
		t.Error("entry should be open again")
	}
}

func TestSettings(t *testing.T) {
	db := openTestDB(t)

	minutes, err := db.MonthlyLimitMinutes()
	if err != nil {
		t.Fatalf("MonthlyLimitMinutes failed: %v", err)
	}
	if minutes != 0 {
		t.Errorf("default limit = %d, want 0", minutes)
	}

	if err := db.SetMonthlyLimitMinutes(480); err != nil {
		t.Fatalf("SetMonthlyLimitMinutes failed: %v", err)
	}
	minutes, _ = db.MonthlyLimitMinutes()
	if minutes != 480 {
		t.Errorf("limit = %d, want 480", minutes)
	}

	// Negative clamps to zero
	db.SetMonthlyLimitMinutes(-5)
	minutes, _ = db.MonthlyLimitMinutes()
	if minutes != 0 {
		t.Errorf("limit = %d, want 0 after negative set", minutes)
	}

	tag, err := db.SentTag(KeyLimitAlertSent)
	if err != nil {
		t.Fatalf("SentTag failed: %v", err)
	}
	if tag != "" {
		t.Errorf("unset tag = %q, want empty", tag)
	}

	db.SetSentTag(KeyLimitAlertSent, "2025-08")
	tag, _ = db.SentTag(KeyLimitAlertSent)
	if tag != "2025-08" {
		t.Errorf("tag = %q, want 2025-08", tag)
	}

	// Overwrite on month rollover
	db.SetSentTag(KeyLimitAlertSent, "2025-09")
	tag, _ = db.SentTag(KeyLimitAlertSent)
	if tag != "2025-09" {
		t.Errorf("tag = %q, want 2025-09", tag)
	}
}

func TestWatchRangeEmitsOnChange(t *testing.T) {
	db := openTestDB(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := db.WatchRange(ctx, 20315, 20315, 10*time.Millisecond)

	// Initial snapshot is empty
	select {
	case entries := <-ch:
		if len(entries) != 0 {
			t.Errorf("initial snapshot has %d entries, want 0", len(entries))
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no initial snapshot")
	}

	if _, err := db.CreateEntry(20315, 1_000, nil); err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}

	select {
	case entries := <-ch:
		if len(entries) != 1 {
			t.Errorf("got %d entries after insert, want 1", len(entries))
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no update after insert")
	}

	cancel()
	for range ch {
		// drain until closed
	}
}
