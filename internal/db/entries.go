package db

import (
	"database/sql"
	"time"

	"github.com/dori/horas/internal/model"
	"github.com/google/uuid"
)

// GetOpenEntry returns the currently open entry, or nil if no session
// is running. If more than one entry is open the most recently started
// one is authoritative.
func (db *DB) GetOpenEntry() (*model.TimeEntry, error) {
	row := db.QueryRow(`
		SELECT id, date_epoch_day, start_millis, end_millis, pause_minutes,
		       created_at, updated_at
		FROM time_entries
		WHERE end_millis IS NULL
		ORDER BY start_millis DESC
		LIMIT 1
	`)

	e, err := db.scanEntryRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return e, err
}

// GetEntry returns a single entry by ID, or nil if it does not exist.
func (db *DB) GetEntry(id string) (*model.TimeEntry, error) {
	row := db.QueryRow(`
		SELECT id, date_epoch_day, start_millis, end_millis, pause_minutes,
		       created_at, updated_at
		FROM time_entries WHERE id = ?
	`, id)

	e, err := db.scanEntryRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return e, err
}

// GetRange returns the entries filed between fromDay and toDay
// inclusive, ordered by day ascending then start ascending. That
// ordering is the query's contract; the CSV exporter relies on it.
func (db *DB) GetRange(fromDay, toDay int64) ([]model.TimeEntry, error) {
	rows, err := db.Query(`
		SELECT id, date_epoch_day, start_millis, end_millis, pause_minutes,
		       created_at, updated_at
		FROM time_entries
		WHERE date_epoch_day BETWEEN ? AND ?
		ORDER BY date_epoch_day ASC, start_millis ASC
	`, fromDay, toDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return db.scanEntries(rows)
}

// GetDayEntries returns the entries filed under a single epoch day,
// ordered by start ascending.
func (db *DB) GetDayEntries(epochDay int64) ([]model.TimeEntry, error) {
	return db.GetRange(epochDay, epochDay)
}

// CreateEntry inserts a new entry. A nil endMs creates an open session.
func (db *DB) CreateEntry(epochDay, startMs int64, endMs *int64) (*model.TimeEntry, error) {
	id := uuid.New().String()
	now := time.Now()

	_, err := db.Exec(`
		INSERT INTO time_entries (id, date_epoch_day, start_millis, end_millis, pause_minutes, created_at, updated_at)
		VALUES (?, ?, ?, ?, 0, ?, ?)
	`, id, epochDay, startMs, endMs, now, now)

	if err != nil {
		return nil, err
	}

	return &model.TimeEntry{
		ID:           id,
		DateEpochDay: epochDay,
		StartMillis:  startMs,
		EndMillis:    endMs,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// CloseEntry sets the end instant of an entry.
func (db *DB) CloseEntry(id string, endMs int64) error {
	now := time.Now()
	_, err := db.Exec(`UPDATE time_entries SET end_millis = ?, updated_at = ? WHERE id = ?`,
		endMs, now, id)
	return err
}

// UpdateEntryTimes replaces an entry's start and end instants. A nil
// endMs reopens the entry.
func (db *DB) UpdateEntryTimes(id string, startMs int64, endMs *int64) error {
	now := time.Now()
	_, err := db.Exec(`UPDATE time_entries SET start_millis = ?, end_millis = ?, updated_at = ? WHERE id = ?`,
		startMs, endMs, now, id)
	return err
}

// Helper functions

func (db *DB) scanEntries(rows *sql.Rows) ([]model.TimeEntry, error) {
	var entries []model.TimeEntry
	for rows.Next() {
		e, err := db.scanEntryRow(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func (db *DB) scanEntryRow(s scanner) (*model.TimeEntry, error) {
	var e model.TimeEntry
	var endMillis *int64

	err := s.Scan(
		&e.ID, &e.DateEpochDay, &e.StartMillis, &endMillis, &e.PauseMinutes,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.EndMillis = endMillis
	return &e, nil
}
