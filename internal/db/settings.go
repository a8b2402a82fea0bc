package db

import (
	"database/sql"
	"strconv"
)

// Settings keys. The alert tags hold the "YYYY-MM" month the
// notification was last sent for.
const (
	KeyMonthlyLimitMin = "monthly_limit_min"
	KeyLimitAlertSent  = "alert_limit_reached_for"
	KeyHourAlertSent   = "alert_one_hour_sent_for"
)

func (db *DB) getSetting(key string) (string, bool, error) {
	var value string
	err := db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (db *DB) setSetting(key, value string) error {
	_, err := db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

// MonthlyLimitMinutes returns the configured monthly limit in minutes.
// 0 means no limit.
func (db *DB) MonthlyLimitMinutes() (int, error) {
	value, ok, err := db.getSetting(KeyMonthlyLimitMin)
	if err != nil || !ok {
		return 0, err
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, nil
	}
	return n, nil
}

// SetMonthlyLimitMinutes stores the monthly limit. Negative values are
// clamped to 0.
func (db *DB) SetMonthlyLimitMinutes(minutes int) error {
	if minutes < 0 {
		minutes = 0
	}
	return db.setSetting(KeyMonthlyLimitMin, strconv.Itoa(minutes))
}

// SentTag returns the month tag a notification kind was last sent for,
// or "" if it never fired.
func (db *DB) SentTag(key string) (string, error) {
	value, _, err := db.getSetting(key)
	return value, err
}

// SetSentTag records the month tag a notification kind fired for.
func (db *DB) SetSentTag(key, tag string) error {
	return db.setSetting(key, tag)
}
