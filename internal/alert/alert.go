package alert

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dori/horas/internal/db"
	"github.com/dori/horas/internal/model"
	"github.com/dori/horas/internal/month"
	"github.com/dori/horas/internal/notify"
	"github.com/dori/horas/internal/timefmt"
)

// DefaultInterval is how often the background checks run.
const DefaultInterval = 15 * time.Minute

// Sender is the delivery half of the notifier, narrowed for testing.
type Sender interface {
	Send(notify.Notification) error
}

// ReachedLimit reports whether the monthly total has hit the limit.
// A limit of 0 disables the check.
func ReachedLimit(limitMin, totalMin int) bool {
	return limitMin > 0 && totalMin >= limitMin
}

// WithinFinalHour reports whether between 1 and 60 minutes remain.
func WithinFinalHour(limitMin, totalMin int) bool {
	if limitMin <= 0 {
		return false
	}
	remaining := limitMin - totalMin
	return remaining >= 1 && remaining <= 60
}

// ClosedMinutes totals the closed entries in whole minutes, flooring
// each entry separately the way the stored report does.
func ClosedMinutes(entries []model.TimeEntry) int {
	var total int64
	for _, e := range entries {
		if e.EndMillis == nil {
			continue
		}
		total += e.DurationMillis() / 60_000
	}
	return int(total)
}

// Checker runs the two periodic limit checks against the current
// month's aggregate, recomputed from scratch on every run. Each check
// fires at most once per month: the sent month-tag is persisted and
// never cleared within the month, even if edits later pull the total
// back below the threshold.
type Checker struct {
	db     *db.DB
	sender Sender
	loc    *time.Location
	now    func() time.Time
}

// NewChecker builds a checker. A nil now clock defaults to time.Now.
func NewChecker(database *db.DB, sender Sender, loc *time.Location, now func() time.Time) *Checker {
	if now == nil {
		now = time.Now
	}
	return &Checker{db: database, sender: sender, loc: loc, now: now}
}

// RunOnce performs both checks. It reads everything it needs, decides,
// delivers, and records the sent tags; it never blocks beyond the
// storage round-trips.
func (c *Checker) RunOnce() error {
	limitMin, err := c.db.MonthlyLimitMinutes()
	if err != nil {
		return fmt.Errorf("failed to read monthly limit: %w", err)
	}
	if limitMin <= 0 {
		return nil
	}

	ym := month.Current(c.now(), c.loc)
	entries, err := c.db.GetRange(ym.FirstEpochDay(), ym.LastEpochDay())
	if err != nil {
		return fmt.Errorf("failed to load month entries: %w", err)
	}

	totalMin := ClosedMinutes(entries)
	tag := ym.Tag()

	if ReachedLimit(limitMin, totalMin) {
		if err := c.fireOnce(db.KeyLimitAlertSent, tag, reachedNotification(totalMin, limitMin)); err != nil {
			return err
		}
	}

	if WithinFinalHour(limitMin, totalMin) {
		remaining := limitMin - totalMin
		if err := c.fireOnce(db.KeyHourAlertSent, tag, finalHourNotification(remaining)); err != nil {
			return err
		}
	}

	return nil
}

// fireOnce delivers the notification unless it already went out for
// this month-tag, and records the tag after the delivery attempt.
// Delivery failures are swallowed, the desktop may simply have no
// notification service.
func (c *Checker) fireOnce(key, tag string, n notify.Notification) error {
	sent, err := c.db.SentTag(key)
	if err != nil {
		return fmt.Errorf("failed to read sent tag: %w", err)
	}
	if sent == tag {
		return nil
	}

	_ = c.sender.Send(n)

	if err := c.db.SetSentTag(key, tag); err != nil {
		return fmt.Errorf("failed to record sent tag: %w", err)
	}
	return nil
}

// Run invokes RunOnce on a fixed schedule until ctx is cancelled. A
// failed run is logged and the schedule keeps going; the next tick gets
// a fresh look at the storage.
func (c *Checker) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := c.RunOnce(); err != nil {
			log.Printf("limit check failed: %v", err)
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}

func reachedNotification(totalMin, limitMin int) notify.Notification {
	worked := timefmt.Elapsed(int64(totalMin) * 60_000)
	limit := timefmt.Elapsed(int64(limitMin) * 60_000)
	return notify.Notification{
		Title:   "¡Alcanzaste tu límite mensual!",
		Body:    fmt.Sprintf("Límite mensual alcanzado. Trabajado: %s • Límite: %s.", worked, limit),
		Urgency: notify.UrgencyCritical,
		Timeout: 15 * time.Second,
		Icon:    "appointment-missed-symbolic",
	}
}

func finalHourNotification(remainingMin int) notify.Notification {
	return notify.Notification{
		Title:   "¡Te queda 1 hora o menos!",
		Body:    fmt.Sprintf("Queda %s para tu límite mensual.", timefmt.Elapsed(int64(remainingMin)*60_000)),
		Urgency: notify.UrgencyNormal,
		Timeout: 15 * time.Second,
		Icon:    "alarm-symbolic",
	}
}
