package db

import (
	"context"
	"reflect"
	"time"

	"github.com/dori/horas/internal/model"
)

// WatchRange polls the range query and emits the entry list whenever
// its content changes, starting with an immediate snapshot. The channel
// closes when ctx is cancelled. Delivery is by polling since SQLite
// offers no change notifications.
func (db *DB) WatchRange(ctx context.Context, fromDay, toDay int64, interval time.Duration) <-chan []model.TimeEntry {
	if interval <= 0 {
		interval = time.Second
	}

	out := make(chan []model.TimeEntry, 1)

	go func() {
		defer close(out)

		var last []model.TimeEntry
		first := true

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			entries, err := db.GetRange(fromDay, toDay)
			if err == nil && (first || !reflect.DeepEqual(entries, last)) {
				first = false
				last = entries
				select {
				case out <- entries:
				case <-ctx.Done():
					return
				}
			}

			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
