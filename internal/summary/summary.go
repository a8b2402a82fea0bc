package summary

import (
	"time"

	"github.com/dori/horas/internal/model"
	"github.com/dori/horas/internal/month"
)

// Summarize reduces a month's entries to the total worked milliseconds
// and the count of distinct days with positive worked time. Open
// entries are skipped, live time is layered on separately. The result
// depends only on the list's content, not its order.
func Summarize(entries []model.TimeEntry) model.MonthSummary {
	var total int64
	days := make(map[int64]struct{})

	for _, e := range entries {
		ms := e.DurationMillis()
		if ms > 0 {
			total += ms
			days[e.DateEpochDay] = struct{}{}
		}
	}

	return model.MonthSummary{TotalMillis: total, DaysWorked: len(days)}
}

// LiveContribution returns the portion of the open session that falls
// inside the viewed month, or 0 when nothing is running. A session may
// start in a previous month or run past the month's end; only the
// in-month slice counts.
func LiveContribution(open *model.InProgress, nowMs int64, ym month.YearMonth, loc *time.Location) int64 {
	if open == nil {
		return 0
	}
	return ym.Overlap(open.StartMillis, nowMs, loc)
}

// TotalWithLive is the figure everything downstream consumes: persisted
// total plus the open session's in-month slice.
func TotalWithLive(sum model.MonthSummary, open *model.InProgress, nowMs int64, ym month.YearMonth, loc *time.Location) int64 {
	return sum.TotalMillis + LiveContribution(open, nowMs, ym, loc)
}
