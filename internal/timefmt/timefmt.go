package timefmt

import (
	"fmt"
	"regexp"
	"time"

	"github.com/dori/horas/internal/month"
	"github.com/shopspring/decimal"
)

var clockRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// Clock formats an absolute instant as wall-clock "HH:mm" in the given
// zone. A nil input yields the empty string, used for open sessions.
func Clock(ms *int64, loc *time.Location) string {
	if ms == nil {
		return ""
	}
	return time.UnixMilli(*ms).In(loc).Format("15:04")
}

// Elapsed formats a duration in milliseconds as "H:MM:SS". The hours
// component is unbounded, a monthly total can exceed 24 hours.
// Negative input clamps to zero.
func Elapsed(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	totalSec := ms / 1000
	h := totalSec / 3600
	m := (totalSec % 3600) / 60
	s := totalSec % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// HoursMinutes formats a duration in milliseconds as "HH:mm" with
// minute precision.
func HoursMinutes(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	totalMin := ms / 60000
	return fmt.Sprintf("%02d:%02d", totalMin/60, totalMin%60)
}

// Day formats an epoch day as "yyyy-MM-dd". The epoch day already
// encodes the calendar date, so no zone is involved.
func Day(epochDay int64) string {
	return time.Unix(epochDay*86400, 0).UTC().Format("2006-01-02")
}

// ParseClockOnDay combines a wall-clock "HH:mm" string with a calendar
// day in the given zone and returns the absolute instant in epoch
// milliseconds. Empty text means "no time" and is the caller's case to
// handle; here it is a parse error like any other malformed input.
func ParseClockOnDay(text string, epochDay int64, loc *time.Location) (int64, error) {
	matches := clockRe.FindStringSubmatch(text)
	if matches == nil {
		return 0, fmt.Errorf("invalid time %q: expected HH:mm", text)
	}

	var h, m int
	fmt.Sscanf(matches[1], "%d", &h)
	fmt.Sscanf(matches[2], "%d", &m)

	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q: out of range", text)
	}

	day := month.DayStart(epochDay, loc)
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, loc).UnixMilli(), nil
}

// DecimalHours renders a minute count as decimal hours with two
// decimals and half-up rounding, e.g. 90 -> "1.50 h".
func DecimalHours(minutes int) string {
	hours := decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(60)).Round(2)
	return hours.StringFixed(2) + " h"
}
