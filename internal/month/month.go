package month

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// YearMonth identifies one calendar month. The zero value is not a
// valid month; construct through Of or Current.
type YearMonth struct {
	Year  int
	Month time.Month
}

// Of builds a YearMonth from an explicit year and month pair. Values
// outside 1-12 are normalized the way time.Date normalizes them.
func Of(year int, m time.Month) YearMonth {
	t := time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// Current returns the month containing now in the given zone.
func Current(now time.Time, loc *time.Location) YearMonth {
	local := now.In(loc)
	return YearMonth{Year: local.Year(), Month: local.Month()}
}

// Shift returns the month delta months away. Negative deltas walk
// backwards and year boundaries roll over for arbitrary magnitudes.
func (ym YearMonth) Shift(delta int) YearMonth {
	t := time.Date(ym.Year, ym.Month+time.Month(delta), 1, 0, 0, 0, 0, time.UTC)
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// FirstEpochDay returns the epoch day of the first day of the month.
func (ym YearMonth) FirstEpochDay() int64 {
	return civilEpochDay(ym.Year, ym.Month, 1)
}

// LastEpochDay returns the epoch day of the last day of the month,
// inclusive.
func (ym YearMonth) LastEpochDay() int64 {
	return ym.Shift(1).FirstEpochDay() - 1
}

// StartMillis returns the instant of the first day of the month at
// 00:00 in the given zone, in epoch milliseconds.
func (ym YearMonth) StartMillis(loc *time.Location) int64 {
	return time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, loc).UnixMilli()
}

// EndMillis returns the instant of the first day of the following month
// at 00:00 in the given zone. The month's window is [StartMillis, EndMillis).
func (ym YearMonth) EndMillis(loc *time.Location) int64 {
	return ym.Shift(1).StartMillis(loc)
}

// Overlap returns the portion of [startMs, endMs] that falls inside the
// month in the given zone, in milliseconds. Both ends are clamped into
// the month window independently and the result is floored at 0.
func (ym YearMonth) Overlap(startMs, endMs int64, loc *time.Location) int64 {
	lo := ym.StartMillis(loc)
	hi := ym.EndMillis(loc)

	s := clamp(startMs, lo, hi)
	e := clamp(endMs, lo, hi)

	if e < s {
		return 0
	}
	return e - s
}

// Tag returns the "YYYY-MM" string used as a de-duplication key for
// one-shot notifications. It changes when the calendar month rolls over.
func (ym YearMonth) Tag() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// String implements fmt.Stringer with the same format as Tag.
func (ym YearMonth) String() string {
	return ym.Tag()
}

var tagRe = regexp.MustCompile(`^(\d{4})-(\d{1,2})$`)

// Parse reads a "YYYY-MM" tag back into a YearMonth. The whole string
// must be the tag, trailing text is an error.
func Parse(s string) (YearMonth, error) {
	parts := tagRe.FindStringSubmatch(s)
	if parts == nil {
		return YearMonth{}, fmt.Errorf("invalid month %q: want YYYY-MM", s)
	}
	year, _ := strconv.Atoi(parts[1])
	m, _ := strconv.Atoi(parts[2])
	if m < 1 || m > 12 {
		return YearMonth{}, fmt.Errorf("invalid month %q: month out of range", s)
	}
	return YearMonth{Year: year, Month: time.Month(m)}, nil
}

// EpochDay returns the local calendar day of t in the given zone as
// days since 1970-01-01.
func EpochDay(t time.Time, loc *time.Location) int64 {
	y, m, d := t.In(loc).Date()
	return civilEpochDay(y, m, d)
}

// DayStart returns the instant of 00:00 of the given epoch day in the
// given zone.
func DayStart(epochDay int64, loc *time.Location) time.Time {
	y, m, d := time.Unix(epochDay*86400, 0).UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func civilEpochDay(y int, m time.Month, d int) int64 {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
