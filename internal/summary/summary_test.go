package summary

import (
	"testing"
	"time"

	"github.com/dori/horas/internal/model"
	"github.com/dori/horas/internal/month"
	"github.com/stretchr/testify/assert"
)

func ptr(v int64) *int64 { return &v }

func TestSummarize(t *testing.T) {
	entries := []model.TimeEntry{
		{DateEpochDay: 1, StartMillis: 0, EndMillis: ptr(3_600_000)},
		{DateEpochDay: 1, StartMillis: 7_200_000, EndMillis: ptr(10_800_000)},
		{DateEpochDay: 2, StartMillis: 0, EndMillis: ptr(0)},
	}

	sum := Summarize(entries)

	// Two hours on day 1; day 2's zero-length entry counts nowhere.
	assert.Equal(t, int64(7_200_000), sum.TotalMillis)
	assert.Equal(t, 1, sum.DaysWorked)
}

func TestSummarizeSkipsOpenAndClampsNegative(t *testing.T) {
	entries := []model.TimeEntry{
		{DateEpochDay: 3, StartMillis: 1000},                             // open, skipped
		{DateEpochDay: 4, StartMillis: 5_000_000, EndMillis: ptr(1_000)}, // inverted, clamps to 0
		{DateEpochDay: 5, StartMillis: 0, EndMillis: ptr(60_000)},        // one real minute
	}

	sum := Summarize(entries)

	assert.Equal(t, int64(60_000), sum.TotalMillis)
	assert.Equal(t, 1, sum.DaysWorked)
}

func TestSummarizeOrderIndependent(t *testing.T) {
	a := model.TimeEntry{DateEpochDay: 1, StartMillis: 0, EndMillis: ptr(1_000)}
	b := model.TimeEntry{DateEpochDay: 2, StartMillis: 0, EndMillis: ptr(2_000)}
	c := model.TimeEntry{DateEpochDay: 2, StartMillis: 5_000, EndMillis: ptr(9_000)}

	assert.Equal(t,
		Summarize([]model.TimeEntry{a, b, c}),
		Summarize([]model.TimeEntry{c, a, b}))
}

func TestSummarizeEmpty(t *testing.T) {
	sum := Summarize(nil)
	assert.Equal(t, int64(0), sum.TotalMillis)
	assert.Equal(t, 0, sum.DaysWorked)
}

func TestLiveContribution(t *testing.T) {
	loc, err := time.LoadLocation("America/Santiago")
	if err != nil {
		t.Fatalf("Failed to load zone: %v", err)
	}
	ym := month.Of(2025, time.August)

	assert.Equal(t, int64(0), LiveContribution(nil, 0, ym, loc), "no open session")

	// Session entirely inside the month
	start := time.Date(2025, 8, 10, 9, 0, 0, 0, loc).UnixMilli()
	now := time.Date(2025, 8, 10, 11, 30, 0, 0, loc).UnixMilli()
	open := &model.InProgress{StartMillis: start}
	assert.Equal(t, int64(2*3_600_000+30*60_000), LiveContribution(open, now, ym, loc))

	// Session started in July: only the August slice counts
	julyStart := time.Date(2025, 7, 31, 22, 0, 0, 0, loc).UnixMilli()
	augNow := time.Date(2025, 8, 1, 1, 0, 0, 0, loc).UnixMilli()
	open = &model.InProgress{StartMillis: julyStart}
	assert.Equal(t, int64(3_600_000), LiveContribution(open, augNow, ym, loc))

	// Now behind start clamps to zero, never negative
	open = &model.InProgress{StartMillis: now}
	assert.Equal(t, int64(0), LiveContribution(open, start, ym, loc))
}

func TestTotalWithLive(t *testing.T) {
	loc := time.UTC
	ym := month.Of(2025, time.August)
	sum := model.MonthSummary{TotalMillis: 1_000_000, DaysWorked: 3}

	start := time.Date(2025, 8, 20, 8, 0, 0, 0, loc).UnixMilli()
	now := time.Date(2025, 8, 20, 9, 0, 0, 0, loc).UnixMilli()
	open := &model.InProgress{StartMillis: start}

	assert.Equal(t, int64(1_000_000+3_600_000), TotalWithLive(sum, open, now, ym, loc))
	assert.Equal(t, int64(1_000_000), TotalWithLive(sum, nil, now, ym, loc))
}

func TestEvalLimit(t *testing.T) {
	// 480 min limit, total beyond it: remaining floors at zero and
	// progress clamps to 1.
	status := EvalLimit(480, 30_000_000)
	assert.True(t, status.HasLimit)
	assert.Equal(t, int64(28_800_000), status.LimitMillis)
	assert.Equal(t, int64(0), status.RemainingMillis)
	assert.Equal(t, 1.0, status.Progress)

	// Halfway through
	status = EvalLimit(480, 14_400_000)
	assert.Equal(t, int64(14_400_000), status.RemainingMillis)
	assert.InDelta(t, 0.5, status.Progress, 1e-9)

	// No limit configured: everything suppressed
	status = EvalLimit(0, 10_000)
	assert.False(t, status.HasLimit)
	assert.Equal(t, int64(0), status.LimitMillis)

	status = EvalLimit(-10, 10_000)
	assert.False(t, status.HasLimit)
}
