package summary

// LimitStatus derives the remaining allowance and progress from the
// configured monthly limit and a total-with-live figure.
type LimitStatus struct {
	LimitMillis     int64
	RemainingMillis int64
	Progress        float64
	HasLimit        bool
}

// EvalLimit computes the limit status. A limit of 0 means unlimited:
// HasLimit is false and the progress/remaining figures are undefined
// for display (callers suppress the ring entirely). Remaining never
// goes negative and progress is clamped into [0, 1].
func EvalLimit(limitMinutes int, totalWithLiveMs int64) LimitStatus {
	if limitMinutes <= 0 {
		return LimitStatus{}
	}

	limitMs := int64(limitMinutes) * 60_000

	remaining := limitMs - totalWithLiveMs
	if remaining < 0 {
		remaining = 0
	}

	progress := float64(totalWithLiveMs) / float64(limitMs)
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}

	return LimitStatus{
		LimitMillis:     limitMs,
		RemainingMillis: remaining,
		Progress:        progress,
		HasLimit:        true,
	}
}
