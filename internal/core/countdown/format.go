package countdown

import (
	"fmt"
	"math"
)

// FormatSeconds renders seconds as m:ss. Overrun is shown with a leading minus.
func FormatSeconds(totalSeconds int64) string {
	sign := ""
	if totalSeconds < 0 {
		sign = "-"
		totalSeconds = -totalSeconds
	}
	return fmt.Sprintf("%s%d:%02d", sign, totalSeconds/60, totalSeconds%60)
}

// SecondsFromMinutes converts a user-supplied minute count to whole seconds,
// rounding to the nearest second with a floor of one. Counts that do not fit
// in an int64 are rejected.
func SecondsFromMinutes(minutes float64) (int64, error) {
	if math.IsNaN(minutes) || math.IsInf(minutes, 0) || minutes <= 0 {
		return 0, fmt.Errorf("%w: got %v minutes", ErrInvalidDuration, minutes)
	}
	seconds := math.Round(minutes * 60)
	if seconds < 1 {
		seconds = 1
	}
	if seconds >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: %v minutes is too long", ErrInvalidDuration, minutes)
	}
	return int64(seconds), nil
}
