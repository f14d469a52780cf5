package countdown

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSeconds(t *testing.T) {
	tests := map[int64]string{
		0:     "0:00",
		5:     "0:05",
		60:    "1:00",
		599:   "9:59",
		3600:  "60:00",
		-1:    "-0:01",
		-65:   "-1:05",
		-3601: "-60:01",
	}
	for seconds, want := range tests {
		assert.Equal(t, want, FormatSeconds(seconds), "seconds=%d", seconds)
	}
}

func TestSecondsFromMinutes(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		tests := []struct {
			minutes float64
			want    int64
		}{
			{minutes: 10, want: 600},
			{minutes: 0.5, want: 30},
			{minutes: 1.25, want: 75},
			{minutes: 0.001, want: 1},
			{minutes: 0.0001, want: 1},
			{minutes: 1e15, want: 6e16},
		}
		for _, tt := range tests {
			got, err := SecondsFromMinutes(tt.minutes)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got, "minutes=%v", tt.minutes)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		for _, minutes := range []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1), 1.6e17, 2e17, 1e300} {
			_, err := SecondsFromMinutes(minutes)
			assert.ErrorIs(t, err, ErrInvalidDuration, "minutes=%v", minutes)
		}
	})
}
