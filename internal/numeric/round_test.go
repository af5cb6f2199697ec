package numeric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound4(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0.66666, 0.6667},
		{0.12344, 0.1234},
		{1, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Round4(tt.in), "Round4(%v)", tt.in)
	}
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(-0.2))
	assert.Equal(t, 1.0, Clamp01(1.0000001))
	assert.Equal(t, 0.5, Clamp01(0.5))
	assert.Equal(t, 0.0, Clamp01(math.NaN()))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 66.67, Percent(2, 3, 0))
	assert.Equal(t, 100.0, Percent(0, 0, 100))
	assert.Equal(t, 0.0, Percent(0, 4, 100))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "85%", FormatPercent(0.853, 0))
	assert.Equal(t, "85.3%", FormatPercent(0.853, 1))
}
