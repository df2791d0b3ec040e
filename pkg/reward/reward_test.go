package reward

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimate(t *testing.T) {
	tests := []struct {
		name        string
		achievement float64
		ratio       float64
		want        float64
	}{
		{"scenario", 8500, 0.05, 425},
		{"zero achievement", 0, 0.05, 0},
		{"zero ratio", 8500, 0, 0},
		{"fractional result not rounded", 3, 0.5, 1.5},
		{"negative achievement", -1, 0.05, 0},
		{"negative ratio", 8500, -0.05, 0},
		{"NaN achievement", math.NaN(), 0.05, 0},
		{"NaN ratio", 8500, math.NaN(), 0},
		{"infinite achievement", math.Inf(1), 0.05, 0},
		{"infinite ratio", 8500, math.Inf(1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Estimate(tt.achievement, tt.ratio), 1e-9)
		})
	}
}

func TestEstimateIsProduct(t *testing.T) {
	for _, a := range []float64{0, 1, 12.5, 8500, 1e9} {
		for _, r := range []float64{0, 0.01, 0.05, 0.5, 1, 2} {
			assert.Equal(t, a*r, Estimate(a, r))
		}
	}
}

func TestCalculateNormalisesPercent(t *testing.T) {
	got, err := Calculate(8500, 5)
	require.NoError(t, err)
	assert.InDelta(t, 425, got, 1e-9)
}

func TestCalculateInvalidInputIsZero(t *testing.T) {
	got, err := Calculate(math.NaN(), 5)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)

	got, err = Calculate(8500, -5)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestCalculateRecoversFromFault(t *testing.T) {
	orig := estimate
	t.Cleanup(func() { estimate = orig })
	estimate = func(float64, float64) float64 { panic("boom") }

	got, err := Calculate(8500, 5)
	assert.ErrorIs(t, err, ErrCalculationFailed)
	assert.Equal(t, 0.0, got)
}
