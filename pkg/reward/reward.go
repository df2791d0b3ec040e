// Package reward estimates the payout of a program from its achievement.
package reward

import (
	"errors"
	"fmt"
	"math"
)

// ErrCalculationFailed is returned when the estimate could not be computed.
var ErrCalculationFailed = errors.New("failed to calculate reward")

// Estimate returns achievement * ratio, where ratio is already normalised to
// 0-1. Negative, NaN or infinite inputs yield 0. The result is not rounded.
func Estimate(achievement, ratio float64) float64 {
	if invalid(achievement) || invalid(ratio) {
		return 0
	}
	return achievement * ratio
}

// Calculate estimates the reward for a percentage on the 0-100 scale, the
// way the program form enters it. Invalid input short-circuits to 0.
func Calculate(achievement, percent float64) (estimated float64, err error) {
	if invalid(achievement) || invalid(percent) {
		return 0, nil
	}

	defer func() {
		if r := recover(); r != nil {
			estimated = 0
			err = fmt.Errorf("%w: %v", ErrCalculationFailed, r)
		}
	}()
	return estimate(achievement, percent/100), nil
}

// estimate is swapped in tests to exercise the failure path.
var estimate = Estimate

func invalid(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0) || v < 0
}
