package program

import (
	"math"
	"time"
)

// BadgeVariant is the display emphasis for a payment status badge.
type BadgeVariant string

const (
	BadgeDefault   BadgeVariant = "default"
	BadgeSecondary BadgeVariant = "secondary"
	BadgeOutline   BadgeVariant = "outline"
)

// Metrics are the per-card values derived from a program at a point in time.
type Metrics struct {
	AchievementProgress int          `json:"achievement_progress"`
	TimeGoneProgress    int          `json:"time_gone_progress"`
	RemainingTarget     float64      `json:"remaining_target"`
	PaymentVariant      BadgeVariant `json:"payment_variant"`
}

// OverTarget reports whether the achievement has passed the target.
func (m Metrics) OverTarget() bool {
	return m.RemainingTarget < 0
}

// ComputeMetrics derives the display metrics of p as of now.
//
// Achievement progress is not clamped and may exceed 100. Time-gone progress
// is clamped to [0, 100]. A zero target or a same-day window yields 0 rather
// than dividing by zero.
func ComputeMetrics(p Program, now time.Time) Metrics {
	var achievement float64
	if p.Target > 0 {
		achievement = p.Achievement / p.Target * 100
	}

	totalDays := DaysBetween(p.EndDate, p.StartDate)
	daysGone := DaysBetween(now, p.StartDate)
	var timeGone float64
	if totalDays > 0 {
		timeGone = float64(daysGone) / float64(totalDays) * 100
	}
	timeGone = math.Max(0, math.Min(100, timeGone))

	return Metrics{
		AchievementProgress: int(math.Round(achievement)),
		TimeGoneProgress:    int(math.Round(timeGone)),
		RemainingTarget:     p.Target - p.Achievement,
		PaymentVariant:      PaymentVariant(p.PaymentStatus),
	}
}

// DaysBetween returns the number of calendar days from earlier to later. Each
// time is reduced to its date in its own location first, so a local clock
// compares against stored dates the way a wall calendar would. It is negative
// when later is before earlier.
func DaysBetween(later, earlier time.Time) int {
	return int(calendarDate(later).Sub(calendarDate(earlier)) / (24 * time.Hour))
}

func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// PaymentVariant maps a payment status to its badge emphasis.
func PaymentVariant(ps PaymentStatus) BadgeVariant {
	switch ps {
	case PaymentPaid:
		return BadgeDefault
	case PaymentPartial:
		return BadgeSecondary
	default:
		return BadgeOutline
	}
}
