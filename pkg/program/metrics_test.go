package program

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAchievementProgress(t *testing.T) {
	tests := []struct {
		name        string
		target      float64
		achievement float64
		want        int
	}{
		{"scenario", 10000, 8500, 85},
		{"zero target", 0, 8500, 0},
		{"zero target zero achievement", 0, 0, 0},
		{"over target is not clamped", 100, 150, 150},
		{"rounds to nearest", 3, 1, 33},
		{"rounds half up", 8, 1, 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := sampleProgram("Acme")
			p.Target = tt.target
			p.Achievement = tt.achievement
			m := ComputeMetrics(p, day(2024, 2, 1))
			assert.Equal(t, tt.want, m.AchievementProgress)
		})
	}
}

func TestTimeGoneProgress(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		now   time.Time
		want  int
	}{
		{"halfway", day(2024, 1, 1), day(2024, 1, 11), day(2024, 1, 6), 50},
		{"partial day truncates", day(2024, 1, 1), day(2024, 1, 11), day(2024, 1, 6).Add(20 * time.Hour), 50},
		{"before start clamps to zero", day(2024, 1, 1), day(2024, 1, 11), day(2023, 12, 1), 0},
		{"after end clamps to hundred", day(2024, 1, 1), day(2024, 1, 11), day(2024, 6, 1), 100},
		{"same day window", day(2024, 1, 1), day(2024, 1, 1), day(2024, 1, 1), 0},
		{"inverted window", day(2024, 1, 11), day(2024, 1, 1), day(2024, 1, 6), 0},
		{"rounds", day(2024, 1, 1), day(2024, 1, 4), day(2024, 1, 2), 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := sampleProgram("Acme")
			p.StartDate = tt.start
			p.EndDate = tt.end
			m := ComputeMetrics(p, tt.now)
			assert.Equal(t, tt.want, m.TimeGoneProgress)
			assert.GreaterOrEqual(t, m.TimeGoneProgress, 0)
			assert.LessOrEqual(t, m.TimeGoneProgress, 100)
		})
	}
}

func TestRemainingTarget(t *testing.T) {
	p := sampleProgram("Acme")
	m := ComputeMetrics(p, day(2024, 2, 1))
	assert.Equal(t, 1500.0, m.RemainingTarget)
	assert.False(t, m.OverTarget())

	p.Achievement = 12500
	m = ComputeMetrics(p, day(2024, 2, 1))
	assert.Equal(t, -2500.0, m.RemainingTarget)
	assert.True(t, m.OverTarget())
}

func TestPaymentVariant(t *testing.T) {
	assert.Equal(t, BadgeDefault, PaymentVariant(PaymentPaid))
	assert.Equal(t, BadgeSecondary, PaymentVariant(PaymentPartial))
	assert.Equal(t, BadgeOutline, PaymentVariant(PaymentUnpaid))
	assert.Equal(t, BadgeOutline, PaymentVariant("bogus"))

	p := sampleProgram("Acme")
	p.PaymentStatus = PaymentPaid
	assert.Equal(t, BadgeDefault, ComputeMetrics(p, day(2024, 2, 1)).PaymentVariant)
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 10, DaysBetween(day(2024, 1, 11), day(2024, 1, 1)))
	assert.Equal(t, -10, DaysBetween(day(2024, 1, 1), day(2024, 1, 11)))
	assert.Equal(t, 0, DaysBetween(day(2024, 1, 1).Add(23*time.Hour), day(2024, 1, 1)))
	// Leap day counted
	assert.Equal(t, 29, DaysBetween(day(2024, 3, 1), day(2024, 2, 1)))
}

func TestDaysBetweenUsesLocalCalendarDate(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	newYork := time.FixedZone("EST", -5*60*60)

	// 06:00 in Jakarta is still the previous day in UTC
	assert.Equal(t, 5, DaysBetween(time.Date(2024, 1, 6, 6, 0, 0, 0, jakarta), day(2024, 1, 1)))
	// 22:00 in New York is already the next day in UTC
	assert.Equal(t, 5, DaysBetween(time.Date(2024, 1, 6, 22, 0, 0, 0, newYork), day(2024, 1, 1)))
	assert.Equal(t, 0, DaysBetween(time.Date(2024, 1, 1, 0, 30, 0, 0, jakarta), day(2024, 1, 1)))
}

func TestTimeGoneProgressWithLocalClock(t *testing.T) {
	p := sampleProgram("Acme")
	p.StartDate = day(2024, 1, 1)
	p.EndDate = day(2024, 1, 11)

	for _, hour := range []int{0, 6, 12, 23} {
		now := time.Date(2024, 1, 6, hour, 0, 0, 0, time.FixedZone("WIB", 7*60*60))
		assert.Equal(t, 50, ComputeMetrics(p, now).TimeGoneProgress, "hour %d", hour)
	}
}
