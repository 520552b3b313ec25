package booking

import (
	"testing"
	"time"

	"spacebook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateDuration(t *testing.T) {
	at := func(y int, m time.Month, d, h, min, s int) time.Time {
		return time.Date(y, m, d, h, min, s, 0, time.UTC)
	}

	tests := []struct {
		name string
		unit models.PriceUnit
		from time.Time
		to   time.Time
		want int
	}{
		{"exact hours", models.UnitPerHour, at(2030, 1, 1, 9, 0, 0), at(2030, 1, 1, 11, 0, 0), 2},
		{"partial hour rounds up", models.UnitPerHour, at(2030, 1, 1, 9, 0, 0), at(2030, 1, 1, 10, 30, 0), 2},
		{"one second is one minute", models.UnitPerMinute, at(2030, 1, 1, 9, 0, 0), at(2030, 1, 1, 9, 0, 1), 1},
		{"ninety minutes", models.UnitPerMinute, at(2030, 1, 1, 9, 0, 0), at(2030, 1, 1, 10, 30, 0), 90},
		{"one day", models.UnitPerDay, at(2030, 1, 1, 0, 0, 0), at(2030, 1, 2, 0, 0, 0), 1},
		{"partial day rounds up", models.UnitPerDay, at(2030, 1, 1, 0, 0, 0), at(2030, 1, 2, 1, 0, 0), 2},
		{"february is one month", models.UnitPerMonth, at(2030, 2, 1, 0, 0, 0), at(2030, 3, 1, 0, 0, 0), 1},
		{"month ending on last day", models.UnitPerMonth, at(2030, 1, 1, 0, 0, 0), at(2030, 1, 31, 0, 0, 0), 1},
		{"quarter", models.UnitPerMonth, at(2030, 1, 1, 0, 0, 0), at(2030, 3, 31, 0, 0, 0), 3},
		{"unknown unit", models.PriceUnit("per_week"), at(2030, 1, 1, 0, 0, 0), at(2030, 1, 8, 0, 0, 0), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateDuration(tt.unit, tt.from, tt.to, time.UTC))
		})
	}
}

func TestCalculateDurationFollowsLocalCalendar(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2030-03-10 is a 23 hour day in New York.
	from := time.Date(2030, 3, 10, 0, 0, 0, 0, ny)
	to := time.Date(2030, 3, 11, 0, 0, 0, 0, ny)
	assert.Equal(t, 1, CalculateDuration(models.UnitPerDay, from, to, ny))
	assert.Equal(t, 23, CalculateDuration(models.UnitPerHour, from, to, ny))
}

func TestCalculatePrice(t *testing.T) {
	from := time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)
	p := &models.Property{Unit: models.UnitPerHour, Price: 100, DiscountAmount: 30}

	quote := CalculatePrice(p, from, from.Add(3*time.Hour), time.UTC)
	assert.Equal(t, 3, quote.Duration)
	assert.Equal(t, "3 hours", quote.DurationText)
	assert.Equal(t, 300.0, quote.BaseAmount)
	assert.Equal(t, 30.0, quote.Discount)
	assert.Equal(t, 270.0, quote.TotalAmount)

	p.DiscountAmount = 1000
	assert.Equal(t, 0.0, CalculatePrice(p, from, from.Add(time.Hour), time.UTC).TotalAmount)
}

func TestDurationText(t *testing.T) {
	assert.Equal(t, "1 hour", DurationText(models.UnitPerHour, 1))
	assert.Equal(t, "3 days", DurationText(models.UnitPerDay, 3))
	assert.Equal(t, "12 months", DurationText(models.UnitPerMonth, 12))
}
