package booking

import (
	"fmt"
	"math"
	"time"

	"spacebook/models"
)

// CalculateDuration returns how many whole units the interval [from, to) spans,
// rounded up and never below one. Day and month steps follow the calendar in
// loc, so a day across a DST change and a month of any length both count as one.
// Unknown units yield 0.
func CalculateDuration(unit models.PriceUnit, from, to time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.UTC
	}
	from, to = from.In(loc), to.In(loc)

	switch unit {
	case models.UnitPerMinute:
		return fixedSteps(to.Sub(from), time.Minute)
	case models.UnitPerHour:
		return fixedSteps(to.Sub(from), time.Hour)
	case models.UnitPerDay:
		guess := int(to.Sub(from) / (24 * time.Hour))
		return calendarSteps(from, to, guess, func(t time.Time, n int) time.Time {
			return t.AddDate(0, 0, n)
		})
	case models.UnitPerMonth:
		guess := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
		return calendarSteps(from, to, guess, func(t time.Time, n int) time.Time {
			return t.AddDate(0, n, 0)
		})
	}
	return 0
}

func fixedSteps(elapsed, step time.Duration) int {
	n := int(math.Ceil(float64(elapsed) / float64(step)))
	if n < 1 {
		return 1
	}
	return n
}

// calendarSteps finds the smallest n >= 1 with add(from, n) >= to, starting near guess.
func calendarSteps(from, to time.Time, guess int, add func(time.Time, int) time.Time) int {
	n := guess
	if n < 1 {
		n = 1
	}
	for n > 1 && !add(from, n-1).Before(to) {
		n--
	}
	for add(from, n).Before(to) {
		n++
	}
	return n
}

// DurationText renders a duration as "1 hour", "3 days".
func DurationText(unit models.PriceUnit, n int) string {
	noun := unit.Noun()
	if n != 1 {
		noun += "s"
	}
	return fmt.Sprintf("%d %s", n, noun)
}

// CalculatePrice prices [from, to) against the property tariff. The discount is
// a flat amount and the total never drops below zero.
func CalculatePrice(property *models.Property, from, to time.Time, loc *time.Location) models.PriceQuote {
	duration := CalculateDuration(property.Unit, from, to, loc)
	base := property.Price * float64(duration)
	total := base - property.DiscountAmount
	if total < 0 {
		total = 0
	}
	return models.PriceQuote{
		Duration:     duration,
		DurationText: DurationText(property.Unit, duration),
		BaseAmount:   base,
		Discount:     property.DiscountAmount,
		TotalAmount:  total,
	}
}
