package booking

import (
	"strings"
	"time"

	"spacebook/models"
)

func validateInterval(from, to, now time.Time) error {
	if from.IsZero() || to.IsZero() {
		return newValidationError("missingDates", "from and to date are required")
	}
	if !from.Before(to) {
		return newValidationError("invalidRange", "end time must be after start time")
	}
	if from.Before(now) {
		return newValidationError("pastDate", "cannot book for past dates")
	}
	return nil
}

func validateCreateInput(in models.CreateBookingInput) error {
	var missing []string
	required := []struct{ field, value string }{
		{"propertyId", in.PropertyID},
		{"userName", in.UserName},
		{"mobileNo", in.MobileNo},
		{"email", in.Email},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.field)
		}
	}
	if in.From.IsZero() {
		missing = append(missing, "bookforFromDateTime")
	}
	if in.To.IsZero() {
		missing = append(missing, "bookforToDateTime")
	}
	if len(missing) > 0 {
		return newValidationError("missingFields", "missing required fields: "+strings.Join(missing, ", "))
	}
	if in.TotalAmount < 0 || in.Duration < 0 || in.PropertyCost < 0 || in.MinAdvanced < 0 {
		return newValidationError("invalidAmount", "amounts and duration cannot be negative")
	}
	return nil
}

func atMidnight(t time.Time) bool {
	return t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}

func onTheHour(t time.Time) bool {
	return t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}

func lastDayOfMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// ValidateUnitBoundaries applies the per-unit length caps and alignment rules
// in loc. It expects from < to.
func ValidateUnitBoundaries(unit models.PriceUnit, from, to time.Time, loc *time.Location) error {
	if loc == nil {
		loc = time.UTC
	}
	from, to = from.In(loc), to.In(loc)
	duration := CalculateDuration(unit, from, to, loc)

	switch unit {
	case models.UnitPerMinute:
		if duration > 1440 {
			return newValidationError("durationTooLong", "maximum booking duration for per_minute unit is 24 hours")
		}
	case models.UnitPerHour:
		if duration > 24 {
			return newValidationError("durationTooLong", "maximum booking duration for per_hour unit is 24 hours")
		}
		if !onTheHour(from) || !onTheHour(to) {
			return newValidationError("hourBoundary", "hourly bookings must start and end at exact hours")
		}
	case models.UnitPerDay:
		if duration > 30 {
			return newValidationError("durationTooLong", "maximum booking duration for per_day unit is 30 days")
		}
		if !atMidnight(from) || !atMidnight(to) {
			return newValidationError("dayBoundary", "daily bookings must be for full days (start and end at midnight)")
		}
	case models.UnitPerMonth:
		if duration > 12 {
			return newValidationError("durationTooLong", "maximum booking duration for per_month unit is 12 months")
		}
		if from.Day() != 1 {
			return newValidationError("monthBoundary", "monthly bookings must start on the 1st day of the month")
		}
		if to.Day() != lastDayOfMonth(to) {
			return newValidationError("monthBoundary", "monthly bookings must end on the last day of the month")
		}
	default:
		return newValidationError("invalidUnit", "property has an unsupported pricing unit")
	}
	return nil
}
