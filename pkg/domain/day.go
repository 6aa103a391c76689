package domain

import dErrors "classtrack/pkg/domain-errors"

// DayOfWeek is an integer in [0,6], 0 = Sunday.
type DayOfWeek int

// ParseDayOfWeek validates an externally supplied day index.
//
// Errors: returns CodeInvalidInput when out of range.
func ParseDayOfWeek(n int) (DayOfWeek, error) {
	if n < 0 || n > 6 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "dayOfWeek must be between 0 and 6")
	}
	return DayOfWeek(n), nil
}

// IsValid reports whether the day index is in range.
func (d DayOfWeek) IsValid() bool {
	return d >= 0 && d <= 6
}

func (d DayOfWeek) Int() int {
	return int(d)
}
