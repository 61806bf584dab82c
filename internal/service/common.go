package service

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-date key format used everywhere a date is
// stored or compared.
const DateLayout = "2006-01-02"

func Today() string {
	return time.Now().Format(DateLayout)
}

func validateDate(date string) error {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(date), time.Local)
	if err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}
	if t.Format(DateLayout) != strings.TrimSpace(date) {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}
	return nil
}

func validateNonNegativeFloat(name string, value float64) error {
	if value < 0 {
		return fmt.Errorf("%s must be >= 0", name)
	}
	return nil
}
