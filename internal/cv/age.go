package cv

import (
	"strings"
	"time"
)

// DateLayout is the layout of every date field of the record (HTML date input value).
const DateLayout = "2006-01-02"

// MonthLayout is how dates are shown on the preview.
const MonthLayout = "Jan 2006"

// Age returns the completed years between dateOfBirth and now.
// A blank, unparsable, or future date yields 0.
func Age(dateOfBirth string, now time.Time) int {
	dob, err := time.Parse(DateLayout, strings.TrimSpace(dateOfBirth))
	if err != nil {
		return 0
	}
	years := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// FormatMonth renders a record date as "Jan 2006". Unparsable input is returned unchanged.
func FormatMonth(value string) string {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return value
	}
	return t.Format(MonthLayout)
}
