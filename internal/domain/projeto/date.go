package projeto

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the day-first layout operators type dates in.
const DateLayout = "02/01/2006"

// monthFirstLayout is the layout FormatDate produces.
const monthFirstLayout = "01/02/2006"

// FormatDate reorders a dd/mm/yyyy string into mm/dd/yyyy by fixed offsets.
// It reports false for empty input. No delimiter checks are made; use
// ParseDate when the input is untrusted.
func FormatDate(raw string) (string, bool) {
	if raw == "" || len(raw) < 10 {
		return "", false
	}
	day := raw[0:2]
	month := raw[3:5]
	year := raw[6:10]
	return month + "/" + day + "/" + year, true
}

// ParseDate parses a dd/mm/yyyy string. Blank input yields a nil date and
// no error. Anything that is not exactly two digits, '/', two digits, '/',
// four digits naming a real calendar day is rejected with ErrMalformedDate.
// Once the shape is checked the value is reordered with FormatDate and read
// as month-first, so both agree on every valid input. The result is
// midnight UTC.
func ParseDate(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	if len(raw) != 10 || raw[2] != '/' || raw[5] != '/' {
		return nil, fmt.Errorf("%w: %q", ErrMalformedDate, raw)
	}
	for _, part := range []string{raw[0:2], raw[3:5], raw[6:10]} {
		if !allDigits(part) {
			return nil, fmt.Errorf("%w: %q", ErrMalformedDate, raw)
		}
	}

	monthFirst, _ := FormatDate(raw)
	t, err := time.Parse(monthFirstLayout, monthFirst)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a calendar date", ErrMalformedDate, raw)
	}
	return &t, nil
}

// FormatDisplayDate renders a date back into dd/mm/yyyy, or "" when absent.
func FormatDisplayDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
