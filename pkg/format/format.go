// Package format holds small display helpers shared by formkit hosts: dates
// in the DD/MM/YYYY display layout, HH:MM times and a yes/no confirmation.
package format

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DisplayDate is the layout produced by FormatDate.
const DisplayDate = "02/01/2006"

// ErrInvalidDate is returned when FormatDate cannot read its input.
var ErrInvalidDate = errors.New("format: invalid date")

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
}

// FormatDate converts an ISO date or date-time into DD/MM/YYYY. The calendar
// date is taken as written; no timezone conversion is applied.
func FormatDate(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty value", ErrInvalidDate)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format(DisplayDate), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDate, value)
}

// FormatTime keeps the HH:MM prefix of a time string.
func FormatTime(value string) string {
	runes := []rune(value)
	if len(runes) <= 5 {
		return value
	}
	return string(runes[:5])
}
