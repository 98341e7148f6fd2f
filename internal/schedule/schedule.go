// Package schedule computes vaccination due dates from a child's date of birth.
package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"health-assistant/internal/domain"
)

// daysPerMonth approximates a month offset. Due dates for month-based entries
// are dob + months*30 days, not calendar-month arithmetic.
const daysPerMonth = 30

// ErrInvalidDate is returned when the input cannot be resolved to a real
// calendar date.
var ErrInvalidDate = errors.New("schedule: invalid date")

// dateLayouts are tried in order; day-first forms come before ISO.
var dateLayouts = []string{
	"02-01-2006",
	"2-1-2006",
	"02/01/2006",
	"2/1/2006",
	"02.01.2006",
	"2.1.2006",
	"2006-01-02",
	"2 January 2006",
	"2 Jan 2006",
	"January 2 2006",
	"Jan 2 2006",
}

// ParseDate parses a date of birth. Impossible dates such as 31-04-2024 are
// rejected.
func ParseDate(s string) (time.Time, error) {
	normalized := normalizeDate(s)
	if normalized == "" {
		return time.Time{}, fmt.Errorf("%w: empty input", ErrInvalidDate)
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, normalized)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

func normalizeDate(s string) string {
	s = strings.ReplaceAll(s, ",", " ")
	fields := strings.Fields(s)
	for i, f := range fields {
		// "june" -> "June" so month names match regardless of case.
		if f != "" && f[0] >= 'a' && f[0] <= 'z' {
			fields[i] = strings.ToUpper(f[:1]) + strings.ToLower(f[1:])
		} else if len(f) > 1 {
			fields[i] = f[:1] + strings.ToLower(f[1:])
		}
	}
	return strings.Join(fields, " ")
}

// Compute returns one entry per catalog row, in catalog order.
func Compute(dob time.Time, catalog []domain.VaccineEntry) []domain.ScheduleEntry {
	out := make([]domain.ScheduleEntry, 0, len(catalog))
	for _, v := range catalog {
		out = append(out, domain.ScheduleEntry{
			Vaccine:  v.Name,
			DueDate:  DueDate(dob, v),
			DueLabel: v.DueLabel,
		})
	}
	return out
}

// DueDate applies a single catalog entry's offset to dob.
func DueDate(dob time.Time, v domain.VaccineEntry) time.Time {
	switch {
	case v.DueWeeks != nil:
		weeks := *v.DueWeeks
		return dob.AddDate(0, 0, 7*weeks)
	case v.DueMonths != nil:
		months := *v.DueMonths
		return dob.AddDate(0, 0, daysPerMonth*months)
	default:
		return dob
	}
}
