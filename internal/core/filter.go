package core

import (
	"fmt"
	"strings"
)

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthNames returns the twelve month names accepted by FilterByMonthYear.
func MonthNames() []string {
	return append([]string(nil), monthNames[:]...)
}

// MonthNumber maps an English month name to 1-12.
func MonthNumber(name string) (int, bool) {
	name = strings.TrimSpace(name)
	for i, m := range monthNames {
		if strings.EqualFold(m, name) {
			return i + 1, true
		}
	}
	return 0, false
}

// MonthKey builds the "{year}-{MM}" token searched for in descriptions.
func MonthKey(month, year string) (string, error) {
	n, ok := MonthNumber(month)
	if !ok {
		return "", fmt.Errorf("%w: unknown month %q", ErrInvalidSelection, month)
	}
	year = strings.TrimSpace(year)
	if !isYear(year) {
		return "", fmt.Errorf("%w: year %q must have four digits", ErrInvalidSelection, year)
	}
	return fmt.Sprintf("%s-%02d", year, n), nil
}

// FilterByMonthYear keeps the records whose description contains
// "{year}-{MM}" anywhere. Descriptions are not parsed as dates.
func FilterByMonthYear(records []Transaction, month, year string) ([]Transaction, error) {
	key, err := MonthKey(month, year)
	if err != nil {
		return nil, err
	}
	out := make([]Transaction, 0, len(records))
	for _, r := range records {
		if strings.Contains(r.Description, key) {
			out = append(out, r)
		}
	}
	return out, nil
}

func isYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
