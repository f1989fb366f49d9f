// Package inputval validates user-submitted field values before any store
// call is made. Validation failures are reported as plain strings; callers
// collect them and block submission with a single concatenated message.
package inputval

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// MaxMiles is the upper sanity bound for a load's mileage.
	MaxMiles = 2_000_000
	// MaxRate is the upper sanity bound for a load's rate.
	MaxRate = 10_000_000
	// MinYear and MaxYear bound acceptable posting dates.
	MinYear = 1900
	MaxYear = 2100
)

var (
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9_%+\-]+(\.[a-zA-Z0-9_%+\-]+)*@[a-zA-Z0-9\-]+(\.[a-zA-Z0-9\-]+)*$`)
	dateRe  = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	zipRe   = regexp.MustCompile(`^\d{5}(\d{4})?$`)
)

// IsValidEmail reports whether s looks like a deliverable address. Leading or
// trailing dots and consecutive dots are rejected; display-name forms
// ("Name <a@b>") are not accepted.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 254 {
		return false
	}
	return emailRe.MatchString(s)
}

// IsValidZip accepts 5-digit ZIP or 9-digit ZIP+4 without a hyphen.
func IsValidZip(s string) bool {
	return zipRe.MatchString(strings.TrimSpace(s))
}

// ParseDate validates a YYYY-MM-DD value with the year bounded to
// [1900, 2100]. It returns the parsed time and a human-readable problem
// description ("" when valid). The label names the field in messages.
func ParseDate(label, s string) (time.Time, string) {
	s = strings.TrimSpace(s)
	m := dateRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, label + " must be in YYYY-MM-DD format."
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	if year < MinYear || year > MaxYear {
		return time.Time{}, fmt.Sprintf("%s year must be between %d and %d.", label, MinYear, MaxYear)
	}
	if month < 1 || month > 12 {
		return time.Time{}, label + " month must be 01-12."
	}
	if day < 1 || day > 31 {
		return time.Time{}, label + " day must be 01-31."
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, label + " is invalid."
	}
	return t, ""
}

// ParseMiles validates an optional miles value. Empty input is zero.
func ParseMiles(s string) (int, string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ""
	}
	mi, err := strconv.Atoi(s)
	if err != nil || mi < 0 {
		return 0, "Miles must be a non-negative integer."
	}
	if mi > MaxMiles {
		return 0, fmt.Sprintf("Miles seems too large (> %d).", MaxMiles)
	}
	return mi, ""
}

// ParseRate validates an optional rate value. Empty input is zero.
func ParseRate(s string) (float64, string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ""
	}
	r, err := strconv.ParseFloat(s, 64)
	if err != nil || r < 0 {
		return 0, "Rate must be a non-negative number."
	}
	if r > MaxRate {
		return 0, "Rate seems too large."
	}
	return r, ""
}
