// Package normalize holds the canonical forms for loosely typed string
// fields. Handlers and stores normalize at the boundary so comparisons
// elsewhere can be plain ==.
package normalize

import "strings"

// Email lower-cases and trims an email address. Natural-key lookups against
// the firms and users collections use this form first; the raw-cased form is
// only a fallback for older records.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a display name, preserving case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role canonicalizes a directory role to its stored form (Admin, Regular).
// Unknown roles come back title-cased as typed so they surface in the UI
// rather than silently matching.
func Role(s string) string {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "admin":
		return "Admin"
	case "regular", "":
		return "Regular"
	}
	return s
}

// FirmType canonicalizes a firm type to its stored form.
func FirmType(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "carrier":
		return "Carrier"
	case "shipper":
		return "Shipper"
	case "broker":
		return "Broker"
	case "other":
		return "Other"
	}
	return strings.TrimSpace(s)
}

// Frequency lower-cases a posting frequency.
func Frequency(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Status lower-cases an account status.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
