// Package trailertypes defines the fixed trailer-type vocabulary for load and
// truck postings. Input is matched case-insensitively; the stored form is
// always upper case.
package trailertypes

import "strings"

// All lists the accepted trailer types in their stored (upper-cased) form.
var All = []string{
	"VAN",
	"REEFER",
	"FLATBED",
	"INTERMODAL",
	"TANKER",
	"HEAVY HAUL",
	"DUMPS",
	"GRAIN",
	"CAR HAULER",
	"PNEUMATIC",
	"FORESTRY",
	"LIVESTOCK",
	"LOWBOY",
	"DROPDECK",
	"DOUBLE DROP",
	"CARGO VANS",
}

var set = func() map[string]struct{} {
	m := make(map[string]struct{}, len(All))
	for _, t := range All {
		m[t] = struct{}{}
	}
	return m
}()

// Normalize returns the stored form of a trailer type: trimmed and upper-cased.
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Valid reports whether s (after normalization) is in the vocabulary.
func Valid(s string) bool {
	_, ok := set[Normalize(s)]
	return ok
}
