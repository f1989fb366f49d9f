// Package loadnum generates and validates load numbers in the
// LN-<6 digits>-<4 digits> format: the last six digits of the current Unix
// millisecond timestamp plus a random four-digit suffix.
package loadnum

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"time"
)

var (
	pattern      = regexp.MustCompile(`^LN-\d{6}-\d{4}$`)
	truckPattern = regexp.MustCompile(`^TN-\d{6}-\d{4}$`)
)

// Generate returns a new load number. Collisions within the same
// millisecond are still possible but overwhelmingly unlikely.
func Generate() string {
	return generateAt("LN", time.Now())
}

// GenerateTruck returns a new truck number in the same shape with a TN
// prefix.
func GenerateTruck() string {
	return generateAt("TN", time.Now())
}

func generateAt(prefix string, now time.Time) string {
	ms := now.UnixMilli() % 1_000_000
	n, err := rand.Int(rand.Reader, big.NewInt(10_000))
	suffix := int64(0)
	if err == nil {
		suffix = n.Int64()
	}
	return fmt.Sprintf("%s-%06d-%04d", prefix, ms, suffix)
}

// Valid reports whether s matches the LN-<6 digits>-<4 digits> format.
func Valid(s string) bool {
	return pattern.MatchString(s)
}

// ValidTruck reports whether s matches the TN-<6 digits>-<4 digits> format.
func ValidTruck(s string) bool {
	return truckPattern.MatchString(s)
}
