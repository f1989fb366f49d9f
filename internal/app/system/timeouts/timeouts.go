// Package timeouts centralizes the context deadlines handlers use for
// database work.
//
// Guidelines:
//   - Ping: health checks and connectivity verification
//   - Short: single-document reads or lookups
//   - Medium: list queries and moderate writes
//   - Long: multi-step flows (reconcile loops, invite flows)
package timeouts

import "time"

const (
	ping   = 2 * time.Second
	short  = 5 * time.Second
	medium = 10 * time.Second
	long   = 30 * time.Second
)

// Ping returns the timeout for health checks.
func Ping() time.Duration { return ping }

// Short returns the timeout for simple lookups.
func Short() time.Duration { return short }

// Medium returns the timeout for list queries and writes.
func Medium() time.Duration { return medium }

// Long returns the timeout for multi-step operations.
func Long() time.Duration { return long }
