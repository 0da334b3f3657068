// Package timeouts provides centralized timeout values for handler
// operations. Every handler wraps its database work in
// context.WithTimeout with one of these values so budgets stay
// consistent across the app.
//
// Guidelines:
//   - Ping: health checks and connectivity verification
//   - Short: single-document reads or lookups
//   - Medium: list queries and single-aggregate writes
//   - Long: operations touching multiple collections
package timeouts

import (
	"sync"
	"time"
)

const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
	DefaultLong   = 30 * time.Second
)

var mu sync.RWMutex

var (
	ping   = DefaultPing
	short  = DefaultShort
	medium = DefaultMedium
	long   = DefaultLong
)

// Configure overrides the defaults at startup. Zero values keep the
// current setting.
func Configure(pingT, shortT, mediumT, longT time.Duration) {
	mu.Lock()
	defer mu.Unlock()
	if pingT > 0 {
		ping = pingT
	}
	if shortT > 0 {
		short = shortT
	}
	if mediumT > 0 {
		medium = mediumT
	}
	if longT > 0 {
		long = longT
	}
}

// Ping returns the timeout for health checks.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Short returns the timeout for single-document lookups.
func Short() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return short
}

// Medium returns the timeout for list queries and aggregate writes.
func Medium() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return medium
}

// Long returns the timeout for multi-collection operations.
func Long() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return long
}
