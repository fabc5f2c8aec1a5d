// Package lifecycle holds shared constants for process startup and shutdown.
package lifecycle

import "time"

// DefaultTimeout bounds graceful start/stop operations such as DB pings and
// HTTP server shutdown.
const DefaultTimeout = 10 * time.Second
