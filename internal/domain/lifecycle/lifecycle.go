// Package lifecycle holds values shared by start and stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds start-up pings and graceful shutdown.
const DefaultTimeout = 10 * time.Second
