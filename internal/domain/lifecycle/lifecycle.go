// Package lifecycle holds shared start/stop constants.
package lifecycle

import "time"

// DefaultTimeout bounds lifecycle hooks such as pinging the database or draining the HTTP server.
const DefaultTimeout = 10 * time.Second
