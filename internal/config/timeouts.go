package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable timeout values.
// These values can be customized via environment variables.
type Timeouts struct {
	Request          time.Duration // Timeout for a single Ambari API request
	ServicePoll      time.Duration // Interval between service state polls
	ServiceWait      time.Duration // Upper bound for waiting on services start/stop
	PollMaxAttempts  int           // Maximum number of service state polls
	InventoryRequest time.Duration // Timeout for host inventory listing
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - BLUEPRINTCTL_TIMEOUT_REQUEST (default: 30s)
//   - BLUEPRINTCTL_SERVICE_POLL_INTERVAL (default: 2s)
//   - BLUEPRINTCTL_TIMEOUT_SERVICE_WAIT (default: 10m)
//   - BLUEPRINTCTL_SERVICE_POLL_MAX_ATTEMPTS (default: 300)
//   - BLUEPRINTCTL_TIMEOUT_INVENTORY (default: 30s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		Request:          parseDuration("BLUEPRINTCTL_TIMEOUT_REQUEST", 30*time.Second),
		ServicePoll:      parseDuration("BLUEPRINTCTL_SERVICE_POLL_INTERVAL", 2*time.Second),
		ServiceWait:      parseDuration("BLUEPRINTCTL_TIMEOUT_SERVICE_WAIT", 10*time.Minute),
		PollMaxAttempts:  parseInt("BLUEPRINTCTL_SERVICE_POLL_MAX_ATTEMPTS", 300),
		InventoryRequest: parseDuration("BLUEPRINTCTL_TIMEOUT_INVENTORY", 30*time.Second),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return i
}
