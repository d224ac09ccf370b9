package helpers

import (
	"time"

	"github.com/unilink/unilink/internal/pkg/logger"
)

// ParseDuration parses a duration string, falling back to a default when
// the value is missing or malformed
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	if durationStr == "" {
		return defaultDuration
	}

	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		logger.Warn().
			Str("value", durationStr).
			Dur("default", defaultDuration).
			Msg("Invalid duration, using default")
		return defaultDuration
	}

	return duration
}
