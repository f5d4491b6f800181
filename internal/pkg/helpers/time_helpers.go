package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses a duration string from configuration, falling back to
// the given default when the value does not parse.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		// The global logger is used here because configuration values are
		// parsed before the application logger is wired up.
		log.Warn().Err(err).Str("duration", durationStr).Dur("default", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}
