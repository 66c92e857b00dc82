package observability

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// UnmatchedRoute labels requests that hit no registered route, so scans of
// random paths cannot grow the metric label set.
const UnmatchedRoute = "unmatched"

// Instrument logs and counts every status request for one bot session.
// Requests to quiet routes (scrapes, liveness checks) log at debug.
func Instrument(logger zerolog.Logger, botID string, quiet ...string) gin.HandlerFunc {
	hush := make(map[string]bool, len(quiet))
	for _, r := range quiet {
		hush[r] = true
	}
	logger = logger.With().Str("bot", botID).Logger()

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = UnmatchedRoute
		}
		status := c.Writer.Status()
		elapsed := time.Since(start)
		RecordHTTPRequest(botID, c.Request.Method, route, status, elapsed)

		var event *zerolog.Event
		switch {
		case status >= 500:
			event = logger.Error()
		case status >= 400:
			event = logger.Warn()
		case hush[route]:
			event = logger.Debug()
		default:
			event = logger.Info()
		}
		event.
			Str("method", c.Request.Method).
			Str("route", route).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("duration", elapsed).
			Int("bytes", c.Writer.Size()).
			Msg("status_request")
	}
}
