package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Printf-style helpers over the global zerolog logger. Messages follow the
// "pkg.Type.method key=value" register used across the tree.

func Tracef(format string, args ...any) {
	log.Trace().Msgf(format, args...)
}

func Debugf(format string, args ...any) {
	log.Debug().Msgf(format, args...)
}

func Infof(format string, args ...any) {
	log.Info().Msgf(format, args...)
}

func Warnf(format string, args ...any) {
	log.Warn().Msgf(format, args...)
}

func Errf(format string, args ...any) {
	log.Error().Msgf(format, args...)
}

// With returns a child of the global logger carrying str fields in key/value
// pairs, for components that tag every line (e.g. a connection session id).
func With(kv ...string) zerolog.Logger {
	ctx := log.Logger.With()
	for i := 0; i+1 < len(kv); i += 2 {
		ctx = ctx.Str(kv[i], kv[i+1])
	}
	return ctx.Logger()
}
