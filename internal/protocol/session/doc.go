// Package session holds transport timing for a game session: dial and write
// timeouts, the keepalive cadence, shutdown bounds and dial retry backoff.
package session
