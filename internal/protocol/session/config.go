package session

import (
	"fmt"
	"time"

	"github.com/danmuck/mirbot/internal/protocol/frame"
)

// BackoffConfig defines dial retry backoff behavior.
type BackoffConfig struct {
	InitialDelay time.Duration
	Multiplier   float64
	MaxDelay     time.Duration
	Jitter       bool
}

// Config defines transport timing for one game session.
type Config struct {
	ConnectTimeout     time.Duration
	WriteTimeout       time.Duration
	KeepAliveInterval  time.Duration
	ShutdownTimeout    time.Duration
	MaxConnectAttempts int
	MaxPayloadBytes    int
	Backoff            BackoffConfig
}

// DefaultConfig returns the timings the game server expects from a client.
func DefaultConfig() Config {
	return Config{
		ConnectTimeout:     5 * time.Second,
		WriteTimeout:       10 * time.Second,
		KeepAliveInterval:  5 * time.Second,
		ShutdownTimeout:    2 * time.Second,
		MaxConnectAttempts: 1,
		MaxPayloadBytes:    frame.MaxTotalLen - frame.HeaderLen,
		Backoff: BackoffConfig{
			InitialDelay: 250 * time.Millisecond,
			Multiplier:   2.0,
			MaxDelay:     5 * time.Second,
			Jitter:       true,
		},
	}
}

// WithDefaults fills zero fields from DefaultConfig.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = d.ConnectTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.KeepAliveInterval <= 0 {
		c.KeepAliveInterval = d.KeepAliveInterval
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}
	if c.MaxConnectAttempts <= 0 {
		c.MaxConnectAttempts = d.MaxConnectAttempts
	}
	if c.MaxPayloadBytes <= 0 {
		c.MaxPayloadBytes = d.MaxPayloadBytes
	}
	if c.Backoff.InitialDelay <= 0 {
		c.Backoff = d.Backoff
	}
	return c
}

// Validate rejects timings that cannot work on the wire.
func (c Config) Validate() error {
	if c.MaxPayloadBytes > frame.MaxTotalLen-frame.HeaderLen {
		return fmt.Errorf("session: max_payload_bytes %d exceeds frame limit %d", c.MaxPayloadBytes, frame.MaxTotalLen-frame.HeaderLen)
	}
	if c.Backoff.Multiplier != 0 && c.Backoff.Multiplier < 1 {
		return fmt.Errorf("session: backoff multiplier %.2f below 1", c.Backoff.Multiplier)
	}
	return nil
}
