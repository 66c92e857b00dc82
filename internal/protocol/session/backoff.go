package session

import (
	"context"
	"math/rand"
	"time"
)

// Delay is the pause after the given failed dial (1-based). Jitter only
// stretches the delay, up to half again, and MaxDelay caps the result.
func (b BackoffConfig) Delay(failed int, rng *rand.Rand) time.Duration {
	if b.InitialDelay <= 0 || failed < 1 {
		return 0
	}
	mult := b.Multiplier
	if mult < 1 {
		mult = 1
	}
	delay := float64(b.InitialDelay)
	for i := 1; i < failed; i++ {
		delay *= mult
		if b.MaxDelay > 0 && delay >= float64(b.MaxDelay) {
			break
		}
	}
	if b.Jitter && rng != nil {
		delay += delay * 0.5 * rng.Float64()
	}
	if b.MaxDelay > 0 && delay > float64(b.MaxDelay) {
		delay = float64(b.MaxDelay)
	}
	return time.Duration(delay)
}

// Sleep waits d or until ctx ends.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
