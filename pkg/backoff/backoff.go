// Package backoff provides the retry schedules used when a gRPC-backed
// collaborator hits a transient failure: the royalty registry client and the
// CLI's order-book query retry through it; the other capability adapters do
// not retry.
package backoff

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

var globalBackoffOptions = []backoff.ExponentialBackOffOpts{
	func(b *backoff.ExponentialBackOff) {
		b.InitialInterval = 1 * time.Second
	},
	func(b *backoff.ExponentialBackOff) {
		b.MaxInterval = 32 * time.Second
	},
	func(b *backoff.ExponentialBackOff) {
		b.Multiplier = 2
	},
	func(b *backoff.ExponentialBackOff) {
		b.MaxElapsedTime = 60 * time.Second
	},
}

var lightningBackoffOptions = []backoff.ExponentialBackOffOpts{
	func(b *backoff.ExponentialBackOff) {
		b.InitialInterval = 1 * time.Second
	},
	func(b *backoff.ExponentialBackOff) {
		b.MaxElapsedTime = 2 * time.Second
	},
}

// NewBackoff returns the standard retry schedule for capability calls that
// can tolerate a minute of retrying (the royalty registry client).
func NewBackoff(_ context.Context) *backoff.ExponentialBackOff {
	return backoff.NewExponentialBackOff(globalBackoffOptions...)
}

// NewLightningBackoff returns a short retry schedule for calls on the
// router's hot path, where a swap has a deadline and cannot afford a minute
// of retrying.
func NewLightningBackoff(_ context.Context) *backoff.ExponentialBackOff {
	return backoff.NewExponentialBackOff(lightningBackoffOptions...)
}
