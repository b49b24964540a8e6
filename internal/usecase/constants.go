package usecase

import "time"

const (
	// DefaultTransactionTimeout bounds a single atomic ledger mutation so a
	// stuck operation cannot hold account row locks indefinitely.
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour
)
