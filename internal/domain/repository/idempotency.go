package repository

import "context"

// IdempotencyStore remembers results of requests identified by a client key.
type IdempotencyStore interface {
	// Begin reserves key. It returns the stored result when the key has
	// already completed and ErrDuplicateRequest while it is still in flight.
	Begin(ctx context.Context, key string) (*int64, error)
	Complete(ctx context.Context, key string, result int64) error
	Abort(ctx context.Context, key string) error
}
