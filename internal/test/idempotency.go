package test

import (
	"context"
	"sync"

	domainErrors "github.com/polkiloo/quizwallet/internal/domain/errors"
)

// IdempotencyStoreStub keeps reservations in memory with the same semantics
// as the Redis store.
type IdempotencyStoreStub struct {
	mu      sync.Mutex
	pending map[string]bool
	results map[string]int64

	BeginErr    error
	CompleteErr error
}

// NewIdempotencyStoreStub constructs an empty store.
func NewIdempotencyStoreStub() *IdempotencyStoreStub {
	return &IdempotencyStoreStub{pending: make(map[string]bool), results: make(map[string]int64)}
}

func (s *IdempotencyStoreStub) Begin(ctx context.Context, key string) (*int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.BeginErr != nil {
		return nil, s.BeginErr
	}
	if result, ok := s.results[key]; ok {
		return &result, nil
	}
	if s.pending[key] {
		return nil, domainErrors.ErrDuplicateRequest
	}
	s.pending[key] = true
	return nil, nil
}

func (s *IdempotencyStoreStub) Complete(ctx context.Context, key string, result int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.CompleteErr != nil {
		return s.CompleteErr
	}
	delete(s.pending, key)
	s.results[key] = result
	return nil
}

func (s *IdempotencyStoreStub) Abort(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, key)
	return nil
}

// Pending reports whether key is reserved but not completed.
func (s *IdempotencyStoreStub) Pending(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending[key]
}
