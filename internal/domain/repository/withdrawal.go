package repository

import (
	"context"

	"github.com/polkiloo/quizwallet/internal/domain/model"
)

// WithdrawalRepository persists withdrawal requests and their decisions.
type WithdrawalRepository interface {
	Create(ctx context.Context, userID, amount int64, destination string) (*model.Withdrawal, error)
	GetByID(ctx context.Context, id int64) (*model.Withdrawal, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Withdrawal, error)
	ListAll(ctx context.Context) ([]model.Withdrawal, error)
	// Accept moves a pending request to accepted and debits its amount from
	// the owner's wallet as one atomic step. When the debit fails the request
	// stays pending.
	Accept(ctx context.Context, id int64) (*model.Withdrawal, error)
	// Reject moves a pending request to rejected.
	Reject(ctx context.Context, id int64) (*model.Withdrawal, error)
}
