package repository

import (
	"context"

	"github.com/polkiloo/quizwallet/internal/domain/model"
)

// WalletRepository applies atomic balance changes and keeps their ledger.
//
// Credit and Debit return the balance after the change. Debit never lets a
// balance drop below zero and reports ErrInsufficientFunds instead.
type WalletRepository interface {
	Balance(ctx context.Context, userID int64) (int64, error)
	Credit(ctx context.Context, movement model.Movement) (int64, error)
	Debit(ctx context.Context, movement model.Movement) (int64, error)
	History(ctx context.Context, userID int64) ([]model.LedgerEntry, error)
}
