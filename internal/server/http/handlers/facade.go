package handlers

import (
	"context"

	"github.com/polkiloo/quizwallet/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password, referralCode string) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (model.Identity, error)
}

// WalletFacade exposes ledger operations.
type WalletFacade interface {
	Balance(ctx context.Context, actor model.Identity, userID int64) (int64, error)
	Purchase(ctx context.Context, actor model.Identity, amount int64) (int64, error)
	DeductForQuiz(ctx context.Context, actor model.Identity, amount int64, quizRef, idempotencyKey string) (int64, error)
	History(ctx context.Context, actor model.Identity) ([]model.LedgerEntry, error)
}

// WithdrawalFacade exposes the withdrawal workflow.
type WithdrawalFacade interface {
	RequestWithdrawal(ctx context.Context, actor model.Identity, amount int64, destination string) (*model.Withdrawal, error)
	MyWithdrawals(ctx context.Context, actor model.Identity) ([]model.Withdrawal, error)
	AllWithdrawals(ctx context.Context, actor model.Identity) ([]model.WithdrawalView, error)
	GetWithdrawal(ctx context.Context, actor model.Identity, id int64) (*model.WithdrawalView, error)
	AcceptWithdrawal(ctx context.Context, actor model.Identity, id int64) (*model.Withdrawal, error)
	RejectWithdrawal(ctx context.Context, actor model.Identity, id int64) (*model.Withdrawal, error)
}

// PaymentFacade exposes payment receipts.
type PaymentFacade interface {
	InitiatePayment(ctx context.Context, actor model.Identity, amount int64) (*model.Transaction, error)
	ConfirmPayment(ctx context.Context, externalID string, status model.PaymentStatus) (*model.Transaction, bool, error)
	Payments(ctx context.Context, actor model.Identity) ([]model.Transaction, error)
}

// HealthFacade reports readiness.
type HealthFacade interface {
	HealthCheck(ctx context.Context) error
}

// QuizWalletFacade aggregates the full set of operations used across handlers.
type QuizWalletFacade interface {
	AuthFacade
	WalletFacade
	WithdrawalFacade
	PaymentFacade
	HealthFacade
}
