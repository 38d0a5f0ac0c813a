package app

import (
	"context"

	"github.com/polkiloo/quizwallet/internal/domain/model"
	"github.com/polkiloo/quizwallet/internal/usecase"
)

// GatewayClient reports payment state as known by the external gateway.
type GatewayClient interface {
	PaymentStatus(ctx context.Context, externalID string) (*model.GatewayPayment, error)
}

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// QuizWalletFacade joins the use cases behind the interfaces the HTTP layer
// and the reconciler consume.
type QuizWalletFacade struct {
	auth        *usecase.AuthUseCase
	wallet      *usecase.WalletUseCase
	withdrawals *usecase.WithdrawalUseCase
	payments    *usecase.PaymentUseCase
	gateway     GatewayClient
	health      HealthChecker
}

func NewQuizWalletFacade(
	auth *usecase.AuthUseCase,
	wallet *usecase.WalletUseCase,
	withdrawals *usecase.WithdrawalUseCase,
	payments *usecase.PaymentUseCase,
	gateway GatewayClient,
	health HealthChecker,
) *QuizWalletFacade {
	return &QuizWalletFacade{
		auth:        auth,
		wallet:      wallet,
		withdrawals: withdrawals,
		payments:    payments,
		gateway:     gateway,
		health:      health,
	}
}

func (f *QuizWalletFacade) Register(ctx context.Context, login, password, referralCode string) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password, referralCode)
	return token, err
}

func (f *QuizWalletFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *QuizWalletFacade) ParseToken(token string) (model.Identity, error) {
	return f.auth.ParseToken(token)
}

func (f *QuizWalletFacade) Balance(ctx context.Context, actor model.Identity, userID int64) (int64, error) {
	return f.wallet.Balance(ctx, actor, userID)
}

func (f *QuizWalletFacade) Purchase(ctx context.Context, actor model.Identity, amount int64) (int64, error) {
	return f.wallet.Purchase(ctx, actor, amount)
}

func (f *QuizWalletFacade) DeductForQuiz(ctx context.Context, actor model.Identity, amount int64, quizRef, idempotencyKey string) (int64, error) {
	return f.wallet.DeductForQuiz(ctx, actor, amount, quizRef, idempotencyKey)
}

func (f *QuizWalletFacade) History(ctx context.Context, actor model.Identity) ([]model.LedgerEntry, error) {
	return f.wallet.History(ctx, actor, actor.UserID)
}

func (f *QuizWalletFacade) RequestWithdrawal(ctx context.Context, actor model.Identity, amount int64, destination string) (*model.Withdrawal, error) {
	return f.withdrawals.Request(ctx, actor, amount, destination)
}

func (f *QuizWalletFacade) MyWithdrawals(ctx context.Context, actor model.Identity) ([]model.Withdrawal, error) {
	return f.withdrawals.ListMine(ctx, actor)
}

func (f *QuizWalletFacade) AllWithdrawals(ctx context.Context, actor model.Identity) ([]model.WithdrawalView, error) {
	return f.withdrawals.ListAll(ctx, actor)
}

func (f *QuizWalletFacade) GetWithdrawal(ctx context.Context, actor model.Identity, id int64) (*model.WithdrawalView, error) {
	return f.withdrawals.Get(ctx, actor, id)
}

func (f *QuizWalletFacade) AcceptWithdrawal(ctx context.Context, actor model.Identity, id int64) (*model.Withdrawal, error) {
	return f.withdrawals.Accept(ctx, actor, id)
}

func (f *QuizWalletFacade) RejectWithdrawal(ctx context.Context, actor model.Identity, id int64) (*model.Withdrawal, error) {
	return f.withdrawals.Reject(ctx, actor, id)
}

func (f *QuizWalletFacade) InitiatePayment(ctx context.Context, actor model.Identity, amount int64) (*model.Transaction, error) {
	return f.payments.Initiate(ctx, actor, amount)
}

func (f *QuizWalletFacade) ConfirmPayment(ctx context.Context, externalID string, status model.PaymentStatus) (*model.Transaction, bool, error) {
	return f.payments.Confirm(ctx, externalID, status)
}

func (f *QuizWalletFacade) Payments(ctx context.Context, actor model.Identity) ([]model.Transaction, error) {
	return f.payments.List(ctx, actor)
}

func (f *QuizWalletFacade) PendingPayments(ctx context.Context, limit int) ([]model.Transaction, error) {
	return f.payments.PendingForReconciliation(ctx, limit)
}

func (f *QuizWalletFacade) GatewayStatus(ctx context.Context, externalID string) (*model.GatewayPayment, error) {
	return f.gateway.PaymentStatus(ctx, externalID)
}

func (f *QuizWalletFacade) HealthCheck(ctx context.Context) error {
	if f.health == nil {
		return nil
	}
	return f.health.HealthCheck(ctx)
}
