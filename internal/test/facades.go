package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/polkiloo/quizwallet/internal/domain/model"
)

// WalletFacadeStub provides controllable behaviour for wallet endpoints.
type WalletFacadeStub struct {
	BalanceFn  func(context.Context, model.Identity, int64) (int64, error)
	PurchaseFn func(context.Context, model.Identity, int64) (int64, error)
	DeductFn   func(context.Context, model.Identity, int64, string, string) (int64, error)
	HistoryFn  func(context.Context, model.Identity) ([]model.LedgerEntry, error)
}

func (s WalletFacadeStub) Balance(ctx context.Context, actor model.Identity, userID int64) (int64, error) {
	if s.BalanceFn != nil {
		return s.BalanceFn(ctx, actor, userID)
	}
	return 100, nil
}

func (s WalletFacadeStub) Purchase(ctx context.Context, actor model.Identity, amount int64) (int64, error) {
	if s.PurchaseFn != nil {
		return s.PurchaseFn(ctx, actor, amount)
	}
	return 100 + amount, nil
}

func (s WalletFacadeStub) DeductForQuiz(ctx context.Context, actor model.Identity, amount int64, quizRef, key string) (int64, error) {
	if s.DeductFn != nil {
		return s.DeductFn(ctx, actor, amount, quizRef, key)
	}
	return 100 - amount, nil
}

func (s WalletFacadeStub) History(ctx context.Context, actor model.Identity) ([]model.LedgerEntry, error) {
	if s.HistoryFn != nil {
		return s.HistoryFn(ctx, actor)
	}
	return []model.LedgerEntry{{ID: 1, UserID: actor.UserID, Delta: 10, BalanceAfter: 10, Reason: model.EntryReasonPurchase, CreatedAt: time.Unix(0, 0)}}, nil
}

// WithdrawalFacadeStub simulates the withdrawal workflow.
type WithdrawalFacadeStub struct {
	RequestFn func(context.Context, model.Identity, int64, string) (*model.Withdrawal, error)
	MineFn    func(context.Context, model.Identity) ([]model.Withdrawal, error)
	AllFn     func(context.Context, model.Identity) ([]model.WithdrawalView, error)
	GetFn     func(context.Context, model.Identity, int64) (*model.WithdrawalView, error)
	AcceptFn  func(context.Context, model.Identity, int64) (*model.Withdrawal, error)
	RejectFn  func(context.Context, model.Identity, int64) (*model.Withdrawal, error)
}

func (s WithdrawalFacadeStub) RequestWithdrawal(ctx context.Context, actor model.Identity, amount int64, destination string) (*model.Withdrawal, error) {
	if s.RequestFn != nil {
		return s.RequestFn(ctx, actor, amount, destination)
	}
	return &model.Withdrawal{ID: 1, UserID: actor.UserID, Amount: amount, Destination: destination, Status: model.WithdrawalStatusPending, CreatedAt: time.Unix(0, 0)}, nil
}

func (s WithdrawalFacadeStub) MyWithdrawals(ctx context.Context, actor model.Identity) ([]model.Withdrawal, error) {
	if s.MineFn != nil {
		return s.MineFn(ctx, actor)
	}
	return []model.Withdrawal{{ID: 1, UserID: actor.UserID, Amount: 500, Status: model.WithdrawalStatusPending}}, nil
}

func (s WithdrawalFacadeStub) AllWithdrawals(ctx context.Context, actor model.Identity) ([]model.WithdrawalView, error) {
	if s.AllFn != nil {
		return s.AllFn(ctx, actor)
	}
	return []model.WithdrawalView{{Withdrawal: model.Withdrawal{ID: 1, UserID: 2, Amount: 500, Status: model.WithdrawalStatusPending}, Login: "alice", Wallet: 900}}, nil
}

func (s WithdrawalFacadeStub) GetWithdrawal(ctx context.Context, actor model.Identity, id int64) (*model.WithdrawalView, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, actor, id)
	}
	return &model.WithdrawalView{Withdrawal: model.Withdrawal{ID: id, UserID: 2, Amount: 500, Status: model.WithdrawalStatusPending}, Login: "alice", Wallet: 900}, nil
}

func (s WithdrawalFacadeStub) AcceptWithdrawal(ctx context.Context, actor model.Identity, id int64) (*model.Withdrawal, error) {
	if s.AcceptFn != nil {
		return s.AcceptFn(ctx, actor, id)
	}
	now := time.Unix(0, 0)
	return &model.Withdrawal{ID: id, Status: model.WithdrawalStatusAccepted, ProcessedAt: &now}, nil
}

func (s WithdrawalFacadeStub) RejectWithdrawal(ctx context.Context, actor model.Identity, id int64) (*model.Withdrawal, error) {
	if s.RejectFn != nil {
		return s.RejectFn(ctx, actor, id)
	}
	now := time.Unix(0, 0)
	return &model.Withdrawal{ID: id, Status: model.WithdrawalStatusRejected, ProcessedAt: &now}, nil
}

// PaymentFacadeStub simulates payment receipts.
type PaymentFacadeStub struct {
	InitiateFn func(context.Context, model.Identity, int64) (*model.Transaction, error)
	ConfirmFn  func(context.Context, string, model.PaymentStatus) (*model.Transaction, bool, error)
	ListFn     func(context.Context, model.Identity) ([]model.Transaction, error)
}

func (s PaymentFacadeStub) InitiatePayment(ctx context.Context, actor model.Identity, amount int64) (*model.Transaction, error) {
	if s.InitiateFn != nil {
		return s.InitiateFn(ctx, actor, amount)
	}
	owner := actor.UserID
	return &model.Transaction{ID: 1, UserID: &owner, ExternalID: "ext-1", Amount: amount, Status: model.PaymentStatusPending}, nil
}

func (s PaymentFacadeStub) ConfirmPayment(ctx context.Context, externalID string, status model.PaymentStatus) (*model.Transaction, bool, error) {
	if s.ConfirmFn != nil {
		return s.ConfirmFn(ctx, externalID, status)
	}
	return &model.Transaction{ID: 1, ExternalID: externalID, Status: status}, true, nil
}

func (s PaymentFacadeStub) Payments(ctx context.Context, actor model.Identity) ([]model.Transaction, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, actor)
	}
	return []model.Transaction{{ID: 1, ExternalID: "ext-1", Amount: 10, Status: model.PaymentStatusSuccess}}, nil
}

// AuthFacadeStub simulates registration, login and token parsing.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string, string) (string, error)
	AuthenticateFn func(context.Context, string, string) (string, error)
	Strategy       StrategyStub
}

func (s AuthFacadeStub) Register(ctx context.Context, login, password, referralCode string) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, login, password, referralCode)
	}
	return TokenFor(UserIdentity(1)), nil
}

func (s AuthFacadeStub) Authenticate(ctx context.Context, login, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, login, password)
	}
	return TokenFor(UserIdentity(1)), nil
}

func (s AuthFacadeStub) ParseToken(token string) (model.Identity, error) {
	return s.Strategy.ParseToken(token)
}

// QuizWalletFacadeStub combines every facade stub used by the router.
type QuizWalletFacadeStub struct {
	AuthFacadeStub
	WalletFacadeStub
	WithdrawalFacadeStub
	PaymentFacadeStub
	HealthErr error
}

func (s QuizWalletFacadeStub) HealthCheck(context.Context) error {
	return s.HealthErr
}

// ConfirmCall stores a ConfirmPayment invocation.
type ConfirmCall struct {
	ExternalID string
	Status     model.PaymentStatus
}

// ReconcilerFacadeStub mimics the facade consumed by the payment reconciler.
type ReconcilerFacadeStub struct {
	Batches   [][]model.Transaction
	PendingFn func(context.Context, int) ([]model.Transaction, error)
	StatusFn  func(context.Context, string) (*model.GatewayPayment, error)
	ConfirmFn func(context.Context, string, model.PaymentStatus) (*model.Transaction, bool, error)
	Confirms  []ConfirmCall

	mu        sync.Mutex
	callCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *ReconcilerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *ReconcilerFacadeStub) Unlock() { s.mu.Unlock() }

// PendingPayments returns batches from the configured queue.
func (s *ReconcilerFacadeStub) PendingPayments(ctx context.Context, limit int) ([]model.Transaction, error) {
	if s.PendingFn != nil {
		return s.PendingFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.callCount, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	return nil, nil
}

// GatewayStatus reports COMPLETED unless overridden.
func (s *ReconcilerFacadeStub) GatewayStatus(ctx context.Context, externalID string) (*model.GatewayPayment, error) {
	if s.StatusFn != nil {
		return s.StatusFn(ctx, externalID)
	}
	return &model.GatewayPayment{ExternalID: externalID, State: model.GatewayStateCompleted}, nil
}

// ConfirmPayment records confirmations.
func (s *ReconcilerFacadeStub) ConfirmPayment(ctx context.Context, externalID string, status model.PaymentStatus) (*model.Transaction, bool, error) {
	s.mu.Lock()
	s.Confirms = append(s.Confirms, ConfirmCall{ExternalID: externalID, Status: status})
	s.mu.Unlock()
	if s.ConfirmFn != nil {
		return s.ConfirmFn(ctx, externalID, status)
	}
	return &model.Transaction{ExternalID: externalID, Status: status}, true, nil
}

// ConfirmCount returns the number of recorded confirmations.
func (s *ReconcilerFacadeStub) ConfirmCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Confirms)
}
