package app

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/polkiloo/quizwallet/internal/domain/errors"
	"github.com/polkiloo/quizwallet/internal/domain/model"
	testhelpers "github.com/polkiloo/quizwallet/internal/test"
	"github.com/polkiloo/quizwallet/internal/usecase"
)

type gatewayStub struct {
	payment *model.GatewayPayment
	err     error
}

func (g gatewayStub) PaymentStatus(context.Context, string) (*model.GatewayPayment, error) {
	return g.payment, g.err
}

type healthStub struct{ err error }

func (h healthStub) HealthCheck(context.Context) error { return h.err }

func newFacade(store *testhelpers.MemoryStore, gw GatewayClient, health HealthChecker) *QuizWalletFacade {
	authUC := usecase.NewAuthUseCase(store.Users(), store.Wallets(), testhelpers.HasherStub{}, testhelpers.StrategyStub{}, usecase.RegistrationPolicy{}, nil)
	walletUC := usecase.NewWalletUseCase(store.Wallets(), testhelpers.NewIdempotencyStoreStub(), nil)
	withdrawalUC := usecase.NewWithdrawalUseCase(store.Withdrawals(), store.Wallets(), store.Users(), usecase.WithdrawalPolicy{MinimumRedemption: 500}, nil)
	paymentUC := usecase.NewPaymentUseCase(store.Transactions(), nil)
	return NewQuizWalletFacade(authUC, walletUC, withdrawalUC, paymentUC, gw, health)
}

func TestQuizWalletFacadeAuth(t *testing.T) {
	store := testhelpers.NewMemoryStore()
	facade := newFacade(store, gatewayStub{}, nil)
	ctx := context.Background()

	token, err := facade.Register(ctx, "user", "pass", "")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if token != "token-user-1" {
		t.Fatalf("unexpected token %q", token)
	}

	token, err = facade.Authenticate(ctx, "user", "pass")
	if err != nil || token != "token-user-1" {
		t.Fatalf("unexpected authenticate result %q %v", token, err)
	}

	identity, err := facade.ParseToken(token)
	if err != nil || identity.UserID != 1 || identity.Role != model.RoleUser {
		t.Fatalf("unexpected identity %+v err=%v", identity, err)
	}
}

func TestQuizWalletFacadeWalletAndWithdrawals(t *testing.T) {
	store := testhelpers.NewMemoryStore()
	alice := store.AddUser("alice", model.RoleUser, 0)
	admin := testhelpers.AdminIdentity(store.AddUser("root", model.RoleAdmin, 0))
	actor := testhelpers.UserIdentity(alice)
	facade := newFacade(store, gatewayStub{}, nil)
	ctx := context.Background()

	if balance, err := facade.Purchase(ctx, actor, 1000); err != nil || balance != 1000 {
		t.Fatalf("purchase: %d %v", balance, err)
	}
	if balance, err := facade.DeductForQuiz(ctx, actor, 100, "q1", "k1"); err != nil || balance != 900 {
		t.Fatalf("deduct: %d %v", balance, err)
	}
	if balance, err := facade.DeductForQuiz(ctx, actor, 100, "q1", "k1"); err != nil || balance != 900 {
		t.Fatalf("replayed deduct: %d %v", balance, err)
	}
	if balance, err := facade.Balance(ctx, actor, alice); err != nil || balance != 900 {
		t.Fatalf("balance: %d %v", balance, err)
	}
	history, err := facade.History(ctx, actor)
	if err != nil || len(history) != 2 {
		t.Fatalf("history: %+v %v", history, err)
	}

	w, err := facade.RequestWithdrawal(ctx, actor, 600, "upi@bank")
	if err != nil {
		t.Fatalf("request withdrawal: %v", err)
	}
	mine, err := facade.MyWithdrawals(ctx, actor)
	if err != nil || len(mine) != 1 {
		t.Fatalf("my withdrawals: %+v %v", mine, err)
	}
	all, err := facade.AllWithdrawals(ctx, admin)
	if err != nil || len(all) != 1 || all[0].Login != "alice" {
		t.Fatalf("all withdrawals: %+v %v", all, err)
	}
	single, err := facade.GetWithdrawal(ctx, admin, w.ID)
	if err != nil || single.ID != w.ID || single.Login != "alice" {
		t.Fatalf("get withdrawal: %+v %v", single, err)
	}
	if _, err := facade.AcceptWithdrawal(ctx, admin, w.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := facade.RejectWithdrawal(ctx, admin, w.ID); !errors.Is(err, domainErrors.ErrAlreadyProcessed) {
		t.Fatalf("expected already processed, got %v", err)
	}
	if got := store.BalanceOf(alice); got != 300 {
		t.Fatalf("expected balance 300, got %d", got)
	}
}

func TestQuizWalletFacadePayments(t *testing.T) {
	store := testhelpers.NewMemoryStore()
	alice := store.AddUser("alice", model.RoleUser, 0)
	actor := testhelpers.UserIdentity(alice)
	gw := gatewayStub{payment: &model.GatewayPayment{ExternalID: "x", State: model.GatewayStateCompleted}}
	facade := newFacade(store, gw, nil)
	ctx := context.Background()

	tx, err := facade.InitiatePayment(ctx, actor, 40)
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}
	pending, err := facade.PendingPayments(ctx, 5)
	if err != nil || len(pending) != 1 || pending[0].ExternalID != tx.ExternalID {
		t.Fatalf("pending: %+v %v", pending, err)
	}
	payment, err := facade.GatewayStatus(ctx, tx.ExternalID)
	if err != nil || payment.State != model.GatewayStateCompleted {
		t.Fatalf("gateway status: %+v %v", payment, err)
	}
	if _, applied, err := facade.ConfirmPayment(ctx, tx.ExternalID, payment.PaymentStatus()); err != nil || !applied {
		t.Fatalf("confirm: applied=%v err=%v", applied, err)
	}
	if got := store.BalanceOf(alice); got != 40 {
		t.Fatalf("expected balance 40, got %d", got)
	}
	if _, err := facade.Payments(ctx, actor); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	list, err := facade.Payments(ctx, testhelpers.AdminIdentity(99))
	if err != nil || len(list) != 1 {
		t.Fatalf("payments: %+v %v", list, err)
	}
}

func TestQuizWalletFacadeHealthCheck(t *testing.T) {
	store := testhelpers.NewMemoryStore()
	if err := newFacade(store, gatewayStub{}, nil).HealthCheck(context.Background()); err != nil {
		t.Fatalf("expected nil health error without checker, got %v", err)
	}
	boom := errors.New("db down")
	if err := newFacade(store, gatewayStub{}, healthStub{err: boom}).HealthCheck(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected health error, got %v", err)
	}
}
