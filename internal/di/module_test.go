package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/polkiloo/quizwallet/internal/adapter/gateway"
	"github.com/polkiloo/quizwallet/internal/app"
	"github.com/polkiloo/quizwallet/internal/config"
	"github.com/polkiloo/quizwallet/internal/domain/model"
	"github.com/polkiloo/quizwallet/internal/domain/repository"
	"github.com/polkiloo/quizwallet/internal/server/http/handlers"
	"github.com/polkiloo/quizwallet/internal/storage/postgres"
	redisstore "github.com/polkiloo/quizwallet/internal/storage/redis"
	"github.com/polkiloo/quizwallet/internal/test"
)

type gatewayStub struct{}

func (gatewayStub) PaymentStatus(_ context.Context, externalID string) (*model.GatewayPayment, error) {
	return &model.GatewayPayment{ExternalID: externalID, State: model.GatewayStatePending}, nil
}

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:            ":0",
		DatabaseURI:           "postgres://stub",
		PaymentEnvironment:    config.PaymentEnvironmentTest,
		PaymentGatewayTestURL: "http://localhost",
		JWTSecret:             "secret",
		AuthStrategy:          "jwt",
		TokenTTL:              time.Hour,
		PaymentPollInterval:   time.Millisecond,
		WorkerPoolSize:        1,
		PaymentBatchSize:      1,
		ShutdownTimeout:       time.Millisecond,
		MinimumRedemption:     500,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	store := test.NewMemoryStore()

	var facade *app.QuizWalletFacade
	var httpFacade handlers.QuizWalletFacade
	var idempotency repository.IdempotencyStore
	var gatewayClient gateway.Client
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Decorate(
				func(repository.UserRepository) repository.UserRepository { return store.Users() },
				func(repository.WalletRepository) repository.WalletRepository { return store.Wallets() },
				func(repository.WithdrawalRepository) repository.WithdrawalRepository { return store.Withdrawals() },
				func(repository.TransactionRepository) repository.TransactionRepository { return store.Transactions() },
				func(gateway.Client) gateway.Client { return gatewayStub{} },
			),
		),
		fx.Populate(&facade, &httpFacade, &idempotency, &gatewayClient),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil || httpFacade == nil {
		t.Fatal("expected quiz wallet facade instance")
	}
	if _, ok := idempotency.(redisstore.NoopStore); !ok {
		t.Fatalf("expected no-op idempotency store without redis address, got %T", idempotency)
	}

	if _, ok := gatewayClient.(gatewayStub); !ok {
		t.Fatalf("expected decorated gateway client, got %T", gatewayClient)
	}

	token, err := facade.Register(context.Background(), "alice", "secret", "")
	if err != nil {
		t.Fatalf("register through composed graph failed: %v", err)
	}
	identity, err := facade.ParseToken(token)
	if err != nil || identity.UserID <= 0 {
		t.Fatalf("expected token issued by configured strategy, got %+v (%v)", identity, err)
	}
	balance, err := facade.Purchase(context.Background(), identity, 120)
	if err != nil || balance != 120 {
		t.Fatalf("expected purchase to credit wallet, got %d (%v)", balance, err)
	}
	if got := store.BalanceOf(identity.UserID); got != 120 {
		t.Fatalf("expected purchase to land in the in-memory store, got %d", got)
	}
}
