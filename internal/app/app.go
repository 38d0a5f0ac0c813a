package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/quizwallet/internal/adapter/gateway"
	"github.com/polkiloo/quizwallet/internal/config"
	"github.com/polkiloo/quizwallet/internal/server/http/handlers"
	"github.com/polkiloo/quizwallet/internal/storage/postgres"
	"github.com/polkiloo/quizwallet/internal/usecase"
	"github.com/polkiloo/quizwallet/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		newQuizWalletFacade,
		func(f *QuizWalletFacade) handlers.QuizWalletFacade { return f },
		newHTTPServer,
		newPaymentReconciler,
	),
	fx.Invoke(registerLifecycle),
)

type facadeParams struct {
	fx.In

	Auth        *usecase.AuthUseCase
	Wallet      *usecase.WalletUseCase
	Withdrawals *usecase.WithdrawalUseCase
	Payments    *usecase.PaymentUseCase
	Gateway     gateway.Client
	Storage     *postgres.Storage
}

func newQuizWalletFacade(p facadeParams) *QuizWalletFacade {
	return NewQuizWalletFacade(p.Auth, p.Wallet, p.Withdrawals, p.Payments, p.Gateway, p.Storage)
}

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:              p.Config.RunAddress,
		Handler:           p.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

type workerParams struct {
	fx.In

	Facade *QuizWalletFacade
	Config *config.Config
	Logger *slog.Logger
}

func newPaymentReconciler(p workerParams) *worker.PaymentReconciler {
	return worker.NewPaymentReconciler(
		p.Facade,
		p.Config.PaymentPollInterval,
		p.Config.PaymentBatchSize,
		p.Config.WorkerPoolSize,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Worker     *worker.PaymentReconciler
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting quizwallet",
				slog.String("addr", p.Server.Addr),
				slog.String("payment_environment", string(p.Config.PaymentEnvironment)),
			)
			// The start context ends once startup completes; the reconciler
			// runs until OnStop.
			p.Worker.Start(context.WithoutCancel(ctx))
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Worker.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("quizwallet stopped")
			return nil
		},
	})
}
