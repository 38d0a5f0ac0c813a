package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/quizwallet/internal/adapter/gateway"
	"github.com/polkiloo/quizwallet/internal/domain/model"
)

// PaymentsFacade exposes the subset of application functionality required by the reconciler.
type PaymentsFacade interface {
	PendingPayments(ctx context.Context, limit int) ([]model.Transaction, error)
	GatewayStatus(ctx context.Context, externalID string) (*model.GatewayPayment, error)
	ConfirmPayment(ctx context.Context, externalID string, status model.PaymentStatus) (*model.Transaction, bool, error)
}

// PaymentReconciler polls the gateway for receipts that never got a
// callback and resolves them concurrently.
type PaymentReconciler struct {
	facade       PaymentsFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Transaction
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewPaymentReconciler constructs the reconciler worker pool.
func NewPaymentReconciler(facade PaymentsFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *PaymentReconciler {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	return &PaymentReconciler{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Transaction, batchSize*workers),
	}
}

// Start launches background processing.
func (p *PaymentReconciler) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (p *PaymentReconciler) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *PaymentReconciler) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx)
		}
	}
}

func (p *PaymentReconciler) fetchAndDispatch(ctx context.Context) {
	pending, err := p.facade.PendingPayments(ctx, p.batchSize)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Error("fetch pending payments failed", slog.String("error", err.Error()))
		}
		return
	}
	for _, tx := range pending {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- tx:
		}
	}
}

func (p *PaymentReconciler) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case tx, ok := <-p.jobs:
			if !ok {
				return
			}
			p.handlePayment(ctx, tx)
		}
	}
}

func (p *PaymentReconciler) handlePayment(ctx context.Context, tx model.Transaction) {
	payment, err := p.facade.GatewayStatus(ctx, tx.ExternalID)
	if err != nil {
		var tooMany gateway.TooManyRequestsError
		switch {
		case errors.As(err, &tooMany):
			p.logger.Warn("gateway rate limited", slog.Duration("retry_after", tooMany.RetryAfter))
			sleep(ctx, tooMany.RetryAfter)
		case errors.Is(err, gateway.ErrPaymentNotFound):
			p.logger.Debug("payment unknown to gateway", slog.String("external_id", tx.ExternalID))
		case ctx.Err() != nil:
		default:
			p.logger.Error("gateway status failed", slog.String("external_id", tx.ExternalID), slog.String("error", err.Error()))
		}
		return
	}

	status := payment.PaymentStatus()
	if status == model.PaymentStatusPending {
		return
	}

	if _, _, err := p.facade.ConfirmPayment(ctx, tx.ExternalID, status); err != nil {
		p.logger.Error("confirm payment failed", slog.String("external_id", tx.ExternalID), slog.String("error", err.Error()))
	}
}

func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
