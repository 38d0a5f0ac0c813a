package dto

import (
	"time"

	"github.com/polkiloo/quizwallet/internal/domain/model"
)

// AmountRequest carries a coin amount.
type AmountRequest struct {
	Amount int64 `json:"amount"`
}

// DeductRequest describes a quiz entry fee charge.
type DeductRequest struct {
	Amount int64  `json:"amount"`
	QuizID string `json:"quiz_id"`
}

// BalanceResponse represents the coin balance of a wallet.
type BalanceResponse struct {
	UserID  int64 `json:"user_id"`
	Balance int64 `json:"balance"`
}

// LedgerEntryResponse describes a single applied balance change.
type LedgerEntryResponse struct {
	ID           int64     `json:"id"`
	Delta        int64     `json:"delta"`
	BalanceAfter int64     `json:"balance_after"`
	Reason       string    `json:"reason"`
	Reference    string    `json:"reference,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewLedgerEntryResponses converts ledger entries into their wire form.
func NewLedgerEntryResponses(entries []model.LedgerEntry) []LedgerEntryResponse {
	resp := make([]LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, LedgerEntryResponse{
			ID:           e.ID,
			Delta:        e.Delta,
			BalanceAfter: e.BalanceAfter,
			Reason:       string(e.Reason),
			Reference:    e.Reference,
			CreatedAt:    e.CreatedAt,
		})
	}
	return resp
}
