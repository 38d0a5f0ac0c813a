package dto

import (
	"time"

	"github.com/polkiloo/quizwallet/internal/domain/model"
)

// PaymentResponse describes a payment receipt.
type PaymentResponse struct {
	ID            int64     `json:"id"`
	UserID        *int64    `json:"user_id,omitempty"`
	TransactionID string    `json:"transaction_id"`
	Amount        int64     `json:"amount"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CallbackRequest is the gateway notification about a payment outcome.
type CallbackRequest struct {
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"`
}

// CallbackResponse reports how a notification was handled.
type CallbackResponse struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
	Applied       bool   `json:"applied"`
}

// NewPaymentResponse converts a receipt into its wire form.
func NewPaymentResponse(t model.Transaction) PaymentResponse {
	return PaymentResponse{
		ID:            t.ID,
		UserID:        t.UserID,
		TransactionID: t.ExternalID,
		Amount:        t.Amount,
		Status:        string(t.Status),
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// NewPaymentResponses converts receipts preserving order.
func NewPaymentResponses(items []model.Transaction) []PaymentResponse {
	resp := make([]PaymentResponse, 0, len(items))
	for _, t := range items {
		resp = append(resp, NewPaymentResponse(t))
	}
	return resp
}
