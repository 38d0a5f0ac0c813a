package dto

import (
	"strings"
	"time"

	"github.com/polkiloo/quizwallet/internal/domain/model"
)

// WithdrawRequest describes withdrawal request payload. Older clients send
// the payout handle as upi.
type WithdrawRequest struct {
	Amount      int64  `json:"amount"`
	Destination string `json:"destination"`
	UPI         string `json:"upi,omitempty"`
}

// Target returns the payout handle, preferring destination over upi.
func (r WithdrawRequest) Target() string {
	if strings.TrimSpace(r.Destination) != "" {
		return r.Destination
	}
	return r.UPI
}

// WithdrawalResponse describes a withdrawal request.
type WithdrawalResponse struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	Amount      int64      `json:"amount"`
	Destination string     `json:"destination,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
}

// AdminWithdrawalResponse adds owner details for reviewers.
type AdminWithdrawalResponse struct {
	WithdrawalResponse
	Login  string `json:"login"`
	Wallet int64  `json:"wallet"`
}

// NewWithdrawalResponse converts a withdrawal into its wire form.
func NewWithdrawalResponse(w model.Withdrawal) WithdrawalResponse {
	return WithdrawalResponse{
		ID:          w.ID,
		UserID:      w.UserID,
		Amount:      w.Amount,
		Destination: w.Destination,
		Status:      string(w.Status),
		CreatedAt:   w.CreatedAt,
		ProcessedAt: w.ProcessedAt,
	}
}

// NewWithdrawalResponses converts a list preserving order.
func NewWithdrawalResponses(items []model.Withdrawal) []WithdrawalResponse {
	resp := make([]WithdrawalResponse, 0, len(items))
	for _, w := range items {
		resp = append(resp, NewWithdrawalResponse(w))
	}
	return resp
}

// NewAdminWithdrawalResponse converts a reviewer view into its wire form.
func NewAdminWithdrawalResponse(v model.WithdrawalView) AdminWithdrawalResponse {
	return AdminWithdrawalResponse{
		WithdrawalResponse: NewWithdrawalResponse(v.Withdrawal),
		Login:              v.Login,
		Wallet:             v.Wallet,
	}
}

// NewAdminWithdrawalResponses converts reviewer views preserving order.
func NewAdminWithdrawalResponses(items []model.WithdrawalView) []AdminWithdrawalResponse {
	resp := make([]AdminWithdrawalResponse, 0, len(items))
	for _, v := range items {
		resp = append(resp, NewAdminWithdrawalResponse(v))
	}
	return resp
}
