package model

import (
	"strconv"
	"time"
)

// WithdrawalStatus describes withdrawal request lifecycle.
type WithdrawalStatus string

const (
	WithdrawalStatusPending  WithdrawalStatus = "pending"
	WithdrawalStatusAccepted WithdrawalStatus = "accepted"
	WithdrawalStatusRejected WithdrawalStatus = "rejected"
)

// Withdrawal is a user's request to convert coins into an external payout.
type Withdrawal struct {
	ID          int64
	UserID      int64
	Amount      int64
	Destination string
	Status      WithdrawalStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// IsPending reports whether the request still awaits a decision.
func (w Withdrawal) IsPending() bool {
	return w.Status == WithdrawalStatusPending
}

// LedgerReference is the reference recorded on the debit that pays out the request.
func (w Withdrawal) LedgerReference() string {
	return "withdrawal:" + strconv.FormatInt(w.ID, 10)
}

// WithdrawalView is a withdrawal enriched with owner details for reviewers.
type WithdrawalView struct {
	Withdrawal
	Login  string
	Wallet int64
}
