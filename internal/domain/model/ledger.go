package model

import "time"

// EntryReason tells why a wallet balance changed.
type EntryReason string

const (
	EntryReasonPurchase   EntryReason = "purchase"
	EntryReasonPayment    EntryReason = "payment"
	EntryReasonReferral   EntryReason = "referral"
	EntryReasonQuiz       EntryReason = "quiz"
	EntryReasonWithdrawal EntryReason = "withdrawal"
)

// Movement describes a single balance change request.
type Movement struct {
	UserID    int64
	Amount    int64
	Reason    EntryReason
	Reference string
}

// LedgerEntry records an applied balance change.
type LedgerEntry struct {
	ID           int64
	UserID       int64
	Delta        int64
	BalanceAfter int64
	Reason       EntryReason
	Reference    string
	CreatedAt    time.Time
}
