package model

import "time"

// PaymentStatus describes a payment receipt lifecycle.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusSuccess PaymentStatus = "Success"
	PaymentStatusFailed  PaymentStatus = "Failed"
)

// IsTerminal reports whether status can no longer change.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusSuccess || s == PaymentStatusFailed
}

// Transaction is a payment receipt reported by the payment gateway.
type Transaction struct {
	ID         int64
	UserID     *int64
	ExternalID string
	Amount     int64
	Status     PaymentStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
