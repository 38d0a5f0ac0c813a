package model

// GatewayState is the payment state reported by the external gateway.
type GatewayState string

const (
	GatewayStatePending   GatewayState = "PENDING"
	GatewayStateCompleted GatewayState = "COMPLETED"
	GatewayStateFailed    GatewayState = "FAILED"
)

// GatewayPayment is a payment as seen by the external gateway.
type GatewayPayment struct {
	ExternalID string
	State      GatewayState
}

// PaymentStatus maps a gateway state onto a receipt status.
func (p GatewayPayment) PaymentStatus() PaymentStatus {
	switch p.State {
	case GatewayStateCompleted:
		return PaymentStatusSuccess
	case GatewayStateFailed:
		return PaymentStatusFailed
	default:
		return PaymentStatusPending
	}
}
