package handlers

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/quizwallet/internal/domain/model"
	"github.com/polkiloo/quizwallet/internal/server/http/dto"
)

// CallbackTokenHeader authenticates payment gateway notifications.
const CallbackTokenHeader = "X-Callback-Token"

var errCallbackToken = errors.New("invalid callback token")

// PaymentHandler exposes payment receipts and the gateway callback.
type PaymentHandler struct {
	facade        PaymentFacade
	callbackToken string
}

// NewPaymentHandler constructs PaymentHandler. An empty callbackToken
// disables the gateway callback.
func NewPaymentHandler(facade PaymentFacade, callbackToken string) *PaymentHandler {
	return &PaymentHandler{facade: facade, callbackToken: callbackToken}
}

// Initiate handles POST /api/payments.
func (h *PaymentHandler) Initiate(c *gin.Context) {
	var req dto.AmountRequest
	if !bindJSON(c, &req) {
		return
	}

	tx, err := h.facade.InitiatePayment(c.Request.Context(), CurrentIdentity(c), req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewPaymentResponse(*tx))
}

// Callback handles POST /api/payments/callback.
func (h *PaymentHandler) Callback(c *gin.Context) {
	if !h.authorizedCallback(c.GetHeader(CallbackTokenHeader)) {
		respondStatus(c, http.StatusUnauthorized, "unauthorized", errCallbackToken)
		return
	}

	var req dto.CallbackRequest
	if !bindJSON(c, &req) {
		return
	}

	tx, applied, err := h.facade.ConfirmPayment(c.Request.Context(), req.TransactionID, callbackStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CallbackResponse{
		TransactionID: tx.ExternalID,
		Status:        string(tx.Status),
		Applied:       applied,
	})
}

// List handles GET /api/admin/payments.
func (h *PaymentHandler) List(c *gin.Context) {
	items, err := h.facade.Payments(c.Request.Context(), CurrentIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaymentResponses(items))
}

func (h *PaymentHandler) authorizedCallback(token string) bool {
	if h.callbackToken == "" || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.callbackToken)) == 1
}

// callbackStatus accepts receipt statuses as well as gateway states.
// Unknown values pass through so the confirmation reports them as invalid.
func callbackStatus(raw string) model.PaymentStatus {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "SUCCESS", string(model.GatewayStateCompleted):
		return model.PaymentStatusSuccess
	case "FAILED":
		return model.PaymentStatusFailed
	case "PENDING":
		return model.PaymentStatusPending
	}
	return model.PaymentStatus(raw)
}
