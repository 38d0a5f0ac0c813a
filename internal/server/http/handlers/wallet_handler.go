package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/quizwallet/internal/server/http/dto"
)

// IdempotencyKeyHeader deduplicates retried quiz deductions.
const IdempotencyKeyHeader = "Idempotency-Key"

// WalletHandler manages wallet ledger endpoints.
type WalletHandler struct {
	facade WalletFacade
}

// NewWalletHandler constructs WalletHandler.
func NewWalletHandler(facade WalletFacade) *WalletHandler {
	return &WalletHandler{facade: facade}
}

// Balance handles GET /api/wallet/balance.
func (h *WalletHandler) Balance(c *gin.Context) {
	actor := CurrentIdentity(c)
	h.writeBalance(c, actor.UserID)
}

// UserBalance handles GET /api/admin/users/:id/balance.
func (h *WalletHandler) UserBalance(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.writeBalance(c, userID)
}

func (h *WalletHandler) writeBalance(c *gin.Context, userID int64) {
	balance, err := h.facade.Balance(c.Request.Context(), CurrentIdentity(c), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{UserID: userID, Balance: balance})
}

// Purchase handles POST /api/wallet/purchase.
func (h *WalletHandler) Purchase(c *gin.Context) {
	var req dto.AmountRequest
	if !bindJSON(c, &req) {
		return
	}

	actor := CurrentIdentity(c)
	balance, err := h.facade.Purchase(c.Request.Context(), actor, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{UserID: actor.UserID, Balance: balance})
}

// Deduct handles POST /api/wallet/deduct.
func (h *WalletHandler) Deduct(c *gin.Context) {
	var req dto.DeductRequest
	if !bindJSON(c, &req) {
		return
	}

	actor := CurrentIdentity(c)
	key := c.GetHeader(IdempotencyKeyHeader)
	balance, err := h.facade.DeductForQuiz(c.Request.Context(), actor, req.Amount, req.QuizID, key)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{UserID: actor.UserID, Balance: balance})
}

// History handles GET /api/wallet/history.
func (h *WalletHandler) History(c *gin.Context) {
	entries, err := h.facade.History(c.Request.Context(), CurrentIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewLedgerEntryResponses(entries))
}
