package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/quizwallet/internal/domain/model"
	"github.com/polkiloo/quizwallet/internal/server/http/dto"
)

// WithdrawalHandler exposes the withdrawal workflow.
type WithdrawalHandler struct {
	facade WithdrawalFacade
}

// NewWithdrawalHandler constructs WithdrawalHandler.
func NewWithdrawalHandler(facade WithdrawalFacade) *WithdrawalHandler {
	return &WithdrawalHandler{facade: facade}
}

// Request handles POST /api/withdrawals.
func (h *WithdrawalHandler) Request(c *gin.Context) {
	var req dto.WithdrawRequest
	if !bindJSON(c, &req) {
		return
	}

	w, err := h.facade.RequestWithdrawal(c.Request.Context(), CurrentIdentity(c), req.Amount, req.Target())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewWithdrawalResponse(*w))
}

// Mine handles GET /api/withdrawals.
func (h *WithdrawalHandler) Mine(c *gin.Context) {
	items, err := h.facade.MyWithdrawals(c.Request.Context(), CurrentIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewWithdrawalResponses(items))
}

// All handles GET /api/admin/withdrawals.
func (h *WithdrawalHandler) All(c *gin.Context) {
	items, err := h.facade.AllWithdrawals(c.Request.Context(), CurrentIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAdminWithdrawalResponses(items))
}

// Get handles GET /api/admin/withdrawals/:id.
func (h *WithdrawalHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.facade.GetWithdrawal(c.Request.Context(), CurrentIdentity(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAdminWithdrawalResponse(*view))
}

// Accept handles PUT /api/admin/withdrawals/:id/accept.
func (h *WithdrawalHandler) Accept(c *gin.Context) {
	h.decide(c, h.facade.AcceptWithdrawal)
}

// Reject handles PUT /api/admin/withdrawals/:id/reject.
func (h *WithdrawalHandler) Reject(c *gin.Context) {
	h.decide(c, h.facade.RejectWithdrawal)
}

type decision func(ctx context.Context, actor model.Identity, id int64) (*model.Withdrawal, error)

func (h *WithdrawalHandler) decide(c *gin.Context, fn decision) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	w, err := fn(c.Request.Context(), CurrentIdentity(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewWithdrawalResponse(*w))
}
