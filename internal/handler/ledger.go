package handler

import (
	"net/http"

	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/apierror"
	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/dto"
	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/middleware"
	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LedgerHandler exposes the major-cash ledger: manual movements, the movement
// history and the derived balances.
type LedgerHandler struct{ svc service.LedgerService }

func NewLedgerHandler(svc service.LedgerService) *LedgerHandler {
	return &LedgerHandler{svc: svc}
}

// PostMovement godoc
// @Summary Records a manual major-cash movement
// @Tags ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.PostMovementRequest true "Movement"
// @Success 201 {object} dto.MovementResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/ledger/movements [post]
func (h *LedgerHandler) PostMovement(c *gin.Context) {
	var req dto.PostMovementRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.PostMovement(c.Request.Context(), req, claims.Username)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListMovements returns the full movement history, newest first.
func (h *LedgerHandler) ListMovements(c *gin.Context) {
	resp, err := h.svc.ListMovements(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Summary godoc
// @Summary Returns the major-cash balances
// @Tags ledger
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.LedgerSummaryResponse
// @Router /v1/ledger/summary [get]
func (h *LedgerHandler) Summary(c *gin.Context) {
	resp, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteMovement removes a manually entered movement.
func (h *LedgerHandler) DeleteMovement(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	if err := h.svc.DeleteMovement(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
