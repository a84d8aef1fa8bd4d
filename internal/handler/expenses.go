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

type ExpenseHandler struct{ svc service.ExpenseService }

func NewExpenseHandler(svc service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{svc: svc}
}

// Create godoc
// @Summary Records an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateExpenseRequest true "Expense"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 409 {object} apierror.APIError "Register already closed"
// @Router /v1/expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req dto.CreateExpenseRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Create(c.Request.Context(), req, claims.Username)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ExpenseHandler) ListToday(c *gin.Context) {
	resp, err := h.svc.ListToday(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ExpenseHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
