package handler

import (
	"net/http"

	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/apierror"
	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/dto"
	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/middleware"
	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterHandler exposes the cash register lifecycle: closing the day,
// reopening it and the live cash panels.
type RegisterHandler struct{ svc service.ClosureService }

func NewRegisterHandler(svc service.ClosureService) *RegisterHandler {
	return &RegisterHandler{svc: svc}
}

// Close godoc
// @Summary Closes the cash register for today
// @Description Freezes the day's records, sweeps till cash above the daily base into saved cash and returns the closure. Calling it again the same day returns the existing closure.
// @Tags register
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ClosureResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/register/close [post]
func (h *RegisterHandler) Close(c *gin.Context) {
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Close(c.Request.Context(), claims.Username)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Reopen godoc
// @Summary Reopens today's closed register
// @Description Requires the configured reopen password. Reverses the swept excess and deletes the closure; reopening an already open register succeeds as a no-op.
// @Tags register
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ReopenRequest true "Reopen password"
// @Success 200 {object} dto.ReopenResponse
// @Failure 401 {object} apierror.APIError
// @Router /v1/register/reopen [post]
func (h *RegisterHandler) Reopen(c *gin.Context) {
	var req dto.ReopenRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Reopen(c.Request.Context(), req.Password)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Status reports whether today's register is open or closed.
func (h *RegisterHandler) Status(c *gin.Context) {
	resp, err := h.svc.Status(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CurrentCash returns the expected till contents right now.
func (h *RegisterHandler) CurrentCash(c *gin.Context) {
	resp, err := h.svc.CurrentCash(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DailySummary returns the pre-closure cash preview.
func (h *RegisterHandler) DailySummary(c *gin.Context) {
	resp, err := h.svc.DailyCashSummary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetClosure godoc
// @Summary Fetches the closure snapshot for a date
// @Tags register
// @Produce json
// @Security BearerAuth
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.ClosureResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/register/closures/{date} [get]
func (h *RegisterHandler) GetClosure(c *gin.Context) {
	resp, err := h.svc.GetByDate(c.Request.Context(), c.Param("date"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListClosures returns all closures, newest first.
func (h *RegisterHandler) ListClosures(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
