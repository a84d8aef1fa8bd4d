package handler

import (
	"net/http"

	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/apierror"
	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/dto"
	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/service"

	"github.com/gin-gonic/gin"
)

type ConfigHandler struct{ svc service.ConfigService }

func NewConfigHandler(svc service.ConfigService) *ConfigHandler {
	return &ConfigHandler{svc: svc}
}

func (h *ConfigHandler) Get(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary Updates business settings
// @Description Partial update; the reopen password is hashed and never echoed back.
// @Tags config
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.UpdateConfigRequest true "Settings"
// @Success 200 {object} dto.ConfigResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/config [put]
func (h *ConfigHandler) Update(c *gin.Context) {
	var req dto.UpdateConfigRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
