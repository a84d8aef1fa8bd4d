package handler

import (
	"net/http"
	"time"

	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/apierror"
	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/service"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	svc service.StatsService
	loc *time.Location
}

func NewStatsHandler(svc service.StatsService, loc *time.Location) *StatsHandler {
	return &StatsHandler{svc: svc, loc: loc}
}

// Daily godoc
// @Summary Totals for one business date
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.DailyStatsResponse
// @Router /v1/stats/daily [get]
func (h *StatsHandler) Daily(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = time.Now().In(h.loc).Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid date, want YYYY-MM-DD"))
		return
	}
	resp, err := h.svc.Daily(c.Request.Context(), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Monthly returns totals for a calendar month (YYYY-MM).
func (h *StatsHandler) Monthly(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		month = time.Now().In(h.loc).Format("2006-01")
	}
	resp, err := h.svc.Monthly(c.Request.Context(), month)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TopProducts returns the best sellers for a date range.
func (h *StatsHandler) TopProducts(c *gin.Context) {
	from, to, ok := h.parseRange(c)
	if !ok {
		return
	}
	resp, err := h.svc.TopProducts(c.Request.Context(), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// BottomProducts returns the worst sellers for a date range.
func (h *StatsHandler) BottomProducts(c *gin.Context) {
	from, to, ok := h.parseRange(c)
	if !ok {
		return
	}
	resp, err := h.svc.BottomProducts(c.Request.Context(), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// parseRange reads from/to query params (YYYY-MM-DD); defaults to the last
// 30 days. "to" is exclusive of the following midnight.
func (h *StatsHandler) parseRange(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now().In(h.loc)
	from := now.AddDate(0, 0, -30)
	to := now

	if v := c.Query("from"); v != "" {
		parsed, err := time.ParseInLocation("2006-01-02", v, h.loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Invalid 'from' date, want YYYY-MM-DD"))
			return time.Time{}, time.Time{}, false
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.ParseInLocation("2006-01-02", v, h.loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Invalid 'to' date, want YYYY-MM-DD"))
			return time.Time{}, time.Time{}, false
		}
		to = parsed.AddDate(0, 0, 1)
	}
	return from, to, true
}
