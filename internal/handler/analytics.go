package handler

import (
	"net/http"
	"time"

	"github.com/hc2580411/vwms/internal/apierror"
	"github.com/hc2580411/vwms/internal/service"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct{ svc service.AnalyticsService }

func NewAnalyticsHandler(svc service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

// windowBounds translates the window query selector into concrete day bounds.
// Supported: 7d, 30d, 6m, 12m, all (default), custom (requires start/end as
// YYYY-MM-DD).
func windowBounds(c *gin.Context) (start, end *time.Time, ok bool) {
	now := time.Now().UTC()
	switch c.DefaultQuery("window", "all") {
	case "7d":
		s := now.AddDate(0, 0, -6)
		return &s, &now, true
	case "30d":
		s := now.AddDate(0, 0, -29)
		return &s, &now, true
	case "6m":
		s := now.AddDate(0, -6, 0)
		return &s, &now, true
	case "12m":
		s := now.AddDate(0, -12, 0)
		return &s, &now, true
	case "all":
		return nil, nil, true
	case "custom":
		s, err := time.Parse("2006-01-02", c.Query("start"))
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Invalid start date, expected YYYY-MM-DD"))
			return nil, nil, false
		}
		e, err := time.Parse("2006-01-02", c.Query("end"))
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Invalid end date, expected YYYY-MM-DD"))
			return nil, nil, false
		}
		return &s, &e, true
	default:
		c.JSON(http.StatusBadRequest, apierror.New("Invalid window, expected 7d|30d|6m|12m|all|custom"))
		return nil, nil, false
	}
}

func (h *AnalyticsHandler) Get(c *gin.Context) {
	start, end, ok := windowBounds(c)
	if !ok {
		return
	}
	resp, err := h.svc.Compute(c.Request.Context(), start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Could not compute analytics"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	resp, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Could not compute dashboard"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
