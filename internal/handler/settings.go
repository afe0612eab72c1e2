package handler

import (
	"net/http"
	"strings"

	"github.com/hc2580411/vwms/internal/apierror"
	"github.com/hc2580411/vwms/internal/dto"
	"github.com/hc2580411/vwms/internal/infra"
	"github.com/hc2580411/vwms/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type SettingsHandler struct {
	svc   service.SettingsService
	rates *infra.RateClient
}

func NewSettingsHandler(svc service.SettingsService, rates *infra.RateClient) *SettingsHandler {
	return &SettingsHandler{svc: svc, rates: rates}
}

func (h *SettingsHandler) List(c *gin.Context) {
	resp, err := h.svc.All(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Could not read settings"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SettingsHandler) Save(c *gin.Context) {
	var req dto.SaveSettingRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Set(c.Request.Context(), req.Key, req.Value); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.Retry())
		return
	}
	c.Status(http.StatusNoContent)
}

// Rate looks up a live exchange rate for the given currency code. On provider
// failure the stored rate is returned instead — the lookup is best-effort and
// never blocks the settings flow.
func (h *SettingsHandler) Rate(c *gin.Context) {
	code := strings.ToUpper(c.Query("code"))
	if len(code) != 3 {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid currency code"))
		return
	}

	rate, err := h.rates.FetchRate(c.Request.Context(), code)
	if err != nil {
		log.Warn().Err(err).Str("code", code).Msg("rate lookup failed, using stored rate")
		cfg, serr := h.svc.Snapshot(c.Request.Context())
		if serr != nil {
			c.JSON(http.StatusInternalServerError, apierror.New("Could not read stored rate"))
			return
		}
		c.JSON(http.StatusOK, dto.RateResponse{Code: code, Rate: cfg.ExchangeRate})
		return
	}
	c.JSON(http.StatusOK, dto.RateResponse{Code: code, Rate: rate})
}
