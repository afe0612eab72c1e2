package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/hc2580411/vwms/internal/infra"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Health returns a JSON health check response. Checks the live store and
// reports the exchange-rate breaker state; never exposes internals.
func Health(db *gorm.DB, rates *infra.RateClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		storeStatus := "connected"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			storeStatus = "error"
		}

		status := http.StatusOK
		if storeStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":           status == http.StatusOK,
			"store":        storeStatus,
			"rate_breaker": rates.BreakerState().String(),
		})
	}
}
