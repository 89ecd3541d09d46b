package alert

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ridloal/lux-storefront/internal/platform/auth"
	"github.com/ridloal/lux-storefront/internal/platform/logger"
)

type AlertHandler struct {
	alertService AlertService
}

func NewAlertHandler(as AlertService) *AlertHandler {
	return &AlertHandler{alertService: as}
}

func (h *AlertHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/alerts/low-stock", h.LowStockAlerts)
}

func (h *AlertHandler) LowStockAlerts(c *gin.Context) {
	result, err := h.alertService.LowStockAlerts(c.Request.Context(), auth.CurrentPrincipal(c))
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUnauthenticated):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		case errors.Is(err, auth.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			logger.Error("Hdl.LowStockAlerts: service error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load alerts"})
		}
		return
	}
	c.JSON(http.StatusOK, result)
}
