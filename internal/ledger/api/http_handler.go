package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ridloal/lux-storefront/internal/ledger/domain"
	"github.com/ridloal/lux-storefront/internal/ledger/repository"
	"github.com/ridloal/lux-storefront/internal/ledger/service"
	"github.com/ridloal/lux-storefront/internal/platform/auth"
	"github.com/ridloal/lux-storefront/internal/platform/logger"
)

type LedgerHandler struct {
	ledgerService service.LedgerService
}

func NewLedgerHandler(ls service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ls}
}

func (h *LedgerHandler) RegisterRoutes(router *gin.RouterGroup) {
	salesRoutes := router.Group("/sales")
	{
		salesRoutes.POST("", h.Sell)
		salesRoutes.GET("", h.ListSales)
	}
}

func (h *LedgerHandler) Sell(c *gin.Context) {
	var req domain.SellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	sale, err := h.ledgerService.Sell(c.Request.Context(), auth.CurrentPrincipal(c), req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrInvalidSale):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, auth.ErrUnauthenticated):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		case errors.Is(err, auth.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrStoreUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": service.ErrStoreUnavailable.Error()})
		default:
			logger.Error("Hdl.Sell: service error", err, req.ProductID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record sale"})
		}
		return
	}
	c.JSON(http.StatusCreated, sale)
}

// ListSales returns sales newest first, joined with product identity.
func (h *LedgerHandler) ListSales(c *gin.Context) {
	sales, err := h.ledgerService.ListSalesWithProduct(c.Request.Context(), auth.CurrentPrincipal(c))
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUnauthenticated):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		case errors.Is(err, auth.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			logger.Error("Hdl.ListSales: service error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve sales"})
		}
		return
	}
	c.JSON(http.StatusOK, sales)
}
