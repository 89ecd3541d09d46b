package catalog

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ridloal/lux-storefront/internal/platform/logger"
	"github.com/ridloal/lux-storefront/internal/product/repository"
)

type CatalogHandler struct {
	catalogService CatalogService
	hub            *Hub
}

func NewCatalogHandler(cs CatalogService, hub *Hub) *CatalogHandler {
	return &CatalogHandler{catalogService: cs, hub: hub}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	catalogRoutes := router.Group("/catalog")
	{
		catalogRoutes.GET("", h.Browse)
		catalogRoutes.GET("/products/:id", h.GetProduct)
		catalogRoutes.GET("/stream", h.Stream)
	}
}

func (h *CatalogHandler) Browse(c *gin.Context) {
	var q Query
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.catalogService.Browse(c.Request.Context(), q))
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.catalogService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Hdl.GetProduct: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// Stream pushes catalog events as Server-Sent Events until the client leaves.
func (h *CatalogHandler) Stream(c *gin.Context) {
	ch, unsubscribe := h.hub.Subscribe()
	defer unsubscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.SSEvent("ready", gin.H{"type": "ready"})
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case e := <-ch:
			c.SSEvent(e.Topic, e)
			return true
		}
	})
}
