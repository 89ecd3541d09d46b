package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ridloal/lux-storefront/internal/media"
	"github.com/ridloal/lux-storefront/internal/platform/auth"
	"github.com/ridloal/lux-storefront/internal/platform/logger"
	"github.com/ridloal/lux-storefront/internal/product/domain"
	"github.com/ridloal/lux-storefront/internal/product/repository"
	"github.com/ridloal/lux-storefront/internal/product/service"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(ps service.ProductService) *ProductHandler {
	return &ProductHandler{productService: ps}
}

// RegisterRoutes mounts the admin product routes. The group is expected to be
// behind auth.Middleware.
func (h *ProductHandler) RegisterRoutes(router *gin.RouterGroup) {
	productRoutes := router.Group("/products")
	{
		productRoutes.GET("", h.ListProducts)
		productRoutes.POST("", h.CreateProduct)
		productRoutes.GET("/:id", h.GetProduct)
		productRoutes.PUT("/:id", h.UpdateProduct)
		productRoutes.POST("/:id/stock", h.AdjustStock)
		productRoutes.DELETE("/:id", h.DeleteProduct)
	}
	router.POST("/images", h.UploadImage)
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.productService.ListProducts(c.Request.Context())
	if err != nil {
		logger.Error("Hdl.ListProducts: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "Hdl.GetProduct", err, "Failed to retrieve product")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req domain.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	product, err := h.productService.CreateProduct(c.Request.Context(), auth.CurrentPrincipal(c), req)
	if err != nil {
		respondError(c, "Hdl.CreateProduct", err, "Failed to create product")
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req domain.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	product, err := h.productService.UpdateProduct(c.Request.Context(), auth.CurrentPrincipal(c), c.Param("id"), req)
	if err != nil {
		respondError(c, "Hdl.UpdateProduct", err, "Failed to update product")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) AdjustStock(c *gin.Context) {
	var req domain.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	productID := c.Param("id")
	quantity, err := h.productService.AdjustStock(c.Request.Context(), auth.CurrentPrincipal(c), productID, req.Delta)
	if err != nil {
		respondError(c, "Hdl.AdjustStock", err, "Failed to adjust stock")
		return
	}
	c.JSON(http.StatusOK, gin.H{"product_id": productID, "quantity": quantity})
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.productService.DeleteProduct(c.Request.Context(), auth.CurrentPrincipal(c), c.Param("id")); err != nil {
		respondError(c, "Hdl.DeleteProduct", err, "Failed to delete product")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

func (h *ProductHandler) UploadImage(c *gin.Context) {
	var req domain.UploadImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	image, err := h.productService.UploadImage(c.Request.Context(), auth.CurrentPrincipal(c), req.File)
	if err != nil {
		respondError(c, "Hdl.UploadImage", err, "Image upload failed")
		return
	}
	c.JSON(http.StatusOK, image)
}

func respondError(c *gin.Context, op string, err error, fallback string) {
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidProduct), errors.Is(err, media.ErrEmptyPayload):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrNegativeStock):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, media.ErrUpstreamUnavailable):
		logger.Error(op+": media host error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": fallback})
	default:
		logger.Error(op+": service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
