package report

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ridloal/lux-storefront/internal/platform/auth"
	"github.com/ridloal/lux-storefront/internal/platform/logger"
)

type ReportHandler struct {
	reportService ReportService
}

func NewReportHandler(rs ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	reportRoutes := router.Group("/reports")
	{
		reportRoutes.GET("", h.Analyse)
		reportRoutes.GET("/export", h.Export)
	}
}

func (h *ReportHandler) Analyse(c *gin.Context) {
	period, err := ParsePeriod(c.Query("period"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	r, err := h.reportService.Analyse(c.Request.Context(), auth.CurrentPrincipal(c), period)
	if err != nil {
		respondError(c, "Hdl.Analyse", err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *ReportHandler) Export(c *gin.Context) {
	period, err := ParsePeriod(c.Query("period"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	format, err := ParseFormat(c.Query("format"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	filename, err := h.reportService.Export(c.Request.Context(), auth.CurrentPrincipal(c), period, format, &buf)
	if err != nil {
		respondError(c, "Hdl.Export", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

func respondError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, ErrUnknownPeriod), errors.Is(err, ErrUnknownFormat):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		logger.Error(op+": service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
	}
}
