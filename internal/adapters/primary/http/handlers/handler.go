package handlers

import (
	"storage-price-estimator/internal/core/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	quoteSvc       *services.QuoteService
	maxUploadBytes int64
}

func New(quoteSvc *services.QuoteService, maxUploadBytes int64) *Handler {
	return &Handler{
		quoteSvc:       quoteSvc,
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Quotes
	r.POST("/calculate-price", h.CalculatePrice)
	r.POST("/quotes", h.CreateQuote)

	// Pricing defaults
	r.GET("/defaults", h.GetDefaults)
}

// RegisterRootRoutes mounts the health check and the upload form endpoint
// at the paths the web page posts to.
func (h *Handler) RegisterRootRoutes(r gin.IRoutes) {
	r.GET("/healthz", h.Health)
	r.POST("/calculate-price", h.CalculatePrice)
}
