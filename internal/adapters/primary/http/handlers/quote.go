package handlers

import (
	"errors"
	"net/http"

	"storage-price-estimator/internal/adapters/primary/http/dto"
	"storage-price-estimator/internal/core/domain"
	"storage-price-estimator/internal/core/services"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// multipartOverhead leaves room for boundaries and the other form fields on
// top of the file itself.
const multipartOverhead = 1 << 20

// CalculatePrice prices an uploaded file. Form fields: file (required),
// isPermanent, basePrice, bytePrice.
func (h *Handler) CalculatePrice(c *gin.Context) {
	bodyLimit := h.maxUploadBytes + multipartOverhead
	if c.Request.ContentLength > bodyLimit {
		mapQuoteError(c, tooLarge(h.maxUploadBytes), nil)
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, bodyLimit)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			mapQuoteError(c, tooLarge(h.maxUploadBytes), nil)
			return
		}
		log.WithError(err).Debug("no file in upload")
		mapQuoteError(c, domain.ErrMissingInput, nil)
		return
	}

	fileSize := fileHeader.Size
	if fileSize > h.maxUploadBytes {
		mapQuoteError(c, tooLarge(h.maxUploadBytes), &fileSize)
		return
	}

	quote, err := h.quoteSvc.Quote(c.Request.Context(), services.QuoteInput{
		FileSize:    &fileSize,
		IsPermanent: postForm(c, "isPermanent"),
		BasePrice:   postForm(c, "basePrice"),
		BytePrice:   postForm(c, "bytePrice"),
	})
	if err != nil {
		log.WithError(err).WithField("file_size", fileSize).Error("calculate price failed")
		mapQuoteError(c, err, &fileSize)
		return
	}

	c.JSON(http.StatusOK, dto.ToQuoteResponse(quote))
}

// CreateQuote prices a file by its size, without uploading it.
func (h *Handler) CreateQuote(c *gin.Context) {
	var req dto.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: errInvalidRequest, Message: err.Error()})
		return
	}

	quote, err := h.quoteSvc.Quote(c.Request.Context(), services.QuoteInput{
		FileSize:    req.FileSize,
		IsPermanent: req.IsPermanent,
		BasePrice:   req.BasePrice,
		BytePrice:   req.BytePrice,
	})
	if err != nil {
		if errors.Is(err, domain.ErrMissingInput) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: errNoFileUploaded, Message: "fileSize is required"})
			return
		}
		log.WithError(err).Error("create quote failed")
		mapQuoteError(c, err, req.FileSize)
		return
	}

	c.JSON(http.StatusOK, dto.ToQuoteResponse(quote))
}

func (h *Handler) GetDefaults(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToDefaultsResponse(h.quoteSvc.Defaults(), h.maxUploadBytes))
}

func (h *Handler) Health(c *gin.Context) {
	oracle := h.quoteSvc.OracleName()
	if !h.quoteSvc.OracleAvailable(c.Request.Context()) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "oracle": oracle})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "oracle": oracle})
}

// postForm returns nil for absent fields so the service can tell them apart
// from empty ones.
func postForm(c *gin.Context, key string) any {
	v, ok := c.GetPostForm(key)
	if !ok {
		return nil
	}
	return v
}
