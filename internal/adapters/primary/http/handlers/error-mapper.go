package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"storage-price-estimator/internal/adapters/primary/http/dto"
	"storage-price-estimator/internal/core/domain"

	"github.com/gin-gonic/gin"
)

const (
	errNoFileUploaded   = "No file uploaded"
	errInvalidRequest   = "Invalid request"
	errInvalidFileSize  = "Invalid file size"
	errFileTooLarge     = "File too large"
	errCalculatingPrice = "Error calculating price"
	errServer           = "Server error"
)

// mapQuoteError writes the error payload for err. fileSize is echoed when it
// is already known.
func mapQuoteError(c *gin.Context, err error, fileSize *int64) {
	switch {
	// Missing input
	case errors.Is(err, domain.ErrMissingInput):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: errNoFileUploaded})

	// Bad request / validation errors
	case errors.Is(err, domain.ErrInvalidFileSize):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: errInvalidFileSize, Message: err.Error(), FileSize: fileSize})

	case errors.Is(err, domain.ErrFileTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{Error: errFileTooLarge, Message: err.Error(), FileSize: fileSize})

	// Computation failures
	case errors.Is(err, domain.ErrComputationFailure):
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: errCalculatingPrice, Message: err.Error(), FileSize: fileSize})

	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: errServer, Message: err.Error()})
	}
}

func tooLarge(limit int64) error {
	return fmt.Errorf("%w of %d bytes", domain.ErrFileTooLarge, limit)
}
