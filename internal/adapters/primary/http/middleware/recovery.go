package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"storage-price-estimator/internal/adapters/primary/http/dto"
)

// Recovery turns a panic into a "Server error" payload instead of dropping
// the connection.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.WithFields(log.Fields{
			"panic":      recovered,
			"path":       c.Request.URL.Path,
			"request_id": c.GetString(keyRequestID),
		}).Error("request panicked")

		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Server error",
			Message: fmt.Sprint(recovered),
		})
	})
}
