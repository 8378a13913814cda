package middleware

import "github.com/gin-gonic/gin"

// Chain returns the server middleware in order. Recovery sits innermost so a
// panicking handler still gets its request logged and measured.
func Chain(metricsEnabled bool) []gin.HandlerFunc {
	chain := []gin.HandlerFunc{RequestID(), Logging()}
	if metricsEnabled {
		chain = append(chain, Metrics())
	}
	return append(chain, CORS(), Recovery())
}
