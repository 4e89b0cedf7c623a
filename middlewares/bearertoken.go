package middlewares

import (
	"net/http"
	"strings"
	"time"

	"MedicApp/logger"
	"MedicApp/monitoring"

	"github.com/gin-gonic/gin"
)

// ValidateBearerToken validates the Bearer token in the Authorization header.
func ValidateBearerToken(expectedBearerToken string, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			HttpError(c, log, "Authorization header is missing", http.StatusUnauthorized, nil)
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			HttpError(c, log, "Invalid Authorization header format", http.StatusUnauthorized, nil)
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")

		// Constant-time comparison to mitigate timing attacks
		if !secureCompare(token, expectedBearerToken) {
			HttpError(c, log, "Invalid Bearer Token", http.StatusUnauthorized, nil)
			return
		}

		c.Next()
	}
}

// secureCompare performs a constant-time comparison of two strings to mitigate timing attacks.
func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	result := byte(0)
	for i := 0; i < len(a); i++ {
		result |= a[i] ^ b[i]
	}
	return result == 0
}

// LoggingMiddleware logs and measures every request.
func LoggingMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		elapsed := time.Since(start)
		status := c.Writer.Status()

		monitoring.RecordHTTPRequest(c.Request.Method, endpoint, status, elapsed)
		log.HTTPRequest(c.Request.Method, c.Request.URL.Path, c.ClientIP(), status, elapsed.Milliseconds())
	}
}
