package middlewares

import (
	"net/http"

	"MedicApp/logger"
	"MedicApp/models"

	"github.com/gin-gonic/gin"
)

// Alert is the modal the client shows for a failed action.
type Alert struct {
	Title   string   `json:"title"`
	Message string   `json:"message"`
	Actions []string `json:"actions"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error    string `json:"error"`
	Alert    Alert  `json:"alert"`
	Redirect string `json:"redirect,omitempty"`
}

// RespondJSON writes a JSON response to the client.
func RespondJSON(c *gin.Context, data interface{}, status int) {
	c.JSON(status, data)
}

// HttpError logs an error and writes an alert response to the client.
func HttpError(c *gin.Context, log *logger.Logger, message string, status int, err error) {
	entry := log.WithComponent("api").WithFields(map[string]interface{}{
		"status": status,
		"method": c.Request.Method,
		"path":   c.FullPath(),
	})
	if err != nil {
		entry = entry.WithError(err)
	}
	if status >= http.StatusInternalServerError {
		entry.Error(message)
	} else {
		entry.Warn(message)
	}

	body := ErrorResponse{
		Error: message,
		Alert: Alert{Title: "Error", Message: message, Actions: []string{"OK"}},
	}
	if status == http.StatusUnauthorized {
		body.Redirect = "login"
	}
	c.AbortWithStatusJSON(status, body)
}

// RespondError maps err to its status code and writes the alert.
func RespondError(c *gin.Context, log *logger.Logger, err error) {
	HttpError(c, log, models.MessageOf(err), StatusFor(err), err)
}

// StatusFor returns the HTTP status of an error kind.
func StatusFor(err error) int {
	switch models.KindOf(err) {
	case models.KindNotFound:
		return http.StatusNotFound
	case models.KindValidation:
		return http.StatusBadRequest
	case models.KindForbidden:
		return http.StatusForbidden
	case models.KindUnauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusBadGateway
	}
}
