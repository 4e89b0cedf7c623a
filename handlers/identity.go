package handlers

import (
	"net/http"
	"strconv"

	"MedicApp/logger"
	"MedicApp/middlewares"
	"MedicApp/models"
	"MedicApp/session"

	"github.com/gin-gonic/gin"
)

func deviceSession(c *gin.Context, log *logger.Logger) (*session.Session, bool) {
	sess, err := middlewares.ExtractSessionFromContext(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, log, "Missing device token", http.StatusUnauthorized, err)
		return nil, false
	}
	return sess, true
}

// identity returns the logged-in user set by SessionRequired.
func identity(c *gin.Context, log *logger.Logger) (string, models.Role, bool) {
	ctx := c.Request.Context()
	userID, err := middlewares.ExtractUserIDFromContext(ctx)
	if err != nil {
		middlewares.HttpError(c, log, "Please log in", http.StatusUnauthorized, err)
		return "", "", false
	}
	role, err := middlewares.ExtractUserRoleFromContext(ctx)
	if err != nil {
		middlewares.HttpError(c, log, "Please log in", http.StatusUnauthorized, err)
		return "", "", false
	}
	return userID, role, true
}

func pathID(c *gin.Context, log *logger.Logger, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		middlewares.HttpError(c, log, "Invalid "+name, http.StatusBadRequest, err)
		return 0, false
	}
	return id, true
}
