package middlewares

import (
	"context"
	"errors"
	"net/http"

	"MedicApp/logger"
	"MedicApp/models"
	"MedicApp/session"
	"MedicApp/utils"

	"github.com/gin-gonic/gin"
)

// DeviceTokenHeader carries the token issued by POST /devices.
const DeviceTokenHeader = "X-Device-Token"

// contextKey defines a custom context key type to store request identity in the context.
type contextKey string

const (
	sessionKey  contextKey = "session"
	userIDKey   contextKey = "userID"
	userRoleKey contextKey = "userRole"
)

// RoleResolver is what SessionRequired needs to branch on role.
type RoleResolver interface {
	ResolveRole(ctx context.Context, userID string) (models.Role, error)
}

// DeviceAuthMiddleware validates the device token and attaches the device's session to the request.
func DeviceAuthMiddleware(tokens *utils.TokenMaker, sessions *session.Manager, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(DeviceTokenHeader)
		if token == "" {
			HttpError(c, log, "Missing device token", http.StatusUnauthorized, nil)
			return
		}

		claims, err := tokens.ValidateDeviceToken(token)
		if err != nil {
			HttpError(c, log, "Invalid device token", http.StatusUnauthorized, err)
			return
		}

		sess, err := sessions.For(claims.DeviceID)
		if err != nil {
			HttpError(c, log, "Invalid device token", http.StatusUnauthorized, err)
			return
		}

		ctx := context.WithValue(c.Request.Context(), sessionKey, sess)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// SessionRequired reads the logged-in user of the device and resolves its role. A device with
// nobody logged in, or whose user no longer resolves, is sent to login.
func SessionRequired(roles RoleResolver, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		sess, err := ExtractSessionFromContext(ctx)
		if err != nil {
			HttpError(c, log, "Missing device token", http.StatusUnauthorized, err)
			return
		}

		userID, ok, err := sess.GetCurrentUser(ctx)
		if err != nil {
			RespondError(c, log, err)
			return
		}
		if !ok {
			HttpError(c, log, "Please log in", http.StatusUnauthorized, nil)
			return
		}

		role, err := roles.ResolveRole(ctx, userID)
		if models.IsNotFound(err) {
			if clearErr := sess.ClearCurrentUser(ctx); clearErr != nil {
				log.WithUserID(userID).WithError(clearErr).Warn("Failed to clear stale session")
			}
			HttpError(c, log, models.MessageOf(err), http.StatusUnauthorized, err)
			return
		}
		if err != nil {
			RespondError(c, log, err)
			return
		}

		ctx = context.WithValue(ctx, userIDKey, userID)
		ctx = context.WithValue(ctx, userRoleKey, role)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RoleAuthMiddleware restricts access to users with the specified role.
func RoleAuthMiddleware(requiredRole models.Role, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, err := ExtractUserRoleFromContext(c.Request.Context())
		if err != nil {
			HttpError(c, log, "Please log in", http.StatusUnauthorized, err)
			return
		}

		if role != requiredRole {
			HttpError(c, log, "Only "+string(requiredRole)+"s can do this", http.StatusForbidden, nil)
			return
		}

		c.Next()
	}
}

// ExtractSessionFromContext retrieves the device session from the context.
func ExtractSessionFromContext(ctx context.Context) (*session.Session, error) {
	sess, ok := ctx.Value(sessionKey).(*session.Session)
	if !ok {
		return nil, errors.New("session not found in context")
	}
	return sess, nil
}

// ExtractUserIDFromContext retrieves the userID from the context.
func ExtractUserIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok {
		return "", errors.New("user ID not found in context")
	}
	return userID, nil
}

// ExtractUserRoleFromContext retrieves the user role from the context.
func ExtractUserRoleFromContext(ctx context.Context) (models.Role, error) {
	userRole, ok := ctx.Value(userRoleKey).(models.Role)
	if !ok {
		return "", errors.New("user role not found in context")
	}
	return userRole, nil
}
