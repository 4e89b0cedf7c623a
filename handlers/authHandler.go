package handlers

import (
	"net/http"

	"MedicApp/logger"
	"MedicApp/middlewares"
	"MedicApp/services"
	"MedicApp/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	AuthService services.AuthService
	tokens      *utils.TokenMaker
	log         *logger.Logger
}

func NewAuthHandler(authService services.AuthService, tokens *utils.TokenMaker, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		AuthService: authService,
		tokens:      tokens,
		log:         log,
	}
}

// RegisterDevice issues a token for a new installation of the app.
func (h *AuthHandler) RegisterDevice(c *gin.Context) {
	token, claims, err := h.tokens.GenerateDeviceToken()
	if err != nil {
		middlewares.HttpError(c, h.log, "Failed to register device", http.StatusInternalServerError, err)
		return
	}

	body := gin.H{
		"device_id":    claims.DeviceID,
		"device_token": token,
	}
	if !claims.Expiry.IsZero() {
		body["expires_at"] = claims.Expiry
	}
	middlewares.RespondJSON(c, body, http.StatusCreated)
}

// SignUp handles new user registration and logs the device in.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var input utils.SignUpInput
	if err := c.ShouldBindJSON(&input); err != nil {
		middlewares.HttpError(c, h.log, "Invalid request body", http.StatusBadRequest, err)
		return
	}

	sess, ok := deviceSession(c, h.log)
	if !ok {
		return
	}

	result, err := h.AuthService.SignUp(c.Request.Context(), sess, input)
	if err != nil {
		middlewares.RespondError(c, h.log, err)
		return
	}
	middlewares.RespondJSON(c, result, http.StatusCreated)
}

// Login authenticates the user and logs the device in.
func (h *AuthHandler) Login(c *gin.Context) {
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&credentials); err != nil {
		middlewares.HttpError(c, h.log, "Invalid request body", http.StatusBadRequest, err)
		return
	}

	sess, ok := deviceSession(c, h.log)
	if !ok {
		return
	}

	result, err := h.AuthService.Login(c.Request.Context(), sess, credentials.Email, credentials.Password)
	if err != nil {
		middlewares.RespondError(c, h.log, err)
		return
	}
	middlewares.RespondJSON(c, result, http.StatusOK)
}

// Logout clears the device's session.
func (h *AuthHandler) Logout(c *gin.Context) {
	sess, ok := deviceSession(c, h.log)
	if !ok {
		return
	}

	if err := h.AuthService.Logout(c.Request.Context(), sess); err != nil {
		middlewares.RespondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Session returns who is logged in on the device and where they land.
func (h *AuthHandler) Session(c *gin.Context) {
	userID, role, ok := identity(c, h.log)
	if !ok {
		return
	}
	middlewares.RespondJSON(c, services.AuthResult{UserID: userID, Role: role, Area: role.Area()}, http.StatusOK)
}
