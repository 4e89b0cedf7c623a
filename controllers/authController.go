package controllers

import (
	"MedicApp/handlers"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Handler *handlers.AuthHandler
}

// NewAuthController creates a new AuthController with the given AuthHandler
func NewAuthController(authHandler *handlers.AuthHandler) *AuthController {
	return &AuthController{
		Handler: authHandler,
	}
}

// RegisterRoutes initializes device registration and the authentication routes.
func (ac *AuthController) RegisterRoutes(router *gin.Engine, apiKey gin.HandlerFunc, guards Guards) {
	// Registering a device requires the app's API key
	router.POST("/devices", apiKey, ac.Handler.RegisterDevice)

	authGroup := router.Group("/auth", guards.Device)
	{
		authGroup.POST("/signup", ac.Handler.SignUp)
		authGroup.POST("/login", ac.Handler.Login)
		authGroup.POST("/logout", ac.Handler.Logout)
		authGroup.GET("/session", guards.Session, ac.Handler.Session)
	}
}
