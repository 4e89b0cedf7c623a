package controllers

import (
	"net/http"

	"MedicApp/monitoring"

	"github.com/gin-gonic/gin"
)

// rootHandler handles requests to the root path
func rootHandler(c *gin.Context) {
	c.String(http.StatusOK, "Welcome to MedicApp!")
}

// SetupRootRoute sets up the unauthenticated service routes.
func SetupRootRoute(router *gin.Engine) {
	router.GET("/", rootHandler)
	router.GET("/metrics", gin.WrapH(monitoring.Handler()))
}
