package handlers

import (
	"net/http"

	"MedicApp/logger"
	"MedicApp/middlewares"
	"MedicApp/services"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	service *services.ProfileService
	log     *logger.Logger
}

func NewProfileHandler(service *services.ProfileService, log *logger.Logger) *ProfileHandler {
	return &ProfileHandler{service: service, log: log}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, _, ok := identity(c, h.log)
	if !ok {
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		middlewares.RespondError(c, h.log, err)
		return
	}
	middlewares.RespondJSON(c, profile, http.StatusOK)
}

// UpdateProfile takes a JSON object of the fields to change.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, _, ok := identity(c, h.log)
	if !ok {
		return
	}

	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		middlewares.HttpError(c, h.log, "Invalid request body", http.StatusBadRequest, err)
		return
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), userID, fields)
	if err != nil {
		middlewares.RespondError(c, h.log, err)
		return
	}
	middlewares.RespondJSON(c, profile, http.StatusOK)
}
