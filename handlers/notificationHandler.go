package handlers

import (
	"net/http"

	"MedicApp/logger"
	"MedicApp/middlewares"
	"MedicApp/services"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	service *services.NotificationService
	log     *logger.Logger
}

func NewNotificationHandler(service *services.NotificationService, log *logger.Logger) *NotificationHandler {
	return &NotificationHandler{service: service, log: log}
}

func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, _, ok := identity(c, h.log)
	if !ok {
		return
	}

	notifications, err := h.service.ListNotifications(c.Request.Context(), userID)
	if err != nil {
		middlewares.RespondError(c, h.log, err)
		return
	}
	middlewares.RespondJSON(c, notifications, http.StatusOK)
}
