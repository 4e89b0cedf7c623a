package handlers

import (
	"net/http"

	"MedicApp/logger"
	"MedicApp/middlewares"
	"MedicApp/services"

	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	dashboard *services.DashboardService
	log       *logger.Logger
}

func NewPatientHandler(dashboard *services.DashboardService, log *logger.Logger) *PatientHandler {
	return &PatientHandler{dashboard: dashboard, log: log}
}

// Dashboard lists the logged-in patient's appointments with doctor names.
func (h *PatientHandler) Dashboard(c *gin.Context) {
	userID, role, ok := identity(c, h.log)
	if !ok {
		return
	}

	appointments, err := h.dashboard.PatientUpcoming(c.Request.Context(), userID)
	if err != nil {
		middlewares.RespondError(c, h.log, err)
		return
	}
	middlewares.RespondJSON(c, appointmentViews(appointments, role), http.StatusOK)
}
