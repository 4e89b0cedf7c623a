package handlers

import (
	"net/http"
	"time"

	"MedicApp/logger"
	"MedicApp/middlewares"
	"MedicApp/services"

	"github.com/gin-gonic/gin"
)

type DoctorHandler struct {
	appointments *services.AppointmentService
	dashboard    *services.DashboardService
	log          *logger.Logger
	now          func() time.Time
}

func NewDoctorHandler(appointments *services.AppointmentService, dashboard *services.DashboardService, log *logger.Logger) *DoctorHandler {
	return &DoctorHandler{appointments: appointments, dashboard: dashboard, log: log, now: time.Now}
}

// GetAllDoctors returns the directory for the booking form.
func (h *DoctorHandler) GetAllDoctors(c *gin.Context) {
	doctors, err := h.appointments.ListDoctors(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, h.log, err)
		return
	}
	middlewares.RespondJSON(c, doctors, http.StatusOK)
}

// Dashboard returns the statistics of the logged-in doctor for the current month.
func (h *DoctorHandler) Dashboard(c *gin.Context) {
	userID, _, ok := identity(c, h.log)
	if !ok {
		return
	}

	stats, err := h.dashboard.DoctorStatistics(c.Request.Context(), userID, h.now())
	if err != nil {
		middlewares.RespondError(c, h.log, err)
		return
	}
	middlewares.RespondJSON(c, stats, http.StatusOK)
}
