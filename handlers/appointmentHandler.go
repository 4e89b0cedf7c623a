package handlers

import (
	"net/http"
	"time"

	"MedicApp/logger"
	"MedicApp/middlewares"
	"MedicApp/models"
	"MedicApp/services"

	"github.com/gin-gonic/gin"
)

// AppointmentView adds the name the list shows next to each appointment.
type AppointmentView struct {
	models.Appointment
	CounterpartName string `json:"counterpart_name"`
}

func appointmentViews(appointments []models.Appointment, role models.Role) []AppointmentView {
	views := make([]AppointmentView, 0, len(appointments))
	for _, a := range appointments {
		views = append(views, AppointmentView{Appointment: a, CounterpartName: a.CounterpartName(role)})
	}
	return views
}

type AppointmentHandler struct {
	service *services.AppointmentService
	log     *logger.Logger
	now     func() time.Time
}

func NewAppointmentHandler(service *services.AppointmentService, log *logger.Logger) *AppointmentHandler {
	return &AppointmentHandler{service: service, log: log, now: time.Now}
}

func (h *AppointmentHandler) BookAppointment(c *gin.Context) {
	userID, _, ok := identity(c, h.log)
	if !ok {
		return
	}

	var input services.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		middlewares.HttpError(c, h.log, "Invalid request body", http.StatusBadRequest, err)
		return
	}

	appointment, err := h.service.BookAppointment(c.Request.Context(), userID, input)
	if err != nil {
		middlewares.RespondError(c, h.log, err)
		return
	}
	middlewares.RespondJSON(c, appointment, http.StatusCreated)
}

// ListAppointments branches on the caller's role.
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	userID, role, ok := identity(c, h.log)
	if !ok {
		return
	}

	appointments, err := h.service.ListAppointments(c.Request.Context(), userID, role)
	if err != nil {
		middlewares.RespondError(c, h.log, err)
		return
	}
	middlewares.RespondJSON(c, appointmentViews(appointments, role), http.StatusOK)
}

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, h.log, "id")
	if !ok {
		return
	}

	var input struct {
		Status models.AppointmentStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		middlewares.HttpError(c, h.log, "Invalid request body", http.StatusBadRequest, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.service.UpdateStatus(ctx, id, input.Status); err != nil {
		middlewares.RespondError(c, h.log, err)
		return
	}

	appointment, err := h.service.GetAppointment(ctx, id)
	if err != nil {
		middlewares.RespondError(c, h.log, err)
		return
	}
	middlewares.RespondJSON(c, appointment, http.StatusOK)
}

func (h *AppointmentHandler) BookingSlots(c *gin.Context) {
	middlewares.RespondJSON(c, h.service.BookingSlots(h.now()), http.StatusOK)
}
