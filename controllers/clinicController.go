package controllers

import (
	"MedicApp/handlers"

	"github.com/gin-gonic/gin"
)

// Guards are the middleware chains the routes are protected by.
type Guards struct {
	Device  gin.HandlerFunc
	Session gin.HandlerFunc
	Doctor  gin.HandlerFunc
	Patient gin.HandlerFunc
}

// ClinicHandlers are the handlers behind the logged-in screens.
type ClinicHandlers struct {
	Profile      *handlers.ProfileHandler
	Doctor       *handlers.DoctorHandler
	Patient      *handlers.PatientHandler
	Appointment  *handlers.AppointmentHandler
	Blog         *handlers.BlogHandler
	Notification *handlers.NotificationHandler
}

// SetupClinicRoutes registers every route that needs a logged-in device.
func SetupClinicRoutes(router *gin.Engine, guards Guards, h ClinicHandlers) {
	loggedIn := router.Group("/", guards.Device, guards.Session)
	{
		loggedIn.GET("/me/profile", h.Profile.GetProfile)
		loggedIn.PUT("/me/profile", h.Profile.UpdateProfile)

		loggedIn.GET("/doctors", h.Doctor.GetAllDoctors)

		loggedIn.GET("/appointments", h.Appointment.ListAppointments)
		loggedIn.GET("/appointments/slots", h.Appointment.BookingSlots)
		loggedIn.POST("/appointments", guards.Patient, h.Appointment.BookAppointment)
		loggedIn.PATCH("/appointments/:id/status", guards.Doctor, h.Appointment.UpdateStatus)

		loggedIn.GET("/blogs", h.Blog.ListBlogs)
		loggedIn.GET("/blogs/:id", h.Blog.GetBlog)
		loggedIn.POST("/blogs", guards.Doctor, h.Blog.CreateBlog)
		loggedIn.PUT("/blogs/:id", h.Blog.UpdateBlog)
		loggedIn.DELETE("/blogs/:id", h.Blog.DeleteBlog)

		loggedIn.GET("/notifications", h.Notification.ListNotifications)

		loggedIn.GET("/dashboard/doctor", guards.Doctor, h.Doctor.Dashboard)
		loggedIn.GET("/dashboard/patient", guards.Patient, h.Patient.Dashboard)
	}
}
