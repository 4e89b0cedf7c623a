package services

import (
	"context"
	"fmt"
	"time"

	"MedicApp/models"
	"MedicApp/repositories"
	"MedicApp/utils"
)

const (
	bookingDays      = 30
	bookingSlotEvery = 30 * time.Minute
)

// BookingInput is the booking form of a patient.
type BookingInput struct {
	DoctorID        string `json:"doctor_id"`
	AppointmentDate string `json:"appointment_date"`
	Reason          string `json:"reason"`
	Type            string `json:"type"`
}

// AppointmentService runs the appointment lifecycle: scheduled, then cancelled or completed.
// It does not check who is calling or whether a transition is allowed.
type AppointmentService struct {
	repository *repositories.AppointmentRepository
	doctors    *repositories.DoctorRepository
}

func NewAppointmentService(repository *repositories.AppointmentRepository, doctors *repositories.DoctorRepository) *AppointmentService {
	return &AppointmentService{repository: repository, doctors: doctors}
}

// BookAppointment creates a scheduled appointment with the given fields. Overlapping bookings are allowed.
func (s *AppointmentService) BookAppointment(ctx context.Context, patientID string, in BookingInput) (*models.Appointment, error) {
	if patientID == "" {
		return nil, models.NewValidationError("patient_id: cannot be blank.", nil)
	}
	if err := utils.ValidateBooking(in.DoctorID, in.AppointmentDate); err != nil {
		return nil, models.NewValidationError(err.Error(), err)
	}
	date, err := models.ParseTimestamp(in.AppointmentDate)
	if err != nil {
		return nil, models.NewValidationError(err.Error(), err)
	}

	isDoctor, err := s.doctors.Exists(ctx, in.DoctorID)
	if err != nil {
		return nil, err
	}
	if !isDoctor {
		return nil, models.NewValidationError("doctor_id: unknown doctor.", nil)
	}

	appointment := &models.Appointment{
		PatientID:       patientID,
		DoctorID:        in.DoctorID,
		AppointmentDate: date,
		Reason:          in.Reason,
		Type:            in.Type,
		Status:          models.StatusScheduled,
	}
	if err := s.repository.Create(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// ListAppointments returns the appointments of userID seen from role, earliest first.
func (s *AppointmentService) ListAppointments(ctx context.Context, userID string, role models.Role) ([]models.Appointment, error) {
	switch role {
	case models.RoleDoctor:
		return s.repository.GetByDoctor(ctx, userID)
	case models.RolePatient:
		return s.repository.GetByPatient(ctx, userID)
	default:
		return nil, models.NewValidationError(fmt.Sprintf("unknown role %q", role), nil)
	}
}

func (s *AppointmentService) GetAppointment(ctx context.Context, id int64) (*models.Appointment, error) {
	return s.repository.GetByID(ctx, id)
}

// UpdateStatus sets the status to newStatus whatever it was, terminal or not. Last writer wins.
func (s *AppointmentService) UpdateStatus(ctx context.Context, appointmentID int64, newStatus models.AppointmentStatus) error {
	if err := utils.ValidateStatus(newStatus); err != nil {
		return models.NewValidationError(err.Error(), err)
	}
	return s.repository.UpdateStatus(ctx, appointmentID, newStatus)
}

// ListDoctors is the directory the booking form picks from.
func (s *AppointmentService) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	return s.doctors.GetAll(ctx)
}

// BookingSlots offers the next 30 days from from's date and every half hour of a day.
func (s *AppointmentService) BookingSlots(from time.Time) models.BookingSlots {
	slots := models.BookingSlots{
		Dates: make([]string, 0, bookingDays),
		Times: make([]string, 0, int(24*time.Hour/bookingSlotEvery)),
	}

	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	for i := 0; i < bookingDays; i++ {
		slots.Dates = append(slots.Dates, day.AddDate(0, 0, i).Format("2006-01-02"))
	}
	for t := time.Duration(0); t < 24*time.Hour; t += bookingSlotEvery {
		slots.Times = append(slots.Times, fmt.Sprintf("%02d:%02d", int(t.Hours()), int(t.Minutes())%60))
	}
	return slots
}
