package repositories

import (
	"context"
	"fmt"
	"strconv"

	"MedicApp/database"
	"MedicApp/models"
)

type AppointmentRepository struct {
	backend database.Backend
}

func NewAppointmentRepository(backend database.Backend) *AppointmentRepository {
	return &AppointmentRepository{backend: backend}
}

// Create inserts the appointment and sets its generated id.
func (r *AppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	id, err := r.backend.Insert(ctx, "appointments", map[string]interface{}{
		"patient_id":       appointment.PatientID,
		"doctor_id":        appointment.DoctorID,
		"appointment_date": appointment.AppointmentDate,
		"reason":           appointment.Reason,
		"type":             appointment.Type,
		"status":           string(appointment.Status),
	})
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	if appointment.ID, err = strconv.ParseInt(id, 10, 64); err != nil {
		return models.NewBackendError(fmt.Errorf("unexpected appointment id %q: %w", id, err))
	}
	return nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id int64) (*models.Appointment, error) {
	var appointments []models.Appointment
	q := database.Query{Table: "appointments"}.
		Eq("id", strconv.FormatInt(id, 10)).
		Expand("doctors", "doctor_id", "name").
		Expand("patients", "patient_id", "first_name", "last_name")
	if err := selectRows(ctx, r.backend, q, &appointments); err != nil {
		return nil, err
	}
	if len(appointments) == 0 {
		return nil, models.NewNotFoundError("Appointment not found")
	}
	return &appointments[0], nil
}

// GetByDoctor lists a doctor's appointments with the patient's name, earliest first.
func (r *AppointmentRepository) GetByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	q := database.Query{
		Table:   "appointments",
		Columns: []string{"id", "patient_id", "doctor_id", "appointment_date", "reason", "type", "status"},
	}.
		Eq("doctor_id", doctorID).
		OrderBy("appointment_date", true).
		Expand("patients", "patient_id", "first_name", "last_name")
	return r.list(ctx, q)
}

// GetByPatient lists a patient's appointments with the doctor's name, earliest first.
func (r *AppointmentRepository) GetByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	q := database.Query{
		Table:   "appointments",
		Columns: []string{"id", "patient_id", "doctor_id", "appointment_date", "reason", "type", "status"},
	}.
		Eq("patient_id", patientID).
		OrderBy("appointment_date", true).
		Expand("doctors", "doctor_id", "name")
	return r.list(ctx, q)
}

func (r *AppointmentRepository) list(ctx context.Context, q database.Query) ([]models.Appointment, error) {
	appointments := []models.Appointment{}
	if err := selectRows(ctx, r.backend, q, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

// UpdateStatus overwrites the status whatever it currently is.
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id int64, status models.AppointmentStatus) error {
	err := r.backend.Update(ctx, "appointments", strconv.FormatInt(id, 10), map[string]interface{}{
		"status": string(status),
	})
	if err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}
	return nil
}
