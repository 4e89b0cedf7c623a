package services

import (
	"context"
	"time"

	"MedicApp/models"
	"MedicApp/repositories"
)

type DashboardService struct {
	appointments *repositories.AppointmentRepository
}

func NewDashboardService(appointments *repositories.AppointmentRepository) *DashboardService {
	return &DashboardService{appointments: appointments}
}

// DoctorStatistics counts the doctor's distinct patients, appointments per status and the
// appointments in each week of now's month. Week n covers days 7n+1 to 7n+7.
func (s *DashboardService) DoctorStatistics(ctx context.Context, doctorID string, now time.Time) (*models.DoctorStatistics, error) {
	appointments, err := s.appointments.GetByDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	stats := &models.DoctorStatistics{
		AppointmentsByStatus: make(map[models.AppointmentStatus]int, len(models.AppointmentStatuses)),
	}
	for _, status := range models.AppointmentStatuses {
		stats.AppointmentsByStatus[status] = 0
	}

	patients := make(map[string]bool)
	for _, a := range appointments {
		patients[a.PatientID] = true
		stats.AppointmentsByStatus[a.Status]++

		date := a.AppointmentDate.In(now.Location())
		if date.Year() == now.Year() && date.Month() == now.Month() {
			stats.AppointmentsByWeek[(date.Day()-1)/7]++
		}
	}
	stats.TotalPatients = len(patients)
	return stats, nil
}

// PatientUpcoming lists the patient's appointments with doctor names, earliest first.
func (s *DashboardService) PatientUpcoming(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return s.appointments.GetByPatient(ctx, patientID)
}
