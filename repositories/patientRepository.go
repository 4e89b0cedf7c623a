package repositories

import (
	"context"
	"fmt"

	"MedicApp/database"
	"MedicApp/models"
)

type PatientRepository struct {
	backend database.Backend
}

func NewPatientRepository(backend database.Backend) *PatientRepository {
	return &PatientRepository{backend: backend}
}

func (r *PatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	_, err := r.backend.Insert(ctx, "patients", map[string]interface{}{
		"id":          patient.ID,
		"first_name":  patient.FirstName,
		"last_name":   patient.LastName,
		"gender":      patient.Gender,
		"birth_date":  patient.BirthDate,
		"email":       patient.Email,
		"phone":       patient.Phone,
		"address":     patient.Address,
		"blood_group": patient.BloodGroup,
	})
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *PatientRepository) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	var patients []models.Patient
	if err := selectRows(ctx, r.backend, database.Query{Table: "patients"}.Eq("id", id), &patients); err != nil {
		return nil, err
	}
	if len(patients) == 0 {
		return nil, models.NewNotFoundError("Patient profile not found")
	}
	return &patients[0], nil
}

// Exists reports whether a patient profile with id is present.
func (r *PatientRepository) Exists(ctx context.Context, id string) (bool, error) {
	var patients []models.Patient
	q := database.Query{Table: "patients", Columns: []string{"id"}}.Eq("id", id)
	if err := selectRows(ctx, r.backend, q, &patients); err != nil {
		return false, err
	}
	return len(patients) > 0, nil
}

func (r *PatientRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	if err := r.backend.Update(ctx, "patients", id, fields); err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}
	return nil
}
