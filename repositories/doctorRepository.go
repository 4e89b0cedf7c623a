package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"MedicApp/cache"
	"MedicApp/database"
	"MedicApp/logger"
	"MedicApp/models"
)

const doctorsCacheKey = "doctors_cache"

type DoctorRepository struct {
	backend database.Backend
	cache   cache.Store
	expiry  time.Duration
	log     *logger.Logger
}

func NewDoctorRepository(backend database.Backend, cache cache.Store, expiry time.Duration, log *logger.Logger) *DoctorRepository {
	return &DoctorRepository{backend: backend, cache: cache, expiry: expiry, log: log}
}

func (r *DoctorRepository) Create(ctx context.Context, doctor *models.Doctor) error {
	_, err := r.backend.Insert(ctx, "doctors", map[string]interface{}{
		"id":        doctor.ID,
		"name":      doctor.Name,
		"specialty": doctor.Specialty,
		"bio":       doctor.Bio,
	})
	if err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	r.invalidate(ctx)
	return nil
}

func (r *DoctorRepository) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	var doctors []models.Doctor
	if err := selectRows(ctx, r.backend, database.Query{Table: "doctors"}.Eq("id", id), &doctors); err != nil {
		return nil, err
	}
	if len(doctors) == 0 {
		return nil, models.NewNotFoundError("Doctor profile not found")
	}
	return &doctors[0], nil
}

// Exists reports whether a doctor profile with id is present.
func (r *DoctorRepository) Exists(ctx context.Context, id string) (bool, error) {
	var doctors []models.Doctor
	q := database.Query{Table: "doctors", Columns: []string{"id"}}.Eq("id", id)
	if err := selectRows(ctx, r.backend, q, &doctors); err != nil {
		return false, err
	}
	return len(doctors) > 0, nil
}

// GetAll returns the directory shown by the booking picker, cache-aside.
func (r *DoctorRepository) GetAll(ctx context.Context) ([]models.Doctor, error) {
	cached, err := r.cache.Get(ctx, doctorsCacheKey)
	if err != nil {
		r.log.WithComponent("doctors").WithError(err).Warn("Failed to get doctors from cache")
	} else if cached != "" {
		var doctors []models.Doctor
		if err := json.Unmarshal([]byte(cached), &doctors); err == nil {
			return doctors, nil
		}
	}

	doctors := []models.Doctor{}
	q := database.Query{Table: "doctors", Columns: []string{"id", "name", "specialty"}}.OrderBy("name", true)
	if err := selectRows(ctx, r.backend, q, &doctors); err != nil {
		return nil, err
	}

	doctorsJSON, err := json.Marshal(doctors)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal doctors: %w", err)
	}
	if err := r.cache.Set(ctx, doctorsCacheKey, doctorsJSON, r.expiry); err != nil {
		r.log.WithComponent("doctors").WithError(err).Warn("Failed to set doctors in cache")
	}
	return doctors, nil
}

// Update writes the given columns of the profile.
func (r *DoctorRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	if err := r.backend.Update(ctx, "doctors", id, fields); err != nil {
		return fmt.Errorf("failed to update doctor: %w", err)
	}
	r.invalidate(ctx)
	return nil
}

func (r *DoctorRepository) DeleteAllCache(ctx context.Context) error {
	return r.cache.Delete(ctx, doctorsCacheKey)
}

func (r *DoctorRepository) invalidate(ctx context.Context) {
	if err := r.DeleteAllCache(ctx); err != nil {
		r.log.WithComponent("doctors").WithError(err).Warn("Failed to delete doctors cache")
	}
}
