package services

import (
	"context"
	"fmt"
	"sort"

	"MedicApp/models"
	"MedicApp/repositories"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type ProfileService struct {
	roles    *RoleService
	doctors  *repositories.DoctorRepository
	patients *repositories.PatientRepository
}

func NewProfileService(roles *RoleService, doctors *repositories.DoctorRepository, patients *repositories.PatientRepository) *ProfileService {
	return &ProfileService{roles: roles, doctors: doctors, patients: patients}
}

// GetProfile returns the doctor or patient record of userID.
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	role, err := s.roles.ResolveRole(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := &models.Profile{Role: role}
	if role == models.RoleDoctor {
		profile.Doctor, err = s.doctors.GetByID(ctx, userID)
	} else {
		profile.Patient, err = s.patients.GetByID(ctx, userID)
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdateProfile writes the editable fields of the user's profile and returns the result.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, fields map[string]interface{}) (*models.Profile, error) {
	role, err := s.roles.ResolveRole(ctx, userID)
	if err != nil {
		return nil, err
	}

	editable := models.PatientEditableFields
	if role == models.RoleDoctor {
		editable = models.DoctorEditableFields
	}
	changes, err := editableChanges(fields, editable)
	if err != nil {
		return nil, err
	}

	if role == models.RoleDoctor {
		err = s.doctors.Update(ctx, userID, changes)
	} else {
		err = s.patients.Update(ctx, userID, changes)
	}
	if err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}

// editableChanges keeps fields to the allowed columns and requires string values.
func editableChanges(fields map[string]interface{}, editable []string) (map[string]interface{}, error) {
	allowed := make(map[string]bool, len(editable))
	for _, f := range editable {
		allowed[f] = true
	}

	var rejected []string
	changes := make(map[string]interface{}, len(fields))
	for name, value := range fields {
		if !allowed[name] {
			rejected = append(rejected, name)
			continue
		}
		s, ok := value.(string)
		if !ok {
			return nil, models.NewValidationError(fmt.Sprintf("%s: must be a string.", name), nil)
		}
		changes[name] = s
	}
	if len(rejected) > 0 {
		sort.Strings(rejected)
		return nil, models.NewValidationError(fmt.Sprintf("fields cannot be edited: %v", rejected), nil)
	}
	if len(changes) == 0 {
		return nil, models.NewValidationError("no fields to update", nil)
	}

	if email, ok := changes["email"].(string); ok && email != "" {
		if err := validation.Validate(email, is.EmailFormat); err != nil {
			return nil, models.NewValidationError("email: "+err.Error()+".", err)
		}
	}
	if name, ok := changes["name"]; ok {
		if err := validation.Validate(name, validation.Required); err != nil {
			return nil, models.NewValidationError("name: "+err.Error()+".", err)
		}
	}
	return changes, nil
}
