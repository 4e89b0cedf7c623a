package services

import (
	"context"
	"fmt"

	"MedicApp/models"
	"MedicApp/repositories"
)

// RoleService decides whether a user is a doctor or a patient from the profile that exists for it.
// Nothing is cached: the user or profile may have been removed since the last request.
type RoleService struct {
	users    repositories.UserRepository
	doctors  *repositories.DoctorRepository
	patients *repositories.PatientRepository
}

func NewRoleService(users repositories.UserRepository, doctors *repositories.DoctorRepository, patients *repositories.PatientRepository) *RoleService {
	return &RoleService{users: users, doctors: doctors, patients: patients}
}

// ResolveRole returns doctor when a doctor profile exists for userID, otherwise patient when a
// patient profile exists. A missing user or profile is a NotFoundError.
func (s *RoleService) ResolveRole(ctx context.Context, userID string) (models.Role, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return "", err
	}

	return s.profileRole(ctx, userID)
}

func (s *RoleService) profileRole(ctx context.Context, userID string) (models.Role, error) {
	isDoctor, err := s.doctors.Exists(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to look up doctor profile: %w", err)
	}
	if isDoctor {
		return models.RoleDoctor, nil
	}

	isPatient, err := s.patients.Exists(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to look up patient profile: %w", err)
	}
	if isPatient {
		return models.RolePatient, nil
	}
	return "", models.NewNotFoundError("Profile not found")
}
