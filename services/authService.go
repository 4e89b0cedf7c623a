package services

import (
	"context"
	"fmt"
	"time"

	"MedicApp/cache"
	"MedicApp/logger"
	"MedicApp/models"
	"MedicApp/repositories"
	"MedicApp/session"
	"MedicApp/utils"

	"github.com/google/uuid"
)

const (
	signUpLockExpiry = time.Minute
	defaultSpecialty = "General"
	defaultGender    = "Unknown"
)

// AuthResult tells the client who is logged in and where to land.
type AuthResult struct {
	UserID string      `json:"user_id"`
	Role   models.Role `json:"role"`
	Area   string      `json:"area"`
}

func newAuthResult(userID string, role models.Role) *AuthResult {
	return &AuthResult{UserID: userID, Role: role, Area: role.Area()}
}

type AuthService interface {
	SignUp(ctx context.Context, sess *session.Session, in utils.SignUpInput) (*AuthResult, error)
	Login(ctx context.Context, sess *session.Session, email, password string) (*AuthResult, error)
	Logout(ctx context.Context, sess *session.Session) error
}

type authService struct {
	users    repositories.UserRepository
	doctors  *repositories.DoctorRepository
	patients *repositories.PatientRepository
	locks    cache.Store
	log      *logger.Logger
	now      func() time.Time
}

func NewAuthService(users repositories.UserRepository, doctors *repositories.DoctorRepository, patients *repositories.PatientRepository, locks cache.Store, log *logger.Logger) AuthService {
	return &authService{users: users, doctors: doctors, patients: patients, locks: locks, log: log, now: time.Now}
}

// SignUp creates the account and its role profile, then logs the device in as the new user.
func (s *authService) SignUp(ctx context.Context, sess *session.Session, in utils.SignUpInput) (*AuthResult, error) {
	in.Normalize()
	if err := utils.ValidateSignUp(in); err != nil {
		return nil, models.NewValidationError(err.Error(), err)
	}

	lockKey := fmt.Sprintf("user_lock:%s", in.Email)
	lockValue := uuid.New().String()
	locked, err := s.locks.Lock(ctx, lockKey, lockValue, signUpLockExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, models.NewValidationError("A signup for this email is already in progress", nil)
	}
	defer func() {
		if err := s.locks.Unlock(ctx, lockKey, lockValue); err != nil {
			s.log.WithError(err).Warn("Failed to release signup lock")
		}
	}()

	if _, err := s.users.GetUserByEmail(ctx, in.Email); err == nil {
		return nil, models.NewValidationError("Email already registered", nil)
	} else if !models.IsNotFound(err) {
		return nil, err
	}

	hashedPassword, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{Email: in.Email, Password: hashedPassword, Role: in.Role}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	if err := s.createProfile(ctx, user, in); err != nil {
		return nil, err
	}

	if err := sess.SetCurrentUser(ctx, user.ID); err != nil {
		return nil, err
	}
	s.log.WithUserID(user.ID).WithField("role", user.Role).Info("User signed up")
	return newAuthResult(user.ID, user.Role), nil
}

func (s *authService) createProfile(ctx context.Context, user *models.User, in utils.SignUpInput) error {
	if user.Role == models.RoleDoctor {
		return s.doctors.Create(ctx, &models.Doctor{
			ID:        user.ID,
			Name:      in.FirstName + " " + in.LastName,
			Specialty: defaultSpecialty,
		})
	}
	return s.patients.Create(ctx, &models.Patient{
		ID:        user.ID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Gender:    defaultGender,
		BirthDate: models.NewTimestamp(s.now()),
		Email:     user.Email,
	})
}

// Login checks the credentials and logs the device in.
func (s *authService) Login(ctx context.Context, sess *session.Session, email, password string) (*AuthResult, error) {
	email = utils.NormalizeEmail(email)
	if err := utils.ValidateLogin(email, password); err != nil {
		return nil, models.NewValidationError(err.Error(), err)
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if !utils.IsPasswordHash(user.Password) {
		s.log.WithUserID(user.ID).Warn("Stored password is not hashed")
	}
	if !utils.CheckPassword(user.Password, password) {
		return nil, models.NewValidationError("Incorrect password", nil)
	}

	if err := sess.SetCurrentUser(ctx, user.ID); err != nil {
		return nil, err
	}
	s.log.WithUserID(user.ID).Info("User logged in")
	return newAuthResult(user.ID, user.Role), nil
}

func (s *authService) Logout(ctx context.Context, sess *session.Session) error {
	return sess.ClearCurrentUser(ctx)
}
