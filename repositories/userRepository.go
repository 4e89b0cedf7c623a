package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"MedicApp/database"
	"MedicApp/models"

	"github.com/google/uuid"
)

type UserRepository interface {
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
}

type userRepository struct {
	backend database.Backend
}

func NewUserRepository(backend database.Backend) UserRepository {
	return &userRepository{backend: backend}
}

func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	return r.findOne(ctx, database.Query{Table: "users"}.Eq("id", userID))
}

// GetUserByEmail matches the address exactly, as stored at signup.
func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, database.Query{Table: "users"}.Eq("email", strings.TrimSpace(email)))
}

func (r *userRepository) findOne(ctx context.Context, q database.Query) (*models.User, error) {
	var users []models.User
	if err := selectRows(ctx, r.backend, q, &users); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, models.NewNotFoundError("User not found")
	}
	return &users[0], nil
}

// CreateUser inserts the account. A missing id is generated so the profile row can share it.
func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err := r.backend.Insert(ctx, "users", map[string]interface{}{
		"id":         user.ID,
		"email":      user.Email,
		"password":   user.Password,
		"role":       string(user.Role),
		"created_at": user.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}
