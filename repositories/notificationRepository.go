package repositories

import (
	"context"

	"MedicApp/database"
	"MedicApp/models"
)

type NotificationRepository struct {
	backend database.Backend
}

func NewNotificationRepository(backend database.Backend) *NotificationRepository {
	return &NotificationRepository{backend: backend}
}

// GetByUser lists the user's notifications, newest first.
func (r *NotificationRepository) GetByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	notifications := []models.Notification{}
	q := database.Query{Table: "notifications"}.
		Eq("user_id", userID).
		OrderBy("created_at", false)
	if err := selectRows(ctx, r.backend, q, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}
