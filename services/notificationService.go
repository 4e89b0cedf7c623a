package services

import (
	"context"

	"MedicApp/models"
	"MedicApp/repositories"
)

type NotificationService struct {
	repository *repositories.NotificationRepository
}

func NewNotificationService(repository *repositories.NotificationRepository) *NotificationService {
	return &NotificationService{repository: repository}
}

func (s *NotificationService) ListNotifications(ctx context.Context, userID string) ([]models.Notification, error) {
	return s.repository.GetByUser(ctx, userID)
}
