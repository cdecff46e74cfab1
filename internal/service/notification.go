package service

import (
	"context"

	"rentall-backend/internal/domain"
	"rentall-backend/internal/repository"
)

type notificationService struct {
	noteRepo repository.NotificationRepository
}

func NewNotificationService(noteRepo repository.NotificationRepository) NotificationService {
	return &notificationService{noteRepo: noteRepo}
}

func (s *notificationService) ListNotifications(ctx context.Context, userID string, limit, offset int) ([]domain.Notification, int, error) {
	return s.noteRepo.List(ctx, userID, limit, offset)
}

func (s *notificationService) MarkNotificationRead(ctx context.Context, userID, id string) error {
	return s.noteRepo.MarkAsRead(ctx, id, userID)
}
