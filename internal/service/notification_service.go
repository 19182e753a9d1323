package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sevasetu/volunteerhub/internal/model"
	"github.com/sevasetu/volunteerhub/internal/repository"
)

type NotificationService interface {
	Notify(ctx context.Context, n *model.Notification) error
	GetNotifications(ctx context.Context, volunteerID uuid.UUID, limit, offset int) ([]*model.Notification, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, volunteerID uuid.UUID) error
	UnreadCount(ctx context.Context, volunteerID uuid.UUID) (int64, error)
}

type notificationService struct {
	repo        repository.NotificationRepository
	redisClient *redis.Client
}

func NewNotificationService(repo repository.NotificationRepository, redisClient *redis.Client) NotificationService {
	return &notificationService{
		repo:        repo,
		redisClient: redisClient,
	}
}

// NotificationChannel is the redis pub/sub channel for one volunteer's feed.
func NotificationChannel(volunteerID uuid.UUID) string {
	return fmt.Sprintf("volunteer_notifications:%s", volunteerID)
}

func (s *notificationService) Notify(ctx context.Context, n *model.Notification) error {
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}

	// Best-effort live push; the stored row is the source of truth.
	if s.redisClient != nil {
		payload, err := json.Marshal(n)
		if err == nil {
			if err := s.redisClient.Publish(ctx, NotificationChannel(n.VolunteerID), payload).Err(); err != nil {
				zap.L().Debug("notification publish failed", zap.Error(err))
			}
		}
	}

	return nil
}

func (s *notificationService) GetNotifications(ctx context.Context, volunteerID uuid.UUID, limit, offset int) ([]*model.Notification, error) {
	return s.repo.FindByVolunteer(ctx, volunteerID, limit, offset)
}

func (s *notificationService) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, id)
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, volunteerID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, volunteerID)
}

func (s *notificationService) UnreadCount(ctx context.Context, volunteerID uuid.UUID) (int64, error) {
	return s.repo.CountUnread(ctx, volunteerID)
}
