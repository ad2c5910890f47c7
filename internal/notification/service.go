// Package notification は通知管理のドメインロジックを提供する。
package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mizuki/deadlinebuddy/internal/model"
	"github.com/mizuki/deadlinebuddy/internal/repository"
	"github.com/mizuki/deadlinebuddy/internal/security"
)

// MetricsRecorder は通知サービスが記録するメトリクスのインターフェース。
type MetricsRecorder interface {
	RecordNotificationCreated()
}

// CreateInput は通知の直接作成に必要なフィールド。全て必須。
type CreateInput struct {
	Title    string
	Message  string
	Type     model.NotificationType
	Priority model.Priority
	Subject  string
	Date     string
	Time     string
}

// Service は通知管理のサービス層。
// タスク側への逆方向のカップリングは存在しない（通知操作はタスクに影響しない）。
type Service struct {
	notifRepo repository.NotificationRepository
	sanitizer security.TextSanitizerService
	metrics   MetricsRecorder
}

// NewService はServiceの新しいインスタンスを生成する。
// metricsはnilでもよい。
func NewService(
	notifRepo repository.NotificationRepository,
	sanitizer security.TextSanitizerService,
	metrics MetricsRecorder,
) *Service {
	return &Service{
		notifRepo: notifRepo,
		sanitizer: sanitizer,
		metrics:   metrics,
	}
}

// Create は通知を直接作成する。全フィールドが必須。
// 種別・優先度は定義済みの値のみ受け付ける（ストアのCHECK制約より先に弾く）。
func (s *Service) Create(ctx context.Context, userID string, input CreateInput) (*model.Notification, error) {
	input.Title = s.sanitizer.Sanitize(input.Title)
	input.Message = s.sanitizer.Sanitize(input.Message)
	input.Subject = s.sanitizer.Sanitize(input.Subject)

	if input.Title == "" || input.Message == "" || input.Subject == "" ||
		input.Date == "" || input.Time == "" ||
		input.Type == "" || input.Priority == "" {
		return nil, model.NewValidationError("All fields are required")
	}

	if !input.Type.IsValid() {
		return nil, model.NewValidationError("Invalid notification type")
	}
	if !input.Priority.IsValid() {
		return nil, model.NewValidationError("Invalid priority")
	}

	n := &model.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     input.Title,
		Message:   input.Message,
		Type:      input.Type,
		Priority:  input.Priority,
		Subject:   input.Subject,
		Date:      input.Date,
		Time:      input.Time,
		Read:      false,
		CreatedAt: time.Now(),
	}

	if err := s.notifRepo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordNotificationCreated()
	}

	return n, nil
}

// List はユーザーの全通知を返す。
func (s *Service) List(ctx context.Context, userID string) ([]*model.Notification, error) {
	notifications, err := s.notifRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead は指定通知を既読にする。該当がなくても成功する（冪等）。
func (s *Service) MarkRead(ctx context.Context, userID, notificationID string) error {
	if notificationID == "" {
		return model.NewValidationError("Notification ID is required")
	}

	if err := s.notifRepo.MarkRead(ctx, userID, notificationID); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

// MarkAllRead はユーザーの全通知を既読にする。
func (s *Service) MarkAllRead(ctx context.Context, userID string) error {
	if err := s.notifRepo.MarkAllRead(ctx, userID); err != nil {
		return fmt.Errorf("failed to mark all notifications read: %w", err)
	}
	return nil
}

// Delete は指定通知を削除する。該当がなくても成功する（冪等削除）。
func (s *Service) Delete(ctx context.Context, userID, notificationID string) error {
	if notificationID == "" {
		return model.NewValidationError("Notification ID is required")
	}

	if err := s.notifRepo.Delete(ctx, userID, notificationID); err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}

// ClearAll はユーザーの全通知を削除する。
func (s *Service) ClearAll(ctx context.Context, userID string) error {
	if err := s.notifRepo.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear notifications: %w", err)
	}
	return nil
}
