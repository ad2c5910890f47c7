// Package task はタスク管理のドメインロジックを提供する。
package task

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mizuki/deadlinebuddy/internal/model"
	"github.com/mizuki/deadlinebuddy/internal/repository"
	"github.com/mizuki/deadlinebuddy/internal/security"
)

// MetricsRecorder はタスクサービスが記録するメトリクスのインターフェース。
// metrics.Collectorの部分集合として定義する。
type MetricsRecorder interface {
	RecordTaskCreated()
	RecordNotificationCreated()
}

// Service はタスク管理のサービス層。
// タスクCRUDに加え、タスク作成時の通知自動生成（カップリング）を担う。
type Service struct {
	taskRepo  repository.TaskRepository
	notifRepo repository.NotificationRepository
	sanitizer security.TextSanitizerService
	metrics   MetricsRecorder
}

// NewService はServiceの新しいインスタンスを生成する。
// metricsはnilでもよい（その場合は記録しない）。
func NewService(
	taskRepo repository.TaskRepository,
	notifRepo repository.NotificationRepository,
	sanitizer security.TextSanitizerService,
	metrics MetricsRecorder,
) *Service {
	return &Service{
		taskRepo:  taskRepo,
		notifRepo: notifRepo,
		sanitizer: sanitizer,
		metrics:   metrics,
	}
}

// Create はタスクを作成し、同じ所有者への締切通知を1件自動生成する。
// title・subject・dateのいずれかが空の場合は検証エラーを返す。
//
// 通知の生成はベストエフォート。失敗してもタスクは取り消さず、
// 警告ログだけを残して成功レスポンスを返す（ストア間トランザクションは張らない）。
func (s *Service) Create(ctx context.Context, userID, title, subject, date string) (*model.Task, error) {
	title = s.sanitizer.Sanitize(title)
	subject = s.sanitizer.Sanitize(subject)
	date = s.sanitizer.Sanitize(date)

	if title == "" || subject == "" || date == "" {
		return nil, model.NewValidationError("All fields are required")
	}

	newTask := &model.Task{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       title,
		Subject:     subject,
		DueDate:     date,
		IsCompleted: false,
		Priority:    model.PriorityMedium,
		CreatedAt:   time.Now(),
	}

	if err := s.taskRepo.Create(ctx, newTask); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordTaskCreated()
	}

	// タスク作成に連動して締切通知を自動生成する。
	// 通知の優先度はタスク自身の優先度とは無関係に常にhigh。
	notification := &model.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     fmt.Sprintf("Task Added: %s", title),
		Message:   fmt.Sprintf("A new task for %s was added. Deadline: %s", subject, date),
		Type:      model.NotificationTypeDeadline,
		Priority:  model.PriorityHigh,
		Subject:   subject,
		Date:      date,
		Time:      "00:00",
		Read:      false,
		CreatedAt: time.Now(),
	}

	if err := s.notifRepo.Create(ctx, notification); err != nil {
		slog.Warn("failed to create companion notification for task",
			slog.String("task_id", newTask.ID),
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	} else if s.metrics != nil {
		s.metrics.RecordNotificationCreated()
	}

	return newTask, nil
}

// List はユーザーの全タスクを返す。
func (s *Service) List(ctx context.Context, userID string) ([]*model.Task, error) {
	tasks, err := s.taskRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Toggle は指定タスクの完了フラグを反転する。
// 2回呼べば元の状態に戻る。該当タスクが所有者に存在しない場合は
// model.NewTaskNotFoundError()を返す。
func (s *Service) Toggle(ctx context.Context, userID, taskID string) error {
	if taskID == "" {
		return model.NewValidationError("Task ID is required")
	}

	found, err := s.taskRepo.ToggleComplete(ctx, userID, taskID)
	if err != nil {
		return fmt.Errorf("failed to toggle task: %w", err)
	}
	if !found {
		return model.NewTaskNotFoundError()
	}

	return nil
}

// Delete は指定タスクを削除する。該当タスクが所有者に存在しない場合は
// model.NewTaskNotFoundError()を返す（サイレント成功にはしない）。
func (s *Service) Delete(ctx context.Context, userID, taskID string) error {
	if taskID == "" {
		return model.NewValidationError("Task ID is required")
	}

	found, err := s.taskRepo.Delete(ctx, userID, taskID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if !found {
		return model.NewTaskNotFoundError()
	}

	return nil
}

// ResetAll はユーザーの全タスクを無条件に削除する。0件でも成功する。
func (s *Service) ResetAll(ctx context.Context, userID string) error {
	if err := s.taskRepo.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("failed to reset tasks: %w", err)
	}
	return nil
}
