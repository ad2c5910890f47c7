package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/mizuki/deadlinebuddy/internal/model"
	"github.com/mizuki/deadlinebuddy/internal/repository"
	"github.com/mizuki/deadlinebuddy/internal/security"
)

// --- モック定義 ---

type mockNotificationRepo struct {
	createFn         func(ctx context.Context, notification *model.Notification) error
	listByUserIDFn   func(ctx context.Context, userID string) ([]*model.Notification, error)
	markReadFn       func(ctx context.Context, userID, notificationID string) error
	markAllReadFn    func(ctx context.Context, userID string) error
	deleteFn         func(ctx context.Context, userID, notificationID string) error
	deleteByUserIDFn func(ctx context.Context, userID string) error
}

func (m *mockNotificationRepo) Create(ctx context.Context, notification *model.Notification) error {
	if m.createFn != nil {
		return m.createFn(ctx, notification)
	}
	return nil
}

func (m *mockNotificationRepo) ListByUserID(ctx context.Context, userID string) ([]*model.Notification, error) {
	if m.listByUserIDFn != nil {
		return m.listByUserIDFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, userID, notificationID string) error {
	if m.markReadFn != nil {
		return m.markReadFn(ctx, userID, notificationID)
	}
	return nil
}

func (m *mockNotificationRepo) MarkAllRead(ctx context.Context, userID string) error {
	if m.markAllReadFn != nil {
		return m.markAllReadFn(ctx, userID)
	}
	return nil
}

func (m *mockNotificationRepo) Delete(ctx context.Context, userID, notificationID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, notificationID)
	}
	return nil
}

func (m *mockNotificationRepo) DeleteByUserID(ctx context.Context, userID string) error {
	if m.deleteByUserIDFn != nil {
		return m.deleteByUserIDFn(ctx, userID)
	}
	return nil
}

type mockMetrics struct {
	notificationsCreated int
}

func (m *mockMetrics) RecordNotificationCreated() { m.notificationsCreated++ }

// --- compile-time interface checks ---
var _ repository.NotificationRepository = (*mockNotificationRepo)(nil)
var _ MetricsRecorder = (*mockMetrics)(nil)

func validInput() CreateInput {
	return CreateInput{
		Title:    "Exam reminder",
		Message:  "Final exam next week",
		Type:     model.NotificationTypeExam,
		Priority: model.PriorityHigh,
		Subject:  "Physics",
		Date:     "2026-09-20",
		Time:     "09:00",
	}
}

// --- テスト ---

func TestCreate_ValidInput_CreatesNotification(t *testing.T) {
	ctx := context.Background()

	var created *model.Notification
	repo := &mockNotificationRepo{
		createFn: func(ctx context.Context, n *model.Notification) error {
			created = n
			return nil
		},
	}
	metrics := &mockMetrics{}

	svc := NewService(repo, security.NewTextSanitizer(), metrics)

	n, err := svc.Create(ctx, "user-1", validInput())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if n == nil {
		t.Fatal("expected non-nil notification")
	}
	if n.ID == "" {
		t.Error("expected non-empty notification ID")
	}
	if n.UserID != "user-1" {
		t.Errorf("notification userID = %q, want %q", n.UserID, "user-1")
	}
	if n.Read {
		t.Error("new notification must start unread")
	}

	if created == nil {
		t.Fatal("expected notification to be persisted")
	}
	if metrics.notificationsCreated != 1 {
		t.Errorf("notificationsCreated = %d, want 1", metrics.notificationsCreated)
	}
}

func TestCreate_MissingField_ReturnsValidationError(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&mockNotificationRepo{}, security.NewTextSanitizer(), nil)

	mutations := []struct {
		name   string
		mutate func(*CreateInput)
	}{
		{"empty title", func(in *CreateInput) { in.Title = "" }},
		{"empty message", func(in *CreateInput) { in.Message = "" }},
		{"empty type", func(in *CreateInput) { in.Type = "" }},
		{"empty priority", func(in *CreateInput) { in.Priority = "" }},
		{"empty subject", func(in *CreateInput) { in.Subject = "" }},
		{"empty date", func(in *CreateInput) { in.Date = "" }},
		{"empty time", func(in *CreateInput) { in.Time = "" }},
	}

	for _, tc := range mutations {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(&input)

			_, err := svc.Create(ctx, "user-1", input)
			if err == nil {
				t.Fatal("expected validation error")
			}

			var appErr *model.AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("expected *model.AppError, got %T", err)
			}
			if appErr.Message != "All fields are required" {
				t.Errorf("error message = %q, want %q", appErr.Message, "All fields are required")
			}
		})
	}
}

func TestCreate_InvalidType_ReturnsValidationError(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&mockNotificationRepo{}, security.NewTextSanitizer(), nil)

	input := validInput()
	input.Type = "urgent" // 未定義の種別

	_, err := svc.Create(ctx, "user-1", input)
	if err == nil {
		t.Fatal("expected validation error for unknown type")
	}

	var appErr *model.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *model.AppError, got %T", err)
	}
	if appErr.Message != "Invalid notification type" {
		t.Errorf("error message = %q, want %q", appErr.Message, "Invalid notification type")
	}
}

func TestCreate_InvalidPriority_ReturnsValidationError(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&mockNotificationRepo{}, security.NewTextSanitizer(), nil)

	input := validInput()
	input.Priority = "critical" // 未定義の優先度

	_, err := svc.Create(ctx, "user-1", input)
	if err == nil {
		t.Fatal("expected validation error for unknown priority")
	}

	var appErr *model.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *model.AppError, got %T", err)
	}
	if appErr.Message != "Invalid priority" {
		t.Errorf("error message = %q, want %q", appErr.Message, "Invalid priority")
	}
}

func TestCreate_SanitizesTextFields(t *testing.T) {
	ctx := context.Background()

	var created *model.Notification
	repo := &mockNotificationRepo{
		createFn: func(ctx context.Context, n *model.Notification) error {
			created = n
			return nil
		},
	}

	svc := NewService(repo, security.NewTextSanitizer(), nil)

	input := validInput()
	input.Title = "  <b>Quiz</b> tomorrow  "

	if _, err := svc.Create(ctx, "user-1", input); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if created.Title != "Quiz tomorrow" {
		t.Errorf("sanitized title = %q, want %q", created.Title, "Quiz tomorrow")
	}
}

func TestList_ReturnsNotifications(t *testing.T) {
	ctx := context.Background()

	repo := &mockNotificationRepo{
		listByUserIDFn: func(ctx context.Context, userID string) ([]*model.Notification, error) {
			return []*model.Notification{
				{ID: "n1", UserID: userID},
				{ID: "n2", UserID: userID},
			}, nil
		},
	}

	svc := NewService(repo, security.NewTextSanitizer(), nil)

	notifications, err := svc.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(notifications) != 2 {
		t.Errorf("len(notifications) = %d, want 2", len(notifications))
	}
}

func TestMarkRead_PassesOwnerScope(t *testing.T) {
	ctx := context.Background()

	var gotUserID, gotNotificationID string
	repo := &mockNotificationRepo{
		markReadFn: func(ctx context.Context, userID, notificationID string) error {
			gotUserID = userID
			gotNotificationID = notificationID
			return nil
		},
	}

	svc := NewService(repo, security.NewTextSanitizer(), nil)

	if err := svc.MarkRead(ctx, "user-1", "n-5"); err != nil {
		t.Fatalf("MarkRead() error = %v", err)
	}
	if gotUserID != "user-1" || gotNotificationID != "n-5" {
		t.Errorf("mark-read scoped to (%q, %q), want (%q, %q)", gotUserID, gotNotificationID, "user-1", "n-5")
	}
}

func TestMarkRead_EmptyID_ReturnsValidationError(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&mockNotificationRepo{}, security.NewTextSanitizer(), nil)

	err := svc.MarkRead(ctx, "user-1", "")
	if err == nil {
		t.Fatal("expected validation error")
	}

	var appErr *model.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *model.AppError, got %T", err)
	}
	if appErr.Message != "Notification ID is required" {
		t.Errorf("error message = %q, want %q", appErr.Message, "Notification ID is required")
	}
}

func TestDelete_UnknownID_Succeeds(t *testing.T) {
	ctx := context.Background()

	// 冪等削除: ストアは該当なしでもエラーを返さない
	repo := &mockNotificationRepo{
		deleteFn: func(ctx context.Context, userID, notificationID string) error {
			return nil
		},
	}

	svc := NewService(repo, security.NewTextSanitizer(), nil)

	if err := svc.Delete(ctx, "user-1", "already-gone"); err != nil {
		t.Fatalf("Delete() error = %v, want idempotent success", err)
	}
}

func TestDelete_EmptyID_ReturnsValidationError(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&mockNotificationRepo{}, security.NewTextSanitizer(), nil)

	if err := svc.Delete(ctx, "user-1", ""); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestMarkAllRead_AndClearAll_ScopeToUser(t *testing.T) {
	ctx := context.Background()

	var markAllUserID, clearAllUserID string
	repo := &mockNotificationRepo{
		markAllReadFn: func(ctx context.Context, userID string) error {
			markAllUserID = userID
			return nil
		},
		deleteByUserIDFn: func(ctx context.Context, userID string) error {
			clearAllUserID = userID
			return nil
		},
	}

	svc := NewService(repo, security.NewTextSanitizer(), nil)

	if err := svc.MarkAllRead(ctx, "user-1"); err != nil {
		t.Fatalf("MarkAllRead() error = %v", err)
	}
	if err := svc.ClearAll(ctx, "user-1"); err != nil {
		t.Fatalf("ClearAll() error = %v", err)
	}

	if markAllUserID != "user-1" {
		t.Errorf("mark-all-read userID = %q, want %q", markAllUserID, "user-1")
	}
	if clearAllUserID != "user-1" {
		t.Errorf("clear-all userID = %q, want %q", clearAllUserID, "user-1")
	}
}
