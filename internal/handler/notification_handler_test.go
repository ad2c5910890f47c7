package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mizuki/deadlinebuddy/internal/model"
	"github.com/mizuki/deadlinebuddy/internal/notification"
)

// --- モック定義 ---

type mockNotificationService struct {
	createFn      func(ctx context.Context, userID string, input notification.CreateInput) (*model.Notification, error)
	listFn        func(ctx context.Context, userID string) ([]*model.Notification, error)
	markReadFn    func(ctx context.Context, userID, notificationID string) error
	markAllReadFn func(ctx context.Context, userID string) error
	deleteFn      func(ctx context.Context, userID, notificationID string) error
	clearAllFn    func(ctx context.Context, userID string) error
}

func (m *mockNotificationService) Create(ctx context.Context, userID string, input notification.CreateInput) (*model.Notification, error) {
	if m.createFn != nil {
		return m.createFn(ctx, userID, input)
	}
	return nil, nil
}

func (m *mockNotificationService) List(ctx context.Context, userID string) ([]*model.Notification, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockNotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	if m.markReadFn != nil {
		return m.markReadFn(ctx, userID, notificationID)
	}
	return nil
}

func (m *mockNotificationService) MarkAllRead(ctx context.Context, userID string) error {
	if m.markAllReadFn != nil {
		return m.markAllReadFn(ctx, userID)
	}
	return nil
}

func (m *mockNotificationService) Delete(ctx context.Context, userID, notificationID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, notificationID)
	}
	return nil
}

func (m *mockNotificationService) ClearAll(ctx context.Context, userID string) error {
	if m.clearAllFn != nil {
		return m.clearAllFn(ctx, userID)
	}
	return nil
}

var _ NotificationServiceInterface = (*mockNotificationService)(nil)

// --- テスト ---

func TestListNotifications_ReturnsWrappedList(t *testing.T) {
	svc := &mockNotificationService{
		listFn: func(ctx context.Context, userID string) ([]*model.Notification, error) {
			return []*model.Notification{
				{ID: "n1", UserID: userID, Title: "First"},
				{ID: "n2", UserID: userID, Title: "Second"},
			}, nil
		},
	}
	h := NewNotificationHandler(svc)

	req := withPrincipal(http.MethodGet, "/api/notifications", "", "user-1")
	rec := httptest.NewRecorder()

	h.ListNotifications(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Errorf("success = %v, want true", body["success"])
	}

	notifications, ok := body["notifications"].([]any)
	if !ok {
		t.Fatalf("notifications field missing or wrong type: %v", body["notifications"])
	}
	if len(notifications) != 2 {
		t.Errorf("len(notifications) = %d, want 2", len(notifications))
	}
}

func TestAddNotification_Success_ReturnsCreatedNotification(t *testing.T) {
	var gotInput notification.CreateInput
	svc := &mockNotificationService{
		createFn: func(ctx context.Context, userID string, input notification.CreateInput) (*model.Notification, error) {
			gotInput = input
			return &model.Notification{
				ID:       "n-new",
				UserID:   userID,
				Title:    input.Title,
				Type:     input.Type,
				Priority: input.Priority,
			}, nil
		},
	}
	h := NewNotificationHandler(svc)

	reqBody := `{"title":"Quiz","message":"Quiz on Friday","type":"exam","priority":"high","subject":"Math","date":"2026-09-18","time":"10:00"}`
	req := withPrincipal(http.MethodPost, "/api/notifications/add", reqBody, "user-1")
	rec := httptest.NewRecorder()

	h.AddNotification(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	if gotInput.Type != model.NotificationTypeExam {
		t.Errorf("input type = %q, want %q", gotInput.Type, model.NotificationTypeExam)
	}
	if gotInput.Priority != model.PriorityHigh {
		t.Errorf("input priority = %q, want %q", gotInput.Priority, model.PriorityHigh)
	}

	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Errorf("success = %v, want true", body["success"])
	}
	created, ok := body["notification"].(map[string]any)
	if !ok {
		t.Fatalf("notification field missing or wrong type: %v", body["notification"])
	}
	if created["id"] != "n-new" {
		t.Errorf("notification id = %v, want %q", created["id"], "n-new")
	}
}

func TestAddNotification_ValidationError_Returns400(t *testing.T) {
	svc := &mockNotificationService{
		createFn: func(ctx context.Context, userID string, input notification.CreateInput) (*model.Notification, error) {
			return nil, model.NewValidationError("Invalid notification type")
		},
	}
	h := NewNotificationHandler(svc)

	reqBody := `{"title":"x","message":"y","type":"bogus","priority":"high","subject":"s","date":"d","time":"t"}`
	req := withPrincipal(http.MethodPost, "/api/notifications/add", reqBody, "user-1")
	rec := httptest.NewRecorder()

	h.AddNotification(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	body := decodeBody(t, rec)
	if body["error"] != "Invalid notification type" {
		t.Errorf("error = %v, want %q", body["error"], "Invalid notification type")
	}
}

func TestMarkRead_PassesOwnerScope(t *testing.T) {
	var gotUserID, gotNotificationID string
	svc := &mockNotificationService{
		markReadFn: func(ctx context.Context, userID, notificationID string) error {
			gotUserID = userID
			gotNotificationID = notificationID
			return nil
		},
	}
	h := NewNotificationHandler(svc)

	req := withPrincipal(http.MethodPost, "/api/notifications/mark-read", `{"id":"n-5"}`, "user-1")
	rec := httptest.NewRecorder()

	h.MarkRead(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if gotUserID != "user-1" || gotNotificationID != "n-5" {
		t.Errorf("mark-read (%q, %q), want (%q, %q)", gotUserID, gotNotificationID, "user-1", "n-5")
	}
}

func TestMarkRead_EmptyID_Returns400(t *testing.T) {
	svc := &mockNotificationService{
		markReadFn: func(ctx context.Context, userID, notificationID string) error {
			return model.NewValidationError("Notification ID is required")
		},
	}
	h := NewNotificationHandler(svc)

	req := withPrincipal(http.MethodPost, "/api/notifications/mark-read", `{"id":""}`, "user-1")
	rec := httptest.NewRecorder()

	h.MarkRead(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestDeleteNotification_UnknownID_StillSucceeds(t *testing.T) {
	// 冪等削除: 存在しないIDでも成功レスポンスを返す
	svc := &mockNotificationService{
		deleteFn: func(ctx context.Context, userID, notificationID string) error {
			return nil
		},
	}
	h := NewNotificationHandler(svc)

	req := withPrincipal(http.MethodPost, "/api/notifications/delete", `{"id":"already-gone"}`, "user-1")
	rec := httptest.NewRecorder()

	h.DeleteNotification(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Errorf("success = %v, want true", body["success"])
	}
}

func TestMarkAllRead_AndClearAll_ScopeToUser(t *testing.T) {
	var markAllUserID, clearAllUserID string
	svc := &mockNotificationService{
		markAllReadFn: func(ctx context.Context, userID string) error {
			markAllUserID = userID
			return nil
		},
		clearAllFn: func(ctx context.Context, userID string) error {
			clearAllUserID = userID
			return nil
		},
	}
	h := NewNotificationHandler(svc)

	rec := httptest.NewRecorder()
	h.MarkAllRead(rec, withPrincipal(http.MethodPost, "/api/notifications/mark-all-read", "", "user-1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("mark-all-read status = %d, want %d", rec.Code, http.StatusOK)
	}

	rec = httptest.NewRecorder()
	h.ClearAll(rec, withPrincipal(http.MethodPost, "/api/notifications/clear-all", "", "user-1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("clear-all status = %d, want %d", rec.Code, http.StatusOK)
	}

	if markAllUserID != "user-1" {
		t.Errorf("mark-all-read userID = %q, want %q", markAllUserID, "user-1")
	}
	if clearAllUserID != "user-1" {
		t.Errorf("clear-all userID = %q, want %q", clearAllUserID, "user-1")
	}
}

func TestListNotifications_NoPrincipal_Returns401(t *testing.T) {
	h := NewNotificationHandler(&mockNotificationService{})

	req := httptest.NewRequest(http.MethodGet, "/api/notifications", nil)
	rec := httptest.NewRecorder()

	h.ListNotifications(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	if body["error"] != "Unauthorized" {
		t.Errorf("error = %v, want %q", body["error"], "Unauthorized")
	}
}
