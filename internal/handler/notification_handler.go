package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mizuki/deadlinebuddy/internal/middleware"
	"github.com/mizuki/deadlinebuddy/internal/model"
	"github.com/mizuki/deadlinebuddy/internal/notification"
)

// NotificationServiceInterface は通知ハンドラーが必要とするサービスインターフェース。
type NotificationServiceInterface interface {
	Create(ctx context.Context, userID string, input notification.CreateInput) (*model.Notification, error)
	List(ctx context.Context, userID string) ([]*model.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
	MarkAllRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, userID, notificationID string) error
	ClearAll(ctx context.Context, userID string) error
}

// NotificationHandler は通知管理のHTTPハンドラー。
type NotificationHandler struct {
	service NotificationServiceInterface
}

// NewNotificationHandler はNotificationHandlerを生成する。
func NewNotificationHandler(service NotificationServiceInterface) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// addNotificationRequest は通知追加リクエストのボディ。
type addNotificationRequest struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Type     string `json:"type"`
	Priority string `json:"priority"`
	Subject  string `json:"subject"`
	Date     string `json:"date"`
	Time     string `json:"time"`
}

// notificationIDRequest は通知IDのみを持つリクエストのボディ。
type notificationIDRequest struct {
	ID string `json:"id"`
}

// ListNotifications はユーザーの通知一覧を返す。
// GET /api/notifications
func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		writeAPIError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	notifications, err := h.service.List(r.Context(), principal.UserID)
	if err != nil {
		handleServiceError(w, err, "Failed to fetch notifications")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"notifications": notifications,
	})
}

// AddNotification は通知を直接追加する。
// POST /api/notifications/add
func (h *NotificationHandler) AddNotification(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		writeAPIError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req addNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	created, err := h.service.Create(r.Context(), principal.UserID, notification.CreateInput{
		Title:    req.Title,
		Message:  req.Message,
		Type:     model.NotificationType(req.Type),
		Priority: model.Priority(req.Priority),
		Subject:  req.Subject,
		Date:     req.Date,
		Time:     req.Time,
	})
	if err != nil {
		handleServiceError(w, err, "Failed to add notification")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"notification": created,
	})
}

// MarkRead は指定通知を既読にする。
// POST /api/notifications/mark-read
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		writeAPIError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req notificationIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "Notification ID is required")
		return
	}

	if err := h.service.MarkRead(r.Context(), principal.UserID, req.ID); err != nil {
		handleServiceError(w, err, "Failed to mark notification read")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// DeleteNotification は指定通知を削除する。
// POST /api/notifications/delete
func (h *NotificationHandler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		writeAPIError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req notificationIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "Notification ID is required")
		return
	}

	if err := h.service.Delete(r.Context(), principal.UserID, req.ID); err != nil {
		handleServiceError(w, err, "Failed to delete notification")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// MarkAllRead はユーザーの全通知を既読にする。
// POST /api/notifications/mark-all-read
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		writeAPIError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.service.MarkAllRead(r.Context(), principal.UserID); err != nil {
		handleServiceError(w, err, "Failed to mark all notifications read")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// ClearAll はユーザーの全通知を削除する。
// POST /api/notifications/clear-all
func (h *NotificationHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		writeAPIError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.service.ClearAll(r.Context(), principal.UserID); err != nil {
		handleServiceError(w, err, "Failed to clear notifications")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
