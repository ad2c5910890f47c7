package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mizuki/deadlinebuddy/internal/middleware"
	"github.com/mizuki/deadlinebuddy/internal/model"
)

// TaskServiceInterface はタスクハンドラーが必要とするサービスインターフェース。
type TaskServiceInterface interface {
	// Create はタスクを作成し、同じ所有者への通知を1件自動生成する。
	Create(ctx context.Context, userID, title, subject, date string) (*model.Task, error)
	// List はユーザーの全タスクを返す。
	List(ctx context.Context, userID string) ([]*model.Task, error)
	// Toggle は完了フラグを反転する。
	Toggle(ctx context.Context, userID, taskID string) error
	// Delete は指定タスクを削除する。
	Delete(ctx context.Context, userID, taskID string) error
	// ResetAll はユーザーの全タスクを削除する。
	ResetAll(ctx context.Context, userID string) error
}

// TaskHandler はタスク管理のHTTPハンドラー。
type TaskHandler struct {
	service TaskServiceInterface
}

// NewTaskHandler はTaskHandlerを生成する。
func NewTaskHandler(service TaskServiceInterface) *TaskHandler {
	return &TaskHandler{service: service}
}

// addTaskRequest はタスク追加リクエストのボディ。
type addTaskRequest struct {
	Title   string `json:"title"`
	Subject string `json:"subject"`
	Date    string `json:"date"`
}

// taskIDRequest はタスクIDのみを持つリクエストのボディ。
type taskIDRequest struct {
	ID string `json:"id"`
}

// AddTask はタスクを追加する。
// POST /api/tasks/add
func (h *TaskHandler) AddTask(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		writeAPIError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req addTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	task, err := h.service.Create(r.Context(), principal.UserID, req.Title, req.Subject, req.Date)
	if err != nil {
		handleServiceError(w, err, "Failed to add task")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"task":    task,
	})
}

// ListTasks はユーザーのタスク一覧を返す。
// GET /api/tasks/list
// レスポンスはラッパーなしの素の配列。他のエンドポイントと異なり
// successフィールドを持たないことにフロントエンドが依存している。
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		writeAPIError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	tasks, err := h.service.List(r.Context(), principal.UserID)
	if err != nil {
		handleServiceError(w, err, "Failed to fetch tasks")
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}

// ToggleTask は指定タスクの完了フラグを反転する。
// POST /api/tasks/toggle
func (h *TaskHandler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		writeAPIError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req taskIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "Task ID is required")
		return
	}

	if err := h.service.Toggle(r.Context(), principal.UserID, req.ID); err != nil {
		handleServiceError(w, err, "Failed to toggle task")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// DeleteTask は指定タスクを削除する。
// POST /api/tasks/delete
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		writeAPIError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req taskIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "Task ID is required")
		return
	}

	if err := h.service.Delete(r.Context(), principal.UserID, req.ID); err != nil {
		handleServiceError(w, err, "Failed to delete task")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// ResetTasks はユーザーの全タスクを削除する。
// POST /api/tasks/reset
func (h *TaskHandler) ResetTasks(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		writeAPIError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.service.ResetAll(r.Context(), principal.UserID); err != nil {
		handleServiceError(w, err, "Failed to reset tasks")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
