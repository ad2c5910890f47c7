package handler

import (
	"context"
	"net/http"

	"github.com/mizuki/deadlinebuddy/internal/middleware"
	"github.com/mizuki/deadlinebuddy/internal/model"
)

// UserServiceInterface はユーザーハンドラーが必要とするサービスインターフェース。
type UserServiceInterface interface {
	// GetCurrentUser は指定IDのユーザーを取得する。
	GetCurrentUser(ctx context.Context, userID string) (*model.User, error)
}

// UserHandler はユーザー情報のHTTPハンドラー。
type UserHandler struct {
	service UserServiceInterface
}

// NewUserHandler はUserHandlerを生成する。
func NewUserHandler(service UserServiceInterface) *UserHandler {
	return &UserHandler{service: service}
}

// Me は現在のログインユーザー情報を返す。
// GET /api/user/me
// パスワードハッシュは決して含めない。
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		writeAPIError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.service.GetCurrentUser(r.Context(), principal.UserID)
	if err != nil {
		handleServiceError(w, err, "Failed to fetch user")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":    user.ID,
		"email": user.Email,
	})
}
