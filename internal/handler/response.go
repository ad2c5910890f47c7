// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mizuki/deadlinebuddy/internal/model"
)

// writeJSON はJSONレスポンスを書き込む。
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// writeAPIError は {"success":false,"error":...} 形式のエラーレスポンスを書き込む。
func writeAPIError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]any{
		"success": false,
		"error":   message,
	})
}

// handleServiceError はサービス層のエラーをAPIレスポンスに変換する。
// *model.AppErrorはカテゴリからHTTPステータスを決め、Messageをそのまま返す。
// それ以外のエラーは詳細をログにのみ記録し、genericMessageで500を返す。
func handleServiceError(w http.ResponseWriter, err error, genericMessage string) {
	var appErr *model.AppError
	if errors.As(err, &appErr) {
		writeAPIError(w, mapAppErrorToHTTPStatus(appErr), appErr.Message)
		return
	}

	slog.Error("internal server error", slog.String("error", err.Error()))
	writeAPIError(w, http.StatusInternalServerError, genericMessage)
}

// mapAppErrorToHTTPStatus はAppErrorのカテゴリからHTTPステータスコードにマッピングする。
func mapAppErrorToHTTPStatus(appErr *model.AppError) int {
	switch appErr.Category {
	case model.CategoryAuth:
		return http.StatusUnauthorized
	case model.CategoryValidation:
		return http.StatusBadRequest
	case model.CategoryNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
