// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mizuki/deadlinebuddy/internal/model"
)

// SessionCookieName はセッションIDを保持するCookieの名前。
const SessionCookieName = "session_id"

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// principalContextKey はリクエストコンテキストに認証済みプリンシパルを格納するためのキー。
var principalContextKey = contextKey("principal")

// SessionFinder はセッションの検索に必要なインターフェース。
// repository.SessionRepositoryの部分集合として定義する。
type SessionFinder interface {
	FindByID(ctx context.Context, id string) (*model.Session, error)
}

// resolvePrincipal はCookieからセッションを検証し、プリンシパルを復元する。
// 未認証の場合はnilを返す。ストア障害もここでは未認証として扱い、ログだけ残す。
func resolvePrincipal(r *http.Request, sessionFinder SessionFinder) *model.Principal {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	session, err := sessionFinder.FindByID(r.Context(), cookie.Value)
	if err != nil {
		slog.Error("failed to find session",
			slog.String("error", err.Error()),
		)
		return nil
	}
	if session == nil {
		return nil
	}

	return &model.Principal{
		UserID: session.UserID,
		Email:  session.Email,
	}
}

// NewAPISessionMiddleware はAPIルート向けのセッションゲートを返す。
// 未認証リクエストには401と {"success":false,"error":"Unauthorized"} を返す。
// 認証済みプリンシパルをリクエストコンテキストに注入する。
func NewAPISessionMiddleware(sessionFinder SessionFinder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := resolvePrincipal(r, sessionFinder)
			if principal == nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]any{
					"success": false,
					"error":   "Unauthorized",
				})
				return
			}

			ctx := ContextWithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// NewPageSessionMiddleware はページルート向けのセッションゲートを返す。
// 未認証リクエストはログインページにリダイレクトする（ボディなし）。
// 判定はAPI版と同一の述語を共有する。
func NewPageSessionMiddleware(sessionFinder SessionFinder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := resolvePrincipal(r, sessionFinder)
			if principal == nil {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}

			ctx := ContextWithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFromContext はリクエストコンテキストから認証済みプリンシパルを取得する。
// セッションミドルウェアを通過したリクエストでのみ有効。
func PrincipalFromContext(ctx context.Context) (*model.Principal, error) {
	principal, ok := ctx.Value(principalContextKey).(*model.Principal)
	if !ok || principal == nil || principal.UserID == "" {
		return nil, fmt.Errorf("principal not found in context")
	}
	return principal, nil
}

// ContextWithPrincipal はコンテキストにプリンシパルを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithPrincipal(ctx context.Context, principal *model.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, principal)
}
