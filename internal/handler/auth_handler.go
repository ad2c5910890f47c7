package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/mizuki/deadlinebuddy/internal/middleware"
	"github.com/mizuki/deadlinebuddy/internal/model"
	"github.com/mizuki/deadlinebuddy/internal/web"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	Register(ctx context.Context, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.Session, error)
	Logout(ctx context.Context, sessionID string) error
}

// PageRenderer はページレンダリングのインターフェース。
// web.Rendererの部分集合として定義する。
type PageRenderer interface {
	Render(w io.Writer, page string, data web.PageData) error
}

// AuthHandlerConfig は認証ハンドラーの設定。
type AuthHandlerConfig struct {
	CookieSecure  bool
	SessionMaxAge int // セッションCookieの有効期間（秒）
}

// AuthHandler はログイン・登録・ログアウトのHTTPハンドラー。
// APIではなくページフローを担い、失敗時はHTTPエラーではなく
// メッセージ付きでフォームを再レンダリングする。
type AuthHandler struct {
	service  AuthServiceInterface
	renderer PageRenderer
	config   AuthHandlerConfig
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(service AuthServiceInterface, renderer PageRenderer, config AuthHandlerConfig) *AuthHandler {
	return &AuthHandler{
		service:  service,
		renderer: renderer,
		config:   config,
	}
}

// GetLogin はログインページを表示する。
// GET /login
func (h *AuthHandler) GetLogin(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, "login", "Login - Deadline Buddy", "")
}

// GetRegister は登録ページを表示する。
// GET /register
func (h *AuthHandler) GetRegister(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, "register", "Register - Deadline Buddy", "")
}

// PostRegister はユーザー登録を処理する。
// POST /register
// 成功時はログインページへリダイレクトし、失敗時はメッセージ付きで再表示する。
func (h *AuthHandler) PostRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderPage(w, "register", "Register - Deadline Buddy", "All fields are required")
		return
	}

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	if _, err := h.service.Register(r.Context(), email, password); err != nil {
		var appErr *model.AppError
		if errors.As(err, &appErr) {
			h.renderPage(w, "register", "Register - Deadline Buddy", appErr.Message)
			return
		}
		slog.Error("registration failed", slog.String("error", err.Error()))
		h.renderPage(w, "register", "Register - Deadline Buddy", "Something went wrong, please try again")
		return
	}

	http.Redirect(w, r, "/login", http.StatusFound)
}

// PostLogin はログインを処理する。
// POST /login
// 成功時はセッションCookieを設定してダッシュボードへリダイレクトする。
// 「ユーザー未検出」と「パスワード不一致」は異なるメッセージで再表示する。
func (h *AuthHandler) PostLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderPage(w, "login", "Login - Deadline Buddy", "All fields are required")
		return
	}

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	session, err := h.service.Login(r.Context(), email, password)
	if err != nil {
		var appErr *model.AppError
		if errors.As(err, &appErr) {
			h.renderPage(w, "login", "Login - Deadline Buddy", appErr.Message)
			return
		}
		slog.Error("login failed", slog.String("error", err.Error()))
		h.renderPage(w, "login", "Login - Deadline Buddy", "Something went wrong, please try again")
		return
	}

	// セッションCookieを設定（HTTP Only）
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    session.ID,
		Path:     "/",
		MaxAge:   h.config.SessionMaxAge,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// Logout はセッションを破棄し、ログインページへリダイレクトする。
// GET /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.SessionCookieName)
	if err == nil && cookie.Value != "" {
		if logoutErr := h.service.Logout(r.Context(), cookie.Value); logoutErr != nil {
			slog.Error("failed to logout", slog.String("error", logoutErr.Error()))
			// ログアウト失敗してもCookieはクリアする
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/login", http.StatusFound)
}

// renderPage は未認証用ページをレンダリングする。失敗時はログを残して500を返す。
func (h *AuthHandler) renderPage(w http.ResponseWriter, page, title, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := h.renderer.Render(w, page, web.PageData{
		Title:   title,
		Page:    page,
		Message: message,
	})
	if err != nil {
		slog.Error("failed to render page",
			slog.String("page", page),
			slog.String("error", err.Error()),
		)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
