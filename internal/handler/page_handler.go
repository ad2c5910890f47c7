package handler

import (
	"log/slog"
	"net/http"

	"github.com/mizuki/deadlinebuddy/internal/middleware"
	"github.com/mizuki/deadlinebuddy/internal/web"
)

// PageHandler は認証必須ページのHTTPハンドラー。
// セッションゲート（リダイレクト版）の内側に配置される前提で、
// コンテキストのプリンシパルをテンプレートに渡す。
type PageHandler struct {
	renderer PageRenderer
}

// NewPageHandler はPageHandlerを生成する。
func NewPageHandler(renderer PageRenderer) *PageHandler {
	return &PageHandler{renderer: renderer}
}

// Home はルートパスをダッシュボードへリダイレクトする。
// GET /
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// Dashboard はダッシュボードページを表示する。
// GET /dashboard
func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "dashboard", "Dashboard - Deadline Buddy")
}

// Subjects は科目ページを表示する。科目データ自体はブラウザ側で管理される。
// GET /subjects
func (h *PageHandler) Subjects(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "subjects", "Subjects - Deadline Buddy")
}

// Notifications は通知ページを表示する。
// GET /notifications
func (h *PageHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "notifications", "Notifications - Deadline Buddy")
}

// StudyTips は学習Tipsページを表示する。
// GET /study-tips
func (h *PageHandler) StudyTips(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "study-tips", "Study Tips - Deadline Buddy")
}

// Profile はプロフィールページを表示する。
// GET /profile
func (h *PageHandler) Profile(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "profile", "Profile - Deadline Buddy")
}

// render は認証済みページをレンダリングする。
func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, page, title string) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		// セッションゲートの内側では到達しないはず
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	renderErr := h.renderer.Render(w, page, web.PageData{
		Title:       title,
		Page:        page,
		CurrentUser: principal,
	})
	if renderErr != nil {
		slog.Error("failed to render page",
			slog.String("page", page),
			slog.String("error", renderErr.Error()),
		)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
