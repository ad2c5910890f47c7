package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mizuki/deadlinebuddy/internal/metrics"
	"github.com/mizuki/deadlinebuddy/internal/middleware"
)

// HealthChecker はヘルスチェックに必要なインターフェース。
// *sql.DBがこれを満たす。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	SessionFinder middleware.SessionFinder
	RateLimiter   *middleware.RateLimiter
	Collector     *metrics.Collector

	// 運用エンドポイント
	HealthChecker  HealthChecker
	MetricsHandler http.Handler

	// プレゼンテーション
	Renderer PageRenderer

	// サービス
	AuthService         AuthServiceInterface
	AuthConfig          AuthHandlerConfig
	TaskService         TaskServiceInterface
	NotificationService NotificationServiceInterface
	UserService         UserServiceInterface
}

// NewRouter は全ルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → Metrics → Logging → SecurityHeaders
//
// その内側で、ページルートはリダイレクト版セッションゲート、
// /api サブツリーは401版セッションゲート＋レート制限で保護する。
// ログイン・登録・ログアウトと /health /metrics はゲートの外に置く。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(metrics.NewMiddleware(deps.Collector))
	r.Use(middleware.NewLoggingMiddleware(slog.Default()))
	r.Use(middleware.NewSecurityHeadersMiddleware())

	authHandler := NewAuthHandler(deps.AuthService, deps.Renderer, deps.AuthConfig)
	pageHandler := NewPageHandler(deps.Renderer)
	taskHandler := NewTaskHandler(deps.TaskService)
	notifHandler := NewNotificationHandler(deps.NotificationService)
	userHandler := NewUserHandler(deps.UserService)

	// --- 認証不要のルート ---

	r.Get("/", pageHandler.Home)
	r.Get("/login", authHandler.GetLogin)
	r.Post("/login", authHandler.PostLogin)
	r.Get("/register", authHandler.GetRegister)
	r.Post("/register", authHandler.PostRegister)
	r.Get("/logout", authHandler.Logout)

	r.Get("/health", newHealthHandler(deps.HealthChecker))
	r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)

	// --- ページルート（リダイレクト版セッションゲート） ---

	r.Group(func(r chi.Router) {
		r.Use(middleware.NewPageSessionMiddleware(deps.SessionFinder))

		r.Get("/dashboard", pageHandler.Dashboard)
		r.Get("/subjects", pageHandler.Subjects)
		r.Get("/notifications", pageHandler.Notifications)
		r.Get("/study-tips", pageHandler.StudyTips)
		r.Get("/profile", pageHandler.Profile)
	})

	// --- APIルート（401版セッションゲート、サブツリー全体に一括適用） ---

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.NewAPISessionMiddleware(deps.SessionFinder))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		r.Route("/tasks", func(r chi.Router) {
			// POST /api/tasks/add - タスク登録専用レート制限を追加
			r.With(deps.RateLimiter.TaskAddMiddleware()).Post("/add", taskHandler.AddTask)

			r.Get("/list", taskHandler.ListTasks)
			r.Post("/toggle", taskHandler.ToggleTask)
			r.Post("/delete", taskHandler.DeleteTask)
			r.Post("/reset", taskHandler.ResetTasks)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", notifHandler.ListNotifications)
			r.Post("/add", notifHandler.AddNotification)
			r.Post("/mark-read", notifHandler.MarkRead)
			r.Post("/delete", notifHandler.DeleteNotification)
			r.Post("/mark-all-read", notifHandler.MarkAllRead)
			r.Post("/clear-all", notifHandler.ClearAll)
		})

		r.Get("/user/me", userHandler.Me)
	})

	return r
}

// newHealthHandler はDB接続を確認するヘルスチェックハンドラーを返す。
// GET /health
func newHealthHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := checker.PingContext(r.Context()); err != nil {
			slog.Error("health check failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "unhealthy"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	}
}
