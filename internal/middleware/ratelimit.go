package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiterConfig はレート制限の設定を保持する。
type RateLimiterConfig struct {
	GeneralRate     rate.Limit    // API全般のレート（req/sec）
	GeneralBurst    int           // API全般のバーストサイズ
	TaskAddRate     rate.Limit    // タスク登録のレート（req/sec）
	TaskAddBurst    int           // タスク登録のバーストサイズ
	CleanupInterval time.Duration // 期限切れエントリのクリーンアップ間隔
}

// NewRateLimiterConfig はreq/min単位の設定値からRateLimiterConfigを生成する。
func NewRateLimiterConfig(generalPerMin, taskAddPerMin int) RateLimiterConfig {
	return RateLimiterConfig{
		GeneralRate:     rate.Limit(float64(generalPerMin) / 60.0),
		GeneralBurst:    generalPerMin,
		TaskAddRate:     rate.Limit(float64(taskAddPerMin) / 60.0),
		TaskAddBurst:    taskAddPerMin,
		CleanupInterval: 5 * time.Minute,
	}
}

// userLimiter はユーザーごとのレートリミッターとアクセス時刻を保持する。
type userLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter はユーザーごとのレート制限を管理する。
// API全般のレート制限とタスク登録のレート制限の2種類を提供する。
type RateLimiter struct {
	config RateLimiterConfig

	mu       sync.Mutex
	general  map[string]*userLimiter
	taskAdd  map[string]*userLimiter

	stopCh chan struct{}
}

// NewRateLimiter は新しいRateLimiterを生成する。
// バックグラウンドで期限切れエントリのクリーンアップを開始する。
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	rl := &RateLimiter{
		config:  config,
		general: make(map[string]*userLimiter),
		taskAdd: make(map[string]*userLimiter),
		stopCh:  make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Stop はクリーンアップのバックグラウンドゴルーチンを停止する。
func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

// GeneralMiddleware はAPI全般のレート制限ミドルウェアを返す。
// リクエストコンテキストにプリンシパルが含まれている必要がある
// （セッションミドルウェアの後に配置する）。
func (rl *RateLimiter) GeneralMiddleware() func(next http.Handler) http.Handler {
	return rl.middleware(rl.general, rl.config.GeneralRate, rl.config.GeneralBurst, "general")
}

// TaskAddMiddleware はタスク登録専用のレート制限ミドルウェアを返す。
// API全般のレート制限とは独立に動作する。
func (rl *RateLimiter) TaskAddMiddleware() func(next http.Handler) http.Handler {
	return rl.middleware(rl.taskAdd, rl.config.TaskAddRate, rl.config.TaskAddBurst, "task_add")
}

func (rl *RateLimiter) middleware(limiters map[string]*userLimiter, limit rate.Limit, burst int, limitType string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := PrincipalFromContext(r.Context())
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			limiter := rl.getOrCreate(limiters, principal.UserID, limit, burst)

			if !limiter.Allow() {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]any{
					"success": false,
					"error":   "Too many requests",
				})
				slog.Warn("rate limit exceeded",
					slog.String("user_id", principal.UserID),
					slog.String("limit_type", limitType),
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getOrCreate はユーザーのリミッターを取得または作成し、アクセス時刻を更新する。
func (rl *RateLimiter) getOrCreate(limiters map[string]*userLimiter, userID string, limit rate.Limit, burst int) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if ul, exists := limiters[userID]; exists {
		ul.lastAccess = time.Now()
		return ul.limiter
	}

	limiter := rate.NewLimiter(limit, burst)
	limiters[userID] = &userLimiter{
		limiter:    limiter,
		lastAccess: time.Now(),
	}

	return limiter
}

// cleanupLoop は一定間隔でアクセスのないリミッターエントリを破棄する。
func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stopCh:
			return
		case <-ticker.C:
			rl.cleanup()
		}
	}
}

func (rl *RateLimiter) cleanup() {
	cutoff := time.Now().Add(-rl.config.CleanupInterval)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for userID, ul := range rl.general {
		if ul.lastAccess.Before(cutoff) {
			delete(rl.general, userID)
		}
	}
	for userID, ul := range rl.taskAdd {
		if ul.lastAccess.Before(cutoff) {
			delete(rl.taskAdd, userID)
		}
	}
}
