// Package config は環境変数ベースのアプリケーション設定を提供する。
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// デフォルト値。全ての環境変数は省略可能で、未設定時はこの値にフォールバックする。
const (
	DefaultDatabaseURL   = "postgres://localhost:5432/deadline_buddy?sslmode=disable"
	DefaultSessionSecret = "deadlinebuddysecret"
	DefaultServerPort    = "3000"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Database
	DatabaseURL string

	// Session
	SessionSecret string
	SessionMaxAge int // 秒

	// Rate Limit（req/min/user）
	RateLimitGeneral int
	RateLimitTaskAdd int

	// Server
	ServerPort string
	BaseURL    string

	// Cookie
	CookieSecure bool
}

// Load は環境変数からConfigを読み込む。
// 全フィールドにデフォルト値があるため、エラーは返さない。
func Load() *Config {
	cfg := &Config{
		DatabaseURL:      getEnvString("DATABASE_URL", DefaultDatabaseURL),
		SessionSecret:    getEnvString("SESSION_SECRET", DefaultSessionSecret),
		SessionMaxAge:    getEnvInt("SESSION_MAX_AGE", int((24 * time.Hour).Seconds())),
		RateLimitGeneral: getEnvInt("RATE_LIMIT_GENERAL", 120),
		RateLimitTaskAdd: getEnvInt("RATE_LIMIT_TASK_ADD", 30),
		ServerPort:       getEnvString("SERVER_PORT", DefaultServerPort),
		BaseURL:          getEnvString("BASE_URL", "http://localhost:3000"),
	}

	cfg.CookieSecure = strings.HasPrefix(cfg.BaseURL, "https://")

	return cfg
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}
