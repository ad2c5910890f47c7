// Package model はドメインモデルを定義する。
package model

import "time"

// User はサービス利用ユーザーを表す。
// PasswordHashはbcryptハッシュであり、APIレスポンスには決して含めない。
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Session はユーザーのログインセッションを表す。
// Emailはログイン時点のスナップショットで、テンプレート表示に使用する。
type Session struct {
	ID        string
	UserID    string
	Email     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Principal はセッションから復元した認証済みアイデンティティを表す。
// ミドルウェアがリクエストコンテキストに注入する。
type Principal struct {
	UserID string
	Email  string
}
