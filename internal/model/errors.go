package model

import "fmt"

// AppError は統一エラーフォーマットを表す。
// Messageはそのままクライアントに返す文字列で、Categoryで
// HTTPステータスへのマッピングを決める。
type AppError struct {
	Code     string // エラーコード
	Message  string // クライアント向けメッセージ
	Category string // カテゴリ: auth, validation, not_found, store
}

// Error はerrorインターフェースを実装する。
func (e *AppError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeUnauthorized      = "UNAUTHORIZED"
	ErrCodeValidation        = "VALIDATION_FAILED"
	ErrCodeTaskNotFound      = "TASK_NOT_FOUND"
	ErrCodeUserNotFound      = "USER_NOT_FOUND"
	ErrCodeEmailTaken        = "EMAIL_TAKEN"
	ErrCodeIncorrectPassword = "INCORRECT_PASSWORD"
)

// エラーカテゴリ
const (
	CategoryAuth       = "auth"
	CategoryValidation = "validation"
	CategoryNotFound   = "not_found"
	CategoryStore      = "store"
)

// NewUnauthorizedError は未認証エラーを生成する。
func NewUnauthorizedError() *AppError {
	return &AppError{
		Code:     ErrCodeUnauthorized,
		Message:  "Unauthorized",
		Category: CategoryAuth,
	}
}

// NewValidationError は必須フィールド欠落などの検証エラーを生成する。
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:     ErrCodeValidation,
		Message:  message,
		Category: CategoryValidation,
	}
}

// NewTaskNotFoundError はタスク未検出エラーを生成する。
// 所有者が異なる場合も存在しない場合と区別せずこのエラーを返す。
func NewTaskNotFoundError() *AppError {
	return &AppError{
		Code:     ErrCodeTaskNotFound,
		Message:  "Task not found",
		Category: CategoryNotFound,
	}
}

// NewUserNotFoundError はユーザー未検出エラーを生成する。
func NewUserNotFoundError() *AppError {
	return &AppError{
		Code:     ErrCodeUserNotFound,
		Message:  "User not found",
		Category: CategoryNotFound,
	}
}

// NewEmailTakenError はメールアドレス重複エラーを生成する。
// usersテーブルのUNIQUE制約違反から変換される。
func NewEmailTakenError() *AppError {
	return &AppError{
		Code:     ErrCodeEmailTaken,
		Message:  "Email is already registered",
		Category: CategoryValidation,
	}
}

// NewIncorrectPasswordError はパスワード不一致エラーを生成する。
// ユーザー未検出（NewUserNotFoundError）とは明確に区別する。
func NewIncorrectPasswordError() *AppError {
	return &AppError{
		Code:     ErrCodeIncorrectPassword,
		Message:  "Incorrect password",
		Category: CategoryAuth,
	}
}
