// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/mizuki/deadlinebuddy/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
// パスワードのハッシュ化は呼び出し側（authサービス）の責務で、ストアは一切行わない。
type UserRepository interface {
	// FindByEmail は指定メールアドレスのユーザーを取得する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// Create はユーザーを作成する。
	// メールアドレスのUNIQUE制約違反の場合はmodel.NewEmailTakenError()を返す。
	Create(ctx context.Context, user *model.User) error
}

// SessionRepository はセッションデータの永続化インターフェース。
type SessionRepository interface {
	// Create はセッションを作成する。
	Create(ctx context.Context, session *model.Session) error
	// FindByID は指定IDのセッションを取得する。期限切れの場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Session, error)
	// DeleteByID は指定IDのセッションを削除する。
	DeleteByID(ctx context.Context, id string) error
	// DeleteByUserID は指定ユーザーの全セッションを削除する。
	DeleteByUserID(ctx context.Context, userID string) error
}

// TaskRepository はタスクデータの永続化インターフェース。
// Create以外の全操作は所有者IDでスコープされる。
type TaskRepository interface {
	// Create はタスクを作成する。
	Create(ctx context.Context, task *model.Task) error

	// ListByUserID はユーザーの全タスクを返す。並び順は保証しない。
	ListByUserID(ctx context.Context, userID string) ([]*model.Task, error)

	// ToggleComplete は完了フラグを原子的に反転する。
	// read-modify-writeではなくSQLレベルの反転で行い、同時トグルの更新消失を防ぐ。
	// 該当タスクが所有者に存在しない場合はfalseを返す。
	ToggleComplete(ctx context.Context, userID, taskID string) (bool, error)

	// Delete は指定タスクを削除する。該当タスクが所有者に存在しない場合はfalseを返す。
	Delete(ctx context.Context, userID, taskID string) (bool, error)

	// DeleteByUserID はユーザーの全タスクを削除する。0件でも成功する。
	DeleteByUserID(ctx context.Context, userID string) error
}

// NotificationRepository は通知データの永続化インターフェース。
// 全操作が所有者IDでスコープされる。mark-readも含め、別ユーザーの
// 通知IDを渡しても他人のデータには触れない。
type NotificationRepository interface {
	// Create は通知を作成する。
	Create(ctx context.Context, notification *model.Notification) error

	// ListByUserID はユーザーの全通知を返す。
	ListByUserID(ctx context.Context, userID string) ([]*model.Notification, error)

	// MarkRead は指定通知を既読にする。該当がなくてもエラーにしない（冪等）。
	MarkRead(ctx context.Context, userID, notificationID string) error

	// MarkAllRead はユーザーの全通知を既読にする。
	MarkAllRead(ctx context.Context, userID string) error

	// Delete は指定通知を削除する。該当がなくてもエラーにしない（冪等）。
	Delete(ctx context.Context, userID, notificationID string) error

	// DeleteByUserID はユーザーの全通知を削除する。
	DeleteByUserID(ctx context.Context, userID string) error
}
