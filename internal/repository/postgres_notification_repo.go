package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mizuki/deadlinebuddy/internal/model"
)

// PostgresNotificationRepo はPostgreSQLを使用した通知リポジトリ。
type PostgresNotificationRepo struct {
	db *sql.DB
}

// NewPostgresNotificationRepo はPostgresNotificationRepoを生成する。
func NewPostgresNotificationRepo(db *sql.DB) *PostgresNotificationRepo {
	return &PostgresNotificationRepo{db: db}
}

// Create は通知を作成する。
func (r *PostgresNotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notifications (id, user_id, title, message, type, priority, subject, date, time, read, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		n.ID, n.UserID, n.Title, n.Message, string(n.Type), string(n.Priority),
		n.Subject, n.Date, n.Time, n.Read, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

// ListByUserID はユーザーの全通知を返す。新しいものが先になるよう作成日時の降順で返す。
func (r *PostgresNotificationRepo) ListByUserID(ctx context.Context, userID string) ([]*model.Notification, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, title, message, type, priority, subject, date, time, read, created_at
		 FROM notifications
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	notifications := []*model.Notification{}
	for rows.Next() {
		n := &model.Notification{}
		var typ, priority string
		if err := rows.Scan(
			&n.ID, &n.UserID, &n.Title, &n.Message, &typ, &priority,
			&n.Subject, &n.Date, &n.Time, &n.Read, &n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		n.Type = model.NotificationType(typ)
		n.Priority = model.Priority(priority)
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notifications: %w", err)
	}

	return notifications, nil
}

// MarkRead は指定通知を既読にする。
// delete側と同様に所有者スコープで絞り込む。該当がなくても成功する。
func (r *PostgresNotificationRepo) MarkRead(ctx context.Context, userID, notificationID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET read = TRUE
		 WHERE id = $1 AND user_id = $2`,
		notificationID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

// MarkAllRead はユーザーの全通知を既読にする。
func (r *PostgresNotificationRepo) MarkAllRead(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET read = TRUE WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark all notifications read: %w", err)
	}
	return nil
}

// Delete は指定通知を削除する。該当がなくても成功する（冪等削除）。
func (r *PostgresNotificationRepo) Delete(ctx context.Context, userID, notificationID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM notifications WHERE id = $1 AND user_id = $2`,
		notificationID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}

// DeleteByUserID はユーザーの全通知を削除する。
func (r *PostgresNotificationRepo) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM notifications WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete user notifications: %w", err)
	}
	return nil
}

// compile-time interface check
var _ NotificationRepository = (*PostgresNotificationRepo)(nil)
