package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mizuki/deadlinebuddy/internal/model"
)

// PostgresTaskRepo はPostgreSQLを使用したタスクリポジトリ。
type PostgresTaskRepo struct {
	db *sql.DB
}

// NewPostgresTaskRepo はPostgresTaskRepoを生成する。
func NewPostgresTaskRepo(db *sql.DB) *PostgresTaskRepo {
	return &PostgresTaskRepo{db: db}
}

// Create はタスクを作成する。
func (r *PostgresTaskRepo) Create(ctx context.Context, task *model.Task) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (id, user_id, title, subject, due_date, is_completed, priority, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		task.ID, task.UserID, task.Title, task.Subject, task.DueDate,
		task.IsCompleted, string(task.Priority), task.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

// ListByUserID はユーザーの全タスクを返す。
// 並び順は契約上保証しないが、表示の安定性のため作成日時順で返す。
func (r *PostgresTaskRepo) ListByUserID(ctx context.Context, userID string) ([]*model.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, title, subject, due_date, is_completed, priority, created_at
		 FROM tasks
		 WHERE user_id = $1
		 ORDER BY created_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []*model.Task{}
	for rows.Next() {
		task := &model.Task{}
		var priority string
		if err := rows.Scan(
			&task.ID, &task.UserID, &task.Title, &task.Subject, &task.DueDate,
			&task.IsCompleted, &priority, &task.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		task.Priority = model.Priority(priority)
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}

// ToggleComplete は完了フラグをSQLレベルで原子的に反転する。
// 同一タスクへの同時トグルがread-modify-writeで互いの更新を打ち消す
// 競合を避けるため、アプリケーション側でフラグを読まない。
// 該当タスクが所有者に存在しない場合はfalseを返す。
func (r *PostgresTaskRepo) ToggleComplete(ctx context.Context, userID, taskID string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET is_completed = NOT is_completed
		 WHERE id = $1 AND user_id = $2`,
		taskID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to toggle task: %w", err)
	}

	return rowsAffected(result)
}

// Delete は指定タスクを削除する。該当タスクが所有者に存在しない場合はfalseを返す。
func (r *PostgresTaskRepo) Delete(ctx context.Context, userID, taskID string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE id = $1 AND user_id = $2`,
		taskID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete task: %w", err)
	}

	return rowsAffected(result)
}

// DeleteByUserID はユーザーの全タスクを削除する。0件でも成功する。
func (r *PostgresTaskRepo) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete user tasks: %w", err)
	}
	return nil
}

// rowsAffected は更新・削除が1行以上に作用したかどうかを返す。
func rowsAffected(result sql.Result) (bool, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n > 0, nil
}

// compile-time interface check
var _ TaskRepository = (*PostgresTaskRepo)(nil)
