package model

import "time"

// Priority はタスク・通知の優先度を表す。
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// IsValid は既知の優先度かどうかを判定する。
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// Task はユーザーが登録した課題・締切タスクを表す。
// 所有者（UserID）によるフィルタリングが全操作の前提となる。
// DueDateはカレンダー日付を文字列のまま保持する（クライアント入力をそのまま保存）。
type Task struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Subject     string    `json:"subject"`
	DueDate     string    `json:"date"`
	IsCompleted bool      `json:"isCompleted"`
	Priority    Priority  `json:"priority"`
	CreatedAt   time.Time `json:"createdAt"`
}
