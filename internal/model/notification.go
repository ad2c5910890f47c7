package model

import "time"

// NotificationType は通知の種別を表す。
type NotificationType string

const (
	NotificationTypeDeadline NotificationType = "deadline"
	NotificationTypeExam     NotificationType = "exam"
	NotificationTypeReminder NotificationType = "reminder"
)

// IsValid は既知の通知種別かどうかを判定する。
func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationTypeDeadline, NotificationTypeExam, NotificationTypeReminder:
		return true
	default:
		return false
	}
}

// Notification はユーザーへの締切・試験・リマインダー通知を表す。
// タスク作成時に自動生成されるほか、APIから直接作成もできる。
// DateとTimeは表示用の文字列としてそのまま保持する。
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Priority  Priority         `json:"priority"`
	Subject   string           `json:"subject"`
	Date      string           `json:"date"`
	Time      string           `json:"time"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"createdAt"`
}
