// Package security はアプリケーションのセキュリティ機能を提供する。
//
// TextSanitizerService はタスクや通知のユーザー入力フィールドを
// サニタイズし、保存データに HTML タグが紛れ込むことを防ぐ。
// bluemondayのStrictPolicy（全タグ除去）を使用する。
package security

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// TextSanitizerService はプレーンテキストサニタイズ機能のインターフェースを定義する。
// タスク・通知の保存前に使用される。
type TextSanitizerService interface {
	// Sanitize は入力からHTMLタグを全て除去し、前後の空白を取り除いて返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(input string) string
}

// textSanitizer はTextSanitizerServiceの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type textSanitizer struct {
	policy *bluemonday.Policy
}

// NewTextSanitizer はTextSanitizerServiceの新しいインスタンスを生成する。
// StrictPolicyはいかなるタグも許可しないため、script等の除去を個別に設定する必要はない。
func NewTextSanitizer() *textSanitizer {
	return &textSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize は入力からHTMLタグを全て除去し、前後の空白を取り除いて返す。
func (s *textSanitizer) Sanitize(input string) string {
	return strings.TrimSpace(s.policy.Sanitize(input))
}

// compile-time interface check
var _ TextSanitizerService = (*textSanitizer)(nil)
