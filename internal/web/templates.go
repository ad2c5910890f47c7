// Package web はサーバーサイドレンダリングのテンプレートを提供する。
// 全ページをhtml/templateの埋め込みテンプレートとして保持する。
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/mizuki/deadlinebuddy/internal/model"
)

//go:embed templates/*.html
var templatesFS embed.FS

// PageData はページテンプレートに渡すデータ。
// Pageはナビゲーションのアクティブ表示、Messageはフォームエラーの表示に使う。
type PageData struct {
	Title       string
	Page        string
	Message     string
	CurrentUser *model.Principal
}

// Renderer はページテンプレートのレンダラー。
// 全テンプレートを起動時に一度だけパースして保持する。
type Renderer struct {
	templates *template.Template
}

// NewRenderer は埋め込みテンプレートをパースしてRendererを生成する。
func NewRenderer() (*Renderer, error) {
	t, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{templates: t}, nil
}

// Render は指定ページのテンプレートを実行する。
func (r *Renderer) Render(w io.Writer, page string, data PageData) error {
	if err := r.templates.ExecuteTemplate(w, page, data); err != nil {
		return fmt.Errorf("failed to render page %q: %w", page, err)
	}
	return nil
}
