// Package view はhtml/templateによるサーバーサイドレンダリングを提供する。
// テンプレートはバイナリに埋め込み、起動時に一度だけパースする。
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Renderer はテンプレート名とデータを受け取ってレンダリングするインターフェース。
// ハンドラーはこのインターフェース越しにビューを描画する。
type Renderer interface {
	Render(w io.Writer, name string, data any) error
}

// pages はレンダリング対象のページテンプレート一覧。
// すべてbase.htmlのレイアウトに埋め込まれる。
var pages = []string{
	"index.html",
	"post.html",
	"admin_login.html",
	"dashboard.html",
	"add_post.html",
	"edit_post.html",
}

// TemplateRenderer はRendererのhtml/template実装。
type TemplateRenderer struct {
	templates map[string]*template.Template
}

// NewTemplateRenderer は埋め込みテンプレートをパースしてTemplateRendererを生成する。
// パースに失敗した場合はエラーを返す（起動時に検出する）。
func NewTemplateRenderer() (*TemplateRenderer, error) {
	funcs := template.FuncMap{
		"linebreaks": linebreaks,
		"safe":       safe,
	}

	templates := make(map[string]*template.Template)
	for _, page := range pages {
		t, err := template.New("").Funcs(funcs).ParseFS(templatesFS,
			"templates/base.html",
			"templates/"+page,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		templates[page] = t
	}

	return &TemplateRenderer{templates: templates}, nil
}

// Render は指定ページをbaseレイアウトに埋め込んでレンダリングする。
// 未知のテンプレート名はエラーを返す。
func (r *TemplateRenderer) Render(w io.Writer, name string, data any) error {
	t, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("unknown template: %s", name)
	}

	if err := t.ExecuteTemplate(w, "base", data); err != nil {
		return fmt.Errorf("failed to render template %s: %w", name, err)
	}

	return nil
}

// linebreaks は平文テキストを段落・改行タグ付きのHTMLに変換する。
// 入力はエスケープされるため、サニタイズ前のテキストにも安全に使える。
func linebreaks(s string) template.HTML {
	s = template.HTMLEscapeString(s)

	paragraphs := strings.Split(s, "\n\n")
	var result []string

	for _, p := range paragraphs {
		if p = strings.TrimSpace(p); p != "" {
			p = strings.ReplaceAll(p, "\n", "<br>")
			result = append(result, "<p>"+p+"</p>")
		}
	}

	return template.HTML(strings.Join(result, "\n"))
}

// safe はサニタイズ済みHTMLをエスケープせずに出力する。
// securityパッケージでサニタイズされた記事本文にのみ使用すること。
func safe(s string) template.HTML {
	return template.HTML(s)
}

// compile-time interface check
var _ Renderer = (*TemplateRenderer)(nil)
