package handler

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/hitoshi/blogman/internal/middleware"
	"github.com/hitoshi/blogman/internal/view"
)

// renderPage はテンプレートをバッファにレンダリングしてからレスポンスに書き込む。
// レンダリング失敗時に中途半端なHTMLが送信されることを防ぎ、
// 必ず完全なページか1回のエラーレスポンスのどちらかを返す。
func renderPage(w http.ResponseWriter, renderer view.Renderer, name string, data any) {
	var buf bytes.Buffer
	if err := renderer.Render(&buf, name, data); err != nil {
		slog.Error("failed to render page",
			slog.String("template", name),
			slog.String("error", err.Error()),
		)
		middleware.WriteInternalServerError(w)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write response", slog.String("error", err.Error()))
	}
}
