// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/blogman/internal/middleware"
	"github.com/hitoshi/blogman/internal/model"
)

// statusForCode はドメインエラーコードをHTTPステータスコードに変換する。
func statusForCode(code string) int {
	switch code {
	case model.ErrCodeUnauthorized, model.ErrCodeInvalidCredentials:
		return http.StatusUnauthorized
	case model.ErrCodeUsernameTaken:
		return http.StatusConflict
	case model.ErrCodePostNotFound:
		return http.StatusNotFound
	case model.ErrCodeInvalidPost:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// handleServiceError はサービス層のエラーを必ず1回のHTTPレスポンスに変換する。
// APIErrorは対応するステータスコードで返し、想定外のエラーはログに記録して500を返す。
// どのハンドラーもエラー時はこの関数を経由し、レスポンスを書かずに終わることはない。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		middleware.WriteErrorResponse(w, statusForCode(apiErr.Code), apiErr)
		return
	}

	slog.Error("unexpected service error", slog.String("error", err.Error()))
	middleware.WriteInternalServerError(w)
}
