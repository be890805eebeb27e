package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/blogman/internal/model"
	"github.com/hitoshi/blogman/internal/post"
	"github.com/hitoshi/blogman/internal/view"
)

// PostServiceInterface は記事ハンドラーが必要とするサービスインターフェース。
type PostServiceInterface interface {
	Create(ctx context.Context, title, body string) (*model.Post, error)
	Get(ctx context.Context, id string) (*model.Post, error)
	Update(ctx context.Context, id, title, body string) (*model.Post, error)
	Delete(ctx context.Context, id string) error
	ListPage(ctx context.Context, page int) (*post.Window, error)
	ListAll(ctx context.Context) ([]*model.Post, error)
}

// PublicHandler は公開ページのHTTPハンドラー。認証は不要。
type PublicHandler struct {
	postService PostServiceInterface
	renderer    view.Renderer
}

// NewPublicHandler はPublicHandlerを生成する。
func NewPublicHandler(postService PostServiceInterface, renderer view.Renderer) *PublicHandler {
	return &PublicHandler{
		postService: postService,
		renderer:    renderer,
	}
}

// Home は記事一覧をページネーション付きで表示する。
// GET /?page=N
// pageが未指定・数値でない・0以下の場合は1ページ目として扱う。
// 総ページ数を超えるページは空の一覧になる（エラーではない）。
func (h *PublicHandler) Home(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		page = 1
	}

	window, err := h.postService.ListPage(r.Context(), page)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	renderPage(w, h.renderer, "index.html", map[string]any{
		"Window": window,
	})
}

// ShowPost は記事詳細を表示する。記事が存在しない場合は404。
// GET /post/{id}
func (h *PublicHandler) ShowPost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.postService.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	renderPage(w, h.renderer, "post.html", map[string]any{
		"Post": p,
	})
}
