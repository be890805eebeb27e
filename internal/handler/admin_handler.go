package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/blogman/internal/middleware"
	"github.com/hitoshi/blogman/internal/model"
	"github.com/hitoshi/blogman/internal/view"
)

// AuthServiceInterface は管理ハンドラーが必要とする認証サービスインターフェース。
type AuthServiceInterface interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, username, password string) (*model.User, error)
	Logout(ctx context.Context, tokenStr string) error
}

// AdminHandlerConfig は管理ハンドラーの設定。
type AdminHandlerConfig struct {
	CookieDomain  string
	CookieSecure  bool
	TokenMaxAge   int // トークンCookieの有効期間（秒）
}

// AdminHandler は管理パネルのHTTPハンドラー。
// ログイン・登録・ログアウトと記事のCRUD画面を提供する。
type AdminHandler struct {
	authService AuthServiceInterface
	postService PostServiceInterface
	renderer    view.Renderer
	config      AdminHandlerConfig
}

// NewAdminHandler はAdminHandlerを生成する。
func NewAdminHandler(authService AuthServiceInterface, postService PostServiceInterface, renderer view.Renderer, config AdminHandlerConfig) *AdminHandler {
	return &AdminHandler{
		authService: authService,
		postService: postService,
		renderer:    renderer,
		config:      config,
	}
}

// LoginForm はログインフォームを表示する。
// GET /admin
func (h *AdminHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	renderPage(w, h.renderer, "admin_login.html", nil)
}

// Login はログインフォームの送信を処理する。
// POST /admin
// 成功時はトークンをHTTP Only Cookieに設定して/dashboardへリダイレクトする。
// ユーザー不在とパスワード不一致は同一の401レスポンスになる。
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, model.NewInvalidCredentialsError())
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	tokenStr, err := h.authService.Login(r.Context(), username, password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    tokenStr,
		Path:     "/",
		Domain:   h.config.CookieDomain,
		MaxAge:   h.config.TokenMaxAge,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Register は管理者ユーザーの登録を処理する。
// POST /register
// 成功時は201と作成ユーザーを返す。ユーザー名重複は409を返し、既存レコードは変更されない。
func (h *AdminHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, model.NewInvalidCredentialsError())
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	user, err := h.authService.Register(r.Context(), username, password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{
		"message": "User Created",
		"user": map[string]string{
			"id":       user.ID,
			"username": user.Username,
		},
	})
}

// Logout はトークンCookieを削除してトップページへリダイレクトする。
// GET /logout
// トークン自体はステートレスなためサーバー側の失効は行われない（クライアント側ログアウト）。
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.TokenCookieName); err == nil && cookie.Value != "" {
		if logoutErr := h.authService.Logout(r.Context(), cookie.Value); logoutErr != nil {
			// 失効要求が失敗してもCookieはクリアする
			handleServiceError(w, logoutErr)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.config.CookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Dashboard は記事一覧の管理画面を表示する。
// GET /dashboard
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.ListAll(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	renderPage(w, h.renderer, "dashboard.html", map[string]any{
		"Posts": posts,
	})
}

// AddPostForm は記事作成フォームを表示する。
// GET /add-post
func (h *AdminHandler) AddPostForm(w http.ResponseWriter, r *http.Request) {
	renderPage(w, h.renderer, "add_post.html", nil)
}

// AddPost は記事を作成して/dashboardへリダイレクトする。
// POST /add-post
func (h *AdminHandler) AddPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, model.NewInvalidPostError("フォームの解析に失敗しました"))
		return
	}

	if _, err := h.postService.Create(r.Context(), r.PostFormValue("title"), r.PostFormValue("body")); err != nil {
		handleServiceError(w, err)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// EditPostForm は記事編集フォームを表示する。記事が存在しない場合は404。
// GET /edit-post/{id}
func (h *AdminHandler) EditPostForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	post, err := h.postService.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	renderPage(w, h.renderer, "edit_post.html", map[string]any{
		"Post": post,
	})
}

// UpdatePost は記事を更新して編集画面に戻る。
// PUT /edit-post/{id}（フォームからは_method=PUTのPOSTで届く）
// updated_atのみ現在時刻に更新され、created_atとidは変わらない。
func (h *AdminHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := r.ParseForm(); err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, model.NewInvalidPostError("フォームの解析に失敗しました"))
		return
	}

	if _, err := h.postService.Update(r.Context(), id, r.PostFormValue("title"), r.PostFormValue("body")); err != nil {
		handleServiceError(w, err)
		return
	}

	http.Redirect(w, r, "/edit-post/"+id, http.StatusSeeOther)
}

// DeletePost は記事を削除して/dashboardへリダイレクトする。
// DELETE /delete-post/{id}（フォームからは_method=DELETEのPOSTで届く）
// 存在しないidの削除も成功として扱う（冪等削除）。
func (h *AdminHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.postService.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
