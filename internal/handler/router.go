package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/blogman/internal/metrics"
	"github.com/hitoshi/blogman/internal/middleware"
	"github.com/hitoshi/blogman/internal/view"
)

// HealthChecker はヘルスチェックに必要なインターフェース。
// *sql.DBがそのまま満たす。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	TokenVerifier middleware.TokenVerifier
	Logger        *slog.Logger
	HTTPRecorder  metrics.HTTPRecorder

	// サービス
	AuthService AuthServiceInterface
	PostService PostServiceInterface

	// ビュー
	Renderer view.Renderer

	// 管理ハンドラー設定
	AdminConfig AdminHandlerConfig

	// 運用エンドポイント
	HealthChecker HealthChecker
	Gatherer      prometheus.Gatherer
}

// NewRouter は全エンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → Logging → Metrics → MethodOverride
//
// 認証ガードは管理ルートのグループにのみ適用する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	if deps.HTTPRecorder != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.HTTPRecorder))
	}
	// ルートマッチング前にメソッドを確定させるため、ルーティングより先に適用する
	r.Use(middleware.NewMethodOverrideMiddleware())

	adminHandler := NewAdminHandler(deps.AuthService, deps.PostService, deps.Renderer, deps.AdminConfig)
	publicHandler := NewPublicHandler(deps.PostService, deps.Renderer)

	// --- 運用エンドポイント ---

	r.Get("/health", NewHealthHandler(deps.HealthChecker))
	if deps.Gatherer != nil {
		r.Handle("/metrics", metrics.Handler(deps.Gatherer))
	}

	// --- 認証不要のルート ---

	r.Get("/", publicHandler.Home)
	r.Get("/post/{id}", publicHandler.ShowPost)

	r.Get("/admin", adminHandler.LoginForm)
	r.Post("/admin", adminHandler.Login)
	r.Post("/register", adminHandler.Register)
	r.Get("/logout", adminHandler.Logout)

	// --- 認証が必要なルート ---

	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAuthMiddleware(deps.TokenVerifier))

		r.Get("/dashboard", adminHandler.Dashboard)
		r.Get("/add-post", adminHandler.AddPostForm)
		r.Post("/add-post", adminHandler.AddPost)
		r.Get("/edit-post/{id}", adminHandler.EditPostForm)
		r.Put("/edit-post/{id}", adminHandler.UpdatePost)
		r.Delete("/delete-post/{id}", adminHandler.DeletePost)
	})

	return r
}

// NewHealthHandler はDB疎通を確認するヘルスチェックハンドラーを返す。
// GET /health
func NewHealthHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checker != nil {
			if err := checker.PingContext(r.Context()); err != nil {
				slog.Error("health check failed", slog.String("error", err.Error()))
				http.Error(w, "unhealthy", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}
}
