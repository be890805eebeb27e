// Package post はブログ記事のCRUDとページネーションのドメインロジックを提供する。
package post

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/blogman/internal/metrics"
	"github.com/hitoshi/blogman/internal/model"
	"github.com/hitoshi/blogman/internal/repository"
	"github.com/hitoshi/blogman/internal/security"
)

// Service は記事管理のサービス層。
type Service struct {
	postRepo  repository.PostRepository
	sanitizer security.ContentSanitizerService
	recorder  metrics.PostRecorder
}

// NewService はServiceを生成する。
// recorderはnilを許容する（テスト等でメトリクスを収集しない場合）。
func NewService(postRepo repository.PostRepository, sanitizer security.ContentSanitizerService, recorder metrics.PostRecorder) *Service {
	return &Service{
		postRepo:  postRepo,
		sanitizer: sanitizer,
		recorder:  recorder,
	}
}

// Create は新しい記事を作成する。
// 本文はサニタイズしてから保存する。タイトルが空の場合はバリデーションエラー。
func (s *Service) Create(ctx context.Context, title, body string) (*model.Post, error) {
	if strings.TrimSpace(title) == "" {
		return nil, model.NewInvalidPostError("タイトルが空です")
	}

	now := time.Now()
	post := &model.Post{
		ID:        uuid.New().String(),
		Title:     title,
		Body:      s.sanitizer.Sanitize(body),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	if s.recorder != nil {
		s.recorder.RecordPostCreated()
	}
	slog.Info("post created", slog.String("post_id", post.ID))

	return post, nil
}

// Get は指定IDの記事を取得する。見つからない場合はPOST_NOT_FOUNDのAPIErrorを返す。
func (s *Service) Get(ctx context.Context, id string) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	if post == nil {
		return nil, model.NewPostNotFoundError(id)
	}

	return post, nil
}

// Update は記事のタイトルと本文を更新する。
// updated_atは現在時刻に更新され、created_atとidは変わらない。
// idが存在しない場合はPOST_NOT_FOUNDのAPIErrorを返す。
func (s *Service) Update(ctx context.Context, id, title, body string) (*model.Post, error) {
	if strings.TrimSpace(title) == "" {
		return nil, model.NewInvalidPostError("タイトルが空です")
	}

	post, err := s.postRepo.Update(ctx, id, title, s.sanitizer.Sanitize(body))
	if err != nil {
		return nil, err
	}

	if s.recorder != nil {
		s.recorder.RecordPostUpdated()
	}
	slog.Info("post updated", slog.String("post_id", id))

	return post, nil
}

// Delete は指定IDの記事を削除する。存在しないidの削除も成功として扱う（冪等削除）。
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.postRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	if s.recorder != nil {
		s.recorder.RecordPostDeleted()
	}
	slog.Info("post deleted", slog.String("post_id", id))

	return nil
}

// ListPage は指定ページの記事一覧を取得する。
// pageは1始まりで、0以下は1に正規化される。ページサイズはPostsPerPageに固定。
// 総ページ数を超えるページは空のWindowを返す（エラーではない）。
func (s *Service) ListPage(ctx context.Context, page int) (*Window, error) {
	page = NormalizePage(page)

	posts, err := s.postRepo.ListPage(ctx, PageOffset(page, PostsPerPage), PostsPerPage)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	total, err := s.postRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}

	w := NewWindow(posts, page, PostsPerPage, total)
	return &w, nil
}

// ListAll はダッシュボード表示用に全記事をcreated_at降順で取得する。
func (s *Service) ListAll(ctx context.Context) ([]*model.Post, error) {
	total, err := s.postRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}
	if total == 0 {
		return nil, nil
	}

	posts, err := s.postRepo.ListPage(ctx, 0, total)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return posts, nil
}
