// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/blogman/internal/model"
)

// UserRepository は管理者ユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByUsername は指定ユーザー名のユーザーを取得する。
	// ユーザー名は大文字小文字を区別して完全一致で検索する。見つからない場合はnilを返す。
	FindByUsername(ctx context.Context, username string) (*model.User, error)

	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// Create はユーザーを作成する。
	// ユーザー名が既に存在する場合はmodel.ErrCodeUsernameTakenのAPIErrorを返す。
	// その際、既存のユーザーレコードは変更されない。
	Create(ctx context.Context, user *model.User) error
}

// PostRepository はブログ記事データの永続化インターフェース。
type PostRepository interface {
	// Create は記事を作成する。
	Create(ctx context.Context, post *model.Post) error

	// FindByID は指定IDの記事を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Post, error)

	// Update は記事のタイトルと本文を更新し、updated_atを現在時刻に設定する。
	// created_atとidは変更しない。idが存在しない場合はmodel.ErrCodePostNotFoundのAPIErrorを返す。
	Update(ctx context.Context, id, title, body string) (*model.Post, error)

	// Delete は指定IDの記事を削除する。
	// idが存在しない場合もエラーを返さない（冪等削除）。
	Delete(ctx context.Context, id string) error

	// ListPage は記事をcreated_at降順（同時刻はid降順）でoffsetからlimit件取得する。
	ListPage(ctx context.Context, offset, limit int) ([]*model.Post, error)

	// Count は記事の総数を返す。
	Count(ctx context.Context) (int, error)
}
