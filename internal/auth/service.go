// Package auth は管理者の認証（ログイン・登録・ログアウト）を提供する。
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hitoshi/blogman/internal/metrics"
	"github.com/hitoshi/blogman/internal/model"
	"github.com/hitoshi/blogman/internal/repository"
)

// TokenIssuer はトークン発行・失効のインターフェース。
// token.Serviceの部分集合として定義する。
type TokenIssuer interface {
	Issue(userID string) (string, error)
	Revoke(tokenStr string) error
}

// ServiceConfig は認証サービスの設定。
type ServiceConfig struct {
	BcryptCost int // bcryptのワークファクター
}

// Service は認証に関するビジネスロジックを提供する。
type Service struct {
	userRepo repository.UserRepository
	issuer   TokenIssuer
	recorder metrics.AuthRecorder
	config   ServiceConfig

	// ユーザー不在時にも必ずbcrypt比較を行うためのダミーハッシュ。
	// ユーザー名の存在有無で応答時間に差が出ることを防ぐ。
	dummyHash []byte
}

// NewService はServiceを生成する。
// recorderはnilを許容する（テスト等でメトリクスを収集しない場合）。
func NewService(userRepo repository.UserRepository, issuer TokenIssuer, recorder metrics.AuthRecorder, config ServiceConfig) (*Service, error) {
	if config.BcryptCost < bcrypt.MinCost || config.BcryptCost > bcrypt.MaxCost {
		config.BcryptCost = bcrypt.DefaultCost
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte("blogman-dummy-password"), config.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to generate dummy hash: %w", err)
	}

	return &Service{
		userRepo:  userRepo,
		issuer:    issuer,
		recorder:  recorder,
		config:    config,
		dummyHash: dummy,
	}, nil
}

// Login はユーザー名とパスワードを検証し、成功時にセッショントークンを発行する。
// ユーザー不在とパスワード不一致は外部から区別できない同一のエラーを返す。
// ユーザーが見つからない場合もダミーハッシュに対してbcrypt比較を実行し、
// 応答時間からユーザー名の存在を推測されないようにする。
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	hash := s.dummyHash
	if user != nil {
		hash = []byte(user.PasswordHash)
	}

	compareErr := bcrypt.CompareHashAndPassword(hash, []byte(password))
	if user == nil || compareErr != nil {
		if s.recorder != nil {
			s.recorder.RecordLoginFailure()
		}
		slog.Warn("login failed", slog.String("username", username))
		return "", model.NewInvalidCredentialsError()
	}

	tokenStr, err := s.issuer.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	if s.recorder != nil {
		s.recorder.RecordLoginSuccess()
	}
	slog.Info("user logged in", slog.String("user_id", user.ID))

	return tokenStr, nil
}

// Register は新しい管理者ユーザーを登録する。
// パスワードはbcryptでハッシュ化して保存し、平文は保持しない。
// ユーザー名が既に存在する場合はUSERNAME_TAKENのAPIErrorを返す。
func (s *Service) Register(ctx context.Context, username, password string) (*model.User, error) {
	if username == "" || password == "" {
		return nil, model.NewInvalidCredentialsError()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.config.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &model.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	slog.Info("user registered",
		slog.String("user_id", user.ID),
		slog.String("username", username),
	)

	return user, nil
}

// Logout はトークンの失効を要求する。
// トークンはステートレスなため失効はno-opであり、実際のログアウトは
// ハンドラー側のCookie削除によって完結する（クライアント側ログアウト）。
func (s *Service) Logout(ctx context.Context, tokenStr string) error {
	if tokenStr == "" {
		return nil
	}

	if err := s.issuer.Revoke(tokenStr); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	slog.Info("user logged out")
	return nil
}

// CurrentUser は検証済みユーザーIDから現在のユーザーを取得する。
// 見つからない場合はUNAUTHORIZEDのAPIErrorを返す。
func (s *Service) CurrentUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, model.NewUnauthorizedError()
	}

	return user, nil
}
