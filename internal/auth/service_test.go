package auth

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/hitoshi/blogman/internal/model"
	"github.com/hitoshi/blogman/internal/repository"
)

// --- モック定義 ---

type mockUserRepo struct {
	findByUsernameFn func(ctx context.Context, username string) (*model.User, error)
	findByIDFn       func(ctx context.Context, id string) (*model.User, error)
	createFn         func(ctx context.Context, user *model.User) error
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.findByUsernameFn != nil {
		return m.findByUsernameFn(ctx, username)
	}
	return nil, nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

type mockTokenIssuer struct {
	issueFn  func(userID string) (string, error)
	revokeFn func(tokenStr string) error
}

func (m *mockTokenIssuer) Issue(userID string) (string, error) {
	if m.issueFn != nil {
		return m.issueFn(userID)
	}
	return "issued-token", nil
}

func (m *mockTokenIssuer) Revoke(tokenStr string) error {
	if m.revokeFn != nil {
		return m.revokeFn(tokenStr)
	}
	return nil
}

// --- compile-time interface checks ---
var _ repository.UserRepository = (*mockUserRepo)(nil)
var _ TokenIssuer = (*mockTokenIssuer)(nil)

func newTestService(t *testing.T, repo repository.UserRepository, issuer TokenIssuer) *Service {
	t.Helper()
	svc, err := NewService(repo, issuer, nil, ServiceConfig{BcryptCost: bcrypt.MinCost})
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	return svc
}

func hashForTest(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return string(hash)
}

// --- テスト ---

// 正しい資格情報でログインするとトークンが発行されることを検証
func TestService_Login_ValidCredentials_IssuesToken(t *testing.T) {
	repo := &mockUserRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			if username == "admin" {
				return &model.User{
					ID:           "user-1",
					Username:     "admin",
					PasswordHash: hashForTest(t, "correct-password"),
				}, nil
			}
			return nil, nil
		},
	}

	var issuedFor string
	issuer := &mockTokenIssuer{
		issueFn: func(userID string) (string, error) {
			issuedFor = userID
			return "signed-token", nil
		},
	}

	svc := newTestService(t, repo, issuer)

	tokenStr, err := svc.Login(context.Background(), "admin", "correct-password")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if tokenStr != "signed-token" {
		t.Errorf("token = %q, want %q", tokenStr, "signed-token")
	}
	if issuedFor != "user-1" {
		t.Errorf("issued for = %q, want %q", issuedFor, "user-1")
	}
}

// パスワード不一致とユーザー不在が同一のエラーになることを検証
// （ユーザー名の存在を外部から推測できないこと）
func TestService_Login_WrongPasswordAndUnknownUser_SameError(t *testing.T) {
	repo := &mockUserRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			if username == "admin" {
				return &model.User{
					ID:           "user-1",
					Username:     "admin",
					PasswordHash: hashForTest(t, "correct-password"),
				}, nil
			}
			return nil, nil
		},
	}

	svc := newTestService(t, repo, &mockTokenIssuer{})

	_, wrongPassErr := svc.Login(context.Background(), "admin", "wrong-password")
	_, unknownUserErr := svc.Login(context.Background(), "nobody", "whatever")

	var apiErr1, apiErr2 *model.APIError
	if !errors.As(wrongPassErr, &apiErr1) {
		t.Fatalf("wrong password error is not APIError: %v", wrongPassErr)
	}
	if !errors.As(unknownUserErr, &apiErr2) {
		t.Fatalf("unknown user error is not APIError: %v", unknownUserErr)
	}

	if apiErr1.Code != model.ErrCodeInvalidCredentials {
		t.Errorf("code = %q, want %q", apiErr1.Code, model.ErrCodeInvalidCredentials)
	}
	if *apiErr1 != *apiErr2 {
		t.Errorf("error shapes differ: %+v vs %+v", apiErr1, apiErr2)
	}
}

// ユーザー名の照合が大文字小文字を区別することを検証
func TestService_Login_UsernameIsCaseSensitive(t *testing.T) {
	repo := &mockUserRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			// 完全一致のみヒットするストアの動作を模倣する
			if username == "admin" {
				return &model.User{
					ID:           "user-1",
					Username:     "admin",
					PasswordHash: hashForTest(t, "correct-password"),
				}, nil
			}
			return nil, nil
		},
	}

	svc := newTestService(t, repo, &mockTokenIssuer{})

	if _, err := svc.Login(context.Background(), "Admin", "correct-password"); err == nil {
		t.Fatal("expected error for case-mismatched username")
	}
}

// 登録されたパスワードがbcryptハッシュとして保存され、平文を含まないことを検証
func TestService_Register_HashesPassword(t *testing.T) {
	var created *model.User
	repo := &mockUserRepo{
		createFn: func(ctx context.Context, user *model.User) error {
			created = user
			return nil
		},
	}

	svc := newTestService(t, repo, &mockTokenIssuer{})

	user, err := svc.Register(context.Background(), "admin", "secret-password")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if created == nil {
		t.Fatal("expected user to be created")
	}
	if created.ID == "" {
		t.Error("expected non-empty user ID")
	}
	if created.PasswordHash == "secret-password" {
		t.Error("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("secret-password")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
	if user.Username != "admin" {
		t.Errorf("username = %q, want %q", user.Username, "admin")
	}
}

// 同一ユーザー名の2回目の登録がUSERNAME_TAKENになることを検証
func TestService_Register_DuplicateUsername_ReturnsConflict(t *testing.T) {
	repo := &mockUserRepo{
		createFn: func(ctx context.Context, user *model.User) error {
			return model.NewUsernameTakenError(user.Username)
		},
	}

	svc := newTestService(t, repo, &mockTokenIssuer{})

	_, err := svc.Register(context.Background(), "admin", "password")

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error is not APIError: %v", err)
	}
	if apiErr.Code != model.ErrCodeUsernameTaken {
		t.Errorf("code = %q, want %q", apiErr.Code, model.ErrCodeUsernameTaken)
	}
}

// 空のユーザー名・パスワードでの登録が拒否されることを検証
func TestService_Register_EmptyInput_Rejected(t *testing.T) {
	svc := newTestService(t, &mockUserRepo{}, &mockTokenIssuer{})

	if _, err := svc.Register(context.Background(), "", "password"); err == nil {
		t.Error("expected error for empty username")
	}
	if _, err := svc.Register(context.Background(), "admin", ""); err == nil {
		t.Error("expected error for empty password")
	}
}

// Logoutがトークンの失効を要求することを検証
func TestService_Logout_RevokesToken(t *testing.T) {
	var revoked string
	issuer := &mockTokenIssuer{
		revokeFn: func(tokenStr string) error {
			revoked = tokenStr
			return nil
		},
	}

	svc := newTestService(t, &mockUserRepo{}, issuer)

	if err := svc.Logout(context.Background(), "some-token"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if revoked != "some-token" {
		t.Errorf("revoked = %q, want %q", revoked, "some-token")
	}
}

// CurrentUserが存在しないユーザーIDに対してUNAUTHORIZEDを返すことを検証
func TestService_CurrentUser_UnknownID_Unauthorized(t *testing.T) {
	svc := newTestService(t, &mockUserRepo{}, &mockTokenIssuer{})

	_, err := svc.CurrentUser(context.Background(), "ghost")

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error is not APIError: %v", err)
	}
	if apiErr.Code != model.ErrCodeUnauthorized {
		t.Errorf("code = %q, want %q", apiErr.Code, model.ErrCodeUnauthorized)
	}
}
