// Package token はステートレスな署名付きセッショントークンの発行と検証を提供する。
//
// トークンはHMAC-SHA256で署名されたJWTで、サーバー側には一切保存されない。
// 検証は署名のみで完結するため、サーバー起点の失効はできない（Revokeを参照）。
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// 検証失敗の種別。ハンドラー側はどちらも401に変換する。
var (
	// ErrMalformed はトークンが構造的に不正な場合のエラー。
	ErrMalformed = errors.New("token is malformed")
	// ErrInvalid は署名不一致または期限切れの場合のエラー。
	ErrInvalid = errors.New("token is invalid")
)

// Claims はセッショントークンに含まれるクレーム。
// ユーザーIDに加え、発行時刻と有効期限を必ず持つ。
type Claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// Service はセッショントークンの発行と検証を行う。
// 秘密鍵とTTLは起動時に注入され、以後変更されない。
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService はServiceを生成する。
// secretはHMAC-SHA256の署名鍵、ttlは発行するトークンの有効期間。
func NewService(secret []byte, ttl time.Duration) *Service {
	return &Service{
		secret: secret,
		ttl:    ttl,
	}
}

// Issue は指定ユーザーIDを紐付けた署名付きトークンを発行する。
// 発行時刻と有効期限（now + TTL）をクレームに含める。
func (s *Service) Issue(userID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify はトークンを検証し、紐付けられたユーザーIDを返す。
// 構造的に不正な場合はErrMalformed、署名不一致または期限切れの場合はErrInvalidを返す。
func (s *Service) Verify(tokenStr string) (string, error) {
	tok, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return "", ErrMalformed
		}
		return "", ErrInvalid
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid || claims.UserID == "" {
		return "", ErrInvalid
	}

	return claims.UserID, nil
}

// Revoke はトークンの失効を要求する。
// ステートレス設計のためサーバー側に失効状態を持たず、現状は常に成功を返すno-op。
// 失効が必要になった場合は、jtiクレームと失効リストの導入がここでの拡張点になる。
func (s *Service) Revoke(tokenStr string) error {
	return nil
}
