// Package model はドメインモデルを定義する。
package model

import "time"

// User は管理者ユーザーを表す。
// 単一管理者モデルのため、Postとの所有関係は持たない。
// usernameの一意性はストア側の一意制約で保証される。
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
