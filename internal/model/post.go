// Package model はドメインモデルを定義する。
package model

import "time"

// Post はブログ記事を表す。
// BodyはサニタイズされたHTML。
// 一覧表示はcreated_at降順、同時刻の場合はid降順で全順序を保つ。
type Post struct {
	ID        string
	Title     string
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
