package post

import "github.com/hitoshi/blogman/internal/model"

// PostsPerPage は一覧表示の1ページあたりの記事数（固定）。
const PostsPerPage = 10

// Window は1ページ分の記事一覧と前後関係の情報を表す。
// NextPageは次ページが存在しない場合nil。
type Window struct {
	Posts      []*model.Post
	Page       int
	TotalCount int
	TotalPages int
	NextPage   *int
	HasNext    bool
}

// NormalizePage は1始まりのページ番号を正規化する。
// 0以下の値は1に切り上げ、負のオフセットが生じないようにする。
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// PageOffset は正規化済みページ番号からスキップ件数を計算する。
func PageOffset(page, pageSize int) int {
	return pageSize * (page - 1)
}

// NewWindow はページ番号・ページサイズ・総数・取得済み記事からWindowを組み立てる。
// totalPages = ceil(totalCount / pageSize)。
// 総ページ数を超えるページは空のWindowになる（エラーではない）。
func NewWindow(posts []*model.Post, page, pageSize, totalCount int) Window {
	totalPages := (totalCount + pageSize - 1) / pageSize

	w := Window{
		Posts:      posts,
		Page:       page,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}

	if page+1 <= totalPages {
		next := page + 1
		w.NextPage = &next
		w.HasNext = true
	}

	return w
}
