package post

import (
	"testing"

	"github.com/hitoshi/blogman/internal/model"
)

// NormalizePageが0以下の値を1に切り上げることを検証
func TestNormalizePage_ClampsToOne(t *testing.T) {
	tests := []struct {
		name string
		page int
		want int
	}{
		{"negative", -5, 1},
		{"zero", 0, 1},
		{"one", 1, 1},
		{"positive", 7, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePage(tt.page); got != tt.want {
				t.Errorf("NormalizePage(%d) = %d, want %d", tt.page, got, tt.want)
			}
		})
	}
}

// PageOffsetが負のスキップ数を生じないことを検証
func TestPageOffset_Computation(t *testing.T) {
	tests := []struct {
		page int
		want int
	}{
		{1, 0},
		{2, 10},
		{3, 20},
	}

	for _, tt := range tests {
		if got := PageOffset(tt.page, PostsPerPage); got != tt.want {
			t.Errorf("PageOffset(%d, %d) = %d, want %d", tt.page, PostsPerPage, got, tt.want)
		}
	}
}

// 25件・ページサイズ10のウィンドウ計算を検証:
// page=1はnextPage=2、page=3はnextPage無し、page=4は空ウィンドウ
func TestNewWindow_TwentyFivePosts(t *testing.T) {
	makePosts := func(n int) []*model.Post {
		posts := make([]*model.Post, n)
		for i := range posts {
			posts[i] = &model.Post{}
		}
		return posts
	}

	tests := []struct {
		name      string
		page      int
		postCount int
		wantNext  int // 0は次ページ無し
		wantTotal int
	}{
		{"page 1 full window", 1, 10, 2, 3},
		{"page 2 full window", 2, 10, 3, 3},
		{"page 3 partial window", 3, 5, 0, 3},
		{"page 4 empty window", 4, 0, 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWindow(makePosts(tt.postCount), tt.page, 10, 25)

			if len(w.Posts) != tt.postCount {
				t.Errorf("len(Posts) = %d, want %d", len(w.Posts), tt.postCount)
			}
			if w.TotalPages != tt.wantTotal {
				t.Errorf("TotalPages = %d, want %d", w.TotalPages, tt.wantTotal)
			}
			if tt.wantNext == 0 {
				if w.HasNext || w.NextPage != nil {
					t.Errorf("expected no next page, got HasNext=%v NextPage=%v", w.HasNext, w.NextPage)
				}
			} else {
				if !w.HasNext || w.NextPage == nil {
					t.Fatalf("expected next page %d, got HasNext=%v NextPage=%v", tt.wantNext, w.HasNext, w.NextPage)
				}
				if *w.NextPage != tt.wantNext {
					t.Errorf("NextPage = %d, want %d", *w.NextPage, tt.wantNext)
				}
			}
		})
	}
}

// 記事0件の場合にTotalPagesが0で次ページも無いことを検証
func TestNewWindow_EmptyCollection(t *testing.T) {
	w := NewWindow(nil, 1, 10, 0)

	if w.TotalPages != 0 {
		t.Errorf("TotalPages = %d, want 0", w.TotalPages)
	}
	if w.HasNext || w.NextPage != nil {
		t.Errorf("expected no next page, got HasNext=%v NextPage=%v", w.HasNext, w.NextPage)
	}
}

// ちょうどページサイズの倍数の場合の境界を検証
func TestNewWindow_ExactMultiple(t *testing.T) {
	// 20件・サイズ10 → 2ページ、page=2に次ページ無し
	w := NewWindow(nil, 2, 10, 20)

	if w.TotalPages != 2 {
		t.Errorf("TotalPages = %d, want 2", w.TotalPages)
	}
	if w.HasNext || w.NextPage != nil {
		t.Errorf("expected no next page on last page, got HasNext=%v NextPage=%v", w.HasNext, w.NextPage)
	}
}
