package middleware

import "net/http"

// methodOverrideField はHTMLフォームでHTTPメソッドを上書きするための隠しフィールド名。
const methodOverrideField = "_method"

// NewMethodOverrideMiddleware はPOSTフォームの_methodフィールドで
// リクエストメソッドをPUTまたはDELETEに書き換えるミドルウェアを返す。
// HTMLフォームはGETとPOSTしか送信できないため、編集・削除フォームが使用する。
// POST以外のリクエストと未対応の値は変更しない。
func NewMethodOverrideMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost {
				switch r.PostFormValue(methodOverrideField) {
				case http.MethodPut:
					r.Method = http.MethodPut
				case http.MethodDelete:
					r.Method = http.MethodDelete
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
