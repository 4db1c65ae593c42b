package respond

import (
	"regexp"
)

var (
	// Bearerトークンパターン（上流APIへの認証ヘッダがエラーに混入する場合）
	bearerTokenPattern = regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9._~+/-]+=*`)

	// クエリ文字列内のAPIキーパターン
	apiKeyParamPattern = regexp.MustCompile(`(?i)(api_?key|token)=[^&\s"]+`)

	// データベースパスワードパターン（DSN内）
	dbPasswordPattern = regexp.MustCompile(`://([^:/]+):([^@]+)@`)
)

// SanitizeError は機密情報をマスクしたエラーメッセージを返す
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()

	// 認証情報のマスク
	msg = bearerTokenPattern.ReplaceAllString(msg, "Bearer ****")
	msg = apiKeyParamPattern.ReplaceAllString(msg, "$1=****")

	// DBパスワードのマスク
	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")

	return msg
}
