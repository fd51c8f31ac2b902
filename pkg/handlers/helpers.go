package handlers

import (
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"research-brief-api/pkg/intent"
	"research-brief-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// minClassifyLength を超える長さの入力だけを判定する（入力欄の挙動に合わせる）
const minClassifyLength = 2

// respondError は共通形式のエラーレスポンスを返します。
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

// statusForError はサービス層のエラーをHTTPステータスに対応付けます。
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrCaseNotFound), errors.Is(err, services.ErrBriefNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidPosition), errors.Is(err, services.ErrUnsupportedFile):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// shouldClassify は入力が判定対象の長さかどうかを返します。
func shouldClassify(text string) bool {
	return utf8.RuneCountInString(text) > minClassifyLength
}

// resolveMode は明示されたモードを優先し、無ければテキストから判定します。
func resolveMode(classifier *intent.Classifier, text, mode string) intent.Intent {
	if strings.TrimSpace(mode) != "" {
		return intent.ParseIntent(mode)
	}
	if !shouldClassify(text) {
		return intent.Mixed
	}
	return classifier.DetectIntent(text)
}
