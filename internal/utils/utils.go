package utils

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// StatusCoder is implemented by upstream errors that carry an HTTP status.
type StatusCoder interface {
	StatusCode() int
}

// ShouldRetry reports whether an upstream failure is transient: rate limits,
// 5xx responses, timeouts and dropped connections.
func ShouldRetry(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "rate limit") ||
		strings.Contains(errMsg, "500 internal server error") ||
		strings.Contains(errMsg, "502 bad gateway") ||
		strings.Contains(errMsg, "503 service unavailable") ||
		strings.Contains(errMsg, "504 gateway timeout") ||
		strings.Contains(errMsg, "overloaded") ||
		strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "connection reset by peer") ||
		strings.Contains(errMsg, "context deadline exceeded") {
		return true
	}
	var openAIErr *openai.APIError
	if errors.As(err, &openAIErr) {
		return retryableStatus(openAIErr.HTTPStatusCode)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return retryableStatus(reqErr.HTTPStatusCode)
	}
	var sc StatusCoder
	if errors.As(err, &sc) {
		return retryableStatus(sc.StatusCode())
	}
	return false
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

// DetermineFileType names the kind of a theme file from its path.
func DetermineFileType(filename string) string {
	lowerFilename := strings.ToLower(filename)
	switch filepath.Ext(lowerFilename) {
	case ".html":
		if strings.HasPrefix(lowerFilename, "parts/") {
			return "TemplatePart"
		}
		if strings.HasPrefix(lowerFilename, "templates/") {
			return "Template"
		}
		return "HTML"
	case ".php":
		if strings.HasPrefix(lowerFilename, "patterns/") {
			return "Pattern"
		}
		return "PHP"
	case ".css":
		return "CSS"
	case ".js":
		return "JavaScript"
	case ".json":
		return "JSON"
	case ".md":
		return "Markdown"
	case ".txt":
		return "Text"
	case ".svg":
		return "SVG"
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		return "Image"
	default:
		return "Unknown"
	}
}
