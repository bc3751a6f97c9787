package server

import (
	"html"
	"path/filepath"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// sanitizeText strips every tag from a posted value and returns plain text.
// The sanitizer escapes entities, so they are decoded again; templates
// escape on output.
func sanitizeText(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return raw
	}
	return html.UnescapeString(textSanitizer().Sanitize(raw))
}

func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" {
		return ""
	}
	return sanitizeText(name)
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
