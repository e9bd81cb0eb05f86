package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	richPolicy  = bluemonday.UGCPolicy()
	plainPolicy = bluemonday.StrictPolicy()
)

// Sanitize keeps a safe HTML subset; used for challenge descriptions.
func Sanitize(input string) string {
	return richPolicy.Sanitize(input)
}

// SanitizePlain strips every tag; used for titles and text answers.
func SanitizePlain(input string) string {
	return strings.TrimSpace(plainPolicy.Sanitize(input))
}
