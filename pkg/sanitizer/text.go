// Package sanitizer turns HTML email bodies into plain text.
package sanitizer

import (
	"html"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	initOnce     sync.Once

	// Block-level closing tags and line breaks become newlines before
	// the markup is stripped.
	breakPattern = regexp.MustCompile(`(?i)<br\s*/?>|</(p|div|h[1-6]|li|tr|table|blockquote)>`)
	blankLines   = regexp.MustCompile(`\n[ \t]*\n(\s*\n)+`)
)

func initPolicy() {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
}

// PlainText strips all markup from s and returns readable text.
// Entities are decoded and runs of blank lines collapse to one.
func PlainText(s string) string {
	initPolicy()

	s = breakPattern.ReplaceAllStringFunc(s, func(tag string) string {
		return tag + "\n"
	})
	s = html.UnescapeString(strictPolicy.Sanitize(s))

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	s = strings.Join(lines, "\n")

	return strings.TrimSpace(blankLines.ReplaceAllString(s, "\n\n"))
}
