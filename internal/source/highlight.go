package source

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Highlight renders every case-insensitive occurrence of filter in text with
// mark and the remaining runs with base. Blank filters leave text unmarked.
func Highlight(text, filter string, base, mark lipgloss.Style) string {
	if filter == "" {
		return base.Render(text)
	}

	lowerText := strings.ToLower(text)
	lowerFilter := strings.ToLower(filter)
	// lowering may change byte lengths outside ASCII; fall back to no marks
	if len(lowerText) != len(text) || len(lowerFilter) != len(filter) {
		return base.Render(text)
	}

	var b strings.Builder
	rest := 0
	for {
		i := strings.Index(lowerText[rest:], lowerFilter)
		if i < 0 {
			break
		}
		start := rest + i
		end := start + len(filter)
		if start > rest {
			b.WriteString(base.Render(text[rest:start]))
		}
		b.WriteString(mark.Render(text[start:end]))
		rest = end
	}
	if rest < len(text) {
		b.WriteString(base.Render(text[rest:]))
	}
	return b.String()
}
