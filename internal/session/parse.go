package session

import (
	"strings"
	"time"

	"github.com/starford/raido/internal/models"
)

// ParseLines converts free-form multi-line text into one entry per line,
// every line timestamped at. Blank lines produce blank entries; the text is
// taken verbatim. This mirrors the full-replacement edit semantics: the
// result stands in for the previous list entirely.
func ParseLines(text string, at time.Time) []models.SessionEntry {
	lines := strings.Split(text, "\n")
	out := make([]models.SessionEntry, len(lines))
	for i, line := range lines {
		out[i] = models.SessionEntry{Text: line, Date: at}
	}
	return out
}

// ParseActions converts free-form multi-line text into one open action per
// line, every line timestamped at.
func ParseActions(text string, at time.Time) []models.Action {
	lines := strings.Split(text, "\n")
	out := make([]models.Action, len(lines))
	for i, line := range lines {
		out[i] = models.Action{Text: line, Date: at}
	}
	return out
}
