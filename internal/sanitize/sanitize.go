package sanitize

import (
	"regexp"
	"strings"
)

// MaxNoteLength bounds free-text notes and comments.
const MaxNoteLength = 1000

var (
	scriptRe  = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`)
	tagRe     = regexp.MustCompile(`(?s)<[^>]*>`)
	jsRe      = regexp.MustCompile(`(?i)javascript\s*:`)
	handlerRe = regexp.MustCompile(`(?i)\bon[a-z]+\s*=`)
)

// Note strips script blocks, remaining HTML tags, the javascript:
// scheme and inline event-handler attributes, then truncates to
// MaxNoteLength runes.
func Note(s string) string {
	s = scriptRe.ReplaceAllString(s, "")
	s = tagRe.ReplaceAllString(s, "")
	s = jsRe.ReplaceAllString(s, "")
	s = handlerRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)

	runes := []rune(s)
	if len(runes) > MaxNoteLength {
		s = string(runes[:MaxNoteLength])
	}
	return s
}
