package sanitize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoteStripsScriptBlocks(t *testing.T) {
	out := Note(`hello <script type="text/javascript">alert("x")</script> world`)
	assert.Equal(t, "hello  world", out)
}

func TestNoteStripsHTMLTags(t *testing.T) {
	out := Note(`please use the <b>back</b> entrance`)
	assert.Equal(t, "please use the back entrance", out)
}

func TestNoteStripsJavascriptScheme(t *testing.T) {
	out := Note(`see javascript:alert(1) here`)
	assert.NotContains(t, strings.ToLower(out), "javascript:")
}

func TestNoteStripsInlineHandlers(t *testing.T) {
	out := Note(`x onerror=alert(1) y onclick = foo z`)
	assert.NotContains(t, out, "onerror=")
	assert.NotContains(t, out, "onclick")
}

func TestNoteTrimsAndTruncates(t *testing.T) {
	assert.Equal(t, "short", Note("  short  "))

	long := strings.Repeat("é", MaxNoteLength+50)
	out := Note(long)
	assert.Equal(t, MaxNoteLength, len([]rune(out)))
}

func TestNotePlainTextUntouched(t *testing.T) {
	in := "arrive 5 min early, allergic to ammonia"
	assert.Equal(t, in, Note(in))
}
