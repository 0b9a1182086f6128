package embeddings

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripMarkup_RemovesFormatting(t *testing.T) {
	in := "# Fix login bug\n\nThe session **expires** too early, see [the docs](https://example.com/docs).\n\n- check token TTL\n- add a test"

	out := StripMarkup(in)

	assert.Contains(t, out, "Fix login bug")
	assert.Contains(t, out, "expires")
	assert.Contains(t, out, "the docs")
	assert.Contains(t, out, "check token TTL")
	assert.NotContains(t, out, "**")
	assert.NotContains(t, out, "#")
	assert.NotContains(t, out, "](")
}

func TestStripMarkup_DropsRawHTML(t *testing.T) {
	in := "Before\n\n<div class=\"banner\">inline</div>\n\nAfter"

	out := StripMarkup(in)

	assert.Contains(t, out, "Before")
	assert.Contains(t, out, "After")
	assert.NotContains(t, out, "<div")
}

func TestStripMarkup_SeparatesBlocks(t *testing.T) {
	out := StripMarkup("first paragraph\n\nsecond paragraph")

	// Words from adjacent paragraphs must not fuse.
	assert.NotContains(t, out, "paragraphsecond")
	assert.True(t, strings.Contains(out, "first paragraph"))
	assert.True(t, strings.Contains(out, "second paragraph"))
}

func TestStripMarkup_PlainTextUnchangedInSubstance(t *testing.T) {
	out := StripMarkup("just a plain sentence")
	assert.Equal(t, "just a plain sentence", out)
}
