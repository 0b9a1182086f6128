package embeddings

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunker_ShortTextSingleChunk(t *testing.T) {
	c := Chunker{Size: 1000, Overlap: 200}

	got := c.Split("short note")
	require.Len(t, got, 1)
	assert.Equal(t, "short note", got[0])
}

func TestChunker_EmptyTextNoChunks(t *testing.T) {
	c := Chunker{Size: 1000, Overlap: 200}
	assert.Nil(t, c.Split(""))
	assert.Nil(t, c.Split("   \n "))
}

func TestChunker_BoundedWithOverlap(t *testing.T) {
	c := Chunker{Size: 100, Overlap: 20}
	text := strings.Repeat("lorem ipsum dolor sit amet ", 40)

	chunks := c.Split(text)
	require.Greater(t, len(chunks), 1)

	for i, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 100, "chunk %d over size", i)
	}

	// Adjacent chunks share the overlap region.
	for i := 0; i < len(chunks)-1; i++ {
		tail := chunks[i][len(chunks[i])-20:]
		assert.True(t, strings.HasPrefix(chunks[i+1], tail), "chunk %d does not overlap chunk %d", i+1, i)
	}
}

func TestChunker_HardCutsKeepRunesIntact(t *testing.T) {
	c := Chunker{Size: 100, Overlap: 20}
	// No whitespace anywhere: every cut is a hard cut, and the 3-byte
	// runes do not align with the chunk size.
	text := strings.Repeat("日本語", 30)

	chunks := c.Split(text)
	require.Greater(t, len(chunks), 1)
	for i, chunk := range chunks {
		assert.True(t, utf8.ValidString(chunk), "chunk %d splits a rune", i)
	}
}

func TestChunker_ReassemblyCoversInput(t *testing.T) {
	c := Chunker{Size: 120, Overlap: 30}
	text := strings.Repeat("alpha beta gamma delta ", 30)

	chunks := c.Split(text)

	// Every chunk is a substring at increasing offsets, so the original
	// text must be recoverable by walking them in order.
	offset := 0
	for _, chunk := range chunks {
		idx := strings.Index(text[offset:], chunk)
		require.GreaterOrEqual(t, idx, 0)
		offset += idx
	}
	last := chunks[len(chunks)-1]
	assert.True(t, strings.HasSuffix(text, last))
}
