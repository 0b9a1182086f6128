package embeddings

import (
	"strings"
	"unicode/utf8"
)

// Chunker splits sanitized text into bounded, overlapping chunks. Cuts
// prefer whitespace so words stay intact; the overlap keeps context that
// straddles a boundary retrievable from either side.
type Chunker struct {
	Size    int
	Overlap int
}

func (c Chunker) Split(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	size := c.Size
	if size <= 0 {
		size = 1000
	}
	overlap := c.Overlap
	if overlap < 0 || overlap >= size/2 {
		overlap = size / 5
	}

	if len(s) <= size {
		return []string{s}
	}

	var chunks []string
	start := 0
	for start < len(s) {
		end := start + size
		if end >= len(s) {
			chunks = append(chunks, s[start:])
			break
		}

		cut := strings.LastIndexByte(s[start:end], ' ')
		if cut < size/2 {
			// No usable break point: cut hard, backed up to a rune
			// boundary so a multi-byte rune never straddles chunks.
			cut = size
			for cut > 0 && !utf8.RuneStart(s[start+cut]) {
				cut--
			}
		}

		chunks = append(chunks, s[start:start+cut])

		next := start + cut - overlap
		for next > start && !utf8.RuneStart(s[next]) {
			next--
		}
		start = next
	}

	return chunks
}
