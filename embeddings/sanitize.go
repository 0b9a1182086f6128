package embeddings

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var md = goldmark.New()

// StripMarkup flattens markdown (and any raw HTML riding inside it) to
// plain text before chunking. Issue and PR bodies arrive as markdown;
// embedding the formatting wastes tokens and pollutes retrieval.
func StripMarkup(content string) string {
	src := []byte(content)
	doc := md.Parser().Parse(text.NewReader(src))

	var buf strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			switch t := n.(type) {
			case *ast.Text:
				buf.Write(t.Segment.Value(src))
				if t.SoftLineBreak() || t.HardLineBreak() {
					buf.WriteByte('\n')
				}
			case *ast.AutoLink:
				buf.Write(t.URL(src))
			}
			return ast.WalkContinue, nil
		}

		// Separate blocks so words from adjacent paragraphs don't fuse.
		if n.Type() == ast.TypeBlock && buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(buf.String())
}
