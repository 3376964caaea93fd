package preview

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

var markdownParser = goldmark.New(
	goldmark.WithExtensions(extension.Table),
)

// extractMarkdownText parses markdown content and returns its plain text by
// walking the AST, so prompts are not polluted by markup.
func extractMarkdownText(content []byte) string {
	reader := text.NewReader(content)
	doc := markdownParser.Parser().Parse(reader)

	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		// Separate block-level nodes with a newline.
		switch n.Kind() {
		case ast.KindHeading, ast.KindParagraph, ast.KindListItem, ast.KindBlockquote:
			if b.Len() > 0 {
				b.WriteByte('\n')
			}
		}

		switch node := n.(type) {
		case *ast.Text:
			b.Write(node.Segment.Value(content))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteByte('\n')
			}
		case *ast.CodeSpan:
			// Text children handle the content.
		case *ast.FencedCodeBlock:
			writeLines(&b, n, content)
		case *ast.CodeBlock:
			writeLines(&b, n, content)
		}

		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(b.String())
}

func writeLines(b *strings.Builder, n ast.Node, content []byte) {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		b.Write(segment.Value(content))
	}
}
