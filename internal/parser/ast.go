package parser

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// CodeBlock is one fenced code block of a markdown document.
type CodeBlock struct {
	// Lang is the first word of the fence info string, lower-cased.
	Lang string
	// Caption is the paragraph directly above the fence, if any.
	Caption string
	// Content is the text between the fences, trailing newline included.
	Content string
}

// ExtractCodeBlocks returns the fenced code blocks of source in document
// order, including those nested in lists and block quotes.
func ExtractCodeBlocks(source []byte) ([]CodeBlock, error) {
	root := goldmark.DefaultParser().Parse(text.NewReader(source))

	var blocks []CodeBlock
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		fenced, ok := n.(*ast.FencedCodeBlock)
		if !entering || !ok {
			return ast.WalkContinue, nil
		}
		blocks = append(blocks, CodeBlock{
			Lang:    strings.ToLower(string(fenced.Language(source))),
			Caption: caption(fenced, source),
			Content: string(fenced.Lines().Value(source)),
		})
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, err
	}
	return blocks, nil
}

func caption(n ast.Node, source []byte) string {
	p, ok := n.PreviousSibling().(*ast.Paragraph)
	if !ok {
		return ""
	}
	return strings.TrimSpace(string(p.Lines().Value(source)))
}
