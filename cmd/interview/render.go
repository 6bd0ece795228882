package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var (
	headingStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	bulletStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	questionStyle = lipgloss.NewStyle().Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle      = lipgloss.NewStyle().Faint(true)
)

// renderFeedback turns the coach's markdown into styled terminal text.
// Headings, paragraphs and (nested) bullet lists are kept; other markup is
// reduced to its text.
func renderFeedback(markdown string) string {
	src := []byte(markdown)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var b strings.Builder
	renderBlocks(&b, doc, src, 0)
	return strings.TrimRight(b.String(), "\n")
}

func renderBlocks(b *strings.Builder, parent ast.Node, src []byte, depth int) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(headingStyle.Render(inlineText(node, src)))
			b.WriteString("\n")
		case *ast.List:
			renderBlocks(b, node, src, depth)
		case *ast.ListItem:
			indent := strings.Repeat("  ", depth)
			prefix := indent + bulletStyle.Render("•") + " "
			for c := node.FirstChild(); c != nil; c = c.NextSibling() {
				if _, ok := c.(*ast.List); ok {
					renderBlocks(b, c, src, depth+1)
					continue
				}
				b.WriteString(prefix + inlineText(c, src) + "\n")
				prefix = indent + "  "
			}
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			b.WriteString(blockLines(node, src))
		case *ast.Paragraph, *ast.TextBlock:
			b.WriteString(inlineText(node, src) + "\n")
		default:
			renderBlocks(b, node, src, depth)
		}
	}
}

func inlineText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteString(" ")
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

func blockLines(n ast.Node, src []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		b.WriteString("    " + dimStyle.Render(strings.TrimRight(string(line.Value(src)), "\n")) + "\n")
	}
	return b.String()
}
