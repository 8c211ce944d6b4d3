// Package markdown turns Markdown source into dialog content nodes.
package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"golang.org/x/net/html"

	"github.com/odvcencio/focustrap/pkg/errors"
	"github.com/odvcencio/focustrap/pkg/ui/dom"
)

// Converter wraps goldmark for dialog content.
// Raw HTML in the source is dropped.
type Converter struct {
	md goldmark.Markdown
}

// NewConverter creates a converter with GitHub Flavored Markdown enabled
// and heading ids generated from heading text.
func NewConverter() *Converter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)
	return &Converter{md: md}
}

// Parse parses markdown source and returns the AST root.
func (c *Converter) Parse(source []byte) ast.Node {
	return c.md.Parser().Parse(text.NewReader(source))
}

// HTML renders source to an HTML fragment.
func (c *Converter) HTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(source), &buf); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeContentRender, "rendering markdown")
	}
	return buf.String(), nil
}

// Nodes renders source into detached top-level nodes ready to be passed
// as dialog children.
func (c *Converter) Nodes(doc *dom.Document, source string) ([]*html.Node, error) {
	markup, err := c.HTML(source)
	if err != nil {
		return nil, err
	}
	wrapper, err := doc.Parse(markup)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeContentRender, "parsing rendered markdown")
	}
	var nodes []*html.Node
	for n := wrapper.FirstChild; n != nil; {
		next := n.NextSibling
		if n.Type == html.ElementNode {
			wrapper.RemoveChild(n)
			nodes = append(nodes, n)
		}
		n = next
	}
	return nodes, nil
}

// Heading describes a markdown heading.
type Heading struct {
	Level int
	ID    string
	Text  string
}

// Title returns the first heading in source, which hosts use as the
// dialog's aria-labelledby target.
func (c *Converter) Title(source string) (Heading, bool) {
	src := []byte(source)
	var found Heading
	ok := false
	_ = Walk(c.Parse(src), func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		h, isHeading := node.(*ast.Heading)
		if !entering || !isHeading {
			return ast.WalkContinue, nil
		}
		found = Heading{Level: h.Level, Text: plainText(h, src)}
		if id, has := h.AttributeString("id"); has {
			if b, isBytes := id.([]byte); isBytes {
				found.ID = string(b)
			}
		}
		ok = true
		return ast.WalkStop, nil
	})
	return found, ok
}

func plainText(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := child.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}

// WalkFunc is called for each node during tree traversal.
type WalkFunc func(node ast.Node, entering bool) (ast.WalkStatus, error)

// Walk traverses the AST tree calling fn for each node.
func Walk(node ast.Node, fn WalkFunc) error {
	return ast.Walk(node, ast.Walker(fn))
}
