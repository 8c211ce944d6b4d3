package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NewElement creates a detached element. attrs are key/value pairs; a
// trailing key without a value gets an empty value.
func NewElement(tag string, attrs ...string) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for i := 0; i < len(attrs); i += 2 {
		val := ""
		if i+1 < len(attrs) {
			val = attrs[i+1]
		}
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: val})
	}
	return n
}

// NewText creates a detached text node.
func NewText(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Attr returns the value of key on n.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// HasAttr reports whether n carries key.
func HasAttr(n *html.Node, key string) bool {
	_, ok := Attr(n, key)
	return ok
}

// SetAttr sets or replaces key on n.
func SetAttr(n *html.Node, key, val string) {
	if n == nil {
		return
	}
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes key from n.
func RemoveAttr(n *html.Node, key string) {
	if n == nil {
		return
	}
	out := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		out = append(out, a)
	}
	n.Attr = out
}

// AppendChild attaches child as the last child of parent, detaching it
// from any previous parent first.
func AppendChild(parent, child *html.Node) {
	if parent == nil || child == nil {
		return
	}
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	parent.AppendChild(child)
}

// Contains reports whether n is ancestor or a descendant of ancestor.
func Contains(ancestor, n *html.Node) bool {
	if ancestor == nil {
		return false
	}
	for cur := n; cur != nil; cur = cur.Parent {
		if cur == ancestor {
			return true
		}
	}
	return false
}

// TextContent concatenates the text nodes under n.
func TextContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(TextContent(c))
	}
	return b.String()
}

// Describe renders n as a short selector-like label for logs.
func Describe(n *html.Node) string {
	if n == nil {
		return "<nil>"
	}
	if n.Type != html.ElementNode {
		return "#" + strings.ToLower(nodeTypeName(n.Type))
	}
	var b strings.Builder
	b.WriteString(n.Data)
	if id, ok := Attr(n, "id"); ok && id != "" {
		b.WriteByte('#')
		b.WriteString(id)
	}
	if class, ok := Attr(n, "class"); ok {
		for _, c := range strings.Fields(class) {
			b.WriteByte('.')
			b.WriteString(c)
		}
	}
	return b.String()
}

func nodeTypeName(t html.NodeType) string {
	switch t {
	case html.TextNode:
		return "text"
	case html.DocumentNode:
		return "document"
	case html.CommentNode:
		return "comment"
	default:
		return "node"
	}
}
