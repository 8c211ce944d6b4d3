package runtime

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/odvcencio/focustrap/pkg/ui/dom"
)

// BoxKind says how a laid out box is painted.
type BoxKind int

const (
	BlockBox BoxKind = iota
	InlineBox
	TextBox
	BackdropBox
	DialogBox
)

// Box is one painted region of the document.
type Box struct {
	Kind BoxKind
	Node *html.Node
	Rect Rect
	// Label is the painted text for inline and text boxes and the title
	// for dialog boxes.
	Label string
}

// Layout is the document flattened into boxes in paint order. Overlays
// come after page content and children after their parents.
type Layout struct {
	Width, Height int
	Boxes         []Box
}

// HitTest returns the topmost, deepest node painted at (x, y), or nil.
func (l *Layout) HitTest(x, y int) *html.Node {
	if l == nil {
		return nil
	}
	for i := len(l.Boxes) - 1; i >= 0; i-- {
		if l.Boxes[i].Rect.Contains(x, y) {
			return l.Boxes[i].Node
		}
	}
	return nil
}

// BoxFor returns the first box recorded for n.
func (l *Layout) BoxFor(n *html.Node) (Box, bool) {
	if l != nil {
		for _, b := range l.Boxes {
			if b.Node == n {
				return b, true
			}
		}
	}
	return Box{}, false
}

const (
	// BackdropClass marks elements laid out as full-screen overlays.
	BackdropClass = "modal-backdrop"

	dialogMaxWidth = 60
	dialogMinWidth = 20
	fieldWidth     = 16
	listIndent     = 2
)

// LayoutDocument lays the body out as stacked blocks and flowing inline
// runs, then lays out every backdrop as an overlay with its first element
// child centered and boxed.
func LayoutDocument(doc *dom.Document, width, height int) *Layout {
	l := &Layout{Width: width, Height: height}
	if doc == nil || width <= 0 || height <= 0 {
		return l
	}
	overlays := doc.Find("." + BackdropClass)

	page := &layoutEngine{layout: l, skip: overlays}
	page.block(doc.Body(), 0, 0, width)

	for _, backdrop := range overlays {
		page.overlay(backdrop)
	}
	return l
}

type layoutEngine struct {
	layout *Layout
	skip   []*html.Node
}

func (e *layoutEngine) add(b Box) int {
	e.layout.Boxes = append(e.layout.Boxes, b)
	return len(e.layout.Boxes) - 1
}

func (e *layoutEngine) skipped(n *html.Node) bool {
	if n.Type != html.ElementNode || dom.HasAttr(n, "hidden") {
		return true
	}
	switch n.DataAtom {
	case atom.Head, atom.Script, atom.Style, atom.Template, atom.Title:
		return true
	}
	for _, s := range e.skip {
		if s == n {
			return true
		}
	}
	return false
}

// block lays out n at (x, y) with width w and returns the rows it used.
func (e *layoutEngine) block(n *html.Node, x, y, w int) int {
	w = max(w, 1)
	idx := e.add(Box{Kind: BlockBox, Node: n})

	cy, cx := y, x
	inLine := false
	breakLine := func() {
		if inLine {
			cy++
			cx = x
			inLine = false
		}
	}
	place := func(width int) {
		if inLine && cx+width > x+w {
			breakLine()
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			for _, word := range strings.Fields(c.Data) {
				ww := runewidth.StringWidth(word)
				place(ww)
				e.add(Box{Kind: TextBox, Node: n, Rect: NewRect(cx, cy, min(ww, w), 1), Label: word})
				cx += ww + 1
				inLine = true
			}
			continue
		}
		if e.skipped(c) {
			continue
		}
		if isInline(c) {
			label := inlineLabel(c)
			ww := runewidth.StringWidth(label)
			if ww == 0 {
				continue
			}
			place(ww)
			e.add(Box{Kind: InlineBox, Node: c, Rect: NewRect(cx, cy, min(ww, w), 1), Label: label})
			cx += ww + 1
			inLine = true
			continue
		}
		breakLine()
		indent := 0
		if c.DataAtom == atom.Li || c.DataAtom == atom.Blockquote {
			indent = listIndent
		}
		cy += e.block(c, x+indent, cy, w-indent)
	}
	breakLine()

	h := cy - y
	e.layout.Boxes[idx].Rect = NewRect(x, y, w, h)
	return h
}

func (e *layoutEngine) overlay(backdrop *html.Node) {
	l := e.layout
	e.add(Box{Kind: BackdropBox, Node: backdrop, Rect: NewRect(0, 0, l.Width, l.Height)})

	var dialog *html.Node
	for c := backdrop.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			dialog = c
			break
		}
	}
	if dialog == nil {
		return
	}

	w := min(l.Width, max(dialogMinWidth, min(dialogMaxWidth, l.Width-4)))
	inner := w - 4

	// Measure with a throwaway engine, then lay out for real once the
	// centered position is known.
	scratch := &layoutEngine{layout: &Layout{Width: l.Width, Height: l.Height}, skip: e.skip}
	contentH := scratch.block(dialog, 0, 0, inner)

	h := min(l.Height, contentH+2)
	x := (l.Width - w) / 2
	y := max(0, (l.Height-h)/2)

	e.add(Box{Kind: DialogBox, Node: dialog, Rect: NewRect(x, y, w, h), Label: dialogTitle(dialog)})
	e.block(dialog, x+2, y+1, inner)
}

func isInline(n *html.Node) bool {
	switch n.DataAtom {
	case atom.A, atom.Button, atom.Input, atom.Select, atom.Textarea,
		atom.Span, atom.B, atom.Strong, atom.Em, atom.I, atom.Label, atom.Code,
		atom.Iframe, atom.Object, atom.Embed:
		return true
	}
	return false
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func pad(s string, width int) string {
	s = runewidth.Truncate(s, width, "")
	return runewidth.FillRight(s, width)
}

// dialogTitle prefers aria-label, then the text of the aria-labelledby
// element inside the dialog.
func dialogTitle(dialog *html.Node) string {
	if label, ok := dom.Attr(dialog, "aria-label"); ok && label != "" {
		return label
	}
	id, ok := dom.Attr(dialog, "aria-labelledby")
	if !ok || id == "" {
		return ""
	}
	var found *html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil && found == nil; c = c.NextSibling {
			if v, _ := dom.Attr(c, "id"); c.Type == html.ElementNode && v == id {
				found = c
				return
			}
			walk(c)
		}
	}
	walk(dialog)
	return strings.Join(strings.Fields(dom.TextContent(found)), " ")
}

func inlineLabel(n *html.Node) string {
	text := collapse(dom.TextContent(n))
	switch n.DataAtom {
	case atom.Button:
		return "[ " + text + " ]"
	case atom.Input:
		typ, _ := dom.Attr(n, "type")
		switch typ {
		case "checkbox":
			if dom.HasAttr(n, "checked") {
				return "[x]"
			}
			return "[ ]"
		case "submit", "button":
			v, _ := dom.Attr(n, "value")
			return "[ " + v + " ]"
		}
		v, ok := dom.Attr(n, "value")
		if !ok || v == "" {
			v, _ = dom.Attr(n, "placeholder")
		}
		return "[" + pad(v, fieldWidth) + "]"
	case atom.Textarea:
		return "[" + pad(text, fieldWidth) + "]"
	case atom.Select:
		first := ""
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.DataAtom == atom.Option {
				first = collapse(dom.TextContent(c))
				break
			}
		}
		return "[" + pad(first, fieldWidth-2) + " v]"
	case atom.Iframe, atom.Object, atom.Embed:
		return "<" + n.Data + ">"
	}
	return text
}
