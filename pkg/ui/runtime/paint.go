package runtime

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/odvcencio/focustrap/pkg/ui/backend"
	"github.com/odvcencio/focustrap/pkg/ui/dom"
)

// Styles are the cell styles used when painting a document.
type Styles struct {
	Text     backend.Style
	Heading  backend.Style
	Link     backend.Style
	Control  backend.Style
	Disabled backend.Style
	Focused  backend.Style
	Dialog   backend.Style
	Border   backend.Style
	// FocusedBorder is used when the dialog container itself has focus.
	FocusedBorder backend.Style
	Title         backend.Style
}

// DefaultStyles returns the built-in palette.
func DefaultStyles() Styles {
	base := backend.DefaultStyle()
	return Styles{
		Text:          base,
		Heading:       base.Bold(true),
		Link:          base.Foreground(backend.ColorCyan).Underline(true),
		Control:       base.Foreground(backend.ColorBrightWhite),
		Disabled:      base.Dim(true),
		Focused:       base.Reverse(true),
		Dialog:        base,
		Border:        base.Foreground(backend.ColorBlue),
		FocusedBorder: base.Foreground(backend.ColorYellow).Bold(true),
		Title:         base.Bold(true),
	}
}

// Paint draws l into buf. active is highlighted.
func Paint(buf *Buffer, l *Layout, active *html.Node, st Styles) {
	buf.Clear()
	if l == nil {
		return
	}
	for _, b := range l.Boxes {
		switch b.Kind {
		case BackdropBox:
			buf.Restyle(b.Rect, func(s backend.Style) backend.Style { return s.Dim(true) })
		case DialogBox:
			buf.Fill(b.Rect, ' ', st.Dialog)
			border := st.Border
			if b.Node == active {
				border = st.FocusedBorder
			}
			buf.DrawBox(b.Rect, border)
			if b.Label != "" && b.Rect.Width > 6 {
				buf.SetString(b.Rect.X+2, b.Rect.Y, " "+b.Label+" ", st.Title, b.Rect.Width-4)
			}
		case TextBox:
			style := st.Text
			if inHeading(b.Node) {
				style = st.Heading
			}
			buf.SetString(b.Rect.X, b.Rect.Y, b.Label, style, b.Rect.Width)
		case InlineBox:
			buf.SetString(b.Rect.X, b.Rect.Y, b.Label, inlineStyle(b.Node, active, st), b.Rect.Width)
		}
	}
}

func inlineStyle(n, active *html.Node, st Styles) backend.Style {
	switch {
	case n == active:
		return st.Focused
	case dom.HasAttr(n, "disabled"):
		return st.Disabled
	case n.DataAtom == atom.A:
		return st.Link
	case n.DataAtom == atom.Button, n.DataAtom == atom.Input,
		n.DataAtom == atom.Select, n.DataAtom == atom.Textarea:
		return st.Control
	case n.DataAtom == atom.B, n.DataAtom == atom.Strong:
		return st.Heading
	}
	return st.Text
}

func inHeading(n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		switch n.DataAtom {
		case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.Header:
			return true
		}
	}
	return false
}
