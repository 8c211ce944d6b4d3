package modal

import (
	"golang.org/x/net/html"

	"github.com/odvcencio/focustrap/pkg/ui/dom"
)

// Header builds the dialog heading. A non-empty id lets the container
// reference it through AriaLabelledBy.
func Header(id string, children ...*html.Node) *html.Node {
	n := dom.NewElement("header", "class", "modal-header")
	if id != "" {
		dom.SetAttr(n, "id", id)
	}
	return appendAll(n, children)
}

// Body builds the dialog body section.
func Body(children ...*html.Node) *html.Node {
	return appendAll(dom.NewElement("section", "class", "modal-body"), children)
}

// Footer builds the dialog footer, usually holding the action buttons.
func Footer(children ...*html.Node) *html.Node {
	return appendAll(dom.NewElement("footer", "class", "modal-footer"), children)
}

func appendAll(parent *html.Node, children []*html.Node) *html.Node {
	for _, c := range children {
		dom.AppendChild(parent, c)
	}
	return parent
}
