package modal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/net/html"

	"github.com/odvcencio/focustrap/pkg/ui/dom"
)

func TestSections(t *testing.T) {
	title := dom.NewText("Delete file?")
	h := Header("dlg-title", title)
	b := Body(dom.NewText("This cannot be undone."))
	ok := dom.NewElement("button", "id", "ok")
	f := Footer(ok)

	assert.Equal(t, "header#dlg-title.modal-header", dom.Describe(h))
	assert.Equal(t, "section.modal-body", dom.Describe(b))
	assert.Equal(t, "footer.modal-footer", dom.Describe(f))
	assert.Same(t, h, title.Parent)
	assert.Same(t, f, ok.Parent)
	assert.Equal(t, "header.modal-header", dom.Describe(Header("")))
}

func TestSectionsInsideDialog(t *testing.T) {
	doc := dom.New()
	m := NewModal(doc, DefaultOptions())
	ok := dom.NewElement("button", "id", "ok")

	m.Render(Props{
		IsOpen:         true,
		AriaLabelledBy: "dlg-title",
		Children: []*html.Node{
			Header("dlg-title", dom.NewText("Title")),
			Body(dom.NewText("Text")),
			Footer(ok),
		},
	})
	doc.Tasks().Flush()

	assert.Same(t, ok, doc.ActiveElement())
	assert.NotNil(t, doc.ElementByID("dlg-title"))
}
