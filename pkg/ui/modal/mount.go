package modal

import (
	"golang.org/x/net/html"

	"github.com/odvcencio/focustrap/pkg/ui/dom"
)

// RootID is the id of the shared overlay root.
const RootID = "modal-root"

// MountRoot returns the element with id under body, creating it on first
// use. Later calls return the same element.
func MountRoot(doc *dom.Document, id string) *html.Node {
	if id == "" {
		id = RootID
	}
	if root := doc.ElementByID(id); root != nil {
		return root
	}
	root := dom.NewElement("div", "id", id)
	dom.AppendChild(doc.Body(), root)
	return root
}
