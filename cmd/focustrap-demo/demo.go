package main

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/odvcencio/focustrap/pkg/config"
	"github.com/odvcencio/focustrap/pkg/ui/dom"
	"github.com/odvcencio/focustrap/pkg/ui/markdown"
	"github.com/odvcencio/focustrap/pkg/ui/modal"
	"github.com/odvcencio/focustrap/pkg/ui/runtime"
	"github.com/odvcencio/focustrap/pkg/ui/terminal"
)

const pageMarkup = `<h1>Reports</h1>
<p id="status">Press o or activate the button to delete the report. Escape quits.</p>
<p><button id="open">Delete report</button> <a id="docs" href="/docs">Docs</a></p>`

const dialogMarkdown = `# Delete report

The quarterly report and its attachments will be removed.
This cannot be undone.
`

// demo is a single page with one confirmation dialog.
type demo struct {
	doc    *dom.Document
	dialog *modal.Modal
	state  *modal.State

	opener, status  *html.Node
	cancel, confirm *html.Node
	children        []*html.Node
	labelledBy      string
	deleted         int
}

func newDemo(doc *dom.Document, opts modal.Options) (*demo, error) {
	page, err := doc.Parse(pageMarkup)
	if err != nil {
		return nil, err
	}
	dom.AppendChild(doc.Body(), page)

	conv := markdown.NewConverter()
	content, err := conv.Nodes(doc, dialogMarkdown)
	if err != nil {
		return nil, err
	}
	title, _ := conv.Title(dialogMarkdown)

	d := &demo{
		doc:        doc,
		dialog:     modal.NewModal(doc, opts),
		state:      modal.NewState(false),
		opener:     doc.ElementByID("open"),
		status:     doc.ElementByID("status"),
		cancel:     dom.NewElement("button", "id", "cancel"),
		confirm:    dom.NewElement("button", "id", "delete"),
		labelledBy: title.ID,
	}
	dom.AppendChild(d.cancel, dom.NewText("Cancel"))
	dom.AppendChild(d.confirm, dom.NewText("Delete"))

	var header []*html.Node
	if len(content) > 0 && content[0].Data == "h1" {
		header, content = content[:1], content[1:]
	}
	d.children = []*html.Node{
		modal.Header("", header...),
		modal.Body(content...),
		modal.Footer(d.cancel, d.confirm),
	}

	doc.OnClick(d.opener, func(*dom.ClickEvent) { d.open() })
	doc.OnClick(d.cancel, func(*dom.ClickEvent) { d.close() })
	doc.OnClick(d.confirm, func(*dom.ClickEvent) {
		d.deleted++
		d.setStatus(fmt.Sprintf("Report deleted (%d).", d.deleted))
		d.close()
	})
	return d, nil
}

func (d *demo) open() {
	d.state.Open()
	d.render()
}

func (d *demo) close() {
	d.state.Close()
	d.render()
}

func (d *demo) render() {
	d.dialog.Render(modal.Props{
		IsOpen:         d.state.IsOpen(),
		OnClose:        d.close,
		Children:       d.children,
		AriaLabelledBy: d.labelledBy,
	})
}

func (d *demo) setStatus(text string) {
	for c := d.status.FirstChild; c != nil; c = d.status.FirstChild {
		d.status.RemoveChild(c)
	}
	dom.AppendChild(d.status, dom.NewText(text))
}

// update opens the dialog on "o" and routes everything else into the
// document.
func (d *demo) update(app *runtime.App, msg runtime.Message) bool {
	if key, ok := msg.(runtime.KeyMsg); ok && key.Key == terminal.KeyRune && key.Rune == 'o' && !d.state.IsOpen() {
		d.open()
		return true
	}
	return runtime.DefaultUpdate(app, msg)
}

// applyConfig picks up reloaded dismissal settings.
func (d *demo) applyConfig(cfg *config.Config) {
	m := cfg.Modal
	d.dialog.Trap().SetDismissal(m.CloseOnEscape, m.CloseOnBackdrop, m.PreventEscapeDefault)
}
