package modal

import (
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/odvcencio/focustrap/pkg/ui/dom"
)

// Props is the host-facing description of a dialog for one render.
type Props struct {
	IsOpen         bool
	OnClose        func()
	Children       []*html.Node
	AriaLabel      string
	AriaLabelledBy string
}

// Options configures a Modal.
type Options struct {
	// RootID names the overlay root element. Defaults to RootID.
	RootID string
	Trap   TrapOptions
}

// DefaultOptions returns the options used by NewModal when none are given.
func DefaultOptions() Options {
	return Options{RootID: RootID, Trap: DefaultTrapOptions()}
}

// Modal mounts a dialog into the overlay root while open and drives its
// focus trap across renders.
type Modal struct {
	id   string
	doc  *dom.Document
	opts Options
	trap *Trap

	open      bool
	backdrop  *html.Node
	container *html.Node
	children  []*html.Node
}

// NewModal creates a closed dialog bound to doc.
func NewModal(doc *dom.Document, opts Options) *Modal {
	if opts.RootID == "" {
		opts.RootID = RootID
	}
	id := uuid.NewString()
	if opts.Trap.Logger != nil {
		logger := opts.Trap.Logger.WithDialog(opts.RootID)
		logger.Logger = logger.With(slog.String("dialog_id", id))
		opts.Trap.Logger = logger
	}
	return &Modal{
		id:   id,
		doc:  doc,
		opts: opts,
		trap: NewTrap(doc, opts.Trap),
	}
}

// ID identifies the dialog in logs.
func (m *Modal) ID() string { return m.id }

// Trap exposes the dialog's focus trap.
func (m *Modal) Trap() *Trap { return m.trap }

// IsOpen reports whether the dialog is currently mounted.
func (m *Modal) IsOpen() bool { return m.open }

// Container returns the dialog element while open.
func (m *Modal) Container() *html.Node { return m.container }

// Backdrop returns the backdrop element while open.
func (m *Modal) Backdrop() *html.Node { return m.backdrop }

// Render reconciles the mounted dialog with p. Opening mounts the overlay and
// activates the trap; closing deactivates the trap, restoring focus, and
// then unmounts.
func (m *Modal) Render(p Props) {
	if m.doc == nil {
		return
	}
	switch {
	case p.IsOpen && !m.open:
		m.mount(p)
		m.trap.SetOnClose(p.OnClose)
		m.trap.Activate()
		m.open = true
	case !p.IsOpen && m.open:
		m.teardown()
	case p.IsOpen:
		m.trap.SetOnClose(p.OnClose)
		m.applyLabels(p)
		if !sameNodes(m.children, p.Children) {
			m.replaceChildren(p.Children)
			if !dom.Contains(m.container, m.doc.ActiveElement()) {
				m.trap.FocusFirst()
			}
		}
	}
}

// Close tears the dialog down as if rendered with IsOpen false.
func (m *Modal) Close() {
	if m.open {
		m.teardown()
	}
}

// Unmount releases everything the dialog holds. It is safe to call on a
// closed dialog.
func (m *Modal) Unmount() {
	m.Close()
	m.trap.SetOnClose(nil)
}

func (m *Modal) mount(p Props) {
	root := MountRoot(m.doc, m.opts.RootID)

	m.backdrop = dom.NewElement("div",
		"class", "modal-backdrop",
		"tabindex", "-1",
		"aria-hidden", "false",
	)
	m.container = dom.NewElement("div",
		"class", "modal-content",
		"role", "dialog",
		"aria-modal", "true",
		"tabindex", "-1",
	)
	m.applyLabels(p)
	m.replaceChildren(p.Children)

	dom.AppendChild(m.backdrop, m.container)
	dom.AppendChild(root, m.backdrop)
	m.trap.SetContainer(m.container, m.backdrop)
}

func (m *Modal) teardown() {
	m.trap.Deactivate()
	m.doc.Remove(m.backdrop)
	m.trap.SetContainer(nil, nil)
	m.backdrop, m.container, m.children = nil, nil, nil
	m.open = false
}

func (m *Modal) applyLabels(p Props) {
	setOrRemove(m.container, "aria-label", p.AriaLabel)
	setOrRemove(m.container, "aria-labelledby", p.AriaLabelledBy)
}

func setOrRemove(n *html.Node, key, val string) {
	if val == "" {
		dom.RemoveAttr(n, key)
		return
	}
	dom.SetAttr(n, key, val)
}

func (m *Modal) replaceChildren(children []*html.Node) {
	for c := m.container.FirstChild; c != nil; {
		next := c.NextSibling
		m.doc.Remove(c)
		c = next
	}
	for _, c := range children {
		dom.AppendChild(m.container, c)
	}
	m.children = append([]*html.Node(nil), children...)
}

func sameNodes(a, b []*html.Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
