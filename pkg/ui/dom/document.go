// Package dom is a small terminal-side document: an html node tree with an
// active element, capture-phase focus listeners, bubbling key and click
// handlers, and an after-paint task queue.
//
// A Document is not safe for concurrent use. The runtime touches it only
// from its update loop.
package dom

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/odvcencio/focustrap/pkg/ui/focusable"
	"github.com/odvcencio/focustrap/pkg/ui/terminal"
)

// maxFocusDepth bounds nested Focus calls made from focus listeners.
const maxFocusDepth = 16

type focusEntry struct {
	fn   FocusListener
	dead bool
}

type keyEntry struct {
	fn   KeyHandler
	dead bool
}

type clickEntry struct {
	fn   ClickHandler
	dead bool
}

// Document owns the node tree and its focus state.
type Document struct {
	root *html.Node
	head *html.Node
	body *html.Node

	active *html.Node

	focusListeners []*focusEntry
	keyHandlers    map[*html.Node][]*keyEntry
	clickHandlers  map[*html.Node][]*clickEntry

	resolver   *focusable.Resolver
	tasks      *TaskQueue
	focusDepth int
}

// New creates an empty document with a head and a body.
func New() *Document {
	root := &html.Node{Type: html.DocumentNode}
	htmlEl := NewElement("html")
	head := NewElement("head")
	body := NewElement("body")
	root.AppendChild(htmlEl)
	htmlEl.AppendChild(head)
	htmlEl.AppendChild(body)

	return &Document{
		root:          root,
		head:          head,
		body:          body,
		keyHandlers:   make(map[*html.Node][]*keyEntry),
		clickHandlers: make(map[*html.Node][]*clickEntry),
		resolver:      focusable.Default(),
		tasks:         &TaskQueue{},
	}
}

// SetResolver replaces the predicate used for sequential navigation and
// script focusability. nil restores the default.
func (d *Document) SetResolver(r *focusable.Resolver) {
	if r == nil {
		r = focusable.Default()
	}
	d.resolver = r
}

// Resolver returns the document's focusable predicate.
func (d *Document) Resolver() *focusable.Resolver { return d.resolver }

// Root returns the document node.
func (d *Document) Root() *html.Node { return d.root }

// Body returns the body element.
func (d *Document) Body() *html.Node { return d.body }

// Tasks returns the after-paint queue the runtime drains each frame.
func (d *Document) Tasks() *TaskQueue { return d.tasks }

// ActiveElement returns the focused element, or body when nothing is.
func (d *Document) ActiveElement() *html.Node {
	if d.active == nil {
		return d.body
	}
	return d.active
}

// CreateElement is NewElement bound to the document for call-site symmetry.
func (d *Document) CreateElement(tag string, attrs ...string) *html.Node {
	return NewElement(tag, attrs...)
}

// Parse parses markup in body context and returns it under a detached
// wrapper div.
func (d *Document) Parse(markup string) (*html.Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), ctx)
	if err != nil {
		return nil, err
	}
	wrapper := NewElement("div")
	for _, n := range nodes {
		AppendChild(wrapper, n)
	}
	return wrapper, nil
}

// ElementByID finds the first connected element whose id equals id.
func (d *Document) ElementByID(id string) *html.Node {
	if id == "" {
		return nil
	}
	sel := goquery.NewDocumentFromNode(d.root).
		Find("[id]").
		FilterFunction(func(_ int, s *goquery.Selection) bool {
			v, _ := s.Attr("id")
			return v == id
		})
	if sel.Length() == 0 {
		return nil
	}
	return sel.Get(0)
}

// Find returns connected elements matching a CSS selector.
func (d *Document) Find(selector string) []*html.Node {
	return goquery.NewDocumentFromNode(d.root).Find(selector).Nodes
}

// IsConnected reports whether n is attached under the document root.
func (d *Document) IsConnected(n *html.Node) bool {
	return n != nil && Contains(d.root, n)
}

// Remove detaches n. If the active element was inside n, focus falls back
// to body without dispatching a focus event.
func (d *Document) Remove(n *html.Node) {
	if n == nil || n.Parent == nil {
		return
	}
	if d.active != nil && Contains(n, d.active) {
		d.active = nil
	}
	n.Parent.RemoveChild(n)
}

// CanFocus reports whether Focus(n) would move focus to n.
func (d *Document) CanFocus(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode || !d.IsConnected(n) {
		return false
	}
	if n == d.body || HasAttr(n, "tabindex") {
		return true
	}
	return d.resolver.Matches(n)
}

// Focus moves focus to n and notifies capture listeners. It reports whether
// n holds focus once listeners have run; a listener may redirect focus.
func (d *Document) Focus(n *html.Node) bool {
	if !d.CanFocus(n) {
		return false
	}
	prev := d.ActiveElement()
	if prev == n {
		return true
	}
	if n == d.body {
		d.active = nil
	} else {
		d.active = n
	}
	if d.focusDepth >= maxFocusDepth {
		return d.ActiveElement() == n
	}

	d.focusDepth++
	defer func() { d.focusDepth-- }()

	ev := &FocusEvent{Event: Event{Target: n, CurrentTarget: d.root}, Related: prev}
	listeners := append([]*focusEntry(nil), d.focusListeners...)
	for _, l := range listeners {
		if l.dead {
			continue
		}
		l.fn(ev)
		if ev.stopped {
			break
		}
	}
	return d.ActiveElement() == n
}

// Blur returns focus to body without dispatching.
func (d *Document) Blur() {
	d.active = nil
}

// AddFocusListener registers fn in the capture phase for every focus
// change in the document.
func (d *Document) AddFocusListener(fn FocusListener) *Subscription {
	if fn == nil {
		return &Subscription{}
	}
	entry := &focusEntry{fn: fn}
	d.focusListeners = append(d.focusListeners, entry)
	return &Subscription{cancel: func() {
		entry.dead = true
		for i, l := range d.focusListeners {
			if l == entry {
				d.focusListeners = append(d.focusListeners[:i:i], d.focusListeners[i+1:]...)
				return
			}
		}
	}}
}

// FocusListenerCount returns the number of live focus listeners.
func (d *Document) FocusListenerCount() int {
	return len(d.focusListeners)
}

// OnKey registers fn for key events bubbling through n.
func (d *Document) OnKey(n *html.Node, fn KeyHandler) *Subscription {
	if n == nil || fn == nil {
		return &Subscription{}
	}
	entry := &keyEntry{fn: fn}
	d.keyHandlers[n] = append(d.keyHandlers[n], entry)
	return &Subscription{cancel: func() {
		entry.dead = true
		d.keyHandlers[n] = removeEntry(d.keyHandlers[n], entry)
		if len(d.keyHandlers[n]) == 0 {
			delete(d.keyHandlers, n)
		}
	}}
}

// OnClick registers fn for click events bubbling through n.
func (d *Document) OnClick(n *html.Node, fn ClickHandler) *Subscription {
	if n == nil || fn == nil {
		return &Subscription{}
	}
	entry := &clickEntry{fn: fn}
	d.clickHandlers[n] = append(d.clickHandlers[n], entry)
	return &Subscription{cancel: func() {
		entry.dead = true
		d.clickHandlers[n] = removeEntry(d.clickHandlers[n], entry)
		if len(d.clickHandlers[n]) == 0 {
			delete(d.clickHandlers, n)
		}
	}}
}

// HandlerCount returns the number of key and click handlers on n.
func (d *Document) HandlerCount(n *html.Node) int {
	return len(d.keyHandlers[n]) + len(d.clickHandlers[n])
}

func removeEntry[T comparable](entries []T, target T) []T {
	for i, e := range entries {
		if e == target {
			return append(entries[:i:i], entries[i+1:]...)
		}
	}
	return entries
}

// DispatchKey routes ev from the active element up to the root, then runs
// the default action unless a handler prevented it. The default action for
// Tab is sequential navigation; for Enter on a button or link it is a click.
func (d *Document) DispatchKey(ev *KeyEvent) *KeyEvent {
	if ev == nil {
		return nil
	}
	target := d.ActiveElement()
	ev.Target = target

	for n := target; n != nil; n = n.Parent {
		handlers := d.keyHandlers[n]
		if len(handlers) == 0 {
			continue
		}
		ev.CurrentTarget = n
		for _, h := range append([]*keyEntry(nil), handlers...) {
			if h.dead {
				continue
			}
			h.fn(ev)
		}
		if ev.stopped {
			break
		}
	}
	ev.CurrentTarget = nil

	if ev.prevented {
		return ev
	}
	switch ev.Key {
	case terminal.KeyTab:
		d.navigate(!ev.Shift)
	case terminal.KeyEnter:
		if activatable(target) {
			d.dispatchClick(target, -1, -1, false)
		}
	}
	return ev
}

// DispatchClick moves focus to the nearest focusable ancestor of target (or
// body), then bubbles a click from target up to the root.
func (d *Document) DispatchClick(target *html.Node, x, y int) *ClickEvent {
	return d.dispatchClick(target, x, y, true)
}

func (d *Document) dispatchClick(target *html.Node, x, y int, moveFocus bool) *ClickEvent {
	if target == nil || !d.IsConnected(target) {
		return nil
	}
	if moveFocus {
		d.focusNearest(target)
	}

	ev := &ClickEvent{Event: Event{Target: target}, X: x, Y: y}
	for n := target; n != nil; n = n.Parent {
		handlers := d.clickHandlers[n]
		if len(handlers) == 0 {
			continue
		}
		ev.CurrentTarget = n
		for _, h := range append([]*clickEntry(nil), handlers...) {
			if h.dead {
				continue
			}
			h.fn(ev)
		}
		if ev.stopped {
			break
		}
	}
	ev.CurrentTarget = nil
	return ev
}

func (d *Document) focusNearest(target *html.Node) {
	for n := target; n != nil && n != d.root; n = n.Parent {
		if d.CanFocus(n) {
			d.Focus(n)
			return
		}
	}
	d.Blur()
}

// navigate moves focus one step through the document-wide focusable set.
func (d *Document) navigate(forward bool) {
	set := d.resolver.Resolve(d.body)
	if len(set) == 0 {
		return
	}
	idx := -1
	active := d.ActiveElement()
	for i, n := range set {
		if n == active {
			idx = i
			break
		}
	}

	var next int
	switch {
	case forward && idx < 0:
		next = 0
	case forward:
		next = (idx + 1) % len(set)
	case idx < 0:
		next = len(set) - 1
	default:
		next = (idx - 1 + len(set)) % len(set)
	}
	d.Focus(set[next])
}

func activatable(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.Button:
		return !HasAttr(n, "disabled")
	case atom.A:
		return HasAttr(n, "href")
	case atom.Input:
		t, _ := Attr(n, "type")
		return (t == "submit" || t == "button") && !HasAttr(n, "disabled")
	}
	return false
}
