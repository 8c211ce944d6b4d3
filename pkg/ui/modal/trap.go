// Package modal implements the dialog focus trap and the lifecycle glue that
// mounts a dialog into a dom.Document.
package modal

import (
	"time"

	"golang.org/x/net/html"
	"golang.org/x/time/rate"

	"github.com/odvcencio/focustrap/pkg/logging"
	"github.com/odvcencio/focustrap/pkg/telemetry"
	"github.com/odvcencio/focustrap/pkg/ui/dom"
	"github.com/odvcencio/focustrap/pkg/ui/focusable"
	"github.com/odvcencio/focustrap/pkg/ui/terminal"
)

// TrapState is the focus trap's lifecycle state.
type TrapState int

const (
	// Inactive means no listeners are registered and focus is free.
	Inactive TrapState = iota
	// Active means focus is confined to the container.
	Active
)

func (s TrapState) String() string {
	if s == Active {
		return "active"
	}
	return "inactive"
}

// Dismissal reasons reported to logs and metrics.
const (
	ReasonEscape   = "escape"
	ReasonBackdrop = "backdrop"
)

// TrapOptions configures a Trap. Zero values select the defaults noted on
// each field except for the booleans; use DefaultTrapOptions for those.
type TrapOptions struct {
	// Resolver defaults to the document's resolver.
	Resolver *focusable.Resolver
	// Scheduler defaults to the document's task queue.
	Scheduler dom.Scheduler
	Logger    *logging.Logger
	Metrics   *telemetry.Metrics

	CloseOnEscape        bool
	CloseOnBackdrop      bool
	PreventEscapeDefault bool
}

// DefaultTrapOptions enables both dismissal gestures and marks Escape as
// handled.
func DefaultTrapOptions() TrapOptions {
	return TrapOptions{
		CloseOnEscape:        true,
		CloseOnBackdrop:      true,
		PreventEscapeDefault: true,
	}
}

// Trap confines keyboard focus to a container while Active and restores
// the previously focused element when deactivated. It never returns errors
// or panics on stale state; missing containers and empty focusable sets
// degrade to no-ops.
type Trap struct {
	doc       *dom.Document
	resolver  *focusable.Resolver
	scheduler dom.Scheduler
	logger    *logging.Logger
	metrics   *telemetry.Metrics
	opts      TrapOptions

	container *html.Node
	backdrop  *html.Node
	onClose   func()

	state      TrapState
	remembered *html.Node
	generation uint64

	focusSub *dom.Subscription
	keySub   *dom.Subscription
	clickSub *dom.Subscription

	// redirectLog caps redirect logging when something keeps pulling
	// focus outside.
	redirectLog rate.Sometimes
}

// NewTrap creates an Inactive trap bound to doc.
func NewTrap(doc *dom.Document, opts TrapOptions) *Trap {
	t := &Trap{
		doc:       doc,
		resolver:  opts.Resolver,
		scheduler: opts.Scheduler,
		logger:    opts.Logger,
		metrics:   opts.Metrics,
		opts:      opts,

		redirectLog: rate.Sometimes{First: 10, Interval: time.Second},
	}
	if t.resolver == nil && doc != nil {
		t.resolver = doc.Resolver()
	}
	if t.scheduler == nil && doc != nil {
		t.scheduler = doc.Tasks()
	}
	if t.logger == nil {
		t.logger = logging.Discard()
	}
	return t
}

// State returns the current lifecycle state.
func (t *Trap) State() TrapState { return t.state }

// Remembered returns the element captured at activation.
func (t *Trap) Remembered() *html.Node { return t.remembered }

// SetDismissal replaces the dismissal gesture settings. The change applies
// from the next key or click event.
func (t *Trap) SetDismissal(closeOnEscape, closeOnBackdrop, preventEscapeDefault bool) {
	t.opts.CloseOnEscape = closeOnEscape
	t.opts.CloseOnBackdrop = closeOnBackdrop
	t.opts.PreventEscapeDefault = preventEscapeDefault
}

// Container returns the bound container, which may be nil.
func (t *Trap) Container() *html.Node { return t.container }

// SetContainer binds the dialog container and backdrop. Either may be nil.
// Key and click interception follow the bound nodes.
func (t *Trap) SetContainer(container, backdrop *html.Node) {
	t.container = container
	t.backdrop = backdrop
	if t.state == Active {
		t.bindHandlers()
	}
}

// SetOnClose replaces the close callback. The document focus listener keeps
// its place in capture order.
func (t *Trap) SetOnClose(fn func()) {
	t.onClose = fn
}

// Activate remembers the active element, schedules focus of the first
// focusable element for after the next paint, and starts intercepting
// focus. Calling Activate while Active does nothing.
func (t *Trap) Activate() {
	if t == nil || t.doc == nil || t.state == Active {
		return
	}
	t.state = Active
	t.generation++
	t.remembered = t.doc.ActiveElement()

	gen := t.generation
	t.scheduler.AfterPaint(func() {
		if t.state != Active || t.generation != gen {
			return
		}
		t.FocusFirst()
	})

	t.focusSub = t.doc.AddFocusListener(t.interceptFocus)
	t.bindHandlers()

	t.logger.TrapActivated(dom.Describe(t.remembered))
	t.metrics.TrapActivated()
}

// Deactivate stops intercepting focus and restores the remembered element
// when it is still connected and is not body. Calling Deactivate while
// Inactive does nothing.
func (t *Trap) Deactivate() {
	if t == nil || t.doc == nil || t.state == Inactive {
		return
	}
	t.state = Inactive
	t.focusSub.Cancel()
	t.focusSub = nil
	t.unbindHandlers()

	restored := t.restore()
	t.remembered = nil

	t.logger.TrapDeactivated(restored)
	t.metrics.TrapDeactivated()
}

func (t *Trap) restore() bool {
	prev := t.remembered
	switch {
	case prev == nil:
		t.logger.RestoreSkipped("none")
		return false
	case prev == t.doc.Body():
		t.logger.RestoreSkipped("body")
		return false
	case !t.doc.IsConnected(prev):
		t.logger.RestoreSkipped("detached")
		return false
	}
	return t.doc.Focus(prev)
}

// FocusFirst focuses the first focusable element in the container, or the
// container itself when there is none.
func (t *Trap) FocusFirst() {
	if container := t.liveContainer(); container != nil {
		t.doc.Focus(t.firstTarget(container))
	}
}

func (t *Trap) liveContainer() *html.Node {
	if t.doc == nil || t.container == nil || !t.doc.IsConnected(t.container) {
		return nil
	}
	return t.container
}

func (t *Trap) firstTarget(container *html.Node) *html.Node {
	if set := t.resolver.Resolve(container); len(set) > 0 {
		return set[0]
	}
	return container
}

func (t *Trap) interceptFocus(ev *dom.FocusEvent) {
	if t.state != Active {
		return
	}
	container := t.liveContainer()
	if container == nil || dom.Contains(container, ev.Target) {
		return
	}
	ev.StopPropagation()

	to := t.firstTarget(container)
	t.redirectLog.Do(func() {
		t.logger.FocusRedirected(dom.Describe(ev.Target), dom.Describe(to))
	})
	t.metrics.FocusRedirected()
	t.doc.Focus(to)
}

func (t *Trap) bindHandlers() {
	t.unbindHandlers()
	if t.container != nil {
		t.keySub = t.doc.OnKey(t.container, t.HandleKey)
	}
	if t.backdrop != nil {
		t.clickSub = t.doc.OnClick(t.backdrop, t.HandleBackdropClick)
	}
}

func (t *Trap) unbindHandlers() {
	t.keySub.Cancel()
	t.clickSub.Cancel()
	t.keySub, t.clickSub = nil, nil
}

// HandleKey applies Tab wrapping and Escape dismissal to a key event that
// reached the container.
func (t *Trap) HandleKey(ev *dom.KeyEvent) {
	if t.state != Active || ev == nil {
		return
	}
	switch ev.Key {
	case terminal.KeyEscape:
		if !t.opts.CloseOnEscape {
			return
		}
		ev.StopPropagation()
		if t.opts.PreventEscapeDefault {
			ev.PreventDefault()
		}
		t.requestClose(ReasonEscape)
	case terminal.KeyTab:
		t.wrapTab(ev)
	}
}

func (t *Trap) wrapTab(ev *dom.KeyEvent) {
	container := t.liveContainer()
	if container == nil {
		return
	}
	set := t.resolver.Resolve(container)
	if len(set) == 0 {
		ev.PreventDefault()
		return
	}
	first, last := set[0], set[len(set)-1]
	active := t.doc.ActiveElement()

	switch {
	case ev.Shift && active == first:
		ev.PreventDefault()
		t.doc.Focus(last)
		t.logger.TabWrapped("backward", dom.Describe(last))
		t.metrics.TabWrapped("backward")
	case !ev.Shift && active == last:
		ev.PreventDefault()
		t.doc.Focus(first)
		t.logger.TabWrapped("forward", dom.Describe(first))
		t.metrics.TabWrapped("forward")
	}
}

// HandleBackdropClick requests close when the click landed on the backdrop
// itself rather than on anything inside it.
func (t *Trap) HandleBackdropClick(ev *dom.ClickEvent) {
	if t.state != Active || ev == nil || !t.opts.CloseOnBackdrop {
		return
	}
	if t.backdrop == nil || ev.Target != t.backdrop {
		return
	}
	t.requestClose(ReasonBackdrop)
}

func (t *Trap) requestClose(reason string) {
	t.logger.DismissRequested(reason)
	t.metrics.Dismissed(reason)
	if t.onClose != nil {
		t.onClose()
	}
}
