package dom

import (
	"golang.org/x/net/html"

	"github.com/odvcencio/focustrap/pkg/ui/terminal"
)

// Event carries the propagation state shared by all document events.
type Event struct {
	// Target is the node the event was dispatched to.
	Target *html.Node
	// CurrentTarget is the node whose handler is currently running.
	CurrentTarget *html.Node

	stopped   bool
	prevented bool
}

// StopPropagation prevents handlers on later nodes or later listeners
// from seeing the event.
func (e *Event) StopPropagation() { e.stopped = true }

// PreventDefault suppresses the document's default action.
func (e *Event) PreventDefault() { e.prevented = true }

// PropagationStopped reports whether StopPropagation was called.
func (e *Event) PropagationStopped() bool { return e.stopped }

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool { return e.prevented }

// FocusEvent is dispatched after the active element changes.
type FocusEvent struct {
	Event
	// Related is the element that held focus before.
	Related *html.Node
}

// KeyEvent is a key press routed through the document.
type KeyEvent struct {
	Event
	Key   terminal.Key
	Rune  rune
	Alt   bool
	Ctrl  bool
	Shift bool
}

// ClickEvent is a primary-button press routed through the document.
type ClickEvent struct {
	Event
	X, Y int
}

// FocusListener observes focus changes in the capture phase.
type FocusListener func(*FocusEvent)

// KeyHandler handles key events bubbling through an element.
type KeyHandler func(*KeyEvent)

// ClickHandler handles click events bubbling through an element.
type ClickHandler func(*ClickEvent)

// Subscription releases a listener or handler registration.
type Subscription struct {
	cancel func()
}

// Cancel removes the registration. Extra calls and nil receivers are no-ops.
func (s *Subscription) Cancel() {
	if s == nil || s.cancel == nil {
		return
	}
	fn := s.cancel
	s.cancel = nil
	fn()
}

// Active reports whether the registration has not been cancelled.
func (s *Subscription) Active() bool {
	return s != nil && s.cancel != nil
}
