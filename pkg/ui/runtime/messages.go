package runtime

import (
	"time"

	"github.com/odvcencio/focustrap/pkg/ui/terminal"
)

// Message represents an event flowing into the UI.
// Messages come from terminal input, timers, or background goroutines.
type Message interface {
	isMessage()
}

// KeyMsg represents a keyboard input event.
type KeyMsg struct {
	Key   terminal.Key
	Rune  rune
	Alt   bool
	Ctrl  bool
	Shift bool
}

func (KeyMsg) isMessage() {}

// ResizeMsg indicates the terminal size changed.
type ResizeMsg struct {
	Width  int
	Height int
}

func (ResizeMsg) isMessage() {}

// MouseMsg represents a mouse input event.
type MouseMsg struct {
	X, Y   int
	Button terminal.MouseButton
	Action terminal.MouseAction
	Alt    bool
	Ctrl   bool
	Shift  bool
}

func (MouseMsg) isMessage() {}

// TickMsg is sent on each frame tick.
type TickMsg struct {
	Time time.Time
}

func (TickMsg) isMessage() {}

// QuitMsg stops the event loop.
type QuitMsg struct{}

func (QuitMsg) isMessage() {}

// callMsg runs a function on the loop goroutine.
type callMsg struct {
	fn   func(*App)
	done chan struct{}
}

func (callMsg) isMessage() {}

func messageType(msg Message) string {
	switch msg.(type) {
	case KeyMsg:
		return "key"
	case MouseMsg:
		return "mouse"
	case ResizeMsg:
		return "resize"
	case TickMsg:
		return "tick"
	case QuitMsg:
		return "quit"
	default:
		return "other"
	}
}
