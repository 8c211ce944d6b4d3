// Package backend defines the terminal backend interface for the runtime.
// The tcell implementation drives real terminals; the sim implementation
// wraps tcell's simulation screen so dialogs can be exercised in tests.
package backend

import "github.com/odvcencio/focustrap/pkg/ui/terminal"

// Backend is the terminal abstraction layer.
type Backend interface {
	// Init enters raw mode and enables mouse reporting.
	Init() error

	// Fini restores terminal state.
	Fini()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// SetContent sets a cell at position (x, y).
	SetContent(x, y int, mainc rune, comb []rune, style Style)

	// Show synchronizes the internal buffer to the terminal.
	Show()

	// Clear clears the screen.
	Clear()

	// HideCursor hides the terminal cursor.
	HideCursor()

	// PollEvent blocks until an event is available and returns it.
	// Returns nil once the backend is shutting down.
	PollEvent() terminal.Event

	// PostEvent injects an event into the event queue.
	PostEvent(ev terminal.Event) error
}
