// Package tcell drives real terminals through tcell.
package tcell

import (
	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/focustrap/pkg/ui/backend"
	"github.com/odvcencio/focustrap/pkg/ui/terminal"
)

// Backend implements backend.Backend on a tcell screen.
type Backend struct {
	screen tcell.Screen
}

var _ backend.Backend = (*Backend)(nil)

// New opens the controlling terminal.
func New() (*Backend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(screen), nil
}

// NewWithScreen wraps an existing screen, such as a simulation screen.
func NewWithScreen(screen tcell.Screen) *Backend {
	return &Backend{screen: screen}
}

// Init enters raw mode with mouse reporting on; clicks drive backdrop
// dismissal.
func (b *Backend) Init() error {
	if err := b.screen.Init(); err != nil {
		return err
	}
	b.screen.EnableMouse()
	return nil
}

func (b *Backend) Fini()                     { b.screen.Fini() }
func (b *Backend) Size() (width, height int) { return b.screen.Size() }
func (b *Backend) Show()                     { b.screen.Show() }
func (b *Backend) Clear()                    { b.screen.Clear() }
func (b *Backend) HideCursor()               { b.screen.HideCursor() }

func (b *Backend) SetContent(x, y int, mainc rune, comb []rune, style backend.Style) {
	b.screen.SetContent(x, y, mainc, comb, toTcellStyle(style))
}

// PollEvent blocks until an event the runtime understands arrives. It
// returns nil once the screen is finalized.
func (b *Backend) PollEvent() terminal.Event {
	for {
		ev := b.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if converted := convertEvent(ev); converted != nil {
			return converted
		}
	}
}

// PostEvent queues ev as if the terminal had produced it. Events with no
// tcell equivalent are dropped.
func (b *Backend) PostEvent(ev terminal.Event) error {
	if tev := reverseConvertEvent(ev); tev != nil {
		return b.screen.PostEvent(tev)
	}
	return nil
}
