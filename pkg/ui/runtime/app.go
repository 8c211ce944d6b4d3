// Package runtime runs a dom.Document against a terminal backend: it lays
// the document out, paints it, routes terminal input into document events
// and drains after-paint tasks once per frame.
package runtime

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/trace"

	ftErrors "github.com/odvcencio/focustrap/pkg/errors"
	"github.com/odvcencio/focustrap/pkg/logging"
	"github.com/odvcencio/focustrap/pkg/telemetry"
	"github.com/odvcencio/focustrap/pkg/ui/backend"
	"github.com/odvcencio/focustrap/pkg/ui/dom"
	"github.com/odvcencio/focustrap/pkg/ui/terminal"
)

// maxFlushPasses bounds the paint/flush cycles run for one message.
const maxFlushPasses = 4

// UpdateFunc handles a message and returns true if a render is needed.
// Hosts that replace DefaultUpdate usually delegate to it for input.
type UpdateFunc func(app *App, msg Message) bool

// AppConfig configures a runtime App.
type AppConfig struct {
	Backend       backend.Backend
	Document      *dom.Document
	Update        UpdateFunc
	Styles        *Styles
	Logger        *logging.Logger
	MessageBuffer int
	TickRate      time.Duration
	// QuitOnEscape stops the loop on an Escape no handler prevented.
	QuitOnEscape bool
}

// App runs a document against a terminal backend.
type App struct {
	backend  backend.Backend
	doc      *dom.Document
	update   UpdateFunc
	styles   Styles
	logger   *logging.Logger
	messages chan Message
	tickRate time.Duration
	quitEsc  bool

	ctx     context.Context
	running atomic.Bool
	dirty   bool

	renderMu sync.Mutex
	buffer   *Buffer
	layout   *Layout
}

// NewApp creates a new App from config. A nil Document gets a fresh one.
func NewApp(cfg AppConfig) *App {
	bufferSize := cfg.MessageBuffer
	if bufferSize <= 0 {
		bufferSize = 128
	}
	doc := cfg.Document
	if doc == nil {
		doc = dom.New()
	}
	styles := DefaultStyles()
	if cfg.Styles != nil {
		styles = *cfg.Styles
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &App{
		backend:  cfg.Backend,
		doc:      doc,
		update:   cfg.Update,
		styles:   styles,
		logger:   logger,
		messages: make(chan Message, bufferSize),
		tickRate: cfg.TickRate,
		quitEsc:  cfg.QuitOnEscape,
		ctx:      context.Background(),
	}
}

// Document returns the document the app renders.
func (a *App) Document() *dom.Document {
	return a.doc
}

// Layout returns the most recent layout. Only call from the loop
// goroutine, for example inside Call.
func (a *App) Layout() *Layout {
	return a.layout
}

// Running reports whether the event loop is active.
func (a *App) Running() bool {
	return a.running.Load()
}

// Post sends a message to the event loop. Messages are dropped when the
// queue is full.
func (a *App) Post(msg Message) {
	select {
	case a.messages <- msg:
	default:
	}
}

// Quit asks the event loop to stop.
func (a *App) Quit() {
	a.Post(QuitMsg{})
}

// Call runs fn on the loop goroutine and waits for it to finish. The
// frame is re-rendered afterwards.
func (a *App) Call(ctx context.Context, fn func(*App)) error {
	done := make(chan struct{})
	select {
	case a.messages <- callMsg{fn: fn, done: done}:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run starts the event loop until quit or context cancellation.
func (a *App) Run(ctx context.Context) error {
	if a.backend == nil {
		return ftErrors.New(ftErrors.ErrCodeBackendInit, "backend is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := a.backend.Init(); err != nil {
		return ftErrors.Wrap(err, ftErrors.ErrCodeBackendInit, "init backend")
	}
	a.running.Store(true)
	defer func() {
		a.running.Store(false)
		a.backend.Fini()
	}()

	a.ctx = ctx
	a.backend.HideCursor()
	w, h := a.backend.Size()
	a.buffer = NewBuffer(w, h)
	a.buffer.MarkAllDirty()

	if a.update == nil {
		a.update = DefaultUpdate
	}

	a.dirty = true
	a.frame()

	go a.pollEvents()

	var ticks <-chan time.Time
	if a.tickRate > 0 {
		ticker := time.NewTicker(a.tickRate)
		defer ticker.Stop()
		ticks = ticker.C
	}

	for a.running.Load() {
		select {
		case <-ctx.Done():
			a.running.Store(false)
			continue
		case msg := <-a.messages:
			a.handle(msg)
		case now := <-ticks:
			if a.update(a, TickMsg{Time: now}) {
				a.dirty = true
			}
		}
		a.frame()
	}

	return ctx.Err()
}

func (a *App) handle(msg Message) {
	switch m := msg.(type) {
	case QuitMsg:
		a.running.Store(false)
	case callMsg:
		if m.fn != nil {
			m.fn(a)
		}
		a.dirty = true
		close(m.done)
	default:
		if a.update(a, msg) {
			a.dirty = true
		}
	}
}

// frame renders if needed, then drains after-paint tasks. A task that
// changes the document gets its own paint before the next drain.
func (a *App) frame() {
	if !a.running.Load() {
		return
	}
	for pass := 0; pass < maxFlushPasses; pass++ {
		if a.dirty {
			a.render()
			a.dirty = false
		}
		if a.doc.Tasks().Flush() == 0 {
			return
		}
		a.dirty = true
	}
	if a.dirty {
		a.render()
		a.dirty = false
	}
}

// DefaultUpdate routes input into the document.
func DefaultUpdate(app *App, msg Message) bool {
	if app == nil || app.buffer == nil {
		return false
	}

	switch m := msg.(type) {
	case ResizeMsg:
		app.buffer.Resize(m.Width, m.Height)
		return true
	case KeyMsg:
		return app.dispatchKey(m)
	case MouseMsg:
		return app.dispatchMouse(m)
	}
	return false
}

func (a *App) dispatchKey(m KeyMsg) bool {
	if m.Key == terminal.KeyCtrlC {
		a.running.Store(false)
		return false
	}
	_, span := telemetry.StartSpan(a.ctx, "ui.dispatch_key", trace.WithAttributes(
		telemetry.AttrMessageType.String(messageType(m)),
		telemetry.AttrKey.String(m.Key.String()),
		telemetry.AttrTarget.String(dom.Describe(a.doc.ActiveElement())),
	))
	defer span.End()

	ev := a.doc.DispatchKey(&dom.KeyEvent{
		Key:   m.Key,
		Rune:  m.Rune,
		Alt:   m.Alt,
		Ctrl:  m.Ctrl,
		Shift: m.Shift,
	})
	span.SetAttributes(telemetry.AttrDefaultPrevented.Bool(ev.DefaultPrevented()))
	if m.Key == terminal.KeyEscape && a.quitEsc && !ev.DefaultPrevented() {
		a.running.Store(false)
	}
	return true
}

func (a *App) dispatchMouse(m MouseMsg) bool {
	if m.Button != terminal.MouseLeft || m.Action != terminal.MousePress {
		return false
	}
	target := a.layout.HitTest(m.X, m.Y)
	if target == nil {
		target = a.doc.Body()
	}
	_, span := telemetry.StartSpan(a.ctx, "ui.dispatch_click", trace.WithAttributes(
		telemetry.AttrMessageType.String(messageType(m)),
		telemetry.AttrTarget.String(dom.Describe(target)),
	))
	defer span.End()

	a.doc.DispatchClick(target, m.X, m.Y)
	return true
}

func (a *App) pollEvents() {
	for a.running.Load() {
		ev := a.backend.PollEvent()
		if ev == nil {
			continue
		}

		switch e := ev.(type) {
		case terminal.KeyEvent:
			a.Post(KeyMsg{
				Key:   e.Key,
				Rune:  e.Rune,
				Alt:   e.Alt,
				Ctrl:  e.Ctrl,
				Shift: e.Shift,
			})
		case terminal.ResizeEvent:
			a.Post(ResizeMsg{Width: e.Width, Height: e.Height})
		case terminal.MouseEvent:
			a.Post(MouseMsg{
				X:      e.X,
				Y:      e.Y,
				Button: e.Button,
				Action: e.Action,
				Alt:    e.Alt,
				Ctrl:   e.Ctrl,
				Shift:  e.Shift,
			})
		}
	}
}

func (a *App) render() {
	a.renderMu.Lock()
	defer a.renderMu.Unlock()

	if a.buffer == nil {
		return
	}
	w, h := a.buffer.Size()
	a.layout = LayoutDocument(a.doc, w, h)
	Paint(a.buffer, a.layout, a.doc.ActiveElement(), a.styles)

	a.buffer.ForEachDirtyCell(func(x, y int, cell Cell) {
		if cell.Rune == 0 {
			return
		}
		a.backend.SetContent(x, y, cell.Rune, nil, cell.Style)
	})
	a.buffer.ClearDirty()
	a.backend.Show()
}
