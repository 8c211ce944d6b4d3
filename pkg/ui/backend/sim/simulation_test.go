package sim

import (
	"strings"
	"testing"
	"time"

	"github.com/odvcencio/focustrap/pkg/ui/backend"
	"github.com/odvcencio/focustrap/pkg/ui/terminal"
)

func TestBackend_BasicRendering(t *testing.T) {
	sim := New(20, 5)
	if err := sim.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer sim.Fini()

	style := backend.DefaultStyle().Foreground(backend.ColorWhite)
	for i, r := range "Hello, World!" {
		sim.SetContent(i, 0, r, nil, style)
	}
	sim.Show()

	lines := strings.Split(sim.Capture(), "\n")
	if len(lines) != 5 {
		t.Fatalf("Expected 5 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Hello, World!") {
		t.Errorf("Expected first line to start with 'Hello, World!', got %q", lines[0])
	}
}

func TestBackend_SizeAfterInit(t *testing.T) {
	sim := New(40, 12)
	if err := sim.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer sim.Fini()

	if w, h := sim.Size(); w != 40 || h != 12 {
		t.Errorf("Size() = %dx%d, want 40x12", w, h)
	}
}

func TestBackend_FindText(t *testing.T) {
	sim := New(30, 4)
	if err := sim.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer sim.Fini()

	for i, r := range "[ OK ]" {
		sim.SetContent(5+i, 2, r, nil, backend.DefaultStyle())
	}
	sim.Show()

	x, y := sim.FindText("OK")
	if x != 7 || y != 2 {
		t.Errorf("FindText(OK) = (%d, %d), want (7, 2)", x, y)
	}
	if sim.ContainsText("missing") {
		t.Error("ContainsText should be false for absent text")
	}
}

func TestBackend_InjectShiftTab(t *testing.T) {
	sim := New(10, 3)
	if err := sim.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer sim.Fini()

	sim.InjectTab(true)

	done := make(chan terminal.Event, 1)
	go func() { done <- sim.PollEvent() }()

	select {
	case ev := <-done:
		key, ok := ev.(terminal.KeyEvent)
		if !ok {
			t.Fatalf("expected KeyEvent, got %T", ev)
		}
		if key.Key != terminal.KeyTab || !key.Shift {
			t.Errorf("got %+v, want Tab with Shift", key)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for injected key")
	}
}

func TestBackend_InjectClick(t *testing.T) {
	sim := New(10, 3)
	if err := sim.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer sim.Fini()

	sim.InjectClick(4, 1)

	done := make(chan terminal.Event, 1)
	go func() { done <- sim.PollEvent() }()

	select {
	case ev := <-done:
		m, ok := ev.(terminal.MouseEvent)
		if !ok {
			t.Fatalf("expected MouseEvent, got %T", ev)
		}
		if m.X != 4 || m.Y != 1 || m.Button != terminal.MouseLeft || m.Action != terminal.MousePress {
			t.Errorf("got %+v, want left press at (4,1)", m)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for injected click")
	}
}
