package tcell

import (
	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/focustrap/pkg/ui/backend"
	"github.com/odvcencio/focustrap/pkg/ui/terminal"
)

// keyTable pairs tcell keys with runtime keys. The first row for a runtime
// key is the one PostEvent emits.
var keyTable = []struct {
	tc  tcell.Key
	key terminal.Key
}{
	{tcell.KeyRune, terminal.KeyRune},
	{tcell.KeyEnter, terminal.KeyEnter},
	{tcell.KeyBackspace2, terminal.KeyBackspace},
	{tcell.KeyBackspace, terminal.KeyBackspace},
	{tcell.KeyTab, terminal.KeyTab},
	{tcell.KeyBacktab, terminal.KeyTab},
	{tcell.KeyEscape, terminal.KeyEscape},
	{tcell.KeyUp, terminal.KeyUp},
	{tcell.KeyDown, terminal.KeyDown},
	{tcell.KeyLeft, terminal.KeyLeft},
	{tcell.KeyRight, terminal.KeyRight},
	{tcell.KeyHome, terminal.KeyHome},
	{tcell.KeyEnd, terminal.KeyEnd},
	{tcell.KeyDelete, terminal.KeyDelete},
	{tcell.KeyCtrlC, terminal.KeyCtrlC},
}

var (
	fromTcellKey = make(map[tcell.Key]terminal.Key, len(keyTable))
	toTcellKey   = make(map[terminal.Key]tcell.Key, len(keyTable))
)

func init() {
	for _, row := range keyTable {
		fromTcellKey[row.tc] = row.key
		if _, ok := toTcellKey[row.key]; !ok {
			toTcellKey[row.key] = row.tc
		}
	}
}

// buttonTable is checked in order; wheel bits win over button bits.
var buttonTable = []struct {
	mask   tcell.ButtonMask
	button terminal.MouseButton
}{
	{tcell.WheelUp, terminal.MouseWheelUp},
	{tcell.WheelDown, terminal.MouseWheelDown},
	{tcell.Button1, terminal.MouseLeft},
	{tcell.Button2, terminal.MouseMiddle},
	{tcell.Button3, terminal.MouseRight},
}

func toTcellStyle(s backend.Style) tcell.Style {
	fg, bg, attrs := s.Decompose()
	return tcell.StyleDefault.
		Foreground(toTcellColor(fg)).
		Background(toTcellColor(bg)).
		Bold(attrs&backend.AttrBold != 0).
		Underline(attrs&backend.AttrUnderline != 0).
		Dim(attrs&backend.AttrDim != 0).
		Reverse(attrs&backend.AttrReverse != 0)
}

func toTcellColor(c backend.Color) tcell.Color {
	switch {
	case c == backend.ColorDefault:
		return tcell.ColorDefault
	case c.IsRGB():
		r, g, b := c.RGB()
		return tcell.NewRGBColor(int32(r), int32(g), int32(b))
	default:
		return tcell.PaletteColor(int(c))
	}
}

// convertEvent maps a tcell event into the runtime's event types, or nil
// for events the runtime ignores. Backtab arrives as Tab with Shift set.
func convertEvent(ev tcell.Event) terminal.Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		key, ok := fromTcellKey[e.Key()]
		if !ok {
			key = terminal.KeyNone
		}
		mods := e.Modifiers()
		return terminal.KeyEvent{
			Key:   key,
			Rune:  e.Rune(),
			Alt:   mods&tcell.ModAlt != 0,
			Ctrl:  mods&tcell.ModCtrl != 0,
			Shift: mods&tcell.ModShift != 0 || e.Key() == tcell.KeyBacktab,
		}
	case *tcell.EventResize:
		w, h := e.Size()
		return terminal.ResizeEvent{Width: w, Height: h}
	case *tcell.EventMouse:
		x, y := e.Position()
		mods := e.Modifiers()
		buttons := e.Buttons()
		out := terminal.MouseEvent{
			X:      x,
			Y:      y,
			Action: terminal.MousePress,
			Alt:    mods&tcell.ModAlt != 0,
			Ctrl:   mods&tcell.ModCtrl != 0,
			Shift:  mods&tcell.ModShift != 0,
		}
		if buttons == tcell.ButtonNone {
			out.Action = terminal.MouseRelease
		}
		for _, row := range buttonTable {
			if buttons&row.mask != 0 {
				out.Button = row.button
				break
			}
		}
		return out
	}
	return nil
}

// reverseConvertEvent builds the tcell event PostEvent injects.
func reverseConvertEvent(ev terminal.Event) tcell.Event {
	switch e := ev.(type) {
	case terminal.ResizeEvent:
		return tcell.NewEventResize(e.Width, e.Height)
	case terminal.KeyEvent:
		key, ok := toTcellKey[e.Key]
		if !ok {
			return nil
		}
		var mods tcell.ModMask
		if e.Shift {
			mods |= tcell.ModShift
			if key == tcell.KeyTab {
				key = tcell.KeyBacktab
			}
		}
		if e.Ctrl {
			mods |= tcell.ModCtrl
		}
		if e.Alt {
			mods |= tcell.ModAlt
		}
		return tcell.NewEventKey(key, e.Rune, mods)
	case terminal.MouseEvent:
		var mask tcell.ButtonMask
		if e.Action == terminal.MousePress {
			for _, row := range buttonTable {
				if row.button == e.Button {
					mask = row.mask
					break
				}
			}
		}
		return tcell.NewEventMouse(e.X, e.Y, mask, tcell.ModNone)
	}
	return nil
}
