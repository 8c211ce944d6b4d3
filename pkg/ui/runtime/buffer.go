package runtime

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/focustrap/pkg/ui/backend"
)

// Cell represents a single character cell in the buffer.
// A zero Rune marks the trailing half of a wide character.
type Cell struct {
	Rune  rune
	Style backend.Style
}

// Buffer is the frame the document is painted into before being flushed
// to the backend. Only cells that changed since the last flush are dirty.
type Buffer struct {
	cells  []Cell
	width  int
	height int

	dirty      []bool
	dirtyCount int
}

// NewBuffer creates a blank buffer with the given dimensions.
func NewBuffer(w, h int) *Buffer {
	w, h = max(0, w), max(0, h)
	b := &Buffer{
		cells:  make([]Cell, w*h),
		dirty:  make([]bool, w*h),
		width:  w,
		height: h,
	}
	b.Clear()
	return b
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() (w, h int) {
	return b.width, b.height
}

// Bounds returns the buffer as a rect at the origin.
func (b *Buffer) Bounds() Rect {
	return Rect{Width: b.width, Height: b.height}
}

// Resize changes the buffer dimensions. Content is discarded and every
// cell becomes dirty.
func (b *Buffer) Resize(w, h int) {
	if w == b.width && h == b.height {
		return
	}
	*b = *NewBuffer(w, h)
	b.MarkAllDirty()
}

// Clear fills the buffer with spaces and default style.
func (b *Buffer) Clear() {
	b.Fill(b.Bounds(), ' ', backend.DefaultStyle())
}

// Get returns the cell at position (x, y).
// Returns a blank cell if out of bounds.
func (b *Buffer) Get(x, y int) Cell {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return Cell{Rune: ' ', Style: backend.DefaultStyle()}
	}
	return b.cells[y*b.width+x]
}

// Set writes a rune with style at position (x, y).
// No-op if out of bounds.
func (b *Buffer) Set(x, y int, r rune, s backend.Style) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	idx := y*b.width + x
	cell := Cell{Rune: r, Style: s}
	if b.cells[idx] != cell {
		b.cells[idx] = cell
		b.markDirty(idx)
	}
}

// SetString writes s starting at (x, y), clipped to maxWidth cells (or the
// buffer edge when maxWidth <= 0). It returns the number of cells written.
func (b *Buffer) SetString(x, y int, s string, style backend.Style, maxWidth int) int {
	if y < 0 || y >= b.height {
		return 0
	}
	limit := b.width
	if maxWidth > 0 {
		limit = min(limit, x+maxWidth)
	}
	col := x
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if col+rw > limit {
			break
		}
		if col >= 0 {
			b.Set(col, y, r, style)
			if rw == 2 {
				b.Set(col+1, y, 0, style)
			}
		}
		col += rw
	}
	return col - x
}

// Fill fills a rectangular region with a rune and style.
func (b *Buffer) Fill(r Rect, ch rune, s backend.Style) {
	r = r.Intersection(b.Bounds())
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			b.Set(x, y, ch, s)
		}
	}
}

// Restyle applies fn to the style of every cell in r, keeping the runes.
func (b *Buffer) Restyle(r Rect, fn func(backend.Style) backend.Style) {
	r = r.Intersection(b.Bounds())
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			cell := b.cells[y*b.width+x]
			b.Set(x, y, cell.Rune, fn(cell.Style))
		}
	}
}

// DrawBox draws a border around a rect using box-drawing characters.
func (b *Buffer) DrawBox(r Rect, s backend.Style) {
	if r.Width < 2 || r.Height < 2 {
		return
	}

	b.Set(r.X, r.Y, '┌', s)
	b.Set(r.X+r.Width-1, r.Y, '┐', s)
	b.Set(r.X, r.Y+r.Height-1, '└', s)
	b.Set(r.X+r.Width-1, r.Y+r.Height-1, '┘', s)

	for x := r.X + 1; x < r.X+r.Width-1; x++ {
		b.Set(x, r.Y, '─', s)
		b.Set(x, r.Y+r.Height-1, '─', s)
	}
	for y := r.Y + 1; y < r.Y+r.Height-1; y++ {
		b.Set(r.X, y, '│', s)
		b.Set(r.X+r.Width-1, y, '│', s)
	}
}

func (b *Buffer) markDirty(idx int) {
	if !b.dirty[idx] {
		b.dirty[idx] = true
		b.dirtyCount++
	}
}

// MarkAllDirty marks the entire buffer as dirty.
func (b *Buffer) MarkAllDirty() {
	for i := range b.dirty {
		b.dirty[i] = true
	}
	b.dirtyCount = len(b.dirty)
}

// ClearDirty resets all dirty flags.
func (b *Buffer) ClearDirty() {
	clear(b.dirty)
	b.dirtyCount = 0
}

// DirtyCount returns the number of dirty cells.
func (b *Buffer) DirtyCount() int {
	return b.dirtyCount
}

// ForEachDirtyCell calls fn for each dirty cell in row-major order.
func (b *Buffer) ForEachDirtyCell(fn func(x, y int, cell Cell)) {
	if b.dirtyCount == 0 {
		return
	}
	for idx, d := range b.dirty {
		if d {
			fn(idx%b.width, idx/b.width, b.cells[idx])
		}
	}
}
