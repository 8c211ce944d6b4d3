package runtime

import (
	"testing"

	"github.com/odvcencio/focustrap/pkg/ui/backend"
	"github.com/odvcencio/focustrap/pkg/ui/dom"
)

func layoutOf(t *testing.T, markup string, w, h int) (*dom.Document, *Layout) {
	t.Helper()
	doc := dom.New()
	page, err := doc.Parse(markup)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	dom.AppendChild(doc.Body(), page)
	return doc, LayoutDocument(doc, w, h)
}

func TestLayout_BlocksStackInlineFlows(t *testing.T) {
	doc, l := layoutOf(t, `<h1>Title</h1><p>one <button id="b">Go</button> <a id="a" href="#">link</a></p><div id="d">tail</div>`, 40, 10)

	b, ok := l.BoxFor(doc.ElementByID("b"))
	if !ok {
		t.Fatal("button not laid out")
	}
	if b.Rect != NewRect(4, 1, 6, 1) || b.Label != "[ Go ]" {
		t.Errorf("button box = %+v", b)
	}
	a, _ := l.BoxFor(doc.ElementByID("a"))
	if a.Rect.X != 11 || a.Rect.Y != 1 {
		t.Errorf("link at %d,%d; want 11,1", a.Rect.X, a.Rect.Y)
	}
	d, _ := l.BoxFor(doc.ElementByID("d"))
	if d.Rect.Y != 2 || d.Rect.Height != 1 {
		t.Errorf("div box = %+v", d.Rect)
	}
}

func TestLayout_WrapsAtWidth(t *testing.T) {
	doc, l := layoutOf(t, `<p id="p">alpha beta gamma</p>`, 11, 5)

	p, _ := l.BoxFor(doc.ElementByID("p"))
	if p.Rect.Height != 2 {
		t.Errorf("paragraph height = %d, want 2", p.Rect.Height)
	}
}

func TestLayout_SkipsHiddenAndHead(t *testing.T) {
	doc, l := layoutOf(t, `<p id="shown">a</p><p id="gone" hidden>b</p>`, 20, 5)

	if _, ok := l.BoxFor(doc.ElementByID("gone")); ok {
		t.Error("hidden element laid out")
	}
	for _, b := range l.Boxes {
		if b.Node.Data == "head" {
			t.Error("head laid out")
		}
	}
}

func TestLayout_InlineLabels(t *testing.T) {
	doc, l := layoutOf(t, `
		<input id="name" placeholder="name">
		<input id="check" type="checkbox" checked>
		<select id="sel"><option>Red</option><option>Blue</option></select>`, 80, 5)

	tests := map[string]string{
		"name":  "[name            ]",
		"check": "[x]",
		"sel":   "[Red            v]",
	}
	for id, want := range tests {
		b, _ := l.BoxFor(doc.ElementByID(id))
		if b.Label != want {
			t.Errorf("%s label = %q, want %q", id, b.Label, want)
		}
	}
}

func overlayDoc(t *testing.T) (*dom.Document, *Layout) {
	t.Helper()
	return layoutOf(t, `
		<button id="page">Page</button>
		<div class="modal-backdrop" tabindex="-1">
			<div id="dialog" class="modal-content" aria-label="Confirm" tabindex="-1">
				<p id="text">Sure?</p><button id="ok">OK</button>
			</div>
		</div>`, 40, 11)
}

func TestLayout_OverlayCentered(t *testing.T) {
	doc, l := overlayDoc(t)

	dialog, ok := l.BoxFor(doc.ElementByID("dialog"))
	if !ok {
		t.Fatal("dialog not laid out")
	}
	if dialog.Kind != DialogBox {
		t.Fatalf("first dialog box kind = %v, want DialogBox", dialog.Kind)
	}
	if dialog.Rect != NewRect(2, 3, 36, 4) {
		t.Errorf("dialog rect = %+v", dialog.Rect)
	}
	if dialog.Label != "Confirm" {
		t.Errorf("dialog title = %q", dialog.Label)
	}
	ok2, _ := l.BoxFor(doc.ElementByID("ok"))
	if ok2.Rect.X != 4 || ok2.Rect.Y != 5 {
		t.Errorf("ok button at %d,%d; want 4,5", ok2.Rect.X, ok2.Rect.Y)
	}
}

func TestLayout_DialogTitleFromLabelledBy(t *testing.T) {
	doc, l := layoutOf(t, `<div class="modal-backdrop"><div id="dialog" role="dialog" aria-labelledby="t">
		<h1 id="t">Delete
		report</h1><button>OK</button></div></div>`, 40, 10)

	dialog, ok := l.BoxFor(doc.ElementByID("dialog"))
	if !ok {
		t.Fatal("dialog not laid out")
	}
	if dialog.Label != "Delete report" {
		t.Errorf("dialog title = %q, want %q", dialog.Label, "Delete report")
	}
}

func TestLayout_HitTestPrefersOverlay(t *testing.T) {
	doc, l := overlayDoc(t)

	if got := l.HitTest(0, 0); got != doc.Find(".modal-backdrop")[0] {
		t.Errorf("page cell hit %s, want backdrop", dom.Describe(got))
	}
	if got := l.HitTest(5, 5); got != doc.ElementByID("ok") {
		t.Errorf("button cell hit %s", dom.Describe(got))
	}
	if got := l.HitTest(4, 4); got != doc.ElementByID("text") {
		t.Errorf("text cell hit %s, want paragraph", dom.Describe(got))
	}
	if got := l.HitTest(3, 4); got != doc.ElementByID("dialog") {
		t.Errorf("dialog padding hit %s, want dialog", dom.Describe(got))
	}
	if got := l.HitTest(100, 100); got != nil {
		t.Errorf("off-screen hit %s", dom.Describe(got))
	}
}

func TestPaint_OverlayAndFocus(t *testing.T) {
	doc, l := overlayDoc(t)
	ok := doc.ElementByID("ok")
	buf := NewBuffer(40, 11)

	Paint(buf, l, ok, DefaultStyles())

	if r := buf.Get(2, 3).Rune; r != '┌' {
		t.Errorf("dialog corner = %q", r)
	}
	if r := buf.Get(5, 3).Rune; r != 'C' {
		t.Errorf("title start = %q, want C", r)
	}
	_, _, attrs := buf.Get(4, 5).Style.Decompose()
	if attrs&backend.AttrReverse == 0 {
		t.Error("focused button not highlighted")
	}
	if buf.Get(0, 0).Rune != '[' {
		t.Errorf("page content should show through the backdrop, got %q", buf.Get(0, 0).Rune)
	}
	_, _, attrs = buf.Get(0, 0).Style.Decompose()
	if attrs&backend.AttrDim == 0 {
		t.Error("page behind backdrop not dimmed")
	}
}

func TestLayout_EmptyScreen(t *testing.T) {
	l := LayoutDocument(dom.New(), 0, 0)
	if len(l.Boxes) != 0 {
		t.Errorf("boxes on empty screen: %d", len(l.Boxes))
	}
	if (*Layout)(nil).HitTest(0, 0) != nil {
		t.Error("nil layout hit")
	}
}
