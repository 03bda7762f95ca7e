package draw

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestDrawLineClipsToCanvas(t *testing.T) {
	c := NewCanvas(10, 5)

	// Horizontal line through row 4 that starts and ends far outside.
	c.DrawLine(Point{X: -1000, Y: 4}, Point{X: 1000, Y: 4})

	for x := 0; x < 10; x++ {
		if !c.At(x, 4) {
			t.Errorf("pixel (%d, 4) not set", x)
		}
	}
	if c.At(0, 3) || c.At(0, 5) {
		t.Error("line leaked into neighbouring rows")
	}
}

func TestDrawLineOutsideIsIgnored(t *testing.T) {
	c := NewCanvas(10, 5)

	c.DrawLine(Point{X: -5, Y: -5}, Point{X: -1, Y: 20})

	for y := 0; y < c.PixelHeight(); y++ {
		for x := 0; x < c.PixelWidth(); x++ {
			if c.At(x, y) {
				t.Fatalf("pixel (%d, %d) set by an off-canvas line", x, y)
			}
		}
	}
}

func TestClipLine(t *testing.T) {
	tests := []struct {
		name   string
		p1, p2 Point
		want1  Point
		want2  Point
		ok     bool
	}{
		{"inside", Point{1, 1}, Point{3, 3}, Point{1, 1}, Point{3, 3}, true},
		{"crosses left edge", Point{-2, 2}, Point{2, 2}, Point{0, 2}, Point{2, 2}, true},
		{"diagonal through", Point{-1, -1}, Point{11, 11}, Point{0, 0}, Point{10, 10}, true},
		{"parallel outside", Point{-1, 0}, Point{-1, 10}, Point{}, Point{}, false},
		{"misses corner", Point{-5, 3}, Point{3, -5}, Point{}, Point{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b, ok := clipLine(tt.p1, tt.p2, 0, 0, 10, 10)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if !near(a, tt.want1) || !near(b, tt.want2) {
				t.Errorf("got %v-%v, want %v-%v", a, b, tt.want1, tt.want2)
			}
		})
	}
}

func near(a, b Point) bool {
	const eps = 1e-9
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx > -eps && dx < eps && dy > -eps && dy < eps
}

func TestRenderWritesOnlyChangedCells(t *testing.T) {
	c := NewCanvas(4, 2)
	var out bytes.Buffer

	// First frame writes every cell.
	c.Render(&out)
	if got := strings.Count(out.String(), "\033["); got != 8 {
		t.Fatalf("first render wrote %d cells, want 8", got)
	}

	// Unchanged frame writes nothing.
	out.Reset()
	c.Render(&out)
	if out.Len() != 0 {
		t.Fatalf("unchanged render wrote %q", out.String())
	}

	// Top pixel of cell (col 2, row 1) becomes an upper half block.
	out.Reset()
	c.Set(1, 0)
	c.Render(&out)
	if got, want := out.String(), "\033[1;2H▀"; got != want {
		t.Fatalf("render = %q, want %q", got, want)
	}

	// Clearing writes a blank over it.
	out.Reset()
	c.Clear()
	c.Render(&out)
	if got, want := out.String(), "\033[1;2H "; got != want {
		t.Fatalf("render after clear = %q, want %q", got, want)
	}
}

func TestForceRedraw(t *testing.T) {
	c := NewCanvas(3, 1)
	var out bytes.Buffer
	c.Render(&out)

	out.Reset()
	c.ForceRedraw()
	c.Render(&out)

	if got := strings.Count(out.String(), "\033["); got != 3 {
		t.Errorf("forced render wrote %d cells, want 3", got)
	}
}

func TestRenderAppliesOffset(t *testing.T) {
	c := NewCanvas(1, 1)
	c.SetOffset(4, 2)
	c.Set(0, 1)
	var out bytes.Buffer

	c.Render(&out)

	if got, want := out.String(), "\033[3;5H▄"; got != want {
		t.Errorf("render = %q, want %q", got, want)
	}
}

func TestRenderBorder(t *testing.T) {
	c := NewCanvas(2, 1)
	var out bytes.Buffer

	c.RenderBorder(&out)
	if out.Len() != 0 {
		t.Fatalf("border drawn without offset: %q", out.String())
	}

	c.SetOffset(1, 1)
	c.RenderBorder(&out)
	s := out.String()
	for _, want := range []string{"┌──┐", "└──┘", "│"} {
		if !strings.Contains(s, want) {
			t.Errorf("border %q missing %q", s, want)
		}
	}
}

func TestFitViewport(t *testing.T) {
	tests := []struct {
		name         string
		termW, termH int
		want         Viewport
	}{
		{"larger than max", 300, 100, Viewport{Width: 200, Height: 60, OffsetCol: 50, OffsetRow: 20}},
		{"smaller than max", 80, 24, Viewport{Width: 80, Height: 24}},
		{"only wider", 240, 30, Viewport{Width: 200, Height: 30, OffsetCol: 20}},
		{"empty", 0, 0, Viewport{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FitViewport(tt.termW, tt.termH, 200, 60); got != tt.want {
				t.Errorf("FitViewport(%d, %d) = %+v, want %+v", tt.termW, tt.termH, got, tt.want)
			}
		})
	}
}

func TestMeasureViewportPassesErrors(t *testing.T) {
	errNoTTY := errors.New("not a terminal")
	_, err := MeasureViewport(func() (int, int, error) { return 0, 0, errNoTTY }, 200, 60)
	if !errors.Is(err, errNoTTY) {
		t.Errorf("err = %v, want %v", err, errNoTTY)
	}
}

func TestApplyViewport(t *testing.T) {
	c := NewCanvas(10, 5)
	var out bytes.Buffer
	c.Render(&out)

	if c.ApplyViewport(Viewport{Width: 10, Height: 5}) {
		t.Error("unchanged viewport reported a change")
	}

	vp := Viewport{Width: 8, Height: 4, OffsetCol: 3, OffsetRow: 1}
	if !c.ApplyViewport(vp) {
		t.Fatal("new viewport not applied")
	}
	if c.TerminalWidth() != 8 || c.TerminalHeight() != 4 || c.OffsetCol() != 3 || c.OffsetRow() != 1 {
		t.Errorf("canvas = %dx%d at %d,%d", c.TerminalWidth(), c.TerminalHeight(), c.OffsetCol(), c.OffsetRow())
	}

	out.Reset()
	c.Render(&out)
	if got := strings.Count(out.String(), "\033["); got != 8*4 {
		t.Errorf("redrew %d cells after resize, want %d", got, 8*4)
	}
}

func TestChunkWriterCentered(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out)
	cw.SetViewport(Viewport{OffsetCol: 10})

	cw.WriteCentered(20, 3, "abcd")
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}

	if got, want := out.String(), "\033[3;28Habcd"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// shortWriter records the size of every write.
type shortWriter struct {
	sizes []int
	total bytes.Buffer
}

func (w *shortWriter) Write(p []byte) (int, error) {
	w.sizes = append(w.sizes, len(p))
	return w.total.Write(p)
}

func TestChunkWriterFlushesInChunks(t *testing.T) {
	w := &shortWriter{}
	cw := NewChunkWriter(w)
	frame := strings.Repeat("x", 2*maxChunkSize+10)
	cw.WriteString(frame)

	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}

	if len(w.sizes) != 3 || w.sizes[0] != maxChunkSize || w.sizes[2] != 10 {
		t.Errorf("write sizes = %v", w.sizes)
	}
	if w.total.String() != frame {
		t.Error("flushed bytes differ from the frame")
	}

	if err := cw.Flush(); err != nil || len(w.sizes) != 3 {
		t.Errorf("empty flush: sizes %v, err %v", w.sizes, err)
	}
}

func TestMarkTextDirty(t *testing.T) {
	c := NewCanvas(5, 2)
	var out bytes.Buffer
	c.Render(&out)

	c.MarkTextDirty(2, 2, 10) // Runs past the right edge
	out.Reset()
	c.Render(&out)

	if got := strings.Count(out.String(), "\033["); got != 4 {
		t.Errorf("rewrote %d cells, want 4", got)
	}
	if !strings.HasPrefix(out.String(), "\033[2;2H") {
		t.Errorf("first rewritten cell = %q, want row 2 col 2", out.String())
	}
}
