package draw

import (
	"io"
	"os"
	"strconv"
	"unicode/utf8"

	"golang.org/x/term"
)

const (
	seqClear      = "\033[H\033[2J"
	seqHideCursor = "\033[?25l"
	seqShowCursor = "\033[?25h"
)

// maxChunkSize bounds a single write to the terminal, about one network
// packet, so SSH sessions see a steady stream instead of bursts.
const maxChunkSize = 1400

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) { io.WriteString(w, seqHideCursor) }

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) { io.WriteString(w, seqShowCursor) }

// ClearScreen clears the terminal and homes the cursor.
func ClearScreen(w io.Writer) { io.WriteString(w, seqClear) }

// TermSizeFunc reports the terminal size in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc measures the process's own terminal.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// Viewport is the part of the terminal the game draws into: at most the
// maximum render size, centred in the terminal.
type Viewport struct {
	Width, Height        int
	OffsetCol, OffsetRow int // 0-based cells skipped before the viewport
}

// FitViewport centres a viewport of at most maxWidth x maxHeight cells in a
// termWidth x termHeight terminal.
func FitViewport(termWidth, termHeight, maxWidth, maxHeight int) Viewport {
	w := max(min(termWidth, maxWidth), 0)
	h := max(min(termHeight, maxHeight), 0)
	return Viewport{
		Width:     w,
		Height:    h,
		OffsetCol: max((termWidth-w)/2, 0),
		OffsetRow: max((termHeight-h)/2, 0),
	}
}

// MeasureViewport asks size for the terminal dimensions and fits a viewport
// into them.
func MeasureViewport(size TermSizeFunc, maxWidth, maxHeight int) (Viewport, error) {
	w, h, err := size()
	if err != nil {
		return Viewport{}, err
	}
	return FitViewport(w, h, maxWidth, maxHeight), nil
}

// ApplyViewport resizes and moves the canvas to vp. It reports whether
// anything changed; after a change every cell is redrawn on the next Render.
func (c *Canvas) ApplyViewport(vp Viewport) bool {
	if vp.Width == c.termWidth && vp.Height == c.termHeight &&
		vp.OffsetCol == c.offsetCol && vp.OffsetRow == c.offsetRow {
		return false
	}
	c.Resize(vp.Width, vp.Height)
	c.SetOffset(vp.OffsetCol, vp.OffsetRow)
	c.ForceRedraw()
	return true
}

// ChunkWriter collects one frame of cursor-addressed output and hands it to
// the terminal in packet-sized writes on Flush. Positions given to WriteAt
// are 1-based viewport cells.
type ChunkWriter struct {
	w     io.Writer
	frame []byte
	vp    Viewport
}

// NewChunkWriter creates a ChunkWriter flushing to w.
func NewChunkWriter(w io.Writer) *ChunkWriter {
	return &ChunkWriter{w: w, frame: make([]byte, 0, 8192)}
}

// SetViewport moves the origin used by WriteAt.
func (cw *ChunkWriter) SetViewport(vp Viewport) {
	cw.vp = vp
}

// Write appends p to the frame. It never fails.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	cw.frame = append(cw.frame, p...)
	return len(p), nil
}

// WriteString appends raw text or control sequences to the frame.
func (cw *ChunkWriter) WriteString(s string) {
	cw.frame = append(cw.frame, s...)
}

// ClearScreen queues a full terminal clear.
func (cw *ChunkWriter) ClearScreen() {
	cw.WriteString(seqClear)
}

// WriteAt writes s starting at viewport cell (col, row).
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.frame = append(cw.frame, "\033["...)
	cw.frame = strconv.AppendInt(cw.frame, int64(row+cw.vp.OffsetRow), 10)
	cw.frame = append(cw.frame, ';')
	cw.frame = strconv.AppendInt(cw.frame, int64(col+cw.vp.OffsetCol), 10)
	cw.frame = append(cw.frame, 'H')
	cw.frame = append(cw.frame, s...)
}

// WriteCentered writes s so that it is horizontally centered on column
// centerCol of row.
func (cw *ChunkWriter) WriteCentered(centerCol, row int, s string) {
	cw.WriteAt(max(centerCol-utf8.RuneCountInString(s)/2, 1), row, s)
}

// Flush sends the frame and starts a new one. A write error means the peer
// is gone and ends the session.
func (cw *ChunkWriter) Flush() error {
	data := cw.frame
	cw.frame = cw.frame[:0]
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := cw.w.Write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}
