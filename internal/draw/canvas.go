package draw

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// Point represents a 2D coordinate in canvas pixels.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// ANSI colors for text overlays.
const (
	ColorReset = "\033[0m"
	ColorRed   = "\033[31m"
	ColorBold  = "\033[1m"
)

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Each terminal cell holds two pixels stacked vertically, which makes pixels roughly square.
type Canvas struct {
	termWidth      int    // Terminal columns covered by the canvas
	termHeight     int    // Terminal rows covered by the canvas
	subPixelHeight int    // termHeight * 2
	pixels         []bool // Flat slice: [y * termWidth + x] - true if pixel is set

	// Last rune written to each cell, so Render only emits changed cells.
	// Zero means unknown and forces the cell out on the next Render.
	shown []rune

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	renderBuf strings.Builder // Buffer for batching render output
}

// NewCanvas creates a canvas covering width x height terminal cells.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

// Resize updates the canvas for new terminal dimensions.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth < 0 {
		termWidth = 0
	}
	if termHeight < 0 {
		termHeight = 0
	}
	if termWidth == c.termWidth && termHeight == c.termHeight && c.pixels != nil {
		return
	}
	c.termWidth = termWidth
	c.termHeight = termHeight
	c.subPixelHeight = termHeight * 2
	c.pixels = make([]bool, c.subPixelHeight*termWidth)
	c.shown = make([]rune, termHeight*termWidth)
}

// ForceRedraw makes the next Render write every cell, e.g. after the
// terminal was cleared.
func (c *Canvas) ForceRedraw() {
	clear(c.shown)
}

// MarkTextDirty forgets what is shown in n cells starting at the 1-based
// canvas position (col, row), so the next Render overwrites text drawn there.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	r := row - 1
	if r < 0 || r >= c.termHeight {
		return
	}
	for x := max(col-1, 0); x < min(col-1+n, c.termWidth); x++ {
		c.shown[r*c.termWidth+x] = 0
	}
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// TerminalWidth returns the canvas width in terminal columns.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the canvas height in terminal rows.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// PixelWidth returns the drawable width in pixels.
func (c *Canvas) PixelWidth() int {
	return c.termWidth
}

// PixelHeight returns the drawable height in pixels (two per row).
func (c *Canvas) PixelHeight() int {
	return c.subPixelHeight
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// Set sets the pixel at (x, y). Out-of-range pixels are ignored.
func (c *Canvas) Set(x, y int) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = true
	}
}

// At reports whether the pixel at (x, y) is set.
func (c *Canvas) At(x, y int) bool {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return false
	}
	return c.pixels[y*c.termWidth+x]
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// The line is clipped to the canvas first, so endpoints may lie far outside.
func (c *Canvas) DrawLine(p1, p2 Point) {
	p1, p2, ok := clipLine(p1, p2, 0, 0, float64(c.termWidth-1), float64(c.subPixelHeight-1))
	if !ok {
		return
	}

	x1 := int(math.Round(p1.X))
	y1 := int(math.Round(p1.Y))
	x2 := int(math.Round(p2.X))
	y2 := int(math.Round(p2.Y))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.Set(x1, y1)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// clipLine clips the segment p1-p2 to the rectangle [minX, maxX] x [minY, maxY]
// (Liang-Barsky). ok is false when no part of the segment is inside.
func clipLine(p1, p2 Point, minX, minY, maxX, maxY float64) (Point, Point, bool) {
	if maxX < minX || maxY < minY {
		return p1, p2, false
	}
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	t0, t1 := 0.0, 1.0

	edges := [4][2]float64{
		{-dx, p1.X - minX},
		{dx, maxX - p1.X},
		{-dy, p1.Y - minY},
		{dy, maxY - p1.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return p1, p2, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return p1, p2, false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return p1, p2, false
			}
			if r < t1 {
				t1 = r
			}
		}
	}

	a := Point{X: p1.X + t0*dx, Y: p1.Y + t0*dy}
	b := Point{X: p1.X + t1*dx, Y: p1.Y + t1*dy}
	return a, b, true
}

// Render outputs the cells that changed since the previous Render using
// half-block characters.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			ch := cellRune(c.pixels[topOffset+col], c.pixels[bottomOffset+col])
			cell := row*c.termWidth + col
			if c.shown[cell] == ch {
				continue
			}
			c.shown[cell] = ch
			fmt.Fprintf(&c.renderBuf, "\033[%d;%dH%c", row+1+c.offsetRow, col+1+c.offsetCol, ch)
		}
	}

	io.WriteString(w, c.renderBuf.String())
}

func cellRune(top, bottom bool) rune {
	switch {
	case top && bottom:
		return BlockFull
	case top:
		return BlockUpperHalf
	case bottom:
		return BlockLowerHalf
	default:
		return BlockEmpty
	}
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars
	if !hasH && !hasV {
		return
	}

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1
	line := strings.Repeat("─", c.termWidth)

	var buf strings.Builder
	if hasV {
		if hasH {
			fmt.Fprintf(&buf, "\033[%d;%dH┌%s┐", top, left, line)
			fmt.Fprintf(&buf, "\033[%d;%dH└%s┘", bottom, left, line)
		} else {
			fmt.Fprintf(&buf, "\033[%d;%dH%s", top, c.offsetCol+1, line)
			fmt.Fprintf(&buf, "\033[%d;%dH%s", bottom, c.offsetCol+1, line)
		}
	}
	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			fmt.Fprintf(&buf, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}

	io.WriteString(w, buf.String())
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
