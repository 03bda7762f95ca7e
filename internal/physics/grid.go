package physics

import "math"

// maxGridSide bounds the number of columns and rows so a widely spread
// population cannot make the grid allocate without limit.
const maxGridSide = 64

// Grid is a uniform grid over the ground (x, z) plane for broad-phase
// collision detection. Items are inserted by position and index, then nearby
// items can be queried via a 3x3 neighborhood lookup.
//
// The cell size must be >= the maximum interaction distance so that all
// potential collisions are found within the 3x3 neighborhood. Positions outside
// the bounds are clamped to the border cells, which keeps that guarantee.
type Grid struct {
	minCellSize float64
	cellSize    float64
	invCellSize float64 // 1 / cellSize (precomputed to avoid division)
	minX, minZ  float64
	cols        int
	rows        int
	cells       []gridCell
}

// gridCell stores the indices of items that fall within a grid cell.
// The slice is reused between frames (reset to [:0]) to avoid allocations.
type gridCell struct {
	items []int
}

// NewGrid creates an empty grid whose cells are at least cellSize wide.
func NewGrid(cellSize float64) *Grid {
	return &Grid{minCellSize: cellSize}
}

// Reset empties the grid and re-fits it to the rectangle spanned by
// (minX, minZ) and (maxX, maxZ). Cell memory is kept when possible.
func (g *Grid) Reset(minX, minZ, maxX, maxZ float64) {
	spanX := math.Max(maxX-minX, 0)
	spanZ := math.Max(maxZ-minZ, 0)

	cellSize := g.minCellSize
	cellSize = math.Max(cellSize, spanX/maxGridSide)
	cellSize = math.Max(cellSize, spanZ/maxGridSide)

	g.cellSize = cellSize
	g.invCellSize = 1.0 / cellSize
	g.minX = minX
	g.minZ = minZ
	g.cols = max(int(math.Ceil(spanX*g.invCellSize)), 1)
	g.rows = max(int(math.Ceil(spanZ*g.invCellSize)), 1)

	n := g.cols * g.rows
	if cap(g.cells) < n {
		g.cells = make([]gridCell, n)
	}
	g.cells = g.cells[:n]
	for i := range g.cells {
		g.cells[i].items = g.cells[i].items[:0]
	}
}

// CellSize returns the current cell edge length.
func (g *Grid) CellSize() float64 {
	return g.cellSize
}

// Insert adds an item (identified by index) at the given ground position.
func (g *Grid) Insert(x, z float64, index int) {
	col, row := g.posToCell(x, z)
	idx := row*g.cols + col
	g.cells[idx].items = append(g.cells[idx].items, index)
}

// QueryAround calls fn for each item index in the 3x3 cell neighborhood
// around the given ground position. Items are visited in cell order, not
// index order. If fn returns true, iteration stops early.
func (g *Grid) QueryAround(x, z float64, fn func(index int) bool) {
	col, row := g.posToCell(x, z)

	for r := max(row-1, 0); r <= min(row+1, g.rows-1); r++ {
		rowOffset := r * g.cols
		for c := max(col-1, 0); c <= min(col+1, g.cols-1); c++ {
			for _, itemIdx := range g.cells[rowOffset+c].items {
				if fn(itemIdx) {
					return
				}
			}
		}
	}
}

// posToCell converts ground coordinates to grid cell coordinates.
// Clamps to the valid range.
func (g *Grid) posToCell(x, z float64) (col, row int) {
	col = int(math.Floor((x - g.minX) * g.invCellSize))
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}

	row = int(math.Floor((z - g.minZ) * g.invCellSize))
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return col, row
}
