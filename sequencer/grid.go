package sequencer

import "fmt"

// Grid is a fixed-size matrix of triggers: one row per sound lane, one column per step.
// Dimensions are set at construction and never change.
type Grid struct {
	rows  int
	cols  int
	cells []bool // row-major
}

// NewGrid creates an empty grid with the given number of lanes and steps
func NewGrid(rows, cols int) *Grid {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("sequencer: invalid grid size %dx%d", rows, cols))
	}
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]bool, rows*cols),
	}
}

// Rows returns the number of sound lanes
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of steps
func (g *Grid) Cols() int { return g.cols }

func (g *Grid) index(row, col int) int {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		panic(fmt.Sprintf("sequencer: cell (%d,%d) outside %dx%d grid", row, col, g.rows, g.cols))
	}
	return row*g.cols + col
}

// IsActive reports whether the cell at (row, col) is set
func (g *Grid) IsActive(row, col int) bool {
	return g.cells[g.index(row, col)]
}

// Toggle flips a single cell
func (g *Grid) Toggle(row, col int) {
	i := g.index(row, col)
	g.cells[i] = !g.cells[i]
}

// Clear turns every cell off
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = false
	}
}

// Any returns true if at least one cell is active
func (g *Grid) Any() bool {
	for _, c := range g.cells {
		if c {
			return true
		}
	}
	return false
}

// Column returns the lanes active on a step, lowest sound index first
func (g *Grid) Column(step int) []int {
	var lanes []int
	for row := 0; row < g.rows; row++ {
		if g.cells[g.index(row, step)] {
			lanes = append(lanes, row)
		}
	}
	return lanes
}

// Direction is a cursor movement
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Cursor is the edit position. Row selects the lane, Col the step.
type Cursor struct {
	Row int
	Col int
}

// Move shifts the cursor one cell, staying put at the grid edge.
// Returns false when the move was clamped.
func (c *Cursor) Move(d Direction, g *Grid) bool {
	switch d {
	case Up:
		if c.Row > 0 {
			c.Row--
			return true
		}
	case Down:
		if c.Row < g.Rows()-1 {
			c.Row++
			return true
		}
	case Left:
		if c.Col > 0 {
			c.Col--
			return true
		}
	case Right:
		if c.Col < g.Cols()-1 {
			c.Col++
			return true
		}
	}
	return false
}
