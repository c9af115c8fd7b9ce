package board

// Grid is a rows x cols matrix of cells stored row-major in one buffer.
// Border cells are walls for the lifetime of the grid.
type Grid struct {
	rows  int
	cols  int
	cells []Cell
	empty int // number of CellEmpty cells
}

// NewGrid creates a grid with a wall border and an empty interior.
// Dimensions below 1 are raised to 1.
func NewGrid(rows, cols int) *Grid {
	rows = max(rows, 1)
	cols = max(cols, 1)

	g := &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]Cell, rows*cols),
	}
	for r := range rows {
		for c := range cols {
			if g.isBorder(r, c) {
				g.cells[r*cols+c] = CellWall
			} else {
				g.empty++
			}
		}
	}
	return g
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns.
func (g *Grid) Cols() int {
	return g.cols
}

// Empty returns how many cells are currently empty.
func (g *Grid) Empty() int {
	return g.empty
}

// Interior returns the number of non-border cells.
func (g *Grid) Interior() int {
	return max(g.rows-2, 0) * max(g.cols-2, 0)
}

// InBounds reports whether p addresses a cell of the grid.
func (g *Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

// IsBorder reports whether p lies on the permanent wall ring.
func (g *Grid) IsBorder(p Position) bool {
	return g.isBorder(p.Row, p.Col)
}

func (g *Grid) isBorder(r, c int) bool {
	return r == 0 || c == 0 || r == g.rows-1 || c == g.cols-1
}

// CellAt returns the tag of the cell at p.
// Positions outside the grid read as walls.
func (g *Grid) CellAt(p Position) Cell {
	if !g.InBounds(p) {
		return CellWall
	}
	return g.cells[p.Row*g.cols+p.Col]
}

// SetCell overwrites the cell at p.
// Writes to the border or outside the grid are ignored.
func (g *Grid) SetCell(p Position, c Cell) {
	if !g.InBounds(p) || g.IsBorder(p) {
		return
	}
	idx := p.Row*g.cols + p.Col
	prev := g.cells[idx]
	if prev == c {
		return
	}
	if prev == CellEmpty {
		g.empty--
	}
	if c == CellEmpty {
		g.empty++
	}
	g.cells[idx] = c
}

// Cells returns a copy of the row-major cell buffer.
func (g *Grid) Cells() []Cell {
	out := make([]Cell, len(g.cells))
	copy(out, g.cells)
	return out
}
