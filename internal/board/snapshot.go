package board

// Snapshot is an immutable copy of the board taken between steps.
type Snapshot struct {
	Rows     int
	Cols     int
	Cells    []Cell // row-major
	Head     Position
	Heading  Heading
	Length   int
	Fruit    Position
	HasFruit bool
	State    State
	Cause    DeathCause
	Steps    int
}

// Snapshot returns the current board state for presentation.
func (b *Board) Snapshot() Snapshot {
	return Snapshot{
		Rows:     b.grid.Rows(),
		Cols:     b.grid.Cols(),
		Cells:    b.grid.Cells(),
		Head:     b.Head(),
		Heading:  b.heading,
		Length:   b.body.Len(),
		Fruit:    b.fruit,
		HasFruit: b.hasFood,
		State:    b.state,
		Cause:    b.cause,
		Steps:    b.steps,
	}
}

// At returns the cell at (row, col); positions outside the snapshot read as walls.
func (s Snapshot) At(row, col int) Cell {
	if row < 0 || row >= s.Rows || col < 0 || col >= s.Cols {
		return CellWall
	}
	return s.Cells[row*s.Cols+col]
}
