// Package board implements the Snake simulation: a walled grid of cells, the
// snake occupying it, fruit placement and the per-tick state machine.
// It has no terminal or rendering dependencies.
package board

// Cell is the classification of one grid position.
type Cell uint8

const (
	CellEmpty Cell = iota
	CellFruit
	CellSnake
	CellWall
)

// String returns a human-readable name for the cell.
func (c Cell) String() string {
	switch c {
	case CellEmpty:
		return "empty"
	case CellFruit:
		return "fruit"
	case CellSnake:
		return "snake"
	case CellWall:
		return "wall"
	default:
		return "unknown"
	}
}

// Blocking reports whether moving into the cell ends the session.
func (c Cell) Blocking() bool {
	return c == CellWall || c == CellSnake
}

// Position is a (row, col) grid coordinate.
type Position struct {
	Row, Col int
}

// Add returns p translated by d.
func (p Position) Add(d Position) Position {
	return Position{Row: p.Row + d.Row, Col: p.Col + d.Col}
}

// Heading is the direction the head moves on the next step.
type Heading uint8

const (
	Up Heading = iota
	Down
	Left
	Right
)

// Delta returns the unit vector of the heading.
func (h Heading) Delta() Position {
	switch h {
	case Up:
		return Position{Row: -1}
	case Down:
		return Position{Row: 1}
	case Left:
		return Position{Col: -1}
	default:
		return Position{Col: 1}
	}
}

// Opposite returns the reverse heading.
func (h Heading) Opposite() Heading {
	switch h {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

func (h Heading) String() string {
	switch h {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// ParseHeading converts a name produced by Heading.String back to a Heading.
func ParseHeading(s string) (Heading, bool) {
	switch s {
	case "up":
		return Up, true
	case "down":
		return Down, true
	case "left":
		return Left, true
	case "right":
		return Right, true
	}
	return Right, false
}
