package board

import "errors"

// ErrGridFull is returned by PlaceFruit when no empty cell is left.
var ErrGridFull = errors.New("board: no empty cell for fruit")

// RandSource supplies uniformly distributed integers in [0, n).
// *math/rand.Rand satisfies it.
type RandSource interface {
	Intn(n int) int
}

// PlaceFruit samples random cells until it finds an empty one, marks it as
// fruit and returns its position.
func PlaceFruit(g *Grid, rng RandSource) (Position, error) {
	if g.Empty() == 0 {
		return Position{}, ErrGridFull
	}
	for {
		p := Position{Row: rng.Intn(g.Rows()), Col: rng.Intn(g.Cols())}
		if g.CellAt(p) != CellEmpty {
			continue
		}
		g.SetCell(p, CellFruit)
		return p, nil
	}
}
