package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/board"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall || g.board == nil {
		g.renderHUD(dst)
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	g.renderHUD(dst)
	g.renderBoard(dst)

	switch {
	case g.board.State() == board.StateFilled:
		g.renderOverlay(dst, "Board full!", fmt.Sprintf("Length %d. Press R to restart", g.board.Len()))
	case g.board.State() == board.StateDead && g.source != nil:
		g.renderOverlay(dst, "Replay finished", "Press R to watch again")
	case g.board.State() == board.StateDead:
		g.renderOverlay(dst, "Game Over", fmt.Sprintf("Hit %s. Press R to restart", deathText(g.board.Cause())))
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func deathText(c board.DeathCause) string {
	if c == board.CauseSelf {
		return "yourself"
	}
	return "the wall"
}

// renderHUD draws the top status line.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := " " + g.Title()
	if g.board != nil {
		hud += fmt.Sprintf(" | Length: %d | Steps: %d | Speed: %d", g.board.Len(), g.board.Steps(), g.moveEvery)
	}
	hud += fmt.Sprintf(" | Seed: %d", g.seed)
	dst.DrawTextColored(0, 0, hud, core.ColorBrightWhite)
}

// renderBoard draws every grid cell as a cell_width x cell_height block.
func (g *Game) renderBoard(dst *core.Screen) {
	snap := g.board.Snapshot()
	cw, ch := g.cfg.Board.CellWidth, g.cfg.Board.CellHeight

	for r := range snap.Rows {
		for c := range snap.Cols {
			glyph, color := cellStyle(snap.At(r, c))
			if r == snap.Head.Row && c == snap.Head.Col {
				color = core.ColorBrightBlue
			}
			rect := core.NewRect(g.originX+c*cw, g.originY+r*ch, cw, ch)
			dst.FillRect(rect, glyph, color)
		}
	}
}

func cellStyle(c board.Cell) (rune, core.Color) {
	switch c {
	case board.CellWall:
		return glyphWall, core.ColorBrown
	case board.CellFruit:
		return glyphFruit, core.ColorRed
	case board.CellSnake:
		return glyphSnake, core.ColorBlue
	default:
		return glyphEmpty, core.ColorGreen
	}
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := core.NewRect(0, 0, dst.Width(), dst.Height()).Centered(w, 5)
	dst.DrawBox(box)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}
