package escape

import (
	"fmt"

	"github.com/vovakirdan/tui-puzzles/internal/core"
	"github.com/vovakirdan/tui-puzzles/internal/games/escape/puzzle"
)

const (
	cellW     = 2 // Terminal columns per grid cell
	hudHeight = 2
)

// glyph is what one grid cell looks like.
type glyph struct {
	r rune
	c core.Color
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	if g.session == nil {
		dst.DrawTextCentered(dst.Height()/2, "No level loaded", core.ColorDim)
		return
	}

	level := g.session.Level()
	g.renderHUD(dst, level)

	gridW := level.Width * cellW
	if dst.Width() < gridW+2 || dst.Height() < level.Height+hudHeight+5 {
		dst.DrawTextCentered(dst.Height()/2, "Window too small", core.ColorLose)
		return
	}

	ox := (dst.Width() - gridW) / 2
	oy := hudHeight + 1
	dst.DrawBox(core.NewRect(ox-1, oy-1, gridW+2, level.Height+2), core.ColorDim)

	cells := g.layout(level)
	for y := 0; y < level.Height; y++ {
		for x := 0; x < level.Width; x++ {
			gl := cells[y*level.Width+x]
			for i := range cellW {
				r := gl.r
				if i > 0 && r != '█' && r != '▓' && r != '▒' {
					r = ' '
				}
				dst.SetColored(ox+x*cellW+i, oy+y, r, gl.c)
			}
		}
	}

	g.renderFooter(dst, level)

	st := g.session.State()
	switch {
	case st.Completed:
		msg := "Escaped! N: next level, R: replay"
		if !g.HasNext() {
			msg = "Escaped! All levels cleared"
		}
		dst.DrawTextCentered(oy+level.Height/2, " "+msg+" ", core.ColorWin)
	case st.Failed:
		dst.DrawTextCentered(oy+level.Height/2, " Failed! R: restart ", core.ColorLose)
	case g.paused:
		dst.DrawTextCentered(oy+level.Height/2, " Paused ", core.ColorTitle)
	}
}

// layout resolves every grid cell to a glyph. Later layers overwrite
// earlier ones: floor, goal, mechanisms, obstacles, player.
func (g *Game) layout(level *puzzle.LevelConfig) []glyph {
	cells := make([]glyph, level.Width*level.Height)
	put := func(p puzzle.Position, gl glyph) {
		if puzzle.IsInBounds(p, level.Width, level.Height) {
			cells[p.Y*level.Width+p.X] = gl
		}
	}

	for i := range cells {
		cells[i] = glyph{'·', core.ColorDim}
	}
	put(level.Goal, glyph{'◎', core.ColorGoal})

	for _, m := range g.session.Mechanisms() {
		gl := mechanismGlyph(m)
		for _, p := range m.Footprint() {
			put(p, gl)
		}
	}

	for _, o := range level.Obstacles {
		gl := glyph{'█', core.ColorWall}
		if o.Kind == puzzle.ObstacleBlock {
			gl = glyph{'▓', core.ColorBlock}
		}
		for y := o.Y; y < o.Y+o.Height; y++ {
			for x := o.X; x < o.X+o.Width; x++ {
				put(puzzle.P(x, y), gl)
			}
		}
	}

	put(g.session.State().PlayerPosition, glyph{'@', core.ColorPlayer})
	return cells
}

func mechanismGlyph(m puzzle.Mechanism) glyph {
	switch m.Kind {
	case puzzle.KindSlider:
		return glyph{'▒', core.ColorSlider}
	case puzzle.KindSwitch:
		if m.Active {
			return glyph{'●', core.ColorSwitchOn}
		}
		return glyph{'○', core.ColorSwitch}
	case puzzle.KindGate:
		if m.Active {
			return glyph{'#', core.ColorGateClosed}
		}
		return glyph{'¦', core.ColorGateOpen}
	default:
		return glyph{'+', core.ColorDim}
	}
}

func (g *Game) renderHUD(dst *core.Screen, level *puzzle.LevelConfig) {
	st := g.session.State()
	name := level.NameEn
	if name == "" {
		name = level.Name
	}

	moves := fmt.Sprintf("Moves: %d", st.Moves)
	if left := g.session.MovesLeft(); left >= 0 {
		moves = fmt.Sprintf("Moves: %d/%d", st.Moves, level.MoveLimit)
	}
	hud := fmt.Sprintf(" Escape | Level %d: %s | %s | Time: %.0fs", level.ID, name, moves, st.TimeElapsed)
	if level.TimeLimit > 0 {
		hud += fmt.Sprintf("/%ds", level.TimeLimit)
	}

	dst.DrawTextColored(0, 0, hud, core.ColorTitle)
	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorDim)
}

func (g *Game) renderFooter(dst *core.Screen, level *puzzle.LevelConfig) {
	h := dst.Height()

	if g.status != "" {
		dst.DrawTextCentered(h-3, g.status, core.ColorDefault)
	}
	if g.hint >= 0 && g.hint < len(level.Hints) {
		dst.DrawTextCentered(h-2, fmt.Sprintf("Hint %d/%d: %s", g.hint+1, len(level.Hints), level.Hints[g.hint]), core.ColorGoal)
	} else if desc := level.DescriptionEn; desc != "" {
		dst.DrawTextCentered(h-2, desc, core.ColorDim)
	}
	dst.DrawTextColored(0, h-1, " Arrows: move | U: undo | R: restart | ?: hint | P: pause | Esc: levels", core.ColorDim)
}
