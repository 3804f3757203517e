package pins

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-puzzles/internal/core"
	"github.com/vovakirdan/tui-puzzles/internal/games/pins/physics"
)

const (
	hudHeight    = 2
	footerHeight = 3
	pinHalfWidth = 2 // Pins are drawn 2*pinHalfWidth+1 columns wide
)

// view maps level units onto the play box.
type view struct {
	area   core.Rect
	bounds physics.Bounds
}

func (v view) x(x float64) int {
	return v.area.X + core.Scale(x-v.bounds.MinX, v.bounds.MaxX-v.bounds.MinX, v.area.W)
}

func (v view) y(y float64) int {
	return v.area.Y + core.Scale(y-v.bounds.MinY, v.bounds.MaxY-v.bounds.MinY, v.area.H)
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	if g.world == nil {
		dst.DrawTextCentered(dst.Height()/2, "No level loaded", core.ColorDim)
		return
	}

	g.renderHUD(dst)

	box := core.NewRect(0, hudHeight, dst.Width(), dst.Height()-hudHeight-footerHeight)
	if box.W < 24 || box.H < 10 {
		dst.DrawTextCentered(dst.Height()/2, "Window too small", core.ColorLose)
		return
	}
	dst.DrawBox(box, core.ColorDim)
	v := view{area: box.Inset(1), bounds: g.world.Bounds()}

	g.renderGoal(dst, v)
	g.renderPins(dst, v)
	g.renderBalls(dst, v)
	g.renderFooter(dst)

	mid := box.Y + box.H/2
	switch g.world.Outcome() {
	case physics.Won:
		msg := " Level cleared! N: next level, R: replay "
		if !g.HasNext() {
			msg = " Every level cleared! "
		}
		dst.DrawTextCentered(mid, msg, core.ColorWin)
	case physics.Lost:
		dst.DrawTextCentered(mid, " Level failed! R: retry ", core.ColorLose)
	default:
		if g.paused {
			dst.DrawTextCentered(mid, " Paused ", core.ColorTitle)
		}
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	captured, total := g.world.Treasure()
	hud := fmt.Sprintf(" Pull the Pin | Level %d/%d (%s) | Treasure: %d/%d | Pulls: %d",
		g.Level().ID, len(g.levels), g.Level().Tier, captured, total, g.pulls)
	dst.DrawTextColored(0, 0, hud, core.ColorTitle)
	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorDim)
}

func (g *Game) renderGoal(dst *core.Screen, v view) {
	goal := g.world.Goal()
	left := v.x(goal.X - g.cfg.Goal.HalfWidth)
	right := v.x(goal.X + g.cfg.Goal.HalfWidth)
	top := v.y(goal.Y - g.cfg.Goal.HalfHeight)
	bottom := v.area.Bottom() - 1

	for y := top; y < bottom; y++ {
		dst.SetColored(left, y, '│', core.ColorGoal)
		dst.SetColored(right, y, '│', core.ColorGoal)
	}
	dst.SetColored(left, bottom, '╰', core.ColorGoal)
	dst.SetColored(right, bottom, '╯', core.ColorGoal)
	for x := left + 1; x < right; x++ {
		dst.SetColored(x, bottom, '─', core.ColorGoal)
	}
}

func (g *Game) renderPins(dst *core.Screen, v view) {
	selected := g.Selected()
	for _, pin := range g.world.Pins() {
		if pin.Pulled {
			continue
		}
		color := core.ColorPin
		switch {
		case pin.ID == selected:
			color = core.ColorPinSelected
		case g.world.CanPull(pin.ID) != nil:
			color = core.ColorPinBlocked
		}

		cx, cy := v.x(pin.X), v.y(pin.Y)
		for dx := -pinHalfWidth; dx <= pinHalfWidth; dx++ {
			dst.SetColored(cx+dx, cy, '═', color)
		}
		if pin.ID == selected {
			label := strconv.Itoa(pin.ID)
			dst.DrawTextColored(cx-len(label)/2, cy-1, label, color)
		}
	}
}

func (g *Game) renderBalls(dst *core.Screen, v view) {
	for _, b := range g.world.Balls() {
		if g.world.Captured(b.ID) {
			continue
		}
		color := core.ColorTreasure
		if b.Color == physics.Danger {
			color = core.ColorDanger
		}
		dst.SetColored(v.x(b.X), v.y(b.Y), '●', color)
	}
}

func (g *Game) renderFooter(dst *core.Screen) {
	h := dst.Height()
	if g.status != "" {
		dst.DrawTextCentered(h-2, g.status, core.ColorDefault)
	}
	dst.DrawTextColored(0, h-1, " ←/→: select pin | Space: pull | R: restart | ?: hint | P: pause | Esc: levels", core.ColorDim)
}
