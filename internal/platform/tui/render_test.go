package tui

import (
	"regexp"
	"testing"

	"github.com/vovakirdan/tui-puzzles/internal/core"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func plain(s string) string {
	return ansi.ReplaceAllString(s, "")
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.SetColored(0, 0, '#', core.ColorWall)
	s.SetColored(1, 0, '#', core.ColorWall)
	s.SetColored(2, 0, '@', core.ColorPlayer)
	s.SetColored(3, 1, '●', core.ColorTreasure)

	got := plain(RenderScreen(s))
	expected := "##@ \n   ●"
	if got != expected {
		t.Errorf("RenderScreen() = %q, expected %q", got, expected)
	}
}

func TestStyleForUnknownColor(t *testing.T) {
	if got := StyleFor(core.Color(200)).Render("x"); plain(got) != "x" {
		t.Errorf("StyleFor(unknown).Render = %q", got)
	}
}

func TestEveryColorHasStyle(t *testing.T) {
	for c := core.ColorDefault; c <= core.ColorLose; c++ {
		if _, ok := colorStyles[c]; !ok {
			t.Errorf("color %d has no style", c)
		}
	}
}
