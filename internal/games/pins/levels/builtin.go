package levels

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/tui-puzzles/internal/games/pins/physics"
)

// Tier groups levels by difficulty.
type Tier int

const (
	TierTutorial Tier = iota + 1
	TierEasy
	TierMedium
	TierHard
	TierVeryHard
	TierExpert
)

// String returns the string representation of the tier.
func (t Tier) String() string {
	switch t {
	case TierTutorial:
		return "tutorial"
	case TierEasy:
		return "easy"
	case TierMedium:
		return "medium"
	case TierHard:
		return "hard"
	case TierVeryHard:
		return "very hard"
	case TierExpert:
		return "expert"
	default:
		return "custom"
	}
}

// Count is the number of built-in levels.
const Count = 100

var (
	builtinOnce sync.Once
	builtin     []Level
)

// Builtin returns the built-in levels in ID order.
// Callers must not modify the returned levels.
func Builtin() []Level {
	builtinOnce.Do(func() {
		builtin = make([]Level, 0, Count)
		builtin = append(builtin, tutorial()...)
		builtin = append(builtin, generate(11, 20, TierEasy, easy)...)
		builtin = append(builtin, generate(31, 20, TierMedium, medium)...)
		builtin = append(builtin, generate(51, 20, TierHard, hard)...)
		builtin = append(builtin, generate(71, 20, TierVeryHard, veryHard)...)
		builtin = append(builtin, generate(91, 10, TierExpert, expert)...)
	})
	return builtin
}

// Get returns the built-in level with the given ID.
func Get(id int) (*Level, error) {
	all := Builtin()
	if id < 1 || id > len(all) {
		return nil, fmt.Errorf("levels: level not found: %d", id)
	}
	return &all[id-1], nil
}

func pins(xy ...float64) []physics.Pin {
	out := make([]physics.Pin, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, physics.Pin{ID: len(out) + 1, X: xy[i], Y: xy[i+1]})
	}
	return out
}

func treasure(x, y float64) BallSpec { return BallSpec{X: x, Y: y, Color: physics.Treasure} }
func danger(x, y float64) BallSpec   { return BallSpec{X: x, Y: y, Color: physics.Danger} }

func tutorial() []Level {
	goal := physics.Goal{X: 50, Y: 80}
	out := []Level{
		{ID: 1, Pins: pins(50, 40), Balls: []BallSpec{treasure(50, 20)}, Goal: goal, Hint: "點擊拉針讓寶物掉落！"},
		{ID: 2, Pins: pins(30, 40, 70, 40), Balls: []BallSpec{treasure(50, 20)}, Goal: goal, Hint: "先拉左邊或右邊的針"},
		{ID: 3, Pins: pins(50, 30, 50, 50), Balls: []BallSpec{treasure(50, 15)}, Goal: goal},
		{ID: 4, Pins: pins(40, 35, 60, 35), Balls: []BallSpec{treasure(50, 20), danger(30, 50)}, Goal: goal, Hint: "小心紅色的危險球！"},
		{ID: 5, Pins: pins(35, 40, 65, 40, 50, 55), Balls: []BallSpec{treasure(50, 25)}, Goal: goal},
		{ID: 6, Pins: pins(30, 35, 50, 35, 70, 35), Balls: []BallSpec{treasure(40, 20), treasure(60, 20)}, Goal: goal},
		{ID: 7, Pins: pins(45, 30, 55, 30, 50, 50), Balls: []BallSpec{treasure(50, 15), danger(70, 40)}, Goal: goal},
		{ID: 8, Pins: pins(40, 25, 60, 25, 40, 50, 60, 50), Balls: []BallSpec{treasure(50, 15)}, Goal: goal},
		{ID: 9, Pins: pins(35, 35, 65, 35, 50, 50), Balls: []BallSpec{treasure(50, 20), danger(30, 55), danger(70, 55)}, Goal: goal},
		{
			ID:    10,
			Pins:  pins(30, 30, 70, 30, 50, 45, 30, 60, 70, 60),
			Balls: []BallSpec{treasure(50, 15), treasure(50, 25)},
			Goal:  physics.Goal{X: 50, Y: 85},
		},
	}
	for i := range out {
		out[i].Tier = TierTutorial
	}
	return out
}

// generate builds n levels from a per-index template. i runs from 0.
func generate(firstID, n int, tier Tier, tmpl func(i int) Level) []Level {
	out := make([]Level, n)
	for i := range n {
		lvl := tmpl(i)
		lvl.ID = firstID + i
		lvl.Tier = tier
		out[i] = lvl
	}
	return out
}

// pinRow lays out count pins with x = x0 + (j*dx) mod mx, y = y0 + (j*dy) mod my.
func pinRow(count int, x0, dx, mx, y0, dy, my int, blockedBy func(j int) []int) []physics.Pin {
	out := make([]physics.Pin, count)
	for j := range count {
		out[j] = physics.Pin{
			ID: j + 1,
			X:  float64(x0 + (j*dx)%mx),
			Y:  float64(y0 + (j*dy)%my),
		}
		if blockedBy != nil {
			out[j].BlockedBy = blockedBy(j)
		}
	}
	return out
}

func easy(i int) Level {
	balls := []BallSpec{treasure(50, 15)}
	if i > 5 {
		balls = append(balls, danger(float64(30+i%40), float64(40+i%30)))
	}
	return Level{
		Pins:  pinRow(3+i/4, 25, 25, 75, 25, 15, 50, nil),
		Balls: balls,
		Goal:  physics.Goal{X: 50, Y: 80},
	}
}

func medium(i int) Level {
	blocked := func(j int) []int {
		if j > 0 && i > 10 {
			return []int{j}
		}
		return nil
	}
	balls := []BallSpec{treasure(50, 15), treasure(float64(40+i%20), 30)}
	if i > 5 {
		balls = append(balls, danger(float64(25+i%50), float64(45+i%25)))
	}
	if i > 12 {
		balls = append(balls, danger(float64(65+i%20), float64(50+i%20)))
	}
	return Level{
		Pins:  pinRow(4+i/3, 20, 20, 80, 25, 12, 55, blocked),
		Balls: balls,
		Goal:  physics.Goal{X: 50, Y: 82},
	}
}

func hard(i int) Level {
	blocked := func(j int) []int {
		switch {
		case j > 0 && j < 4:
			return []int{j}
		case j > 3:
			return []int{1, 2}
		}
		return nil
	}
	balls := []BallSpec{
		treasure(50, 12), treasure(45, 20), treasure(55, 20),
		danger(float64(20+i%30), float64(35+i%30)),
		danger(float64(60+i%30), float64(40+i%25)),
	}
	if i > 10 {
		balls = append(balls, danger(float64(35+i%30), float64(55+i%20)))
	}
	return Level{
		Pins:  pinRow(5+i/2, 15, 18, 85, 20, 10, 60, blocked),
		Balls: balls,
		Goal:  physics.Goal{X: 50, Y: 85},
	}
}

func veryHard(i int) Level {
	blocked := func(j int) []int {
		switch {
		case j == 0:
			return nil
		case j < 3:
			return []int{j}
		case j < 5:
			return []int{1, j - 1}
		}
		return []int{max(1, j-2), j - 1}
	}
	balls := []BallSpec{
		treasure(50, 10), treasure(40, 18), treasure(60, 18), treasure(50, 25),
		danger(float64(18+i%25), float64(32+i%28)),
		danger(float64(65+i%25), float64(38+i%24)),
		danger(float64(30+i%35), float64(50+i%22)),
	}
	if i > 10 {
		balls = append(balls, danger(float64(75+i%20), float64(55+i%20)))
	}
	return Level{
		Pins:  pinRow(6+i/2, 12, 15, 88, 18, 9, 62, blocked),
		Balls: balls,
		Goal:  physics.Goal{X: 50, Y: 85},
	}
}

func expert(i int) Level {
	blocked := func(j int) []int {
		switch {
		case j == 0:
			return nil
		case j < 2:
			return []int{j}
		case j < 4:
			return []int{1, j - 1}
		case j < 6:
			return []int{j - 2, j - 1}
		}
		return []int{1, j - 3, j - 1}
	}
	return Level{
		Pins: pinRow(8+i, 10, 12, 90, 15, 8, 65, blocked),
		Balls: []BallSpec{
			treasure(50, 8), treasure(35, 15), treasure(65, 15), treasure(45, 22), treasure(55, 22),
			danger(float64(15+i%20), float64(30+i%25)),
			danger(float64(70+i%20), float64(35+i%23)),
			danger(float64(25+i%30), float64(48+i%20)),
			danger(float64(60+i%30), float64(52+i%18)),
			danger(float64(40+i%25), float64(60+i%15)),
		},
		Goal: physics.Goal{X: 50, Y: 88},
	}
}
