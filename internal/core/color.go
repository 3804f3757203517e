package core

// Color is a semantic foreground colour for a screen cell.
// The platform maps it to a terminal style.
type Color uint8

const (
	ColorDefault Color = iota
	ColorWall
	ColorBlock
	ColorPlayer
	ColorGoal
	ColorSlider
	ColorSwitch
	ColorSwitchOn
	ColorGateClosed
	ColorGateOpen
	ColorPin
	ColorPinSelected
	ColorPinBlocked
	ColorTreasure
	ColorDanger
	ColorDim
	ColorTitle
	ColorWin
	ColorLose
)
