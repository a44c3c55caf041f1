package core

// Color is the role of a screen cell. The platform layer picks the actual
// terminal color for each role.
type Color uint8

// Cell roles. ColorWarning marks load errors and the game over title.
const (
	ColorDefault Color = iota
	ColorTile
	ColorPlayer
	ColorEnemy
	ColorHUD
	ColorTitle
	ColorWarning

	numColors
)

// NumColors is the number of defined roles. Platform palettes are indexed by Color.
const NumColors = int(numColors)
