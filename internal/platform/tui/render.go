package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Palette assigns a terminal color to every cell role. An empty entry keeps
// the terminal's default foreground.
type Palette [core.NumColors]lipgloss.TerminalColor

// DefaultPalette is used for local and SSH sessions.
func DefaultPalette() Palette {
	var p Palette
	p[core.ColorTile] = lipgloss.Color("245")
	p[core.ColorPlayer] = lipgloss.Color("11")
	p[core.ColorEnemy] = lipgloss.Color("9")
	p[core.ColorHUD] = lipgloss.Color("14")
	p[core.ColorTitle] = lipgloss.Color("15")
	p[core.ColorWarning] = lipgloss.Color("208")
	return p
}

var defaultStyles = stylesFor(DefaultPalette())

func stylesFor(p Palette) [core.NumColors]lipgloss.Style {
	var styles [core.NumColors]lipgloss.Style
	for i, c := range p {
		styles[i] = lipgloss.NewStyle()
		if c != nil {
			styles[i] = styles[i].Foreground(c)
		}
	}
	return styles
}

// RenderScreen converts the screen buffer to a styled string. Cells sharing a
// role are written as one styled span.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	line := make([]rune, 0, s.Width())
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < s.Width(); {
			role := s.GetCell(x, y).Color
			line = line[:0]
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != role {
					break
				}
				line = append(line, cell.Rune)
			}
			sb.WriteString(styleFor(role).Render(string(line)))
		}
	}
	return sb.String()
}

func styleFor(c core.Color) lipgloss.Style {
	if int(c) >= len(defaultStyles) {
		return defaultStyles[core.ColorDefault]
	}
	return defaultStyles[c]
}
