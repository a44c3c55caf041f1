package tui

import (
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(8, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorHUD)
	s.SetColored(3, 0, '@', core.ColorPlayer)
	s.SetColored(4, 0, '<', core.ColorEnemy)
	s.DrawText(0, 1, "██")

	if got, want := ansi.Strip(RenderScreen(s)), s.String(); got != want {
		t.Errorf("RenderScreen() text = %q, expected %q", got, want)
	}
}

func TestDefaultPaletteCoversRoles(t *testing.T) {
	p := DefaultPalette()
	for c := core.ColorTile; int(c) < core.NumColors; c++ {
		if p[c] == nil {
			t.Errorf("no color for role %d", c)
		}
	}
	if styleFor(core.Color(200)).GetForeground() != defaultStyles[core.ColorDefault].GetForeground() {
		t.Error("unknown roles should fall back to the default style")
	}
}
