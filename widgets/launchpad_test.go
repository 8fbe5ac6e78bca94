package widgets

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestRenderKeyHelp(t *testing.T) {
	out := RenderKeyHelp([]KeySection{
		{Title: "Edit", Keys: []KeyBinding{{"space", "toggle"}, {"r", "reset"}}},
		{Keys: []KeyBinding{{"q", "quit"}}},
	})
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	if lines[0] != "Edit" || !strings.HasPrefix(lines[1], "  space") || !strings.HasSuffix(lines[3], "quit") {
		t.Fatalf("unexpected layout:\n%s", out)
	}
}

func TestPadGridSet(t *testing.T) {
	var g PadGrid
	red := Pad{255, 0, 0}
	g.Set(8, 2, red)
	g.Set(6, 8, red)
	g.Set(0, 0, red)
	g.Set(9, 9, red) // ignored

	if g.Top[2] != red || g.Scene[6] != red || g.Pads[0][0] != red {
		t.Fatalf("grid = %+v", g)
	}

	out := RenderPadGrid(g)
	if h := lipgloss.Height(out); h != 9 {
		t.Fatalf("height = %d, want 9 (top row + 8)", h)
	}
}
