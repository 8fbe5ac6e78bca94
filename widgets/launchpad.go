package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Pad is one button colour; the zero value is an unlit pad
type Pad [3]uint8

// RenderPad renders a single colored pad, unlit pads as an outline
func RenderPad(color Pad) string {
	if color == (Pad{}) {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#303030")).Render("□")
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(rgbToHex(color)))
	return style.Render("■")
}

// PadGrid is a Launchpad surface: the 8x8 pads (row 0 at bottom), the top
// control row and the scene column on the right
type PadGrid struct {
	Pads  [8][8]Pad
	Top   [8]Pad
	Scene [8]Pad
}

// Set places a colour by Launchpad coordinates; row 8 is the top row and
// column 8 the scene column
func (g *PadGrid) Set(row, col int, color Pad) {
	switch {
	case row == 8 && col >= 0 && col < 8:
		g.Top[col] = color
	case col == 8 && row >= 0 && row < 8:
		g.Scene[row] = color
	case row >= 0 && row < 8 && col >= 0 && col < 8:
		g.Pads[row][col] = color
	}
}

// RenderPadGrid renders the surface top row first
func RenderPadGrid(g PadGrid) string {
	var lines []string

	var top strings.Builder
	for col := 0; col < 8; col++ {
		top.WriteString(RenderPad(g.Top[col]))
		top.WriteString(" ")
	}
	lines = append(lines, top.String())

	for row := 7; row >= 0; row-- {
		var line strings.Builder
		for col := 0; col < 8; col++ {
			line.WriteString(RenderPad(g.Pads[row][col]))
			line.WriteString(" ")
		}
		line.WriteString(RenderPad(g.Scene[row]))
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// RenderLegendItem renders a single legend item: "■ Name - description"
func RenderLegendItem(color Pad, name, desc string) string {
	return fmt.Sprintf("  %s %s - %s", RenderPad(color), name, desc)
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}

func rgbToHex(c Pad) string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}
