package sequencer

import (
	"io"
	"strconv"
	"strings"
)

// Display receives a copy of the engine state after every change.
// Implementations must not block for long; the control loop calls them in-line.
type Display interface {
	Render(s Snapshot)
}

// DisplayFunc adapts a function to Display
type DisplayFunc func(Snapshot)

func (f DisplayFunc) Render(s Snapshot) { f(s) }

// Snapshot is a read-only copy of the grid, cursor and transport
type Snapshot struct {
	Names   []string
	Cells   [][]bool // [sound][step]
	Cursor  Cursor
	Step    int // next step to play
	Running bool
}

// Rows returns the number of lanes in the snapshot
func (s Snapshot) Rows() int { return len(s.Cells) }

// Cols returns the number of steps in the snapshot
func (s Snapshot) Cols() int {
	if len(s.Cells) == 0 {
		return 0
	}
	return len(s.Cells[0])
}

// Cell glyphs of the text matrix
const (
	GlyphCursor   = 'X'
	GlyphActive   = 'O'
	GlyphInactive = '-'
)

// RenderText draws the matrix one lane per line, "Kc: X-O-...".
// The cursor cell hides whatever is under it.
func RenderText(s Snapshot) string {
	var out strings.Builder
	for sound, row := range s.Cells {
		name := "??"
		if sound < len(s.Names) {
			name = s.Names[sound]
		}
		out.WriteString(name)
		out.WriteString(": ")
		for step, on := range row {
			switch {
			case sound == s.Cursor.Row && step == s.Cursor.Col:
				out.WriteRune(GlyphCursor)
			case on:
				out.WriteRune(GlyphActive)
			default:
				out.WriteRune(GlyphInactive)
			}
		}
		out.WriteString("\n")
	}
	return out.String()
}

// TextDisplay writes the text matrix to W after every change, preceded by a
// transport line
type TextDisplay struct {
	W io.Writer
}

func (d TextDisplay) Render(s Snapshot) {
	state := Stopped
	if s.Running {
		state = Running
	}
	io.WriteString(d.W, state.String()+" step "+strconv.Itoa(s.Step)+"\n"+RenderText(s))
}
