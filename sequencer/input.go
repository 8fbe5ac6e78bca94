package sequencer

import (
	"fmt"

	"go-drumseq/debug"
	"go-drumseq/midi"
)

// Event is a debounced user action. Each maps to exactly one engine operation.
type Event int

const (
	MoveUp Event = iota
	MoveDown
	MoveLeft
	MoveRight
	ToggleCell
	ToggleRun
	ResetPattern
)

func (e Event) String() string {
	switch e {
	case MoveUp:
		return "MoveUp"
	case MoveDown:
		return "MoveDown"
	case MoveLeft:
		return "MoveLeft"
	case MoveRight:
		return "MoveRight"
	case ToggleCell:
		return "ToggleCell"
	case ToggleRun:
		return "ToggleRun"
	case ResetPattern:
		return "ResetPattern"
	}
	return fmt.Sprintf("Event(%d)", int(e))
}

// KeyEvent maps a terminal key name to an event
func KeyEvent(key string) (Event, bool) {
	switch key {
	case "k", "up":
		return MoveUp, true
	case "j", "down":
		return MoveDown, true
	case "h", "left":
		return MoveLeft, true
	case "l", "right":
		return MoveRight, true
	case " ", "enter":
		return ToggleCell, true
	case "p":
		return ToggleRun, true
	case "r":
		return ResetPattern, true
	}
	return 0, false
}

// Launchpad X layout: the four arrow buttons are the first four top-row CCs,
// the bottom three scene buttons of the right column carry the actions.
const (
	padTopRow   = 8
	padSceneCol = 8
)

// PadEvent maps a Launchpad button press to an event
func PadEvent(pad midi.PadEvent) (Event, bool) {
	switch {
	case pad.Row == padTopRow:
		switch pad.Col {
		case 0:
			return MoveUp, true
		case 1:
			return MoveDown, true
		case 2:
			return MoveLeft, true
		case 3:
			return MoveRight, true
		}
	case pad.Col == padSceneCol:
		switch pad.Row {
		case 7:
			return ToggleCell, true
		case 6:
			return ToggleRun, true
		case 5:
			return ResetPattern, true
		}
	}
	return 0, false
}

// Send queues an event without blocking; events are dropped when the engine
// is busy and the queue is full.
func Send(events chan<- Event, ev Event) bool {
	select {
	case events <- ev:
		return true
	default:
		debug.Log("input", "dropped %s, queue full", ev)
		return false
	}
}

// NoteEvent maps a keyboard note to an event. The white keys of any octave
// read C D E F like h j k l, then G toggles, A runs, B resets.
func NoteEvent(n midi.NoteEvent) (Event, bool) {
	switch n.Note % 12 {
	case 0:
		return MoveLeft, true
	case 2:
		return MoveDown, true
	case 4:
		return MoveUp, true
	case 5:
		return MoveRight, true
	case 7:
		return ToggleCell, true
	case 9:
		return ToggleRun, true
	case 11:
		return ResetPattern, true
	}
	return 0, false
}

// Listen forwards a controller's pads and notes into the engine queue until
// both of its channels close.
func Listen(ctrl midi.Controller, events chan<- Event) {
	pads, notes := ctrl.PadEvents(), ctrl.NoteEvents()
	for pads != nil || notes != nil {
		select {
		case pad, ok := <-pads:
			if !ok {
				pads = nil
				continue
			}
			if ev, ok := PadEvent(pad); ok {
				Send(events, ev)
			}
		case n, ok := <-notes:
			if !ok {
				notes = nil
				continue
			}
			if ev, ok := NoteEvent(n); ok {
				Send(events, ev)
			}
		}
	}
}
