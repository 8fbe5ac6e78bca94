package sequencer

import (
	"errors"

	"go-drumseq/debug"
)

// Player plays one sample to completion. *Streamer is the production Player.
type Player interface {
	Play(pcm []int8) error
	Flush()
}

// RunState reports whether playback should continue. *Transport implements it.
type RunState interface {
	Running() bool
	Stops() uint64
}

// DispatchResult records what a tick did
type DispatchResult struct {
	Step      int
	Played    []int // sounds streamed, in order
	Skipped   []int // sounds that could not be streamed
	Cancelled bool  // transport stopped before every lane was issued
}

// Dispatcher turns one step of the grid into sequential sample playback.
// Lanes play one after another in ascending sound order; nothing overlaps.
type Dispatcher struct {
	grid    *Grid
	library *Library
	player  Player
	run     RunState

	// poll runs before each lane, letting input that arrived while the
	// previous sample streamed take effect at the lane boundary
	poll func()
}

// NewDispatcher wires a dispatcher to its collaborators
func NewDispatcher(grid *Grid, library *Library, player Player, run RunState) *Dispatcher {
	return &Dispatcher{
		grid:    grid,
		library: library,
		player:  player,
		run:     run,
	}
}

// SetPoll installs the lane-boundary hook
func (d *Dispatcher) SetPoll(poll func()) {
	d.poll = poll
}

// Dispatch plays every active lane of step. If the transport stops between
// lanes, the rest of the column is dropped and the output is flushed once.
// A stop followed by a restart still counts as a stop.
func (d *Dispatcher) Dispatch(step int) DispatchResult {
	res := DispatchResult{Step: step}
	stops := d.run.Stops()

	for _, sound := range d.grid.Column(step) {
		if d.poll != nil {
			d.poll()
		}
		if !d.run.Running() || d.run.Stops() != stops {
			d.player.Flush()
			res.Cancelled = true
			debug.Log("dispatch", "step=%d stopped before sound=%d, flushed", step, sound)
			return res
		}

		asset, ok := d.library.Lookup(sound)
		if !ok {
			res.Skipped = append(res.Skipped, sound)
			continue
		}

		debug.Log("dispatch", "step=%d sound=%d (%s) frames=%d", step, sound, asset.Name, asset.Frames())
		if err := d.player.Play(asset.PCM); err != nil {
			if errors.Is(err, ErrScratchExhausted) || errors.Is(err, ErrStreamerBusy) {
				res.Skipped = append(res.Skipped, sound)
				continue
			}
			// a failed device write still consumed the lane's slot
		}
		res.Played = append(res.Played, sound)
	}
	return res
}
