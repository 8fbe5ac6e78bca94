package tui

import (
	"sync"

	"go-drumseq/sequencer"
)

// Sink is the terminal's display: the engine pushes snapshots in, the
// bubbletea program reads the latest one when UpdateChan fires.
type Sink struct {
	mu         sync.Mutex
	snap       sequencer.Snapshot
	UpdateChan chan struct{}
}

func NewSink() *Sink {
	return &Sink{UpdateChan: make(chan struct{}, 1)}
}

// Render implements sequencer.Display. It never blocks the control loop;
// repeated updates before the UI catches up collapse into one.
func (s *Sink) Render(snap sequencer.Snapshot) {
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	select {
	case s.UpdateChan <- struct{}{}:
	default:
	}
}

// Latest returns the most recent snapshot
func (s *Sink) Latest() sequencer.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}
