package sequencer

import (
	"sync/atomic"
	"time"
)

// DefaultStepPeriod is the fixed sixteenth-note tick, 120 BPM
const DefaultStepPeriod = 125 * time.Millisecond

// TransportState is Stopped or Running
type TransportState int32

const (
	Stopped TransportState = iota
	Running
)

func (s TransportState) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// Transport holds the run state and the playhead. The step only moves while
// running, one step per Tick, wrapping at the pattern length.
type Transport struct {
	steps int
	step  int
	state atomic.Int32
	stops atomic.Uint64 // transitions into Stopped
}

// NewTransport creates a stopped transport at step 0
func NewTransport(steps int) *Transport {
	if steps <= 0 {
		panic("sequencer: transport needs at least one step")
	}
	return &Transport{steps: steps}
}

// State returns the current run state
func (t *Transport) State() TransportState {
	return TransportState(t.state.Load())
}

// Running is safe to call from any goroutine
func (t *Transport) Running() bool {
	return t.State() == Running
}

// ToggleRun flips between Stopped and Running. The step is left where it is.
func (t *Transport) ToggleRun() TransportState {
	for {
		cur := t.state.Load()
		next := int32(Running)
		if TransportState(cur) == Running {
			next = int32(Stopped)
		}
		if t.state.CompareAndSwap(cur, next) {
			if next == int32(Stopped) {
				t.stops.Add(1)
			}
			return TransportState(next)
		}
	}
}

// Stop forces the Stopped state
func (t *Transport) Stop() {
	if t.state.Swap(int32(Stopped)) == int32(Running) {
		t.stops.Add(1)
	}
}

// Stops counts transitions into Stopped. A changed count means the transport
// stopped in between, even if it has been restarted since.
func (t *Transport) Stops() uint64 {
	return t.stops.Load()
}

// Step returns the step the next tick will play
func (t *Transport) Step() int {
	return t.step
}

// Steps returns the pattern length
func (t *Transport) Steps() int {
	return t.steps
}

// Tick yields the current step for playback and advances the playhead.
// ok is false when stopped, in which case nothing moves.
func (t *Transport) Tick() (step int, ok bool) {
	if !t.Running() {
		return t.step, false
	}
	step = t.step
	t.step = (t.step + 1) % t.steps
	return step, true
}

// Seek moves the playhead; used by tools that start mid-pattern
func (t *Transport) Seek(step int) {
	if step < 0 || step >= t.steps {
		panic("sequencer: seek outside pattern")
	}
	t.step = step
}
