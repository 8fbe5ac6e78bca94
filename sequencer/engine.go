package sequencer

import (
	"context"
	"time"

	"go-drumseq/debug"
)

// Options configures an Engine
type Options struct {
	Steps      int           // pattern length, DefaultSteps if zero
	StepPeriod time.Duration // fixed tick period, DefaultStepPeriod if zero
	MaxFrames  int           // conversion buffer size, library.MaxFrames() if zero
	Display    Display       // optional
}

// Engine owns the pattern, cursor and transport and runs the control loop.
// It is single-threaded: Handle, Tick and Run must be called from one goroutine.
type Engine struct {
	grid       *Grid
	cursor     Cursor
	transport  *Transport
	library    *Library
	streamer   *Streamer
	dispatcher *Dispatcher
	display    Display
	period     time.Duration
	names      []string

	// input being served by Run, drained at lane boundaries
	events <-chan Event
}

// NewEngine builds an engine with one lane per library sound
func NewEngine(library *Library, out Output, opts Options) *Engine {
	if opts.Steps <= 0 {
		opts.Steps = DefaultSteps
	}
	if opts.StepPeriod <= 0 {
		opts.StepPeriod = DefaultStepPeriod
	}
	if opts.MaxFrames <= 0 {
		opts.MaxFrames = library.MaxFrames()
	}

	names := library.Names()
	e := &Engine{
		grid:      NewGrid(len(names), opts.Steps),
		transport: NewTransport(opts.Steps),
		library:   library,
		streamer:  NewStreamer(out, opts.MaxFrames),
		display:   opts.Display,
		period:    opts.StepPeriod,
		names:     names,
	}
	e.dispatcher = NewDispatcher(e.grid, library, e.streamer, e.transport)
	e.dispatcher.SetPoll(e.poll)
	return e
}

// Grid exposes the pattern for inspection
func (e *Engine) Grid() *Grid { return e.grid }

// Transport exposes the run state and playhead
func (e *Engine) Transport() *Transport { return e.transport }

// Cursor returns the edit position
func (e *Engine) Cursor() Cursor { return e.cursor }

// Period is the fixed tick interval
func (e *Engine) Period() time.Duration { return e.period }

// Handle applies one input event
func (e *Engine) Handle(ev Event) {
	switch ev {
	case MoveUp:
		e.cursor.Move(Up, e.grid)
	case MoveDown:
		e.cursor.Move(Down, e.grid)
	case MoveLeft:
		e.cursor.Move(Left, e.grid)
	case MoveRight:
		e.cursor.Move(Right, e.grid)
	case ToggleCell:
		e.grid.Toggle(e.cursor.Row, e.cursor.Col)
		debug.Log("input", "toggled sound=%d step=%d on=%t", e.cursor.Row, e.cursor.Col, e.grid.IsActive(e.cursor.Row, e.cursor.Col))
	case ToggleRun:
		state := e.transport.ToggleRun()
		debug.Log("transport", "%s at step %d", state, e.transport.Step())
	case ResetPattern:
		e.grid.Clear()
		debug.Log("input", "pattern reset")
	default:
		return
	}
	e.render()
}

// Tick runs one transport period. While running it plays the current column
// and advances the playhead; while stopped it flushes the output so the device
// stays silent.
func (e *Engine) Tick() DispatchResult {
	step, ok := e.transport.Tick()
	if !ok {
		e.streamer.Flush()
		return DispatchResult{Step: step}
	}

	res := e.dispatcher.Dispatch(step)
	debug.LogEvery(16, "transport", "tick step=%d played=%v", step, res.Played)
	e.render()
	return res
}

// Run is the control loop. It serves input events and ticks at the fixed
// period until ctx is cancelled. Playback blocks the loop; ticks that fall due
// while a column is streaming are coalesced by the ticker.
func (e *Engine) Run(ctx context.Context, events <-chan Event) error {
	ticker := time.NewTicker(e.period)
	defer ticker.Stop()

	e.events = events
	defer func() { e.events = nil }()

	e.render()
	for {
		select {
		case <-ctx.Done():
			e.transport.Stop()
			e.streamer.Flush()
			return ctx.Err()
		case ev, ok := <-e.events:
			if !ok {
				e.events = nil
				continue
			}
			e.Handle(ev)
		case <-ticker.C:
			e.Tick()
		}
	}
}

// poll applies input that queued up while a sample was streaming
func (e *Engine) poll() {
	for e.events != nil {
		select {
		case ev, ok := <-e.events:
			if !ok {
				e.events = nil
				return
			}
			e.Handle(ev)
		default:
			return
		}
	}
}

// Snapshot copies the state the display needs
func (e *Engine) Snapshot() Snapshot {
	cells := make([][]bool, e.grid.Rows())
	for r := range cells {
		cells[r] = make([]bool, e.grid.Cols())
		for c := range cells[r] {
			cells[r][c] = e.grid.IsActive(r, c)
		}
	}
	names := make([]string, len(e.names))
	copy(names, e.names)
	return Snapshot{
		Names:   names,
		Cells:   cells,
		Cursor:  e.cursor,
		Step:    e.transport.Step(),
		Running: e.transport.Running(),
	}
}

func (e *Engine) render() {
	if e.display != nil {
		e.display.Render(e.Snapshot())
	}
}
