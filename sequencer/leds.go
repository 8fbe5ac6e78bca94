package sequencer

import (
	"sync"

	"go-drumseq/debug"
	"go-drumseq/midi"
)

// LEDState describes the state of a single LED
type LEDState struct {
	Row, Col int
	Color    [3]uint8 // RGB color - controller maps to its palette
	Channel  uint8    // 0=static, 2=pulse
}

const padPage = 8 // steps visible on the 8x8 surface

var (
	ledActive   = [3]uint8{234, 73, 116}  // pink - active step
	ledEmpty    = [3]uint8{40, 10, 30}    // dim - empty step
	ledPlayhead = [3]uint8{180, 180, 60}  // dim yellow - playhead column
	ledCursor   = [3]uint8{255, 255, 255} // white
	ledRunning  = [3]uint8{0, 255, 0}
	ledStopped  = [3]uint8{255, 0, 0}
	ledCommand  = [3]uint8{253, 157, 110} // orange
	ledOff      = [3]uint8{0, 0, 0}
)

// RenderLEDs lays the snapshot onto a Launchpad: lane 0 on the top row, the
// eight-step page holding the cursor across, actions on the scene column.
func RenderLEDs(s Snapshot) []LEDState {
	var leds []LEDState
	first := (s.Cursor.Col / padPage) * padPage

	for row := 0; row < 8; row++ {
		sound := 7 - row
		for col := 0; col < padPage; col++ {
			step := first + col
			color := ledOff
			channel := midi.ChannelStatic

			if sound < s.Rows() && step < s.Cols() {
				switch {
				case sound == s.Cursor.Row && step == s.Cursor.Col:
					color = ledCursor
					channel = midi.ChannelPulse
				case s.Cells[sound][step]:
					color = ledActive
				case s.Running && step == s.Step:
					color = ledPlayhead
				default:
					color = ledEmpty
				}
			}
			leds = append(leds, LEDState{Row: row, Col: col, Color: color, Channel: channel})
		}
	}

	// top row: arrows
	for col := 0; col < 4; col++ {
		leds = append(leds, LEDState{Row: padTopRow, Col: col, Color: ledCommand})
	}

	run := ledStopped
	if s.Running {
		run = ledRunning
	}
	leds = append(leds,
		LEDState{Row: 7, Col: padSceneCol, Color: ledCommand},
		LEDState{Row: 6, Col: padSceneCol, Color: run},
		LEDState{Row: 5, Col: padSceneCol, Color: ledCommand},
	)
	return leds
}

// LEDDisplay mirrors the engine onto a grid controller, sending only the pads
// that changed since the last frame.
type LEDDisplay struct {
	mu         sync.Mutex
	controller midi.Controller
	prev       map[[2]int]LEDState
	last       *Snapshot
}

// NewLEDDisplay creates a display with no controller attached
func NewLEDDisplay() *LEDDisplay {
	return &LEDDisplay{prev: make(map[[2]int]LEDState)}
}

// SetController attaches (or with nil detaches) a controller and repaints it
func (d *LEDDisplay) SetController(c midi.Controller) {
	d.mu.Lock()
	defer d.mu.Unlock()

	debug.Log("led", "controller changed, resetting diff state")
	d.controller = c
	d.prev = make(map[[2]int]LEDState)
	if c != nil && d.last != nil {
		d.flush(*d.last)
	}
}

// Render implements Display
func (d *LEDDisplay) Render(s Snapshot) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.last = &s
	if d.controller != nil {
		d.flush(s)
	}
}

func (d *LEDDisplay) flush(s Snapshot) {
	next := RenderLEDs(s)
	nextMap := make(map[[2]int]LEDState, len(next))

	var updates []midi.LEDUpdate
	for _, led := range next {
		key := [2]int{led.Row, led.Col}
		nextMap[key] = led
		if prev, ok := d.prev[key]; !ok || prev != led {
			updates = append(updates, midi.LEDUpdate{
				Row:     led.Row,
				Col:     led.Col,
				Color:   led.Color,
				Channel: led.Channel,
			})
		}
	}

	for key := range d.prev {
		if _, ok := nextMap[key]; !ok {
			updates = append(updates, midi.LEDUpdate{Row: key[0], Col: key[1]})
		}
	}

	if len(updates) > 0 {
		if err := d.controller.SetLEDBatch(updates); err != nil {
			debug.Log("led", "batch of %d failed: %v", len(updates), err)
			return
		}
	}
	d.prev = nextMap
}

// Displays fans a snapshot out to several sinks
type Displays []Display

func (ds Displays) Render(s Snapshot) {
	for _, d := range ds {
		if d != nil {
			d.Render(s)
		}
	}
}
