package midi

import (
	"context"
	"strings"
	"sync"
	"time"

	"go-drumseq/debug"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)

// DeviceEvent is emitted when controllers connect/disconnect
type DeviceEvent struct {
	Type       DeviceEventType
	Controller Controller
	ID         string
}

type DeviceEventType int

const (
	DeviceConnected DeviceEventType = iota
	DeviceDisconnected
)

// DeviceManager handles hot-plug detection of MIDI controllers
type DeviceManager struct {
	controllers map[string]Controller
	mu          sync.RWMutex
	events      chan DeviceEvent
	pollRate    time.Duration

	// lowercase port name fragments to auto-connect
	launchpads []string
	keyboards  []string
}

// NewDeviceManager creates a device manager. An input is picked up only when
// its name contains one of launchpads (and looks like a Launchpad's MIDI port)
// or one of keyboards.
func NewDeviceManager(launchpads, keyboards []string) *DeviceManager {
	return &DeviceManager{
		controllers: make(map[string]Controller),
		events:      make(chan DeviceEvent, 16),
		pollRate:    time.Second,
		launchpads:  fragments(launchpads),
		keyboards:   fragments(keyboards),
	}
}

func fragments(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.ToLower(strings.TrimSpace(n)); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// Events returns a channel of device connect/disconnect events
func (dm *DeviceManager) Events() <-chan DeviceEvent {
	return dm.events
}

// Run starts the polling loop (blocking - run in goroutine)
func (dm *DeviceManager) Run(ctx context.Context) {
	ticker := time.NewTicker(dm.pollRate)
	defer ticker.Stop()

	dm.scan(ctx)

	for {
		select {
		case <-ctx.Done():
			dm.closeAll()
			close(dm.events)
			return
		case <-ticker.C:
			dm.scan(ctx)
		}
	}
}

type portsResult struct {
	inPorts  []drivers.In
	outPorts []drivers.Out
}

// getPorts lists ports, giving up after timeout. CoreMIDI can hang.
func getPorts(timeout time.Duration) (portsResult, bool) {
	ch := make(chan portsResult, 1)
	go func() {
		ch <- portsResult{inPorts: gomidi.GetInPorts(), outPorts: gomidi.GetOutPorts()}
	}()

	select {
	case ports := <-ch:
		return ports, true
	case <-time.After(timeout):
		return portsResult{}, false
	}
}

// PortNames returns the names of every MIDI input and output port
func PortNames(timeout time.Duration) (ins, outs []string, ok bool) {
	ports, ok := getPorts(timeout)
	if !ok {
		return nil, nil, false
	}
	for _, p := range ports.inPorts {
		ins = append(ins, p.String())
	}
	for _, p := range ports.outPorts {
		outs = append(outs, p.String())
	}
	return ins, outs, true
}

func (dm *DeviceManager) scan(ctx context.Context) {
	ports, ok := getPorts(3 * time.Second)
	if !ok {
		debug.Log("midi", "port scan timed out")
		return
	}

	seen := make(map[string]bool)
	for _, inPort := range ports.inPorts {
		id := inPort.String()
		kind := dm.classify(id)
		if kind == ControllerUnknown {
			continue
		}
		seen[id] = true

		dm.mu.RLock()
		_, exists := dm.controllers[id]
		dm.mu.RUnlock()
		if exists {
			continue
		}

		ctrl, err := dm.open(kind, id, inPort, ports.outPorts)
		if err != nil {
			debug.Log("midi", "open %s: %v", id, err)
			continue
		}

		dm.mu.Lock()
		dm.controllers[id] = ctrl
		dm.mu.Unlock()
		debug.Log("midi", "connected %s (%s)", id, kind)
		if !dm.emit(ctx, DeviceEvent{Type: DeviceConnected, Controller: ctrl, ID: id}) {
			return
		}
	}

	dm.dropMissing(ctx, seen)
}

// dropMissing closes and forgets every controller whose port is not in seen
func (dm *DeviceManager) dropMissing(ctx context.Context, seen map[string]bool) {
	gone := make(map[string]Controller)
	dm.mu.Lock()
	for id, c := range dm.controllers {
		if !seen[id] {
			gone[id] = c
			delete(dm.controllers, id)
		}
	}
	dm.mu.Unlock()

	for id, c := range gone {
		c.Close()
		debug.Log("midi", "disconnected %s", id)
	}
	for id := range gone {
		if !dm.emit(ctx, DeviceEvent{Type: DeviceDisconnected, ID: id}) {
			return
		}
	}
}

// emit delivers ev unless ctx ends first. Never called with dm.mu held.
func (dm *DeviceManager) emit(ctx context.Context, ev DeviceEvent) bool {
	select {
	case dm.events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

func (dm *DeviceManager) open(kind ControllerType, id string, in drivers.In, outs []drivers.Out) (Controller, error) {
	if kind == ControllerKeyboard {
		return NewKeyboardController(id, in)
	}
	var out drivers.Out
	for _, op := range outs {
		if strings.EqualFold(op.String(), id) {
			out = op
			break
		}
	}
	return NewLaunchpadController(id, in, out)
}

func (dm *DeviceManager) classify(name string) ControllerType {
	lower := strings.ToLower(name)
	switch {
	case isLaunchpad(lower) && containsAny(lower, dm.launchpads):
		return ControllerLaunchpad
	case containsAny(lower, dm.keyboards):
		return ControllerKeyboard
	}
	return ControllerUnknown
}

func containsAny(name string, fragments []string) bool {
	for _, f := range fragments {
		if strings.Contains(name, f) {
			return true
		}
	}
	return false
}

func (dm *DeviceManager) closeAll() {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	for _, c := range dm.controllers {
		c.Close()
	}
	dm.controllers = make(map[string]Controller)
}

func isLaunchpad(name string) bool {
	name = strings.ToLower(name)
	return strings.Contains(name, "launchpad") && strings.Contains(name, "midi")
}
