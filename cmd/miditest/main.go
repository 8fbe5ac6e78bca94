package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"go-drumseq/midi"
	"go-drumseq/sequencer"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "events":
		watchEvents(os.Args[2:])
	case "leds":
		testLEDs()
	default:
		usage()
	}
}

// anyLaunchpad accepts every Launchpad MIDI port, whatever the model
var anyLaunchpad = []string{"launchpad"}

func usage() {
	fmt.Println("MIDI Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list              - List all MIDI ports")
	fmt.Println("  events [KEYBOARD] - Print sequencer events from connected controllers")
	fmt.Println("  leds              - Show a demo pattern on a Launchpad")
}

func listPorts() {
	fmt.Println("=== MIDI Input Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	ins, outs, ok := midi.PortNames(3 * time.Second)
	if !ok {
		fmt.Println("\nTIMEOUT! CoreMIDI is hung.")
		fmt.Println("Fix: sudo killall coreaudiod midiserver")
		return
	}
	for i, name := range ins {
		mark := ""
		if strings.Contains(strings.ToLower(name), "launchpad") {
			mark = "  <- Launchpad"
		}
		fmt.Printf("  %d: %s%s\n", i, name, mark)
	}
	fmt.Println("\n=== MIDI Output Ports ===")
	for i, name := range outs {
		fmt.Printf("  %d: %s\n", i, name)
	}
}

// watchEvents runs the hot-plug manager and prints what each button press
// would do to the sequencer
func watchEvents(keyboards []string) {
	fmt.Println("Watching for controllers. Press buttons to see mapped events. Ctrl+C to exit.")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	dm := midi.NewDeviceManager(anyLaunchpad, keyboards)
	go dm.Run(ctx)

	events := make(chan sequencer.Event, 16)
	for {
		select {
		case ev, ok := <-dm.Events():
			if !ok {
				return
			}
			stamp := time.Now().Format("15:04:05")
			if ev.Type == midi.DeviceConnected {
				fmt.Printf("[%s] connected %s (%s)\n", stamp, ev.ID, ev.Controller.Type())
				go sequencer.Listen(ev.Controller, events)
			} else {
				fmt.Printf("[%s] disconnected %s\n", stamp, ev.ID)
			}
		case e := <-events:
			fmt.Printf("  -> %s\n", e)
		}
	}
}

func testLEDs() {
	fmt.Println("Looking for Launchpad...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dm := midi.NewDeviceManager(anyLaunchpad, nil)
	go dm.Run(ctx)

	var lp midi.Controller
	select {
	case ev := <-dm.Events():
		if ev.Type == midi.DeviceConnected && ev.Controller.Type() == midi.ControllerLaunchpad {
			lp = ev.Controller
		}
	case <-time.After(5 * time.Second):
	}
	if lp == nil {
		fmt.Println("No Launchpad found")
		return
	}

	// four on the floor with offbeat hats, cursor on the first snare
	lib := sequencer.DefaultLibrary(sequencer.DefaultSampleRate)
	display := sequencer.NewLEDDisplay()
	display.SetController(lp)

	e := sequencer.NewEngine(lib, nil, sequencer.Options{Display: display})
	for step := 0; step < 8; step++ {
		if step%4 == 0 {
			e.Grid().Toggle(sequencer.SoundKick, step)
		}
		if step%2 == 1 {
			e.Grid().Toggle(sequencer.SoundClosedHat, step)
		}
	}
	e.Grid().Toggle(sequencer.SoundSnare1, 4)
	e.Handle(sequencer.MoveDown)
	for i := 0; i < 4; i++ {
		e.Handle(sequencer.MoveRight)
	}

	fmt.Println("Press Enter to clear...")
	fmt.Scanln()

	e.Handle(sequencer.ResetPattern)
	fmt.Println("Done!")
}
