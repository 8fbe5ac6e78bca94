package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"go-drumseq/audio"
	"go-drumseq/config"
	"go-drumseq/debug"
	"go-drumseq/midi"
	"go-drumseq/sequencer"
	"go-drumseq/theme"
	"go-drumseq/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", "", "config file (default ~/.config/go-drumseq/config.json)")
		debugLog   = flag.Bool("debug", false, "write debug log to ~/.config/go-drumseq/debug.log")
		kitDir     = flag.String("kit", "", "directory of <lane>.wav samples, overrides config")
		stepMs     = flag.Int("step", 0, "step period in ms, overrides config")
		noMIDI     = flag.Bool("nomidi", false, "do not scan for MIDI controllers")
		writeCfg   = flag.Bool("write-config", false, "save the effective config and exit")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *kitDir != "" {
		cfg.Kit.Dir = *kitDir
	}
	if *stepMs > 0 {
		cfg.Transport.StepPeriodMs = *stepMs
	}
	if *writeCfg {
		return saveConfig(cfg, *configPath)
	}

	if *debugLog || cfg.Debug {
		if err := debug.Enable(""); err != nil {
			return errors.Wrap(err, "enable debug log")
		}
		defer debug.Disable()
	}
	debug.Log("config", "%+v", *cfg)

	palette, err := theme.LoadOrDefault(cfg.UI.Palette)
	if err != nil {
		return err
	}
	th := theme.New(palette)

	library, err := loadLibrary(cfg)
	if err != nil {
		return err
	}

	speaker, err := audio.OpenSpeaker(cfg.Audio.SampleRate, cfg.Audio.BufferFrames)
	if err != nil {
		return err
	}
	defer speaker.Close()

	sink := tui.NewSink()
	leds := sequencer.NewLEDDisplay()
	engine := sequencer.NewEngine(library, speaker, sequencer.Options{
		Steps:      cfg.Grid.Steps,
		StepPeriod: cfg.StepPeriod(),
		MaxFrames:  cfg.Audio.MaxSampleFrames,
		Display:    sequencer.Displays{sink, leds},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan sequencer.Event, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		engine.Run(ctx, events)
	}()

	var deviceMgr *midi.DeviceManager
	if !*noMIDI {
		deviceMgr = midi.NewDeviceManager(cfg.LaunchpadPorts(), cfg.KeyboardPorts())
		go deviceMgr.Run(ctx)
	}

	m := tui.Model{
		Sink:      sink,
		Events:    events,
		DeviceMgr: deviceMgr,
		LEDs:      leds,
		Theme:     th,
		Period:    engine.Period(),
		Quit:      cancel,
	}
	p := tea.NewProgram(m, tea.WithAltScreen())

	_, err = p.Run()
	cancel()

	// a stop while a sample is streaming only lands at the next lane
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		debug.Log("transport", "engine did not stop in time")
	}
	return err
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFile(path)
}

func saveConfig(cfg *config.Config, path string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if path == "" {
		return errors.Wrap(cfg.Save(), "save config")
	}
	return errors.Wrap(cfg.SaveFile(path), "save config")
}

// loadLibrary builds the kit: the built-in samples, replaced lane by lane by
// any WAV files in the kit directory
func loadLibrary(cfg *config.Config) (*sequencer.Library, error) {
	kit := sequencer.DefaultKit(cfg.Audio.SampleRate)
	if cfg.Kit.Dir != "" {
		var err error
		kit, err = audio.LoadKitDir(cfg.Kit.Dir, cfg.Audio.SampleRate, kit)
		if err != nil {
			return nil, errors.Wrap(err, "load kit")
		}
	}
	lib, err := sequencer.NewLibrary(kit...)
	if err != nil {
		return nil, errors.Wrap(err, "build sample library")
	}
	debug.Log("kit", "%d sounds, longest %d frames", lib.Len(), lib.MaxFrames())
	return lib, nil
}
