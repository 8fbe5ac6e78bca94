// Command render plays a pattern through the engine offline and writes the
// result to a WAV file.
//
//	render -o beat.wav -bars 2 Kc:0,4,8,12 S1:4,12 CH:0,2,4,6,8,10,12,14
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"go-drumseq/audio"
	"go-drumseq/config"
	"go-drumseq/debug"
	"go-drumseq/sequencer"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	var (
		outPath = fs.String("o", "pattern.wav", "output WAV file")
		bars    = fs.Int("bars", 1, "number of passes through the pattern")
		steps   = fs.Int("steps", sequencer.DefaultSteps, "steps per pattern")
		rate    = fs.Int("rate", sequencer.DefaultSampleRate, "sample rate in Hz")
		stepMs  = fs.Int("step", 125, "step period in ms")
		kitDir  = fs.String("kit", "", "directory of <lane>.wav samples")
		verbose = fs.Bool("v", false, "print the pattern after every step")
		logPath = fs.String("log", "", "write debug log to this file")
	)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: render [flags] LANE:STEP,STEP,... ...")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.DefaultConfig()
	cfg.Audio.SampleRate = *rate
	cfg.Grid.Steps = *steps
	cfg.Transport.StepPeriodMs = *stepMs
	cfg.Kit.Dir = *kitDir
	if err := cfg.Validate(); err != nil {
		return err
	}
	if *bars <= 0 {
		return errors.Errorf("bars must be positive, got %d", *bars)
	}

	if *logPath != "" {
		if err := debug.Enable(*logPath); err != nil {
			return errors.Wrap(err, "enable debug log")
		}
		defer debug.Disable()
	}

	kit := sequencer.DefaultKit(cfg.Audio.SampleRate)
	if cfg.Kit.Dir != "" {
		var err error
		if kit, err = audio.LoadKitDir(cfg.Kit.Dir, cfg.Audio.SampleRate, kit); err != nil {
			return errors.Wrap(err, "load kit")
		}
	}
	lib, err := sequencer.NewLibrary(kit...)
	if err != nil {
		return err
	}

	rec, err := audio.CreateRecorder(*outPath, cfg.Audio.SampleRate)
	if err != nil {
		return err
	}

	opts := sequencer.Options{Steps: cfg.Grid.Steps, StepPeriod: cfg.StepPeriod()}
	if *verbose {
		opts.Display = sequencer.TextDisplay{W: os.Stdout}
	}
	engine := sequencer.NewEngine(lib, rec, opts)

	if err := program(engine, lib.Names(), fs.Args()); err != nil {
		rec.Close()
		return err
	}

	n, err := render(engine, rec, cfg.Audio.SampleRate, *bars*cfg.Grid.Steps)
	if err != nil {
		rec.Close()
		return err
	}
	if err := rec.Close(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s: %d steps, %d frames\n", *outPath, n, rec.Frames())
	return nil
}

// program enters a pattern the way a player would, moving the cursor and
// toggling cells
func program(e *sequencer.Engine, names []string, lanes []string) error {
	for _, lane := range lanes {
		name, list, ok := strings.Cut(lane, ":")
		if !ok {
			return errors.Errorf("lane %q: want NAME:STEP,STEP,...", lane)
		}
		sound := -1
		for i, n := range names {
			if strings.EqualFold(n, name) {
				sound = i
				break
			}
		}
		if sound < 0 {
			return errors.Errorf("lane %q: unknown sound (have %s)", name, strings.Join(names, " "))
		}

		for _, s := range strings.Split(list, ",") {
			step, err := strconv.Atoi(strings.TrimSpace(s))
			if err != nil {
				return errors.Wrapf(err, "lane %s", name)
			}
			if step < 0 || step >= e.Grid().Cols() {
				return errors.Errorf("lane %s: step %d out of range 0-%d", name, step, e.Grid().Cols()-1)
			}
			moveTo(e, sound, step)
			if !e.Grid().IsActive(sound, step) {
				e.Handle(sequencer.ToggleCell)
			}
		}
	}
	return nil
}

func moveTo(e *sequencer.Engine, row, col int) {
	for e.Cursor().Row < row {
		e.Handle(sequencer.MoveDown)
	}
	for e.Cursor().Row > row {
		e.Handle(sequencer.MoveUp)
	}
	for e.Cursor().Col < col {
		e.Handle(sequencer.MoveRight)
	}
	for e.Cursor().Col > col {
		e.Handle(sequencer.MoveLeft)
	}
}

// render runs ticks back to back. Each step lasts at least one period; a step
// whose samples run longer pushes the next one back, as on the device.
func render(e *sequencer.Engine, rec *audio.Recorder, sampleRate, ticks int) (int, error) {
	period := int(e.Period().Seconds() * float64(sampleRate))

	e.Handle(sequencer.ToggleRun)
	for i := 0; i < ticks; i++ {
		start := rec.Frames()
		res := e.Tick()
		debug.Log("render", "step=%d played=%v skipped=%v", res.Step, res.Played, res.Skipped)
		if err := rec.Pad(start + period); err != nil {
			return i, err
		}
	}
	e.Handle(sequencer.ToggleRun)
	return ticks, nil
}
