package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// ControllerType identifies the kind of controller
type ControllerType string

const (
	ControllerLaunchpadX ControllerType = "launchpad-x"
	ControllerKeyboard   ControllerType = "keyboard"
)

// ControllerConfig defines a saved controller configuration
type ControllerConfig struct {
	PortName    string         `json:"portName"`
	Type        ControllerType `json:"type"`
	AutoConnect bool           `json:"autoConnect"`
}

// AudioConfig describes the output device
type AudioConfig struct {
	SampleRate      int `json:"sampleRate"`
	BufferFrames    int `json:"bufferFrames"`              // device ring size
	MaxSampleFrames int `json:"maxSampleFrames,omitempty"` // conversion buffer, longest sample if 0
}

// GridConfig sizes the pattern. Lanes always come from the kit.
type GridConfig struct {
	Steps int `json:"steps"`
}

// TransportConfig holds the fixed tick period, read once at startup
type TransportConfig struct {
	StepPeriodMs int `json:"stepPeriodMs"`
}

// KitConfig points at a directory of <name>.wav samples
type KitConfig struct {
	Dir string `json:"dir,omitempty"`
}

// UIConfig stores UI preferences
type UIConfig struct {
	Palette string `json:"palette,omitempty"` // path to a GIMP .gpl file
}

// Config is the main configuration structure
type Config struct {
	Audio       AudioConfig        `json:"audio"`
	Grid        GridConfig         `json:"grid"`
	Transport   TransportConfig    `json:"transport"`
	Kit         KitConfig          `json:"kit,omitempty"`
	Controllers []ControllerConfig `json:"controllers,omitempty"`
	UI          UIConfig           `json:"ui,omitempty"`
	Debug       bool               `json:"debug,omitempty"`
}

// DefaultConfig returns the hardware defaults: 16384 Hz, a 512-frame
// device buffer, sixteen steps at 125ms.
func DefaultConfig() *Config {
	return &Config{
		Audio: AudioConfig{
			SampleRate:   16384,
			BufferFrames: 8 * 64,
		},
		Grid:      GridConfig{Steps: 16},
		Transport: TransportConfig{StepPeriodMs: 125},
		Controllers: []ControllerConfig{
			{
				PortName:    "Launchpad X LPX MIDI",
				Type:        ControllerLaunchpadX,
				AutoConnect: true,
			},
		},
	}
}

// StepPeriod is the transport tick interval
func (c *Config) StepPeriod() time.Duration {
	return time.Duration(c.Transport.StepPeriodMs) * time.Millisecond
}

// Validate rejects settings the engine cannot run with
func (c *Config) Validate() error {
	switch {
	case c.Audio.SampleRate <= 0:
		return errors.Errorf("audio.sampleRate must be positive, got %d", c.Audio.SampleRate)
	case c.Audio.BufferFrames <= 0:
		return errors.Errorf("audio.bufferFrames must be positive, got %d", c.Audio.BufferFrames)
	case c.Audio.MaxSampleFrames < 0:
		return errors.Errorf("audio.maxSampleFrames must not be negative, got %d", c.Audio.MaxSampleFrames)
	case c.Grid.Steps <= 0:
		return errors.Errorf("grid.steps must be positive, got %d", c.Grid.Steps)
	case c.Transport.StepPeriodMs <= 0:
		return errors.Errorf("transport.stepPeriodMs must be positive, got %d", c.Transport.StepPeriodMs)
	}
	return nil
}

// Environment overrides
const (
	EnvSampleRate = "DRUMSEQ_SAMPLE_RATE"
	EnvStepMs     = "DRUMSEQ_STEP_MS"
	EnvKitDir     = "DRUMSEQ_KIT_DIR"
	EnvDebug      = "DRUMSEQ_DEBUG"
)

// ApplyEnv overrides fields from DRUMSEQ_* variables
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvSampleRate); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "%s", EnvSampleRate)
		}
		c.Audio.SampleRate = n
	}
	if v := getenv(EnvStepMs); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "%s", EnvStepMs)
		}
		c.Transport.StepPeriodMs = n
	}
	if v := getenv(EnvKitDir); v != "" {
		c.Kit.Dir = v
	}
	if v := getenv(EnvDebug); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrapf(err, "%s", EnvDebug)
		}
		c.Debug = on
	}
	return nil
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-drumseq"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the default config file, then the environment
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		// no home directory: defaults plus environment
		cfg := DefaultConfig()
		if err := cfg.finish(); err != nil {
			return nil, errors.Wrap(err, "config")
		}
		return cfg, nil
	}
	return LoadFile(path)
}

// LoadFile reads path over the defaults, or just the defaults if it does not
// exist, then applies the environment and validates
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse %s", path)
		}
	case !os.IsNotExist(err):
		return nil, errors.Wrap(err, "read config")
	}

	if err := cfg.finish(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// finish applies the environment and validates the result
func (c *Config) finish() error {
	if err := c.ApplyEnv(os.Getenv); err != nil {
		return err
	}
	return c.Validate()
}

// Save writes the config to disk
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the config to path, creating its directory
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// LaunchpadPorts returns the port names of auto-connecting Launchpads
func (c *Config) LaunchpadPorts() []string {
	return c.autoConnect(ControllerLaunchpadX)
}

// KeyboardPorts returns the port names of auto-connecting keyboards
func (c *Config) KeyboardPorts() []string {
	return c.autoConnect(ControllerKeyboard)
}

func (c *Config) autoConnect(typ ControllerType) []string {
	var result []string
	for _, ctrl := range c.Controllers {
		if ctrl.AutoConnect && ctrl.Type == typ {
			result = append(result, ctrl.PortName)
		}
	}
	return result
}
