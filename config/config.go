package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"go-padloop/sequencer"
)

// SamplesConfig locates the sample bank
type SamplesConfig struct {
	Dir           string   `json:"dir,omitempty" yaml:"dir,omitempty"`
	Names         []string `json:"names,omitempty" yaml:"names,omitempty"` // file per slot, "" = empty
	SynthFallback bool     `json:"synthFallback" yaml:"synthFallback"`
}

// MIDIConfig defines the optional MIDI output and inputs
type MIDIConfig struct {
	OutPort string `json:"outPort,omitempty" yaml:"outPort,omitempty"`
	Channel int    `json:"channel,omitempty" yaml:"channel,omitempty"` // 1-16
	InMatch string `json:"inMatch,omitempty" yaml:"inMatch,omitempty"`
	Kit     string `json:"kit,omitempty" yaml:"kit,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	Tempo        int           `json:"tempo" yaml:"tempo"`
	Samples      SamplesConfig `json:"samples" yaml:"samples"`
	RecordFile   string        `json:"recordFile" yaml:"recordFile"`
	MIDI         MIDIConfig    `json:"midi" yaml:"midi"`
	ResolutionMs int           `json:"resolutionMs,omitempty" yaml:"resolutionMs,omitempty"`
	Palette      string        `json:"palette,omitempty" yaml:"palette,omitempty"` // .gpl file
	Seed         int64         `json:"seed,omitempty" yaml:"seed,omitempty"`
	Debug        bool          `json:"debug,omitempty" yaml:"debug,omitempty"`
}

// Args are the command line overrides, parsed with go-arg
type Args struct {
	Config      string `arg:"--config" help:"config file (.json, .yaml or .yml)"`
	Samples     string `arg:"--samples" help:"directory holding the sample files"`
	Tempo       int    `arg:"--tempo" help:"starting tempo in BPM"`
	Record      string `arg:"--record" help:"WAV file written when recording stops"`
	MIDIOut     string `arg:"--midi-out" help:"mirror triggers to the MIDI output matching this name"`
	MIDIIn      string `arg:"--midi-in" help:"trigger samples from MIDI inputs matching this name"`
	Kit         string `arg:"--kit" help:"MIDI note mapping (gm, rd8)"`
	Seed        int64  `arg:"--seed" help:"random seed for randomize and autonomous mode"`
	NoAudio     bool   `arg:"--no-audio" help:"run without opening the sound card"`
	Debug       bool   `arg:"--debug" help:"write a debug log"`
	WriteConfig bool   `arg:"--write-config" help:"save the effective settings and exit"`
}

func (Args) Description() string {
	return "go-padloop: a four pad loop sequencer for the terminal"
}

// DefaultSampleNames are looked up in the sample directory, one per pad
var DefaultSampleNames = []string{"kick.wav", "snare.wav", "hat.wav", "clap.wav"}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Tempo: sequencer.DefaultTempo,
		Samples: SamplesConfig{
			Dir:           "samples",
			Names:         append([]string(nil), DefaultSampleNames...),
			SynthFallback: true,
		},
		RecordFile: "padloop.wav",
		MIDI: MIDIConfig{
			Channel: 10,
			Kit:     "gm",
		},
		ResolutionMs: int(sequencer.DefaultResolution / time.Millisecond),
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-padloop"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from the default path, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads a JSON or YAML config. Missing fields keep their defaults;
// a missing file is not an error.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.normalize()
	return cfg, nil
}

// Save writes the config to the default path
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config, as YAML if path ends in .yaml or .yml
func (c *Config) SaveTo(path string) error {
	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Apply copies the flags that were set over the config
func (c *Config) Apply(a Args) {
	if a.Samples != "" {
		c.Samples.Dir = a.Samples
	}
	if a.Tempo != 0 {
		c.Tempo = a.Tempo
	}
	if a.Record != "" {
		c.RecordFile = a.Record
	}
	if a.MIDIOut != "" {
		c.MIDI.OutPort = a.MIDIOut
	}
	if a.MIDIIn != "" {
		c.MIDI.InMatch = a.MIDIIn
	}
	if a.Kit != "" {
		c.MIDI.Kit = a.Kit
	}
	if a.Seed != 0 {
		c.Seed = a.Seed
	}
	if a.Debug {
		c.Debug = true
	}
	c.normalize()
}

// Resolution is the scheduler tick period
func (c *Config) Resolution() time.Duration {
	return time.Duration(c.ResolutionMs) * time.Millisecond
}

// MIDIChannel is the 0-based output channel
func (c *Config) MIDIChannel() uint8 {
	return uint8(c.MIDI.Channel - 1)
}

func (c *Config) normalize() {
	c.Tempo = sequencer.ClampTempo(c.Tempo)
	c.MIDI.Channel = min(max(c.MIDI.Channel, 1), 16)
	if c.ResolutionMs <= 0 {
		c.ResolutionMs = int(sequencer.DefaultResolution / time.Millisecond)
	}
	if c.RecordFile == "" {
		c.RecordFile = "padloop.wav"
	}
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
