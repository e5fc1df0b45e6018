package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/alexflint/go-arg"
	tea "github.com/charmbracelet/bubbletea"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"go-padloop/audio"
	"go-padloop/audio/device"
	"go-padloop/config"
	"go-padloop/debug"
	"go-padloop/midi"
	"go-padloop/sequencer"
	"go-padloop/theme"
	"go-padloop/tui"
)

func main() {
	var args config.Args
	arg.MustParse(&args)

	cfg, err := loadConfig(args.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v (using defaults)\n", err)
		cfg = config.DefaultConfig()
	}
	cfg.Apply(args)

	if args.WriteConfig {
		if err := writeConfig(cfg, args.Config); err != nil {
			fmt.Fprintf(os.Stderr, "write config: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if cfg.Debug {
		if err := debug.Enable(debug.DefaultPath()); err != nil {
			fmt.Fprintf(os.Stderr, "debug log: %v\n", err)
		}
		defer debug.Disable()
	}

	th, err := theme.Load(cfg.Palette)
	if err != nil {
		debug.Error("theme", err, "using built-in palette")
		th = theme.Default()
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	debug.Log("main", "tempo=%d seed=%d", cfg.Tempo, seed)

	// Create sequencer manager
	manager := sequencer.NewManager(cfg.Tempo, rand.New(rand.NewSource(seed)))
	manager.SetResolution(cfg.Resolution())

	if !args.NoAudio {
		engine, err := startAudio(cfg)
		if err != nil {
			debug.Error("audio", err, "running without audio")
		} else {
			manager.AddPlayer(engine)
			manager.SetRecorder(engine.Recorder())
			defer device.Close()
		}
	}

	kit := midi.GetKit(cfg.MIDI.Kit)
	if cfg.MIDI.OutPort != "" {
		out, err := midi.OpenOutput(cfg.MIDI.OutPort, cfg.MIDIChannel(), kit)
		if err != nil {
			debug.Error("midi", err, "running without MIDI output")
		} else {
			manager.AddPlayer(out)
			defer out.Close()
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go manager.Run(ctx)

	// MIDI inputs are hot-plugged
	var deviceMgr *midi.DeviceManager
	if cfg.MIDI.InMatch != "" {
		deviceMgr = midi.NewDeviceManager(cfg.MIDI.InMatch)
		go deviceMgr.Run(ctx)
	}

	// Create and run TUI
	m := tui.NewModel(manager, deviceMgr, th, kit)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}

func writeConfig(cfg *config.Config, path string) error {
	if path == "" {
		var err error
		if path, err = config.ConfigPath(); err != nil {
			return err
		}
	}
	if err := cfg.SaveTo(path); err != nil {
		return err
	}
	fmt.Println("wrote", path)
	return nil
}

func startAudio(cfg *config.Config) (*audio.Engine, error) {
	bank, errs := audio.LoadBank(cfg.Samples.Dir, cfg.Samples.Names, audio.DefaultFormat, cfg.Samples.SynthFallback)
	for _, err := range errs {
		debug.Error("audio", err, "sample not loaded")
	}
	engine := audio.NewEngine(audio.DefaultFormat, bank, cfg.RecordFile)
	if err := device.Open(engine, device.DefaultLatency); err != nil {
		return nil, err
	}
	return engine, nil
}
