package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alexflint/go-arg"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"go-padloop/audio"
	"go-padloop/config"
	"go-padloop/midi"
)

type listCmd struct{}

type bankCmd struct {
	Dir     string `arg:"positional" help:"sample directory (default from config)"`
	NoSynth bool   `arg:"--no-synth" help:"do not fill missing slots with synth voices"`
}

type notesCmd struct {
	Match   string        `arg:"positional" help:"only inputs whose name contains this"`
	Kit     string        `arg:"--kit" default:"gm" help:"note mapping (gm, rd8)"`
	Timeout time.Duration `arg:"--timeout" default:"30s" help:"stop after this long"`
}

type cmdArgs struct {
	List  *listCmd  `arg:"subcommand:list" help:"list MIDI ports"`
	Bank  *bankCmd  `arg:"subcommand:bank" help:"load the sample bank and report each slot"`
	Notes *notesCmd `arg:"subcommand:notes" help:"print notes from MIDI inputs as kit slots"`
}

func (cmdArgs) Description() string {
	return "padcheck: MIDI and sample bank checks for go-padloop"
}

func main() {
	var args cmdArgs
	p := arg.MustParse(&args)

	switch {
	case args.List != nil:
		listPorts()
	case args.Bank != nil:
		checkBank(args.Bank)
	case args.Notes != nil:
		watchNotes(args.Notes)
	default:
		p.WriteHelp(os.Stdout)
	}
}

func listPorts() {
	fmt.Println("=== MIDI Input Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	type result struct {
		ins  []string
		outs []string
	}
	ch := make(chan result, 1)
	go func() {
		ch <- result{ins: midi.InPortNames(), outs: midi.OutPortNames()}
	}()

	select {
	case r := <-ch:
		for i, name := range r.ins {
			fmt.Printf("  %d: %s\n", i, name)
		}
		fmt.Println("\n=== MIDI Output Ports ===")
		for i, name := range r.outs {
			fmt.Printf("  %d: %s\n", i, name)
		}
	case <-time.After(3 * time.Second):
		fmt.Println("\nTIMEOUT! CoreMIDI is hung.")
		fmt.Println("Fix: sudo killall coreaudiod midiserver")
	}
}

func checkBank(c *bankCmd) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("config: %v (using defaults)\n", err)
		cfg = config.DefaultConfig()
	}
	dir := cfg.Samples.Dir
	if c.Dir != "" {
		dir = c.Dir
	}

	format := audio.DefaultFormat
	bank, errs := audio.LoadBank(dir, cfg.Samples.Names, format, !c.NoSynth)
	fmt.Printf("=== Sample bank %s ===\n", dir)
	for i, buf := range bank {
		name := ""
		if i < len(cfg.Samples.Names) {
			name = filepath.Base(cfg.Samples.Names[i])
		}
		if buf == nil {
			fmt.Printf("  %d: %-12s empty\n", i, name)
			continue
		}
		fmt.Printf("  %d: %-12s %6d frames  %v\n", i, name, buf.Len(), format.SampleRate.D(buf.Len()).Round(time.Millisecond))
	}
	for _, err := range errs {
		fmt.Println("  !", err)
	}
}

func watchNotes(c *notesCmd) {
	kit := midi.GetKit(c.Kit)
	fmt.Printf("Watching inputs matching %q with kit %s for %v\n", c.Match, kit.Name, c.Timeout)

	ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	dm := midi.NewDeviceManager(c.Match)
	go dm.Run(ctx)

	for event := range dm.Events() {
		fmt.Printf("%s %s\n", event.Type, event.ID)
		if event.Type != midi.DeviceConnected {
			continue
		}
		go func(ctrl midi.Controller) {
			for n := range ctrl.NoteEvents() {
				slot, ok := kit.Slot(n.Note)
				if !ok {
					fmt.Printf("  ch%d note %d vel %d (not in kit)\n", n.Channel+1, n.Note, n.Velocity)
					continue
				}
				fmt.Printf("  ch%d note %d vel %d -> slot %d\n", n.Channel+1, n.Note, n.Velocity, slot)
			}
		}(event.Controller)
	}
}
