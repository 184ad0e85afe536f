// Command transit-overlay runs a demo transport world in the terminal with
// the in-flight item overlay drawn on top
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/lixenwraith/transit-overlay/overlay"
)

type options struct {
	layout  string
	fps     int
	tps     int
	index   string
	editor  bool
	strict  bool
	sound   bool
	logPath string
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var opts options
	flagSet := pflag.NewFlagSet("transit-overlay", pflag.ContinueOnError)
	flagSet.StringVar(&opts.layout, "layout", "", "layout YAML file (default: built-in crossing layout)")
	flagSet.IntVar(&opts.fps, "fps", 60, "frames rendered per second")
	flagSet.IntVar(&opts.tps, "tps", 60, "simulation updates per second")
	flagSet.StringVar(&opts.index, "index", "auto", "spatial index: auto, quadtree or flat")
	flagSet.BoolVar(&opts.editor, "editor", false, "editor preview: bridges drawn fully warmed up")
	flagSet.BoolVar(&opts.strict, "strict", false, "panic on transit buffer decode faults")
	flagSet.BoolVar(&opts.sound, "sound", false, "beep when bridges get stuck behind broken links")
	flagSet.StringVar(&opts.logPath, "log", "", "write JSON log records to this file")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if flagSet.NArg() > 0 {
		return fmt.Errorf("unexpected argument: %s", flagSet.Arg(0))
	}

	cfg, err := opts.config()
	if err != nil {
		return err
	}

	logger, closeLog, err := openLog(opts.logPath)
	if err != nil {
		return err
	}
	defer closeLog()

	a, err := newApp(opts, cfg, logger)
	if err != nil {
		return err
	}
	defer a.cleanup()
	return a.loop()
}

func (o options) config() (overlay.Config, error) {
	cfg := overlay.DefaultConfig()
	mode, err := overlay.ParseIndexMode(o.index)
	if err != nil {
		return cfg, err
	}
	if o.fps <= 0 || o.tps <= 0 {
		return cfg, fmt.Errorf("--fps and --tps must be positive")
	}
	cfg.Index = mode
	cfg.Strict = o.strict
	return cfg, nil
}

// openLog returns a JSON logger on path, or a discarding one; tcell owns the terminal
func openLog(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { f.Close() }, nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `transit-overlay: in-flight item overlay over a demo transport world.

Usage:
  transit-overlay [flags]

Flags:
%s
Keys:
  arrows    pan the view
  p         pause or resume animation
  x         remove a random buffered bridge
  e         toggle editor preview
  r         reload the layout
  q, Esc    quit
`, flagSet.FlagUsages())
}
