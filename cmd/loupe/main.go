// Package main is the entry point for the loupe screen magnifier.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/loupe/internal/app"
	"github.com/dshills/loupe/internal/config"
	"github.com/dshills/loupe/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Exit codes.
const (
	exitOK     = 0
	exitError  = 1
	exitConfig = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, err := parseFlags(args, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitConfig
	}

	if opts.showVersion {
		fmt.Printf("loupe %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		return exitOK
	}

	cfg, err := config.Load(
		config.WithFile(opts.configPath),
		config.WithOverrides(opts.overrides),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: configuration: %v\n", err)
		return exitConfig
	}

	if opts.dumpConfig {
		for _, line := range cfg.Dump() {
			fmt.Println(line)
		}
		return exitOK
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: loupe needs a terminal on stdout")
		return exitError
	}

	logger, logFile, err := app.OpenLogFile(cfg.LogFile, app.ParseLogLevel(cfg.LogLevel))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}
	defer logFile.Close()
	if cfg.File != "" {
		logger.Info("configuration read from %s", cfg.File)
	}

	terminal, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return exitError
	}

	application, err := app.New(app.Options{
		Config:  cfg,
		Backend: terminal,
		Logger:  logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		if errors.Is(err, config.ErrInvalid) {
			return exitConfig
		}
		return exitError
	}
	defer application.Close()

	// SIGINT and SIGTERM close the window like a window manager would
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	go func() {
		sig, ok := <-signals
		if !ok {
			return
		}
		logger.Info("received %v", sig)
		_ = application.Shutdown()
	}()

	if err := application.Run(context.Background()); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return exitOK
		}
		logger.Error("%v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}

	return exitOK
}

// cliOptions is the result of flag parsing.
type cliOptions struct {
	configPath  string
	overrides   map[string]any
	showVersion bool
	dumpConfig  bool
}

// parseFlags parses args. Only flags given explicitly become overrides,
// so the config file and environment still apply to the rest.
func parseFlags(args []string, output io.Writer) (cliOptions, error) {
	var opts cliOptions
	defaults := config.Default()

	fs := flag.NewFlagSet("loupe", flag.ContinueOnError)
	fs.SetOutput(output)

	// keys maps flag names to config keys
	keys := make(map[string]string)
	intFlag := func(key string, value int, usage string, names ...string) {
		v := new(int)
		for _, name := range names {
			fs.IntVar(v, name, value, usage)
			keys[name] = key
		}
	}
	stringFlag := func(key, value, usage string, names ...string) {
		v := new(string)
		for _, name := range names {
			fs.StringVar(v, name, value, usage)
			keys[name] = key
		}
	}
	boolFlag := func(key string, value bool, usage string, names ...string) {
		v := new(bool)
		for _, name := range names {
			fs.BoolVar(v, name, value, usage)
			keys[name] = key
		}
	}

	intFlag("x_size", defaults.XSize, "initial width of window (16-640)", "x", "x_size")
	intFlag("y_size", defaults.YSize, "initial height of window (16-640)", "y", "y_size")
	intFlag("refresh", defaults.Refresh, "timer refresh interval in ms (1-500)", "r", "refresh")
	intFlag("zoom", defaults.Zoom, "initial zoom level (1-4); the factor is 1+level/3, so level 1 already magnifies 1.33x (key 0 resets to 1x)", "z", "zoom")
	stringFlag("transform", defaults.Transform, "image transform (original, invert)", "t", "transform")
	boolFlag("mobile", defaults.Mobile, "window follows the pointer", "m", "mobile")
	stringFlag("source", defaults.Source, "image file to magnify (default: synthetic desktop)", "source")
	intFlag("screen_width", defaults.ScreenWidth, "synthetic desktop width", "screen-width")
	intFlag("screen_height", defaults.ScreenHeight, "synthetic desktop height", "screen-height")
	boolFlag("watch", defaults.Watch, "reload the source image when it changes", "watch")
	stringFlag("log_level", defaults.LogLevel, "log level (debug, info, warn, error)", "log-level")
	stringFlag("log_file", defaults.LogFile, "log file, empty to disable logging", "log-file")

	fs.StringVar(&opts.configPath, "config", "", "path to a TOML or YAML configuration file")
	fs.StringVar(&opts.configPath, "c", "", "path to a configuration file (shorthand)")
	fs.BoolVar(&opts.dumpConfig, "dump-config", false, "print the effective configuration and exit")
	fs.BoolVar(&opts.showVersion, "version", false, "show version information")
	fs.BoolVar(&opts.showVersion, "v", false, "show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(output, "loupe - terminal screen magnifier\n\n")
		fmt.Fprintf(output, "Usage: loupe [options]\n\n")
		fmt.Fprintf(output, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(output, "\nExamples:\n")
		fmt.Fprintf(output, "  loupe                         Magnify a synthetic desktop\n")
		fmt.Fprintf(output, "  loupe -source shot.png -z 3   Magnify an image at zoom level 3\n")
		fmt.Fprintf(output, "  loupe -t invert -m            Inverted colours, window follows pointer\n")
		fmt.Fprintf(output, "\nPress ? in the window for key bindings.\n")
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	opts.overrides = make(map[string]any)
	fs.Visit(func(f *flag.Flag) {
		key, ok := keys[f.Name]
		if !ok {
			return
		}
		if g, ok := f.Value.(flag.Getter); ok {
			opts.overrides[key] = g.Get()
		}
	})

	return opts, nil
}
