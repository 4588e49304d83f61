// Package main is an interactive terminal visualizer for the grid A* search.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/gdamore/tcell/v2"

	astar "github.com/pdrpinto/astargrid"
	"github.com/pdrpinto/astargrid/layout"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

type options struct {
	configPath string
	layoutPath string
	rows       int
	delay      string
	logLevel   string
	watch      bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := LoadConfig(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if opts.rows != 0 {
		cfg.Rows = opts.rows
	}
	if opts.delay != "" {
		cfg.StepDelay = opts.delay
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	settings, err := cfg.Resolve()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger, closer, err := openLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closer.Close()

	grid, err := initialGrid(cfg.Rows, opts.layoutPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}
	defer screen.Fini()
	screen.EnableMouse()

	app := NewApp(screen, grid, settings.Palette, logger)
	app.delay = settings.Delay
	app.layoutPath = opts.layoutPath

	if opts.watch && opts.layoutPath != "" {
		w, err := watchLayout(opts.layoutPath, logger)
		if err != nil {
			logger.Warn("layout watch disabled", "error", err)
		} else {
			defer w.Close()
			app.watcher = w
		}
	}

	logger.Info("astarviz started", "version", version, "rows", grid.Rows(), "layout", opts.layoutPath)
	if err := app.Run(); err != nil {
		logger.Error("exited with error", "error", err)
		return 1
	}
	return 0
}

// initialGrid builds the grid from the layout file when one exists, and an
// empty grid otherwise. A missing layout file is not an error: it is created
// on the first save.
func initialGrid(rows int, layoutPath string, logger *slog.Logger) (*astar.Grid, error) {
	if layoutPath != "" {
		l, err := layout.Load(layoutPath)
		switch {
		case err == nil:
			return l.Build()
		case errors.Is(err, fs.ErrNotExist):
			logger.Info("layout file not found, starting empty", "path", layoutPath)
		default:
			return nil, err
		}
	}
	return astar.NewGrid(rows)
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to TOML configuration file")
	flag.StringVar(&opts.layoutPath, "layout", "", "Layout file to load and save (.yaml, .yml or .toml)")
	flag.IntVar(&opts.rows, "rows", 0, "Grid size when no layout is loaded (default from config)")
	flag.StringVar(&opts.delay, "delay", "", "Pause after each search step, e.g. 10ms")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&opts.watch, "watch", false, "Reload the layout file when it changes")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "astarviz - interactive A* grid search\n\n")
		fmt.Fprintf(os.Stderr, "Usage: astarviz [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n  %s\n", helpText)
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("astarviz %s (%s)\n", version, commit)
		os.Exit(0)
	}
	return opts
}
