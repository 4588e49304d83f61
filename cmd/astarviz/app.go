package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	astar "github.com/pdrpinto/astargrid"
	"github.com/pdrpinto/astargrid/layout"
)

// cellWidth is the number of terminal columns per grid cell, which keeps
// cells roughly square.
const cellWidth = 2

const helpText = "click: start/end/wall  right-click: clear  space: run  esc: cancel  r: random  c: reset  s: save  q: quit"

// App is the interactive grid editor. All grid access happens on the
// goroutine that calls Run; the poller only forwards terminal events.
type App struct {
	screen  tcell.Screen
	grid    *astar.Grid
	palette Palette
	logger  *slog.Logger

	delay      time.Duration
	layoutPath string
	watcher    *layoutWatcher

	events chan tcell.Event
	status string
	quit   bool
}

// NewApp creates an App drawing grid on an initialized screen.
func NewApp(screen tcell.Screen, grid *astar.Grid, palette Palette, logger *slog.Logger) *App {
	return &App{
		screen:  screen,
		grid:    grid,
		palette: palette,
		logger:  logger,
		events:  make(chan tcell.Event, 64),
		status:  helpText,
	}
}

// Run processes events until the user quits.
func (a *App) Run() error {
	go a.pollEvents()

	var changes <-chan struct{}
	if a.watcher != nil {
		changes = a.watcher.Changes()
	}

	a.draw()
	for !a.quit {
		select {
		case ev, ok := <-a.events:
			if !ok {
				return nil
			}
			a.handleEvent(ev)
		case <-changes:
			a.reloadLayout()
		}
		a.draw()
	}
	return nil
}

func (a *App) pollEvents() {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			close(a.events)
			return
		}
		a.events <- ev
	}
}

func (a *App) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()

	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			a.quit = true
		case ev.Key() != tcell.KeyRune:
		case ev.Rune() == 'q':
			a.quit = true
		case ev.Rune() == ' ':
			a.search()
		case ev.Rune() == 'c':
			a.grid.Reset()
			a.status = "grid cleared"
		case ev.Rune() == 'r':
			a.randomize(time.Now().UnixNano())
		case ev.Rune() == 's':
			a.saveLayout()
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		cell := astar.Cell{Row: y, Col: x / cellWidth}
		if !a.grid.Contains(cell) {
			return
		}
		switch {
		case ev.Buttons()&tcell.Button1 != 0:
			a.place(cell)
		case ev.Buttons()&tcell.Button2 != 0:
			if err := a.grid.Clear(cell); err != nil {
				a.logger.Warn("clear failed", "cell", cell, "error", err)
			}
		}
	}
}

// place assigns the start first, then the end, then walls. The endpoints
// are never overwritten by a click.
func (a *App) place(cell astar.Cell) {
	start, hasStart := a.grid.Start()
	end, hasEnd := a.grid.End()
	isStart := hasStart && cell == start
	isEnd := hasEnd && cell == end

	var state astar.State
	switch {
	case !hasStart && !isEnd:
		state = astar.Start
	case !hasEnd && !isStart:
		state = astar.End
	case !isStart && !isEnd:
		state = astar.Blocked
	default:
		return
	}
	if err := a.grid.SetState(cell, state); err != nil {
		a.logger.Warn("edit rejected", "cell", cell, "state", state, "error", err)
	}
}

// search runs A* on the current grid, redrawing after every step. Escape
// cancels the run; q cancels it and quits.
func (a *App) search() {
	a.grid.ClearSearch()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := a.logger.With("run_id", uuid.NewString())
	logger.Info("search started", "rows", a.grid.Rows())
	began := time.Now()

	res, err := astar.Run(ctx, a.grid, func() { a.step(cancel) }, astar.WithLogger(logger))
	if err != nil {
		logger.Error("search failed", "error", err)
		if errors.Is(err, astar.ErrMissingEndpoints) {
			a.status = "set a start and an end first"
			return
		}
		a.status = err.Error()
		return
	}

	logger.Info("search finished",
		"status", res.Status,
		"cost", res.TotalCost,
		"expanded", res.ExpandedNodes,
		"elapsed", time.Since(began),
	)
	switch res.Status {
	case astar.Found:
		a.status = fmt.Sprintf("found: cost %d, %d cells expanded", res.TotalCost, res.ExpandedNodes)
	case astar.NotFound:
		a.status = fmt.Sprintf("no path: %d cells expanded", res.ExpandedNodes)
	case astar.Cancelled:
		a.status = "search cancelled"
	}
}

// step is the search observer. It never edits the grid.
func (a *App) step(cancel context.CancelFunc) {
	a.draw()
	for {
		select {
		case ev, ok := <-a.events:
			if !ok {
				cancel()
				a.quit = true
				return
			}
			a.handleRunningEvent(ev, cancel)
		default:
			if a.delay > 0 {
				time.Sleep(a.delay)
			}
			return
		}
	}
}

// handleRunningEvent handles input while a search owns the grid; clicks are dropped.
func (a *App) handleRunningEvent(ev tcell.Event, cancel context.CancelFunc) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape:
			cancel()
		case ev.Key() == tcell.KeyCtrlC, ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			cancel()
			a.quit = true
		}
	}
}

// randomize replaces the grid contents with generated walls and endpoints.
func (a *App) randomize(seed int64) {
	l, err := layout.Generate(a.grid.Rows(), layout.DefaultGenerateOptions(a.grid.Rows(), seed))
	if err == nil {
		err = l.Apply(a.grid)
	}
	if err != nil {
		a.logger.Warn("random layout failed", "error", err)
		a.status = err.Error()
		return
	}
	a.logger.Debug("random layout", "seed", seed, "walls", len(l.Walls))
	a.status = fmt.Sprintf("random layout: %d walls", len(l.Walls))
}

func (a *App) saveLayout() {
	if a.layoutPath == "" {
		a.status = "no layout file; start with -layout to save"
		return
	}
	if err := layout.FromGrid(a.grid).Save(a.layoutPath); err != nil {
		a.logger.Error("save failed", "path", a.layoutPath, "error", err)
		a.status = err.Error()
		return
	}
	a.logger.Info("layout saved", "path", a.layoutPath)
	a.status = "saved " + a.layoutPath
}

func (a *App) reloadLayout() {
	l, err := layout.Load(a.layoutPath)
	if err != nil {
		a.logger.Warn("reload failed", "path", a.layoutPath, "error", err)
		a.status = err.Error()
		return
	}
	rows, err := l.Size()
	if err != nil {
		a.status = err.Error()
		return
	}
	if rows != a.grid.Rows() {
		g, err := astar.NewGrid(rows)
		if err != nil {
			a.status = err.Error()
			return
		}
		a.grid = g
		a.screen.Clear()
	}
	if err := l.Apply(a.grid); err != nil {
		a.status = err.Error()
		return
	}
	a.logger.Info("layout reloaded", "path", a.layoutPath, "rows", rows)
	a.status = "reloaded " + a.layoutPath
}

func (a *App) draw() {
	a.grid.Cells(func(c astar.Cell, s astar.State) {
		style := a.palette.Style(s)
		for i := 0; i < cellWidth; i++ {
			a.screen.SetContent(c.Col*cellWidth+i, c.Row, ' ', nil, style)
		}
	})

	width, _ := a.screen.Size()
	y := a.grid.Rows()
	status := []rune(a.status)
	for x := 0; x < width; x++ {
		r := ' '
		if x < len(status) {
			r = status[x]
		}
		a.screen.SetContent(x, y, r, nil, tcell.StyleDefault)
	}
	a.screen.Show()
}
