package main

import (
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/transit-overlay/clock"
	"github.com/lixenwraith/transit-overlay/core"
	"github.com/lixenwraith/transit-overlay/cue"
	"github.com/lixenwraith/transit-overlay/item"
	"github.com/lixenwraith/transit-overlay/layout"
	"github.com/lixenwraith/transit-overlay/overlay"
	"github.com/lixenwraith/transit-overlay/render"
	"github.com/lixenwraith/transit-overlay/sim"
	"github.com/lixenwraith/transit-overlay/status"
)

const hudRows = 1

// host lets the renderer keep one World while layouts are reloaded underneath
type host struct {
	*sim.World
}

// app owns the terminal, the world and the overlay renderer
type app struct {
	opts   options
	logger *slog.Logger

	screen tcell.Screen
	buf    *render.RenderBuffer
	cam    *render.Camera
	drawer *render.Screen
	hud    render.HUD

	clk      *clock.TickClock
	world    *host
	catalog  *item.Catalog
	metrics  *status.Registry
	renderer *overlay.Renderer
	sound    *cue.Player
}

func newApp(opts options, cfg overlay.Config, logger *slog.Logger) (*app, error) {
	w, cat, err := layout.Load(opts.layout)
	if err != nil {
		return nil, err
	}
	w.SetEditor(opts.editor)

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	core.OnCrash(screen.Fini)

	cols, rows := screen.Size()
	worldW, worldH := w.Size()
	a := &app{
		opts:    opts,
		logger:  logger,
		screen:  screen,
		buf:     render.NewRenderBuffer(cols, rows),
		cam:     render.NewCamera(w.TileSize(), worldW, worldH, cols, rows-hudRows),
		clk:     clock.NewTickClock(nil),
		world:   &host{World: w},
		catalog: cat,
		metrics: status.NewRegistry(),
		sound:   cue.NewPlayer(),
	}
	a.drawer = render.NewScreen(a.buf, a.cam)
	a.hud = render.HUD{Metrics: a.metrics, Prefix: cfg.MetricPrefix}

	a.renderer, err = overlay.New(overlay.Deps{
		World:   a.world,
		Clock:   a.clk,
		Camera:  a.cam,
		Catalog: a.catalog,
		Drawer:  a.drawer,
		Logger:  logger,
		Metrics: a.metrics,
	}, cfg)
	if err != nil {
		screen.Fini()
		return nil, err
	}

	if opts.sound {
		if err := a.sound.Initialize(); err != nil {
			// Non-fatal, the demo runs without sound
			logger.Warn("audio initialization failed", "error", err)
		}
	}

	a.renderer.OnWorldLoaded()
	logger.Info("demo started", "layout", opts.layout, "width", worldW, "height", worldH, "items", cat.Len())
	return a, nil
}

func (a *app) loop() error {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	frames := time.NewTicker(time.Second / time.Duration(a.opts.fps))
	defer frames.Stop()
	ticks := time.NewTicker(time.Second / time.Duration(a.opts.tps))
	defer ticks.Stop()

	events := make(chan tcell.Event, 100)
	core.Go(func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	})

	for {
		select {
		case ev := <-events:
			if !a.handleEvent(ev) {
				return nil
			}
		case <-ticks.C:
			if !a.clk.IsPaused() {
				a.world.Update(math.Floor(a.clk.Now()))
			}
		case <-frames.C:
			a.draw()
		}
	}
}

func (a *app) draw() {
	a.buf.Clear()
	render.DrawWorld(a.buf, a.cam, a.world.World)
	stats := a.renderer.OnFrameRender()
	a.sound.Observe(stats.Stuck)

	_, rows := a.buf.Bounds()
	a.hud.Draw(a.buf, rows-hudRows, a.clk.Now(), a.clk.IsPaused())
	a.buf.Flush(a.screen)
	a.screen.Show()
}

func (a *app) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			a.cam.Pan(-render.TileCols, 0)
		case tcell.KeyRight:
			a.cam.Pan(render.TileCols, 0)
		case tcell.KeyUp:
			a.cam.Pan(0, -render.TileRows)
		case tcell.KeyDown:
			a.cam.Pan(0, render.TileRows)
		case tcell.KeyRune:
			return a.handleRune(ev.Rune())
		}
	case *tcell.EventResize:
		cols, rows := a.screen.Size()
		a.buf.Resize(cols, rows)
		a.cam.Resize(cols, rows-hudRows)
		a.screen.Sync()
	}
	return true
}

func (a *app) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false
	case 'p':
		paused := a.clk.Toggle()
		a.logger.Info("animation paused", "paused", paused)
	case 'e':
		a.world.SetEditor(!a.world.Editor())
	case 'x':
		a.removeBridge()
	case 'r':
		a.reload()
	}
	return true
}

// removeBridge deletes a random buffered bridge without reindexing the overlay,
// leaving a stale reference until the next reload
func (a *app) removeBridge() {
	bridges := a.world.Bridges()
	if len(bridges) == 0 {
		return
	}
	p := bridges[rand.IntN(len(bridges))]
	if a.world.Remove(p) {
		a.sound.Break()
		a.logger.Info("bridge removed", "x", p.X, "y", p.Y)
	}
}

func (a *app) reload() {
	w, cat, err := layout.Load(a.opts.layout)
	if err != nil {
		a.logger.Error("layout reload failed", "error", err)
		return
	}
	w.SetEditor(a.world.Editor())

	a.renderer.OnWorldUnloaded()
	a.world.World = w
	*a.catalog = *cat
	a.renderer.OnWorldLoaded()
	a.logger.Info("layout reloaded", "layout", a.opts.layout)
}

func (a *app) cleanup() {
	a.renderer.OnWorldUnloaded()
	a.sound.Cleanup()
	a.screen.Fini()
}
