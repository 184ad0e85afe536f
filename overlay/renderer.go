// Package overlay draws in-flight items of transport structures on top of a
// host simulation, once per rendered frame.
//
// The Renderer is single-threaded: its decode arena and visible-set buffer are
// reused every frame. A host rendering from several goroutines needs one
// Renderer per goroutine.
package overlay

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/transit-overlay/core"
	"github.com/lixenwraith/transit-overlay/status"
	"github.com/lixenwraith/transit-overlay/structure"
	"github.com/lixenwraith/transit-overlay/transit"
)

// Deps bundles the host collaborators; Logger and Metrics are optional
type Deps struct {
	World   World
	Clock   Clock
	Camera  Camera
	Catalog Catalog
	Drawer  Drawer

	Logger  *slog.Logger
	Metrics *status.Registry
}

// FrameStats summarizes one frame
type FrameStats struct {
	Visible      int // positions returned by the index
	Drawn        int // structures that produced at least one icon
	Icons        int
	Stale        int // positions whose structure was gone
	Failed       int // structures skipped after an error
	DecodeFaults int // structures with recovered decode faults
	Stuck        int // buffered bridges holding items behind a broken link
	Elapsed      time.Duration
}

// report categories for log-once tracking
const (
	reportDecode uint8 = 1 << iota
	reportFailure
)

type metrics struct {
	visible, drawn, icons *atomic.Int64
	stale, failed, faults *atomic.Int64
	stuck, indexed        *atomic.Int64
	frameMs               *status.AtomicFloat
	index                 *status.AtomicString
}

// Renderer is the per-frame overlay pipeline
type Renderer struct {
	deps Deps
	cfg  Config
	log  *slog.Logger

	ctx      *Context
	scratch  *transit.Scratch
	visible  []core.Point
	reported map[core.Point]uint8

	frame FrameStats
	m     metrics
}

// New validates the collaborators and creates a Renderer
// A missing collaborator is a *MissingAccessorError: nothing can render without it
func New(deps Deps, cfg Config) (*Renderer, error) {
	switch {
	case deps.World == nil:
		return nil, &MissingAccessorError{Name: "World"}
	case deps.Clock == nil:
		return nil, &MissingAccessorError{Name: "Clock"}
	case deps.Camera == nil:
		return nil, &MissingAccessorError{Name: "Camera"}
	case deps.Catalog == nil:
		return nil, &MissingAccessorError{Name: "Catalog"}
	case deps.Drawer == nil:
		return nil, &MissingAccessorError{Name: "Drawer"}
	}

	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}
	if deps.Metrics == nil {
		deps.Metrics = status.NewRegistry()
	}
	if cfg.Index == "" {
		cfg.Index = IndexAuto
	}

	r := &Renderer{
		deps:     deps,
		cfg:      cfg,
		log:      deps.Logger.With("component", "overlay"),
		scratch:  transit.NewScratch(cfg.ScratchSlots),
		reported: make(map[core.Point]uint8),
	}
	r.bindMetrics()
	return r, nil
}

func (r *Renderer) bindMetrics() {
	reg, p := r.deps.Metrics, r.cfg.MetricPrefix
	r.m = metrics{
		visible: reg.Ints.Get(p + "visible"),
		drawn:   reg.Ints.Get(p + "drawn"),
		icons:   reg.Ints.Get(p + "icons"),
		stale:   reg.Ints.Get(p + "stale"),
		failed:  reg.Ints.Get(p + "failed"),
		faults:  reg.Ints.Get(p + "decode_faults"),
		stuck:   reg.Ints.Get(p + "stuck"),
		indexed: reg.Ints.Get(p + "indexed"),
		frameMs: reg.Floats.Get(p + "frame_ms"),
		index:   reg.Strings.Get(p + "index"),
	}
}

// Context returns the current world context, nil before the first world load
func (r *Renderer) Context() *Context { return r.ctx }

// OnWorldLoaded rebuilds the spatial index for the host's current world
// Must not run concurrently with OnFrameRender
func (r *Renderer) OnWorldLoaded() {
	r.ctx = NewContext(r.deps.World, r.cfg)
	clear(r.reported)

	r.m.indexed.Store(int64(r.ctx.Indexed()))
	r.m.index.Store(string(r.ctx.Mode()))

	w, h := r.deps.World.Size()
	r.log.Info("world indexed",
		"mode", r.ctx.Mode(),
		"structures", r.ctx.Indexed(),
		"dropped", r.ctx.Dropped(),
		"width", w,
		"height", h,
	)
}

// OnWorldUnloaded drops the world context; frames render nothing until the next load
func (r *Renderer) OnWorldUnloaded() {
	r.ctx = nil
	clear(r.reported)
}

// OnFrameRender draws every visible structure's items
// Per-structure failures are logged and skipped; the frame always completes
func (r *Renderer) OnFrameRender() FrameStats {
	if r.ctx == nil {
		return FrameStats{}
	}
	start := time.Now()
	r.frame = FrameStats{}

	r.visible = r.ctx.Visible(r.deps.Camera.VisibleWorldRect(), r.visible[:0])
	r.frame.Visible = len(r.visible)

	d := r.deps.Drawer
	d.Begin(r.cfg.Layer)
	now := r.deps.Clock.Now()
	editor := r.deps.World.Editor()

	for _, p := range r.visible {
		s, err := r.resolve(p)
		if err != nil {
			if errors.Is(err, ErrStaleReference) {
				r.frame.Stale++
				continue
			}
			r.fail(p, structure.KindUnknown, err)
			continue
		}

		icons, err := r.drawStructure(&s, now, editor)
		if err != nil {
			r.fail(p, s.Kind, err)
			continue
		}
		if icons > 0 {
			r.frame.Drawn++
			r.frame.Icons += icons
		}
	}
	d.Reset()

	r.frame.Elapsed = time.Since(start)
	r.publish()
	return r.frame
}

// resolve looks up the live structure at p
func (r *Renderer) resolve(p core.Point) (structure.Structure, error) {
	s, ok := r.deps.World.StructureAt(p)
	if !ok {
		return structure.Structure{}, ErrStaleReference
	}
	if s.Kind != structure.KindUnknown && !s.Valid() {
		return s, fmt.Errorf("%s at %v: %w", s.Kind, p, ErrMalformedStructure)
	}
	return s, nil
}

// drawStructure dispatches on the structure kind and returns the icon count
func (r *Renderer) drawStructure(s *structure.Structure, now float64, editor bool) (int, error) {
	switch s.Kind {
	case structure.KindSimpleBridge, structure.KindPassthrough:
		return r.drawInventory(s, 1), nil
	case structure.KindBufferedBridge:
		n := r.drawInventory(s, r.cfg.BridgeAlpha)
		m, err := r.drawBridge(s, now, editor)
		return n + m, err
	case structure.KindJunction:
		return r.drawJunction(s, now)
	default:
		return 0, nil
	}
}

func (r *Renderer) fail(p core.Point, kind structure.Kind, err error) {
	r.frame.Failed++
	if r.once(p, reportFailure) {
		r.log.Warn("structure skipped", "pos", p, "kind", kind, "error", err)
	}
}

// decodeFault handles a recovered decode error; Strict turns it into a panic
func (r *Renderer) decodeFault(s *structure.Structure, err error) {
	if r.cfg.Strict {
		panic(fmt.Errorf("%s at %v: %w", s.Kind, s.Pos, err))
	}
	r.frame.DecodeFaults++
	if r.once(s.Pos, reportDecode) {
		r.log.Warn("transit buffer decode fault", "pos", s.Pos, "kind", s.Kind, "error", err)
	}
}

// once reports whether category is being reported for p for the first time this world session
func (r *Renderer) once(p core.Point, category uint8) bool {
	seen := r.reported[p]
	if seen&category != 0 {
		return false
	}
	r.reported[p] = seen | category
	return true
}

func (r *Renderer) publish() {
	f := &r.frame
	r.m.visible.Store(int64(f.Visible))
	r.m.drawn.Store(int64(f.Drawn))
	r.m.icons.Store(int64(f.Icons))
	r.m.stale.Store(int64(f.Stale))
	r.m.failed.Store(int64(f.Failed))
	r.m.faults.Store(int64(f.DecodeFaults))
	r.m.stuck.Store(int64(f.Stuck))
	r.m.frameMs.Smooth(float64(f.Elapsed.Microseconds())/1000, 0.1)
}
