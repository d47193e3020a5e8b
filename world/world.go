// Package world owns the simulated population and advances it one frame at
// a time. It has no rendering dependency.
package world

import (
	"fmt"
	"image/color"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/bumpers/components"
	"github.com/pthm-cable/bumpers/config"
	"github.com/pthm-cable/bumpers/systems"
	"github.com/pthm-cable/bumpers/telemetry"
	"github.com/pthm-cable/bumpers/vec"
)

// FrameStats counts the events of the most recent Step.
type FrameStats struct {
	Collisions  int
	WallBounces int
}

// World holds every body plus the systems that move them.
type World struct {
	cfg *config.Config

	ecs    *ecs.World
	bodies *ecs.Map1[components.Body]

	// Entities in population (creation) order. Collision resolution
	// depends on this order.
	order  []ecs.Entity
	nextID int

	collision *systems.CollisionSystem
	physics   *systems.PhysicsSystem
	contain   *systems.BoundsSystem

	perf *telemetry.PerfCollector

	tick int32
	last FrameStats
}

// New creates an empty world sized to the configured screen.
func New(cfg *config.Config) *World {
	w := ecs.NewWorld()
	return &World{
		cfg:       cfg,
		ecs:       w,
		bodies:    ecs.NewMap1[components.Body](w),
		nextID:    1,
		collision: systems.NewCollisionSystem(cfg.Collision.Model, cfg.Collision.Guard),
		physics:   systems.NewPhysicsSystem(w, cfg.Physics.DT),
		contain:   systems.NewBoundsSystem(w, systems.Bounds{Width: cfg.Derived.ArenaW, Height: cfg.Derived.ArenaH}),
	}
}

// SetPerfCollector enables per-phase timing of Step. The caller brackets
// each Step with StartTick and EndTick. Pass nil to disable.
func (w *World) SetPerfCollector(p *telemetry.PerfCollector) {
	w.perf = p
}

// Populate spawns population.count random bodies.
//
// Positions are integer points in [0, W] x [0, H], mass and radius are
// integers from the configured ranges, velocity components are uniform in
// [-speed_max, speed_max] on all three axes.
func (w *World) Populate(rng *rand.Rand) {
	body := w.cfg.Body
	bounds := w.Bounds()

	for i := 0; i < w.cfg.Population.Count; i++ {
		b := components.Body{
			Position: vec.New(
				float64(rng.Intn(int(bounds.Width)+1)),
				float64(rng.Intn(int(bounds.Height)+1)),
				0,
			),
			Velocity: vec.New(
				(rng.Float64()*2-1)*body.SpeedMax,
				(rng.Float64()*2-1)*body.SpeedMax,
				(rng.Float64()*2-1)*body.SpeedMax,
			),
			Mass:   float64(randInt(rng, body.MassMin, body.MassMax)),
			Radius: float64(randInt(rng, body.RadiusMin, body.RadiusMax)),
			Color: color.RGBA{
				R: uint8(rng.Intn(256)),
				G: uint8(rng.Intn(256)),
				B: uint8(rng.Intn(256)),
				A: 255,
			},
		}
		id := w.Spawn(b)
		slog.Info("spawned", "id", id, "position", b.Position.String(), "mass", b.Mass, "radius", b.Radius)
	}
}

// randInt returns an integer in [lo, hi].
func randInt(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}

// Spawn adds b to the end of the population. An empty ID is replaced by the
// next "vehicleN" identifier. Returns the stored ID.
func (w *World) Spawn(b components.Body) string {
	if b.ID == "" {
		b.ID = fmt.Sprintf("vehicle%d", w.nextID)
	}
	w.nextID++
	e := w.bodies.NewEntity(&b)
	w.order = append(w.order, e)
	return b.ID
}

// Step advances the simulation by one frame: collisions, integration, then
// containment.
func (w *World) Step() FrameStats {
	if w.perf != nil {
		w.perf.StartPhase(telemetry.PhaseCollision)
	}
	collisions := w.collision.Update(w.Bodies())

	if w.perf != nil {
		w.perf.StartPhase(telemetry.PhaseIntegrate)
	}
	w.physics.Update()

	if w.perf != nil {
		w.perf.StartPhase(telemetry.PhaseContain)
	}
	bounces := w.contain.Update()

	w.tick++
	w.last = FrameStats{Collisions: collisions, WallBounces: bounces}
	return w.last
}

// Resize adopts new arena bounds, effective from the next containment pass.
func (w *World) Resize(width, height float64) {
	w.contain.SetBounds(systems.Bounds{Width: width, Height: height})
	slog.Debug("resized", "width", width, "height", height)
}

// Bounds returns the current arena bounds.
func (w *World) Bounds() systems.Bounds {
	return w.contain.Bounds()
}

// Bodies returns pointers to every body in population order. The pointers
// are valid until the next Spawn.
func (w *World) Bodies() []*components.Body {
	out := make([]*components.Body, len(w.order))
	for i, e := range w.order {
		out[i] = w.bodies.Get(e)
	}
	return out
}

// Each calls fn for every body in population order.
func (w *World) Each(fn func(*components.Body)) {
	for _, e := range w.order {
		fn(w.bodies.Get(e))
	}
}

// Pairs calls fn once for every unordered pair, a preceding b in
// population order.
func (w *World) Pairs(fn func(a, b *components.Body)) {
	bodies := w.Bodies()
	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			fn(bodies[i], bodies[j])
		}
	}
}

// Len returns the number of bodies.
func (w *World) Len() int {
	return len(w.order)
}

// Tick returns the number of completed steps.
func (w *World) Tick() int32 {
	return w.tick
}

// LastFrame returns the events of the most recent Step.
func (w *World) LastFrame() FrameStats {
	return w.last
}

// Collided reports whether the body with id was resolved in the last
// collision pass.
func (w *World) Collided(id string) bool {
	return w.collision.Collided(id)
}
