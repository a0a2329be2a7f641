// Package engine owns the per-tick simulation loop: it samples the
// pointer ray once, steps every effect in a fixed order, and fills the
// render buffers handed to the renderer.
package engine

import (
	"math"
	"math/rand"

	"github.com/adub3/Portfolio-Website/camera"
	"github.com/adub3/Portfolio-Website/config"
	"github.com/adub3/Portfolio-Website/geom"
	"github.com/adub3/Portfolio-Website/sim"
	"github.com/adub3/Portfolio-Website/telemetry"
)

// Input is the per-tick pointer state in normalized device coordinates,
// [-1, 1] on both axes. NaN coordinates mean no pointer this tick; hit
// testing is skipped entirely.
type Input struct {
	PointerX float32
	PointerY float32
}

// Engine holds the complete animation state.
type Engine struct {
	cfg *config.Config
	rng *rand.Rand
	cam *camera.Camera

	nodes   *sim.NodeSimulator
	edges   *sim.ProximityGraphBuilder
	trails  *sim.TrailField
	emitter *sim.EmitterPool
	stars   *sim.Starfield
	buffers *sim.FrameBuffers

	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager
	logStats  bool

	now  float64
	tick int32
	dt   float32

	nextBurstAt float64
}

// New creates the engine with every effect seeded from a single RNG so a
// given seed replays the exact same animation.
func New(cfg *config.Config, seed int64, output *telemetry.OutputManager, logStats bool) *Engine {
	rng := rand.New(rand.NewSource(seed))

	dt := float32(1.0 / 60.0)
	if cfg.Screen.TargetFPS > 0 {
		dt = 1.0 / float32(cfg.Screen.TargetFPS)
	}

	cam := camera.New(
		geom.Vec3{X: cfg.Camera.Position.X, Y: cfg.Camera.Position.Y, Z: cfg.Camera.Position.Z},
		geom.Vec3{X: cfg.Camera.Target.X, Y: cfg.Camera.Target.Y, Z: cfg.Camera.Target.Z},
		cfg.Camera.FovYDegrees*math.Pi/180,
		cfg.Derived.Aspect,
	)

	e := &Engine{
		cfg:       cfg,
		rng:       rng,
		cam:       cam,
		nodes:     sim.NewNodeSimulator(cfg.Network, rng),
		edges:     sim.NewProximityGraphBuilder(cfg.Network),
		trails:    sim.NewTrailField(cfg.Trails, rng),
		emitter:   sim.NewEmitterPool(cfg.Emitter, rng),
		stars:     sim.NewStarfield(cfg.Starfield, rng),
		buffers:   sim.NewFrameBuffers(cfg),
		collector: telemetry.NewCollector(cfg.Telemetry.StatsWindow, dt),
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		output:    output,
		logStats:  logStats,
		dt:        dt,
	}
	e.scheduleBurst()
	return e
}

// Tick advances the simulation by dt seconds. The whole step runs on the
// caller's goroutine; nothing here is concurrent.
func (e *Engine) Tick(in Input, dt float32) {
	e.perf.StartTick()
	e.now += float64(dt)

	// The pointer ray is sampled once and reused by every hit test this
	// tick. ScreenRay rejects NaN input, which is how a missing pointer
	// disables interaction.
	ray, rayOK := e.cam.ScreenRay(in.PointerX, in.PointerY)

	e.perf.StartPhase(telemetry.PhaseNodes)
	e.nodes.Step(e.now, dt, ray, rayOK)

	e.perf.StartPhase(telemetry.PhaseEdges)
	e.edges.Build(e.now, e.nodes.Positions(), e.nodes.Colors(), e.nodes.Opacities(), ray, rayOK, e.buffers.NetworkLines)

	e.perf.StartPhase(telemetry.PhaseTrails)
	e.trails.Step()

	e.perf.StartPhase(telemetry.PhaseEmitter)
	e.updateBursts()
	e.emitter.Step(e.now, dt)

	e.perf.StartPhase(telemetry.PhaseStarfield)
	e.stars.Step(e.now, dt)

	e.perf.StartPhase(telemetry.PhaseBuffers)
	e.nodes.WritePoints(e.buffers.NetworkPoints)
	e.trails.WriteLines(e.buffers.TrailLines)
	e.emitter.WritePoints(e.buffers.EmitterPoints)
	e.stars.WritePoints(e.buffers.StarPoints)

	e.perf.StartPhase(telemetry.PhaseTelemetry)
	e.recordTelemetry()

	e.tick++
	if e.collector.ShouldFlush(e.tick) {
		e.flushWindow()
	}
	e.perf.EndTick()
}

// updateBursts starts ambient emission bursts between random node pairs
// on an exponentially distributed schedule.
func (e *Engine) updateBursts() {
	if e.now < e.nextBurstAt {
		return
	}
	e.scheduleBurst()

	n := e.nodes.Count()
	if n < 2 {
		return
	}
	i := e.rng.Intn(n)
	j := e.rng.Intn(n - 1)
	if j >= i {
		j++
	}
	pos := e.nodes.Positions()
	if e.emitter.Burst(pos[i], pos[j], e.now, e.cfg.Emitter.BurstDuration) {
		e.collector.RecordBurst()
	}
}

func (e *Engine) scheduleBurst() {
	mean := e.cfg.Emitter.BurstIntervalMean
	if mean <= 0 {
		e.nextBurstAt = e.now + 1e18
		return
	}
	e.nextBurstAt = e.now + e.rng.ExpFloat64()*mean
}

// recordTelemetry feeds this tick's events and load figures into the
// collector. Per-tick counters reset on every Step/Build, so they are
// recorded directly.
func (e *Engine) recordTelemetry() {
	for i := 0; i < e.nodes.Hits(); i++ {
		e.collector.RecordHit()
	}
	for i := 0; i < e.nodes.Respawns(); i++ {
		e.collector.RecordRespawn()
	}
	for i := 0; i < e.edges.Breaks(); i++ {
		e.collector.RecordBreak()
	}
	for i := 0; i < e.edges.Heals(); i++ {
		e.collector.RecordHeal()
	}
	e.collector.RecordEmitted(e.emitter.Emitted())
	e.collector.Sample(e.buffers.NetworkLines.ActiveVertexCount, e.emitter.Live(), e.edges.BrokenCount())
}

// flushWindow emits windowed stats to the log and CSV output.
func (e *Engine) flushWindow() {
	stats := e.collector.Flush(e.tick)
	perfStats := e.perf.Stats()

	if e.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}
	if err := e.output.WriteTelemetry(stats); err != nil {
		logWriteError("telemetry", err)
	}
	if err := e.output.WritePerf(perfStats, e.tick); err != nil {
		logWriteError("perf", err)
	}
}

// ApplyTuning pushes edited non-structural config values into the
// running simulators. Structural values (node count, pool capacity)
// need a fresh engine.
func (e *Engine) ApplyTuning() {
	e.nodes.SetConfig(e.cfg.Network)
	e.edges.SetConfig(e.cfg.Network)
	e.emitter.SetConfig(e.cfg.Emitter)
}

// Burst starts a manual emission burst along the given path. It reports
// false when every event slot is busy.
func (e *Engine) Burst(start, end geom.Vec3) bool {
	if !e.emitter.Burst(start, end, e.now, e.cfg.Emitter.BurstDuration) {
		return false
	}
	e.collector.RecordBurst()
	return true
}

// RecordFrame forwards frame timing from the render loop.
func (e *Engine) RecordFrame() {
	e.perf.RecordFrame()
}

// Buffers returns the render buffers filled by the last Tick. The
// renderer must treat them as read-only and honor the active prefixes.
func (e *Engine) Buffers() *sim.FrameBuffers {
	return e.buffers
}

// Camera returns the projection rig used for pointer rays.
func (e *Engine) Camera() *camera.Camera {
	return e.cam
}

// SetAspect updates the camera aspect after a window resize.
func (e *Engine) SetAspect(aspect float32) {
	e.cam.SetAspect(aspect)
}

// Now returns the accumulated simulation time in seconds.
func (e *Engine) Now() float64 {
	return e.now
}

// TickCount returns the number of completed ticks.
func (e *Engine) TickCount() int32 {
	return e.tick
}

// DT returns the nominal fixed timestep in seconds.
func (e *Engine) DT() float32 {
	return e.dt
}
