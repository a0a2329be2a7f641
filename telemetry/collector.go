// Package telemetry aggregates per-tick simulation events into windowed
// statistics and writes them to structured CSV output.
package telemetry

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	windowStartTick int32

	// Event counters for current window
	hits     int
	respawns int
	breaks   int
	heals    int
	bursts   int
	emitted  int

	// Per-tick samples for current window
	edgeVertices  []float64
	liveParticles []float64
	brokenEdges   []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		edgeVertices:        make([]float64, 0, ticksPerWindow),
		liveParticles:       make([]float64, 0, ticksPerWindow),
		brokenEdges:         make([]float64, 0, ticksPerWindow),
	}
}

// RecordHit records a node struck by the pointer ray.
func (c *Collector) RecordHit() {
	c.hits++
}

// RecordRespawn records a node respawn.
func (c *Collector) RecordRespawn() {
	c.respawns++
}

// RecordBreak records an edge cut by the pointer ray.
func (c *Collector) RecordBreak() {
	c.breaks++
}

// RecordHeal records a broken edge coming off cooldown.
func (c *Collector) RecordHeal() {
	c.heals++
}

// RecordBurst records an emission burst being started.
func (c *Collector) RecordBurst() {
	c.bursts++
}

// RecordEmitted records particles written into the pool this tick.
func (c *Collector) RecordEmitted(n int) {
	c.emitted += n
}

// Sample records per-tick load figures for distribution stats at flush.
func (c *Collector) Sample(edgeVertices, liveParticles, brokenEdges int) {
	c.edgeVertices = append(c.edgeVertices, float64(edgeVertices))
	c.liveParticles = append(c.liveParticles, float64(liveParticles))
	c.brokenEdges = append(c.brokenEdges, float64(brokenEdges))
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32) WindowStats {
	edgeMean, edgeP50, edgeP90, edgeMax := computeSeriesStats(c.edgeVertices)
	partMean, partP50, partP90, partMax := computeSeriesStats(c.liveParticles)
	brokenMean, _, _, brokenMax := computeSeriesStats(c.brokenEdges)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		Hits:     c.hits,
		Respawns: c.respawns,
		Breaks:   c.breaks,
		Heals:    c.heals,
		Bursts:   c.bursts,
		Emitted:  c.emitted,

		EdgeVerticesMean: edgeMean,
		EdgeVerticesP50:  edgeP50,
		EdgeVerticesP90:  edgeP90,
		EdgeVerticesMax:  edgeMax,

		LiveParticlesMean: partMean,
		LiveParticlesP50:  partP50,
		LiveParticlesP90:  partP90,
		LiveParticlesMax:  partMax,

		BrokenEdgesMean: brokenMean,
		BrokenEdgesMax:  brokenMax,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.hits = 0
	c.respawns = 0
	c.breaks = 0
	c.heals = 0
	c.bursts = 0
	c.emitted = 0
	c.edgeVertices = c.edgeVertices[:0]
	c.liveParticles = c.liveParticles[:0]
	c.brokenEdges = c.brokenEdges[:0]

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
