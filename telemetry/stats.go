package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Events during window
	Hits     int `csv:"hits"`
	Respawns int `csv:"respawns"`
	Breaks   int `csv:"edge_breaks"`
	Heals    int `csv:"edge_heals"`
	Bursts   int `csv:"bursts"`
	Emitted  int `csv:"particles_emitted"`

	// Per-tick render load distributions
	EdgeVerticesMean float64 `csv:"edge_vertices_mean"`
	EdgeVerticesP50  float64 `csv:"edge_vertices_p50"`
	EdgeVerticesP90  float64 `csv:"edge_vertices_p90"`
	EdgeVerticesMax  float64 `csv:"edge_vertices_max"`

	LiveParticlesMean float64 `csv:"live_particles_mean"`
	LiveParticlesP50  float64 `csv:"live_particles_p50"`
	LiveParticlesP90  float64 `csv:"live_particles_p90"`
	LiveParticlesMax  float64 `csv:"live_particles_max"`

	BrokenEdgesMean float64 `csv:"broken_edges_mean"`
	BrokenEdgesMax  float64 `csv:"broken_edges_max"`
}

// computeSeriesStats calculates mean, median, p90 and max from per-tick
// samples. Returns zeros for an empty series.
func computeSeriesStats(values []float64) (mean, p50, p90, max float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p50 = stat.Quantile(0.50, stat.LinInterp, sorted, nil)
	p90 = stat.Quantile(0.90, stat.LinInterp, sorted, nil)
	max = sorted[n-1]

	return mean, p50, p90, max
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("hits", s.Hits),
		slog.Int("respawns", s.Respawns),
		slog.Int("edge_breaks", s.Breaks),
		slog.Int("edge_heals", s.Heals),
		slog.Int("bursts", s.Bursts),
		slog.Int("particles_emitted", s.Emitted),
		slog.Float64("edge_vertices_mean", s.EdgeVerticesMean),
		slog.Float64("edge_vertices_p50", s.EdgeVerticesP50),
		slog.Float64("edge_vertices_p90", s.EdgeVerticesP90),
		slog.Float64("edge_vertices_max", s.EdgeVerticesMax),
		slog.Float64("live_particles_mean", s.LiveParticlesMean),
		slog.Float64("live_particles_p50", s.LiveParticlesP50),
		slog.Float64("live_particles_p90", s.LiveParticlesP90),
		slog.Float64("live_particles_max", s.LiveParticlesMax),
		slog.Float64("broken_edges_mean", s.BrokenEdgesMean),
		slog.Float64("broken_edges_max", s.BrokenEdgesMax),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"hits", s.Hits,
		"respawns", s.Respawns,
		"edge_breaks", s.Breaks,
		"edge_heals", s.Heals,
		"bursts", s.Bursts,
		"particles_emitted", s.Emitted,
		"edge_vertices_mean", s.EdgeVerticesMean,
		"edge_vertices_p90", s.EdgeVerticesP90,
		"live_particles_mean", s.LiveParticlesMean,
		"live_particles_p90", s.LiveParticlesP90,
		"broken_edges_mean", s.BrokenEdgesMean,
	)
}
