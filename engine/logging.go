package engine

import "log/slog"

// logWriteError reports a telemetry output failure without interrupting
// the animation loop.
func logWriteError(what string, err error) {
	if err == nil {
		return
	}
	slog.Error("output write failed", "file", what, "err", err)
}

// LogWorldState logs a one-line summary of the current simulation state.
func (e *Engine) LogWorldState() {
	slog.Info("world",
		"tick", e.tick,
		"sim_time", e.now,
		"hits_tick", e.nodes.Hits(),
		"respawns_tick", e.nodes.Respawns(),
		"broken_edges", e.edges.BrokenCount(),
		"edge_vertices", e.buffers.NetworkLines.ActiveVertexCount,
		"live_particles", e.emitter.Live(),
		"active_events", e.emitter.ActiveEvents(e.now),
	)
}
