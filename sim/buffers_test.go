package sim

import (
	"testing"

	"github.com/adub3/Portfolio-Website/config"
)

func TestPointBuffersSetRoundtrip(t *testing.T) {
	b := NewPointBuffers(4)
	b.Set(2, 1, 2, 3, 0.5, 0.6, 0.7, 0.8, 0.05)

	if b.Positions[6] != 1 || b.Positions[7] != 2 || b.Positions[8] != 3 {
		t.Errorf("position mismatch: %v", b.Positions[6:9])
	}
	if b.Colors[6] != 0.5 || b.Colors[7] != 0.6 || b.Colors[8] != 0.7 {
		t.Errorf("color mismatch: %v", b.Colors[6:9])
	}
	if b.Opacities[2] != 0.8 || b.Sizes[2] != 0.05 {
		t.Errorf("opacity/size mismatch: %f %f", b.Opacities[2], b.Sizes[2])
	}
}

func TestLineBuffersAppendAndReset(t *testing.T) {
	b := NewLineBuffers(2)
	white := [3]float32{1, 1, 1}

	b.Append(0, 0, 0, 1, 0, 0, white, white, 1, 0.5)
	if b.ActiveVertexCount != 2 {
		t.Fatalf("expected 2 active vertices, got %d", b.ActiveVertexCount)
	}
	if b.Positions[3] != 1 || b.Opacities[1] != 0.5 {
		t.Errorf("second vertex not written: pos %f op %f", b.Positions[3], b.Opacities[1])
	}

	// Reset only rewinds the prefix; stale data stays in place.
	b.Reset()
	if b.ActiveVertexCount != 0 {
		t.Errorf("reset should zero the active count, got %d", b.ActiveVertexCount)
	}
	if b.Positions[3] != 1 {
		t.Error("reset must not clear buffer contents")
	}
}

func TestLineBuffersOverflowDropped(t *testing.T) {
	b := NewLineBuffers(2)
	white := [3]float32{1, 1, 1}

	for i := 0; i < 5; i++ {
		b.Append(float32(i), 0, 0, float32(i), 1, 0, white, white, 1, 1)
	}
	if b.ActiveVertexCount != 4 {
		t.Errorf("appends past capacity must be dropped, got %d vertices", b.ActiveVertexCount)
	}
	if b.Positions[6] != 1 {
		t.Error("overflowing append overwrote earlier segment")
	}
}

func TestFrameBuffersWorstCaseCapacities(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}

	fb := NewFrameBuffers(cfg)
	if got := fb.NetworkPoints.Capacity(); got != cfg.Network.NodeCount {
		t.Errorf("network points capacity: got %d want %d", got, cfg.Network.NodeCount)
	}
	n := cfg.Network.NodeCount
	if got := fb.NetworkLines.SegmentCapacity(); got != n*(n-1) {
		t.Errorf("network lines capacity: got %d want %d", got, n*(n-1))
	}
	wantTrail := cfg.Trails.Count * (cfg.Trails.TrailLength - 1)
	if got := fb.TrailLines.SegmentCapacity(); got != wantTrail {
		t.Errorf("trail lines capacity: got %d want %d", got, wantTrail)
	}
	if got := fb.EmitterPoints.Capacity(); got != cfg.Emitter.Capacity {
		t.Errorf("emitter points capacity: got %d want %d", got, cfg.Emitter.Capacity)
	}
	if got := fb.StarPoints.Capacity(); got != cfg.Starfield.Count {
		t.Errorf("star points capacity: got %d want %d", got, cfg.Starfield.Count)
	}
}
