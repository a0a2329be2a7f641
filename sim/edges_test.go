package sim

import (
	"math/rand"
	"testing"

	"github.com/adub3/Portfolio-Website/config"
	"github.com/adub3/Portfolio-Website/geom"
)

// pairScene builds builder inputs for hand-placed nodes, all fully opaque
// and white unless adjusted by the caller.
func pairScene(positions ...geom.Vec3) ([]geom.Vec3, [][3]float32, []float32) {
	colors := make([][3]float32, len(positions))
	opacities := make([]float32, len(positions))
	for i := range positions {
		colors[i] = [3]float32{1, 1, 1}
		opacities[i] = 1
	}
	return positions, colors, opacities
}

func testGraphConfig(n int) config.NetworkConfig {
	cfg := testNetworkConfig()
	cfg.NodeCount = n
	return cfg
}

// downRay looks straight down -Z through (x, y).
func downRay(x, y float32) geom.Ray {
	return geom.Ray{Origin: geom.Vec3{X: x, Y: y, Z: 10}, Dir: geom.Vec3{Z: -1}}
}

func TestFarPairEmitsNothing(t *testing.T) {
	cfg := testGraphConfig(2)
	cfg.MaxConnectionDistance = 4
	b := NewProximityGraphBuilder(cfg)
	out := NewLineBuffers(cfg.NodeCount * (cfg.NodeCount - 1))

	pos, col, op := pairScene(geom.Vec3{}, geom.Vec3{X: 10, Y: 10, Z: 10})
	b.Build(0, pos, col, op, geom.Ray{}, false, out)

	if out.ActiveVertexCount != 0 {
		t.Errorf("expected zero vertices for out-of-range pair, got %d", out.ActiveVertexCount)
	}
}

func TestClosePairEmitsOneSegment(t *testing.T) {
	cfg := testGraphConfig(2)
	b := NewProximityGraphBuilder(cfg)
	out := NewLineBuffers(cfg.NodeCount * (cfg.NodeCount - 1))

	pos, col, op := pairScene(geom.Vec3{X: -1}, geom.Vec3{X: 1})
	b.Build(0, pos, col, op, geom.Ray{}, false, out)

	if out.ActiveVertexCount != 2 {
		t.Fatalf("expected 2 vertices, got %d", out.ActiveVertexCount)
	}

	// Per-endpoint alpha: (1 - dist/maxDist) * endpoint opacity
	want := 1 - 2.0/cfg.MaxConnectionDistance
	if absf(out.Opacities[0]-want) > 1e-4 || absf(out.Opacities[1]-want) > 1e-4 {
		t.Errorf("expected vertex alpha %f, got %f / %f", want, out.Opacities[0], out.Opacities[1])
	}
}

func TestInvisibleEndpointCullsEdge(t *testing.T) {
	cfg := testGraphConfig(2)
	b := NewProximityGraphBuilder(cfg)
	out := NewLineBuffers(cfg.NodeCount * (cfg.NodeCount - 1))

	pos, col, op := pairScene(geom.Vec3{X: -1}, geom.Vec3{X: 1})
	op[1] = 0.005 // below the visibility floor
	b.Build(0, pos, col, op, geom.Ray{}, false, out)

	if out.ActiveVertexCount != 0 {
		t.Errorf("expected no edge with an invisible endpoint, got %d vertices", out.ActiveVertexCount)
	}
}

func TestCutWindowRejectsEndpointHits(t *testing.T) {
	cfg := testGraphConfig(2)
	b := NewProximityGraphBuilder(cfg)
	out := NewLineBuffers(cfg.NodeCount * (cfg.NodeCount - 1))

	pos, col, op := pairScene(geom.Vec3{X: -1}, geom.Vec3{X: 1})

	// Crossing at t=0.05: outside the open (0.1, 0.9) window, no break.
	b.Build(0, pos, col, op, downRay(-0.9, 0), true, out)
	if b.BrokenCount() != 0 {
		t.Errorf("cut at t=0.05 must not break the edge")
	}
	if out.ActiveVertexCount != 2 {
		t.Errorf("edge should render whole, got %d vertices", out.ActiveVertexCount)
	}

	// Crossing at t=0.5 breaks immediately.
	b.Build(0.01, pos, col, op, downRay(0, 0), true, out)
	if b.BrokenCount() != 1 || b.Breaks() != 1 {
		t.Fatalf("cut at t=0.5 must break: broken=%d breaks=%d", b.BrokenCount(), b.Breaks())
	}
	// A breaking edge renders as two retreating sub-segments.
	if out.ActiveVertexCount != 4 {
		t.Errorf("expected 4 vertices for breaking edge, got %d", out.ActiveVertexCount)
	}
}

func TestBreakSeverHealCycle(t *testing.T) {
	cfg := testGraphConfig(2)
	cfg.BreakDuration = 0.4
	cfg.CooldownDuration = 2.0
	b := NewProximityGraphBuilder(cfg)
	out := NewLineBuffers(cfg.NodeCount * (cfg.NodeCount - 1))

	pos, col, op := pairScene(geom.Vec3{X: -1}, geom.Vec3{X: 1})

	b.Build(0, pos, col, op, downRay(0, 0), true, out)
	if b.BrokenCount() != 1 {
		t.Fatal("expected break at t=0.5")
	}

	// Past breakDuration but inside cooldown: fully severed, invisible,
	// record still present.
	b.Build(1.0, pos, col, op, geom.Ray{}, false, out)
	if out.ActiveVertexCount != 0 {
		t.Errorf("severed edge must emit nothing, got %d vertices", out.ActiveVertexCount)
	}
	if b.BrokenCount() != 1 {
		t.Errorf("broken record must persist through cooldown")
	}

	// Past cooldown: the record is dropped and the edge renders again.
	b.Build(2.5, pos, col, op, geom.Ray{}, false, out)
	if b.BrokenCount() != 0 || b.Heals() != 1 {
		t.Errorf("expected heal: broken=%d heals=%d", b.BrokenCount(), b.Heals())
	}
	if out.ActiveVertexCount != 2 {
		t.Errorf("healed edge should render whole, got %d vertices", out.ActiveVertexCount)
	}
}

func TestBrokenRecordExpiresForOutOfRangePair(t *testing.T) {
	cfg := testGraphConfig(2)
	b := NewProximityGraphBuilder(cfg)
	out := NewLineBuffers(cfg.NodeCount * (cfg.NodeCount - 1))

	pos, col, op := pairScene(geom.Vec3{X: -1}, geom.Vec3{X: 1})
	b.Build(0, pos, col, op, downRay(0, 0), true, out)
	if b.BrokenCount() != 1 {
		t.Fatal("expected break")
	}

	// The pair drifts out of range; the record must still expire.
	far, fcol, fop := pairScene(geom.Vec3{X: -10}, geom.Vec3{X: 10})
	b.Build(cfg.CooldownDuration+0.1, far, fcol, fop, geom.Ray{}, false, out)
	if b.BrokenCount() != 0 {
		t.Errorf("broken record must not outlive its cooldown, got %d", b.BrokenCount())
	}
}

func TestActiveVertexCountBounds(t *testing.T) {
	const n = 12
	cfg := testGraphConfig(n)
	b := NewProximityGraphBuilder(cfg)
	out := NewLineBuffers(n * (n - 1))

	rng := rand.New(rand.NewSource(19))
	positions := make([]geom.Vec3, n)
	for i := range positions {
		positions[i] = geom.Vec3{
			X: rng.Float32()*4 - 2,
			Y: rng.Float32()*4 - 2,
			Z: rng.Float32()*4 - 2,
		}
	}
	pos, col, op := pairScene(positions...)

	now := 0.0
	for tick := 0; tick < 50; tick++ {
		ray := downRay(rng.Float32()*4-2, rng.Float32()*4-2)
		b.Build(now, pos, col, op, ray, true, out)

		if out.ActiveVertexCount%2 != 0 {
			t.Fatalf("activeVertexCount must be even, got %d", out.ActiveVertexCount)
		}
		if out.ActiveVertexCount > 2*n*(n-1) {
			t.Fatalf("activeVertexCount %d exceeds 2*N*(N-1)=%d", out.ActiveVertexCount, 2*n*(n-1))
		}
		now += 1.0 / 60.0
	}
}

func TestBreakRatioLocatesBreakPoint(t *testing.T) {
	cfg := testGraphConfig(2)
	b := NewProximityGraphBuilder(cfg)
	out := NewLineBuffers(cfg.NodeCount * (cfg.NodeCount - 1))

	pos, col, op := pairScene(geom.Vec3{X: -1}, geom.Vec3{X: 1})
	b.Build(0, pos, col, op, downRay(0.5, 0), true, out)

	bs, ok := b.broken[0*cfg.NodeCount+1]
	if !ok {
		t.Fatal("expected broken record")
	}
	if absf(bs.ratio-0.75) > 1e-3 {
		t.Errorf("expected break ratio 0.75, got %f", bs.ratio)
	}
}
