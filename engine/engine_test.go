package engine

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adub3/Portfolio-Website/config"
	"github.com/adub3/Portfolio-Website/geom"
	"github.com/adub3/Portfolio-Website/telemetry"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func noPointer() Input {
	nan := float32(math.NaN())
	return Input{PointerX: nan, PointerY: nan}
}

func TestTickFillsAllBuffers(t *testing.T) {
	cfg := testConfig(t)
	e := New(cfg, 42, nil, false)

	e.Tick(noPointer(), e.DT())

	fb := e.Buffers()
	if fb.NetworkPoints.Active != cfg.Network.NodeCount {
		t.Errorf("network points active = %d, want %d", fb.NetworkPoints.Active, cfg.Network.NodeCount)
	}
	if got, want := fb.TrailLines.ActiveVertexCount, 2*cfg.Derived.TrailSegments; got != want {
		t.Errorf("trail vertices = %d, want %d", got, want)
	}
	if fb.StarPoints.Active != cfg.Starfield.Count {
		t.Errorf("star points active = %d, want %d", fb.StarPoints.Active, cfg.Starfield.Count)
	}
	if fb.NetworkLines.ActiveVertexCount%2 != 0 {
		t.Errorf("edge vertex count must be even, got %d", fb.NetworkLines.ActiveVertexCount)
	}
}

func TestDeterministicReplay(t *testing.T) {
	cfg := testConfig(t)
	a := New(cfg, 7, nil, false)
	b := New(cfg, 7, nil, false)

	for tick := 0; tick < 300; tick++ {
		in := noPointer()
		if tick%3 == 0 {
			in = Input{PointerX: 0.2, PointerY: -0.1}
		}
		a.Tick(in, a.DT())
		b.Tick(in, b.DT())

		if a.nodes.Hits() != b.nodes.Hits() {
			t.Fatalf("hit counts diverged at tick %d: %d vs %d", tick, a.nodes.Hits(), b.nodes.Hits())
		}
	}

	fa, fb := a.Buffers(), b.Buffers()
	for i := 0; i < fa.NetworkPoints.Active*3; i++ {
		if fa.NetworkPoints.Positions[i] != fb.NetworkPoints.Positions[i] {
			t.Fatalf("node positions diverged at %d", i)
		}
	}
	for i := 0; i < fa.TrailLines.ActiveVertexCount*3; i++ {
		if fa.TrailLines.Positions[i] != fb.TrailLines.Positions[i] {
			t.Fatalf("trail positions diverged at %d", i)
		}
	}
}

func TestNaNPointerDisablesHitTesting(t *testing.T) {
	cfg := testConfig(t)
	e := New(cfg, 3, nil, false)

	for tick := 0; tick < 1200; tick++ {
		e.Tick(noPointer(), e.DT())
		if e.nodes.Hits() != 0 {
			t.Fatalf("tick %d: no pointer should mean no hits, got %d", tick, e.nodes.Hits())
		}
		if e.edges.Breaks() != 0 || e.edges.BrokenCount() != 0 {
			t.Fatalf("tick %d: no pointer should mean no edge breaks", tick)
		}
	}
}

func TestManualBurstEmitsParticles(t *testing.T) {
	cfg := testConfig(t)
	cfg.Emitter.BurstIntervalMean = 0 // disable ambient bursts
	e := New(cfg, 11, nil, false)

	if !e.Burst(geom.Vec3{X: -1}, geom.Vec3{X: 1}) {
		t.Fatal("burst should find a free event slot")
	}
	e.Tick(noPointer(), e.DT())

	if e.Buffers().EmitterPoints.Active == 0 {
		t.Error("expected live particles after a burst tick")
	}
}

func TestAmbientBurstsFire(t *testing.T) {
	cfg := testConfig(t)
	cfg.Emitter.BurstIntervalMean = 0.05
	e := New(cfg, 13, nil, false)

	// 10 simulated seconds with a 50ms mean interval: bursts are
	// effectively certain to fire.
	for tick := 0; tick < 600; tick++ {
		e.Tick(noPointer(), e.DT())
	}
	if e.emitter.Live() == 0 && e.emitter.ActiveEvents(e.Now()) == 0 {
		t.Error("ambient bursts never fired")
	}
}

func TestWindowFlushWritesOutput(t *testing.T) {
	cfg := testConfig(t)
	cfg.Telemetry.StatsWindow = 0.1

	dir := t.TempDir()
	om, err := telemetry.NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	e := New(cfg, 5, om, false)
	for tick := 0; tick < 30; tick++ {
		e.Tick(noPointer(), e.DT())
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) < 3 {
		t.Errorf("expected header plus multiple windows, got %d lines", len(lines))
	}
}
