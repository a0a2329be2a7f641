package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/adub3/Portfolio-Website/config"
)

func testStarfieldConfig() config.StarfieldConfig {
	return config.StarfieldConfig{
		Count:        64,
		RadiusMin:    14,
		RadiusMax:    20,
		RotateSpeed:  0.01,
		TwinkleSpeed: 0.4,
		TwinkleScale: 0.5,
		BaseOpacity:  0.6,
		SizeMin:      0.02,
		SizeMax:      0.05,
		Color:        config.RGB{R: 1, G: 1, B: 1},
	}
}

func TestStarfieldPlacementOnShell(t *testing.T) {
	cfg := testStarfieldConfig()
	s := NewStarfield(cfg, rand.New(rand.NewSource(7)))

	for i, p := range s.base {
		r := math.Sqrt(float64(p.X*p.X + p.Y*p.Y + p.Z*p.Z))
		if r < float64(cfg.RadiusMin)-1e-3 || r > float64(cfg.RadiusMax)+1e-3 {
			t.Errorf("star %d radius %f outside shell [%f, %f]", i, r, cfg.RadiusMin, cfg.RadiusMax)
		}
	}
}

func TestStarfieldRotationPreservesRadius(t *testing.T) {
	cfg := testStarfieldConfig()
	s := NewStarfield(cfg, rand.New(rand.NewSource(7)))
	buf := NewPointBuffers(cfg.Count)

	for tick := 0; tick < 400; tick++ {
		s.Step(float64(tick)/60, 1.0/60.0)
	}
	s.WritePoints(buf)

	if buf.Active != cfg.Count {
		t.Fatalf("expected %d active stars, got %d", cfg.Count, buf.Active)
	}
	for i := 0; i < buf.Active; i++ {
		x := buf.Positions[i*3]
		y := buf.Positions[i*3+1]
		z := buf.Positions[i*3+2]
		got := math.Sqrt(float64(x*x + y*y + z*z))
		want := math.Sqrt(float64(s.base[i].LengthSq()))
		if math.Abs(got-want) > 1e-2 {
			t.Errorf("star %d radius drifted under rotation: got %f want %f", i, got, want)
		}
		if y != s.base[i].Y {
			t.Errorf("star %d Y changed under Y-axis rotation", i)
		}
	}
}

func TestStarfieldTwinkleStaysInRange(t *testing.T) {
	cfg := testStarfieldConfig()
	s := NewStarfield(cfg, rand.New(rand.NewSource(7)))
	buf := NewPointBuffers(cfg.Count)

	for tick := 0; tick < 600; tick++ {
		s.Step(float64(tick)/60, 1.0/60.0)
		s.WritePoints(buf)
		for i := 0; i < buf.Active; i++ {
			op := buf.Opacities[i]
			lo := cfg.BaseOpacity * (1 - cfg.TwinkleScale)
			if op < lo-1e-4 || op > cfg.BaseOpacity+1e-4 {
				t.Fatalf("tick %d star %d opacity %f outside [%f, %f]", tick, i, op, lo, cfg.BaseOpacity)
			}
		}
	}
}

func TestStarfieldTwinkleVariesOverTime(t *testing.T) {
	cfg := testStarfieldConfig()
	s := NewStarfield(cfg, rand.New(rand.NewSource(7)))
	buf := NewPointBuffers(cfg.Count)

	s.Step(0, 0)
	s.WritePoints(buf)
	first := buf.Opacities[0]

	s.Step(10, 0)
	s.WritePoints(buf)
	if buf.Opacities[0] == first {
		t.Error("twinkle opacity did not change over 10 seconds")
	}
}
