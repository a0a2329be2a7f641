package sim

import (
	"math"
	"math/rand"

	"github.com/adub3/Portfolio-Website/config"
	"github.com/adub3/Portfolio-Website/geom"
)

// Canonical Lorenz parameters.
const (
	lorenzSigma = 10.0
	lorenzRho   = 28.0
	lorenzBeta  = 8.0 / 3.0
)

// Trajectory is one independent Lorenz integrator with a rolling trail of
// its recent positions, newest first.
type Trajectory struct {
	pos geom.Vec3

	sigma, rho, beta float32
	dt               float32

	// trail and trailColors hold exactly trailLength samples from tick 0;
	// construction pre-fills them with the starting position so the first
	// frames don't collapse to the origin.
	trail       []geom.Vec3
	trailColors [][3]float32
}

// NewTrajectory creates an integrator at the given start position with a
// per-trajectory timestep.
func NewTrajectory(start geom.Vec3, dt float32, trailLength int) *Trajectory {
	t := &Trajectory{
		pos:         start,
		sigma:       lorenzSigma,
		rho:         lorenzRho,
		beta:        lorenzBeta,
		dt:          dt,
		trail:       make([]geom.Vec3, trailLength),
		trailColors: make([][3]float32, trailLength),
	}
	for i := range t.trail {
		t.trail[i] = start
	}
	return t
}

// Pos returns the current head position.
func (t *Trajectory) Pos() geom.Vec3 { return t.pos }

// Trail returns the newest-first sample window.
func (t *Trajectory) Trail() []geom.Vec3 { return t.trail }

// Step advances one forward-Euler step and rolls the trail window.
// Returns the step vector length, which encodes local speed.
func (t *Trajectory) Step(slow, fast config.RGB, refSpeed float32) float32 {
	x, y, z := t.pos.X, t.pos.Y, t.pos.Z

	dx := t.sigma * (y - x) * t.dt
	dy := (x*(t.rho-z) - y) * t.dt
	dz := (x*y - t.beta*z) * t.dt

	t.pos = geom.Vec3{X: x + dx, Y: y + dy, Z: z + dz}

	stepLen := float32(math.Sqrt(float64(dx*dx + dy*dy + dz*dz)))

	// Shift by one slot, newest at index 0.
	copy(t.trail[1:], t.trail)
	copy(t.trailColors[1:], t.trailColors)
	t.trail[0] = t.pos

	mix := float32(1)
	if refSpeed > 0 {
		mix = stepLen / refSpeed
		if mix > 1 {
			mix = 1
		}
	}
	t.trailColors[0] = [3]float32{
		geom.Lerpf(slow.R, fast.R, mix),
		geom.Lerpf(slow.G, fast.G, mix),
		geom.Lerpf(slow.B, fast.B, mix),
	}

	return stepLen
}

// TrailField runs a set of independent Lorenz trajectories and writes
// their fading trails as line segments.
type TrailField struct {
	cfg          config.TrailsConfig
	trajectories []*Trajectory

	// fade is the fixed per-index opacity curve, computed once. It is
	// monotonically decreasing along the tail and independent of speed.
	fade []float32
}

// NewTrailField creates the trajectory set with randomized start points
// and per-trajectory timesteps in a narrow band, so trajectories diverge
// visibly.
func NewTrailField(cfg config.TrailsConfig, rng *rand.Rand) *TrailField {
	f := &TrailField{
		cfg:          cfg,
		trajectories: make([]*Trajectory, cfg.Count),
		fade:         make([]float32, cfg.TrailLength),
	}

	for i := 0; i < cfg.Count; i++ {
		start := geom.Vec3{
			X: (rng.Float32()*2 - 1) * cfg.SpawnRadius,
			Y: (rng.Float32()*2 - 1) * cfg.SpawnRadius,
			Z: lorenzRho - 1 + (rng.Float32()*2-1)*cfg.SpawnRadius,
		}
		dt := cfg.DTBase + (rng.Float32()*2-1)*cfg.DTJitter
		tr := NewTrajectory(start, dt, cfg.TrailLength)
		for j := range tr.trailColors {
			tr.trailColors[j] = [3]float32{cfg.SlowColor.R, cfg.SlowColor.G, cfg.SlowColor.B}
		}
		f.trajectories[i] = tr
	}

	for i := range f.fade {
		age := float64(i) / float64(cfg.TrailLength)
		f.fade[i] = cfg.BaseOpacity * float32(math.Pow(1-age, float64(cfg.FadeExponent)))
	}

	return f
}

// Trajectories returns the underlying integrators.
func (f *TrailField) Trajectories() []*Trajectory { return f.trajectories }

// Step advances every trajectory by one attractor step.
func (f *TrailField) Step() {
	for _, t := range f.trajectories {
		t.Step(f.cfg.SlowColor, f.cfg.FastColor, f.cfg.ReferenceSpeed)
	}
}

// WriteLines emits each trail as consecutive-sample segments, scaled and
// offset out of the attractor's own coordinate frame. The segment count
// is fixed, so the whole buffer is valid every tick.
func (f *TrailField) WriteLines(buf *LineBuffers) {
	buf.Reset()
	off := geom.Vec3{X: f.cfg.Offset.X, Y: f.cfg.Offset.Y, Z: f.cfg.Offset.Z}

	for _, t := range f.trajectories {
		for i := 0; i+1 < len(t.trail); i++ {
			a := t.trail[i].Scale(f.cfg.Scale).Add(off)
			b := t.trail[i+1].Scale(f.cfg.Scale).Add(off)
			buf.Append(a.X, a.Y, a.Z, b.X, b.Y, b.Z,
				t.trailColors[i], t.trailColors[i+1], f.fade[i], f.fade[i+1])
		}
	}
}
