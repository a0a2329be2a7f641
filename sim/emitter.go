package sim

import (
	"math"
	"math/rand"

	"github.com/adub3/Portfolio-Website/config"
	"github.com/adub3/Portfolio-Website/geom"
)

// PooledParticle is one slot of the fixed emitter pool. Age runs [0, 1];
// age >= 1 means inactive. Particles are never deallocated, only
// overwritten when the write cursor wraps.
type PooledParticle struct {
	Pos      geom.Vec3
	Vel      geom.Vec3
	Age      float32
	Lifetime float32
	Size     float32
}

// EmissionEvent is one burst along a linear path. A slot is free once its
// elapsed progress reaches 1.
type EmissionEvent struct {
	Start     geom.Vec3
	End       geom.Vec3
	StartTime float64
	Duration  float64
	active    bool
}

// progress returns elapsed progress in [0, inf).
func (e *EmissionEvent) progress(now float64) float64 {
	if e.Duration <= 0 {
		return 1
	}
	return (now - e.StartTime) / e.Duration
}

// EmitterPool is a fixed-capacity particle pool driven by emission
// events. A single monotonically advancing cursor writes new particles;
// the oldest slot is silently overwritten when a burst saturates the
// pool, an accepted trade-off under bursty emission.
type EmitterPool struct {
	cfg config.EmitterConfig
	rng *rand.Rand

	particles []PooledParticle
	cursor    int

	events []EmissionEvent

	emitted int
}

// NewEmitterPool creates the pool with every slot inactive.
func NewEmitterPool(cfg config.EmitterConfig, rng *rand.Rand) *EmitterPool {
	p := &EmitterPool{
		cfg:       cfg,
		rng:       rng,
		particles: make([]PooledParticle, cfg.Capacity),
		events:    make([]EmissionEvent, cfg.EventSlots),
	}
	for i := range p.particles {
		p.particles[i].Age = 1
	}
	return p
}

// SetConfig replaces tunable parameters. Capacity and event slots are
// fixed at construction and ignored here.
func (p *EmitterPool) SetConfig(cfg config.EmitterConfig) {
	cfg.Capacity = p.cfg.Capacity
	cfg.EventSlots = p.cfg.EventSlots
	p.cfg = cfg
}

// Burst starts an emission event along the path from start to end. It
// reports false when every event slot is busy.
func (p *EmitterPool) Burst(start, end geom.Vec3, now float64, duration float64) bool {
	for i := range p.events {
		e := &p.events[i]
		if e.active && e.progress(now) < 1 {
			continue
		}
		*e = EmissionEvent{
			Start:     start,
			End:       end,
			StartTime: now,
			Duration:  duration,
			active:    true,
		}
		return true
	}
	return false
}

// ActiveEvents returns the number of bursts still emitting.
func (p *EmitterPool) ActiveEvents(now float64) int {
	n := 0
	for i := range p.events {
		if p.events[i].active && p.events[i].progress(now) < 1 {
			n++
		}
	}
	return n
}

// Step emits from active events and advances every live particle.
func (p *EmitterPool) Step(now float64, dt float32) {
	p.emitted = 0

	for i := range p.events {
		e := &p.events[i]
		if !e.active {
			continue
		}
		prog := e.progress(now)
		if prog >= 1 {
			e.active = false
			continue
		}
		at := geom.Lerp(e.Start, e.End, float32(prog))
		for k := 0; k < p.cfg.EmissionRate; k++ {
			p.emit(at)
		}
	}

	for i := range p.particles {
		pt := &p.particles[i]
		if pt.Age >= 1 {
			continue
		}
		if pt.Lifetime > 0 {
			pt.Age += dt / pt.Lifetime
		} else {
			pt.Age = 1
		}
		pt.Pos = pt.Pos.Add(pt.Vel.Scale(dt))
	}
}

// emit writes one particle at the cursor and advances it mod capacity.
func (p *EmitterPool) emit(at geom.Vec3) {
	p.particles[p.cursor] = PooledParticle{
		Pos:      at.Add(p.randomInSphere(p.cfg.Jitter)),
		Vel:      p.randomInSphere(p.cfg.Drift),
		Age:      0,
		Lifetime: p.cfg.LifetimeMin + p.rng.Float32()*(p.cfg.LifetimeMax-p.cfg.LifetimeMin),
		Size:     p.cfg.SizeMin + p.rng.Float32()*(p.cfg.SizeMax-p.cfg.SizeMin),
	}
	p.cursor = (p.cursor + 1) % len(p.particles)
	p.emitted++
}

// randomInSphere samples a uniformly random direction scaled by up to r.
func (p *EmitterPool) randomInSphere(r float32) geom.Vec3 {
	theta := p.rng.Float64() * 2 * math.Pi
	cosPhi := p.rng.Float64()*2 - 1
	sinPhi := math.Sqrt(1 - cosPhi*cosPhi)
	mag := p.rng.Float32() * r
	return geom.Vec3{
		X: float32(math.Cos(theta)*sinPhi) * mag,
		Y: float32(math.Sin(theta)*sinPhi) * mag,
		Z: float32(cosPhi) * mag,
	}
}

// Particles exposes the raw pool, inactive slots included.
func (p *EmitterPool) Particles() []PooledParticle { return p.particles }

// Emitted returns the number of particles written during the last Step.
func (p *EmitterPool) Emitted() int { return p.emitted }

// Live returns the number of particles with age < 1.
func (p *EmitterPool) Live() int {
	n := 0
	for i := range p.particles {
		if p.particles[i].Age < 1 {
			n++
		}
	}
	return n
}

// WritePoints compacts live particles into the render buffer prefix.
// Inactive slots are simply excluded; no removal bookkeeping happens in
// the pool itself.
func (p *EmitterPool) WritePoints(buf *PointBuffers) {
	c := p.cfg.Color
	n := 0
	for i := range p.particles {
		pt := &p.particles[i]
		if pt.Age >= 1 {
			continue
		}
		opacity := 1 - pt.Age
		buf.Set(n, pt.Pos.X, pt.Pos.Y, pt.Pos.Z, c.R, c.G, c.B, opacity, pt.Size)
		n++
	}
	buf.Active = n
}
