package sim

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/adub3/Portfolio-Website/components"
	"github.com/adub3/Portfolio-Website/config"
	"github.com/adub3/Portfolio-Website/geom"
)

// NodeSimulator advances the pointer-reactive node network. Node count is
// fixed at construction; nodes are never created or destroyed afterwards,
// only reset in place on respawn.
type NodeSimulator struct {
	world  *ecs.World
	mapper *ecs.Map3[components.Position, components.Velocity, components.NodeState]
	filter *ecs.Filter3[components.Position, components.Velocity, components.NodeState]

	rng *rand.Rand
	cfg config.NetworkConfig

	// Per-tick snapshot consumed by the graph builder and buffer writer.
	positions []geom.Vec3
	colors    [][3]float32
	opacities []float32

	hits     int
	respawns int
}

// NewNodeSimulator creates the node set with randomized positions and
// velocities from the injected RNG.
func NewNodeSimulator(cfg config.NetworkConfig, rng *rand.Rand) *NodeSimulator {
	world := ecs.NewWorld()

	s := &NodeSimulator{
		world:     world,
		mapper:    ecs.NewMap3[components.Position, components.Velocity, components.NodeState](world),
		filter:    ecs.NewFilter3[components.Position, components.Velocity, components.NodeState](world),
		rng:       rng,
		cfg:       cfg,
		positions: make([]geom.Vec3, cfg.NodeCount),
		colors:    make([][3]float32, cfg.NodeCount),
		opacities: make([]float32, cfg.NodeCount),
	}

	for i := 0; i < cfg.NodeCount; i++ {
		pos := s.randomPosition()
		vel := s.randomVelocity()
		state := components.NodeState{Phase: components.PhaseAlive}
		s.mapper.NewEntity(&pos, &vel, &state)
	}

	return s
}

// Count returns the fixed node count.
func (s *NodeSimulator) Count() int {
	return s.cfg.NodeCount
}

// Step advances every node by one tick. The ray is the world-space
// pointer ray sampled at tick start; rayOK is false when the pointer was
// invalid this tick, which skips all hit tests.
func (s *NodeSimulator) Step(now float64, dt float32, ray geom.Ray, rayOK bool) {
	s.hits = 0
	s.respawns = 0

	hitRadiusSq := s.cfg.PointHitRadius * s.cfg.PointHitRadius

	i := 0
	query := s.filter.Query()
	for query.Next() {
		pos, vel, state := query.Get()

		switch state.Phase {
		case components.PhaseAlive:
			p := geom.Vec3{X: pos.X, Y: pos.Y, Z: pos.Z}
			if rayOK && ray.DistSqToPoint(p) < hitRadiusSq {
				state.Phase = components.PhaseDying
				state.HitAt = now
				vel.X, vel.Y, vel.Z = 0, 0, 0
				s.hits++
				break
			}

			// Leaky soft-boundary steering: no hard clamp, just a fixed
			// velocity nudge per exceeded axis. Overshoot self-corrects
			// over several ticks.
			s.steer(&pos.X, &vel.X, s.cfg.Bounds.X)
			s.steer(&pos.Y, &vel.Y, s.cfg.Bounds.Y)
			s.steer(&pos.Z, &vel.Z, s.cfg.Bounds.Z)

			pos.X += vel.X * dt
			pos.Y += vel.Y * dt
			pos.Z += vel.Z * dt

		case components.PhaseDying:
			vel.X, vel.Y, vel.Z = 0, 0, 0
			if now-state.HitAt > s.cfg.RespawnDuration {
				fresh := s.randomPosition()
				*pos = fresh
				*vel = s.randomVelocity()
				state.Phase = components.PhaseAlive
				state.HitAt = 0
				s.respawns++
			}
		}

		s.positions[i] = geom.Vec3{X: pos.X, Y: pos.Y, Z: pos.Z}
		s.colors[i], s.opacities[i] = s.renderAttributes(now, *state, pos.Z)
		i++
	}
}

// steer nudges a velocity component back toward center while its
// coordinate exceeds the soft bound.
func (s *NodeSimulator) steer(coord *float32, vel *float32, bound float32) {
	if *coord > bound {
		*vel -= s.cfg.BoundaryNudge
	} else if *coord < -bound {
		*vel += s.cfg.BoundaryNudge
	}
}

// renderAttributes derives a node's color and opacity for this tick.
func (s *NodeSimulator) renderAttributes(now float64, state components.NodeState, z float32) ([3]float32, float32) {
	if state.Phase == components.PhaseDying {
		var opacity float32
		if s.cfg.FadeDuration > 0 {
			opacity = float32(1 - (now-state.HitAt)/s.cfg.FadeDuration)
		}
		if opacity < 0 {
			opacity = 0
		}
		return [3]float32{s.cfg.HitColor.R, s.cfg.HitColor.G, s.cfg.HitColor.B}, opacity
	}
	return s.depthColor(z), 1
}

// depthColor interpolates the two-leg depth gradient. The breakpoint
// fraction splits the normalized depth into the deep-to-mid leg and the
// mid-to-near leg.
func (s *NodeSimulator) depthColor(z float32) [3]float32 {
	t := geom.Clamp((z+s.cfg.Bounds.Z)/(2*s.cfg.Bounds.Z), 0, 1)

	bp := s.cfg.ColorBreakpoint
	var from, to config.RGB
	var u float32
	if bp > 0 && t < bp {
		from, to = s.cfg.DeepColor, s.cfg.MidColor
		u = t / bp
	} else if bp < 1 {
		from, to = s.cfg.MidColor, s.cfg.NearColor
		u = (t - bp) / (1 - bp)
	} else {
		from, to = s.cfg.MidColor, s.cfg.MidColor
	}

	return [3]float32{
		geom.Lerpf(from.R, to.R, u),
		geom.Lerpf(from.G, to.G, u),
		geom.Lerpf(from.B, to.B, u),
	}
}

func (s *NodeSimulator) randomPosition() components.Position {
	return components.Position{
		X: (s.rng.Float32()*2 - 1) * s.cfg.Bounds.X,
		Y: (s.rng.Float32()*2 - 1) * s.cfg.Bounds.Y,
		Z: (s.rng.Float32()*2 - 1) * s.cfg.Bounds.Z,
	}
}

func (s *NodeSimulator) randomVelocity() components.Velocity {
	// Uniform direction, magnitude in [SpeedMin, SpeedMax]
	theta := s.rng.Float64() * 2 * math.Pi
	cosPhi := s.rng.Float64()*2 - 1
	sinPhi := math.Sqrt(1 - cosPhi*cosPhi)
	speed := s.cfg.SpeedMin + s.rng.Float32()*(s.cfg.SpeedMax-s.cfg.SpeedMin)

	return components.Velocity{
		X: float32(math.Cos(theta)*sinPhi) * speed,
		Y: float32(math.Sin(theta)*sinPhi) * speed,
		Z: float32(cosPhi) * speed,
	}
}

// SetConfig replaces tunable parameters. NodeCount is fixed at
// construction and ignored here.
func (s *NodeSimulator) SetConfig(cfg config.NetworkConfig) {
	cfg.NodeCount = s.cfg.NodeCount
	s.cfg = cfg
}

// Positions returns this tick's position snapshot, indexed by node.
func (s *NodeSimulator) Positions() []geom.Vec3 { return s.positions }

// Colors returns this tick's per-node colors.
func (s *NodeSimulator) Colors() [][3]float32 { return s.colors }

// Opacities returns this tick's per-node opacities.
func (s *NodeSimulator) Opacities() []float32 { return s.opacities }

// Hits returns the number of pointer hits during the last Step.
func (s *NodeSimulator) Hits() int { return s.hits }

// Respawns returns the number of respawns during the last Step.
func (s *NodeSimulator) Respawns() int { return s.respawns }

// WritePoints copies the node snapshot into the render buffer.
func (s *NodeSimulator) WritePoints(buf *PointBuffers) {
	for i, p := range s.positions {
		c := s.colors[i]
		buf.Set(i, p.X, p.Y, p.Z, c[0], c[1], c[2], s.opacities[i], s.cfg.PointSize)
	}
	buf.Active = len(s.positions)
}
