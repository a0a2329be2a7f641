package sim

import (
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/adub3/Portfolio-Website/config"
	"github.com/adub3/Portfolio-Website/geom"
)

// Starfield is a fixed set of stars on a spherical shell around the
// scene, drifting slowly about the Y axis with a per-star noise twinkle.
type Starfield struct {
	cfg config.StarfieldConfig

	base  []geom.Vec3
	sizes []float32

	noise opensimplex.Noise
	angle float64
	now   float64
}

// NewStarfield places cfg.Count stars uniformly on the shell between
// RadiusMin and RadiusMax.
func NewStarfield(cfg config.StarfieldConfig, rng *rand.Rand) *Starfield {
	s := &Starfield{
		cfg:   cfg,
		base:  make([]geom.Vec3, cfg.Count),
		sizes: make([]float32, cfg.Count),
		noise: opensimplex.NewNormalized(rng.Int63()),
	}

	for i := range s.base {
		theta := rng.Float64() * 2 * math.Pi
		cosPhi := rng.Float64()*2 - 1
		sinPhi := math.Sqrt(1 - cosPhi*cosPhi)
		r := cfg.RadiusMin + rng.Float32()*(cfg.RadiusMax-cfg.RadiusMin)

		s.base[i] = geom.Vec3{
			X: float32(math.Cos(theta)*sinPhi) * r,
			Y: float32(cosPhi) * r,
			Z: float32(math.Sin(theta)*sinPhi) * r,
		}
		s.sizes[i] = cfg.SizeMin + rng.Float32()*(cfg.SizeMax-cfg.SizeMin)
	}

	return s
}

// Step advances the shell rotation.
func (s *Starfield) Step(now float64, dt float32) {
	s.angle += float64(s.cfg.RotateSpeed) * float64(dt)
	s.now = now
}

// WritePoints writes every star with its rotated position and twinkled
// opacity. Star count is fixed, so the whole buffer is valid.
func (s *Starfield) WritePoints(buf *PointBuffers) {
	sin := float32(math.Sin(s.angle))
	cos := float32(math.Cos(s.angle))
	c := s.cfg.Color

	for i, p := range s.base {
		x := p.X*cos + p.Z*sin
		z := -p.X*sin + p.Z*cos

		tw := s.noise.Eval2(float64(i)*0.731, s.now*float64(s.cfg.TwinkleSpeed))
		opacity := s.cfg.BaseOpacity * (1 - s.cfg.TwinkleScale + s.cfg.TwinkleScale*float32(tw))

		buf.Set(i, x, p.Y, z, c.R, c.G, c.B, opacity, s.sizes[i])
	}
	buf.Active = len(s.base)
}
