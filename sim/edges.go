package sim

import (
	"math"

	"github.com/adub3/Portfolio-Website/config"
	"github.com/adub3/Portfolio-Website/geom"
)

// Visibility floor shared by endpoint culling and vertex emission.
const minVisibleAlpha = 0.01

// Open parametric window for edge cuts; hits near either endpoint are
// ignored so nodes themselves aren't mistaken for edge cuts.
const (
	cutWindowLo = 0.1
	cutWindowHi = 0.9
)

// brokenState tracks an edge that was cut by the pointer ray.
type brokenState struct {
	brokenAt float64
	// ratio locates the break point as distance(i, cut)/length, clamped
	// to [0.01, 0.99].
	ratio float32
}

// ProximityGraphBuilder derives the visible edge set from node positions
// each tick. Edges are transient - recomputed from scratch every tick -
// except for the broken-edge records, which persist until cooldown.
type ProximityGraphBuilder struct {
	n   int
	cfg config.NetworkConfig

	// broken is keyed by i*n+j with i<j, avoiding per-pair allocations.
	broken map[int]brokenState

	breaks int
	heals  int
}

// NewProximityGraphBuilder creates a builder for a fixed node count.
func NewProximityGraphBuilder(cfg config.NetworkConfig) *ProximityGraphBuilder {
	return &ProximityGraphBuilder{
		n:      cfg.NodeCount,
		cfg:    cfg,
		broken: make(map[int]brokenState),
	}
}

// SetConfig replaces tunable parameters. The node count is fixed at
// construction and ignored here.
func (b *ProximityGraphBuilder) SetConfig(cfg config.NetworkConfig) {
	cfg.NodeCount = b.n
	b.cfg = cfg
}

// BrokenCount returns the number of live broken-edge records.
func (b *ProximityGraphBuilder) BrokenCount() int { return len(b.broken) }

// Breaks returns the number of new cuts detected during the last Build.
func (b *ProximityGraphBuilder) Breaks() int { return b.breaks }

// Heals returns the number of edges healed during the last Build.
func (b *ProximityGraphBuilder) Heals() int { return b.heals }

// Build scans every unordered node pair and emits the visible edge
// geometry into out. The O(n^2) scan is an accepted bound for the target
// node counts; larger sets would warrant spatial partitioning.
func (b *ProximityGraphBuilder) Build(now float64, positions []geom.Vec3, colors [][3]float32, opacities []float32, ray geom.Ray, rayOK bool, out *LineBuffers) {
	b.breaks = 0
	b.heals = 0
	out.Reset()

	// Heal pass: expired records are removed regardless of whether the
	// pair is still in range, so broken state never outlives its cooldown.
	for key, bs := range b.broken {
		if now-bs.brokenAt > b.cfg.CooldownDuration {
			delete(b.broken, key)
			b.heals++
		}
	}

	maxDist := b.cfg.MaxConnectionDistance
	maxDistSq := maxDist * maxDist
	lineHitSq := b.cfg.LineHitRadius * b.cfg.LineHitRadius

	for i := 0; i < b.n; i++ {
		for j := i + 1; j < b.n; j++ {
			pi, pj := positions[i], positions[j]
			distSq := pj.Sub(pi).LengthSq()
			if distSq > maxDistSq {
				continue
			}
			if opacities[i] <= minVisibleAlpha || opacities[j] <= minVisibleAlpha {
				continue
			}

			key := i*b.n + j
			bs, isBroken := b.broken[key]

			// Cut detection only applies to intact edges.
			if !isBroken && rayOK {
				if hit, ok := ray.DistSqToSegment(pi, pj); ok &&
					hit.DistSq < lineHitSq && hit.T > cutWindowLo && hit.T < cutWindowHi {
					dist := float32(math.Sqrt(float64(distSq)))
					ratio := geom.Clamp(hit.Point.Sub(pi).Length()/dist, 0.01, 0.99)
					bs = brokenState{brokenAt: now, ratio: ratio}
					b.broken[key] = bs
					isBroken = true
					b.breaks++
				}
			}

			dist := float32(math.Sqrt(float64(distSq)))
			alphaI := edgeAlpha(dist, maxDist, opacities[i])
			alphaJ := edgeAlpha(dist, maxDist, opacities[j])

			if !isBroken {
				if alphaI > minVisibleAlpha || alphaJ > minVisibleAlpha {
					out.Append(pi.X, pi.Y, pi.Z, pj.X, pj.Y, pj.Z,
						colors[i], colors[j], alphaI, alphaJ)
				}
				continue
			}

			age := now - bs.brokenAt
			if age >= b.cfg.BreakDuration {
				// Fully severed: invisible until cooldown removes the record.
				continue
			}

			// Two sub-segments retreat from the break point toward each
			// original endpoint with a cubic ease-out shrink.
			progress := float32(age / b.cfg.BreakDuration)
			shrink := 1 - easeOutCubic(progress)
			breakPt := geom.Lerp(pi, pj, bs.ratio)

			endI := geom.Lerp(pi, breakPt, shrink)
			out.Append(pi.X, pi.Y, pi.Z, endI.X, endI.Y, endI.Z,
				colors[i], colors[i], alphaI, alphaI)

			endJ := geom.Lerp(pj, breakPt, shrink)
			out.Append(pj.X, pj.Y, pj.Z, endJ.X, endJ.Y, endJ.Z,
				colors[j], colors[j], alphaJ, alphaJ)
		}
	}
}

// edgeAlpha is the distance falloff scaled by the endpoint's own opacity.
func edgeAlpha(dist, maxDist, endpointOpacity float32) float32 {
	a := 1 - dist/maxDist
	if a < 0 {
		a = 0
	}
	return a * endpointOpacity
}

func easeOutCubic(t float32) float32 {
	inv := 1 - t
	return 1 - inv*inv*inv
}
