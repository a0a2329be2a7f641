// Package sim implements the per-tick procedural simulation core: the
// pointer-reactive node network, the chaotic trail field, the pooled
// particle emitter, the starfield, and the dense buffers handed to the
// renderer.
package sim

import "github.com/adub3/Portfolio-Website/config"

// PointBuffers holds flat point attributes for one effect. All slices are
// allocated once at construction and reused every tick; Active is the
// valid prefix length in points. The tail beyond the prefix is stale and
// must be ignored by the renderer, not cleared.
type PointBuffers struct {
	Positions []float32 // 3 per point
	Colors    []float32 // 3 per point
	Opacities []float32 // 1 per point
	Sizes     []float32 // 1 per point
	Active    int
}

// NewPointBuffers allocates buffers for up to capacity points.
func NewPointBuffers(capacity int) *PointBuffers {
	return &PointBuffers{
		Positions: make([]float32, 3*capacity),
		Colors:    make([]float32, 3*capacity),
		Opacities: make([]float32, capacity),
		Sizes:     make([]float32, capacity),
	}
}

// Capacity returns the fixed point capacity.
func (b *PointBuffers) Capacity() int {
	return len(b.Opacities)
}

// Set writes point i. Callers manage Active themselves.
func (b *PointBuffers) Set(i int, x, y, z, r, g, bl, opacity, size float32) {
	b.Positions[3*i] = x
	b.Positions[3*i+1] = y
	b.Positions[3*i+2] = z
	b.Colors[3*i] = r
	b.Colors[3*i+1] = g
	b.Colors[3*i+2] = bl
	b.Opacities[i] = opacity
	b.Sizes[i] = size
}

// LineBuffers holds flat line-segment vertex attributes for one effect.
// ActiveVertexCount is the valid vertex prefix (always even: two vertices
// per segment); the renderer must only draw up to this count.
type LineBuffers struct {
	Positions         []float32 // 3 per vertex, 6 per segment
	Colors            []float32 // 3 per vertex
	Opacities         []float32 // 1 per vertex
	ActiveVertexCount int
}

// NewLineBuffers allocates buffers for up to segCapacity segments.
func NewLineBuffers(segCapacity int) *LineBuffers {
	return &LineBuffers{
		Positions: make([]float32, 6*segCapacity),
		Colors:    make([]float32, 6*segCapacity),
		Opacities: make([]float32, 2*segCapacity),
	}
}

// SegmentCapacity returns the fixed segment capacity.
func (b *LineBuffers) SegmentCapacity() int {
	return len(b.Opacities) / 2
}

// Reset marks the buffer empty without touching the stale tail.
func (b *LineBuffers) Reset() {
	b.ActiveVertexCount = 0
}

// Append writes one segment and advances the valid prefix. Appending
// beyond capacity is silently dropped; capacities are sized for the
// worst case so this only guards corrupted callers.
func (b *LineBuffers) Append(ax, ay, az, bx, by, bz float32, acol, bcol [3]float32, aop, bop float32) {
	v := b.ActiveVertexCount
	if v+2 > len(b.Opacities) {
		return
	}
	p := 3 * v
	b.Positions[p] = ax
	b.Positions[p+1] = ay
	b.Positions[p+2] = az
	b.Positions[p+3] = bx
	b.Positions[p+4] = by
	b.Positions[p+5] = bz
	b.Colors[p] = acol[0]
	b.Colors[p+1] = acol[1]
	b.Colors[p+2] = acol[2]
	b.Colors[p+3] = bcol[0]
	b.Colors[p+4] = bcol[1]
	b.Colors[p+5] = bcol[2]
	b.Opacities[v] = aop
	b.Opacities[v+1] = bop
	b.ActiveVertexCount = v + 2
}

// FrameBuffers is the single explicitly-owned buffer object handed to the
// renderer. The simulation step owns it exclusively during a tick; the
// renderer treats it as read-only between ticks.
type FrameBuffers struct {
	NetworkPoints *PointBuffers
	NetworkLines  *LineBuffers
	TrailLines    *LineBuffers
	EmitterPoints *PointBuffers
	StarPoints    *PointBuffers
}

// NewFrameBuffers allocates all render buffers at their fixed worst-case
// capacities. Nothing here is ever resized.
func NewFrameBuffers(cfg *config.Config) *FrameBuffers {
	return &FrameBuffers{
		NetworkPoints: NewPointBuffers(cfg.Network.NodeCount),
		NetworkLines:  NewLineBuffers(cfg.Derived.WorstCaseSegments),
		TrailLines:    NewLineBuffers(cfg.Derived.TrailSegments),
		EmitterPoints: NewPointBuffers(cfg.Emitter.Capacity),
		StarPoints:    NewPointBuffers(cfg.Starfield.Count),
	}
}
