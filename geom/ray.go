package geom

import "math"

// Ray is a world-space ray with unit direction. Rays are derived once per
// tick from the sampled pointer and camera; all hit tests are pure
// functions of the ray and the tested geometry.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// SegmentHit describes the closest approach between a ray and a segment.
type SegmentHit struct {
	// DistSq is the squared distance between ray and segment at closest approach.
	DistSq float32
	// Point is the closest point on the segment.
	Point Vec3
	// T is the segment parameter of Point, clamped to [0, 1].
	T float32
}

// DistSqToPoint returns the squared distance from the ray to p. Points
// behind the ray origin measure against the origin itself.
func (r Ray) DistSqToPoint(p Vec3) float32 {
	t := p.Sub(r.Origin).Dot(r.Dir)
	if t < 0 {
		return p.Sub(r.Origin).LengthSq()
	}
	closest := r.Origin.Add(r.Dir.Scale(t))
	return p.Sub(closest).LengthSq()
}

// DistSqToSegment computes the closest approach between the ray and the
// segment [a, b]. It reports ok=false for zero-length segments, which
// must short-circuit before any division.
func (r Ray) DistSqToSegment(a, b Vec3) (SegmentHit, bool) {
	seg := b.Sub(a)
	segLenSq := seg.LengthSq()
	if segLenSq < 1e-12 {
		return SegmentHit{DistSq: float32(math.Inf(1))}, false
	}

	// Minimize |origin + s*dir - (a + u*seg)|^2 over s >= 0, u in [0,1].
	w := r.Origin.Sub(a)
	bd := r.Dir.Dot(seg)
	d := r.Dir.Dot(w)
	e := seg.Dot(w)

	denom := segLenSq - bd*bd
	var u float32
	if denom > 1e-9 {
		u = (e - bd*d) / denom
	}
	u = Clamp(u, 0, 1)

	s := u*bd - d
	if s < 0 {
		s = 0
		u = Clamp(e/segLenSq, 0, 1)
	}

	onSeg := a.Add(seg.Scale(u))
	onRay := r.Origin.Add(r.Dir.Scale(s))

	return SegmentHit{
		DistSq: onRay.Sub(onSeg).LengthSq(),
		Point:  onSeg,
		T:      u,
	}, true
}
