// Package camera provides the perspective rig that turns normalized
// pointer coordinates into world-space rays.
package camera

import (
	"math"

	"github.com/adub3/Portfolio-Website/geom"
)

// Camera describes a perspective view of the simulation volume.
// It carries no per-tick state; the engine samples pointer and camera
// once at tick start and derives a single ray from them.
type Camera struct {
	Position geom.Vec3
	Target   geom.Vec3
	Up       geom.Vec3

	// FovY is the vertical field of view in radians.
	FovY float32

	// Aspect is viewport width / height.
	Aspect float32
}

// New creates a camera looking from position at target with the given
// vertical field of view and aspect ratio.
func New(position, target geom.Vec3, fovY, aspect float32) *Camera {
	return &Camera{
		Position: position,
		Target:   target,
		Up:       geom.Vec3{X: 0, Y: 1, Z: 0},
		FovY:     fovY,
		Aspect:   aspect,
	}
}

// SetAspect updates the aspect ratio after a viewport resize.
func (c *Camera) SetAspect(aspect float32) {
	if aspect > 0 {
		c.Aspect = aspect
	}
}

// Basis returns the camera's orthonormal right/up/forward vectors.
func (c *Camera) Basis() (right, up, forward geom.Vec3) {
	forward = c.Target.Sub(c.Position).Normalize()
	right = forward.Cross(c.Up).Normalize()
	up = right.Cross(forward)
	return right, up, forward
}

// ScreenRay derives the world-space ray under the pointer. nx and ny are
// normalized device coordinates in [-1, 1] with +Y up. It reports
// ok=false for non-finite input (e.g. a NaN pointer during a resize) or
// a degenerate camera; callers skip hit tests for that tick.
func (c *Camera) ScreenRay(nx, ny float32) (geom.Ray, bool) {
	if !geom.IsFinite(nx) || !geom.IsFinite(ny) {
		return geom.Ray{}, false
	}

	right, up, forward := c.Basis()
	if forward == (geom.Vec3{}) || right == (geom.Vec3{}) {
		return geom.Ray{}, false
	}

	halfH := float32(math.Tan(float64(c.FovY) / 2))
	halfW := halfH * c.Aspect

	dir := forward.
		Add(right.Scale(nx * halfW)).
		Add(up.Scale(ny * halfH)).
		Normalize()

	return geom.Ray{Origin: c.Position, Dir: dir}, true
}
