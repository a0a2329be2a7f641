// Package renderer draws the filled frame buffers with raylib. It only
// reads the valid prefix of each buffer and never mutates simulation
// state.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/adub3/Portfolio-Website/config"
	"github.com/adub3/Portfolio-Website/sim"
)

// SceneRenderer renders the animation scene in 3D.
type SceneRenderer struct {
	cam        rl.Camera3D
	background rl.Color
	pointSize  float32
}

// New creates the renderer with the camera rig from config.
func New(cfg *config.Config) *SceneRenderer {
	return &SceneRenderer{
		cam: rl.Camera3D{
			Position:   rl.Vector3{X: cfg.Camera.Position.X, Y: cfg.Camera.Position.Y, Z: cfg.Camera.Position.Z},
			Target:     rl.Vector3{X: cfg.Camera.Target.X, Y: cfg.Camera.Target.Y, Z: cfg.Camera.Target.Z},
			Up:         rl.Vector3{Y: 1},
			Fovy:       cfg.Camera.FovYDegrees,
			Projection: rl.CameraPerspective,
		},
		background: rl.Color{R: 8, G: 10, B: 18, A: 255},
		pointSize:  cfg.Network.PointSize,
	}
}

// Background returns the clear color.
func (r *SceneRenderer) Background() rl.Color {
	return r.background
}

// Draw renders one frame from the buffers filled by the last tick.
// Draw order is back to front: stars, trails, network, emitter.
func (r *SceneRenderer) Draw(fb *sim.FrameBuffers) {
	rl.BeginMode3D(r.cam)

	drawPoints(fb.StarPoints)
	drawLines(fb.TrailLines)
	drawLines(fb.NetworkLines)
	drawPoints(fb.NetworkPoints)
	drawPoints(fb.EmitterPoints)

	rl.EndMode3D()
}

// drawPoints renders the valid prefix of a point buffer as small spheres.
func drawPoints(buf *sim.PointBuffers) {
	for i := 0; i < buf.Active; i++ {
		op := buf.Opacities[i]
		if op <= 0 {
			continue
		}
		pos := rl.Vector3{
			X: buf.Positions[3*i],
			Y: buf.Positions[3*i+1],
			Z: buf.Positions[3*i+2],
		}
		c := toColor(buf.Colors[3*i], buf.Colors[3*i+1], buf.Colors[3*i+2], op)
		rl.DrawSphereEx(pos, buf.Sizes[i], 4, 6, c)
	}
}

// drawLines renders the valid vertex prefix of a line buffer. raylib
// lines carry one color, so the two vertex attributes are averaged.
func drawLines(buf *sim.LineBuffers) {
	for v := 0; v+1 < buf.ActiveVertexCount; v += 2 {
		aop, bop := buf.Opacities[v], buf.Opacities[v+1]
		op := (aop + bop) / 2
		if op <= 0 {
			continue
		}

		p := 3 * v
		a := rl.Vector3{X: buf.Positions[p], Y: buf.Positions[p+1], Z: buf.Positions[p+2]}
		b := rl.Vector3{X: buf.Positions[p+3], Y: buf.Positions[p+4], Z: buf.Positions[p+5]}
		c := toColor(
			(buf.Colors[p]+buf.Colors[p+3])/2,
			(buf.Colors[p+1]+buf.Colors[p+4])/2,
			(buf.Colors[p+2]+buf.Colors[p+5])/2,
			op,
		)
		rl.DrawLine3D(a, b, c)
	}
}

// toColor converts normalized components to a raylib color.
func toColor(r, g, b, a float32) rl.Color {
	return rl.Color{
		R: clampByte(r),
		G: clampByte(g),
		B: clampByte(b),
		A: clampByte(a),
	}
}

func clampByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v * 255)
}
