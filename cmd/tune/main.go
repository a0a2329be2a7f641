// Network parameter tuning tool - live animation preview with sliders.
//
// Usage: go run ./cmd/tune [-config path] [-out tuned.yaml]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/adub3/Portfolio-Website/config"
	"github.com/adub3/Portfolio-Website/engine"
	"github.com/adub3/Portfolio-Website/renderer"
)

const (
	windowWidth  = 1280
	windowHeight = 720
	panelWidth   = 300
)

type slider struct {
	label string
	min   float32
	max   float32
	get   func(*config.Config) float32
	set   func(*config.Config, float32)

	// rebuild marks parameters baked into simulator state at
	// construction; changing them restarts the animation.
	rebuild bool
}

var sliders = []slider{
	{
		label: "Max connection distance",
		min:   0.5, max: 8,
		get: func(c *config.Config) float32 { return c.Network.MaxConnectionDistance },
		set: func(c *config.Config, v float32) { c.Network.MaxConnectionDistance = v },
	},
	{
		label: "Point hit radius",
		min:   0.05, max: 2,
		get: func(c *config.Config) float32 { return c.Network.PointHitRadius },
		set: func(c *config.Config, v float32) { c.Network.PointHitRadius = v },
	},
	{
		label: "Line hit radius",
		min:   0.05, max: 1,
		get: func(c *config.Config) float32 { return c.Network.LineHitRadius },
		set: func(c *config.Config, v float32) { c.Network.LineHitRadius = v },
	},
	{
		label: "Break duration (s)",
		min:   0.1, max: 2,
		get: func(c *config.Config) float32 { return float32(c.Network.BreakDuration) },
		set: func(c *config.Config, v float32) { c.Network.BreakDuration = float64(v) },
	},
	{
		label: "Cooldown duration (s)",
		min:   0.5, max: 10,
		get: func(c *config.Config) float32 { return float32(c.Network.CooldownDuration) },
		set: func(c *config.Config, v float32) { c.Network.CooldownDuration = float64(v) },
	},
	{
		label: "Boundary nudge",
		min:   0.0005, max: 0.02,
		get: func(c *config.Config) float32 { return c.Network.BoundaryNudge },
		set: func(c *config.Config, v float32) { c.Network.BoundaryNudge = v },
	},
	{
		label: "Node count",
		min:   8, max: 200,
		get:     func(c *config.Config) float32 { return float32(c.Network.NodeCount) },
		set:     func(c *config.Config, v float32) { c.Network.NodeCount = int(v) },
		rebuild: true,
	},
	{
		label: "Node speed max",
		min:   0.1, max: 2,
		get:     func(c *config.Config) float32 { return c.Network.SpeedMax },
		set:     func(c *config.Config, v float32) { c.Network.SpeedMax = v },
		rebuild: true,
	},
	{
		label: "Trail count",
		min:   1, max: 32,
		get:     func(c *config.Config) float32 { return float32(c.Trails.Count) },
		set:     func(c *config.Config, v float32) { c.Trails.Count = int(v) },
		rebuild: true,
	},
	{
		label: "Burst interval mean (s)",
		min:   0.5, max: 15,
		get: func(c *config.Config) float32 { return float32(c.Emitter.BurstIntervalMean) },
		set: func(c *config.Config, v float32) { c.Emitter.BurstIntervalMean = float64(v) },
	},
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "tuned.yaml", "Where to save the tuned config (press S)")
	seed := flag.Int64("seed", 42, "RNG seed for the preview")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg.Screen.Width = windowWidth
	cfg.Screen.Height = windowHeight

	rl.InitWindow(windowWidth, windowHeight, "Network Tuning")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	e := engine.New(cfg, *seed, nil, false)
	r := renderer.New(cfg)

	for !rl.WindowShouldClose() {
		dt := rl.GetFrameTime()
		if dt <= 0 || dt > 0.1 {
			dt = e.DT()
		}
		e.Tick(pointerInput(), dt)

		rl.BeginDrawing()
		rl.ClearBackground(r.Background())
		r.Draw(e.Buffers())

		changed, rebuild := drawPanel(cfg)
		if rebuild {
			// Structural parameter changed: restart the preview so
			// buffer capacities and populations pick up the new values.
			cfg.Recompute()
			e = engine.New(cfg, *seed, nil, false)
		} else if changed {
			e.ApplyTuning()
		}

		if rl.IsKeyPressed(rl.KeyS) {
			if err := cfg.WriteYAML(*outPath); err != nil {
				slog.Error("failed to save config", "error", err)
			} else {
				slog.Info("config saved", "path", *outPath)
			}
		}

		rl.EndDrawing()
	}
}

// drawPanel renders the slider panel and applies edits to cfg. It
// reports whether anything changed and whether a structural parameter
// needs an engine rebuild.
func drawPanel(cfg *config.Config) (changed, rebuild bool) {
	panelX := float32(windowWidth - panelWidth - 10)
	panelY := float32(10)

	rl.DrawRectangle(int32(panelX-10), 0, panelWidth+20, windowHeight, rl.Color{R: 0, G: 0, B: 0, A: 160})
	rl.DrawText("Network Parameters", int32(panelX), int32(panelY), 20, rl.RayWhite)
	rl.DrawText("S saves the config", int32(panelX), int32(panelY)+22, 12, rl.Gray)
	panelY += 50

	for i := range sliders {
		s := &sliders[i]
		cur := s.get(cfg)

		rl.DrawText(s.label, int32(panelX), int32(panelY), 14, rl.LightGray)
		panelY += 18

		next := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 70, Height: 20},
			"", "",
			cur, s.min, s.max,
		)
		rl.DrawText(fmt.Sprintf("%.3f", cur), int32(panelX+panelWidth-60), int32(panelY+2), 14, rl.RayWhite)

		if next != cur {
			s.set(cfg, next)
			changed = true
			if s.rebuild {
				rebuild = true
			}
		}
		panelY += 32
	}

	return changed, rebuild
}

// pointerInput maps the mouse to normalized device coordinates, ignoring
// the panel area so slider drags do not cut edges behind it.
func pointerInput() engine.Input {
	m := rl.GetMousePosition()
	if m.X >= windowWidth-panelWidth-20 {
		nan := float32(math.NaN())
		return engine.Input{PointerX: nan, PointerY: nan}
	}
	return engine.Input{
		PointerX: m.X/windowWidth*2 - 1,
		PointerY: 1 - m.Y/windowHeight*2,
	}
}
