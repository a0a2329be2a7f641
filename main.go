package main

import (
	"flag"
	"log/slog"
	"math"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/adub3/Portfolio-Website/config"
	"github.com/adub3/Portfolio-Website/engine"
	"github.com/adub3/Portfolio-Website/renderer"
	"github.com/adub3/Portfolio-Website/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *statsWindow > 0 {
		cfg.Telemetry.StatsWindow = *statsWindow
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to initialize output", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
		os.Exit(1)
	}

	e := engine.New(cfg, rngSeed, output, *logStats)

	if *headless {
		runHeadless(e, *maxTicks, rngSeed, *logStats)
		return
	}
	runWindowed(e, cfg, *maxTicks)
}

// runHeadless drives the fixed-timestep loop without graphics. There is
// no pointer, so interaction is disabled for the whole run.
func runHeadless(e *engine.Engine, maxTicks int, seed int64, logStats bool) {
	slog.Info("starting headless run",
		"seed", seed,
		"max_ticks", maxTicks,
	)

	nan := float32(math.NaN())
	in := engine.Input{PointerX: nan, PointerY: nan}

	for {
		e.Tick(in, e.DT())

		if logStats && e.TickCount()%600 == 0 {
			e.LogWorldState()
		}

		if maxTicks > 0 && int(e.TickCount()) >= maxTicks {
			slog.Info("max ticks reached", "tick", e.TickCount())
			return
		}
	}
}

func runWindowed(e *engine.Engine, cfg *config.Config, maxTicks int) {
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Background")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	r := renderer.New(cfg)

	for !rl.WindowShouldClose() {
		if rl.IsWindowResized() {
			h := rl.GetScreenHeight()
			if h > 0 {
				e.SetAspect(float32(rl.GetScreenWidth()) / float32(h))
			}
		}

		dt := rl.GetFrameTime()
		if dt <= 0 || dt > 0.1 {
			dt = e.DT()
		}

		e.Tick(pointerInput(), dt)
		e.RecordFrame()

		rl.BeginDrawing()
		rl.ClearBackground(r.Background())
		r.Draw(e.Buffers())
		rl.EndDrawing()

		if maxTicks > 0 && int(e.TickCount()) >= maxTicks {
			break
		}
	}
}

// pointerInput maps the mouse to normalized device coordinates, with Y
// up. A cursor outside the window disables interaction via NaN.
func pointerInput() engine.Input {
	if !rl.IsCursorOnScreen() {
		nan := float32(math.NaN())
		return engine.Input{PointerX: nan, PointerY: nan}
	}

	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w <= 0 || h <= 0 {
		nan := float32(math.NaN())
		return engine.Input{PointerX: nan, PointerY: nan}
	}

	m := rl.GetMousePosition()
	return engine.Input{
		PointerX: m.X/w*2 - 1,
		PointerY: 1 - m.Y/h*2,
	}
}
