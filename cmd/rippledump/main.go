// Ripple dump tool - runs the ripple field headless along a scripted
// pointer stroke and writes the texture as upscaled PNG frames.
//
// Usage: go run ./cmd/rippledump -out frames -frames 120 -every 10
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"

	"github.com/pthm-cable/ripple/config"
	"github.com/pthm-cable/ripple/game"
	"github.com/pthm-cable/ripple/systems"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outDir := flag.String("out", "frames", "Output directory for PNG frames")
	frames := flag.Int("frames", 120, "Number of frames to simulate")
	every := flag.Int("every", 10, "Write every Nth frame")
	scale := flag.Int("scale", 8, "Upscale factor for written frames")
	stroke := flag.String("stroke", "circle", "Pointer path: circle, line or autopilot")
	nearest := flag.Bool("nearest", false, "Upscale with nearest neighbour instead of Catmull-Rom")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}

	path, err := strokePath(*stroke, cfg)
	if err != nil {
		slog.Error("bad stroke", "error", err)
		os.Exit(1)
	}

	var scaler draw.Scaler = draw.CatmullRom
	if *nearest {
		scaler = draw.NearestNeighbor
	}

	field := systems.NewRippleField(systems.RippleParamsFromConfig(cfg.Ripple))
	written := 0
	for i := 0; i < *frames; i++ {
		x, y := path(i)
		field.AddPoint(x, y)
		field.Step()

		if *every > 0 && (i+1)%*every == 0 {
			name := filepath.Join(*outDir, fmt.Sprintf("ripple_%04d.png", i+1))
			if err := writeFrame(name, field.Image(), *scale, scaler); err != nil {
				slog.Error("failed to write frame", "path", name, "error", err)
				os.Exit(1)
			}
			written++
		}
	}

	slog.Info("frames written", "dir", *outDir, "count", written, "points", field.Len())
}

// strokePath returns the pointer position for frame i.
func strokePath(name string, cfg *config.Config) (func(i int) (float64, float64), error) {
	switch name {
	case "circle":
		return func(i int) (float64, float64) {
			a := float64(i) / 60 * 2 * math.Pi
			return 0.5 + 0.3*math.Cos(a), 0.5 + 0.3*math.Sin(a)
		}, nil
	case "line":
		return func(i int) (float64, float64) {
			return 0.1 + 0.8*math.Mod(float64(i)/90, 1), 0.5
		}, nil
	case "autopilot":
		ap := game.NewAutopilot(cfg.Autopilot.Seed, cfg.Autopilot.Speed, cfg.Autopilot.Amplitude)
		return func(int) (float64, float64) {
			return ap.Next(cfg.Derived.DT)
		}, nil
	}
	return nil, fmt.Errorf("unknown stroke %q", name)
}

// writeFrame upscales src by scale and encodes it as PNG.
func writeFrame(path string, src *image.RGBA, scale int, scaler draw.Scaler) error {
	if scale < 1 {
		scale = 1
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	scaler.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := png.Encode(f, dst); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
