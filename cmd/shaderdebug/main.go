// Shader debug tool - renders the background and ripple composite to a PNG
// file for inspection.
//
// Usage: go run ./cmd/shaderdebug -frames 30 -out debug.png
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ripple/config"
	"github.com/pthm-cable/ripple/renderer"
	"github.com/pthm-cable/ripple/systems"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "debug.png", "Output PNG path")
	width := flag.Int("width", 512, "Render width")
	height := flag.Int("height", 512, "Render height")
	frames := flag.Int("frames", 30, "Frames of a circular pointer stroke before capture")
	timeSec := flag.Float64("time", 0, "Background time uniform")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Initialize raylib with hidden window
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(int32(*width), int32(*height), "Shader Debug")
	defer rl.CloseWindow()

	w, h := int32(*width), int32(*height)
	bg := renderer.NewBackground(w, h, cfg.Scene, 0.5)
	bg.Init()
	defer bg.Unload()

	post := renderer.NewPostProcess(w, h, cfg.Scene.ShaderDir,
		float32(cfg.Scene.Displacement), float32(cfg.Scene.Highlight))
	post.Init()
	defer post.Unload()

	params := systems.RippleParamsFromConfig(cfg.Ripple)
	field := systems.NewRippleField(params)
	tex := renderer.NewRippleTexture(params.Size)
	tex.Init()
	defer tex.Unload()

	// Circular stroke around the centre
	for i := 0; i < *frames; i++ {
		a := float64(i) / 30 * 2 * math.Pi
		field.AddPoint(0.5+0.25*math.Cos(a), 0.5+0.25*math.Sin(a))
		field.Step()
	}
	tex.Sync(field)

	// Final composite into a capture target
	target := rl.LoadRenderTexture(w, h)
	defer rl.UnloadRenderTexture(target)

	post.BeginScene()
	rl.ClearBackground(bg.BaseColor())
	bg.Draw(float32(*timeSec))
	post.EndScene()

	rl.BeginTextureMode(target)
	rl.ClearBackground(rl.Black)
	post.Draw(tex.Texture())
	rl.EndTextureMode()

	// Get image from texture and flip it (OpenGL convention)
	img := rl.LoadImageFromTexture(target.Texture)
	rl.ImageFlipVertical(img)

	// Export to PNG
	success := rl.ExportImage(*img, *outPath)
	rl.UnloadImage(img)

	if success {
		fmt.Printf("Composite rendered to: %s (%dx%d, %d points)\n", *outPath, *width, *height, field.Len())
	} else {
		fmt.Fprintf(os.Stderr, "Failed to export image\n")
		os.Exit(1)
	}
}
