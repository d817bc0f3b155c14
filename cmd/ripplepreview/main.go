// Ripple field preview tool - interactive tuning with sliders.
//
// Usage: go run ./cmd/ripplepreview
package main

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	gui "github.com/gen2brain/raylib-go/raygui"

	"github.com/pthm-cable/ripple/game"
	"github.com/pthm-cable/ripple/renderer"
	"github.com/pthm-cable/ripple/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	previewX     = 10
	previewY     = 10
	panelWidth   = windowWidth - previewSize - 30
)

// slider draws a labelled slider and returns the new value.
func slider(x float32, y *float32, label, format string, value, min, max float32) float32 {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	v := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: float32(panelWidth - 80), Height: 20},
		fmt.Sprintf(format, min), fmt.Sprintf(format, max),
		value, min, max,
	)
	rl.DrawText(fmt.Sprintf(format, value), int32(x+float32(panelWidth-70)), int32(*y+2), 16, rl.DarkGray)
	*y += 35
	return v
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Ripple Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	params := systems.DefaultRippleParams()
	field := systems.NewRippleField(params)

	texture := renderer.NewRippleTexture(params.Size)
	texture.Init()
	defer texture.Unload()

	autopilot := game.NewAutopilot(7, 0.35, 0.4)
	autoOn := false
	var lastX, lastY float64

	for !rl.WindowShouldClose() {
		// Pointer over the preview feeds the field
		if autoOn {
			x, y := autopilot.Next(float64(rl.GetFrameTime()))
			field.AddPoint(x, y)
		} else {
			m := rl.GetMousePosition()
			x, y := game.NormalizePointer(m.X-previewX, m.Y-previewY, previewSize, previewSize)
			inside := x >= 0 && x <= 1 && y >= 0 && y <= 1
			if inside && (x != lastX || y != lastY) {
				field.AddPoint(x, y)
				lastX, lastY = x, y
			}
		}

		field.Step()
		texture.Sync(field)

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Draw preview
		rl.DrawTexturePro(
			texture.Texture(),
			rl.Rectangle{X: 0, Y: 0, Width: float32(params.Size), Height: float32(params.Size)},
			rl.Rectangle{X: previewX, Y: previewY, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(previewX, previewY, previewSize, previewSize, rl.DarkGray)

		// Draw stats
		var peak float64
		for _, v := range field.Intensities(nil) {
			if v > peak {
				peak = v
			}
		}
		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Points: %d  Peak intensity: %.3f", field.Len(), peak), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Radius: %.1f px", params.Radius()), 15, statsY+20, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Ripple Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		next := params
		next.MaxAge = int(slider(panelX, &panelY, "Max age (frames)", "%.0f", float32(params.MaxAge), 8, 256))
		next.RadiusFraction = float64(slider(panelX, &panelY, "Radius (fraction of size)", "%.3f", float32(params.RadiusFraction), 0.02, 0.3))
		next.MotionScale = float64(slider(panelX, &panelY, "Motion scale (drift per frame)", "%.4f", float32(params.MotionScale), 0, 0.05))
		next.ForceScale = float64(slider(panelX, &panelY, "Force scale", "%.0f", float32(params.ForceScale), 100, 50000))
		next.AttackFraction = float64(slider(panelX, &panelY, "Attack (share of lifetime)", "%.2f", float32(params.AttackFraction), 0.05, 1))
		next.AlphaScale = float64(slider(panelX, &panelY, "Alpha scale", "%.2f", float32(params.AlphaScale), 0.05, 1))

		// Params are fixed per field; rebuild on change
		if next != params {
			params = next
			field = systems.NewRippleField(params)
		}

		// Separator
		rl.DrawLine(int32(panelX), int32(panelY), int32(panelX)+int32(panelWidth)-20, int32(panelY), rl.LightGray)
		panelY += 15

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Clear") {
			field.Reset()
		}

		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, toggleText(autoOn, "Mouse", "Autopilot")) {
			autoOn = !autoOn
			autopilot.Reset()
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = systems.DefaultRippleParams()
			field = systems.NewRippleField(params)
		}
		panelY += 55

		// Output YAML
		yaml := rippleYAML(params)
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		rl.DrawText(yaml, int32(panelX), int32(panelY), 14, rl.Gray)

		// Instructions
		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)

		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

func rippleYAML(p systems.RippleParams) string {
	return fmt.Sprintf(`ripple:
  size: %d
  max_age: %d
  radius_fraction: %.3f
  motion_scale: %.4f
  force_scale: %.0f
  attack_fraction: %.2f
  alpha_scale: %.2f`,
		p.Size, p.MaxAge, p.RadiusFraction, p.MotionScale,
		p.ForceScale, p.AttackFraction, p.AlphaScale)
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
