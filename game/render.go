package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const texturePreviewScale = 4

// drawHUD draws frame stats and key hints.
func (g *Game) drawHUD() {
	mode := "mouse"
	if g.autoOn {
		mode = "autopilot"
	}
	status := fmt.Sprintf("points: %d  tick: %d  input: %s", g.field.Len(), g.tick, mode)
	if g.paused {
		status += "  [PAUSED]"
	}

	rl.DrawFPS(10, 10)
	rl.DrawText(status, 10, 34, 16, rl.RayWhite)
	rl.DrawText("SPACE pause  C clear  A autopilot  T texture  H hud", 10, int32(g.screenHeight)-24, 14, rl.LightGray)
}

// drawTexturePreview shows the raw ripple texture enlarged in the top-right corner.
func (g *Game) drawTexturePreview() {
	tex := g.rippleTexture.Texture()
	size := float32(g.rippleTexture.Size() * texturePreviewScale)
	x := g.screenWidth - size - 10
	y := float32(10)

	rl.DrawRectangle(int32(x)-2, int32(y)-2, int32(size)+4, int32(size)+4, rl.DarkGray)
	src := rl.Rectangle{X: 0, Y: 0, Width: float32(tex.Width), Height: float32(tex.Height)}
	dst := rl.Rectangle{X: x, Y: y, Width: size, Height: size}
	rl.DrawTexturePro(tex, src, dst, rl.Vector2{}, 0, rl.White)
}
