package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ripple/config"
)

// NormalizePointer converts a screen position in pixels to normalized
// field coordinates with y up. Positions outside the window map outside [0,1].
func NormalizePointer(sx, sy, width, height float32) (x, y float64) {
	x = float64(sx) / float64(width)
	y = 1 - float64(sy)/float64(height)
	return x, y
}

// pointerTracker reports when the pointer actually moved, so a resting
// mouse adds no points.
type pointerTracker struct {
	x, y float64
	seen bool
}

// moved stores (x, y) and reports whether it differs from the previous call.
func (p *pointerTracker) moved(x, y float64) bool {
	if p.seen && p.x == x && p.y == y {
		return false
	}
	p.x, p.y = x, y
	p.seen = true
	return true
}

// reset forgets the last position.
func (p *pointerTracker) reset() {
	*p = pointerTracker{}
}

// handleInput processes keyboard input.
func (g *Game) handleInput() {
	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Clear all ripples
	if rl.IsKeyPressed(rl.KeyC) {
		g.field.Reset()
		g.pointer.reset()
	}

	// Switch between mouse and autopilot
	if rl.IsKeyPressed(rl.KeyA) {
		g.autoOn = !g.autoOn
		g.pointer.reset()
	}

	if rl.IsKeyPressed(rl.KeyH) {
		g.showHUD = !g.showHUD
	}
	if rl.IsKeyPressed(rl.KeyT) {
		g.showTexture = !g.showTexture
	}
}

// ingestMouse feeds the mouse position to the field when it moved.
func (g *Game) ingestMouse() {
	m := rl.GetMousePosition()
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w <= 0 || h <= 0 {
		return
	}
	x, y := NormalizePointer(m.X, m.Y, w, h)
	if !g.pointer.moved(x, y) {
		return
	}
	g.field.AddPoint(x, y)
	g.collector.RecordSample(false)
}

// ingestAutopilot feeds the next autopilot position to the field.
func (g *Game) ingestAutopilot() {
	x, y := g.autopilot.Next(config.Cfg().Derived.DT)
	still := !g.pointer.moved(x, y)
	g.field.AddPoint(x, y)
	g.collector.RecordSample(still)
}
