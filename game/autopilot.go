package game

import (
	"math"

	"github.com/ojrac/opensimplex-go"
)

// Autopilot is a synthetic pointer that wanders around the centre of the
// field following smooth noise.
type Autopilot struct {
	noise     opensimplex.Noise
	speed     float64
	amplitude float64
	t         float64
}

// NewAutopilot creates an autopilot. The same seed gives the same path.
func NewAutopilot(seed int64, speed, amplitude float64) *Autopilot {
	return &Autopilot{
		noise:     opensimplex.New(seed),
		speed:     speed,
		amplitude: amplitude,
	}
}

// Next advances by dt seconds and returns the new normalized position,
// clamped to [0,1].
func (a *Autopilot) Next(dt float64) (x, y float64) {
	a.t += dt * a.speed
	// Offset the second axis so x and y are uncorrelated
	x = 0.5 + a.amplitude*a.noise.Eval2(a.t, 0)
	y = 0.5 + a.amplitude*a.noise.Eval2(0, a.t+31.7)
	return clamp01(x), clamp01(y)
}

// Reset rewinds the path to its start.
func (a *Autopilot) Reset() {
	a.t = 0
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
