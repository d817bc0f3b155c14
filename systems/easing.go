package systems

import "math"

// EaseOutSine maps t in [0,1] onto a quarter sine: fast start, soft landing.
func EaseOutSine(t float64) float64 {
	return math.Sin(t * math.Pi / 2)
}

// EaseOutQuad maps t in [0,1] onto t*(2-t).
func EaseOutQuad(t float64) float64 {
	return t * (2 - t)
}

// Envelope returns the visible strength of a point of the given age.
// It rises with EaseOutSine over the attack share of the lifetime, then
// falls back to 0 with EaseOutQuad over the rest.
func Envelope(age, maxAge int, attack float64) float64 {
	life := float64(maxAge)
	attackLen := life * attack
	a := float64(age)

	if a < attackLen {
		return EaseOutSine(a / attackLen)
	}

	decayLen := life - attackLen
	if decayLen <= 0 {
		return 1
	}
	return EaseOutQuad(1 - (a-attackLen)/decayLen)
}
