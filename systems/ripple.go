package systems

import (
	"image"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/ripple/config"
)

// RippleParams holds the constants a ripple field is built with.
type RippleParams struct {
	Size           int     // Texture side length in pixels
	MaxAge         int     // Frames before a point is removed
	RadiusFraction float64 // Blob radius as a fraction of Size
	MotionScale    float64 // Drift per frame at full force
	ForceScale     float64 // Squared pointer distance -> force
	AttackFraction float64 // Share of lifetime spent fading in
	AlphaScale     float64 // Blob opacity at full intensity
}

// DefaultRippleParams returns the stock 64x64 ripple setup.
func DefaultRippleParams() RippleParams {
	return RippleParams{
		Size:           64,
		MaxAge:         64,
		RadiusFraction: 0.1,
		MotionScale:    0.01,
		ForceScale:     10000,
		AttackFraction: 0.3,
		AlphaScale:     0.2,
	}
}

// RippleParamsFromConfig converts the ripple config section, falling back
// to defaults for unset fields.
func RippleParamsFromConfig(c config.RippleConfig) RippleParams {
	p := DefaultRippleParams()
	if c.Size > 0 {
		p.Size = c.Size
	}
	if c.MaxAge > 0 {
		p.MaxAge = c.MaxAge
	}
	if c.RadiusFraction > 0 {
		p.RadiusFraction = c.RadiusFraction
	}
	if c.MotionScale > 0 {
		p.MotionScale = c.MotionScale
	}
	if c.ForceScale > 0 {
		p.ForceScale = c.ForceScale
	}
	if c.AttackFraction > 0 && c.AttackFraction <= 1 {
		p.AttackFraction = c.AttackFraction
	}
	if c.AlphaScale > 0 {
		p.AlphaScale = c.AlphaScale
	}
	return p
}

// Radius returns the blob radius in pixels.
func (p RippleParams) Radius() float64 {
	return float64(p.Size) * p.RadiusFraction
}

// RipplePoint is a decaying directional impulse left by the pointer.
type RipplePoint struct {
	Pos   r2.Vec  // Normalized [0,1] position, y up
	Age   int     // Frames since creation
	Force float64 // [0,1], fixed at creation
	Dir   r2.Vec  // Unit direction of travel, or zero
}

// RippleField owns a set of ripple points and the texture they are drawn into.
// It is not safe for concurrent use; AddPoint and Step belong to the render loop.
type RippleField struct {
	params RippleParams

	points []RipplePoint
	spare  []RipplePoint // reused as the survivor buffer on each Step

	// Last added pointer position. Not the last entry in points, which has drifted.
	last    r2.Vec
	hasLast bool

	img     *image.RGBA
	stamp   *image.Alpha
	dirty   bool
	expired int
}

// NewRippleField creates a ripple field with a cleared texture.
func NewRippleField(params RippleParams) *RippleField {
	f := &RippleField{
		params: params,
		points: make([]RipplePoint, 0, 128),
		spare:  make([]RipplePoint, 0, 128),
		img:    image.NewRGBA(image.Rect(0, 0, params.Size, params.Size)),
		stamp:  NewBlobStamp(params.Radius()),
	}
	clearImage(f.img)
	f.dirty = true
	return f
}

// AddPoint records a pointer sample in normalized [0,1] coordinates (y up).
// Force and direction come from the displacement since the previous sample.
func (f *RippleField) AddPoint(x, y float64) {
	pos := r2.Vec{X: x, Y: y}

	var force float64
	var dir r2.Vec
	if f.hasLast {
		d := r2.Sub(pos, f.last)
		distSq := r2.Norm2(d)
		// A repeated sample has no direction; leave force and dir at zero.
		if distSq > 0 && !math.IsInf(distSq, 0) {
			dir = r2.Scale(1/math.Sqrt(distSq), d)
			force = math.Min(distSq*f.params.ForceScale, 1)
		}
	}

	f.last = pos
	f.hasLast = true

	f.points = append(f.points, RipplePoint{
		Pos:   pos,
		Force: force,
		Dir:   dir,
	})
}

// Step advances every point by one frame, drops the expired ones and
// redraws the texture.
func (f *RippleField) Step() {
	maxAge := float64(f.params.MaxAge)

	survivors := f.spare[:0]
	for _, p := range f.points {
		decay := 1 - float64(p.Age)/maxAge
		stepForce := p.Force * decay * f.params.MotionScale
		p.Pos = r2.Add(p.Pos, r2.Scale(stepForce, p.Dir))
		p.Age++

		if p.Age > f.params.MaxAge {
			continue
		}
		survivors = append(survivors, p)
	}
	f.expired = len(f.points) - len(survivors)
	f.spare = f.points[:0]
	f.points = survivors

	Rasterize(f.img, f.points, f.params, f.stamp)
	f.dirty = true
}

// Reset drops all points and the last pointer position and clears the texture.
func (f *RippleField) Reset() {
	f.points = f.points[:0]
	f.hasLast = false
	f.last = r2.Vec{}
	f.expired = 0
	clearImage(f.img)
	f.dirty = true
}

// Points returns the live points in insertion order.
// The slice is only valid until the next Step and must not be modified.
func (f *RippleField) Points() []RipplePoint {
	return f.points
}

// Len returns the number of live points.
func (f *RippleField) Len() int {
	return len(f.points)
}

// LastExpired returns how many points the most recent Step removed.
func (f *RippleField) LastExpired() int {
	return f.expired
}

// Params returns the constants the field was built with.
func (f *RippleField) Params() RippleParams {
	return f.params
}

// Image returns the ripple texture. Callers treat it as read-only.
func (f *RippleField) Image() *image.RGBA {
	return f.img
}

// NeedsUpload reports whether the texture changed since MarkUploaded.
func (f *RippleField) NeedsUpload() bool {
	return f.dirty
}

// MarkUploaded records that the renderer has copied the texture.
func (f *RippleField) MarkUploaded() {
	f.dirty = false
}

// Intensities appends the current intensity of each live point to dst.
func (f *RippleField) Intensities(dst []float64) []float64 {
	for i := range f.points {
		dst = append(dst, PointIntensity(f.points[i], f.params))
	}
	return dst
}

// PointIntensity returns the envelope-scaled intensity of a point.
func PointIntensity(p RipplePoint, params RippleParams) float64 {
	return Envelope(p.Age, params.MaxAge, params.AttackFraction) * p.Force
}
