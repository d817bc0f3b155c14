package systems

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/vector"
)

// Baseline is the texture colour with no displacement and zero intensity.
var Baseline = color.RGBA{A: 255}

// circleKappa places cubic control points so four segments approximate a circle.
const circleKappa = 0.5522847498

func clearImage(img *image.RGBA) {
	draw.Draw(img, img.Bounds(), &image.Uniform{C: Baseline}, image.Point{}, draw.Src)
}

// NewBlobStamp renders a filled disc of the given radius, blurred by the
// same radius, into an alpha mask. The disc centre sits exactly in the
// middle of the mask.
func NewBlobStamp(radius float64) *image.Alpha {
	half := int(math.Ceil(2*radius)) + 1
	side := 2 * half
	c := float32(half)
	r := float32(radius)
	k := r * circleKappa

	z := vector.NewRasterizer(side, side)
	z.MoveTo(c+r, c)
	z.CubeTo(c+r, c+k, c+k, c+r, c, c+r)
	z.CubeTo(c-k, c+r, c-r, c+k, c-r, c)
	z.CubeTo(c-r, c-k, c-k, c-r, c, c-r)
	z.CubeTo(c+k, c-r, c+r, c-k, c+r, c)
	z.ClosePath()

	disc := image.NewRGBA(image.Rect(0, 0, side, side))
	z.Draw(disc, disc.Bounds(), image.Opaque, image.Point{})

	// Whole-pixel blur radius keeps the kernel centred.
	soft := blur.Gaussian(disc, math.Max(1, math.Round(radius)))

	stamp := image.NewAlpha(disc.Bounds())
	for i := range stamp.Pix {
		stamp.Pix[i] = soft.Pix[i*4+3]
	}
	return stamp
}

// EncodeColor returns the blob colour of a point. R and G carry the
// direction remapped from [-1,1] to [0,255], B the intensity, and A the
// intensity scaled by AlphaScale. ok is false when the point holds
// non-finite values and must not be drawn.
func EncodeColor(p RipplePoint, params RippleParams) (c color.NRGBA, ok bool) {
	intensity := PointIntensity(p, params)
	if !finite(intensity) || !finite(p.Dir.X) || !finite(p.Dir.Y) {
		return color.NRGBA{}, false
	}

	return color.NRGBA{
		R: unitToByte((p.Dir.X + 1) / 2),
		G: unitToByte((p.Dir.Y + 1) / 2),
		B: unitToByte(intensity),
		A: unitToByte(intensity * params.AlphaScale),
	}, true
}

// Rasterize clears dst to Baseline and composites one soft blob per point,
// later points over earlier ones. Positions are normalized with y up;
// anything outside dst is clipped.
func Rasterize(dst *image.RGBA, points []RipplePoint, params RippleParams, stamp *image.Alpha) {
	clearImage(dst)
	if len(points) == 0 {
		return
	}

	b := dst.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	tint := image.NewNRGBA(stamp.Bounds())

	for i := range points {
		p := &points[i]
		c, ok := EncodeColor(*p, params)
		if !ok || c.A == 0 {
			continue
		}

		px := float64(b.Min.X) + p.Pos.X*w
		py := float64(b.Min.Y) + (1-p.Pos.Y)*h
		if !finite(px) || !finite(py) {
			continue
		}
		drawBlob(dst, stamp, tint, px, py, c)
	}
}

// drawBlob tints the stamp with c and composites it centred on (px, py)
// with sub-pixel placement.
func drawBlob(dst *image.RGBA, stamp *image.Alpha, tint *image.NRGBA, px, py float64, c color.NRGBA) {
	half := float64(stamp.Rect.Dx()) / 2
	b := dst.Bounds()
	if px+half < float64(b.Min.X) || px-half > float64(b.Max.X) ||
		py+half < float64(b.Min.Y) || py-half > float64(b.Max.Y) {
		return
	}

	for i, a := range stamp.Pix {
		o := i * 4
		tint.Pix[o] = c.R
		tint.Pix[o+1] = c.G
		tint.Pix[o+2] = c.B
		tint.Pix[o+3] = uint8((uint32(a)*uint32(c.A) + 127) / 255)
	}

	s2d := f64.Aff3{
		1, 0, px - half,
		0, 1, py - half,
	}
	draw.BiLinear.Transform(dst, s2d, tint, tint.Bounds(), draw.Over, nil)
}

func unitToByte(v float64) uint8 {
	v = math.Round(v * 255)
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
