package renderer

import (
	"image"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// RippleSource is a CPU image that tracks whether it changed since the last upload.
type RippleSource interface {
	Image() *image.RGBA
	NeedsUpload() bool
	MarkUploaded()
}

// RippleTexture mirrors a ripple image on the GPU.
type RippleTexture struct {
	texture     rl.Texture2D
	size        int
	pixels      []color.RGBA
	initialized bool
}

// NewRippleTexture creates a texture holder for a square image of the given side.
func NewRippleTexture(size int) *RippleTexture {
	return &RippleTexture{
		size:   size,
		pixels: make([]color.RGBA, size*size),
	}
}

// Init creates the GPU texture (must be called after raylib window is created).
func (r *RippleTexture) Init() {
	if r.initialized {
		return
	}

	img := rl.GenImageColor(r.size, r.size, rl.Black)
	r.texture = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)

	// Sampled with displacement semantics: smooth between texels, no wrap at edges
	rl.SetTextureFilter(r.texture, rl.FilterBilinear)
	rl.SetTextureWrap(r.texture, rl.WrapClamp)

	r.initialized = true
}

// Sync uploads the source image if it changed. Returns true when an upload happened.
func (r *RippleTexture) Sync(src RippleSource) bool {
	if !r.initialized {
		r.Init()
	}
	if !src.NeedsUpload() {
		return false
	}

	CopyPixels(r.pixels, src.Image())
	rl.UpdateTexture(r.texture, r.pixels)
	src.MarkUploaded()
	return true
}

// Texture returns the GPU texture.
func (r *RippleTexture) Texture() rl.Texture2D {
	return r.texture
}

// Size returns the texture side length.
func (r *RippleTexture) Size() int {
	return r.size
}

// Unload frees resources.
func (r *RippleTexture) Unload() {
	if r.initialized {
		rl.UnloadTexture(r.texture)
		r.initialized = false
	}
}

// CopyPixels copies img row by row into dst, which must hold Dx*Dy pixels.
func CopyPixels(dst []color.RGBA, img *image.RGBA) {
	b := img.Bounds()
	w := b.Dx()
	for y := 0; y < b.Dy(); y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		out := dst[y*w : (y+1)*w]
		for x := range out {
			o := x * 4
			out[x] = color.RGBA{R: row[o], G: row[o+1], B: row[o+2], A: row[o+3]}
		}
	}
}
