package renderer

import (
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// PostProcess renders the scene into an offscreen target, then draws it
// to the screen displaced by the ripple texture.
type PostProcess struct {
	shader       rl.Shader
	target       rl.RenderTexture2D
	rippleLoc    int32
	strengthLoc  int32
	highlightLoc int32

	shaderPath string
	width      int32
	height     int32
	strength   float32
	highlight  float32

	initialized bool
}

// NewPostProcess creates the composite pass. strength is the UV offset at
// full ripple intensity; highlight the brightening added there.
func NewPostProcess(width, height int32, shaderDir string, strength, highlight float32) *PostProcess {
	return &PostProcess{
		shaderPath: filepath.Join(shaderDir, "post.fs"),
		width:      width,
		height:     height,
		strength:   strength,
		highlight:  highlight,
	}
}

// Init loads the shader and render target (must be called after raylib window is created).
func (p *PostProcess) Init() {
	if p.initialized {
		return
	}

	p.shader = rl.LoadShader("", p.shaderPath)
	p.rippleLoc = rl.GetShaderLocation(p.shader, "uRippleTexture")
	p.strengthLoc = rl.GetShaderLocation(p.shader, "uStrength")
	p.highlightLoc = rl.GetShaderLocation(p.shader, "uHighlight")

	rl.SetShaderValue(p.shader, p.strengthLoc, []float32{p.strength}, rl.ShaderUniformFloat)
	rl.SetShaderValue(p.shader, p.highlightLoc, []float32{p.highlight}, rl.ShaderUniformFloat)

	p.target = rl.LoadRenderTexture(p.width, p.height)
	rl.SetTextureFilter(p.target.Texture, rl.FilterPoint)
	rl.SetTextureWrap(p.target.Texture, rl.WrapClamp)

	p.initialized = true
}

// BeginScene redirects drawing into the offscreen target.
func (p *PostProcess) BeginScene() {
	if !p.initialized {
		p.Init()
	}
	rl.BeginTextureMode(p.target)
}

// EndScene restores drawing to the screen.
func (p *PostProcess) EndScene() {
	rl.EndTextureMode()
}

// Draw composites the captured scene with the ripple texture onto the current target.
func (p *PostProcess) Draw(ripple rl.Texture2D) {
	if !p.initialized {
		return
	}

	rl.BeginShaderMode(p.shader)
	rl.SetShaderValueTexture(p.shader, p.rippleLoc, ripple)

	// Render textures are stored bottom-up; negative height flips them upright.
	src := rl.Rectangle{X: 0, Y: 0, Width: float32(p.width), Height: -float32(p.height)}
	rl.DrawTextureRec(p.target.Texture, src, rl.Vector2{}, rl.White)

	rl.EndShaderMode()
}

// Target returns the offscreen render target.
func (p *PostProcess) Target() rl.RenderTexture2D {
	return p.target
}

// Unload frees resources.
func (p *PostProcess) Unload() {
	if p.initialized {
		rl.UnloadShader(p.shader)
		rl.UnloadRenderTexture(p.target)
		p.initialized = false
	}
}
