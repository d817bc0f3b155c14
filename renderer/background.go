package renderer

import (
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ripple/config"
)

// Background renders the animated full-screen gradient plane.
type Background struct {
	shader        rl.Shader
	timeLoc       int32
	resolutionLoc int32
	detailLoc     int32
	seedLoc       int32
	spuitLoc      int32
	baseColorLoc  int32

	shaderPath string
	width      float32
	height     float32
	detail     float32
	seed       float32
	spuit      [3]float32
	baseColor  [3]float32

	initialized bool
}

// NewBackground creates a background renderer from the scene config.
// seed is used when the config leaves scene.seed at 0.
func NewBackground(width, height int32, scene config.SceneConfig, seed float32) *Background {
	if scene.Seed != 0 {
		seed = float32(scene.Seed)
	}
	return &Background{
		shaderPath: filepath.Join(scene.ShaderDir, "background.fs"),
		width:      float32(width),
		height:     float32(height),
		detail:     float32(scene.Detail),
		seed:       seed,
		spuit: [3]float32{
			float32(scene.Spuit[0]),
			float32(scene.Spuit[1]),
			float32(scene.Spuit[2]),
		},
		baseColor: [3]float32{
			float32(scene.BackgroundRGB[0]) / 255.0,
			float32(scene.BackgroundRGB[1]) / 255.0,
			float32(scene.BackgroundRGB[2]) / 255.0,
		},
	}
}

// Init loads the shader (must be called after raylib window is created).
func (b *Background) Init() {
	if b.initialized {
		return
	}

	b.shader = rl.LoadShader("", b.shaderPath)
	b.timeLoc = rl.GetShaderLocation(b.shader, "uTime")
	b.resolutionLoc = rl.GetShaderLocation(b.shader, "resolution")
	b.detailLoc = rl.GetShaderLocation(b.shader, "detail")
	b.seedLoc = rl.GetShaderLocation(b.shader, "seed")
	b.spuitLoc = rl.GetShaderLocation(b.shader, "spuit")
	b.baseColorLoc = rl.GetShaderLocation(b.shader, "baseColor")

	// Static uniforms
	rl.SetShaderValue(b.shader, b.resolutionLoc, []float32{b.width, b.height}, rl.ShaderUniformVec2)
	rl.SetShaderValue(b.shader, b.detailLoc, []float32{b.detail}, rl.ShaderUniformFloat)
	rl.SetShaderValue(b.shader, b.seedLoc, []float32{b.seed}, rl.ShaderUniformFloat)
	rl.SetShaderValue(b.shader, b.spuitLoc, b.spuit[:], rl.ShaderUniformVec3)
	rl.SetShaderValue(b.shader, b.baseColorLoc, b.baseColor[:], rl.ShaderUniformVec3)

	b.initialized = true
}

// Draw renders the plane at the given elapsed time in seconds.
func (b *Background) Draw(time float32) {
	if !b.initialized {
		b.Init()
	}

	rl.SetShaderValue(b.shader, b.timeLoc, []float32{time}, rl.ShaderUniformFloat)

	rl.BeginShaderMode(b.shader)
	rl.DrawRectangle(0, 0, int32(b.width), int32(b.height), rl.White)
	rl.EndShaderMode()
}

// BaseColor returns the clear colour behind the plane.
func (b *Background) BaseColor() rl.Color {
	return rl.NewColor(
		uint8(b.baseColor[0]*255+0.5),
		uint8(b.baseColor[1]*255+0.5),
		uint8(b.baseColor[2]*255+0.5),
		255,
	)
}

// Unload frees resources.
func (b *Background) Unload() {
	if b.initialized {
		rl.UnloadShader(b.shader)
		b.initialized = false
	}
}
