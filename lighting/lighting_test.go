package lighting

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scenegl/gfx/gfxtest"
)

func TestEngineKeepsInsertionOrder(t *testing.T) {
	e := NewEngine()
	for i := range 4 {
		idx := e.AddPositional(PositionalLight{Position: mgl32.Vec3{float32(i), 0, 0}, Constant: 1})
		assert.Equal(t, i, idx)
	}
	e.RemovePositional(1)

	require.Equal(t, 3, e.NumPositional())
	var xs []float32
	for _, l := range e.Positionals() {
		xs = append(xs, l.Position.X())
	}
	assert.Equal(t, []float32{0, 2, 3}, xs)
}

func TestEngineAccessorEditsInPlace(t *testing.T) {
	e := NewEngine()
	e.AddSpot(SpotLight{})
	e.Spot(0).Position = mgl32.Vec3{1, 2, 3}
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, e.Spots()[0].Position)
}

func TestEngineGlobalPresence(t *testing.T) {
	e := NewEngine()
	_, ok := e.Global()
	assert.False(t, ok)

	// A zero-valued global light is still present.
	e.SetGlobal(GlobalLight{})
	_, ok = e.Global()
	assert.True(t, ok)

	e.ClearGlobal()
	_, ok = e.Global()
	assert.False(t, ok)
}

func TestEngineClear(t *testing.T) {
	e := NewEngine()
	e.SetGlobal(GlobalLight{Ambient: mgl32.Vec3{1, 1, 1}})
	e.AddDirectional(DirectionalLight{})
	e.AddSpot(SpotLight{})
	e.Clear()
	assert.Zero(t, e.NumDirectional()+e.NumPositional()+e.NumSpot())
	_, ok := e.Global()
	assert.False(t, ok)
}

func TestSpotLightStoresCosines(t *testing.T) {
	l := NewSpotLight(mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, mgl32.Vec3{}, mgl32.Vec3{0, -1, 0}, mgl32.Vec3{},
		math.Pi/3, math.Pi/2, 1, 0, 0)
	assert.InDelta(t, 0.5, l.Cutoff, 1e-6)
	assert.InDelta(t, 0, l.OuterCutoff, 1e-6)

	inner, outer := l.CutoffAngles()
	assert.InDelta(t, math.Pi/3, inner, 1e-5)
	assert.InDelta(t, math.Pi/2, outer, 1e-5)
}

func TestSpotFalloff(t *testing.T) {
	l := SpotLight{Cutoff: 0.9, OuterCutoff: 0.5}
	assert.Equal(t, float32(1), l.Falloff(0.95))
	assert.Equal(t, float32(0), l.Falloff(0.2))
	assert.InDelta(t, 0.5, l.Falloff(0.7), 1e-6)

	hard := SpotLight{Cutoff: 0.8, OuterCutoff: 0.8}
	assert.Equal(t, float32(1), hard.Falloff(0.8))
	assert.Equal(t, float32(0), hard.Falloff(0.79))
}

func TestAttenuation(t *testing.T) {
	l := PositionalLight{Constant: 1, Linear: 0.5, Quadratic: 0.25}
	assert.InDelta(t, 1.0/3.0, l.Attenuation(2), 1e-6)
}

func TestUploadWritesEveryField(t *testing.T) {
	p := &gfxtest.Program{Values: map[string]any{}}
	SpotLight{Cutoff: 0.9, OuterCutoff: 0.5, Constant: 1}.Upload(p, "sgl_SpotLights[2]")
	assert.Equal(t, []string{
		"sgl_SpotLights[2].ambient",
		"sgl_SpotLights[2].diffuse",
		"sgl_SpotLights[2].specular",
		"sgl_SpotLights[2].direction",
		"sgl_SpotLights[2].position",
		"sgl_SpotLights[2].cutoff",
		"sgl_SpotLights[2].outer_cutoff",
		"sgl_SpotLights[2].constant",
		"sgl_SpotLights[2].linear",
		"sgl_SpotLights[2].quadratic",
	}, p.Sets)
	assert.Equal(t, float32(0.5), p.Values["sgl_SpotLights[2].outer_cutoff"])
}

func TestMaterialVariants(t *testing.T) {
	var zero Material
	assert.Equal(t, NoMaterial, zero.Kind())

	cm := NewColorMaterial(ColorMaterial{Diffuse: mgl32.Vec3{1, 0, 0}, Shininess: 32})
	assert.Equal(t, ColorMaterialKind, cm.Kind())
	c, ok := cm.Color()
	assert.True(t, ok)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, c.Diffuse)
	_, ok = cm.Texture()
	assert.False(t, ok)
	assert.Equal(t, float32(32), cm.Shininess())

	tex := &gfxtest.Texture{}
	tm := NewTextureMaterial(TextureMaterial{Diffuse: tex, Specular: tex, Shininess: 128})
	assert.Equal(t, TextureMaterialKind, tm.Kind())
	_, ok = tm.Color()
	assert.False(t, ok)
	assert.Equal(t, "texture", tm.Kind().String())
}

const rigYAML = `
global:
  ambient: [0.1, 0.1, 0.1]
directional:
  - diffuse: [1, 1, 1]
    direction: [0, -1, 0]
positional:
  - position: [10, 10, 10]
    constant: 1
    linear: 0.09
    quadratic: 0.032
spot:
  - position: [0, 5, 0]
    direction: [0, -1, 0]
    cutoff_deg: 60
    outer_cutoff_deg: 90
    constant: 1
`

func TestParseRig(t *testing.T) {
	r, err := ParseRig([]byte(rigYAML))
	require.NoError(t, err)

	e := r.Engine()
	g, ok := e.Global()
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{0.1, 0.1, 0.1}, g.Ambient)
	assert.Equal(t, 1, e.NumDirectional())
	assert.Equal(t, float32(0.09), e.Positional(0).Linear)
	require.Equal(t, 1, e.NumSpot())
	assert.InDelta(t, 0.5, e.Spot(0).Cutoff, 1e-6)
	assert.InDelta(t, 0, e.Spot(0).OuterCutoff, 1e-6)
}

func TestParseRigRejectsBadLights(t *testing.T) {
	_, err := ParseRig([]byte("positional:\n  - position: [0, 0, 0]\n"))
	assert.ErrorContains(t, err, "attenuation")

	_, err = ParseRig([]byte("spot:\n  - cutoff_deg: 40\n    outer_cutoff_deg: 10\n    constant: 1\n"))
	assert.ErrorContains(t, err, "outer cutoff")
}
