package shader

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scenegl/core"
	"scenegl/gfx/gfxtest"
	"scenegl/lighting"
)

// decls returns the exact declaration text expected in each stage.
func decls(info Info) (vert, frag string) {
	switch info.Kind {
	case Uniform:
		if info.SizeName != "" {
			d := fmt.Sprintf("uniform %s %s[", info.Type, info.Name)
			return d, d
		}
		d := fmt.Sprintf("uniform %s %s;", info.Type, info.Name)
		return d, d
	case Attribute:
		return fmt.Sprintf("in %s %s;", info.Type, info.Name), ""
	default:
		return fmt.Sprintf("out %s %s;", info.Type, info.Name), fmt.Sprintf("in %s %s;", info.Type, info.Name)
	}
}

func assertMask(t *testing.T, vars Variables, counts LightCounts) {
	t.Helper()
	src := Generate("void main() {}\n", "void main() {}\n", vars, counts)

	want := vars
	if counts.Directional > 0 {
		want |= DirectionalLights
	}
	if counts.Positional > 0 {
		want |= PositionalLights
	}
	if counts.Spot > 0 {
		want |= SpotLights
	}
	require.Equal(t, want, src.Vars, "mask %s", vars)

	for _, info := range registry {
		vd, fd := decls(info)
		set := want&info.Bit != 0
		assert.Equal(t, set, strings.Contains(src.Vertex, vd), "%s in vertex stage for %s", info.Name, vars)
		if fd != "" {
			assert.Equal(t, set, strings.Contains(src.Fragment, fd), "%s in fragment stage for %s", info.Name, vars)
		}
	}
}

func TestMaskRoundTripSingleBits(t *testing.T) {
	for _, info := range registry {
		assertMask(t, info.Bit, LightCounts{})
	}
	assertMask(t, 0, LightCounts{})
	assertMask(t, AllVariables, LightCounts{})
}

func TestMaskRoundTripRandomSubsets(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for range 2000 {
		vars := Variables(r.Uint32()) & AllVariables
		counts := LightCounts{Directional: r.IntN(3), Positional: r.IntN(3), Spot: r.IntN(3)}
		assertMask(t, vars, counts)
	}
}

func TestProgramHasMatchesMask(t *testing.T) {
	dev := gfxtest.NewDevice()
	vars := Color | ModelViewProj | Pos | TextPos | VertTextPos | Texture
	p, err := NewProgram(dev, "", "", vars, LightCounts{Spot: 2})
	require.NoError(t, err)

	for _, info := range registry {
		want := (vars|SpotLights)&info.Bit != 0
		assert.Equal(t, want, p.Has(info.Bit), info.Name)
	}
}

func TestZeroCountDeclaresOneElement(t *testing.T) {
	src := Generate("", "", DirectionalLights, LightCounts{})
	assert.Equal(t, 1, src.Counts.Directional)
	assert.Contains(t, src.Vertex, "uniform sgl_DirectionalLight_t sgl_DirectionalLights[1];")
	assert.Contains(t, src.Fragment, "uniform sgl_DirectionalLight_t sgl_DirectionalLights[1];")
	assert.Contains(t, src.Fragment, "uniform int sgl_DirectionalLightsSize;")
}

func TestNonzeroCountForcesBit(t *testing.T) {
	src := Generate("", "", Color, LightCounts{Positional: 3})
	assert.True(t, src.Vars.Has(PositionalLights))
	assert.Contains(t, src.Fragment, "uniform sgl_PositionalLight_t sgl_PositionalLights[3];")
	assert.NotContains(t, src.Fragment, "sgl_SpotLights")
}

func TestStructTypesInBothStages(t *testing.T) {
	vars := Material | TextureMaterial | GlobalLight | DirectionalLights | PositionalLights | SpotLights
	src := Generate("", "", vars, LightCounts{})
	for _, l := range []*Layout{MaterialLayout, TextureMaterialLayout, GlobalLightLayout, DirectionalLightLayout, PositionalLightLayout, SpotLightLayout} {
		assert.Contains(t, src.Vertex, l.Decl())
		assert.Contains(t, src.Fragment, l.Decl())
	}
	assert.Contains(t, src.Fragment,
		"struct sgl_SpotLight_t { vec3 ambient; vec3 diffuse; vec3 specular; vec3 direction; vec3 position; float cutoff; float outer_cutoff; float constant; float linear; float quadratic; };")
}

func TestGeneratedLayout(t *testing.T) {
	src := Generate("VERTEX BODY", "FRAGMENT BODY", ModelViewProj|Color|Pos|VertColor, LightCounts{})

	assert.True(t, strings.HasPrefix(src.Vertex, Version+"\n"))
	assert.True(t, strings.HasPrefix(src.Fragment, Version+"\n"))
	assert.True(t, strings.HasSuffix(src.Vertex, "VERTEX BODY"))
	assert.True(t, strings.HasSuffix(src.Fragment, "out vec4 sgl_OutColor;\nFRAGMENT BODY"))
	assert.NotContains(t, src.Vertex, "sgl_OutColor")
	assert.Contains(t, src.Vertex, "layout (location = 0) in vec3 sgl_Pos;")
	assert.NotContains(t, src.Fragment, "sgl_Pos;")

	// Declaration order follows bit order: Color before ModelViewProj.
	assert.Less(t, strings.Index(src.Vertex, "sgl_Color;"), strings.Index(src.Vertex, "sgl_ModelViewProj;"))
}

func TestAttributeLocations(t *testing.T) {
	src := Generate("", "", Pos|Normal|ColorAttrib|TextPos, LightCounts{})
	assert.Contains(t, src.Vertex, "layout (location = 0) in vec3 sgl_Pos;\n"+
		"layout (location = 1) in vec3 sgl_Normal;\n"+
		"layout (location = 2) in vec4 sgl_ColorAttrib;\n"+
		"layout (location = 3) in vec2 sgl_TextPos;\n")
}

func TestPhongRejectsMaterialMisconfiguration(t *testing.T) {
	for name, vars := range map[string]Variables{
		"both":    Material | TextureMaterial,
		"neither": Color,
	} {
		t.Run(name, func(t *testing.T) {
			core.DrainErrors()
			dev := gfxtest.NewDevice()

			p, err := Phong(dev, LightCounts{Directional: 1}, vars)
			assert.Nil(t, p)
			require.Error(t, err)
			assert.True(t, core.IsCode(err, core.ErrShaderConfig))
			assert.Empty(t, dev.Programs, "no program may be compiled")

			errs := core.DrainErrors()
			require.Len(t, errs, 1)
			assert.Equal(t, core.ErrShaderConfig, errs[0].Code)
		})
	}
}

func TestPhongAddsRequiredVariables(t *testing.T) {
	dev := gfxtest.NewDevice()
	p, err := Phong(dev, LightCounts{Directional: 1, Spot: 2}, TextureMaterial)
	require.NoError(t, err)

	assert.True(t, p.Has(PhongVariables|TextureMaterial|TextPos|VertTextPos|DirectionalLights|SpotLights))
	assert.False(t, p.Has(PositionalLights))
	assert.False(t, p.Has(Material))

	src := p.Source()
	assert.Contains(t, src.Fragment, "i < sgl_DirectionalLightsSize && i < 1")
	assert.Contains(t, src.Fragment, "i < sgl_SpotLightsSize && i < 2")
	assert.NotContains(t, src.Fragment, "sgl_PositionalLightsSize")
	assert.Contains(t, src.Fragment, "texture(sgl_TextureMaterial.diffuse, sgl_VertTextPos)")
	assert.Contains(t, src.Vertex, "sgl_VertTextPos = sgl_TextPos;")
	assert.Contains(t, src.Fragment, "pow(max(dot(V, reflect(-L, N)), 0.0), sgl_matShininess())")
}

func TestPhongColorMaterialHasNoTexCoords(t *testing.T) {
	p, err := Phong(gfxtest.NewDevice(), LightCounts{Positional: 1}, Material)
	require.NoError(t, err)
	assert.False(t, p.Has(TextPos))
	assert.Contains(t, p.Source().Fragment, "sgl_attenuation(sgl_PositionalLights[i].constant")
}

func fivePositional() *lighting.Engine {
	e := lighting.NewEngine()
	for i := range 5 {
		e.AddPositional(lighting.PositionalLight{
			Diffuse:  mgl32.Vec3{1, 1, 1},
			Position: mgl32.Vec3{float32(i), 0, 0},
			Constant: 1,
		})
	}
	return e
}

func TestSetLightingClipsToDeclaredSize(t *testing.T) {
	dev := gfxtest.NewDevice()
	p, err := Phong(dev, LightCounts{Positional: 2}, Material)
	require.NoError(t, err)

	p.SetLighting(fivePositional())
	h := dev.Programs[0]

	assert.Equal(t, int32(2), h.Values["sgl_PositionalLightsSize"])
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, h.Values["sgl_PositionalLights[0].position"])
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, h.Values["sgl_PositionalLights[1].position"])
	for _, name := range h.Sets {
		for i := 2; i < 5; i++ {
			assert.NotContains(t, name, fmt.Sprintf("sgl_PositionalLights[%d]", i))
		}
	}
}

func TestSetLightingSendsFewerThanDeclared(t *testing.T) {
	dev := gfxtest.NewDevice()
	p, err := Phong(dev, LightCounts{Directional: 4}, Material)
	require.NoError(t, err)

	e := lighting.NewEngine()
	e.AddDirectional(lighting.DirectionalLight{Direction: mgl32.Vec3{0, -1, 0}})
	p.SetLighting(e)

	h := dev.Programs[0]
	assert.Equal(t, int32(1), h.Values["sgl_DirectionalLightsSize"])
	assert.NotContains(t, h.Values, "sgl_DirectionalLights[1].direction")
	// The global light is declared but absent from the engine.
	assert.NotContains(t, h.Values, "sgl_GlobalLight.ambient")
}

func TestSetLightingSkipsUndeclared(t *testing.T) {
	dev := gfxtest.NewDevice()
	p, err := NewProgram(dev, "", "", Color, LightCounts{})
	require.NoError(t, err)

	e := fivePositional()
	e.SetGlobal(lighting.GlobalLight{Ambient: mgl32.Vec3{1, 1, 1}})
	p.SetLighting(e)
	assert.Empty(t, dev.Programs[0].Sets)
}

func TestStructFieldsMatchUpload(t *testing.T) {
	tex := &gfxtest.Texture{}
	cases := []struct {
		layout *Layout
		upload func(*gfxtest.Program, string)
	}{
		{MaterialLayout, func(p *gfxtest.Program, n string) { lighting.ColorMaterial{}.Upload(p, n) }},
		{TextureMaterialLayout, func(p *gfxtest.Program, n string) {
			lighting.TextureMaterial{Diffuse: tex, Specular: tex}.Upload(p, n)
		}},
		{GlobalLightLayout, func(p *gfxtest.Program, n string) { lighting.GlobalLight{}.Upload(p, n) }},
		{DirectionalLightLayout, func(p *gfxtest.Program, n string) { lighting.DirectionalLight{}.Upload(p, n) }},
		{PositionalLightLayout, func(p *gfxtest.Program, n string) { lighting.PositionalLight{}.Upload(p, n) }},
		{SpotLightLayout, func(p *gfxtest.Program, n string) { lighting.SpotLight{}.Upload(p, n) }},
	}
	for _, c := range cases {
		t.Run(c.layout.TypeName, func(t *testing.T) {
			p := &gfxtest.Program{Values: map[string]any{}}
			c.upload(p, "x")
			assert.Equal(t, c.layout.FieldNames("x"), p.Sets)
		})
	}
}

func TestNameListsResizeWithoutRecompiling(t *testing.T) {
	dev := gfxtest.NewDevice()
	p, err := NewProgram(dev, "", "", SpotLights, LightCounts{})
	require.NoError(t, err)
	assert.Equal(t, LightCounts{Spot: 1}, p.Counts())

	before := p.Source()
	p.SetSpotCount(3)
	assert.Equal(t, 3, p.Counts().Spot)
	assert.Equal(t, before, p.Source())
	assert.Len(t, dev.Programs, 1)

	require.NoError(t, p.Generate("", "", SpotLights))
	assert.Len(t, dev.Programs, 2)
	assert.True(t, dev.Programs[0].Deleted)
	assert.Contains(t, p.Source().Fragment, "sgl_SpotLights[3];")
}

func TestCompileFailureIsReported(t *testing.T) {
	core.DrainErrors()
	dev := gfxtest.NewDevice()
	dev.FailCompile = errors.New("0:3: syntax error")

	p, err := NewProgram(dev, "garbage", "", Color, LightCounts{})
	assert.Nil(t, p)
	assert.True(t, core.IsCode(err, core.ErrShaderCompile))
	assert.ErrorContains(t, err, "syntax error")
	assert.Len(t, core.DrainErrors(), 1)
}

func TestFailedRegenerateKeepsPreviousProgram(t *testing.T) {
	core.DrainErrors()
	dev := gfxtest.NewDevice()
	p, err := NewProgram(dev, "", "", Color, LightCounts{})
	require.NoError(t, err)
	prev := p.Handle()

	dev.FailCompile = core.Errorf(core.ErrProgramLink, "link failed")
	err = p.Generate("", "", Color|Model)
	assert.True(t, core.IsCode(err, core.ErrProgramLink))
	assert.Same(t, prev, p.Handle())
	assert.False(t, p.Has(Model))
	core.DrainErrors()
}

func TestSetMaterialValueUsesMatchingSlot(t *testing.T) {
	dev := gfxtest.NewDevice()
	p, err := NewProgram(dev, "", "", Material, LightCounts{})
	require.NoError(t, err)

	tex := &gfxtest.Texture{}
	p.SetMaterialValue(lighting.NewTextureMaterial(lighting.TextureMaterial{Diffuse: tex, Specular: tex}))
	assert.Empty(t, dev.Programs[0].Sets)

	p.SetMaterialValue(lighting.NewColorMaterial(lighting.ColorMaterial{Shininess: 8}))
	assert.Equal(t, float32(8), dev.Programs[0].Values["sgl_Material.shininess"])
}

func TestVariablesString(t *testing.T) {
	assert.Equal(t, "Color|ModelViewProj|Pos", (Color | ModelViewProj | Pos).String())
	assert.Equal(t, "0", Variables(0).String())
}
