package shader

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"scenegl/core"
	"scenegl/gfx"
	"scenegl/lighting"
)

// Program is a compiled generated program plus the runtime state needed to
// upload values for the variables it declares.
//
// The three light name lists hold the uniform element references used when
// uploading lights. Resizing them with SetDirectionalCount and friends does
// not recompile; the declared array sizes only change when Generate runs
// again.
type Program struct {
	dev    gfx.Device
	handle gfx.Program
	src    Source

	directional []string
	positional  []string
	spot        []string
}

// NewProgram generates and compiles a program. On failure the error is also
// reported to the core error channel and no program is returned.
func NewProgram(dev gfx.Device, vertexBody, fragmentBody string, vars Variables, counts LightCounts) (*Program, error) {
	p := &Program{dev: dev}
	p.SetDirectionalCount(counts.Directional)
	p.SetPositionalCount(counts.Positional)
	p.SetSpotCount(counts.Spot)
	if err := p.Generate(vertexBody, fragmentBody, vars); err != nil {
		return nil, err
	}
	return p, nil
}

// Generate regenerates and recompiles the program from the current name
// list sizes. If compilation fails the previous program stays in place.
func (p *Program) Generate(vertexBody, fragmentBody string, vars Variables) error {
	src := Generate(vertexBody, fragmentBody, vars, p.Counts())

	handle, err := p.dev.CompileProgram(src.Vertex, src.Fragment)
	if err != nil {
		var ce *core.Error
		if !errors.As(err, &ce) {
			err = core.Wrap(core.ErrShaderCompile, err, "compile generated program")
		}
		return core.Report(err)
	}

	if p.handle != nil {
		p.handle.Delete()
	}
	p.handle = handle
	p.src = src
	// Arrays declared with a zero count still hold one element.
	p.SetDirectionalCount(src.Counts.Directional)
	p.SetPositionalCount(src.Counts.Positional)
	p.SetSpotCount(src.Counts.Spot)

	core.Logger().Debug("shader program generated", "vars", src.Vars.String(),
		"directional", src.Counts.Directional, "positional", src.Counts.Positional, "spot", src.Counts.Spot)
	return nil
}

func resizeNames(names []string, n int, array string) []string {
	n = max(n, 0)
	if n <= len(names) {
		return names[:n]
	}
	for i := len(names); i < n; i++ {
		names = append(names, fmt.Sprintf("%s[%d]", array, i))
	}
	return names
}

func (p *Program) SetDirectionalCount(n int) {
	p.directional = resizeNames(p.directional, n, "sgl_DirectionalLights")
}

func (p *Program) SetPositionalCount(n int) {
	p.positional = resizeNames(p.positional, n, "sgl_PositionalLights")
}

func (p *Program) SetSpotCount(n int) {
	p.spot = resizeNames(p.spot, n, "sgl_SpotLights")
}

// Counts returns the current name list sizes.
func (p *Program) Counts() LightCounts {
	return LightCounts{
		Directional: len(p.directional),
		Positional:  len(p.positional),
		Spot:        len(p.spot),
	}
}

// Variables returns the mask the program was generated with, including
// light bits forced on by nonzero counts.
func (p *Program) Variables() Variables { return p.src.Vars }

// Has reports whether every bit in v is declared.
func (p *Program) Has(v Variables) bool { return p.src.Vars.Has(v) }

func (p *Program) Source() Source { return p.src }

// Handle returns the compiled program for drawing.
func (p *Program) Handle() gfx.Program { return p.handle }

func (p *Program) Delete() {
	if p.handle != nil {
		p.handle.Delete()
		p.handle = nil
	}
}

// ── Setters ──────────────────────────────────────────────────────────────────
// Setters write unconditionally; callers gate on Has.

func (p *Program) SetColor(c mgl32.Vec4)            { p.handle.SetVec4("sgl_Color", c) }
func (p *Program) SetView(m mgl32.Mat4)             { p.handle.SetMat4("sgl_View", m) }
func (p *Program) SetModel(m mgl32.Mat4)            { p.handle.SetMat4("sgl_Model", m) }
func (p *Program) SetProj(m mgl32.Mat4)             { p.handle.SetMat4("sgl_Proj", m) }
func (p *Program) SetModelView(m mgl32.Mat4)        { p.handle.SetMat4("sgl_ModelView", m) }
func (p *Program) SetModelViewProj(m mgl32.Mat4)    { p.handle.SetMat4("sgl_ModelViewProj", m) }
func (p *Program) SetInverseModelView(m mgl32.Mat4) { p.handle.SetMat4("sgl_InverseModelView", m) }
func (p *Program) SetTexture(t gfx.Texture)         { p.handle.SetTexture("sgl_Texture", t) }

func (p *Program) SetMaterial(m lighting.ColorMaterial) {
	m.Upload(p.handle, "sgl_Material")
}

func (p *Program) SetTextureMaterial(m lighting.TextureMaterial) {
	m.Upload(p.handle, "sgl_TextureMaterial")
}

func (p *Program) SetGlobalLight(l lighting.GlobalLight) {
	l.Upload(p.handle, "sgl_GlobalLight")
}

func (p *Program) SetDirectionalLight(i int, l lighting.DirectionalLight) {
	l.Upload(p.handle, p.directional[i])
}

func (p *Program) SetPositionalLight(i int, l lighting.PositionalLight) {
	l.Upload(p.handle, p.positional[i])
}

func (p *Program) SetSpotLight(i int, l lighting.SpotLight) {
	l.Upload(p.handle, p.spot[i])
}

// SetMaterialValue uploads m into whichever material slot matches its
// variant, if the program declares that slot.
func (p *Program) SetMaterialValue(m lighting.Material) {
	if c, ok := m.Color(); ok && p.Has(Material) {
		p.SetMaterial(c)
	}
	if t, ok := m.Texture(); ok && p.Has(TextureMaterial) {
		p.SetTextureMaterial(t)
	}
}

// SetLighting uploads the lights of e the program declares. Each array
// receives the first min(engine count, name list size) lights in insertion
// order; the rest are dropped. The array's size uniform is set to the
// number uploaded.
func (p *Program) SetLighting(e *lighting.Engine) {
	if p.Has(GlobalLight) {
		if g, ok := e.Global(); ok {
			p.SetGlobalLight(g)
		}
	}
	if p.Has(DirectionalLights) {
		n := clip("directional", e.NumDirectional(), len(p.directional))
		for i, l := range e.Directionals()[:n] {
			p.SetDirectionalLight(i, l)
		}
		p.handle.SetInt("sgl_DirectionalLightsSize", int32(n))
	}
	if p.Has(PositionalLights) {
		n := clip("positional", e.NumPositional(), len(p.positional))
		for i, l := range e.Positionals()[:n] {
			p.SetPositionalLight(i, l)
		}
		p.handle.SetInt("sgl_PositionalLightsSize", int32(n))
	}
	if p.Has(SpotLights) {
		n := clip("spot", e.NumSpot(), len(p.spot))
		for i, l := range e.Spots()[:n] {
			p.SetSpotLight(i, l)
		}
		p.handle.SetInt("sgl_SpotLightsSize", int32(n))
	}
}

func clip(kind string, have, declared int) int {
	if have > declared {
		core.Logger().Debug("lights clipped to declared array size", "kind", kind, "have", have, "declared", declared)
		return declared
	}
	return have
}
