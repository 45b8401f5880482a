package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"scenegl/core"
	"scenegl/gfx"
	"scenegl/lighting"
	"scenegl/shader"
)

// Settings controls one draw. A nil Shader selects the object's default
// shader; a nil Lighting uploads no lights; the zero Material uploads no
// material.
type Settings struct {
	Color    core.Color
	Shader   *shader.Program
	Lighting *lighting.Engine
	Material lighting.Material
}

// setup uploads everything p declares for one draw: texture, lights, color,
// material, the model-view family, then model, view and projection.
func (c *Context) setup(p *shader.Program, model mgl32.Mat4, s Settings, tex gfx.Texture) {
	if tex != nil && p.Has(shader.Texture) {
		p.SetTexture(tex)
	}
	if s.Lighting != nil {
		p.SetLighting(s.Lighting)
	}
	if p.Has(shader.Color) {
		p.SetColor(s.Color.Vec4())
	}
	p.SetMaterialValue(s.Material)

	if p.Has(shader.ModelViewProj) || p.Has(shader.ModelView) || p.Has(shader.InverseModelView) {
		mv := c.view.Mul4(model)
		if p.Has(shader.InverseModelView) {
			p.SetInverseModelView(mv.Inv())
		}
		if p.Has(shader.ModelView) {
			p.SetModelView(mv)
		}
		if p.Has(shader.ModelViewProj) {
			p.SetModelViewProj(c.proj.Mul4(mv))
		}
	}

	if p.Has(shader.Model) {
		p.SetModel(model)
	}
	if p.Has(shader.View) {
		p.SetView(c.view)
	}
	if p.Has(shader.Proj) {
		p.SetProj(c.proj)
	}
}
