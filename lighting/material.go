package lighting

import (
	"github.com/go-gl/mathgl/mgl32"

	"scenegl/gfx"
)

// MaterialKind selects the variant held by a Material.
type MaterialKind int

const (
	NoMaterial MaterialKind = iota
	ColorMaterialKind
	TextureMaterialKind
)

func (k MaterialKind) String() string {
	switch k {
	case ColorMaterialKind:
		return "color"
	case TextureMaterialKind:
		return "texture"
	default:
		return "none"
	}
}

// ColorMaterial is a per-surface Phong color triplet.
type ColorMaterial struct {
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
	Shininess float32
}

func (m ColorMaterial) Upload(u gfx.Uniforms, name string) {
	u.SetVec3(name+".ambient", m.Ambient)
	u.SetVec3(name+".diffuse", m.Diffuse)
	u.SetVec3(name+".specular", m.Specular)
	u.SetFloat(name+".shininess", m.Shininess)
}

// TextureMaterial samples diffuse and specular color from textures.
type TextureMaterial struct {
	Diffuse   gfx.Texture
	Specular  gfx.Texture
	Shininess float32
}

func (m TextureMaterial) Upload(u gfx.Uniforms, name string) {
	u.SetTexture(name+".diffuse", m.Diffuse)
	u.SetTexture(name+".specular", m.Specular)
	u.SetFloat(name+".shininess", m.Shininess)
}

// Material holds exactly one of ColorMaterial or TextureMaterial, fixed at
// construction. The zero Material holds neither.
type Material struct {
	kind    MaterialKind
	color   ColorMaterial
	texture TextureMaterial
}

func NewColorMaterial(m ColorMaterial) Material {
	return Material{kind: ColorMaterialKind, color: m}
}

func NewTextureMaterial(m TextureMaterial) Material {
	return Material{kind: TextureMaterialKind, texture: m}
}

func (m Material) Kind() MaterialKind { return m.kind }

func (m Material) Color() (ColorMaterial, bool) {
	return m.color, m.kind == ColorMaterialKind
}

func (m Material) Texture() (TextureMaterial, bool) {
	return m.texture, m.kind == TextureMaterialKind
}

func (m Material) Shininess() float32 {
	switch m.kind {
	case ColorMaterialKind:
		return m.color.Shininess
	case TextureMaterialKind:
		return m.texture.Shininess
	}
	return 0
}
