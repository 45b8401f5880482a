package shader

import (
	"fmt"
	"strings"

	"scenegl/gfx"
)

// Variables is a mask over the optional inputs and outputs a program
// declares. Bit order is declaration order in generated source.
type Variables uint32

const (
	// Uniforms, declared in both stages.
	Color Variables = 1 << iota
	View
	Model
	Proj
	ModelView
	ModelViewProj
	InverseModelView
	Texture
	Material
	TextureMaterial
	GlobalLight
	DirectionalLights
	PositionalLights
	SpotLights

	// Vertex attributes, declared in the vertex stage only.
	Pos
	Normal
	ColorAttrib
	TextPos

	// Varyings: out in the vertex stage, in in the fragment stage.
	VertPos
	VertNormal
	VertColor
	VertTextPos

	numVariables = iota
)

const (
	uniformMask   = Color | View | Model | Proj | ModelView | ModelViewProj | InverseModelView | Texture | Material | TextureMaterial | GlobalLight | DirectionalLights | PositionalLights | SpotLights
	attributeMask = Pos | Normal | ColorAttrib | TextPos
	varyingMask   = VertPos | VertNormal | VertColor | VertTextPos
	lightMask     = DirectionalLights | PositionalLights | SpotLights

	// AllVariables has every bit set.
	AllVariables = uniformMask | attributeMask | varyingMask
)

// Kind is the storage class of a variable.
type Kind int

const (
	Uniform Kind = iota
	Attribute
	Varying
)

func (k Kind) String() string {
	switch k {
	case Uniform:
		return "uniform"
	case Attribute:
		return "attribute"
	default:
		return "varying"
	}
}

// Field is one member of a struct-typed uniform.
type Field struct {
	Type string
	Name string
}

// Layout is the GLSL struct backing a struct-typed uniform. Field order must
// match the Upload method of the corresponding lighting type.
type Layout struct {
	TypeName string
	Fields   []Field
}

// Decl returns the GLSL struct declaration.
func (l *Layout) Decl() string {
	var b strings.Builder
	b.WriteString("struct ")
	b.WriteString(l.TypeName)
	b.WriteString(" {")
	for _, f := range l.Fields {
		fmt.Fprintf(&b, " %s %s;", f.Type, f.Name)
	}
	b.WriteString(" };")
	return b.String()
}

// FieldNames returns name+"."+field for every field in order.
func (l *Layout) FieldNames(name string) []string {
	out := make([]string, len(l.Fields))
	for i, f := range l.Fields {
		out[i] = name + "." + f.Name
	}
	return out
}

var (
	MaterialLayout = &Layout{"sgl_Material_t", []Field{
		{"vec3", "ambient"}, {"vec3", "diffuse"}, {"vec3", "specular"}, {"float", "shininess"},
	}}
	TextureMaterialLayout = &Layout{"sgl_TextureMaterial_t", []Field{
		{"sampler2D", "diffuse"}, {"sampler2D", "specular"}, {"float", "shininess"},
	}}
	GlobalLightLayout = &Layout{"sgl_GlobalLight_t", []Field{
		{"vec3", "ambient"},
	}}
	DirectionalLightLayout = &Layout{"sgl_DirectionalLight_t", []Field{
		{"vec3", "ambient"}, {"vec3", "diffuse"}, {"vec3", "specular"}, {"vec3", "direction"},
	}}
	PositionalLightLayout = &Layout{"sgl_PositionalLight_t", []Field{
		{"vec3", "ambient"}, {"vec3", "diffuse"}, {"vec3", "specular"}, {"vec3", "position"},
		{"float", "constant"}, {"float", "linear"}, {"float", "quadratic"},
	}}
	SpotLightLayout = &Layout{"sgl_SpotLight_t", []Field{
		{"vec3", "ambient"}, {"vec3", "diffuse"}, {"vec3", "specular"}, {"vec3", "direction"}, {"vec3", "position"},
		{"float", "cutoff"}, {"float", "outer_cutoff"},
		{"float", "constant"}, {"float", "linear"}, {"float", "quadratic"},
	}}
)

// Info describes one registry entry.
type Info struct {
	Bit  Variables
	Name string
	Kind Kind
	// Type is the GLSL type; for struct uniforms it is Layout.TypeName.
	Type string
	// Location is the attribute location for attributes.
	Location uint32
	Layout   *Layout
	// SizeName is the int uniform holding the uploaded element count of a
	// light array.
	SizeName string
}

// registry is indexed by bit position.
var registry = [numVariables]Info{
	{Bit: Color, Name: "sgl_Color", Kind: Uniform, Type: "vec4"},
	{Bit: View, Name: "sgl_View", Kind: Uniform, Type: "mat4"},
	{Bit: Model, Name: "sgl_Model", Kind: Uniform, Type: "mat4"},
	{Bit: Proj, Name: "sgl_Proj", Kind: Uniform, Type: "mat4"},
	{Bit: ModelView, Name: "sgl_ModelView", Kind: Uniform, Type: "mat4"},
	{Bit: ModelViewProj, Name: "sgl_ModelViewProj", Kind: Uniform, Type: "mat4"},
	{Bit: InverseModelView, Name: "sgl_InverseModelView", Kind: Uniform, Type: "mat4"},
	{Bit: Texture, Name: "sgl_Texture", Kind: Uniform, Type: "sampler2D"},
	{Bit: Material, Name: "sgl_Material", Kind: Uniform, Type: MaterialLayout.TypeName, Layout: MaterialLayout},
	{Bit: TextureMaterial, Name: "sgl_TextureMaterial", Kind: Uniform, Type: TextureMaterialLayout.TypeName, Layout: TextureMaterialLayout},
	{Bit: GlobalLight, Name: "sgl_GlobalLight", Kind: Uniform, Type: GlobalLightLayout.TypeName, Layout: GlobalLightLayout},
	{Bit: DirectionalLights, Name: "sgl_DirectionalLights", Kind: Uniform, Type: DirectionalLightLayout.TypeName, Layout: DirectionalLightLayout, SizeName: "sgl_DirectionalLightsSize"},
	{Bit: PositionalLights, Name: "sgl_PositionalLights", Kind: Uniform, Type: PositionalLightLayout.TypeName, Layout: PositionalLightLayout, SizeName: "sgl_PositionalLightsSize"},
	{Bit: SpotLights, Name: "sgl_SpotLights", Kind: Uniform, Type: SpotLightLayout.TypeName, Layout: SpotLightLayout, SizeName: "sgl_SpotLightsSize"},
	{Bit: Pos, Name: "sgl_Pos", Kind: Attribute, Type: "vec3", Location: gfx.PosLocation},
	{Bit: Normal, Name: "sgl_Normal", Kind: Attribute, Type: "vec3", Location: gfx.NormalLocation},
	{Bit: ColorAttrib, Name: "sgl_ColorAttrib", Kind: Attribute, Type: "vec4", Location: gfx.ColorAttribLocation},
	{Bit: TextPos, Name: "sgl_TextPos", Kind: Attribute, Type: "vec2", Location: gfx.TextPosLocation},
	{Bit: VertPos, Name: "sgl_VertPos", Kind: Varying, Type: "vec3"},
	{Bit: VertNormal, Name: "sgl_VertNormal", Kind: Varying, Type: "vec3"},
	{Bit: VertColor, Name: "sgl_VertColor", Kind: Varying, Type: "vec4"},
	{Bit: VertTextPos, Name: "sgl_VertTextPos", Kind: Varying, Type: "vec2"},
}

// Each yields the registry entries whose bits are set in v, in declaration order.
func (v Variables) Each(yield func(Info) bool) {
	for i := range registry {
		if v&registry[i].Bit != 0 && !yield(registry[i]) {
			return
		}
	}
}

// Lookup returns the registry entry for a single bit.
func Lookup(bit Variables) (Info, bool) {
	for _, info := range registry {
		if info.Bit == bit {
			return info, true
		}
	}
	return Info{}, false
}

func (v Variables) Has(bits Variables) bool { return v&bits == bits }

func (v Variables) String() string {
	if v == 0 {
		return "0"
	}
	var names []string
	for info := range v.Each {
		names = append(names, strings.TrimPrefix(info.Name, "sgl_"))
	}
	if rest := v &^ AllVariables; rest != 0 {
		names = append(names, fmt.Sprintf("0x%x", uint32(rest)))
	}
	return strings.Join(names, "|")
}
