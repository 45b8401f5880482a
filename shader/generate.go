// Package shader negotiates which optional variables a program exposes,
// generates matching GLSL, and uploads uniforms for declared variables only.
package shader

import (
	"fmt"
	"strings"
)

// Version is the first line of every generated stage.
const Version = "#version 410 core"

// OutColor is the fragment output every generated fragment stage declares.
const OutColor = "sgl_OutColor"

// LightCounts are the declared array sizes of the three light arrays.
type LightCounts struct {
	Directional int
	Positional  int
	Spot        int
}

func (c LightCounts) get(bit Variables) int {
	switch bit {
	case DirectionalLights:
		return c.Directional
	case PositionalLights:
		return c.Positional
	case SpotLights:
		return c.Spot
	}
	return 0
}

func (c *LightCounts) set(bit Variables, n int) {
	switch bit {
	case DirectionalLights:
		c.Directional = n
	case PositionalLights:
		c.Positional = n
	case SpotLights:
		c.Spot = n
	}
}

// Resolve reconciles a mask with light counts: a nonzero count turns its
// array bit on, and a set array bit with a zero count declares one element.
func Resolve(vars Variables, counts LightCounts) (Variables, LightCounts) {
	for _, bit := range []Variables{DirectionalLights, PositionalLights, SpotLights} {
		n := max(counts.get(bit), 0)
		if n > 0 {
			vars |= bit
		} else if vars&bit != 0 {
			n = 1
		}
		counts.set(bit, n)
	}
	return vars, counts
}

// Source is a generated pair of stages with the mask and array sizes they
// were generated from.
type Source struct {
	Vertex   string
	Fragment string
	Vars     Variables
	Counts   LightCounts
}

// Generate prefixes the vertex and fragment bodies with declarations for
// every variable in vars. Bodies contain main and any helpers but no
// version line, uniforms, attributes or varyings.
//
// Uniforms are declared in both stages, struct types included. Attributes
// are declared in the vertex stage with fixed locations. Varyings are out in
// the vertex stage and in in the fragment stage. The fragment stage always
// declares sgl_OutColor.
func Generate(vertexBody, fragmentBody string, vars Variables, counts LightCounts) Source {
	vars, counts = Resolve(vars, counts)

	var vert, frag strings.Builder
	vert.WriteString(Version + "\n")
	frag.WriteString(Version + "\n")

	for info := range vars.Each {
		switch info.Kind {
		case Uniform:
			decl := uniformDecl(info, counts)
			vert.WriteString(decl)
			frag.WriteString(decl)
		case Attribute:
			fmt.Fprintf(&vert, "layout (location = %d) in %s %s;\n", info.Location, info.Type, info.Name)
		case Varying:
			fmt.Fprintf(&vert, "out %s %s;\n", info.Type, info.Name)
			fmt.Fprintf(&frag, "in %s %s;\n", info.Type, info.Name)
		}
	}
	frag.WriteString("out vec4 " + OutColor + ";\n")

	vert.WriteString(vertexBody)
	frag.WriteString(fragmentBody)

	return Source{
		Vertex:   vert.String(),
		Fragment: frag.String(),
		Vars:     vars,
		Counts:   counts,
	}
}

func uniformDecl(info Info, counts LightCounts) string {
	var b strings.Builder
	if info.Layout != nil {
		b.WriteString(info.Layout.Decl())
		b.WriteByte('\n')
	}
	if info.SizeName != "" {
		fmt.Fprintf(&b, "uniform int %s;\n", info.SizeName)
		fmt.Fprintf(&b, "uniform %s %s[%d];\n", info.Type, info.Name, counts.get(info.Bit))
		return b.String()
	}
	fmt.Fprintf(&b, "uniform %s %s;\n", info.Type, info.Name)
	return b.String()
}
