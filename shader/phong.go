package shader

import (
	"fmt"
	"strings"

	"scenegl/core"
	"scenegl/gfx"
)

// PhongVariables are added to the caller's mask by Phong.
const PhongVariables = ModelView | InverseModelView | View | ModelViewProj | GlobalLight | Pos | Normal | VertPos | VertNormal

// CheckMaterial validates that exactly one material slot is requested.
func CheckMaterial(vars Variables) error {
	switch {
	case vars.Has(Material | TextureMaterial):
		return core.Errorf(core.ErrShaderConfig, "lit program requests both Material and TextureMaterial (vars %s)", vars)
	case vars&(Material|TextureMaterial) == 0:
		return core.Errorf(core.ErrShaderConfig, "lit program requests neither Material nor TextureMaterial (vars %s)", vars)
	}
	return nil
}

// Phong builds a lit program with ambient, Lambert diffuse and Phong
// specular terms for every declared light. vars must select exactly one of
// Material or TextureMaterial; anything else is reported as a configuration
// error and no program is built.
//
// Lighting is computed in view space. Light directions and positions are
// uploaded in world space and moved into view space with sgl_View.
func Phong(dev gfx.Device, counts LightCounts, vars Variables) (*Program, error) {
	if err := CheckMaterial(vars); err != nil {
		return nil, core.Report(err)
	}
	vars |= PhongVariables
	if vars.Has(TextureMaterial) {
		vars |= TextPos | VertTextPos
	}
	vars, counts = Resolve(vars, counts)
	vert, frag := PhongBodies(vars, counts)
	return NewProgram(dev, vert, frag, vars, counts)
}

// PhongBodies returns the vertex and fragment bodies for a resolved mask.
func PhongBodies(vars Variables, counts LightCounts) (vertex, fragment string) {
	var v strings.Builder
	v.WriteString(`void main()
{
    vec4 viewPos = sgl_ModelView * vec4(sgl_Pos, 1.0);
    sgl_VertPos = viewPos.xyz;
    sgl_VertNormal = mat3(transpose(sgl_InverseModelView)) * sgl_Normal;
`)
	if vars.Has(VertTextPos) {
		v.WriteString("    sgl_VertTextPos = sgl_TextPos;\n")
	}
	v.WriteString("    gl_Position = sgl_ModelViewProj * vec4(sgl_Pos, 1.0);\n}\n")

	var f strings.Builder
	if vars.Has(TextureMaterial) {
		f.WriteString(phongTextureMaterial)
	} else {
		f.WriteString(phongColorMaterial)
	}
	f.WriteString(phongTerms)
	f.WriteString(`void main()
{
    vec3 N = normalize(sgl_VertNormal);
    vec3 V = normalize(-sgl_VertPos);
    vec3 color = sgl_GlobalLight.ambient * sgl_matAmbient();
`)
	if vars.Has(DirectionalLights) {
		fmt.Fprintf(&f, phongDirectional, counts.Directional)
	}
	if vars.Has(PositionalLights) {
		fmt.Fprintf(&f, phongPositional, counts.Positional)
	}
	if vars.Has(SpotLights) {
		fmt.Fprintf(&f, phongSpot, counts.Spot)
	}
	f.WriteString("    " + OutColor + " = vec4(color, 1.0);\n}\n")
	return v.String(), f.String()
}

const phongColorMaterial = `
vec3 sgl_matAmbient() { return sgl_Material.ambient; }
vec3 sgl_matDiffuse() { return sgl_Material.diffuse; }
vec3 sgl_matSpecular() { return sgl_Material.specular; }
float sgl_matShininess() { return sgl_Material.shininess; }
`

const phongTextureMaterial = `
vec3 sgl_matAmbient() { return texture(sgl_TextureMaterial.diffuse, sgl_VertTextPos).rgb; }
vec3 sgl_matDiffuse() { return texture(sgl_TextureMaterial.diffuse, sgl_VertTextPos).rgb; }
vec3 sgl_matSpecular() { return texture(sgl_TextureMaterial.specular, sgl_VertTextPos).rgb; }
float sgl_matShininess() { return sgl_TextureMaterial.shininess; }
`

const phongTerms = `
vec3 sgl_direct(vec3 diffuse, vec3 specular, vec3 L, vec3 N, vec3 V)
{
    float diff = max(dot(N, L), 0.0);
    float spec = pow(max(dot(V, reflect(-L, N)), 0.0), sgl_matShininess());
    return diffuse * diff * sgl_matDiffuse() + specular * spec * sgl_matSpecular();
}

float sgl_attenuation(float c, float l, float q, float d)
{
    return 1.0 / (c + l * d + q * d * d);
}

`

const phongDirectional = `
    for (int i = 0; i < sgl_DirectionalLightsSize && i < %d; i++) {
        vec3 L = normalize(-mat3(sgl_View) * sgl_DirectionalLights[i].direction);
        color += sgl_DirectionalLights[i].ambient * sgl_matAmbient();
        color += sgl_direct(sgl_DirectionalLights[i].diffuse, sgl_DirectionalLights[i].specular, L, N, V);
    }
`

const phongPositional = `
    for (int i = 0; i < sgl_PositionalLightsSize && i < %d; i++) {
        vec3 toLight = vec3(sgl_View * vec4(sgl_PositionalLights[i].position, 1.0)) - sgl_VertPos;
        float d = length(toLight);
        vec3 L = toLight / d;
        float att = sgl_attenuation(sgl_PositionalLights[i].constant, sgl_PositionalLights[i].linear, sgl_PositionalLights[i].quadratic, d);
        color += att * sgl_PositionalLights[i].ambient * sgl_matAmbient();
        color += att * sgl_direct(sgl_PositionalLights[i].diffuse, sgl_PositionalLights[i].specular, L, N, V);
    }
`

const phongSpot = `
    for (int i = 0; i < sgl_SpotLightsSize && i < %d; i++) {
        vec3 toLight = vec3(sgl_View * vec4(sgl_SpotLights[i].position, 1.0)) - sgl_VertPos;
        float d = length(toLight);
        vec3 L = toLight / d;
        float att = sgl_attenuation(sgl_SpotLights[i].constant, sgl_SpotLights[i].linear, sgl_SpotLights[i].quadratic, d);
        float theta = dot(L, normalize(-mat3(sgl_View) * sgl_SpotLights[i].direction));
        float cone = clamp((theta - sgl_SpotLights[i].outer_cutoff) / (sgl_SpotLights[i].cutoff - sgl_SpotLights[i].outer_cutoff), 0.0, 1.0);
        color += att * sgl_SpotLights[i].ambient * sgl_matAmbient();
        color += att * cone * sgl_direct(sgl_SpotLights[i].diffuse, sgl_SpotLights[i].specular, L, N, V);
    }
`
