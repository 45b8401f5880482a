// Package lighting holds light and material values and the engine that
// collects them for upload into lit shader programs.
//
// Field order of every type here mirrors the GLSL struct the shader package
// declares for it; Upload writes one uniform per field under name+".field".
package lighting

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"scenegl/gfx"
)

// GlobalLight is a scene-wide ambient term.
type GlobalLight struct {
	Ambient mgl32.Vec3 `yaml:"ambient"`
}

func (l GlobalLight) Upload(u gfx.Uniforms, name string) {
	u.SetVec3(name+".ambient", l.Ambient)
}

// DirectionalLight shines along Direction from infinitely far away.
type DirectionalLight struct {
	Ambient   mgl32.Vec3 `yaml:"ambient"`
	Diffuse   mgl32.Vec3 `yaml:"diffuse"`
	Specular  mgl32.Vec3 `yaml:"specular"`
	Direction mgl32.Vec3 `yaml:"direction"`
}

func (l DirectionalLight) Upload(u gfx.Uniforms, name string) {
	u.SetVec3(name+".ambient", l.Ambient)
	u.SetVec3(name+".diffuse", l.Diffuse)
	u.SetVec3(name+".specular", l.Specular)
	u.SetVec3(name+".direction", l.Direction)
}

// PositionalLight radiates from Position and fades as
// 1/(Constant + Linear·d + Quadratic·d²).
type PositionalLight struct {
	Ambient   mgl32.Vec3 `yaml:"ambient"`
	Diffuse   mgl32.Vec3 `yaml:"diffuse"`
	Specular  mgl32.Vec3 `yaml:"specular"`
	Position  mgl32.Vec3 `yaml:"position"`
	Constant  float32    `yaml:"constant"`
	Linear    float32    `yaml:"linear"`
	Quadratic float32    `yaml:"quadratic"`
}

func (l PositionalLight) Upload(u gfx.Uniforms, name string) {
	u.SetVec3(name+".ambient", l.Ambient)
	u.SetVec3(name+".diffuse", l.Diffuse)
	u.SetVec3(name+".specular", l.Specular)
	u.SetVec3(name+".position", l.Position)
	u.SetFloat(name+".constant", l.Constant)
	u.SetFloat(name+".linear", l.Linear)
	u.SetFloat(name+".quadratic", l.Quadratic)
}

// Attenuation returns the intensity factor at distance d.
func (l PositionalLight) Attenuation(d float32) float32 {
	return 1 / (l.Constant + l.Linear*d + l.Quadratic*d*d)
}

// SpotLight is a positional light limited to a cone around Direction.
// Cutoff and OuterCutoff are cosines of the inner and outer cone half-angles.
type SpotLight struct {
	Ambient     mgl32.Vec3
	Diffuse     mgl32.Vec3
	Specular    mgl32.Vec3
	Direction   mgl32.Vec3
	Position    mgl32.Vec3
	Cutoff      float32
	OuterCutoff float32
	Constant    float32
	Linear      float32
	Quadratic   float32
}

// NewSpotLight builds a spot light from cone half-angles in radians.
func NewSpotLight(ambient, diffuse, specular, direction, position mgl32.Vec3, cutoff, outerCutoff, constant, linear, quadratic float32) SpotLight {
	l := SpotLight{
		Ambient:   ambient,
		Diffuse:   diffuse,
		Specular:  specular,
		Direction: direction,
		Position:  position,
		Constant:  constant,
		Linear:    linear,
		Quadratic: quadratic,
	}
	l.SetCutoffAngles(cutoff, outerCutoff)
	return l
}

// SetCutoffAngles stores the cosines of the given half-angles in radians.
func (l *SpotLight) SetCutoffAngles(inner, outer float32) {
	l.Cutoff = math32.Cos(inner)
	l.OuterCutoff = math32.Cos(outer)
}

// CutoffAngles returns the cone half-angles in radians.
func (l SpotLight) CutoffAngles() (inner, outer float32) {
	return math32.Acos(l.Cutoff), math32.Acos(l.OuterCutoff)
}

func (l SpotLight) Upload(u gfx.Uniforms, name string) {
	u.SetVec3(name+".ambient", l.Ambient)
	u.SetVec3(name+".diffuse", l.Diffuse)
	u.SetVec3(name+".specular", l.Specular)
	u.SetVec3(name+".direction", l.Direction)
	u.SetVec3(name+".position", l.Position)
	u.SetFloat(name+".cutoff", l.Cutoff)
	u.SetFloat(name+".outer_cutoff", l.OuterCutoff)
	u.SetFloat(name+".constant", l.Constant)
	u.SetFloat(name+".linear", l.Linear)
	u.SetFloat(name+".quadratic", l.Quadratic)
}

// Falloff is the cone intensity for a fragment whose direction from the light
// makes an angle with cosine cosTheta to the spot axis.
func (l SpotLight) Falloff(cosTheta float32) float32 {
	eps := l.Cutoff - l.OuterCutoff
	if eps == 0 {
		if cosTheta >= l.Cutoff {
			return 1
		}
		return 0
	}
	return mgl32.Clamp((cosTheta-l.OuterCutoff)/eps, 0, 1)
}

func (l SpotLight) Attenuation(d float32) float32 {
	return 1 / (l.Constant + l.Linear*d + l.Quadratic*d*d)
}
