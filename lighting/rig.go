package lighting

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// Rig is a YAML description of a set of lights:
//
//	global:
//	  ambient: [0.1, 0.1, 0.1]
//	directional:
//	  - diffuse: [1, 1, 1]
//	    direction: [0, -1, -1]
//	spot:
//	  - position: [0, 5, 0]
//	    direction: [0, -1, 0]
//	    cutoff_deg: 10
//	    outer_cutoff_deg: 40
//	    constant: 1
type Rig struct {
	Global      *GlobalLight       `yaml:"global"`
	Directional []DirectionalLight `yaml:"directional"`
	Positional  []PositionalLight  `yaml:"positional"`
	Spot        []SpotRig          `yaml:"spot"`
}

// SpotRig is a spot light with cone half-angles in degrees.
type SpotRig struct {
	Ambient        mgl32.Vec3 `yaml:"ambient"`
	Diffuse        mgl32.Vec3 `yaml:"diffuse"`
	Specular       mgl32.Vec3 `yaml:"specular"`
	Direction      mgl32.Vec3 `yaml:"direction"`
	Position       mgl32.Vec3 `yaml:"position"`
	CutoffDeg      float32    `yaml:"cutoff_deg"`
	OuterCutoffDeg float32    `yaml:"outer_cutoff_deg"`
	Constant       float32    `yaml:"constant"`
	Linear         float32    `yaml:"linear"`
	Quadratic      float32    `yaml:"quadratic"`
}

func (s SpotRig) Light() SpotLight {
	return NewSpotLight(s.Ambient, s.Diffuse, s.Specular, s.Direction, s.Position,
		mgl32.DegToRad(s.CutoffDeg), mgl32.DegToRad(s.OuterCutoffDeg),
		s.Constant, s.Linear, s.Quadratic)
}

func ParseRig(data []byte) (*Rig, error) {
	var r Rig
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse light rig: %w", err)
	}
	for i, p := range r.Positional {
		if p.Constant == 0 && p.Linear == 0 && p.Quadratic == 0 {
			return nil, fmt.Errorf("parse light rig: positional light %d has no attenuation terms", i)
		}
	}
	for i, s := range r.Spot {
		if s.OuterCutoffDeg < s.CutoffDeg {
			return nil, fmt.Errorf("parse light rig: spot light %d outer cutoff %v° is inside inner cutoff %v°", i, s.OuterCutoffDeg, s.CutoffDeg)
		}
	}
	return &r, nil
}

func LoadRig(path string) (*Rig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read light rig %q: %w", path, err)
	}
	return ParseRig(data)
}

// Engine builds a lighting engine holding the rig's lights in file order.
func (r *Rig) Engine() *Engine {
	e := NewEngine()
	if r.Global != nil {
		e.SetGlobal(*r.Global)
	}
	for _, l := range r.Directional {
		e.AddDirectional(l)
	}
	for _, l := range r.Positional {
		e.AddPositional(l)
	}
	for _, s := range r.Spot {
		e.AddSpot(s.Light())
	}
	return e
}
