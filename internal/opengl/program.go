package opengl

import (
	"fmt"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"scenegl/core"
	"scenegl/gfx"
)

// program is a linked GL program. Uniform locations are looked up once per
// name and cached; names the program does not declare resolve to -1 and are
// ignored. Values are written with glProgramUniform so the program does not
// have to be bound.
type program struct {
	id        uint32
	locations map[string]int32
	// units maps sampler names to the texture unit assigned to them.
	units    map[string]int32
	textures []*texture
}

func (p *program) location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	p.locations[name] = loc
	return loc
}

func (p *program) SetInt(name string, v int32) {
	if loc := p.location(name); loc != -1 {
		gl.ProgramUniform1i(p.id, loc, v)
	}
}

func (p *program) SetFloat(name string, v float32) {
	if loc := p.location(name); loc != -1 {
		gl.ProgramUniform1f(p.id, loc, v)
	}
}

func (p *program) SetVec3(name string, v mgl32.Vec3) {
	if loc := p.location(name); loc != -1 {
		gl.ProgramUniform3f(p.id, loc, v[0], v[1], v[2])
	}
}

func (p *program) SetVec4(name string, v mgl32.Vec4) {
	if loc := p.location(name); loc != -1 {
		gl.ProgramUniform4f(p.id, loc, v[0], v[1], v[2], v[3])
	}
}

func (p *program) SetMat4(name string, m mgl32.Mat4) {
	if loc := p.location(name); loc != -1 {
		gl.ProgramUniformMatrix4fv(p.id, loc, 1, false, &m[0])
	}
}

// SetTexture assigns name a texture unit on first use and records t for
// binding at draw time.
func (p *program) SetTexture(name string, t gfx.Texture) {
	loc := p.location(name)
	if loc == -1 {
		return
	}
	unit, ok := p.units[name]
	if !ok {
		unit = int32(len(p.units))
		p.units[name] = unit
		p.textures = append(p.textures, nil)
		gl.ProgramUniform1i(p.id, loc, unit)
	}
	p.textures[unit] = asTexture(t)
}

func (p *program) bindTextures() {
	for unit, t := range p.textures {
		if t == nil {
			continue
		}
		gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
		gl.BindTexture(gl.TEXTURE_2D, t.id)
	}
}

func (p *program) Delete() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

func asProgram(p gfx.Program) *program {
	gp, ok := p.(*program)
	if !ok {
		panic("opengl: program was not created by this device")
	}
	return gp
}

// CompileProgram compiles and links a vertex/fragment pair. Failures carry
// the driver's info log.
func (d *Device) CompileProgram(vertex, fragment string) (gfx.Program, error) {
	vert, err := compileShader(vertex, gl.VERTEX_SHADER)
	if err != nil {
		return nil, core.Wrap(core.ErrShaderCompile, err, "vertex stage")
	}
	defer gl.DeleteShader(vert)

	frag, err := compileShader(fragment, gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, core.Wrap(core.ErrShaderCompile, err, "fragment stage")
	}
	defer gl.DeleteShader(frag)

	id := gl.CreateProgram()
	gl.AttachShader(id, vert)
	gl.AttachShader(id, frag)
	gl.LinkProgram(id)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(id, logLen, nil, gl.Str(log))
		gl.DeleteProgram(id)
		return nil, core.Errorf(core.ErrProgramLink, "link failed: %s", strings.TrimRight(log, "\x00"))
	}

	gl.DetachShader(id, vert)
	gl.DetachShader(id, frag)
	return &program{
		id:        id,
		locations: make(map[string]int32),
		units:     make(map[string]int32),
	}, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src + "\x00")
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile failed: %s", strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}
