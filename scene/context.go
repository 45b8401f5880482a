// Package scene holds the drawable objects, the camera, render targets and
// model import, all drawn through a Context that owns the view and
// projection matrices, the default draw color and the default shaders and
// geometry shared by every instance of a shape kind.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"scenegl/core"
	"scenegl/font"
	"scenegl/gfx"
	"scenegl/shader"
)

type shaderKind int

const (
	shapesShader shaderKind = iota
	spriteShader
	textShader
	modelShader
	numShaders
)

var defaultShaders = [numShaders]struct {
	vertex, fragment string
	vars             shader.Variables
}{
	shapesShader: {
		vertex:   "void main() { gl_Position = sgl_ModelViewProj * vec4(sgl_Pos, 1.0); }",
		fragment: "void main() { sgl_OutColor = sgl_Color; }",
		vars:     shader.ModelViewProj | shader.Pos | shader.Color,
	},
	spriteShader: {
		vertex:   "void main() { gl_Position = sgl_ModelViewProj * vec4(sgl_Pos, 1.0); sgl_VertTextPos = sgl_TextPos; }",
		fragment: "void main() { sgl_OutColor = texture(sgl_Texture, sgl_VertTextPos); }",
		vars:     shader.ModelViewProj | shader.Pos | shader.TextPos | shader.VertTextPos | shader.Texture,
	},
	textShader: {
		vertex:   "void main() { gl_Position = sgl_ModelViewProj * vec4(sgl_Pos, 1.0); sgl_VertTextPos = sgl_TextPos; }",
		fragment: "void main() { sgl_OutColor = vec4(sgl_Color.xyz, sgl_Color.w * texture(sgl_Texture, sgl_VertTextPos).r); }",
		vars:     shader.ModelViewProj | shader.Pos | shader.TextPos | shader.VertTextPos | shader.Color | shader.Texture,
	},
	modelShader: {
		vertex:   "void main() { gl_Position = sgl_ModelViewProj * vec4(sgl_Pos, 1.0); }",
		fragment: "void main() { sgl_OutColor = sgl_Color; }",
		vars:     shader.ModelViewProj | shader.Pos | shader.Color,
	},
}

type glyphKey struct {
	face *font.Face
	r    rune
}

// Context is the registry tied to one graphics context. Default shaders,
// shared geometry and glyph textures are created on first use and freed by
// Release; objects drawn through a released Context recreate them.
type Context struct {
	dev gfx.Device

	view, proj mgl32.Mat4
	drawColor  core.Color

	shaders [numShaders]*shader.Program
	geom    *geometry
	white   gfx.Texture
	glyphs  map[glyphKey]gfx.Texture
}

func NewContext(dev gfx.Device) *Context {
	return &Context{
		dev:       dev,
		view:      mgl32.Ident4(),
		proj:      mgl32.Ident4(),
		drawColor: core.ColorBlack,
		glyphs:    make(map[glyphKey]gfx.Texture),
	}
}

func (c *Context) Device() gfx.Device { return c.dev }

func (c *Context) SetView(m mgl32.Mat4)       { c.view = m }
func (c *Context) SetProjection(m mgl32.Mat4) { c.proj = m }
func (c *Context) ResetView()                 { c.view = mgl32.Ident4() }
func (c *Context) ResetProjection()           { c.proj = mgl32.Ident4() }
func (c *Context) View() mgl32.Mat4           { return c.view }
func (c *Context) Projection() mgl32.Mat4     { return c.proj }

// SetDrawColor sets the color used by Draw calls without explicit settings.
func (c *Context) SetDrawColor(col core.Color) { c.drawColor = col }
func (c *Context) DrawColor() core.Color       { return c.drawColor }

// Settings returns the settings Draw uses: the draw color, no shader
// override, no lighting and no material.
func (c *Context) Settings() Settings {
	return Settings{Color: c.drawColor}
}

// Clear fills the whole target with col and resets its depth.
func (c *Context) Clear(target gfx.Target, col core.Color) {
	c.dev.Clear(target, col.Vec4())
}

func (c *Context) ShapesShader() (*shader.Program, error) { return c.shader(shapesShader) }
func (c *Context) SpriteShader() (*shader.Program, error) { return c.shader(spriteShader) }
func (c *Context) TextShader() (*shader.Program, error)   { return c.shader(textShader) }
func (c *Context) ModelShader() (*shader.Program, error)  { return c.shader(modelShader) }

func (c *Context) shader(kind shaderKind) (*shader.Program, error) {
	if p := c.shaders[kind]; p != nil {
		return p, nil
	}
	d := defaultShaders[kind]
	p, err := shader.NewProgram(c.dev, d.vertex, d.fragment, d.vars, shader.LightCounts{})
	if err != nil {
		return nil, err
	}
	c.shaders[kind] = p
	return p, nil
}

// resolve picks the settings' shader or the default of the given kind.
func (c *Context) resolve(s Settings, kind shaderKind) *shader.Program {
	if s.Shader != nil {
		return s.Shader
	}
	p, err := c.shader(kind)
	if err != nil {
		return nil
	}
	return p
}

// whiteTexture is the 1x1 opaque white texture standing in for a missing
// specular map.
func (c *Context) whiteTexture() gfx.Texture {
	if c.white != nil {
		return c.white
	}
	t, err := c.dev.NewTexture(gfx.TextureDesc{
		Width:   1,
		Height:  1,
		Format:  gfx.RGBA8,
		Pixels:  []byte{255, 255, 255, 255},
		Nearest: true,
	})
	if err != nil {
		core.Report(err)
		return nil
	}
	c.white = t
	return t
}

// glyph returns the coverage texture for r, uploading it on first use.
// Empty glyphs have no texture.
func (c *Context) glyph(face *font.Face, r rune) (*font.Glyph, gfx.Texture, error) {
	g, err := face.Glyph(r)
	if err != nil {
		return nil, nil, err
	}
	if g.Empty() {
		return g, nil, nil
	}
	key := glyphKey{face, r}
	if t, ok := c.glyphs[key]; ok {
		return g, t, nil
	}
	t, err := c.dev.NewTexture(gfx.TextureDesc{
		Width:         g.Width,
		Height:        g.Height,
		Format:        gfx.R8,
		Pixels:        g.Pix,
		Nearest:       true,
		ClampToBorder: true,
	})
	if err != nil {
		return nil, nil, core.Report(err)
	}
	c.glyphs[key] = t
	return g, t, nil
}

// Release deletes the default shaders, shared geometry and glyph textures.
// The graphics context must still be current.
func (c *Context) Release() {
	for i, p := range c.shaders {
		if p != nil {
			p.Delete()
			c.shaders[i] = nil
		}
	}
	if c.geom != nil {
		c.geom.delete()
		c.geom = nil
	}
	if c.white != nil {
		c.white.Delete()
		c.white = nil
	}
	for k, t := range c.glyphs {
		t.Delete()
		delete(c.glyphs, k)
	}
}
