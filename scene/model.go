package scene

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"scenegl/core"
	"scenegl/gfx"
	"scenegl/lighting"
	"scenegl/transform"
)

// Shininess used when an imported material does not specify one.
const (
	DefaultTextureShininess float32 = 128
	DefaultColorShininess   float32 = 255
)

// Vertex is one imported mesh vertex.
type Vertex struct {
	Pos    mgl32.Vec3
	Normal mgl32.Vec3
	UV     mgl32.Vec2
}

// MaterialData is a material as the importer found it. Nil colors and
// shininess were absent from the file.
type MaterialData struct {
	Name string

	AmbientTextures  []*Image
	DiffuseTextures  []*Image
	SpecularTextures []*Image

	Ambient   *mgl32.Vec3
	Diffuse   *mgl32.Vec3
	Specular  *mgl32.Vec3
	Shininess *float32
}

func (m *MaterialData) hasTextures() bool {
	return len(m.AmbientTextures) > 0 || len(m.DiffuseTextures) > 0 || len(m.SpecularTextures) > 0
}

// MeshData is an indexed triangle list with an optional material.
type MeshData struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	Material *MaterialData
}

// Node is one level of the imported hierarchy. Transform is local to the
// parent.
type Node struct {
	Name      string
	Transform mgl32.Mat4
	Meshes    []*MeshData
	Children  []*Node
}

func NewNode(name string) *Node {
	return &Node{Name: name, Transform: mgl32.Ident4()}
}

func (n *Node) AddChild(child *Node) {
	n.Children = append(n.Children, child)
}

// Traverse visits n and its descendants depth first with each node's world
// transform relative to n's parent.
func (n *Node) Traverse(parent mgl32.Mat4, visit func(*Node, mgl32.Mat4)) {
	world := parent.Mul4(n.Transform)
	visit(n, world)
	for _, c := range n.Children {
		c.Traverse(world, visit)
	}
}

// Find returns the first node named name, depth first.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// ModelData is an imported scene: meshes and materials referenced from a
// node tree.
type ModelData struct {
	Meshes    []*MeshData
	Materials []*MaterialData
	Root      *Node
}

// LoadModel imports a glTF, GLB or Wavefront OBJ file by extension.
func LoadModel(path string) (*ModelData, error) {
	var (
		data *ModelData
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".gltf", ".glb":
		data, err = LoadGLTF(path)
	case ".obj":
		data, err = LoadOBJ(path)
	default:
		err = core.Errorf(core.ErrModelImport, "unsupported model format %q", ext)
	}
	if err != nil {
		return nil, core.Report(err)
	}
	core.Logger().Info("model imported", "path", path, "meshes", len(data.Meshes), "materials", len(data.Materials))
	return data, nil
}

// ── GPU side ─────────────────────────────────────────────────────────────────

// textureSet uploads each imported image once.
type textureSet struct {
	dev      gfx.Device
	textures map[*Image]gfx.Texture
}

func newTextureSet(dev gfx.Device) *textureSet {
	return &textureSet{dev: dev, textures: make(map[*Image]gfx.Texture)}
}

func (s *textureSet) get(img *Image) gfx.Texture {
	if t, ok := s.textures[img]; ok {
		return t
	}
	t, err := img.Upload(s.dev)
	if err != nil {
		core.Logger().Warn("texture unavailable", "name", img.Name, "err", err)
		t = nil
	}
	s.textures[img] = t
	return t
}

func (s *textureSet) delete() {
	for img, t := range s.textures {
		if t != nil {
			t.Delete()
		}
		delete(s.textures, img)
	}
}

// Mesh is uploaded MeshData with the material derived from its imported
// material.
type Mesh struct {
	*transform.Transform

	ctx      *Context
	data     *MeshData
	material lighting.Material

	buffers  []gfx.Buffer
	indices  gfx.IndexBuffer
	va       gfx.VertexArray
	textures *textureSet
	owns     bool
}

// NewMesh uploads a single mesh. extra may add transform.Scalable and
// transform.Rotatable to the always present movable component.
func NewMesh(ctx *Context, data *MeshData, extra transform.Caps) (*Mesh, error) {
	m, err := newMesh(ctx, data, extra, newTextureSet(ctx.dev))
	if err != nil {
		return nil, err
	}
	m.owns = true
	return m, nil
}

func newMesh(ctx *Context, data *MeshData, extra transform.Caps, textures *textureSet) (*Mesh, error) {
	m := &Mesh{
		Transform: transform.New(transform.Movable | extra&(transform.Scalable|transform.Rotatable)),
		ctx:       ctx,
		data:      data,
		textures:  textures,
	}

	pos := make([]float32, 0, len(data.Vertices)*3)
	normal := make([]float32, 0, len(data.Vertices)*3)
	uv := make([]float32, 0, len(data.Vertices)*2)
	for _, v := range data.Vertices {
		pos = append(pos, v.Pos[0], v.Pos[1], v.Pos[2])
		normal = append(normal, v.Normal[0], v.Normal[1], v.Normal[2])
		uv = append(uv, v.UV[0], v.UV[1])
	}

	var attribs []gfx.VertexAttrib
	for _, a := range []struct {
		loc   uint32
		comps int32
		data  []float32
	}{
		{gfx.PosLocation, 3, pos},
		{gfx.NormalLocation, 3, normal},
		{gfx.TextPosLocation, 2, uv},
	} {
		b, err := ctx.dev.NewBuffer(a.data, gfx.StaticDraw)
		if err != nil {
			m.release()
			return nil, core.Report(err)
		}
		m.buffers = append(m.buffers, b)
		attribs = append(attribs, gfx.VertexAttrib{Location: a.loc, Components: a.comps, Buffer: b})
	}

	var err error
	if m.indices, err = ctx.dev.NewIndexBuffer(data.Indices); err != nil {
		m.release()
		return nil, core.Report(err)
	}
	if m.va, err = ctx.dev.NewVertexArray(attribs, m.indices); err != nil {
		m.release()
		return nil, core.Report(err)
	}

	m.material = ctx.meshMaterial(data.Material, textures)
	return m, nil
}

// meshMaterial picks the material variant for an imported material: a
// texture material if it names any texture, a color material otherwise.
func (c *Context) meshMaterial(md *MaterialData, textures *textureSet) lighting.Material {
	if md == nil {
		return lighting.Material{}
	}

	if md.hasTextures() {
		tm := lighting.TextureMaterial{Shininess: DefaultTextureShininess}
		if len(md.SpecularTextures) > 0 {
			tm.Specular = textures.get(md.SpecularTextures[0])
		} else {
			tm.Specular = c.whiteTexture()
		}
		if len(md.DiffuseTextures) > 0 {
			tm.Diffuse = textures.get(md.DiffuseTextures[0])
		}
		if md.Shininess != nil {
			tm.Shininess = *md.Shininess
		}
		return lighting.NewTextureMaterial(tm)
	}

	cm := lighting.ColorMaterial{Shininess: DefaultColorShininess}
	if md.Ambient != nil {
		cm.Ambient = *md.Ambient
	}
	if md.Diffuse != nil {
		cm.Diffuse = *md.Diffuse
	}
	if md.Specular != nil {
		cm.Specular = *md.Specular
	}
	if md.Shininess != nil {
		cm.Shininess = *md.Shininess
	}
	return lighting.NewColorMaterial(cm)
}

func (m *Mesh) Data() *MeshData             { return m.data }
func (m *Mesh) Material() lighting.Material { return m.material }
func (m *Mesh) Draw(target gfx.Target)      { m.DrawWith(target, m.ctx.Settings()) }

// DrawWith draws the mesh with its own material unless settings carry one.
func (m *Mesh) DrawWith(target gfx.Target, s Settings) {
	m.drawAt(target, mgl32.Ident4(), s)
}

func (m *Mesh) drawAt(target gfx.Target, parent mgl32.Mat4, s Settings) {
	model := parent.Mul4(m.UpdateModel())
	if s.Material.Kind() == lighting.NoMaterial {
		s.Material = m.material
	}
	p := m.ctx.resolve(s, modelShader)
	if p == nil {
		return
	}
	m.ctx.setup(p, model, s, nil)
	m.ctx.dev.Draw(target, gfx.DrawCall{
		Program:     p.Handle(),
		VertexArray: m.va,
		Primitive:   gfx.Triangles,
		Count:       len(m.data.Indices),
		Indexed:     true,
	})
}

func (m *Mesh) release() {
	if m.va != nil {
		m.va.Delete()
	}
	if m.indices != nil {
		m.indices.Delete()
	}
	for _, b := range m.buffers {
		b.Delete()
	}
	m.va, m.indices, m.buffers = nil, nil, nil
}

// Delete frees the mesh's buffers, and its textures if it owns them.
func (m *Mesh) Delete() {
	m.release()
	if m.owns {
		m.textures.delete()
	}
}

// Model draws every mesh of a ModelData through its node tree. The model's
// transform applies on top of node transforms, which apply on top of each
// mesh's own transform.
type Model struct {
	*transform.Transform

	ctx      *Context
	data     *ModelData
	meshes   []*Mesh
	byData   map[*MeshData]*Mesh
	textures *textureSet
}

// NewModel uploads every mesh of data. extra may add transform.Scalable and
// transform.Rotatable to the model and each of its meshes.
func NewModel(ctx *Context, data *ModelData, extra transform.Caps) (*Model, error) {
	m := &Model{
		Transform: transform.New(transform.Movable | extra&(transform.Scalable|transform.Rotatable)),
		ctx:       ctx,
		data:      data,
		byData:    make(map[*MeshData]*Mesh, len(data.Meshes)),
		textures:  newTextureSet(ctx.dev),
	}
	for i, md := range data.Meshes {
		mesh, err := newMesh(ctx, md, extra, m.textures)
		if err != nil {
			m.Delete()
			return nil, fmt.Errorf("mesh %d: %w", i, err)
		}
		m.meshes = append(m.meshes, mesh)
		m.byData[md] = mesh
	}
	return m, nil
}

func (m *Model) Data() *ModelData { return m.data }

// Meshes returns the uploaded meshes in import order.
func (m *Model) Meshes() []*Mesh { return m.meshes }

func (m *Model) Draw(target gfx.Target) { m.DrawWith(target, m.ctx.Settings()) }

func (m *Model) DrawWith(target gfx.Target, s Settings) {
	base := m.UpdateModel()
	if m.data.Root == nil {
		for _, mesh := range m.meshes {
			mesh.drawAt(target, base, s)
		}
		return
	}
	m.data.Root.Traverse(base, func(n *Node, world mgl32.Mat4) {
		for _, md := range n.Meshes {
			if mesh := m.byData[md]; mesh != nil {
				mesh.drawAt(target, world, s)
			}
		}
	})
}

func (m *Model) Delete() {
	for _, mesh := range m.meshes {
		mesh.release()
	}
	m.meshes = nil
	m.textures.delete()
}
