package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scenegl/core"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const quadOBJ = `# a textured quad and a triangle
mtllib quad.mtl
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
o quad
usemtl painted
f 1/1/1 2/2/1 3/3/1 4/4/1
o tri
usemtl plain
f -4//-1 -3//-1 -2//-1
`

const quadMTL = `newmtl painted
Kd 1 1 1
Ns 10
map_Kd flag.png

newmtl plain
Ka 0.1 0.1 0.1
Kd 0.5 0.25 0
Ks 1 1 1
`

func TestLoadOBJ(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "quad.obj", quadOBJ)
	writeFile(t, dir, "quad.mtl", quadMTL)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "flag.png"), encodePNG(t, 2, 2), 0o644))

	data, err := LoadOBJ(path)
	require.NoError(t, err)
	require.Len(t, data.Meshes, 2)
	require.Len(t, data.Materials, 2)

	quad := data.Meshes[0]
	assert.Equal(t, "quad", quad.Name)
	assert.Len(t, quad.Vertices, 4, "shared corners are deduplicated")
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, quad.Indices)
	assert.Equal(t, mgl32.Vec2{1, 1}, quad.Vertices[2].UV)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, quad.Vertices[2].Normal)

	painted := quad.Material
	require.NotNil(t, painted)
	assert.Equal(t, "painted", painted.Name)
	require.Len(t, painted.DiffuseTextures, 1)
	assert.Equal(t, 2, painted.DiffuseTextures[0].Width)
	require.NotNil(t, painted.Shininess)
	assert.Equal(t, float32(10), *painted.Shininess)
	assert.Nil(t, painted.Specular)

	tri := data.Meshes[1]
	assert.Equal(t, []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}},
		[]mgl32.Vec3{tri.Vertices[0].Pos, tri.Vertices[1].Pos, tri.Vertices[2].Pos})
	plain := tri.Material
	require.NotNil(t, plain)
	assert.Equal(t, mgl32.Vec3{0.5, 0.25, 0}, *plain.Diffuse)
	assert.Equal(t, mgl32.Vec3{0.1, 0.1, 0.1}, *plain.Ambient)
	assert.Nil(t, plain.Shininess)
	assert.False(t, plain.hasTextures())

	require.NotNil(t, data.Root)
	assert.Equal(t, "quad", data.Root.Name)
	require.Len(t, data.Root.Children, 2)
	assert.Equal(t, []*MeshData{tri}, data.Root.Find("tri").Meshes)
}

func TestLoadOBJErrors(t *testing.T) {
	dir := t.TempDir()
	for name, src := range map[string]string{
		"nonormals.obj": "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n",
		"range.obj":     "v 0 0 0\nvn 0 0 1\nf 1//1 2//1 3//1\n",
		"number.obj":    "v 0 zero 0\n",
		"empty.obj":     "# nothing\n",
		"short.obj":     "v 0 0 0\nv 1 0 0\nvn 0 0 1\nf 1//1 2//1\n",
	} {
		_, err := LoadOBJ(writeFile(t, dir, name, src))
		assert.True(t, core.IsCode(err, core.ErrModelImport), "%s: %v", name, err)
	}

	_, err := LoadOBJ(filepath.Join(dir, "missing.obj"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadOBJMissingMTLIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "lonely.obj", "mtllib gone.mtl\nv 0 0 0\nv 1 0 0\nv 0 1 0\nvn 0 0 1\nusemtl gone\nf 1//1 2//1 3//1\n")
	data, err := LoadOBJ(path)
	require.NoError(t, err)
	require.Len(t, data.Meshes, 1)
	assert.Nil(t, data.Meshes[0].Material)
}

func TestLoadModelDispatch(t *testing.T) {
	core.DrainErrors()
	dir := t.TempDir()

	_, err := LoadModel(writeFile(t, dir, "model.fbx", "binary"))
	assert.True(t, core.IsCode(err, core.ErrModelImport))
	assert.Len(t, core.DrainErrors(), 1)

	path := writeFile(t, dir, "tri.OBJ", "v 0 0 0\nv 1 0 0\nv 0 1 0\nvn 0 0 1\nf 1//1 2//1 3//1\n")
	data, err := LoadModel(path)
	require.NoError(t, err)
	assert.Len(t, data.Meshes, 1)
	assert.Empty(t, core.DrainErrors())
}

func writeGLB(t *testing.T, withNormals bool) string {
	t.Helper()
	doc := gltf.NewDocument()
	attrs := map[string]int{
		gltf.POSITION:   modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}),
		gltf.TEXCOORD_0: modeler.WriteTextureCoord(doc, [][2]float32{{0, 0}, {1, 0}, {0, 1}}),
	}
	if withNormals {
		attrs[gltf.NORMAL] = modeler.WriteNormal(doc, [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}})
	}
	indices := modeler.WriteIndices(doc, []uint16{0, 1, 2})

	doc.Materials = []*gltf.Material{{
		Name: "red",
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{1, 0, 0, 1},
		},
	}}
	doc.Meshes = []*gltf.Mesh{{
		Name: "tri",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(indices),
			Attributes: attrs,
			Material:   gltf.Index(0),
		}},
	}}
	doc.Nodes = []*gltf.Node{
		{Name: "parent", Children: []int{1}, Translation: [3]float64{1, 2, 3}},
		{Name: "child", Mesh: gltf.Index(0)},
	}
	doc.Scenes[0].Nodes = []int{0}

	path := filepath.Join(t.TempDir(), "tri.glb")
	require.NoError(t, gltf.SaveBinary(doc, path))
	return path
}

func TestLoadGLTF(t *testing.T) {
	data, err := LoadModel(writeGLB(t, true))
	require.NoError(t, err)
	require.Len(t, data.Meshes, 1)
	require.Len(t, data.Materials, 1)

	tri := data.Meshes[0]
	assert.Equal(t, []uint32{0, 1, 2}, tri.Indices)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, tri.Vertices[1].Normal)
	assert.Equal(t, mgl32.Vec2{1, 1}, tri.Vertices[1].UV, "v is flipped to a bottom-left origin")
	require.NotNil(t, tri.Material)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, *tri.Material.Diffuse)
	assert.NotNil(t, tri.Material.Shininess)

	require.Len(t, data.Root.Children, 1)
	parent := data.Root.Children[0]
	assert.Equal(t, "parent", parent.Name)
	assert.Equal(t, mgl32.Translate3D(1, 2, 3), parent.Transform)
	child := data.Root.Find("child")
	require.NotNil(t, child)
	assert.Equal(t, []*MeshData{tri}, child.Meshes)
}

func TestLoadGLTFRequiresNormals(t *testing.T) {
	_, err := LoadGLTF(writeGLB(t, false))
	assert.True(t, core.IsCode(err, core.ErrModelImport))
	assert.ErrorContains(t, err, "NORMAL")
}
