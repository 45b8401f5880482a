package scene

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"scenegl/core"
)

// LoadGLTF imports a .gltf or .glb file. Every triangle primitive becomes one
// MeshData, and the default scene's node hierarchy hangs below a root node
// named after the file. Metallic-roughness materials are approximated with
// Phong colors: the base color becomes the diffuse color and texture.
func LoadGLTF(path string) (*ModelData, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, core.Wrap(core.ErrModelImport, err, fmt.Sprintf("open gltf %q", path))
	}
	imp := &gltfImporter{
		doc:    doc,
		dir:    filepath.Dir(path),
		data:   &ModelData{},
		images: make(map[int]*Image),
	}

	materials := make([]*MaterialData, len(doc.Materials))
	for i, gm := range doc.Materials {
		materials[i] = imp.material(i, gm)
		imp.data.Materials = append(imp.data.Materials, materials[i])
	}

	prims := make([][]*MeshData, len(doc.Meshes))
	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			md, err := imp.primitive(gm.Name, mi, pi, prim)
			if err != nil {
				return nil, err
			}
			if md == nil {
				continue
			}
			if prim.Material != nil && *prim.Material < len(materials) {
				md.Material = materials[*prim.Material]
			}
			prims[mi] = append(prims[mi], md)
			imp.data.Meshes = append(imp.data.Meshes, md)
		}
	}

	nodes := make([]*Node, len(doc.Nodes))
	for i, gn := range doc.Nodes {
		name := gn.Name
		if name == "" {
			name = fmt.Sprintf("node_%d", i)
		}
		n := NewNode(name)
		n.Transform = gltfNodeTransform(gn)
		if gn.Mesh != nil && *gn.Mesh < len(prims) {
			n.Meshes = append(n.Meshes, prims[*gn.Mesh]...)
		}
		nodes[i] = n
	}
	hasParent := make([]bool, len(nodes))
	for i, gn := range doc.Nodes {
		for _, c := range gn.Children {
			if c < len(nodes) {
				nodes[i].AddChild(nodes[c])
				hasParent[c] = true
			}
		}
	}

	root := NewNode(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		for _, idx := range doc.Scenes[*doc.Scene].Nodes {
			if idx < len(nodes) {
				root.AddChild(nodes[idx])
			}
		}
	} else {
		for i, n := range nodes {
			if !hasParent[i] {
				root.AddChild(n)
			}
		}
	}
	imp.data.Root = root
	return imp.data, nil
}

type gltfImporter struct {
	doc    *gltf.Document
	dir    string
	data   *ModelData
	images map[int]*Image
}

// image decodes a glTF image once, whether it lives in a buffer view, a data
// URI or a file next to the document. Undecodable images are skipped.
func (imp *gltfImporter) image(idx int) *Image {
	if img, ok := imp.images[idx]; ok {
		return img
	}
	gi := imp.doc.Images[idx]
	name := gi.Name
	if name == "" {
		name = fmt.Sprintf("image_%d", idx)
	}

	var (
		img *Image
		err error
	)
	switch {
	case gi.BufferView != nil:
		var raw []byte
		raw, err = modeler.ReadBufferView(imp.doc, imp.doc.BufferViews[*gi.BufferView])
		if err == nil {
			img, err = decodeImageBytes(name, raw)
		}
	case gi.IsEmbeddedResource():
		var raw []byte
		raw, err = gi.MarshalData()
		if err == nil {
			img, err = decodeImageBytes(name, raw)
		}
	case gi.URI != "":
		img, err = LoadImage(filepath.Join(imp.dir, gi.URI))
	}
	if err != nil {
		core.Logger().Warn("gltf image skipped", "image", idx, "err", err)
		img = nil
	}
	imp.images[idx] = img
	return img
}

func (imp *gltfImporter) texture(info *gltf.TextureInfo) *Image {
	if info == nil || info.Index >= len(imp.doc.Textures) {
		return nil
	}
	src := imp.doc.Textures[info.Index].Source
	if src == nil || *src >= len(imp.doc.Images) {
		return nil
	}
	return imp.image(*src)
}

func (imp *gltfImporter) material(i int, gm *gltf.Material) *MaterialData {
	md := &MaterialData{Name: gm.Name}
	if md.Name == "" {
		md.Name = fmt.Sprintf("material_%d", i)
	}
	pbr := gm.PBRMetallicRoughness
	if pbr == nil {
		return md
	}

	cf := pbr.BaseColorFactorOrDefault()
	diffuse := mgl32.Vec3{float32(cf[0]), float32(cf[1]), float32(cf[2])}
	md.Diffuse = &diffuse
	if img := imp.texture(pbr.BaseColorTexture); img != nil {
		md.DiffuseTextures = append(md.DiffuseTextures, img)
	}

	// smooth surfaces get tight highlights, metals bright ones
	roughness := float32(pbr.RoughnessFactorOrDefault())
	metallic := float32(pbr.MetallicFactorOrDefault())
	shininess := (1-roughness)*(1-roughness)*DefaultTextureShininess + 1
	specular := mgl32.Vec3{metallic * 0.7, metallic * 0.7, metallic * 0.7}
	md.Shininess = &shininess
	md.Specular = &specular
	return md
}

// primitive converts one triangle primitive. Other primitive modes are
// skipped with a warning; a missing normal stream fails the import.
func (imp *gltfImporter) primitive(meshName string, mi, pi int, prim *gltf.Primitive) (*MeshData, error) {
	name := fmt.Sprintf("%s_%d", meshName, pi)
	if meshName == "" {
		name = fmt.Sprintf("mesh_%d_%d", mi, pi)
	}
	if prim.Mode != gltf.PrimitiveTriangles {
		core.Logger().Warn("gltf primitive skipped", "mesh", name, "mode", prim.Mode)
		return nil, nil
	}

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, core.Errorf(core.ErrModelImport, "gltf mesh %s: no POSITION attribute", name)
	}
	normIdx, ok := prim.Attributes[gltf.NORMAL]
	if !ok {
		return nil, core.Errorf(core.ErrModelImport, "gltf mesh %s: no NORMAL attribute", name)
	}

	positions, err := modeler.ReadPosition(imp.doc, imp.doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, core.Wrap(core.ErrModelImport, err, "gltf mesh "+name+" positions")
	}
	normals, err := modeler.ReadNormal(imp.doc, imp.doc.Accessors[normIdx], nil)
	if err != nil {
		return nil, core.Wrap(core.ErrModelImport, err, "gltf mesh "+name+" normals")
	}
	var uvs [][2]float32
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if uvs, err = modeler.ReadTextureCoord(imp.doc, imp.doc.Accessors[idx], nil); err != nil {
			return nil, core.Wrap(core.ErrModelImport, err, "gltf mesh "+name+" uvs")
		}
	}

	md := &MeshData{Name: name, Vertices: make([]Vertex, len(positions))}
	for i, p := range positions {
		v := Vertex{Pos: mgl32.Vec3(p)}
		if i < len(normals) {
			v.Normal = mgl32.Vec3(normals[i])
		}
		// glTF puts the UV origin at the top left of the image.
		if i < len(uvs) {
			v.UV = mgl32.Vec2{uvs[i][0], 1 - uvs[i][1]}
		}
		md.Vertices[i] = v
	}

	if prim.Indices != nil {
		md.Indices, err = modeler.ReadIndices(imp.doc, imp.doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, core.Wrap(core.ErrModelImport, err, "gltf mesh "+name+" indices")
		}
	} else {
		md.Indices = make([]uint32, len(positions))
		for i := range md.Indices {
			md.Indices[i] = uint32(i)
		}
	}
	return md, nil
}

// gltfNodeTransform returns the node's matrix, or its TRS composed as
// translate * rotate * scale when no matrix is given.
func gltfNodeTransform(gn *gltf.Node) mgl32.Mat4 {
	m := gn.MatrixOrDefault()
	if m != gltf.DefaultMatrix {
		var out mgl32.Mat4
		for i, v := range m {
			out[i] = float32(v)
		}
		return out
	}
	t := gn.TranslationOrDefault()
	r := gn.RotationOrDefault()
	s := gn.ScaleOrDefault()
	q := mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}
	return mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2])).
		Mul4(q.Mat4()).
		Mul4(mgl32.Scale3D(float32(s[0]), float32(s[1]), float32(s[2])))
}
