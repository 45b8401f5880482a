package scene

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"scenegl/core"
)

// objRef is one face corner: 0-based position, UV and normal indices, -1
// where absent.
type objRef struct{ v, vt, vn int }

type objObject struct {
	name    string
	matName string
	faces   [][3]objRef
}

// LoadOBJ imports a Wavefront .obj file with one MeshData per object or
// group. Materials come from the files named by mtllib. Polygons are fan
// triangulated. Every face corner must reference a normal.
func LoadOBJ(path string) (*ModelData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, core.Wrap(core.ErrModelImport, err, fmt.Sprintf("open obj %q", path))
	}
	defer f.Close()

	dir := filepath.Dir(path)
	var (
		positions []mgl32.Vec3
		normals   []mgl32.Vec3
		uvs       []mgl32.Vec2
		objects   []*objObject
	)
	materials := map[string]*MaterialData{}
	var matOrder []*MaterialData
	cur := &objObject{name: "default"}

	scanner := bufio.NewScanner(f)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		bad := func(err error) error {
			return core.Wrap(core.ErrModelImport, err, fmt.Sprintf("%s:%d", path, lineNo))
		}

		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, bad(err)
			}
			positions = append(positions, v)
		case "vn":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, bad(err)
			}
			normals = append(normals, v)
		case "vt":
			v, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, bad(err)
			}
			uvs = append(uvs, mgl32.Vec2{v[0], v[1]})
		case "o", "g":
			if len(cur.faces) > 0 {
				objects = append(objects, cur)
			}
			name := "default"
			if len(fields) > 1 {
				name = strings.Join(fields[1:], " ")
			}
			cur = &objObject{name: name, matName: cur.matName}
		case "usemtl":
			if len(fields) > 1 {
				if len(cur.faces) > 0 && cur.matName != fields[1] {
					objects = append(objects, cur)
					cur = &objObject{name: cur.name, matName: fields[1]}
				}
				cur.matName = fields[1]
			}
		case "mtllib":
			for _, name := range fields[1:] {
				loaded, err := loadMTL(filepath.Join(dir, name))
				if err != nil {
					core.Logger().Warn("mtl skipped", "path", name, "err", err)
					continue
				}
				for _, m := range loaded {
					if _, dup := materials[m.Name]; !dup {
						matOrder = append(matOrder, m)
					}
					materials[m.Name] = m
				}
			}
		case "f":
			if len(fields) < 4 {
				return nil, bad(fmt.Errorf("face with %d vertices", len(fields)-1))
			}
			refs := make([]objRef, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				r, err := parseObjRef(tok, len(positions), len(uvs), len(normals))
				if err != nil {
					return nil, bad(err)
				}
				refs = append(refs, r)
			}
			for i := 1; i+1 < len(refs); i++ {
				cur.faces = append(cur.faces, [3]objRef{refs[0], refs[i], refs[i+1]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, core.Wrap(core.ErrModelImport, err, fmt.Sprintf("read obj %q", path))
	}
	if len(cur.faces) > 0 {
		objects = append(objects, cur)
	}
	if len(objects) == 0 {
		return nil, core.Errorf(core.ErrModelImport, "no geometry in %q", path)
	}

	data := &ModelData{Materials: matOrder}
	data.Root = NewNode(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	for _, obj := range objects {
		md, err := buildOBJMesh(obj, positions, normals, uvs)
		if err != nil {
			return nil, err
		}
		md.Material = materials[obj.matName]
		data.Meshes = append(data.Meshes, md)

		n := NewNode(obj.name)
		n.Meshes = []*MeshData{md}
		data.Root.AddChild(n)
	}
	return data, nil
}

// parseObjRef parses "v", "v/vt", "v//vn" or "v/vt/vn". Indices are 1-based;
// negative ones count back from the last element defined so far.
func parseObjRef(tok string, nv, nvt, nvn int) (objRef, error) {
	ref := objRef{-1, -1, -1}
	parts := strings.Split(tok, "/")
	if len(parts) > 3 {
		return ref, fmt.Errorf("bad face vertex %q", tok)
	}
	dst := []*int{&ref.v, &ref.vt, &ref.vn}
	counts := []int{nv, nvt, nvn}
	for i, p := range parts {
		if p == "" {
			if i == 0 {
				return ref, fmt.Errorf("bad face vertex %q", tok)
			}
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return ref, fmt.Errorf("bad face vertex %q: %w", tok, err)
		}
		if n < 0 {
			n += counts[i]
		} else {
			n--
		}
		if n < 0 || n >= counts[i] {
			return ref, fmt.Errorf("face vertex %q out of range", tok)
		}
		*dst[i] = n
	}
	return ref, nil
}

// buildOBJMesh turns faces into an indexed mesh, sharing identical corners.
func buildOBJMesh(obj *objObject, positions, normals []mgl32.Vec3, uvs []mgl32.Vec2) (*MeshData, error) {
	md := &MeshData{Name: obj.name}
	seen := map[objRef]uint32{}
	for _, face := range obj.faces {
		for _, r := range face {
			if idx, ok := seen[r]; ok {
				md.Indices = append(md.Indices, idx)
				continue
			}
			if r.vn < 0 {
				return nil, core.Errorf(core.ErrModelImport, "obj mesh %s has no normals", obj.name)
			}
			v := Vertex{Pos: positions[r.v], Normal: normals[r.vn]}
			if r.vt >= 0 {
				v.UV = uvs[r.vt]
			}
			idx := uint32(len(md.Vertices))
			md.Vertices = append(md.Vertices, v)
			md.Indices = append(md.Indices, idx)
			seen[r] = idx
		}
	}
	return md, nil
}

// loadMTL reads the materials of one .mtl file in file order. Texture paths
// are relative to the file.
func loadMTL(path string) ([]*MaterialData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	dir := filepath.Dir(path)

	var (
		mats []*MaterialData
		cur  *MaterialData
	)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if fields[0] == "newmtl" {
			cur = &MaterialData{Name: fields[1]}
			mats = append(mats, cur)
			continue
		}
		if cur == nil {
			continue
		}

		switch fields[0] {
		case "Ka", "Kd", "Ks":
			c, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", cur.Name, fields[0], err)
			}
			switch fields[0] {
			case "Ka":
				cur.Ambient = &c
			case "Kd":
				cur.Diffuse = &c
			default:
				cur.Specular = &c
			}
		case "Ns":
			ns, err := strconv.ParseFloat(fields[1], 32)
			if err != nil {
				return nil, fmt.Errorf("%s Ns: %w", cur.Name, err)
			}
			s := float32(ns)
			cur.Shininess = &s
		case "map_Ka", "map_Kd", "map_Ks":
			// options such as -s come first; the file name is last
			img, err := LoadImage(filepath.Join(dir, fields[len(fields)-1]))
			if err != nil {
				core.Logger().Warn("mtl texture skipped", "material", cur.Name, "err", err)
				continue
			}
			switch fields[0] {
			case "map_Ka":
				cur.AmbientTextures = append(cur.AmbientTextures, img)
			case "map_Kd":
				cur.DiffuseTextures = append(cur.DiffuseTextures, img)
			default:
				cur.SpecularTextures = append(cur.SpecularTextures, img)
			}
		}
	}
	return mats, scanner.Err()
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("want %d numbers, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := range out {
		v, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(v)
	}
	return out, nil
}

func parseVec3(fields []string) (mgl32.Vec3, error) {
	v, err := parseFloats(fields, 3)
	if err != nil {
		return mgl32.Vec3{}, err
	}
	return mgl32.Vec3{v[0], v[1], v[2]}, nil
}
