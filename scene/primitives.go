package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// SphereData generates a UV sphere centered on the origin.
func SphereData(radius float32, segments, rings int) *MeshData {
	segments, rings = max(segments, 3), max(rings, 2)
	md := &MeshData{Name: "sphere"}

	for ring := 0; ring <= rings; ring++ {
		phi := float32(ring) * math32.Pi / float32(rings)
		sinPhi, cosPhi := math32.Sincos(phi)
		for seg := 0; seg <= segments; seg++ {
			theta := float32(seg) * 2 * math32.Pi / float32(segments)
			sinTheta, cosTheta := math32.Sincos(theta)

			n := mgl32.Vec3{sinPhi * cosTheta, cosPhi, sinPhi * sinTheta}
			md.Vertices = append(md.Vertices, Vertex{
				Pos:    n.Mul(radius),
				Normal: n,
				UV:     mgl32.Vec2{float32(seg) / float32(segments), 1 - float32(ring)/float32(rings)},
			})
		}
	}
	md.Indices = gridIndices(rings, segments)
	return md
}

// TorusData generates a torus around the Y axis.
func TorusData(majorRadius, minorRadius float32, majorSegments, minorSegments int) *MeshData {
	majorSegments, minorSegments = max(majorSegments, 3), max(minorSegments, 3)
	md := &MeshData{Name: "torus"}

	for i := 0; i <= majorSegments; i++ {
		sinTheta, cosTheta := math32.Sincos(float32(i) * 2 * math32.Pi / float32(majorSegments))
		for j := 0; j <= minorSegments; j++ {
			sinPhi, cosPhi := math32.Sincos(float32(j) * 2 * math32.Pi / float32(minorSegments))
			ring := majorRadius + minorRadius*cosPhi
			md.Vertices = append(md.Vertices, Vertex{
				Pos:    mgl32.Vec3{ring * cosTheta, minorRadius * sinPhi, ring * sinTheta},
				Normal: mgl32.Vec3{cosPhi * cosTheta, sinPhi, cosPhi * sinTheta}.Normalize(),
				UV:     mgl32.Vec2{float32(i) / float32(majorSegments), float32(j) / float32(minorSegments)},
			})
		}
	}
	md.Indices = gridIndices(majorSegments, minorSegments)
	return md
}

// PlaneData generates a subdivided plane in XZ facing +Y.
func PlaneData(width, depth float32, subdivisions int) *MeshData {
	subdivisions = max(subdivisions, 1)
	md := &MeshData{Name: "plane"}

	for z := 0; z <= subdivisions; z++ {
		for x := 0; x <= subdivisions; x++ {
			u := float32(x) / float32(subdivisions)
			v := float32(z) / float32(subdivisions)
			md.Vertices = append(md.Vertices, Vertex{
				Pos:    mgl32.Vec3{(u - 0.5) * width, 0, (v - 0.5) * depth},
				Normal: mgl32.Vec3{0, 1, 0},
				UV:     mgl32.Vec2{u, v},
			})
		}
	}
	md.Indices = gridIndices(subdivisions, subdivisions)
	return md
}

// gridIndices triangulates a (rows+1) x (cols+1) vertex grid stored row by
// row.
func gridIndices(rows, cols int) []uint32 {
	out := make([]uint32, 0, rows*cols*6)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cur := uint32(r*(cols+1) + c)
			next := cur + uint32(cols+1)
			out = append(out, cur, next, cur+1, cur+1, next, next+1)
		}
	}
	return out
}

// SingleMesh wraps one mesh, with an optional material, as a model.
func SingleMesh(md *MeshData, mat *MaterialData) *ModelData {
	md.Material = mat
	data := &ModelData{Meshes: []*MeshData{md}, Root: NewNode(md.Name)}
	data.Root.Meshes = []*MeshData{md}
	if mat != nil {
		data.Materials = []*MaterialData{mat}
	}
	return data
}
