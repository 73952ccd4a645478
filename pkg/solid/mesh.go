// Package solid converts closed 2D sketch profiles into indexed 3D
// meshes via extrusion and revolution, and records the operations that
// produced them so they can be regenerated from the sketch on demand.
package solid

import "github.com/stylus-cad/stylus/pkg/geom"

// Face is a planar polygon referencing mesh vertices by index, with an
// optional precomputed normal.
type Face struct {
	Indices []int      `json:"indices"`
	Normal  *geom.Vec3 `json:"normal,omitempty"`
}

// Edge connects two mesh vertices. Hard edges are feature lines a
// renderer draws explicitly; soft edges belong to tessellated curves.
type Edge struct {
	Start int  `json:"start"`
	End   int  `json:"end"`
	Hard  bool `json:"hard"`
}

// Mesh is an indexed vertex/face/edge mesh. A mesh is built once per
// generation call and never mutated afterwards; the caller owns it.
type Mesh struct {
	Vertices []geom.Vec3 `json:"vertices"`
	Faces    []Face      `json:"faces"`
	Edges    []Edge      `json:"edges"`
}

// NewMesh returns an empty mesh.
func NewMesh() *Mesh {
	return &Mesh{}
}

// IsEmpty reports whether the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.Vertices) }

// FaceCount returns the number of faces.
func (m *Mesh) FaceCount() int { return len(m.Faces) }

// EdgeCount returns the number of edges.
func (m *Mesh) EdgeCount() int { return len(m.Edges) }

// addVertex appends a vertex and returns its index.
func (m *Mesh) addVertex(v geom.Vec3) int {
	m.Vertices = append(m.Vertices, v)
	return len(m.Vertices) - 1
}

func (m *Mesh) addFace(normal *geom.Vec3, indices ...int) {
	m.Faces = append(m.Faces, Face{Indices: indices, Normal: normal})
}

func (m *Mesh) addEdge(start, end int, hard bool) {
	m.Edges = append(m.Edges, Edge{Start: start, End: end, Hard: hard})
}

// merge appends the other mesh's geometry, reindexing it.
func (m *Mesh) merge(o *Mesh) {
	base := len(m.Vertices)
	m.Vertices = append(m.Vertices, o.Vertices...)
	for _, f := range o.Faces {
		indices := make([]int, len(f.Indices))
		for i, idx := range f.Indices {
			indices[i] = idx + base
		}
		m.Faces = append(m.Faces, Face{Indices: indices, Normal: f.Normal})
	}
	for _, e := range o.Edges {
		m.Edges = append(m.Edges, Edge{Start: e.Start + base, End: e.End + base, Hard: e.Hard})
	}
}
