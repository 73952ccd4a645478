package solid

import (
	"math"
	"testing"

	"github.com/stylus-cad/stylus/pkg/geom"
	"github.com/stylus-cad/stylus/pkg/sketch"
)

const tol = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < tol
}

func TestExtrudeRectangle(t *testing.T) {
	doc := sketch.New()
	rect := doc.AddRectangle(geom.V2(0, 0), geom.V2(10, 6))

	m := Extrude(doc, []sketch.EntityID{rect.ID}, ExtrudeParams{Distance: 10})
	if m.VertexCount() != 8 {
		t.Errorf("vertices = %d, want 8", m.VertexCount())
	}
	if m.FaceCount() != 6 {
		t.Errorf("faces = %d, want 6", m.FaceCount())
	}
	if m.EdgeCount() != 12 {
		t.Errorf("edges = %d, want 12", m.EdgeCount())
	}

	// Bottom ring at z=0, top ring at z=10.
	for i, v := range m.Vertices {
		want := 0.0
		if i >= 4 {
			want = 10.0
		}
		if !near(v.Z, want) {
			t.Errorf("vertex %d z = %v, want %v", i, v.Z, want)
		}
	}

	// All box edges are hard.
	for i, e := range m.Edges {
		if !e.Hard {
			t.Errorf("edge %d should be hard", i)
		}
	}

	// Cap normals point away from the solid.
	if m.Faces[0].Normal == nil || !near(m.Faces[0].Normal.Z, -1) {
		t.Error("bottom cap normal should be -Z")
	}
	if m.Faces[1].Normal == nil || !near(m.Faces[1].Normal.Z, 1) {
		t.Error("top cap normal should be +Z")
	}
}

func TestExtrudeCircle(t *testing.T) {
	doc := sketch.New()
	circle := doc.AddCircle(geom.V2(0, 0), 5)

	m := Extrude(doc, []sketch.EntityID{circle.ID}, ExtrudeParams{Distance: 4})
	n := CircleSegments
	if m.VertexCount() != 2*n+2 {
		t.Errorf("vertices = %d, want %d", m.VertexCount(), 2*n+2)
	}
	// Two cap fans plus the side wall.
	if m.FaceCount() != 3*n {
		t.Errorf("faces = %d, want %d", m.FaceCount(), 3*n)
	}
	if m.EdgeCount() != 2*n {
		t.Errorf("edges = %d, want %d", m.EdgeCount(), 2*n)
	}

	// Rim edges are soft.
	for i, e := range m.Edges {
		if e.Hard {
			t.Errorf("rim edge %d should be soft", i)
		}
	}

	// Every rim vertex sits on the circle.
	for i := 0; i < 2*n; i++ {
		v := m.Vertices[i]
		r := math.Hypot(v.X, v.Y)
		if !near(r, 5) {
			t.Errorf("rim vertex %d at radius %v, want 5", i, r)
		}
	}
}

func TestExtrudeLine(t *testing.T) {
	doc := sketch.New()
	line := doc.AddLine(geom.V2(0, 0), geom.V2(10, 0))

	m := Extrude(doc, []sketch.EntityID{line.ID}, ExtrudeParams{Distance: 3})
	if m.VertexCount() != 4 || m.FaceCount() != 1 || m.EdgeCount() != 4 {
		t.Errorf("counts = %d/%d/%d, want 4/1/4",
			m.VertexCount(), m.FaceCount(), m.EdgeCount())
	}
}

func TestExtrudeModes(t *testing.T) {
	tests := []struct {
		name        string
		params      ExtrudeParams
		bottom, top float64
	}{
		{"single", ExtrudeParams{Distance: 10, Mode: ModeSingle}, 0, 10},
		{"symmetric", ExtrudeParams{Distance: 10, Mode: ModeSymmetric}, -5, 5},
		{"two-sided", ExtrudeParams{Distance: 10, Mode: ModeTwoSided, SecondDistance: 3}, -3, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bottom, top := tt.params.zRange()
			if !near(bottom, tt.bottom) || !near(top, tt.top) {
				t.Errorf("zRange = %v..%v, want %v..%v", bottom, top, tt.bottom, tt.top)
			}
		})
	}
}

func TestExtrudeSkipsUnsupported(t *testing.T) {
	doc := sketch.New()
	point := doc.AddPoint(geom.V2(0, 0))
	arc := doc.AddArc(geom.V2(0, 0), 5, 0, math.Pi)
	rect := doc.AddRectangle(geom.V2(0, 0), geom.V2(4, 4))

	m := Extrude(doc, []sketch.EntityID{point.ID, arc.ID, rect.ID, "e999"}, ExtrudeParams{Distance: 2})
	// Only the rectangle contributes.
	if m.VertexCount() != 8 {
		t.Errorf("vertices = %d, want 8", m.VertexCount())
	}
}

func TestExtrudeEmptyProfile(t *testing.T) {
	doc := sketch.New()
	m := Extrude(doc, nil, ExtrudeParams{Distance: 10})
	if !m.IsEmpty() {
		t.Error("empty profile should yield an empty mesh")
	}
}

func TestExtrudeMultipleProfiles(t *testing.T) {
	doc := sketch.New()
	a := doc.AddRectangle(geom.V2(0, 0), geom.V2(2, 2))
	b := doc.AddCircle(geom.V2(10, 10), 1)

	m := Extrude(doc, []sketch.EntityID{a.ID, b.ID}, ExtrudeParams{Distance: 5})
	want := 8 + 2*CircleSegments + 2
	if m.VertexCount() != want {
		t.Errorf("vertices = %d, want %d", m.VertexCount(), want)
	}
	// Merged faces index into the combined vertex array.
	for _, f := range m.Faces {
		for _, idx := range f.Indices {
			if idx < 0 || idx >= m.VertexCount() {
				t.Fatalf("face index %d out of range", idx)
			}
		}
	}
}

func TestExtrudeModeString(t *testing.T) {
	tests := []struct {
		mode ExtrudeMode
		want string
	}{
		{ModeSingle, "single"},
		{ModeSymmetric, "symmetric"},
		{ModeTwoSided, "two-sided"},
		{ExtrudeMode(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
