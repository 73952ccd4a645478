package solid

import (
	"testing"

	"github.com/stylus-cad/stylus/pkg/geom"
	"github.com/stylus-cad/stylus/pkg/kernel"
	"github.com/stylus-cad/stylus/pkg/sketch"
)

// fakeSolid is a trivial kernel solid for operation tests.
type fakeSolid struct{ min, max [3]float64 }

func (s fakeSolid) BoundingBox() ([3]float64, [3]float64) { return s.min, s.max }

// fakeKernel records calls and returns a fixed single-triangle mesh.
type fakeKernel struct {
	roundCalls   int
	chamferCalls int
	roundErr     error
	chamferErr   error
}

func (k *fakeKernel) Box(x, y, z float64) kernel.Solid {
	return fakeSolid{max: [3]float64{x, y, z}}
}

func (k *fakeKernel) Cylinder(height, radius float64, segments int) kernel.Solid {
	return fakeSolid{
		min: [3]float64{-radius, -radius, -height / 2},
		max: [3]float64{radius, radius, height / 2},
	}
}

func (k *fakeKernel) Union(a, b kernel.Solid) kernel.Solid        { return a }
func (k *fakeKernel) Difference(a, b kernel.Solid) kernel.Solid   { return a }
func (k *fakeKernel) Intersection(a, b kernel.Solid) kernel.Solid { return a }

func (k *fakeKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid { return s }
func (k *fakeKernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid    { return s }

func (k *fakeKernel) Round(s kernel.Solid, radius float64) (kernel.Solid, error) {
	k.roundCalls++
	if k.roundErr != nil {
		return nil, k.roundErr
	}
	return s, nil
}

func (k *fakeKernel) Chamfer(s kernel.Solid, distance float64) (kernel.Solid, error) {
	k.chamferCalls++
	if k.chamferErr != nil {
		return nil, k.chamferErr
	}
	return s, nil
}

func (k *fakeKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	return &kernel.Mesh{
		Vertices: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		Normals:  []float32{0, 0, 1, 0, 0, 1, 0, 0, 1},
		Indices:  []uint32{0, 1, 2},
	}, nil
}

func rectDoc(t *testing.T) (*sketch.Document, sketch.EntityID) {
	t.Helper()
	doc := sketch.New()
	rect := doc.AddRectangle(geom.V2(0, 0), geom.V2(10, 10))
	return doc, rect.ID
}

func TestOperationRegenerateExtrude(t *testing.T) {
	doc, id := rectDoc(t)
	op := &Operation{Kind: OpExtrude, Profile: []sketch.EntityID{id}, Extrude: ExtrudeParams{Distance: 5}}
	m := op.Regenerate(doc, nil)
	if m.VertexCount() != 8 {
		t.Errorf("vertices = %d, want 8", m.VertexCount())
	}
}

func TestOperationRegenerateTracksSketchEdits(t *testing.T) {
	doc, id := rectDoc(t)
	op := &Operation{Kind: OpExtrude, Profile: []sketch.EntityID{id}, Extrude: ExtrudeParams{Distance: 5}}
	op.Regenerate(doc, nil)

	// Editing the sketch changes the next regeneration.
	doc.Entity(id).Translate(geom.V2(100, 0))
	m := op.Regenerate(doc, nil)
	if !near(m.Vertices[0].X, 100) {
		t.Errorf("regenerated x = %v, want 100", m.Vertices[0].X)
	}

	// Deleting the profile empties the feature without error.
	doc.RemoveEntity(id)
	if m := op.Regenerate(doc, nil); !m.IsEmpty() {
		t.Error("deleted profile should regenerate empty")
	}
}

func TestFilletUsesKernel(t *testing.T) {
	doc, id := rectDoc(t)
	k := &fakeKernel{}
	op := &Operation{
		Kind:    OpFillet,
		Profile: []sketch.EntityID{id},
		Extrude: ExtrudeParams{Distance: 5},
		Radius:  1,
	}
	m := op.Regenerate(doc, k)
	if k.roundCalls != 1 {
		t.Errorf("round calls = %d, want 1", k.roundCalls)
	}
	// The kernel's triangle mesh comes back, not the box extrusion.
	if m.VertexCount() != 3 || m.FaceCount() != 1 {
		t.Errorf("counts = %d/%d, want 3/1", m.VertexCount(), m.FaceCount())
	}
}

func TestChamferFallsBackWhenUnsupported(t *testing.T) {
	doc, id := rectDoc(t)
	k := &fakeKernel{chamferErr: kernel.ErrUnsupported}
	op := &Operation{
		Kind:     OpChamfer,
		Profile:  []sketch.EntityID{id},
		Extrude:  ExtrudeParams{Distance: 5},
		Distance: 1,
	}
	m := op.Regenerate(doc, k)
	if k.chamferCalls != 1 {
		t.Errorf("chamfer calls = %d, want 1", k.chamferCalls)
	}
	// Fallback is the plain box extrusion.
	if m.VertexCount() != 8 {
		t.Errorf("vertices = %d, want 8 (plain extrusion)", m.VertexCount())
	}
}

func TestFilletWithoutKernelFallsBack(t *testing.T) {
	doc, id := rectDoc(t)
	op := &Operation{
		Kind:    OpFillet,
		Profile: []sketch.EntityID{id},
		Extrude: ExtrudeParams{Distance: 5},
		Radius:  1,
	}
	if m := op.Regenerate(doc, nil); m.VertexCount() != 8 {
		t.Errorf("vertices = %d, want 8 (plain extrusion)", m.VertexCount())
	}
}

func TestFromKernelMesh(t *testing.T) {
	km := &kernel.Mesh{
		Vertices: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1},
		Normals:  []float32{0, 0, 1, 0, 0, 1, 0, 0, 1, 1, 0, 0},
		Indices:  []uint32{0, 1, 2, 0, 2, 3},
	}
	m := FromKernelMesh(km)
	if m.VertexCount() != 4 || m.FaceCount() != 2 {
		t.Fatalf("counts = %d/%d, want 4/2", m.VertexCount(), m.FaceCount())
	}
	if m.Faces[0].Normal == nil || !near(m.Faces[0].Normal.Z, 1) {
		t.Error("face 0 normal should come from the kernel")
	}

	if m := FromKernelMesh(nil); !m.IsEmpty() {
		t.Error("nil kernel mesh should convert to an empty mesh")
	}
}

func TestHistoryAddRemove(t *testing.T) {
	h := NewHistory()
	a := h.Add(Operation{Kind: OpExtrude})
	b := h.Add(Operation{Kind: OpRevolve})
	if a.ID != "f1" || b.ID != "f2" {
		t.Errorf("ids = %s, %s, want f1, f2", a.ID, b.ID)
	}
	if h.Len() != 2 {
		t.Errorf("len = %d, want 2", h.Len())
	}

	if !h.Remove("f1") {
		t.Error("remove f1 failed")
	}
	if h.Remove("f1") {
		t.Error("second remove of f1 should fail")
	}
	// Ids continue past removals.
	c := h.Add(Operation{Kind: OpExtrude})
	if c.ID != "f3" {
		t.Errorf("id = %s, want f3", c.ID)
	}
}

func TestHistoryRegenerateMerges(t *testing.T) {
	doc := sketch.New()
	a := doc.AddRectangle(geom.V2(0, 0), geom.V2(2, 2))
	b := doc.AddRectangle(geom.V2(10, 10), geom.V2(14, 14))

	h := NewHistory()
	h.Add(Operation{Kind: OpExtrude, Profile: []sketch.EntityID{a.ID}, Extrude: ExtrudeParams{Distance: 1}})
	h.Add(Operation{Kind: OpExtrude, Profile: []sketch.EntityID{b.ID}, Extrude: ExtrudeParams{Distance: 1}})

	m := h.Regenerate(doc, nil)
	if m.VertexCount() != 16 || m.FaceCount() != 12 {
		t.Errorf("counts = %d/%d, want 16/12", m.VertexCount(), m.FaceCount())
	}
	// The second box's faces index into the merged array.
	last := m.Faces[len(m.Faces)-1]
	for _, idx := range last.Indices {
		if idx < 8 {
			t.Errorf("merged face index %d should be offset past the first box", idx)
		}
	}
}

func TestOperationKindString(t *testing.T) {
	tests := []struct {
		kind OperationKind
		want string
	}{
		{OpExtrude, "extrude"},
		{OpRevolve, "revolve"},
		{OpFillet, "fillet"},
		{OpChamfer, "chamfer"},
		{OperationKind(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
