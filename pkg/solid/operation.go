package solid

import (
	"errors"
	"fmt"

	"github.com/stylus-cad/stylus/pkg/geom"
	"github.com/stylus-cad/stylus/pkg/kernel"
	"github.com/stylus-cad/stylus/pkg/sketch"
)

// OperationKind identifies a modeling feature.
type OperationKind int

const (
	OpExtrude OperationKind = iota
	OpRevolve
	OpFillet
	OpChamfer
)

func (k OperationKind) String() string {
	switch k {
	case OpExtrude:
		return "extrude"
	case OpRevolve:
		return "revolve"
	case OpFillet:
		return "fillet"
	case OpChamfer:
		return "chamfer"
	default:
		return "unknown"
	}
}

// Operation is a feature record: it names the sketch profile it
// consumes and the parameters of the solid it produces. Operations are
// regenerated against the live document, so editing the sketch and
// regenerating reflects the edit in the solid.
//
// Fillet and chamfer wrap an extrusion and hand the result to a
// geometry kernel for edge treatment; when no kernel is available (or
// the backend cannot express the feature) they fall back to the plain
// extruded mesh.
type Operation struct {
	ID      string             `json:"id"`
	Kind    OperationKind      `json:"kind"`
	Profile []sketch.EntityID  `json:"profile"`
	Extrude ExtrudeParams      `json:"extrude,omitempty"`
	Revolve RevolveParams      `json:"revolve,omitempty"`

	// Radius is the fillet radius; Distance the chamfer setback.
	Radius   float64 `json:"radius,omitempty"`
	Distance float64 `json:"distance,omitempty"`
}

// Regenerate rebuilds the operation's mesh from the current document
// state. The kernel may be nil; only fillet and chamfer use it.
func (op *Operation) Regenerate(doc *sketch.Document, k kernel.Kernel) *Mesh {
	switch op.Kind {
	case OpExtrude:
		return Extrude(doc, op.Profile, op.Extrude)
	case OpRevolve:
		return Revolve(doc, op.Profile, op.Revolve)
	case OpFillet:
		return op.edgeFeature(doc, k, func(s kernel.Solid) (kernel.Solid, error) {
			return k.Round(s, op.Radius)
		})
	case OpChamfer:
		return op.edgeFeature(doc, k, func(s kernel.Solid) (kernel.Solid, error) {
			return k.Chamfer(s, op.Distance)
		})
	default:
		return NewMesh()
	}
}

// edgeFeature extrudes the profile through the kernel, applies the
// edge treatment, and tessellates the result. Any unsupported step
// falls back to the plain extruded mesh.
func (op *Operation) edgeFeature(doc *sketch.Document, k kernel.Kernel, treat func(kernel.Solid) (kernel.Solid, error)) *Mesh {
	if k == nil {
		return Extrude(doc, op.Profile, op.Extrude)
	}
	base, ok := profileSolid(doc, op.Profile, op.Extrude, k)
	if !ok {
		return Extrude(doc, op.Profile, op.Extrude)
	}
	treated, err := treat(base)
	if err != nil {
		if !errors.Is(err, kernel.ErrUnsupported) {
			logger().Warn("edge feature failed", "op", op.ID, "error", err)
		}
		return Extrude(doc, op.Profile, op.Extrude)
	}
	km, err := k.ToMesh(treated)
	if err != nil {
		logger().Warn("kernel tessellation failed", "op", op.ID, "error", err)
		return Extrude(doc, op.Profile, op.Extrude)
	}
	return FromKernelMesh(km)
}

// profileSolid builds the kernel solid for the first supported profile
// entity. Rectangles become boxes, circles become cylinders.
func profileSolid(doc *sketch.Document, profile []sketch.EntityID, params ExtrudeParams, k kernel.Kernel) (kernel.Solid, bool) {
	bottom, top := params.zRange()
	depth := top - bottom
	if depth <= 0 {
		return nil, false
	}
	for _, id := range profile {
		e := doc.Entity(id)
		if e == nil {
			continue
		}
		switch d := e.Data.(type) {
		case sketch.RectangleData:
			bb := e.BoundingBox()
			s := k.Box(bb.Width(), bb.Height(), depth)
			return k.Translate(s, bb.Min.X, bb.Min.Y, bottom), true
		case sketch.CircleData:
			s := k.Cylinder(depth, d.Radius, CircleSegments)
			// sdfx cylinders are centered on the origin.
			return k.Translate(s, d.Center.X, d.Center.Y, bottom+depth/2), true
		}
	}
	return nil, false
}

// FromKernelMesh converts a kernel triangle mesh into the indexed
// face/edge representation. Kernel output is already tessellated, so
// every face is a triangle and no feature edges are emitted.
func FromKernelMesh(km *kernel.Mesh) *Mesh {
	m := NewMesh()
	if km == nil || km.IsEmpty() {
		return m
	}
	for i := 0; i+2 < len(km.Vertices); i += 3 {
		m.addVertex(geom.Vec3{
			X: float64(km.Vertices[i]),
			Y: float64(km.Vertices[i+1]),
			Z: float64(km.Vertices[i+2]),
		})
	}
	for i := 0; i+2 < len(km.Indices); i += 3 {
		a, b, c := int(km.Indices[i]), int(km.Indices[i+1]), int(km.Indices[i+2])
		var normal *geom.Vec3
		if n := a * 3; n+2 < len(km.Normals) {
			normal = &geom.Vec3{
				X: float64(km.Normals[n]),
				Y: float64(km.Normals[n+1]),
				Z: float64(km.Normals[n+2]),
			}
		}
		m.addFace(normal, a, b, c)
	}
	return m
}

// History is an ordered list of operations regenerated as a unit.
type History struct {
	ops     []*Operation
	counter uint64
}

// NewHistory returns an empty feature history.
func NewHistory() *History {
	return &History{}
}

// Add appends an operation, assigning it an id, and returns it.
func (h *History) Add(op Operation) *Operation {
	h.counter++
	op.ID = fmt.Sprintf("f%d", h.counter)
	stored := &op
	h.ops = append(h.ops, stored)
	return stored
}

// Remove deletes the operation with the given id.
func (h *History) Remove(id string) bool {
	for i, op := range h.ops {
		if op.ID == id {
			h.ops = append(h.ops[:i], h.ops[i+1:]...)
			return true
		}
	}
	return false
}

// Operations returns the operations in insertion order.
func (h *History) Operations() []*Operation {
	out := make([]*Operation, len(h.ops))
	copy(out, h.ops)
	return out
}

// Len returns the number of operations.
func (h *History) Len() int { return len(h.ops) }

// Regenerate rebuilds every operation against the document and merges
// the results into one mesh.
func (h *History) Regenerate(doc *sketch.Document, k kernel.Kernel) *Mesh {
	merged := NewMesh()
	for _, op := range h.ops {
		merged.merge(op.Regenerate(doc, k))
	}
	return merged
}
