// Package kernel defines the abstract geometry kernel interface.
// Implementations (sdfx, manifold) provide solid modeling and boolean
// operations behind this interface. Features that plain profile
// extrusion cannot express (edge rounding, chamfers) go through a
// kernel; the abstraction allows swapping backends without changing
// the rest of the system.
package kernel

import "errors"

// ErrUnsupported is returned by kernel operations the active backend
// cannot perform. Callers fall back to the unmodified solid.
var ErrUnsupported = errors.New("kernel: operation not supported by backend")

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Primitives. Box places its minimum corner at the origin so an
	// extruded sketch profile can be positioned with a single
	// translate; Cylinder is centered at the origin.
	Box(x, y, z float64) Solid
	Cylinder(height, radius float64, segments int) Solid

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees

	// Edge features. Backends that cannot express one return
	// ErrUnsupported.
	Round(s Solid, radius float64) (Solid, error)
	Chamfer(s Solid, distance float64) (Solid, error)

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}
