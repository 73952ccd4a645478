package solid

import (
	"math"

	"github.com/stylus-cad/stylus/pkg/geom"
	"github.com/stylus-cad/stylus/pkg/sketch"
)

// ExtrudeMode selects how the extrusion distance maps onto the sketch
// plane normal.
type ExtrudeMode int

const (
	// ModeSingle extrudes from the sketch plane (z=0) to z=Distance.
	ModeSingle ExtrudeMode = iota
	// ModeSymmetric extrudes half the distance to each side of the plane.
	ModeSymmetric
	// ModeTwoSided extrudes Distance upward and SecondDistance downward.
	ModeTwoSided
)

func (m ExtrudeMode) String() string {
	switch m {
	case ModeSingle:
		return "single"
	case ModeSymmetric:
		return "symmetric"
	case ModeTwoSided:
		return "two-sided"
	default:
		return "unknown"
	}
}

// ExtrudeParams controls an extrusion.
type ExtrudeParams struct {
	Distance       float64     `json:"distance"`
	Mode           ExtrudeMode `json:"mode"`
	SecondDistance float64     `json:"secondDistance,omitempty"`
}

// CircleSegments is the tessellation resolution for circular profiles.
const CircleSegments = 32

// zRange returns the bottom and top z planes for the extrusion.
func (p ExtrudeParams) zRange() (float64, float64) {
	switch p.Mode {
	case ModeSymmetric:
		return -p.Distance / 2, p.Distance / 2
	case ModeTwoSided:
		return -p.SecondDistance, p.Distance
	default:
		return 0, p.Distance
	}
}

// Extrude sweeps the profile entities along the sketch plane normal.
// Rectangles become boxes, circles become cylinders, and lines become
// single ruled quads (a sheet, not a solid). Points, arcs, and any
// entity id that no longer resolves are skipped; an empty or fully
// unsupported profile yields an empty mesh, never an error.
func Extrude(doc *sketch.Document, profile []sketch.EntityID, params ExtrudeParams) *Mesh {
	mesh := NewMesh()
	bottom, top := params.zRange()
	for _, id := range profile {
		e := doc.Entity(id)
		if e == nil {
			continue
		}
		switch d := e.Data.(type) {
		case sketch.RectangleData:
			mesh.merge(extrudeRectangle(d, bottom, top))
		case sketch.CircleData:
			mesh.merge(extrudeCircle(d, bottom, top))
		case sketch.LineData:
			mesh.merge(extrudeLine(d, bottom, top))
		}
	}
	return mesh
}

// extrudeRectangle emits a box: 8 vertices, 6 quad faces, 12 hard edges.
func extrudeRectangle(rect sketch.RectangleData, bottom, top float64) *Mesh {
	m := NewMesh()
	corners := rect.Corners()

	var b, t [4]int
	for i, c := range corners {
		b[i] = m.addVertex(geom.Vec3{X: c.X, Y: c.Y, Z: bottom})
	}
	for i, c := range corners {
		t[i] = m.addVertex(geom.Vec3{X: c.X, Y: c.Y, Z: top})
	}

	down := &geom.Vec3{Z: -1}
	up := &geom.Vec3{Z: 1}
	// The bottom cap winds in reverse so its normal faces away from the
	// solid.
	m.addFace(down, b[3], b[2], b[1], b[0])
	m.addFace(up, t[0], t[1], t[2], t[3])
	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		m.addFace(nil, b[i], b[j], t[j], t[i])
	}

	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		m.addEdge(b[i], b[j], true)
		m.addEdge(t[i], t[j], true)
		m.addEdge(b[i], t[i], true)
	}
	return m
}

// extrudeCircle emits a cylinder tessellated into CircleSegments sides:
// two rim rings plus a cap-center vertex per end, triangle fans on the
// caps, and quad side walls. Rim edges are soft.
func extrudeCircle(circle sketch.CircleData, bottom, top float64) *Mesh {
	m := NewMesh()
	n := CircleSegments

	rimB := make([]int, n)
	rimT := make([]int, n)
	for i := 0; i < n; i++ {
		p := rimPoint(circle, i, n)
		rimB[i] = m.addVertex(geom.Vec3{X: p.X, Y: p.Y, Z: bottom})
	}
	for i := 0; i < n; i++ {
		p := rimPoint(circle, i, n)
		rimT[i] = m.addVertex(geom.Vec3{X: p.X, Y: p.Y, Z: top})
	}
	centerB := m.addVertex(geom.Vec3{X: circle.Center.X, Y: circle.Center.Y, Z: bottom})
	centerT := m.addVertex(geom.Vec3{X: circle.Center.X, Y: circle.Center.Y, Z: top})

	down := &geom.Vec3{Z: -1}
	up := &geom.Vec3{Z: 1}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		m.addFace(down, centerB, rimB[j], rimB[i])
		m.addFace(up, centerT, rimT[i], rimT[j])
		m.addFace(nil, rimB[i], rimB[j], rimT[j], rimT[i])
	}

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		m.addEdge(rimB[i], rimB[j], false)
		m.addEdge(rimT[i], rimT[j], false)
	}
	return m
}

// rimPoint returns the i-th of n evenly spaced points on the circle.
func rimPoint(circle sketch.CircleData, i, n int) geom.Vec2 {
	theta := 2 * math.Pi * float64(i) / float64(n)
	return geom.Vec2{
		X: circle.Center.X + circle.Radius*math.Cos(theta),
		Y: circle.Center.Y + circle.Radius*math.Sin(theta),
	}
}

// extrudeLine emits a single ruled quad between the line at the bottom
// and top planes.
func extrudeLine(line sketch.LineData, bottom, top float64) *Mesh {
	m := NewMesh()
	b0 := m.addVertex(geom.Vec3{X: line.Start.X, Y: line.Start.Y, Z: bottom})
	b1 := m.addVertex(geom.Vec3{X: line.End.X, Y: line.End.Y, Z: bottom})
	t1 := m.addVertex(geom.Vec3{X: line.End.X, Y: line.End.Y, Z: top})
	t0 := m.addVertex(geom.Vec3{X: line.Start.X, Y: line.Start.Y, Z: top})

	m.addFace(nil, b0, b1, t1, t0)
	m.addEdge(b0, b1, true)
	m.addEdge(t0, t1, true)
	m.addEdge(b0, t0, true)
	m.addEdge(b1, t1, true)
	return m
}
