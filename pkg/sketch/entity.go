package sketch

import (
	"math"

	"github.com/stylus-cad/stylus/pkg/geom"
)

// EntityID identifies an entity within a document. IDs are assigned by
// the document from a monotonic counter and are never reused.
type EntityID string

// IsZero reports whether the ID is unset.
func (id EntityID) IsZero() bool { return id == "" }

// EntityKind enumerates the closed set of sketch entity shapes.
type EntityKind int

const (
	KindPoint EntityKind = iota
	KindLine
	KindCircle
	KindArc
	KindRectangle
)

func (k EntityKind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindLine:
		return "line"
	case KindCircle:
		return "circle"
	case KindArc:
		return "arc"
	case KindRectangle:
		return "rectangle"
	default:
		return "unknown"
	}
}

// Entity is a single sketch shape. Identity is the ID; the geometric
// payload lives behind EntityData and is matched exhaustively by kind.
type Entity struct {
	ID           EntityID   `json:"id"`
	Kind         EntityKind `json:"-"`
	Selected     bool       `json:"selected"`
	Construction bool       `json:"construction"`
	Data         EntityData `json:"-"`
}

// EntityData is the interface for kind-specific entity payloads.
type EntityData interface {
	entityData() // marker method restricting implementations to this package
}

// PointData is the payload of a point entity.
type PointData struct {
	Position geom.Vec2 `json:"position"`
}

func (PointData) entityData() {}

// LineData is the payload of a line segment entity.
type LineData struct {
	Start geom.Vec2 `json:"start"`
	End   geom.Vec2 `json:"end"`
}

func (LineData) entityData() {}

// Direction returns the normalized direction from start to end.
func (d LineData) Direction() geom.Vec2 {
	return d.End.Sub(d.Start).Normalize()
}

// Length returns the segment length.
func (d LineData) Length() float64 {
	return d.Start.Distance(d.End)
}

// Midpoint returns the segment midpoint.
func (d LineData) Midpoint() geom.Vec2 {
	return d.Start.Add(d.End).Div(2)
}

// CircleData is the payload of a full circle entity.
type CircleData struct {
	Center geom.Vec2 `json:"center"`
	Radius float64   `json:"radius"`
}

func (CircleData) entityData() {}

// ArcData is the payload of a circular arc entity. Sweep is signed, in
// radians; positive sweeps counter-clockwise from StartAngle.
type ArcData struct {
	Center     geom.Vec2 `json:"center"`
	Radius     float64   `json:"radius"`
	StartAngle float64   `json:"startAngle"`
	SweepAngle float64   `json:"sweepAngle"`
}

func (ArcData) entityData() {}

// PointAt returns the point on the arc's circle at angle theta.
func (d ArcData) PointAt(theta float64) geom.Vec2 {
	return d.Center.Add(geom.V2(math.Cos(theta), math.Sin(theta)).Mul(d.Radius))
}

// StartPoint returns the arc's start endpoint.
func (d ArcData) StartPoint() geom.Vec2 { return d.PointAt(d.StartAngle) }

// EndPoint returns the arc's end endpoint.
func (d ArcData) EndPoint() geom.Vec2 { return d.PointAt(d.StartAngle + d.SweepAngle) }

// ContainsAngle reports whether theta lies within the arc's signed sweep.
func (d ArcData) ContainsAngle(theta float64) bool {
	sweep := d.SweepAngle
	if math.Abs(sweep) >= 2*math.Pi {
		return true
	}
	if sweep >= 0 {
		return geom.NormalizeAngle(theta-d.StartAngle) <= sweep
	}
	return geom.NormalizeAngle(d.StartAngle-theta) <= -sweep
}

// RectangleData is the payload of an axis-aligned rectangle entity,
// stored as two opposite corners in any order.
type RectangleData struct {
	CornerA geom.Vec2 `json:"cornerA"`
	CornerB geom.Vec2 `json:"cornerB"`
}

func (RectangleData) entityData() {}

// Corners returns the normalized corners in order top-left, top-right,
// bottom-right, bottom-left (screen convention: +Y down means "top" is
// min-Y; callers only rely on the ordering being a closed loop).
func (d RectangleData) Corners() [4]geom.Vec2 {
	minX := math.Min(d.CornerA.X, d.CornerB.X)
	maxX := math.Max(d.CornerA.X, d.CornerB.X)
	minY := math.Min(d.CornerA.Y, d.CornerB.Y)
	maxY := math.Max(d.CornerA.Y, d.CornerB.Y)
	return [4]geom.Vec2{
		{X: minX, Y: minY},
		{X: maxX, Y: minY},
		{X: maxX, Y: maxY},
		{X: minX, Y: maxY},
	}
}

// Width returns the rectangle's X extent.
func (d RectangleData) Width() float64 { return math.Abs(d.CornerB.X - d.CornerA.X) }

// Height returns the rectangle's Y extent.
func (d RectangleData) Height() float64 { return math.Abs(d.CornerB.Y - d.CornerA.Y) }

// BoundingBox returns the entity's axis-aligned bounds. Arc bounds
// include the axis-crossing extremes that fall inside the sweep, not
// just the endpoints.
func (e *Entity) BoundingBox() geom.BoundingBox {
	switch d := e.Data.(type) {
	case PointData:
		return geom.BoundingBox{Min: d.Position, Max: d.Position}
	case LineData:
		return geom.BoxFromCorners(d.Start, d.End)
	case CircleData:
		r := geom.V2(d.Radius, d.Radius)
		return geom.BoundingBox{Min: d.Center.Sub(r), Max: d.Center.Add(r)}
	case ArcData:
		box := geom.NewBoundingBox().Expand(d.StartPoint()).Expand(d.EndPoint())
		// The four axis-aligned directions; each contributes an extreme
		// point only if its angle lies inside the sweep.
		for _, theta := range []float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2} {
			if d.ContainsAngle(theta) {
				box = box.Expand(d.PointAt(theta))
			}
		}
		return box
	case RectangleData:
		return geom.BoxFromCorners(d.CornerA, d.CornerB)
	default:
		return geom.NewBoundingBox()
	}
}

// DistanceTo returns the distance from p to the entity's outline.
func (e *Entity) DistanceTo(p geom.Vec2) float64 {
	switch d := e.Data.(type) {
	case PointData:
		return p.Distance(d.Position)
	case LineData:
		return geom.DistancePointSegment(p, d.Start, d.End)
	case CircleData:
		return math.Abs(p.Distance(d.Center) - d.Radius)
	case ArcData:
		theta := p.Sub(d.Center).Angle()
		if d.ContainsAngle(theta) {
			return math.Abs(p.Distance(d.Center) - d.Radius)
		}
		return math.Min(p.Distance(d.StartPoint()), p.Distance(d.EndPoint()))
	case RectangleData:
		c := d.Corners()
		dist := math.Inf(1)
		for i := 0; i < 4; i++ {
			dist = math.Min(dist, geom.DistancePointSegment(p, c[i], c[(i+1)%4]))
		}
		return dist
	default:
		return math.Inf(1)
	}
}

// ControlPoints returns the entity's draggable reference points. The
// ordering is stable and is what coincident constraints index into.
func (e *Entity) ControlPoints() []geom.Vec2 {
	switch d := e.Data.(type) {
	case PointData:
		return []geom.Vec2{d.Position}
	case LineData:
		return []geom.Vec2{d.Start, d.End}
	case CircleData:
		// Center plus one quadrant point for radius dragging.
		return []geom.Vec2{d.Center, d.Center.Add(geom.V2(d.Radius, 0))}
	case ArcData:
		return []geom.Vec2{d.Center, d.StartPoint(), d.EndPoint()}
	case RectangleData:
		c := d.Corners()
		return c[:]
	default:
		return nil
	}
}

// Translate moves the entity in place by delta.
func (e *Entity) Translate(delta geom.Vec2) {
	switch d := e.Data.(type) {
	case PointData:
		d.Position = d.Position.Add(delta)
		e.Data = d
	case LineData:
		d.Start = d.Start.Add(delta)
		d.End = d.End.Add(delta)
		e.Data = d
	case CircleData:
		d.Center = d.Center.Add(delta)
		e.Data = d
	case ArcData:
		d.Center = d.Center.Add(delta)
		e.Data = d
	case RectangleData:
		d.CornerA = d.CornerA.Add(delta)
		d.CornerB = d.CornerB.Add(delta)
		e.Data = d
	}
}

// Clone returns a deep copy of the entity under a new ID.
func (e *Entity) Clone(newID EntityID) *Entity {
	c := *e
	c.ID = newID
	return &c
}

// RepresentativePoint returns the point used when measuring distances
// between whole entities: position for points, midpoint for lines,
// center for circles, arcs and rectangles.
func (e *Entity) RepresentativePoint() geom.Vec2 {
	switch d := e.Data.(type) {
	case PointData:
		return d.Position
	case LineData:
		return d.Midpoint()
	case CircleData:
		return d.Center
	case ArcData:
		return d.Center
	case RectangleData:
		return geom.BoxFromCorners(d.CornerA, d.CornerB).Center()
	default:
		return geom.Vec2{}
	}
}
