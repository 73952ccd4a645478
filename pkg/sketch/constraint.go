package sketch

import (
	"math"

	"github.com/stylus-cad/stylus/pkg/geom"
)

// ConstraintID identifies a constraint within a document.
type ConstraintID string

// IsZero reports whether the ID is unset.
func (id ConstraintID) IsZero() bool { return id == "" }

// ConstraintKind enumerates the closed set of geometric relations.
type ConstraintKind int

const (
	ConstraintHorizontal ConstraintKind = iota
	ConstraintVertical
	ConstraintDistance
	ConstraintAngle
	ConstraintRadius
	ConstraintCoincident
	ConstraintParallel
	ConstraintPerpendicular
	ConstraintEqual
)

func (k ConstraintKind) String() string {
	switch k {
	case ConstraintHorizontal:
		return "horizontal"
	case ConstraintVertical:
		return "vertical"
	case ConstraintDistance:
		return "distance"
	case ConstraintAngle:
		return "angle"
	case ConstraintRadius:
		return "radius"
	case ConstraintCoincident:
		return "coincident"
	case ConstraintParallel:
		return "parallel"
	case ConstraintPerpendicular:
		return "perpendicular"
	case ConstraintEqual:
		return "equal"
	default:
		return "unknown"
	}
}

// SatisfiedTolerance is the residual below which a constraint counts
// as satisfied.
const SatisfiedTolerance = 1e-6

// Constraint is a named geometric relation over one or two entities,
// referenced by ID. Constraints never own entities: the document prunes
// any constraint whose referenced entity is removed.
type Constraint struct {
	ID        ConstraintID   `json:"id"`
	Kind      ConstraintKind `json:"-"`
	Entities  []EntityID     `json:"entities"`
	Value     *float64       `json:"value,omitempty"`
	PointA    int            `json:"pointA,omitempty"` // control point index on Entities[0] (coincident)
	PointB    int            `json:"pointB,omitempty"` // control point index on Entities[1] (coincident)
	Satisfied bool           `json:"satisfied"`
}

// References reports whether the constraint mentions the entity id.
func (c *Constraint) References(id EntityID) bool {
	for _, eid := range c.Entities {
		if eid == id {
			return true
		}
	}
	return false
}

// Residual returns a nonnegative measure of how far the constraint is
// from being satisfied; 0 means satisfied. Inapplicable configurations
// (missing entities, wrong kinds, missing target value) return +Inf
// rather than an error, so a validation pass over a document with
// dangling or mismatched constraints never panics.
func (c *Constraint) Residual(d *Document) float64 {
	switch c.Kind {
	case ConstraintHorizontal:
		ld, ok := c.lineData(d, 0)
		if !ok {
			return math.Inf(1)
		}
		return math.Abs(ld.End.Y - ld.Start.Y)

	case ConstraintVertical:
		ld, ok := c.lineData(d, 0)
		if !ok {
			return math.Inf(1)
		}
		return math.Abs(ld.End.X - ld.Start.X)

	case ConstraintDistance:
		if c.Value == nil {
			return math.Inf(1)
		}
		switch len(c.Entities) {
		case 1:
			ld, ok := c.lineData(d, 0)
			if !ok {
				return math.Inf(1)
			}
			return math.Abs(ld.Length() - *c.Value)
		case 2:
			e1 := d.Entity(c.Entities[0])
			e2 := d.Entity(c.Entities[1])
			if e1 == nil || e2 == nil {
				return math.Inf(1)
			}
			measured := e1.RepresentativePoint().Distance(e2.RepresentativePoint())
			return math.Abs(measured - *c.Value)
		default:
			return math.Inf(1)
		}

	case ConstraintAngle:
		if c.Value == nil {
			return math.Inf(1)
		}
		switch len(c.Entities) {
		case 1:
			ld, ok := c.lineData(d, 0)
			if !ok {
				return math.Inf(1)
			}
			return geom.AngleDiff(ld.Direction().Angle(), *c.Value)
		case 2:
			l1, ok1 := c.lineData(d, 0)
			l2, ok2 := c.lineData(d, 1)
			if !ok1 || !ok2 {
				return math.Inf(1)
			}
			delta := l2.Direction().Angle() - l1.Direction().Angle()
			return geom.AngleDiff(delta, *c.Value)
		default:
			return math.Inf(1)
		}

	case ConstraintRadius:
		if c.Value == nil || len(c.Entities) != 1 {
			return math.Inf(1)
		}
		e := d.Entity(c.Entities[0])
		if e == nil {
			return math.Inf(1)
		}
		switch data := e.Data.(type) {
		case CircleData:
			return math.Abs(data.Radius - *c.Value)
		case ArcData:
			return math.Abs(data.Radius - *c.Value)
		default:
			return math.Inf(1)
		}

	case ConstraintCoincident:
		if len(c.Entities) != 2 {
			return math.Inf(1)
		}
		e1 := d.Entity(c.Entities[0])
		e2 := d.Entity(c.Entities[1])
		if e1 == nil || e2 == nil {
			return math.Inf(1)
		}
		p1 := e1.ControlPoints()
		p2 := e2.ControlPoints()
		if c.PointA < 0 || c.PointA >= len(p1) || c.PointB < 0 || c.PointB >= len(p2) {
			return math.Inf(1)
		}
		return p1[c.PointA].Distance(p2[c.PointB])

	case ConstraintParallel:
		l1, ok1 := c.lineData(d, 0)
		l2, ok2 := c.lineData(d, 1)
		if !ok1 || !ok2 {
			return math.Inf(1)
		}
		return math.Abs(l1.Direction().Cross(l2.Direction()))

	case ConstraintPerpendicular:
		l1, ok1 := c.lineData(d, 0)
		l2, ok2 := c.lineData(d, 1)
		if !ok1 || !ok2 {
			return math.Inf(1)
		}
		return math.Abs(l1.Direction().Dot(l2.Direction()))

	case ConstraintEqual:
		if len(c.Entities) != 2 {
			return math.Inf(1)
		}
		e1 := d.Entity(c.Entities[0])
		e2 := d.Entity(c.Entities[1])
		if e1 == nil || e2 == nil {
			return math.Inf(1)
		}
		if l1, ok := e1.Data.(LineData); ok {
			if l2, ok := e2.Data.(LineData); ok {
				return math.Abs(l1.Length() - l2.Length())
			}
			return math.Inf(1)
		}
		if c1, ok := e1.Data.(CircleData); ok {
			if c2, ok := e2.Data.(CircleData); ok {
				return math.Abs(c1.Radius - c2.Radius)
			}
			return math.Inf(1)
		}
		return math.Inf(1)

	default:
		return math.Inf(1)
	}
}

// Check reports whether the constraint is currently satisfied.
func (c *Constraint) Check(d *Document) bool {
	return c.Residual(d) < SatisfiedTolerance
}

// lineData fetches entity i's payload as a line.
func (c *Constraint) lineData(d *Document, i int) (LineData, bool) {
	if i >= len(c.Entities) {
		return LineData{}, false
	}
	e := d.Entity(c.Entities[i])
	if e == nil {
		return LineData{}, false
	}
	ld, ok := e.Data.(LineData)
	return ld, ok
}
