package sketch

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/stylus-cad/stylus/pkg/geom"
)

// ErrUnknownType is returned when a persisted record carries a type
// discriminator this version does not know. Loading aborts: the caller
// keeps its previous document rather than receiving a partial one.
var ErrUnknownType = errors.New("sketch: unknown type discriminator")

// entityJSON is the wire form of an entity: common fields plus the
// union of kind-specific fields, discriminated by Type.
type entityJSON struct {
	Type         string     `json:"type"`
	ID           EntityID   `json:"id"`
	Selected     bool       `json:"selected,omitempty"`
	Construction bool       `json:"construction,omitempty"`

	Position   *geom.Vec2 `json:"position,omitempty"`
	Start      *geom.Vec2 `json:"start,omitempty"`
	End        *geom.Vec2 `json:"end,omitempty"`
	Center     *geom.Vec2 `json:"center,omitempty"`
	Radius     *float64   `json:"radius,omitempty"`
	StartAngle *float64   `json:"startAngle,omitempty"`
	SweepAngle *float64   `json:"sweepAngle,omitempty"`
	CornerA    *geom.Vec2 `json:"cornerA,omitempty"`
	CornerB    *geom.Vec2 `json:"cornerB,omitempty"`
}

// MarshalJSON encodes the entity with a type discriminator.
func (e *Entity) MarshalJSON() ([]byte, error) {
	out := entityJSON{
		Type:         e.Kind.String(),
		ID:           e.ID,
		Selected:     e.Selected,
		Construction: e.Construction,
	}
	switch d := e.Data.(type) {
	case PointData:
		out.Position = &d.Position
	case LineData:
		out.Start = &d.Start
		out.End = &d.End
	case CircleData:
		out.Center = &d.Center
		out.Radius = &d.Radius
	case ArcData:
		out.Center = &d.Center
		out.Radius = &d.Radius
		out.StartAngle = &d.StartAngle
		out.SweepAngle = &d.SweepAngle
	case RectangleData:
		out.CornerA = &d.CornerA
		out.CornerB = &d.CornerB
	default:
		return nil, fmt.Errorf("sketch: entity %s has unsupported payload %T", e.ID, e.Data)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes an entity, failing on an unknown type string.
func (e *Entity) UnmarshalJSON(data []byte) error {
	var in entityJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	e.ID = in.ID
	e.Selected = in.Selected
	e.Construction = in.Construction

	vec := func(v *geom.Vec2) geom.Vec2 {
		if v == nil {
			return geom.Vec2{}
		}
		return *v
	}
	num := func(v *float64) float64 {
		if v == nil {
			return 0
		}
		return *v
	}

	switch in.Type {
	case "point":
		e.Kind = KindPoint
		e.Data = PointData{Position: vec(in.Position)}
	case "line":
		e.Kind = KindLine
		e.Data = LineData{Start: vec(in.Start), End: vec(in.End)}
	case "circle":
		e.Kind = KindCircle
		e.Data = CircleData{Center: vec(in.Center), Radius: num(in.Radius)}
	case "arc":
		e.Kind = KindArc
		e.Data = ArcData{
			Center:     vec(in.Center),
			Radius:     num(in.Radius),
			StartAngle: num(in.StartAngle),
			SweepAngle: num(in.SweepAngle),
		}
	case "rectangle":
		e.Kind = KindRectangle
		e.Data = RectangleData{CornerA: vec(in.CornerA), CornerB: vec(in.CornerB)}
	default:
		return fmt.Errorf("%w: entity type %q", ErrUnknownType, in.Type)
	}
	return nil
}

// constraintJSON is the wire form of a constraint.
type constraintJSON struct {
	Type      string         `json:"type"`
	ID        ConstraintID   `json:"id"`
	Entities  []EntityID     `json:"entities"`
	Value     *float64       `json:"value,omitempty"`
	PointA    int            `json:"pointA,omitempty"`
	PointB    int            `json:"pointB,omitempty"`
	Satisfied bool           `json:"satisfied"`
}

// MarshalJSON encodes the constraint with a type discriminator.
func (c *Constraint) MarshalJSON() ([]byte, error) {
	return json.Marshal(constraintJSON{
		Type:      c.Kind.String(),
		ID:        c.ID,
		Entities:  c.Entities,
		Value:     c.Value,
		PointA:    c.PointA,
		PointB:    c.PointB,
		Satisfied: c.Satisfied,
	})
}

// UnmarshalJSON decodes a constraint, failing on an unknown type string.
func (c *Constraint) UnmarshalJSON(data []byte) error {
	var in constraintJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	kind, ok := constraintKindFromString(in.Type)
	if !ok {
		return fmt.Errorf("%w: constraint type %q", ErrUnknownType, in.Type)
	}
	c.ID = in.ID
	c.Kind = kind
	c.Entities = in.Entities
	c.Value = in.Value
	c.PointA = in.PointA
	c.PointB = in.PointB
	c.Satisfied = in.Satisfied
	return nil
}

func constraintKindFromString(s string) (ConstraintKind, bool) {
	switch s {
	case "horizontal":
		return ConstraintHorizontal, true
	case "vertical":
		return ConstraintVertical, true
	case "distance":
		return ConstraintDistance, true
	case "angle":
		return ConstraintAngle, true
	case "radius":
		return ConstraintRadius, true
	case "coincident":
		return ConstraintCoincident, true
	case "parallel":
		return ConstraintParallel, true
	case "perpendicular":
		return ConstraintPerpendicular, true
	case "equal":
		return ConstraintEqual, true
	default:
		return 0, false
	}
}

// documentJSON is the persisted document schema: name, counters, then
// entities and constraints in insertion order.
type documentJSON struct {
	Name              string        `json:"name"`
	EntityCounter     uint64        `json:"entityCounter"`
	ConstraintCounter uint64        `json:"constraintCounter"`
	Entities          []*Entity     `json:"entities"`
	Constraints       []*Constraint `json:"constraints"`
}

// ToJSON serializes the document.
func (d *Document) ToJSON() ([]byte, error) {
	out := documentJSON{
		Name:              d.Name,
		EntityCounter:     d.entityCounter,
		ConstraintCounter: d.constraintCounter,
		Entities:          d.Entities(),
		Constraints:       d.Constraints(),
	}
	return json.MarshalIndent(out, "", "  ")
}

// FromJSON parses a persisted document. On any error (malformed JSON,
// unknown type discriminator) no document is returned and the caller's
// state is untouched.
func FromJSON(data []byte) (*Document, error) {
	var in documentJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("sketch: load: %w", err)
	}

	d := New()
	d.Name = in.Name
	d.entityCounter = in.EntityCounter
	d.constraintCounter = in.ConstraintCounter
	for _, e := range in.Entities {
		if _, dup := d.entities[e.ID]; dup {
			return nil, fmt.Errorf("sketch: load: duplicate entity id %q", e.ID)
		}
		d.entities[e.ID] = e
		d.order = append(d.order, e.ID)
	}
	for _, c := range in.Constraints {
		if _, dup := d.constraints[c.ID]; dup {
			return nil, fmt.Errorf("sketch: load: duplicate constraint id %q", c.ID)
		}
		for _, eid := range c.Entities {
			if _, ok := d.entities[eid]; !ok {
				return nil, fmt.Errorf("sketch: load: constraint %q references missing entity %q", c.ID, eid)
			}
		}
		d.constraints[c.ID] = c
		d.corder = append(d.corder, c.ID)
	}
	return d, nil
}
