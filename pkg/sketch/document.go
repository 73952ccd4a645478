package sketch

import (
	"fmt"

	"github.com/stylus-cad/stylus/pkg/geom"
)

// DefaultUndoDepth bounds the undo and redo stacks.
const DefaultUndoDepth = 50

// Document owns the entities and constraints of a single sketch. It is
// the central mutation surface: tools and bindings go through its API,
// which handles id assignment, selection, constraint cascade deletion
// and snapshot-based undo/redo.
//
// The document is single-writer: it assumes one active tool on one
// goroutine and carries no internal locking.
type Document struct {
	Name string

	entities    map[EntityID]*Entity
	order       []EntityID // insertion order, drives iteration and hit-test ties
	constraints map[ConstraintID]*Constraint
	corder      []ConstraintID

	entityCounter     uint64
	constraintCounter uint64

	undo     []*snapshot
	redo     []*snapshot
	maxUndo  int
	onChange func()
}

// New creates an empty document.
func New() *Document {
	return &Document{
		Name:        "untitled",
		entities:    make(map[EntityID]*Entity),
		constraints: make(map[ConstraintID]*Constraint),
		maxUndo:     DefaultUndoDepth,
	}
}

// SetOnChange registers a single change listener invoked after every
// mutation. The document itself stays free of notification logic; a
// thin adapter (the app shell) fans this out to whoever needs it.
func (d *Document) SetOnChange(fn func()) {
	d.onChange = fn
}

func (d *Document) notify() {
	if d.onChange != nil {
		d.onChange()
	}
}

// ---------------------------------------------------------------------------
// Snapshots (undo/redo)
// ---------------------------------------------------------------------------

// snapshot is a full structural copy of document state. Kept in memory
// rather than serialized, so capture and restore are plain clones.
type snapshot struct {
	name              string
	entities          []*Entity
	constraints       []*Constraint
	entityCounter     uint64
	constraintCounter uint64
}

func (d *Document) capture() *snapshot {
	s := &snapshot{
		name:              d.Name,
		entityCounter:     d.entityCounter,
		constraintCounter: d.constraintCounter,
	}
	for _, id := range d.order {
		e := *d.entities[id]
		s.entities = append(s.entities, &e)
	}
	for _, id := range d.corder {
		c := *d.constraints[id]
		c.Entities = append([]EntityID(nil), c.Entities...)
		s.constraints = append(s.constraints, &c)
	}
	return s
}

func (d *Document) restore(s *snapshot) {
	d.Name = s.name
	d.entityCounter = s.entityCounter
	d.constraintCounter = s.constraintCounter
	d.entities = make(map[EntityID]*Entity, len(s.entities))
	d.order = d.order[:0]
	for _, e := range s.entities {
		c := *e
		d.entities[c.ID] = &c
		d.order = append(d.order, c.ID)
	}
	d.constraints = make(map[ConstraintID]*Constraint, len(s.constraints))
	d.corder = d.corder[:0]
	for _, c := range s.constraints {
		cc := *c
		cc.Entities = append([]EntityID(nil), c.Entities...)
		d.constraints[cc.ID] = &cc
		d.corder = append(d.corder, cc.ID)
	}
}

// pushUndo records the current state on the undo stack and clears the
// redo stack. Every structural mutation calls this before mutating.
func (d *Document) pushUndo() {
	d.undo = append(d.undo, d.capture())
	if len(d.undo) > d.maxUndo {
		d.undo = d.undo[1:]
	}
	d.redo = d.redo[:0]
}

// BeginDrag records a single undo step covering an entire interactive
// drag. Per-step moves during the drag do not snapshot, so the whole
// gesture undoes at once.
func (d *Document) BeginDrag() {
	d.pushUndo()
}

// Undo restores the most recent snapshot. Returns false if the undo
// stack is empty.
func (d *Document) Undo() bool {
	if len(d.undo) == 0 {
		return false
	}
	s := d.undo[len(d.undo)-1]
	d.undo = d.undo[:len(d.undo)-1]
	d.redo = append(d.redo, d.capture())
	d.restore(s)
	d.notify()
	return true
}

// Redo reverses the most recent undo. Returns false if the redo stack
// is empty.
func (d *Document) Redo() bool {
	if len(d.redo) == 0 {
		return false
	}
	s := d.redo[len(d.redo)-1]
	d.redo = d.redo[:len(d.redo)-1]
	d.undo = append(d.undo, d.capture())
	d.restore(s)
	d.notify()
	return true
}

// CanUndo reports whether an undo step is available.
func (d *Document) CanUndo() bool { return len(d.undo) > 0 }

// CanRedo reports whether a redo step is available.
func (d *Document) CanRedo() bool { return len(d.redo) > 0 }

// ---------------------------------------------------------------------------
// Entity mutation
// ---------------------------------------------------------------------------

func (d *Document) nextEntityID() EntityID {
	d.entityCounter++
	return EntityID(fmt.Sprintf("e%d", d.entityCounter))
}

func (d *Document) nextConstraintID() ConstraintID {
	d.constraintCounter++
	return ConstraintID(fmt.Sprintf("c%d", d.constraintCounter))
}

func (d *Document) addEntity(kind EntityKind, data EntityData) *Entity {
	d.pushUndo()
	e := &Entity{ID: d.nextEntityID(), Kind: kind, Data: data}
	d.entities[e.ID] = e
	d.order = append(d.order, e.ID)
	logger().Debug("entity added", "id", e.ID, "kind", kind.String())
	d.notify()
	return e
}

// AddPoint adds a point entity.
func (d *Document) AddPoint(pos geom.Vec2) *Entity {
	return d.addEntity(KindPoint, PointData{Position: pos})
}

// AddLine adds a line segment entity.
func (d *Document) AddLine(start, end geom.Vec2) *Entity {
	return d.addEntity(KindLine, LineData{Start: start, End: end})
}

// AddCircle adds a circle entity.
func (d *Document) AddCircle(center geom.Vec2, radius float64) *Entity {
	return d.addEntity(KindCircle, CircleData{Center: center, Radius: radius})
}

// AddArc adds an arc entity. Sweep is signed, in radians.
func (d *Document) AddArc(center geom.Vec2, radius, startAngle, sweepAngle float64) *Entity {
	return d.addEntity(KindArc, ArcData{
		Center:     center,
		Radius:     radius,
		StartAngle: startAngle,
		SweepAngle: sweepAngle,
	})
}

// AddRectangle adds a rectangle entity spanning two opposite corners.
func (d *Document) AddRectangle(a, b geom.Vec2) *Entity {
	return d.addEntity(KindRectangle, RectangleData{CornerA: a, CornerB: b})
}

// RemoveEntity removes the entity and, in the same mutation, every
// constraint referencing it. Returns false if the id does not exist.
func (d *Document) RemoveEntity(id EntityID) bool {
	if _, ok := d.entities[id]; !ok {
		return false
	}
	d.pushUndo()
	d.removeEntityNoSnapshot(id)
	d.notify()
	return true
}

func (d *Document) removeEntityNoSnapshot(id EntityID) {
	delete(d.entities, id)
	for i, oid := range d.order {
		if oid == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	// Cascade: prune constraints that reference the removed entity.
	var keep []ConstraintID
	for _, cid := range d.corder {
		c := d.constraints[cid]
		if c.References(id) {
			delete(d.constraints, cid)
			logger().Debug("constraint pruned", "id", cid, "entity", id)
			continue
		}
		keep = append(keep, cid)
	}
	d.corder = keep
}

// RemoveSelected removes every selected entity (and dependent
// constraints) as a single undoable mutation. Returns the number of
// entities removed.
func (d *Document) RemoveSelected() int {
	ids := d.SelectedIDs()
	if len(ids) == 0 {
		return 0
	}
	d.pushUndo()
	for _, id := range ids {
		d.removeEntityNoSnapshot(id)
	}
	d.notify()
	return len(ids)
}

// MoveEntity translates the entity in place. Moves never snapshot;
// interactive drags bracket them with BeginDrag.
func (d *Document) MoveEntity(id EntityID, delta geom.Vec2) bool {
	e, ok := d.entities[id]
	if !ok {
		return false
	}
	e.Translate(delta)
	d.notify()
	return true
}

// MoveSelected translates every selected entity in place.
func (d *Document) MoveSelected(delta geom.Vec2) {
	moved := false
	for _, id := range d.order {
		if e := d.entities[id]; e.Selected {
			e.Translate(delta)
			moved = true
		}
	}
	if moved {
		d.notify()
	}
}

// Clear removes all entities and constraints in one undoable step.
// Id counters are not reset: ids are never reused within a document's
// lifetime.
func (d *Document) Clear() {
	d.pushUndo()
	d.entities = make(map[EntityID]*Entity)
	d.order = d.order[:0]
	d.constraints = make(map[ConstraintID]*Constraint)
	d.corder = d.corder[:0]
	d.notify()
}

// ---------------------------------------------------------------------------
// Constraint mutation
// ---------------------------------------------------------------------------

// addConstraint installs a constraint after checking every referenced
// entity exists; nil is returned for a dangling reference, keeping the
// document free of constraints over missing entities.
func (d *Document) addConstraint(kind ConstraintKind, ids []EntityID, value *float64, pointA, pointB int) *Constraint {
	for _, id := range ids {
		if _, ok := d.entities[id]; !ok {
			return nil
		}
	}
	d.pushUndo()
	c := &Constraint{
		ID:       d.nextConstraintID(),
		Kind:     kind,
		Entities: append([]EntityID(nil), ids...),
		Value:    value,
		PointA:   pointA,
		PointB:   pointB,
	}
	c.Satisfied = c.Check(d)
	d.constraints[c.ID] = c
	d.corder = append(d.corder, c.ID)
	logger().Debug("constraint added", "id", c.ID, "kind", kind.String())
	d.notify()
	return c
}

// AddHorizontalConstraint constrains a line to be horizontal.
func (d *Document) AddHorizontalConstraint(line EntityID) *Constraint {
	return d.addConstraint(ConstraintHorizontal, []EntityID{line}, nil, 0, 0)
}

// AddVerticalConstraint constrains a line to be vertical.
func (d *Document) AddVerticalConstraint(line EntityID) *Constraint {
	return d.addConstraint(ConstraintVertical, []EntityID{line}, nil, 0, 0)
}

// AddLengthConstraint constrains a line's own length.
func (d *Document) AddLengthConstraint(line EntityID, length float64) *Constraint {
	return d.addConstraint(ConstraintDistance, []EntityID{line}, &length, 0, 0)
}

// AddDistanceConstraint constrains the distance between the
// representative points of two entities.
func (d *Document) AddDistanceConstraint(a, b EntityID, distance float64) *Constraint {
	return d.addConstraint(ConstraintDistance, []EntityID{a, b}, &distance, 0, 0)
}

// AddAngleConstraint constrains a line's direction to a target angle
// in radians.
func (d *Document) AddAngleConstraint(line EntityID, angle float64) *Constraint {
	return d.addConstraint(ConstraintAngle, []EntityID{line}, &angle, 0, 0)
}

// AddAngleBetweenConstraint constrains the rotation from line a's
// direction to line b's direction.
func (d *Document) AddAngleBetweenConstraint(a, b EntityID, angle float64) *Constraint {
	return d.addConstraint(ConstraintAngle, []EntityID{a, b}, &angle, 0, 0)
}

// AddRadiusConstraint constrains a circle's or arc's radius.
func (d *Document) AddRadiusConstraint(entity EntityID, radius float64) *Constraint {
	return d.addConstraint(ConstraintRadius, []EntityID{entity}, &radius, 0, 0)
}

// AddCoincidentConstraint constrains control point pointA of entity a
// to coincide with control point pointB of entity b.
func (d *Document) AddCoincidentConstraint(a EntityID, pointA int, b EntityID, pointB int) *Constraint {
	return d.addConstraint(ConstraintCoincident, []EntityID{a, b}, nil, pointA, pointB)
}

// AddParallelConstraint constrains two lines to be parallel.
func (d *Document) AddParallelConstraint(a, b EntityID) *Constraint {
	return d.addConstraint(ConstraintParallel, []EntityID{a, b}, nil, 0, 0)
}

// AddPerpendicularConstraint constrains two lines to be perpendicular.
func (d *Document) AddPerpendicularConstraint(a, b EntityID) *Constraint {
	return d.addConstraint(ConstraintPerpendicular, []EntityID{a, b}, nil, 0, 0)
}

// AddEqualConstraint constrains two lines to equal length or two
// circles to equal radius.
func (d *Document) AddEqualConstraint(a, b EntityID) *Constraint {
	return d.addConstraint(ConstraintEqual, []EntityID{a, b}, nil, 0, 0)
}

// RemoveConstraint removes a constraint by id.
func (d *Document) RemoveConstraint(id ConstraintID) bool {
	if _, ok := d.constraints[id]; !ok {
		return false
	}
	d.pushUndo()
	delete(d.constraints, id)
	for i, cid := range d.corder {
		if cid == id {
			d.corder = append(d.corder[:i], d.corder[i+1:]...)
			break
		}
	}
	d.notify()
	return true
}

// ---------------------------------------------------------------------------
// Selection
// ---------------------------------------------------------------------------

// SelectEntity marks the entity selected.
func (d *Document) SelectEntity(id EntityID) {
	if e, ok := d.entities[id]; ok && !e.Selected {
		e.Selected = true
		d.notify()
	}
}

// DeselectEntity clears the entity's selection.
func (d *Document) DeselectEntity(id EntityID) {
	if e, ok := d.entities[id]; ok && e.Selected {
		e.Selected = false
		d.notify()
	}
}

// ToggleSelection flips the entity's selection state.
func (d *Document) ToggleSelection(id EntityID) {
	if e, ok := d.entities[id]; ok {
		e.Selected = !e.Selected
		d.notify()
	}
}

// ClearSelection deselects every entity.
func (d *Document) ClearSelection() {
	changed := false
	for _, e := range d.entities {
		if e.Selected {
			e.Selected = false
			changed = true
		}
	}
	if changed {
		d.notify()
	}
}

// SelectAll selects every entity.
func (d *Document) SelectAll() {
	for _, e := range d.entities {
		e.Selected = true
	}
	d.notify()
}

// SelectInBox selects every entity whose bounding box lies entirely
// inside box.
func (d *Document) SelectInBox(box geom.BoundingBox) {
	changed := false
	for _, id := range d.order {
		e := d.entities[id]
		if box.ContainsBox(e.BoundingBox()) {
			if !e.Selected {
				e.Selected = true
				changed = true
			}
		}
	}
	if changed {
		d.notify()
	}
}

// SelectedIDs returns the selected entity ids in entity order.
func (d *Document) SelectedIDs() []EntityID {
	var ids []EntityID
	for _, id := range d.order {
		if d.entities[id].Selected {
			ids = append(ids, id)
		}
	}
	return ids
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

// Entity returns the entity with the given id, or nil.
func (d *Document) Entity(id EntityID) *Entity {
	return d.entities[id]
}

// Constraint returns the constraint with the given id, or nil.
func (d *Document) Constraint(id ConstraintID) *Constraint {
	return d.constraints[id]
}

// Entities returns all entities in insertion order.
func (d *Document) Entities() []*Entity {
	out := make([]*Entity, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.entities[id])
	}
	return out
}

// Constraints returns all constraints in insertion order.
func (d *Document) Constraints() []*Constraint {
	out := make([]*Constraint, 0, len(d.corder))
	for _, id := range d.corder {
		out = append(out, d.constraints[id])
	}
	return out
}

// EntityCount returns the number of entities.
func (d *Document) EntityCount() int { return len(d.entities) }

// ConstraintCount returns the number of constraints.
func (d *Document) ConstraintCount() int { return len(d.constraints) }

// FindEntityAt returns the entity nearest to p whose outline distance
// is below tolerance, or nil. Ties go to the earlier entity in
// insertion order.
func (d *Document) FindEntityAt(p geom.Vec2, tolerance float64) *Entity {
	var best *Entity
	bestDist := tolerance
	for _, id := range d.order {
		e := d.entities[id]
		if dist := e.DistanceTo(p); dist < bestDist {
			best = e
			bestDist = dist
		}
	}
	return best
}
