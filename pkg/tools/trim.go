package tools

import (
	"github.com/stylus-cad/stylus/pkg/geom"
	"github.com/stylus-cad/stylus/pkg/sketch"
)

// TrimTool removes the entity under the pointer. For lines it first
// computes the intersections with every other entity (line/line and
// line/circle); a true trim would split the line into sub-segments at
// the nearest intersection, but the implemented behavior deletes the
// whole entity whether or not intersections exist. Intersections are
// still exposed through LastIntersections so a renderer can mark them.
type TrimTool struct {
	doc *sketch.Document
	cfg Config

	lastIntersections []geom.Vec2
}

// NewTrimTool creates a trim tool over the document.
func NewTrimTool(doc *sketch.Document, cfg Config) *TrimTool {
	return &TrimTool{doc: doc, cfg: cfg}
}

func (t *TrimTool) Name() string { return "trim" }
func (t *TrimTool) State() State { return StateIdle }

func (t *TrimTool) PointerDown(p geom.Vec2) {
	hit := t.doc.FindEntityAt(p, t.cfg.HitTolerance)
	if hit == nil {
		t.lastIntersections = nil
		return
	}

	if line, ok := hit.Data.(sketch.LineData); ok {
		t.lastIntersections = t.intersections(hit.ID, line)
	} else {
		t.lastIntersections = nil
	}

	t.doc.RemoveEntity(hit.ID)
}

// intersections collects the crossings of the line with every other
// line and circle in the document.
func (t *TrimTool) intersections(id sketch.EntityID, line sketch.LineData) []geom.Vec2 {
	var pts []geom.Vec2
	for _, other := range t.doc.Entities() {
		if other.ID == id {
			continue
		}
		switch d := other.Data.(type) {
		case sketch.LineData:
			if p, ok := geom.SegmentIntersection(line.Start, line.End, d.Start, d.End); ok {
				pts = append(pts, p)
			}
		case sketch.CircleData:
			pts = append(pts, geom.SegmentCircleIntersection(line.Start, line.End, d.Center, d.Radius)...)
		}
	}
	return pts
}

func (t *TrimTool) PointerMove(geom.Vec2) {}
func (t *TrimTool) PointerUp(geom.Vec2)   {}

func (t *TrimTool) Cancel() {
	t.lastIntersections = nil
}

func (t *TrimTool) Preview() *sketch.Entity    { return nil }
func (t *TrimTool) PreviewPoints() []geom.Vec2 { return nil }

// LastIntersections returns the intersection points found on the most
// recently trimmed line.
func (t *TrimTool) LastIntersections() []geom.Vec2 {
	return t.lastIntersections
}
