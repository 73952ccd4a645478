package tools

import (
	"github.com/stylus-cad/stylus/pkg/geom"
	"github.com/stylus-cad/stylus/pkg/sketch"
)

// SelectTool handles selection and dragging. A pointer-down on an
// entity replaces the selection (unless the entity is already part of
// it) and starts a drag; a pointer-down on empty space starts a
// rubber-band box finalized on pointer-up.
type SelectTool struct {
	doc *sketch.Document
	cfg Config

	state     State
	dragging  bool
	last      geom.Vec2
	boxActive bool
	boxStart  geom.Vec2
	boxEnd    geom.Vec2
}

// NewSelectTool creates a select tool over the document.
func NewSelectTool(doc *sketch.Document, cfg Config) *SelectTool {
	return &SelectTool{doc: doc, cfg: cfg}
}

func (t *SelectTool) Name() string { return "select" }
func (t *SelectTool) State() State { return t.state }

func (t *SelectTool) PointerDown(p geom.Vec2) {
	hit := t.doc.FindEntityAt(p, t.cfg.HitTolerance)
	if hit != nil {
		// Clicking an unselected entity replaces the selection;
		// clicking inside the current selection keeps it so a group
		// drag is possible.
		if !hit.Selected {
			t.doc.ClearSelection()
			t.doc.SelectEntity(hit.ID)
		}
		t.doc.BeginDrag()
		t.dragging = true
		t.last = p
		t.state = StateDrawing
		return
	}

	t.boxActive = true
	t.boxStart = p
	t.boxEnd = p
	t.state = StateDrawing
}

func (t *SelectTool) PointerMove(p geom.Vec2) {
	if t.dragging {
		t.doc.MoveSelected(p.Sub(t.last))
		t.last = p
		return
	}
	if t.boxActive {
		t.boxEnd = p
	}
}

func (t *SelectTool) PointerUp(p geom.Vec2) {
	if t.dragging {
		t.dragging = false
		t.state = StateIdle
		return
	}
	if t.boxActive {
		t.boxEnd = p
		t.doc.ClearSelection()
		t.doc.SelectInBox(geom.BoxFromCorners(t.boxStart, t.boxEnd))
		t.boxActive = false
		t.state = StateIdle
	}
}

func (t *SelectTool) Cancel() {
	t.dragging = false
	t.boxActive = false
	t.state = StateIdle
}

func (t *SelectTool) Preview() *sketch.Entity { return nil }

func (t *SelectTool) PreviewPoints() []geom.Vec2 { return nil }

// SelectionBox returns the active rubber-band box for rendering.
func (t *SelectTool) SelectionBox() (geom.BoundingBox, bool) {
	if !t.boxActive {
		return geom.BoundingBox{}, false
	}
	return geom.BoxFromCorners(t.boxStart, t.boxEnd), true
}
