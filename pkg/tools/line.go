package tools

import (
	"github.com/stylus-cad/stylus/pkg/geom"
	"github.com/stylus-cad/stylus/pkg/sketch"
)

// LineTool draws line segments with two interactions: the first fixes
// the grid-snapped anchor, the second commits the segment. After a
// commit the tool re-anchors at the new endpoint so consecutive clicks
// chain into a polyline.
type LineTool struct {
	doc *sketch.Document
	cfg Config

	state   State
	anchor  geom.Vec2
	current geom.Vec2
}

// NewLineTool creates a line tool over the document.
func NewLineTool(doc *sketch.Document, cfg Config) *LineTool {
	return &LineTool{doc: doc, cfg: cfg}
}

func (t *LineTool) Name() string { return "line" }
func (t *LineTool) State() State { return t.state }

func (t *LineTool) PointerDown(p geom.Vec2) {
	snapped := geom.SnapToGrid(p, t.cfg.GridSize)
	if t.state == StateIdle {
		t.anchor = snapped
		t.current = snapped
		t.state = StateDrawing
		return
	}
	t.commit(snapped)
}

func (t *LineTool) PointerMove(p geom.Vec2) {
	if t.state == StateDrawing {
		t.current = geom.SnapToGrid(p, t.cfg.GridSize)
	}
}

func (t *LineTool) PointerUp(p geom.Vec2) {
	if t.state != StateDrawing {
		return
	}
	snapped := geom.SnapToGrid(p, t.cfg.GridSize)
	// A click-drag release away from the anchor commits; releasing on
	// the anchor is the first half of a two-click gesture.
	if snapped != t.anchor {
		t.commit(snapped)
	}
}

// commit adds the segment and re-anchors at its endpoint for chaining.
func (t *LineTool) commit(end geom.Vec2) {
	if end == t.anchor {
		return // zero-length segment
	}
	t.doc.AddLine(t.anchor, end)
	t.anchor = end
	t.current = end
}

func (t *LineTool) Cancel() {
	t.state = StateIdle
}

func (t *LineTool) Preview() *sketch.Entity {
	if t.state != StateDrawing || t.current == t.anchor {
		return nil
	}
	return &sketch.Entity{
		Kind: sketch.KindLine,
		Data: sketch.LineData{Start: t.anchor, End: t.current},
	}
}

func (t *LineTool) PreviewPoints() []geom.Vec2 {
	if t.state != StateDrawing {
		return nil
	}
	return []geom.Vec2{t.anchor}
}
