package tools

import (
	"github.com/stylus-cad/stylus/pkg/geom"
	"github.com/stylus-cad/stylus/pkg/sketch"
)

// RectangleTool draws axis-aligned rectangles between two grid-snapped
// opposite corners, by two clicks or a click-drag.
type RectangleTool struct {
	doc *sketch.Document
	cfg Config

	state   State
	anchor  geom.Vec2
	current geom.Vec2
}

// NewRectangleTool creates a rectangle tool over the document.
func NewRectangleTool(doc *sketch.Document, cfg Config) *RectangleTool {
	return &RectangleTool{doc: doc, cfg: cfg}
}

func (t *RectangleTool) Name() string { return "rectangle" }
func (t *RectangleTool) State() State { return t.state }

func (t *RectangleTool) PointerDown(p geom.Vec2) {
	snapped := geom.SnapToGrid(p, t.cfg.GridSize)
	if t.state == StateIdle {
		t.anchor = snapped
		t.current = snapped
		t.state = StateDrawing
		return
	}
	t.commit(snapped)
}

func (t *RectangleTool) PointerMove(p geom.Vec2) {
	if t.state == StateDrawing {
		t.current = geom.SnapToGrid(p, t.cfg.GridSize)
	}
}

func (t *RectangleTool) PointerUp(p geom.Vec2) {
	if t.state != StateDrawing {
		return
	}
	snapped := geom.SnapToGrid(p, t.cfg.GridSize)
	if snapped != t.anchor {
		t.commit(snapped)
	}
}

func (t *RectangleTool) commit(corner geom.Vec2) {
	// Degenerate rectangles (zero width or height) are discarded.
	if corner.X != t.anchor.X && corner.Y != t.anchor.Y {
		t.doc.AddRectangle(t.anchor, corner)
	}
	t.state = StateIdle
}

func (t *RectangleTool) Cancel() {
	t.state = StateIdle
}

func (t *RectangleTool) Preview() *sketch.Entity {
	if t.state != StateDrawing || t.current == t.anchor {
		return nil
	}
	return &sketch.Entity{
		Kind: sketch.KindRectangle,
		Data: sketch.RectangleData{CornerA: t.anchor, CornerB: t.current},
	}
}

func (t *RectangleTool) PreviewPoints() []geom.Vec2 {
	if t.state != StateDrawing {
		return nil
	}
	return []geom.Vec2{t.anchor}
}
