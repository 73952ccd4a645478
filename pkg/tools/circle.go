package tools

import (
	"github.com/stylus-cad/stylus/pkg/geom"
	"github.com/stylus-cad/stylus/pkg/sketch"
)

// CircleTool draws circles from a grid-snapped center to a radius
// point, by two clicks or a click-drag.
type CircleTool struct {
	doc *sketch.Document
	cfg Config

	state   State
	center  geom.Vec2
	current geom.Vec2
}

// NewCircleTool creates a circle tool over the document.
func NewCircleTool(doc *sketch.Document, cfg Config) *CircleTool {
	return &CircleTool{doc: doc, cfg: cfg}
}

func (t *CircleTool) Name() string { return "circle" }
func (t *CircleTool) State() State { return t.state }

func (t *CircleTool) PointerDown(p geom.Vec2) {
	if t.state == StateIdle {
		t.center = geom.SnapToGrid(p, t.cfg.GridSize)
		t.current = t.center
		t.state = StateDrawing
		return
	}
	t.commit(p)
}

func (t *CircleTool) PointerMove(p geom.Vec2) {
	if t.state == StateDrawing {
		t.current = p
	}
}

func (t *CircleTool) PointerUp(p geom.Vec2) {
	if t.state == StateDrawing && p.Distance(t.center) > 0 {
		t.commit(p)
	}
}

func (t *CircleTool) commit(p geom.Vec2) {
	radius := p.Distance(t.center)
	if radius > 0 {
		t.doc.AddCircle(t.center, radius)
	}
	t.state = StateIdle
}

func (t *CircleTool) Cancel() {
	t.state = StateIdle
}

func (t *CircleTool) Preview() *sketch.Entity {
	if t.state != StateDrawing {
		return nil
	}
	radius := t.current.Distance(t.center)
	if radius == 0 {
		return nil
	}
	return &sketch.Entity{
		Kind: sketch.KindCircle,
		Data: sketch.CircleData{Center: t.center, Radius: radius},
	}
}

func (t *CircleTool) PreviewPoints() []geom.Vec2 {
	if t.state != StateDrawing {
		return nil
	}
	return []geom.Vec2{t.center}
}
