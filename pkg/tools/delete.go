package tools

import (
	"github.com/stylus-cad/stylus/pkg/geom"
	"github.com/stylus-cad/stylus/pkg/sketch"
)

// DeleteTool removes the entity under every pointer-down.
type DeleteTool struct {
	doc *sketch.Document
	cfg Config
}

// NewDeleteTool creates a delete tool over the document.
func NewDeleteTool(doc *sketch.Document, cfg Config) *DeleteTool {
	return &DeleteTool{doc: doc, cfg: cfg}
}

func (t *DeleteTool) Name() string { return "delete" }
func (t *DeleteTool) State() State { return StateIdle }

func (t *DeleteTool) PointerDown(p geom.Vec2) {
	if hit := t.doc.FindEntityAt(p, t.cfg.HitTolerance); hit != nil {
		t.doc.RemoveEntity(hit.ID)
	}
}

func (t *DeleteTool) PointerMove(geom.Vec2) {}
func (t *DeleteTool) PointerUp(geom.Vec2)   {}
func (t *DeleteTool) Cancel()               {}

func (t *DeleteTool) Preview() *sketch.Entity    { return nil }
func (t *DeleteTool) PreviewPoints() []geom.Vec2 { return nil }
