package tools

import (
	"github.com/stylus-cad/stylus/pkg/geom"
	"github.com/stylus-cad/stylus/pkg/sketch"
)

// PointTool places a grid-snapped point on every pointer-down.
type PointTool struct {
	doc *sketch.Document
	cfg Config
}

// NewPointTool creates a point tool over the document.
func NewPointTool(doc *sketch.Document, cfg Config) *PointTool {
	return &PointTool{doc: doc, cfg: cfg}
}

func (t *PointTool) Name() string { return "point" }
func (t *PointTool) State() State { return StateIdle }

func (t *PointTool) PointerDown(p geom.Vec2) {
	t.doc.AddPoint(geom.SnapToGrid(p, t.cfg.GridSize))
}

func (t *PointTool) PointerMove(geom.Vec2) {}
func (t *PointTool) PointerUp(geom.Vec2)   {}
func (t *PointTool) Cancel()               {}

func (t *PointTool) Preview() *sketch.Entity    { return nil }
func (t *PointTool) PreviewPoints() []geom.Vec2 { return nil }
