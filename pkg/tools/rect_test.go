package tools

import (
	"testing"

	"github.com/stylus-cad/stylus/pkg/geom"
	"github.com/stylus-cad/stylus/pkg/sketch"
)

func TestRectangleToolTwoClicks(t *testing.T) {
	doc := sketch.New()
	tool := NewRectangleTool(doc, DefaultConfig)

	tool.PointerDown(geom.V2(0, 0))
	tool.PointerUp(geom.V2(0, 0))
	tool.PointerDown(geom.V2(10, 6))
	if doc.EntityCount() != 1 {
		t.Fatalf("count = %d, want 1", doc.EntityCount())
	}
	rd := doc.Entities()[0].Data.(sketch.RectangleData)
	if !near(rd.Width(), 10) || !near(rd.Height(), 6) {
		t.Errorf("size = %v x %v, want 10 x 6", rd.Width(), rd.Height())
	}
}

func TestRectangleToolClickDrag(t *testing.T) {
	doc := sketch.New()
	tool := NewRectangleTool(doc, DefaultConfig)

	tool.PointerDown(geom.V2(2, 2))
	tool.PointerMove(geom.V2(5, 5))
	tool.PointerUp(geom.V2(8, 7))
	rd := doc.Entities()[0].Data.(sketch.RectangleData)
	if !vecNear(rd.CornerA, geom.V2(2, 2)) || !vecNear(rd.CornerB, geom.V2(8, 7)) {
		t.Errorf("rectangle = %v..%v", rd.CornerA, rd.CornerB)
	}
}

func TestRectangleToolDegenerateDiscarded(t *testing.T) {
	doc := sketch.New()
	tool := NewRectangleTool(doc, DefaultConfig)

	// Zero width: both corners on the same vertical.
	tool.PointerDown(geom.V2(3, 0))
	tool.PointerDown(geom.V2(3, 10))
	if doc.EntityCount() != 0 {
		t.Error("zero-width rectangle should be discarded")
	}
	if tool.State() != StateIdle {
		t.Error("tool should reset to idle after a discarded commit")
	}

	// Zero height.
	tool.PointerDown(geom.V2(0, 4))
	tool.PointerDown(geom.V2(10, 4))
	if doc.EntityCount() != 0 {
		t.Error("zero-height rectangle should be discarded")
	}
}

func TestRectangleToolPreview(t *testing.T) {
	doc := sketch.New()
	tool := NewRectangleTool(doc, DefaultConfig)

	tool.PointerDown(geom.V2(0, 0))
	tool.PointerMove(geom.V2(6, 4))
	p := tool.Preview()
	if p == nil || p.Kind != sketch.KindRectangle {
		t.Fatal("expected a rectangle preview")
	}
	if doc.EntityCount() != 0 {
		t.Error("preview must not be committed")
	}
}
