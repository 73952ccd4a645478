package tools

import (
	"testing"

	"github.com/stylus-cad/stylus/pkg/geom"
	"github.com/stylus-cad/stylus/pkg/sketch"
)

func TestSelectToolClickSelects(t *testing.T) {
	doc := sketch.New()
	line := doc.AddLine(geom.V2(0, 0), geom.V2(10, 0))
	other := doc.AddLine(geom.V2(0, 20), geom.V2(10, 20))
	tool := NewSelectTool(doc, DefaultConfig)

	tool.PointerDown(geom.V2(5, 1))
	tool.PointerUp(geom.V2(5, 1))
	if ids := doc.SelectedIDs(); len(ids) != 1 || ids[0] != line.ID {
		t.Errorf("selected = %v, want [%s]", ids, line.ID)
	}

	// Clicking another entity replaces the selection.
	tool.PointerDown(geom.V2(5, 21))
	tool.PointerUp(geom.V2(5, 21))
	if ids := doc.SelectedIDs(); len(ids) != 1 || ids[0] != other.ID {
		t.Errorf("selected = %v, want [%s]", ids, other.ID)
	}
}

func TestSelectToolDragMoves(t *testing.T) {
	doc := sketch.New()
	line := doc.AddLine(geom.V2(0, 0), geom.V2(10, 0))
	tool := NewSelectTool(doc, DefaultConfig)

	tool.PointerDown(geom.V2(5, 0))
	tool.PointerMove(geom.V2(7, 3))
	tool.PointerMove(geom.V2(8, 5))
	tool.PointerUp(geom.V2(8, 5))

	ld := doc.Entity(line.ID).Data.(sketch.LineData)
	if !vecNear(ld.Start, geom.V2(3, 5)) || !vecNear(ld.End, geom.V2(13, 5)) {
		t.Errorf("dragged line = %v..%v, want (3,5)..(13,5)", ld.Start, ld.End)
	}

	// The whole drag undoes in one step.
	doc.Undo()
	ld = doc.Entity(line.ID).Data.(sketch.LineData)
	if !vecNear(ld.Start, geom.V2(0, 0)) {
		t.Errorf("line after undo = %v.., want (0,0)..", ld.Start)
	}
}

func TestSelectToolGroupDragKeepsSelection(t *testing.T) {
	doc := sketch.New()
	a := doc.AddLine(geom.V2(0, 0), geom.V2(10, 0))
	b := doc.AddLine(geom.V2(0, 2), geom.V2(10, 2))
	doc.SelectEntity(a.ID)
	doc.SelectEntity(b.ID)
	tool := NewSelectTool(doc, DefaultConfig)

	// Pointer-down on an already selected entity keeps the group.
	tool.PointerDown(geom.V2(5, 0))
	if len(doc.SelectedIDs()) != 2 {
		t.Fatal("group selection should survive the pointer-down")
	}
	tool.PointerMove(geom.V2(5, 10))
	tool.PointerUp(geom.V2(5, 10))

	bd := doc.Entity(b.ID).Data.(sketch.LineData)
	if !vecNear(bd.Start, geom.V2(0, 12)) {
		t.Errorf("both entities should move; b start = %v, want (0, 12)", bd.Start)
	}
}

func TestSelectToolRubberBand(t *testing.T) {
	doc := sketch.New()
	inside := doc.AddLine(geom.V2(20, 20), geom.V2(25, 25))
	doc.AddLine(geom.V2(100, 100), geom.V2(110, 110))
	tool := NewSelectTool(doc, DefaultConfig)

	// Start on empty space, drag a box around the first line.
	tool.PointerDown(geom.V2(15, 15))
	tool.PointerMove(geom.V2(30, 30))
	if _, active := tool.SelectionBox(); !active {
		t.Fatal("rubber band should be active during the drag")
	}
	tool.PointerUp(geom.V2(30, 30))

	if ids := doc.SelectedIDs(); len(ids) != 1 || ids[0] != inside.ID {
		t.Errorf("selected = %v, want [%s]", ids, inside.ID)
	}
	if _, active := tool.SelectionBox(); active {
		t.Error("rubber band should end on pointer-up")
	}
}

func TestSelectToolEmptyBoxClearsSelection(t *testing.T) {
	doc := sketch.New()
	line := doc.AddLine(geom.V2(0, 0), geom.V2(10, 0))
	doc.SelectEntity(line.ID)
	tool := NewSelectTool(doc, DefaultConfig)

	tool.PointerDown(geom.V2(50, 50))
	tool.PointerUp(geom.V2(60, 60))
	if len(doc.SelectedIDs()) != 0 {
		t.Error("boxing empty space should clear the selection")
	}
}
