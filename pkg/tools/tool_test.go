package tools

import (
	"math"
	"testing"

	"github.com/stylus-cad/stylus/pkg/geom"
	"github.com/stylus-cad/stylus/pkg/sketch"
)

const tol = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < tol
}

func vecNear(a, b geom.Vec2) bool {
	return near(a.X, b.X) && near(a.Y, b.Y)
}

func newTestToolbox(t *testing.T) (*Toolbox, *sketch.Document) {
	t.Helper()
	doc := sketch.New()
	return NewToolbox(doc, DefaultConfig), doc
}

func TestToolboxDefaults(t *testing.T) {
	tb, _ := newTestToolbox(t)
	if tb.Active().Name() != "select" {
		t.Errorf("default tool = %s, want select", tb.Active().Name())
	}
	want := []string{"arc", "circle", "delete", "line", "point", "rectangle", "select", "trim"}
	got := tb.Names()
	if len(got) != len(want) {
		t.Fatalf("names = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("name %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestToolboxActivate(t *testing.T) {
	tb, _ := newTestToolbox(t)
	if err := tb.Activate("line"); err != nil {
		t.Fatalf("Activate(line): %v", err)
	}
	if tb.Active().Name() != "line" {
		t.Errorf("active = %s, want line", tb.Active().Name())
	}
	if err := tb.Activate("lathe"); err == nil {
		t.Error("activating an unknown tool should fail")
	}
}

func TestActivateCancelsPreviousTool(t *testing.T) {
	tb, _ := newTestToolbox(t)
	tb.Activate("line")
	tb.Active().PointerDown(geom.V2(0, 0))
	if tb.Active().State() != StateDrawing {
		t.Fatal("line tool should be drawing")
	}
	line := tb.Active()
	tb.Activate("circle")
	if line.State() != StateIdle {
		t.Error("switching tools should cancel the previous one")
	}
}
