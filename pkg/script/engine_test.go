package script

import (
	"strings"
	"testing"

	"github.com/stylus-cad/stylus/pkg/sketch"
	"github.com/stylus-cad/stylus/pkg/solid"
)

func evalOK(t *testing.T, source string) *Result {
	t.Helper()
	res, err := NewEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !res.OK() {
		t.Fatalf("evaluation errors: %v", res.Errors)
	}
	return res
}

func TestEvaluateEmptySource(t *testing.T) {
	for _, src := range []string{"", "   \n\t  "} {
		res, err := NewEngine().Evaluate(src)
		if err != nil {
			t.Fatalf("Evaluate(%q): %v", src, err)
		}
		if !res.OK() {
			t.Errorf("empty source should be valid: %v", res.Errors)
		}
		if res.Doc.EntityCount() != 0 || res.History.Len() != 0 {
			t.Error("empty source should produce an empty result")
		}
	}
}

func TestEvaluateEntities(t *testing.T) {
	res := evalOK(t, `
		(point 5 5)
		(line 0 0 100 0)
		(circle :center (vec2 50 50) :radius 20)
		(rect 0 0 100 60)
		(arc :center (vec2 0 0) :radius 10 :start 0 :sweep 1.5)
	`)
	if res.Doc.EntityCount() != 5 {
		t.Fatalf("entities = %d, want 5", res.Doc.EntityCount())
	}
	ents := res.Doc.Entities()
	if ents[1].Kind != sketch.KindLine {
		t.Errorf("entity 1 = %s, want line", ents[1].Kind)
	}
	cd := ents[2].Data.(sketch.CircleData)
	if cd.Radius != 20 || cd.Center.X != 50 {
		t.Errorf("circle = %+v", cd)
	}
	ad := ents[4].Data.(sketch.ArcData)
	if ad.SweepAngle != 1.5 {
		t.Errorf("arc sweep = %v, want 1.5", ad.SweepAngle)
	}
}

func TestEvaluateConstraints(t *testing.T) {
	res := evalOK(t, `
		(def a (line 0 0 100 0))
		(def b (line 0 50 100 50))
		(horizontal a)
		(parallel a b)
		(equal-length a b)
		(length a 100)
	`)
	if res.Doc.ConstraintCount() != 4 {
		t.Fatalf("constraints = %d, want 4", res.Doc.ConstraintCount())
	}
	val := sketch.Validate(res.Doc)
	if !val.AllSatisfied() {
		t.Errorf("constraints should hold as drawn: %+v", val.Findings)
	}
}

func TestEvaluateCoincident(t *testing.T) {
	res := evalOK(t, `
		(def a (line 0 0 100 0))
		(def b (line 100 0 100 50))
		(coincident a 1 b 0)
	`)
	cs := res.Doc.Constraints()
	if len(cs) != 1 || cs[0].Kind != sketch.ConstraintCoincident {
		t.Fatalf("constraints = %+v", cs)
	}
	if cs[0].PointA != 1 || cs[0].PointB != 0 {
		t.Errorf("point indices = %d/%d, want 1/0", cs[0].PointA, cs[0].PointB)
	}
}

func TestEvaluateFeatures(t *testing.T) {
	res := evalOK(t, `
		(def r (rect 0 0 40 30))
		(extrude :profile r :distance 10 :mode :symmetric)
		(def l (line 5 0 5 20))
		(revolve :profile l :angle 3.14)
	`)
	if res.History.Len() != 2 {
		t.Fatalf("features = %d, want 2", res.History.Len())
	}
	ops := res.History.Operations()
	if ops[0].Kind != solid.OpExtrude || ops[0].Extrude.Mode != solid.ModeSymmetric {
		t.Errorf("op 0 = %+v", ops[0])
	}
	if ops[0].Extrude.Distance != 10 {
		t.Errorf("distance = %v, want 10", ops[0].Extrude.Distance)
	}
	if ops[1].Kind != solid.OpRevolve || ops[1].Revolve.Angle != 3.14 {
		t.Errorf("op 1 = %+v", ops[1])
	}

	// The recorded features regenerate against the produced document.
	mesh := res.History.Regenerate(res.Doc, nil)
	if mesh.IsEmpty() {
		t.Error("regenerated mesh should not be empty")
	}
}

func TestEvaluateFilletAndChamfer(t *testing.T) {
	res := evalOK(t, `
		(def r (rect 0 0 40 30))
		(fillet :profile r :distance 10 :radius 2)
		(chamfer :profile r :distance 10 :setback 1)
	`)
	ops := res.History.Operations()
	if len(ops) != 2 {
		t.Fatalf("features = %d, want 2", len(ops))
	}
	if ops[0].Kind != solid.OpFillet || ops[0].Radius != 2 {
		t.Errorf("fillet op = %+v", ops[0])
	}
	if ops[1].Kind != solid.OpChamfer || ops[1].Distance != 1 {
		t.Errorf("chamfer op = %+v", ops[1])
	}
}

func TestEvaluateSketchName(t *testing.T) {
	res := evalOK(t, `(sketch-name "bracket")`)
	if res.Doc.Name != "bracket" {
		t.Errorf("name = %q, want bracket", res.Doc.Name)
	}
}

func TestEvaluateSemicolonComments(t *testing.T) {
	res := evalOK(t, `
		; full line comment
		(line 0 0 10 0) ; trailing comment
	`)
	if res.Doc.EntityCount() != 1 {
		t.Errorf("entities = %d, want 1", res.Doc.EntityCount())
	}
}

func TestEvaluateRuntimeError(t *testing.T) {
	res, err := NewEngine().Evaluate(`(circle :center (vec2 0 0) :radius -5)`)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if res.OK() {
		t.Fatal("negative radius should report an error")
	}
	joined := ""
	for _, e := range res.Errors {
		joined += e.Message
	}
	if !strings.Contains(joined, "radius") {
		t.Errorf("errors should mention the radius: %v", res.Errors)
	}
}

func TestEvaluateUnknownFunction(t *testing.T) {
	res, err := NewEngine().Evaluate(`(spline 0 0 1 1)`)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if res.OK() {
		t.Error("unknown function should report an error")
	}
}

func TestEvaluateIsolated(t *testing.T) {
	// Two evaluations on one engine never share state.
	e := NewEngine()
	first, err := e.Evaluate(`(def a (line 0 0 10 0))`)
	if err != nil || !first.OK() {
		t.Fatalf("first evaluation failed: %v %v", err, first)
	}
	second, err := e.Evaluate(`(line 0 0 5 5)`)
	if err != nil || !second.OK() {
		t.Fatalf("second evaluation failed: %v %v", err, second)
	}
	if second.Doc.EntityCount() != 1 {
		t.Errorf("entities = %d, want 1 (fresh document)", second.Doc.EntityCount())
	}
	if first.Doc == second.Doc {
		t.Error("evaluations should produce distinct documents")
	}
}

func TestEvalErrorFormat(t *testing.T) {
	e := EvalError{Line: 3, Message: "boom"}
	if e.Error() != "line 3: boom" {
		t.Errorf("Error() = %q", e.Error())
	}
	e = EvalError{Message: "boom"}
	if e.Error() != "boom" {
		t.Errorf("Error() = %q", e.Error())
	}
}

func TestParseZygomysErrorExtractsLine(t *testing.T) {
	errs := parseZygomysError(errorString("Error on line 4: undefined symbol"))
	if len(errs) != 1 || errs[0].Line != 4 {
		t.Fatalf("errs = %+v", errs)
	}
	if errs[0].Message != "undefined symbol" {
		t.Errorf("message = %q", errs[0].Message)
	}

	errs = parseZygomysError(errorString("something else entirely"))
	if len(errs) != 1 || errs[0].Line != 0 {
		t.Errorf("errs = %+v", errs)
	}
}

type errorString string

func (e errorString) Error() string { return string(e) }

func TestEvaluateFullPart(t *testing.T) {
	res := evalOK(t, `
		(sketch-name "flanged-disc")
		(def body (circle :center (vec2 0 0) :radius 30))
		(def bore (circle :center (vec2 0 0) :radius 8))
		(extrude :profile body :distance 12)
		(extrude :profile bore :distance 12)
	`)
	if res.Doc.EntityCount() != 2 || res.History.Len() != 2 {
		t.Fatalf("counts = %d/%d, want 2/2", res.Doc.EntityCount(), res.History.Len())
	}
	mesh := res.History.Regenerate(res.Doc, nil)
	wantVerts := 2 * (2*solid.CircleSegments + 2)
	if mesh.VertexCount() != wantVerts {
		t.Errorf("vertices = %d, want %d", mesh.VertexCount(), wantVerts)
	}
}
