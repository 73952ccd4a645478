package geom

import (
	"math"
	"testing"
)

const tol = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < tol
}

func vecNear(a, b Vec2) bool {
	return near(a.X, b.X) && near(a.Y, b.Y)
}

func TestVecArithmetic(t *testing.T) {
	a := V2(3, 4)
	b := V2(1, -2)

	if got := a.Add(b); !vecNear(got, V2(4, 2)) {
		t.Errorf("Add = %v, want (4, 2)", got)
	}
	if got := a.Sub(b); !vecNear(got, V2(2, 6)) {
		t.Errorf("Sub = %v, want (2, 6)", got)
	}
	if got := a.Mul(2); !vecNear(got, V2(6, 8)) {
		t.Errorf("Mul = %v, want (6, 8)", got)
	}
	if got := a.Div(2); !vecNear(got, V2(1.5, 2)) {
		t.Errorf("Div = %v, want (1.5, 2)", got)
	}
	if got := a.Dot(b); !near(got, -5) {
		t.Errorf("Dot = %v, want -5", got)
	}
	if got := a.Cross(b); !near(got, -10) {
		t.Errorf("Cross = %v, want -10", got)
	}
}

func TestVecLengthAndDistance(t *testing.T) {
	a := V2(3, 4)
	if got := a.Length(); !near(got, 5) {
		t.Errorf("Length = %v, want 5", got)
	}
	if got := a.LengthSq(); !near(got, 25) {
		t.Errorf("LengthSq = %v, want 25", got)
	}
	if got := V2(0, 0).Distance(a); !near(got, 5) {
		t.Errorf("Distance = %v, want 5", got)
	}
}

func TestVecNormalize(t *testing.T) {
	n := V2(10, 0).Normalize()
	if !vecNear(n, V2(1, 0)) {
		t.Errorf("Normalize = %v, want (1, 0)", n)
	}

	// The zero vector normalizes to itself rather than NaN.
	z := V2(0, 0).Normalize()
	if !vecNear(z, V2(0, 0)) {
		t.Errorf("Normalize(zero) = %v, want (0, 0)", z)
	}
}

func TestVecRotate(t *testing.T) {
	got := V2(1, 0).Rotate(math.Pi / 2)
	if !vecNear(got, V2(0, 1)) {
		t.Errorf("Rotate(pi/2) = %v, want (0, 1)", got)
	}
}

func TestVecAngle(t *testing.T) {
	if got := V2(0, 1).Angle(); !near(got, math.Pi/2) {
		t.Errorf("Angle = %v, want pi/2", got)
	}
	if got := V2(-1, 0).Angle(); !near(got, math.Pi) {
		t.Errorf("Angle = %v, want pi", got)
	}
}

func TestVecLerp(t *testing.T) {
	got := V2(0, 0).Lerp(V2(10, 20), 0.5)
	if !vecNear(got, V2(5, 10)) {
		t.Errorf("Lerp = %v, want (5, 10)", got)
	}
}

func TestVec3Cross(t *testing.T) {
	got := V3(1, 0, 0).Cross(V3(0, 1, 0))
	want := V3(0, 0, 1)
	if !near(got.X, want.X) || !near(got.Y, want.Y) || !near(got.Z, want.Z) {
		t.Errorf("Cross = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	n := V3(0, 3, 4).Normalize()
	if !near(n.Length(), 1) {
		t.Errorf("Normalize length = %v, want 1", n.Length())
	}
}
