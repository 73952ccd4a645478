package geom

import "math"

// Epsilon is the determinant/discriminant threshold below which two
// directions are treated as parallel or a quadratic as tangent.
const Epsilon = 1e-10

// DistancePointSegment returns the distance from p to the segment ab.
// The projection of p onto the infinite line is clamped to the segment.
func DistancePointSegment(p, a, b Vec2) float64 {
	ab := b.Sub(a)
	lenSq := ab.LengthSq()
	if lenSq == 0 {
		return p.Distance(a)
	}
	t := p.Sub(a).Dot(ab) / lenSq
	t = math.Max(0, math.Min(1, t))
	return p.Distance(a.Add(ab.Mul(t)))
}

// ClosestPointOnSegment returns the point on segment ab nearest to p.
func ClosestPointOnSegment(p, a, b Vec2) Vec2 {
	ab := b.Sub(a)
	lenSq := ab.LengthSq()
	if lenSq == 0 {
		return a
	}
	t := p.Sub(a).Dot(ab) / lenSq
	t = math.Max(0, math.Min(1, t))
	return a.Add(ab.Mul(t))
}

// LineIntersection intersects the infinite lines through (a1,a2) and
// (b1,b2). Parallel or coincident lines return ok=false.
func LineIntersection(a1, a2, b1, b2 Vec2) (Vec2, bool) {
	d1 := a2.Sub(a1)
	d2 := b2.Sub(b1)
	det := d1.Cross(d2)
	if math.Abs(det) < Epsilon {
		return Vec2{}, false
	}
	t := b1.Sub(a1).Cross(d2) / det
	return a1.Add(d1.Mul(t)), true
}

// SegmentIntersection intersects the segments (a1,a2) and (b1,b2).
// Both parametric coordinates must lie in [0,1]; parallel segments
// return ok=false.
func SegmentIntersection(a1, a2, b1, b2 Vec2) (Vec2, bool) {
	d1 := a2.Sub(a1)
	d2 := b2.Sub(b1)
	det := d1.Cross(d2)
	if math.Abs(det) < Epsilon {
		return Vec2{}, false
	}
	diff := b1.Sub(a1)
	t := diff.Cross(d2) / det
	u := diff.Cross(d1) / det
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Vec2{}, false
	}
	return a1.Add(d1.Mul(t)), true
}

// SegmentCircleIntersection returns the points where the segment ab
// crosses the circle (center, radius). Solves the quadratic in the
// segment parameter; only roots in [0,1] produce points. A near-zero
// discriminant collapses to a single tangent point. Returns nil when
// the segment misses the circle.
func SegmentCircleIntersection(a, b, center Vec2, radius float64) []Vec2 {
	d := b.Sub(a)
	f := a.Sub(center)

	qa := d.Dot(d)
	if qa == 0 {
		return nil
	}
	qb := 2 * f.Dot(d)
	qc := f.Dot(f) - radius*radius

	disc := qb*qb - 4*qa*qc
	if disc < 0 {
		return nil
	}

	if disc < Epsilon {
		// Tangent: one root.
		t := -qb / (2 * qa)
		if t < 0 || t > 1 {
			return nil
		}
		return []Vec2{a.Add(d.Mul(t))}
	}

	sqrtDisc := math.Sqrt(disc)
	var pts []Vec2
	for _, t := range []float64{(-qb - sqrtDisc) / (2 * qa), (-qb + sqrtDisc) / (2 * qa)} {
		if t >= 0 && t <= 1 {
			pts = append(pts, a.Add(d.Mul(t)))
		}
	}
	return pts
}

// CircleCircleIntersection returns the points where two circles cross
// using the radical-line construction. Degenerate configurations
// (coincident centers, disjoint or nested circles) return nil.
func CircleCircleIntersection(c1 Vec2, r1 float64, c2 Vec2, r2 float64) []Vec2 {
	d := c1.Distance(c2)
	if d < Epsilon {
		return nil // coincident centers
	}
	if d > r1+r2 || d < math.Abs(r1-r2) {
		return nil // disjoint or nested
	}

	// Distance from c1 to the radical line along the center axis.
	a := (r1*r1 - r2*r2 + d*d) / (2 * d)
	hSq := r1*r1 - a*a
	if hSq < 0 {
		return nil
	}

	axis := c2.Sub(c1).Div(d)
	mid := c1.Add(axis.Mul(a))
	if hSq < Epsilon {
		return []Vec2{mid} // tangent circles
	}

	h := math.Sqrt(hSq)
	offset := axis.Perp().Mul(h)
	return []Vec2{mid.Add(offset), mid.Sub(offset)}
}

// Circumcenter returns the center of the circle through three points,
// solved from the perpendicular-bisector system in closed form.
// Collinear points (determinant ~ 0) return ok=false.
func Circumcenter(p1, p2, p3 Vec2) (Vec2, bool) {
	d := 2 * (p1.X*(p2.Y-p3.Y) + p2.X*(p3.Y-p1.Y) + p3.X*(p1.Y-p2.Y))
	if math.Abs(d) < Epsilon {
		return Vec2{}, false
	}

	sq1 := p1.LengthSq()
	sq2 := p2.LengthSq()
	sq3 := p3.LengthSq()

	ux := (sq1*(p2.Y-p3.Y) + sq2*(p3.Y-p1.Y) + sq3*(p1.Y-p2.Y)) / d
	uy := (sq1*(p3.X-p2.X) + sq2*(p1.X-p3.X) + sq3*(p2.X-p1.X)) / d
	return Vec2{X: ux, Y: uy}, true
}

// SignedArea returns twice the signed area of the triangle p1 p2 p3.
// Positive means counter-clockwise winding.
func SignedArea(p1, p2, p3 Vec2) float64 {
	return p2.Sub(p1).Cross(p3.Sub(p1))
}

// NormalizeAngle maps an angle into [0, 2*pi).
func NormalizeAngle(theta float64) float64 {
	theta = math.Mod(theta, 2*math.Pi)
	if theta < 0 {
		theta += 2 * math.Pi
	}
	return theta
}

// AngleDiff returns the minimal absolute rotation between two angles,
// in [0, pi].
func AngleDiff(a, b float64) float64 {
	d := math.Abs(NormalizeAngle(a) - NormalizeAngle(b))
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}
