package tools

import (
	"math"

	"github.com/stylus-cad/stylus/pkg/geom"
	"github.com/stylus-cad/stylus/pkg/sketch"
)

// ArcTool draws circular arcs through three clicked points: start,
// a point on the arc, and end. The circle is the circumcircle of the
// three points; collinear clicks abort without creating an entity.
type ArcTool struct {
	doc *sketch.Document
	cfg Config

	state  State
	clicks []geom.Vec2
}

// NewArcTool creates an arc tool over the document.
func NewArcTool(doc *sketch.Document, cfg Config) *ArcTool {
	return &ArcTool{doc: doc, cfg: cfg}
}

func (t *ArcTool) Name() string { return "arc" }
func (t *ArcTool) State() State { return t.state }

func (t *ArcTool) PointerDown(p geom.Vec2) {
	t.clicks = append(t.clicks, geom.SnapToGrid(p, t.cfg.GridSize))
	t.state = StateDrawing
	if len(t.clicks) < 3 {
		return
	}
	t.commit()
}

func (t *ArcTool) PointerMove(geom.Vec2) {}

func (t *ArcTool) PointerUp(geom.Vec2) {}

func (t *ArcTool) commit() {
	p1, p2, p3 := t.clicks[0], t.clicks[1], t.clicks[2]
	t.clicks = nil
	t.state = StateIdle

	center, ok := geom.Circumcenter(p1, p2, p3)
	if !ok {
		return // collinear clicks, no arc
	}
	radius := center.Distance(p1)

	startAngle := p1.Sub(center).Angle()
	midAngle := p2.Sub(center).Angle()
	endAngle := p3.Sub(center).Angle()

	// Direction from the winding of the three clicks: positive signed
	// area sweeps counter-clockwise.
	raw := geom.NormalizeAngle(endAngle - startAngle)
	sweep := raw
	if geom.SignedArea(p1, p2, p3) < 0 {
		sweep = raw - 2*math.Pi
	}

	// The clicked midpoint must lie on the drawn arc; if the naive
	// sweep misses it, flip to the complementary arc.
	arc := sketch.ArcData{Center: center, Radius: radius, StartAngle: startAngle, SweepAngle: sweep}
	if !arc.ContainsAngle(midAngle) {
		if sweep > 0 {
			sweep -= 2 * math.Pi
		} else {
			sweep += 2 * math.Pi
		}
	}

	t.doc.AddArc(center, radius, startAngle, sweep)
}

func (t *ArcTool) Cancel() {
	t.clicks = nil
	t.state = StateIdle
}

func (t *ArcTool) Preview() *sketch.Entity {
	// Two clicks give a chord preview while waiting for the third.
	if len(t.clicks) != 2 {
		return nil
	}
	return &sketch.Entity{
		Kind: sketch.KindLine,
		Data: sketch.LineData{Start: t.clicks[0], End: t.clicks[1]},
	}
}

func (t *ArcTool) PreviewPoints() []geom.Vec2 {
	return t.clicks
}
