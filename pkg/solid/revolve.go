package solid

import (
	"math"

	"github.com/stylus-cad/stylus/pkg/geom"
	"github.com/stylus-cad/stylus/pkg/sketch"
)

// RevolveSegments is the angular resolution of a revolve.
const RevolveSegments = 32

// RevolveParams controls a revolution around the sketch Y axis.
type RevolveParams struct {
	// Angle is the sweep in radians. Values at or above a full turn
	// close the surface; smaller values leave an open wedge.
	Angle float64 `json:"angle"`
}

// Revolve sweeps the first line entity of the profile around the
// sketch Y axis. A sketch point (x, y) at angle theta lands at
// (x cos t, y, x sin t). Only line profiles are supported; anything
// else, or an empty profile, yields an empty mesh.
func Revolve(doc *sketch.Document, profile []sketch.EntityID, params RevolveParams) *Mesh {
	var line *sketch.LineData
	for _, id := range profile {
		e := doc.Entity(id)
		if e == nil {
			continue
		}
		if d, ok := e.Data.(sketch.LineData); ok {
			line = &d
			break
		}
	}
	if line == nil {
		return NewMesh()
	}

	angle := params.Angle
	if angle == 0 {
		angle = 2 * math.Pi
	}
	full := angle >= 2*math.Pi-geom.Epsilon
	if full {
		angle = 2 * math.Pi
	}

	m := NewMesh()
	n := RevolveSegments
	rings := n
	if !full {
		rings = n + 1
	}

	starts := make([]int, rings)
	ends := make([]int, rings)
	for i := 0; i < rings; i++ {
		theta := angle * float64(i) / float64(n)
		starts[i] = m.addVertex(revolvePoint(line.Start, theta))
		ends[i] = m.addVertex(revolvePoint(line.End, theta))
	}

	for i := 0; i < n; i++ {
		j := i + 1
		if full {
			j = (i + 1) % n
		}
		m.addFace(nil, starts[i], starts[j], ends[j], ends[i])
		m.addEdge(starts[i], starts[j], false)
		m.addEdge(ends[i], ends[j], false)
	}

	// Open sweeps keep the profile visible at both seam positions.
	if !full {
		m.addEdge(starts[0], ends[0], true)
		m.addEdge(starts[rings-1], ends[rings-1], true)
	}
	return m
}

func revolvePoint(p geom.Vec2, theta float64) geom.Vec3 {
	return geom.Vec3{
		X: p.X * math.Cos(theta),
		Y: p.Y,
		Z: p.X * math.Sin(theta),
	}
}
