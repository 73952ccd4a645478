// Package stl exports generated meshes to the STL exchange format, in
// both the binary and ASCII encodings.
package stl

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/stylus-cad/stylus/pkg/geom"
	"github.com/stylus-cad/stylus/pkg/solid"
)

// triangle is one facet ready for encoding.
type triangle struct {
	normal  geom.Vec3
	a, b, c geom.Vec3
}

// triangulate fans every mesh face into triangles. Faces with fewer
// than three vertices or out-of-range indices are skipped.
func triangulate(m *solid.Mesh) []triangle {
	var tris []triangle
	for _, f := range m.Faces {
		if len(f.Indices) < 3 {
			continue
		}
		valid := true
		for _, idx := range f.Indices {
			if idx < 0 || idx >= len(m.Vertices) {
				valid = false
				break
			}
		}
		if !valid {
			continue
		}
		for i := 1; i+1 < len(f.Indices); i++ {
			t := triangle{
				a: m.Vertices[f.Indices[0]],
				b: m.Vertices[f.Indices[i]],
				c: m.Vertices[f.Indices[i+1]],
			}
			if f.Normal != nil {
				t.normal = *f.Normal
			} else {
				t.normal = faceNormal(t.a, t.b, t.c)
			}
			tris = append(tris, t)
		}
	}
	return tris
}

// faceNormal computes the unit normal of a counter-clockwise triangle.
// Degenerate triangles get a zero normal, which STL consumers accept.
func faceNormal(a, b, c geom.Vec3) geom.Vec3 {
	n := b.Sub(a).Cross(c.Sub(a))
	length := n.Length()
	if length < 1e-12 {
		return geom.Vec3{}
	}
	return n.Mul(1 / length)
}

// Write encodes the mesh as binary STL: an 80-byte header, a uint32
// triangle count, then 50 bytes per triangle (normal, three vertices,
// attribute count), all little-endian.
func Write(w io.Writer, m *solid.Mesh, name string) error {
	tris := triangulate(m)
	if len(tris) > math.MaxUint32 {
		return fmt.Errorf("stl: %d triangles exceed the binary format limit", len(tris))
	}

	header := make([]byte, 80)
	copy(header, name)
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("stl: write header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(tris))); err != nil {
		return fmt.Errorf("stl: write triangle count: %w", err)
	}

	for i, t := range tris {
		record := [12]float32{
			float32(t.normal.X), float32(t.normal.Y), float32(t.normal.Z),
			float32(t.a.X), float32(t.a.Y), float32(t.a.Z),
			float32(t.b.X), float32(t.b.Y), float32(t.b.Z),
			float32(t.c.X), float32(t.c.Y), float32(t.c.Z),
		}
		if err := binary.Write(w, binary.LittleEndian, record); err != nil {
			return fmt.Errorf("stl: write triangle %d: %w", i, err)
		}
		if err := binary.Write(w, binary.LittleEndian, uint16(0)); err != nil {
			return fmt.Errorf("stl: write attribute for triangle %d: %w", i, err)
		}
	}
	return nil
}

// WriteASCII encodes the mesh as ASCII STL.
func WriteASCII(w io.Writer, m *solid.Mesh, name string) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "solid %s\n", name); err != nil {
		return fmt.Errorf("stl: write solid header: %w", err)
	}
	for _, t := range triangulate(m) {
		fmt.Fprintf(bw, "  facet normal %g %g %g\n", t.normal.X, t.normal.Y, t.normal.Z)
		fmt.Fprintf(bw, "    outer loop\n")
		for _, v := range [3]geom.Vec3{t.a, t.b, t.c} {
			fmt.Fprintf(bw, "      vertex %g %g %g\n", v.X, v.Y, v.Z)
		}
		fmt.Fprintf(bw, "    endloop\n")
		fmt.Fprintf(bw, "  endfacet\n")
	}
	if _, err := fmt.Fprintf(bw, "endsolid %s\n", name); err != nil {
		return fmt.Errorf("stl: write solid footer: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("stl: flush: %w", err)
	}
	return nil
}

// WriteFile writes the mesh to path, choosing the encoding from the
// ascii flag.
func WriteFile(path string, m *solid.Mesh, name string, ascii bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("stl: create %s: %w", path, err)
	}
	defer f.Close()

	if ascii {
		if err := WriteASCII(f, m, name); err != nil {
			return err
		}
	} else {
		if err := Write(f, m, name); err != nil {
			return err
		}
	}
	return f.Sync()
}
