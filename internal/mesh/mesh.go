package mesh

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// ErrEmptyMesh is returned when a file parses but contains no triangles.
var ErrEmptyMesh = errors.New("mesh contains no triangles")

// Vec3 is a point or direction in model space.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the cross product of v and o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Normalize returns v scaled to unit length; the zero vector stays zero.
func (v Vec3) Normalize() Vec3 {
	length := math.Sqrt(v.Dot(v))
	if length == 0 {
		return Vec3{}
	}
	return v.Scale(1 / length)
}

// Triangle is one mesh facet.
type Triangle struct {
	V0, V1, V2 Vec3
}

// Normal returns the (unnormalized zero-safe) facet normal.
func (t Triangle) Normal() Vec3 {
	return t.V1.Sub(t.V0).Cross(t.V2.Sub(t.V0)).Normalize()
}

// Mesh is a triangle soup loaded from an STL or 3MF file.
type Mesh struct {
	Triangles []Triangle
}

// IsEmpty reports whether the mesh has no triangles.
func (m *Mesh) IsEmpty() bool {
	return m == nil || len(m.Triangles) == 0
}

// Bounds returns the axis-aligned bounding box of the mesh. An empty mesh
// reports a unit box around the origin so view setup never divides by zero.
func (m *Mesh) Bounds() (lower, upper Vec3) {
	if m.IsEmpty() {
		return Vec3{-0.5, -0.5, -0.5}, Vec3{0.5, 0.5, 0.5}
	}
	lower = m.Triangles[0].V0
	upper = m.Triangles[0].V0
	for _, tri := range m.Triangles {
		for _, v := range []Vec3{tri.V0, tri.V1, tri.V2} {
			lower.X = math.Min(lower.X, v.X)
			lower.Y = math.Min(lower.Y, v.Y)
			lower.Z = math.Min(lower.Z, v.Z)
			upper.X = math.Max(upper.X, v.X)
			upper.Y = math.Max(upper.Y, v.Y)
			upper.Z = math.Max(upper.Z, v.Z)
		}
	}
	return lower, upper
}

// Center returns the midpoint of the bounding box.
func (m *Mesh) Center() Vec3 {
	lower, upper := m.Bounds()
	return lower.Add(upper).Scale(0.5)
}

// Radius returns half the largest bounding-box extent, padded the way the
// gallery frames previews. Degenerate meshes report 1 so projection stays
// finite.
func (m *Mesh) Radius() float64 {
	lower, upper := m.Bounds()
	extent := upper.Sub(lower)
	max := math.Max(extent.X, math.Max(extent.Y, extent.Z))
	if max <= 0 {
		return 1
	}
	return max / 2 * 1.2
}

// Load reads a mesh from an STL or 3MF file, dispatching on extension with
// an STL fallback for unknown ones.
func Load(path string) (*Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".3mf":
		return Load3MF(path)
	case ".stl":
		return LoadSTL(path)
	default:
		return LoadSTL(path)
	}
}

// LoadSTL reads a binary or ASCII STL file.
func LoadSTL(path string) (*Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return parseSTL(data)
}
