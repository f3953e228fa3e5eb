// Package collision builds the shapes handed to the physics world.
package collision

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/dicebox/pkg/polyhedron"
)

// Kind identifies a shape type.
type Kind int

const (
	KindHull  Kind = iota // convex polyhedron
	KindPlane             // infinite half-space
	KindBox               // axis-aligned box in body space
)

func (k Kind) String() string {
	switch k {
	case KindHull:
		return "hull"
	case KindPlane:
		return "plane"
	case KindBox:
		return "box"
	default:
		return "unknown"
	}
}

// Shape is a collision shape in body space.
type Shape struct {
	Kind Kind

	// KindHull
	Vertices []mgl64.Vec3
	Faces    [][3]int

	// KindPlane: the plane passes through the body origin.
	Normal mgl64.Vec3

	// KindBox
	HalfExtents mgl64.Vec3
}

// Hull builds a convex hull from the raw descriptor vertices scaled by size.
// Slot tags are dropped and every face is split into triangles: quads on the
// 0-2 diagonal, larger loops fanned from their first vertex.
func Hull(d *polyhedron.Descriptor, size float64) *Shape {
	scale := size * d.HullScale
	vertices := make([]mgl64.Vec3, len(d.Vertices))
	for i, v := range d.Vertices {
		if d.HullNormalized {
			v = v.Normalize()
		}
		vertices[i] = v.Mul(scale)
	}

	var faces [][3]int
	for _, f := range d.Faces {
		faces = append(faces, triangulate(f.Loop)...)
	}

	return &Shape{Kind: KindHull, Vertices: vertices, Faces: faces}
}

func triangulate(loop []int) [][3]int {
	switch {
	case len(loop) < 3:
		return nil
	case len(loop) == 3:
		return [][3]int{{loop[0], loop[1], loop[2]}}
	}
	tris := make([][3]int, 0, len(loop)-2)
	for j := 1; j < len(loop)-1; j++ {
		tris = append(tris, [3]int{loop[0], loop[j], loop[j+1]})
	}
	return tris
}

// Plane returns a static half-space shape with the given outward normal.
func Plane(normal mgl64.Vec3) *Shape {
	return &Shape{Kind: KindPlane, Normal: normal.Normalize()}
}

// Box returns a box shape with the given half extents.
func Box(halfExtents mgl64.Vec3) *Shape {
	return &Shape{Kind: KindBox, HalfExtents: halfExtents}
}

// BoundingRadius returns the radius of the smallest origin-centered sphere
// enclosing the shape. Planes are unbounded and report 0.
func (s *Shape) BoundingRadius() float64 {
	switch s.Kind {
	case KindHull:
		var r float64
		for _, v := range s.Vertices {
			if l := v.Len(); l > r {
				r = l
			}
		}
		return r
	case KindBox:
		return s.HalfExtents.Len()
	default:
		return 0
	}
}
