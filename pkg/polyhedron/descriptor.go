// Package polyhedron provides die shape descriptors and the chamfer builder
// that bevels their corners for rendering.
package polyhedron

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// BevelSlot is the slot of faces drawn with the background material:
// chamfer edge and corner faces, and the unlabeled halves of the 10-sided
// die's kites.
const BevelSlot = -1

// Face is a vertex index loop tagged with the face slot it belongs to.
type Face struct {
	Loop []int
	Slot int
}

// Descriptor is the static definition of one die shape.
type Descriptor struct {
	Name     string
	Vertices []mgl64.Vec3
	Faces    []Face

	// FirstSlot is the lowest labeled slot. Labeled slots are
	// FirstSlot..FirstSlot+Sides()-1.
	FirstSlot int

	// Visual mesh parameters.
	Chamfer float64 // corner truncation ratio in (0,1)
	Radius  float64 // mesh radius relative to die size
	Tab     float64 // UV tab offset
	Phase   float64 // UV angular phase, radians

	// Collision hull parameters.
	HullScale      float64 // hull vertex scale relative to die size
	HullNormalized bool    // normalize raw vertices before scaling
}

// Validate checks that every face loop has at least three entries and that
// every index refers to an existing vertex.
func (d *Descriptor) Validate() error {
	if len(d.Vertices) == 0 {
		return fmt.Errorf("%s: no vertices", d.Name)
	}
	for i, f := range d.Faces {
		if len(f.Loop) < 3 {
			return fmt.Errorf("%s: face %d has %d vertices", d.Name, i, len(f.Loop))
		}
		for _, idx := range f.Loop {
			if idx < 0 || idx >= len(d.Vertices) {
				return fmt.Errorf("%s: face %d references vertex %d of %d", d.Name, i, idx, len(d.Vertices))
			}
		}
	}
	return nil
}

// Sides returns the number of labeled faces.
func (d *Descriptor) Sides() int {
	n := 0
	for _, f := range d.Faces {
		if f.Slot != BevelSlot {
			n++
		}
	}
	return n
}

// UnitVertices returns the vertices projected onto the unit sphere.
func (d *Descriptor) UnitVertices() []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(d.Vertices))
	for i, v := range d.Vertices {
		out[i] = v.Normalize()
	}
	return out
}

// FaceNormal returns the outward unit normal of face i. The shapes are
// convex and centered on the origin, so the normal is flipped if it points
// toward the center.
func (d *Descriptor) FaceNormal(i int) mgl64.Vec3 {
	loop := d.Faces[i].Loop
	var centroid mgl64.Vec3
	for _, idx := range loop {
		centroid = centroid.Add(d.Vertices[idx])
	}
	centroid = centroid.Mul(1 / float64(len(loop)))

	// Newell's method handles slightly non-planar loops.
	var n mgl64.Vec3
	for j := range loop {
		a := d.Vertices[loop[j]]
		b := d.Vertices[loop[(j+1)%len(loop)]]
		n[0] += (a[1] - b[1]) * (a[2] + b[2])
		n[1] += (a[2] - b[2]) * (a[0] + b[0])
		n[2] += (a[0] - b[0]) * (a[1] + b[1])
	}
	n = n.Normalize()
	if n.Dot(centroid) < 0 {
		n = n.Mul(-1)
	}
	return n
}
