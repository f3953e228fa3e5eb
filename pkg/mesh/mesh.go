package mesh

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/dicebox/pkg/polyhedron"
)

// minDoubleArea is the smallest accepted cross product length of a triangle.
const minDoubleArea = 1e-12

// Build fan-triangulates every face of a chamfered polyhedron scaled by
// radius. Each face gets a flat normal and a circular UV layout: fan corner
// k of an L-gon maps to angle 2πk/L + phase on a circle inset by tab.
// One group is emitted per face, in face order.
func Build(c *polyhedron.Chamfered, radius, tab, phase float64) *Mesh {
	scaled := make([]mgl64.Vec3, len(c.Vertices))
	for i, v := range c.Vertices {
		scaled[i] = v.Mul(radius)
	}

	m := &Mesh{Radius: float32(radius)}

	for _, face := range c.Faces {
		loop := face.Loop
		if len(loop) < 3 {
			continue
		}
		step := gomath.Pi * 2 / float64(len(loop))
		start := len(m.Vertices)

		// Triangulate faces
		for j := 0; j < len(loop)-2; j++ {
			a := scaled[loop[0]]
			b := scaled[loop[j+1]]
			cc := scaled[loop[j+2]]

			// Flat face normal: (c-b) x (a-b)
			n := cc.Sub(b).Cross(a.Sub(b))
			if n.Len() < minDoubleArea {
				continue
			}
			n = n.Normalize()

			m.Vertices = append(m.Vertices,
				vertex(a, n, faceUV(phase, tab)),
				vertex(b, n, faceUV(step*float64(j+1)+phase, tab)),
				vertex(cc, n, faceUV(step*float64(j+2)+phase, tab)),
			)
		}

		if count := len(m.Vertices) - start; count > 0 {
			m.Groups = append(m.Groups, Group{
				Start:         start,
				Count:         count,
				MaterialIndex: face.Slot + 1,
				Slot:          face.Slot,
			})
		}
	}

	return m
}

// faceUV maps an angle onto the unit circle inset into the [0,1] texture square.
func faceUV(angle, tab float64) [2]float32 {
	return [2]float32{
		float32((gomath.Cos(angle) + 1 + tab) / 2 / (1 + tab)),
		float32((gomath.Sin(angle) + 1 + tab) / 2 / (1 + tab)),
	}
}

func vertex(p, n mgl64.Vec3, uv [2]float32) Vertex {
	return Vertex{
		Position: [3]float32{float32(p[0]), float32(p[1]), float32(p[2])},
		Normal:   [3]float32{float32(n[0]), float32(n[1]), float32(n[2])},
		TexCoord: uv,
	}
}

// ForDescriptor chamfers a descriptor and triangulates it at the given die size.
func ForDescriptor(d *polyhedron.Descriptor, size float64) (*Mesh, error) {
	c, err := d.Chamfered()
	if err != nil {
		return nil, err
	}
	return Build(c, size*d.Radius, d.Tab, d.Phase), nil
}
