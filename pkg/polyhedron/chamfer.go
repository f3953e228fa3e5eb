package polyhedron

import (
	"errors"
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrInvalidChamfer is returned for a chamfer ratio outside (0,1).
	ErrInvalidChamfer = errors.New("chamfer ratio must be in (0,1)")

	// ErrMalformedAdjacency is returned when the corner walk around a vertex
	// cannot find the next bevel edge. The descriptor data must be fixed.
	ErrMalformedAdjacency = errors.New("malformed corner adjacency")
)

// Chamfered is a polyhedron with bevelled edges and corners.
type Chamfered struct {
	Vertices []mgl64.Vec3
	Faces    []Face
}

// Chamfer truncates the corners of a polyhedron. Every face is copied and
// shrunk toward its centroid by ratio; each pair of faces sharing exactly
// one edge gets a quad edge face, and each original vertex gets a corner
// face closing the bevel around it. Edge and corner faces use BevelSlot.
//
// Face order in the result is: shrunk faces (input order), edge faces,
// corner faces (vertex order).
func Chamfer(vertices []mgl64.Vec3, faces []Face, ratio float64) (*Chamfered, error) {
	if ratio <= 0 || ratio >= 1 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidChamfer, ratio)
	}

	out := &Chamfered{}

	// corners[v] lists the copies of original vertex v, one per incident face.
	corners := make([][]int, len(vertices))

	for _, f := range faces {
		loop := make([]int, len(f.Loop))
		var center mgl64.Vec3
		for j, idx := range f.Loop {
			v := vertices[idx]
			center = center.Add(v)
			loop[j] = len(out.Vertices)
			corners[idx] = append(corners[idx], loop[j])
			out.Vertices = append(out.Vertices, v)
		}
		center = center.Mul(1 / float64(len(f.Loop)))
		for _, k := range loop {
			out.Vertices[k] = center.Add(out.Vertices[k].Sub(center).Mul(ratio))
		}
		out.Faces = append(out.Faces, Face{Loop: loop, Slot: f.Slot})
	}

	for i := 0; i < len(faces)-1; i++ {
		for j := i + 1; j < len(faces); j++ {
			if quad, ok := edgeFace(faces, out.Faces, i, j); ok {
				out.Faces = append(out.Faces, Face{Loop: quad, Slot: BevelSlot})
			}
		}
	}
	edges := out.Faces[len(faces):len(out.Faces):len(out.Faces)]

	for v, dups := range corners {
		if len(dups) == 0 {
			continue
		}
		loop := []int{dups[0]}
		for hop := 0; hop < len(dups)-1; hop++ {
			next, ok := nextCorner(edges, loop[len(loop)-1], dups)
			if !ok {
				return nil, fmt.Errorf("%w: vertex %d stopped after %d of %d hops",
					ErrMalformedAdjacency, v, hop, len(dups)-1)
			}
			loop = append(loop, next)
		}
		if len(loop) < 3 {
			continue
		}
		out.Faces = append(out.Faces, Face{Loop: loop, Slot: BevelSlot})
	}

	return out, nil
}

// Chamfered builds the bevelled polyhedron for this descriptor from its
// unit-sphere vertices.
func (d *Descriptor) Chamfered() (*Chamfered, error) {
	c, err := Chamfer(d.UnitVertices(), d.Faces, d.Chamfer)
	if err != nil {
		return nil, fmt.Errorf("chamfering %s: %w", d.Name, err)
	}
	return c, nil
}

type loopRef struct {
	face, pos int
}

// edgeFace returns the quad joining the shrunk copies of faces i and j when
// the original faces share exactly one edge.
func edgeFace(orig, shrunk []Face, i, j int) ([]int, bool) {
	var pairs []loopRef
	last := -1
	for m, idx := range orig[i].Loop {
		n := slices.Index(orig[j].Loop, idx)
		if n < 0 {
			continue
		}
		p := []loopRef{{i, m}, {j, n}}
		if last >= 0 && m != last+1 {
			// The shared edge wraps around the end of loop i.
			pairs = append(p, pairs...)
		} else {
			pairs = append(pairs, p...)
		}
		last = m
	}
	if len(pairs) != 4 {
		return nil, false
	}

	at := func(r loopRef) int { return shrunk[r.face].Loop[r.pos] }
	return []int{at(pairs[0]), at(pairs[1]), at(pairs[3]), at(pairs[2])}, true
}

// nextCorner finds the copy of the same original vertex that follows from
// in winding order across one of the edge quads.
func nextCorner(edges []Face, from int, dups []int) (int, bool) {
	for _, e := range edges {
		k := slices.Index(e.Loop, from)
		if k < 0 {
			continue
		}
		next := e.Loop[(k+len(e.Loop)-1)%len(e.Loop)]
		if slices.Contains(dups, next) {
			return next, true
		}
	}
	return 0, false
}
