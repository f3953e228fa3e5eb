package kinematic

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/dicebox/internal/physics"
	"github.com/Faultbox/dicebox/pkg/collision"
)

type body struct {
	id     physics.BodyID
	shape  *collision.Shape
	static bool

	linearDamping  float64
	angularDamping float64

	// Body-space hull data of dynamic bodies.
	vertices []mgl64.Vec3
	normals  []mgl64.Vec3

	state    physics.BodyState
	grounded bool
	asleep   bool
}

func newBody(id physics.BodyID, spec physics.BodySpec) *body {
	orientation := spec.Orientation
	if orientation == (mgl64.Quat{}) {
		orientation = mgl64.QuatIdent()
	}
	b := &body{
		id:             id,
		shape:          spec.Shape,
		static:         spec.Mass <= 0,
		linearDamping:  spec.LinearDamping,
		angularDamping: spec.AngularDamping,
		state: physics.BodyState{
			Position:        spec.Position,
			Orientation:     orientation.Normalize(),
			Velocity:        spec.Velocity,
			AngularVelocity: spec.AngularVelocity,
		},
	}
	if b.static {
		b.state.Velocity = mgl64.Vec3{}
		b.state.AngularVelocity = mgl64.Vec3{}
		return b
	}

	switch spec.Shape.Kind {
	case collision.KindHull:
		b.vertices = spec.Shape.Vertices
		for _, f := range spec.Shape.Faces {
			b.normals = append(b.normals, outward(b.vertices[f[0]], b.vertices[f[1]], b.vertices[f[2]]))
		}
	case collision.KindBox:
		h := spec.Shape.HalfExtents
		for i := 0; i < 8; i++ {
			v := h
			for axis := 0; axis < 3; axis++ {
				if i&(1<<axis) != 0 {
					v[axis] = -v[axis]
				}
			}
			b.vertices = append(b.vertices, v)
		}
		for axis := 0; axis < 3; axis++ {
			var n mgl64.Vec3
			n[axis] = 1
			b.normals = append(b.normals, n, n.Mul(-1))
		}
	}
	return b
}

// outward returns the unit normal of a hull triangle pointing away from the
// body origin.
func outward(a, b, c mgl64.Vec3) mgl64.Vec3 {
	n := b.Sub(a).Cross(c.Sub(a)).Normalize()
	if n.Dot(a.Add(b).Add(c)) < 0 {
		n = n.Mul(-1)
	}
	return n
}

// support returns the smallest world-space projection of the body onto n.
func (b *body) support(n mgl64.Vec3) float64 {
	lo := gomath.Inf(1)
	for _, v := range b.vertices {
		if d := b.state.Orientation.Rotate(v).Add(b.state.Position).Dot(n); d < lo {
			lo = d
		}
	}
	return lo
}

// lowestFace returns the world-space face normal pointing most nearly down.
func (b *body) lowestFace(up mgl64.Vec3) (mgl64.Vec3, bool) {
	down := up.Mul(-1)
	var best mgl64.Vec3
	bestDot := gomath.Inf(-1)
	for _, n := range b.normals {
		wn := b.state.Orientation.Rotate(n)
		if d := wn.Dot(down); d > bestDot {
			bestDot = d
			best = wn
		}
	}
	return best, len(b.normals) > 0
}

// nearestFace returns the outward normal and a point on the face of a static
// box closest to p.
func (b *body) nearestFace(p mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	half := b.shape.HalfExtents
	rel := b.state.Orientation.Conjugate().Rotate(p.Sub(b.state.Position))

	axis, best := 0, gomath.Inf(-1)
	for i := 0; i < 3; i++ {
		if d := gomath.Abs(rel[i]) - half[i]; d > best {
			axis, best = i, d
		}
	}

	var local mgl64.Vec3
	local[axis] = 1
	if rel[axis] < 0 {
		local[axis] = -1
	}
	n := b.state.Orientation.Rotate(local)
	return n, b.state.Position.Add(n.Mul(half[axis]))
}
