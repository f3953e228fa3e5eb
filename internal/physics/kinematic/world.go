// Package kinematic is a small deterministic rigid-body world for dice.
//
// Dynamic bodies fall under gravity, bounce off static walls and stop dead
// on the floor, where ground friction bleeds off their motion while a
// righting torque tips them onto their lowest face. Once grounded and slower
// than the sleep threshold a body is levelled and frozen. Dice do not collide
// with each other.
package kinematic

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Faultbox/dicebox/internal/config"
	"github.com/Faultbox/dicebox/internal/physics"
	"github.com/Faultbox/dicebox/pkg/collision"
)

// righting is the torque gain pulling a grounded body onto its lowest face,
// in rad/s² per radian of tilt.
const righting = 2.0

// World implements physics.World.
type World struct {
	up          mgl64.Vec3
	gravity     mgl64.Vec3
	restitution float64
	friction    float64
	sleep       float64

	bodies []*body // insertion order
	index  map[physics.BodyID]*body
	acc    float64

	log *zap.Logger
}

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.log = l
		}
	}
}

// New creates an empty world from the physics and session settings.
func New(cfg *config.Config, opts ...Option) *World {
	up := mgl64.Vec3(cfg.Session.Up).Normalize()
	w := &World{
		up:          up,
		gravity:     up.Mul(cfg.Physics.Gravity),
		restitution: cfg.Physics.Restitution,
		friction:    cfg.Physics.GroundFriction,
		sleep:       cfg.Session.SettleThreshold,
		index:       make(map[physics.BodyID]*body),
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// AddBody adds a body, replacing any body with the same id.
func (w *World) AddBody(id physics.BodyID, spec physics.BodySpec) {
	if _, ok := w.index[id]; ok {
		w.RemoveBody(id)
	}
	b := newBody(id, spec)
	w.bodies = append(w.bodies, b)
	w.index[id] = b
	w.log.Debug("body added",
		zap.Uint32("id", uint32(id)),
		zap.Stringer("material", spec.Material),
		zap.Bool("static", b.static))
}

// RemoveBody removes a body. Unknown ids are ignored.
func (w *World) RemoveBody(id physics.BodyID) {
	if _, ok := w.index[id]; !ok {
		return
	}
	delete(w.index, id)
	for i, b := range w.bodies {
		if b.id == id {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
}

// Body returns the current state of a body.
func (w *World) Body(id physics.BodyID) (physics.BodyState, bool) {
	b, ok := w.index[id]
	if !ok {
		return physics.BodyState{}, false
	}
	return b.state, true
}

// Asleep reports whether a body has come to rest and been frozen.
func (w *World) Asleep(id physics.BodyID) bool {
	b, ok := w.index[id]
	return ok && b.asleep
}

// Step advances the world in fixedDt sub-steps. Time that does not fit in
// maxSubSteps is dropped rather than carried into the next call. Sub-steps
// are skipped once every body is asleep.
func (w *World) Step(fixedDt, elapsed float64, maxSubSteps int) int {
	if fixedDt <= 0 {
		return 0
	}
	w.acc += elapsed

	n := 0
	for w.acc >= fixedDt && n < maxSubSteps {
		if w.resting() {
			break
		}
		w.substep(fixedDt)
		w.acc -= fixedDt
		n++
	}
	if w.acc >= fixedDt {
		w.acc = gomath.Mod(w.acc, fixedDt)
	}
	return n
}

// resting reports whether no body can move.
func (w *World) resting() bool {
	for _, b := range w.bodies {
		if !b.static && !b.asleep {
			return false
		}
	}
	return true
}

func (w *World) substep(dt float64) {
	for _, b := range w.bodies {
		if b.static || b.asleep {
			continue
		}
		w.integrate(b, dt)
		w.collide(b)
		if b.grounded {
			w.roll(b, dt)
		}
		if b.grounded && b.state.Settled(w.sleep) {
			w.freeze(b)
		}
	}
}

func (w *World) integrate(b *body, dt float64) {
	s := &b.state
	if !b.grounded {
		s.Velocity = s.Velocity.Add(w.gravity.Mul(dt))
	}
	s.Velocity = s.Velocity.Mul(gomath.Pow(1-b.linearDamping, dt))
	s.AngularVelocity = s.AngularVelocity.Mul(gomath.Pow(1-b.angularDamping, dt))

	s.Position = s.Position.Add(s.Velocity.Mul(dt))
	spin := mgl64.Quat{V: s.AngularVelocity}.Mul(s.Orientation).Scale(0.5 * dt)
	s.Orientation = s.Orientation.Add(spin).Normalize()
}

func (w *World) collide(b *body) {
	for _, st := range w.bodies {
		if !st.static {
			continue
		}
		switch st.shape.Kind {
		case collision.KindPlane:
			n := st.state.Orientation.Rotate(st.shape.Normal)
			w.contact(b, n, st.state.Position, n.Dot(w.up) > 0.5)
		case collision.KindBox:
			n, point := st.nearestFace(b.state.Position)
			w.contact(b, n, point, false)
		}
	}
}

// contact resolves b against the plane through point with outward normal n.
// Ground contacts are inelastic and keep a grounded body touching the plane.
func (w *World) contact(b *body, n, point mgl64.Vec3, ground bool) {
	depth := b.support(n) - point.Dot(n)
	if depth >= 0 && !(ground && b.grounded) {
		return
	}

	s := &b.state
	s.Position = s.Position.Sub(n.Mul(depth))
	vn := s.Velocity.Dot(n)
	if ground {
		s.Velocity = s.Velocity.Sub(n.Mul(vn))
		b.grounded = true
		return
	}
	if vn < 0 {
		s.Velocity = s.Velocity.Sub(n.Mul((1 + w.restitution) * vn))
	}
}

// roll applies ground friction and tips the body toward its lowest face.
func (w *World) roll(b *body, dt float64) {
	s := &b.state
	keep := gomath.Pow(1-w.friction, dt)
	planar := s.Velocity.Sub(w.up.Mul(s.Velocity.Dot(w.up)))
	s.Velocity = s.Velocity.Sub(planar.Mul(1 - keep))
	s.AngularVelocity = s.AngularVelocity.Mul(keep)

	n, ok := b.lowestFace(w.up)
	if !ok {
		return
	}
	down := w.up.Mul(-1)
	axis := n.Cross(down)
	if l := axis.Len(); l > 1e-12 {
		tilt := gomath.Atan2(l, n.Dot(down))
		s.AngularVelocity = s.AngularVelocity.Add(axis.Mul(righting * tilt * dt / l))
	}
}

// freeze stops a body and lays its lowest face flat on the ground.
func (w *World) freeze(b *body) {
	s := &b.state
	s.Velocity = mgl64.Vec3{}
	s.AngularVelocity = mgl64.Vec3{}
	if n, ok := b.lowestFace(w.up); ok {
		level := mgl64.QuatBetweenVectors(n, w.up.Mul(-1))
		s.Orientation = level.Mul(s.Orientation).Normalize()
	}
	w.collide(b)
	b.asleep = true

	w.log.Debug("body asleep",
		zap.Uint32("id", uint32(b.id)),
		zap.Float64("x", s.Position.X()),
		zap.Float64("z", s.Position.Z()))
}
