// Package physics defines the rigid-body world the roll session drives.
package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/dicebox/pkg/collision"
)

// BodyID identifies a body. IDs are allocated by the caller.
type BodyID uint32

// Material tags a body for contact handling.
type Material int

const (
	MaterialDie Material = iota
	MaterialFloor
	MaterialWall
)

func (m Material) String() string {
	switch m {
	case MaterialDie:
		return "die"
	case MaterialFloor:
		return "floor"
	case MaterialWall:
		return "wall"
	default:
		return "unknown"
	}
}

// BodySpec describes a body to add. Mass 0 makes the body static.
type BodySpec struct {
	Shape           *collision.Shape
	Mass            float64
	Position        mgl64.Vec3
	Orientation     mgl64.Quat
	Velocity        mgl64.Vec3
	AngularVelocity mgl64.Vec3
	LinearDamping   float64 // fraction of velocity lost per second
	AngularDamping  float64
	Material        Material
}

// BodyState is the kinematic state of a body after a step.
type BodyState struct {
	Position        mgl64.Vec3
	Orientation     mgl64.Quat
	Velocity        mgl64.Vec3
	AngularVelocity mgl64.Vec3
}

// Settled reports whether both squared speeds are below threshold.
func (s BodyState) Settled(threshold float64) bool {
	return s.Velocity.Dot(s.Velocity) < threshold &&
		s.AngularVelocity.Dot(s.AngularVelocity) < threshold
}

// World is a rigid-body simulation stepped at a fixed rate.
type World interface {
	AddBody(id BodyID, spec BodySpec)
	RemoveBody(id BodyID)

	// Step advances the simulation by elapsed seconds in fixedDt sub-steps,
	// running at most maxSubSteps of them, and returns how many ran.
	Step(fixedDt, elapsed float64, maxSubSteps int) int

	Body(id BodyID) (BodyState, bool)
}
