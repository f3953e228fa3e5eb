package roll

import (
	gomath "math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/dicebox/internal/dice"
	"github.com/Faultbox/dicebox/internal/physics"
	"github.com/Faultbox/dicebox/internal/render"
)

// Seed holds the random draws behind one throw, each uniform in [0,1).
// A die replayed from the same seed and throw gets identical kinematics.
type Seed struct {
	Pos      [3]float64
	RotAxis  [3]float64
	RotAngle float64
	Vel      [3]float64
	AngVel   [3]float64
}

// NewSeed draws a seed.
func NewSeed(r *rand.Rand) Seed {
	var s Seed
	for i := range s.Pos {
		s.Pos[i] = r.Float64()
	}
	for i := range s.RotAxis {
		s.RotAxis[i] = r.Float64()
	}
	s.RotAngle = r.Float64()
	for i := range s.Vel {
		s.Vel[i] = r.Float64()
	}
	for i := range s.AngVel {
		s.AngVel[i] = r.Float64()
	}
	return s
}

// throw is the strength and spawn area captured when a roll starts.
type throw struct {
	speed  float64
	spin   float64
	left   float64 // x of the left wall
	margin float64
	depth  float64
}

// pose returns the spawn position, orientation, velocity and angular
// velocity for a seed.
func (t throw) pose(s Seed) (pos mgl64.Vec3, rot mgl64.Quat, vel, angVel mgl64.Vec3) {
	pos = mgl64.Vec3{
		t.left + t.margin + 4*s.Pos[0],
		4 + 4*s.Pos[1],
		(s.Pos[2] - 0.5) * 0.9 * t.depth,
	}

	axis := mgl64.Vec3(s.RotAxis)
	if axis.Len() == 0 {
		axis = mgl64.Vec3{0, 1, 0}
	}
	rot = mgl64.QuatRotate(2*gomath.Pi*s.RotAngle, axis.Normalize())

	vel = mgl64.Vec3{
		(0.8 + 0.8*s.Vel[0]) * t.speed,
		0.1 * s.Vel[1] * t.speed,
		(s.Vel[2] - 0.5) * t.speed,
	}
	for i := range angVel {
		angVel[i] = (s.AngVel[i] - 0.5) * t.spin * 1.5
	}
	return pos, rot, vel, angVel
}

// Die is one physical die of the current roll.
type Die struct {
	ID      int // position in the roll
	Unit    dice.Unit
	Labels  dice.Labels
	Seed    Seed
	Mesh    render.MeshID
	Body    physics.BodyID
	Visible bool

	// ResolvedSlot is set once the die's phase settles.
	ResolvedSlot *int
	// Override is the forced face of a presenting die with a target.
	Override *dice.Override

	state physics.BodyState
}

// State returns the last synchronized body state.
func (d *Die) State() physics.BodyState {
	return d.state
}
