package roll

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/dicebox/internal/config"
	"github.com/Faultbox/dicebox/internal/physics"
	"github.com/Faultbox/dicebox/pkg/collision"
)

// arena is the floor and the four walls of the tray.
type arena struct {
	floor physics.BodyID
	walls []physics.BodyID
}

// wallSpecs returns static boxes enclosing a frustum-wide area of the given
// aspect. Walls are thick so fast dice cannot pass through them in one step.
func wallSpecs(cfg config.ArenaConfig, aspect float64) []physics.BodySpec {
	w := cfg.FrustumSize * aspect
	d := cfg.FrustumSize
	t := cfg.WallThickness
	h := cfg.WallHeight

	boxes := []struct{ pos, half mgl64.Vec3 }{
		{mgl64.Vec3{-(w + t) / 2, h / 2, 0}, mgl64.Vec3{t / 2, h / 2, d/2 + t}},
		{mgl64.Vec3{(w + t) / 2, h / 2, 0}, mgl64.Vec3{t / 2, h / 2, d/2 + t}},
		{mgl64.Vec3{0, h / 2, -(d + t) / 2}, mgl64.Vec3{w/2 + t, h / 2, t / 2}},
		{mgl64.Vec3{0, h / 2, (d + t) / 2}, mgl64.Vec3{w/2 + t, h / 2, t / 2}},
	}
	specs := make([]physics.BodySpec, len(boxes))
	for i, b := range boxes {
		specs[i] = physics.BodySpec{
			Shape:       collision.Box(b.half),
			Position:    b.pos,
			Orientation: mgl64.QuatIdent(),
			Material:    physics.MaterialWall,
		}
	}
	return specs
}

func floorSpec(up mgl64.Vec3) physics.BodySpec {
	return physics.BodySpec{
		Shape:       collision.Plane(up),
		Orientation: mgl64.QuatIdent(),
		Material:    physics.MaterialFloor,
	}
}

func (s *Session) buildArena() {
	s.arena.floor = s.nextBody()
	s.world.AddBody(s.arena.floor, floorSpec(s.up))
	s.buildWalls()
}

func (s *Session) buildWalls() {
	for _, id := range s.arena.walls {
		s.world.RemoveBody(id)
	}
	s.arena.walls = s.arena.walls[:0]
	for _, spec := range wallSpecs(s.cfg.Arena, s.aspect) {
		id := s.nextBody()
		s.world.AddBody(id, spec)
		s.arena.walls = append(s.arena.walls, id)
	}
}

// Resize rebuilds the walls for a new viewport aspect ratio. Dice already
// in flight keep the spawn area of the roll they belong to.
func (s *Session) Resize(aspect float64) {
	if aspect <= 0 {
		return
	}
	s.aspect = aspect
	s.buildWalls()
}
