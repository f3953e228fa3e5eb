// Package roll runs the two-phase rigged dice roll.
//
// A roll first throws invisible dice at a heavily accelerated timestep to
// find the face slot each one lands on. It then replays the same throws
// visibly in real time, with each die's face values permuted so the slot it
// is known to land on carries the requested value.
package roll

import (
	"errors"
	"fmt"
	gomath "math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Faultbox/dicebox/internal/config"
	"github.com/Faultbox/dicebox/internal/dice"
	"github.com/Faultbox/dicebox/internal/logger"
	"github.com/Faultbox/dicebox/internal/physics"
	"github.com/Faultbox/dicebox/internal/render"
	"github.com/Faultbox/dicebox/pkg/collision"
	"github.com/Faultbox/dicebox/pkg/mesh"
)

// ErrEmptyRequest is returned by Roll when no dice are requested.
var ErrEmptyRequest = errors.New("roll: empty request")

// Session owns the dice of one table. It is not safe for concurrent use.
type Session struct {
	cfg     config.Config
	world   physics.World
	surface render.Surface
	rng     *rand.Rand
	log     *zap.Logger

	up     mgl64.Vec3
	aspect float64
	arena  arena
	speed  float64
	spin   float64

	phase      Phase
	throw      throw
	units      []dice.Unit
	seeds      []Seed // FIFO, filled while probing
	slots      []int  // FIFO, filled when probing settles
	dice       []*Die
	fading     []*fade
	resetting  bool
	phaseSteps int // sub-steps simulated in the current phase

	meshes map[dice.Kind]*mesh.Mesh
	hulls  map[dice.Kind]*collision.Shape

	lastBody physics.BodyID
	lastMesh render.MeshID
}

// Option configures a Session.
type Option func(*Session)

// WithRand sets the source of throw seeds.
func WithRand(r *rand.Rand) Option {
	return func(s *Session) {
		if r != nil {
			s.rng = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates an idle session and adds the tray to world.
func New(cfg *config.Config, world physics.World, surface render.Surface, opts ...Option) *Session {
	s := &Session{
		cfg:     *cfg,
		world:   world,
		surface: surface,
		log:     logger.Named("roll"),
		up:      mgl64.Vec3(cfg.Session.Up).Normalize(),
		aspect:  cfg.Arena.Aspect,
		speed:   cfg.Throw.Speed,
		spin:    cfg.Throw.Spin,
		meshes:  make(map[dice.Kind]*mesh.Mesh),
		hulls:   make(map[dice.Kind]*collision.Shape),
	}
	if seed := cfg.Throw.Seed; seed != 0 {
		s.rng = rand.New(rand.NewPCG(seed, seed))
	} else {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	for _, opt := range opts {
		opt(s)
	}

	s.buildArena()
	return s
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Dice returns copies of the dice of the current phase in roll order.
func (s *Session) Dice() []Die {
	out := make([]Die, len(s.dice))
	for i, d := range s.dice {
		out[i] = *d
	}
	return out
}

// SetThrowSpeed sets the throw speed of subsequent rolls.
func (s *Session) SetThrowSpeed(v float64) {
	s.speed = v
}

// SetThrowSpin sets the throw spin of subsequent rolls.
func (s *Session) SetThrowSpin(v float64) {
	s.spin = v
}

// Roll starts a new roll. Every die on the table, fading ones included, is
// removed first. The result is reported by a later Tick as EventRolled.
func (s *Session) Roll(reqs []dice.Request) error {
	if len(reqs) == 0 {
		return ErrEmptyRequest
	}
	units := dice.Expand(reqs)
	for _, u := range units {
		if err := s.prepare(u.Kind); err != nil {
			return fmt.Errorf("building %s: %w", u.Kind, err)
		}
	}

	s.teardown()
	s.units = units
	s.seeds = s.seeds[:0]
	s.slots = s.slots[:0]
	s.throw = throw{
		speed:  s.speed,
		spin:   s.spin,
		left:   -s.cfg.Arena.FrustumSize * s.aspect / 2,
		margin: s.cfg.Arena.Margin,
		depth:  s.cfg.Arena.FrustumSize,
	}

	s.enter(Probing)
	for i, u := range units {
		seed := NewSeed(s.rng)
		s.seeds = append(s.seeds, seed)
		s.spawn(i, u, seed, false, nil)
	}

	s.log.Info("roll started",
		zap.Int("requests", len(reqs)),
		zap.Int("dice", len(units)),
		zap.Float64("speed", s.throw.speed),
		zap.Float64("spin", s.throw.spin))
	return nil
}

// Reset removes invisible dice at once and fades visible ones out. Tick
// reports EventResetDone once the fade completes.
func (s *Session) Reset() {
	for _, d := range s.dice {
		s.world.RemoveBody(d.Body)
		if d.Visible {
			s.fading = append(s.fading, &fade{mesh: d.Mesh})
		} else {
			s.surface.RemoveMesh(d.Mesh)
		}
	}
	s.dice = nil
	s.units = nil
	s.seeds = s.seeds[:0]
	s.slots = s.slots[:0]
	s.resetting = true
	s.enter(Idle)

	s.log.Debug("reset", zap.Int("fading", len(s.fading)))
}

// Close removes every die and the tray from the world and the surface. The
// session must not be used afterwards.
func (s *Session) Close() {
	s.teardown()
	s.world.RemoveBody(s.arena.floor)
	for _, id := range s.arena.walls {
		s.world.RemoveBody(id)
	}
	s.arena = arena{}
	s.units = nil
	s.seeds = s.seeds[:0]
	s.slots = s.slots[:0]
	s.resetting = false
	s.enter(Idle)

	s.log.Debug("session closed")
}

// Tick advances the session by dt seconds of real time: it steps physics,
// syncs mesh transforms, checks whether the dice settled, advances fades and
// renders a frame.
func (s *Session) Tick(dt float64) []Event {
	var events []Event
	sc := s.cfg.Session

	switch s.phase {
	case Probing:
		s.step(dt*sc.ProbeSpeedFactor, sc.ProbeMaxSubSteps)
	case Presenting:
		s.step(dt, sc.PresentMaxSubSteps)
	}

	s.sync()

	if s.phase != Idle && s.phaseSteps > 0 {
		settled := s.settled()
		timedOut := !settled && s.timedOut()
		if timedOut {
			s.log.Warn("dice did not settle, resolving current orientation",
				zap.Stringer("phase", s.phase),
				zap.Float64("simulated", float64(s.phaseSteps)*sc.FixedStep))
		}
		if settled || timedOut {
			switch s.phase {
			case Probing:
				events = append(events, s.finishProbe(timedOut))
			case Presenting:
				events = append(events, s.finishPresent(timedOut))
			}
		}
	}

	if s.advanceFades(dt) {
		events = append(events, Event{Kind: EventResetDone})
	}

	s.surface.Render()
	return events
}

func (s *Session) enter(p Phase) {
	s.phase = p
	s.phaseSteps = 0
}

// step advances the world, never past the settle timeout, so both phases
// of a timed-out roll stop on the same sub-step.
func (s *Session) step(elapsed float64, maxSubSteps int) {
	if limit := s.timeoutSteps(); limit > 0 {
		maxSubSteps = min(maxSubSteps, max(limit-s.phaseSteps, 0))
	}
	s.phaseSteps += s.world.Step(s.cfg.Session.FixedStep, elapsed, maxSubSteps)
}

// timeoutSteps converts the settle timeout to sub-steps. Zero means none.
func (s *Session) timeoutSteps() int {
	sc := s.cfg.Session
	if sc.SettleTimeout <= 0 || sc.FixedStep <= 0 {
		return 0
	}
	return int(gomath.Ceil(sc.SettleTimeout.Seconds() / sc.FixedStep))
}

func (s *Session) timedOut() bool {
	limit := s.timeoutSteps()
	return limit > 0 && s.phaseSteps >= limit
}

func (s *Session) settled() bool {
	for _, d := range s.dice {
		if !d.state.Settled(s.cfg.Session.SettleThreshold) {
			return false
		}
	}
	return true
}

func (s *Session) sync() {
	for _, d := range s.dice {
		st, ok := s.world.Body(d.Body)
		if !ok {
			continue
		}
		d.state = st
		s.surface.SetTransform(d.Mesh, st.Position, st.Orientation)
	}
}

// finishProbe records where each invisible die landed, removes them and
// replays the throw visibly.
func (s *Session) finishProbe(timedOut bool) Event {
	slots := make([]int, len(s.dice))
	for i, d := range s.dice {
		slot := dice.RestingSlot(d.Unit.Kind, d.state.Orientation, s.up)
		d.ResolvedSlot = &slot
		slots[i] = slot
	}
	s.slots = append(s.slots, slots...)
	s.teardown()

	s.enter(Presenting)
	for i, u := range s.units {
		seed, slot := s.seeds[0], s.slots[0]
		s.seeds, s.slots = s.seeds[1:], s.slots[1:]

		var override *dice.Override
		if u.Target != nil {
			override = &dice.Override{Target: *u.Target, Slot: slot}
		}
		s.spawn(i, u, seed, true, override)
	}

	s.log.Debug("probe settled", zap.Ints("slots", slots), zap.Bool("timeout", timedOut))
	return Event{Kind: EventProbed, Slots: slots, TimedOut: timedOut}
}

// finishPresent reads the visible dice and completes the roll. The dice stay
// on the table until the next Roll or Reset.
func (s *Session) finishPresent(timedOut bool) Event {
	results := make([]dice.Result, len(s.dice))
	for i, d := range s.dice {
		r := dice.Resolve(d.Unit.Kind, d.Labels, d.state.Orientation, s.up, nil)
		r.Group = d.Unit.Group
		d.ResolvedSlot = &r.Slot
		results[i] = r
	}
	total := dice.Total(results)

	s.units = nil
	s.seeds = s.seeds[:0]
	s.slots = s.slots[:0]
	s.enter(Idle)

	s.log.Info("roll finished", zap.Int("total", total), zap.Bool("timeout", timedOut))
	return Event{Kind: EventRolled, Results: results, Total: total, TimedOut: timedOut}
}

// prepare builds and caches the mesh and hull of a kind.
func (s *Session) prepare(k dice.Kind) error {
	if _, ok := s.meshes[k]; ok {
		return nil
	}
	d := k.Descriptor()
	m, err := mesh.ForDescriptor(d, s.cfg.Arena.DieSize)
	if err != nil {
		return err
	}
	s.meshes[k] = m
	s.hulls[k] = collision.Hull(d, s.cfg.Arena.DieSize)
	return nil
}

func (s *Session) spawn(i int, u dice.Unit, seed Seed, visible bool, override *dice.Override) {
	labels := dice.NewLabels(u.Kind)
	if override != nil {
		dice.ApplyOverride(u.Kind, &labels, *override)
	}

	d := &Die{
		ID:       i,
		Unit:     u,
		Labels:   labels,
		Seed:     seed,
		Mesh:     s.nextMesh(),
		Body:     s.nextBody(),
		Visible:  visible,
		Override: override,
	}
	pos, rot, vel, angVel := s.throw.pose(seed)
	d.state = physics.BodyState{Position: pos, Orientation: rot, Velocity: vel, AngularVelocity: angVel}

	s.surface.AddMesh(d.Mesh, s.meshes[u.Kind], labels.Materials(u.Kind), visible)
	s.surface.SetTransform(d.Mesh, pos, rot)
	s.world.AddBody(d.Body, physics.BodySpec{
		Shape:           s.hulls[u.Kind],
		Mass:            s.cfg.Physics.DieMass,
		Position:        pos,
		Orientation:     rot,
		Velocity:        vel,
		AngularVelocity: angVel,
		LinearDamping:   s.cfg.Physics.LinearDamping,
		AngularDamping:  s.cfg.Physics.AngularDamping,
		Material:        physics.MaterialDie,
	})
	s.dice = append(s.dice, d)
}

// teardown removes every die, fading ones included.
func (s *Session) teardown() {
	for _, d := range s.dice {
		s.world.RemoveBody(d.Body)
		s.surface.RemoveMesh(d.Mesh)
	}
	s.dice = nil
	for _, f := range s.fading {
		s.surface.RemoveMesh(f.mesh)
	}
	s.fading = nil
}

func (s *Session) nextBody() physics.BodyID {
	s.lastBody++
	return s.lastBody
}

func (s *Session) nextMesh() render.MeshID {
	s.lastMesh++
	return s.lastMesh
}

// fade is a mesh being faded out after Reset.
type fade struct {
	mesh    render.MeshID
	elapsed float64
}

// advanceFades progresses fades by dt and reports whether a pending reset
// completed.
func (s *Session) advanceFades(dt float64) bool {
	duration := s.cfg.Session.FadeDuration.Seconds()
	kept := s.fading[:0]
	for _, f := range s.fading {
		f.elapsed += dt
		p := 1.0
		if duration > 0 {
			p = gomath.Min(f.elapsed/duration, 1)
		}
		if p >= 1 {
			s.surface.RemoveMesh(f.mesh)
			continue
		}
		s.surface.SetOpacity(f.mesh, 1-easeOutCubic(p))
		kept = append(kept, f)
	}
	s.fading = kept

	if s.resetting && len(s.fading) == 0 {
		s.resetting = false
		return true
	}
	return false
}

func easeOutCubic(p float64) float64 {
	q := 1 - p
	return 1 - q*q*q
}
