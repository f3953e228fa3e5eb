package roll

import (
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/dicebox/internal/config"
	"github.com/Faultbox/dicebox/internal/dice"
	"github.com/Faultbox/dicebox/internal/physics"
	"github.com/Faultbox/dicebox/internal/physics/kinematic"
	"github.com/Faultbox/dicebox/internal/render/recorder"
)

const frame = 1.0 / 60

// spyWorld records bodies handed to a kinematic world.
type spyWorld struct {
	*kinematic.World
	added   []addition
	removed map[physics.BodyID]physics.BodyState
}

type addition struct {
	id   physics.BodyID
	spec physics.BodySpec
}

func (w *spyWorld) AddBody(id physics.BodyID, spec physics.BodySpec) {
	w.added = append(w.added, addition{id, spec})
	w.World.AddBody(id, spec)
}

func (w *spyWorld) RemoveBody(id physics.BodyID) {
	if st, ok := w.World.Body(id); ok {
		w.removed[id] = st
	}
	w.World.RemoveBody(id)
}

// dieSpecs returns the die bodies in the order they were added.
func (w *spyWorld) dieSpecs() []addition {
	var out []addition
	for _, a := range w.added {
		if a.spec.Material == physics.MaterialDie {
			out = append(out, a)
		}
	}
	return out
}

func newSession(t *testing.T, cfg *config.Config) (*Session, *spyWorld, *recorder.Recorder) {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	w := &spyWorld{World: kinematic.New(cfg), removed: make(map[physics.BodyID]physics.BodyState)}
	r := recorder.New(nil)
	s := New(cfg, w, r, WithRand(rand.New(rand.NewPCG(1, 2))))
	return s, w, r
}

// untilRolled ticks until the roll completes and returns every event seen.
func untilRolled(t *testing.T, s *Session) []Event {
	t.Helper()
	var events []Event
	for i := 0; i < 60*60; i++ {
		ev := s.Tick(frame)
		events = append(events, ev...)
		if slices.ContainsFunc(ev, func(e Event) bool { return e.Kind == EventRolled }) {
			return events
		}
	}
	t.Fatalf("roll did not finish, phase %s", s.Phase())
	return nil
}

func find(events []Event, kind EventKind) (Event, bool) {
	for _, e := range events {
		if e.Kind == kind {
			return e, true
		}
	}
	return Event{}, false
}

func req(typ string, v int) dice.Request {
	return dice.Request{Type: typ, Value: &v}
}

func TestScenarioSingleD6(t *testing.T) {
	s, w, _ := newSession(t, nil)

	require.NoError(t, s.Roll([]dice.Request{req("d6", 4)}))
	assert.Equal(t, Probing, s.Phase())
	probeBody := s.Dice()[0].Body

	events := untilRolled(t, s)
	probed, ok := find(events, EventProbed)
	require.True(t, ok)
	rolled, _ := find(events, EventRolled)

	assert.Equal(t, 4, rolled.Total)
	require.Len(t, rolled.Results, 1)
	assert.Equal(t, probed.Slots[0], rolled.Results[0].Slot)
	assert.Equal(t, Idle, s.Phase())

	// The visible replay ends exactly where the invisible throw did.
	final := s.Dice()[0].State()
	assert.Equal(t, w.removed[probeBody].Position, final.Position)
	assert.Equal(t, w.removed[probeBody].Orientation, final.Orientation)
}

func TestScenarioTwoD20(t *testing.T) {
	s, _, _ := newSession(t, nil)

	require.NoError(t, s.Roll([]dice.Request{req("d20", 20), req("d20", 1)}))
	rolled, _ := find(untilRolled(t, s), EventRolled)

	assert.Equal(t, 21, rolled.Total)
	require.Len(t, rolled.Results, 2)
	assert.Equal(t, 20, rolled.Results[0].Value)
	assert.Equal(t, 1, rolled.Results[1].Value)
	assert.Equal(t, 0, rolled.Results[0].Group)
	assert.Equal(t, 1, rolled.Results[1].Group)
}

func TestScenarioD100Hundred(t *testing.T) {
	s, _, r := newSession(t, nil)

	require.NoError(t, s.Roll([]dice.Request{req("d100", 100)}))
	assert.Len(t, s.Dice(), 2)

	rolled, _ := find(untilRolled(t, s), EventRolled)
	assert.Equal(t, 100, rolled.Total)
	require.Len(t, rolled.Results, 2)
	assert.Equal(t, dice.D100Units, rolled.Results[0].Kind)
	assert.Equal(t, dice.D100Tens, rolled.Results[1].Kind)
	assert.Zero(t, rolled.Results[0].Label)
	assert.Zero(t, rolled.Results[1].Label)

	// The tens die shows "00" on its resting face.
	tens := s.Dice()[1]
	e, ok := r.Mesh(tens.Mesh)
	require.True(t, ok)
	assert.Equal(t, "00", e.Materials[rolled.Results[1].Slot+1])
}

func TestScenarioResetWhileProbing(t *testing.T) {
	s, w, r := newSession(t, nil)

	require.NoError(t, s.Roll([]dice.Request{req("d6", 2), req("d8", 5)}))
	first := s.Dice()
	require.Len(t, r.IDs(), 2)

	s.Reset()
	assert.Equal(t, Idle, s.Phase())
	assert.Empty(t, s.Dice())
	assert.Empty(t, r.IDs(), "invisible dice are removed without fading")
	for _, d := range first {
		_, ok := w.Body(d.Body)
		assert.False(t, ok)
	}

	events := s.Tick(frame)
	require.Len(t, events, 1)
	assert.Equal(t, EventResetDone, events[0].Kind)

	require.NoError(t, s.Roll([]dice.Request{req("d6", 2)}))
	assert.Equal(t, Probing, s.Phase())
	next := s.Dice()
	require.Len(t, next, 1)
	assert.NotEqual(t, first[0].Seed, next[0].Seed, "a fresh probe draws new seeds")

	rolled, _ := find(untilRolled(t, s), EventRolled)
	assert.Equal(t, 2, rolled.Total)
}

func TestRoundTripEveryValue(t *testing.T) {
	s, _, _ := newSession(t, nil)

	for _, typ := range []string{"d4", "d6", "d8", "d10", "d12", "d20", "d100"} {
		t.Run(typ, func(t *testing.T) {
			_, hi, ok := dice.Range(typ)
			require.True(t, ok)
			for v := 1; v <= hi; v++ {
				require.NoError(t, s.Roll([]dice.Request{req(typ, v)}))
				events := untilRolled(t, s)
				probed, _ := find(events, EventProbed)
				rolled, _ := find(events, EventRolled)

				require.Equal(t, v, rolled.Total, "%s=%d", typ, v)
				for i, d := range s.Dice() {
					k := d.Unit.Kind
					assert.Equal(t, probed.Slots[i], rolled.Results[i].Slot)
					assert.Equal(t, k.TargetLabel(v), rolled.Results[i].Label)

					want := slices.Sorted(slices.Values(dice.NewLabels(k).Values()))
					got := slices.Sorted(slices.Values(d.Labels.Values()))
					assert.Equal(t, want, got, "labels must stay a permutation")
				}
			}
		})
	}
}

func TestUnforcedRollReportsPhysics(t *testing.T) {
	s, _, _ := newSession(t, nil)

	require.NoError(t, s.Roll([]dice.Request{{Type: "d12"}}))
	events := untilRolled(t, s)
	probed, _ := find(events, EventProbed)
	rolled, _ := find(events, EventRolled)

	label, _ := dice.NewLabels(dice.D12).At(probed.Slots[0])
	assert.Equal(t, label, rolled.Total)
	assert.Nil(t, s.Dice()[0].Override)
}

func TestSeedFidelity(t *testing.T) {
	s, w, _ := newSession(t, nil)

	require.NoError(t, s.Roll([]dice.Request{req("d4", 3), req("d100", 42), req("d20", 7)}))
	probing := s.Dice()
	s.Tick(frame)
	require.Equal(t, Presenting, s.Phase())
	presenting := s.Dice()

	require.Len(t, presenting, len(probing))
	for i := range probing {
		assert.Equal(t, probing[i].Seed, presenting[i].Seed)
		assert.False(t, probing[i].Visible)
		assert.True(t, presenting[i].Visible)
	}

	specs := w.dieSpecs()
	require.Len(t, specs, 2*len(probing))
	for i := range probing {
		assert.Equal(t, specs[i].spec, specs[len(probing)+i].spec, "die %d", i)
	}
}

func TestThrowSettingsApplyToNextRoll(t *testing.T) {
	s, w, _ := newSession(t, nil)

	require.NoError(t, s.Roll([]dice.Request{req("d6", 1)}))
	s.SetThrowSpeed(40)
	s.SetThrowSpin(1)
	untilRolled(t, s)

	specs := w.dieSpecs()
	require.Len(t, specs, 2)
	assert.Equal(t, specs[0].spec, specs[1].spec, "in-flight roll keeps its throw")
	assert.Less(t, specs[0].spec.Velocity.X(), 0.8*40)

	require.NoError(t, s.Roll([]dice.Request{req("d6", 1)}))
	next := w.dieSpecs()[2].spec
	assert.GreaterOrEqual(t, next.Velocity.X(), 0.8*40)
	for i := 0; i < 3; i++ {
		assert.LessOrEqual(t, next.AngularVelocity[i], 0.75)
	}
}

func TestThrowPose(t *testing.T) {
	th := throw{speed: 10, spin: 4, left: -16, margin: 2, depth: 18}
	seed := Seed{
		Pos:      [3]float64{0.5, 0.25, 1},
		RotAxis:  [3]float64{0, 0, 0.5},
		RotAngle: 0.25,
		Vel:      [3]float64{0, 1, 0.5},
		AngVel:   [3]float64{0.5, 1, 0},
	}

	pos, rot, vel, angVel := th.pose(seed)
	assert.InDelta(t, 0, pos.Sub(mgl64.Vec3{-12, 5, 8.1}).Len(), 1e-12)
	assert.InDelta(t, 0, rot.Rotate(mgl64.Vec3{1, 0, 0}).Sub(mgl64.Vec3{0, 1, 0}).Len(), 1e-12)
	assert.Equal(t, mgl64.Vec3{8, 1, 0}, vel)
	assert.Equal(t, mgl64.Vec3{0, 3, -3}, angVel)
}

// restless never lets a body settle.
type restless struct {
	bodies map[physics.BodyID]physics.BodySpec
}

func (w *restless) AddBody(id physics.BodyID, spec physics.BodySpec) { w.bodies[id] = spec }
func (w *restless) RemoveBody(id physics.BodyID) { delete(w.bodies, id) }

func (w *restless) Step(fixedDt, elapsed float64, maxSubSteps int) int {
	return min(int(elapsed/fixedDt), maxSubSteps)
}

func (w *restless) Body(id physics.BodyID) (physics.BodyState, bool) {
	spec, ok := w.bodies[id]
	return physics.BodyState{
		Position:    spec.Position,
		Orientation: spec.Orientation,
		Velocity:    mgl64.Vec3{1, 0, 0},
	}, ok
}

func TestSettleTimeout(t *testing.T) {
	cfg := config.Default()
	cfg.Session.SettleTimeout = time.Second
	s := New(cfg, &restless{bodies: make(map[physics.BodyID]physics.BodySpec)}, recorder.New(nil))

	require.NoError(t, s.Roll([]dice.Request{req("d6", 4)}))

	events := s.Tick(frame)
	probed, ok := find(events, EventProbed)
	require.True(t, ok, "probing reaches the timeout in one tick")
	assert.True(t, probed.TimedOut)

	ticks := 0
	var rolled Event
	for ; ticks < 200; ticks++ {
		if e, ok := find(s.Tick(frame), EventRolled); ok {
			rolled = e
			break
		}
	}
	assert.InDelta(t, 60, ticks, 2)
	assert.True(t, rolled.TimedOut)
	assert.Equal(t, 4, rolled.Total, "frozen orientation replays the probed face")
}

func TestFewSubStepsStillForceValue(t *testing.T) {
	cfg := config.Default()
	cfg.Session.ProbeMaxSubSteps = 10

	for seed := uint64(1); seed <= 8; seed++ {
		w := kinematic.New(cfg)
		s := New(cfg, w, recorder.New(nil), WithRand(rand.New(rand.NewPCG(seed, seed))))
		require.NoError(t, s.Roll([]dice.Request{req("d20", 20)}))

		events := untilRolled(t, s)
		probed, ok := find(events, EventProbed)
		require.True(t, ok)
		rolled, _ := find(events, EventRolled)

		assert.False(t, probed.TimedOut, "seed %d", seed)
		assert.False(t, rolled.TimedOut, "seed %d", seed)
		assert.Equal(t, 20, rolled.Total, "seed %d", seed)
		assert.Equal(t, probed.Slots[0], rolled.Results[0].Slot, "seed %d", seed)
	}
}

func TestTimeoutMidFlightKeepsForcedValue(t *testing.T) {
	cfg := config.Default()
	cfg.Session.SettleTimeout = 200 * time.Millisecond

	for seed := uint64(1); seed <= 4; seed++ {
		w := kinematic.New(cfg)
		s := New(cfg, w, recorder.New(nil), WithRand(rand.New(rand.NewPCG(seed, seed))))
		require.NoError(t, s.Roll([]dice.Request{req("d20", 7), req("d6", 2)}))

		events := untilRolled(t, s)
		probed, ok := find(events, EventProbed)
		require.True(t, ok)
		rolled, _ := find(events, EventRolled)

		assert.True(t, probed.TimedOut, "seed %d", seed)
		assert.True(t, rolled.TimedOut, "seed %d", seed)
		assert.Equal(t, 9, rolled.Total, "seed %d", seed)
		for i, r := range rolled.Results {
			assert.Equal(t, probed.Slots[i], r.Slot, "seed %d die %d", seed, i)
		}
	}
}

func TestSettleTimeoutDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Session.SettleTimeout = 0
	s := New(cfg, &restless{bodies: make(map[physics.BodyID]physics.BodySpec)}, recorder.New(nil))

	require.NoError(t, s.Roll([]dice.Request{req("d6", 4)}))
	for i := 0; i < 10; i++ {
		assert.Empty(t, s.Tick(frame))
	}
	assert.Equal(t, Probing, s.Phase())
}

func TestZeroTickDoesNotSettle(t *testing.T) {
	s, _, _ := newSession(t, nil)
	s.SetThrowSpeed(0)
	s.SetThrowSpin(0)

	require.NoError(t, s.Roll([]dice.Request{req("d6", 6)}))
	assert.Empty(t, s.Tick(0))
	assert.Equal(t, Probing, s.Phase())
}

func TestEmptyRequest(t *testing.T) {
	s, _, _ := newSession(t, nil)
	assert.ErrorIs(t, s.Roll(nil), ErrEmptyRequest)
	assert.Equal(t, Idle, s.Phase())
}

func TestUnknownTypeRollsD6(t *testing.T) {
	s, _, _ := newSession(t, nil)

	require.NoError(t, s.Roll([]dice.Request{req("d7", 3)}))
	assert.Equal(t, dice.D6, s.Dice()[0].Unit.Kind)
	rolled, _ := find(untilRolled(t, s), EventRolled)
	assert.Equal(t, 3, rolled.Total)
}

func TestResetFadesVisibleDice(t *testing.T) {
	s, _, r := newSession(t, nil)

	require.NoError(t, s.Roll([]dice.Request{req("d8", 8)}))
	untilRolled(t, s)
	id := s.Dice()[0].Mesh

	s.Reset()
	e, ok := r.Mesh(id)
	require.True(t, ok, "visible dice stay while fading")
	assert.Equal(t, 1.0, e.Opacity)

	assert.Empty(t, s.Tick(0.25))
	e, _ = r.Mesh(id)
	assert.InDelta(t, 0.125, e.Opacity, 1e-12)

	events := s.Tick(0.25)
	require.Len(t, events, 1)
	assert.Equal(t, EventResetDone, events[0].Kind)
	assert.Empty(t, r.IDs())
}

func TestRollTearsDownEverything(t *testing.T) {
	s, _, r := newSession(t, nil)

	require.NoError(t, s.Roll([]dice.Request{req("d10", 10)}))
	s.Tick(frame)
	require.Equal(t, Presenting, s.Phase())

	require.NoError(t, s.Roll([]dice.Request{req("d4", 1)}))
	ids := r.IDs()
	require.Len(t, ids, 1)
	e, _ := r.Mesh(ids[0])
	assert.False(t, e.Visible)

	// Fading dice go too.
	untilRolled(t, s)
	s.Reset()
	require.NoError(t, s.Roll([]dice.Request{req("d4", 1)}))
	assert.Len(t, r.IDs(), 1)
}

func TestResizeMovesWallsAndSpawnArea(t *testing.T) {
	s, w, _ := newSession(t, nil)
	before := len(w.added)

	s.Resize(1)
	assert.Len(t, w.added, before+4)
	assert.Len(t, w.removed, 4)

	require.NoError(t, s.Roll([]dice.Request{req("d6", 1)}))
	x := w.dieSpecs()[0].spec.Position.X()
	assert.GreaterOrEqual(t, x, -7.0)
	assert.Less(t, x, -3.0)

	s.Resize(0)
	assert.Len(t, w.added, before+4+1, "non-positive aspect is ignored")
}

func TestCloseRemovesTrayAndDice(t *testing.T) {
	s, w, r := newSession(t, nil)

	require.NoError(t, s.Roll([]dice.Request{req("d12", 5), req("d4", 3)}))
	untilRolled(t, s)
	require.NoError(t, s.Roll([]dice.Request{req("d8", 1)}))
	s.Tick(frame)

	s.Close()
	assert.Equal(t, Idle, s.Phase())
	assert.Empty(t, s.Dice())
	assert.Empty(t, r.IDs())
	for _, a := range w.added {
		_, ok := w.World.Body(a.id)
		assert.False(t, ok, "body %d", a.id)
	}
	assert.Empty(t, s.Tick(frame))
}
