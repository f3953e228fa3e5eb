package dice

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Faultbox/dicebox/internal/logger"
)

// Override forces the face on Slot to show Target.
type Override struct {
	Target int // requested value; the full total for d100 halves
	Slot   int
}

// Result is the reading of one settled die.
type Result struct {
	Kind  Kind
	Group int // index of the request the die came from
	Slot  int
	Label int
	Value int
}

// RestingSlot returns the slot of the face the die is read from: the face
// whose rotated outward normal is most aligned with up, or for the 4-sided
// die the face most opposed to it. Ties keep the first face enumerated.
func RestingSlot(k Kind, orientation mgl64.Quat, up mgl64.Vec3) int {
	s := k.shape()
	down := k.FacesDownward()

	best := s.slots[0]
	bestDot := gomath.Inf(-1)
	if down {
		bestDot = gomath.Inf(1)
	}
	for i, n := range s.normals {
		dot := orientation.Rotate(n).Dot(up)
		if (!down && dot > bestDot) || (down && dot < bestDot) {
			bestDot = dot
			best = s.slots[i]
		}
	}
	return best
}

// Resolve reads a settled die. With an override, the table entry at the
// override slot is first swapped with the entry carrying the requested label;
// a missing label leaves the table as is.
func Resolve(k Kind, labels Labels, orientation mgl64.Quat, up mgl64.Vec3, override *Override) Result {
	if override != nil {
		labels = labels.Clone()
		ApplyOverride(k, &labels, *override)
	}

	slot := RestingSlot(k, orientation, up)
	label, _ := labels.At(slot)
	return Result{Kind: k, Slot: slot, Label: label, Value: k.Value(label)}
}

// ApplyOverride forces the requested value onto the override slot.
func ApplyOverride(k Kind, labels *Labels, o Override) bool {
	label := k.TargetLabel(o.Target)
	if labels.Force(o.Slot, label) {
		return true
	}
	logger.Warn("face override not applied",
		zap.Stringer("kind", k),
		zap.Int("target", o.Target),
		zap.Int("label", label),
		zap.Int("slot", o.Slot))
	return false
}

// Total sums the values of a roll. A d100 pair reading "00" and "0" counts
// as 100.
func Total(results []Result) int {
	total := 0
	zeros := make(map[int]int)
	for _, r := range results {
		total += r.Value
		if (r.Kind == D100Tens || r.Kind == D100Units) && r.Value == 0 {
			zeros[r.Group]++
		}
	}
	for _, n := range zeros {
		if n == 2 {
			total += 100
		}
	}
	return total
}
