// Package dice holds die kinds, their face value tables and the resolver
// that reads a settled die.
package dice

import (
	"strconv"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/dicebox/pkg/polyhedron"
)

// Kind is one physical die variant. A d100 roll uses a Tens and a Units die.
type Kind int

const (
	D4 Kind = iota
	D6
	D8
	D10
	D12
	D20
	D100Tens
	D100Units
)

var kindNames = [...]string{"d4", "d6", "d8", "d10", "d12", "d20", "d100-tens", "d100-units"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "d?"
	}
	return kindNames[k]
}

// canonical label order per kind, indexed from the descriptor's first slot.
// The 10-sided orders alternate so adjacent faces are numerically spread.
var canonical = map[Kind][]int{
	D4:        {1, 2, 3, 4},
	D6:        {1, 2, 3, 4, 5, 6},
	D8:        {1, 2, 3, 4, 5, 6, 7, 8},
	D10:       {1, 0, 2, 9, 3, 8, 4, 7, 5, 6},
	D12:       {1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
	D20:       {1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20},
	D100Tens:  {10, 0, 20, 90, 30, 80, 40, 70, 50, 60},
	D100Units: {1, 0, 2, 9, 3, 8, 4, 7, 5, 6},
}

// shape is the immutable geometry shared by every die of a kind.
type shape struct {
	desc    *polyhedron.Descriptor
	slots   []int        // labeled face slots in enumeration order
	normals []mgl64.Vec3 // outward normals matching slots
}

var shapes = func() map[Kind]*shape {
	byName := map[Kind]*polyhedron.Descriptor{
		D4:  polyhedron.Tetrahedron(),
		D6:  polyhedron.Cube(),
		D8:  polyhedron.Octahedron(),
		D10: polyhedron.Trapezohedron(),
		D12: polyhedron.Dodecahedron(),
		D20: polyhedron.Icosahedron(),
	}
	byName[D100Tens] = byName[D10]
	byName[D100Units] = byName[D10]

	out := make(map[Kind]*shape, len(byName))
	for k, d := range byName {
		s := &shape{desc: d}
		for i, f := range d.Faces {
			if f.Slot == polyhedron.BevelSlot {
				continue
			}
			s.slots = append(s.slots, f.Slot)
			s.normals = append(s.normals, d.FaceNormal(i))
		}
		out[k] = s
	}
	return out
}()

// Descriptor returns the shape descriptor of the kind. The descriptor is
// shared and must not be modified. Unknown kinds get the 6-sided shape.
func (k Kind) Descriptor() *polyhedron.Descriptor {
	return k.shape().desc
}

func (k Kind) shape() *shape {
	if s, ok := shapes[k]; ok {
		return s
	}
	return shapes[D6]
}

// Sides returns the number of labeled faces.
func (k Kind) Sides() int {
	return len(k.shape().slots)
}

// Value converts a face label into the number it counts for.
// The plain 10-sided die's "0" face counts as 10.
func (k Kind) Value(label int) int {
	if k == D10 && label == 0 {
		return 10
	}
	return label
}

// Display returns the text printed on a face with the given label.
func (k Kind) Display(label int) string {
	if k == D100Tens && label == 0 {
		return "00"
	}
	return strconv.Itoa(label)
}

// TargetLabel converts a requested value into the face label that shows it.
// For d100 halves the value is the full 1-100 total.
func (k Kind) TargetLabel(value int) int {
	switch k {
	case D10:
		if value == 10 {
			return 0
		}
		return value
	case D100Units:
		return value % 10
	case D100Tens:
		tens := value - value%10
		if tens == 100 {
			return 0
		}
		return tens
	default:
		return value
	}
}

// FacesDownward reports whether the kind is read from the face resting on
// the ground rather than the face pointing up.
func (k Kind) FacesDownward() bool {
	return k == D4
}
