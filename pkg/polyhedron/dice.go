package polyhedron

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// faces builds a face list from loops whose last element is the slot tag.
func faces(tagged ...[]int) []Face {
	out := make([]Face, len(tagged))
	for i, t := range tagged {
		out[i] = Face{Loop: t[:len(t)-1], Slot: t[len(t)-1]}
	}
	return out
}

// Tetrahedron returns the 4-sided die.
func Tetrahedron() *Descriptor {
	return &Descriptor{
		Name: "d4",
		Vertices: []mgl64.Vec3{
			{1, 1, 1}, {-1, -1, 1}, {-1, 1, -1}, {1, -1, -1},
		},
		Faces:     faces([]int{1, 0, 2, 1}, []int{0, 1, 3, 2}, []int{0, 3, 2, 3}, []int{1, 2, 3, 4}),
		FirstSlot: 1,
		Chamfer:   0.96,
		Radius:    1.2,
		Tab:       -0.1,
		Phase:     math.Pi * 7 / 6,
		HullScale: 1,
	}
}

// Cube returns the 6-sided die.
func Cube() *Descriptor {
	return &Descriptor{
		Name: "d6",
		Vertices: []mgl64.Vec3{
			{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
			{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
		},
		Faces: faces(
			[]int{0, 3, 2, 1, 1}, []int{1, 2, 6, 5, 2}, []int{0, 1, 5, 4, 3},
			[]int{3, 7, 6, 2, 4}, []int{0, 4, 7, 3, 5}, []int{4, 5, 6, 7, 6},
		),
		FirstSlot: 1,
		Chamfer:   0.96,
		Radius:    0.9,
		Tab:       0.1,
		Phase:     math.Pi / 4,
		HullScale: 0.5,
	}
}

// Octahedron returns the 8-sided die.
func Octahedron() *Descriptor {
	return &Descriptor{
		Name: "d8",
		Vertices: []mgl64.Vec3{
			{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1},
		},
		Faces: faces(
			[]int{0, 2, 4, 1}, []int{0, 4, 3, 2}, []int{0, 3, 5, 3}, []int{0, 5, 2, 4},
			[]int{1, 3, 4, 5}, []int{1, 4, 2, 6}, []int{1, 2, 5, 7}, []int{1, 5, 3, 8},
		),
		FirstSlot: 1,
		Chamfer:   0.965,
		Radius:    1,
		Tab:       0,
		Phase:     -math.Pi / 4 / 2,
		HullScale: 1,
	}
}

// Trapezohedron returns the 10-sided die. Each kite is split into a
// labeled triangle and an unlabeled one; both d100 halves share it.
func Trapezohedron() *Descriptor {
	vertices := make([]mgl64.Vec3, 0, 12)
	for i := 0; i < 10; i++ {
		b := float64(i) * math.Pi * 2 / 10
		z := -0.105
		if i%2 == 1 {
			z = 0.105
		}
		vertices = append(vertices, mgl64.Vec3{math.Cos(b), math.Sin(b), z})
	}
	vertices = append(vertices, mgl64.Vec3{0, 0, -1}, mgl64.Vec3{0, 0, 1})

	b := BevelSlot
	return &Descriptor{
		Name:     "d10",
		Vertices: vertices,
		Faces: faces(
			[]int{5, 7, 11, 0}, []int{4, 2, 10, 1}, []int{1, 3, 11, 2}, []int{0, 8, 10, 3},
			[]int{7, 9, 11, 4}, []int{8, 6, 10, 5}, []int{9, 1, 11, 6}, []int{2, 0, 10, 7},
			[]int{3, 5, 11, 8}, []int{6, 4, 10, 9},
			[]int{1, 0, 2, b}, []int{1, 2, 3, b}, []int{3, 2, 4, b}, []int{3, 4, 5, b},
			[]int{5, 4, 6, b}, []int{5, 6, 7, b}, []int{7, 6, 8, b}, []int{7, 8, 9, b},
			[]int{9, 8, 0, b}, []int{9, 0, 1, b},
		),
		FirstSlot: 0,
		Chamfer:   0.945,
		Radius:    0.9,
		Tab:       0,
		Phase:     math.Pi * 6 / 5,
		HullScale: 1,
	}
}

// Dodecahedron returns the 12-sided die.
func Dodecahedron() *Descriptor {
	p := (1 + math.Sqrt(5)) / 2
	q := 1 / p
	return &Descriptor{
		Name: "d12",
		Vertices: []mgl64.Vec3{
			{0, q, p}, {0, q, -p}, {0, -q, p}, {0, -q, -p}, {p, 0, q},
			{p, 0, -q}, {-p, 0, q}, {-p, 0, -q}, {q, p, 0}, {q, -p, 0}, {-q, p, 0},
			{-q, -p, 0}, {1, 1, 1}, {1, 1, -1}, {1, -1, 1}, {1, -1, -1}, {-1, 1, 1},
			{-1, 1, -1}, {-1, -1, 1}, {-1, -1, -1},
		},
		Faces: faces(
			[]int{2, 14, 4, 12, 0, 1}, []int{15, 9, 11, 19, 3, 2}, []int{16, 10, 17, 7, 6, 3},
			[]int{6, 7, 19, 11, 18, 4}, []int{6, 18, 2, 0, 16, 5}, []int{18, 11, 9, 14, 2, 6},
			[]int{1, 17, 10, 8, 13, 7}, []int{1, 13, 5, 15, 3, 8}, []int{13, 8, 12, 4, 5, 9},
			[]int{5, 4, 14, 9, 15, 10}, []int{0, 12, 8, 10, 16, 11}, []int{3, 19, 7, 17, 1, 12},
		),
		FirstSlot:      1,
		Chamfer:        0.968,
		Radius:         0.9,
		Tab:            0.2,
		Phase:          -math.Pi / 4 / 2,
		HullScale:      0.9,
		HullNormalized: true,
	}
}

// Icosahedron returns the 20-sided die.
func Icosahedron() *Descriptor {
	t := (1 + math.Sqrt(5)) / 2
	return &Descriptor{
		Name: "d20",
		Vertices: []mgl64.Vec3{
			{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
			{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
			{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
		},
		Faces: faces(
			[]int{0, 11, 5, 1}, []int{0, 5, 1, 2}, []int{0, 1, 7, 3}, []int{0, 7, 10, 4}, []int{0, 10, 11, 5},
			[]int{1, 5, 9, 6}, []int{5, 11, 4, 7}, []int{11, 10, 2, 8}, []int{10, 7, 6, 9}, []int{7, 1, 8, 10},
			[]int{3, 9, 4, 11}, []int{3, 4, 2, 12}, []int{3, 2, 6, 13}, []int{3, 6, 8, 14}, []int{3, 8, 9, 15},
			[]int{4, 9, 5, 16}, []int{2, 4, 11, 17}, []int{6, 2, 10, 18}, []int{8, 6, 7, 19}, []int{9, 8, 1, 20},
		),
		FirstSlot:      1,
		Chamfer:        0.955,
		Radius:         1,
		Tab:            -0.2,
		Phase:          -math.Pi / 4 / 2,
		HullScale:      0.9,
		HullNormalized: true,
	}
}
