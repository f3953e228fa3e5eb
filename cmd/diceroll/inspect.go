package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Faultbox/dicebox/internal/dice"
	"github.com/Faultbox/dicebox/pkg/collision"
	"github.com/Faultbox/dicebox/pkg/mesh"
)

var allKinds = []dice.Kind{
	dice.D4, dice.D6, dice.D8, dice.D10, dice.D12, dice.D20, dice.D100Tens, dice.D100Units,
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [kind]...",
	Short: "Show the geometry of die kinds",
	Long: `Show vertex, face and triangle counts plus the face labels of each die kind.
With no arguments every kind is shown.

  Example: inspect d10 d100-tens`,
	RunE: runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	kinds := allKinds
	if len(args) > 0 {
		kinds = nil
		for _, a := range args {
			i := slices.IndexFunc(allKinds, func(k dice.Kind) bool { return k.String() == strings.ToLower(a) })
			if i < 0 {
				return fmt.Errorf("unknown die kind %q", a)
			}
			kinds = append(kinds, allKinds[i])
		}
	}

	out := cmd.OutOrStdout()
	for _, k := range kinds {
		d := k.Descriptor()
		m, err := mesh.ForDescriptor(d, cfg.Arena.DieSize)
		if err != nil {
			return fmt.Errorf("building %s: %w", k, err)
		}
		hull := collision.Hull(d, cfg.Arena.DieSize)

		fmt.Fprintf(out, "%s\n", k)
		fmt.Fprintf(out, "  sides:      %d\n", k.Sides())
		fmt.Fprintf(out, "  vertices:   %d\n", len(d.Vertices))
		fmt.Fprintf(out, "  faces:      %d\n", len(d.Faces))
		fmt.Fprintf(out, "  triangles:  %d (%d groups)\n", m.TriangleCount(), len(m.Groups))
		fmt.Fprintf(out, "  materials:  %d\n", m.MaterialCount())
		fmt.Fprintf(out, "  hull:       %d triangles, radius %.3f\n", len(hull.Faces), hull.BoundingRadius())
		labels := dice.NewLabels(k)
		fmt.Fprintf(out, "  labels:     %s\n", strings.Join(labels.Materials(k)[1+labels.FirstSlot():], " "))
	}
	return nil
}
