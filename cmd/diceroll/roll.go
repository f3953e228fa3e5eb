package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/dicebox/internal/dice"
	"github.com/Faultbox/dicebox/internal/logger"
	"github.com/Faultbox/dicebox/internal/physics/kinematic"
	"github.com/Faultbox/dicebox/internal/render/recorder"
	"github.com/Faultbox/dicebox/internal/roll"
)

var (
	rollFPS      float64
	rollMaxTicks int
)

var rollCmd = &cobra.Command{
	Use:   "roll [die[=value]]...",
	Short: "Throw dice and print where they land",
	Long: `Throw one die per argument. A value forces the face the die lands on.

  Example: roll d6=4 d20 d100=42`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRoll,
}

func init() {
	rollCmd.Flags().Float64Var(&rollFPS, "fps", 60, "Frames per simulated second")
	rollCmd.Flags().IntVar(&rollMaxTicks, "max-ticks", 60*120, "Give up after this many frames")
}

func runRoll(cmd *cobra.Command, args []string) error {
	reqs, err := dice.ParseRequests(args)
	if err != nil {
		return err
	}
	if rollFPS <= 0 {
		return fmt.Errorf("fps must be positive, got %v", rollFPS)
	}

	world := kinematic.New(cfg, kinematic.WithLogger(logger.Named("kinematic")))
	surface := recorder.New(logger.Named("render"))
	session := roll.New(cfg, world, surface)
	defer session.Close()

	if err := session.Roll(reqs); err != nil {
		return fmt.Errorf("starting roll: %w", err)
	}

	dt := 1 / rollFPS
	for tick := 0; tick < rollMaxTicks; tick++ {
		for _, ev := range session.Tick(dt) {
			switch ev.Kind {
			case roll.EventProbed:
				logger.Debug("probe settled", zap.Ints("slots", ev.Slots), zap.Int("tick", tick))
			case roll.EventRolled:
				printResults(cmd, args, ev)
				logger.Info("rolled",
					zap.Int("total", ev.Total),
					zap.Int("frames", surface.Frames()))
				return nil
			}
		}
	}
	logger.Error("dice still moving", zap.Int("frames", rollMaxTicks), zap.Stringer("phase", session.Phase()))
	return fmt.Errorf("dice still moving after %d frames", rollMaxTicks)
}

func printResults(cmd *cobra.Command, args []string, ev roll.Event) {
	out := cmd.OutOrStdout()
	for _, r := range ev.Results {
		fmt.Fprintf(out, "%-12s %-10s face %-3s slot %2d\n",
			strings.ToLower(args[r.Group]), r.Kind, r.Kind.Display(r.Label), r.Slot)
	}
	if ev.TimedOut {
		fmt.Fprintln(out, "(dice did not settle in time, read as they lay)")
	}
	fmt.Fprintf(out, "Total: %d\n", ev.Total)
}
