package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"honnef.co/go/bezier"
)

func newConstructCmd(a *app) *cobra.Command {
	var (
		steps   int
		back    int
		partial bool
	)
	cmd := &cobra.Command{
		Use:   "construct",
		Short: "Run De Casteljau's construction step by step",
		Long: `Construct applies --steps construction steps (all of them by default)
at --ratio, printing every new layer, then undoes --back steps and prints
the resulting status.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, _, err := a.engine(cmd)
			if err != nil {
				return err
			}
			return runConstruct(cmd.OutOrStdout(), e, steps, back, partial)
		},
	}
	cmd.Flags().IntVar(&steps, "steps", -1, "number of steps to apply; negative means until completed")
	cmd.Flags().IntVar(&back, "back", 0, "number of steps to undo afterwards")
	cmd.Flags().BoolVar(&partial, "partial", false, "also print the curve traced from 0 to the ratio")
	return cmd
}

func formatPoints(pts []bezier.Point) string {
	var sb strings.Builder
	for i, p := range pts {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(p.String())
	}
	return sb.String()
}

func runConstruct(w io.Writer, e *bezier.Engine, steps, back int, partial bool) error {
	layers := e.ConstructionLayers()
	fmt.Fprintf(w, "level 0: %s\n", formatPoints(layers[0]))
	for i := 0; steps < 0 || i < steps; i++ {
		st, err := e.NextStep()
		if err != nil {
			return err
		}
		if st != bezier.StepApplied {
			if steps >= 0 {
				fmt.Fprintf(w, "step %d: %s\n", i+1, st)
			}
			break
		}
		layers = e.ConstructionLayers()
		fmt.Fprintf(w, "level %d: %s\n", len(layers)-1, formatPoints(layers[len(layers)-1]))
	}
	for i := range back {
		if st := e.PrevStep(); st != bezier.StepApplied {
			fmt.Fprintf(w, "undo %d: %s\n", i+1, st)
			break
		}
	}

	s := e.ConstructionStatus()
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintf(tw, "state\t%s\n", s.State)
	fmt.Fprintf(tw, "ratio\t%g\n", s.Ratio)
	fmt.Fprintf(tw, "level\t%d/%d\n", s.CurrentLevel, s.TotalLevels)
	fmt.Fprintf(tw, "remaining\t%d\n", s.RemainingSteps)
	fmt.Fprintf(tw, "points\t%d\n", s.ConstructionPoints)
	fmt.Fprintf(tw, "can undo\t%t\n", s.CanPrevStep)
	if p, ok := e.FinalPoint(); ok {
		fmt.Fprintf(tw, "final\t%s\n", p)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if partial {
		pts, err := e.PartialCurve(e.Ratio())
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "partial: %s\n", formatPoints(pts))
	}
	return nil
}
