package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"honnef.co/go/bezier"
)

func newProfileCmd(a *app) *cobra.Command {
	var steps int
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Tabulate speed, acceleration, jerk and curvature along the curve",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, cfg, err := a.engine(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("steps") {
				steps = cfg.Steps
			}
			return writeProfile(cmd.OutOrStdout(), e, steps)
		},
	}
	cmd.Flags().IntVar(&steps, "steps", bezier.DefaultProfileSteps, "number of intervals")
	return cmd
}

func writeProfile(w io.Writer, e *bezier.Engine, steps int) error {
	prof, err := e.Profile(steps)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "t\tx\ty\tspeed\tacceleration\tjerk\tcurvature\tradius\t")
	for _, s := range prof {
		fmt.Fprintf(tw, "%.3f\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t\n",
			s.T, s.Point.X, s.Point.Y,
			s.Velocity.Magnitude, s.Acceleration.Magnitude, s.Jerk.Magnitude,
			s.Curvature, s.Radius)
	}
	return tw.Flush()
}
