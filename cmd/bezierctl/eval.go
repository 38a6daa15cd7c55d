package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"honnef.co/go/bezier"
)

func newEvalCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Print the point, derivatives, curvature and decomposition at t",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, _, err := a.engine(cmd)
			if err != nil {
				return err
			}
			return writeEval(cmd.OutOrStdout(), e, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of text")
	return cmd
}

type xy [2]float64

func pointXY(p bezier.Point) xy { return xy{p.X, p.Y} }

type derivativeReport struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Magnitude float64 `json:"magnitude"`
}

func newDerivativeReport(d bezier.DerivativeVector) derivativeReport {
	return derivativeReport{X: d.X, Y: d.Y, Magnitude: d.Magnitude}
}

// evalReport is the JSON form of a [bezier.Frame].
type evalReport struct {
	T            float64          `json:"t"`
	Point        xy               `json:"point"`
	Velocity     derivativeReport `json:"velocity"`
	Acceleration derivativeReport `json:"acceleration"`
	Jerk         derivativeReport `json:"jerk"`
	Curvature    float64          `json:"curvature"`
	Radius       float64          `json:"radius"`
	Center       xy               `json:"center"`
	CircleRadius float64          `json:"circle_radius"`
	Origin       xy               `json:"origin"`
	Weights      []float64        `json:"weights"`
	Vectors      []xy             `json:"vectors"`
}

func newEvalReport(f bezier.Frame) evalReport {
	r := evalReport{
		T:            f.T,
		Point:        pointXY(f.Point),
		Velocity:     newDerivativeReport(f.Velocity),
		Acceleration: newDerivativeReport(f.Acceleration),
		Jerk:         newDerivativeReport(f.Jerk),
		Curvature:    f.Curvature.Curvature,
		Radius:       f.Curvature.Radius,
		Center:       pointXY(f.Curvature.Center),
		CircleRadius: f.Circle.Radius,
		Origin:       pointXY(f.Origin),
		Weights:      f.Weights,
		Vectors:      make([]xy, len(f.Vectors)),
	}
	for i, v := range f.Vectors {
		r.Vectors[i] = xy{v.X, v.Y}
	}
	return r
}

func writeEval(w io.Writer, e *bezier.Engine, asJSON bool) error {
	f, err := e.Frame()
	if err != nil {
		return err
	}
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(newEvalReport(f))
	}

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintf(tw, "t\t%g\n", f.T)
	fmt.Fprintf(tw, "point\t%s\n", f.Point)
	fmt.Fprintf(tw, "velocity\t%s\n", f.Velocity)
	fmt.Fprintf(tw, "acceleration\t%s\n", f.Acceleration)
	fmt.Fprintf(tw, "jerk\t%s\n", f.Jerk)
	fmt.Fprintf(tw, "curvature\t%g\n", f.Curvature.Curvature)
	fmt.Fprintf(tw, "radius\t%g\n", f.Curvature.Radius)
	fmt.Fprintf(tw, "center\t%s\n", f.Curvature.Center)
	fmt.Fprintf(tw, "circle radius\t%g\n", f.Circle.Radius)
	fmt.Fprintf(tw, "origin\t%s\n", f.Origin)
	for i, wt := range f.Weights {
		fmt.Fprintf(tw, "w%d\t%g\t%s\n", i, wt, f.Vectors[i])
	}
	return tw.Flush()
}
