// Command bezierctl analyzes Bézier curves from the command line.
//
// Control points come from a TOML, YAML or JSON config file, from repeated
// --point flags, or both (flags win). Every subcommand builds a
// [bezier.Engine] from the resulting configuration:
//
//	bezierctl eval -p 0,0 -p 100,0 -p 100,100 --t 0.25
//	bezierctl construct -c curve.toml --steps 2 --back 1
//	bezierctl profile -c curve.yaml --steps 20
//	bezierctl render -c curve.toml -o curve.png
//	bezierctl watch -c curve.toml
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"honnef.co/go/bezier"
)

// app holds the values of the persistent flags.
type app struct {
	configPath string
	logLevel   string
	points     []string
	origin     string
	t          float64
	ratio      float64
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "bezierctl",
		Short:         "Evaluate, analyze and construct Bézier curves",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setupLogging(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "config file (.toml, .yaml, .yml or .json)")
	pf.StringVar(&a.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringArrayVarP(&a.points, "point", "p", nil, "control point as x,y; repeat for every point")
	pf.StringVar(&a.origin, "origin", "", "origin of the vector decomposition as x,y (default: centroid)")
	pf.Float64Var(&a.t, "t", bezier.DefaultT, "analysis parameter in [0, 1]")
	pf.Float64Var(&a.ratio, "ratio", bezier.DefaultRatio, "De Casteljau interpolation ratio in [0, 1]")

	root.AddCommand(
		newEvalCmd(a),
		newConstructCmd(a),
		newProfileCmd(a),
		newRenderCmd(a),
		newWatchCmd(a),
	)
	return root
}

func (a *app) setupLogging(cmd *cobra.Command) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(a.logLevel)); err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	h := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	bezier.SetLogger(slog.New(h))
	return nil
}

// config loads the config file, if any, and applies flag overrides.
func (a *app) config(cmd *cobra.Command) (Config, error) {
	cfg, err := LoadConfig(a.configPath)
	if err != nil {
		return Config{}, err
	}
	flags := cmd.Flags()
	if len(a.points) > 0 {
		cfg.Points = cfg.Points[:0]
		for _, s := range a.points {
			p, err := parsePoint(s)
			if err != nil {
				return Config{}, fmt.Errorf("invalid --point: %w", err)
			}
			cfg.Points = append(cfg.Points, []float64{p.X, p.Y})
		}
	}
	if a.origin != "" {
		p, err := parsePoint(a.origin)
		if err != nil {
			return Config{}, fmt.Errorf("invalid --origin: %w", err)
		}
		cfg.Origin = []float64{p.X, p.Y}
	}
	if flags.Changed("t") {
		cfg.T = a.t
	}
	if flags.Changed("ratio") {
		cfg.Ratio = a.ratio
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// engine is config followed by Config.Engine.
func (a *app) engine(cmd *cobra.Command) (*bezier.Engine, Config, error) {
	cfg, err := a.config(cmd)
	if err != nil {
		return nil, Config{}, err
	}
	e, err := cfg.Engine()
	return e, cfg, err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "bezierctl:", err)
		os.Exit(1)
	}
}
