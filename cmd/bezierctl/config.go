package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"honnef.co/go/bezier"
)

// Config is the configuration shared by all subcommands. Points are
// [x, y] pairs so that config files can write them as plain arrays.
type Config struct {
	Points [][]float64 `toml:"points" yaml:"points" json:"points"`
	// Origin of the vector decomposition; empty means the centroid.
	Origin []float64 `toml:"origin" yaml:"origin" json:"origin"`
	T      float64   `toml:"t" yaml:"t" json:"t"`
	Ratio  float64   `toml:"ratio" yaml:"ratio" json:"ratio"`
	// Steps is the number of intervals for profiles and partial curves.
	Steps     int          `toml:"steps" yaml:"steps" json:"steps"`
	MinRadius float64      `toml:"min_radius" yaml:"min_radius" json:"min_radius"`
	MaxRadius float64      `toml:"max_radius" yaml:"max_radius" json:"max_radius"`
	Render    RenderConfig `toml:"render" yaml:"render" json:"render"`
}

// RenderConfig controls the render subcommand.
type RenderConfig struct {
	Width  int     `toml:"width" yaml:"width" json:"width"`
	Height int     `toml:"height" yaml:"height" json:"height"`
	Margin float64 `toml:"margin" yaml:"margin" json:"margin"`
	// Construction draws the De Casteljau layers built so far; the render
	// subcommand builds all of them at Ratio.
	Construction bool `toml:"construction" yaml:"construction" json:"construction"`
	Circle       bool `toml:"circle" yaml:"circle" json:"circle"`
	Vectors      bool `toml:"vectors" yaml:"vectors" json:"vectors"`
}

// DefaultConfig returns the configuration used for keys that a config file
// doesn't set.
func DefaultConfig() Config {
	return Config{
		T:         bezier.DefaultT,
		Ratio:     bezier.DefaultRatio,
		Steps:     bezier.DefaultProfileSteps,
		MinRadius: bezier.DefaultMinDisplayRadius,
		MaxRadius: bezier.DefaultMaxDisplayRadius,
		Render: RenderConfig{
			Width:        800,
			Height:       600,
			Margin:       40,
			Construction: true,
			Circle:       true,
			Vectors:      true,
		},
	}
}

// LoadConfig reads the config file at path on top of DefaultConfig. The
// format is chosen by the file extension. An empty path yields the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".json":
		err = json.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("config %s: unsupported format %q", path, ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration. It doesn't check parameter ranges,
// which the engine clamps.
func (c Config) Validate() error {
	if len(c.Points) < 2 {
		return fmt.Errorf("%w: have %d, need 2; use --point or a config file",
			bezier.ErrInsufficientPoints, len(c.Points))
	}
	for i, p := range c.Points {
		if len(p) != 2 {
			return fmt.Errorf("point %d: want 2 coordinates, have %d", i, len(p))
		}
		if !finite(p[0]) || !finite(p[1]) {
			return fmt.Errorf("point %d: coordinates must be finite", i)
		}
	}
	if len(c.Origin) != 0 && len(c.Origin) != 2 {
		return fmt.Errorf("origin: want 2 coordinates, have %d", len(c.Origin))
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("render: invalid size %dx%d", c.Render.Width, c.Render.Height)
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ControlPoints returns the configured points. It assumes a valid config.
func (c Config) ControlPoints() []bezier.Point {
	pts := make([]bezier.Point, len(c.Points))
	for i, p := range c.Points {
		pts[i] = bezier.Pt(p[0], p[1])
	}
	return pts
}

// Engine returns an engine set up according to the configuration.
func (c Config) Engine() (*bezier.Engine, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	e := bezier.NewEngine(bezier.EngineOptions{
		Constructor:      bezier.ConstructorOptions{PartialSteps: c.Steps},
		MaxDisplayRadius: c.MaxRadius,
		MinDisplayRadius: c.MinRadius,
	})
	e.SetControlPoints(c.ControlPoints())
	e.SetT(c.T)
	e.SetRatio(c.Ratio)
	if len(c.Origin) == 2 {
		e.SetOrigin(bezier.Pt(c.Origin[0], c.Origin[1]))
	}
	return e, nil
}

// parsePoint parses "x,y".
func parsePoint(s string) (bezier.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return bezier.Point{}, fmt.Errorf("%q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return bezier.Point{}, err
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return bezier.Point{}, err
	}
	if !finite(x) || !finite(y) {
		return bezier.Point{}, fmt.Errorf("%q: coordinates must be finite", s)
	}
	return bezier.Pt(x, y), nil
}
