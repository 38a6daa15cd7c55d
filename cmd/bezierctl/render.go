package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/image/vector"

	"honnef.co/go/bezier"
)

func newRenderCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw the curve, its construction, osculating circle and vectors as PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, cfg, err := a.engine(cmd)
			if err != nil {
				return err
			}
			img, err := render(e, cfg)
			if err != nil {
				return err
			}
			if out == "-" {
				return png.Encode(cmd.OutOrStdout(), img)
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := png.Encode(f, img); err != nil {
				f.Close()
				return fmt.Errorf("writing %s: %w", out, err)
			}
			return f.Close()
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "curve.png", "output file, or - for stdout")
	return cmd
}

var (
	colorBackground   = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colorPolygon      = color.RGBA{0x99, 0x99, 0x99, 0xff}
	colorCurve        = color.RGBA{0x1f, 0x4e, 0xa8, 0xff}
	colorConstruction = color.RGBA{0xe0, 0x8a, 0x1e, 0xff}
	colorRatio        = color.RGBA{0xf2, 0xc6, 0x8c, 0xff}
	colorCircle       = color.RGBA{0x2e, 0x9e, 0x4f, 0xff}
	colorVector       = color.RGBA{0x8e, 0x44, 0xad, 0xff}
	colorPoint        = color.RGBA{0x00, 0x00, 0x00, 0xff}
	colorFinal        = color.RGBA{0xd0, 0x21, 0x21, 0xff}
)

// canvas rasterizes primitives given in curve space onto an RGBA image.
type canvas struct {
	img *image.RGBA
	ras *vector.Rasterizer
	aff bezier.Affine
}

func newCanvas(w, h int, aff bezier.Affine) *canvas {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(colorBackground), image.Point{}, draw.Src)
	ras := vector.NewRasterizer(w, h)
	ras.DrawOp = draw.Over
	return &canvas{img: img, ras: ras, aff: aff}
}

func (c *canvas) moveTo(p bezier.Point) { c.ras.MoveTo(float32(p.X), float32(p.Y)) }
func (c *canvas) lineTo(p bezier.Point) { c.ras.LineTo(float32(p.X), float32(p.Y)) }

// fill paints the accumulated path and starts a new one.
func (c *canvas) fill(col color.Color) {
	b := c.img.Bounds()
	c.ras.ClosePath()
	c.ras.Draw(c.img, b, image.NewUniform(col), image.Point{})
	c.ras.Reset(b.Dx(), b.Dy())
}

// line strokes a segment with the given width in pixels.
func (c *canvas) line(l bezier.Line, width float64, col color.Color) {
	pl := l.Transform(c.aff)
	if pl.Length() == 0 {
		return
	}
	q0, q1 := pl.P0, pl.P1
	n := q1.Sub(q0).Normalize().Turn90().Mul(width / 2)
	c.moveTo(q0.Translate(n))
	c.lineTo(q1.Translate(n))
	c.lineTo(q1.Translate(n.Negate()))
	c.lineTo(q0.Translate(n.Negate()))
	c.fill(col)
}

func (c *canvas) polyline(pts []bezier.Point, width float64, col color.Color) {
	for i := 1; i < len(pts); i++ {
		c.line(bezier.Line{P0: pts[i-1], P1: pts[i]}, width, col)
	}
}

// dot fills a disc with a radius in pixels.
func (c *canvas) dot(p bezier.Point, r float64, col color.Color) {
	disc := bezier.Circle{Center: p.Transform(c.aff), Radius: r}
	first := true
	for q := range disc.Points(16) {
		if first {
			c.moveTo(q)
			first = false
		} else {
			c.lineTo(q)
		}
	}
	c.fill(col)
}

// viewTransform maps everything render draws into the image, inside the
// margin: the curve and its control points, and the osculating circle and
// decomposition origin when they are drawn.
func viewTransform(e *bezier.Engine, frame bezier.Frame, rc RenderConfig) bezier.Affine {
	bounds, _ := e.Bounds()
	if rc.Circle {
		bounds = bounds.Union(frame.Circle.BoundingBox())
	}
	if rc.Vectors {
		bounds = bounds.UnionPoint(frame.Origin)
	}
	view := bezier.Rect{
		X0: rc.Margin,
		Y0: rc.Margin,
		X1: float64(rc.Width) - rc.Margin,
		Y1: float64(rc.Height) - rc.Margin,
	}
	return bezier.FitRect(bounds, view)
}

// render draws the engine's curve. With cfg.Render.Construction it runs the
// construction to completion first.
func render(e *bezier.Engine, cfg Config) (*image.RGBA, error) {
	rc := cfg.Render
	frame, err := e.Frame()
	if err != nil {
		return nil, err
	}
	c := newCanvas(rc.Width, rc.Height, viewTransform(e, frame, rc))

	pts := e.ControlPoints()
	c.polyline(pts, 1, colorPolygon)

	if rc.Construction {
		for {
			st, err := e.NextStep()
			if err != nil {
				return nil, err
			}
			if st != bezier.StepApplied {
				break
			}
		}
		segs, ratios := e.ConstructionLines()
		for _, l := range ratios {
			c.line(l, 1, colorRatio)
		}
		for _, l := range segs[len(pts)-1:] {
			c.line(l, 1, colorConstruction)
		}
	}

	curve, err := e.Polyline(cfg.Steps)
	if err != nil {
		return nil, err
	}
	c.polyline(curve, 2, colorCurve)

	if rc.Circle {
		circle := slices.Collect(frame.Circle.Points(128))
		c.polyline(circle, 1, colorCircle)
		c.dot(frame.Circle.Center, 2.5, colorCircle)
	}

	if rc.Vectors {
		chain, err := e.Chain()
		if err != nil {
			return nil, err
		}
		c.polyline(chain, 1.5, colorVector)
		c.dot(frame.Origin, 2.5, colorVector)
	}

	for _, p := range pts {
		c.dot(p, 3.5, colorPolygon)
	}
	if p, ok := e.FinalPoint(); ok {
		c.dot(p, 4, colorFinal)
	}
	c.dot(frame.Point, 3, colorPoint)
	return c.img, nil
}
