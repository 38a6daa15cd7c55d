package bezier_test

import (
	"fmt"

	"honnef.co/go/bezier"
)

func ExampleEvaluator() {
	ev := bezier.NewEvaluator([]bezier.Point{
		bezier.Pt(0, 0),
		bezier.Pt(100, 0),
		bezier.Pt(100, 100),
	})
	p, _ := ev.Point(0.5)
	v, _ := ev.Velocity(0.5)
	a, _ := ev.Acceleration(0.5)
	fmt.Println("point:", p)
	fmt.Printf("velocity: (%g, %g), speed %.3f\n", v.X, v.Y, v.Magnitude)
	fmt.Printf("acceleration: (%g, %g)\n", a.X, a.Y)
	// Output:
	// point: (75, 25)
	// velocity: (100, 100), speed 141.421
	// acceleration: (-200, 200)
}

func ExampleAnalyzer_OsculatingCircle() {
	a := bezier.NewAnalyzer([]bezier.Point{
		bezier.Pt(0, 0),
		bezier.Pt(100, 0),
		bezier.Pt(100, 100),
	})
	k, _ := a.Curvature(0.5)
	c, _ := a.OsculatingCircle(0.5)
	fmt.Printf("curvature %.5f\n", k)
	fmt.Printf("center (%.1f, %.1f), radius %.2f\n", c.Center.X, c.Center.Y, c.Radius)
	// Output:
	// curvature 0.01414
	// center (25.0, 75.0), radius 70.71
}

func ExampleConstructor() {
	c := bezier.NewConstructor([]bezier.Point{
		bezier.Pt(0, 0),
		bezier.Pt(100, 0),
		bezier.Pt(100, 100),
	}, bezier.ConstructorOptions{})
	for {
		st, err := c.NextStep()
		if err != nil {
			panic(err)
		}
		if st == bezier.StepAlreadyCompleted {
			break
		}
		fmt.Println(c.State(), c.Layer(c.Level()))
	}
	final, _ := c.FinalPoint()
	fmt.Println("final point:", final)

	c.PrevStep()
	fmt.Println(c.State(), c.Status().RemainingSteps)
	// Output:
	// in progress [(50, 0) (100, 50)]
	// completed [(75, 25)]
	// final point: (75, 25)
	// in progress 1
}

func ExampleDecomposer() {
	d := bezier.NewDecomposer([]bezier.Point{
		bezier.Pt(0, 0),
		bezier.Pt(100, 0),
		bezier.Pt(100, 100),
	})
	w, _ := d.Weights(0.5)
	chain, _ := d.Chain(bezier.Pt(0, 0), 0.5)
	fmt.Println(w)
	fmt.Println(chain)
	// Output:
	// [0.25 0.5 0.25]
	// [(0, 0) (0, 0) (50, 0) (75, 25)]
}
