package curve_test

import (
	"math"
	"testing"

	"figkit/curve"
	"figkit/figure"
)

func newAxes(t *testing.T) *figure.Axes {
	t.Helper()
	_, axs, err := figure.NewGrid(1, figure.GridConfig{AxesHeight: 96})
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	return axs[0]
}

func TestPoints(t *testing.T) {
	ax := newAxes(t)
	c := curve.New(ax, func(x float64) float64 { return x * x })
	c.SetSamples(5)

	xs, ys := c.Points(0, 4)
	if len(xs) != 5 || len(ys) != 5 {
		t.Fatalf("points=%d,%d", len(xs), len(ys))
	}
	if xs[0] != 0 || xs[4] != 4 {
		t.Fatalf("endpoints %v..%v", xs[0], xs[4])
	}
	if math.Abs(xs[2]-2) > 1e-12 {
		t.Fatalf("midpoint x=%v", xs[2])
	}
	if math.Abs(ys[4]-16) > 1e-12 {
		t.Fatalf("f(4)=%v", ys[4])
	}
}

func TestPlotQueuesAndScales(t *testing.T) {
	ax := newAxes(t)
	c := curve.New(ax, math.Sin)
	c.Plot(0, 2*math.Pi, figure.LineStyle{})

	if ax.Marks() != 1 {
		t.Fatalf("marks=%d", ax.Marks())
	}
	ylo, yhi := ax.YLim()
	if !(ylo < -1 && yhi > 1) {
		t.Fatalf("ylim=%v,%v", ylo, yhi)
	}
}

func TestChord(t *testing.T) {
	ax := newAxes(t)
	c := curve.New(ax, func(x float64) float64 { return x })

	// Without a label only the chord line is queued.
	c.Chord(0, 1, 0.5, "", figure.LineStyle{})
	if ax.Marks() != 1 {
		t.Fatalf("marks without label=%d", ax.Marks())
	}

	// With a label an annotation joins it.
	c.Chord(0, 1, 0.5, "secant", figure.LineStyle{})
	if ax.Marks() != 3 {
		t.Fatalf("marks with label=%d", ax.Marks())
	}
}

func TestDropToXAxisKeepsYView(t *testing.T) {
	ax := newAxes(t)
	c := curve.New(ax, func(x float64) float64 { return x * x })
	c.Plot(-2, 2, figure.LineStyle{})

	ylo, yhi := ax.YLim()
	c.DropToXAxis(1, "x0", 0.5, figure.LineStyle{})
	ylo2, yhi2 := ax.YLim()
	if ylo2 != ylo || yhi2 != yhi {
		t.Fatalf("y view moved: %v,%v -> %v,%v", ylo, yhi, ylo2, yhi2)
	}
	if ax.Marks() != 3 {
		t.Fatalf("marks=%d", ax.Marks())
	}
}

func TestDropToYAxisKeepsXView(t *testing.T) {
	ax := newAxes(t)
	ax.SetXLim(-3, 3)
	c := curve.New(ax, math.Exp)
	c.Plot(-3, 3, figure.LineStyle{})

	c.DropToYAxis(2, "f(x0)", 0.5, figure.LineStyle{})
	xlo, xhi := ax.XLim()
	if xlo != -3 || xhi != 3 {
		t.Fatalf("x view moved: %v,%v", xlo, xhi)
	}
}

func TestCurvedArrowRenders(t *testing.T) {
	fig, axs, err := figure.NewGrid(1, figure.GridConfig{AxesHeight: 96})
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	c := curve.New(axs[0], math.Sin)
	c.Plot(0, 2*math.Pi, figure.LineStyle{})
	c.MarkAt(math.Pi/2, figure.MarkerStyle{})
	c.CurvedArrow(1, 4, 1, figure.ArrowStyle{})

	if axs[0].Marks() != 3 {
		t.Fatalf("marks=%d", axs[0].Marks())
	}
	if err := fig.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
}
