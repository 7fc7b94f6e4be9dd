// Package curve annotates function plots: it evaluates a scalar function on
// an axes' data space and places lines, markers, labels and arrows relative
// to the curve.
package curve

import (
	"math"

	"figkit/figure"
)

const defaultSamples = 100

// Curve binds a scalar function to the axes it is drawn on.
type Curve struct {
	ax *figure.Axes
	fn func(float64) float64
	n  int
}

// New returns a curve helper for fn on ax, sampling 100 points per plot.
func New(ax *figure.Axes, fn func(float64) float64) *Curve {
	return &Curve{ax: ax, fn: fn, n: defaultSamples}
}

// SetSamples overrides the number of sample points used by Plot.
func (c *Curve) SetSamples(n int) {
	if n < 2 {
		n = 2
	}
	c.n = n
}

// Points evaluates the function on n evenly spaced points over [min, max].
func (c *Curve) Points(min, max float64) (xs, ys []float64) {
	xs = make([]float64, c.n)
	ys = make([]float64, c.n)
	for i := 0; i < c.n; i++ {
		x := min + (max-min)*float64(i)/float64(c.n-1)
		xs[i] = x
		ys[i] = c.fn(x)
	}
	return xs, ys
}

// Plot draws the curve over [min, max] on the owning axes.
func (c *Curve) Plot(min, max float64, st figure.LineStyle) {
	xs, ys := c.Points(min, max)
	_ = c.ax.Plot(xs, ys, st)
}

// MarkAt places a marker on the curve at x.
func (c *Curve) MarkAt(x float64, st figure.MarkerStyle) {
	c.ax.Scatter(x, c.fn(x), st)
}

// Chord draws a straight line between the curve points at min and max. When
// label is non-empty, an annotation with an arrow is placed a fraction pos
// of the way along the line.
func (c *Curve) Chord(min, max, pos float64, label string, st figure.LineStyle) {
	yMin := c.fn(min)
	yMax := c.fn(max)
	_ = c.ax.Plot([]float64{min, max}, []float64{yMin, yMax}, st)

	if label == "" {
		return
	}
	xLabel := min + (max-min)*pos
	yLabel := yMin + (yMax-yMin)*pos
	c.ax.AnnotatePoint(label, xLabel, yLabel,
		figure.TextStyle{DX: -30, DY: -30, HAlign: figure.AlignRight, VAlign: figure.AlignMiddle},
		figure.ArrowStyle{ShrinkA: 4, ShrinkB: 2},
	)
}

// DropToXAxis draws a vertical line from the bottom of the view up to the
// curve at x. The y view range is left exactly as found. When label is
// non-empty it is placed a fraction pos up the line, just right of it.
func (c *Curve) DropToXAxis(x float64, label string, pos float64, st figure.LineStyle) {
	yLo, yHi := c.ax.YLim()
	curveY := c.fn(x)

	_ = c.ax.Plot([]float64{x, x}, []float64{yLo, curveY}, st)

	// Adding the line may move autoscaled limits; pin them back.
	c.ax.SetYLim(yLo, yHi)

	if label == "" {
		return
	}
	labelY := yLo + (curveY-yLo)*pos
	c.ax.Text(x, labelY, label, figure.TextStyle{DX: 5, VAlign: figure.AlignMiddle})
}

// DropToYAxis draws a horizontal line from the left of the view out to the
// curve point at x, restoring the x view range afterwards. The label sits a
// fraction pos along the line, just above it.
func (c *Curve) DropToYAxis(x float64, label string, pos float64, st figure.LineStyle) {
	xLo, xHi := c.ax.XLim()
	curveY := c.fn(x)

	_ = c.ax.Plot([]float64{xLo, x}, []float64{curveY, curveY}, st)

	c.ax.SetXLim(xLo, xHi)

	if label == "" {
		return
	}
	labelX := xLo + (x-xLo)*pos
	c.ax.Text(labelX, curveY, label, figure.TextStyle{DY: -5, HAlign: figure.AlignCenter})
}

// CurvedArrow draws a curved arrow between the curve points at x0 and x1,
// bowing with a curvature radius of 0.4*scale and pulled back slightly from
// both endpoints.
func (c *Curve) CurvedArrow(x0, x1, scale float64, st figure.ArrowStyle) {
	if math.IsNaN(scale) || scale == 0 {
		scale = 1
	}
	if st.Curvature == 0 {
		st.Curvature = 0.4 * scale
	}
	if st.ShrinkA == 0 {
		st.ShrinkA = 10
	}
	if st.ShrinkB == 0 {
		st.ShrinkB = 10
	}
	c.ax.Arrow(x0, c.fn(x0), x1, c.fn(x1), st)
}
