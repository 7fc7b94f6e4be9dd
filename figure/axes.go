package figure

import (
	"fmt"
	"math"
)

type markKind uint8

const (
	markLine markKind = iota
	markMarker
	markVLine
	markHLine
	markText
	markAnnotation
	markArrow
)

// mark is one queued drawing operation. Marks draw in insertion order when
// the figure renders, so later calls paint over earlier ones; standalone
// arrows are the exception and paint after everything else.
type mark struct {
	kind           markKind
	xs, ys         []float64
	x0, y0, x1, y1 float64
	label          string
	line           LineStyle
	marker         MarkerStyle
	text           TextStyle
	arrow          ArrowStyle
	withArrow      bool
	frac           bool // x0/y0 are axes fractions, not data coordinates
}

// Axes is one cell of a figure grid: a framed data-space viewport plus the
// marks queued on it.
type Axes struct {
	fig        *Figure
	row, col   int
	rows, cols int

	cellX, cellY, cellW, cellH int16

	xMin, xMax float64
	yMin, yMax float64
	xAuto      bool
	yAuto      bool

	haveData                               bool
	dataXMin, dataXMax, dataYMin, dataYMax float64

	frameOff       bool
	xLabel, yLabel string

	marks []mark
}

// Row and Col report the axes' position in the grid.
func (a *Axes) Row() int { return a.row }
func (a *Axes) Col() int { return a.col }

// SetXLim pins the visible x range, disabling x autoscale.
func (a *Axes) SetXLim(min, max float64) {
	a.xMin, a.xMax = min, max
	a.xAuto = false
}

// SetYLim pins the visible y range, disabling y autoscale.
func (a *Axes) SetYLim(min, max float64) {
	a.yMin, a.yMax = min, max
	a.yAuto = false
}

// XLim reports the effective visible x range. While autoscaling it is
// derived from the queued data with a small pad.
func (a *Axes) XLim() (min, max float64) {
	min, max, _, _ = a.viewRanges()
	return min, max
}

// YLim reports the effective visible y range.
func (a *Axes) YLim() (min, max float64) {
	_, _, min, max = a.viewRanges()
	return min, max
}

func (a *Axes) viewRanges() (xlo, xhi, ylo, yhi float64) {
	xlo, xhi = a.xMin, a.xMax
	ylo, yhi = a.yMin, a.yMax
	if !a.haveData {
		return xlo, xhi, ylo, yhi
	}
	if a.xAuto {
		xlo, xhi = padRange(a.dataXMin, a.dataXMax)
	}
	if a.yAuto {
		ylo, yhi = padRange(a.dataYMin, a.dataYMax)
	}
	return xlo, xhi, ylo, yhi
}

// padRange widens a data interval by 5% per side so curves do not touch the
// frame. Degenerate intervals get a unit pad.
func padRange(lo, hi float64) (float64, float64) {
	if hi < lo {
		lo, hi = hi, lo
	}
	span := hi - lo
	if span == 0 || math.IsNaN(span) || math.IsInf(span, 0) {
		return lo - 1, hi + 1
	}
	pad := span * 0.05
	return lo - pad, hi + pad
}

func (a *Axes) addBounds(x, y float64) {
	if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
		return
	}
	if !a.haveData {
		a.haveData = true
		a.dataXMin, a.dataXMax = x, x
		a.dataYMin, a.dataYMax = y, y
		return
	}
	if x < a.dataXMin {
		a.dataXMin = x
	}
	if x > a.dataXMax {
		a.dataXMax = x
	}
	if y < a.dataYMin {
		a.dataYMin = y
	}
	if y > a.dataYMax {
		a.dataYMax = y
	}
}

// HideAxisLabels removes the frame, grid, ticks and tick labels. Queued
// marks still draw; blank grid cells use this with no marks at all.
func (a *Axes) HideAxisLabels() {
	a.frameOff = true
}

// Annotate places label at the default sub-figure lettering position, the
// top-left corner of the axes (fraction 0.05, 0.90).
func (a *Axes) Annotate(label string, st TextStyle) {
	a.AnnotateAt(label, 0.05, 0.90, st)
}

// AnnotateAt places label at an axes-fraction position: (0,0) is the bottom
// left of the plot area, (1,1) the top right.
func (a *Axes) AnnotateAt(label string, fx, fy float64, st TextStyle) {
	if label == "" {
		return
	}
	a.marks = append(a.marks, mark{
		kind:  markText,
		x0:    fx,
		y0:    fy,
		label: label,
		text:  st,
		frac:  true,
	})
}

// Plot queues a polyline through (xs[i], ys[i]) in data space. NaN or
// infinite points break the line into separate segments.
func (a *Axes) Plot(xs, ys []float64, st LineStyle) error {
	if len(xs) != len(ys) {
		return fmt.Errorf("figure: plot length mismatch %d != %d", len(xs), len(ys))
	}
	if len(xs) == 0 {
		return nil
	}
	cxs := make([]float64, len(xs))
	cys := make([]float64, len(ys))
	copy(cxs, xs)
	copy(cys, ys)
	for i := range cxs {
		a.addBounds(cxs[i], cys[i])
	}
	a.marks = append(a.marks, mark{kind: markLine, xs: cxs, ys: cys, line: st})
	return nil
}

// Scatter queues a filled marker at (x, y) in data space.
func (a *Axes) Scatter(x, y float64, st MarkerStyle) {
	a.addBounds(x, y)
	a.marks = append(a.marks, mark{kind: markMarker, x0: x, y0: y, marker: st})
}

// VLine queues a vertical line spanning the visible y range at x.
func (a *Axes) VLine(x float64, st LineStyle) {
	a.marks = append(a.marks, mark{kind: markVLine, x0: x, line: st})
}

// HLine queues a horizontal line spanning the visible x range at y.
func (a *Axes) HLine(y float64, st LineStyle) {
	a.marks = append(a.marks, mark{kind: markHLine, y0: y, line: st})
}

// Text queues label anchored at the data-space point (x, y), offset by the
// style's pixel offsets.
func (a *Axes) Text(x, y float64, label string, st TextStyle) {
	if label == "" {
		return
	}
	a.marks = append(a.marks, mark{kind: markText, x0: x, y0: y, label: label, text: st})
}

// AnnotatePoint queues label offset from the data point (x, y) by the text
// style's pixel offsets, with an arrow from the label to the point.
func (a *Axes) AnnotatePoint(label string, x, y float64, st TextStyle, as ArrowStyle) {
	if label == "" {
		return
	}
	a.marks = append(a.marks, mark{
		kind:      markAnnotation,
		x0:        x,
		y0:        y,
		label:     label,
		text:      st,
		arrow:     as,
		withArrow: true,
	})
}

// Arrow queues an arrow from (x0, y0) to (x1, y1) in data space. A nonzero
// style curvature bows the shaft into an arc. Arrows render after all other
// marks, so they stay visible over the curves they point at.
func (a *Axes) Arrow(x0, y0, x1, y1 float64, st ArrowStyle) {
	a.marks = append(a.marks, mark{kind: markArrow, x0: x0, y0: y0, x1: x1, y1: y1, arrow: st})
}

// Marks reports how many drawing operations are queued.
func (a *Axes) Marks() int { return len(a.marks) }
