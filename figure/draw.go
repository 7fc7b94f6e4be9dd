package figure

// Rendering internals: frames, grids, ticks and the queued-mark painters.

import (
	"fmt"
	"image/color"
	"math"

	"figkit/units"

	"tinygo.org/x/tinydraw"
	"tinygo.org/x/tinyfont"
)

func fillRect(d Display, x, y, w, h int16, c color.RGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	_ = tinydraw.FilledRectangle(d, x, y, w, h, c)
}

// plotRect is the inner data viewport of an axes cell, after tick-label and
// axis-label margins.
func (a *Axes) plotRect() (x, y, w, h int16) {
	f := a.fig
	left := int16(2)
	bottom := int16(2)
	top := int16(2)
	right := int16(2)
	if !a.frameOff {
		left = 7 * f.fontW
		bottom = f.fontH + 2
		if a.yLabel != "" {
			left += f.fontH + 2
		}
		if a.xLabel != "" {
			bottom += f.fontH + 2
		}
	}
	x = a.cellX + left
	y = a.cellY + top
	w = a.cellW - left - right
	h = a.cellH - top - bottom
	return x, y, w, h
}

func (a *Axes) render() {
	px, py, pw, ph := a.plotRect()
	if pw <= 2 || ph <= 2 {
		return
	}

	xlo, xhi, ylo, yhi := a.viewRanges()
	if !(xlo < xhi) || !(ylo < yhi) {
		return
	}

	if !a.frameOff {
		fillRect(a.fig.d, px, py, pw, ph, colorPanelBG)
		a.drawGrid(px, py, pw, ph, xlo, xhi, ylo, yhi)
		a.drawZeroAxes(px, py, pw, ph, xlo, xhi, ylo, yhi)
		_ = tinydraw.Rectangle(a.fig.d, px, py, pw, ph, colorAxis)
		a.drawEdgeLabels(px, py, pw, ph)
	}

	// Marks paint in insertion order, except standalone arrows, which paint
	// in a second pass so they land over the curves they point at.
	clip := newClipDisplay(a.fig.d, px, py, pw, ph)
	for i := range a.marks {
		if a.marks[i].kind != markArrow {
			a.drawMark(&a.marks[i], clip, px, py, pw, ph, xlo, xhi, ylo, yhi)
		}
	}
	for i := range a.marks {
		if a.marks[i].kind == markArrow {
			a.drawMark(&a.marks[i], clip, px, py, pw, ph, xlo, xhi, ylo, yhi)
		}
	}
}

func (a *Axes) drawGrid(px, py, pw, ph int16, xlo, xhi, ylo, yhi float64) {
	xPxPerUnit := float64(pw-1) / (xhi - xlo)
	yPxPerUnit := float64(ph-1) / (yhi - ylo)
	if xPxPerUnit <= 0 || yPxPerUnit <= 0 || math.IsInf(xPxPerUnit, 0) || math.IsInf(yPxPerUnit, 0) {
		return
	}

	stepX := niceStep(40 / xPxPerUnit)
	stepY := niceStep(28 / yPxPerUnit)

	// Ticks iterate by index, not by accumulating the step: at large view
	// magnitudes the step can fall below the ULP of the coordinate, and an
	// accumulating loop would stop advancing and never terminate. Offsets
	// from the view origin keep their full precision regardless.
	xSpan := xhi - xlo
	xOff0 := math.Ceil(xlo/stepX)*stepX - xlo
	for i, n := 0, int(xSpan/stepX)+1; i <= n; i++ {
		off := xOff0 + float64(i)*stepX
		if off < 0 {
			continue
		}
		if off > xSpan {
			break
		}
		ix := int16(off / xSpan * float64(pw-1))
		for y := int16(0); y < ph; y++ {
			a.fig.d.SetPixel(px+ix, py+y, colorGrid)
		}
		a.drawXTickLabel(px+ix, py+ph+2, fmtTick(xlo+off))
	}

	ySpan := yhi - ylo
	yOff0 := math.Ceil(ylo/stepY)*stepY - ylo
	for i, n := 0, int(ySpan/stepY)+1; i <= n; i++ {
		off := yOff0 + float64(i)*stepY
		if off < 0 {
			continue
		}
		if off > ySpan {
			break
		}
		iy := int16((ySpan - off) / ySpan * float64(ph-1))
		for x := int16(0); x < pw; x++ {
			a.fig.d.SetPixel(px+x, py+iy, colorGrid)
		}
		a.drawYTickLabel(px-2, py+iy, fmtTick(ylo+off))
	}
}

func (a *Axes) drawZeroAxes(px, py, pw, ph int16, xlo, xhi, ylo, yhi float64) {
	if xlo <= 0 && xhi >= 0 {
		x := int16((0 - xlo) / (xhi - xlo) * float64(pw-1))
		for y := int16(0); y < ph; y++ {
			a.fig.d.SetPixel(px+x, py+y, colorAxis)
		}
	}
	if ylo <= 0 && yhi >= 0 {
		y := int16((yhi - 0) / (yhi - ylo) * float64(ph-1))
		for x := int16(0); x < pw; x++ {
			a.fig.d.SetPixel(px+x, py+y, colorAxis)
		}
	}
}

// drawEdgeLabels draws the per-axes x/y axis labels assigned by SetLabels:
// the x label centered under the plot, the y label rotated along the left.
func (a *Axes) drawEdgeLabels(px, py, pw, ph int16) {
	f := a.fig
	if a.xLabel != "" {
		_, outbox := tinyfont.LineWidth(f.font, a.xLabel)
		x := px + pw/2 - int16(outbox)/2
		if x < a.cellX {
			x = a.cellX
		}
		y := a.cellY + a.cellH - 2
		tinyfont.WriteLine(f.d, f.font, x, y, a.xLabel, colorFG)
	}
	if a.yLabel != "" {
		_, outbox := tinyfont.LineWidth(f.font, a.yLabel)
		x := a.cellX + f.fontBase
		y := py + ph/2 + int16(outbox)/2
		if y > a.cellY+a.cellH {
			y = a.cellY + a.cellH
		}
		tinyfont.WriteLineRotated(f.d, f.font, x, y, a.yLabel, colorFG, tinyfont.ROTATION_270)
	}
}

func (a *Axes) drawXTickLabel(cx, top int16, s string) {
	if s == "" {
		return
	}
	f := a.fig
	_, outbox := tinyfont.LineWidth(f.font, s)
	x := cx - int16(outbox)/2
	if x < a.cellX {
		x = a.cellX
	}
	if x+int16(outbox) > a.cellX+a.cellW {
		x = a.cellX + a.cellW - int16(outbox)
	}
	tinyfont.WriteLine(f.d, f.font, x, top+f.fontBase, s, colorDim)
}

func (a *Axes) drawYTickLabel(rightEdge, cy int16, s string) {
	if s == "" {
		return
	}
	f := a.fig
	_, outbox := tinyfont.LineWidth(f.font, s)
	x := rightEdge - int16(outbox)
	if x < a.cellX {
		x = a.cellX
	}
	tinyfont.WriteLine(f.d, f.font, x, cy+f.fontBase/2, s, colorDim)
}

// fmtTick renders a tick value in the kit's SI convention: scaled mantissa
// immediately followed by the prefix symbol ("250m", "1.5k", "0").
func fmtTick(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	if math.Abs(v) < 1e-12 {
		return "0"
	}
	m, p := units.Split(v, 3)
	return fmt.Sprintf("%.3g", m) + p
}

func (a *Axes) drawMark(m *mark, d Display, px, py, pw, ph int16, xlo, xhi, ylo, yhi float64) {
	toPx := func(x, y float64) (float64, float64) {
		return (x - xlo) / (xhi - xlo) * float64(pw-1),
			(yhi - y) / (yhi - ylo) * float64(ph-1)
	}

	switch m.kind {
	case markLine:
		a.drawPolyline(d, m.xs, m.ys, m.line.withDefaults(), px, py, pw, ph, toPx)

	case markMarker:
		st := m.marker.withDefaults()
		x, y := toPx(m.x0, m.y0)
		if x < 0 || x > float64(pw-1) || y < 0 || y > float64(ph-1) {
			return
		}
		tinydraw.FilledCircle(d, px+roundInt16(x), py+roundInt16(y), st.Radius, st.Color)

	case markVLine:
		st := m.line.withDefaults()
		x, _ := toPx(m.x0, ylo)
		if x < 0 || x > float64(pw-1) {
			return
		}
		a.drawThickSegment(d, px+roundInt16(x), py, px+roundInt16(x), py+ph-1, st)

	case markHLine:
		st := m.line.withDefaults()
		_, y := toPx(xlo, m.y0)
		if y < 0 || y > float64(ph-1) {
			return
		}
		a.drawThickSegment(d, px, py+roundInt16(y), px+pw-1, py+roundInt16(y), st)

	case markText:
		x, y := m.x0, m.y0
		var fx, fy float64
		if m.frac {
			fx = x * float64(pw-1)
			fy = (1 - y) * float64(ph-1)
		} else {
			fx, fy = toPx(x, y)
		}
		a.drawTextPx(d, px+roundInt16(fx), py+roundInt16(fy), m.label, m.text.withDefaults())

	case markAnnotation:
		x, y := toPx(m.x0, m.y0)
		st := m.text.withDefaults()
		tx := px + roundInt16(x)
		ty := py + roundInt16(y)
		a.drawTextPx(d, tx, ty, m.label, st)
		as := m.arrow.withDefaults()
		a.drawArrowPx(
			d,
			float64(tx+st.DX), float64(ty+st.DY),
			float64(tx), float64(ty),
			as, px, py, pw, ph,
		)

	case markArrow:
		x0, y0 := toPx(m.x0, m.y0)
		x1, y1 := toPx(m.x1, m.y1)
		a.drawArrowPx(
			d,
			float64(px)+x0, float64(py)+y0,
			float64(px)+x1, float64(py)+y1,
			m.arrow.withDefaults(), px, py, pw, ph,
		)
	}
}

func (a *Axes) drawPolyline(d Display, xs, ys []float64, st LineStyle, px, py, pw, ph int16, toPx func(x, y float64) (float64, float64)) {
	prevOK := false
	var prevX, prevY float64
	xMin := 0.0
	yMin := 0.0
	xMax := float64(pw - 1)
	yMax := float64(ph - 1)
	for i := range xs {
		x := xs[i]
		y := ys[i]
		if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
			prevOK = false
			continue
		}

		curX, curY := toPx(x, y)
		if prevOK {
			cx0, cy0, cx1, cy1, ok := clipLineToRect(prevX, prevY, curX, curY, xMin, yMin, xMax, yMax)
			if ok {
				a.drawThickSegment(
					d,
					px+roundInt16(cx0),
					py+roundInt16(cy0),
					px+roundInt16(cx1),
					py+roundInt16(cy1),
					st,
				)
			}
		} else if curX >= xMin && curX <= xMax && curY >= yMin && curY <= yMax {
			d.SetPixel(px+roundInt16(curX), py+roundInt16(curY), st.Color)
		}
		prevOK = true
		prevX = curX
		prevY = curY
	}
}

// drawThickSegment draws one clipped segment, widening lines above 1px by
// repeating the stroke at perpendicular-ish integer offsets.
func (a *Axes) drawThickSegment(d Display, x0, y0, x1, y1 int16, st LineStyle) {
	if st.Width <= 1 {
		tinydraw.Line(d, x0, y0, x1, y1, st.Color)
		return
	}
	steep := abs16(y1-y0) > abs16(x1-x0)
	for i := int16(0); i < st.Width; i++ {
		off := i - st.Width/2
		if steep {
			tinydraw.Line(d, x0+off, y0, x1+off, y1, st.Color)
		} else {
			tinydraw.Line(d, x0, y0+off, x1, y1+off, st.Color)
		}
	}
}

// drawArrowPx draws an arrow between two pixel-space points, clipped to the
// plot rect. A nonzero curvature bows the shaft along a quadratic arc.
func (a *Axes) drawArrowPx(d Display, x0, y0, x1, y1 float64, st ArrowStyle, px, py, pw, ph int16) {
	dx := x1 - x0
	dy := y1 - y0
	dist := math.Hypot(dx, dy)
	if dist < 1 {
		return
	}
	ux := dx / dist
	uy := dy / dist

	// Pull the endpoints in before bending so shrink is measured along the
	// chord, like the patch the style imitates.
	x0 += ux * float64(st.ShrinkA)
	y0 += uy * float64(st.ShrinkA)
	x1 -= ux * float64(st.ShrinkB)
	y1 -= uy * float64(st.ShrinkB)
	dx = x1 - x0
	dy = y1 - y0
	dist = math.Hypot(dx, dy)
	if dist < 1 {
		return
	}

	line := LineStyle{Color: st.Color, Width: st.Width}
	clip := func(ax, ay, bx, by float64) {
		cx0, cy0, cx1, cy1, ok := clipLineToRect(
			ax-float64(px), ay-float64(py), bx-float64(px), by-float64(py),
			0, 0, float64(pw-1), float64(ph-1),
		)
		if !ok {
			return
		}
		a.drawThickSegment(
			d,
			px+roundInt16(cx0), py+roundInt16(cy0),
			px+roundInt16(cx1), py+roundInt16(cy1),
			line,
		)
	}

	// Direction of the final segment, for aiming the head.
	tipDX, tipDY := dx, dy

	if st.Curvature == 0 {
		clip(x0, y0, x1, y1)
	} else {
		// Quadratic arc: control point offset perpendicular to the chord.
		mx := (x0 + x1) / 2
		my := (y0 + y1) / 2
		nx := -dy / dist
		ny := dx / dist
		cx := mx + nx*st.Curvature*dist
		cy := my + ny*st.Curvature*dist

		const segs = 24
		prevX, prevY := x0, y0
		for i := 1; i <= segs; i++ {
			t := float64(i) / segs
			omt := 1 - t
			bx := omt*omt*x0 + 2*omt*t*cx + t*t*x1
			by := omt*omt*y0 + 2*omt*t*cy + t*t*y1
			clip(prevX, prevY, bx, by)
			if i == segs {
				tipDX = bx - prevX
				tipDY = by - prevY
			}
			prevX, prevY = bx, by
		}
	}

	a.drawArrowHead(d, x1, y1, tipDX, tipDY, st, px, py, pw, ph)
}

func (a *Axes) drawArrowHead(d Display, tipX, tipY, dirX, dirY float64, st ArrowStyle, px, py, pw, ph int16) {
	n := math.Hypot(dirX, dirY)
	if n == 0 {
		return
	}
	ux := dirX / n
	uy := dirY / n

	baseX := tipX - ux*float64(st.HeadLength)
	baseY := tipY - uy*float64(st.HeadLength)
	halfW := float64(st.HeadWidth) / 2
	leftX := baseX - uy*halfW
	leftY := baseY + ux*halfW
	rightX := baseX + uy*halfW
	rightY := baseY - ux*halfW

	inRect := func(x, y float64) bool {
		return x >= float64(px) && x <= float64(px+pw-1) &&
			y >= float64(py) && y <= float64(py+ph-1)
	}
	if !inRect(tipX, tipY) || !inRect(leftX, leftY) || !inRect(rightX, rightY) {
		return
	}
	tinydraw.FilledTriangle(d,
		roundInt16(tipX), roundInt16(tipY),
		roundInt16(leftX), roundInt16(leftY),
		roundInt16(rightX), roundInt16(rightY),
		st.Color,
	)
}

func (a *Axes) drawTextPx(d Display, x, y int16, s string, st TextStyle) {
	f := a.fig
	_, outbox := tinyfont.LineWidth(f.font, s)
	w := int16(outbox)

	x += st.DX
	y += st.DY

	switch st.HAlign {
	case AlignCenter:
		x -= w / 2
	case AlignRight:
		x -= w
	}
	switch st.VAlign {
	case AlignMiddle:
		y += f.fontBase / 2
	case AlignTop:
		y += f.fontBase
	}

	tinyfont.WriteLine(d, f.font, x, y, s, st.Color)
}

// niceStep picks a 1/2/5-series tick step close to the raw spacing.
func niceStep(raw float64) float64 {
	if raw <= 0 || math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 1
	}
	pow := math.Pow(10, math.Floor(math.Log10(raw)))
	if pow == 0 || math.IsNaN(pow) || math.IsInf(pow, 0) {
		return 1
	}
	frac := raw / pow
	switch {
	case frac <= 1:
		return 1 * pow
	case frac <= 2:
		return 2 * pow
	case frac <= 5:
		return 5 * pow
	default:
		return 10 * pow
	}
}

// clipLineToRect clips a segment to an axis-aligned rect (Liang-Barsky).
func clipLineToRect(x0, y0, x1, y1, xmin, ymin, xmax, ymax float64) (cx0, cy0, cx1, cy1 float64, ok bool) {
	dx := x1 - x0
	dy := y1 - y0
	u1 := 0.0
	u2 := 1.0

	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{x0 - xmin, xmax - x0, y0 - ymin, ymax - y0}
	for i := 0; i < 4; i++ {
		if p[i] == 0 {
			if q[i] < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q[i] / p[i]
		if p[i] < 0 {
			if t > u2 {
				return 0, 0, 0, 0, false
			}
			if t > u1 {
				u1 = t
			}
		} else {
			if t < u1 {
				return 0, 0, 0, 0, false
			}
			if t < u2 {
				u2 = t
			}
		}
	}

	cx0 = x0 + u1*dx
	cy0 = y0 + u1*dy
	cx1 = x0 + u2*dx
	cy1 = y0 + u2*dy
	if cx0 < xmin {
		cx0 = xmin
	}
	if cx0 > xmax {
		cx0 = xmax
	}
	if cx1 < xmin {
		cx1 = xmin
	}
	if cx1 > xmax {
		cx1 = xmax
	}
	if cy0 < ymin {
		cy0 = ymin
	}
	if cy0 > ymax {
		cy0 = ymax
	}
	if cy1 < ymin {
		cy1 = ymin
	}
	if cy1 > ymax {
		cy1 = ymax
	}
	return cx0, cy0, cx1, cy1, true
}

func roundInt16(v float64) int16 {
	if v < 0 {
		return int16(v - 0.5)
	}
	return int16(v + 0.5)
}

func abs16(v int16) int16 {
	if v < 0 {
		return -v
	}
	return v
}
