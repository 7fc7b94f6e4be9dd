package figure

import (
	"math"
	"testing"
)

func TestNewGrid_Layout(t *testing.T) {
	fig, axs, err := NewGrid(10, GridConfig{ColWrap: 4, AxesHeight: 40})
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	if len(axs) != 10 {
		t.Fatalf("usable axes=%d", len(axs))
	}
	all := fig.Axes()
	if len(all) != 12 {
		t.Fatalf("grid cells=%d", len(all))
	}

	// Row-major flat order.
	if axs[0].Row() != 0 || axs[0].Col() != 0 {
		t.Fatalf("axs[0] at %d,%d", axs[0].Row(), axs[0].Col())
	}
	if axs[4].Row() != 1 || axs[4].Col() != 0 {
		t.Fatalf("axs[4] at %d,%d", axs[4].Row(), axs[4].Col())
	}
	if axs[9].Row() != 2 || axs[9].Col() != 1 {
		t.Fatalf("axs[9] at %d,%d", axs[9].Row(), axs[9].Col())
	}

	// Surplus cells come back blanked.
	for _, a := range all[10:] {
		if !a.frameOff {
			t.Fatalf("surplus cell %d,%d not blanked", a.Row(), a.Col())
		}
	}
	for _, a := range axs {
		if a.frameOff {
			t.Fatalf("usable cell %d,%d blanked", a.Row(), a.Col())
		}
	}
}

func TestNewGrid_SurfaceSizedFromAxes(t *testing.T) {
	fig, _, err := NewGrid(3, GridConfig{ColWrap: 4, AxesHeight: 100, Aspect: 2})
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	w, h := fig.Size()
	if w != 600 || h != 100 {
		t.Fatalf("size=%dx%d", w, h)
	}
	if fig.Framebuffer() == nil {
		t.Fatalf("expected owned framebuffer")
	}
}

func TestNewGrid_FewerAxesThanColWrap(t *testing.T) {
	_, axs, err := NewGrid(2, GridConfig{ColWrap: 4, AxesHeight: 32})
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	if len(axs) != 2 {
		t.Fatalf("axes=%d", len(axs))
	}
	if axs[1].Row() != 0 || axs[1].Col() != 1 {
		t.Fatalf("axs[1] at %d,%d", axs[1].Row(), axs[1].Col())
	}
}

func TestNewGrid_Invalid(t *testing.T) {
	if _, _, err := NewGrid(0, GridConfig{}); err == nil {
		t.Fatalf("expected error for zero axes")
	}
}

func TestAxes_CellsDoNotOverlap(t *testing.T) {
	fig, _, err := NewGrid(6, GridConfig{ColWrap: 3, AxesHeight: 50})
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	cells := fig.Axes()
	for i, a := range cells {
		for j, b := range cells {
			if i == j {
				continue
			}
			if a.cellX < b.cellX+b.cellW && b.cellX < a.cellX+a.cellW &&
				a.cellY < b.cellY+b.cellH && b.cellY < a.cellY+a.cellH {
				t.Fatalf("cells %d and %d overlap", i, j)
			}
		}
	}
}

func TestAxes_Limits(t *testing.T) {
	_, axs, err := NewGrid(1, GridConfig{AxesHeight: 64})
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	a := axs[0]

	// Defaults before any data.
	lo, hi := a.XLim()
	if lo != 0 || hi != 1 {
		t.Fatalf("default xlim=%v,%v", lo, hi)
	}

	// Autoscale pads the data range.
	if err := a.Plot([]float64{-2, 2}, []float64{10, 30}, LineStyle{}); err != nil {
		t.Fatalf("Plot: %v", err)
	}
	lo, hi = a.XLim()
	if !(lo < -2 && hi > 2) {
		t.Fatalf("autoscaled xlim=%v,%v", lo, hi)
	}
	ylo, yhi := a.YLim()
	if !(ylo < 10 && yhi > 30) {
		t.Fatalf("autoscaled ylim=%v,%v", ylo, yhi)
	}

	// Pinned limits stick regardless of data.
	a.SetYLim(-5, 5)
	ylo, yhi = a.YLim()
	if ylo != -5 || yhi != 5 {
		t.Fatalf("pinned ylim=%v,%v", ylo, yhi)
	}
	a.Scatter(0, 100, MarkerStyle{})
	ylo, yhi = a.YLim()
	if ylo != -5 || yhi != 5 {
		t.Fatalf("pinned ylim moved: %v,%v", ylo, yhi)
	}
}

func TestAxes_PlotMismatch(t *testing.T) {
	_, axs, err := NewGrid(1, GridConfig{AxesHeight: 32})
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	if err := axs[0].Plot([]float64{1, 2}, []float64{1}, LineStyle{}); err == nil {
		t.Fatalf("expected length mismatch error")
	}
}

func TestSetLabels_OutermostOnly(t *testing.T) {
	fig, axs, err := NewGrid(4, GridConfig{ColWrap: 2, AxesHeight: 48})
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	fig.SetLabels("volts", "time")

	for i, a := range axs {
		wantY := a.Col() == 0
		wantX := a.Row() == 1
		if (a.yLabel != "") != wantY {
			t.Fatalf("axes %d ylabel=%q", i, a.yLabel)
		}
		if (a.xLabel != "") != wantX {
			t.Fatalf("axes %d xlabel=%q", i, a.xLabel)
		}
	}
}

func TestRender_DrawsPixels(t *testing.T) {
	fig, axs, err := NewGrid(1, GridConfig{AxesHeight: 96})
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	a := axs[0]
	if err := a.Plot([]float64{-1, 0, 1}, []float64{-1, 1, -1}, LineStyle{}); err != nil {
		t.Fatalf("Plot: %v", err)
	}
	a.Scatter(0, 1, MarkerStyle{})
	a.VLine(0, LineStyle{})
	a.Annotate("(a)", TextStyle{})
	a.Arrow(-0.5, -0.5, 0.5, 0.5, ArrowStyle{Curvature: 0.3})

	if err := fig.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}

	buf := fig.Framebuffer().Buffer()
	nonzero := 0
	for _, b := range buf {
		if b != 0 {
			nonzero++
		}
	}
	if nonzero == 0 {
		t.Fatalf("render left the framebuffer empty")
	}
}

func TestRender_BlankAndDegenerate(t *testing.T) {
	fig, axs, err := NewGrid(2, GridConfig{ColWrap: 4, AxesHeight: 32})
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	axs[0].HideAxisLabels()
	axs[1].SetXLim(2, 2) // degenerate view draws nothing, must not panic
	if err := fig.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
}

func TestRender_LargeMagnitudeLimits(t *testing.T) {
	// At 1e18 the tick step is far below the ULP of the coordinates, so a
	// tick loop accumulating x += step would stop advancing. Render must
	// still terminate.
	fig, axs, err := NewGrid(1, GridConfig{AxesHeight: 640})
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	axs[0].SetXLim(1e18, 1e18+256)
	axs[0].SetYLim(1e18, 1e18+256)
	if err := fig.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
}

func TestRender_MarksClippedToOwnAxes(t *testing.T) {
	fig, axs, err := NewGrid(2, GridConfig{ColWrap: 2, AxesHeight: 64})
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	for _, a := range axs {
		a.SetXLim(0, 1)
		a.SetYLim(0, 1)
	}

	if err := fig.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	base := make([]byte, len(fig.Framebuffer().Buffer()))
	copy(base, fig.Framebuffer().Buffer())

	// A fat marker on the right data edge and a label pushed past it must
	// not paint into the neighboring cell.
	axs[0].Scatter(1, 0.5, MarkerStyle{Radius: 8})
	axs[0].AnnotateAt("spills well past the edge", 0.95, 0.5, TextStyle{})
	if err := fig.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}

	buf := fig.Framebuffer().Buffer()
	stride := fig.Framebuffer().StrideBytes()
	w, h := fig.Size()
	cellW := int(w) / 2
	changedLeft := false
	for y := 0; y < int(h); y++ {
		for x := 0; x < int(w); x++ {
			off := y*stride + x*2
			if buf[off] == base[off] && buf[off+1] == base[off+1] {
				continue
			}
			if x >= cellW {
				t.Fatalf("pixel (%d,%d) painted in the neighboring cell", x, y)
			}
			changedLeft = true
		}
	}
	if !changedLeft {
		t.Fatalf("marker and label drew nothing in the owning cell")
	}
}

func TestRender_ArrowPaintsOverLaterMarks(t *testing.T) {
	fig, axs, err := NewGrid(1, GridConfig{AxesHeight: 96})
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	a := axs[0]
	a.SetXLim(0, 1)
	a.SetYLim(0, 1)

	red := RGB(0xFF, 0x00, 0x00)
	blue := RGB(0x00, 0x00, 0xFF)
	a.Arrow(0, 0.5, 1, 0.5, ArrowStyle{Color: red})
	a.HLine(0.5, LineStyle{Color: blue})

	if err := fig.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}

	// The arrow shaft shares a row with the later horizontal line; the
	// arrow must still be visible there.
	px, py, pw, ph := a.plotRect()
	row := int(py + roundInt16(0.5*float64(ph-1)))
	buf := fig.Framebuffer().Buffer()
	stride := fig.Framebuffer().StrideBytes()
	want := uint16(0xF800) // red in RGB565
	found := false
	for x := int(px); x < int(px+pw); x++ {
		off := row*stride + x*2
		if uint16(buf[off])|uint16(buf[off+1])<<8 == want {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("no arrow pixels survive on the shared row")
	}
}

func TestClipLineToRect(t *testing.T) {
	// Fully inside.
	x0, y0, x1, y1, ok := clipLineToRect(1, 1, 2, 2, 0, 0, 10, 10)
	if !ok || x0 != 1 || y0 != 1 || x1 != 2 || y1 != 2 {
		t.Fatalf("inside: %v %v %v %v %v", x0, y0, x1, y1, ok)
	}

	// Crossing the right edge.
	_, _, x1, _, ok = clipLineToRect(5, 5, 15, 5, 0, 0, 10, 10)
	if !ok || x1 != 10 {
		t.Fatalf("crossing: x1=%v ok=%v", x1, ok)
	}

	// Fully outside.
	_, _, _, _, ok = clipLineToRect(20, 20, 30, 30, 0, 0, 10, 10)
	if ok {
		t.Fatalf("outside segment not rejected")
	}
}

func TestNiceStep(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0.7, 1},
		{1.5, 2},
		{3, 5},
		{8, 10},
		{35, 50},
		{0.03, 0.05},
	}
	for _, c := range cases {
		got := niceStep(c.in)
		if math.Abs(got-c.want) > 1e-12 {
			t.Fatalf("niceStep(%v)=%v want %v", c.in, got, c.want)
		}
	}
	if got := niceStep(0); got != 1 {
		t.Fatalf("niceStep(0)=%v", got)
	}
}

func TestFmtTick(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{2, "2"},
		{0.25, "250m"},
		{1500, "1.5k"},
		{2.5e6, "2.5M"},
		{-0.002, "-2m"},
	}
	for _, c := range cases {
		if got := fmtTick(c.in); got != c.want {
			t.Fatalf("fmtTick(%v)=%q want %q", c.in, got, c.want)
		}
	}
	if got := fmtTick(math.NaN()); got != "" {
		t.Fatalf("fmtTick(NaN)=%q", got)
	}
}
