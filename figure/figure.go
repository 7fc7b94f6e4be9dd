// Package figure lays out grids of sub-axes on a pixel display and draws
// consistently formatted plots on them: framed panels, nice tick steps,
// SI-prefixed tick labels, outer-edge axis labels and data-space annotations.
package figure

import (
	"fmt"

	"figkit/hal"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// GridConfig sizes a grid of sub-axes. The per-axes size is specified, like a
// facet grid, and the overall figure surface is derived from it unless an
// explicit Display is given.
type GridConfig struct {
	ColWrap    int     // max columns before wrapping to a new row, default 4
	AxesHeight int     // height of one axes cell in pixels, default 160
	Aspect     float64 // width/height ratio of one axes cell, default 1
	Display    Display // optional explicit surface; sized from the grid when nil
	Font       tinyfont.Fonter
}

// Figure owns a drawing surface and the axes laid out on it.
type Figure struct {
	d  Display
	fb hal.Framebuffer // non-nil when the figure owns its surface

	font     tinyfont.Fonter
	fontW    int16
	fontH    int16
	fontBase int16 // baseline offset from the top of a text cell

	w, h int16
	axes []*Axes
}

// NewGrid creates a figure with n sub-axes arranged row-major, wrapping after
// cfg.ColWrap columns. Surplus grid cells are returned blanked, so the slice
// always has exactly n usable axes in positions 0..n-1.
func NewGrid(n int, cfg GridConfig) (*Figure, []*Axes, error) {
	if n <= 0 {
		return nil, nil, fmt.Errorf("figure: need at least one axes, got %d", n)
	}
	if cfg.ColWrap <= 0 {
		cfg.ColWrap = 4
	}
	if cfg.AxesHeight <= 0 {
		cfg.AxesHeight = 160
	}
	if cfg.Aspect <= 0 {
		cfg.Aspect = 1
	}

	cols := n
	if cols > cfg.ColWrap {
		cols = cfg.ColWrap
	}
	rows := (n + cols - 1) / cols
	blank := cols*rows - n

	f := &Figure{d: cfg.Display}
	if f.d == nil {
		cellH := cfg.AxesHeight
		cellW := int(float64(cellH)*cfg.Aspect + 0.5)
		if cellW < 1 {
			cellW = 1
		}
		f.fb = hal.NewFramebuffer(cellW*cols, cellH*rows)
		f.d = NewFBDisplay(f.fb)
	}
	f.w, f.h = f.d.Size()
	if f.w <= 0 || f.h <= 0 {
		return nil, nil, fmt.Errorf("figure: display reports size %dx%d", f.w, f.h)
	}

	if err := f.initFont(cfg.Font); err != nil {
		return nil, nil, err
	}

	cellW := f.w / int16(cols)
	cellH := f.h / int16(rows)
	for i := 0; i < cols*rows; i++ {
		row := i / cols
		col := i % cols
		a := &Axes{
			fig:   f,
			row:   row,
			col:   col,
			rows:  rows,
			cols:  cols,
			cellX: int16(col) * cellW,
			cellY: int16(row) * cellH,
			cellW: cellW,
			cellH: cellH,
			xMin:  0, xMax: 1,
			yMin: 0, yMax: 1,
			xAuto: true,
			yAuto: true,
		}
		f.axes = append(f.axes, a)
	}

	// Blank the cells at the end of the grid beyond the requested count.
	for i := 0; i < blank; i++ {
		f.axes[len(f.axes)-1-i].HideAxisLabels()
	}

	return f, f.axes[:n], nil
}

func (f *Figure) initFont(font tinyfont.Fonter) error {
	if font == nil {
		font = &proggy.TinySZ8pt7b
	}
	f.font = font
	f.fontH = int16(font.GetYAdvance())
	f.fontBase = f.fontH - 1
	_, outboxWidth := tinyfont.LineWidth(font, "0")
	f.fontW = int16(outboxWidth)
	if f.fontW <= 0 || f.fontH <= 0 {
		return fmt.Errorf("figure: font reports cell %dx%d", f.fontW, f.fontH)
	}
	return nil
}

// Display returns the underlying drawing surface. It is the escape hatch for
// drawing anything the kit has no helper for.
func (f *Figure) Display() Display { return f.d }

// Framebuffer returns the figure-owned framebuffer, or nil when the figure
// renders to a caller-provided display.
func (f *Figure) Framebuffer() hal.Framebuffer { return f.fb }

// Size returns the surface size in pixels.
func (f *Figure) Size() (w, h int16) { return f.w, f.h }

// Axes returns every grid cell including blanked ones, row-major.
func (f *Figure) Axes() []*Axes { return f.axes }

// SetLabels labels only the outermost axes: ylabel goes on first-column axes,
// xlabel on last-row axes. Either may be empty to skip that side.
func (f *Figure) SetLabels(ylabel, xlabel string) {
	for _, a := range f.axes {
		if ylabel != "" && a.col == 0 {
			a.yLabel = ylabel
		}
		if xlabel != "" && a.row == a.rows-1 {
			a.xLabel = xlabel
		}
	}
}

// Render draws the whole figure: background, every axes' frame, grid, ticks
// and queued marks, then presents the surface.
func (f *Figure) Render() error {
	if f.fb != nil {
		f.fb.ClearRGB(colorBG.R, colorBG.G, colorBG.B)
	} else {
		fillRect(f.d, 0, 0, f.w, f.h, colorBG)
	}
	for _, a := range f.axes {
		a.render()
	}
	return f.d.Display()
}
