package figure

import "image/color"

// Layout widths for print figures, in inches. A margin figure, a text-column
// figure and a full-page figure keep the same proportions across a document.
const (
	MarginWidth = 2.0
	TextWidth   = 4.2
	FullWidth   = 6.2

	// DPI converts the layout widths above to pixels (InchesToPx).
	DPI = 96
)

// InchesToPx converts a layout width in inches to pixels at the kit DPI.
func InchesToPx(in float64) int {
	px := int(in*DPI + 0.5)
	if px < 1 {
		px = 1
	}
	return px
}

var (
	colorBG      = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF}
	colorFG      = color.RGBA{R: 0xEE, G: 0xEE, B: 0xEE, A: 0xFF}
	colorDim     = color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xFF}
	colorPanelBG = color.RGBA{R: 0x08, G: 0x08, B: 0x08, A: 0xFF}
	colorGrid    = color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xFF}
	colorAxis    = color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xFF}
	colorPlot0   = color.RGBA{R: 0x4A, G: 0xD1, B: 0xFF, A: 0xFF}
)

// RGB returns an opaque color, a shorthand for style literals.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

// LineStyle configures polyline drawing. The zero value means a 1px line in
// the default plot color.
type LineStyle struct {
	Color color.RGBA
	Width int16
}

func (s LineStyle) withDefaults() LineStyle {
	if s.Color == (color.RGBA{}) {
		s.Color = colorPlot0
	}
	if s.Width <= 0 {
		s.Width = 1
	}
	return s
}

// MarkerStyle configures discrete point markers.
type MarkerStyle struct {
	Color  color.RGBA
	Radius int16
}

func (s MarkerStyle) withDefaults() MarkerStyle {
	if s.Color == (color.RGBA{}) {
		s.Color = colorPlot0
	}
	if s.Radius <= 0 {
		s.Radius = 2
	}
	return s
}

// HAlign anchors text horizontally relative to its position.
type HAlign uint8

const (
	AlignLeft HAlign = iota
	AlignCenter
	AlignRight
)

// VAlign anchors text vertically relative to its position.
type VAlign uint8

const (
	AlignBaseline VAlign = iota
	AlignMiddle
	AlignTop
)

// TextStyle configures annotation text. DX/DY offset the anchor in pixels
// (screen coordinates, +DY is down).
type TextStyle struct {
	Color  color.RGBA
	HAlign HAlign
	VAlign VAlign
	DX     int16
	DY     int16
}

func (s TextStyle) withDefaults() TextStyle {
	if s.Color == (color.RGBA{}) {
		s.Color = colorFG
	}
	return s
}

// ArrowStyle configures straight and curved arrows. Curvature is the signed
// arc bend as a fraction of the endpoint distance; 0 draws a straight shaft.
// ShrinkA/ShrinkB pull the tail/tip back from the endpoints, in pixels.
type ArrowStyle struct {
	Color      color.RGBA
	Width      int16
	Curvature  float64
	HeadLength int16
	HeadWidth  int16
	ShrinkA    int16
	ShrinkB    int16
}

func (s ArrowStyle) withDefaults() ArrowStyle {
	if s.Color == (color.RGBA{}) {
		s.Color = colorFG
	}
	if s.Width <= 0 {
		s.Width = 1
	}
	if s.HeadLength <= 0 {
		s.HeadLength = 8
	}
	if s.HeadWidth <= 0 {
		s.HeadWidth = 5
	}
	return s
}
