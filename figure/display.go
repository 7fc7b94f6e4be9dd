package figure

import (
	"image/color"

	"figkit/hal"

	"tinygo.org/x/drivers"
)

// Display is the drawing surface figures render to. Any tinygo displayer
// works: device LCD drivers, the in-memory framebuffer adapter below, or a
// caller-provided implementation.
type Display = drivers.Displayer

// fbDisplay adapts a hal.Framebuffer to Display.
type fbDisplay struct {
	fb hal.Framebuffer
}

// NewFBDisplay wraps an RGB565 framebuffer as a drawing surface.
func NewFBDisplay(fb hal.Framebuffer) Display {
	return &fbDisplay{fb: fb}
}

func (d *fbDisplay) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := d.fb.Buffer()
	if buf == nil {
		return
	}

	w := d.fb.Width()
	h := d.fb.Height()
	ix := int(x)
	iy := int(y)
	if ix < 0 || ix >= w || iy < 0 || iy >= h {
		return
	}

	pixel := hal.RGB565(c.R, c.G, c.B)
	off := iy*d.fb.StrideBytes() + ix*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (d *fbDisplay) Display() error {
	if d.fb == nil {
		return nil
	}
	return d.fb.Present()
}

// clipDisplay drops pixels outside a rectangle. Mark painters draw through
// it so fills and text that do not clip themselves (circles, triangles,
// glyphs) stay inside the owning axes' plot rect.
type clipDisplay struct {
	d              Display
	x0, y0, x1, y1 int16
}

func newClipDisplay(d Display, x, y, w, h int16) *clipDisplay {
	return &clipDisplay{d: d, x0: x, y0: y, x1: x + w - 1, y1: y + h - 1}
}

func (c *clipDisplay) Size() (x, y int16) { return c.d.Size() }

func (c *clipDisplay) SetPixel(x, y int16, col color.RGBA) {
	if x < c.x0 || x > c.x1 || y < c.y0 || y > c.y1 {
		return
	}
	c.d.SetPixel(x, y, col)
}

func (c *clipDisplay) Display() error { return c.d.Display() }
