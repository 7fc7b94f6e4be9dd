package hal

import "sync"

type memFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	buf    []byte
}

// NewFramebuffer returns an in-memory RGB565 framebuffer. Present is a no-op;
// window/headless runners snapshot the buffer themselves.
func NewFramebuffer(width, height int) Framebuffer {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	stride := width * 2
	return &memFramebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
	}
}

func (f *memFramebuffer) Width() int          { return f.width }
func (f *memFramebuffer) Height() int         { return f.height }
func (f *memFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *memFramebuffer) StrideBytes() int    { return f.stride }
func (f *memFramebuffer) Buffer() []byte      { return f.buf }
func (f *memFramebuffer) Present() error      { return nil }

func (f *memFramebuffer) ClearRGB(r, g, b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pixel := RGB565(r, g, b)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for i := 0; i < len(f.buf); i += 2 {
		f.buf[i] = lo
		f.buf[i+1] = hi
	}
}

func (f *memFramebuffer) snapshotRGB565(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(dst, f.buf)
}

// SnapshotRGB565 copies the current pixel contents of fb into dst when fb is
// a framebuffer created by NewFramebuffer; otherwise it copies Buffer directly.
func SnapshotRGB565(fb Framebuffer, dst []byte) {
	if m, ok := fb.(*memFramebuffer); ok {
		m.snapshotRGB565(dst)
		return
	}
	copy(dst, fb.Buffer())
}
