//go:build !tinygo

package hal

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RunWindow opens a desktop window that displays the framebuffer and calls
// step once per tick with the key events since the previous tick. It blocks
// until the window closes or step returns an error.
func RunWindow(fb Framebuffer, cfg WindowConfig, step func(keys []KeyEvent) error) error {
	if cfg.Scale <= 0 {
		cfg.Scale = 2
	}
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}
	if cfg.Title == "" {
		cfg.Title = "figkit"
	}

	g := &windowGame{fb: fb, step: step}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(fb.Width()*cfg.Scale, fb.Height()*cfg.Scale)
	ebiten.SetTPS(cfg.TPS)
	return ebiten.RunGame(g)
}

type windowGame struct {
	fb      Framebuffer
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
	keys    []KeyEvent
	step    func(keys []KeyEvent) error
}

func (g *windowGame) Update() error {
	g.keys = pollKeys(g.keys[:0])
	if g.step != nil {
		if err := g.step(g.keys); err != nil {
			return err
		}
	}
	return nil
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	w := g.fb.Width()
	h := g.fb.Height()
	if g.img == nil || g.img.Bounds().Dx() != w || g.img.Bounds().Dy() != h {
		g.img = image.NewRGBA(image.Rect(0, 0, w, h))
		g.scratch = make([]byte, w*h*2)
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(w, h)
	}

	SnapshotRGB565(g.fb, g.scratch)

	src := g.scratch
	dst := g.img.Pix
	for i := 0; i+1 < len(src) && i/2*4+3 < len(dst); i += 2 {
		r, gg, b := RGB888(uint16(src[i]) | uint16(src[i+1])<<8)
		j := (i / 2) * 4
		dst[j+0] = r
		dst[j+1] = gg
		dst[j+2] = b
		dst[j+3] = 0xFF
	}

	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *windowGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.fb.Width(), g.fb.Height()
}

func pollKeys(out []KeyEvent) []KeyEvent {
	pressed := func(code KeyCode, key ebiten.Key) {
		if inpututil.IsKeyJustPressed(key) {
			out = append(out, KeyEvent{Code: code, Press: true})
		}
		if inpututil.IsKeyJustReleased(key) {
			out = append(out, KeyEvent{Code: code})
		}
	}

	pressed(KeyUp, ebiten.KeyArrowUp)
	pressed(KeyDown, ebiten.KeyArrowDown)
	pressed(KeyLeft, ebiten.KeyArrowLeft)
	pressed(KeyRight, ebiten.KeyArrowRight)
	pressed(KeyEnter, ebiten.KeyEnter)
	pressed(KeyEscape, ebiten.KeyEscape)

	for _, r := range ebiten.AppendInputChars(nil) {
		out = append(out, KeyEvent{Press: true, Rune: r})
	}
	return out
}
