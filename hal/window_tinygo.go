//go:build tinygo

package hal

// RunWindow is unavailable on bare metal; figures render straight to the
// device display instead.
func RunWindow(fb Framebuffer, cfg WindowConfig, step func(keys []KeyEvent) error) error {
	return ErrNotImplemented
}
