package hal

import (
	"context"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window runner.
type HeadlessConfig struct {
	Hz    int
	Ticks uint64 // stop after N ticks, 0 = run until ctx cancels
}

// RunHeadless calls step at the configured rate without opening a window.
// Useful for smoke runs and render benchmarks.
func RunHeadless(ctx context.Context, cfg HeadlessConfig, step func() error) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
