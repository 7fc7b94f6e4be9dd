// Command figdemo renders sample figures with the kit and presents them in a
// desktop window. Left/Right switch pages; Escape quits.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"

	"figkit/curve"
	"figkit/figure"
	"figkit/hal"
	"figkit/internal/buildinfo"
	"figkit/units"
)

var errQuit = errors.New("quit")

func main() {
	var headless bool
	var hz int
	var ticks uint64
	flag.BoolVar(&headless, "headless", false, "Render without a window.")
	flag.IntVar(&hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&ticks, "ticks", 1, "Stop after N ticks in headless mode (0 = run forever).")
	flag.Parse()

	fb := hal.NewFramebuffer(480, 480)
	d := figure.NewFBDisplay(fb)

	pages, err := buildPages(d)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	page := 0

	if headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err := hal.RunHeadless(ctx, hal.HeadlessConfig{Hz: hz, Ticks: ticks}, func() error {
			return pages[page].Render()
		})
		if err != nil && err != context.Canceled {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	cfg := hal.WindowConfig{Title: "figkit (" + buildinfo.Short() + ")"}
	err = hal.RunWindow(fb, cfg, func(keys []hal.KeyEvent) error {
		for _, k := range keys {
			if !k.Press {
				continue
			}
			switch k.Code {
			case hal.KeyLeft:
				page = (page + len(pages) - 1) % len(pages)
			case hal.KeyRight:
				page = (page + 1) % len(pages)
			case hal.KeyEscape:
				return errQuit
			}
			if k.Rune == 'q' {
				return errQuit
			}
		}
		return pages[page].Render()
	})
	if err != nil && err != errQuit {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildPages(d figure.Display) ([]*figure.Figure, error) {
	curves, err := buildCurvePage(d)
	if err != nil {
		return nil, err
	}
	formats, err := buildFormatPage(d)
	if err != nil {
		return nil, err
	}
	return []*figure.Figure{curves, formats}, nil
}

// buildCurvePage fills a 2x2 grid with annotated function plots.
func buildCurvePage(d figure.Display) (*figure.Figure, error) {
	fig, axs, err := figure.NewGrid(4, figure.GridConfig{ColWrap: 2, Display: d})
	if err != nil {
		return nil, err
	}

	sine := curve.New(axs[0], math.Sin)
	sine.Plot(-math.Pi, math.Pi, figure.LineStyle{})
	sine.MarkAt(math.Pi/2, figure.MarkerStyle{})
	sine.DropToXAxis(math.Pi/2, "max", 0.5, figure.LineStyle{Color: dimLine})
	axs[0].Annotate("(a)", figure.TextStyle{})

	damped := curve.New(axs[1], func(x float64) float64 {
		return math.Exp(-x/3) * math.Cos(4*x)
	})
	damped.Plot(0, 6, figure.LineStyle{})
	damped.CurvedArrow(0.4, 2.0, 1, figure.ArrowStyle{})
	axs[1].Annotate("(b)", figure.TextStyle{})

	gauss := curve.New(axs[2], func(x float64) float64 {
		return math.Exp(-x * x / 0.5)
	})
	gauss.Plot(-2, 2, figure.LineStyle{})
	gauss.Chord(-1, 1, 0.5, "chord", figure.LineStyle{Color: dimLine})
	axs[2].Annotate("(c)", figure.TextStyle{})

	cubic := curve.New(axs[3], func(x float64) float64 {
		return x * x * x / 4
	})
	cubic.Plot(-2, 2, figure.LineStyle{})
	cubic.DropToYAxis(1.5, "f(1.5)", 0.5, figure.LineStyle{Color: dimLine})
	axs[3].Annotate("(d)", figure.TextStyle{})

	fig.SetLabels("f(x)", "x")
	return fig, nil
}

// buildFormatPage lists SI renderings across the magnitude range, the way a
// style sheet documents its number convention.
func buildFormatPage(d figure.Display) (*figure.Figure, error) {
	fig, axs, err := figure.NewGrid(1, figure.GridConfig{Display: d})
	if err != nil {
		return nil, err
	}
	ax := axs[0]
	ax.HideAxisLabels()

	ax.AnnotateAt("SI number formatting", 0.05, 0.97, figure.TextStyle{})
	y := 0.90
	for e := -12; e <= 12; e += 2 {
		v := 1.234 * math.Pow(10, float64(e))
		line := fmt.Sprintf("%11.4g  ->  %s", v, units.FormatSI(v, 3, "8"))
		ax.AnnotateAt(line, 0.08, y, figure.TextStyle{})
		y -= 0.055
	}
	ax.AnnotateAt(fmt.Sprintf("%11.4g  ->  %s", 999.96, units.FormatSI(999.96, 3, "8")), 0.08, y, figure.TextStyle{})

	return fig, nil
}

var dimLine = figure.RGB(0x88, 0x88, 0x88)
