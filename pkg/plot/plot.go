// Package plot is the chart sink (Collaborator, §6): it renders a
// Monte-Carlo yield sweep as a scatter plot, with-repair against
// without-repair, across the electrical-yield range swept by the
// estimator. Grounded on `CIRA.py::MetaCIRA`'s matplotlib tail, ported to
// `gonum.org/v1/plot`.
package plot

import (
	"fmt"
	"io"
	"os"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/jkim-oss/d2drepair/pkg/yield"
)

// Format is a gonum/plot output format name, passed to plot.WriterTo.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPDF Format = "pdf"
	FormatPNG Format = "png"
)

// Options tunes the rendered figure. Zero value renders at a reasonable
// default size.
type Options struct {
	Title  string // defaults to "System yield vs Electrical yield, with and without repair"
	Width  vg.Length
	Height vg.Length
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = "System yield vs Electrical yield, with and without repair"
	}
	if o.Width == 0 {
		o.Width = 6 * vg.Inch
	}
	if o.Height == 0 {
		o.Height = 4 * vg.Inch
	}
	return o
}

// YieldFigure builds the scatter plot of with-repair (blue, '+') and
// without-repair (red, 'x') yield against the electrical-yield sweep range.
func YieldFigure(yieldRange, withoutRepair, withRepair []float64, opts Options) (*plot.Plot, error) {
	if len(yieldRange) == 0 {
		return nil, fmt.Errorf("plot: empty yield range")
	}
	opts = opts.withDefaults()

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "Electrical Yield"
	p.Y.Label.Text = "System Yield"
	p.Add(plotter.NewGrid())

	withPts := toXYs(yieldRange, withRepair)
	withoutPts := toXYs(yieldRange, withoutRepair)

	withScatter, err := plotter.NewScatter(withPts)
	if err != nil {
		return nil, fmt.Errorf("plot: with-repair series: %w", err)
	}
	withScatter.GlyphStyle.Shape = draw.PlusGlyph{}
	withScatter.GlyphStyle.Color = plotutil.Color(2) // blue

	withoutScatter, err := plotter.NewScatter(withoutPts)
	if err != nil {
		return nil, fmt.Errorf("plot: without-repair series: %w", err)
	}
	withoutScatter.GlyphStyle.Shape = draw.CrossGlyph{}
	withoutScatter.GlyphStyle.Color = plotutil.Color(0) // red

	p.Add(withScatter, withoutScatter)
	p.Legend.Add("With repair", withScatter)
	p.Legend.Add("Without repair", withoutScatter)
	p.Legend.Top = true

	// Pin the y-axis to the data's own range (both series are yield
	// fractions) so a near-100% curve doesn't get squashed against a
	// default 0-1 autorange.
	if len(withRepair) > 0 && len(withoutRepair) > 0 {
		top := floats.Max(withRepair)
		if bottom := floats.Min(withoutRepair); bottom < top {
			p.Y.Min = bottom
		}
		p.Y.Max = top * 1.02
	}

	return p, nil
}

// FromCurve builds the yield figure for a single-interface sweep.
func FromCurve(curve yield.Curve, opts Options) (*plot.Plot, error) {
	return YieldFigure(curve.YieldRange, curve.WithoutRepair, curve.WithRepair, opts)
}

// FromSystemResult builds the yield figure for a whole-system sweep.
//
// The original source also plots wasted-surface ratio against electrical
// yield as a second figure, but that plot is commented out upstream and
// was never shipped; it is intentionally not reproduced here (see
// DESIGN.md).
func FromSystemResult(result yield.SystemResult, opts Options) (*plot.Plot, error) {
	return YieldFigure(result.YieldRange, result.SystemWithoutRepair, result.SystemWithRepair, opts)
}

// Write renders p in the given format to w.
func Write(p *plot.Plot, format Format, opts Options, w io.Writer) error {
	opts = opts.withDefaults()
	writerTo, err := p.WriterTo(opts.Width, opts.Height, string(format))
	if err != nil {
		return fmt.Errorf("plot: writer for format %q: %w", format, err)
	}
	if _, err := writerTo.WriteTo(w); err != nil {
		return fmt.Errorf("plot: write: %w", err)
	}
	return nil
}

// Save renders p in the given format and writes it to path.
func Save(p *plot.Plot, format Format, opts Options, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("plot: create %s: %w", path, err)
	}
	if err := Write(p, format, opts, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func toXYs(x, y []float64) plotter.XYs {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	pts := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}
	return pts
}
