// Package render is the SVG sink (Collaborator, §6): it draws a bump map,
// colored and shaped per an aspect table, with an optional reparability
// overlay for the 2-bump-short fault model. Grounded on
// `CIRA.py::Display_SVG`, ported to Go with `github.com/ajstarks/svgo/float`
// so bump coordinates never need rounding to int pixels.
package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	svg "github.com/ajstarks/svgo/float"

	"github.com/jkim-oss/d2drepair/pkg/aspect"
	"github.com/jkim-oss/d2drepair/pkg/bumpmap"
)

// Fault is one 2-bump-short fault to overlay as a line between its bumps,
// colored/styled by its resolved repair type.
type Fault struct {
	Bumps      [2]string
	RepairType string // "Catastrophic", "Benign", or any other resolved tag
}

// Options mirrors Display_SVG's tunable parameters.
type Options struct {
	BumpDiameter  float64 // µm
	Pitch         float64 // µm; 0 means auto-derive from the bump grid
	Margin        float64 // multiple of pitch
	Legend        bool
	BumpName      bool
	StrokeColor   string
	Font          string
	FontSize      float64
	Reparability  []Fault // 2-bump-short overlay; ignored if empty
	WarnPitchZero func(msg string)
}

func (o Options) withDefaults() Options {
	if o.StrokeColor == "" {
		o.StrokeColor = "black"
	}
	if o.Font == "" {
		o.Font = "sans-serif"
	}
	if o.FontSize == 0 {
		o.FontSize = 1
	}
	if o.BumpDiameter == 0 {
		o.BumpDiameter = 1
	}
	if o.Margin == 0 {
		o.Margin = 2
	}
	return o
}

// Render draws the bump map (and, when opts.Reparability is set, the
// reparability overlay) to w as an SVG document.
func Render(w io.Writer, bumps *bumpmap.Table, aspects *aspect.Table, opts Options) error {
	opts = opts.withDefaults()
	all := bumps.All()
	if len(all) == 0 {
		return fmt.Errorf("render: empty bump map")
	}

	minX, maxX := all[0].X, all[0].X
	minY, maxY := all[0].Y, all[0].Y
	xset := map[float64]bool{}
	yset := map[float64]bool{}
	for _, b := range all {
		if b.X < minX {
			minX = b.X
		}
		if b.X > maxX {
			maxX = b.X
		}
		if b.Y < minY {
			minY = b.Y
		}
		if b.Y > maxY {
			maxY = b.Y
		}
		xset[b.X] = true
		yset[b.Y] = true
	}

	pitch := opts.Pitch
	if pitch == 0 {
		xPitch := (maxX - minX) / float64(max(1, len(xset)/2))
		yPitch := (maxY - minY) / float64(max(1, len(yset)/2))
		pitch = (xPitch + yPitch) / 2
		if opts.WarnPitchZero != nil {
			opts.WarnPitchZero("pitch not set; derived from bump grid spacing (--Pitch, in µm)")
		}
	}

	margin := opts.Margin * 0.7 * pitch * opts.BumpDiameter
	s := 0.2 * opts.BumpDiameter * pitch

	legendEntries := legendList(opts.Legend, all, opts.Reparability)
	legendMargin := 0.0
	if opts.Legend {
		legendMargin = 2.5 * margin
	}

	width := (maxX - minX) + 2*margin + legendMargin
	height := (maxY - minY) + 2*margin

	canvas := svg.New(w)
	canvas.Start(width+2*margin, height+2*margin)
	canvas.Gtransform(fmt.Sprintf("translate(%.4f,%.4f)", 2.5*margin-minX, 2.5*margin-minY))
	defer func() {
		canvas.Gend()
		canvas.End()
	}()

	alpha := 1.0
	if opts.BumpName {
		alpha = 0.7
	}

	if len(opts.Reparability) > 0 {
		for _, f := range opts.Reparability {
			b0, ok0 := bumps.Lookup(f.Bumps[0])
			b1, ok1 := bumps.Lookup(f.Bumps[1])
			if !ok0 || !ok1 {
				continue
			}
			color := lookupColor(aspects, f.RepairType)
			switch f.RepairType {
			case "Catastrophic":
				drawLine(canvas, b0.X, b0.Y, b1.X, b1.Y, color, 2*s, "")
			case "Benign":
				drawLine(canvas, b0.X, b0.Y, b1.X, b1.Y, color, s/6, "2,2")
			default:
				drawLine(canvas, b0.X, b0.Y, b1.X, b1.Y, color, s, "")
			}
		}
	}

	for _, b := range all {
		entry, _ := aspects.Lookup(string(b.Type))
		shape := entry.Shape
		if b.Spare {
			if spareEntry, ok := aspects.Lookup("SPARE"); ok {
				shape = spareEntry.Shape
			}
		}
		drawShape(canvas, shape, b.X, b.Y, s, "white", opts.StrokeColor, 1)
		drawShape(canvas, shape, b.X, b.Y, s, entry.Color, opts.StrokeColor, alpha)

		if opts.BumpName && b.Type != bumpmap.POWER && b.Type != bumpmap.GND {
			name := strings.TrimSuffix(b.Name, "_phy")
			canvas.Text(b.X, b.Y, name, fmt.Sprintf("font-size:%.2f;font-family:%s;text-anchor:start", opts.FontSize*0.8*1.2*s, opts.Font))
		}
	}

	if opts.Legend {
		drawLegend(canvas, legendEntries, aspects, width, legendMargin, margin, minY, pitch, s, opts)
	}

	drawAxes(canvas, minX, maxX, minY, maxY, margin, s, xset, yset, opts)

	return nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func drawShape(canvas *svg.SVG, shape aspect.Shape, x, y, s float64, color, stroke string, alpha float64) {
	style := fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%.3f;fill-opacity:%.2f;stroke-opacity:%.2f", color, stroke, s/10, alpha, alpha)
	switch shape {
	case aspect.Circle:
		canvas.Circle(x, y, s, style)
	case aspect.Triangle:
		canvas.Polygon([]float64{x - s, x + s, x}, []float64{y + s, y + s, y - s}, style)
	case aspect.Square:
		canvas.Rect(x-s, y-s, 1.7*s, 1.7*s, style)
	default:
		canvas.Circle(x, y, s, style)
	}
}

func drawLine(canvas *svg.SVG, x1, y1, x2, y2 float64, color string, width float64, dash string) {
	style := fmt.Sprintf("stroke:%s;stroke-width:%.3f", color, width)
	if dash != "" {
		style += fmt.Sprintf(";stroke-dasharray:%s", dash)
	}
	canvas.Line(x1, y1, x2, y2, style)
}

func lookupColor(aspects *aspect.Table, bumpType string) string {
	if e, ok := aspects.Lookup(bumpType); ok {
		return e.Color
	}
	return "black"
}

func legendList(enabled bool, all []bumpmap.Bump, faults []Fault) []string {
	if !enabled {
		return nil
	}
	seen := map[string]bool{}
	var list []string
	for _, b := range all {
		t := string(b.Type)
		if !seen[t] {
			seen[t] = true
			list = append(list, t)
		}
	}
	if !seen["SPARE"] {
		list = append(list, "SPARE")
	}
	repairSeen := map[string]bool{}
	for _, f := range faults {
		if !repairSeen[f.RepairType] {
			repairSeen[f.RepairType] = true
			list = append(list, f.RepairType)
		}
	}
	return list
}

func drawLegend(canvas *svg.SVG, entries []string, aspects *aspect.Table, width, legendMargin, margin, minY, pitch, s float64, opts Options) {
	xEdge := width + legendMargin - margin
	for i, name := range entries {
		entry, _ := aspects.Lookup(name)
		xShape := xEdge - 0.65*legendMargin
		yShape := float64(i)*pitch + minY

		switch entry.Shape {
		case aspect.Line, "":
			switch name {
			case "Catastrophic":
				drawLine(canvas, xShape-s, yShape+s, xShape+s, yShape-s, entry.Color, 2*s, "")
			case "Benign":
				drawLine(canvas, xShape-s, yShape+s, xShape+s, yShape-s, entry.Color, s/6, "5,5")
			default:
				drawLine(canvas, xShape-s, yShape+s, xShape+s, yShape-s, entry.Color, s, "")
			}
		default:
			drawShape(canvas, entry.Shape, xShape, yShape, s, entry.Color, opts.StrokeColor, 1)
		}
		canvas.Text(xEdge-0.53*legendMargin, yShape, name, fmt.Sprintf("font-size:%.2f;font-family:%s;text-anchor:start", opts.FontSize*s, opts.Font))
	}

	canvas.Rect(xEdge-0.8*legendMargin, -0.5*margin+minY, legendMargin, float64(len(entries))*pitch,
		"fill:none;stroke:black;stroke-width:"+fmt.Sprintf("%.3f", s/6))
}

func drawAxes(canvas *svg.SVG, minX, maxX, minY, maxY, margin, s float64, xset, yset map[float64]bool, opts Options) {
	yx := -0.75*margin + minX
	y1 := -margin + minY
	y2 := 0.5*margin + maxY
	drawLine(canvas, yx, y1, yx, y2, "black", s, "")

	ys := sortedKeys(yset)
	for _, y := range ys {
		canvas.Text(yx-0.2*margin, y, fmt.Sprintf("%.2f µm", y-minY), fmt.Sprintf("font-size:%.2f;font-family:%s;text-anchor:end", opts.FontSize*1.2*s, opts.Font))
		drawLine(canvas, yx-0.1*margin, y, yx+0.1*margin, y, "black", s, "")
	}

	xy := -0.75*margin + minY
	x1 := -margin + minX
	x2 := 0.5*margin + maxX
	drawLine(canvas, x1, xy, x2, xy, "black", s, "")

	xs := sortedKeys(xset)
	for _, x := range xs {
		canvas.Text(x, xy-0.2*margin, fmt.Sprintf("%.2f µm", x-minX), fmt.Sprintf("font-size:%.2f;font-family:%s;text-anchor:middle", opts.FontSize*1.2*s, opts.Font))
		drawLine(canvas, x, xy-0.1*margin, x, xy+0.1*margin, "black", s, "")
	}
}

func sortedKeys(m map[float64]bool) []float64 {
	keys := make([]float64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Float64s(keys)
	return keys
}
