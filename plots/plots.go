// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package plots renders LIF simulation traces and integrator accuracy sweeps
to PNG images, headlessly, via gonum/plot: voltage traces over time, spike
rasters, and error-vs-dt curves.  Every function returns the encoded PNG
bytes so callers decide where they go.
*/
package plots

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"os"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/emer/lif/compare"
	"github.com/emer/lif/lif"
)

// LabeledTrace pairs a simulation trace with the legend label to plot it
// under, typically the integration method name.
type LabeledTrace struct {
	Label string
	Trace *lif.Trace
}

// plotColors is the per-series palette, indexed in series order.
var plotColors = []color.Color{
	color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 255}, // blue
	color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 255}, // orange
	color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 255}, // green
	color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 255}, // red
	color.RGBA{R: 0x94, G: 0x67, B: 0xbd, A: 255}, // purple
}

// Traces renders membrane potential over time for each labeled trace, with
// a dashed horizontal line marking the spike threshold thr.
func Traces(title string, thr float64, trs []LabeledTrace) ([]byte, error) {
	if len(trs) == 0 {
		return nil, fmt.Errorf("plots: no traces to plot")
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Membrane potential Vm"
	p.Add(plotter.NewGrid())

	var tmax float64
	for ci, lt := range trs {
		tr := lt.Trace
		pts := make(plotter.XYs, tr.Len())
		for n := range tr.Time {
			pts[n] = plotter.XY{X: tr.Time[n], Y: tr.Vm[n]}
			if tr.Time[n] > tmax {
				tmax = tr.Time[n]
			}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("plots: line for %s: %v", lt.Label, err)
		}
		line.Color = plotColors[ci%len(plotColors)]
		line.LineStyle.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(lt.Label, line)
	}

	thrLine, err := plotter.NewLine(plotter.XYs{{X: 0, Y: thr}, {X: tmax, Y: thr}})
	if err != nil {
		return nil, fmt.Errorf("plots: threshold line: %v", err)
	}
	thrLine.Color = color.Gray{Y: 128}
	thrLine.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
	p.Add(thrLine)
	p.Legend.Add("threshold", thrLine)
	p.Legend.Top = true

	return render(p, vg.Points(800), vg.Points(400))
}

// Raster renders the spike times of each labeled trace as one row of
// markers, first trace at the bottom.
func Raster(title string, trs []LabeledTrace) ([]byte, error) {
	if len(trs) == 0 {
		return nil, fmt.Errorf("plots: no traces to plot")
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Time (s)"
	p.Add(plotter.NewGrid())

	ticks := make([]plot.Tick, len(trs))
	for ci, lt := range trs {
		row := float64(ci + 1)
		ticks[ci] = plot.Tick{Value: row, Label: lt.Label}
		st := lt.Trace.SpikeTimes()
		pts := make(plotter.XYs, len(st))
		for n, t := range st {
			pts[n] = plotter.XY{X: t, Y: row}
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("plots: raster for %s: %v", lt.Label, err)
		}
		sc.GlyphStyle.Shape = draw.BoxGlyph{}
		sc.GlyphStyle.Radius = vg.Points(2)
		sc.GlyphStyle.Color = plotColors[ci%len(plotColors)]
		p.Add(sc)
	}
	p.Y.Tick.Marker = plot.ConstantTicks(ticks)
	p.Y.Min = 0.25
	p.Y.Max = float64(len(trs)) + 0.75

	return render(p, vg.Points(800), vg.Points(300))
}

// ErrorVsDt renders one accuracy metric from a sweep as a line per method
// over the dt ladder (in ms, ascending).  val extracts the metric from each
// cell; NaN cells and failed runs are skipped.
func ErrorVsDt(title, ylabel string, rs *compare.Results, val func(r compare.Result) float64) ([]byte, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "dt (ms)"
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())

	plotted := false
	for ci, meth := range rs.Config.Methods {
		cells := rs.For(meth)
		sort.Slice(cells, func(i, j int) bool { return cells[i].Dt < cells[j].Dt })
		var pts plotter.XYs
		for _, r := range cells {
			v := val(r)
			if r.Failed() || math.IsNaN(v) {
				continue
			}
			pts = append(pts, plotter.XY{X: r.Dt * 1e3, Y: v})
		}
		if len(pts) == 0 {
			continue
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("plots: line for %v: %v", meth, err)
		}
		line.Color = plotColors[ci%len(plotColors)]
		line.LineStyle.Width = vg.Points(1.5)
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("plots: points for %v: %v", meth, err)
		}
		sc.GlyphStyle.Radius = vg.Points(2.5)
		sc.GlyphStyle.Color = line.Color
		p.Add(line, sc)
		p.Legend.Add(meth.String(), line, sc)
		plotted = true
	}
	if !plotted {
		return nil, fmt.Errorf("plots: no plottable cells in sweep")
	}
	p.Legend.Top = true

	return render(p, vg.Points(800), vg.Points(400))
}

// Save writes rendered PNG bytes to the given file.
func Save(fnm string, png []byte) error {
	return os.WriteFile(fnm, png, 0644)
}

func render(p *plot.Plot, w, h vg.Length) ([]byte, error) {
	wt, err := p.WriterTo(w, h, "png")
	if err != nil {
		return nil, fmt.Errorf("plots: writer: %v", err)
	}
	buf := new(bytes.Buffer)
	if _, err := wt.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("plots: encode: %v", err)
	}
	return buf.Bytes(), nil
}
