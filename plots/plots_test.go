// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plots

import (
	"bytes"
	"testing"

	"github.com/emer/lif/compare"
	"github.com/emer/lif/lif"
)

var pngMagic = []byte{0x89, 0x50, 0x4e, 0x47}

func spikingTraces(t *testing.T) []LabeledTrace {
	t.Helper()
	lp := lif.Params{}
	lp.Defaults()
	dt := 1e-3
	curr := compare.ConstantCurrent(0.2, dt, 1.5)
	var trs []LabeledTrace
	for _, meth := range lif.Methods() {
		tr, err := lp.Simulate(meth, curr, dt)
		if err != nil {
			t.Fatalf("%v: %v", meth, err)
		}
		trs = append(trs, LabeledTrace{Label: meth.String(), Trace: tr})
	}
	return trs
}

func TestTraces(t *testing.T) {
	png, err := Traces("LIF traces", 1.0, spikingTraces(t))
	if err != nil {
		t.Fatalf("traces: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Errorf("traces output is not PNG\n")
	}
	if _, err := Traces("empty", 1.0, nil); err == nil {
		t.Errorf("no traces should be an error\n")
	}
}

func TestRaster(t *testing.T) {
	png, err := Raster("LIF raster", spikingTraces(t))
	if err != nil {
		t.Fatalf("raster: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Errorf("raster output is not PNG\n")
	}
	if _, err := Raster("empty", nil); err == nil {
		t.Errorf("no traces should be an error\n")
	}
}

func TestErrorVsDt(t *testing.T) {
	cf := compare.Config{}
	cf.Defaults()
	cf.Dts = []float64{2e-3, 1e-3, 0.5e-3}
	cf.Dur = 0.2
	rs, err := compare.Run(&cf)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	png, err := ErrorVsDt("first spike error", "error (s)", rs,
		func(r compare.Result) float64 { return r.FirstSpikeErr })
	if err != nil {
		t.Fatalf("error plot: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Errorf("error plot output is not PNG\n")
	}

	empty := &compare.Results{Config: cf}
	if _, err := ErrorVsDt("empty", "err", empty, func(r compare.Result) float64 { return 0 }); err == nil {
		t.Errorf("empty sweep should be an error\n")
	}
}
