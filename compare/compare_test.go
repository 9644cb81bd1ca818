// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compare

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/emer/etable/etable"
	"github.com/emer/lif/lif"
)

func TestSteps(t *testing.T) {
	// 1.0/2e-3 is 499.99... in float -- truncation would lose a step
	cases := []struct {
		dur, dt float64
		n       int
	}{
		{1.0, 1e-3, 1000},
		{1.0, 2e-3, 500},
		{1.0, 5e-3, 200},
		{1.0, 1e-4, 10000},
		{0.5, 1e-3, 500},
	}
	for _, c := range cases {
		if n := Steps(c.dur, c.dt); n != c.n {
			t.Errorf("Steps(%v, %v): %v, cor: %v\n", c.dur, c.dt, n, c.n)
		}
	}
}

func TestConstantCurrent(t *testing.T) {
	curr := ConstantCurrent(1.0, 2e-3, 1.5)
	if len(curr) != 500 {
		t.Fatalf("len: %v, cor: 500\n", len(curr))
	}
	for n := range curr {
		if curr[n] != 1.5 {
			t.Fatalf("curr[%v]: %v, cor: 1.5\n", n, curr[n])
		}
	}
}

func TestPulseCurrent(t *testing.T) {
	curr := PulseCurrent(0.1, 1e-3, 2.0, 0.0195, 0.0495)
	if len(curr) != 100 {
		t.Fatalf("len: %v, cor: 100\n", len(curr))
	}
	for n := range curr {
		want := 0.0
		if n >= 20 && n <= 49 {
			want = 2.0
		}
		if curr[n] != want {
			t.Errorf("curr[%v]: %v, cor: %v\n", n, curr[n], want)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	cf := Config{}
	cf.Defaults()
	if err := cf.Validate(); err != nil {
		t.Errorf("defaults should validate: %v\n", err)
	}
	bad := cf
	bad.Dts = nil
	if bad.Validate() == nil {
		t.Errorf("empty dt ladder should not validate\n")
	}
	bad = cf
	bad.Dts = []float64{1e-3, 0}
	if bad.Validate() == nil {
		t.Errorf("dt = 0 should not validate\n")
	}
	bad = cf
	bad.Dur = -1
	if bad.Validate() == nil {
		t.Errorf("negative Dur should not validate\n")
	}
	bad = cf
	bad.RefDiv = 0.5
	if bad.Validate() == nil {
		t.Errorf("RefDiv < 1 should not validate\n")
	}
	bad = cf
	bad.Params.TauM = 0
	if bad.Validate() == nil {
		t.Errorf("invalid params should not validate\n")
	}
}

// The default sweep is the canonical regularly-spiking scenario: errors
// against the reference must shrink (never grow) as dt shrinks, and at the
// finest dt every method recovers the reference spike count.
func TestRunDefaultSweep(t *testing.T) {
	cf := Config{}
	cf.Defaults()
	rs, err := Run(&cf)
	if err != nil {
		t.Fatalf("run: %v\n", err)
	}
	if len(rs.Results) != len(cf.Methods)*len(cf.Dts) {
		t.Fatalf("results: %v, cor: %v\n", len(rs.Results), len(cf.Methods)*len(cf.Dts))
	}
	if rs.Ref.SpikeCount() != 45 {
		t.Errorf("reference spike count: %v, cor: 45\n", rs.Ref.SpikeCount())
	}
	for _, meth := range cf.Methods {
		mrs := rs.For(meth)
		if len(mrs) != len(cf.Dts) {
			t.Fatalf("%v: cells: %v, cor: %v\n", meth, len(mrs), len(cf.Dts))
		}
		for k, r := range mrs {
			if r.Failed() {
				t.Fatalf("%v dt %v: unexpected failure: %v\n", meth, r.Dt, r.Err)
			}
			if r.RefSpikes != 45 {
				t.Errorf("%v dt %v: ref spikes: %v, cor: 45\n", meth, r.Dt, r.RefSpikes)
			}
			if math.IsNaN(r.FirstSpikeErr) || math.IsNaN(r.VmRMSE) {
				t.Errorf("%v dt %v: unexpected NaN metric\n", meth, r.Dt)
			}
			if r.VmRMSE < 0 {
				t.Errorf("%v dt %v: negative RMSE: %v\n", meth, r.Dt, r.VmRMSE)
			}
			// dt ladder is descending: error magnitudes must not grow
			if k > 0 {
				prev := mrs[k-1]
				if math.Abs(r.FirstSpikeErr) > math.Abs(prev.FirstSpikeErr)+1e-12 {
					t.Errorf("%v: first-spike error grew from dt %v to %v: %v -> %v\n",
						meth, prev.Dt, r.Dt, prev.FirstSpikeErr, r.FirstSpikeErr)
				}
				if abs(r.SpikeCountErr) > abs(prev.SpikeCountErr) {
					t.Errorf("%v: spike-count error grew from dt %v to %v: %v -> %v\n",
						meth, prev.Dt, r.Dt, prev.SpikeCountErr, r.SpikeCountErr)
				}
			}
		}
		last := mrs[len(mrs)-1]
		if last.SpikeCountErr != 0 {
			t.Errorf("%v: finest-dt spike count err: %v, cor: 0\n", meth, last.SpikeCountErr)
		}
		if math.Abs(last.FirstSpikeErr) > 2e-4 {
			t.Errorf("%v: finest-dt first-spike err: %v\n", meth, last.FirstSpikeErr)
		}
		first := mrs[0]
		if math.Abs(last.FirstSpikeErr) > math.Abs(first.FirstSpikeErr) {
			t.Errorf("%v: no overall first-spike improvement: %v vs %v\n",
				meth, first.FirstSpikeErr, last.FirstSpikeErr)
		}
	}
	// exact differs from the reference only through spike-time quantization,
	// so its first-spike error is bounded by one step
	for _, r := range rs.For(lif.Exact) {
		if math.Abs(r.FirstSpikeErr) > r.Dt+1e-12 {
			t.Errorf("exact dt %v: first-spike err beyond one step: %v\n", r.Dt, r.FirstSpikeErr)
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func TestRunCapturesDivergence(t *testing.T) {
	cf := Config{}
	cf.Defaults()
	cf.Methods = []lif.Method{lif.Forward, lif.Backward}
	cf.Dts = []float64{1.0}
	cf.Dur = 3
	cf.Amp = 1e6

	rs, err := Run(&cf)
	if err != nil {
		t.Fatalf("run: %v\n", err)
	}
	if len(rs.Results) != 2 {
		t.Fatalf("results: %v, cor: 2\n", len(rs.Results))
	}
	fw := rs.Results[0]
	if !fw.Failed() {
		t.Fatalf("forward at dt/TauM = 50 with huge drive should fail\n")
	}
	if !errors.Is(fw.Err, lif.ErrDiverged) {
		t.Errorf("cell error should wrap ErrDiverged: %v\n", fw.Err)
	}
	if !math.IsNaN(fw.FirstSpikeErr) || !math.IsNaN(fw.VmRMSE) {
		t.Errorf("failed cell should have NaN metrics\n")
	}
	if fw.SpikeCountErr != -fw.RefSpikes {
		t.Errorf("failed cell spike-count err: %v, cor: %v\n", fw.SpikeCountErr, -fw.RefSpikes)
	}
	bw := rs.Results[1]
	if bw.Failed() {
		t.Errorf("backward should survive any dt: %v\n", bw.Err)
	}

	dt := rs.Table()
	if dt.CellFloat("Failed", 0) != 1 || dt.CellFloat("Failed", 1) != 0 {
		t.Errorf("Failed column: %v, %v\n", dt.CellFloat("Failed", 0), dt.CellFloat("Failed", 1))
	}
}

func TestVmRMSEAlignment(t *testing.T) {
	lp := lif.Params{}
	lp.Defaults()

	// subthreshold input: exact at any aligned dt matches the reference to
	// float precision
	ref := lp.SimulateExact(ConstantCurrent(0.3, 1e-3, 0.8), 1e-3)
	tr := lp.SimulateExact(ConstantCurrent(0.3, 3e-3, 0.8), 3e-3)
	rmse := vmRMSE(tr, ref)
	if math.IsNaN(rmse) {
		t.Fatalf("aligned grids should produce a value\n")
	}
	if rmse > 1e-10 {
		t.Errorf("exact vs exact rmse: %v\n", rmse)
	}

	fwd, err := lp.SimulateForward(ConstantCurrent(0.3, 3e-3, 0.8), 3e-3)
	if err != nil {
		t.Fatalf("forward: %v\n", err)
	}
	if r := vmRMSE(fwd, ref); !(r > 0) {
		t.Errorf("forward should have nonzero rmse: %v\n", r)
	}

	odd := lp.SimulateExact(ConstantCurrent(0.3, 2e-3, 0.8), 2e-3)
	if r := vmRMSE(tr, odd); !math.IsNaN(r) {
		t.Errorf("misaligned grids should be NaN: %v\n", r)
	}
}

func TestTables(t *testing.T) {
	cf := Config{}
	cf.Defaults()
	cf.Dts = []float64{2e-3, 1e-3}
	cf.Dur = 0.2

	rs, err := Run(&cf)
	if err != nil {
		t.Fatalf("run: %v\n", err)
	}
	dt := rs.Table()
	if dt.Rows != 6 {
		t.Fatalf("table rows: %v, cor: 6\n", dt.Rows)
	}
	if dt.CellString("Method", 0) != "Forward" || dt.CellFloat("Dt", 0) != 2e-3 {
		t.Errorf("row 0: %v %v\n", dt.CellString("Method", 0), dt.CellFloat("Dt", 0))
	}
	if dt.CellString("Method", 5) != "Exact" || dt.CellFloat("Dt", 5) != 1e-3 {
		t.Errorf("row 5: %v %v\n", dt.CellString("Method", 5), dt.CellFloat("Dt", 5))
	}

	st := rs.Summary()
	if st.Rows != 3 {
		t.Fatalf("summary rows: %v, cor: 3\n", st.Rows)
	}
	for r := 0; r < st.Rows; r++ {
		if st.CellFloat("Failed:Sum", r) != 0 {
			t.Errorf("summary row %v: failed sum: %v\n", r, st.CellFloat("Failed:Sum", r))
		}
		if math.IsNaN(st.CellFloat("VmRMSE:Mean", r)) {
			t.Errorf("summary row %v: NaN mean rmse\n", r)
		}
	}
}

func TestTableCSVDeterminism(t *testing.T) {
	cf := Config{}
	cf.Defaults()
	cf.Dts = []float64{2e-3, 1e-3}
	cf.Dur = 0.2

	var bufs [2]bytes.Buffer
	for k := 0; k < 2; k++ {
		rs, err := Run(&cf)
		if err != nil {
			t.Fatalf("run: %v\n", err)
		}
		if err := rs.Table().WriteCSV(&bufs[k], etable.Tab, etable.Headers); err != nil {
			t.Fatalf("write: %v\n", err)
		}
	}
	if !bytes.Equal(bufs[0].Bytes(), bufs[1].Bytes()) {
		t.Errorf("identical sweeps should serialize identically\n")
	}
}
