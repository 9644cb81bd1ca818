// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package compare measures how the accuracy of the LIF integration methods
degrades as the time step grows.  A sweep runs every configured method at
every configured dt over the same constant-current input, scores each run
against one high-resolution exact reference run, and reports per-cell spike
count error, first spike time error, and voltage RMSE, with results
available as etable tables for saving and aggregation.

A forward Euler divergence at some (method, dt) cell is captured in that
cell's Result rather than aborting the sweep -- mapping where the method
fails is part of what a sweep is for.
*/
package compare

import (
	"fmt"
	"math"

	"github.com/emer/etable/metric"
	"github.com/emer/lif/lif"
)

// Config specifies one accuracy sweep: the methods under test, the ladder
// of time steps, the input, and the shared neuron parameters.
type Config struct {
	Methods []lif.Method `desc:"integration methods under test"`
	Dts     []float64    `desc:"time steps to test, seconds, in the order results should be reported"`
	Dur     float64      `def:"1" desc:"duration of each simulated run, seconds"`
	Amp     float64      `def:"1.5" desc:"constant input current -- the default drives VInf to 1.5 with default parameters, a regularly spiking regime"`
	RefDiv  float64      `def:"10" desc:"the exact reference runs at the smallest tested dt divided by this, to keep reference spike-timing quantization well below the errors being measured"`
	Params  lif.Params   `view:"inline" desc:"neuron parameters shared by every run in the sweep"`
}

func (cf *Config) Defaults() {
	cf.Methods = lif.Methods()
	cf.Dts = []float64{5e-3, 2e-3, 1e-3, 0.5e-3, 0.1e-3}
	cf.Dur = 1
	cf.Amp = 1.5
	cf.RefDiv = 10
	cf.Params.Defaults()
}

// RefDt returns the reference step width: the smallest tested dt divided by
// RefDiv.
func (cf *Config) RefDt() float64 {
	mn := cf.Dts[0]
	for _, dt := range cf.Dts[1:] {
		if dt < mn {
			mn = dt
		}
	}
	return mn / cf.RefDiv
}

// Validate reports configurations a sweep cannot run with.
func (cf *Config) Validate() error {
	if len(cf.Methods) == 0 {
		return fmt.Errorf("compare: no methods configured")
	}
	if len(cf.Dts) == 0 {
		return fmt.Errorf("compare: no time steps configured")
	}
	for _, dt := range cf.Dts {
		if dt <= 0 {
			return fmt.Errorf("compare: dt must be > 0, got %g", dt)
		}
	}
	if cf.Dur <= 0 {
		return fmt.Errorf("compare: Dur must be > 0, got %g", cf.Dur)
	}
	if cf.RefDiv < 1 {
		return fmt.Errorf("compare: RefDiv must be >= 1, got %g", cf.RefDiv)
	}
	return cf.Params.Validate()
}

// Result holds the accuracy metrics of one (method, dt) cell of a sweep,
// all relative to the exact reference run.
type Result struct {
	Method        lif.Method `desc:"integration method under test"`
	Dt            float64    `desc:"time step of the run, seconds"`
	Spikes        int        `desc:"number of spikes the run produced"`
	RefSpikes     int        `desc:"number of spikes in the reference run"`
	SpikeCountErr int        `desc:"Spikes - RefSpikes"`
	FirstSpikeErr float64    `desc:"first spike time minus the reference's, seconds -- NaN when either run never spiked"`
	VmRMSE        float64    `desc:"root-mean-square voltage difference from the reference at shared time points -- NaN when the grids do not align or the run failed"`
	Err           error      `desc:"divergence fault for a failed forward Euler run, else nil"`
}

// Failed reports whether the run aborted with a divergence fault.
func (r *Result) Failed() bool {
	return r.Err != nil
}

// Results is the outcome of one sweep: the configuration it ran with, the
// reference trace every cell was scored against, and one Result per
// (method, dt) pair in method-major, config order.
type Results struct {
	Config  Config     `desc:"configuration the sweep ran with"`
	Ref     *lif.Trace `desc:"high-resolution exact reference trace"`
	Results []Result   `desc:"per-(method, dt) accuracy metrics"`
}

// For returns this method's results, in the config's dt order.
func (rs *Results) For(meth lif.Method) []Result {
	var out []Result
	for _, r := range rs.Results {
		if r.Method == meth {
			out = append(out, r)
		}
	}
	return out
}

// Run executes the sweep given by cfg: one exact reference run at RefDt,
// then every (method, dt) combination over the same constant-current input,
// scored against the reference.  Only configuration errors are returned;
// per-cell divergence faults land in the affected Result and the sweep
// continues.
func Run(cfg *Config) (*Results, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	dtRef := cfg.RefDt()
	ref := cfg.Params.SimulateExact(ConstantCurrent(cfg.Dur, dtRef, cfg.Amp), dtRef)
	refFirst, refOk := ref.FirstSpike()

	rs := &Results{Config: *cfg, Ref: ref}
	for _, meth := range cfg.Methods {
		for _, dt := range cfg.Dts {
			r := Result{
				Method:        meth,
				Dt:            dt,
				RefSpikes:     ref.SpikeCount(),
				FirstSpikeErr: math.NaN(),
				VmRMSE:        math.NaN(),
			}
			tr, err := cfg.Params.Simulate(meth, ConstantCurrent(cfg.Dur, dt, cfg.Amp), dt)
			if err != nil {
				r.Err = err
				r.Spikes = 0
				r.SpikeCountErr = -r.RefSpikes
			} else {
				r.Spikes = tr.SpikeCount()
				r.SpikeCountErr = r.Spikes - r.RefSpikes
				if ft, ok := tr.FirstSpike(); ok && refOk {
					r.FirstSpikeErr = ft - refFirst
				}
				r.VmRMSE = vmRMSE(tr, ref)
			}
			rs.Results = append(rs.Results, r)
		}
	}
	return rs, nil
}

// vmRMSE is the root-mean-square difference between a run's voltages and
// the reference's at shared physical time points.  Trace entry n holds the
// state after n+1 steps, so with the step ratio k = tr.Dt/ref.Dt run entry
// n pairs with reference entry (n+1)*k - 1.  Returns NaN when k is not a
// whole number, where no shared grid exists.
func vmRMSE(tr, ref *lif.Trace) float64 {
	k := tr.Dt / ref.Dt
	kr := math.Round(k)
	if kr < 1 || math.Abs(k-kr) > 1e-9*kr {
		return math.NaN()
	}
	step := int(kr)
	n := tr.Len()
	if rn := ref.Len() / step; rn < n {
		n = rn
	}
	if n == 0 {
		return math.NaN()
	}
	a := make([]float64, n)
	b := make([]float64, n)
	for idx := 0; idx < n; idx++ {
		a[idx] = tr.Vm[idx]
		b[idx] = ref.Vm[(idx+1)*step-1]
	}
	return math.Sqrt(metric.SumSquares64(a, b) / float64(n))
}
