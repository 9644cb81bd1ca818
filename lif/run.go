// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lif

import "math"

// Simulate runs one neuron from Vm = Rest under the given integration
// method.  Each entry of curr is the input current held constant over one
// step of width dt (seconds), and each step appends one entry to the
// returned trace, so a completed trace always has exactly len(curr) entries.
// Runs are deterministic: the same method, parameters, input, and dt always
// produce an identical trace.
//
// Only the Forward method can fail, returning a nil trace and a
// *DivergenceError when an update diverges -- see SimulateForward.  Backward
// and Exact always succeed.
func (lp *Params) Simulate(meth Method, curr []float64, dt float64) (*Trace, error) {
	switch meth {
	case Backward:
		return lp.SimulateBackward(curr, dt), nil
	case Exact:
		return lp.SimulateExact(curr, dt), nil
	default:
		return lp.SimulateForward(curr, dt)
	}
}

// SimulateForward runs forward (explicit) Euler integration over curr.
// After computing each raw update it verifies that the value is finite and
// within VmRange before applying the threshold: a runaway update would
// otherwise be masked by the reset whenever it lands above Thr.  On a
// violation the whole run aborts with a nil trace and a *DivergenceError
// identifying the step -- there are no partial traces.
func (lp *Params) SimulateForward(curr []float64, dt float64) (*Trace, error) {
	tr := NewTrace(Forward, len(curr), dt)
	vm := lp.Rest
	for n, i := range curr {
		raw := lp.ForwardVm(vm, i, dt)
		if math.IsNaN(raw) || math.IsInf(raw, 0) || raw < lp.VmRange.Min || raw > lp.VmRange.Max {
			return nil, &DivergenceError{Step: n, Vm: raw}
		}
		var spk bool
		vm, spk = lp.SpikeFmVm(raw)
		tr.Add(vm, spk)
	}
	return tr, nil
}

// SimulateBackward runs backward (implicit) Euler integration over curr.
// The closed-form implicit update is bounded for any dt > 0, so there is no
// divergence check and no failure path.
func (lp *Params) SimulateBackward(curr []float64, dt float64) *Trace {
	tr := NewTrace(Backward, len(curr), dt)
	vm := lp.Rest
	var spk bool
	for _, i := range curr {
		vm, spk = lp.StepBackward(vm, i, dt)
		tr.Add(vm, spk)
	}
	return tr
}

// SimulateExact runs exact exponential integration over curr.  Like
// SimulateBackward it is unconditionally stable and cannot fail.
func (lp *Params) SimulateExact(curr []float64, dt float64) *Trace {
	tr := NewTrace(Exact, len(curr), dt)
	vm := lp.Rest
	var spk bool
	for _, i := range curr {
		vm, spk = lp.StepExact(vm, i, dt)
		tr.Add(vm, spk)
	}
	return tr
}
