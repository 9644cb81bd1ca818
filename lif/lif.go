// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package lif implements a single-compartment leaky integrate-and-fire (LIF)
neuron under three numerical integration methods -- forward (explicit) Euler,
backward (implicit) Euler, and exact exponential integration -- sharing one
step contract and one threshold / reset spiking rule, so that the accuracy
and stability of the methods can be compared directly as a function of the
integration time step.

The membrane potential Vm evolves according to the standard current-based
LIF equation:

	TauM * dVm/dt = -(Vm - Rest) + R*I

with the input current I held constant over each step of width dt (in
seconds).  Whenever an update reaches the spike threshold Thr, the step
reports a spike and Vm is reset to Reset before it is returned or stored --
the suprathreshold value itself is never part of the trajectory.

The forward method is only conditionally stable: when dt is large relative
to TauM, successive updates overshoot and the voltage can grow without
bound.  Rather than hiding that, the forward simulation driver checks each
raw update against VmRange and aborts with a DivergenceError -- the behavior
of the method at a given dt is exactly what the comparison harness is
measuring.  The backward and exact methods are stable for any dt > 0 and
have no failure path.
*/
package lif

import (
	"fmt"
	"math"

	"github.com/emer/etable/minmax"
)

// Params are the constants of the current-based LIF membrane equation,
// shared by all three integration methods.  They are fixed for the duration
// of a run -- the simulation drivers read but never modify them.
type Params struct {
	TauM    float64    `def:"0.02" min:"0" desc:"membrane time constant in seconds -- how slowly Vm decays back toward Rest and integrates its input"`
	Rest    float64    `def:"0" desc:"resting potential that Vm decays toward in the absence of input -- also the initial Vm at the start of every run"`
	Reset   float64    `def:"0" desc:"potential that Vm is set to immediately after a spike -- should be below Thr, but that is the caller's responsibility (see Validate)"`
	Thr     float64    `def:"1" desc:"spike threshold -- an update that reaches or exceeds this value emits a spike and resets"`
	R       float64    `def:"1" min:"0" desc:"membrane resistance scaling the input current into the drive term R*I"`
	VmRange minmax.F64 `desc:"sanity bounds on the raw forward Euler update (defaults -1e3, 1e3) -- SimulateForward aborts with a DivergenceError when the update is non-finite or outside this range -- not consulted by the unconditionally stable backward and exact methods"`
}

func (lp *Params) Defaults() {
	lp.TauM = 0.02
	lp.Rest = 0
	lp.Reset = 0
	lp.Thr = 1
	lp.R = 1
	lp.VmRange.Set(-1e3, 1e3)
	lp.Update()
}

// Update must be called after any changes to parameters
func (lp *Params) Update() {
}

// Validate reports parameter values that violate the assumptions of the
// update rules.  The step methods and simulation drivers do not call this --
// they compute whatever the parameters imply -- but configuration front-ends
// should, to catch mistakes before a run.
func (lp *Params) Validate() error {
	if lp.TauM <= 0 {
		return fmt.Errorf("lif: TauM must be > 0, got %g", lp.TauM)
	}
	if lp.R <= 0 {
		return fmt.Errorf("lif: R must be > 0, got %g", lp.R)
	}
	if lp.Thr <= lp.Reset {
		return fmt.Errorf("lif: Thr (%g) must be above Reset (%g)", lp.Thr, lp.Reset)
	}
	if lp.VmRange.Min >= lp.VmRange.Max {
		return fmt.Errorf("lif: VmRange min (%g) must be below max (%g)", lp.VmRange.Min, lp.VmRange.Max)
	}
	return nil
}

// VInf returns the steady-state voltage Rest + R*i that Vm converges to
// under constant input current i, absent any threshold.
func (lp *Params) VInf(i float64) float64 {
	return lp.Rest + lp.R*i
}

// SpikeFmVm applies the shared threshold / reset rule to a candidate
// voltage: at or above Thr it returns (Reset, true), otherwise the value
// unchanged and false.  The reset is unconditional and has no hysteresis or
// refractory period -- integration resumes from Reset on the next step.
func (lp *Params) SpikeFmVm(vm float64) (float64, bool) {
	if vm >= lp.Thr {
		return lp.Reset, true
	}
	return vm, false
}

// ForwardVm returns the raw forward (explicit) Euler update of vm over one
// step of width dt under input current i, before any threshold is applied:
//
//	vm + (dt/TauM) * (-(vm - Rest) + R*i)
//
// This first-order explicit approximation is only conditionally stable: for
// dt/TauM well above 1 the updates alternate around and move away from the
// steady state, so the raw value is what SimulateForward validates against
// VmRange.
func (lp *Params) ForwardVm(vm, i, dt float64) float64 {
	return vm + (-(vm-lp.Rest)+lp.R*i)*(dt/lp.TauM)
}

// StepForward advances Vm by one forward (explicit) Euler step of width dt
// under input current i, returning the new voltage and whether it spiked.
// On a spiking step the returned voltage is Reset.
func (lp *Params) StepForward(vm, i, dt float64) (float64, bool) {
	return lp.SpikeFmVm(lp.ForwardVm(vm, i, dt))
}

// StepBackward advances Vm by one backward (implicit) Euler step of width dt
// under input current i.  The implicit relation is linear in the new
// voltage, so it solves in closed form with no iteration:
//
//	alpha = dt/TauM
//	vm' = (vm + alpha*(Rest + R*i)) / (1 + alpha)
//
// The update is a weighted average of vm and the steady state VInf(i), so it
// is unconditionally stable: bounded for any dt > 0, at first-order accuracy
// in dt.
func (lp *Params) StepBackward(vm, i, dt float64) (float64, bool) {
	alpha := dt / lp.TauM
	return lp.SpikeFmVm((vm + alpha*(lp.Rest+lp.R*i)) / (1 + alpha))
}

// StepExact advances Vm by one exact exponential-integration step of width
// dt under input current i, using the analytic solution of the membrane
// equation for input held constant over the step:
//
//	vm' = VInf(i) + (vm - VInf(i)) * exp(-dt/TauM)
//
// At the sampled time points this is exact -- the only remaining error is
// the piecewise-constant-input assumption itself -- so it serves as the
// reference the other methods are compared against, typically run at a much
// finer dt to sharpen spike timing.
func (lp *Params) StepExact(vm, i, dt float64) (float64, bool) {
	vinf := lp.VInf(i)
	return lp.SpikeFmVm(vinf + (vm-vinf)*math.Exp(-dt/lp.TauM))
}

// Step advances Vm by one step of the given integration method -- see
// StepForward, StepBackward, and StepExact for the per-method semantics.
func (lp *Params) Step(meth Method, vm, i, dt float64) (float64, bool) {
	switch meth {
	case Backward:
		return lp.StepBackward(vm, i, dt)
	case Exact:
		return lp.StepExact(vm, i, dt)
	default:
		return lp.StepForward(vm, i, dt)
	}
}
