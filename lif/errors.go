// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lif

import (
	"errors"
	"fmt"
	"math"
)

// ErrDiverged is the sentinel for numerical divergence of the forward Euler
// method, for use with errors.Is.  The concrete error returned by
// SimulateForward is a *DivergenceError wrapping this.
var ErrDiverged = errors.New("membrane potential diverged")

// DivergenceError reports that a raw forward Euler update produced a
// non-finite voltage or one outside Params.VmRange.  It identifies the
// failing step so the caller can react, typically by reducing dt or the
// input current magnitude.  The backward and exact methods never produce
// this error: their updates are algebraically bounded for any dt > 0.
type DivergenceError struct {
	Step int     `desc:"index of the step whose update left the valid range"`
	Vm   float64 `desc:"the offending raw voltage, before any threshold / reset"`
}

func (e *DivergenceError) Error() string {
	if math.IsNaN(e.Vm) || math.IsInf(e.Vm, 0) {
		return fmt.Sprintf("lif: non-finite voltage at step %d: v=%g", e.Step, e.Vm)
	}
	return fmt.Sprintf("lif: voltage out of bounds at step %d: v=%g, consider reducing dt or input strength", e.Step, e.Vm)
}

func (e *DivergenceError) Unwrap() error { return ErrDiverged }
