// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lif

import (
	"fmt"
	"strings"

	"github.com/goki/ki/kit"
)

// Method is the numerical integration method used to advance the membrane
// potential by one time step.  All methods share the same step contract and
// threshold / reset rule -- they differ only in how the continuous membrane
// equation is discretized, trading per-step accuracy against stability.
type Method int

//go:generate stringer -type=Method

var KiT_Method = kit.Enums.AddEnum(MethodN, kit.NotBitFlag, nil)

func (ev Method) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Method) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// Forward is explicit (forward) Euler integration: the simplest and
	// cheapest method, but only conditionally stable -- it can diverge when
	// dt/TauM is large, which the forward driver detects at run time.
	Forward Method = iota

	// Backward is implicit (backward) Euler integration, solved in closed
	// form: unconditionally stable for any dt > 0, at the cost of per-step
	// accuracy.
	Backward

	// Exact is exponential integration using the analytic solution of the
	// membrane equation under piecewise-constant input: exact at the sampled
	// points, and the reference that the other methods are compared against.
	Exact

	MethodN
)

// Methods returns the three integration methods in canonical order, for
// sweeps that run all of them.
func Methods() []Method {
	return []Method{Forward, Backward, Exact}
}

// ParseMethod returns the Method named by s, case-insensitively, for use
// with command-line flags and config files.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "forward":
		return Forward, nil
	case "backward":
		return Backward, nil
	case "exact":
		return Exact, nil
	}
	return MethodN, fmt.Errorf("lif: unknown integration method: %q (want forward, backward, or exact)", s)
}
