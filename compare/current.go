// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compare

import "math"

// Steps returns the number of integration steps covering dur seconds at
// step width dt, rounding to the nearest whole step so that near-integer
// ratios like 1.0/2e-3 do not lose a step to float truncation.
func Steps(dur, dt float64) int {
	return int(math.Round(dur / dt))
}

// ConstantCurrent returns an input sequence of Steps(dur, dt) entries, each
// carrying the same current amp.
func ConstantCurrent(dur, dt, amp float64) []float64 {
	curr := make([]float64, Steps(dur, dt))
	for n := range curr {
		curr[n] = amp
	}
	return curr
}

// PulseCurrent returns an input sequence of Steps(dur, dt) entries carrying
// amp on steps whose time label lies in [on, off) and zero elsewhere, for
// stimulus-onset explorations.
func PulseCurrent(dur, dt, amp, on, off float64) []float64 {
	curr := make([]float64, Steps(dur, dt))
	for n := range curr {
		t := float64(n) * dt
		if t >= on && t < off {
			curr[n] = amp
		}
	}
	return curr
}
