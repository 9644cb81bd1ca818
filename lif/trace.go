// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lif

import (
	"strconv"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
)

// LogPrec is the precision for saving float values in trace log tables
const LogPrec = 6

// Trace is the recorded trajectory of one simulation run: three parallel
// sequences with exactly one entry per input step.  Entry n holds the state
// after step n, labeled with time n*Dt.  A trace is append-only while a
// driver is running and should be treated as read-only afterward.
type Trace struct {
	Method Method    `desc:"integration method that produced this run"`
	Dt     float64   `desc:"fixed step width of the run, seconds"`
	Time   []float64 `desc:"time label of each entry: Time[n] = n*Dt"`
	Vm     []float64 `desc:"membrane potential after each step -- Reset on spiking steps, never the suprathreshold value"`
	Spike  []float64 `desc:"spike indicator per step: 1 on steps whose update crossed Thr, else 0"`
}

// NewTrace returns an empty trace for the given method and step width, with
// capacity preallocated for n steps.
func NewTrace(meth Method, n int, dt float64) *Trace {
	return &Trace{
		Method: meth,
		Dt:     dt,
		Time:   make([]float64, 0, n),
		Vm:     make([]float64, 0, n),
		Spike:  make([]float64, 0, n),
	}
}

// Add appends one step outcome, deriving its time label from the current
// length as Len()*Dt.
func (tr *Trace) Add(vm float64, spike bool) {
	tr.Time = append(tr.Time, float64(len(tr.Time))*tr.Dt)
	tr.Vm = append(tr.Vm, vm)
	if spike {
		tr.Spike = append(tr.Spike, 1)
	} else {
		tr.Spike = append(tr.Spike, 0)
	}
}

// Len returns the number of recorded steps.
func (tr *Trace) Len() int {
	return len(tr.Time)
}

// SpikeCount returns the number of spiking steps.
func (tr *Trace) SpikeCount() int {
	n := 0
	for _, s := range tr.Spike {
		if s > 0.5 {
			n++
		}
	}
	return n
}

// SpikeTimes returns the time labels of all spiking steps, in order.
func (tr *Trace) SpikeTimes() []float64 {
	var st []float64
	for n, s := range tr.Spike {
		if s > 0.5 {
			st = append(st, tr.Time[n])
		}
	}
	return st
}

// FirstSpike returns the time label of the first spiking step, and false if
// the run never spiked.
func (tr *Trace) FirstSpike() (float64, bool) {
	for n, s := range tr.Spike {
		if s > 0.5 {
			return tr.Time[n], true
		}
	}
	return 0, false
}

// Table returns the trace as an etable.Table with Time, Vm, and Spike
// columns, one row per step, ready for saving or plotting.
func (tr *Trace) Table() *etable.Table {
	dt := &etable.Table{}
	dt.SetMetaData("name", tr.Method.String()+"Trace")
	dt.SetMetaData("read-only", "true")
	dt.SetMetaData("precision", strconv.Itoa(LogPrec))
	sch := etable.Schema{
		{Name: "Time", Type: etensor.FLOAT64},
		{Name: "Vm", Type: etensor.FLOAT64},
		{Name: "Spike", Type: etensor.FLOAT64},
	}
	dt.SetFromSchema(sch, tr.Len())
	for n := range tr.Time {
		dt.SetCellFloat("Time", n, tr.Time[n])
		dt.SetCellFloat("Vm", n, tr.Vm[n])
		dt.SetCellFloat("Spike", n, tr.Spike[n])
	}
	return dt
}
