// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emer/lif/compare"
	"github.com/emer/lif/lif"
	"github.com/emer/lif/plots"
)

func newRunCmd() *cobra.Command {
	var (
		method   string
		dt       float64
		dur      float64
		amp      float64
		pulseOn  float64
		pulseOff float64
		tauM     float64
		rest     float64
		reset    float64
		thr      float64
		rm       float64
		outFile  string
		plotFile string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate one neuron and write its trace",
		Long: `run simulates a single LIF neuron under a constant or pulsed input
current and reports the spike count, optionally saving the trace as a TSV
table and a voltage plot as PNG.

A forward Euler run at a large dt can abort with a divergence error; that
is the method failing at that step size, and the error says so.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(cmd)

			meth, err := lif.ParseMethod(method)
			if err != nil {
				return err
			}
			lp := lif.Params{}
			lp.Defaults()
			lp.TauM = tauM
			lp.Rest = rest
			lp.Reset = reset
			lp.Thr = thr
			lp.R = rm
			lp.Update()
			if err := lp.Validate(); err != nil {
				return err
			}

			var curr []float64
			if pulseOff > pulseOn {
				curr = compare.PulseCurrent(dur, dt, amp, pulseOn, pulseOff)
			} else {
				curr = compare.ConstantCurrent(dur, dt, amp)
			}
			log.Debug("simulating", "method", meth.String(), "dt", dt, "steps", len(curr))

			tr, err := lp.Simulate(meth, curr, dt)
			if err != nil {
				return err
			}
			first, ok := tr.FirstSpike()
			if ok {
				log.Info("run complete", "method", meth.String(), "steps", tr.Len(),
					"spikes", tr.SpikeCount(), "first_spike", first)
			} else {
				log.Info("run complete", "method", meth.String(), "steps", tr.Len(), "spikes", 0)
			}

			if outFile != "" {
				if err := writeTable(tr.Table(), outFile); err != nil {
					return err
				}
				log.Info("saved trace", "file", outFile)
			}
			if plotFile != "" {
				png, err := plots.Traces(fmt.Sprintf("LIF %s, dt=%gs", meth, dt), lp.Thr,
					[]plots.LabeledTrace{{Label: meth.String(), Trace: tr}})
				if err != nil {
					return err
				}
				if err := plots.Save(plotFile, png); err != nil {
					return err
				}
				log.Info("saved plot", "file", plotFile)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&method, "method", "m", "exact", "Integration method: forward, backward, or exact")
	cmd.Flags().Float64Var(&dt, "dt", 1e-3, "Integration time step, seconds")
	cmd.Flags().Float64Var(&dur, "dur", 1.0, "Simulated duration, seconds")
	cmd.Flags().Float64Var(&amp, "amp", 1.5, "Input current amplitude")
	cmd.Flags().Float64Var(&pulseOn, "pulse-on", 0, "Pulse start time, seconds (used with --pulse-off)")
	cmd.Flags().Float64Var(&pulseOff, "pulse-off", 0, "Pulse end time, seconds; 0 means constant input")
	cmd.Flags().Float64Var(&tauM, "tau-m", 0.02, "Membrane time constant, seconds")
	cmd.Flags().Float64Var(&rest, "rest", 0, "Resting potential")
	cmd.Flags().Float64Var(&reset, "reset", 0, "Post-spike reset potential")
	cmd.Flags().Float64Var(&thr, "thr", 1.0, "Spike threshold")
	cmd.Flags().Float64Var(&rm, "r", 1.0, "Membrane resistance")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "Write the trace as TSV to this file")
	cmd.Flags().StringVar(&plotFile, "plot", "", "Write a voltage plot as PNG to this file")

	return cmd
}
