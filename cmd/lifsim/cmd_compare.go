// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/emer/emergent/timer"
	"github.com/emer/lif/compare"
	"github.com/emer/lif/plots"
)

func newCompareCmd() *cobra.Command {
	var (
		cfgFile string
		outDir  string
		plotDt  float64
		noPlots bool
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Sweep integration methods across time steps and score accuracy",
		Long: `compare runs every configured integration method at every configured
time step over the same constant-current input, scores each run against a
high-resolution exact reference, and writes the per-cell results and a
per-method summary as TSV tables, plus trace, raster, and error-vs-dt
plots, into the output directory.

A forward Euler divergence at some cell is recorded in the results and the
sweep continues.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(cmd)

			sc := SweepConfig{}
			sc.Defaults()
			if cfgFile != "" {
				if err := sc.OpenYAML(cfgFile); err != nil {
					return err
				}
				log.Debug("loaded config", "file", cfgFile)
			}
			cfg, err := sc.CompareConfig()
			if err != nil {
				return err
			}

			if err := os.MkdirAll(outDir, 0755); err != nil {
				return err
			}

			tmr := timer.Time{}
			tmr.Start()
			rs, err := compare.Run(cfg)
			tmr.Stop()
			if err != nil {
				return err
			}
			log.Info("sweep complete", "methods", len(cfg.Methods), "dts", len(cfg.Dts),
				"ref_spikes", rs.Ref.SpikeCount(), "took", tmr.Total)
			for _, r := range rs.Results {
				if r.Failed() {
					log.Warn("cell failed", "method", r.Method.String(), "dt", r.Dt, "err", r.Err)
				}
			}

			resFile := filepath.Join(outDir, "results.tsv")
			if err := writeTable(rs.Table(), resFile); err != nil {
				return err
			}
			sumFile := filepath.Join(outDir, "summary.tsv")
			if err := writeTable(rs.Summary(), sumFile); err != nil {
				return err
			}
			log.Info("saved tables", "results", resFile, "summary", sumFile)

			if noPlots {
				return nil
			}
			return writePlots(log, cfg, rs, outDir, plotDt)
		},
	}

	cmd.Flags().StringVarP(&cfgFile, "config", "c", "", "YAML sweep configuration file")
	cmd.Flags().StringVarP(&outDir, "out-dir", "d", "lif_compare", "Directory for tables and plots")
	cmd.Flags().Float64Var(&plotDt, "plot-dt", 1e-3, "Time step for the trace and raster plots, seconds")
	cmd.Flags().BoolVar(&noPlots, "no-plots", false, "Write only the tables")

	return cmd
}

// writePlots renders the single-dt trace and raster views plus the
// error-vs-dt curves.  Plots that cannot be rendered (e.g. every cell of a
// metric failed) are skipped with a warning; only file writes are fatal.
func writePlots(log *slog.Logger, cfg *compare.Config, rs *compare.Results, outDir string, plotDt float64) error {
	curr := compare.ConstantCurrent(cfg.Dur, plotDt, cfg.Amp)
	var trs []plots.LabeledTrace
	for _, meth := range cfg.Methods {
		tr, err := cfg.Params.Simulate(meth, curr, plotDt)
		if err != nil {
			log.Warn("skipping trace plot", "method", meth.String(), "dt", plotDt, "err", err)
			continue
		}
		trs = append(trs, plots.LabeledTrace{Label: meth.String(), Trace: tr})
	}

	if len(trs) > 0 {
		png, err := plots.Traces(fmt.Sprintf("LIF traces, dt=%gs", plotDt), cfg.Params.Thr, trs)
		if err := savePlot(log, outDir, "traces.png", png, err); err != nil {
			return err
		}
		png, err = plots.Raster(fmt.Sprintf("LIF spike raster, dt=%gs", plotDt), trs)
		if err := savePlot(log, outDir, "raster.png", png, err); err != nil {
			return err
		}
	}

	png, err := plots.ErrorVsDt("Spike count error vs dt", "spike count error", rs,
		func(r compare.Result) float64 { return float64(r.SpikeCountErr) })
	if err := savePlot(log, outDir, "spike_count_err.png", png, err); err != nil {
		return err
	}
	png, err = plots.ErrorVsDt("First spike time error vs dt", "first spike error (s)", rs,
		func(r compare.Result) float64 { return r.FirstSpikeErr })
	if err := savePlot(log, outDir, "first_spike_err.png", png, err); err != nil {
		return err
	}
	png, err = plots.ErrorVsDt("Voltage RMSE vs dt", "Vm RMSE", rs,
		func(r compare.Result) float64 { return r.VmRMSE })
	return savePlot(log, outDir, "vm_rmse.png", png, err)
}

// savePlot writes one rendered plot, treating render errors as skips and
// write errors as fatal.
func savePlot(log *slog.Logger, outDir, name string, png []byte, err error) error {
	if err != nil {
		log.Warn("skipping plot", "file", name, "err", err)
		return nil
	}
	fnm := filepath.Join(outDir, name)
	if err := plots.Save(fnm, png); err != nil {
		return err
	}
	log.Info("saved plot", "file", fnm)
	return nil
}
