// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/emer/lif/compare"
	"github.com/emer/lif/lif"
)

// SweepConfig is the YAML form of a comparison sweep configuration.  Fields
// omitted from the file keep their defaults.
type SweepConfig struct {
	// Methods are the integration methods to test: forward, backward, exact.
	Methods []string `yaml:"methods"`

	// Dts are the time steps to test, in seconds, in reporting order.
	Dts []float64 `yaml:"dts"`

	// Dur is the duration of each simulated run, in seconds.
	Dur float64 `yaml:"dur"`

	// Amp is the constant input current amplitude.
	Amp float64 `yaml:"amp"`

	// RefDiv divides the smallest dt to get the reference time step.
	RefDiv float64 `yaml:"ref_div"`

	// Neuron sets the membrane parameters shared by every run.
	Neuron NeuronConfig `yaml:"neuron"`
}

// NeuronConfig is the YAML form of lif.Params.
type NeuronConfig struct {
	// TauM is the membrane time constant, in seconds.
	TauM float64 `yaml:"tau_m"`

	// Rest is the resting potential, also the initial voltage.
	Rest float64 `yaml:"rest"`

	// Reset is the post-spike reset potential.
	Reset float64 `yaml:"reset"`

	// Thr is the spike threshold.
	Thr float64 `yaml:"thr"`

	// R is the membrane resistance.
	R float64 `yaml:"r"`

	// VMin and VMax bound the raw forward Euler update; updates outside
	// [VMin, VMax] abort the run as diverged.
	VMin float64 `yaml:"v_min"`
	VMax float64 `yaml:"v_max"`
}

// Defaults fills the config with the standard sweep: all three methods
// over dts 5, 2, 1, 0.5, 0.1 ms, 1 s of a constant current of 1.5, default
// membrane parameters.
func (sc *SweepConfig) Defaults() {
	cf := compare.Config{}
	cf.Defaults()
	sc.Methods = make([]string, len(cf.Methods))
	for n, meth := range cf.Methods {
		sc.Methods[n] = strings.ToLower(meth.String())
	}
	sc.Dts = cf.Dts
	sc.Dur = cf.Dur
	sc.Amp = cf.Amp
	sc.RefDiv = cf.RefDiv
	sc.Neuron = NeuronConfig{
		TauM:  cf.Params.TauM,
		Rest:  cf.Params.Rest,
		Reset: cf.Params.Reset,
		Thr:   cf.Params.Thr,
		R:     cf.Params.R,
		VMin:  cf.Params.VmRange.Min,
		VMax:  cf.Params.VmRange.Max,
	}
}

// OpenYAML overlays this config with the values present in the given YAML
// file.
func (sc *SweepConfig) OpenYAML(fnm string) error {
	b, err := os.ReadFile(fnm)
	if err != nil {
		return fmt.Errorf("lifsim: read config: %w", err)
	}
	if err := yaml.Unmarshal(b, sc); err != nil {
		return fmt.Errorf("lifsim: parse config %s: %w", fnm, err)
	}
	return nil
}

// CompareConfig converts to the compare package's configuration, parsing
// method names and validating the result.
func (sc *SweepConfig) CompareConfig() (*compare.Config, error) {
	cf := &compare.Config{}
	cf.Methods = make([]lif.Method, 0, len(sc.Methods))
	for _, nm := range sc.Methods {
		meth, err := lif.ParseMethod(nm)
		if err != nil {
			return nil, err
		}
		cf.Methods = append(cf.Methods, meth)
	}
	cf.Dts = sc.Dts
	cf.Dur = sc.Dur
	cf.Amp = sc.Amp
	cf.RefDiv = sc.RefDiv
	cf.Params.Defaults()
	cf.Params.TauM = sc.Neuron.TauM
	cf.Params.Rest = sc.Neuron.Rest
	cf.Params.Reset = sc.Neuron.Reset
	cf.Params.Thr = sc.Neuron.Thr
	cf.Params.R = sc.Neuron.R
	cf.Params.VmRange.Set(sc.Neuron.VMin, sc.Neuron.VMax)
	cf.Params.Update()
	if err := cf.Validate(); err != nil {
		return nil, err
	}
	return cf, nil
}
