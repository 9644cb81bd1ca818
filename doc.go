// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package lif is the overall repository for single-neuron leaky integrate-and-fire
(LIF) simulation code implemented in the Go language (golang), focused on
comparing the numerical behavior of different integration methods.

This top-level of the repository has no functional code -- everything is organized
into the following sub-repositories:

* lif: the core model -- membrane parameters, the three integration methods
(forward Euler, backward Euler, exact exponential) under one step contract with
shared threshold / reset spiking, and the simulation drivers that produce
time / voltage / spike traces.

* compare: the accuracy harness -- runs every method over a ladder of time steps
against a high-resolution exact reference and measures spike count, first spike
time, and voltage errors, with results as etable tables for logging and analysis.

* plots: headless rendering of voltage traces, spike rasters, and error-vs-dt
curves to PNG via gonum/plot.

* cmd/lifsim: the command line front-end that ties the above together, with
YAML configuration for sweeps.
*/
package lif
