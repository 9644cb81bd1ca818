// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compare

import (
	"strconv"

	"github.com/emer/etable/agg"
	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/emer/etable/split"
	"github.com/emer/lif/lif"
)

// Table returns the sweep results as an etable.Table, one row per
// (method, dt) cell in sweep order.  Failed cells carry Failed = 1 and NaN
// error metrics.
func (rs *Results) Table() *etable.Table {
	dt := &etable.Table{}
	dt.SetMetaData("name", "CompareResults")
	dt.SetMetaData("read-only", "true")
	dt.SetMetaData("precision", strconv.Itoa(lif.LogPrec))
	sch := etable.Schema{
		{Name: "Method", Type: etensor.STRING},
		{Name: "Dt", Type: etensor.FLOAT64},
		{Name: "Spikes", Type: etensor.INT64},
		{Name: "RefSpikes", Type: etensor.INT64},
		{Name: "SpikeCountErr", Type: etensor.INT64},
		{Name: "FirstSpikeErr", Type: etensor.FLOAT64},
		{Name: "VmRMSE", Type: etensor.FLOAT64},
		{Name: "Failed", Type: etensor.FLOAT64},
	}
	dt.SetFromSchema(sch, len(rs.Results))
	for n, r := range rs.Results {
		dt.SetCellString("Method", n, r.Method.String())
		dt.SetCellFloat("Dt", n, r.Dt)
		dt.SetCellFloat("Spikes", n, float64(r.Spikes))
		dt.SetCellFloat("RefSpikes", n, float64(r.RefSpikes))
		dt.SetCellFloat("SpikeCountErr", n, float64(r.SpikeCountErr))
		dt.SetCellFloat("FirstSpikeErr", n, r.FirstSpikeErr)
		dt.SetCellFloat("VmRMSE", n, r.VmRMSE)
		if r.Failed() {
			dt.SetCellFloat("Failed", n, 1)
		} else {
			dt.SetCellFloat("Failed", n, 0)
		}
	}
	return dt
}

// Summary returns per-method statistics over the sweep: the number of
// failed cells and descriptive stats of each error metric across the dt
// ladder, one row per method.
func (rs *Results) Summary() *etable.Table {
	ix := etable.NewIdxView(rs.Table())
	spl := split.GroupBy(ix, []string{"Method"})
	split.Agg(spl, "Failed", agg.AggSum)
	split.Desc(spl, "SpikeCountErr")
	split.Desc(spl, "FirstSpikeErr")
	split.Desc(spl, "VmRMSE")
	st := spl.AggsToTable(etable.AddAggName)
	st.SetMetaData("name", "CompareSummary")
	return st
}
