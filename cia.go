/*
Copyright © 2026 the exoflux authors.
This file is part of exoflux.

exoflux is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

exoflux is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with exoflux.  If not, see <http://www.gnu.org/licenses/>.
*/

package exoflux

import (
	"context"

	"gonum.org/v1/gonum/mat"
)

// ciaBracket brackets t for CIA interpolation, which is linear in
// temperature.
func ciaBracket(nodes []float64, t float64) bracket {
	return findBracket(nodes, t, func(x float64) float64 { return x })
}

// interpolateCIA fills the workspace CIA table with the cross section
// of every pair at the temperature of every layer.
func interpolateCIA(ctx context.Context, w *workspace) error {
	in := w.in
	if in.CIANPairs == 0 {
		return nil
	}
	nw, nt := in.NWavenumber, in.CIANTemp
	brackets := make([]bracket, in.NLayers)
	for j, t := range in.Temperature {
		brackets[j] = ciaBracket(in.SigmaCIATemp, t)
	}
	return forEachWavenumber(ctx, w.opts.NumProcessors, nw, func(_, wn int) error {
		for c := 0; c < in.CIANPairs; c++ {
			for j, b := range brackets {
				l := in.SigmaCIA[wn+nw*(b.lo+nt*c)]
				r := in.SigmaCIA[wn+nw*(b.hi+nt*c)]
				w.cia.Elements[w.cia.Index1d(c, j, wn)] = b.at(l, r)
			}
		}
		return nil
	})
}

// resolveMixingRatios looks up the mixing-ratio profiles of both
// species of every CIA pair.
func resolveMixingRatios(_ context.Context, w *workspace) error {
	in := w.in
	if in.CIANPairs == 0 {
		return nil
	}
	w.x1 = mat.NewDense(in.CIANPairs, in.NLayers, nil)
	w.x2 = mat.NewDense(in.CIANPairs, in.NLayers, nil)
	for c := 0; c < in.CIANPairs; c++ {
		w.x1.SetRow(c, in.MixingRatio(in.CIAIdx[2*c]))
		w.x2.SetRow(c, in.MixingRatio(in.CIAIdx[2*c+1]))
	}
	return nil
}
