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
	"math"
	"sort"
)

// bracket locates a temperature within a table of temperature nodes.
// When lo == hi the temperature is clamped to, or exactly on, node lo.
// Otherwise it lies in [T_lo, T_hi) at fraction frac of the way along
// the interpolation coordinate.
type bracket struct {
	lo, hi int
	frac   float64
}

// at interpolates between the table values at the lower and upper nodes.
func (b bracket) at(l, r float64) float64 {
	if b.lo == b.hi {
		return l
	}
	return l + (r-l)*b.frac
}

// findBracket brackets t within the ascending nodes, interpolating in
// the coordinate given by transform.
func findBracket(nodes []float64, t float64, transform func(float64) float64) bracket {
	n := len(nodes)
	switch {
	case n == 1, t < nodes[0]:
		return bracket{}
	case t >= nodes[n-1]:
		return bracket{lo: n - 1, hi: n - 1}
	}
	hi := sort.Search(n, func(i int) bool { return nodes[i] > t })
	lo := hi - 1
	x0, x1 := transform(nodes[lo]), transform(nodes[hi])
	return bracket{lo: lo, hi: hi, frac: (transform(t) - x0) / (x1 - x0)}
}

// ktabBracket brackets t for k-table interpolation, which is linear in
// log10 temperature.
func ktabBracket(nodes []float64, t float64) bracket {
	return findBracket(nodes, t, math.Log10)
}

// interpolateOpacity fills the workspace k-table with the opacity of
// every active species at the temperature of every layer.
func interpolateOpacity(ctx context.Context, w *workspace) error {
	in := w.in
	nw, nl, ng, nt := in.NWavenumber, in.NLayers, in.NGauss, in.KtabNTemp
	brackets := make([]bracket, nl)
	for j, t := range in.Temperature {
		brackets[j] = ktabBracket(in.KtabTemp, t)
	}
	// Index of (species l, layer j, temperature node t, wavenumber wn, gauss g)
	// in the input table.
	src := func(l, j, t, wn, g int) int {
		return g + ng*(wn+nw*(t+nt*(j+nl*l)))
	}
	return forEachWavenumber(ctx, w.opts.NumProcessors, nw, func(_, wn int) error {
		for l := 0; l < in.NActive; l++ {
			for j, b := range brackets {
				for g := 0; g < ng; g++ {
					v := b.at(in.Ktab[src(l, j, b.lo, wn, g)], in.Ktab[src(l, j, b.hi, wn, g)])
					w.ktab.Elements[w.ktab.Index1d(l, j, wn, g)] = v
				}
			}
		}
		return nil
	})
}
