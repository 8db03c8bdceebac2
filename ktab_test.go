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
	"testing"

	"github.com/ctessum/sparse"
)

// opacityWorkspace interpolates the k-table of in and returns the
// workspace holding the result.
func opacityWorkspace(t *testing.T, in *Input) *workspace {
	opts, err := Options{}.resolve(in)
	if err != nil {
		t.Fatal(err)
	}
	w := &workspace{
		in:   in,
		opts: opts,
		ktab: sparse.ZerosDense(in.NActive, in.NLayers, in.NWavenumber, in.NGauss),
	}
	if err := interpolateOpacity(context.Background(), w); err != nil {
		t.Fatal(err)
	}
	return w
}

// twoNodeKtab returns an input whose k-table has nodes at 500 K and
// 1500 K with opacities 1 and 3 for every layer, wavenumber and gauss
// point.
func twoNodeKtab(temps ...float64) *Input {
	nl := len(temps)
	in := uniformInput(2, nl, 0, 500)
	in.KtabNTemp = 2
	in.KtabTemp = []float64{500, 1500}
	in.Ktab = make([]float64, nl*2*2)
	for j := 0; j < nl; j++ {
		for wn := 0; wn < 2; wn++ {
			in.Ktab[wn+2*(0+2*j)] = 1
			in.Ktab[wn+2*(1+2*j)] = 3
		}
	}
	copy(in.Temperature, temps)
	return in
}

func TestKtabClamp(t *testing.T) {
	w := opacityWorkspace(t, twoNodeKtab(100, 499.9, 1500, 1e4))
	want := []float64{1, 1, 3, 3}
	for j, v := range want {
		for wn := 0; wn < 2; wn++ {
			if have := w.ktab.Get(0, j, wn, 0); have != v {
				t.Errorf("layer %d wavenumber %d: have %g, want %g", j, wn, have, v)
			}
		}
	}
}

func TestKtabNodes(t *testing.T) {
	w := opacityWorkspace(t, twoNodeKtab(500, 1500))
	if have := w.ktab.Get(0, 0, 1, 0); have != 1 {
		t.Errorf("lower node: have %g, want 1", have)
	}
	if have := w.ktab.Get(0, 1, 1, 0); have != 3 {
		t.Errorf("upper node: have %g, want 3", have)
	}
}

func TestKtabLogInterpolation(t *testing.T) {
	// The geometric mean of the nodes is halfway in log temperature.
	temp := math.Sqrt(500 * 1500)
	w := opacityWorkspace(t, twoNodeKtab(temp, 1000))
	if have := w.ktab.Get(0, 0, 0, 0); different(have, 2, testTolerance) {
		t.Errorf("geometric mean: have %g, want 2", have)
	}
	want := 1 + 2*(math.Log10(1000)-math.Log10(500))/(math.Log10(1500)-math.Log10(500))
	if have := w.ktab.Get(0, 1, 0, 0); different(have, want, testTolerance) {
		t.Errorf("1000 K: have %g, want %g", have, want)
	}
}

func TestKtabLayout(t *testing.T) {
	in := layeredInput()
	w := opacityWorkspace(t, in)
	nw, nl, ng, nt := in.NWavenumber, in.NLayers, in.NGauss, in.KtabNTemp
	for l := 0; l < in.NActive; l++ {
		for j := 0; j < nl; j++ {
			b := ktabBracket(in.KtabTemp, in.Temperature[j])
			for wn := 0; wn < nw; wn++ {
				for g := 0; g < ng; g++ {
					lo := in.Ktab[g+ng*(wn+nw*(b.lo+nt*(j+nl*l)))]
					hi := in.Ktab[g+ng*(wn+nw*(b.hi+nt*(j+nl*l)))]
					want := lo + (hi-lo)*b.frac
					// ktab_interp is laid out [species][layer][wavenumber][gauss].
					have := w.ktab.Elements[g+ng*(wn+nw*(j+nl*l))]
					if different(have, want, testTolerance) {
						t.Errorf("species %d layer %d wavenumber %d gauss %d: have %g, want %g",
							l, j, wn, g, have, want)
					}
				}
			}
		}
	}
}

func TestFindBracket(t *testing.T) {
	nodes := []float64{100, 200, 400}
	for _, test := range []struct {
		t    float64
		want bracket
	}{
		{t: 50, want: bracket{}},
		{t: 100, want: bracket{lo: 0, hi: 1, frac: 0}},
		{t: 150, want: bracket{lo: 0, hi: 1, frac: 0.5}},
		{t: 200, want: bracket{lo: 1, hi: 2, frac: 0}},
		{t: 300, want: bracket{lo: 1, hi: 2, frac: 0.5}},
		{t: 400, want: bracket{lo: 2, hi: 2}},
		{t: 900, want: bracket{lo: 2, hi: 2}},
	} {
		if have := ciaBracket(nodes, test.t); have != test.want {
			t.Errorf("%g K: have %+v, want %+v", test.t, have, test.want)
		}
	}
	if have := ktabBracket([]float64{700}, 50); have != (bracket{}) {
		t.Errorf("single node: have %+v", have)
	}
}
