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
	"testing"

	"github.com/ctessum/sparse"
	"github.com/kr/pretty"
	"gonum.org/v1/gonum/mat"
)

func ciaWorkspace(t *testing.T, in *Input) *workspace {
	opts, err := Options{}.resolve(in)
	if err != nil {
		t.Fatal(err)
	}
	w := &workspace{
		in:   in,
		opts: opts,
		cia:  sparse.ZerosDense(in.CIANPairs, in.NLayers, in.NWavenumber),
	}
	for _, f := range []func(context.Context, *workspace) error{interpolateCIA, resolveMixingRatios} {
		if err := f(context.Background(), w); err != nil {
			t.Fatal(err)
		}
	}
	return w
}

// ciaInput returns an input with one CIA pair whose cross section is 2 at
// 1000 K and 6 at 2000 K.
func ciaInput(temps ...float64) *Input {
	in := uniformInput(3, len(temps), 0.01, 1000)
	in.CIANPairs = 1
	in.CIANIdx = 2
	in.CIANTemp = 2
	in.CIAIdx = []int{0, 0}
	in.SigmaCIATemp = []float64{1000, 2000}
	in.SigmaCIA = []float64{2, 2, 2, 6, 6, 6}
	copy(in.Temperature, temps)
	return in
}

func TestCIAMidpoint(t *testing.T) {
	w := ciaWorkspace(t, ciaInput(1500, 1250))
	for wn := 0; wn < 3; wn++ {
		if have := w.cia.Get(0, 0, wn); different(have, 4, testTolerance) {
			t.Errorf("midpoint wavenumber %d: have %g, want 4", wn, have)
		}
		if have := w.cia.Get(0, 1, wn); different(have, 3, testTolerance) {
			t.Errorf("quarter point wavenumber %d: have %g, want 3", wn, have)
		}
	}
}

func TestCIAClamp(t *testing.T) {
	w := ciaWorkspace(t, ciaInput(200, 1000, 2000, 5000))
	want := []float64{2, 2, 6, 6}
	for j, v := range want {
		if have := w.cia.Get(0, j, 1); have != v {
			t.Errorf("layer %d: have %g, want %g", j, have, v)
		}
	}
}

func TestCIASingleNode(t *testing.T) {
	in := ciaInput(300, 3000)
	in.CIANTemp = 1
	in.SigmaCIATemp = []float64{1000}
	in.SigmaCIA = []float64{5, 7, 9}
	w := ciaWorkspace(t, in)
	for j := 0; j < 2; j++ {
		for wn, want := range []float64{5, 7, 9} {
			if have := w.cia.Get(0, j, wn); have != want {
				t.Errorf("layer %d wavenumber %d: have %g, want %g", j, wn, have, want)
			}
		}
	}
}

func TestMixingRatioRouting(t *testing.T) {
	in := uniformInput(1, 3, 0.01, 300)
	in.NActive = 2
	in.NInactive = 2
	in.ActiveMixRatio = []float64{
		1, 2, 3, // active 0
		4, 5, 6, // active 1
	}
	in.InactiveMixRatio = []float64{
		7, 8, 9,    // inactive 0
		10, 11, 12, // inactive 1
	}
	in.CIANPairs = 2
	in.CIANIdx = 4
	in.CIAIdx = []int{1, 2, 3, 0}
	w := &workspace{in: in}
	if err := resolveMixingRatios(context.Background(), w); err != nil {
		t.Fatal(err)
	}
	want1 := mat.NewDense(2, 3, []float64{4, 5, 6, 10, 11, 12})
	want2 := mat.NewDense(2, 3, []float64{7, 8, 9, 1, 2, 3})
	if !mat.Equal(w.x1, want1) {
		t.Errorf("first species: have %v, want %v", mat.Formatted(w.x1), mat.Formatted(want1))
	}
	if !mat.Equal(w.x2, want2) {
		t.Errorf("second species: have %v, want %v", mat.Formatted(w.x2), mat.Formatted(want2))
	}
	if diff := pretty.Diff(in.MixingRatio(3), []float64{10, 11, 12}); len(diff) > 0 {
		t.Error(diff)
	}
}
