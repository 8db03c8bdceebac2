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
	"errors"
	"math"
	"runtime"
	"testing"

	"github.com/kr/pretty"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const testTolerance = 1.e-10

func different(a, b, tolerance float64) bool {
	if 2*math.Abs(a-b)/math.Abs(a+b) > tolerance || math.IsNaN(a) || math.IsNaN(b) {
		return true
	}
	return false
}

// uniformInput returns an input with a single active species of constant
// opacity kappa, unit density and unit layer thickness.
func uniformInput(nw, nl int, kappa, temp float64) *Input {
	in := &Input{
		NWavenumber:  nw,
		NLayers:      nl,
		NActive:      1,
		NGauss:       1,
		KtabNTemp:    1,
		Ktab:         make([]float64, nl*nw),
		KtabTemp:     []float64{temp},
		KtabWeights:  []float64{1},
		Density:      make([]float64, nl),
		Z:            make([]float64, nl),
		Temperature:  make([]float64, nl),
		StarSED:      make([]float64, nw),
		PlanetRadius: 1,
		StarRadius:   1,
	}
	if nw == 1 {
		in.Wavenumber = []float64{1000}
	} else {
		in.Wavenumber = floats.Span(make([]float64, nw), 500, 2000)
	}
	in.ActiveMixRatio = make([]float64, nl)
	for i := range in.Ktab {
		in.Ktab[i] = kappa
	}
	for j := 0; j < nl; j++ {
		in.Density[j] = 1
		in.Z[j] = float64(j)
		in.Temperature[j] = temp
		in.ActiveMixRatio[j] = 1.e-4
	}
	for i := range in.StarSED {
		in.StarSED[i] = 1
	}
	return in
}

// layeredInput returns an input with two active species, two inactive
// species, several gauss points and temperature nodes and one CIA pair
// between an active and an inactive species.
func layeredInput() *Input {
	const (
		nw = 7
		nl = 12
		na = 2
		ni = 2
		ng = 3
		nt = 4
		nc = 1
		ct = 3
	)
	in := &Input{
		NWavenumber:      nw,
		NLayers:          nl,
		NActive:          na,
		NInactive:        ni,
		NGauss:           ng,
		KtabNTemp:        nt,
		CIANPairs:        nc,
		CIANIdx:          2 * nc,
		CIANTemp:         ct,
		Wavenumber:       floats.Span(make([]float64, nw), 400, 4000),
		Ktab:             make([]float64, na*nl*nt*nw*ng),
		KtabTemp:         []float64{400, 800, 1200, 2000},
		KtabWeights:      []float64{0.2, 0.5, 0.3},
		CIAIdx:           []int{0, 3},
		SigmaCIA:         make([]float64, nc*ct*nw),
		SigmaCIATemp:     []float64{300, 1000, 3000},
		SigmaRayleigh:    make([]float64, (na+ni)*nw),
		Density:          make([]float64, nl),
		Z:                make([]float64, nl),
		Temperature:      make([]float64, nl),
		ActiveMixRatio:   make([]float64, na*nl),
		InactiveMixRatio: make([]float64, ni*nl),
		StarSED:          make([]float64, nw),
		PlanetRadius:     6.9911e7,
		StarRadius:       6.955e8,
	}
	for i := range in.Ktab {
		in.Ktab[i] = 1.e-30 * float64(1+i%11)
	}
	for i := range in.SigmaCIA {
		in.SigmaCIA[i] = 1.e-50 * float64(1+i%5)
	}
	for i := range in.SigmaRayleigh {
		in.SigmaRayleigh[i] = 1.e-31 * float64(1+i%3)
	}
	for j := 0; j < nl; j++ {
		in.Z[j] = 5.e4 * float64(j)
		in.Temperature[j] = 1600 - 80*float64(j)
		in.Density[j] = 1.e25 * math.Exp(-float64(j)/2)
		for l := 0; l < na; l++ {
			in.ActiveMixRatio[j+nl*l] = 1.e-4 * float64(l+1)
		}
		in.InactiveMixRatio[j] = 0.85
		in.InactiveMixRatio[j+nl] = 0.15
	}
	for wn, w := range in.Wavenumber {
		in.StarSED[wn] = math.Pi * Planck(w, 5800)
	}
	return in
}

func TestScenarioContribution(t *testing.T) {
	in := uniformInput(1, 2, 0.01, 300)
	r, err := Spectrum(context.Background(), in, Options{})
	if err != nil {
		t.Fatal(err)
	}
	want := math.Exp(-0.01) - math.Exp(-0.02)
	if have := r.Contribution.At(0, 0); different(have, want, testTolerance) {
		t.Errorf("contribution: have %g, want %g", have, want)
	}
	wantFlux := 2 * math.Pi * 0.66 * Planck(1000, 300) *
		(math.Exp(-0.01/0.66) - math.Exp(-0.02/0.66))
	if different(r.FpFs[0], wantFlux, testTolerance) {
		t.Errorf("flux ratio: have %g, want %g", r.FpFs[0], wantFlux)
	}
}

func TestContributionNormalization(t *testing.T) {
	in := layeredInput()
	for _, opts := range []Options{
		{},
		{QuadratureAngles: 4},
		{IncludeCIA: true, IncludeRayleigh: true, QuadratureAngles: 4},
	} {
		r, err := Spectrum(context.Background(), in, opts)
		if err != nil {
			t.Fatal(err)
		}
		for wn := 0; wn < in.NWavenumber; wn++ {
			row := r.Contribution.RawRowView(wn)
			for j, v := range row {
				if v < 0 {
					t.Errorf("%+v: contribution(%d, %d) = %g < 0", opts, wn, j, v)
				}
			}
			if s := floats.Sum(row); s > 1+testTolerance {
				t.Errorf("%+v: contributions at wavenumber %d sum to %g", opts, wn, s)
			}
			if !(r.FpFs[wn] > 0) {
				t.Errorf("%+v: flux ratio at wavenumber %d is %g", opts, wn, r.FpFs[wn])
			}
		}
	}
}

func TestContinuumReducesFlux(t *testing.T) {
	in := layeredInput()
	base, err := Spectrum(context.Background(), in, Options{QuadratureAngles: 4})
	if err != nil {
		t.Fatal(err)
	}
	for _, opts := range []Options{
		{IncludeCIA: true, QuadratureAngles: 4},
		{IncludeRayleigh: true, QuadratureAngles: 4},
		{IncludeCIA: true, IncludeRayleigh: true, QuadratureAngles: 4},
	} {
		r, err := Spectrum(context.Background(), in, opts)
		if err != nil {
			t.Fatal(err)
		}
		for wn := range r.FpFs {
			if r.FpFs[wn] > base.FpFs[wn] {
				t.Errorf("%+v: flux ratio at wavenumber %d increased from %g to %g",
					opts, wn, base.FpFs[wn], r.FpFs[wn])
			}
		}
	}
}

func TestLegacyFlags(t *testing.T) {
	in := layeredInput()
	in.CIA = true
	in.Rayleigh = true
	ignored, err := Spectrum(context.Background(), in, Options{})
	if err != nil {
		t.Fatal(err)
	}
	base, err := Spectrum(context.Background(), layeredInput(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if diff := pretty.Diff(ignored.FpFs, base.FpFs); len(diff) > 0 {
		t.Errorf("legacy flags changed the result without HonorLegacyFlags: %v", diff)
	}

	honored, err := Spectrum(context.Background(), in, Options{HonorLegacyFlags: true})
	if err != nil {
		t.Fatal(err)
	}
	explicit, err := Spectrum(context.Background(), layeredInput(),
		Options{IncludeCIA: true, IncludeRayleigh: true})
	if err != nil {
		t.Fatal(err)
	}
	if diff := pretty.Diff(honored.FpFs, explicit.FpFs); len(diff) > 0 {
		t.Errorf("honored legacy flags: %v", diff)
	}
}

func TestSerialParallel(t *testing.T) {
	in := layeredInput()
	opts := Options{IncludeCIA: true, IncludeRayleigh: true, QuadratureAngles: 4}
	opts.NumProcessors = 1
	serial, err := Spectrum(context.Background(), in, opts)
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range []int{2, 3, runtime.GOMAXPROCS(0), 64} {
		opts.NumProcessors = n
		par, err := Spectrum(context.Background(), in, opts)
		if err != nil {
			t.Fatal(err)
		}
		if diff := pretty.Diff(serial.FpFs, par.FpFs); len(diff) > 0 {
			t.Errorf("%d processors: flux ratio: %v", n, diff)
		}
		if !mat.Equal(serial.Contribution, par.Contribution) {
			t.Errorf("%d processors: contribution differs", n)
		}
	}
}

func TestPathIntegralOutputShape(t *testing.T) {
	in := uniformInput(3, 4, 0.01, 300)
	err := PathIntegral(context.Background(), in, Options{}, make([]float64, 2), mat.NewDense(3, 3, nil))
	if !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("short flux ratio buffer: have %v", err)
	}
	err = PathIntegral(context.Background(), in, Options{}, make([]float64, 3), mat.NewDense(3, 4, nil))
	if !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("wide contribution matrix: have %v", err)
	}
	err = PathIntegral(context.Background(), in, Options{}, make([]float64, 3), nil)
	if !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("nil contribution matrix: have %v", err)
	}
}

func TestPathIntegralOverwrites(t *testing.T) {
	in := uniformInput(2, 3, 0.01, 300)
	fpfs := []float64{99, 99}
	contrib := mat.NewDense(2, 2, []float64{99, 99, 99, 99})
	if err := PathIntegral(context.Background(), in, Options{}, fpfs, contrib); err != nil {
		t.Fatal(err)
	}
	r, err := Spectrum(context.Background(), in, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if diff := pretty.Diff(fpfs, r.FpFs); len(diff) > 0 {
		t.Error(diff)
	}
	if !mat.Equal(contrib, r.Contribution) {
		t.Errorf("contribution: have %v, want %v", mat.Formatted(contrib), mat.Formatted(r.Contribution))
	}
}

func TestCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Spectrum(ctx, layeredInput(), Options{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("have %v, want %v", err, context.Canceled)
	}
}

func TestNumericOverflow(t *testing.T) {
	in := uniformInput(1, 2, 0.01, 300)
	in.StarSED[0] = 1.e-320
	_, err := Spectrum(context.Background(), in, Options{})
	if !errors.Is(err, ErrNumericOverflow) {
		t.Errorf("have %v, want %v", err, ErrNumericOverflow)
	}
}

// twoGaussInput returns a two-layer input with a weak and a strong
// k-distribution quadrature point of equal weight.
func twoGaussInput() *Input {
	in := uniformInput(1, 2, 0, 300)
	in.NGauss = 2
	in.KtabWeights = []float64{0.5, 0.5}
	in.Ktab = []float64{0.01, 1, 0.01, 1}
	return in
}

func TestContributionModes(t *testing.T) {
	weak := math.Exp(-0.01) - math.Exp(-0.02)
	strong := math.Exp(-1.) - math.Exp(-2.)
	for _, test := range []struct {
		opts Options
		want float64
	}{
		{opts: Options{}, want: strong},
		{opts: Options{WeightedContribution: true}, want: 0.5*weak + 0.5*strong},
	} {
		r, err := Spectrum(context.Background(), twoGaussInput(), test.opts)
		if err != nil {
			t.Fatal(err)
		}
		if have := r.Contribution.At(0, 0); different(have, test.want, testTolerance) {
			t.Errorf("%+v: have %g, want %g", test.opts, have, test.want)
		}
		b := Planck(1000, 300)
		wantFlux := 2 * math.Pi * 0.66 * b * (0.5*(math.Exp(-0.01/0.66)-math.Exp(-0.02/0.66)) +
			0.5*(math.Exp(-1/0.66)-math.Exp(-2/0.66)))
		if different(r.FpFs[0], wantFlux, testTolerance) {
			t.Errorf("%+v: flux ratio: have %g, want %g", test.opts, r.FpFs[0], wantFlux)
		}
	}
}

// checkTwoLayer checks the contribution and single-angle flux ratio of a
// two-layer input whose layers both have optical depth dtau.
func checkTwoLayer(t *testing.T, r *Result, dtau float64) {
	t.Helper()
	want := math.Exp(-dtau) - math.Exp(-2*dtau)
	if have := r.Contribution.At(0, 0); different(have, want, testTolerance) {
		t.Errorf("contribution: have %g, want %g", have, want)
	}
	wantFlux := 2 * math.Pi * 0.66 * Planck(1000, 300) * (math.Exp(-dtau/0.66) - math.Exp(-2*dtau/0.66))
	if different(r.FpFs[0], wantFlux, testTolerance) {
		t.Errorf("flux ratio: have %g, want %g", r.FpFs[0], wantFlux)
	}
}

// continuumInput returns a two-layer input with density 2, one active
// species with mixing ratio 0.5 and one inactive species with mixing
// ratio 0.4.
func continuumInput() *Input {
	in := uniformInput(1, 2, 0.01, 300)
	in.NInactive = 1
	in.Density = []float64{2, 2}
	in.ActiveMixRatio = []float64{0.5, 0.5}
	in.InactiveMixRatio = []float64{0.4, 0.4}
	return in
}

func TestCIAOpticalDepth(t *testing.T) {
	in := continuumInput()
	in.CIANPairs = 1
	in.CIANIdx = 2
	in.CIAIdx = []int{0, 1}
	in.CIANTemp = 1
	in.SigmaCIATemp = []float64{300}
	in.SigmaCIA = []float64{0.02}
	r, err := Spectrum(context.Background(), in, Options{IncludeCIA: true})
	if err != nil {
		t.Fatal(err)
	}
	// κn dz + σ x1 x2 n² dz
	checkTwoLayer(t, r, 0.01*2+0.02*0.5*0.4*2*2)
}

func TestRayleighOpticalDepth(t *testing.T) {
	in := continuumInput()
	in.SigmaRayleigh = []float64{0.03, 0.05}
	r, err := Spectrum(context.Background(), in, Options{IncludeRayleigh: true})
	if err != nil {
		t.Fatal(err)
	}
	// κn dz + Σ σ_s x_s n dz
	checkTwoLayer(t, r, 0.01*2+(0.03*0.5+0.05*0.4)*2)
}

func TestActiveSpeciesSum(t *testing.T) {
	in := uniformInput(1, 2, 0.01, 300)
	in.NActive = 2
	in.Ktab = []float64{0.01, 0.01, 0.03, 0.03}
	in.ActiveMixRatio = []float64{1.e-4, 1.e-4, 1.e-4, 1.e-4}
	r, err := Spectrum(context.Background(), in, Options{})
	if err != nil {
		t.Fatal(err)
	}
	checkTwoLayer(t, r, 0.04)
}

func TestFourAngleFlux(t *testing.T) {
	r, err := Spectrum(context.Background(), uniformInput(1, 2, 0.01, 300), Options{QuadratureAngles: 4})
	if err != nil {
		t.Fatal(err)
	}
	mu := []float64{0.1834346, 0.5255324, 0.7966665, 0.9602899}
	w := []float64{0.3626838, 0.3137066, 0.2223810, 0.1012285}
	var want float64
	for i := range mu {
		want += mu[i] * w[i] * Planck(1000, 300) * (math.Exp(-0.01/mu[i]) - math.Exp(-0.02/mu[i]))
	}
	want *= 2 * math.Pi
	if different(r.FpFs[0], want, testTolerance) {
		t.Errorf("have %g, want %g", r.FpFs[0], want)
	}
}

func TestRadiusRatio(t *testing.T) {
	base, err := Spectrum(context.Background(), uniformInput(1, 2, 0.01, 300), Options{})
	if err != nil {
		t.Fatal(err)
	}
	in := uniformInput(1, 2, 0.01, 300)
	in.PlanetRadius = 2
	in.StarRadius = 10
	r, err := Spectrum(context.Background(), in, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if want := 0.04 * base.FpFs[0]; different(r.FpFs[0], want, testTolerance) {
		t.Errorf("have %g, want %g", r.FpFs[0], want)
	}
}
