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
	"fmt"
	"math"
	"time"

	"github.com/ctessum/sparse"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

// workspace holds the arrays derived from an Input during one call to
// PathIntegral. Nothing in it outlives the call.
type workspace struct {
	in   *Input
	opts Options

	dz []float64

	// ktab is the opacity at the layer temperatures, with dimensions
	// [species][layer][wavenumber][gauss point].
	ktab *sparse.DenseArray

	// cia is the CIA cross section at the layer temperatures, with
	// dimensions [pair][layer][wavenumber]. It is nil when there are no
	// CIA pairs, as are x1 and x2.
	cia *sparse.DenseArray

	// x1 and x2 are the mixing ratios of the first and second species of
	// each CIA pair, with dimensions [pair][layer].
	x1, x2 *mat.Dense

	// radiusRatio is (R_planet/R_star)².
	radiusRatio float64

	fpfs    []float64
	contrib *mat.Dense
}

// stage is one step of the emission calculation.
type stage struct {
	name string
	run  func(context.Context, *workspace) error
}

// stages are run in order by PathIntegral.
var stages = []stage{
	{"geometry", computeGeometry},
	{"opacity", interpolateOpacity},
	{"cia", interpolateCIA},
	{"mixing ratio", resolveMixingRatios},
	{"integrate", integrate},
}

// Result is the output of Spectrum.
type Result struct {
	// FpFs is the planet to star flux ratio at each wavenumber.
	FpFs []float64

	// Contribution is the fraction of emission from each layer (column)
	// that escapes the atmosphere at each wavenumber (row). The top layer
	// has no column.
	Contribution *mat.Dense
}

// Spectrum calculates the emission spectrum of in, allocating the output.
func Spectrum(ctx context.Context, in *Input, opts Options) (*Result, error) {
	if in == nil || in.NWavenumber < 1 || in.NLayers < 2 {
		// Let PathIntegral report the problem before mat.NewDense panics.
		return nil, PathIntegral(ctx, in, opts, nil, nil)
	}
	r := &Result{
		FpFs:         make([]float64, in.NWavenumber),
		Contribution: mat.NewDense(in.NWavenumber, in.NLayers-1, nil),
	}
	if err := PathIntegral(ctx, in, opts, r.FpFs, r.Contribution); err != nil {
		return nil, err
	}
	return r, nil
}

// PathIntegral calculates the thermal emission of the atmosphere in
// and writes the planet to star flux ratio into fpfs, which must have
// length in.NWavenumber, and the contribution function into contrib,
// which must have dimensions in.NWavenumber × (in.NLayers - 1).
// The input is validated before any work is done.
func PathIntegral(ctx context.Context, in *Input, opts Options, fpfs []float64, contrib *mat.Dense) error {
	if in == nil {
		return fmt.Errorf("exoflux: %w: input is nil", ErrShapeMismatch)
	}
	opts, err := opts.resolve(in)
	if err != nil {
		return err
	}
	if err = in.Validate(opts.IncludeRayleigh); err != nil {
		return err
	}
	if err = checkLen("fpfs", len(fpfs), in.NWavenumber); err != nil {
		return err
	}
	if contrib == nil {
		return fmt.Errorf("exoflux: %w: contribution matrix is nil", ErrShapeMismatch)
	}
	if r, c := contrib.Dims(); r != in.NWavenumber || c != in.NLayers-1 {
		return fmt.Errorf("exoflux: %w: contribution matrix is %d×%d; want %d×%d",
			ErrShapeMismatch, r, c, in.NWavenumber, in.NLayers-1)
	}
	ratio := in.PlanetRadius / in.StarRadius

	w := &workspace{
		in:          in,
		opts:        opts,
		dz:          make([]float64, in.NLayers),
		ktab:        sparse.ZerosDense(in.NActive, in.NLayers, in.NWavenumber, in.NGauss),
		radiusRatio: ratio * ratio,
		fpfs:        fpfs,
		contrib:     contrib,
	}
	if in.CIANPairs > 0 {
		w.cia = sparse.ZerosDense(in.CIANPairs, in.NLayers, in.NWavenumber)
	}

	for _, s := range stages {
		start := time.Now()
		if err := s.run(ctx, w); err != nil {
			return err
		}
		opts.Log.WithFields(logrus.Fields{
			"stage":    s.name,
			"duration": time.Since(start),
		}).Debug("exoflux: stage complete")
	}
	return checkFinite(fpfs, contrib)
}

func computeGeometry(_ context.Context, w *workspace) error {
	layerThickness(w.dz, w.in.Z)
	return nil
}

// continuum returns the optical depth of each layer at wavenumber wn from
// the enabled continuum sources, writing into dst.
func (w *workspace) continuum(dst []float64, wn int) {
	in := w.in
	for k := range dst {
		dst[k] = 0
	}
	if w.opts.IncludeCIA {
		for c := 0; c < in.CIANPairs; c++ {
			for k := range dst {
				n := in.Density[k]
				dst[k] += w.cia.Get(c, k, wn) * w.x1.At(c, k) * w.x2.At(c, k) * n * n * w.dz[k]
			}
		}
	}
	if w.opts.IncludeRayleigh {
		for s := 0; s < in.NActive+in.NInactive; s++ {
			x := in.MixingRatio(s)
			sigma := in.SigmaRayleigh[wn+in.NWavenumber*s]
			for k := range dst {
				dst[k] += sigma * x[k] * in.Density[k] * w.dz[k]
			}
		}
	}
}

// scratch is the per-goroutine working space of integrate.
type scratch struct {
	planck, cont, dtau, intensity []float64
}

// integrate carries out the radiative transfer integral for every
// wavenumber and k-distribution quadrature point.
func integrate(ctx context.Context, w *workspace) error {
	in := w.in
	nl := in.NLayers
	angles := w.opts.angles()
	continuum := w.opts.IncludeCIA && in.CIANPairs > 0 || w.opts.IncludeRayleigh

	scr := make([]scratch, w.opts.NumProcessors)
	for i := range scr {
		scr[i] = scratch{
			planck:    make([]float64, nl),
			cont:      make([]float64, nl),
			dtau:      make([]float64, nl),
			intensity: make([]float64, len(angles)),
		}
	}

	return forEachWavenumber(ctx, w.opts.NumProcessors, in.NWavenumber, func(p, wn int) error {
		s := scr[p]
		for j := 0; j < nl-1; j++ {
			s.planck[j] = Planck(in.Wavenumber[wn], in.Temperature[j])
		}
		if continuum {
			w.continuum(s.cont, wn)
		}
		contrib := w.contrib.RawRowView(wn)
		for j := range contrib {
			contrib[j] = 0
		}

		var flux float64
		for g, kw := range in.KtabWeights {
			for k := 0; k < nl; k++ {
				var kappa float64
				for l := 0; l < in.NActive; l++ {
					kappa += w.ktab.Get(l, k, wn, g)
				}
				s.dtau[k] = kappa*in.Density[k]*w.dz[k] + s.cont[k]
			}
			for i := range s.intensity {
				s.intensity[i] = 0
			}
			for j := 0; j < nl-1; j++ {
				var tau1 float64
				for k := j + 1; k < nl; k++ {
					tau1 += s.dtau[k]
				}
				tau2 := tau1 + s.dtau[j]
				if c := math.Exp(-tau1) - math.Exp(-tau2); w.opts.WeightedContribution {
					contrib[j] += kw * c
				} else {
					contrib[j] = c
				}
				for i, a := range angles {
					s.intensity[i] += s.planck[j] * (math.Exp(-tau1/a.mu) - math.Exp(-tau2/a.mu))
				}
			}
			var f float64
			for i, a := range angles {
				f += s.intensity[i] * a.mu * a.weight
			}
			flux += kw * 2 * math.Pi * f
		}
		w.fpfs[wn] = flux / in.StarSED[wn] * w.radiusRatio
		return nil
	})
}

func checkFinite(fpfs []float64, contrib *mat.Dense) error {
	for wn, v := range fpfs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("exoflux: %w: flux ratio %g at wavenumber index %d", ErrNumericOverflow, v, wn)
		}
	}
	r, c := contrib.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := contrib.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("exoflux: %w: contribution %g at wavenumber index %d, layer %d",
					ErrNumericOverflow, v, i, j)
			}
		}
	}
	return nil
}
