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
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Input holds one frozen snapshot of the atmosphere and the opacity tables
// it is seen through. All arrays are flat and row-major; the layout of
// each is given next to the field. PathIntegral never modifies an Input.
type Input struct {
	NWavenumber int // number of wavenumbers
	NLayers     int // number of atmospheric layers, bottom to top
	NActive     int // number of active (retrieved) gas species
	NInactive   int // number of inactive (fixed) gas species
	NGauss      int // number of k-distribution quadrature points
	KtabNTemp   int // number of k-table temperature nodes
	CIANPairs   int // number of collision-induced absorption pairs
	CIANIdx     int // length of CIAIdx, 2*CIANPairs
	CIANTemp    int // number of CIA temperature nodes

	// Wavenumber is the wavenumber grid [cm⁻¹].
	Wavenumber []float64

	// Ktab is the k-distribution opacity table, indexed
	// [species][layer][temperature node][wavenumber][gauss point].
	Ktab []float64

	// KtabTemp are the ascending k-table temperature nodes [K].
	KtabTemp []float64

	// KtabWeights are the k-distribution quadrature weights.
	KtabWeights []float64

	// SigmaRayleigh is the Rayleigh cross section, indexed
	// [species][wavenumber] with active species before inactive ones.
	// It is only read when Rayleigh scattering is enabled.
	SigmaRayleigh []float64

	// CIAIdx holds two species indices per CIA pair. Indices at or above
	// NActive refer to inactive species.
	CIAIdx []int

	// SigmaCIA is the CIA cross section, indexed
	// [pair][temperature node][wavenumber].
	SigmaCIA []float64

	// SigmaCIATemp are the ascending CIA temperature nodes [K].
	SigmaCIATemp []float64

	Density     []float64 // number density per layer
	Z           []float64 // altitude per layer
	Temperature []float64 // temperature per layer [K]

	// ActiveMixRatio and InactiveMixRatio are mixing ratios indexed
	// [species][layer].
	ActiveMixRatio   []float64
	InactiveMixRatio []float64

	// StarSED is the stellar flux at each wavenumber.
	StarSED []float64

	// PlanetRadius and StarRadius are in meters.
	PlanetRadius, StarRadius float64

	// Rayleigh and CIA are legacy switches. They are ignored unless
	// Options.HonorLegacyFlags is set.
	Rayleigh, CIA bool
}

// MixingRatio returns the mixing-ratio profile of species idx, where
// indices at or above NActive address the inactive species.
func (in *Input) MixingRatio(idx int) []float64 {
	if idx >= in.NActive {
		i := idx - in.NActive
		return in.InactiveMixRatio[i*in.NLayers : (i+1)*in.NLayers]
	}
	return in.ActiveMixRatio[idx*in.NLayers : (idx+1)*in.NLayers]
}

func checkLen(name string, have, want int) error {
	if have != want {
		return fmt.Errorf("exoflux: %w: %s has length %d; want %d", ErrShapeMismatch, name, have, want)
	}
	return nil
}

func checkPositive(name string, v []float64) error {
	for i, x := range v {
		if !(x > 0) || math.IsInf(x, 0) {
			return fmt.Errorf("exoflux: %w: %s[%d] = %g; must be positive", ErrNonPhysical, name, i, x)
		}
	}
	return nil
}

func checkNonNegative(name string, v []float64) error {
	for i, x := range v {
		if !(x >= 0) || math.IsInf(x, 0) {
			return fmt.Errorf("exoflux: %w: %s[%d] = %g; must not be negative", ErrNonPhysical, name, i, x)
		}
	}
	return nil
}

func checkAscending(name string, v []float64) error {
	if len(v) == 0 {
		return fmt.Errorf("exoflux: %w: %s is empty", ErrInvalidTemperatureTable, name)
	}
	for i := 1; i < len(v); i++ {
		if !(v[i] > v[i-1]) {
			return fmt.Errorf("exoflux: %w: %s[%d] = %g does not exceed %s[%d] = %g",
				ErrInvalidTemperatureTable, name, i, v[i], name, i-1, v[i-1])
		}
	}
	return nil
}

// Validate checks the dimensions and physical ranges of in. rayleigh
// specifies whether the Rayleigh table will be used.
func (in *Input) Validate(rayleigh bool) error {
	if in == nil {
		return fmt.Errorf("exoflux: %w: input is nil", ErrShapeMismatch)
	}
	if in.NLayers < 2 {
		return fmt.Errorf("exoflux: %w: %d layers; need at least 2", ErrDegenerateGeometry, in.NLayers)
	}
	if in.NWavenumber < 1 || in.NActive < 1 || in.NInactive < 0 || in.NGauss < 1 ||
		in.KtabNTemp < 1 || in.CIANPairs < 0 {
		return fmt.Errorf("exoflux: %w: nwngrid=%d, nactive=%d, ninactive=%d, ngauss=%d, ktab_ntemp=%d, cia_npairs=%d",
			ErrShapeMismatch, in.NWavenumber, in.NActive, in.NInactive, in.NGauss, in.KtabNTemp, in.CIANPairs)
	}
	if in.CIANIdx != 2*in.CIANPairs {
		return fmt.Errorf("exoflux: %w: cia_nidx=%d for %d pairs", ErrShapeMismatch, in.CIANIdx, in.CIANPairs)
	}
	if in.CIANPairs > 0 && in.CIANTemp < 1 {
		return fmt.Errorf("exoflux: %w: no CIA temperature nodes", ErrInvalidTemperatureTable)
	}

	nw, nl, nspec := in.NWavenumber, in.NLayers, in.NActive+in.NInactive
	for _, c := range []struct {
		name       string
		have, want int
	}{
		{"wavenumber", len(in.Wavenumber), nw},
		{"ktab", len(in.Ktab), in.NActive * nl * in.KtabNTemp * nw * in.NGauss},
		{"ktab_temp", len(in.KtabTemp), in.KtabNTemp},
		{"ktab_weights", len(in.KtabWeights), in.NGauss},
		{"cia_idx", len(in.CIAIdx), in.CIANIdx},
		{"sigma_cia", len(in.SigmaCIA), in.CIANPairs * in.CIANTemp * nw},
		{"density", len(in.Density), nl},
		{"z", len(in.Z), nl},
		{"temperature", len(in.Temperature), nl},
		{"active_mixratio", len(in.ActiveMixRatio), in.NActive * nl},
		{"inactive_mixratio", len(in.InactiveMixRatio), in.NInactive * nl},
		{"star_sed", len(in.StarSED), nw},
	} {
		if err := checkLen(c.name, c.have, c.want); err != nil {
			return err
		}
	}
	if in.CIANPairs > 0 {
		if err := checkLen("sigma_cia_temp", len(in.SigmaCIATemp), in.CIANTemp); err != nil {
			return err
		}
	}
	if rayleigh {
		if err := checkLen("sigma_rayleigh", len(in.SigmaRayleigh), nspec*nw); err != nil {
			return err
		}
	}
	for i, idx := range in.CIAIdx {
		if idx < 0 || idx >= nspec {
			return fmt.Errorf("exoflux: %w: cia_idx[%d] = %d; have %d species",
				ErrShapeMismatch, i, idx, nspec)
		}
	}

	if err := checkAscending("ktab_temp", in.KtabTemp); err != nil {
		return err
	}
	if in.CIANPairs > 0 {
		if err := checkAscending("sigma_cia_temp", in.SigmaCIATemp); err != nil {
			return err
		}
	}
	if err := checkIncreasing(in.Z); err != nil {
		return err
	}
	for i := 1; i < len(in.Wavenumber); i++ {
		if !(in.Wavenumber[i] > in.Wavenumber[i-1]) {
			return fmt.Errorf("exoflux: %w: wavenumber[%d] = %g does not exceed wavenumber[%d] = %g",
				ErrShapeMismatch, i, in.Wavenumber[i], i-1, in.Wavenumber[i-1])
		}
	}

	for _, c := range []struct {
		name string
		v    []float64
	}{
		{"wavenumber", in.Wavenumber},
		{"temperature", in.Temperature},
		{"ktab_temp", in.KtabTemp},
		{"sigma_cia_temp", in.SigmaCIATemp},
		{"star_sed", in.StarSED},
		{"radius", []float64{in.PlanetRadius, in.StarRadius}},
	} {
		if err := checkPositive(c.name, c.v); err != nil {
			return err
		}
	}
	for _, c := range []struct {
		name string
		v    []float64
	}{
		{"density", in.Density},
		{"ktab", in.Ktab},
		{"sigma_cia", in.SigmaCIA},
		{"active_mixratio", in.ActiveMixRatio},
		{"inactive_mixratio", in.InactiveMixRatio},
	} {
		if err := checkNonNegative(c.name, c.v); err != nil {
			return err
		}
	}
	if rayleigh {
		if err := checkNonNegative("sigma_rayleigh", in.SigmaRayleigh); err != nil {
			return err
		}
	}

	for i, w := range in.KtabWeights {
		if !(w >= 0) {
			return fmt.Errorf("exoflux: %w: ktab_weights[%d] = %g", ErrInvalidQuadrature, i, w)
		}
	}
	if s := floats.Sum(in.KtabWeights); math.Abs(s-1) > weightTolerance {
		return fmt.Errorf("exoflux: %w: ktab_weights sum to %g", ErrInvalidQuadrature, s)
	}
	return nil
}

// weightTolerance is how far the k-distribution weights may sum from one.
const weightTolerance = 1.e-6
