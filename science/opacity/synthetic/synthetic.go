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


// Package synthetic generates analytic k-distribution, collision-induced
// absorption and Rayleigh scattering tables. They have the layout of
// tabulated opacities and are used to drive exoflux without opacity
// data files.
package synthetic

import (
	"fmt"
	"math"

	"github.com/ctessum/sparse"
	"github.com/spatialmodel/exoflux"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate/quad"
)

// RefTemperature is the temperature [K] at which band strengths are
// specified.
const RefTemperature = 1000.

// Gas is an absorber with a single Gaussian absorption band.
type Gas struct {
	Name string

	// CrossSection is the band-center cross section at RefTemperature [m²].
	CrossSection float64

	// BandCenter and BandWidth define the band [cm⁻¹].
	BandCenter, BandWidth float64

	// TempExponent scales the cross section as (T/RefTemperature)^TempExponent.
	TempExponent float64

	// Spread is the number of decades the k-distribution spans within
	// each wavenumber bin.
	Spread float64

	// Rayleigh is the Rayleigh scattering cross section at 1 μm [m²].
	Rayleigh float64
}

// crossSection returns the mean cross section [m²] at wavenumber wn and
// temperature t.
func (g Gas) crossSection(wn, t float64) float64 {
	x := (wn - g.BandCenter) / g.BandWidth
	return g.CrossSection * math.Exp(-x*x/2) * math.Pow(t/RefTemperature, g.TempExponent)
}

// KTable is a k-distribution opacity table.
type KTable struct {
	// Data has dimensions [species][layer][temperature][wavenumber][gauss point].
	Data *sparse.DenseArray

	Temperature []float64 // temperature nodes [K]
	G           []float64 // cumulative probability of each gauss point
	Weights     []float64 // quadrature weight of each gauss point
}

// NewKTable returns a k-table for gases on nlayers identical layers at
// wavenumbers wn and temperature nodes temps, with ngauss Gauss-Legendre
// points over cumulative probability [0, 1].
func NewKTable(gases []Gas, nlayers int, wn, temps []float64, ngauss int) (*KTable, error) {
	if len(gases) == 0 || nlayers < 1 || len(wn) == 0 || len(temps) == 0 || ngauss < 1 {
		return nil, fmt.Errorf("synthetic: invalid k-table dimensions: %d gases, %d layers, %d wavenumbers, %d temperatures, %d gauss points",
			len(gases), nlayers, len(wn), len(temps), ngauss)
	}
	k := &KTable{
		Data:        sparse.ZerosDense(len(gases), nlayers, len(temps), len(wn), ngauss),
		Temperature: append([]float64(nil), temps...),
		G:           make([]float64, ngauss),
		Weights:     make([]float64, ngauss),
	}
	g, w := make([]float64, ngauss), make([]float64, ngauss)
	quad.Legendre{}.FixedLocations(g, w, 0, 1)
	// Legendre nodes come back in descending order; the table is built
	// with g ascending so that k increases with g.
	idx := make([]int, ngauss)
	floats.Argsort(g, idx)
	for i, j := range idx {
		k.G[i] = g[i]
		k.Weights[i] = w[j]
	}
	for l, gas := range gases {
		for t, temp := range temps {
			for w, v := range wn {
				sigma := gas.crossSection(v, temp)
				for g, x := range k.G {
					kv := sigma * math.Pow(10, gas.Spread*(x-0.5))
					for j := 0; j < nlayers; j++ {
						k.Data.Set(kv, l, j, t, w, g)
					}
				}
			}
		}
	}
	return k, nil
}

// Fill copies the table into in.
func (k *KTable) Fill(in *exoflux.Input) {
	in.NGauss = len(k.Weights)
	in.KtabNTemp = len(k.Temperature)
	in.Ktab = k.Data.Elements
	in.KtabTemp = k.Temperature
	in.KtabWeights = k.Weights
}

// Pair is a collision-induced absorption pair with a single Gaussian band.
type Pair struct {
	Name string

	// Strength is the band-center CIA coefficient at RefTemperature [m⁵].
	Strength float64

	BandCenter, BandWidth float64 // [cm⁻¹]

	// TempExponent scales the coefficient as (T/RefTemperature)^TempExponent.
	TempExponent float64
}

// CIATable is a collision-induced absorption table.
type CIATable struct {
	// Data has dimensions [pair][temperature][wavenumber].
	Data *sparse.DenseArray

	Temperature []float64 // temperature nodes [K]
}

// NewCIATable returns a CIA table for pairs at wavenumbers wn and
// temperature nodes temps.
func NewCIATable(pairs []Pair, wn, temps []float64) (*CIATable, error) {
	if len(pairs) == 0 || len(wn) == 0 || len(temps) == 0 {
		return nil, fmt.Errorf("synthetic: invalid CIA table dimensions: %d pairs, %d wavenumbers, %d temperatures",
			len(pairs), len(wn), len(temps))
	}
	c := &CIATable{
		Data:        sparse.ZerosDense(len(pairs), len(temps), len(wn)),
		Temperature: append([]float64(nil), temps...),
	}
	for p, pair := range pairs {
		for t, temp := range temps {
			for w, v := range wn {
				x := (v - pair.BandCenter) / pair.BandWidth
				c.Data.Set(pair.Strength*math.Exp(-x*x/2)*math.Pow(temp/RefTemperature, pair.TempExponent), p, t, w)
			}
		}
	}
	return c, nil
}

// Fill copies the table into in.
func (c *CIATable) Fill(in *exoflux.Input) {
	in.CIANTemp = len(c.Temperature)
	in.SigmaCIA = c.Data.Elements
	in.SigmaCIATemp = c.Temperature
}

// Rayleigh returns a Rayleigh scattering table, indexed [species][wavenumber],
// for species with cross sections sigma1um [m²] at a wavelength of 1 μm.
// Cross sections scale with the fourth power of wavenumber.
func Rayleigh(sigma1um, wn []float64) []float64 {
	out := make([]float64, len(sigma1um)*len(wn))
	for s, sigma := range sigma1um {
		for w, v := range wn {
			out[w+len(wn)*s] = sigma * math.Pow(v/1.e4, 4)
		}
	}
	return out
}
