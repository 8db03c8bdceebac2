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


// Package atmosphere builds layered model atmospheres: pressure,
// temperature, altitude, density and mixing-ratio profiles in the form
// exoflux.PathIntegral expects.
package atmosphere

import (
	"fmt"
	"math"
	"strings"

	"github.com/spatialmodel/exoflux"
	"gonum.org/v1/gonum/floats"
)

// Physical constants and unit conversions [SI].
const (
	GravitationalConstant = 6.67384e-11     // [m³ kg⁻¹ s⁻²]
	AMU                   = 1.660538921e-27 // atomic mass unit [kg]
	RJup                  = 6.9911e7        // Jupiter radius [m]
	MJup                  = 1.898e27        // Jupiter mass [kg]
	RSun                  = 6.955e8         // solar radius [m]
)

// Planet holds the bulk properties of a planet.
type Planet struct {
	Radius float64 // [m]
	Mass   float64 // [kg]
}

// Gravity returns the surface gravity [m/s²].
func (p Planet) Gravity() float64 {
	return GravitationalConstant * p.Mass / (p.Radius * p.Radius)
}

// PressureProfile returns nlayers pressures spaced evenly in log pressure
// from pmax at the bottom of the atmosphere to pmax·exp(-nscale) at the
// top.
func PressureProfile(pmax, nscale float64, nlayers int) ([]float64, error) {
	if nlayers < 2 {
		return nil, fmt.Errorf("atmosphere: %d layers; need at least 2", nlayers)
	}
	if !(pmax > 0) || !(nscale > 0) {
		return nil, fmt.Errorf("atmosphere: invalid pressure range: max %g Pa over %g scale heights", pmax, nscale)
	}
	p := floats.Span(make([]float64, nlayers), math.Log(pmax), math.Log(pmax)-nscale)
	for i, v := range p {
		p[i] = math.Exp(v)
	}
	p[0] = pmax
	return p, nil
}

// ScaleHeight returns the atmospheric scale height [m] averaged over the
// layers, given the layer temperatures [K], mean molecular masses [kg]
// and the gravity [m/s²].
func ScaleHeight(t, mu []float64, g float64) float64 {
	h := make([]float64, len(t))
	for i := range t {
		h[i] = exoflux.BoltzmannConstant * t[i] / (mu[i] * g)
	}
	return floats.Sum(h) / float64(len(h))
}

// AltitudeProfile returns the altitude [m] of each pressure level above
// the level at pmax for an atmosphere with scale height h.
func AltitudeProfile(p []float64, pmax, h float64) []float64 {
	z := make([]float64, len(p))
	for i, v := range p {
		z[i] = -h * math.Log(v/pmax)
	}
	return z
}

// DensityProfile returns the ideal-gas number density [m⁻³] at each level.
func DensityProfile(p, t []float64) []float64 {
	n := make([]float64, len(p))
	for i := range p {
		n[i] = p[i] / (exoflux.BoltzmannConstant * t[i])
	}
	return n
}

// CIAIndex converts CIA pair names such as "H2-He" into the species
// indices used by exoflux.Input.CIAIdx: the position of the gas among the
// active gases, or NActive plus its position among the inactive gases.
func CIAIndex(pairs, active, inactive []string) ([]int, error) {
	find := func(gas string) (int, bool) {
		for i, g := range active {
			if g == gas {
				return i, true
			}
		}
		for i, g := range inactive {
			if g == gas {
				return len(active) + i, true
			}
		}
		return 0, false
	}
	idx := make([]int, 0, 2*len(pairs))
	for _, pair := range pairs {
		gases := strings.Split(pair, "-")
		if len(gases) != 2 {
			return nil, fmt.Errorf("atmosphere: invalid CIA pair %q", pair)
		}
		for _, gas := range gases {
			i, ok := find(gas)
			if !ok {
				return nil, fmt.Errorf("atmosphere: CIA pair %q: gas %s is not in the atmosphere", pair, gas)
			}
			idx = append(idx, i)
		}
	}
	return idx, nil
}
