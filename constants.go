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

	"github.com/ctessum/unit"
)

// Physical constants [SI]. The values are the CODATA 2010 ones used by
// the TauREx emission code so spectra can be compared directly.
const (
	PlanckConstant    = 6.62606957e-34 // [J s]
	SpeedOfLight      = 299792458.     // [m/s]
	BoltzmannConstant = 1.3806488e-23  // [J/K]
)

// Radiation constants for Planck's law, derived once with dimension
// checking: c1 = 2hc² [W m²] and c2 = hc/k [m K].
var (
	planckC1 float64
	planckC2 float64
)

func init() {
	h := unit.New(PlanckConstant, unit.Dimensions{unit.MassDim: 1, unit.LengthDim: 2, unit.TimeDim: -1})
	c := unit.New(SpeedOfLight, unit.MeterPerSecond)
	k := unit.New(BoltzmannConstant, unit.Dimensions{unit.MassDim: 1, unit.LengthDim: 2,
		unit.TimeDim: -2, unit.TemperatureDim: -1})

	c1 := unit.Mul(unit.New(2, unit.Dimless), h, c, c)
	if err := c1.Check(unit.Dimensions{unit.MassDim: 1, unit.LengthDim: 4, unit.TimeDim: -3}); err != nil {
		panic(fmt.Errorf("exoflux: first radiation constant: %v", err))
	}
	c2 := unit.Div(unit.Mul(h, c), k)
	if err := c2.Check(unit.Dimensions{unit.LengthDim: 1, unit.TemperatureDim: 1}); err != nil {
		panic(fmt.Errorf("exoflux: second radiation constant: %v", err))
	}
	planckC1 = c1.Value()
	planckC2 = c2.Value()
}

// Planck returns the blackbody spectral radiance [W m⁻² μm⁻¹ sr⁻¹] at
// wavenumber wn [cm⁻¹] and temperature t [K].
func Planck(wn, t float64) float64 {
	wl := 10000. / wn * 1.e-6 // wavelength [m]
	return planckC1 / math.Pow(wl, 5) / math.Expm1(planckC2/(wl*t)) * 1.e-6
}

// angle is one emission zenith angle cosine and its quadrature weight.
type angle struct {
	mu, weight float64
}

// singleAngle approximates the angular integral with one ray at μ = 0.66.
var singleAngle = []angle{{mu: 0.66, weight: 1}}

// fourAngles are the positive nodes and weights of 8-point Gauss-Legendre
// quadrature over [-1, 1].
var fourAngles = []angle{
	{mu: 0.1834346, weight: 0.3626838},
	{mu: 0.5255324, weight: 0.3137066},
	{mu: 0.7966665, weight: 0.2223810},
	{mu: 0.9602899, weight: 0.1012285},
}
