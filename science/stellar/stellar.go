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


// Package stellar provides stellar spectral energy distributions.
package stellar

import (
	"fmt"
	"math"

	"github.com/spatialmodel/exoflux"
)

// SED returns the flux [W m⁻² μm⁻¹] at the surface of a blackbody star of
// effective temperature t [K] at each wavenumber wn [cm⁻¹].
func SED(wn []float64, t float64) ([]float64, error) {
	if !(t > 0) {
		return nil, fmt.Errorf("stellar: temperature %g K", t)
	}
	sed := make([]float64, len(wn))
	for i, w := range wn {
		if !(w > 0) {
			return nil, fmt.Errorf("stellar: wavenumber %g cm⁻¹", w)
		}
		sed[i] = math.Pi * exoflux.Planck(w, t)
	}
	return sed, nil
}
