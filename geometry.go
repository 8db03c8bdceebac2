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

import "fmt"

// LayerThickness returns the thickness of each layer of the altitude
// grid z. The top layer is given the thickness of the interval below it.
func LayerThickness(z []float64) ([]float64, error) {
	if len(z) < 2 {
		return nil, fmt.Errorf("exoflux: %w: %d layers; need at least 2", ErrDegenerateGeometry, len(z))
	}
	if err := checkIncreasing(z); err != nil {
		return nil, err
	}
	dz := make([]float64, len(z))
	layerThickness(dz, z)
	return dz, nil
}

func layerThickness(dz, z []float64) {
	n := len(z)
	for j := 0; j < n-1; j++ {
		dz[j] = z[j+1] - z[j]
	}
	dz[n-1] = z[n-1] - z[n-2]
}

func checkIncreasing(z []float64) error {
	for j := 1; j < len(z); j++ {
		if !(z[j] > z[j-1]) {
			return fmt.Errorf("exoflux: %w: altitude %g at layer %d is not above %g at layer %d",
				ErrDegenerateGeometry, z[j], j, z[j-1], j-1)
		}
	}
	return nil
}
