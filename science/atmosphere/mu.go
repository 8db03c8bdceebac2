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

package atmosphere

import "fmt"

// molecularWeights are molar masses [AMU].
var molecularWeights = map[string]float64{
	"H2":   2.01588,
	"He":   4.002602,
	"H2O":  18.01528,
	"CH4":  16.04246,
	"CO":   28.0101,
	"CO2":  44.0095,
	"NH3":  17.03052,
	"N2":   28.0134,
	"O2":   31.9988,
	"O3":   47.9982,
	"HCN":  27.0253,
	"C2H2": 26.0373,
	"C2H6": 30.069,
	"TiO":  63.8664,
	"VO":   66.9409,
	"Na":   22.98977,
	"K":    39.0983,
}

// MolecularWeight returns the molar mass of gas [AMU].
func MolecularWeight(gas string) (float64, error) {
	mw, ok := molecularWeights[gas]
	if !ok {
		return 0, fmt.Errorf("atmosphere: unknown molecular weight for gas %s", gas)
	}
	return mw, nil
}

// Gas is a constituent of the atmosphere with a uniform mixing ratio.
type Gas struct {
	Name     string
	MixRatio float64
}

// CoupledMeanMolecularWeight returns the mean molecular mass [kg] of
// each of nlayers layers. The inactive gases fill the part of the
// atmosphere not taken up by the active gases, so their mixing ratios
// are scaled by one minus the total active mixing ratio.
func CoupledMeanMolecularWeight(active, inactive []Gas, nlayers int) ([]float64, error) {
	var activeTotal, mu float64
	for _, g := range active {
		mw, err := MolecularWeight(g.Name)
		if err != nil {
			return nil, err
		}
		activeTotal += g.MixRatio
		mu += g.MixRatio * mw
	}
	for _, g := range inactive {
		mw, err := MolecularWeight(g.Name)
		if err != nil {
			return nil, err
		}
		mu += g.MixRatio * (1 - activeTotal) * mw
	}
	out := make([]float64, nlayers)
	for i := range out {
		out[i] = mu * AMU
	}
	return out, nil
}
