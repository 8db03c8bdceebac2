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

package synthetic

import "fmt"

// gases holds representative band parameters for common atmospheric
// absorbers. Gases without an infrared band only scatter.
var gases = map[string]Gas{
	"H2O": {Name: "H2O", CrossSection: 2.e-25, BandCenter: 1600, BandWidth: 450, TempExponent: 0.5, Spread: 3, Rayleigh: 2.3e-31},
	"CH4": {Name: "CH4", CrossSection: 1.e-25, BandCenter: 3000, BandWidth: 250, TempExponent: 0.3, Spread: 3, Rayleigh: 4.5e-31},
	"CO":  {Name: "CO", CrossSection: 5.e-26, BandCenter: 2150, BandWidth: 90, TempExponent: 0.8, Spread: 2, Rayleigh: 2.6e-31},
	"CO2": {Name: "CO2", CrossSection: 4.e-25, BandCenter: 2350, BandWidth: 60, TempExponent: 0.6, Spread: 3, Rayleigh: 5.9e-31},
	"NH3": {Name: "NH3", CrossSection: 8.e-26, BandCenter: 950, BandWidth: 150, TempExponent: 0.4, Spread: 2, Rayleigh: 3.4e-31},
	"H2":  {Name: "H2", Rayleigh: 9.2e-32},
	"He":  {Name: "He", Rayleigh: 5.6e-33},
	"N2":  {Name: "N2", Rayleigh: 2.6e-31},
}

// pairs holds representative collision-induced absorption bands.
var pairs = map[string]Pair{
	"H2-H2": {Name: "H2-H2", Strength: 1.e-56, BandCenter: 4200, BandWidth: 1500, TempExponent: 0.5},
	"H2-He": {Name: "H2-He", Strength: 4.e-57, BandCenter: 4500, BandWidth: 2000, TempExponent: 0.5},
	"N2-N2": {Name: "N2-N2", Strength: 2.e-58, BandCenter: 2330, BandWidth: 200, TempExponent: 0.2},
}

// LookupGas returns the catalogued parameters of the named gas.
func LookupGas(name string) (Gas, error) {
	g, ok := gases[name]
	if !ok {
		return Gas{}, fmt.Errorf("synthetic: no opacity data for gas %s", name)
	}
	return g, nil
}

// LookupPair returns the catalogued parameters of the named CIA pair.
func LookupPair(name string) (Pair, error) {
	p, ok := pairs[name]
	if !ok {
		return Pair{}, fmt.Errorf("synthetic: no CIA data for pair %s", name)
	}
	return p, nil
}
