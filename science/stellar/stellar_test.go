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

package stellar

import (
	"math"
	"testing"

	"github.com/spatialmodel/exoflux"
)

func TestSED(t *testing.T) {
	wn := []float64{2000, 5000, 10000}
	sed, err := SED(wn, 5800)
	if err != nil {
		t.Fatal(err)
	}
	for i, w := range wn {
		want := math.Pi * exoflux.Planck(w, 5800)
		if sed[i] != want {
			t.Errorf("%g cm⁻¹: have %g, want %g", w, sed[i], want)
		}
	}
	// Integrated over wavelength, the surface flux approaches σT⁴.
	const sigma = 5.670373e-8
	var total float64
	for wl := 0.05; wl < 200; wl += 0.005 {
		s, err := SED([]float64{1.e4 / wl}, 5800)
		if err != nil {
			t.Fatal(err)
		}
		total += s[0] * 0.005
	}
	if want := sigma * math.Pow(5800, 4); math.Abs(total-want)/want > 1.e-3 {
		t.Errorf("integrated flux: have %g, want %g", total, want)
	}
	if _, err := SED(wn, 0); err == nil {
		t.Error("expected an error for zero temperature")
	}
}
