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

package fingerprint

import (
	"testing"

	"github.com/spatialmodel/exoflux"
)

func TestInput(t *testing.T) {
	a := &exoflux.Input{NWavenumber: 2, Wavenumber: []float64{1000, 2000}, Temperature: []float64{300, 310}}
	b := &exoflux.Input{NWavenumber: 2, Wavenumber: []float64{1000, 2000}, Temperature: []float64{300, 310}}
	if Input(a) != Input(b) {
		t.Errorf("equal inputs: %s != %s", Input(a), Input(b))
	}
	b.Temperature[1] = 311
	if Input(a) == Input(b) {
		t.Error("different inputs have the same fingerprint")
	}
	if len(Input(a)) != 16 {
		t.Errorf("fingerprint %q should have 16 characters", Input(a))
	}
}

func TestOfFallback(t *testing.T) {
	// gob cannot encode structs without exported fields.
	type private struct{ x int }
	if Of(private{x: 1}) == Of(private{x: 2}) {
		t.Error("different values have the same fingerprint")
	}
	if Of(private{x: 1}) != Of(private{x: 1}) {
		t.Error("equal values have different fingerprints")
	}
}
