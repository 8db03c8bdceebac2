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

import "errors"

// Errors returned by PathIntegral. They are wrapped with details about
// the offending array, so check for them with errors.Is.
var (
	// ErrShapeMismatch is returned when an array length is inconsistent with
	// the declared dimensions.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrInvalidTemperatureTable is returned when table temperature nodes
	// are missing, not ascending or repeated.
	ErrInvalidTemperatureTable = errors.New("invalid temperature table")

	// ErrDegenerateGeometry is returned when there are fewer than two layers
	// or the altitude grid is not strictly increasing.
	ErrDegenerateGeometry = errors.New("degenerate geometry")

	// ErrNumericOverflow is returned when the flux ratio or contribution
	// function contains a non-finite value.
	ErrNumericOverflow = errors.New("numeric overflow")

	// ErrInvalidQuadrature is returned when the k-distribution weights are
	// negative or do not sum to one.
	ErrInvalidQuadrature = errors.New("invalid quadrature weights")

	// ErrNonPhysical is returned for non-positive temperatures, wavenumbers,
	// stellar fluxes or radii and for negative densities or opacities.
	ErrNonPhysical = errors.New("non-physical input")

	// ErrInvalidOptions is returned for unsupported Options values.
	ErrInvalidOptions = errors.New("invalid options")
)
