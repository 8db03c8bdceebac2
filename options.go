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
	"runtime"

	"github.com/sirupsen/logrus"
)

// Options controls how PathIntegral evaluates the emission integral.
// The zero value is usable: it selects single-angle quadrature, all
// available processors and the standard logrus logger.
type Options struct {
	// IncludeCIA adds the collision-induced absorption continuum to the
	// layer optical depths.
	IncludeCIA bool

	// IncludeRayleigh adds the Rayleigh scattering continuum to the layer
	// optical depths.
	IncludeRayleigh bool

	// QuadratureAngles is the number of emission angles, either 1 or 4.
	// 0 means 1.
	QuadratureAngles int

	// WeightedContribution makes the contribution function the sum over
	// k-distribution quadrature points weighted by KtabWeights. Otherwise
	// it holds the value for the last quadrature point.
	WeightedContribution bool

	// HonorLegacyFlags makes the Rayleigh and CIA flags carried by Input
	// switch the continua on in addition to IncludeRayleigh and IncludeCIA.
	HonorLegacyFlags bool

	// NumProcessors is the number of goroutines the wavenumber loop is
	// split across. 0 means runtime.GOMAXPROCS(0).
	NumProcessors int

	// Log receives progress information. nil means logrus.StandardLogger().
	Log logrus.FieldLogger
}

// DefaultOptions returns the options used by the command-line tool:
// four-angle quadrature with both continua enabled and a weighted
// contribution function.
func DefaultOptions() Options {
	return Options{
		IncludeCIA:           true,
		IncludeRayleigh:      true,
		QuadratureAngles:     4,
		WeightedContribution: true,
	}
}

// resolve fills in zero-valued fields and checks the rest.
func (o Options) resolve(in *Input) (Options, error) {
	switch o.QuadratureAngles {
	case 0:
		o.QuadratureAngles = 1
	case 1, 4:
	default:
		return o, fmt.Errorf("exoflux: %w: %d quadrature angles; must be 1 or 4",
			ErrInvalidOptions, o.QuadratureAngles)
	}
	if o.NumProcessors < 0 {
		return o, fmt.Errorf("exoflux: %w: %d processors", ErrInvalidOptions, o.NumProcessors)
	}
	if o.NumProcessors == 0 {
		o.NumProcessors = runtime.GOMAXPROCS(0)
	}
	if o.Log == nil {
		o.Log = logrus.StandardLogger()
	}
	if o.HonorLegacyFlags && in != nil {
		o.IncludeCIA = o.IncludeCIA || in.CIA
		o.IncludeRayleigh = o.IncludeRayleigh || in.Rayleigh
	}
	return o, nil
}

func (o Options) angles() []angle {
	if o.QuadratureAngles == 4 {
		return fourAngles
	}
	return singleAngle
}
