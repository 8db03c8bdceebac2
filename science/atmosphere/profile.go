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

import (
	"fmt"

	"github.com/spatialmodel/exoflux"
)

// Config describes a model atmosphere.
type Config struct {
	Planet Planet

	// MaxPressure is the pressure at the bottom of the atmosphere [Pa].
	MaxPressure float64

	// NumScaleHeights is the number of scale heights spanned by the layers.
	NumScaleHeights float64

	// NLayers is the number of layers.
	NLayers int

	// Active and Inactive are the retrieved and fixed gases.
	Active, Inactive []Gas

	// CIAPairs are the collision-induced absorption pairs, e.g. "H2-He".
	CIAPairs []string

	// CoupleMu specifies whether the mean molecular weight is calculated
	// from the gas mixture. Otherwise MeanMolecularWeight is used.
	CoupleMu bool

	// MeanMolecularWeight [AMU].
	MeanMolecularWeight float64

	// Temperature gives the temperature profile.
	Temperature TPProfile
}

// Profile is a model atmosphere. All per-layer arrays are ordered from
// the bottom of the atmosphere up.
type Profile struct {
	Pressure    []float64 // [Pa]
	Temperature []float64 // [K]
	Altitude    []float64 // [m]
	Density     []float64 // [m⁻³]

	// MeanMolecularWeight is the mean molecular mass of each layer [kg].
	MeanMolecularWeight []float64

	Gravity     float64 // [m/s²]
	ScaleHeight float64 // [m]

	NActive, NInactive int

	// ActiveMixRatio and InactiveMixRatio are indexed [species][layer].
	ActiveMixRatio, InactiveMixRatio []float64

	// CIAIdx holds the species indices of the CIA pairs.
	CIAIdx []int
}

// New creates a model atmosphere from c.
func New(c *Config) (*Profile, error) {
	if c.Temperature == nil {
		return nil, fmt.Errorf("atmosphere: no temperature profile")
	}
	if !(c.Planet.Radius > 0) || !(c.Planet.Mass > 0) {
		return nil, fmt.Errorf("atmosphere: invalid planet %+v", c.Planet)
	}
	p, err := PressureProfile(c.MaxPressure, c.NumScaleHeights, c.NLayers)
	if err != nil {
		return nil, err
	}
	t, err := c.Temperature(p)
	if err != nil {
		return nil, err
	}
	if len(t) != len(p) {
		return nil, fmt.Errorf("atmosphere: %d temperatures for %d layers", len(t), len(p))
	}

	a := &Profile{
		Pressure:    p,
		Temperature: t,
		Gravity:     c.Planet.Gravity(),
		NActive:     len(c.Active),
		NInactive:   len(c.Inactive),
	}
	if c.CoupleMu {
		a.MeanMolecularWeight, err = CoupledMeanMolecularWeight(c.Active, c.Inactive, c.NLayers)
		if err != nil {
			return nil, err
		}
	} else {
		if !(c.MeanMolecularWeight > 0) {
			return nil, fmt.Errorf("atmosphere: mean molecular weight %g AMU", c.MeanMolecularWeight)
		}
		a.MeanMolecularWeight = make([]float64, c.NLayers)
		for i := range a.MeanMolecularWeight {
			a.MeanMolecularWeight[i] = c.MeanMolecularWeight * AMU
		}
	}
	a.ScaleHeight = ScaleHeight(t, a.MeanMolecularWeight, a.Gravity)
	a.Altitude = AltitudeProfile(p, c.MaxPressure, a.ScaleHeight)
	a.Density = DensityProfile(p, t)

	a.ActiveMixRatio = mixRatios(c.Active, c.NLayers)
	a.InactiveMixRatio = mixRatios(c.Inactive, c.NLayers)

	names := func(gases []Gas) []string {
		s := make([]string, len(gases))
		for i, g := range gases {
			s[i] = g.Name
		}
		return s
	}
	a.CIAIdx, err = CIAIndex(c.CIAPairs, names(c.Active), names(c.Inactive))
	if err != nil {
		return nil, err
	}
	return a, nil
}

func mixRatios(gases []Gas, nlayers int) []float64 {
	x := make([]float64, len(gases)*nlayers)
	for l, g := range gases {
		for j := 0; j < nlayers; j++ {
			x[j+nlayers*l] = g.MixRatio
		}
	}
	return x
}

// Fill copies the atmospheric profile into in, setting its layer and
// species dimensions.
func (a *Profile) Fill(in *exoflux.Input) {
	in.NLayers = len(a.Pressure)
	in.NActive = a.NActive
	in.NInactive = a.NInactive
	in.CIANPairs = len(a.CIAIdx) / 2
	in.CIANIdx = len(a.CIAIdx)
	in.Z = a.Altitude
	in.Density = a.Density
	in.Temperature = a.Temperature
	in.ActiveMixRatio = a.ActiveMixRatio
	in.InactiveMixRatio = a.InactiveMixRatio
	in.CIAIdx = a.CIAIdx
}
