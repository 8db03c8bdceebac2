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

package exofluxutil

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/Knetic/govaluate"
	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/exoflux"
	"github.com/spatialmodel/exoflux/science/atmosphere"
	"github.com/spatialmodel/exoflux/science/opacity/synthetic"
	"github.com/spatialmodel/exoflux/science/stellar"
	"github.com/spf13/cast"
	"gonum.org/v1/gonum/floats"
)

// RunConfig holds the configuration for a spectrum calculation.
type RunConfig struct {
	Planet atmosphere.Planet

	StarRadius      float64 // [m]
	StarTemperature float64 // [K]

	MaxPressure         float64 // [Pa]
	NumScaleHeights     float64
	NLayers             int
	Temperature         string // expression
	TPProfile           string // expression, isothermal, 2point or 3point
	TPParams            []float64
	CorrelationLength   float64
	Active, Inactive    []atmosphere.Gas
	CIAPairs            []string
	CoupleMu            bool
	MeanMolecularWeight float64 // [AMU]

	MinWavenumber, MaxWavenumber float64 // [cm⁻¹]
	NWavenumber                  int

	NGauss              int
	OpacityTemperatures []float64 // [K]

	Options exoflux.Options
}

// ReadRunConfig reads a run configuration from cfg.
func ReadRunConfig(cfg *viper.Viper) (*RunConfig, error) {
	activeX, err := toFloat64SliceE(cfg.Get("Atmosphere.ActiveMixRatios"))
	if err != nil {
		return nil, fmt.Errorf("exoflux: Atmosphere.ActiveMixRatios: %v", err)
	}
	inactiveX, err := toFloat64SliceE(cfg.Get("Atmosphere.InactiveMixRatios"))
	if err != nil {
		return nil, fmt.Errorf("exoflux: Atmosphere.InactiveMixRatios: %v", err)
	}
	tpParams, err := toFloat64SliceE(cfg.Get("Atmosphere.TPParams"))
	if err != nil {
		return nil, fmt.Errorf("exoflux: Atmosphere.TPParams: %v", err)
	}
	temps, err := toFloat64SliceE(cfg.Get("Opacity.Temperatures"))
	if err != nil {
		return nil, fmt.Errorf("exoflux: Opacity.Temperatures: %v", err)
	}
	active, err := gasList("Atmosphere.ActiveGases", cfg.GetStringSlice("Atmosphere.ActiveGases"), activeX)
	if err != nil {
		return nil, err
	}
	inactive, err := gasList("Atmosphere.InactiveGases", cfg.GetStringSlice("Atmosphere.InactiveGases"), inactiveX)
	if err != nil {
		return nil, err
	}

	c := &RunConfig{
		Planet: atmosphere.Planet{
			Radius: cfg.GetFloat64("Planet.Radius") * atmosphere.RJup,
			Mass:   cfg.GetFloat64("Planet.Mass") * atmosphere.MJup,
		},
		StarRadius:          cfg.GetFloat64("Star.Radius") * atmosphere.RSun,
		StarTemperature:     cfg.GetFloat64("Star.Temperature"),
		MaxPressure:         cfg.GetFloat64("Atmosphere.MaxPressure"),
		NumScaleHeights:     cfg.GetFloat64("Atmosphere.NumScaleHeights"),
		NLayers:             cfg.GetInt("Atmosphere.NLayers"),
		Temperature:         cfg.GetString("Atmosphere.Temperature"),
		TPProfile:           cfg.GetString("Atmosphere.TPProfile"),
		TPParams:            tpParams,
		CorrelationLength:   cfg.GetFloat64("Atmosphere.CorrelationLength"),
		Active:              active,
		Inactive:            inactive,
		CIAPairs:            cfg.GetStringSlice("Atmosphere.CIAPairs"),
		CoupleMu:            cfg.GetBool("Planet.CoupleMu"),
		MeanMolecularWeight: cfg.GetFloat64("Planet.MeanMolecularWeight"),
		MinWavenumber:       cfg.GetFloat64("Spectrum.MinWavenumber"),
		MaxWavenumber:       cfg.GetFloat64("Spectrum.MaxWavenumber"),
		NWavenumber:         cfg.GetInt("Spectrum.NWavenumber"),
		NGauss:              cfg.GetInt("Opacity.NGauss"),
		OpacityTemperatures: temps,
		Options: exoflux.Options{
			IncludeCIA:           cfg.GetBool("Kernel.IncludeCIA"),
			IncludeRayleigh:      cfg.GetBool("Kernel.IncludeRayleigh"),
			QuadratureAngles:     cfg.GetInt("Kernel.QuadratureAngles"),
			WeightedContribution: cfg.GetBool("Kernel.WeightedContribution"),
			NumProcessors:        cfg.GetInt("Kernel.NumProcessors"),
			Log:                  logrus.StandardLogger(),
		},
	}
	if c.NWavenumber < 2 {
		return nil, fmt.Errorf("exoflux: Spectrum.NWavenumber=%d but should be at least 2", c.NWavenumber)
	}
	if !(c.MinWavenumber > 0) || !(c.MaxWavenumber > c.MinWavenumber) {
		return nil, fmt.Errorf("exoflux: invalid wavenumber range %g to %g cm⁻¹", c.MinWavenumber, c.MaxWavenumber)
	}
	return c, nil
}

func gasList(name string, gases []string, x []float64) ([]atmosphere.Gas, error) {
	if len(gases) != len(x) {
		return nil, fmt.Errorf("exoflux: %s has %d gases but %d mixing ratios", name, len(gases), len(x))
	}
	out := make([]atmosphere.Gas, len(gases))
	for i, g := range gases {
		out[i] = atmosphere.Gas{Name: g, MixRatio: x[i]}
	}
	return out, nil
}

// toFloat64SliceE converts a configuration value to a slice of numbers.
// Values set from the command line arrive as strings such as "[1,2.5]".
func toFloat64SliceE(s interface{}) ([]float64, error) {
	switch v := s.(type) {
	case []float64:
		return v, nil
	case []interface{}:
		o := make([]float64, len(v))
		for i, val := range v {
			f, err := cast.ToFloat64E(val)
			if err != nil {
				return nil, err
			}
			o[i] = f
		}
		return o, nil
	case string:
		var o []float64
		v = strings.TrimSpace(v)
		if !strings.HasPrefix(v, "[") {
			v = "[" + v + "]"
		}
		if err := json.Unmarshal([]byte(v), &o); err != nil {
			return nil, err
		}
		return o, nil
	default:
		return nil, fmt.Errorf("invalid type %T for a list of numbers", s)
	}
}

// temperatureFuncs are the functions available in temperature expressions.
var temperatureFuncs = map[string]govaluate.ExpressionFunction{
	"log10": unaryFunc("log10", math.Log10),
	"ln":    unaryFunc("ln", math.Log),
	"exp":   unaryFunc("exp", math.Exp),
	"min": func(args ...interface{}) (interface{}, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("exoflux: got %d arguments for function 'min', but needs 2", len(args))
		}
		return math.Min(args[0].(float64), args[1].(float64)), nil
	},
	"max": func(args ...interface{}) (interface{}, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("exoflux: got %d arguments for function 'max', but needs 2", len(args))
		}
		return math.Max(args[0].(float64), args[1].(float64)), nil
	},
}

func unaryFunc(name string, f func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("exoflux: got %d arguments for function '%s', but needs 1", len(args), name)
		}
		return f(args[0].(float64)), nil
	}
}

// TemperatureProfile returns a profile that evaluates expr at each
// pressure level. If h > 0 the result is smoothed with a correlation
// length of h scale heights.
func TemperatureProfile(expr string, h float64) (atmosphere.TPProfile, error) {
	expression, err := govaluate.NewEvaluableExpressionWithFunctions(expr, temperatureFuncs)
	if err != nil {
		return nil, fmt.Errorf("exoflux: temperature expression %q: %v", expr, err)
	}
	for _, v := range expression.Vars() {
		switch v {
		case "P", "Pbar", "i":
		default:
			return nil, fmt.Errorf("exoflux: temperature expression %q: unknown variable %s", expr, v)
		}
	}
	return func(p []float64) ([]float64, error) {
		t := make([]float64, len(p))
		for i, pi := range p {
			result, err := expression.Evaluate(map[string]interface{}{
				"P":    pi,
				"Pbar": pi / 1.e5,
				"i":    float64(i),
			})
			if err != nil {
				return nil, fmt.Errorf("exoflux: temperature expression %q at layer %d: %v", expr, i, err)
			}
			if t[i], err = cast.ToFloat64E(result); err != nil {
				return nil, fmt.Errorf("exoflux: temperature expression %q at layer %d: %v", expr, i, err)
			}
		}
		if h > 0 {
			return atmosphere.Rodgers2000(t, h)(p)
		}
		return t, nil
	}, nil
}

// tpParamCount is the number of Atmosphere.TPParams each profile type takes.
var tpParamCount = map[string]int{
	"isothermal": 1,
	"2point":     3,
	"3point":     5,
}

// temperatureProfile returns the temperature profile selected by
// c.TPProfile.
func (c *RunConfig) temperatureProfile() (atmosphere.TPProfile, error) {
	if c.TPProfile == "" || c.TPProfile == "expression" {
		return TemperatureProfile(c.Temperature, c.CorrelationLength)
	}
	n, ok := tpParamCount[c.TPProfile]
	if !ok {
		return nil, fmt.Errorf("exoflux: invalid Atmosphere.TPProfile %q", c.TPProfile)
	}
	if len(c.TPParams) != n {
		return nil, fmt.Errorf("exoflux: Atmosphere.TPProfile %q needs %d Atmosphere.TPParams but has %d",
			c.TPProfile, n, len(c.TPParams))
	}
	x := c.TPParams
	var tp atmosphere.TPProfile
	switch c.TPProfile {
	case "isothermal":
		tp = atmosphere.Isothermal(x[0])
	case "2point":
		tp = atmosphere.TwoPoint(x[0], x[1], x[2])
	case "3point":
		tp = atmosphere.ThreePoint(x[0], x[1], x[2], x[3], x[4])
	}
	if c.CorrelationLength > 0 {
		return atmosphere.Smooth(tp, c.CorrelationLength), nil
	}
	return tp, nil
}

// Input builds the kernel input described by c.
func (c *RunConfig) Input() (*exoflux.Input, error) {
	in, _, err := c.Build()
	return in, err
}

// Build builds the model atmosphere described by c and the kernel input
// derived from it.
func (c *RunConfig) Build() (*exoflux.Input, *atmosphere.Profile, error) {
	tp, err := c.temperatureProfile()
	if err != nil {
		return nil, nil, err
	}
	atm, err := atmosphere.New(&atmosphere.Config{
		Planet:              c.Planet,
		MaxPressure:         c.MaxPressure,
		NumScaleHeights:     c.NumScaleHeights,
		NLayers:             c.NLayers,
		Active:              c.Active,
		Inactive:            c.Inactive,
		CIAPairs:            c.CIAPairs,
		CoupleMu:            c.CoupleMu,
		MeanMolecularWeight: c.MeanMolecularWeight,
		Temperature:         tp,
	})
	if err != nil {
		return nil, nil, err
	}

	wn := floats.Span(make([]float64, c.NWavenumber), c.MinWavenumber, c.MaxWavenumber)

	// The kernel applies no mixing ratio to k-table opacities, so the
	// tables hold opacity per molecule of atmosphere.
	gases := make([]synthetic.Gas, len(c.Active))
	for i, g := range c.Active {
		if gases[i], err = synthetic.LookupGas(g.Name); err != nil {
			return nil, nil, err
		}
		gases[i].CrossSection *= g.MixRatio
	}
	ktab, err := synthetic.NewKTable(gases, c.NLayers, wn, c.OpacityTemperatures, c.NGauss)
	if err != nil {
		return nil, nil, err
	}

	rayleigh := make([]float64, 0, len(c.Active)+len(c.Inactive))
	for _, g := range append(append([]atmosphere.Gas(nil), c.Active...), c.Inactive...) {
		sg, err := synthetic.LookupGas(g.Name)
		if err != nil {
			return nil, nil, err
		}
		rayleigh = append(rayleigh, sg.Rayleigh)
	}

	sed, err := stellar.SED(wn, c.StarTemperature)
	if err != nil {
		return nil, nil, err
	}

	in := &exoflux.Input{
		NWavenumber:   len(wn),
		Wavenumber:    wn,
		SigmaRayleigh: synthetic.Rayleigh(rayleigh, wn),
		StarSED:       sed,
		PlanetRadius:  c.Planet.Radius,
		StarRadius:    c.StarRadius,
	}
	atm.Fill(in)
	ktab.Fill(in)

	if len(c.CIAPairs) > 0 {
		pairs := make([]synthetic.Pair, len(c.CIAPairs))
		for i, name := range c.CIAPairs {
			if pairs[i], err = synthetic.LookupPair(name); err != nil {
				return nil, nil, err
			}
		}
		cia, err := synthetic.NewCIATable(pairs, wn, c.OpacityTemperatures)
		if err != nil {
			return nil, nil, err
		}
		cia.Fill(in)
	}
	return in, atm, nil
}
