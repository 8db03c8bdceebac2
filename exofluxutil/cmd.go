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


// Package exofluxutil contains the exoflux command-line interface.
package exofluxutil

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/exoflux"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to exoflux.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "loglevel",
			usage: `
              loglevel sets the logging level: one of panic, fatal, error,
              warning, info, debug or trace.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "contribution",
			usage: `
              contribution specifies whether to report the layer with the
              largest contribution to the emergent flux at each wavenumber.`,
			shorthand:  "c",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "tpprofile",
			usage: `
              tpprofile, if not empty, is the path of a file to write the
              temperature-pressure profile of the model atmosphere to.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "output",
			usage: `
              output is the directory the figures are written to.`,
			shorthand:  "o",
			defaultVal: ".",
			flagsets:   []*pflag.FlagSet{plotCmd.Flags()},
		},
		{
			name: "format",
			usage: `
              format is the figure file format: png, jpg, tif, svg or pdf.`,
			defaultVal: "png",
			flagsets:   []*pflag.FlagSet{plotCmd.Flags()},
		},
		{
			name: "repeat",
			usage: `
              repeat is the number of times to evaluate the spectrum.`,
			shorthand:  "n",
			defaultVal: 10,
			flagsets:   []*pflag.FlagSet{benchCmd.Flags()},
		},
		{
			name: "Planet.Radius",
			usage: `
              Planet.Radius is the planet radius in Jupiter radii.`,
			defaultVal: 1.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), benchCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "Planet.Mass",
			usage: `
              Planet.Mass is the planet mass in Jupiter masses.`,
			defaultVal: 1.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), benchCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "Planet.CoupleMu",
			usage: `
              Planet.CoupleMu specifies whether the mean molecular weight is
              calculated from the gas mixing ratios. If false,
              Planet.MeanMolecularWeight is used.`,
			defaultVal: true,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), benchCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "Planet.MeanMolecularWeight",
			usage: `
              Planet.MeanMolecularWeight is the mean molecular weight of the
              atmosphere in atomic mass units.`,
			defaultVal: 2.3,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), benchCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "Star.Radius",
			usage: `
              Star.Radius is the stellar radius in solar radii.`,
			defaultVal: 1.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), benchCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "Star.Temperature",
			usage: `
              Star.Temperature is the stellar effective temperature [K].`,
			defaultVal: 5800.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), benchCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "Atmosphere.MaxPressure",
			usage: `
              Atmosphere.MaxPressure is the pressure at the bottom of the
              atmosphere [Pa].`,
			defaultVal: 1.e6,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), benchCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "Atmosphere.NumScaleHeights",
			usage: `
              Atmosphere.NumScaleHeights is the number of scale heights
              spanned by the atmosphere.`,
			defaultVal: 12.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), benchCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "Atmosphere.NLayers",
			usage: `
              Atmosphere.NLayers is the number of atmospheric layers.`,
			defaultVal: 60,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), benchCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "Atmosphere.Temperature",
			usage: `
              Atmosphere.Temperature is an expression giving the temperature [K]
              of each layer. It can use the variables P (pressure in Pa),
              Pbar (pressure in bar) and i (layer index, 0 at the bottom) and
              the functions log10, ln, exp, min and max.`,
			defaultVal: "1500",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), benchCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "Atmosphere.TPProfile",
			usage: `
              Atmosphere.TPProfile selects the temperature profile: one of
              expression (use Atmosphere.Temperature), isothermal, 2point or
              3point. The last three take their parameters from
              Atmosphere.TPParams.`,
			defaultVal: "expression",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), benchCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "Atmosphere.TPParams",
			usage: `
              Atmosphere.TPParams are the parameters of the temperature profile
              selected by Atmosphere.TPProfile. isothermal takes [T]; 2point
              takes [T1, dT, P1], where T1 is the temperature at the bottom of
              the atmosphere, T1-dT is the temperature at the tropopause and P1
              is the tropopause pressure [Pa]; 3point takes
              [T1, dT1, dT2, P1, P2], falling to T1-dT1 at P1 and to
              T1-dT1-dT2 at P2.`,
			defaultVal: []float64{},
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), benchCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "Atmosphere.CorrelationLength",
			usage: `
              Atmosphere.CorrelationLength, if greater than zero, smooths the
              temperature profile with a correlation length of this many
              scale heights (Rodgers, 2000).`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), benchCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "Atmosphere.ActiveGases",
			usage: `
              Atmosphere.ActiveGases are the absorbing gases.`,
			defaultVal: []string{"H2O", "CH4", "CO"},
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), benchCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "Atmosphere.ActiveMixRatios",
			usage: `
              Atmosphere.ActiveMixRatios are the mixing ratios of the
              absorbing gases.`,
			defaultVal: []float64{1.e-4, 1.e-5, 1.e-4},
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), benchCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "Atmosphere.InactiveGases",
			usage: `
              Atmosphere.InactiveGases are the fixed background gases.`,
			defaultVal: []string{"H2", "He"},
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), benchCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "Atmosphere.InactiveMixRatios",
			usage: `
              Atmosphere.InactiveMixRatios are the mixing ratios of the
              background gases.`,
			defaultVal: []float64{0.85, 0.15},
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), benchCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "Atmosphere.CIAPairs",
			usage: `
              Atmosphere.CIAPairs are the collision-induced absorption pairs.`,
			defaultVal: []string{"H2-H2", "H2-He"},
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), benchCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "Spectrum.MinWavenumber",
			usage: `
              Spectrum.MinWavenumber is the lowest wavenumber [cm⁻¹].`,
			defaultVal: 400.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), benchCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "Spectrum.MaxWavenumber",
			usage: `
              Spectrum.MaxWavenumber is the highest wavenumber [cm⁻¹].`,
			defaultVal: 10000.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), benchCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "Spectrum.NWavenumber",
			usage: `
              Spectrum.NWavenumber is the number of wavenumbers.`,
			defaultVal: 200,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), benchCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "Opacity.NGauss",
			usage: `
              Opacity.NGauss is the number of k-distribution quadrature points.`,
			defaultVal: 10,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), benchCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "Opacity.Temperatures",
			usage: `
              Opacity.Temperatures are the temperature nodes [K] of the
              opacity tables.`,
			defaultVal: []float64{300, 500, 800, 1200, 1700, 2300, 3000},
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), benchCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "Kernel.IncludeCIA",
			usage: `
              Kernel.IncludeCIA specifies whether collision-induced absorption
              contributes to the optical depth.`,
			defaultVal: true,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), benchCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "Kernel.IncludeRayleigh",
			usage: `
              Kernel.IncludeRayleigh specifies whether Rayleigh scattering
              contributes to the optical depth.`,
			defaultVal: true,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), benchCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "Kernel.QuadratureAngles",
			usage: `
              Kernel.QuadratureAngles is the number of emission angles used to
              integrate over the planetary disk: 1 or 4.`,
			defaultVal: 4,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), benchCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "Kernel.WeightedContribution",
			usage: `
              Kernel.WeightedContribution specifies whether the contribution
              function is the weighted sum over k-distribution quadrature
              points. If false, it is the value at the last quadrature point.`,
			defaultVal: true,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), benchCmd.Flags(), plotCmd.Flags()},
		},
		{
			name: "Kernel.NumProcessors",
			usage: `
              Kernel.NumProcessors is the number of processors to use. 0 means
              all of them.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), benchCmd.Flags(), plotCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("EXOFLUX")
	Cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case []string:
				if option.shorthand == "" {
					set.StringSlice(option.name, option.defaultVal.([]string), option.usage)
				} else {
					set.StringSliceP(option.name, option.shorthand, option.defaultVal.([]string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			case []float64:
				if option.shorthand == "" {
					set.Float64Slice(option.name, option.defaultVal.([]float64), option.usage)
				} else {
					set.Float64SliceP(option.name, option.shorthand, option.defaultVal.([]float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(runCmd)
	Root.AddCommand(benchCmd)
	Root.AddCommand(plotCmd)
	Root.AddCommand(defaultsCmd)
}

// setConfig finds and reads in the configuration file, if there is one,
// and sets the logging level.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("exoflux: problem reading configuration file: %v", err)
		}
	}
	level, err := logrus.ParseLevel(Cfg.GetString("loglevel"))
	if err != nil {
		return fmt.Errorf("exoflux: %v", err)
	}
	logrus.SetLevel(level)
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "exoflux",
	Short: "A thermal emission spectrum model for exoplanet atmospheres.",
	Long: `exoflux calculates the planet to star flux ratio of the thermal emission
from a layered exoplanet atmosphere using k-distribution opacities.
Use the subcommands specified below to access the model functionality.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'EXOFLUX_var' where 'var' is the
name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
	SilenceUsage:      true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of exoflux.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("exoflux v%s\n", exoflux.Version)
	},
	DisableAutoGenTag: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Calculate an emission spectrum.",
	Long: `run builds a model atmosphere and synthetic opacity tables from the
configuration, calculates the emission spectrum and prints the flux ratio at
each wavenumber.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ReadRunConfig(Cfg)
		if err != nil {
			return err
		}
		path := Cfg.GetString("tpprofile")
		if path == "" {
			return Run(cmd.Context(), cmd.OutOrStdout(), c, Cfg.GetBool("contribution"), nil)
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("exoflux: creating temperature profile file: %v", err)
		}
		if err := Run(cmd.Context(), cmd.OutOrStdout(), c, Cfg.GetBool("contribution"), f); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	},
	DisableAutoGenTag: true,
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Time the spectrum calculation.",
	Long: `bench calculates the emission spectrum repeatedly and reports the
minimum, mean and maximum time taken.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ReadRunConfig(Cfg)
		if err != nil {
			return err
		}
		return Bench(cmd.Context(), cmd.OutOrStdout(), c, Cfg.GetInt("repeat"))
	},
	DisableAutoGenTag: true,
}

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Plot an emission spectrum.",
	Long: `plot builds a model atmosphere and synthetic opacity tables from the
configuration, calculates the emission spectrum and writes figures of the flux
ratio spectrum, the contribution function and the temperature profile to the
output directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ReadRunConfig(Cfg)
		if err != nil {
			return err
		}
		files, err := Plot(cmd.Context(), Cfg.GetString("output"), Cfg.GetString("format"), c)
		if err != nil {
			return err
		}
		for _, f := range files {
			cmd.Println(f)
		}
		return nil
	},
	DisableAutoGenTag: true,
}

var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the default configuration.",
	Long: `defaults prints the default configuration in TOML format. The output
can be edited and passed back in with the --config flag.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return toml.NewEncoder(cmd.OutOrStdout()).Encode(Defaults())
	},
	DisableAutoGenTag: true,
}

// Defaults returns the default values of the configuration-file options
// as nested maps keyed by section.
func Defaults() map[string]interface{} {
	out := make(map[string]interface{})
	for _, option := range options {
		section, key, ok := strings.Cut(option.name, ".")
		if !ok {
			continue
		}
		m, ok := out[section].(map[string]interface{})
		if !ok {
			m = make(map[string]interface{})
			out[section] = m
		}
		m[key] = option.defaultVal
	}
	return out
}
