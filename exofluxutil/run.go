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
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/GaryBoone/GoStats/stats"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/exoflux"
	"github.com/spatialmodel/exoflux/internal/fingerprint"
	"github.com/spatialmodel/exoflux/science/atmosphere"
	"gonum.org/v1/gonum/floats"
)

// Run calculates the spectrum described by c and writes it to w as a
// table. If contribution is true, the layer contributing most to the
// emergent flux at each wavenumber is included. If tp is not nil, the
// temperature-pressure profile of the model atmosphere is written to it.
func Run(ctx context.Context, w io.Writer, c *RunConfig, contribution bool, tp io.Writer) error {
	in, atm, err := c.Build()
	if err != nil {
		return err
	}
	if tp != nil {
		if err := WriteTPProfile(tp, atm); err != nil {
			return err
		}
	}
	log := c.Options.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	log = log.WithFields(logrus.Fields{
		"input":       fingerprint.Input(in),
		"wavenumbers": in.NWavenumber,
		"layers":      in.NLayers,
	})
	log.Info("exoflux: calculating spectrum")
	start := time.Now()
	r, err := exoflux.Spectrum(ctx, in, c.Options)
	if err != nil {
		return err
	}
	log.WithField("duration", time.Since(start)).Info("exoflux: spectrum complete")

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	if contribution {
		fmt.Fprintln(tw, "wavenumber [cm⁻¹]\twavelength [μm]\tFp/Fs\tpeak layer\tpeak altitude [km]")
	} else {
		fmt.Fprintln(tw, "wavenumber [cm⁻¹]\twavelength [μm]\tFp/Fs")
	}
	for i, wn := range in.Wavenumber {
		if contribution {
			j := floats.MaxIdx(r.Contribution.RawRowView(i))
			fmt.Fprintf(tw, "%.2f\t%.4f\t%.6e\t%d\t%.1f\n", wn, 1.e4/wn, r.FpFs[i], j, in.Z[j]/1000)
		} else {
			fmt.Fprintf(tw, "%.2f\t%.4f\t%.6e\n", wn, 1.e4/wn, r.FpFs[i])
		}
	}
	return tw.Flush()
}

// WriteTPProfile writes the pressure, temperature, altitude and number
// density of each layer of atm to w as a table.
func WriteTPProfile(w io.Writer, atm *atmosphere.Profile) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "layer\tpressure [Pa]\ttemperature [K]\taltitude [km]\tdensity [m⁻³]")
	for j, p := range atm.Pressure {
		fmt.Fprintf(tw, "%d\t%.6e\t%.2f\t%.3f\t%.6e\n", j, p, atm.Temperature[j], atm.Altitude[j]/1000, atm.Density[j])
	}
	return tw.Flush()
}

// Bench calculates the spectrum described by c repeat times and writes
// timing statistics to w.
func Bench(ctx context.Context, w io.Writer, c *RunConfig, repeat int) error {
	if repeat < 1 {
		return fmt.Errorf("exoflux: repeat=%d but should be at least 1", repeat)
	}
	in, err := c.Input()
	if err != nil {
		return err
	}
	seconds := make([]float64, repeat)
	for i := range seconds {
		start := time.Now()
		if _, err := exoflux.Spectrum(ctx, in, c.Options); err != nil {
			return err
		}
		seconds[i] = time.Since(start).Seconds()
	}
	_, err = fmt.Fprintf(w, "%d wavenumbers, %d layers, %d runs: min %.4gs, mean %.4gs, max %.4gs\n",
		in.NWavenumber, in.NLayers, repeat,
		stats.StatsMin(seconds), stats.StatsMean(seconds), stats.StatsMax(seconds))
	return err
}
