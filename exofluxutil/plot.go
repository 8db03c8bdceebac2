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
	"math"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/exoflux"
	"github.com/spatialmodel/exoflux/science/atmosphere"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	// Register the output formats.
	_ "gonum.org/v1/plot/vg/vgimg"
	_ "gonum.org/v1/plot/vg/vgpdf"
	_ "gonum.org/v1/plot/vg/vgsvg"
)

const (
	figWidth    = 6 * vg.Inch
	figHeight   = 4 * vg.Inch
	legendWidth = 0.9 * vg.Inch
)

// Plot calculates the spectrum described by c and writes figures of the
// flux ratio spectrum, the contribution function and the temperature
// profile to directory dir as spectrum.<format>, contribution.<format>
// and tp.<format>. format is one of png, jpg, tif, svg or pdf. It
// returns the paths of the files written.
func Plot(ctx context.Context, dir, format string, c *RunConfig) ([]string, error) {
	in, atm, err := c.Build()
	if err != nil {
		return nil, err
	}
	r, err := exoflux.Spectrum(ctx, in, c.Options)
	if err != nil {
		return nil, err
	}

	figures := []struct {
		name   string
		render func(io.Writer) error
	}{
		{"spectrum", func(w io.Writer) error {
			p, err := SpectrumPlot(in, r)
			if err != nil {
				return err
			}
			return writePlot(w, p, format)
		}},
		{"contribution", func(w io.Writer) error { return writeContribution(w, in, atm, r, format) }},
		{"tp", func(w io.Writer) error {
			p, err := TPPlot(atm)
			if err != nil {
				return err
			}
			return writePlot(w, p, format)
		}},
	}
	log := c.Options.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	var files []string
	for _, fig := range figures {
		path := filepath.Join(dir, fig.name+"."+format)
		if err := writeFile(path, fig.render); err != nil {
			return files, err
		}
		log.WithField("file", path).Info("exoflux: wrote figure")
		files = append(files, path)
	}
	return files, nil
}

func writeFile(path string, render func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("exoflux: creating figure: %v", err)
	}
	defer func() {
		if e := f.Close(); err == nil && e != nil {
			err = fmt.Errorf("exoflux: closing figure: %v", e)
		}
	}()
	return render(f)
}

func writePlot(w io.Writer, p *plot.Plot, format string) error {
	wt, err := p.WriterTo(figWidth, figHeight, format)
	if err != nil {
		return fmt.Errorf("exoflux: rendering figure: %v", err)
	}
	_, err = wt.WriteTo(w)
	return err
}

// SpectrumPlot returns a plot of the flux ratio r.FpFs against wavelength.
func SpectrumPlot(in *exoflux.Input, r *exoflux.Result) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Emission spectrum"
	p.X.Label.Text = "Wavelength [μm]"
	p.Y.Label.Text = "Fp/Fs"
	xy := make(plotter.XYs, len(r.FpFs))
	for i, wn := range in.Wavenumber {
		xy[i].X = 1.e4 / wn
		xy[i].Y = r.FpFs[i]
	}
	l, err := plotter.NewLine(xy)
	if err != nil {
		return nil, fmt.Errorf("exoflux: spectrum plot: %v", err)
	}
	p.Add(l)
	return p, nil
}

// TPPlot returns a plot of the temperature profile of atm, with pressure
// decreasing upward on a log scale.
func TPPlot(atm *atmosphere.Profile) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Temperature profile"
	p.X.Label.Text = "Temperature [K]"
	p.Y.Label.Text = "Pressure [bar]"
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LogScale{}}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	xy := make(plotter.XYs, len(atm.Pressure))
	for i, pa := range atm.Pressure {
		xy[i].X = atm.Temperature[i]
		xy[i].Y = pa / 1.e5
	}
	l, err := plotter.NewLine(xy)
	if err != nil {
		return nil, fmt.Errorf("exoflux: temperature profile plot: %v", err)
	}
	p.Add(l)
	return p, nil
}

// contributionGrid presents a contribution matrix as a grid of
// wavenumber columns and layer rows, with rows ordered from the top of
// the atmosphere down so that log pressure increases with the row.
type contributionGrid struct {
	wn      []float64
	logP    []float64 // log10 pressure [bar] of each layer
	contrib *mat.Dense
}

func (g contributionGrid) Dims() (c, r int) { return g.contrib.Dims() }

func (g contributionGrid) layer(r int) int {
	_, n := g.contrib.Dims()
	return n - 1 - r
}

func (g contributionGrid) Z(c, r int) float64 { return g.contrib.At(c, g.layer(r)) }
func (g contributionGrid) X(c int) float64    { return g.wn[c] }
func (g contributionGrid) Y(r int) float64    { return g.logP[g.layer(r)] }

// ContributionPlot returns a heat map of the contribution function in r
// against wavenumber and pressure, and a color bar for it.
func ContributionPlot(in *exoflux.Input, atm *atmosphere.Profile, r *exoflux.Result) (*plot.Plot, *plotter.ColorBar, error) {
	if len(atm.Pressure) != in.NLayers {
		return nil, nil, fmt.Errorf("exoflux: contribution plot: %d pressures for %d layers", len(atm.Pressure), in.NLayers)
	}
	g := contributionGrid{wn: in.Wavenumber, contrib: r.Contribution, logP: make([]float64, in.NLayers)}
	for i, pa := range atm.Pressure {
		g.logP[i] = math.Log10(pa / 1.e5)
	}

	lo, hi := mat.Min(r.Contribution), mat.Max(r.Contribution)
	if !(hi > lo) {
		hi = lo + 1
	}
	cm := moreland.ExtendedBlackBody()
	cm.SetMin(lo)
	cm.SetMax(hi)
	h := plotter.NewHeatMap(g, cm.Palette(255))
	h.Min, h.Max = lo, hi

	p := plot.New()
	p.Title.Text = "Contribution function"
	p.X.Label.Text = "Wavenumber [cm⁻¹]"
	p.Y.Label.Text = "log₁₀ pressure [bar]"
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	p.Add(h)
	return p, &plotter.ColorBar{ColorMap: cm, Vertical: true}, nil
}

// writeContribution draws the contribution heat map with its color bar
// to the right.
func writeContribution(w io.Writer, in *exoflux.Input, atm *atmosphere.Profile, r *exoflux.Result, format string) error {
	p, cb, err := ContributionPlot(in, atm, r)
	if err != nil {
		return err
	}
	c, err := draw.NewFormattedCanvas(figWidth+legendWidth, figHeight, format)
	if err != nil {
		return fmt.Errorf("exoflux: rendering figure: %v", err)
	}
	dc := draw.New(c)
	p.Draw(draw.Crop(dc, 0, -legendWidth, 0, 0))

	legend := plot.New()
	legend.HideX()
	legend.Y.Label.Text = "contribution"
	legend.Add(cb)
	legend.Draw(draw.Crop(dc, figWidth, 0, 0, 0))

	_, err = c.WriteTo(w)
	return err
}
