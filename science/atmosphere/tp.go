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
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/mat"
)

// A TPProfile returns the temperature [K] at each of the given pressures
// [Pa], which are ordered from the bottom of the atmosphere up.
type TPProfile func(p []float64) ([]float64, error)

// Isothermal returns a profile with temperature t everywhere.
func Isothermal(t float64) TPProfile {
	return func(p []float64) ([]float64, error) {
		if !(t > 0) {
			return nil, fmt.Errorf("atmosphere: isothermal temperature %g K", t)
		}
		out := make([]float64, len(p))
		for i := range out {
			out[i] = t
		}
		return out, nil
	}
}

// Rodgers2000 returns a layer-by-layer profile that smooths the
// temperatures t (one per layer) with the correlation matrix
// C[i][j] = exp(-|ln(P_i/P_j)|/h), where h is the correlation length in
// scale heights (Rodgers, 2000, Inverse Methods for Atmospheric
// Sounding, eq. 3.26).
func Rodgers2000(t []float64, h float64) TPProfile {
	return func(p []float64) ([]float64, error) {
		n := len(p)
		if len(t) != n {
			return nil, fmt.Errorf("atmosphere: %d temperatures for %d layers", len(t), n)
		}
		if !(h > 0) {
			return nil, fmt.Errorf("atmosphere: correlation length %g", h)
		}
		w := mat.NewDense(n, n, nil)
		w.Apply(func(i, j int, _ float64) float64 {
			return math.Exp(-math.Abs(math.Log(p[i]/p[j])) / h)
		}, w)
		for i := 0; i < n; i++ {
			row := w.RawRowView(i)
			var sum float64
			for _, v := range row {
				sum += v
			}
			for j := range row {
				row[j] /= sum
			}
		}
		var out mat.VecDense
		out.MulVec(w, mat.NewVecDense(n, append([]float64(nil), t...)))
		return out.RawVector().Data, nil
	}
}

// TwoPoint returns a profile that falls linearly in log pressure from t1
// at the bottom of the atmosphere to t1-dt at the tropopause pressure
// p1 [Pa], and is isothermal above it.
func TwoPoint(t1, dt, p1 float64) TPProfile {
	return func(p []float64) ([]float64, error) {
		pmin, pmax := floats.Min(p), floats.Max(p)
		return logPressureInterp(p, []float64{pmax, p1, pmin}, []float64{t1, t1 - dt, t1 - dt})
	}
}

// ThreePoint is like TwoPoint but adds a point between the bottom of the
// atmosphere and the tropopause: the temperature falls from t1 to t1-dt1
// at pressure p1 and then to t1-dt1-dt2 at pressure p2, above which the
// atmosphere is isothermal.
func ThreePoint(t1, dt1, dt2, p1, p2 float64) TPProfile {
	return func(p []float64) ([]float64, error) {
		pmin, pmax := floats.Min(p), floats.Max(p)
		t2 := t1 - dt1
		t3 := t2 - dt2
		return logPressureInterp(p, []float64{pmax, p1, p2, pmin}, []float64{t1, t2, t3, t3})
	}
}

// logPressureInterp interpolates the node temperatures nodeT linearly in
// ln(P) onto the pressures p. The node pressures nodeP must decrease
// strictly from the bottom of the atmosphere up.
func logPressureInterp(p, nodeP, nodeT []float64) ([]float64, error) {
	if len(p) < 2 {
		return nil, fmt.Errorf("atmosphere: %d pressure levels", len(p))
	}
	n := len(nodeP)
	x := make([]float64, n)
	y := make([]float64, n)
	for i := range nodeP {
		// Fit needs ascending abscissae, so the nodes are reversed.
		x[n-1-i] = math.Log(nodeP[i])
		y[n-1-i] = nodeT[i]
	}
	for i := 1; i < n; i++ {
		if !(x[i] > x[i-1]) {
			return nil, fmt.Errorf("atmosphere: profile pressures %v must decrease strictly upward "+
				"from the bottom pressure", nodeP)
		}
	}
	for _, t := range nodeT {
		if !(t > 0) {
			return nil, fmt.Errorf("atmosphere: profile temperatures %v must be positive", nodeT)
		}
	}
	var pl interp.PiecewiseLinear
	if err := pl.Fit(x, y); err != nil {
		return nil, fmt.Errorf("atmosphere: %v", err)
	}
	t := make([]float64, len(p))
	for i, pi := range p {
		t[i] = pl.Predict(math.Log(pi))
	}
	return t, nil
}

// Smooth returns tp smoothed with a correlation length of h scale
// heights. See Rodgers2000.
func Smooth(tp TPProfile, h float64) TPProfile {
	return func(p []float64) ([]float64, error) {
		t, err := tp(p)
		if err != nil {
			return nil, err
		}
		return Rodgers2000(t, h)(p)
	}
}
