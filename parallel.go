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
	"context"

	"golang.org/x/sync/errgroup"
)

// forEachWavenumber concurrently calls f for every wavenumber index in
// [0, n). Indices are dealt out to nprocs goroutines in stride, and
// f receives the index p of the goroutine running it so callers can keep
// per-goroutine scratch space. The first error, or the cancellation of
// ctx, stops the remaining work.
func forEachWavenumber(ctx context.Context, nprocs, n int, f func(p, wn int) error) error {
	if nprocs > n {
		nprocs = n
	}
	g, ctx := errgroup.WithContext(ctx)
	for pp := 0; pp < nprocs; pp++ {
		pp := pp
		g.Go(func() error {
			for ii := pp; ii < n; ii += nprocs {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := f(pp, ii); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}
