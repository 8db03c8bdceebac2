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


// Command exoflux is a command-line interface for the exoflux emission
// spectrum model.
package main

import (
	"fmt"
	"os"

	"github.com/spatialmodel/exoflux/exofluxutil"
)

func main() {
	if err := exofluxutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
