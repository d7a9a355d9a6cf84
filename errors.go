/*
 * errors.go, part of microsolvator.
 *
 * Copyright 2025 kangmg
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package microsolv

import "errors"

//Sentinel errors for the failure cases a caller may want to tell apart.
//Everything else is reported as a plain wrapped error.
var (
	//ErrUnsupportedMethod is returned when the requested method is not
	//one of the identifiers CREST accepts for QCG runs.
	ErrUnsupportedMethod = errors.New("unsupported method")

	//ErrUnsupportedSolvent is returned when a method/model/solvent triple
	//is not in the implicit-solvent support table.
	ErrUnsupportedSolvent = errors.New("unsupported implicit solvent combination")

	//ErrBinaryNotFound is returned when an explicitly given path, or one
	//taken from an environment variable, does not exist.
	ErrBinaryNotFound = errors.New("executable not found")

	//ErrNoStructures is returned when an executed run leaves no readable
	//structure files behind.
	ErrNoStructures = errors.New("run produced no structures")
)
