/*
 * doc.go, part of microsolvator.
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

//Package microsolv builds small solvent clusters around a solute molecule
//by driving the CREST program (which in turn drives xTB) in its QCG
//microsolvation mode. The package prepares working directories and input
//files, resolves the external binaries, runs CREST and reads the resulting
//geometries back as goChem molecules.
//
//In order to use this package you need the crest and xtb programs, which
//must be obtained from Prof. Stefan Grimme's group. Please cite the CREST
//and xtb references if you use them.
package microsolv
