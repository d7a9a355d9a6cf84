/*
 * solvents.go, part of microsolvator.
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

import (
	"fmt"
	"sort"
	"strings"
)

//solventTable maps method -> implicit model -> solvent -> supported.
//The data follows the xtb documentation for ALPB and GBSA parametrizations.
var solventTable = map[string]map[string]map[string]bool{
	"gfn1": {
		"alpb": {
			"acetone": true, "acetonitrile": true, "aniline": true,
			"benzaldehyde": true, "benzene": true, "ch2cl2": true,
			"chcl3": true, "cs2": true, "dioxane": true, "dmf": true,
			"dmso": true, "ether": true, "ethylacetate": true,
			"furane": true, "hexadecane": true, "hexane": true,
			"methanol": true, "nitromethane": true, "octanol": true,
			"phenol": true, "toluene": true, "thf": true, "h2o": true,
		},
		"gbsa": {
			"acetone": true, "acetonitrile": true, "aniline": false,
			"benzaldehyde": false, "benzene": true, "ch2cl2": true,
			"chcl3": true, "cs2": true, "dioxane": false, "dmf": false,
			"dmso": true, "ether": true, "ethylacetate": false,
			"furane": false, "hexadecane": false, "hexane": false,
			"methanol": true, "nitromethane": false, "octanol": false,
			"phenol": false, "toluene": true, "thf": true, "h2o": true,
		},
	},
	"gfn2": {
		"alpb": {
			"acetone": true, "acetonitrile": true, "aniline": true,
			"benzaldehyde": true, "benzene": true, "ch2cl2": true,
			"chcl3": true, "cs2": true, "dioxane": true, "dmf": true,
			"dmso": true, "ether": true, "ethylacetate": true,
			"furane": true, "hexadecane": true, "hexane": true,
			"methanol": true, "nitromethane": true, "octanol": true,
			"phenol": true, "toluene": true, "thf": true, "h2o": true,
		},
		"gbsa": {
			"acetone": true, "acetonitrile": true, "aniline": false,
			"benzaldehyde": false, "benzene": true, "ch2cl2": true,
			"chcl3": true, "cs2": true, "dioxane": false, "dmf": true,
			"dmso": true, "ether": true, "ethylacetate": false,
			"furane": false, "hexadecane": false, "hexane": true,
			"methanol": true, "nitromethane": false, "octanol": false,
			"phenol": false, "toluene": true, "thf": true, "h2o": true,
		},
	},
	"gfnff": {
		"alpb": {
			"acetone": true, "acetonitrile": true, "aniline": true,
			"benzaldehyde": true, "benzene": true, "ch2cl2": true,
			"chcl3": true, "cs2": true, "dioxane": true, "dmf": true,
			"dmso": true, "ether": true, "ethylacetate": true,
			"furane": true, "hexadecane": true, "hexane": true,
			"methanol": true, "nitromethane": true, "octanol": true,
			"phenol": true, "toluene": true, "thf": true, "h2o": true,
		},
	},
}

//Supports reports whether the method/model/solvent combination has an
//implicit-solvent parametrization. Lookups are case-insensitive and any
//unknown key, at any level, simply yields false.
func Supports(method, model, solvent string) bool {
	models, ok := solventTable[NormalizeMethod(method)]
	if !ok {
		return false
	}
	solvents, ok := models[strings.ToLower(model)]
	if !ok {
		return false
	}
	return solvents[strings.ToLower(solvent)]
}

//ListSupported returns, per method and implicit model, the sorted solvent
//names with a parametrization. Empty method or model act as wildcards;
//groups with no supported solvent are omitted.
func ListSupported(method, model string) map[string]map[string][]string {
	ret := make(map[string]map[string][]string)
	for mk, models := range solventTable {
		if method != "" && mk != NormalizeMethod(method) {
			continue
		}
		group := make(map[string][]string)
		for mok, solvents := range models {
			if model != "" && mok != strings.ToLower(model) {
				continue
			}
			supported := make([]string, 0, len(solvents))
			for s, ok := range solvents {
				if ok {
					supported = append(supported, s)
				}
			}
			if len(supported) > 0 {
				sort.Strings(supported)
				group[mok] = supported
			}
		}
		if len(group) > 0 {
			ret[mk] = group
		}
	}
	return ret
}

//ValidateImplicit fails if the method/model/solvent combination is not
//in the support table.
func ValidateImplicit(method, model, solvent string) error {
	if !Supports(method, model, solvent) {
		return fmt.Errorf("microsolv/ValidateImplicit: %w: method=%s, model=%s, solvent=%s",
			ErrUnsupportedSolvent, method, model, solvent)
	}
	return nil
}
