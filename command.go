/*
 * command.go, part of microsolvator.
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
	"strconv"
	"strings"
)

//The methods CREST accepts for QCG runs. Each maps to its own flag.
var methodFlags = map[string]string{
	"gfn0":  "--gfn0",
	"gfn1":  "--gfn1",
	"gfn2":  "--gfn2",
	"gfnff": "--gfnff",
}

//NormalizeMethod lowercases a method name and folds the "gfn-ff"
//spelling into gfnff.
func NormalizeMethod(method string) string {
	m := strings.ToLower(method)
	if m == "gfn-ff" {
		return "gfnff"
	}
	return m
}

//BuildCommand turns a validated configuration plus resolved program and
//input-file paths into the CREST argument vector. The token order is what
//CREST's parser expects, so don't shuffle it.
func BuildCommand(conf *Config, crestPath, xtbPath, solutePath, solventPath string) ([]string, error) {
	errid := "microsolv/BuildCommand"
	if conf.NSolv <= 0 {
		return nil, fmt.Errorf("%s: nsolv must be a positive integer, got %d", errid, conf.NSolv)
	}
	mflag, ok := methodFlags[NormalizeMethod(conf.Method)]
	if !ok {
		return nil, fmt.Errorf("%s: %w: %s", errid, ErrUnsupportedMethod, conf.Method)
	}
	command := make([]string, 0, 20)
	command = append(command, crestPath, solutePath)
	command = append(command, "--qcg", solventPath)
	command = append(command, "--nsolv", strconv.Itoa(conf.NSolv))
	command = append(command, "--T", ftoa(conf.Temperature))
	command = append(command, "--mdtime", ftoa(conf.MDTime))
	command = append(command, mflag)
	if conf.Ensemble {
		command = append(command, "--ensemble")
	}
	if conf.ImplicitModel != "" && conf.ImplicitSolvent != "" {
		command = append(command, "--"+strings.ToLower(conf.ImplicitModel), conf.ImplicitSolvent)
	}
	command = append(command, "--chrg", strconv.Itoa(conf.Charge))
	command = append(command, "--uhf", strconv.Itoa(conf.UHF))
	command = append(command, conf.ExtraFlags...)
	if conf.NoPreOpt {
		command = append(command, "--nopreopt")
	}
	command = append(command, "--xnam", xtbPath)
	return command, nil
}

//ftoa renders a float the shortest way that round-trips, so CREST sees
//"298" and not "298.000000".
func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
