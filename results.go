/*
 * results.go, part of microsolvator.
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
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	chem "github.com/rmera/gochem"
	"gonum.org/v1/gonum/floats"
)

//The files CREST leaves in the working directory after a QCG run. All of
//them are optional: absence means an empty Result field, not an error.
const (
	bestFile          = "crest_best.xyz"
	ensembleFile      = "full_ensemble.xyz"
	populationFile    = "full_population.dat"
	finalEnsembleFile = "ensemble/final_ensemble.xyz"
	growthTrajFile    = "grow/trj.growth.xyz"
)

//Result holds everything a microsolvation run produced.
type Result struct {
	Command []string //the argument vector that was (or would have been) run
	WorkDir string

	Best       *chem.Molecule //lowest-energy cluster
	Ensemble   *chem.Molecule //every cluster found, one frame each
	Final      *chem.Molecule //the ensemble sub-stage's own final set
	GrowthTraj *chem.Molecule //trajectory of the cluster-growth stage

	PopulationPath string //the population file, kept on disk, not parsed

	Stdout string
	Stderr string

	//Executed is false for prepare-only runs, which skip the subprocess.
	Executed bool
}

//Validate fails when an executed run parsed no structures at all.
//Prepare-only results are exempt.
func (r *Result) Validate() error {
	if !r.Executed {
		return nil
	}
	if r.Best == nil && r.Ensemble == nil && r.Final == nil {
		return fmt.Errorf("microsolv/Result.Validate: %w (in %s)", ErrNoStructures, r.WorkDir)
	}
	return nil
}

//EnsembleEnergies reads the per-cluster energies from the ensemble file's
//comment lines, in kcal/mol.
func (r *Result) EnsembleEnergies() ([]float64, error) {
	errid := "microsolv/Result.EnsembleEnergies"
	finp, err := os.Open(filepath.Join(r.WorkDir, ensembleFile))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	defer finp.Close()
	energies := make([]float64, 0, 10)
	fr := bufio.NewReader(finp)
	var line string
	var reade bool
	for line, err = fr.ReadString('\n'); err == nil; line, err = fr.ReadString('\n') {
		if _, err2 := strconv.Atoi(strings.TrimSpace(line)); err2 == nil {
			//Lines holding just an integer are the atom counts; the
			//energy comes in the comment line right after each one.
			reade = true
			continue
		}
		if reade {
			fields := strings.Fields(line)
			if len(fields) == 0 {
				return nil, fmt.Errorf("%s: empty comment line for cluster %d", errid, len(energies))
			}
			e, err2 := strconv.ParseFloat(fields[0], 64)
			if err2 != nil {
				return nil, fmt.Errorf("%s: couldn't parse energy %d: %w", errid, len(energies), err2)
			}
			energies = append(energies, e*chem.H2Kcal)
			reade = false
		}
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	return energies, nil
}

//Populations parses the last column of the population file and returns it
//normalized so the weights sum to one. Lines that don't end in a number
//are skipped.
func (r *Result) Populations() ([]float64, error) {
	errid := "microsolv/Result.Populations"
	if r.PopulationPath == "" {
		return nil, fmt.Errorf("%s: the run left no population file", errid)
	}
	finp, err := os.Open(r.PopulationPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	defer finp.Close()
	weights := make([]float64, 0, 10)
	scanner := bufio.NewScanner(finp)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		w, err2 := strconv.ParseFloat(fields[len(fields)-1], 64)
		if err2 != nil {
			continue
		}
		weights = append(weights, w)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	if len(weights) == 0 {
		return nil, fmt.Errorf("%s: no numeric rows in %s", errid, r.PopulationPath)
	}
	if total := floats.Sum(weights); total > 0 {
		floats.Scale(1/total, weights)
	}
	return weights, nil
}
