/*
 * config.go, part of microsolvator.
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
	"os"

	"gopkg.in/yaml.v3"
)

const (
	defMethod = "gfn2"
	defTemp   = 298.0
	defMDTime = 50.0
)

//Config holds the solute/solvent-independent parameters of a QCG
//microsolvation run. Defaults might change as CREST evolves, so they are
//not part of the API.
type Config struct {
	NSolv       int     `yaml:"nsolv"`       //number of solvent molecules to grow
	Method      string  `yaml:"method"`      //gfn0, gfn1, gfn2 or gfnff
	Temperature float64 `yaml:"temperature"` //in K
	MDTime      float64 `yaml:"mdtime"`      //MD simulation time, in ps
	Charge      int     `yaml:"charge"`
	UHF         int     `yaml:"uhf"` //number of unpaired electrons

	//Implicit solvation for the outer region. Both fields must be given
	//together, or both left empty.
	ImplicitModel   string `yaml:"implicit_model"` //alpb or gbsa
	ImplicitSolvent string `yaml:"implicit_solvent"`

	Ensemble   bool     `yaml:"ensemble"` //run the ensemble search after growth
	NoPreOpt   bool     `yaml:"nopreopt"` //skip the geometry pre-optimization
	ExtraFlags []string `yaml:"extra_flags"`

	//Explicit paths to the external programs. Empty means "resolve".
	CrestPath string `yaml:"crest_path"`
	XTBPath   string `yaml:"xtb_path"`
}

//NewConfig returns a configuration for growing nsolv solvent molecules,
//with everything else set to its default.
func NewConfig(nsolv int) *Config {
	c := new(Config)
	c.SetDefaults()
	c.NSolv = nsolv
	return c
}

//SetDefaults sets the run parameters to their defaults. It doesn't touch
//NSolv, which has no meaningful default.
func (c *Config) SetDefaults() {
	c.Method = defMethod
	c.Temperature = defTemp
	c.MDTime = defMDTime
	c.Ensemble = true
}

//Validate checks the configuration invariants: a positive solvent count,
//implicit model and solvent given together or not at all and, when given,
//a supported method/model/solvent combination.
func (c *Config) Validate() error {
	errid := "microsolv/Config.Validate"
	if c.NSolv <= 0 {
		return fmt.Errorf("%s: nsolv must be a positive integer, got %d", errid, c.NSolv)
	}
	if (c.ImplicitModel == "") != (c.ImplicitSolvent == "") {
		return fmt.Errorf("%s: implicit model and implicit solvent must be given together", errid)
	}
	if c.ImplicitModel != "" {
		if err := ValidateImplicit(c.Method, c.ImplicitModel, c.ImplicitSolvent); err != nil {
			return fmt.Errorf("%s: %w", errid, err)
		}
	}
	return nil
}

//LoadConfig reads a configuration from a YAML file. Fields absent from the
//file keep their default values.
func LoadConfig(path string) (*Config, error) {
	errid := "microsolv/LoadConfig"
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	c := new(Config)
	c.SetDefaults()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("%s: couldn't parse %s: %w", errid, path, err)
	}
	return c, nil
}
