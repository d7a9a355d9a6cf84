/*
 * main.go, part of microsolvator.
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

//microsolv is the command-line front end to the microsolvator library.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	microsolv "github.com/kangmg/microsolvator"
	chem "github.com/rmera/gochem"
	"go.uber.org/zap"
)

const usage = `usage: microsolv <command> [flags]

commands:
  run       grow a solvent cluster around a solute with CREST
  solvents  list the supported implicit-solvent combinations
  install   download crest or xtb into the microsolvator bin directory

Run "microsolv <command> -h" for the flags of each command.
`

func main() {
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(outW io.Writer, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(outW, usage)
		return nil
	}
	switch args[0] {
	case "run":
		return runSolvation(outW, args[1:])
	case "solvents":
		return listSolvents(outW, args[1:])
	case "install":
		return install(outW, args[1:])
	case "help", "-h", "--help":
		fmt.Fprint(outW, usage)
		return nil
	}
	return fmt.Errorf("microsolv: unknown command %q", args[0])
}

func runSolvation(outW io.Writer, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML run configuration")
	solutePath := fs.String("solute", "", "solute XYZ file (required)")
	solventPath := fs.String("solvent", "", "solvent XYZ file (required)")
	nsolv := fs.Int("nsolv", 0, "number of solvent molecules (overrides the config file)")
	workdir := fs.String("workdir", "", "working directory (default: a fresh temporary one)")
	keep := fs.Bool("keep", false, "keep the temporary working directory")
	prepareOnly := fs.Bool("prepare-only", false, "write inputs and print the command without running CREST")
	tee := fs.String("tee", "", "copy the captured CREST output to this file")
	plotPath := fs.String("plot", "", "write a population bar chart to this file")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *solutePath == "" || *solventPath == "" {
		return fmt.Errorf("microsolv run: both -solute and -solvent are required")
	}
	if err := setupLogging(*verbose); err != nil {
		return err
	}
	var conf *microsolv.Config
	var err error
	if *configPath != "" {
		conf, err = microsolv.LoadConfig(*configPath)
		if err != nil {
			return err
		}
	} else {
		conf = microsolv.NewConfig(0)
	}
	if *nsolv > 0 {
		conf.NSolv = *nsolv
	}
	solute, err := chem.XYZFileRead(*solutePath)
	if err != nil {
		return fmt.Errorf("microsolv run: couldn't read solute: %w", err)
	}
	solvent, err := chem.XYZFileRead(*solventPath)
	if err != nil {
		return fmt.Errorf("microsolv run: couldn't read solvent: %w", err)
	}
	opts := &microsolv.RunOptions{
		WorkDir:     *workdir,
		KeepTemps:   *keep,
		PrepareOnly: *prepareOnly,
		CommandOut:  outW,
		TeeLog:      *tee,
	}
	res, err := microsolv.Run(solute, solvent, *conf, opts)
	if err != nil {
		return err
	}
	if !res.Executed {
		return nil
	}
	fmt.Fprintf(outW, "run finished in %s\n", res.WorkDir)
	if res.Best != nil {
		fmt.Fprintf(outW, "best cluster: %d atoms\n", res.Best.Len())
	}
	if res.Ensemble != nil {
		fmt.Fprintf(outW, "ensemble: %d clusters\n", res.Ensemble.NFrames())
	}
	if res.PopulationPath != "" {
		fmt.Fprintf(outW, "populations: %s\n", res.PopulationPath)
	}
	if *plotPath != "" {
		weights, err := res.Populations()
		if err != nil {
			return err
		}
		if err := microsolv.PlotPopulations(weights, *plotPath); err != nil {
			return err
		}
		fmt.Fprintf(outW, "population plot: %s\n", *plotPath)
	}
	return nil
}

func listSolvents(outW io.Writer, args []string) error {
	fs := flag.NewFlagSet("solvents", flag.ContinueOnError)
	method := fs.String("method", "", "only this method")
	model := fs.String("model", "", "only this implicit model")
	if err := fs.Parse(args); err != nil {
		return err
	}
	listing := microsolv.ListSupported(*method, *model)
	methods := make([]string, 0, len(listing))
	for m := range listing {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	for _, m := range methods {
		models := make([]string, 0, len(listing[m]))
		for mo := range listing[m] {
			models = append(models, mo)
		}
		sort.Strings(models)
		for _, mo := range models {
			fmt.Fprintf(outW, "%s/%s:\n", m, mo)
			for _, s := range listing[m][mo] {
				fmt.Fprintf(outW, "  %s\n", s)
			}
		}
	}
	return nil
}

func install(outW io.Writer, args []string) error {
	fs := flag.NewFlagSet("install", flag.ContinueOnError)
	url := fs.String("url", "", "archive URL (default: the official release)")
	force := fs.Bool("force", false, "replace an existing install")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("microsolv install: expected exactly one of: crest, xtb")
	}
	if err := setupLogging(*verbose); err != nil {
		return err
	}
	opts := &microsolv.InstallOptions{URL: *url, Force: *force}
	var path string
	var err error
	switch fs.Arg(0) {
	case "crest":
		path, err = microsolv.InstallCrest(opts)
	case "xtb":
		path, err = microsolv.InstallXTB(opts)
	default:
		return fmt.Errorf("microsolv install: unknown program %q", fs.Arg(0))
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(outW, "installed %s\n", path)
	return nil
}

func setupLogging(verbose bool) error {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		return err
	}
	microsolv.SetLogger(l)
	return nil
}
