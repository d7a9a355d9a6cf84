/*
 * run.go, part of microsolvator.
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
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	chem "github.com/rmera/gochem"
	"go.uber.org/zap"
)

const constraintsFile = ".xcontrol"

//A Runner launches the prepared command in the given directory with the
//given environment, returning the captured standard output and error
//texts. Supplying one in RunOptions replaces the real subprocess call,
//which is how the tests fake CREST.
type Runner func(command []string, dir string, env []string) (stdout, stderr string, err error)

//RunOptions are the per-call knobs of a run, as opposed to the chemistry
//parameters in Config.
type RunOptions struct {
	//1-based atom indices to constrain during growth. Any non-positive
	//index is an error.
	ConstrainedIndices []int
	//ConstrainSolute constrains every solute atom.
	ConstrainSolute bool

	//WorkDir is used (and created) as the working directory when given.
	//Otherwise a temporary directory is made, removed at the end of the
	//call unless KeepTemps is set.
	WorkDir   string
	KeepTemps bool

	//PrepareOnly writes the inputs and emits the shell-quoted command to
	//CommandOut (os.Stdout if nil) without running anything.
	PrepareOnly bool
	CommandOut  io.Writer

	//TeeLog, if given, is a file that receives a copy of the captured
	//output, each line tagged with its stream of origin.
	TeeLog string

	Runner Runner
}

//Run performs a CREST microsolvation run: it writes the solute and solvent
//to the working directory, writes constraints if asked to, resolves the
//crest and xtb programs, builds and launches the command and reads the
//output geometries back. It blocks until CREST exits; imposing a deadline
//is the caller's business.
func Run(solute, solvent *chem.Molecule, conf Config, opts *RunOptions) (*Result, error) {
	errid := "microsolv/Run"
	if opts == nil {
		opts = new(RunOptions)
	}
	if solute == nil || solvent == nil {
		return nil, fmt.Errorf("%s: no solute or solvent molecule given", errid)
	}
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	//A prepare-only run into an auto-cleaned temporary directory would
	//print a command pointing at deleted files.
	keep := opts.KeepTemps
	if opts.PrepareOnly && opts.WorkDir == "" {
		keep = true
	}
	var workdir string
	if opts.WorkDir != "" {
		if err := os.MkdirAll(opts.WorkDir, 0755); err != nil {
			return nil, fmt.Errorf("%s: %w", errid, err)
		}
		workdir = opts.WorkDir
	} else {
		tmp, err := os.MkdirTemp("", "microsolvator_")
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errid, err)
		}
		if !keep {
			defer os.RemoveAll(tmp)
		}
		workdir = tmp
	}
	return execute(solute, solvent, conf, opts, workdir)
}

func execute(solute, solvent *chem.Molecule, conf Config, opts *RunOptions, workdir string) (*Result, error) {
	errid := "microsolv/Run"
	workdir, err := filepath.Abs(workdir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	solutePath := filepath.Join(workdir, "solute.xyz")
	solventPath := filepath.Join(workdir, "solvent.xyz")
	if err := chem.XYZFileWrite(solutePath, solute.Coords[0], solute); err != nil {
		return nil, fmt.Errorf("%s: couldn't write solute: %w", errid, err)
	}
	if err := chem.XYZFileWrite(solventPath, solvent.Coords[0], solvent); err != nil {
		return nil, fmt.Errorf("%s: couldn't write solvent: %w", errid, err)
	}
	constrained, err := writeConstraints(workdir, solute.Len(), opts.ConstrainedIndices, opts.ConstrainSolute)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	//Pre-optimization would move the constrained atoms, so it has to go.
	if constrained && !conf.NoPreOpt {
		conf.NoPreOpt = true
	}
	crest, err := ResolveCrest(conf.CrestPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	xtb, err := ResolveXTB(conf.XTBPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	command, err := BuildCommand(&conf, crest, xtb, solutePath, solventPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	if opts.PrepareOnly {
		out := opts.CommandOut
		if out == nil {
			out = os.Stdout
		}
		fmt.Fprintln(out, shellJoin(command))
		return &Result{Command: command, WorkDir: workdir}, nil
	}
	env := append(os.Environ(), CrestEnvVar+"="+crest, XTBEnvVar+"="+xtb)
	runner := opts.Runner
	if runner == nil {
		runner = defaultRunner
	}
	logger.Info("running crest", zap.String("workdir", workdir), zap.Strings("command", command))
	stdout, stderr, err := runner(command, workdir, env)
	if err != nil {
		return nil, fmt.Errorf("%s: crest failed: %w", errid, err)
	}
	if opts.TeeLog != "" {
		if err := teeOutput(opts.TeeLog, stdout, stderr); err != nil {
			return nil, fmt.Errorf("%s: %w", errid, err)
		}
	}
	res := &Result{
		Command:  command,
		WorkDir:  workdir,
		Best:     readOptional(filepath.Join(workdir, bestFile)),
		Ensemble: readOptional(filepath.Join(workdir, ensembleFile)),
		Final:    readOptional(filepath.Join(workdir, finalEnsembleFile)),
		Stdout:   stdout,
		Stderr:   stderr,
		Executed: true,
	}
	res.GrowthTraj = readOptional(filepath.Join(workdir, growthTrajFile))
	if pop := filepath.Join(workdir, populationFile); exists(pop) {
		res.PopulationPath = pop
	}
	if err := res.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	return res, nil
}

//defaultRunner launches the command for real, capturing both streams.
//A non-zero exit comes back as the *exec.ExitError from os/exec, with the
//captured stderr attached for context.
func defaultRunner(command []string, dir string, env []string) (string, string, error) {
	cmd := exec.Command(command[0], command[1:]...)
	cmd.Dir = dir
	cmd.Env = env
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err != nil {
		err = fmt.Errorf("%s in %s: %w: %s", command[0], dir, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), stderr.String(), err
}

//writeConstraints writes the xcontrol constraint block when there is
//anything to constrain, reporting whether it did. Indices are 1-based;
//the solute's atoms are 1..N since the solute file goes first.
func writeConstraints(workdir string, soluteLen int, indices []int, constrainSolute bool) (bool, error) {
	errid := "microsolv/writeConstraints"
	set := make(map[int]bool)
	if constrainSolute {
		for i := 1; i <= soluteLen; i++ {
			set[i] = true
		}
	}
	for _, idx := range indices {
		if idx <= 0 {
			return false, fmt.Errorf("%s: constraint indices must be 1-based and positive, got %d", errid, idx)
		}
		set[idx] = true
	}
	if len(set) == 0 {
		return false, nil
	}
	sorted := make([]int, 0, len(set))
	for idx := range set {
		sorted = append(sorted, idx)
	}
	sort.Ints(sorted)
	atoms := make([]string, len(sorted))
	for i, idx := range sorted {
		atoms[i] = strconv.Itoa(idx)
	}
	content := "$constrain\natoms: " + strings.Join(atoms, ",") + "\n$end\n"
	if err := os.WriteFile(filepath.Join(workdir, constraintsFile), []byte(content), 0644); err != nil {
		return false, fmt.Errorf("%s: %w", errid, err)
	}
	return true, nil
}

//teeOutput writes the captured streams to a log file, line by line,
//tagged by origin.
func teeOutput(path, stdout, stderr string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	for _, line := range splitLines(stdout) {
		fmt.Fprintf(f, "[stdout] %s\n", line)
	}
	for _, line := range splitLines(stderr) {
		fmt.Fprintf(f, "[stderr] %s\n", line)
	}
	return nil
}

func splitLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

//readOptional reads an XYZ file that may legitimately not be there.
func readOptional(path string) *chem.Molecule {
	if !exists(path) {
		return nil
	}
	mol, err := chem.XYZFileRead(path)
	if err != nil {
		logger.Warn("couldn't parse output file", zap.String("file", path), zap.Error(err))
		return nil
	}
	return mol
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

//shellJoin quotes each token so the emitted command can be pasted into a
//POSIX shell.
func shellJoin(command []string) string {
	quoted := make([]string, len(command))
	for i, tok := range command {
		quoted[i] = shellQuote(tok)
	}
	return strings.Join(quoted, " ")
}

func shellQuote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\n\"'\\$&|;<>()*?[]#~%!{}") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}
