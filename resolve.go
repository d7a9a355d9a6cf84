/*
 * resolve.go, part of microsolvator.
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
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
)

//Environment variables consulted when no explicit path is given. They are
//also re-exported to the subprocess, so CREST's helper scripts see the
//same binaries we resolved.
const (
	CrestEnvVar = "CREST_BIN"
	XTBEnvVar   = "XTB_BIN"
)

//BinDir is where Install places the downloaded programs and the third
//place the resolver looks. Overridable, mainly for testing.
var BinDir = defaultBinDir()

func defaultBinDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".microsolvator", "bin")
	}
	return filepath.Join(home, ".microsolvator", "bin")
}

//ResolveCrest returns the path to the crest program. The search order is:
//the explicit path (if given, it must exist), the CREST_BIN environment
//variable (same), the BinDir tree, the system PATH and, as a last resort,
//the bare name "crest", leaving the existence check to the launch itself.
func ResolveCrest(explicit string) (string, error) {
	return resolveBinary(explicit, CrestEnvVar, "crest")
}

//ResolveXTB returns the path to the xtb program, searching in the same
//order as ResolveCrest but with the XTB_BIN environment variable.
func ResolveXTB(explicit string) (string, error) {
	return resolveBinary(explicit, XTBEnvVar, "xtb")
}

func resolveBinary(explicit, envVar, name string) (string, error) {
	errid := "microsolv/resolveBinary"
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("%s: specified %s %w: %s", errid, name, ErrBinaryNotFound, explicit)
		}
		return canonical(explicit), nil
	}
	if envPath := os.Getenv(envVar); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("%s: %s points to missing %s: %w: %s",
				errid, envVar, name, ErrBinaryNotFound, envPath)
		}
		return canonical(envPath), nil
	}
	if found := findInBinDir(name); found != "" {
		return canonical(found), nil
	}
	if located, err := exec.LookPath(name); err == nil {
		return canonical(located), nil
	}
	return name, nil
}

//findInBinDir walks the installed-binaries directory for an executable
//regular file with the given name. Each call re-walks the tree; there is
//no caching.
func findInBinDir(name string) string {
	var found string
	filepath.WalkDir(BinDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || found != "" {
			return fs.SkipAll
		}
		if d.IsDir() || d.Name() != name {
			return nil
		}
		info, err := d.Info()
		if err == nil && info.Mode().IsRegular() && info.Mode()&0111 != 0 {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	return found
}

//canonical returns the symlink-resolved absolute form of a path, or the
//best approximation it can get.
func canonical(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return abs
	}
	return resolved
}
