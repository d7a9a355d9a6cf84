/*
 * install.go, part of microsolvator.
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
	"archive/tar"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"
	"go.uber.org/zap"
)

//Release archives for linux/amd64. Pass your own URL for anything else.
const (
	DefaultCrestURL = "https://github.com/crest-lab/crest/releases/download/latest/crest-gnu-12-ubuntu-latest.tar.xz"
	DefaultXTBURL   = "https://github.com/grimme-lab/xtb/releases/download/v6.7.0/xtb-6.7.0-linux-x86_64.tar.xz"
)

//InstallOptions control where an install comes from and whether an
//existing binary is replaced.
type InstallOptions struct {
	URL   string //empty means the default release archive
	Force bool
}

//InstallCrest downloads a CREST release archive, extracts it and places
//the crest binary, marked executable, in BinDir, where the resolver will
//find it. It returns the installed path. An already-installed binary is
//kept unless Force is set.
func InstallCrest(opts *InstallOptions) (string, error) {
	return installBinary("crest", DefaultCrestURL, opts)
}

//InstallXTB does the same as InstallCrest, for xtb.
func InstallXTB(opts *InstallOptions) (string, error) {
	return installBinary("xtb", DefaultXTBURL, opts)
}

func installBinary(name, defaultURL string, opts *InstallOptions) (string, error) {
	errid := "microsolv/installBinary"
	if opts == nil {
		opts = new(InstallOptions)
	}
	url := opts.URL
	if url == "" {
		url = defaultURL
	}
	if err := os.MkdirAll(BinDir, 0755); err != nil {
		return "", fmt.Errorf("%s: %w", errid, err)
	}
	final := filepath.Join(BinDir, name)
	if exists(final) && !opts.Force {
		return final, nil
	}
	archive := filepath.Join(BinDir, name+archiveSuffix(url))
	logger.Info("downloading", zap.String("url", url), zap.String("to", archive))
	if err := download(url, archive); err != nil {
		return "", fmt.Errorf("%s: %w", errid, err)
	}
	defer os.Remove(archive)
	extractDir, err := os.MkdirTemp(BinDir, "_extract")
	if err != nil {
		return "", fmt.Errorf("%s: %w", errid, err)
	}
	defer os.RemoveAll(extractDir)
	if err := extractArchive(archive, extractDir); err != nil {
		return "", fmt.Errorf("%s: %w", errid, err)
	}
	binary := findFile(extractDir, name)
	if binary == "" {
		return "", fmt.Errorf("%s: couldn't locate %s inside the extracted archive", errid, name)
	}
	os.Remove(final)
	if err := os.Rename(binary, final); err != nil {
		return "", fmt.Errorf("%s: %w", errid, err)
	}
	info, err := os.Stat(final)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errid, err)
	}
	if err := os.Chmod(final, info.Mode()|0111); err != nil {
		return "", fmt.Errorf("%s: %w", errid, err)
	}
	logger.Info("installed", zap.String("binary", final))
	return final, nil
}

func archiveSuffix(url string) string {
	if strings.HasSuffix(url, ".tar.gz") || strings.HasSuffix(url, ".tgz") {
		return ".tar.gz"
	}
	return ".tar.xz"
}

func download(url, dest string) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: %s", url, resp.Status)
	}
	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

//extractArchive unpacks a .tar.xz or .tar.gz archive into dest.
func extractArchive(archive, dest string) error {
	f, err := os.Open(archive)
	if err != nil {
		return err
	}
	defer f.Close()
	var decomp io.Reader
	if strings.HasSuffix(archive, ".tar.gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return err
		}
		defer gz.Close()
		decomp = gz
	} else {
		decomp, err = xz.NewReader(f)
		if err != nil {
			return err
		}
	}
	return extractTar(decomp, dest)
}

func extractTar(r io.Reader, dest string) error {
	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		name := filepath.Clean(hdr.Name)
		//Refuse entries that would land outside dest.
		if filepath.IsAbs(name) || strings.HasPrefix(name, "..") {
			continue
		}
		target := filepath.Join(dest, name)
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return err
			}
			f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.FileMode(hdr.Mode)&0777)
			if err != nil {
				return err
			}
			if _, err := io.Copy(f, tr); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
		}
	}
}

//findFile walks root for a regular file with the given name.
func findFile(root, name string) string {
	var found string
	filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || found != "" {
			return filepath.SkipAll
		}
		if !info.IsDir() && info.Name() == name {
			found = path
			return filepath.SkipAll
		}
		return nil
	})
	return found
}
