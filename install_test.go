/*
 * install_test.go, part of microsolvator.
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
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

//tarball builds an archive holding the fake binary under a nested
//release-style directory, compressed by the given writer.
func tarball(t *testing.T, compress func(io.Writer) io.WriteCloser) []byte {
	t.Helper()
	var buf bytes.Buffer
	cw := compress(&buf)
	tw := tar.NewWriter(cw)
	body := []byte("#!/bin/sh\necho fake crest\n")
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name: "crest-dist/bin/", Typeflag: tar.TypeDir, Mode: 0755,
	}))
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name: "crest-dist/bin/crest", Typeflag: tar.TypeReg, Mode: 0644, Size: int64(len(body)),
	}))
	_, err := tw.Write(body)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, cw.Close())
	return buf.Bytes()
}

func serveArchive(t *testing.T, payload []byte) (*httptest.Server, *int) {
	t.Helper()
	hits := new(int)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		(*hits)++
		w.Write(payload)
	}))
	t.Cleanup(srv.Close)
	return srv, hits
}

func TestInstallFromTarGz(t *testing.T) {
	useTempBinDir(t)
	payload := tarball(t, func(w io.Writer) io.WriteCloser { return gzip.NewWriter(w) })
	srv, hits := serveArchive(t, payload)

	path, err := installBinary("crest", "", &InstallOptions{URL: srv.URL + "/crest.tar.gz"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(BinDir, "crest"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0111, "the installed binary must be executable")
	assert.Equal(t, 1, *hits)

	//an existing install short-circuits...
	again, err := installBinary("crest", "", &InstallOptions{URL: srv.URL + "/crest.tar.gz"})
	require.NoError(t, err)
	assert.Equal(t, path, again)
	assert.Equal(t, 1, *hits)

	//...unless forced
	_, err = installBinary("crest", "", &InstallOptions{URL: srv.URL + "/crest.tar.gz", Force: true})
	require.NoError(t, err)
	assert.Equal(t, 2, *hits)

	//the resolver picks the install up
	t.Setenv(CrestEnvVar, "")
	resolved, err := ResolveCrest("")
	require.NoError(t, err)
	assert.Equal(t, canonical(path), resolved)
}

func TestInstallFromTarXz(t *testing.T) {
	useTempBinDir(t)
	payload := tarball(t, func(w io.Writer) io.WriteCloser {
		xw, err := xz.NewWriter(w)
		require.NoError(t, err)
		return xw
	})
	srv, _ := serveArchive(t, payload)

	path, err := installBinary("crest", "", &InstallOptions{URL: srv.URL + "/crest.tar.xz"})
	require.NoError(t, err)
	assert.FileExists(t, path)

	//extraction leftovers are gone
	entries, err := os.ReadDir(BinDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "crest", entries[0].Name())
}

func TestInstallMissingBinaryInArchive(t *testing.T) {
	useTempBinDir(t)
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name: "README", Typeflag: tar.TypeReg, Mode: 0644, Size: 2,
	}))
	_, err := tw.Write([]byte("hi"))
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	srv, _ := serveArchive(t, buf.Bytes())

	_, err = installBinary("crest", "", &InstallOptions{URL: srv.URL + "/crest.tar.gz"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "couldn't locate")
}

func TestInstallBadDownload(t *testing.T) {
	useTempBinDir(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	_, err := installBinary("crest", "", &InstallOptions{URL: srv.URL + "/crest.tar.gz"})
	require.Error(t, err)
}
