/*
 * config_test.go, part of microsolvator.
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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	conf := NewConfig(3)
	require.NoError(t, conf.Validate())

	conf.NSolv = 0
	require.Error(t, conf.Validate())
	conf.NSolv = -2
	require.Error(t, conf.Validate())

	//the implicit pair must come together or not at all
	conf = NewConfig(3)
	conf.ImplicitModel = "alpb"
	require.Error(t, conf.Validate())
	conf.ImplicitModel = ""
	conf.ImplicitSolvent = "h2o"
	require.Error(t, conf.Validate())
	conf.ImplicitModel = "alpb"
	require.NoError(t, conf.Validate())

	conf.ImplicitSolvent = "unobtainium"
	require.ErrorIs(t, conf.Validate(), ErrUnsupportedSolvent)
}

func TestConfigDefaults(t *testing.T) {
	conf := NewConfig(5)
	assert.Equal(t, 5, conf.NSolv)
	assert.Equal(t, "gfn2", conf.Method)
	assert.Equal(t, 298.0, conf.Temperature)
	assert.Equal(t, 50.0, conf.MDTime)
	assert.True(t, conf.Ensemble)
	assert.False(t, conf.NoPreOpt)
}

func TestLoadConfig(t *testing.T) {
	text := `nsolv: 4
method: gfn1
implicit_model: alpb
implicit_solvent: methanol
ensemble: false
extra_flags: ["--wscal", "1.0"]
`
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))
	conf, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 4, conf.NSolv)
	assert.Equal(t, "gfn1", conf.Method)
	assert.Equal(t, "alpb", conf.ImplicitModel)
	assert.Equal(t, "methanol", conf.ImplicitSolvent)
	assert.False(t, conf.Ensemble)
	assert.Equal(t, []string{"--wscal", "1.0"}, conf.ExtraFlags)
	//fields absent from the file keep their defaults
	assert.Equal(t, 298.0, conf.Temperature)
	assert.Equal(t, 50.0, conf.MDTime)
	require.NoError(t, conf.Validate())
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("nsolv: [not an int\n"), 0644))
	_, err = LoadConfig(path)
	require.Error(t, err)
}
