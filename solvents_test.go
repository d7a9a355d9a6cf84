/*
 * solvents_test.go, part of microsolvator.
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
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupports(t *testing.T) {
	assert.True(t, Supports("gfn2", "alpb", "h2o"))
	assert.True(t, Supports("GFN2", "ALPB", "H2O"), "lookups should be case-insensitive")
	assert.True(t, Supports("gfn-ff", "alpb", "h2o"), "gfn-ff is an alias for gfnff")
	assert.False(t, Supports("gfn2", "alpb", "unknown"))
	assert.False(t, Supports("gfn2", "cosmo", "h2o"))
	assert.False(t, Supports("pm6", "alpb", "h2o"))
	//gbsa has holes in its parametrization
	assert.False(t, Supports("gfn1", "gbsa", "aniline"))
	assert.True(t, Supports("gfn1", "alpb", "aniline"))
	//hexane is gbsa-parametrized for gfn2 but not gfn1
	assert.True(t, Supports("gfn2", "gbsa", "hexane"))
	assert.False(t, Supports("gfn1", "gbsa", "hexane"))
}

func TestListSupported(t *testing.T) {
	all := ListSupported("", "")
	require.Contains(t, all, "gfn1")
	require.Contains(t, all, "gfn2")
	require.Contains(t, all, "gfnff")

	filtered := ListSupported("gfn2", "alpb")
	require.Len(t, filtered, 1)
	require.Len(t, filtered["gfn2"], 1)
	solvents := filtered["gfn2"]["alpb"]
	assert.Contains(t, solvents, "h2o")
	assert.True(t, sort.StringsAreSorted(solvents))

	//only supported solvents are listed
	assert.NotContains(t, ListSupported("gfn1", "gbsa")["gfn1"]["gbsa"], "aniline")

	//gfnff has no gbsa parametrization at all, so the group is omitted
	assert.Empty(t, ListSupported("gfnff", "gbsa"))
}

func TestValidateImplicit(t *testing.T) {
	require.NoError(t, ValidateImplicit("gfn2", "alpb", "h2o"))
	err := ValidateImplicit("gfn2", "alpb", "unobtainium")
	require.ErrorIs(t, err, ErrUnsupportedSolvent)
}
