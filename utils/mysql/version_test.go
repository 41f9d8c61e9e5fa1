// replication-manager - Replication Manager Monitoring and CLI for MariaDB and MySQL
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Author: Guillaume Lefranc <guillaume@signal18.io>
// License: GNU General Public License, version 3. Redistribution/Reuse of this code is permitted under the GNU v3 license, as an additional term ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.
package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	v, err := ParseVersion("8.0.30-log")
	require.NoError(t, err)
	assert.Equal(t, Version{8, 0, 30}, v)

	v, err = ParseVersion("5.7.42-0ubuntu0.18.04.1")
	require.NoError(t, err)
	assert.Equal(t, Version{5, 7, 42}, v)

	_, err = ParseVersion("not-a-version")
	assert.Error(t, err)
}

func TestVersionAtLeast(t *testing.T) {
	v := Version{8, 0, 26}
	assert.True(t, v.AtLeast(8, 0, 22))
	assert.True(t, v.AtLeast(8, 0, 26))
	assert.False(t, v.AtLeast(8, 0, 27))
	assert.False(t, v.AtLeast(8, 1, 0))
}

func TestVersionLessThan(t *testing.T) {
	v := Version{5, 7, 42}
	assert.True(t, v.LessThan(8, 0, 11))
	assert.False(t, v.LessThan(5, 7, 42))
}

func TestVersionCompare(t *testing.T) {
	assert.Equal(t, 0, Version{8, 0, 30}.Compare(Version{8, 0, 30}))
	assert.Equal(t, -1, Version{8, 0, 11}.Compare(Version{8, 0, 30}))
	assert.Equal(t, 1, Version{8, 0, 30}.Compare(Version{8, 0, 11}))
}
