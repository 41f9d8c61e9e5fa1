// replication-manager - Replication Manager Monitoring and CLI for MariaDB and MySQL
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Author: Guillaume Lefranc <guillaume@signal18.io>
// License: GNU General Public License, version 3. Redistribution/Reuse of this code is permitted under the GNU v3 license, as an additional term ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signal18/gr-provision/utils/mysql"
)

func wellConfiguredInstance() *fakeInstance {
	inst := newFakeInstance()
	inst.ints["server_id"] = 1
	inst.bools["log_bin"] = true
	inst.bools["enforce_gtid_consistency"] = true
	inst.bools["gtid_mode"] = true
	inst.bools["log_slave_updates"] = true
	inst.strings["master_info_repository"] = "TABLE"
	inst.strings["relay_log_info_repository"] = "TABLE"
	inst.strings["transaction_write_set_extraction"] = "XXHASH64"
	return inst
}

func TestCheckInstanceConfigCleanServer(t *testing.T) {
	inst := wellConfiguredInstance()
	agg := NewAggregate(NewServerHandler(inst, mysql.Persist))

	out, err := CheckInstanceConfig(inst, agg, GroupReplication)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestCheckInstanceConfigFlagsEverything(t *testing.T) {
	inst := newFakeInstance() // server_id=0, log_bin=false, everything off
	agg := NewAggregate(NewServerHandler(inst, mysql.Persist))

	out, err := CheckInstanceConfig(inst, agg, GroupReplication)
	require.NoError(t, err)
	require.NotEmpty(t, out)

	names := make(map[string]InvalidConfig)
	for _, ic := range out {
		names[ic.VarName] = ic
	}
	require.Contains(t, names, "server_id")
	require.Contains(t, names, "log_bin")
	require.Contains(t, names, "transaction_write_set_extraction")
}

func TestCheckInstanceConfigLogBinInvariant(t *testing.T) {
	inst := newFakeInstance()
	agg := NewAggregate(NewServerHandler(inst, mysql.Persist))

	out, err := CheckInstanceConfig(inst, agg, AsyncReplication)
	require.NoError(t, err)

	for _, ic := range out {
		if ic.VarName == "log_bin" {
			assert.False(t, ic.Types == Server, "log_bin must never be SERVER-only")
			assert.True(t, ic.Types.Has(Config) || ic.Types.Has(RestartOnly))
		}
	}
}

func TestCheckInstanceConfigEscalatesWhenCannotPersist(t *testing.T) {
	inst := newFakeInstance()
	file := newFakeOptionFile()
	agg := NewAggregate(NewServerHandler(inst, mysql.Global), NewFileHandler(file))

	out, err := CheckInstanceConfig(inst, agg, GroupReplication)
	require.NoError(t, err)
	require.NotEmpty(t, out)

	for _, ic := range out {
		assert.True(t, ic.Types.Has(Config), "every record must carry CONFIG once escalated: %v", ic)
	}
}

func TestCheckInstanceConfigNoEscalationWithoutFileHandler(t *testing.T) {
	inst := newFakeInstance()
	agg := NewAggregate(NewServerHandler(inst, mysql.Global))

	out, err := CheckInstanceConfig(inst, agg, GroupReplication)
	require.NoError(t, err)
	require.NotEmpty(t, out)

	var anyConfig bool
	for _, ic := range out {
		if ic.VarName != "log_bin" && ic.Types.Has(Config) {
			anyConfig = true
		}
	}
	assert.False(t, anyConfig, "no file handler attached: nothing should escalate to CONFIG")
}
