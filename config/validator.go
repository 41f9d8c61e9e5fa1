// replication-manager - Replication Manager Monitoring and CLI for MariaDB and MySQL
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Author: Guillaume Lefranc <guillaume@signal18.io>
// License: GNU General Public License, version 3. Redistribution/Reuse of this code is permitted under the GNU v3 license, as an additional term ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.
package config

import (
	"github.com/signal18/gr-provision/utils/mysql"
)

// CheckInstanceConfig compares the live server's configuration against the
// invariants required by clusterType and returns an ordered list of
// invalid-config records. Order matters: it drives the remediator's write
// order (enforce_gtid_consistency before gtid_mode, etc).
func CheckInstanceConfig(inst mysql.Instance, agg *Aggregate, clusterType ClusterType) ([]InvalidConfig, error) {
	var out []InvalidConfig

	serverID, err := inst.GetSysvarInt("server_id", mysql.Global)
	if err != nil {
		return nil, err
	}
	if serverID == 0 {
		out = append(out, InvalidConfig{
			VarName:     "server_id",
			CurrentVal:  "0",
			RequiredVal: "",
			ValType:     TypeInteger,
			Types:       Server,
			Restart:     true,
		})
	}

	logBin, err := inst.GetSysvarBool("log_bin", mysql.Global)
	if err != nil {
		return nil, err
	}
	if !logBin {
		// log_bin cannot be toggled live; it is never SERVER-only.
		out = append(out, InvalidConfig{
			VarName:     "log_bin",
			CurrentVal:  "OFF",
			RequiredVal: NoValue,
			ValType:     TypeBool,
			Types:       Config | RestartOnly,
			Restart:     true,
		})
	}

	for _, check := range []struct {
		name     string
		required string
	}{
		{"enforce_gtid_consistency", "ON"},
		{"gtid_mode", "ON"},
		{"log_slave_updates", "ON"},
	} {
		out, err = appendBoolCheck(out, inst, check.name, check.required, true)
		if err != nil {
			return nil, err
		}
	}

	for _, check := range []struct {
		name     string
		required string
	}{
		{"master_info_repository", "TABLE"},
		{"relay_log_info_repository", "TABLE"},
	} {
		out, err = appendStringCheck(out, inst, check.name, check.required, true)
		if err != nil {
			return nil, err
		}
	}

	if clusterType == GroupReplication {
		out, err = appendStringCheck(out, inst, "transaction_write_set_extraction", "XXHASH64", true)
		if err != nil {
			return nil, err
		}
	}

	// Escalation rule: if the server cannot persist and no file handler is
	// attached, return without escalation.
	cannotPersist := agg.ServerDefaultQualifier() != mysql.Persist
	if cannotPersist && agg.HasHandler(FileHandlerID) {
		for i := range out {
			// log_bin never leaves with SERVER only, by construction above;
			// this loop can only broaden its types, never narrow them.
			out[i].Types = out[i].Types.Add(Config)
		}
	}

	return out, nil
}

func appendBoolCheck(out []InvalidConfig, inst mysql.Instance, name, required string, restart bool) ([]InvalidConfig, error) {
	current, err := inst.GetSysvarBool(name, mysql.Global)
	if err != nil {
		return nil, err
	}
	wantOn := required == "ON"
	if current == wantOn {
		return out, nil
	}
	currentStr := "OFF"
	if current {
		currentStr = "ON"
	}
	return append(out, InvalidConfig{
		VarName:     name,
		CurrentVal:  currentStr,
		RequiredVal: required,
		ValType:     TypeBool,
		Types:       Server,
		Restart:     restart,
	}), nil
}

func appendStringCheck(out []InvalidConfig, inst mysql.Instance, name, required string, restart bool) ([]InvalidConfig, error) {
	current, err := inst.GetSysvarString(name, mysql.Global)
	if err != nil {
		return nil, err
	}
	if current == required {
		return out, nil
	}
	return append(out, InvalidConfig{
		VarName:     name,
		CurrentVal:  current,
		RequiredVal: required,
		ValType:     TypeString,
		Types:       Server,
		Restart:     restart,
	}), nil
}
