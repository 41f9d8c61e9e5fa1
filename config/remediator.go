// replication-manager - Replication Manager Monitoring and CLI for MariaDB and MySQL
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Author: Guillaume Lefranc <guillaume@signal18.io>
// License: GNU General Public License, version 3. Redistribution/Reuse of this code is permitted under the GNU v3 license, as an additional term ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.
package config

import (
	"crypto/rand"
	"encoding/binary"
	"strconv"

	"github.com/signal18/gr-provision/utils/mysql"
)

// readOnlyVars cannot be changed at runtime; they are written with SET
// PERSIST_ONLY when the server supports it, and left untouched otherwise.
var readOnlyVars = map[string]bool{
	"enforce_gtid_consistency":         true,
	"log_slave_updates":                true,
	"gtid_mode":                        true,
	"master_info_repository":           true,
	"relay_log_info_repository":        true,
	"transaction_write_set_extraction": true,
	"server_id":                        true,
}

// onlyOptionFileVars have no corresponding live server variable at all
// (e.g. log_bin can only be toggled by editing the option file and
// restarting).
var onlyOptionFileVars = map[string]bool{
	"log_bin": true,
}

// deprecatedVars must never receive a server-side SET, even though they
// are still validated on older versions.
var deprecatedVars = map[string]bool{
	"master_info_repository":    true,
	"relay_log_info_repository": true,
}

// persistDelayVars get the 1ms inter-write delay so their timestamp in the
// persisted-config journal reliably differs from the next write's.
var persistDelayVars = map[string]bool{
	"enforce_gtid_consistency": true,
}

// getReplicationOptionKeyword returns the replica_* spelling on servers
// that renamed the legacy slave_* terminology (>= 8.0.26), else the
// original name unchanged.
func getReplicationOptionKeyword(version mysql.Version, name string) string {
	if !version.AtLeast(8, 0, 26) {
		return name
	}
	renames := map[string]string{
		"log_slave_updates":      "log_replica_updates",
		"master_info_repository": "replica_info_repository",
	}
	if renamed, ok := renames[name]; ok {
		return renamed
	}
	return name
}

// generateServerID produces a random value in [1, 2^32-1] for a server_id
// fix whose required value was left unspecified by the caller.
func generateServerID() (uint32, error) {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(buf[:])
	if v == 0 {
		v = 1
	}
	return v, nil
}

// Remediate applies fixes for every record in invalidConfigs, in order,
// via agg, respecting read-only/persistability/deprecation rules, and
// reports whether a server restart is required.
func Remediate(agg *Aggregate, invalidConfigs []InvalidConfig, version mysql.Version) (needRestart bool, err error) {
	useSetPersist := agg.ServerDefaultQualifier() == mysql.Persist

	for _, ic := range invalidConfigs {
		if ic.Restart {
			needRestart = true
		}

		if ic.VarName == "server_id" && ic.RequiredVal == "" {
			id, genErr := generateServerID()
			if genErr != nil {
				return needRestart, genErr
			}
			ic.RequiredVal = strconv.FormatUint(uint64(id), 10)
		}

		onlyOptFile := onlyOptionFileVars[ic.VarName]
		readOnly := readOnlyVars[ic.VarName]
		deprecated := deprecatedVars[ic.VarName]
		persistOnly := useSetPersist && readOnly

		delay := 0
		if useSetPersist && persistDelayVars[ic.VarName] {
			delay = 1
		}

		if ic.Types.Has(Server) && !onlyOptFile {
			keyword := getReplicationOptionKeyword(version, ic.VarName)
			switch {
			case persistOnly && !deprecated:
				if err = agg.SetForHandlerWithQualifier(keyword, ic.RequiredVal, ic.ValType, ServerHandlerID, mysql.PersistOnly, delay); err != nil {
					return needRestart, err
				}
			case !readOnly && !deprecated:
				if err = agg.SetForHandler(keyword, ic.RequiredVal, ic.ValType, ServerHandlerID, delay); err != nil {
					return needRestart, err
				}
			}
		}

		if ic.Types.Has(Config) && agg.HasHandler(FileHandlerID) {
			switch ic.RequiredVal {
			case ValueNotSet:
				if err = agg.SetForHandler(ic.VarName, ValueNotSet, ic.ValType, FileHandlerID, 0); err != nil {
					return needRestart, err
				}
			case NoValue:
				if err = agg.SetForHandler(ic.VarName, NoValue, ic.ValType, FileHandlerID, 0); err != nil {
					return needRestart, err
				}
			default:
				if err = agg.SetForHandler(ic.VarName, ic.RequiredVal, ic.ValType, FileHandlerID, 0); err != nil {
					return needRestart, err
				}
			}
		}
	}

	if err = agg.Apply(); err != nil {
		return needRestart, err
	}
	return needRestart, nil
}
