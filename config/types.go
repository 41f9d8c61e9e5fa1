// replication-manager - Replication Manager Monitoring and CLI for MariaDB and MySQL
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Author: Guillaume Lefranc <guillaume@signal18.io>
// License: GNU General Public License, version 3. Redistribution/Reuse of this code is permitted under the GNU v3 license, as an additional term ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.

// Package config implements the option-source abstraction (C1), the config
// validator (C2) and the config remediator (C3) described by the
// provisioning core: a unified, buffered write surface over a live server
// and an option file, and the logic that compares server state to the
// invariants a cluster type requires and fixes what doesn't match.
package config

import "fmt"

// ValueType tags how a value must be emitted at the SQL layer.
type ValueType int

const (
	TypeString ValueType = iota
	TypeInteger
	TypeBool
)

// ClusterType selects which invariant set the validator checks.
type ClusterType int

const (
	GroupReplication ClusterType = iota
	AsyncReplication
)

// Sentinel required-value markers. Kept as distinguished string constants
// (never collapsed with "" or a normal empty value) per the GR intent's
// null-vs-zero-value design note.
const (
	ValueNotSet = "\x00__value_not_set__"
	NoValue     = "\x00__no_value__"
)

// ConfigType is a small bit-set over {Server, Config, RestartOnly}.
type ConfigType uint8

const (
	Server ConfigType = 1 << iota
	Config
	RestartOnly
)

func (t ConfigType) Has(flag ConfigType) bool { return t&flag != 0 }
func (t ConfigType) Add(flag ConfigType) ConfigType { return t | flag }

func (t ConfigType) String() string {
	var parts []string
	if t.Has(Server) {
		parts = append(parts, "SERVER")
	}
	if t.Has(Config) {
		parts = append(parts, "CONFIG")
	}
	if t.Has(RestartOnly) {
		parts = append(parts, "RESTART_ONLY")
	}
	if len(parts) == 0 {
		return "NONE"
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += "|" + p
	}
	return out
}

// InvalidConfig is one entry of the ordered list the validator produces.
type InvalidConfig struct {
	VarName     string
	CurrentVal  string
	RequiredVal string
	ValType     ValueType
	Types       ConfigType
	Restart     bool
}

func (ic InvalidConfig) String() string {
	return fmt.Sprintf("%s: %q -> %q (%s)", ic.VarName, ic.CurrentVal, ic.RequiredVal, ic.Types)
}
