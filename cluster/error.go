// replication-manager - Replication Manager Monitoring and CLI for MariaDB and MySQL
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Authors: Guillaume Lefranc <guillaume@signal18.io>
//
//	Stephane Varoqui  <svaroqui@gmail.com>
//
// This source code is licensed under the GNU General Public License, version 3.
// Redistribution/Reuse of this code is permitted under the GNU v3 license, as
// an additional term, ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.
package cluster

import (
	"fmt"

	"github.com/signal18/gr-provision/utils/mysql"
)

// ErrorKind discriminates the handful of failure modes the provisioning
// core can raise, replacing exceptions-for-control-flow with a typed enum.
type ErrorKind int

const (
	ErrInvariantViolated ErrorKind = iota
	ErrPeerNotMember
	ErrPeerNotOnline
	ErrGroupReplicationStartFailed
	ErrReadyTimeout
	ErrUnsupportedVersion
	ErrConfigApplyFailed
)

// clusterError maps each kind to its code and message template, trimmed
// down to the handful this core raises from the fuller failover/proxy
// catalogue the rest of the package family carries.
var clusterError = map[ErrorKind]string{
	ErrInvariantViolated:           "ERR00001: invariant violated: %s",
	ErrPeerNotMember:               "ERR00002: peer query failed; peer is no longer a member of the group",
	ErrPeerNotOnline:               "ERR00003: peer %s member_state is %s, expected ONLINE",
	ErrGroupReplicationStartFailed: "ERR00004: START GROUP_REPLICATION failed: %s",
	ErrReadyTimeout:                "ERR00005: super_read_only did not clear within %s",
	ErrUnsupportedVersion:          "ERR00006: %s requires server version %s, got %s",
	ErrConfigApplyFailed:           "ERR00007: config apply failed",
}

func (k ErrorKind) String() string {
	switch k {
	case ErrInvariantViolated:
		return "InvariantViolated"
	case ErrPeerNotMember:
		return "PeerNotMember"
	case ErrPeerNotOnline:
		return "PeerNotOnline"
	case ErrGroupReplicationStartFailed:
		return "GroupReplicationStartFailed"
	case ErrReadyTimeout:
		return "ReadyTimeout"
	case ErrUnsupportedVersion:
		return "UnsupportedVersion"
	case ErrConfigApplyFailed:
		return "ConfigApplyFailed"
	default:
		return "Unknown"
	}
}

// Error is the typed error every orchestrator entry point returns. It
// implements Unwrap so errors.Is/errors.As and pkg/errors.Cause all see
// through to the underlying collaborator failure.
type Error struct {
	Kind       ErrorKind
	Code       string
	Message    string
	Cause      error
	LogEntries []mysql.ErrorLogEntry
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// newError builds an Error from a clusterError template, looking the
// message up by kind the way the teacher looks codes up by string key.
func newError(kind ErrorKind, cause error, args ...interface{}) *Error {
	tmpl := clusterError[kind]
	return &Error{
		Kind:    kind,
		Code:    tmpl,
		Message: fmt.Sprintf(tmpl, args...),
		Cause:   cause,
	}
}
