// replication-manager - Replication Manager Monitoring and CLI for MariaDB and MySQL
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Author: Guillaume Lefranc <guillaume@signal18.io>
// License: GNU General Public License, version 3. Redistribution/Reuse of this code is permitted under the GNU v3 license, as an additional term ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.

// Package cluster implements the Group Replication lifecycle orchestrators
// (bootstrap, join, leave), the GR option programmer, the error-log
// scraper and readiness waiter, and the error-kind catalogue these raise.
package cluster

// SSLMode mirrors group_replication_ssl_mode's valid values.
type SSLMode int

const (
	SSLDisabled SSLMode = iota
	SSLRequired
	SSLVerifyCA
	SSLVerifyIdentity
	SSLAuto
)

func (m SSLMode) String() string {
	switch m {
	case SSLDisabled:
		return "DISABLED"
	case SSLRequired:
		return "REQUIRED"
	case SSLVerifyCA:
		return "VERIFY_CA"
	case SSLVerifyIdentity:
		return "VERIFY_IDENTITY"
	case SSLAuto:
		return "AUTO"
	default:
		return "DISABLED"
	}
}

// MemberState mirrors performance_schema.replication_group_members.MEMBER_STATE.
type MemberState int

const (
	MemberOnline MemberState = iota
	MemberRecovering
	MemberOffline
	MemberError
	MemberUnreachable
	MemberMissing
)

func (s MemberState) String() string {
	switch s {
	case MemberOnline:
		return "ONLINE"
	case MemberRecovering:
		return "RECOVERING"
	case MemberOffline:
		return "OFFLINE"
	case MemberError:
		return "ERROR"
	case MemberUnreachable:
		return "UNREACHABLE"
	case MemberMissing:
		return "MISSING"
	default:
		return "UNKNOWN"
	}
}

// Topology selects single- vs multi-primary GR operation.
type Topology int

const (
	SinglePrimary Topology = iota
	MultiPrimary
)

// RecoveryCredentials programs the group_replication_recovery channel on a
// joining instance when non-empty.
type RecoveryCredentials struct {
	User     string
	Password string
}

// GRIntent is the caller-supplied desired state for the GR option
// programmer (C4). Every field that has a meaningful zero value is
// wrapped in Optional so "do not touch" is never confused with "set to
// zero/empty".
type GRIntent struct {
	GroupName            Optional[string]
	ViewChangeUUID       Optional[string]
	SSLMode              Optional[SSLMode]
	LocalAddress         Optional[string]
	GroupSeeds           Optional[string]
	IPAllowlist          Optional[string]
	ExitStateAction      Optional[string]
	MemberWeight         Optional[int]
	Consistency          Optional[string]
	ExpelTimeout         Optional[int]
	AutoRejoinTries      Optional[int]
	ManualStartOnBoot    Optional[bool]
	CommunicationStack   Optional[string]
	TransactionSizeLimit Optional[int]
	RecoveryCredentials  Optional[RecoveryCredentials]
}

// PeerInfo is what the join orchestrator queries from the existing group
// member it is about to attach to.
type PeerInfo struct {
	MemberState    MemberState
	GroupName      string
	ViewChangeUUID string
	SinglePrimary  bool
}

// Plugin is the narrow GR-plugin-control collaborator: starting/stopping
// the plugin and reading its state, distinct from ordinary system-variable
// access which goes through mysql.Instance.
type Plugin interface {
	StartGroupReplication(bootstrap bool) error
	StopGroupReplication() error
	GetMemberState() (MemberState, error)
	ResetMemberActions() error
	UpdateAutoIncrement(topology Topology, groupSize int) error
	GetMemberActionStatus(actionName string) (enabled bool, known bool, err error)
	ChangeReplicationCredentials(channel, user, password string) error
}

// Console is the user-visible messaging collaborator; orchestrators never
// write to a logger the caller can't observe or substitute in tests.
type Console interface {
	PrintInfo(format string, args ...interface{})
	PrintNote(format string, args ...interface{})
	PrintWarning(format string, args ...interface{})
	PrintError(format string, args ...interface{})
}
