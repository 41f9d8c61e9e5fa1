// replication-manager - Replication Manager Monitoring and CLI for MariaDB and MySQL
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Author: Guillaume Lefranc <guillaume@signal18.io>
// License: GNU General Public License, version 3. Redistribution/Reuse of this code is permitted under the GNU v3 license, as an additional term ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.
package cluster

import (
	"github.com/signal18/gr-provision/config"
	"github.com/signal18/gr-provision/utils/mysql"
)

// PeerQuery fetches the joining-time state of an existing group member: its
// member_state, group_name, view_change_uuid and single_primary_mode, in a
// single logical call.
type PeerQuery func() (PeerInfo, error)

// JoinOptions carries the caller-supplied knobs for attaching inst to an
// existing group.
type JoinOptions struct {
	Intent       GRIntent
	CurrentSize  Optional[int]
	QueryPeer    PeerQuery
}

// Join attaches inst to an existing group whose current state is obtained
// via opts.QueryPeer.
func Join(inst mysql.Instance, agg *config.Aggregate, plugin Plugin, console Console, opts JoinOptions) error {
	agg.Set("super_read_only", "ON", config.TypeBool, 0)

	offline, err := inst.GetSysvarBool("offline_mode", mysql.Global)
	if err != nil {
		return err
	}
	if offline {
		agg.Set("offline_mode", "OFF", config.TypeBool, 0)
	}

	peer, err := opts.QueryPeer()
	if err != nil {
		return newError(ErrPeerNotMember, err)
	}
	if peer.MemberState != MemberOnline {
		return newError(ErrPeerNotOnline, nil, "peer", peer.MemberState.String())
	}

	singlePrimary := peer.SinglePrimary
	if err := SetGROptions(inst, opts.Intent, agg, &singlePrimary, peer.GroupName, peer.ViewChangeUUID); err != nil {
		return err
	}

	if size, ok := opts.CurrentSize.Get(); ok {
		topology := MultiPrimary
		if singlePrimary {
			topology = SinglePrimary
		}
		if err := plugin.UpdateAutoIncrement(topology, size+1); err != nil {
			return err
		}
	}

	if err := agg.Apply(); err != nil {
		return newError(ErrConfigApplyFailed, err)
	}

	if creds, ok := opts.Intent.RecoveryCredentials.Get(); ok && creds.User != "" {
		if err := plugin.ChangeReplicationCredentials("group_replication_recovery", creds.User, creds.Password); err != nil {
			return err
		}
	}

	since, err := inst.Now()
	if err != nil {
		return err
	}

	if err := plugin.StartGroupReplication(false); err != nil {
		return reportGroupReplicationStartError(inst, console, since, err)
	}
	return nil
}
