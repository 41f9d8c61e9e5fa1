// replication-manager - Replication Manager Monitoring and CLI for MariaDB and MySQL
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Author: Guillaume Lefranc <guillaume@signal18.io>
// License: GNU General Public License, version 3. Redistribution/Reuse of this code is permitted under the GNU v3 license, as an additional term ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.
package cluster

import (
	"fmt"

	"github.com/signal18/gr-provision/utils/mysql"
)

// LeaveOptions carries the caller-supplied knobs for cleanly detaching inst
// from its current group.
type LeaveOptions struct {
	ResetReplChannels bool
	ResetMemberActions bool
}

// resetChannelVerb returns the RESET verb MySQL expects for replication
// channels: REPLICA from 8.0.22 on, the legacy SLAVE below it.
func resetChannelVerb(version mysql.Version) string {
	if version.AtLeast(8, 0, 22) {
		return "REPLICA"
	}
	return "SLAVE"
}

// Leave cleanly stops Group Replication on inst and clears the boot-time
// state so it does not silently rejoin on restart.
func Leave(inst mysql.Instance, plugin Plugin, console Console, opts LeaveOptions) error {
	state, err := plugin.GetMemberState()
	if err != nil {
		return err
	}
	if state != MemberOffline && state != MemberMissing {
		if err := plugin.StopGroupReplication(); err != nil {
			return err
		}
		state, err = plugin.GetMemberState()
		if err != nil {
			return err
		}
		console.PrintInfo("member_state after stop: %s", state.String())
	}

	if opts.ResetReplChannels {
		version, err := inst.Version()
		if err != nil {
			return err
		}
		verb := resetChannelVerb(version)
		for _, channel := range []string{"group_replication_applier", "group_replication_recovery"} {
			sql := fmt.Sprintf("RESET %s ALL FOR CHANNEL '%s'", verb, channel)
			if err := inst.Execute(sql); err != nil {
				return err
			}
		}
	}

	version, err := inst.Version()
	if err != nil {
		return err
	}

	if version.AtLeast(8, 0, 11) {
		if err := inst.SetSysvar("group_replication_start_on_boot", false, mysql.Persist, 0); err != nil {
			return err
		}
		if err := inst.SetSysvar("group_replication_enforce_update_everywhere_checks", false, mysql.Persist, 0); err != nil {
			return err
		}
		for _, name := range []string{"group_replication_bootstrap_group", "group_replication_group_seeds", "group_replication_local_address"} {
			if err := inst.SetSysvarDefault(name, mysql.Persist); err != nil {
				return err
			}
		}

		loaded, err := inst.GetSysvarBool("persisted_globals_load", mysql.Global)
		if err == nil && !loaded {
			console.PrintWarning("persisted-globals-load is OFF: persisted group_replication settings will not take effect on the next restart")
		}
	} else {
		console.PrintWarning("server version does not support persisting group_replication settings; boot-time state may still cause a rejoin")
	}

	if opts.ResetMemberActions {
		if err := plugin.ResetMemberActions(); err != nil {
			return err
		}
	}

	return nil
}
