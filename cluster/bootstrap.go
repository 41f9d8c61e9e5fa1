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

// BootstrapOptions carries the caller-supplied knobs for starting a brand
// new group on inst.
type BootstrapOptions struct {
	Intent       GRIntent
	MultiPrimary Optional[bool]
	Deadline     Optional[int] // seconds; falls back to waiter default
}

// Bootstrap starts a new Group Replication group on inst: it is the first
// member, and will declare itself the seed once the plugin comes up.
func Bootstrap(inst mysql.Instance, agg *config.Aggregate, plugin Plugin, console Console, opts BootstrapOptions) error {
	agg.Set("super_read_only", "ON", config.TypeBool, 0)

	offline, err := inst.GetSysvarBool("offline_mode", mysql.Global)
	if err != nil {
		return err
	}
	if offline {
		agg.Set("offline_mode", "OFF", config.TypeBool, 0)
	}

	var singlePrimary *bool
	if mp, ok := opts.MultiPrimary.Get(); ok {
		sp := !mp
		singlePrimary = &sp
	}

	if err := SetGROptions(inst, opts.Intent, agg, singlePrimary, "", ""); err != nil {
		return err
	}

	if singlePrimary != nil {
		topology := MultiPrimary
		if *singlePrimary {
			topology = SinglePrimary
		}
		if err := plugin.UpdateAutoIncrement(topology, 1); err != nil {
			return err
		}
	}

	if err := agg.Apply(); err != nil {
		return newError(ErrConfigApplyFailed, err)
	}

	since, err := inst.Now()
	if err != nil {
		return err
	}

	if err := plugin.StartGroupReplication(true); err != nil {
		return reportGroupReplicationStartError(inst, console, since, err)
	}

	deadline := defaultReadinessDeadlineSeconds
	if d, ok := opts.Deadline.Get(); ok {
		deadline = d
	}
	return WaitReady(inst, plugin, deadline)
}
