// replication-manager - Replication Manager Monitoring and CLI for MariaDB and MySQL
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Author: Guillaume Lefranc <guillaume@signal18.io>
// License: GNU General Public License, version 3. Redistribution/Reuse of this code is permitted under the GNU v3 license, as an additional term ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.
package cluster

import (
	"time"

	"github.com/signal18/gr-provision/utils/mysql"
)

// defaultReadinessDeadlineSeconds is the fallback wait for super_read_only
// to clear after a bootstrap.
const defaultReadinessDeadlineSeconds = 900

const disableSuperReadOnlyAction = "mysql_disable_super_read_only_if_primary"

// WaitReady polls super_read_only until it clears or deadlineSeconds
// elapses. On servers >= 8.0.26 it first consults the plugin's member
// action status for disableSuperReadOnlyAction; if that action is
// disabled, the wait short-circuits without ever sleeping.
func WaitReady(inst mysql.Instance, plugin Plugin, deadlineSeconds int) error {
	version, err := inst.Version()
	if err != nil {
		return err
	}

	if version.AtLeast(8, 0, 26) {
		enabled, known, err := plugin.GetMemberActionStatus(disableSuperReadOnlyAction)
		if err == nil && known && !enabled {
			return nil
		}
	}

	deadline := time.Now().Add(time.Duration(deadlineSeconds) * time.Second)
	for {
		ro, err := inst.GetSysvarBool("super_read_only", mysql.Global)
		if err != nil {
			return err
		}
		if !ro {
			return nil
		}
		if time.Now().After(deadline) {
			return newError(ErrReadyTimeout, nil, (time.Duration(deadlineSeconds) * time.Second).String())
		}
		time.Sleep(1 * time.Second)
	}
}
