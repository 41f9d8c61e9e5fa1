// replication-manager - Replication Manager Monitoring and CLI for MariaDB and MySQL
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Author: Guillaume Lefranc <guillaume@signal18.io>
// License: GNU General Public License, version 3. Redistribution/Reuse of this code is permitted under the GNU v3 license, as an additional term ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.
package cluster

import (
	"fmt"
	"time"

	"github.com/signal18/gr-provision/utils/mysql"
)

// replSubsystem is the performance_schema.error_log SUBSYSTEM filter
// scraped after a failed plugin start.
const replSubsystem = "Repl"

// reportGroupReplicationStartError scrapes error-log entries newer than
// since, prints each through console, and always returns a
// GroupReplicationStartFailed error wrapping startErr.
func reportGroupReplicationStartError(inst mysql.Instance, console Console, since time.Time, startErr error) error {
	entries, logErr := inst.ReadErrorLog(since, []string{replSubsystem})
	if logErr != nil || len(entries) == 0 {
		console.PrintError("group replication failed to start; consult the server error log for details")
	} else {
		console.PrintError("group replication failed to start, recent error log entries:")
		for _, e := range entries {
			console.PrintError("%s [%s] [%s] %s", e.Logged.Format(time.RFC3339Nano), e.Prio, e.ErrorCode, e.Data)
		}
	}
	return newError(ErrGroupReplicationStartFailed, startErr, fmt.Sprintf("%v", startErr))
}
