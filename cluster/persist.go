// replication-manager - Replication Manager Monitoring and CLI for MariaDB and MySQL
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Author: Guillaume Lefranc <guillaume@signal18.io>
// License: GNU General Public License, version 3. Redistribution/Reuse of this code is permitted under the GNU v3 license, as an additional term ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.
package cluster

import (
	"github.com/jmoiron/sqlx"

	"github.com/signal18/gr-provision/config"
	"github.com/signal18/gr-provision/utils/dbhelper"
)

// PersistGRConfigurations re-emits every live group_replication_* variable
// into the option file under a loose_ prefix, so the server tolerates the
// plugin not being loaded at next startup. This is the "configure-local-
// instance" path used after a successful bootstrap/join, distinct from the
// validator/remediator flow (config/validator.go, config/remediator.go).
func PersistGRConfigurations(db *sqlx.DB, agg *config.Aggregate) error {
	vars, err := dbhelper.GetVariablesLike(db, "group_replication_%")
	if err != nil {
		return err
	}

	fh := agg.GetHandler(config.FileHandlerID)
	if fh == nil {
		return nil
	}

	for name, value := range vars {
		if err := agg.SetForHandler("loose_"+name, value, config.TypeString, config.FileHandlerID, 0); err != nil {
			return err
		}
	}

	if seeds, ok := vars["group_replication_group_seeds"]; ok {
		if err := agg.SetForHandler("loose_group_replication_group_seeds", seeds, config.TypeString, config.FileHandlerID, 0); err != nil {
			return err
		}
	}

	return agg.Apply()
}
