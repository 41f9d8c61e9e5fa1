// replication-manager - Replication Manager Monitoring and CLI for MariaDB and MySQL
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Author: Guillaume Lefranc <guillaume@signal18.io>
// License: GNU General Public License, version 3. Redistribution/Reuse of this code is permitted under the GNU v3 license, as an additional term ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.
package mysql

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	_ "github.com/go-sql-driver/mysql"
)

// Dial opens a *sqlx.DB against dsn (a go-sql-driver/mysql DSN, e.g.
// "user:pass@tcp(host:3306)/"), pinging it once so callers learn about a
// bad DSN or unreachable server immediately instead of on the first
// orchestrator call. The caller owns the returned handle and is
// responsible for closing it; NewSQLInstance never closes what it wraps.
func Dial(dsn string, connectTimeout time.Duration) (*sqlx.DB, error) {
	db, err := sqlx.Connect("mysql", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "connect to server")
	}
	db.SetConnMaxLifetime(connectTimeout)
	return db, nil
}
