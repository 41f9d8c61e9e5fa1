// replication-manager - Replication Manager Monitoring and CLI for MariaDB and MySQL
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Author: Guillaume Lefranc <guillaume@signal18.io>
// License: GNU General Public License, version 3. Redistribution/Reuse of this code is permitted under the GNU v3 license, as an additional term ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.
package mysql

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/signal18/gr-provision/utils/dbhelper"
)

// SQLInstance is the *sqlx.DB-backed Instance implementation, grounded on
// the connection handling cluster/prx.go performs for proxy/server
// backends (sqlx.DB obtained from a DatabaseProxy, never closed by callees).
type SQLInstance struct {
	db   *sqlx.DB
	desc string
}

// NewSQLInstance wraps an already-open *sqlx.DB. The caller owns db and is
// responsible for closing it; this mirrors spec.md's "Instance sessions are
// owned by the caller" resource rule.
func NewSQLInstance(db *sqlx.DB, description string) *SQLInstance {
	return &SQLInstance{db: db, desc: description}
}

func (s *SQLInstance) Description() string { return s.desc }

func (s *SQLInstance) Execute(query string, args ...interface{}) error {
	_, err := s.db.Exec(query, args...)
	return errors.Wrapf(err, "execute %q", query)
}

func (s *SQLInstance) QueryRow(query string, args ...interface{}) (map[string]string, error) {
	rows, err := s.db.Queryx(query, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "query %q", query)
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, sql.ErrNoRows
	}
	row := make(map[string]interface{})
	if err := rows.MapScan(row); err != nil {
		return nil, errors.Wrap(err, "map scan row")
	}
	out := make(map[string]string, len(row))
	for k, v := range row {
		out[k] = fmt.Sprintf("%s", v)
	}
	return out, nil
}

func (s *SQLInstance) Version() (Version, error) {
	raw, err := dbhelper.GetVersionString(s.db)
	if err != nil {
		return Version{}, err
	}
	return ParseVersion(raw)
}

func (s *SQLInstance) getSysvar(name string, qualifier VarQualifier) (string, error) {
	vars, err := dbhelper.GetVariablesLike(s.db, name)
	if err != nil {
		return "", err
	}
	for k, v := range vars {
		if strings.EqualFold(k, name) {
			return v, nil
		}
	}
	return "", errors.Errorf("unknown system variable %q", name)
}

func (s *SQLInstance) GetSysvarBool(name string, qualifier VarQualifier) (bool, error) {
	v, err := s.getSysvar(name, qualifier)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(v, "ON") || v == "1", nil
}

func (s *SQLInstance) GetSysvarString(name string, qualifier VarQualifier) (string, error) {
	return s.getSysvar(name, qualifier)
}

func (s *SQLInstance) GetSysvarInt(name string, qualifier VarQualifier) (int64, error) {
	v, err := s.getSysvar(name, qualifier)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(v, 10, 64)
}

func (s *SQLInstance) SetSysvar(name string, value interface{}, qualifier VarQualifier, delayMS int) error {
	if err := dbhelper.SetGlobalVariable(s.db, qualifier.String(), name, value); err != nil {
		return err
	}
	if delayMS > 0 {
		time.Sleep(time.Duration(delayMS) * time.Millisecond)
	}
	return nil
}

func (s *SQLInstance) SetSysvarDefault(name string, qualifier VarQualifier) error {
	return dbhelper.SetGlobalVariableDefault(s.db, qualifier.String(), name)
}

func (s *SQLInstance) Now() (time.Time, error) {
	return dbhelper.NowString(s.db)
}

// ReadErrorLog reads performance_schema.error_log filtered by subsystem and
// timestamp, the table backing the server's error log since MySQL 8.0.
func (s *SQLInstance) ReadErrorLog(since time.Time, subsystems []string) ([]ErrorLogEntry, error) {
	query := "SELECT LOGGED, PRIO, ERROR_CODE, SUBSYSTEM, DATA FROM performance_schema.error_log WHERE LOGGED > ?"
	args := []interface{}{since.Format("2006-01-02 15:04:05.999999")}
	if len(subsystems) > 0 {
		placeholders := make([]string, len(subsystems))
		for i, sub := range subsystems {
			placeholders[i] = "?"
			args = append(args, sub)
		}
		query += " AND SUBSYSTEM IN (" + strings.Join(placeholders, ",") + ")"
	}
	query += " ORDER BY LOGGED ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "read error log")
	}
	defer rows.Close()

	var entries []ErrorLogEntry
	for rows.Next() {
		var e ErrorLogEntry
		var logged string
		if err := rows.Scan(&logged, &e.Prio, &e.ErrorCode, &e.Subsystem, &e.Data); err != nil {
			return nil, errors.Wrap(err, "scan error log row")
		}
		e.Logged, _ = time.Parse("2006-01-02 15:04:05.999999", logged)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
