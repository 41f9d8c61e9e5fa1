// replication-manager - Replication Manager Monitoring and CLI for MariaDB and MySQL
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Authors: Guillaume Lefranc <guillaume@signal18.io>
//          Stephane Varoqui  <svaroqui@gmail.com>
// This source code is licensed under the GNU General Public License, version 3.
// Redistribution/Reuse of this code is permitted under the GNU v3 license, as
// an additional term, ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.

// Package dbhelper holds the small sqlx-based query helpers shared by the
// server-session implementation. Kept separate from utils/mysql so the
// typed Instance contract does not leak raw *sqlx.Row handling.
package dbhelper

import (
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// GetVariables runs SHOW GLOBAL VARIABLES and returns them as a map keyed
// by the upper-cased variable name, mirroring the shape cluster/prx.go
// expects from dbhelper.GetVariables.
func GetVariables(db *sqlx.DB) (map[string]string, error) {
	rows, err := db.Query("SHOW GLOBAL VARIABLES")
	if err != nil {
		return nil, errors.Wrap(err, "show global variables")
	}
	defer rows.Close()

	vars := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, errors.Wrap(err, "scan variable row")
		}
		vars[strings.ToUpper(name)] = value
	}
	return vars, rows.Err()
}

// GetVariablesLike runs SHOW GLOBAL VARIABLES LIKE 'pattern' and returns
// them keyed by their original (lower-case) name.
func GetVariablesLike(db *sqlx.DB, pattern string) (map[string]string, error) {
	rows, err := db.Query("SHOW GLOBAL VARIABLES LIKE ?", pattern)
	if err != nil {
		return nil, errors.Wrap(err, "show global variables like")
	}
	defer rows.Close()

	vars := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, errors.Wrap(err, "scan variable row")
		}
		vars[name] = value
	}
	return vars, rows.Err()
}

// GetVersionString returns the raw @@version string.
func GetVersionString(db *sqlx.DB) (string, error) {
	var version string
	if err := db.QueryRow("SELECT @@version").Scan(&version); err != nil {
		return "", errors.Wrap(err, "select @@version")
	}
	return version, nil
}

// SetGlobalVariable issues SET qualifier variable = value for the given
// qualifier string ("GLOBAL", "PERSIST", "PERSIST_ONLY", "SESSION").
// Integer and boolean values are emitted unquoted; strings are quoted.
func SetGlobalVariable(db *sqlx.DB, qualifier, name string, value interface{}) error {
	var literal string
	switch v := value.(type) {
	case bool:
		if v {
			literal = "ON"
		} else {
			literal = "OFF"
		}
	case int, int64, uint64:
		literal = fmt.Sprintf("%d", v)
	default:
		literal = fmt.Sprintf("'%s'", escapeLiteral(fmt.Sprintf("%v", v)))
	}
	sql := fmt.Sprintf("SET %s %s = %s", qualifier, name, literal)
	_, err := db.Exec(sql)
	return errors.Wrapf(err, "set %s %s", qualifier, name)
}

// SetGlobalVariableDefault issues SET qualifier variable = DEFAULT.
func SetGlobalVariableDefault(db *sqlx.DB, qualifier, name string) error {
	sql := fmt.Sprintf("SET %s %s = DEFAULT", qualifier, name)
	_, err := db.Exec(sql)
	return errors.Wrapf(err, "set %s %s = default", qualifier, name)
}

func escapeLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// NowString returns the result of SELECT NOW(6), used to bound error-log
// scraping to entries newer than a captured instant.
func NowString(db *sqlx.DB) (time.Time, error) {
	var raw string
	if err := db.QueryRow("SELECT NOW(6)").Scan(&raw); err != nil {
		return time.Time{}, errors.Wrap(err, "select now(6)")
	}
	t, err := time.Parse("2006-01-02 15:04:05.999999", raw)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parse server time %q", raw)
	}
	return t, nil
}
