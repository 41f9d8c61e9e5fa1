// replication-manager - Replication Manager Monitoring and CLI for MariaDB and MySQL
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Author: Guillaume Lefranc <guillaume@signal18.io>
// License: GNU General Public License, version 3. Redistribution/Reuse of this code is permitted under the GNU v3 license, as an additional term ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.

// Package mysql wraps the server-session, option-file and error-log
// collaborators the provisioning core depends on, adapted from the
// dbhelper-style sqlx helpers used across the cluster package.
package mysql

import "time"

// VarQualifier selects how a system variable write is scoped/persisted.
type VarQualifier int

const (
	Session VarQualifier = iota
	Global
	Persist
	PersistOnly
)

func (q VarQualifier) String() string {
	switch q {
	case Session:
		return "SESSION"
	case Global:
		return "GLOBAL"
	case Persist:
		return "PERSIST"
	case PersistOnly:
		return "PERSIST_ONLY"
	default:
		return "GLOBAL"
	}
}

// ErrorLogEntry is a single row read back from performance_schema.error_log.
type ErrorLogEntry struct {
	Logged    time.Time
	Prio      string
	ErrorCode string
	Subsystem string
	Data      string
}

// Instance is the server-session collaborator the core consumes: execute
// SQL, read/write typed system variables, read the error log, and describe
// itself. It never closes the underlying connection; callers own it.
type Instance interface {
	Execute(query string, args ...interface{}) error
	QueryRow(query string, args ...interface{}) (map[string]string, error)

	Version() (Version, error)
	Description() string

	GetSysvarBool(name string, qualifier VarQualifier) (bool, error)
	GetSysvarString(name string, qualifier VarQualifier) (string, error)
	GetSysvarInt(name string, qualifier VarQualifier) (int64, error)

	SetSysvar(name string, value interface{}, qualifier VarQualifier, delayMS int) error
	SetSysvarDefault(name string, qualifier VarQualifier) error

	// ReadErrorLog returns entries strictly newer than since, whose Subsystem
	// is in subsystems (all subsystems if empty).
	ReadErrorLog(since time.Time, subsystems []string) ([]ErrorLogEntry, error)

	// Now returns the server's own clock (NOW(6)), used to bound error-log
	// scraping to entries produced after a captured instant.
	Now() (time.Time, error)
}
