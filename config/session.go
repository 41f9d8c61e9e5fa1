// replication-manager - Replication Manager Monitoring and CLI for MariaDB and MySQL
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Author: Guillaume Lefranc <guillaume@signal18.io>
// License: GNU General Public License, version 3. Redistribution/Reuse of this code is permitted under the GNU v3 license, as an additional term ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.
package config

import (
	"time"

	"github.com/signal18/gr-provision/utils/mysql"
)

// Session bundles the collaborators an orchestrator needs, built from a
// CallerConfig: a dialed server instance, a config aggregate over it and
// (when OptionFilePath is set) an option file, and the readiness deadline
// the caller asked for. It is the thin wiring layer between the viper-
// loaded CallerConfig and the narrow collaborator interfaces the core
// itself consumes (spec.md §6) — the core never reads CallerConfig or
// viper directly.
type Session struct {
	Instance                 mysql.Instance
	Aggregate                *Aggregate
	ReadinessDeadlineSeconds int
}

// NewSession dials cfg.DSN, optionally opens cfg.OptionFilePath, and wires
// both into a single Aggregate, the way a caller would before invoking any
// of the cluster package's orchestrators.
func NewSession(cfg CallerConfig) (*Session, error) {
	db, err := mysql.Dial(cfg.DSN, 30*time.Second)
	if err != nil {
		return nil, err
	}
	inst := mysql.NewSQLInstance(db, cfg.DSN)

	handlers := []Handler{NewServerHandler(inst, mysql.Persist)}
	if cfg.OptionFilePath != "" {
		section := cfg.OptionFileSection
		if section == "" {
			section = "mysqld"
		}
		file, err := mysql.OpenIniOptionFile(cfg.OptionFilePath, section)
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, NewFileHandler(file))
	}

	deadline := cfg.ReadinessDeadlineSeconds
	if deadline == 0 {
		deadline = 900
	}

	return &Session{
		Instance:                 inst,
		Aggregate:                NewAggregate(handlers...),
		ReadinessDeadlineSeconds: deadline,
	}, nil
}
