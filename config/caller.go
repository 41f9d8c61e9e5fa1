// replication-manager - Replication Manager Monitoring and CLI for MariaDB and MySQL
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Author: Guillaume Lefranc <guillaume@signal18.io>
// License: GNU General Public License, version 3. Redistribution/Reuse of this code is permitted under the GNU v3 license, as an additional term ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.
package config

import (
	"github.com/spf13/viper"
)

// CallerConfig is the set of parameters a caller needs to construct the
// core's collaborators: a DSN to dial the target server, the path to its
// option file and the section to edit within it, and the deadlines the
// orchestrators should honor. It is not a CLI front end and has no
// environment-variable surface of its own; loading it is the caller's
// business, not the core's.
type CallerConfig struct {
	DSN                      string `mapstructure:"dsn"`
	OptionFilePath           string `mapstructure:"option-file-path"`
	OptionFileSection        string `mapstructure:"option-file-section"`
	ReadinessDeadlineSeconds int    `mapstructure:"readiness-deadline-seconds"`
}

// LoadCallerConfig reads a named sub-tree out of an already-populated
// viper instance, the same way the teacher's InitConfig/GetClusterConfig
// pulls a cluster's settings out of a shared config.toml via viper.Sub.
func LoadCallerConfig(v *viper.Viper, key string) (CallerConfig, error) {
	sub := v.Sub(key)
	cfg := CallerConfig{
		OptionFileSection:        "mysqld",
		ReadinessDeadlineSeconds: 900,
	}
	if sub == nil {
		return cfg, nil
	}
	if err := sub.Unmarshal(&cfg); err != nil {
		return CallerConfig{}, err
	}
	return cfg, nil
}
