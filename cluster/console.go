// replication-manager - Replication Manager Monitoring and CLI for MariaDB and MySQL
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Author: Guillaume Lefranc <guillaume@signal18.io>
// License: GNU General Public License, version 3. Redistribution/Reuse of this code is permitted under the GNU v3 license, as an additional term ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.
package cluster

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogConsole is the default Console implementation, a thin adapter over
// logrus matching the field/level conventions used across this codebase.
type LogConsole struct {
	log *log.Logger
}

// NewLogConsole wraps the standard logger.
func NewLogConsole() *LogConsole {
	return &LogConsole{log: log.StandardLogger()}
}

// NewRotatingFileConsole writes to a lumberjack-rotated file instead of
// stderr, for long-running callers that want their own log retention
// policy rather than the process's default logrus output.
func NewRotatingFileConsole(path string, maxSizeMB, maxBackups, maxAgeDays int) *LogConsole {
	l := log.New()
	l.SetOutput(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	})
	return &LogConsole{log: l}
}

func (c *LogConsole) PrintInfo(format string, args ...interface{}) {
	c.log.Info(fmt.Sprintf(format, args...))
}

func (c *LogConsole) PrintNote(format string, args ...interface{}) {
	c.log.WithField("kind", "note").Info(fmt.Sprintf(format, args...))
}

func (c *LogConsole) PrintWarning(format string, args ...interface{}) {
	c.log.Warn(fmt.Sprintf(format, args...))
}

func (c *LogConsole) PrintError(format string, args ...interface{}) {
	c.log.Error(fmt.Sprintf(format, args...))
}
