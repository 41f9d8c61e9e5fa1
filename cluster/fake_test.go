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

type fakeInstance struct {
	mv       mysql.Version
	bools    map[string]bool
	strings  map[string]string
	ints     map[string]int64
	writes   []string
	executed []string
	errLog   []mysql.ErrorLogEntry
}

func newFakeInstance(version mysql.Version) *fakeInstance {
	return &fakeInstance{
		mv:      version,
		bools:   make(map[string]bool),
		strings: make(map[string]string),
		ints:    make(map[string]int64),
	}
}

func (f *fakeInstance) Execute(query string, args ...interface{}) error {
	f.executed = append(f.executed, query)
	return nil
}
func (f *fakeInstance) QueryRow(query string, args ...interface{}) (map[string]string, error) {
	return nil, nil
}
func (f *fakeInstance) Version() (mysql.Version, error) { return f.mv, nil }
func (f *fakeInstance) Description() string             { return "fake" }

func (f *fakeInstance) GetSysvarBool(name string, qualifier mysql.VarQualifier) (bool, error) {
	return f.bools[name], nil
}
func (f *fakeInstance) GetSysvarString(name string, qualifier mysql.VarQualifier) (string, error) {
	return f.strings[name], nil
}
func (f *fakeInstance) GetSysvarInt(name string, qualifier mysql.VarQualifier) (int64, error) {
	return f.ints[name], nil
}

func (f *fakeInstance) SetSysvar(name string, value interface{}, qualifier mysql.VarQualifier, delayMS int) error {
	switch v := value.(type) {
	case bool:
		f.bools[name] = v
	case string:
		f.strings[name] = v
	case int64:
		f.ints[name] = v
	}
	f.writes = append(f.writes, name)
	return nil
}

func (f *fakeInstance) SetSysvarDefault(name string, qualifier mysql.VarQualifier) error {
	delete(f.bools, name)
	delete(f.strings, name)
	delete(f.ints, name)
	f.writes = append(f.writes, name+"=DEFAULT")
	return nil
}

func (f *fakeInstance) ReadErrorLog(since time.Time, subsystems []string) ([]mysql.ErrorLogEntry, error) {
	return f.errLog, nil
}

func (f *fakeInstance) Now() (time.Time, error) { return time.Now(), nil }

// fakePlugin is an in-memory Plugin collaborator.
type fakePlugin struct {
	state             MemberState
	startErr          error
	startedBootstrap  []bool
	stopped           bool
	resetActionsErr   error
	actionStatus      map[string]bool
	actionKnown       map[string]bool
	autoIncrementCalls []struct {
		Topology  Topology
		GroupSize int
	}
	credentialsChannel string
	credentialsUser    string
	credentialsPass    string
}

func newFakePlugin() *fakePlugin {
	return &fakePlugin{
		state:        MemberOnline,
		actionStatus: make(map[string]bool),
		actionKnown:  make(map[string]bool),
	}
}

func (p *fakePlugin) StartGroupReplication(bootstrap bool) error {
	p.startedBootstrap = append(p.startedBootstrap, bootstrap)
	return p.startErr
}
func (p *fakePlugin) StopGroupReplication() error {
	p.stopped = true
	return nil
}
func (p *fakePlugin) GetMemberState() (MemberState, error) { return p.state, nil }
func (p *fakePlugin) ResetMemberActions() error             { return p.resetActionsErr }
func (p *fakePlugin) UpdateAutoIncrement(topology Topology, groupSize int) error {
	p.autoIncrementCalls = append(p.autoIncrementCalls, struct {
		Topology  Topology
		GroupSize int
	}{topology, groupSize})
	return nil
}
func (p *fakePlugin) GetMemberActionStatus(actionName string) (bool, bool, error) {
	return p.actionStatus[actionName], p.actionKnown[actionName], nil
}
func (p *fakePlugin) ChangeReplicationCredentials(channel, user, password string) error {
	p.credentialsChannel = channel
	p.credentialsUser = user
	p.credentialsPass = password
	return nil
}

// fakeConsole records every message instead of printing it.
type fakeConsole struct {
	infos    []string
	notes    []string
	warnings []string
	errors   []string
}

func newFakeConsole() *fakeConsole { return &fakeConsole{} }

func (c *fakeConsole) PrintInfo(format string, args ...interface{}) {
	c.infos = append(c.infos, format)
}
func (c *fakeConsole) PrintNote(format string, args ...interface{}) {
	c.notes = append(c.notes, format)
}
func (c *fakeConsole) PrintWarning(format string, args ...interface{}) {
	c.warnings = append(c.warnings, format)
}
func (c *fakeConsole) PrintError(format string, args ...interface{}) {
	c.errors = append(c.errors, format)
}
