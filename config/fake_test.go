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

// fakeInstance is a minimal in-memory mysql.Instance for validator and
// remediator tests: no network, no real server.
type fakeInstance struct {
	bools     map[string]bool
	strings   map[string]string
	ints      map[string]int64
	qualifiers map[string]mysql.VarQualifier
	writes     []string
}

func newFakeInstance() *fakeInstance {
	return &fakeInstance{
		bools:      make(map[string]bool),
		strings:    make(map[string]string),
		ints:       make(map[string]int64),
		qualifiers: make(map[string]mysql.VarQualifier),
	}
}

func (f *fakeInstance) Execute(query string, args ...interface{}) error { return nil }
func (f *fakeInstance) QueryRow(query string, args ...interface{}) (map[string]string, error) {
	return nil, nil
}
func (f *fakeInstance) Version() (mysql.Version, error) { return mysql.Version{Major: 8, Minor: 0, Patch: 30}, nil }
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
	f.qualifiers[name] = qualifier
	f.writes = append(f.writes, name)
	switch v := value.(type) {
	case bool:
		f.bools[name] = v
	case string:
		f.strings[name] = v
	case int64:
		f.ints[name] = v
	}
	return nil
}

func (f *fakeInstance) SetSysvarDefault(name string, qualifier mysql.VarQualifier) error {
	delete(f.bools, name)
	delete(f.strings, name)
	delete(f.ints, name)
	return nil
}

func (f *fakeInstance) ReadErrorLog(since time.Time, subsystems []string) ([]mysql.ErrorLogEntry, error) {
	return nil, nil
}

func (f *fakeInstance) Now() (time.Time, error) { return time.Now(), nil }

// fakeOptionFile is a minimal in-memory mysql.OptionFile.
type fakeOptionFile struct {
	values  map[string]string
	removed map[string]bool
}

func newFakeOptionFile() *fakeOptionFile {
	return &fakeOptionFile{values: make(map[string]string), removed: make(map[string]bool)}
}

func (o *fakeOptionFile) Set(name, value string) {
	o.values[name] = value
	delete(o.removed, name)
}

func (o *fakeOptionFile) Remove(name string) {
	delete(o.values, name)
	o.removed[name] = true
}

func (o *fakeOptionFile) Apply() error { return nil }
