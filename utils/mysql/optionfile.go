// replication-manager - Replication Manager Monitoring and CLI for MariaDB and MySQL
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Author: Guillaume Lefranc <guillaume@signal18.io>
// License: GNU General Public License, version 3. Redistribution/Reuse of this code is permitted under the GNU v3 license, as an additional term ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.
package mysql

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/ini.v1"
)

// OptionFile is the on-disk INI-section collaborator: set, remove, flush.
type OptionFile interface {
	Set(name, value string)
	Remove(name string)
	Apply() error
}

// IniOptionFile is an OptionFile backed by gopkg.in/ini.v1, targeting a
// single section of a my.cnf-style file (typically [mysqld]).
type IniOptionFile struct {
	path    string
	section string
	file    *ini.File
	pending map[string]*string // nil value means "remove"
}

// OpenIniOptionFile loads (or creates, if missing) the option file at path
// and scopes writes to section.
func OpenIniOptionFile(path, section string) (*IniOptionFile, error) {
	var f *ini.File
	var err error
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		f = ini.Empty()
	} else {
		f, err = ini.Load(path)
		if err != nil {
			return nil, errors.Wrapf(err, "load option file %s", path)
		}
	}
	return &IniOptionFile{
		path:    path,
		section: section,
		file:    f,
		pending: make(map[string]*string),
	}, nil
}

func (o *IniOptionFile) Set(name, value string) {
	v := value
	o.pending[name] = &v
}

func (o *IniOptionFile) Remove(name string) {
	o.pending[name] = nil
}

// Apply writes every queued mutation (order doesn't matter for a key/value
// INI section) then flushes atomically: write to a temp file in the same
// directory and rename over the original, so a partial write never reaches
// disk.
func (o *IniOptionFile) Apply() error {
	section := o.file.Section(o.section)
	for name, value := range o.pending {
		if value == nil {
			section.DeleteKey(name)
			continue
		}
		section.Key(name).SetValue(*value)
	}
	o.pending = make(map[string]*string)

	dir := filepath.Dir(o.path)
	tmp, err := os.CreateTemp(dir, ".optionfile-*")
	if err != nil {
		return errors.Wrap(err, "create temp option file")
	}
	tmpPath := tmp.Name()
	tmp.Close()

	if err := o.file.SaveTo(tmpPath); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(err, "write temp option file")
	}
	if err := os.Rename(tmpPath, o.path); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(err, "rename option file into place")
	}
	return nil
}
