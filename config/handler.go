// replication-manager - Replication Manager Monitoring and CLI for MariaDB and MySQL
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Author: Guillaume Lefranc <guillaume@signal18.io>
// License: GNU General Public License, version 3. Redistribution/Reuse of this code is permitted under the GNU v3 license, as an additional term ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.
package config

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/signal18/gr-provision/utils/mysql"
)

// ServerHandlerID and FileHandlerID are the well-known handler ids used by
// SetForHandler/GetHandler, matching the "set for handler" surface spec.md
// §3 requires for backwards compatibility with named handlers.
const (
	ServerHandlerID = "server"
	FileHandlerID   = "file"
)

type queuedWrite struct {
	value   string
	valType ValueType
	delayMS int
	qual    mysql.VarQualifier
}

// Handler is the interface of the two real backends an aggregate can
// route to, ServerHandler and FileHandler; the aggregate calls it without
// inspecting which backend it holds.
type Handler interface {
	ID() string
	DefaultQualifier() mysql.VarQualifier
	Accepts(name string) bool
	Queue(name, value string, valType ValueType, qualifier mysql.VarQualifier, delayMS int)
	Apply() error
}

// ServerHandler routes writes to a live server session. Its default
// qualifier describes how it persists writes; the remediator branches on
// this to decide whether read-only variables can be fixed without a
// restart.
type ServerHandler struct {
	inst             mysql.Instance
	defaultQualifier mysql.VarQualifier
	order            []string
	queued           map[string]queuedWrite
}

// NewServerHandler wraps a non-owning reference to inst: its lifetime is
// guaranteed by the caller (the orchestrator) to exceed the aggregate's.
func NewServerHandler(inst mysql.Instance, defaultQualifier mysql.VarQualifier) *ServerHandler {
	return &ServerHandler{
		inst:             inst,
		defaultQualifier: defaultQualifier,
		queued:           make(map[string]queuedWrite),
	}
}

func (h *ServerHandler) ID() string                          { return ServerHandlerID }
func (h *ServerHandler) DefaultQualifier() mysql.VarQualifier { return h.defaultQualifier }
func (h *ServerHandler) Accepts(name string) bool             { return true }

func (h *ServerHandler) Queue(name, value string, valType ValueType, qualifier mysql.VarQualifier, delayMS int) {
	if _, exists := h.queued[name]; !exists {
		h.order = append(h.order, name)
	}
	h.queued[name] = queuedWrite{value: value, valType: valType, delayMS: delayMS, qual: qualifier}
}

// Apply commits queued writes in insertion order. Each write's delayMS is
// passed to Instance.SetSysvar, which sleeps that long after a delay-
// sensitive write so persisted-variable timestamps in the server's
// persisted-config journal are distinct; this is a correctness workaround
// (BUG#27629719 upstream), not cosmetic, and is not gated on server version.
func (h *ServerHandler) Apply() error {
	for _, name := range h.order {
		w := h.queued[name]
		var val interface{} = w.value
		switch w.valType {
		case TypeInteger:
			n, err := strconv.ParseInt(w.value, 10, 64)
			if err != nil {
				return errors.Wrapf(err, "parse integer value for %s", name)
			}
			val = n
		case TypeBool:
			val = w.value == "ON" || w.value == "1" || w.value == "true"
		}
		if err := h.inst.SetSysvar(name, val, w.qual, w.delayMS); err != nil {
			return errors.Wrapf(err, "set %s on server", name)
		}
	}
	h.order = nil
	h.queued = make(map[string]queuedWrite)
	return nil
}

// ResetToDefault immediately resets a variable to its default. Used by the
// GR option programmer's SSL-block handling, which must reset recovery SSL
// options outside the normal queue/apply cycle since the original resets
// unconditionally regardless of other pending writes.
func (h *ServerHandler) ResetToDefault(name string, qualifier mysql.VarQualifier) error {
	return h.inst.SetSysvarDefault(name, qualifier)
}

// FileHandler routes writes to an option-file collaborator. Its default
// qualifier is always Persist (it survives restarts by definition); the
// qualifier passed to Queue is ignored. The aggregate routes to it like any
// other handler; the validator and remediator check for FileHandlerID to
// decide whether option-file fixes are possible.
type FileHandler struct {
	file   mysql.OptionFile
	order  []string
	queued map[string]*string // nil means "remove"
}

func NewFileHandler(file mysql.OptionFile) *FileHandler {
	return &FileHandler{file: file, queued: make(map[string]*string)}
}

func (h *FileHandler) ID() string                          { return FileHandlerID }
func (h *FileHandler) DefaultQualifier() mysql.VarQualifier { return mysql.Persist }
func (h *FileHandler) Accepts(name string) bool             { return true }

func (h *FileHandler) Queue(name, value string, valType ValueType, qualifier mysql.VarQualifier, delayMS int) {
	if _, exists := h.queued[name]; !exists {
		h.order = append(h.order, name)
	}
	switch value {
	case ValueNotSet:
		h.queued[name] = nil
	case NoValue:
		empty := ""
		h.queued[name] = &empty
	default:
		v := value
		h.queued[name] = &v
	}
}

func (h *FileHandler) Apply() error {
	for _, name := range h.order {
		v := h.queued[name]
		if v == nil {
			h.file.Remove(name)
		} else {
			h.file.Set(name, *v)
		}
	}
	h.order = nil
	h.queued = make(map[string]*string)
	return h.file.Apply()
}
