// replication-manager - Replication Manager Monitoring and CLI for MariaDB and MySQL
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Author: Guillaume Lefranc <guillaume@signal18.io>
// License: GNU General Public License, version 3. Redistribution/Reuse of this code is permitted under the GNU v3 license, as an additional term ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.
package config

import (
	"github.com/pkg/errors"

	"github.com/signal18/gr-provision/utils/mysql"
)

// Aggregate is a named bundle of handlers presenting a single logical
// write surface over a live server and an on-disk option file. Readers
// never go through the aggregate: the validator and orchestrators always
// read the live server directly (spec.md §4.1).
type Aggregate struct {
	handlers map[string]Handler
	order    []string
}

// NewAggregate builds an aggregate over the given handlers, keeping a
// lookup by id for the "set for handler" surface.
func NewAggregate(handlers ...Handler) *Aggregate {
	a := &Aggregate{handlers: make(map[string]Handler)}
	for _, h := range handlers {
		a.handlers[h.ID()] = h
		a.order = append(a.order, h.ID())
	}
	return a
}

func (a *Aggregate) HasHandler(id string) bool {
	_, ok := a.handlers[id]
	return ok
}

func (a *Aggregate) GetHandler(id string) Handler {
	return a.handlers[id]
}

// Set queues a write on every handler that accepts name, using each
// handler's default qualifier. SetForHandler is the targeted form.
func (a *Aggregate) Set(name, value string, valType ValueType, delayMS int) {
	for _, id := range a.order {
		h := a.handlers[id]
		if h.Accepts(name) {
			h.Queue(name, value, valType, h.DefaultQualifier(), delayMS)
		}
	}
}

// SetForHandler queues a targeted write on exactly one handler, using that
// handler's default qualifier.
func (a *Aggregate) SetForHandler(name, value string, valType ValueType, handlerID string, delayMS int) error {
	h, ok := a.handlers[handlerID]
	if !ok {
		return errors.Errorf("no such config handler %q", handlerID)
	}
	h.Queue(name, value, valType, h.DefaultQualifier(), delayMS)
	return nil
}

// SetForHandlerWithQualifier is the PERSIST_ONLY escape hatch the
// remediator needs for read-only variables: it cannot simply use the
// handler's default qualifier.
func (a *Aggregate) SetForHandlerWithQualifier(name, value string, valType ValueType, handlerID string, qualifier mysql.VarQualifier, delayMS int) error {
	h, ok := a.handlers[handlerID]
	if !ok {
		return errors.Errorf("no such config handler %q", handlerID)
	}
	h.Queue(name, value, valType, qualifier, delayMS)
	return nil
}

// Apply commits queued writes on every handler, in handler registration
// order. There is no cross-handler transactional atomicity: if the server
// side succeeds and the file side fails, the server has already changed;
// callers must treat the whole operation as failed (spec.md §5).
func (a *Aggregate) Apply() error {
	for _, id := range a.order {
		if err := a.handlers[id].Apply(); err != nil {
			return errors.Wrapf(err, "apply config handler %q", id)
		}
	}
	return nil
}

// ServerDefaultQualifier reports the server handler's default qualifier, or
// Global if no server handler is attached. Used by the validator's
// escalation rule and the remediator's PERSIST_ONLY decision.
func (a *Aggregate) ServerDefaultQualifier() mysql.VarQualifier {
	if h, ok := a.handlers[ServerHandlerID]; ok {
		return h.DefaultQualifier()
	}
	return mysql.Global
}
