// replication-manager - Replication Manager Monitoring and CLI for MariaDB and MySQL
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Author: Guillaume Lefranc <guillaume@signal18.io>
// License: GNU General Public License, version 3. Redistribution/Reuse of this code is permitted under the GNU v3 license, as an additional term ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.
package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signal18/gr-provision/utils/mysql"
)

func TestWaitReadyReturnsImmediatelyWhenAlreadyClear(t *testing.T) {
	inst := newFakeInstance(mysql.Version{Major: 8, Minor: 0, Patch: 28})
	inst.bools["super_read_only"] = false
	plugin := newFakePlugin()

	require.NoError(t, WaitReady(inst, plugin, 5))
}

func TestWaitReadyShortCircuitsWhenMemberActionDisabled(t *testing.T) {
	inst := newFakeInstance(mysql.Version{Major: 8, Minor: 0, Patch: 28})
	inst.bools["super_read_only"] = true // would never clear on its own
	plugin := newFakePlugin()
	plugin.actionKnown[disableSuperReadOnlyAction] = true
	plugin.actionStatus[disableSuperReadOnlyAction] = false

	require.NoError(t, WaitReady(inst, plugin, 1), "must short-circuit instead of sleeping out the deadline")
}

func TestWaitReadyTimesOutWhenSuperReadOnlyNeverClears(t *testing.T) {
	inst := newFakeInstance(mysql.Version{Major: 5, Minor: 7, Patch: 30})
	inst.bools["super_read_only"] = true
	plugin := newFakePlugin()

	err := WaitReady(inst, plugin, 1)
	require.Error(t, err)

	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrReadyTimeout, ce.Kind)
}

// flipAfterNReadsInstance clears super_read_only after a fixed number of
// reads, simulating the plugin flipping it once this instance becomes
// primary mid-poll.
type flipAfterNReadsInstance struct {
	*fakeInstance
	readsBeforeClear int
	reads            int
}

func (f *flipAfterNReadsInstance) GetSysvarBool(name string, qualifier mysql.VarQualifier) (bool, error) {
	if name == "super_read_only" {
		f.reads++
		return f.reads <= f.readsBeforeClear, nil
	}
	return f.fakeInstance.GetSysvarBool(name, qualifier)
}

func TestWaitReadyPollsUntilClear(t *testing.T) {
	inst := &flipAfterNReadsInstance{
		fakeInstance:     newFakeInstance(mysql.Version{Major: 8, Minor: 0, Patch: 30}),
		readsBeforeClear: 2,
	}
	plugin := newFakePlugin()

	require.NoError(t, WaitReady(inst, plugin, 5))
	assert.Equal(t, 3, inst.reads)
}
