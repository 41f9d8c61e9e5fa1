// replication-manager - Replication Manager Monitoring and CLI for MariaDB and MySQL
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Author: Guillaume Lefranc <guillaume@signal18.io>
// License: GNU General Public License, version 3. Redistribution/Reuse of this code is permitted under the GNU v3 license, as an additional term ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.
package cluster

import (
	"strconv"

	"github.com/signal18/gr-provision/config"
	"github.com/signal18/gr-provision/utils/mysql"
)

const serverHandlerID = config.ServerHandlerID

// recoverySSLSourceVars maps each group_replication_recovery_ssl_* option to
// the live sysvar whose value it should copy under VERIFY_CA/VERIFY_IDENTITY.
var recoverySSLSourceVars = map[string]string{
	"group_replication_recovery_ssl_ca":      "ssl_ca",
	"group_replication_recovery_ssl_capath":  "ssl_capath",
	"group_replication_recovery_ssl_cert":    "ssl_cert",
	"group_replication_recovery_ssl_cipher":  "ssl_cipher",
	"group_replication_recovery_ssl_crl":     "ssl_crl",
	"group_replication_recovery_ssl_crlpath": "ssl_crlpath",
	"group_replication_recovery_ssl_key":     "ssl_key",
}

// SetGROptions writes every GR-plugin system variable described by intent
// through agg, in the order set_gr_options in the original shell
// implementation writes them. It does not call agg.Apply(); the caller
// (an orchestrator) decides when the queued writes land.
//
// groupNameOverride and viewChangeUUIDOverride let the join path supply
// values read from the peer instead of the caller's own intent.
func SetGROptions(
	inst mysql.Instance,
	intent GRIntent,
	agg *config.Aggregate,
	singlePrimaryMode *bool,
	groupNameOverride string,
	viewChangeUUIDOverride string,
) error {
	version, err := inst.Version()
	if err != nil {
		return err
	}

	groupName := groupNameOverride
	if groupName == "" {
		groupName, _ = intent.GroupName.Get()
	}
	if groupName != "" {
		agg.Set("group_replication_group_name", groupName, config.TypeString, 0)
	}

	viewChangeUUID := viewChangeUUIDOverride
	if viewChangeUUID == "" {
		viewChangeUUID, _ = intent.ViewChangeUUID.Get()
	}
	if viewChangeUUID != "" {
		agg.Set("group_replication_view_change_uuid", viewChangeUUID, config.TypeString, 0)
	}

	// Topology toggles: ordering is strict, the plugin rejects the reverse.
	if singlePrimaryMode != nil {
		if *singlePrimaryMode {
			agg.Set("group_replication_enforce_update_everywhere_checks", "OFF", config.TypeBool, 0)
			agg.Set("group_replication_single_primary_mode", "ON", config.TypeBool, 0)
		} else {
			agg.Set("group_replication_single_primary_mode", "OFF", config.TypeBool, 0)
			agg.Set("group_replication_enforce_update_everywhere_checks", "ON", config.TypeBool, 0)
		}
	}

	if err := setSSLBlock(inst, intent, agg, version); err != nil {
		return err
	}

	// Network / identity. local_address is effectively required by the
	// plugin (the original implementation always resolves it before
	// writing), but stays behind the Optional here too: a caller that
	// leaves it unset simply omits the write rather than this layer
	// inventing a value.
	if localAddr, ok := intent.LocalAddress.Get(); ok {
		agg.Set("group_replication_local_address", localAddr, config.TypeString, 0)
	}
	if seeds, ok := intent.GroupSeeds.Get(); ok {
		agg.Set("group_replication_group_seeds", seeds, config.TypeString, 0)
	}
	if allowlist, ok := intent.IPAllowlist.Get(); ok {
		agg.Set(allowlistVarName(version), allowlist, config.TypeString, 0)
	}

	// Scalars / enums.
	if action, ok := intent.ExitStateAction.Get(); ok {
		agg.Set("group_replication_exit_state_action", exitStateActionValue(action), config.TypeString, 0)
	}
	if weight, ok := intent.MemberWeight.Get(); ok {
		agg.Set("group_replication_member_weight", strconv.Itoa(weight), config.TypeInteger, 0)
	}
	if consistency, ok := intent.Consistency.Get(); ok {
		agg.Set("group_replication_consistency", consistencyValue(consistency), config.TypeString, 0)
	}
	if expel, ok := intent.ExpelTimeout.Get(); ok {
		agg.Set("group_replication_member_expel_timeout", strconv.Itoa(expel), config.TypeInteger, 0)
	}
	if tries, ok := intent.AutoRejoinTries.Get(); ok {
		agg.Set("group_replication_autorejoin_tries", strconv.Itoa(tries), config.TypeInteger, 0)
	}
	if stack, ok := intent.CommunicationStack.Get(); ok {
		agg.Set("group_replication_communication_stack", stack, config.TypeString, 0)
	}
	if limit, ok := intent.TransactionSizeLimit.Get(); ok {
		agg.Set("group_replication_transaction_size_limit", strconv.Itoa(limit), config.TypeInteger, 0)
	}

	// Boot policy: start_on_boot is the negation of manual_start_on_boot.
	manualStart, _ := intent.ManualStartOnBoot.Get()
	startOnBoot := "ON"
	if manualStart {
		startOnBoot = "OFF"
	}
	agg.Set("group_replication_start_on_boot", startOnBoot, config.TypeBool, 0)

	return nil
}

// setSSLBlock implements the three-way ssl_mode branch verbatim from the
// original shell implementation: DISABLED enables get_public_key and
// disables recovery SSL; VERIFY_CA/VERIFY_IDENTITY copy the live SSL
// material into the recovery_ssl_* options; every other mode (REQUIRED,
// AUTO) enables SSL and resets every recovery_ssl_* option to its default.
// An unset SSLMode writes nothing.
func setSSLBlock(inst mysql.Instance, intent GRIntent, agg *config.Aggregate, version mysql.Version) error {
	mode, ok := intent.SSLMode.Get()
	if !ok {
		return nil
	}

	switch mode {
	case SSLDisabled:
		if version.AtLeast(8, 0, 5) {
			agg.Set("group_replication_recovery_get_public_key", "ON", config.TypeBool, 0)
		}
		agg.Set("group_replication_recovery_use_ssl", "OFF", config.TypeBool, 0)

	case SSLVerifyCA, SSLVerifyIdentity:
		agg.Set("group_replication_recovery_use_ssl", "ON", config.TypeBool, 0)
		for recoveryVar, sourceVar := range recoverySSLSourceVars {
			val, err := inst.GetSysvarString(sourceVar, mysql.Global)
			if err != nil {
				val = ""
			}
			agg.Set(recoveryVar, val, config.TypeString, 0)
		}

	default:
		agg.Set("group_replication_recovery_use_ssl", "ON", config.TypeBool, 0)
		if h := agg.GetHandler(serverHandlerID); h != nil {
			if sh, ok := h.(*config.ServerHandler); ok {
				for recoveryVar := range recoverySSLSourceVars {
					if err := sh.ResetToDefault(recoveryVar, mysql.Global); err != nil {
						return err
					}
				}
			}
		}
	}

	agg.Set("group_replication_ssl_mode", mode.String(), config.TypeString, 0)
	return nil
}

// allowlistVarName resolves the version-dependent rename of the GR
// allow-list option (MySQL replaced "whitelist" terminology in 8.0.22).
func allowlistVarName(version mysql.Version) string {
	if version.AtLeast(8, 0, 22) {
		return "group_replication_ip_allowlist"
	}
	return "group_replication_ip_whitelist"
}

var exitStateActions = []string{"READ_ONLY", "ABORT_SERVER"}

// exitStateActionValue returns the numeric index as a string if action
// names an indexable enum value, otherwise passes the value through
// unchanged (the plugin also accepts the bare enum strings).
func exitStateActionValue(action string) string {
	for i, name := range exitStateActions {
		if name == action {
			return strconv.Itoa(i)
		}
	}
	return action
}

var consistencyLevels = []string{"EVENTUAL", "BEFORE_ON_PRIMARY_FAILOVER", "BEFORE", "AFTER", "BEFORE_AND_AFTER"}

func consistencyValue(level string) string {
	for i, name := range consistencyLevels {
		if name == level {
			return strconv.Itoa(i)
		}
	}
	return level
}
