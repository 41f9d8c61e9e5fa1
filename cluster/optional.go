// replication-manager - Replication Manager Monitoring and CLI for MariaDB and MySQL
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Author: Guillaume Lefranc <guillaume@signal18.io>
// License: GNU General Public License, version 3. Redistribution/Reuse of this code is permitted under the GNU v3 license, as an additional term ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.
package cluster

// Optional distinguishes "unset" from "set to the zero value" for GRIntent
// fields whose zero value is meaningful (an int member_weight of 0, an
// empty-but-deliberate string). A plain pointer would work for strings but
// collapses under a naive `*int` once call sites start taking addresses of
// loop variables or literals, so every nullable field uses this instead.
type Optional[T any] struct {
	value T
	set   bool
}

// Some wraps a present value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// None is the zero value of Optional[T]; declaring it is only for
// readability at call sites that want to be explicit about "do not touch".
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// IsSet reports whether the caller supplied a value.
func (o Optional[T]) IsSet() bool { return o.set }

// Get returns the wrapped value and whether it was set, mirroring the
// comma-ok idiom used for map lookups elsewhere in this codebase.
func (o Optional[T]) Get() (T, bool) { return o.value, o.set }

// OrElse returns the wrapped value, or fallback if unset.
func (o Optional[T]) OrElse(fallback T) T {
	if o.set {
		return o.value
	}
	return fallback
}
