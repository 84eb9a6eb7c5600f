// Copyright 2026 The relay Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"errors"
	"syscall"
)

// A Category is the transience category of a particular error, as
// reported by function Categorize.
//
// The category Not means the error is not transient from the
// perspective of completing an HTTP request attempt successfully. All
// other categories indicate that a new attempt made after the error
// has some prospect of success.
type Category int

const (
	// Not indicates any non-transient error.
	Not Category = iota
	// Timeout indicates a client-side timeout. The server may be going
	// through a temporary period of slowness, or the client may succeed
	// on a future attempt by waiting longer (increasing its timeout).
	//
	// Categorize returns Timeout if the error or any of its wrapped
	// causes has a Timeout() method that reports true.
	Timeout
	// ConnRefused indicates the remote host refused the connection,
	// corresponding to the POSIX error code ECONNREFUSED.
	//
	// Although connection refusal may be a permanent condition, it is
	// classified as transient because it can happen while the service
	// running on the remote host is starting or restarting and is
	// temporarily not listening on the specified port.
	ConnRefused
	// ConnReset indicates the remote host returned an RST packet on a
	// previously active TCP connection, corresponding to the POSIX
	// error code ECONNRESET.
	//
	// Connection reset is not uncommon if a service on the remote host
	// comes down while still responding to a request, and happens in a
	// variety of cases where the remote host is a load balancer.
	ConnReset
)

// Categorize returns the transience category of the given error. A nil
// error, and an error that is not transient from the perspective of
// completing an HTTP request attempt, both produce the return value
// Not.
//
// In assessing transience, Categorize looks at wrapped cause errors
// contained within err, not just err itself. However, Categorize never
// checks if an error has a Temporary() method that returns true, as
// the semantics of Temporary() aren't entirely clear.
func Categorize(err error) Category {
	if err == nil {
		return Not
	}

	var hasTimeout hasTimeout
	if errors.As(err, &hasTimeout) && hasTimeout.Timeout() {
		return Timeout
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if errno == syscall.ECONNRESET {
			return ConnReset
		} else if errno == syscall.ECONNREFUSED {
			return ConnRefused
		}
	}

	return Not
}

type hasTimeout interface {
	Timeout() bool
}
