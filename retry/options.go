// Copyright 2026 The relay Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"time"

	"github.com/gogama/relay/request"
)

// OptionKey is the capability key under which the retry link looks for
// a per-call Options override in the exchange's option bag.
const OptionKey request.OptionKey = "relay/retry"

const (
	// DefaultMaxRetries is the attempt budget used when Options does
	// not specify one.
	DefaultMaxRetries = 3
	// DefaultDelay is the base delay used when Options does not
	// specify one.
	DefaultDelay = 3 * time.Second
	// DefaultMaxDelay is the delay ceiling used when Options does not
	// specify one.
	DefaultMaxDelay = 180 * time.Second

	// Hard ceilings. Configured values beyond these are clamped, so a
	// misconfigured caller can never produce an unbounded retry storm
	// or an unbounded wait.
	absoluteMaxRetries = 10
	absoluteMaxDelay   = 180 * time.Second
)

// A ShouldRetry predicate gives the caller the final say on a retry
// the link has otherwise found eligible. It receives the configured
// base delay, the zero-based count of retries already made, and the
// exchange carrying the request, its per-call options, and the
// response under consideration.
//
// A ShouldRetry predicate must be safe for concurrent use by multiple
// goroutines.
type ShouldRetry func(delay time.Duration, attempt int, x *request.Exchange) bool

// Options carries the retry policy for a handler, or a per-call
// override of it. The zero value selects the defaults.
//
// Options is a value type. Handlers and exchanges always work on their
// own copy, so configuring one call never mutates the process-wide
// defaults or another call's configuration.
//
// A zero field means "not specified" and inherits the value from the
// layer below (the handler's options, and below those the package
// defaults). Because of this, a per-call override cannot set
// MaxRetries to zero; to suppress retries for a call, supply a
// ShouldRetry predicate that returns false, and to build a pipeline
// that never retries, leave the retry handler out of it.
type Options struct {
	// MaxRetries is the maximum number of times the link will resend
	// the request, so a plan execution makes at most MaxRetries+1
	// attempts. Zero selects DefaultMaxRetries. Values above 10 are
	// clamped to 10.
	MaxRetries int
	// Delay is the base delay multiplied into the exponential backoff
	// formula. Zero selects DefaultDelay.
	Delay time.Duration
	// MaxDelay caps the wait before any single resend, whether the
	// wait came from the backoff formula or from the server's
	// Retry-After hint. Zero selects DefaultMaxDelay. Values above
	// 180 seconds are clamped to 180 seconds.
	MaxDelay time.Duration
	// ShouldRetry, if non-nil, is consulted last in the eligibility
	// check and can veto a retry. Nil approves every eligible retry.
	ShouldRetry ShouldRetry
}

// Key returns OptionKey, making Options usable directly as a per-call
// override in an exchange's option bag:
//
//	x.SetOption(retry.Options{MaxRetries: 1})
func (o Options) Key() request.OptionKey {
	return OptionKey
}

// normalized returns a copy of o with defaults filled in for
// unspecified fields and hard ceilings applied, restoring the
// invariant Delay <= MaxDelay.
func (o Options) normalized() Options {
	if o.MaxRetries <= 0 {
		o.MaxRetries = DefaultMaxRetries
	} else if o.MaxRetries > absoluteMaxRetries {
		o.MaxRetries = absoluteMaxRetries
	}
	if o.Delay <= 0 {
		o.Delay = DefaultDelay
	} else if o.Delay > absoluteMaxDelay {
		o.Delay = absoluteMaxDelay
	}
	if o.MaxDelay <= 0 {
		o.MaxDelay = DefaultMaxDelay
	} else if o.MaxDelay > absoluteMaxDelay {
		o.MaxDelay = absoluteMaxDelay
	}
	if o.MaxDelay < o.Delay {
		o.MaxDelay = o.Delay
	}
	return o
}

// merge returns a copy of o with the fields specified in override
// applied on top, normalized. Neither o nor override is modified.
func (o Options) merge(override Options) Options {
	if override.MaxRetries != 0 {
		o.MaxRetries = override.MaxRetries
	}
	if override.Delay != 0 {
		o.Delay = override.Delay
	}
	if override.MaxDelay != 0 {
		o.MaxDelay = override.MaxDelay
	}
	if override.ShouldRetry != nil {
		o.ShouldRetry = override.ShouldRetry
	}
	return o.normalized()
}
