// Copyright 2026 The relay Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"net/http"
	"time"

	"github.com/gogama/relay/transient"
)

// An Exchange represents the state of a single Plan execution as it
// passes through a middleware pipeline.
//
// When a plan execution is requested, an Exchange is created for it.
// Each pipeline link receives the same Exchange, may mutate it in
// place (for example by adding request headers), and delegates to the
// next link. The Exchange is updated as the execution progresses (for
// example when the HTTP response becomes available, or when a retry
// is needed) and is ultimately returned as the result of the plan
// execution.
//
// Pipeline links and event handlers may set values on an Exchange
// using its SetValue method and read them back using the Value method.
// However, they should treat the structure's exported field values as
// mutable only in the limited ways documented on each field, as the
// exchange state is vital to the correct functioning of the pipeline.
type Exchange struct {
	// Plan specifies the HTTP request plan being executed. It is never
	// nil.
	Plan *Plan

	// Start is the start time of the plan execution. It is assigned a
	// non-zero value when the execution starts, and this value remains
	// constant thereafter.
	Start time.Time

	// End is the end time of the plan execution. It contains the zero
	// value until the execution ends, when it is set to the current
	// time.
	End time.Time

	// Attempt is the zero-based number of the current HTTP request
	// attempt within the plan execution. It is zero on the initial
	// attempt, one on the first retry, and so on.
	//
	// When the execution has ended, Attempt contains the zero-based
	// number of the last attempt made. An execution that ends after an
	// initial attempt plus two retries has an attempt number of 2.
	Attempt int

	// AttemptTimeouts is the count of the number of times an HTTP
	// request attempt timed out during the execution.
	AttemptTimeouts int

	// Request specifies the HTTP request to be made in the current
	// attempt, or already made in the last attempt. It is built from
	// the plan by the pipeline's terminal transport link.
	Request *http.Request

	// Response specifies the HTTP response received in the most recent
	// request attempt. It will be nil if the most recent attempt ended
	// in an error, or if a current attempt is underway, or before the
	// execution starts.
	Response *http.Response

	// Err indicates the error received while making the most recent
	// request attempt. It will be nil if the most recent attempt ended
	// without an error, or if a current attempt is underway, or before
	// the execution starts.
	//
	// While an execution is in-flight, Err may fluctuate between nil
	// and various non-nil error values. Once the execution has ended,
	// Err will not change and has the same value as the error returned
	// by the pipeline's executing method.
	Err error

	// Body is the complete response body read after the most recent
	// request attempt. It will be nil if the most recent attempt ended
	// in an error, or if a current attempt is underway.
	//
	// Note that it is possible that both Body and Err are non-nil, if
	// a read of the body was partially successful. The Body field of a
	// completed execution should be treated as invalid unless Err is
	// nil.
	Body []byte

	// options is the per-call override bag. Pipeline links look up
	// options by their capability key to produce a call-scoped
	// effective configuration.
	options map[OptionKey]Option

	// data contains arbitrary user data set via SetValue.
	data context.Context
}

// An OptionKey names the pipeline capability configured by an Option,
// for example the retry capability. Each configurable pipeline link
// declares the key under which it looks for a per-call override in the
// exchange's option bag.
type OptionKey string

// An Option is a per-call configuration value carried in an exchange's
// option bag. The concrete type is declared by the pipeline link that
// consumes it; the Key method identifies the capability the option
// configures.
type Option interface {
	Key() OptionKey
}

// SetOption puts an option into the exchange's per-call option bag,
// replacing any existing option with the same key. The option applies
// to this exchange only and never affects a link's process-wide
// configuration.
func (x *Exchange) SetOption(o Option) {
	if o == nil {
		panic("relay/request: nil option")
	}
	if x.options == nil {
		x.options = make(map[OptionKey]Option, 1)
	}
	x.options[o.Key()] = o
}

// Option returns the option stored in the exchange's per-call option
// bag under key k, or nil if the bag contains no such option.
func (x *Exchange) Option(k OptionKey) Option {
	return x.options[k]
}

// StatusCode returns the status code of the HTTP response from the
// most recent request attempt in the execution. If there is no HTTP
// response, 0 is returned.
//
// A zero value due to no HTTP response will be returned if the most
// recent attempt ended in error, or if a current attempt is underway,
// or before the execution starts.
func (x *Exchange) StatusCode() int {
	if x.Response == nil {
		return 0
	}

	return x.Response.StatusCode
}

// Header returns the HTTP response headers from the most recent
// request attempt in the execution. If there is no HTTP response, the
// nil header is returned.
//
// Note that a nil return value is always safe for read-only
// operations, since http.Header is a map type. There should never be
// a reason to write to the returned value, since it represents the
// response headers.
func (x *Exchange) Header() http.Header {
	if x.Response == nil {
		var nilHeader http.Header
		return nilHeader
	}

	return x.Response.Header
}

// Duration returns the duration of the execution.
//
// If the execution has not yet started, the duration is zero. If the
// execution has ended, the duration returned is equal to End minus
// Start. Otherwise, it is equal to the current time minus Start.
func (x *Exchange) Duration() time.Duration {
	if !x.Started() {
		return time.Duration(0)
	} else if !x.Ended() {
		return time.Since(x.Start)
	}

	return x.End.Sub(x.Start)
}

// Started indicates whether the execution has started.
func (x *Exchange) Started() bool {
	return x.Start != (time.Time{})
}

// Ended indicates whether the execution has ended. If the return value
// is true, there will be no further changes to the exchange.
func (x *Exchange) Ended() bool {
	return x.End != (time.Time{})
}

// Timeout indicates whether Err currently contains a non-nil value
// which indicates a timeout.
//
// Note that Timeout may return false even if AttemptTimeouts > 0 (if
// the most recent attempt did not end in a timeout, or a current
// attempt is underway).
func (x *Exchange) Timeout() bool {
	return transient.Categorize(x.Err) == transient.Timeout
}

// SetValue allows pipeline links and event handlers to store arbitrary
// data in the exchange.
//
// The key must follow the same rules as the key parameter in
// context.WithValue, namely it:
//
// • may not be nil;
//
// • must be comparable;
//
// • should not be of type string or any other built-in type to avoid
// collisions between different handlers putting data into the same
// exchange.
func (x *Exchange) SetValue(key, value interface{}) {
	ctx := x.data
	if ctx == nil {
		ctx = context.Background()
	}

	x.data = context.WithValue(ctx, key, value)
}

// Value returns the data value associated with this exchange for key,
// or nil if there is no value associated with key.
func (x *Exchange) Value(key interface{}) interface{} {
	ctx := x.data
	if ctx == nil {
		return nil
	}

	return ctx.Value(key)
}
