// Copyright 2026 The relay Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package retry provides the pipeline middleware that resends an HTTP
// request plan when a completed attempt comes back with a transient
// status code.
//
// The retry link only acts on completed exchanges: an attempt that
// fails outright (connection error, timeout, cancellation) always
// propagates to the caller without retry. When a response does arrive
// with status 429, 503 or 504, the link checks that the request
// payload is safe to resend, that the attempt budget has not been
// exhausted, and that the configured predicate approves; it then
// records the attempt count in the Retry-Attempt request header, waits
// out the server's Retry-After hint or a jittered exponential backoff
// (always bounded by the configured maximum delay), and re-invokes the
// rest of the chain.
//
// Construct the link with NewHandler and install it in a pipeline:
//
//	h := retry.NewHandler(retry.Options{MaxRetries: 5})
//	chain := pipeline.New(pipeline.Config{}, h)
//
// A single call can override the handler's configuration by putting a
// partial Options value into the exchange's option bag; see Options.
package retry
