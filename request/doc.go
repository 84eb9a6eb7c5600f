// Copyright 2026 The relay Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package request provides the data types passed through a relay
// middleware pipeline: the Plan, a buffered and replayable description
// of a logical HTTP request; and the Exchange, the mutable state of one
// execution of a Plan as it travels down the pipeline and back.
//
// A Plan is deliberately transaction-oriented: its body is a byte
// slice, not a stream, so the pipeline can convert it into as many
// low-level http.Request values as the execution needs, for example
// when a retry link decides a failed attempt should be resent.
//
// An Exchange additionally carries a per-call option bag. Pipeline
// links read options from the bag, keyed by a typed OptionKey naming
// the capability they configure, to let a single call override a
// link's process-wide configuration for that call only.
package request
