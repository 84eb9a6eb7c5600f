// Copyright 2026 The relay Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package timeout provides policies for setting timeouts on the
// individual HTTP request attempts made while executing a request
// plan.
//
// The pipeline's terminal transport link consults the timeout policy
// once per attempt, so a plan execution involving retries may use a
// different timeout for each attempt, for example via the Adaptive
// policy which stretches the timeout after a timed-out attempt.
//
// Attempt timeouts are independent of the plan-level context deadline,
// which bounds the whole execution including retry wait periods.
package timeout
