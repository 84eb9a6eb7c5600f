// Copyright 2026 The relay Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient categorizes errors encountered while executing an
// HTTP request plan by whether they are transient, in other words by
// whether a future attempt made after the error has some prospect of
// succeeding.
//
// Note that the relay retry link never consults this package when
// making retry decisions: a failed attempt (as opposed to a completed
// response with a retryable status) always propagates to the caller
// without retry. The categorization is used by the timeout package's
// adaptive policy, and by exchange state accessors, to recognize
// attempt timeouts.
package transient
