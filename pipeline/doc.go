// Copyright 2026 The relay Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package pipeline provides the chain-of-responsibility plumbing that
// executes an HTTP request plan: the Middleware link contract, the
// Chain which assembles links in order ahead of a terminal transport
// link, and the event handler mechanism for observing an execution.
//
// Each link in a chain receives the request.Exchange for the current
// plan execution, may act on it before and after the rest of the
// chain runs, and delegates to its successor. The terminal link is
// always the built-in transport adapter, which converts the plan into
// an http.Request, sends it via an HTTPDoer, and buffers the response
// body into the exchange.
//
// Links are wired exactly once, inside New, by passing an ordered
// list of middlewares. A Middleware instance must not be installed in
// more than one chain, since installing it rewires its successor.
package pipeline
