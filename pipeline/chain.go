// Copyright 2026 The relay Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"net/http"
	"time"

	"github.com/gogama/relay/request"
	"github.com/gogama/relay/timeout"
)

// An HTTPDoer implements a Do method in the same manner as the GoLang
// standard library http.Client from the net/http package.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// HTTPDoer.
	//
	// The Do method must follow the contract documented on the GoLang
	// standard library http.Client from the net/http package.
	Do(r *http.Request) (*http.Response, error)
}

// A Middleware is one link of a request-processing chain.
//
// A Middleware receives the exchange for the current plan execution,
// may act on it before and after the rest of the chain runs, and
// delegates to the successor link installed via SetNext. The error
// returned by Execute must be the error produced by the delegated
// chain, propagated unchanged, unless the middleware itself aborted
// the execution.
//
// Implementations of Middleware must be safe for concurrent use by
// multiple goroutines once installed in a chain.
type Middleware interface {
	// Execute runs this link, and the rest of the chain after it, for
	// the given exchange.
	Execute(x *request.Exchange) error
	// SetNext installs the successor link this middleware delegates
	// to. It is called exactly once, by New, while the chain is being
	// assembled.
	SetNext(next Middleware)
}

// Config contains the optional collaborators of a Chain. The zero
// value is a valid configuration.
type Config struct {
	// HTTPDoer specifies the mechanics of sending HTTP requests and
	// receiving responses in the chain's terminal transport link.
	//
	// If HTTPDoer is nil, http.DefaultClient from the standard
	// net/http package is used.
	HTTPDoer HTTPDoer
	// TimeoutPolicy specifies how the terminal transport link sets
	// timeouts on individual request attempts.
	//
	// If TimeoutPolicy is nil, timeout.DefaultPolicy is used.
	TimeoutPolicy timeout.Policy
	// Handlers allows custom handler chains to be invoked when
	// designated events occur during execution of a request plan.
	//
	// If Handlers is nil, no custom handlers will be run.
	Handlers *HandlerGroup
}

// A Chain is an assembled middleware pipeline ready to execute HTTP
// request plans. Create a Chain with New.
//
// A Chain is safe for concurrent use by multiple goroutines.
type Chain struct {
	head     Middleware
	handlers *HandlerGroup
}

var emptyHandlers = HandlerGroup{}

// New assembles a chain from the given configuration and ordered list
// of middlewares. The first middleware in the list is the outermost
// link, the one that sees the exchange first; the chain's terminal
// transport link, built from cfg, runs after the last middleware in
// the list.
//
// New panics if any middleware in the list is nil.
func New(cfg Config, middlewares ...Middleware) *Chain {
	doer := cfg.HTTPDoer
	if doer == nil {
		doer = http.DefaultClient
	}
	timeoutPolicy := cfg.TimeoutPolicy
	if timeoutPolicy == nil {
		timeoutPolicy = timeout.DefaultPolicy
	}
	handlers := cfg.Handlers
	if handlers == nil {
		handlers = &emptyHandlers
	}
	var head Middleware = &transport{
		doer:          doer,
		timeoutPolicy: timeoutPolicy,
		handlers:      handlers,
	}
	for i := len(middlewares) - 1; i >= 0; i-- {
		m := middlewares[i]
		if m == nil {
			panic("relay/pipeline: nil middleware")
		}
		m.SetNext(head)
		head = m
	}
	return &Chain{head: head, handlers: handlers}
}

// Do executes an HTTP request plan through the chain and returns the
// final exchange state.
//
// The result returned is the result after the final HTTP request
// attempt made during the plan execution, as determined by any retry
// middleware installed in the chain.
//
// An error is returned if the final attempt resulted in an error, or
// if a middleware aborted the execution (for example because the plan
// context was cancelled during a retry wait). A non-2XX status code
// in the final attempt does not result in an error.
//
// The returned Exchange is never nil. If an error was returned, the
// Err field of the Exchange always references the same error.
func (c *Chain) Do(p *request.Plan) (*request.Exchange, error) {
	if p == nil {
		panic("relay/pipeline: nil plan")
	}
	x := &request.Exchange{Plan: p}
	c.handlers.run(BeforeExecutionStart, x)
	x.Start = time.Now()
	err := c.head.Execute(x)
	if err != nil {
		x.Err = err
	}
	x.End = time.Now()
	c.handlers.run(AfterExecutionEnd, x)
	return x, x.Err
}
