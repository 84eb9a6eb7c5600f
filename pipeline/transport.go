// Copyright 2026 The relay Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/gogama/relay/request"
	"github.com/gogama/relay/timeout"
)

// transport is the terminal link of every chain. It converts the plan
// into an http.Request with a per-attempt timeout, sends it via the
// HTTPDoer, and buffers the response body into the exchange.
type transport struct {
	doer          HTTPDoer
	timeoutPolicy timeout.Policy
	handlers      *HandlerGroup
}

func (t *transport) SetNext(_ Middleware) {
	panic("relay/pipeline: transport is the terminal link")
}

func (t *transport) Execute(x *request.Exchange) error {
	// The timeout policy may adapt to a previous timed-out attempt, so
	// consult it before clearing the prior attempt's state.
	d := t.timeoutPolicy.Timeout(x)
	x.Response = nil
	x.Err = nil
	x.Body = nil
	ctx, cancel := context.WithTimeout(x.Plan.Context(), d)
	defer cancel()
	x.Request = x.Plan.ToRequest(ctx)
	t.handlers.run(BeforeAttempt, x)
	resp, err := t.doer.Do(x.Request)
	x.Response = resp
	if err != nil {
		x.Err = urlErrorWrap(x.Plan, err)
	} else {
		t.readBody(x)
	}
	if x.Timeout() {
		x.AttemptTimeouts++
		t.handlers.run(AfterAttemptTimeout, x)
	}
	t.handlers.run(AfterAttempt, x)
	return x.Err
}

func (t *transport) readBody(x *request.Exchange) {
	defer func() {
		_ = x.Response.Body.Close()
	}()
	t.handlers.run(BeforeReadBody, x)
	var err error
	x.Body, err = io.ReadAll(x.Response.Body)
	if err != nil {
		x.Err = urlErrorWrap(x.Plan, err)
	}
}

func urlErrorWrap(p *request.Plan, err error) error {
	if _, ok := err.(*url.Error); ok {
		return err
	}

	return &url.Error{
		Op:  urlErrorOp(p.Method),
		URL: p.URL.String(),
		Err: err,
	}
}

// urlErrorOp is lifted verbatim from net/http/client.go
func urlErrorOp(method string) string {
	if method == "" {
		return "Get"
	}
	return method[:1] + strings.ToLower(method[1:])
}
