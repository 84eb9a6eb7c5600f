// Copyright 2026 The relay Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package relay

import (
	"net/http"
	"net/url"
	"sync"

	"github.com/gogama/relay/pipeline"
	"github.com/gogama/relay/request"
	"github.com/gogama/relay/retry"
	"github.com/gogama/relay/timeout"
)

// A Client is a robust HTTP client which executes request plans
// through a middleware pipeline. Its zero value is a valid
// configuration.
//
// The zero value client uses http.DefaultClient (from net/http) as the
// HTTPDoer, timeout.DefaultPolicy as the timeout policy, a pipeline
// containing a default-configured retry link as the middleware chain,
// and an empty handler group (no event handlers/plug-ins).
//
// Client's HTTPDoer typically has internal state (cached TCP
// connections) so Client instances should be reused instead of created
// as needed. Client is safe for concurrent use by multiple goroutines,
// but its fields must not be modified after the first call to any of
// its methods, since the pipeline is assembled from them on first use.
//
// A Client is higher-level than an HTTPDoer. The HTTPDoer is
// responsible for all details of sending the HTTP request and
// receiving the response, while Client builds on top of the HTTPDoer's
// feature set. For example, the HTTPDoer is responsible for redirects,
// so consult the HTTPDoer's documentation to understand how redirects
// are handled.
//
// On top of the HTTP request features provided by the HTTPDoer, Client
// adds the following features:
//
// • Client reads and buffers the entire HTTP response body into a
// []byte (returned as the Exchange.Body field);
//
// • Client resends attempts which completed with a transient status,
// using a customizable retry link (package retry);
//
// • Client sets individual request attempt timeouts using a
// customizable timeout policy (package timeout);
//
// • arbitrary middlewares can be installed ahead of the terminal
// transport link, and event handler functions can be invoked at
// designated plug-in points within the execution, allowing new
// features to be mixed in from outside libraries; and
//
// • Client implements the relay.Executor interface.
//
// Client's HTTP methods should feel familiar to anyone who has used
// the Go standard HTTP client (http.Client). The main differences are:
//
// • instead of consuming an http.Request, which is only suitable for
// making a one-off request attempt, Client.Do consumes a request.Plan
// which is suitable for making multiple attempts if necessary (the
// pipeline's transport link converts the plan into an http.Request as
// needed); and
//
// • instead of producing an http.Response, all of Client's HTTP
// methods return a request.Exchange, which contains some metadata
// about the plan execution as well as a fully-buffered response body.
type Client struct {
	// HTTPDoer specifies the mechanics of sending HTTP requests and
	// receiving responses.
	//
	// If HTTPDoer is nil, http.DefaultClient from the standard
	// net/http package is used.
	HTTPDoer pipeline.HTTPDoer
	// Middlewares contains the pipeline links installed ahead of the
	// terminal transport link, outermost first.
	//
	// If Middlewares is nil, the pipeline contains a single retry link
	// with default options. To build a pipeline with no middlewares at
	// all (and therefore no retries), set Middlewares to a non-nil
	// empty slice.
	Middlewares []pipeline.Middleware
	// TimeoutPolicy specifies how to set timeouts on individual
	// request attempts.
	//
	// If TimeoutPolicy is nil, timeout.DefaultPolicy is used.
	TimeoutPolicy timeout.Policy
	// Handlers allows custom handler chains to be invoked when
	// designated events occur during execution of a request plan.
	//
	// If Handlers is nil, no custom handlers will be run.
	Handlers *pipeline.HandlerGroup

	once  sync.Once
	chain *pipeline.Chain
}

// Do executes an HTTP request plan and returns the results, following
// the middleware, timeout, and event handler configuration set on
// Client, and low-level policy set on the underlying HTTPDoer.
//
// The result returned is the result after the final HTTP request
// attempt made during the plan execution, as determined by the retry
// link (if one is installed).
//
// An error is returned if the final attempt resulted in an error. An
// attempt may end in error due to failure to speak HTTP (for example a
// network connectivity problem), or because of policy in the pipeline
// (such as timeout, or plan context cancellation during a retry wait),
// or because of policy on the underlying HTTPDoer (for example
// relating to redirects). A non-2XX status code in the final attempt
// does not result in an error: in particular, when the retry link
// exhausts its attempt budget, the last response is returned with its
// failing status for the caller to interpret.
//
// The returned Exchange is never nil, but may contain a nil Response
// and will contain a nil Body if an error occurred. If an error was
// returned, the Err field of the Exchange always references the same
// error.
//
// For simple use cases, the Get, Head, Post, and PostForm methods may
// prove easier to use than Do.
func (c *Client) Do(p *request.Plan) (*request.Exchange, error) {
	return c.pipeline().Do(p)
}

func (c *Client) pipeline() *pipeline.Chain {
	c.once.Do(func() {
		mw := c.Middlewares
		if mw == nil {
			mw = []pipeline.Middleware{retry.NewHandler(retry.Options{})}
		}
		c.chain = pipeline.New(pipeline.Config{
			HTTPDoer:      c.HTTPDoer,
			TimeoutPolicy: c.TimeoutPolicy,
			Handlers:      c.Handlers,
		}, mw...)
	})
	return c.chain
}

// Get issues a GET to the specified URL, using the same policies
// followed by Do.
//
// To make a request plan with custom headers, use request.NewPlan and
// Client.Do.
func (c *Client) Get(url string) (*request.Exchange, error) {
	return Get(c, url)
}

// Head issues a HEAD to the specified URL, using the same policies
// followed by Do.
//
// To make a request plan with custom headers, use request.NewPlan and
// Client.Do.
func (c *Client) Head(url string) (*request.Exchange, error) {
	return Head(c, url)
}

// Post issues a POST to the specified URL, using the same policies
// followed by Do.
//
// The body parameter may be nil for an empty body, or may be any of
// the types supported by request.NewPlan, request.BodyBytes, and
// relay.Post, namely: string; []byte; io.Reader; and io.ReadCloser.
//
// To make a request plan with custom headers, use request.NewPlan and
// Client.Do.
func (c *Client) Post(url, contentType string, body interface{}) (*request.Exchange, error) {
	return Post(c, url, contentType, body)
}

// PostForm issues a POST to the specified URL, with data's keys and
// values URL-encoded as the request body.
//
// The Content-Type header is set to application/x-www-form-urlencoded.
// To set other headers, use request.NewPlan and Client.Do.
func (c *Client) PostForm(url string, data url.Values) (*request.Exchange, error) {
	return PostForm(c, url, data)
}

// CloseIdleConnections invokes the same method on the client's
// underlying HTTPDoer.
//
// If the HTTPDoer has no CloseIdleConnections method, this method does
// nothing.
func (c *Client) CloseIdleConnections() {
	var doer interface{} = c.HTTPDoer
	if c.HTTPDoer == nil {
		doer = http.DefaultClient
	}
	if ic, ok := doer.(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}
