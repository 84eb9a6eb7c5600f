// Copyright 2026 The relay Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package requestid provides a pipeline middleware that stamps each
// outgoing request plan with a unique identifier, allowing one logical
// request, including all of its retry attempts, to be correlated
// across service boundaries.
package requestid

import (
	"github.com/google/uuid"

	"github.com/gogama/relay/pipeline"
	"github.com/gogama/relay/request"
)

// Header is the request header the middleware writes the identifier
// into.
const Header = "Client-Request-Id"

// A Handler is the request identification link of a pipeline. It
// writes a fresh UUID into the plan's Client-Request-Id header unless
// the caller already supplied one, then delegates to the rest of the
// chain. Because the plan's header map is shared by every attempt
// request built from the plan, all retry attempts of one plan
// execution carry the same identifier.
type Handler struct {
	next pipeline.Middleware
}

var _ pipeline.Middleware = (*Handler)(nil)

// NewHandler constructs a request identification Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// SetNext installs the successor link. It is called by pipeline.New
// while the chain is being assembled.
func (h *Handler) SetNext(next pipeline.Middleware) {
	if next == nil {
		panic("relay/requestid: nil middleware")
	}
	h.next = next
}

// Execute stamps the plan and delegates to the rest of the chain.
func (h *Handler) Execute(x *request.Exchange) error {
	if x.Plan.Header.Get(Header) == "" {
		x.Plan.Header.Set(Header, uuid.NewString())
	}
	return h.next.Execute(x)
}
