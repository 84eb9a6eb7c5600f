// Copyright 2026 The relay Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"github.com/gogama/relay/request"
)

// A HandlerGroup is a group of event handler chains which can be
// installed in a Chain via Config.
type HandlerGroup struct {
	handlers [][]Handler
}

// PushBack adds an event handler to the back of the event handler
// chain for a specific event type.
func (g *HandlerGroup) PushBack(evt Event, h Handler) {
	if h == nil {
		panic("relay/pipeline: nil handler")
	}

	if g.handlers == nil {
		g.handlers = make([][]Handler, numEvents)
	}

	g.handlers[evt] = append(g.handlers[evt], h)
}

func (g *HandlerGroup) run(evt Event, x *request.Exchange) {
	i := int(evt)
	if i < len(g.handlers) {
		runChain(g.handlers[i], evt, x)
	}
}

func runChain(chain []Handler, evt Event, x *request.Exchange) {
	for _, h := range chain {
		h.Handle(evt, x)
	}
}

// A Handler handles the occurrence of an event during a request plan
// execution.
type Handler interface {
	Handle(Event, *request.Exchange)
}

// The HandlerFunc type is an adapter to allow the use of ordinary
// functions as event handlers. If f is a function with the
// appropriate signature, HandlerFunc(f) is a Handler that calls f.
type HandlerFunc func(Event, *request.Exchange)

// Handle calls f(evt, x).
func (f HandlerFunc) Handle(evt Event, x *request.Exchange) {
	f(evt, x)
}
