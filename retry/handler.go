// Copyright 2026 The relay Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"context"
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gogama/relay/pipeline"
	"github.com/gogama/relay/request"
)

// AttemptHeader is the request header in which the retry link records
// the current attempt count before each resend. The first resend
// carries "1", the second "2", and so on. The initial attempt carries
// no attempt header.
const AttemptHeader = "Retry-Attempt"

const (
	retryAfterHeader       = "Retry-After"
	transferEncodingHeader = "Transfer-Encoding"
	contentTypeHeader      = "Content-Type"

	chunkedEncoding = "chunked"
	octetStreamType = "application/octet-stream"
)

// A Handler is the retry link of a pipeline. It delegates each attempt
// to the rest of the chain and, when the attempt completes with a
// retryable status on a resend-safe request, waits out the computed
// delay and delegates again, up to the configured attempt budget.
//
// A Handler is safe for concurrent use by multiple goroutines once
// installed in a chain. Concurrent plan executions are independent:
// each works on its own exchange, its own attempt counter, and its own
// effective copy of the handler's options.
type Handler struct {
	options Options
	next    pipeline.Middleware
	rand    *rand.Rand
	lock    sync.Mutex
	now     func() time.Time
	sleep   func(ctx context.Context, d time.Duration) error
}

var _ pipeline.Middleware = (*Handler)(nil)

// NewHandler constructs a retry Handler with the given options. Zero
// option fields select the package defaults; see Options.
func NewHandler(opts Options) *Handler {
	return &Handler{
		options: opts.normalized(),
		rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
		now:     time.Now,
		sleep:   suspend,
	}
}

// SetNext installs the successor link. It is called by pipeline.New
// while the chain is being assembled.
func (h *Handler) SetNext(next pipeline.Middleware) {
	if next == nil {
		panic("relay/retry: nil middleware")
	}
	h.next = next
}

// Execute delegates the exchange to the rest of the chain, resending
// as permitted by the effective options. An error returned by the
// delegated chain propagates unchanged, with no retry: only a
// completed response carrying a retryable status is ever retried.
//
// When the attempt budget is exhausted, or the exchange is otherwise
// ineligible for retry, Execute returns nil and leaves the final
// response observable on the exchange; a terminal retryable status is
// not converted into an error.
func (h *Handler) Execute(x *request.Exchange) error {
	opts := h.effective(x)
	for {
		if err := h.next.Execute(x); err != nil {
			return err
		}
		if !eligible(x, opts) {
			return nil
		}
		x.Attempt++
		x.Plan.Header.Set(AttemptHeader, strconv.Itoa(x.Attempt))
		wait := h.delay(x.Response, x.Attempt, opts)
		if err := h.sleep(x.Plan.Context(), wait); err != nil {
			x.Err = err
			return err
		}
	}
}

// effective produces the call-scoped configuration: the handler's own
// options with any override found in the exchange's option bag merged
// on top. The handler's options are never modified.
func (h *Handler) effective(x *request.Exchange) Options {
	opts := h.options
	switch o := x.Option(OptionKey).(type) {
	case Options:
		opts = opts.merge(o)
	case *Options:
		opts = opts.merge(*o)
	}
	return opts
}

// eligible reports whether the completed exchange should be resent.
// All four conditions are required: budget remaining, retryable
// status, resend-safe payload, and predicate approval.
func eligible(x *request.Exchange, opts Options) bool {
	if x.Attempt >= opts.MaxRetries {
		return false
	}
	if !retryableStatus(x.StatusCode()) {
		return false
	}
	if !resendSafe(x.Request, x.Response) {
		return false
	}
	if opts.ShouldRetry != nil && !opts.ShouldRetry(opts.Delay, x.Attempt, x) {
		return false
	}
	return true
}

// retryableStatus reports whether code belongs to the fixed set of
// statuses the link treats as transient. The set is not configurable;
// to retry other statuses, veto and approve via ShouldRetry around a
// custom middleware instead.
func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// resendSafe reports whether the request payload is guaranteed to
// still be available for retransmission. The check is deliberately
// conservative: a write method whose declared content type is a raw
// octet stream may have had its body partially consumed, and a
// non-chunked response suggests the exchange may have streamed rather
// than buffered, so either disqualifies the request even when the
// status code is retryable.
func resendSafe(req *http.Request, resp *http.Response) bool {
	if req == nil || resp == nil {
		return false
	}
	switch req.Method {
	case http.MethodPut, http.MethodPatch, http.MethodPost:
	default:
		return false
	}
	if req.Header.Get(contentTypeHeader) == octetStreamType {
		return false
	}
	return chunked(resp)
}

// chunked reports whether the response signals chunked transfer
// encoding. The net/http transport promotes the Transfer-Encoding
// header into the response's TransferEncoding field, so both are
// checked.
func chunked(resp *http.Response) bool {
	for _, enc := range resp.TransferEncoding {
		if enc == chunkedEncoding {
			return true
		}
	}
	return resp.Header.Get(transferEncodingHeader) == chunkedEncoding
}

// suspend waits out the retry delay without blocking other plan
// executions sharing the process. Cancelling ctx aborts the wait and
// stops the retry loop, propagating the context's error.
func suspend(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
