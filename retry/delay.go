// Copyright 2026 The relay Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"math"
	"net/http"
	"strconv"
	"time"
)

// delay computes the wait before resend number attempt. An explicit
// Retry-After hint from the server takes precedence over the computed
// backoff, respecting explicit backpressure signals, but the MaxDelay
// ceiling applies to both so a misbehaving upstream cannot impose an
// unbounded wait.
func (h *Handler) delay(resp *http.Response, attempt int, opts Options) time.Duration {
	d, ok := retryAfter(resp, h.now())
	if !ok {
		d = h.backoff(attempt, opts.Delay)
	}
	if d > opts.MaxDelay {
		d = opts.MaxDelay
	}
	return d
}

// retryAfter extracts the server's Retry-After hint, if any. A value
// that parses as a plain number is a count of seconds; otherwise it is
// interpreted as an HTTP date and converted to the number of whole
// seconds between that moment and now. A hint already in the past, or
// negative, clamps to zero: retry immediately rather than sleep a
// negative duration. An unparseable hint is ignored.
func retryAfter(resp *http.Response, now time.Time) (time.Duration, bool) {
	if resp == nil {
		return 0, false
	}
	v := resp.Header.Get(retryAfterHeader)
	if v == "" {
		return 0, false
	}
	if secs, err := strconv.ParseFloat(v, 64); err == nil {
		if secs < 0 {
			secs = 0
		}
		return time.Duration(secs * float64(time.Second)), true
	}
	if t, err := http.ParseTime(v); err == nil {
		d := t.Sub(now).Truncate(time.Second)
		if d < 0 {
			d = 0
		}
		return d, true
	}
	return 0, false
}

// backoff computes the jittered exponential backoff for resend number
// attempt: (round(0.5 * (2^attempt - 1)) + jitter) * base, where
// jitter is uniform in [0, 1) rounded to three decimal places.
func (h *Handler) backoff(attempt int, base time.Duration) time.Duration {
	return time.Duration((backoffUnits(attempt) + h.jitter()) * float64(base))
}

// backoffUnits is the exponential factor applied to the base delay,
// before jitter.
func backoffUnits(attempt int) float64 {
	return math.Round(0.5 * (math.Pow(2, float64(attempt)) - 1))
}

func (h *Handler) jitter() float64 {
	h.lock.Lock()
	defer h.lock.Unlock()
	return math.Round(h.rand.Float64()*1000) / 1000
}
