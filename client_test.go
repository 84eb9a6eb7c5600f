// Copyright 2026 The relay Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package relay

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/gogama/relay/pipeline"
	"github.com/gogama/relay/request"
	"github.com/gogama/relay/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientZeroValue(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
		_, _ = w.Write([]byte("plain sailing"))
	}))
	defer s.Close()
	c := &Client{}

	x, err := c.Get(s.URL)

	require.NoError(t, err)
	assert.Equal(t, 200, x.StatusCode())
	assert.Equal(t, []byte("plain sailing"), x.Body)
	assert.Equal(t, 0, x.Attempt)
	assert.True(t, x.Started())
	assert.True(t, x.Ended())
}

func TestClientRetriesTransientStatus(t *testing.T) {
	srv := &transientServer{failures: 2}
	s := httptest.NewServer(srv)
	defer s.Close()
	c := fastRetryClient(2)

	x, err := c.Post(s.URL, "text/plain", "payload")

	require.NoError(t, err)
	assert.Equal(t, 200, x.StatusCode())
	assert.Equal(t, []byte("recovered"), x.Body)
	assert.Equal(t, 2, x.Attempt)
	require.Equal(t, []string{"", "1", "2"}, srv.attemptHeaders())
}

func TestClientRetryBudgetExhausted(t *testing.T) {
	srv := &transientServer{failures: 10}
	s := httptest.NewServer(srv)
	defer s.Close()
	c := fastRetryClient(2)

	x, err := c.Post(s.URL, "text/plain", "payload")

	require.NoError(t, err)
	assert.Equal(t, 503, x.StatusCode())
	assert.Equal(t, 2, x.Attempt)
	assert.Equal(t, 3, srv.calls())
}

func TestClientReadMethodNotRetried(t *testing.T) {
	srv := &transientServer{failures: 10}
	s := httptest.NewServer(srv)
	defer s.Close()
	c := fastRetryClient(3)

	x, err := c.Get(s.URL)

	require.NoError(t, err)
	assert.Equal(t, 503, x.StatusCode())
	assert.Equal(t, 0, x.Attempt)
	assert.Equal(t, 1, srv.calls())
}

func TestClientNoMiddlewares(t *testing.T) {
	srv := &transientServer{failures: 10}
	s := httptest.NewServer(srv)
	defer s.Close()
	c := &Client{Middlewares: []pipeline.Middleware{}}

	x, err := c.Post(s.URL, "text/plain", "payload")

	require.NoError(t, err)
	assert.Equal(t, 503, x.StatusCode())
	assert.Equal(t, 0, x.Attempt)
	assert.Equal(t, 1, srv.calls())
}

func TestClientCancelDuringRetryWait(t *testing.T) {
	srv := &transientServer{failures: 10}
	s := httptest.NewServer(srv)
	defer s.Close()
	c := &Client{
		Middlewares: []pipeline.Middleware{
			retry.NewHandler(retry.Options{
				MaxRetries: 3,
				Delay:      time.Minute,
			}),
		},
	}
	ctx, cancel := context.WithCancel(context.Background())
	p, err := request.NewPlanWithContext(ctx, "POST", s.URL, "payload")
	require.NoError(t, err)
	p.Header.Set("Content-Type", "text/plain")
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()
	start := time.Now()

	x, err := c.Do(p)

	require.ErrorIs(t, err, context.Canceled)
	assert.Same(t, err, x.Err)
	assert.Less(t, time.Since(start), 10*time.Second)
	assert.Equal(t, 1, srv.calls())
}

func TestClientPostForm(t *testing.T) {
	var gotContentType, gotBody string
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseForm())
		gotBody = r.PostForm.Encode()
		w.WriteHeader(200)
	}))
	defer s.Close()
	c := &Client{}

	x, err := c.PostForm(s.URL, url.Values{"k": []string{"v"}, "k2": []string{"v2"}})

	require.NoError(t, err)
	assert.Equal(t, 200, x.StatusCode())
	assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	assert.Equal(t, "k=v&k2=v2", gotBody)
}

func TestClientHead(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "HEAD", r.Method)
		w.WriteHeader(200)
	}))
	defer s.Close()
	c := &Client{}

	x, err := c.Head(s.URL)

	require.NoError(t, err)
	assert.Equal(t, 200, x.StatusCode())
	assert.Empty(t, x.Body)
}

func TestClientCloseIdleConnections(t *testing.T) {
	t.Run("nil doer", func(t *testing.T) {
		c := &Client{}
		assert.NotPanics(t, c.CloseIdleConnections)
	})
	t.Run("idle closer doer", func(t *testing.T) {
		d := &closableDoer{}
		c := &Client{HTTPDoer: d}

		c.CloseIdleConnections()

		assert.Equal(t, 1, d.closed)
	})
	t.Run("plain doer", func(t *testing.T) {
		c := &Client{HTTPDoer: plainDoer{}}
		assert.NotPanics(t, c.CloseIdleConnections)
	})
}

func fastRetryClient(maxRetries int) *Client {
	return &Client{
		Middlewares: []pipeline.Middleware{
			retry.NewHandler(retry.Options{
				MaxRetries: maxRetries,
				Delay:      time.Millisecond,
				MaxDelay:   5 * time.Millisecond,
			}),
		},
	}
}

// transientServer answers with chunked 503 responses until its failure
// quota is spent, then answers 200.
type transientServer struct {
	failures int

	lock     sync.Mutex
	n        int
	attempts []string
}

func (s *transientServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	n := s.n
	s.n++
	s.attempts = append(s.attempts, r.Header.Get(retry.AttemptHeader))
	s.lock.Unlock()
	if n < s.failures {
		w.WriteHeader(503)
		// Flushing before the handler returns forces the server to use
		// chunked transfer encoding instead of setting Content-Length.
		w.(http.Flusher).Flush()
		_, _ = w.Write([]byte("busy"))
		return
	}
	w.WriteHeader(200)
	_, _ = w.Write([]byte("recovered"))
}

func (s *transientServer) calls() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.n
}

func (s *transientServer) attemptHeaders() []string {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.attempts
}

type closableDoer struct {
	closed int
}

func (d *closableDoer) Do(r *http.Request) (*http.Response, error) {
	return http.DefaultClient.Do(r)
}

func (d *closableDoer) CloseIdleConnections() {
	d.closed++
}

type plainDoer struct{}

func (plainDoer) Do(r *http.Request) (*http.Response, error) {
	return http.DefaultClient.Do(r)
}
