// Copyright 2026 The relay Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlan(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		p, err := NewPlan("", "http://relay.test/a/b", nil)

		require.NoError(t, err)
		assert.Equal(t, "GET", p.Method)
		assert.Equal(t, "relay.test", p.URL.Host)
		assert.Equal(t, "/a/b", p.URL.Path)
		assert.NotNil(t, p.Header)
		assert.Nil(t, p.Body)
		assert.Equal(t, "relay.test", p.Host)
		assert.Same(t, context.Background(), p.Context())
	})
	t.Run("invalid method", func(t *testing.T) {
		_, err := NewPlan("GE T", "http://relay.test", nil)

		assert.EqualError(t, err, `relay/request: invalid method "GE T"`)
	})
	t.Run("invalid url", func(t *testing.T) {
		_, err := NewPlan("GET", "::/not-a-url", nil)

		assert.Error(t, err)
	})
	t.Run("empty port removed", func(t *testing.T) {
		p, err := NewPlan("GET", "http://relay.test:/x", nil)

		require.NoError(t, err)
		assert.Equal(t, "relay.test", p.URL.Host)
	})
	t.Run("non-empty port kept", func(t *testing.T) {
		p, err := NewPlan("GET", "http://relay.test:8080/x", nil)

		require.NoError(t, err)
		assert.Equal(t, "relay.test:8080", p.URL.Host)
	})
	t.Run("string body", func(t *testing.T) {
		p, err := NewPlan("POST", "http://relay.test", "ham")

		require.NoError(t, err)
		assert.Equal(t, []byte("ham"), p.Body)
	})
	t.Run("reader body", func(t *testing.T) {
		p, err := NewPlan("PUT", "http://relay.test", strings.NewReader("eggs"))

		require.NoError(t, err)
		assert.Equal(t, []byte("eggs"), p.Body)
	})
}

func TestNewPlanWithContext(t *testing.T) {
	t.Run("nil context", func(t *testing.T) {
		_, err := NewPlanWithContext(nil, "GET", "http://relay.test", nil) //lint:ignore SA1012 testing nil context

		assert.EqualError(t, err, nilCtxMsg)
	})
	t.Run("context kept", func(t *testing.T) {
		type key struct{}
		ctx := context.WithValue(context.Background(), key{}, "v")

		p, err := NewPlanWithContext(ctx, "GET", "http://relay.test", nil)

		require.NoError(t, err)
		assert.Same(t, ctx, p.Context())
	})
}

func TestPlanWithContext(t *testing.T) {
	p, err := NewPlan("GET", "http://relay.test", nil)
	require.NoError(t, err)
	t.Run("nil context", func(t *testing.T) {
		assert.PanicsWithValue(t, nilCtxMsg, func() { p.WithContext(nil) }) //lint:ignore SA1012 testing nil context
	})
	t.Run("shallow copy", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		p2 := p.WithContext(ctx)

		assert.NotSame(t, p, p2)
		assert.Same(t, ctx, p2.Context())
		assert.Same(t, context.Background(), p.Context())
		assert.Equal(t, p.URL, p2.URL)
	})
}

func TestPlanAddCookie(t *testing.T) {
	p, err := NewPlan("GET", "http://relay.test", nil)
	require.NoError(t, err)

	p.AddCookie(&http.Cookie{Name: "a", Value: "1"})
	assert.Equal(t, "a=1", p.Header.Get("Cookie"))

	p.AddCookie(&http.Cookie{Name: "b", Value: "2"})
	assert.Equal(t, "a=1; b=2", p.Header.Get("Cookie"))
}

func TestPlanSetBasicAuth(t *testing.T) {
	p, err := NewPlan("GET", "http://relay.test", nil)
	require.NoError(t, err)

	p.SetBasicAuth("user", "pass")

	// base64("user:pass")
	assert.Equal(t, "Basic dXNlcjpwYXNz", p.Header.Get("Authorization"))
}

func TestPlanToRequest(t *testing.T) {
	t.Run("no body", func(t *testing.T) {
		p, err := NewPlan("GET", "http://relay.test/q", nil)
		require.NoError(t, err)
		ctx := context.Background()

		r := p.ToRequest(ctx)

		assert.Same(t, ctx, r.Context())
		assert.Equal(t, "GET", r.Method)
		assert.Same(t, p.URL, r.URL)
		assert.Nil(t, r.Body)
		assert.Nil(t, r.GetBody)
		assert.Equal(t, int64(0), r.ContentLength)
	})
	t.Run("with body", func(t *testing.T) {
		p, err := NewPlan("POST", "http://relay.test/q", "spam")
		require.NoError(t, err)

		r := p.ToRequest(context.Background())

		require.NotNil(t, r.Body)
		b, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, []byte("spam"), b)
		assert.Equal(t, int64(4), r.ContentLength)

		require.NotNil(t, r.GetBody)
		rc, err := r.GetBody()
		require.NoError(t, err)
		b, err = io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, []byte("spam"), b)
	})
	t.Run("shared header map", func(t *testing.T) {
		p, err := NewPlan("GET", "http://relay.test", nil)
		require.NoError(t, err)
		r1 := p.ToRequest(context.Background())

		p.Header.Set("X-Attempt", "1")
		r2 := p.ToRequest(context.Background())

		assert.Equal(t, "1", r1.Header.Get("X-Attempt"))
		assert.Equal(t, "1", r2.Header.Get("X-Attempt"))
	})
	t.Run("host and close", func(t *testing.T) {
		p, err := NewPlan("GET", "http://relay.test", nil)
		require.NoError(t, err)
		p.Host = "other.test"
		p.Close = true

		r := p.ToRequest(context.Background())

		assert.Equal(t, "other.test", r.Host)
		assert.True(t, r.Close)
	})
}
