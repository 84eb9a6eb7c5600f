// Copyright 2026 The relay Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package requestid

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/gogama/relay/pipeline"
	"github.com/gogama/relay/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureLink struct {
	seen []string
}

func (l *captureLink) SetNext(_ pipeline.Middleware) {
}

func (l *captureLink) Execute(x *request.Exchange) error {
	l.seen = append(l.seen, x.Plan.Header.Get(Header))
	return nil
}

func TestSetNext(t *testing.T) {
	h := NewHandler()
	assert.Panics(t, func() { h.SetNext(nil) })
	assert.NotPanics(t, func() { h.SetNext(&captureLink{}) })
}

func TestExecute(t *testing.T) {
	t.Run("stamps missing identifier", func(t *testing.T) {
		h := NewHandler()
		link := &captureLink{}
		h.SetNext(link)
		x := newExchange(t)

		err := h.Execute(x)

		require.NoError(t, err)
		require.Len(t, link.seen, 1)
		id, err := uuid.Parse(link.seen[0])
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(4), id.Version())
	})
	t.Run("keeps caller identifier", func(t *testing.T) {
		h := NewHandler()
		link := &captureLink{}
		h.SetNext(link)
		x := newExchange(t)
		x.Plan.Header.Set(Header, "caller-chosen")

		err := h.Execute(x)

		require.NoError(t, err)
		assert.Equal(t, []string{"caller-chosen"}, link.seen)
	})
	t.Run("identifier differs between plans", func(t *testing.T) {
		h := NewHandler()
		link := &captureLink{}
		h.SetNext(link)

		require.NoError(t, h.Execute(newExchange(t)))
		require.NoError(t, h.Execute(newExchange(t)))

		require.Len(t, link.seen, 2)
		assert.NotEqual(t, link.seen[0], link.seen[1])
	})
}

func newExchange(t *testing.T) *request.Exchange {
	t.Helper()
	p, err := request.NewPlan(http.MethodGet, "http://relay.test", nil)
	require.NoError(t, err)
	return &request.Exchange{Plan: p}
}
