// Copyright 2026 The relay Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvents(t *testing.T) {
	evts := Events()
	require.Len(t, evts, numEvents)
	for i, evt := range evts {
		assert.Equal(t, Event(i), evt)
	}
}

func TestEventName(t *testing.T) {
	require.Len(t, eventNames, numEvents)
	for _, evt := range Events() {
		name := evt.Name()
		assert.NotEmpty(t, name)
		assert.Equal(t, name, evt.String())
	}
	assert.Equal(t, "BeforeExecutionStart", BeforeExecutionStart.Name())
	assert.Equal(t, "AfterExecutionEnd", AfterExecutionEnd.Name())
}
