// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package connection

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProber struct {
	err   error
	calls int
}

func (f *fakeProber) Health(ctx context.Context) error {
	f.calls++
	return f.err
}

func newTestMonitor(p Prober) *Monitor {
	cfg := DefaultConfig(p)
	cfg.ManualCheckEvery = 50 * time.Millisecond
	return NewMonitor(cfg)
}

func TestMonitor_StartsUnknown(t *testing.T) {
	m := newTestMonitor(&fakeProber{})
	assert.Equal(t, StateUnknown, m.State())
	assert.False(t, m.IsConnected())
}

func TestMonitor_CheckTransitions(t *testing.T) {
	prober := &fakeProber{}
	m := newTestMonitor(prober)

	status := m.Check(context.Background())
	assert.Equal(t, StateConnected, status.State)
	assert.Empty(t, status.Detail)
	assert.True(t, m.IsConnected())

	prober.err = errors.New("connection refused")
	status = m.Check(context.Background())
	assert.Equal(t, StateDisconnected, status.State)
	assert.Contains(t, status.Detail, "connection refused")

	prober.err = nil
	status = m.Check(context.Background())
	assert.Equal(t, StateConnected, status.State)
	assert.Empty(t, status.Detail, "detail clears on recovery")
}

func TestMonitor_RequestCheckThrottled(t *testing.T) {
	prober := &fakeProber{}
	m := newTestMonitor(prober)

	_, ran := m.RequestCheck(context.Background())
	require.True(t, ran, "first manual check must run")

	_, ran = m.RequestCheck(context.Background())
	assert.False(t, ran, "immediate second manual check is throttled")
	assert.Equal(t, 1, prober.calls)

	time.Sleep(60 * time.Millisecond)
	_, ran = m.RequestCheck(context.Background())
	assert.True(t, ran, "throttle window passed")
	assert.Equal(t, 2, prober.calls)
}

func TestMonitor_EndpointChangedResetsToUnknown(t *testing.T) {
	m := newTestMonitor(&fakeProber{})
	m.Check(context.Background())
	require.Equal(t, StateConnected, m.State())

	replacement := &fakeProber{err: errors.New("down")}
	m.EndpointChanged(replacement)

	assert.Equal(t, StateUnknown, m.State())

	status := m.Check(context.Background())
	assert.Equal(t, StateDisconnected, status.State)
	assert.Equal(t, 1, replacement.calls, "probe must hit the new endpoint")
}

func TestMonitor_LastCheckRecorded(t *testing.T) {
	m := newTestMonitor(&fakeProber{})
	require.True(t, m.GetStatus().LastCheck.IsZero())

	m.Check(context.Background())
	assert.False(t, m.GetStatus().LastCheck.IsZero())
}
