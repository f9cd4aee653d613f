// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package connection tracks reachability of the backend endpoint.
package connection

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/time/rate"
)

// =============================================================================
// STATE TYPE
// =============================================================================

// State is the tri-state connection status.
type State string

const (
	StateUnknown      State = "unknown"
	StateConnected    State = "connected"
	StateDisconnected State = "disconnected"
)

// String returns the string representation of the state.
func (s State) String() string {
	return string(s)
}

// =============================================================================
// MONITOR
// =============================================================================

// Prober performs the actual reachability check. Satisfied by api.Client.
type Prober interface {
	Health(ctx context.Context) error
}

// Config holds configuration for the connection monitor.
type Config struct {
	// Prober performs the health request.
	Prober Prober

	// Interval between periodic checks (default: 30 seconds).
	Interval time.Duration

	// ProbeTimeout bounds one health request (default: 5 seconds).
	ProbeTimeout time.Duration

	// ManualCheckEvery throttles user-triggered re-checks (default: one per
	// 2 seconds). Periodic ticks are not throttled.
	ManualCheckEvery time.Duration
}

// DefaultConfig returns the default monitor configuration.
func DefaultConfig(prober Prober) Config {
	return Config{
		Prober:           prober,
		Interval:         30 * time.Second,
		ProbeTimeout:     5 * time.Second,
		ManualCheckEvery: 2 * time.Second,
	}
}

// Monitor holds the tri-state connection status plus the error detail of the
// last failed probe. It is not a circuit breaker: nothing is blocked when
// disconnected, the send pipeline just consults the state as one of its
// gates.
type Monitor struct {
	mu        sync.Mutex
	state     State
	detail    string
	lastCheck time.Time

	prober       Prober
	interval     time.Duration
	probeTimeout time.Duration
	limiter      *rate.Limiter
}

// NewMonitor creates a monitor in the unknown state. No probe happens until
// the first Check or tick.
func NewMonitor(cfg Config) *Monitor {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = 5 * time.Second
	}
	if cfg.ManualCheckEvery <= 0 {
		cfg.ManualCheckEvery = 2 * time.Second
	}
	return &Monitor{
		state:        StateUnknown,
		prober:       cfg.Prober,
		interval:     cfg.Interval,
		probeTimeout: cfg.ProbeTimeout,
		limiter:      rate.NewLimiter(rate.Every(cfg.ManualCheckEvery), 1),
	}
}

// =============================================================================
// STATUS
// =============================================================================

// Status is a snapshot of the monitor state.
type Status struct {
	State     State
	Detail    string
	LastCheck time.Time
}

// GetStatus returns the current status snapshot.
func (m *Monitor) GetStatus() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Status{State: m.state, Detail: m.detail, LastCheck: m.lastCheck}
}

// State returns the current tri-state status.
func (m *Monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// IsConnected returns true when the last probe succeeded.
func (m *Monitor) IsConnected() bool {
	return m.State() == StateConnected
}

// =============================================================================
// CHECKING
// =============================================================================

// Check probes the backend once and updates the state. Blocking; callers in
// the UI should run it inside a tea command.
func (m *Monitor) Check(ctx context.Context) Status {
	ctx, cancel := context.WithTimeout(ctx, m.probeTimeout)
	defer cancel()

	err := m.prober.Health(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastCheck = time.Now()
	if err != nil {
		m.state = StateDisconnected
		m.detail = err.Error()
	} else {
		m.state = StateConnected
		m.detail = ""
	}
	return Status{State: m.state, Detail: m.detail, LastCheck: m.lastCheck}
}

// RequestCheck is the user-triggered variant of Check. Rate limited so a
// held-down key cannot hammer the endpoint; when throttled it returns the
// current status and false.
func (m *Monitor) RequestCheck(ctx context.Context) (Status, bool) {
	if !m.limiter.Allow() {
		return m.GetStatus(), false
	}
	return m.Check(ctx), true
}

// EndpointChanged resets the state to unknown. Called when the configured
// backend URL changes; the next tick re-evaluates against the new endpoint.
func (m *Monitor) EndpointChanged(prober Prober) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if prober != nil {
		m.prober = prober
	}
	m.state = StateUnknown
	m.detail = ""
}

// =============================================================================
// BUBBLE TEA INTEGRATION
// =============================================================================

// TickMsg is sent periodically to trigger a probe.
type TickMsg struct {
	Time time.Time
}

// StatusMsg carries the result of a probe back into the update loop.
type StatusMsg struct {
	Status Status
}

// TickCmd returns a command that ticks at the configured interval.
func (m *Monitor) TickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// HandleTick probes in the background and schedules the next tick.
func (m *Monitor) HandleTick() tea.Cmd {
	probe := func() tea.Msg {
		return StatusMsg{Status: m.Check(context.Background())}
	}
	return tea.Batch(probe, m.TickCmd())
}
