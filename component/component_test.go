package component

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// mockComponent implements Component for testing.
type mockComponent struct {
	name       string
	startErr   error
	stopErr    error
	health     Health
	startOrder *[]string
	stopOrder  *[]string
}

func (m *mockComponent) Name() string { return m.name }
func (m *mockComponent) Start(ctx context.Context) error {
	if m.startOrder != nil {
		*m.startOrder = append(*m.startOrder, m.name)
	}
	return m.startErr
}
func (m *mockComponent) Stop(ctx context.Context) error {
	if m.stopOrder != nil {
		*m.stopOrder = append(*m.stopOrder, m.name)
	}
	return m.stopErr
}
func (m *mockComponent) Health(ctx context.Context) Health {
	return m.health
}

func TestRegister(t *testing.T) {
	r := NewRegistry()
	c := &mockComponent{name: "engine", health: Health{Name: "engine", Status: StatusHealthy}}

	if err := r.Register(c); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if got := r.Get("engine"); got == nil || got.Name() != "engine" {
		t.Errorf("expected to get registered component, got %v", got)
	}
	if got := r.Get("missing"); got != nil {
		t.Errorf("expected nil for unregistered name, got %v", got)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	r := NewRegistry()
	r.Register(&mockComponent{name: "engine"})

	if err := r.Register(&mockComponent{name: "engine"}); err == nil {
		t.Error("expected error for duplicate registration")
	}
}

func TestStartStopOrdering(t *testing.T) {
	r := NewRegistry()
	var startOrder, stopOrder []string

	for _, name := range []string{"engine", "server", "metrics"} {
		r.Register(&mockComponent{
			name:       name,
			startOrder: &startOrder,
			stopOrder:  &stopOrder,
		})
	}

	ctx := context.Background()
	if err := r.StartAll(ctx); err != nil {
		t.Fatalf("StartAll failed: %v", err)
	}
	if fmt.Sprint(startOrder) != "[engine server metrics]" {
		t.Errorf("unexpected start order: %v", startOrder)
	}

	if err := r.StopAll(ctx); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}
	if fmt.Sprint(stopOrder) != "[metrics server engine]" {
		t.Errorf("expected reverse stop order, got %v", stopOrder)
	}
}

func TestStartAllFailsFast(t *testing.T) {
	r := NewRegistry()
	var startOrder []string
	r.Register(&mockComponent{name: "engine", startOrder: &startOrder})
	r.Register(&mockComponent{name: "server", startOrder: &startOrder, startErr: errors.New("bind failed")})
	r.Register(&mockComponent{name: "metrics", startOrder: &startOrder})

	err := r.StartAll(context.Background())
	if err == nil {
		t.Fatal("expected StartAll to fail")
	}
	if fmt.Sprint(startOrder) != "[engine server]" {
		t.Errorf("later components must not start after a failure, got %v", startOrder)
	}

	// Only started components are stopped.
	var stopOrder []string
	for _, c := range r.All() {
		c.(*mockComponent).stopOrder = &stopOrder
	}
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}
	if fmt.Sprint(stopOrder) != "[engine]" {
		t.Errorf("expected only started components stopped, got %v", stopOrder)
	}
}

func TestStopAllCollectsErrors(t *testing.T) {
	r := NewRegistry()
	r.Register(&mockComponent{name: "engine", stopErr: errors.New("close failed")})
	r.Register(&mockComponent{name: "server"})
	r.StartAll(context.Background())

	if err := r.StopAll(context.Background()); err == nil {
		t.Error("expected aggregated stop error")
	}
}

func TestHealthAll(t *testing.T) {
	r := NewRegistry()
	r.Register(&mockComponent{name: "engine", health: Health{Name: "engine", Status: StatusHealthy}})
	r.Register(&mockComponent{name: "server", health: Health{Name: "server", Status: StatusUnhealthy, Message: "not listening"}})

	healths := r.HealthAll(context.Background())
	if len(healths) != 2 {
		t.Fatalf("expected 2 health results, got %d", len(healths))
	}
	if healths[0].Status != StatusHealthy || healths[1].Status != StatusUnhealthy {
		t.Errorf("unexpected health results: %v", healths)
	}
}

func TestBaseLazyComponent(t *testing.T) {
	calls := 0
	lazy := NewBaseLazyComponent("engine", func(ctx context.Context) error {
		calls++
		return nil
	})

	if lazy.IsInitialized() {
		t.Error("must not be initialized before first use")
	}
	if err := lazy.HealthCheck(context.Background()); err == nil {
		t.Error("health check must fail before initialization")
	}

	for i := 0; i < 3; i++ {
		if err := lazy.Initialize(context.Background()); err != nil {
			t.Fatalf("Initialize failed: %v", err)
		}
	}
	if calls != 1 {
		t.Errorf("initializer must run once, ran %d times", calls)
	}
	if !lazy.IsInitialized() {
		t.Error("expected initialized state")
	}
	if err := lazy.HealthCheck(context.Background()); err != nil {
		t.Errorf("health check failed: %v", err)
	}
}

func TestBaseLazyComponentRetriesAfterFailure(t *testing.T) {
	calls := 0
	lazy := NewBaseLazyComponent("engine", func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return errors.New("transient")
		}
		return nil
	})

	if err := lazy.Initialize(context.Background()); err == nil {
		t.Fatal("expected first initialization to fail")
	}
	if err := lazy.Initialize(context.Background()); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 initializer calls, got %d", calls)
	}
}

func TestBaseLazyComponentClose(t *testing.T) {
	closed := false
	lazy := NewBaseLazyComponent("engine", func(ctx context.Context) error { return nil }).
		WithCloser(func() error {
			closed = true
			return nil
		})

	lazy.Initialize(context.Background())
	if err := lazy.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if !closed {
		t.Error("closer did not run")
	}
	if lazy.IsInitialized() {
		t.Error("must be uninitialized after Close")
	}
}
