// hw/edge_test.go
package hw

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeIRQPin implements IRQPin with edge detection on Set.
type fakeIRQPin struct {
	mu      sync.Mutex
	level   bool
	edge    Edge
	handler func()
	number  int
	irqErr  error
	pull    Pull
}

func (p *fakeIRQPin) ConfigureInput(pull Pull) error { p.pull = pull; return nil }
func (p *fakeIRQPin) Number() int                    { return p.number }
func (p *fakeIRQPin) Get() bool                      { p.mu.Lock(); defer p.mu.Unlock(); return p.level }
func (p *fakeIRQPin) SetIRQ(e Edge, h func()) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.irqErr != nil {
		return p.irqErr
	}
	p.edge, p.handler = e, h
	return nil
}
func (p *fakeIRQPin) ClearIRQ() error {
	p.mu.Lock()
	p.edge, p.handler = EdgeNone, nil
	p.mu.Unlock()
	return nil
}
func (p *fakeIRQPin) armed() bool { p.mu.Lock(); defer p.mu.Unlock(); return p.handler != nil }

func (p *fakeIRQPin) set(level bool) {
	p.mu.Lock()
	old := p.level
	p.level = level
	var fire func()
	switch {
	case !old && level && (p.edge == EdgeRising || p.edge == EdgeBoth):
		fire = p.handler
	case old && !level && (p.edge == EdgeFalling || p.edge == EdgeBoth):
		fire = p.handler
	}
	p.mu.Unlock()
	if fire != nil {
		fire()
	}
}

func waitArmed(t *testing.T, p *fakeIRQPin) {
	t.Helper()
	deadline := time.Now().Add(200 * time.Millisecond)
	for !p.armed() {
		if time.Now().After(deadline) {
			t.Fatal("interrupt never armed")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestWaitForFallingEdge(t *testing.T) {
	pin := &fakeIRQPin{number: 17, level: true}
	ep, err := NewEdgePin(pin, PullUp)
	if err != nil {
		t.Fatalf("NewEdgePin: %v", err)
	}
	if pin.pull != PullUp {
		t.Fatalf("pull not applied: %v", pin.pull)
	}

	done := make(chan error, 1)
	go func() { done <- ep.WaitForFallingEdge(context.Background()) }()
	waitArmed(t, pin)

	pin.set(true) // no edge
	select {
	case <-done:
		t.Fatal("returned without a falling edge")
	case <-time.After(10 * time.Millisecond):
	}

	pin.set(false)
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("wait: %v", err)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for falling edge")
	}
	if pin.armed() {
		t.Fatal("interrupt left armed after wait")
	}
}

func TestEdgesOutsideWaitAreNotObserved(t *testing.T) {
	pin := &fakeIRQPin{number: 18}
	ep, _ := NewEdgePin(pin, PullNone)

	pin.set(true) // not armed: ignored
	pin.set(false)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Millisecond)
	defer cancel()
	if err := ep.WaitForRisingEdge(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline, got %v", err)
	}
}

func TestSetIRQFailureIsIOError(t *testing.T) {
	pin := &fakeIRQPin{number: 3, irqErr: errors.New("no irq")}
	ep, _ := NewEdgePin(pin, PullNone)
	err := ep.WaitForRisingEdge(context.Background())
	if err == nil || err.Error() != "gpio.set_irq: io_error: no irq" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNilPin(t *testing.T) {
	if _, err := NewEdgePin(nil, PullNone); err == nil {
		t.Fatal("expected error for nil pin")
	}
}
