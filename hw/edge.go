// hw/edge.go
package hw

import (
	"context"
	"sync/atomic"

	"fmradio-go/errcode"
)

// EdgePin turns a pin's interrupt into blocking edge waits.
//
// Each wait arms the interrupt for the requested edge, blocks until it fires,
// then disarms it, so only edges that occur during a wait are observed.
// There is no timeout; ctx exists so host builds can stop waiters.
type EdgePin struct {
	pin IRQPin
	// Written by ISR; MUST NOT block the ISR.
	fired chan struct{}

	drops uint32 // ISR edges that found a wakeup already pending
}

func NewEdgePin(pin IRQPin, pull Pull) (*EdgePin, error) {
	if pin == nil {
		return nil, errcode.UnknownPin
	}
	if err := pin.ConfigureInput(pull); err != nil {
		return nil, errcode.Wrap(errcode.IOError, "gpio.configure", err)
	}
	return &EdgePin{pin: pin, fired: make(chan struct{}, 1)}, nil
}

func (p *EdgePin) Number() int { return p.pin.Number() }

// Get returns the instantaneous line level (true = high).
func (p *EdgePin) Get() bool { return p.pin.Get() }

func (p *EdgePin) WaitForRisingEdge(ctx context.Context) error {
	return p.WaitForEdge(ctx, EdgeRising)
}

func (p *EdgePin) WaitForFallingEdge(ctx context.Context) error {
	return p.WaitForEdge(ctx, EdgeFalling)
}

// WaitForEdge blocks until the next edge of the given kind.
func (p *EdgePin) WaitForEdge(ctx context.Context, edge Edge) error {
	if edge == EdgeNone {
		return errcode.InvalidParams
	}
	// Discard a wakeup left over from an earlier, abandoned wait.
	select {
	case <-p.fired:
	default:
	}
	if err := p.pin.SetIRQ(edge, p.isr); err != nil {
		return errcode.Wrap(errcode.IOError, "gpio.set_irq", err)
	}

	var werr error
	select {
	case <-ctx.Done():
		werr = ctx.Err()
	case <-p.fired:
	}
	if err := p.pin.ClearIRQ(); err != nil && werr == nil {
		werr = errcode.Wrap(errcode.IOError, "gpio.clear_irq", err)
	}
	return werr
}

// ISRDrops reports edges that arrived while a wakeup was already pending.
func (p *EdgePin) ISRDrops() uint32 { return atomic.LoadUint32(&p.drops) }

func (p *EdgePin) isr() {
	select {
	case p.fired <- struct{}{}:
	default:
		atomic.AddUint32(&p.drops, 1) // protect ISR path
	}
}
