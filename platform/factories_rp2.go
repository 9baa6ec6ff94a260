//go:build rp2040 || rp2350

package platform

import (
	"machine"

	"fmradio-go/hw"
)

// ---- GPIO implementation (includes IRQ support) ----

type rp2PinFactory struct{}

func (rp2PinFactory) ByNumber(n int) (hw.IRQPin, bool) {
	// Constrain to RP2's user GPIOs (GP0..GP28).
	if n < 0 || n > 28 {
		return nil, false
	}
	pin := &rp2Pin{p: machine.Pin(n), n: n}
	pin.irq.set = pin.setInterrupt
	return pin, true
}

type rp2Pin struct {
	p   machine.Pin
	n   int
	irq pinIRQ[machine.PinChange]
}

func (r *rp2Pin) ConfigureInput(pull hw.Pull) error {
	var mode machine.PinMode
	switch pull {
	case hw.PullUp:
		mode = machine.PinInputPullup
	case hw.PullDown:
		mode = machine.PinInputPulldown
	default:
		mode = machine.PinInput
	}
	r.p.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (r *rp2Pin) Get() bool   { return r.p.Get() }
func (r *rp2Pin) Number() int { return r.n }

func (r *rp2Pin) SetIRQ(edge hw.Edge, handler func()) error {
	return r.irq.arm(toPinChange(edge), handler)
}

func (r *rp2Pin) ClearIRQ() error { return r.irq.clear() }

// setInterrupt adapts machine.Pin.SetInterrupt; a nil handler disarms the
// edges in change.
func (r *rp2Pin) setInterrupt(change machine.PinChange, handler func()) error {
	if handler == nil {
		return r.p.SetInterrupt(change, nil)
	}
	return r.p.SetInterrupt(change, func(machine.Pin) { handler() })
}

func toPinChange(e hw.Edge) machine.PinChange {
	switch e {
	case hw.EdgeRising:
		return machine.PinRising
	case hw.EdgeFalling:
		return machine.PinFalling
	case hw.EdgeBoth:
		return machine.PinToggle
	default:
		// Zero value is a no-op/disabled.
		var zero machine.PinChange
		return zero
	}
}

// ---- I²C ----

func i2cByID(id string) (*machine.I2C, bool) {
	switch id {
	case "i2c0":
		return machine.I2C0, true
	case "i2c1":
		return machine.I2C1, true
	}
	return nil, false
}
