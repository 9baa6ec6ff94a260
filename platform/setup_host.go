//go:build !(rp2040 || rp2350)

package platform

import (
	"context"
	"errors"
	"time"

	"fmradio-go/drivers/rda5807m/rdasim"
	"fmradio-go/errcode"
	"fmradio-go/hw"
	"fmradio-go/types"
	"fmradio-go/x/fmtx"
)

const (
	hostFlashBlocks = 16
	hostBlockSize   = 4096
	hostPageSize    = 256
)

var errOutOfRange = errors.New("platform: flash access out of range")

// Host holds the simulated hardware behind Resources.
type Host struct {
	Pins   *HostPinFactory
	Tuner  *rdasim.Chip
	Screen *MemScreen
	Flash  *MemFlash
	Panel  *Panel
}

// lastHost is the simulation created by the most recent Setup.
var lastHost *Host

// Simulation returns the simulated hardware from the last Setup.
func Simulation() *Host { return lastHost }

// Setup builds simulated hardware: fake IRQ pins, an RDA5807M register
// model on the tuner bus, an in-memory screen and flash.
func Setup(cfg types.RadioConfig) (Resources, error) {
	h := &Host{
		Pins:   &HostPinFactory{},
		Tuner:  rdasim.New(rdasim.DefaultStations),
		Screen: NewMemScreen(cfg.Screen.Width, cfg.Screen.Height),
		Flash:  NewMemFlash(hostFlashBlocks, hostBlockSize, hostPageSize),
	}

	res, err := setupInputs(h.Pins, cfg.Pins)
	if err != nil {
		return Resources{}, err
	}
	if cfg.Tuner.Bus.ID == "" || cfg.Screen.Bus.ID == "" {
		return Resources{}, &errcode.E{C: errcode.UnknownBus, Op: "platform.setup"}
	}
	res.TunerBus = h.Tuner
	res.Screen = h.Screen
	res.Flash = h.Flash

	button, _ := h.Pins.Get(cfg.Pins.Button)
	clk, _ := h.Pins.Get(cfg.Pins.EncoderClk)
	dat, _ := h.Pins.Get(cfg.Pins.EncoderDat)
	h.Panel = &Panel{button: button, clk: clk, dat: dat}

	lastHost = h
	fmtx.Printf("[platform] host simulation: button=%d clk=%d dat=%d\n",
		cfg.Pins.Button, cfg.Pins.EncoderClk, cfg.Pins.EncoderDat)
	return res, nil
}

// Panel drives the simulated front-panel inputs the way a user would.
// Edges are only seen while a wait is armed, so each action first waits for
// the owning coordinator to arm a fresh interrupt, and returns only once the
// coordinator has armed again, which it does after sending its event.
type Panel struct {
	button *FakePin
	clk    *FakePin
	dat    *FakePin

	buttonNext uint32 // SetIRQ count the next press waits for
	clkNext    uint32
}

// Press holds the (active-low) button for hold.
func (p *Panel) Press(ctx context.Context, hold time.Duration) error {
	arms, err := waitArmed(ctx, p.button, hw.EdgeFalling, p.buttonNext)
	if err != nil {
		return err
	}
	p.button.Set(false)
	time.Sleep(hold)
	if arms, err = waitArmed(ctx, p.button, hw.EdgeRising, arms+1); err != nil {
		return err
	}
	p.button.Set(true)
	if arms, err = waitArmed(ctx, p.button, hw.EdgeFalling, arms+1); err != nil {
		return err
	}
	p.buttonNext = arms
	return nil
}

// Turn moves the encoder one detent: two rising clock edges, with the data
// line matching the clock on the first edge when turning up.
func (p *Panel) Turn(ctx context.Context, up bool) error {
	arms, err := waitArmed(ctx, p.clk, hw.EdgeRising, p.clkNext)
	if err != nil {
		return err
	}
	for i := 0; i < 2; i++ {
		p.dat.Set(up == (i == 0))
		p.clk.Set(false)
		p.clk.Set(true)
		if arms, err = waitArmed(ctx, p.clk, hw.EdgeRising, arms+1); err != nil {
			return err
		}
	}
	p.clkNext = arms
	return nil
}

// waitArmed waits until pin is armed for edge by the SetIRQ numbered at
// least min, and returns that number.
func waitArmed(ctx context.Context, pin *FakePin, edge hw.Edge, min uint32) (uint32, error) {
	for {
		e, arms := pin.Armed()
		if e == edge && arms >= min {
			return arms, nil
		}
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(time.Millisecond):
		}
	}
}
