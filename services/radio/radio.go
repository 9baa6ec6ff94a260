// Package radio wires the coordinators together: it owns the two queues,
// starts the button, encoder and tuner goroutines under a supervisor, and
// runs the UI state machine on the caller's goroutine.
package radio

import (
	"context"

	"fmradio-go/bus"
	"fmradio-go/drivers/rda5807m"
	"fmradio-go/platform"
	"fmradio-go/services/display"
	"fmradio-go/services/heartbeat"
	"fmradio-go/services/input"
	"fmradio-go/services/presets"
	"fmradio-go/services/tuner"
	"fmradio-go/services/ui"
	"fmradio-go/types"
	"fmradio-go/x/fmtx"
	"fmradio-go/x/timex"
)

// Component names reported to the heartbeat registry.
const (
	CompButton  = "button"
	CompEncoder = "encoder"
	CompTuner   = "tuner"
	CompUI      = "ui"
)

// Run starts everything and blocks in the UI loop. It returns when the UI
// stops: ctx cancelled, or a storage or render fault. A coordinator that
// fails stops alone and is reported down in reg.
func Run(ctx context.Context, cfg types.RadioConfig, res platform.Resources, reg *heartbeat.Registry) error {
	events := bus.NewQueue[types.InputEvent](16)
	cmds := bus.NewQueue[types.OutputCommand](8)

	store, err := presets.Open(res.Flash)
	if err != nil {
		return err
	}
	defer store.Close()

	chip := rda5807m.New(res.TunerBus)
	chip.Configure()

	supervise(ctx, reg, CompButton, input.NewDebouncer(res.Button, events, cfg.Input).Run)
	supervise(ctx, reg, CompEncoder, input.NewDecoder(res.EncoderClk, res.EncoderDat, events).Run)
	supervise(ctx, reg, CompTuner, tuner.New(chip, cmds, events, cfg.Tuner).Run)

	heartbeat.New(reg, timex.Ms(cfg.HeartbeatMs)).Start(ctx)

	m := ui.New(cmds, store, display.New(res.Screen))
	reg.Up(CompUI)
	fmtx.Printf("[radio] running on %s\n", cfg.Board)
	err = m.Run(ctx, events)
	reg.Down(CompUI, err)

	sent, high := events.Stats()
	fmtx.Printf("[radio] ui stopped after %d events (queued %d, deepest %d): %v\n",
		m.Handled(), sent, high, err)
	return err
}

// supervise runs fn on its own goroutine and records its fate in reg.
// Failed components are not restarted; a watchdog reset is the recovery.
func supervise(ctx context.Context, reg *heartbeat.Registry, name string, fn func(context.Context) error) {
	reg.Up(name)
	go func() {
		err := fn(ctx)
		reg.Down(name, err)
		if ctx.Err() == nil {
			fmtx.Printf("[radio] %s stopped: %v\n", name, err)
		}
	}()
}
