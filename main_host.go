//go:build !(rp2040 || rp2350)

package main

import (
	"context"
	"time"

	"fmradio-go/platform"
	"fmradio-go/x/fmtx"
)

const bootDelay = 0

// startDemo plays a short session on the simulated front panel: seek up,
// raise the volume by two, then store the station in the last preset.
func startDemo(ctx context.Context) {
	h := platform.Simulation()
	if h == nil {
		return
	}
	p := h.Panel
	turn := func(up bool, n int) func() error {
		return func() error {
			for i := 0; i < n; i++ {
				if err := p.Turn(ctx, up); err != nil {
					return err
				}
			}
			return nil
		}
	}
	press := func(hold time.Duration) func() error {
		return func() error { return p.Press(ctx, hold) }
	}
	steps := []struct {
		name string
		do   func() error
	}{
		{"cursor to seek up", turn(true, 2)},
		{"seek up", press(100 * time.Millisecond)},
		{"cursor to volume", turn(false, 3)},
		{"select volume", press(100 * time.Millisecond)},
		{"volume +2", turn(true, 2)},
		{"deselect volume", press(100 * time.Millisecond)},
		{"cursor to preset 4", turn(false, 1)},
		{"store preset 4", press(800 * time.Millisecond)},
	}

	go func() {
		for _, s := range steps {
			if err := s.do(); err != nil {
				fmtx.Printf("[demo] %s: %v\n", s.name, err)
				return
			}
			time.Sleep(300 * time.Millisecond)
			fmtx.Printf("[demo] %s: %d kHz vol=%d frames=%d\n",
				s.name, h.Tuner.FrequencyKHz(), h.Tuner.Volume(), h.Screen.Frames())
		}
	}()
}
