package radio

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fmradio-go/platform"
	"fmradio-go/services/config"
	"fmradio-go/services/heartbeat"
	"fmradio-go/services/presets"
	"fmradio-go/types"
)

type rig struct {
	host   *platform.Host
	reg    *heartbeat.Registry
	cancel context.CancelFunc
	done   chan error
	ctx    context.Context

	once sync.Once
	err  error
}

func startRig(t *testing.T) *rig {
	t.Helper()
	cfg, err := config.Load("host")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	cfg.Tuner.PollMs = 5
	res, err := platform.Setup(cfg)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	r := &rig{host: platform.Simulation(), reg: heartbeat.NewRegistry(), done: make(chan error, 1)}
	r.ctx, r.cancel = context.WithTimeout(context.Background(), 5*time.Second)
	go func() { r.done <- Run(r.ctx, cfg, res, r.reg) }()
	t.Cleanup(func() { r.stop() })
	r.waitFor(t, "tuner startup", func() bool { return r.host.Tuner.FrequencyKHz() == 100_000 })
	return r
}

// stop cancels the radio and returns what Run returned.
func (r *rig) stop() error {
	r.once.Do(func() {
		r.cancel()
		r.err = <-r.done
	})
	return r.err
}

func (r *rig) waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	for !cond() {
		select {
		case <-r.ctx.Done():
			t.Fatalf("timed out waiting for %s", what)
		case <-time.After(2 * time.Millisecond):
		}
	}
}

func (r *rig) turn(t *testing.T, up bool, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := r.host.Panel.Turn(r.ctx, up); err != nil {
			t.Fatalf("turn: %v", err)
		}
	}
}

func (r *rig) press(t *testing.T, hold time.Duration) {
	t.Helper()
	if err := r.host.Panel.Press(r.ctx, hold); err != nil {
		t.Fatalf("press: %v", err)
	}
}

func TestSeekUpFromFrontPanel(t *testing.T) {
	r := startRig(t)
	r.turn(t, true, 2) // SeekDown -> FreqControl -> SeekUp
	r.press(t, 100*time.Millisecond)
	r.waitFor(t, "seek to next station", func() bool {
		return r.host.Tuner.FrequencyKHz() == 101_700 && !r.host.Tuner.Seeking()
	})
}

func TestVolumeFromFrontPanel(t *testing.T) {
	r := startRig(t)
	r.turn(t, false, 1) // SeekDown -> VolumeControl
	r.press(t, 100*time.Millisecond)
	r.turn(t, true, 3)
	r.waitFor(t, "volume 8", func() bool { return r.host.Tuner.Volume() == types.DefaultVolume+3 })
}

func TestPresetStoredInFlash(t *testing.T) {
	r := startRig(t)
	r.turn(t, true, 4) // -> Preset(1)
	writes := r.host.Flash.Writes()
	r.press(t, 700*time.Millisecond)
	r.waitFor(t, "preset write", func() bool { return r.host.Flash.Writes() > writes })
	if err := r.stop(); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run = %v", err)
	}

	s, err := presets.Open(r.host.Flash)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if v, ok, err := s.GetU32("preset2"); err != nil || !ok || v != 100_000 {
		t.Fatalf("preset2 = %d, %v, %v", v, ok, err)
	}
	if _, ok, _ := s.GetU32("preset1"); ok {
		t.Fatal("preset1 written")
	}
}

func TestTunerFaultReportedDown(t *testing.T) {
	r := startRig(t)
	r.host.Tuner.FailWith(errors.New("bus stuck"))
	r.waitFor(t, "tuner down", func() bool {
		for _, c := range r.reg.Snapshot() {
			if c.Name == CompTuner && c.Link == types.LinkDown {
				return c.Error == "io_error"
			}
		}
		return false
	})
	// The UI keeps running.
	frames := r.host.Screen.Frames()
	r.turn(t, true, 1)
	r.waitFor(t, "ui redraw", func() bool { return r.host.Screen.Frames() > frames })
}
