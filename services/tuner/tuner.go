// Package tuner runs the tuner coordinator: the only goroutine that talks to
// the tuner chip. It applies queued OutputCommands, one per poll cycle, and
// reports RSSI and seek progress as InputEvents.
package tuner

import (
	"context"
	"errors"
	"time"

	"fmradio-go/drivers/rda5807m"
	"fmradio-go/errcode"
	"fmradio-go/types"
	"fmradio-go/x/fmtx"
	"fmradio-go/x/mathx"
	"fmradio-go/x/timex"
)

// Chip is the driver surface the coordinator needs. *rda5807m.Device
// satisfies it.
type Chip interface {
	Start() error
	SetFrequency(kHz uint32) error
	SetVolume(v uint8) error
	SetSeekThreshold(th uint8) error
	SeekUp(wrap bool) error
	SeekDown(wrap bool) error
	Frequency() (uint32, error)
	RSSI() (uint8, error)
	Status() (rda5807m.Status, error)
}

// Commands is the consumer side of the command queue.
type Commands interface {
	TryRecv() (types.OutputCommand, bool)
}

// Events is the producer side of the UI event queue.
type Events interface {
	Send(types.InputEvent)
}

type Coordinator struct {
	chip Chip
	cmds Commands
	out  Events
	cfg  types.TunerConfig

	sleep func(ctx context.Context, d time.Duration) error

	lastFreq uint32
	lastRSSI uint8

	cycles  uint32
	applied uint32
}

func New(chip Chip, cmds Commands, out Events, cfg types.TunerConfig) *Coordinator {
	return &Coordinator{chip: chip, cmds: cmds, out: out, cfg: cfg, sleep: sleepCtx}
}

// Startup powers the chip and applies the initial settings, in order.
func (c *Coordinator) Startup(ctx context.Context) error {
	if err := c.chip.Start(); err != nil {
		return errcode.Wrap(errcode.IOError, "tuner.start", err)
	}
	if err := c.sleep(ctx, timex.Ms(c.cfg.ReadyDelayMs)); err != nil {
		return err
	}
	if err := c.chip.SetSeekThreshold(c.cfg.SeekThreshold); err != nil {
		return errcode.Wrap(errcode.IOError, "tuner.set_seek_threshold", err)
	}
	if err := c.chip.SetFrequency(c.cfg.InitialKHz); err != nil {
		return errcode.Wrap(errcode.IOError, "tuner.set_frequency", err)
	}
	if err := c.chip.SetVolume(c.cfg.InitialVolume); err != nil {
		return errcode.Wrap(errcode.IOError, "tuner.set_volume", err)
	}
	fmtx.Printf("[tuner] started: %d kHz vol=%d seekth=%d\n",
		c.cfg.InitialKHz, c.cfg.InitialVolume, c.cfg.SeekThreshold)
	return nil
}

// Run performs Startup then polls every PollMs until ctx is done or the chip
// fails. There is no retry: any chip error ends Run.
func (c *Coordinator) Run(ctx context.Context) error {
	if err := c.Startup(ctx); err != nil {
		return err
	}
	period := timex.Ms(c.cfg.PollMs)
	if period <= 0 {
		period = 100 * time.Millisecond
	}
	tick := time.NewTicker(period)
	defer tick.Stop()
	for {
		if err := c.Poll(); err != nil {
			fmtx.Printf("[tuner] stopped after %d cycles: %v\n", c.cycles, err)
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
		}
	}
}

// Poll runs one cycle: read status, apply at most one command, report RSSI
// movement, report frequency changes while a seek is in flight.
func (c *Coordinator) Poll() error {
	c.cycles++

	st, err := c.chip.Status()
	if err != nil {
		return errcode.Wrap(errcode.IOError, "tuner.status", err)
	}

	if cmd, ok := c.cmds.TryRecv(); ok {
		if err := c.apply(cmd); err != nil {
			return err
		}
	}

	rssi, err := c.chip.RSSI()
	if err != nil {
		return errcode.Wrap(errcode.IOError, "tuner.rssi", err)
	}
	if mathx.Abs(int(rssi)-int(c.lastRSSI)) > int(c.cfg.RSSIDelta) {
		c.out.Send(types.ChangeRSSI(rssi))
		c.lastRSSI = rssi
	}

	freq, err := c.chip.Frequency()
	if err != nil {
		return errcode.Wrap(errcode.IOError, "tuner.frequency", err)
	}
	// Completed seeks and tunes are not narrated.
	if freq != c.lastFreq && !st.SeekTuneComplete {
		c.out.Send(types.ChangeFrequency(freq))
		c.lastFreq = freq
	}
	return nil
}

func (c *Coordinator) apply(cmd types.OutputCommand) error {
	c.applied++
	switch cmd.Kind {
	case types.CmdSetFrequency:
		err := c.chip.SetFrequency(cmd.KHz)
		if errors.Is(err, rda5807m.ErrOutOfBand) {
			fmtx.Printf("[tuner] %d kHz outside band, ignored\n", cmd.KHz)
			return nil
		}
		return errcode.Wrap(errcode.IOError, "tuner.set_frequency", err)
	case types.CmdSetVolume:
		return errcode.Wrap(errcode.IOError, "tuner.set_volume", c.chip.SetVolume(cmd.Volume))
	case types.CmdSeekUp:
		return errcode.Wrap(errcode.IOError, "tuner.seek_up", c.chip.SeekUp(true))
	case types.CmdSeekDown:
		return errcode.Wrap(errcode.IOError, "tuner.seek_down", c.chip.SeekDown(true))
	default:
		return &errcode.E{C: errcode.Invariant, Op: "tuner.apply", Msg: cmd.Kind.String()}
	}
}

// Counts reports poll cycles run and commands applied.
func (c *Coordinator) Counts() (cycles, applied uint32) { return c.cycles, c.applied }

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
