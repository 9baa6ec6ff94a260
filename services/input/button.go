package input

import (
	"context"
	"time"

	"fmradio-go/types"
	"fmradio-go/x/fmtx"
	"fmradio-go/x/timex"
)

// Classify maps a press duration to an event.
// d < bounce is contact bounce (ok == false); bounce <= d < long is a short
// press; d >= long is a long press.
func Classify(d, bounce, long time.Duration) (ev types.InputEvent, ok bool) {
	switch {
	case d < bounce:
		return types.InputEvent{}, false
	case d < long:
		return types.ShortPress(), true
	default:
		return types.LongPress(), true
	}
}

// Debouncer emits at most one press event per press-release cycle of an
// active-low button.
type Debouncer struct {
	pin    EdgeWaiter
	out    Sink
	bounce time.Duration
	long   time.Duration
	now    func() time.Time

	presses uint32
	bounces uint32
}

func NewDebouncer(pin EdgeWaiter, out Sink, cfg types.InputConfig) *Debouncer {
	return &Debouncer{
		pin:    pin,
		out:    out,
		bounce: timex.Ms(cfg.BounceMs),
		long:   timex.Ms(cfg.LongPressMs),
		now:    time.Now,
	}
}

// Run waits for press (falling) then release (rising) forever.
func (d *Debouncer) Run(ctx context.Context) error {
	fmtx.Printf("[input] button: bounce=%dms long=%dms\n",
		uint32(d.bounce/time.Millisecond), uint32(d.long/time.Millisecond))
	for {
		if err := d.pin.WaitForFallingEdge(ctx); err != nil {
			return waitFault(ctx, "button.wait_press", err)
		}
		start := d.now()
		if err := d.pin.WaitForRisingEdge(ctx); err != nil {
			return waitFault(ctx, "button.wait_release", err)
		}
		d.release(d.now().Sub(start))
	}
}

func (d *Debouncer) release(held time.Duration) {
	ev, ok := Classify(held, d.bounce, d.long)
	if !ok {
		d.bounces++
		return
	}
	d.presses++
	d.out.Send(ev)
}

// Counts reports emitted presses and discarded bounces.
func (d *Debouncer) Counts() (presses, bounces uint32) { return d.presses, d.bounces }
