// Package input turns the front-panel button and rotary encoder into
// InputEvents on the UI event queue.
//
// Each coordinator owns its pins for its whole life and blocks on edge
// interrupts with no timeout. A failed edge wait ends Run with an
// errcode.IOError; cancelling ctx ends it with ctx.Err().
package input

import (
	"context"

	"fmradio-go/errcode"
	"fmradio-go/types"
)

// Sink receives produced events. *bus.Queue[types.InputEvent] satisfies it.
type Sink interface {
	Send(types.InputEvent)
}

// Level is an instantaneous digital read.
type Level interface {
	Get() bool
}

// EdgeWaiter blocks until the requested edge. *hw.EdgePin satisfies it.
type EdgeWaiter interface {
	Level
	WaitForFallingEdge(ctx context.Context) error
	WaitForRisingEdge(ctx context.Context) error
}

func waitFault(ctx context.Context, op string, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return errcode.Wrap(errcode.IOError, op, err)
}
