package input

import (
	"context"

	"fmradio-go/types"
	"fmradio-go/x/fmtx"
)

// Decoder turns rising clock edges of a quadrature encoder into scroll
// events. A detent produces two rising clock edges; only the first of each
// pair carries a reliable direction, so every second edge is discarded.
type Decoder struct {
	clk    EdgeWaiter
	data   Level
	out    Sink
	second bool
}

func NewDecoder(clk EdgeWaiter, data Level, out Sink) *Decoder {
	return &Decoder{clk: clk, data: data, out: out}
}

func (e *Decoder) Run(ctx context.Context) error {
	fmtx.Printf("[input] encoder ready\n")
	for {
		if err := e.clk.WaitForRisingEdge(ctx); err != nil {
			return waitFault(ctx, "encoder.wait_clk", err)
		}
		e.edge(e.clk.Get(), e.data.Get())
	}
}

// edge handles one rising clock edge with levels sampled at that instant.
func (e *Decoder) edge(clk, data bool) {
	if !e.second {
		if data == clk {
			e.out.Send(types.ScrollUp())
		} else {
			e.out.Send(types.ScrollDown())
		}
	}
	e.second = !e.second
}
