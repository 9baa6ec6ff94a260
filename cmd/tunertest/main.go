// cmd/tunertest/main.go
//
// Tuner bring-up: runs the startup sequence on the board's tuner bus, seeks
// up once and prints the chip status on every poll.
package main

import (
	"context"
	"time"

	"fmradio-go/drivers/rda5807m"
	"fmradio-go/platform"
	"fmradio-go/services/config"
	"fmradio-go/services/tuner"
	"fmradio-go/types"
	"fmradio-go/x/fmtx"
	"fmradio-go/x/timex"
)

// ---------- Configuration ----------

const (
	bootDelay = 1500 * time.Millisecond

	// Polls to print after the seek; 0 = forever
	pollsToRun = 0
)

type discard struct{}

func (discard) Send(types.InputEvent) {}

type noCommands struct{}

func (noCommands) TryRecv() (types.OutputCommand, bool) { return types.OutputCommand{}, false }

func main() {
	time.Sleep(bootDelay)
	println("[tunertest] boot")

	cfg, err := config.Load("")
	if err != nil {
		fail("config", err)
	}
	res, err := platform.Setup(cfg)
	if err != nil {
		fail("setup", err)
	}

	chip := rda5807m.New(res.TunerBus)
	chip.Configure()

	ctx := context.Background()
	if err := tuner.New(chip, noCommands{}, discard{}, cfg.Tuner).Startup(ctx); err != nil {
		fail("startup", err)
	}
	id, err := chip.ChipID()
	if err != nil {
		fail("chip id", err)
	}
	fmtx.Printf("[tunertest] chip id 0x%04x, tuned %d kHz\n", id, cfg.Tuner.InitialKHz)

	if err := chip.SeekUp(true); err != nil {
		fail("seek", err)
	}

	tick := time.NewTicker(timex.Ms(cfg.Tuner.PollMs))
	defer tick.Stop()
	for n := 1; pollsToRun == 0 || n <= pollsToRun; n++ {
		<-tick.C
		st, err := chip.Status()
		if err != nil {
			fail("status", err)
		}
		rssi, err := chip.RSSI()
		if err != nil {
			fail("rssi", err)
		}
		fmtx.Printf("[tunertest] #%d %d kHz rssi=%d stc=%t sf=%t stereo=%t\n",
			n, st.FrequencyKHz(), rssi, st.SeekTuneComplete, st.SeekFail, st.Stereo)
	}
}

func fail(stage string, err error) {
	fmtx.Printf("[tunertest] %s: %v\n", stage, err)
	for {
		time.Sleep(time.Hour)
	}
}
