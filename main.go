package main

import (
	"context"
	"time"

	"fmradio-go/platform"
	"fmradio-go/services/config"
	"fmradio-go/services/heartbeat"
	"fmradio-go/services/radio"
	"fmradio-go/x/fmtx"
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(bootDelay)
	println("[main] boot")

	cfg, err := config.Load("")
	if err != nil {
		halt("config", err)
	}
	res, err := platform.Setup(cfg)
	if err != nil {
		halt("setup", err)
	}

	ctx := context.Background()
	reg := heartbeat.NewRegistry()
	startDemo(ctx)
	halt("radio", radio.Run(ctx, cfg, res, reg))
}

// halt parks the program after a fatal error. The watchdog or a power cycle
// is the recovery.
func halt(stage string, err error) {
	fmtx.Printf("[main] %s failed: %v\n", stage, err)
	for {
		time.Sleep(time.Hour)
	}
}
