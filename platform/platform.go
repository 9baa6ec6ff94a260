// Package platform brings up the board for the radio: input pins with edge
// interrupts, the tuner's I2C bus, the screen, preset flash and log output.
//
// Setup has one implementation per build: rp2040/rp2350 boards use machine
// peripherals; every other GOOS runs against simulated hardware.
package platform

import (
	"fmradio-go/errcode"
	"fmradio-go/hw"
	"fmradio-go/services/display"
	"fmradio-go/types"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfs"
)

// Resources is everything the radio core owns after Setup. Each field is
// handed to exactly one component.
type Resources struct {
	Button     *hw.EdgePin
	EncoderClk *hw.EdgePin
	EncoderDat hw.GPIOPin

	TunerBus drivers.I2C
	Screen   display.Screen

	Flash tinyfs.BlockDevice // whole device holds the preset filesystem
}

// setupInputs configures the three front-panel inputs from pins.
func setupInputs(pins hw.PinFactory, plan types.PinPlan) (res Resources, err error) {
	pull := hw.PullNone
	if plan.PullUp {
		pull = hw.PullUp
	}

	button, ok := pins.ByNumber(plan.Button)
	if !ok {
		return res, &errcode.E{C: errcode.UnknownPin, Op: "platform.button"}
	}
	clk, ok := pins.ByNumber(plan.EncoderClk)
	if !ok {
		return res, &errcode.E{C: errcode.UnknownPin, Op: "platform.encoder_clk"}
	}
	dat, ok := pins.ByNumber(plan.EncoderDat)
	if !ok {
		return res, &errcode.E{C: errcode.UnknownPin, Op: "platform.encoder_dat"}
	}

	if res.Button, err = hw.NewEdgePin(button, pull); err != nil {
		return res, err
	}
	if res.EncoderClk, err = hw.NewEdgePin(clk, pull); err != nil {
		return res, err
	}
	if err = dat.ConfigureInput(pull); err != nil {
		return res, errcode.Wrap(errcode.IOError, "platform.encoder_dat", err)
	}
	res.EncoderDat = dat
	return res, nil
}
