// Package config selects the board setup for this build and fills in
// defaults. Setups are Go values compiled into the firmware; there is no
// runtime reconfiguration.
package config

import (
	"fmradio-go/drivers/rda5807m"
	"fmradio-go/errcode"
	"fmradio-go/types"
	"fmradio-go/x/mathx"
	"fmradio-go/x/strconvx"
)

// SetupLookup resolves a board name to its setup. Tests may replace it.
var SetupLookup = func(board string) (types.RadioConfig, bool) {
	c, ok := setups[board]
	return c, ok
}

// Selected is the board chosen for this build.
func Selected() string { return selectedBoard }

// Load returns the named setup merged over the defaults and validated.
// An empty name selects the build's board.
func Load(board string) (types.RadioConfig, error) {
	if board == "" {
		board = selectedBoard
	}
	over, ok := SetupLookup(board)
	if !ok {
		return types.RadioConfig{}, &errcode.E{C: errcode.InvalidConfig, Op: "config.load", Msg: "unknown board " + board}
	}
	cfg := Merge(types.DefaultRadioConfig(), over)
	cfg.Board = board
	if err := Validate(cfg); err != nil {
		return types.RadioConfig{}, err
	}
	return cfg, nil
}

// Merge returns base with every non-zero field of over applied.
func Merge(base, over types.RadioConfig) types.RadioConfig {
	out := base
	out.Board = or(over.Board, base.Board)

	if over.Pins != (types.PinPlan{}) {
		out.Pins = over.Pins
	}

	t, bt := over.Tuner, base.Tuner
	out.Tuner = types.TunerConfig{
		Bus:           mergeI2C(bt.Bus, t.Bus),
		ReadyDelayMs:  or(t.ReadyDelayMs, bt.ReadyDelayMs),
		PollMs:        or(t.PollMs, bt.PollMs),
		SeekThreshold: or(t.SeekThreshold, bt.SeekThreshold),
		InitialKHz:    or(t.InitialKHz, bt.InitialKHz),
		InitialVolume: or(t.InitialVolume, bt.InitialVolume),
		RSSIDelta:     or(t.RSSIDelta, bt.RSSIDelta),
	}

	out.Input.BounceMs = or(over.Input.BounceMs, base.Input.BounceMs)
	out.Input.LongPressMs = or(over.Input.LongPressMs, base.Input.LongPressMs)

	s, bs := over.Screen, base.Screen
	out.Screen = types.ScreenConfig{
		Bus:     mergeI2C(bs.Bus, s.Bus),
		Address: or(s.Address, bs.Address),
		Width:   or(s.Width, bs.Width),
		Height:  or(s.Height, bs.Height),
	}

	if over.Log.UART != (types.UARTPlan{}) {
		out.Log.UART = over.Log.UART
	}
	out.HeartbeatMs = or(over.HeartbeatMs, base.HeartbeatMs)
	return out
}

func mergeI2C(base, over types.I2CPlan) types.I2CPlan {
	if over.ID == "" {
		return base
	}
	over.Hz = or(over.Hz, base.Hz)
	return over
}

func or[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}

// Validate checks a merged config.
func Validate(c types.RadioConfig) error {
	p := c.Pins
	if p.Button < 0 || p.EncoderClk < 0 || p.EncoderDat < 0 {
		return invalid("negative pin number")
	}
	if p.Button == p.EncoderClk || p.Button == p.EncoderDat || p.EncoderClk == p.EncoderDat {
		return invalid("input pins must be distinct")
	}
	if c.Input.BounceMs == 0 || c.Input.BounceMs >= c.Input.LongPressMs {
		return invalid("need 0 < bounce_ms < long_press_ms")
	}

	t := c.Tuner
	if !validBus(t.Bus.ID) || !validBus(c.Screen.Bus.ID) {
		return invalid("unknown i2c bus")
	}
	if t.Bus.ID == c.Screen.Bus.ID {
		return invalid("tuner needs its own i2c bus")
	}
	if t.PollMs == 0 {
		return invalid("poll_ms must be > 0")
	}
	if t.SeekThreshold > rda5807m.MaxSeekThreshold {
		return invalid("seek threshold " + strconvx.Itoa(int(t.SeekThreshold)) + " > 127")
	}
	if !mathx.Between(t.InitialKHz, rda5807m.BandLowKHz, rda5807m.BandHighKHz) {
		return invalid("initial frequency outside 87-108 MHz")
	}
	if t.InitialVolume > types.MaxVolume {
		return invalid("initial volume > 15")
	}

	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return invalid("screen size")
	}
	if id := c.Log.UART.ID; id != "" && id != "uart0" && id != "uart1" {
		return invalid("unknown uart " + id)
	}
	if c.HeartbeatMs == 0 {
		return invalid("heartbeat_ms must be > 0")
	}
	return nil
}

func validBus(id string) bool { return id == "i2c0" || id == "i2c1" }

func invalid(msg string) error {
	return &errcode.E{C: errcode.InvalidConfig, Op: "config.validate", Msg: msg}
}
