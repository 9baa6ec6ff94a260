package types

// Radio configuration chosen by a board setup (see services/config).
// Zero-valued fields are replaced by DefaultRadioConfig values.

type RadioConfig struct {
	Board  string
	Pins   PinPlan
	Tuner  TunerConfig
	Input  InputConfig
	Screen ScreenConfig
	Log    LogConfig

	HeartbeatMs uint32 // liveness report period
}

// PinPlan holds GPIO numbers for the inputs (board numbering).
type PinPlan struct {
	Button     int
	EncoderClk int
	EncoderDat int
	PullUp     bool // enable internal pull-ups on all three inputs
}

// I2CPlan specifies one I²C controller's wiring and clock.
type I2CPlan struct {
	ID  string // "i2c0", "i2c1"
	SDA int
	SCL int
	Hz  uint32
}

type TunerConfig struct {
	Bus           I2CPlan
	ReadyDelayMs  uint32 // wait after Start before configuring
	PollMs        uint32 // status poll period
	SeekThreshold uint8  // 0..127
	InitialKHz    uint32
	InitialVolume uint8
	RSSIDelta     uint8 // report RSSI when it moves by more than this
}

type InputConfig struct {
	BounceMs    uint32 // presses shorter than this are contact bounce
	LongPressMs uint32 // presses at least this long are long presses
}

type ScreenConfig struct {
	Bus     I2CPlan
	Address uint16
	Width   int16
	Height  int16
}

type LogConfig struct {
	UART UARTPlan
}

// UARTPlan specifies the UART used for log output on MCU builds.
type UARTPlan struct {
	ID   string // "uart0", "uart1"; empty disables UART logging
	TX   int
	RX   int
	Baud uint32
}

// DefaultRadioConfig returns the values used by the reference appliance.
func DefaultRadioConfig() RadioConfig {
	return RadioConfig{
		Board: "default",
		Pins: PinPlan{
			Button:     17,
			EncoderClk: 18,
			EncoderDat: 19,
			PullUp:     true,
		},
		Tuner: TunerConfig{
			Bus:           I2CPlan{ID: "i2c0", SDA: 4, SCL: 5, Hz: 100_000},
			ReadyDelayMs:  100,
			PollMs:        100,
			SeekThreshold: 35,
			InitialKHz:    DefaultFreqKHz,
			InitialVolume: DefaultVolume,
			RSSIDelta:     5,
		},
		Input: InputConfig{
			BounceMs:    50,
			LongPressMs: 600,
		},
		Screen: ScreenConfig{
			Bus:     I2CPlan{ID: "i2c1", SDA: 6, SCL: 7, Hz: 400_000},
			Address: 0x3C,
			Width:   128,
			Height:  64,
		},
		HeartbeatMs: 5000,
	}
}
