package config

import "fmradio-go/types"

// Board setups. Zero fields take types.DefaultRadioConfig values.
var setups = map[string]types.RadioConfig{
	// Reference wiring: button and encoder on GP17-19, tuner on I2C0
	// (GP4/GP5), SSD1306 on I2C1 (GP6/GP7), logs on UART0 (GP0/GP1).
	"pico": {
		Log: types.LogConfig{UART: types.UARTPlan{ID: "uart0", TX: 0, RX: 1, Baud: 115_200}},
	},

	// Same wiring with a faster poll for bench work against a signal
	// generator.
	"pico_bench": {
		Tuner:       types.TunerConfig{PollMs: 50, RSSIDelta: 2},
		Log:         types.LogConfig{UART: types.UARTPlan{ID: "uart0", TX: 0, RX: 1, Baud: 115_200}},
		HeartbeatMs: 1000,
	},

	// Host simulation: simulated pins and tuner, logs on stdout.
	"host": {
		Tuner: types.TunerConfig{ReadyDelayMs: 10},
	},
}
