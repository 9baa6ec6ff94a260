//go:build rp2040 || rp2350

package platform

import (
	"machine"

	"fmradio-go/errcode"
	"fmradio-go/types"
	"fmradio-go/x/fmtx"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers/ssd1306"
)

// Setup configures the board peripherals named by cfg. The preset record
// lives in the last erase block of the program flash.
func Setup(cfg types.RadioConfig) (Resources, error) {
	if u := cfg.Log.UART; u.ID != "" {
		if err := setupLog(u); err != nil {
			return Resources{}, err
		}
	}

	res, err := setupInputs(rp2PinFactory{}, cfg.Pins)
	if err != nil {
		return Resources{}, err
	}

	tb, err := setupI2C(cfg.Tuner.Bus)
	if err != nil {
		return Resources{}, err
	}
	res.TunerBus = tb

	sb, err := setupI2C(cfg.Screen.Bus)
	if err != nil {
		return Resources{}, err
	}
	screen := ssd1306.NewI2C(sb)
	screen.Configure(ssd1306.Config{
		Address:  cfg.Screen.Address,
		Width:    cfg.Screen.Width,
		Height:   cfg.Screen.Height,
		VccState: ssd1306.SWITCHCAPVCC,
	})
	screen.ClearDisplay()
	res.Screen = screen

	res.Flash = machine.Flash

	fmtx.Printf("[platform] rp2: tuner=%s screen=%s flash=%d\n",
		cfg.Tuner.Bus.ID, cfg.Screen.Bus.ID, uint32(machine.Flash.Size()))
	return res, nil
}

func setupI2C(p types.I2CPlan) (*machine.I2C, error) {
	bus, ok := i2cByID(p.ID)
	if !ok {
		return nil, &errcode.E{C: errcode.UnknownBus, Op: "platform.i2c", Msg: p.ID}
	}
	sda := machine.Pin(p.SDA)
	scl := machine.Pin(p.SCL)
	sda.Configure(machine.PinConfig{Mode: machine.PinI2C})
	scl.Configure(machine.PinConfig{Mode: machine.PinI2C})
	if err := bus.Configure(machine.I2CConfig{
		SCL:       scl,
		SDA:       sda,
		Frequency: p.Hz,
	}); err != nil {
		return nil, errcode.Wrap(errcode.IOError, "platform.i2c."+p.ID, err)
	}
	return bus, nil
}

func setupLog(u types.UARTPlan) error {
	var port *uartx.UART
	switch u.ID {
	case "uart0":
		port = uartx.UART0
	case "uart1":
		port = uartx.UART1
	default:
		return &errcode.E{C: errcode.UnknownBus, Op: "platform.uart", Msg: u.ID}
	}
	// Defaults inside uartx apply if zero.
	if err := port.Configure(uartx.UARTConfig{
		BaudRate: u.Baud,
		TX:       machine.Pin(u.TX),
		RX:       machine.Pin(u.RX),
	}); err != nil {
		return errcode.Wrap(errcode.IOError, "platform.uart."+u.ID, err)
	}
	fmtx.DefaultOutput = port
	return nil
}
