// Package rda5807m provides a driver for the RDA5807M single-chip FM tuner
// using its random-access I2C interface.
//
// The chip's write-only control registers (0x02..0x07) are kept in a local
// shadow so each setter is a single read-modify-write of one register without
// a bus read. Status, frequency and RSSI are always read from the chip.
//
// Only the 87-108 MHz band with 100 kHz spacing is supported.
package rda5807m

import (
	"errors"
	"time"

	"tinygo.org/x/drivers"
)

// Errors returned by the driver.
var (
	ErrOutOfBand        = errors.New("rda5807m: frequency out of band")
	ErrInvalidVolume    = errors.New("rda5807m: volume out of range")
	ErrInvalidThreshold = errors.New("rda5807m: seek threshold out of range")
	ErrNotStarted       = errors.New("rda5807m: not started")
)

// Config controls non-hardware behaviour. All fields are optional.
type Config struct {
	// Address defaults to 0x11 if zero.
	Address uint16
	// ResetDelay is the pause between soft reset and enable. Default 5 ms.
	ResetDelay time.Duration
}

// Status is a decoded copy of the status register.
type Status struct {
	RDSReady         bool
	SeekTuneComplete bool // STC
	SeekFail         bool
	RDSSynced        bool
	BlockE           bool
	Stereo           bool
	Channel          uint16
}

// FrequencyKHz converts the status channel to kHz.
func (s Status) FrequencyKHz() uint32 { return channelToKHz(s.Channel) }

// Device wraps an I2C connection to an RDA5807M.
type Device struct {
	bus     drivers.I2C
	Address uint16

	cfg     Config
	started bool
	shadow  [numShadow]uint16
	w       [3]byte
	r       [2]byte
}

// New creates a Device. The I2C bus must already be configured.
// It does not touch the chip.
func New(bus drivers.I2C) *Device {
	return &Device{bus: bus, Address: Address}
}

// Configure applies optional config. It does not touch the chip.
func (d *Device) Configure(cfgs ...Config) {
	c := Config{}
	if len(cfgs) > 0 {
		c = cfgs[0]
	}
	if c.Address != 0 {
		d.Address = c.Address
	}
	if c.ResetDelay <= 0 {
		c.ResetDelay = 5 * time.Millisecond
	}
	d.cfg = c
}

// Start soft-resets the chip, powers it up unmuted with volume 0 and selects
// the 87-108 MHz band at 100 kHz spacing. Callers should allow the chip
// ~100 ms before tuning.
func (d *Device) Start() error {
	if d.cfg.ResetDelay == 0 {
		d.Configure()
	}
	d.shadow = [numShadow]uint16{}

	d.setShadow(regCtrl, ctrlSoftReset|ctrlEnable)
	if err := d.writeReg(regCtrl); err != nil {
		return err
	}
	time.Sleep(d.cfg.ResetDelay)

	d.setShadow(regCtrl, ctrlDHIZ|ctrlDMUTE|ctrlNewMethod|ctrlEnable)
	d.setShadow(regChan, bandUSEU|space100k)
	d.setShadow(regVol, volIntMode|8<<volSeekShift|volLNAPort2)
	for reg := byte(regCtrl); reg <= regVol; reg++ {
		if err := d.writeReg(reg); err != nil {
			return err
		}
	}
	d.started = true
	return nil
}

// ChipID reads the identification register (0x58xx for RDA5807M).
func (d *Device) ChipID() (uint16, error) {
	return d.readReg(regChipID)
}

// SetFrequency tunes to kHz inside the band. Off-grid values are truncated to
// the channel below. A tune cancels any seek in progress.
func (d *Device) SetFrequency(kHz uint32) error {
	if !d.started {
		return ErrNotStarted
	}
	if kHz < BandLowKHz || kHz > BandHighKHz {
		return ErrOutOfBand
	}
	ch := uint16((kHz - BandLowKHz) / channelKHz)
	v := d.getShadow(regChan)&^(chanMask|chanTune) | ch<<chanShift&chanMask
	d.setShadow(regChan, v|chanTune)
	err := d.writeReg(regChan)
	d.setShadow(regChan, v) // TUNE self-clears
	return err
}

// Frequency returns the channel the chip is currently on, in kHz.
// During a seek this follows the sweep.
func (d *Device) Frequency() (uint32, error) {
	st, err := d.Status()
	if err != nil {
		return 0, err
	}
	return st.FrequencyKHz(), nil
}

// SetVolume sets the DAC volume 0..15.
func (d *Device) SetVolume(v uint8) error {
	if v > MaxVolume {
		return ErrInvalidVolume
	}
	return d.update(regVol, volMask, uint16(v))
}

// SetSeekThreshold sets the RSSI threshold (0..127) a seek stops at.
func (d *Device) SetSeekThreshold(th uint8) error {
	if th > MaxSeekThreshold {
		return ErrInvalidThreshold
	}
	return d.update(regVol, volSeekMask, uint16(th)<<volSeekShift)
}

// SeekUp starts a seek towards higher frequencies. With wrap the seek
// continues from the bottom of the band instead of stopping at the top.
func (d *Device) SeekUp(wrap bool) error { return d.seek(true, wrap) }

// SeekDown is SeekUp in the other direction.
func (d *Device) SeekDown(wrap bool) error { return d.seek(false, wrap) }

func (d *Device) seek(up, wrap bool) error {
	if !d.started {
		return ErrNotStarted
	}
	v := d.getShadow(regCtrl) &^ (ctrlSeekUp | ctrlSkMode)
	if up {
		v |= ctrlSeekUp
	}
	if !wrap {
		v |= ctrlSkMode
	}
	d.setShadow(regCtrl, v|ctrlSeek)
	err := d.writeReg(regCtrl)
	d.setShadow(regCtrl, v) // SEEK self-clears
	return err
}

// RSSI returns the received signal strength (0..127, log scale).
func (d *Device) RSSI() (uint8, error) {
	v, err := d.readReg(regRSSI)
	if err != nil {
		return 0, err
	}
	return uint8(v >> rssiShift & rssiMask), nil
}

// Status reads and decodes the status register.
func (d *Device) Status() (Status, error) {
	v, err := d.readReg(regStatus)
	if err != nil {
		return Status{}, err
	}
	return Status{
		RDSReady:         v&stRDSR != 0,
		SeekTuneComplete: v&stSTC != 0,
		SeekFail:         v&stSF != 0,
		RDSSynced:        v&stRDSS != 0,
		BlockE:           v&stBlkE != 0,
		Stereo:           v&stST != 0,
		Channel:          v & stReadChan,
	}, nil
}

func (d *Device) SetMute(on bool) error { return d.setCtrlBit(ctrlDMUTE, !on) }

func (d *Device) SetBassBoost(on bool) error { return d.setCtrlBit(ctrlBass, on) }

func (d *Device) SetMono(on bool) error { return d.setCtrlBit(ctrlMono, on) }

func (d *Device) setCtrlBit(bit uint16, set bool) error {
	var v uint16
	if set {
		v = bit
	}
	return d.update(regCtrl, bit, v)
}

func (d *Device) update(reg byte, mask, val uint16) error {
	if !d.started {
		return ErrNotStarted
	}
	d.setShadow(reg, d.getShadow(reg)&^mask|val&mask)
	return d.writeReg(reg)
}

func channelToKHz(ch uint16) uint32 {
	return BandLowKHz + uint32(ch)*channelKHz
}

// Register access (big-endian: HIGH then LOW).

func (d *Device) getShadow(reg byte) uint16    { return d.shadow[reg-firstShadow] }
func (d *Device) setShadow(reg byte, v uint16) { d.shadow[reg-firstShadow] = v }

func (d *Device) writeReg(reg byte) error {
	v := d.getShadow(reg)
	d.w[0] = reg
	d.w[1] = byte(v >> 8)
	d.w[2] = byte(v)
	return d.bus.Tx(d.Address, d.w[:3], nil)
}

func (d *Device) readReg(reg byte) (uint16, error) {
	d.w[0] = reg
	if err := d.bus.Tx(d.Address, d.w[:1], d.r[:2]); err != nil {
		return 0, err
	}
	return uint16(d.r[0])<<8 | uint16(d.r[1]), nil
}
