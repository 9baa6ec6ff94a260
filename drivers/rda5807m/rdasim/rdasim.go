// Package rdasim simulates an RDA5807M on an I2C bus at register level.
//
// It implements drivers.I2C so the real driver runs against it on host
// builds. Seeks advance a few channels per status read and stop on the first
// station whose RSSI reaches the programmed seek threshold.
package rdasim

import (
	"errors"
	"sync"
)

const (
	Address = 0x11
	ChipID  = 0x5804

	bandLowKHz = 87_000
	channelKHz = 100
	maxChannel = (108_000 - bandLowKHz) / channelKHz
)

var ErrNack = errors.New("rdasim: nack")

// Station is a carrier the simulated antenna can receive.
type Station struct {
	KHz  uint32
	RSSI uint8
}

// DefaultStations is the band used by the host build.
var DefaultStations = []Station{
	{KHz: 89_100, RSSI: 48},
	{KHz: 95_500, RSSI: 61},
	{KHz: 100_000, RSSI: 40},
	{KHz: 101_700, RSSI: 44},
	{KHz: 104_300, RSSI: 55},
}

type Chip struct {
	mu   sync.Mutex
	regs [0x10]uint16

	stations  []Station
	noise     uint8
	sweepStep int

	seeking bool
	swept   int
	fail    error
	txs     int
}

// New returns a powered-down chip receiving stations.
func New(stations []Station) *Chip {
	c := &Chip{stations: stations, noise: 12, sweepStep: 3}
	c.reset()
	return c
}

// SetSweepStep sets how many channels a seek advances per status read.
func (c *Chip) SetSweepStep(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n < 1 {
		n = 1
	}
	c.sweepStep = n
}

// FailWith makes every following transaction return err (nil restores).
func (c *Chip) FailWith(err error) {
	c.mu.Lock()
	c.fail = err
	c.mu.Unlock()
}

// Tx implements drivers.I2C.
func (c *Chip) Tx(addr uint16, w, r []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.txs++
	if c.fail != nil {
		return c.fail
	}
	if addr != Address || len(w) == 0 {
		return ErrNack
	}
	reg := int(w[0])
	if len(r) > 0 {
		for i := 0; i+1 < len(r); i += 2 {
			v := c.readLocked((reg + i/2) & 0x0F)
			r[i], r[i+1] = byte(v>>8), byte(v)
		}
		return nil
	}
	data := w[1:]
	for i := 0; i+1 < len(data); i += 2 {
		c.writeLocked((reg+i/2)&0x0F, uint16(data[i])<<8|uint16(data[i+1]))
	}
	return nil
}

// Register returns the raw value last written to (or held by) reg.
func (c *Chip) Register(reg int) uint16 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.regs[reg&0x0F]
}

// FrequencyKHz returns the tuned channel in kHz.
func (c *Chip) FrequencyKHz() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return channelKHzOf(c.channel())
}

func (c *Chip) Volume() uint8 { return uint8(c.Register(0x05) & 0x0F) }

func (c *Chip) Seeking() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seeking
}

func (c *Chip) Transactions() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.txs
}

// caller holds lock
func (c *Chip) reset() {
	c.regs = [0x10]uint16{}
	c.regs[0x00] = ChipID
	c.seeking = false
}

func (c *Chip) channel() uint16 { return c.regs[0x0A] & 0x3FF }

func (c *Chip) setChannel(ch uint16) {
	c.regs[0x0A] = c.regs[0x0A]&^0x3FF | ch
}

func (c *Chip) writeLocked(reg int, v uint16) {
	switch reg {
	case 0x02:
		if v&0x0002 != 0 { // soft reset
			c.reset()
			c.regs[0x02] = v &^ 0x0002
			return
		}
		c.regs[0x02] = v
		if v&0x0100 != 0 && !c.seeking {
			c.seeking = true
			c.swept = 0
			c.regs[0x0A] &^= 0x6000 // STC, SF
		} else if v&0x0100 == 0 {
			c.seeking = false
		}
	case 0x03:
		c.regs[0x03] = v &^ 0x0010
		if v&0x0010 != 0 {
			c.seeking = false
			c.regs[0x02] &^= 0x0100
			ch := v >> 6 & 0x3FF
			if ch > maxChannel {
				ch = maxChannel
			}
			c.setChannel(ch)
			c.regs[0x0A] = c.regs[0x0A]&^0x2000 | 0x4000
		}
	case 0x00, 0x0A, 0x0B:
		// read-only
	default:
		c.regs[reg] = v
	}
}

func (c *Chip) readLocked(reg int) uint16 {
	switch reg {
	case 0x0A:
		if c.seeking {
			c.stepSeek()
		}
		v := c.regs[0x0A] &^ 0x0400
		if c.stationAt(c.channel()) != nil {
			v |= 0x0400 // stereo
		}
		return v
	case 0x0B:
		return uint16(c.rssiAt(c.channel())&0x7F) << 9
	default:
		return c.regs[reg]
	}
}

func (c *Chip) stepSeek() {
	up := c.regs[0x02]&0x0200 != 0
	wrap := c.regs[0x02]&0x0080 == 0
	th := uint8(c.regs[0x05] >> 8 & 0x7F)

	for i := 0; i < c.sweepStep; i++ {
		ch := int(c.channel())
		if up {
			ch++
		} else {
			ch--
		}
		if ch < 0 || ch > maxChannel {
			if !wrap {
				c.finishSeek(true)
				return
			}
			if ch < 0 {
				ch = maxChannel
			} else {
				ch = 0
			}
		}
		c.setChannel(uint16(ch))
		c.swept++
		if s := c.stationAt(uint16(ch)); s != nil && s.RSSI >= th {
			c.finishSeek(false)
			return
		}
		if c.swept > maxChannel {
			c.finishSeek(true)
			return
		}
	}
}

func (c *Chip) finishSeek(failed bool) {
	c.seeking = false
	c.regs[0x02] &^= 0x0100
	c.regs[0x0A] |= 0x4000
	if failed {
		c.regs[0x0A] |= 0x2000
	}
}

func (c *Chip) stationAt(ch uint16) *Station {
	khz := channelKHzOf(ch)
	for i := range c.stations {
		if c.stations[i].KHz == khz {
			return &c.stations[i]
		}
	}
	return nil
}

func (c *Chip) rssiAt(ch uint16) uint8 {
	if s := c.stationAt(ch); s != nil {
		return s.RSSI
	}
	return c.noise
}

func channelKHzOf(ch uint16) uint32 { return bandLowKHz + uint32(ch)*channelKHz }
