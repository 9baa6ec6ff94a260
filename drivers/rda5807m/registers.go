package rda5807m

// Random-access I2C address. Registers are 16-bit, big-endian on the wire.
const Address = 0x11

// Register map (random-access mode).
const (
	regChipID = 0x00
	regCtrl   = 0x02 // power, mute, seek
	regChan   = 0x03 // channel, tune, band, spacing
	regR4     = 0x04 // de-emphasis, GPIO
	regVol    = 0x05 // seek threshold, volume
	regR6     = 0x06
	regR7     = 0x07
	regStatus = 0x0A // STC, SF, stereo, READCHAN
	regRSSI   = 0x0B

	firstShadow = regCtrl
	numShadow   = regR7 - regCtrl + 1
)

// regCtrl bits.
const (
	ctrlDHIZ      = 1 << 15 // audio output high-z disable
	ctrlDMUTE     = 1 << 14 // 1 = normal, 0 = mute
	ctrlMono      = 1 << 13
	ctrlBass      = 1 << 12
	ctrlSeekUp    = 1 << 9
	ctrlSeek      = 1 << 8 // self-clearing on the chip
	ctrlSkMode    = 1 << 7 // 1 = stop at band limit, 0 = wrap
	ctrlNewMethod = 1 << 2
	ctrlSoftReset = 1 << 1
	ctrlEnable    = 1 << 0
)

// regChan fields.
const (
	chanShift  = 6
	chanMask   = 0x3FF << chanShift
	chanTune   = 1 << 4 // self-clearing on the chip
	bandUSEU   = 0 << 2 // 87-108 MHz
	space100k  = 0
	channelKHz = 100
)

// regVol fields.
const (
	volIntMode   = 1 << 15
	volSeekShift = 8
	volSeekMask  = 0x7F << volSeekShift
	volLNAPort2  = 2 << 6
	volMask      = 0x0F
)

// regStatus bits.
const (
	stRDSR     = 1 << 15
	stSTC      = 1 << 14
	stSF       = 1 << 13
	stRDSS     = 1 << 12
	stBlkE     = 1 << 11
	stST       = 1 << 10
	stReadChan = 0x3FF
)

// regRSSI fields.
const (
	rssiShift = 9
	rssiMask  = 0x7F
)

// Band limits for bandUSEU.
const (
	BandLowKHz  = 87_000
	BandHighKHz = 108_000
)

const (
	MaxVolume        = 15
	MaxSeekThreshold = 127
)
