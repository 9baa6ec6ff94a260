package types

import "fmradio-go/x/strconvx"

// NumPresets is the number of persisted preset slots.
const NumPresets = 4

// MaxVolume is the loudest tuner volume step.
const MaxVolume = 15

// UIElement is a focus target on the UI ring:
//
//	SeekDown → FreqControl → SeekUp → Preset(0) … Preset(N-1) → VolumeControl → SeekDown
//
// The value is the element's position on the ring.
type UIElement uint8

const (
	SeekDownElement UIElement = iota
	FreqControlElement
	SeekUpElement
	firstPresetElement
	VolumeControlElement = firstPresetElement + NumPresets

	ringSize = int(VolumeControlElement) + 1
)

// RingSize is the number of elements on the UI ring.
func RingSize() int { return ringSize }

// Ring returns all elements in ring order, starting at SeekDownElement.
func Ring() []UIElement {
	out := make([]UIElement, ringSize)
	for i := range out {
		out[i] = UIElement(i)
	}
	return out
}

// PresetElement returns the ring element for preset slot i (0-based).
// Out-of-range indices are reduced modulo NumPresets.
func PresetElement(i int) UIElement {
	i %= NumPresets
	if i < 0 {
		i += NumPresets
	}
	return firstPresetElement + UIElement(i)
}

// PresetIndex reports the preset slot index when e is a preset element.
func (e UIElement) PresetIndex() (int, bool) {
	if e >= firstPresetElement && e < VolumeControlElement {
		return int(e - firstPresetElement), true
	}
	return 0, false
}

func (e UIElement) Next() UIElement {
	return UIElement((int(e) + 1) % ringSize)
}

func (e UIElement) Prev() UIElement {
	return UIElement((int(e) + ringSize - 1) % ringSize)
}

// Selectable reports whether a short press toggles selection on e.
func (e UIElement) Selectable() bool {
	return e == FreqControlElement || e == VolumeControlElement
}

func (e UIElement) String() string {
	switch e {
	case SeekDownElement:
		return "seek_down"
	case FreqControlElement:
		return "freq_control"
	case SeekUpElement:
		return "seek_up"
	case VolumeControlElement:
		return "volume_control"
	}
	if i, ok := e.PresetIndex(); ok {
		return "preset" + strconvx.Itoa(i)
	}
	return "invalid"
}

// PresetKey is the storage key for preset slot i: "preset1".."preset4".
func PresetKey(i int) string {
	return "preset" + strconvx.Itoa(i+1)
}
