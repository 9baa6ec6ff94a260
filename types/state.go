package types

// Power-on defaults shared by the UI state and the tuner startup sequence.
const (
	DefaultFreqKHz uint32 = 100_000
	DefaultVolume  uint8  = 5
)

// AppState is the UI-owned application state. Only the UI state machine
// mutates it; renderers receive copies.
//
// CursorSelected may be true only while CursorAt is FreqControlElement or
// VolumeControlElement.
type AppState struct {
	FreqKHz     uint32
	Volume      uint8 // 0..MaxVolume
	StationInfo string
	RSSI        uint8

	CursorAt       UIElement
	CursorSelected bool
}

// NewAppState returns the power-on state.
func NewAppState() AppState {
	return AppState{
		FreqKHz:  DefaultFreqKHz,
		Volume:   DefaultVolume,
		CursorAt: SeekDownElement,
	}
}
