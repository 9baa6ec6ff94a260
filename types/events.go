package types

// ---- Producer → UI events ----

// EventKind tags an InputEvent.
type EventKind uint8

const (
	EvShortPress EventKind = iota
	EvLongPress
	EvScrollUp
	EvScrollDown
	EvChangeFrequency
	EvChangeStationInfo
	EvChangeRSSI

	numEventKinds
)

// EventKinds lists every event kind, in declaration order.
func EventKinds() []EventKind {
	out := make([]EventKind, 0, numEventKinds)
	for k := EventKind(0); k < numEventKinds; k++ {
		out = append(out, k)
	}
	return out
}

func (k EventKind) String() string {
	switch k {
	case EvShortPress:
		return "short_press"
	case EvLongPress:
		return "long_press"
	case EvScrollUp:
		return "scroll_up"
	case EvScrollDown:
		return "scroll_down"
	case EvChangeFrequency:
		return "change_frequency"
	case EvChangeStationInfo:
		return "change_station_info"
	case EvChangeRSSI:
		return "change_rssi"
	default:
		return "unknown"
	}
}

// InputEvent is the single shape carried on the event queue.
// Only the field matching Kind is meaningful.
type InputEvent struct {
	Kind EventKind
	KHz  uint32 // EvChangeFrequency
	RSSI uint8  // EvChangeRSSI
	Text string // EvChangeStationInfo
}

func ShortPress() InputEvent { return InputEvent{Kind: EvShortPress} }
func LongPress() InputEvent  { return InputEvent{Kind: EvLongPress} }
func ScrollUp() InputEvent   { return InputEvent{Kind: EvScrollUp} }
func ScrollDown() InputEvent { return InputEvent{Kind: EvScrollDown} }

func ChangeFrequency(khz uint32) InputEvent {
	return InputEvent{Kind: EvChangeFrequency, KHz: khz}
}

func ChangeStationInfo(text string) InputEvent {
	return InputEvent{Kind: EvChangeStationInfo, Text: text}
}

func ChangeRSSI(rssi uint8) InputEvent {
	return InputEvent{Kind: EvChangeRSSI, RSSI: rssi}
}

// ---- UI → tuner commands ----

type CommandKind uint8

const (
	CmdSetFrequency CommandKind = iota
	CmdSetVolume
	CmdSeekUp
	CmdSeekDown
)

func (k CommandKind) String() string {
	switch k {
	case CmdSetFrequency:
		return "set_frequency"
	case CmdSetVolume:
		return "set_volume"
	case CmdSeekUp:
		return "seek_up"
	case CmdSeekDown:
		return "seek_down"
	default:
		return "unknown"
	}
}

// OutputCommand is the single shape carried on the command queue.
type OutputCommand struct {
	Kind   CommandKind
	KHz    uint32 // CmdSetFrequency
	Volume uint8  // CmdSetVolume, 0..MaxVolume
}

func SetFrequency(khz uint32) OutputCommand {
	return OutputCommand{Kind: CmdSetFrequency, KHz: khz}
}

func SetVolume(v uint8) OutputCommand {
	return OutputCommand{Kind: CmdSetVolume, Volume: v}
}

func SeekUp() OutputCommand   { return OutputCommand{Kind: CmdSeekUp} }
func SeekDown() OutputCommand { return OutputCommand{Kind: CmdSeekDown} }
