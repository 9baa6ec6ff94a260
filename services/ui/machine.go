// Package ui implements the UI state machine: the single consumer of the
// event queue, the only owner of AppState and the only producer of tuner
// commands.
package ui

import (
	"context"

	"fmradio-go/errcode"
	"fmradio-go/types"
	"fmradio-go/x/fmtx"
)

// Presets is the persistent preset store.
type Presets interface {
	GetU32(name string) (uint32, bool, error)
	SetU32(name string, v uint32) error
}

// Renderer draws one frame from a state snapshot.
type Renderer interface {
	Render(s types.AppState) error
}

// Commands is the producer side of the command queue.
type Commands interface {
	Send(types.OutputCommand)
}

// Events is the consumer side of the event queue.
type Events interface {
	Recv(ctx context.Context) (types.InputEvent, error)
}

type Machine struct {
	state   types.AppState
	cmds    Commands
	presets Presets
	render  Renderer

	handled uint32
}

func New(cmds Commands, presets Presets, render Renderer) *Machine {
	return &Machine{
		state:   types.NewAppState(),
		cmds:    cmds,
		presets: presets,
		render:  render,
	}
}

// State returns a copy of the current state.
func (m *Machine) State() types.AppState { return m.state }

// Handled reports how many events have been processed.
func (m *Machine) Handled() uint32 { return m.handled }

// Run draws the initial frame, then handles events until ctx is done or a
// storage or render fault occurs.
func (m *Machine) Run(ctx context.Context, events Events) error {
	if err := m.draw(); err != nil {
		return err
	}
	for {
		ev, err := events.Recv(ctx)
		if err != nil {
			return err
		}
		if err := m.Handle(ev); err != nil {
			fmtx.Printf("[ui] stopped on %s: %v\n", ev.Kind.String(), err)
			return err
		}
	}
}

// Handle applies one event and redraws.
func (m *Machine) Handle(ev types.InputEvent) error {
	if err := m.Dispatch(ev); err != nil {
		return err
	}
	m.handled++
	return m.draw()
}

func (m *Machine) draw() error {
	if m.render == nil {
		return nil
	}
	return errcode.Wrap(errcode.RenderFault, "ui.render", m.render.Render(m.state))
}

// Dispatch applies the transition for ev without redrawing.
// Rules are tried in order; the first that matches wins. A combination no
// rule matches panics with errcode.Invariant.
func (m *Machine) Dispatch(ev types.InputEvent) error {
	s := &m.state
	at, sel := s.CursorAt, s.CursorSelected

	// Navigation while nothing is selected.
	if !sel {
		switch ev.Kind {
		case types.EvScrollDown:
			s.CursorAt = at.Prev()
			return nil
		case types.EvScrollUp:
			s.CursorAt = at.Next()
			return nil
		}
	}

	// Radio reports apply in every state.
	switch ev.Kind {
	case types.EvChangeFrequency:
		s.FreqKHz = ev.KHz
		return nil
	case types.EvChangeRSSI:
		s.RSSI = ev.RSSI
		return nil
	case types.EvChangeStationInfo:
		fmtx.Printf("[ui] station info not yet supported: %q\n", ev.Text)
		return nil
	}

	slot, isPreset := at.PresetIndex()
	switch {
	case at == types.SeekDownElement && !sel && ev.Kind == types.EvShortPress:
		m.cmds.Send(types.SeekDown())

	case at == types.SeekUpElement && !sel && ev.Kind == types.EvShortPress:
		m.cmds.Send(types.SeekUp())

	case at.Selectable() && ev.Kind == types.EvShortPress:
		s.CursorSelected = !sel

	case at == types.FreqControlElement && sel && ev.Kind == types.EvScrollDown:
		s.FreqKHz -= 100
		m.cmds.Send(types.SetFrequency(s.FreqKHz))

	case at == types.FreqControlElement && sel && ev.Kind == types.EvScrollUp:
		s.FreqKHz += 100
		m.cmds.Send(types.SetFrequency(s.FreqKHz))

	case isPreset && !sel && ev.Kind == types.EvShortPress:
		m.recallPreset(slot)

	case isPreset && !sel && ev.Kind == types.EvLongPress:
		return m.storePreset(slot)

	case at == types.VolumeControlElement && sel && ev.Kind == types.EvScrollDown:
		if s.Volume > 0 {
			s.Volume--
			m.cmds.Send(types.SetVolume(s.Volume))
		}

	case at == types.VolumeControlElement && sel && ev.Kind == types.EvScrollUp:
		if s.Volume < types.MaxVolume {
			s.Volume++
			m.cmds.Send(types.SetVolume(s.Volume))
		}

	case ev.Kind == types.EvLongPress:
		// no-op

	default:
		panic(&errcode.E{
			C:   errcode.Invariant,
			Op:  "ui.dispatch",
			Msg: at.String() + "/" + selText(sel) + "/" + ev.Kind.String(),
		})
	}
	return nil
}

// An unreadable slot is treated as empty.
func (m *Machine) recallPreset(slot int) {
	key := types.PresetKey(slot)
	khz, ok, err := m.presets.GetU32(key)
	if err != nil {
		fmtx.Printf("[ui] %s unreadable, treated as empty: %v\n", key, err)
		return
	}
	if !ok {
		return
	}
	m.state.FreqKHz = khz
	m.cmds.Send(types.SetFrequency(khz))
}

func (m *Machine) storePreset(slot int) error {
	key := types.PresetKey(slot)
	if err := m.presets.SetU32(key, m.state.FreqKHz); err != nil {
		return errcode.Wrap(errcode.StorageFault, "ui.store_preset", err)
	}
	fmtx.Printf("[ui] %s = %d kHz\n", key, m.state.FreqKHz)
	return nil
}

func selText(sel bool) string {
	if sel {
		return "selected"
	}
	return "unselected"
}
