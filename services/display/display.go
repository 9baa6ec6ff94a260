// Package display renders AppState snapshots on a small monochrome panel.
//
// Layout (128x64):
//
//	 100.0 MHz            large frequency
//	 RSSI [#####   ]  VOL 5
//	 station text
//	 << FRQ >> P1 P2 P3 P4 VOL   ring cells, cursor underlined,
//	                             selected control inverted
package display

import (
	"image/color"

	"fmradio-go/types"
	"fmradio-go/x/mathx"
	"fmradio-go/x/strconvx"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinydraw"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
)

var (
	on  = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	off = color.RGBA{A: 0xFF}
)

// Screen is a buffered display. *ssd1306.Device satisfies it.
type Screen interface {
	drivers.Displayer
	ClearBuffer()
}

// Geometry, in pixels.
const (
	freqBaseline = 14
	meterTop     = 20
	meterHeight  = 6
	meterX       = 22
	meterWidth   = 64
	infoBaseline = 40
	cellHeight   = 11
	maxRSSI      = 127
)

type Renderer struct {
	screen Screen
	big    tinyfont.Fonter
	small  tinyfont.Fonter
	w, h   int16

	frames uint32
}

func New(screen Screen) *Renderer {
	w, h := screen.Size()
	return &Renderer{
		screen: screen,
		big:    &freemono.Bold9pt7b,
		small:  &tinyfont.TomThumb,
		w:      w,
		h:      h,
	}
}

// Frames reports how many frames have been pushed to the panel.
func (r *Renderer) Frames() uint32 { return r.frames }

// Render draws s and pushes the frame.
func (r *Renderer) Render(s types.AppState) error {
	r.screen.ClearBuffer()

	freq := FormatFrequency(s.FreqKHz)
	_, fw := tinyfont.LineWidth(r.big, freq)
	tinyfont.WriteLine(r.screen, r.big, (r.w-int16(fw))/2, freqBaseline, freq, on)

	r.meter(s.RSSI)
	tinyfont.WriteLine(r.screen, r.small, r.w-24, meterTop+meterHeight-1, "VOL "+strconvx.Itoa(int(s.Volume)), on)

	if s.StationInfo != "" {
		tinyfont.WriteLine(r.screen, r.small, 0, infoBaseline, s.StationInfo, on)
	}

	for _, e := range types.Ring() {
		r.cell(e, s)
	}

	if err := r.screen.Display(); err != nil {
		return err
	}
	r.frames++
	return nil
}

func (r *Renderer) meter(rssi uint8) {
	tinyfont.WriteLine(r.screen, r.small, 0, meterTop+meterHeight-1, "RSSI", on)
	_ = tinydraw.Rectangle(r.screen, meterX, meterTop, meterWidth, meterHeight, on)
	fill := int16(mathx.Clamp(int(rssi), 0, maxRSSI) * (meterWidth - 2) / maxRSSI)
	if fill > 0 {
		_ = tinydraw.FilledRectangle(r.screen, meterX+1, meterTop+1, fill, meterHeight-2, on)
	}
}

func (r *Renderer) cell(e types.UIElement, s types.AppState) {
	x, y, w, h := CellRect(e, r.w, r.h)
	fg := on
	if e == s.CursorAt && s.CursorSelected {
		_ = tinydraw.FilledRectangle(r.screen, x, y, w, h, on)
		fg = off
	}
	label := Label(e)
	_, lw := tinyfont.LineWidth(r.small, label)
	tinyfont.WriteLine(r.screen, r.small, x+(w-int16(lw))/2, y+h-3, label, fg)
	if e == s.CursorAt && !s.CursorSelected {
		tinydraw.Line(r.screen, x+1, y+h-1, x+w-2, y+h-1, on)
	}
}

// CellRect returns the bounding box of e's cell on a w x h panel. Cells share
// the bottom row equally in ring order.
func CellRect(e types.UIElement, w, h int16) (x, y, cw, ch int16) {
	cw = w / int16(types.RingSize())
	return int16(e) * cw, h - cellHeight, cw, cellHeight
}

// Label is the short caption drawn in e's cell.
func Label(e types.UIElement) string {
	switch e {
	case types.SeekDownElement:
		return "<<"
	case types.FreqControlElement:
		return "FRQ"
	case types.SeekUpElement:
		return ">>"
	case types.VolumeControlElement:
		return "VOL"
	}
	if i, ok := e.PresetIndex(); ok {
		return "P" + strconvx.Itoa(i+1)
	}
	return "?"
}

// FormatFrequency renders kHz as "MHz" with one decimal: 95500 -> "95.5 MHz".
func FormatFrequency(kHz uint32) string {
	return strconvx.FormatUint(uint64(kHz/1000), 10) + "." +
		strconvx.FormatUint(uint64(kHz%1000/100), 10) + " MHz"
}
