//go:build !(rp2040 || rp2350)

package platform

import (
	"image/color"
	"sync"

	"fmradio-go/hw"
)

// ----------------------------- GPIO (host) -----------------------------------

// FakePin implements hw.IRQPin for host builds. Set drives the level and runs
// the armed handler when the change matches the armed edge.
type FakePin struct {
	mu      sync.RWMutex
	number  int
	level   bool
	pull    hw.Pull
	irqEdge hw.Edge
	irqFunc func()
	arms    uint32 // SetIRQ calls
}

func (p *FakePin) ConfigureInput(pull hw.Pull) error {
	p.mu.Lock()
	p.pull = pull
	if pull == hw.PullUp {
		p.level = true
	}
	p.mu.Unlock()
	return nil
}

func (p *FakePin) Set(level bool) {
	p.mu.Lock()
	old := p.level
	p.level = level
	irq := p.irqFunc
	want := irqWanted(p.irqEdge, edgeFrom(old, level))
	p.mu.Unlock()
	if want && irq != nil {
		irq() // ISR-style callback
	}
}

func (p *FakePin) Get() bool {
	p.mu.RLock()
	v := p.level
	p.mu.RUnlock()
	return v
}

func (p *FakePin) Number() int { return p.number }

func (p *FakePin) SetIRQ(edge hw.Edge, handler func()) error {
	p.mu.Lock()
	p.irqEdge = edge
	p.irqFunc = handler
	p.arms++
	p.mu.Unlock()
	return nil
}

func (p *FakePin) ClearIRQ() error {
	p.mu.Lock()
	p.irqEdge = hw.EdgeNone
	p.irqFunc = nil
	p.mu.Unlock()
	return nil
}

// Armed reports the edge an interrupt is armed for and how many times
// SetIRQ has been called.
func (p *FakePin) Armed() (hw.Edge, uint32) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.irqFunc == nil {
		return hw.EdgeNone, p.arms
	}
	return p.irqEdge, p.arms
}

func edgeFrom(old, new bool) hw.Edge {
	switch {
	case !old && new:
		return hw.EdgeRising
	case old && !new:
		return hw.EdgeFalling
	default:
		return hw.EdgeNone
	}
}

func irqWanted(cfg, seen hw.Edge) bool {
	switch cfg {
	case hw.EdgeBoth:
		return seen == hw.EdgeRising || seen == hw.EdgeFalling
	default:
		return cfg != hw.EdgeNone && cfg == seen
	}
}

// HostPinFactory returns stable *FakePin instances per number.
type HostPinFactory struct {
	mu   sync.Mutex
	pins map[int]*FakePin
}

func (f *HostPinFactory) ByNumber(n int) (hw.IRQPin, bool) {
	p, ok := f.Get(n)
	if !ok {
		return nil, false
	}
	return p, true
}

// Get returns the *FakePin for n, creating it on first use.
func (f *HostPinFactory) Get(n int) (*FakePin, bool) {
	if n < 0 || n > 28 {
		return nil, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pins == nil {
		f.pins = make(map[int]*FakePin)
	}
	p, ok := f.pins[n]
	if !ok {
		p = &FakePin{number: n}
		f.pins[n] = p
	}
	return p, true
}

// ----------------------------- Screen (host) ---------------------------------

// MemScreen is a monochrome frame buffer standing in for the SSD1306.
type MemScreen struct {
	mu     sync.Mutex
	w, h   int16
	buf    []bool
	shown  []bool
	frames int
}

func NewMemScreen(w, h int16) *MemScreen {
	n := int(w) * int(h)
	return &MemScreen{w: w, h: h, buf: make([]bool, n), shown: make([]bool, n)}
}

func (s *MemScreen) Size() (int16, int16) { return s.w, s.h }

func (s *MemScreen) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return
	}
	s.mu.Lock()
	s.buf[int(y)*int(s.w)+int(x)] = c.R|c.G|c.B != 0
	s.mu.Unlock()
}

func (s *MemScreen) ClearBuffer() {
	s.mu.Lock()
	clear(s.buf)
	s.mu.Unlock()
}

func (s *MemScreen) Display() error {
	s.mu.Lock()
	copy(s.shown, s.buf)
	s.frames++
	s.mu.Unlock()
	return nil
}

// Frames reports how many frames have been shown.
func (s *MemScreen) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Lit counts shown pixels in the rectangle [x0,x1) x [y0,y1).
func (s *MemScreen) Lit(x0, y0, x1, y1 int16) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for y := y0; y < y1 && y < s.h; y++ {
		for x := x0; x < x1 && x < s.w; x++ {
			if s.shown[int(y)*int(s.w)+int(x)] {
				n++
			}
		}
	}
	return n
}

// ----------------------------- Flash (host) ----------------------------------

// MemFlash is erase-before-write memory: writes can only clear bits.
type MemFlash struct {
	mu     sync.Mutex
	data   []byte
	block  int64
	page   int64
	writes uint32
}

func NewMemFlash(blocks int, blockSize, pageSize int64) *MemFlash {
	f := &MemFlash{data: make([]byte, int64(blocks)*blockSize), block: blockSize, page: pageSize}
	for i := range f.data {
		f.data[i] = 0xFF
	}
	return f
}

func (f *MemFlash) Size() int64           { return int64(len(f.data)) }
func (f *MemFlash) EraseBlockSize() int64 { return f.block }
func (f *MemFlash) WriteBlockSize() int64 { return f.page }

// Writes reports how many WriteAt calls have succeeded.
func (f *MemFlash) Writes() uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}

func (f *MemFlash) ReadAt(p []byte, off int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if off < 0 || off+int64(len(p)) > int64(len(f.data)) {
		return 0, errOutOfRange
	}
	return copy(p, f.data[off:]), nil
}

func (f *MemFlash) WriteAt(p []byte, off int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if off < 0 || off+int64(len(p)) > int64(len(f.data)) {
		return 0, errOutOfRange
	}
	for i, b := range p {
		f.data[off+int64(i)] &= b
	}
	f.writes++
	return len(p), nil
}

func (f *MemFlash) EraseBlocks(start, n int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	lo, hi := start*f.block, (start+n)*f.block
	if lo < 0 || hi > int64(len(f.data)) {
		return errOutOfRange
	}
	for i := lo; i < hi; i++ {
		f.data[i] = 0xFF
	}
	return nil
}
