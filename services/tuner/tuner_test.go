package tuner

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fmradio-go/bus"
	"fmradio-go/drivers/rda5807m"
	"fmradio-go/drivers/rda5807m/rdasim"
	"fmradio-go/errcode"
	"fmradio-go/types"
)

// fakeChip records calls and serves scripted readings.
type fakeChip struct {
	mu    sync.Mutex
	calls []string
	freq  uint32
	rssi  uint8
	stc   bool
	fail  error
	vol   uint8
}

func (f *fakeChip) rec(s string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, s)
	return f.fail
}

func (f *fakeChip) Start() error                 { return f.rec("start") }
func (f *fakeChip) SetSeekThreshold(uint8) error { return f.rec("seekth") }
func (f *fakeChip) SetVolume(v uint8) error      { f.vol = v; return f.rec("volume") }
func (f *fakeChip) SeekUp(bool) error            { return f.rec("seek_up") }
func (f *fakeChip) SeekDown(bool) error          { return f.rec("seek_down") }
func (f *fakeChip) RSSI() (uint8, error)         { return f.rssi, f.err() }
func (f *fakeChip) Frequency() (uint32, error)   { return f.freq, f.err() }
func (f *fakeChip) Status() (rda5807m.Status, error) {
	return rda5807m.Status{SeekTuneComplete: f.stc}, f.err()
}

func (f *fakeChip) err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fail
}
func (f *fakeChip) SetFrequency(k uint32) error {
	if k < rda5807m.BandLowKHz || k > rda5807m.BandHighKHz {
		return rda5807m.ErrOutOfBand
	}
	f.freq = k
	return f.rec("frequency")
}

func (f *fakeChip) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func testConfig() types.TunerConfig {
	cfg := types.DefaultRadioConfig().Tuner
	cfg.ReadyDelayMs = 0
	cfg.PollMs = 2
	return cfg
}

func newCoordinator(chip Chip) (*Coordinator, *bus.Queue[types.OutputCommand], *bus.Queue[types.InputEvent]) {
	cmds := bus.NewQueue[types.OutputCommand](4)
	evs := bus.NewQueue[types.InputEvent](4)
	return New(chip, cmds, evs, testConfig()), cmds, evs
}

func drain(q *bus.Queue[types.InputEvent]) []types.InputEvent {
	var out []types.InputEvent
	for {
		ev, ok := q.TryRecv()
		if !ok {
			return out
		}
		out = append(out, ev)
	}
}

func TestStartupOrder(t *testing.T) {
	chip := &fakeChip{}
	c, _, _ := newCoordinator(chip)
	if err := c.Startup(context.Background()); err != nil {
		t.Fatalf("Startup: %v", err)
	}
	want := []string{"start", "seekth", "frequency", "volume"}
	got := chip.callLog()
	if len(got) != len(want) {
		t.Fatalf("calls = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("calls = %v, want %v", got, want)
		}
	}
	if chip.freq != 100_000 || chip.vol != 5 {
		t.Fatalf("initial freq=%d vol=%d", chip.freq, chip.vol)
	}
}

func TestFrequencyNarratedOnlyWhileSeeking(t *testing.T) {
	chip := &fakeChip{freq: 100_000}
	c, _, evs := newCoordinator(chip)

	_ = c.Poll()
	drain(evs)

	chip.freq = 100_100
	if err := c.Poll(); err != nil {
		t.Fatal(err)
	}
	got := drain(evs)
	if len(got) != 1 || got[0].Kind != types.EvChangeFrequency || got[0].KHz != 100_100 {
		t.Fatalf("events = %+v", got)
	}

	// Seek complete: differences are suppressed.
	chip.stc = true
	for _, f := range []uint32{100_200, 100_300} {
		chip.freq = f
		_ = c.Poll()
		if got := drain(evs); len(got) != 0 {
			t.Fatalf("stc=true emitted %+v", got)
		}
	}

	chip.stc = false
	_ = c.Poll()
	got = drain(evs)
	if len(got) != 1 || got[0].KHz != 100_300 {
		t.Fatalf("after stc cleared: %+v", got)
	}
}

func TestRSSIReportedBeyondDelta(t *testing.T) {
	chip := &fakeChip{stc: true}
	c, _, evs := newCoordinator(chip)

	steps := []struct {
		rssi uint8
		emit bool
	}{
		{5, false}, // |5-0| not > 5
		{6, true},
		{10, false},
		{12, true},
		{7, false},
		{6, true},
	}
	for i, s := range steps {
		chip.rssi = s.rssi
		_ = c.Poll()
		got := drain(evs)
		if s.emit != (len(got) == 1) {
			t.Fatalf("step %d rssi=%d: events %+v", i, s.rssi, got)
		}
		if s.emit && (got[0].Kind != types.EvChangeRSSI || got[0].RSSI != s.rssi) {
			t.Fatalf("step %d: %+v", i, got[0])
		}
	}
}

func TestOneCommandPerCycle(t *testing.T) {
	chip := &fakeChip{stc: true}
	c, cmds, _ := newCoordinator(chip)

	cmds.Send(types.SetVolume(7))
	cmds.Send(types.SeekUp())
	cmds.Send(types.SetFrequency(95_500))

	want := []string{"volume", "seek_up", "frequency"}
	for i, w := range want {
		if err := c.Poll(); err != nil {
			t.Fatal(err)
		}
		log := chip.callLog()
		if len(log) != i+1 || log[i] != w {
			t.Fatalf("after poll %d: calls = %v", i+1, log)
		}
		if cmds.Len() != len(want)-i-1 {
			t.Fatalf("after poll %d: %d commands left", i+1, cmds.Len())
		}
	}
	if _, applied := c.Counts(); applied != 3 {
		t.Fatalf("applied = %d", applied)
	}
}

func TestOutOfBandFrequencyIgnored(t *testing.T) {
	chip := &fakeChip{stc: true, freq: 87_000}
	c, cmds, _ := newCoordinator(chip)
	cmds.Send(types.SetFrequency(86_900))
	if err := c.Poll(); err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if chip.freq != 87_000 {
		t.Fatalf("freq = %d", chip.freq)
	}
}

func TestChipFaultEndsRun(t *testing.T) {
	chip := &fakeChip{}
	c, _, _ := newCoordinator(chip)
	done := make(chan error, 1)
	go func() { done <- c.Run(context.Background()) }()

	time.Sleep(10 * time.Millisecond)
	chip.mu.Lock()
	chip.fail = errors.New("nack")
	chip.mu.Unlock()

	select {
	case err := <-done:
		if errcode.Of(err) != errcode.IOError {
			t.Fatalf("Run = %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run kept going after chip fault")
	}
}

func TestSeekAgainstSimulatedChip(t *testing.T) {
	chip := rdasim.New(rdasim.DefaultStations)
	chip.SetSweepStep(1)
	dev := rda5807m.New(chip)
	dev.Configure(rda5807m.Config{ResetDelay: time.Microsecond})

	c, cmds, evs := newCoordinator(dev)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = c.Run(ctx) }()

	cmds.Send(types.SeekUp())

	var narrated []uint32
	deadline := time.After(2 * time.Second)
	for chip.FrequencyKHz() != 101_700 || chip.Seeking() {
		select {
		case <-deadline:
			t.Fatalf("seek never settled, chip at %d", chip.FrequencyKHz())
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	for _, ev := range drain(evs) {
		if ev.Kind == types.EvChangeFrequency {
			narrated = append(narrated, ev.KHz)
		}
	}
	if len(narrated) == 0 {
		t.Fatal("seek sweep was not narrated")
	}
	for i := 1; i < len(narrated); i++ {
		if narrated[i] <= narrated[i-1] {
			t.Fatalf("seek up narrated out of order: %v", narrated)
		}
	}
}
