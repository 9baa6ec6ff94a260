package presets

import (
	"errors"
	"os"
	"testing"

	"fmradio-go/errcode"
	"fmradio-go/types"
)

const (
	testBlock = 4096
	testPage  = 256
)

// memFlash is erase-before-write memory: writes can only clear bits.
type memFlash struct {
	data     []byte
	writeErr error
}

func newMemFlash(blocks int) *memFlash {
	f := &memFlash{data: make([]byte, testBlock*blocks)}
	for i := range f.data {
		f.data[i] = 0xFF
	}
	return f
}

func (f *memFlash) ReadAt(p []byte, off int64) (int, error) { return copy(p, f.data[off:]), nil }
func (f *memFlash) Size() int64                              { return int64(len(f.data)) }
func (f *memFlash) WriteBlockSize() int64                    { return testPage }
func (f *memFlash) EraseBlockSize() int64                    { return testBlock }

func (f *memFlash) WriteAt(p []byte, off int64) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	for i, b := range p {
		f.data[off+int64(i)] &= b
	}
	return len(p), nil
}

func (f *memFlash) EraseBlocks(start, n int64) error {
	for i := start * testBlock; i < (start+n)*testBlock; i++ {
		f.data[i] = 0xFF
	}
	return nil
}

func open(t *testing.T, f *memFlash) *Store {
	t.Helper()
	s, err := Open(f)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func TestBlankFlashIsEmpty(t *testing.T) {
	s := open(t, newMemFlash(16))
	for i := 0; i < types.NumPresets; i++ {
		if _, ok, err := s.GetU32(types.PresetKey(i)); ok || err != nil {
			t.Fatalf("slot %d: ok=%v err=%v", i, ok, err)
		}
	}
}

func TestSetSurvivesReopen(t *testing.T) {
	f := newMemFlash(16)
	s := open(t, f)
	if err := s.SetU32("preset3", 95_500); err != nil {
		t.Fatalf("SetU32: %v", err)
	}
	if err := s.SetU32("preset1", 89_100); err != nil {
		t.Fatalf("SetU32: %v", err)
	}
	if err := s.SetU32("preset3", 101_700); err != nil {
		t.Fatalf("SetU32 overwrite: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s2 := open(t, f)
	want := map[string]uint32{"preset1": 89_100, "preset3": 101_700}
	for i := 0; i < types.NumPresets; i++ {
		k := types.PresetKey(i)
		v, ok, err := s2.GetU32(k)
		w, has := want[k]
		if err != nil || ok != has || v != w {
			t.Fatalf("%s = %d, %v, %v", k, v, ok, err)
		}
	}
}

func TestGarbageFlashIsFormatted(t *testing.T) {
	f := newMemFlash(16)
	for i := range f.data {
		f.data[i] = byte(i * 7)
	}
	s := open(t, f)
	if _, ok, err := s.GetU32("preset2"); ok || err != nil {
		t.Fatalf("preset2 on fresh filesystem: ok=%v err=%v", ok, err)
	}
	if err := s.SetU32("preset2", 95_500); err != nil {
		t.Fatalf("SetU32: %v", err)
	}
}

func TestShortFileIsStorageFault(t *testing.T) {
	s := open(t, newMemFlash(16))
	fh, err := s.fs.OpenFile("/preset4", os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if _, err := fh.Write([]byte{1, 2}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	fh.Close()

	if _, ok, err := s.GetU32("preset4"); ok || errcode.Of(err) != errcode.StorageFault {
		t.Fatalf("GetU32 = ok %v, err %v", ok, err)
	}
}

func TestUnknownKey(t *testing.T) {
	s := open(t, newMemFlash(16))
	for _, k := range []string{"preset0", "preset5", "preset", "volume", "presetx"} {
		if _, _, err := s.GetU32(k); errcode.Of(err) != errcode.InvalidParams {
			t.Fatalf("GetU32(%q) = %v", k, err)
		}
		if err := s.SetU32(k, 1); errcode.Of(err) != errcode.InvalidParams {
			t.Fatalf("SetU32(%q) = %v", k, err)
		}
	}
}

func TestKeySpellingsShareAFile(t *testing.T) {
	s := open(t, newMemFlash(16))
	if err := s.SetU32("preset01", 88_000); err != nil {
		t.Fatalf("SetU32: %v", err)
	}
	if v, ok, _ := s.GetU32("preset1"); !ok || v != 88_000 {
		t.Fatalf("preset1 = %d, %v", v, ok)
	}
}

func TestWriteFaultKeepsPreviousValue(t *testing.T) {
	f := newMemFlash(16)
	s := open(t, f)
	if err := s.SetU32("preset4", 104_300); err != nil {
		t.Fatalf("SetU32: %v", err)
	}

	f.writeErr = errors.New("program failed")
	if err := s.SetU32("preset4", 88_000); errcode.Of(err) != errcode.StorageFault {
		t.Fatalf("SetU32 = %v", err)
	}

	f.writeErr = nil
	s2 := open(t, f)
	if v, ok, err := s2.GetU32("preset4"); !ok || v != 104_300 {
		t.Fatalf("after fault = %d, %v, %v", v, ok, err)
	}
}
