// Package presets keeps the preset frequencies on a littlefs filesystem, one
// small file per key ("/preset1".."/preset4"), each holding a little-endian
// uint32 in kHz. machine.Flash is the block device on the board.
package presets

import (
	"encoding/binary"
	"io"
	"os"
	"sync"

	"fmradio-go/errcode"
	"fmradio-go/types"
	"fmradio-go/x/fmtx"
	"fmradio-go/x/strconvx"

	"tinygo.org/x/tinyfs"
	"tinygo.org/x/tinyfs/littlefs"
)

const (
	valueSize = 4
	keyPrefix = "preset"
)

// Config sizes the littlefs caches. CacheSize must be a multiple of the
// device's write block size and divide its erase block size.
var Config = littlefs.Config{
	CacheSize:     512,
	LookaheadSize: 512,
	BlockCycles:   100,
}

type Store struct {
	mu sync.Mutex
	fs *littlefs.LFS
}

// Open mounts the filesystem on dev, formatting it first when no valid
// filesystem is found.
func Open(dev tinyfs.BlockDevice) (*Store, error) {
	fs := littlefs.New(dev)
	cfg := Config
	fs.Configure(&cfg)

	if err := fs.Mount(); err != nil {
		fmtx.Printf("[presets] mount: %v, formatting\n", err)
		if err := fs.Format(); err != nil {
			return nil, errcode.Wrap(errcode.StorageFault, "presets.format", err)
		}
		if err := fs.Mount(); err != nil {
			return nil, errcode.Wrap(errcode.StorageFault, "presets.mount", err)
		}
	}
	return &Store{fs: fs}, nil
}

// Close unmounts the filesystem.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return errcode.Wrap(errcode.StorageFault, "presets.unmount", s.fs.Unmount())
}

// GetU32 returns the value stored under name. A key with no file reads as
// absent; a file of the wrong size is a StorageFault.
func (s *Store) GetU32(name string) (uint32, bool, error) {
	path, err := pathOf(name)
	if err != nil {
		return 0, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.fs.OpenFile(path, os.O_RDONLY)
	if err != nil {
		return 0, false, nil
	}
	defer f.Close()

	var buf [valueSize + 1]byte
	n, err := f.Read(buf[:])
	if err != nil && err != io.EOF {
		return 0, false, errcode.Wrap(errcode.StorageFault, "presets.read", err)
	}
	if n != valueSize {
		return 0, false, &errcode.E{C: errcode.StorageFault, Op: "presets.read",
			Msg: name + " holds " + strconvx.Itoa(n) + " bytes"}
	}
	return binary.LittleEndian.Uint32(buf[:valueSize]), true, nil
}

// SetU32 replaces the value stored under name. The file is committed on
// close; a failed write leaves the previous value in place.
func (s *Store) SetU32(name string, v uint32) error {
	path, err := pathOf(name)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
	if err != nil {
		return errcode.Wrap(errcode.StorageFault, "presets.open", err)
	}
	var buf [valueSize]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	if _, err := f.Write(buf[:]); err != nil {
		f.Close()
		return errcode.Wrap(errcode.StorageFault, "presets.write", err)
	}
	return errcode.Wrap(errcode.StorageFault, "presets.commit", f.Close())
}

func pathOf(name string) (string, error) {
	if len(name) > len(keyPrefix) && name[:len(keyPrefix)] == keyPrefix {
		n, err := strconvx.Atoi(name[len(keyPrefix):])
		if err == nil && n >= 1 && n <= types.NumPresets {
			return "/" + keyPrefix + strconvx.Itoa(n), nil
		}
	}
	return "", &errcode.E{C: errcode.InvalidParams, Op: "presets.key", Msg: name}
}
