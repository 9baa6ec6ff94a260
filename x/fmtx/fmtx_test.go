package fmtx

import (
	"bytes"
	"errors"
	"testing"
)

type element uint8

func (e element) String() string { return "seek_up" }

func TestSprintfVerbs(t *testing.T) {
	type C struct {
		fmt  string
		args []any
		want string
	}
	for _, c := range []C{
		{"[tuner] %d kHz", []any{uint32(101_700)}, "[tuner] 101700 kHz"},
		{"id 0x%04x", []any{uint16(0x58)}, "id 0x0058"},
		{"stc=%t sf=%t", []any{true, false}, "stc=true sf=false"},
		{"%s stopped: %v", []any{"tuner", errors.New("nack")}, "tuner stopped: nack"},
		{"at %v", []any{element(2)}, "at seek_up"},
		{"key %q", []any{"preset\"1"}, `key "preset\"1"`},
		{"[%5s]", []any{"ui"}, "[   ui]"},
		{"trim: %.3s", []any{"abcdef"}, "trim: abc"},
		{"100%%", nil, "100%"},
	} {
		if got := Sprintf(c.fmt, c.args...); got != c.want {
			t.Fatalf("Sprintf(%q, ...) = %q, want %q", c.fmt, got, c.want)
		}
	}
}

func TestPrintfWritesDefaultOutput(t *testing.T) {
	var buf bytes.Buffer
	old := DefaultOutput
	DefaultOutput = &buf
	defer func() { DefaultOutput = old }()

	n, err := Printf("[radio] running on %s\n", "pico")
	if err != nil {
		t.Fatalf("Printf error: %v", err)
	}
	if got, want := buf.String(), "[radio] running on pico\n"; got != want || n != len(want) {
		t.Fatalf("Printf wrote %q (%d bytes), want %q", got, n, want)
	}
}
