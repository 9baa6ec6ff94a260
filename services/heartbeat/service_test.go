package heartbeat

import (
	"context"
	"errors"
	"testing"
	"time"

	"fmradio-go/errcode"
	"fmradio-go/types"
)

func TestRegistrySummary(t *testing.T) {
	r := NewRegistry()
	if got := r.Summary(); got != "up=- down=-" {
		t.Fatalf("empty summary = %q", got)
	}
	r.Up("button")
	r.Up("encoder")
	r.Up("tuner")
	r.Down("tuner", errcode.Wrap(errcode.IOError, "tuner.status", errors.New("nack")))
	r.Down("ui", nil)

	if got, want := r.Summary(), "up=button,encoder down=tuner(io_error),ui"; got != want {
		t.Fatalf("Summary = %q, want %q", got, want)
	}
	snap := r.Snapshot()
	if len(snap) != 4 || snap[2].Name != "tuner" || snap[2].Link != types.LinkDown || snap[2].TSms == 0 {
		t.Fatalf("snapshot = %+v", snap)
	}
}

func TestServiceStopsWithContext(t *testing.T) {
	r := NewRegistry()
	r.Up("tuner")
	s := New(r, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.serviceLoop(ctx)
		close(done)
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("heartbeat did not stop")
	}
	if s.beats == 0 {
		t.Fatal("no heartbeat logged")
	}
}
