package heartbeat

import (
	"context"
	"sync"
	"time"

	"fmradio-go/errcode"
	"fmradio-go/types"
	"fmradio-go/x/fmtx"
	"fmradio-go/x/timex"
)

// Registry tracks liveness of the long-running components. A component that
// stops is never restarted; it stays down until reset.
type Registry struct {
	mu    sync.Mutex
	comps []types.ComponentStatus
}

func NewRegistry() *Registry { return &Registry{} }

// Up marks name as running.
func (r *Registry) Up(name string) {
	r.set(types.ComponentStatus{Name: name, Link: types.LinkUp, TSms: timex.NowMs()})
}

// Down marks name as stopped with the code of err.
func (r *Registry) Down(name string, err error) {
	st := types.ComponentStatus{Name: name, Link: types.LinkDown, TSms: timex.NowMs()}
	if err != nil {
		st.Error = string(errcode.Of(err))
	}
	r.set(st)
}

func (r *Registry) set(st types.ComponentStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.comps {
		if r.comps[i].Name == st.Name {
			r.comps[i] = st
			return
		}
	}
	r.comps = append(r.comps, st)
}

// Snapshot returns component states in registration order.
func (r *Registry) Snapshot() []types.ComponentStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]types.ComponentStatus(nil), r.comps...)
}

// Summary renders one log line: "up=a,b down=c(io_error)".
func (r *Registry) Summary() string {
	var up, down string
	for _, c := range r.Snapshot() {
		if c.Link == types.LinkUp {
			up = join(up, c.Name)
			continue
		}
		name := c.Name
		if c.Error != "" {
			name += "(" + c.Error + ")"
		}
		down = join(down, name)
	}
	if up == "" {
		up = "-"
	}
	if down == "" {
		down = "-"
	}
	return "up=" + up + " down=" + down
}

func join(list, s string) string {
	if list == "" {
		return s
	}
	return list + "," + s
}

// Service logs the registry summary every interval.
type Service struct {
	reg      *Registry
	interval time.Duration
	beats    uint32
}

func New(reg *Registry, interval time.Duration) *Service {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Service{reg: reg, interval: interval}
}

func (s *Service) serviceLoop(ctx context.Context) {
	tick := time.NewTicker(s.interval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			fmtx.Printf("[heartbeat] stopping\n")
			return
		case <-tick.C:
			s.beats++
			fmtx.Printf("[heartbeat] #%d %s\n", s.beats, s.reg.Summary())
		}
	}
}

// Start the heartbeat service.
func (s *Service) Start(ctx context.Context) {
	go s.serviceLoop(ctx)
}
