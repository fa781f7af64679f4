package orderflow

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"parcel/internal/core/ports"
	"parcel/internal/pkg/errs"
)

// Registry holds one Flow per client session.
type Registry struct {
	desk   ports.OrderDesk
	keys   KeyGenerator
	logger *slog.Logger

	mu    sync.Mutex
	flows map[string]*Flow
}

func NewRegistry(desk ports.OrderDesk, keys KeyGenerator, logger *slog.Logger) *Registry {
	return &Registry{
		desk:   desk,
		keys:   keys,
		logger: logger,
		flows:  make(map[string]*Flow),
	}
}

// Get returns the session's flow, starting a new one if there is none.
func (r *Registry) Get(session string) *Flow {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f, ok := r.flows[session]; ok {
		return f
	}
	f := NewFlow(session, r.desk, r.keys, r.logger)
	r.flows[session] = f
	return f
}

// Lookup returns the session's flow without creating one.
func (r *Registry) Lookup(session string) (*Flow, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.flows[session]
	return f, ok
}

// Remove resets the flow and forgets it. A flow with a call in flight stays;
// a failure to release attachments is reported but the flow is still removed.
func (r *Registry) Remove(session string) error {
	r.mu.Lock()
	f, ok := r.flows[session]
	r.mu.Unlock()
	if !ok {
		return nil
	}

	err := f.Reset()
	if errors.Is(err, errs.ErrOperationInFlight) {
		return err
	}

	r.mu.Lock()
	if r.flows[session] == f {
		delete(r.flows, session)
	}
	r.mu.Unlock()
	return err
}

// ExpireIdle resets and removes flows untouched for longer than ttl and
// returns how many went.
func (r *Registry) ExpireIdle(now time.Time, ttl time.Duration) int {
	r.mu.Lock()
	var idle []*Flow
	for _, f := range r.flows {
		last, inFlight := f.IdleSince()
		if !inFlight && now.Sub(last) > ttl {
			idle = append(idle, f)
		}
	}
	r.mu.Unlock()

	expired := 0
	for _, f := range idle {
		err := r.Remove(f.Session())
		if errors.Is(err, errs.ErrOperationInFlight) {
			continue
		}
		if err != nil {
			r.logger.Warn("Expired flow left attachments unreleased", "session", f.Session(), "error", err)
		}
		expired++
	}
	return expired
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.flows)
}
