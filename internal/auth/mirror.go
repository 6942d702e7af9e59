package auth

import (
	"context"
	"log"
	"sync"
)

// Mirror tracks the latest session and its profile. It subscribes to the
// service's session events and refetches the profile whenever the session
// changes; after Close no further state updates happen even if events were
// still in flight.
type Mirror struct {
	service *Service

	mu      sync.Mutex
	session *Session
	profile *User
	closed  bool

	cancel func()
	done   chan struct{}
}

// NewMirror creates a Mirror and starts following session events. A failure
// to load initial state is non-fatal: the mirror starts signed out.
func NewMirror(ctx context.Context, service *Service) *Mirror {
	m := &Mirror{
		service: service,
		done:    make(chan struct{}),
	}

	events, cancel := service.Watch()
	m.cancel = cancel

	go func() {
		defer close(m.done)
		for ev := range events {
			m.apply(ctx, ev)
		}
	}()

	return m
}

// Session returns the mirrored session, or nil when signed out.
func (m *Mirror) Session() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// Profile returns the mirrored profile, or nil when signed out.
func (m *Mirror) Profile() *User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.profile
}

// Close unsubscribes and suppresses any further updates.
func (m *Mirror) Close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()

	m.cancel()
	<-m.done
}

func (m *Mirror) apply(ctx context.Context, ev SessionEvent) {
	var profile *User
	if ev.Session != nil {
		var err error
		profile, err = m.service.Profile(ctx, ev.Session.UserID)
		if err != nil {
			// Keep the session; the profile refetch can succeed on the
			// next event. Signed-in state must not block on profile I/O.
			log.Printf("Failed to refetch profile for user %s: %v", ev.Session.UserID, err)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.session = ev.Session
	m.profile = profile
}
