// Package session ties one set of dashboard adapters to each signed-in
// user. Building a session flips its auth tracker to the resolved user,
// which triggers the adapters' own auto-refreshes; ending it signs the
// tracker out so the adapters reset themselves.
package session

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"clinic-management-api/internal/adapter"
	"clinic-management-api/internal/authstate"
	"clinic-management-api/internal/notify"
)

// Store is the slice of the data layer the dashboard adapters need.
type Store interface {
	adapter.ProfessionalStore
	adapter.AppointmentReader
	adapter.StatsStore
}

type Session struct {
	Auth          *authstate.Tracker
	Feed          *notify.Feed
	Professionals *adapter.Professionals
	Appointments  *adapter.TodayAppointments
	Stats         *adapter.Stats

	signIn sync.Once
}

func (s *Session) close() {
	s.Appointments.Close()
	s.Stats.Close()
	s.Auth.SignOut()
}

type Manager struct {
	store Store
	log   *zap.Logger
	loc   *time.Location

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(st Store, log *zap.Logger, loc *time.Location) *Manager {
	return &Manager{
		store:    st,
		log:      log,
		loc:      loc,
		sessions: make(map[string]*Session),
	}
}

// Get returns the session for userID, building (and signing in) one on
// first use. Every caller, including ones racing the first, only gets the
// session after its identity has resolved.
func (m *Manager) Get(userID string) *Session {
	m.mu.Lock()
	s, ok := m.sessions[userID]
	if !ok {
		tracker := authstate.NewTracker()
		feed := notify.NewFeed(m.log.Named("toasts"))
		s = &Session{
			Auth:          tracker,
			Feed:          feed,
			Professionals: adapter.NewProfessionals(m.store, tracker, feed, m.log),
			Appointments:  adapter.NewTodayAppointments(m.store, tracker, m.log, m.loc),
			Stats:         adapter.NewStats(m.store, tracker, m.log, m.loc),
		}
		m.sessions[userID] = s
	}
	m.mu.Unlock()

	// the first caller resolves the identity and runs the subscriber
	// refreshes; concurrent callers block here until it has
	s.signIn.Do(func() { s.Auth.SignIn(userID) })
	return s
}

// End tears the user's session down, if one exists.
func (m *Manager) End(userID string) {
	m.mu.Lock()
	s, ok := m.sessions[userID]
	delete(m.sessions, userID)
	m.mu.Unlock()

	if ok {
		s.close()
	}
}
