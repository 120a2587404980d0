package adapter

import (
	"context"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"clinic-management-api/internal/authstate"
	"clinic-management-api/internal/model"
)

// DailyCapacity is the assumed number of bookable slots per day, the
// denominator of the occupancy rate. A placeholder until plans carry a
// real capacity.
const DailyCapacity = 10

// DefaultLimits are the fixed free-plan quotas shown on the dashboard.
var DefaultLimits = model.PlanLimits{
	Patients:      50,
	Appointments:  10,
	Consultations: 100,
}

type StatsStore interface {
	CountPatients(ctx context.Context, userID string) (int, error)
	CountAppointments(ctx context.Context, userID string, from, to time.Time) (int, error)
	CountConsultationsSince(ctx context.Context, userID string, since time.Time) (int, error)
}

// Stats aggregates the three dashboard counters. A failed refresh keeps
// the previous value on screen (stale-on-error) and only logs.
type Stats struct {
	store    StatsStore
	auth     *authstate.Tracker
	log      *zap.Logger
	loc      *time.Location
	now      func() time.Time
	capacity int

	mu       sync.Mutex
	stats    model.DashboardStats
	loading  bool
	lastUser string
	unsub    func()
}

func NewStats(store StatsStore, auth *authstate.Tracker, log *zap.Logger, loc *time.Location) *Stats {
	s := &Stats{
		store:    store,
		auth:     auth,
		log:      log,
		loc:      loc,
		now:      time.Now,
		capacity: DailyCapacity,
		stats:    model.DashboardStats{Limits: DefaultLimits},
	}
	s.unsub = auth.Subscribe(s.onAuthChange)
	return s
}

func (s *Stats) Close() {
	s.unsub()
}

func (s *Stats) Current() model.DashboardStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

func (s *Stats) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Stats) onAuthChange(st authstate.State) {
	if st.Loading {
		return
	}
	if st.User == nil {
		s.mu.Lock()
		s.loading = false
		s.lastUser = ""
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	changed := st.User.ID != s.lastUser
	s.lastUser = st.User.ID
	s.mu.Unlock()

	if changed {
		s.Refresh(context.Background())
	}
}

// Refresh recomputes all three counters. Any failure aborts the whole
// refresh; the previous stats stay current.
func (s *Stats) Refresh(ctx context.Context) {
	st := s.auth.Current()
	if !st.Authenticated() {
		return
	}

	s.setLoading(true)
	defer s.setLoading(false)

	now := s.now().In(s.loc)
	from, to := TodayWindow(now)
	uid := st.User.ID

	patients, err := s.store.CountPatients(ctx, uid)
	if err != nil {
		s.log.Error("contar pacientes", zap.Error(err))
		return
	}
	today, err := s.store.CountAppointments(ctx, uid, from, to)
	if err != nil {
		s.log.Error("contar agendamentos de hoje", zap.Error(err))
		return
	}
	month, err := s.store.CountConsultationsSince(ctx, uid, MonthStart(now))
	if err != nil {
		s.log.Error("contar consultas do mês", zap.Error(err))
		return
	}

	s.mu.Lock()
	s.stats = model.DashboardStats{
		PatientsRegistered:     patients,
		AppointmentsToday:      today,
		ConsultationsThisMonth: month,
		OccupancyRate:          occupancyRate(today, s.capacity),
		Limits:                 DefaultLimits,
	}
	s.mu.Unlock()
}

func (s *Stats) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// occupancyRate is today's bookings over capacity, as a percentage clamped
// to 100.
func occupancyRate(today, capacity int) int {
	if capacity <= 0 {
		return 0
	}
	rate := int(math.Round(float64(today) / float64(capacity) * 100))
	if rate > 100 {
		return 100
	}
	return rate
}
