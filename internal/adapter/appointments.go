package adapter

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"clinic-management-api/internal/authstate"
	"clinic-management-api/internal/model"
)

// Fallbacks and defaults applied when formatting the today view. The
// dashboard never shows an empty name, type or status.
const (
	FallbackPatientName      = "Paciente não encontrado"
	FallbackProfessionalName = "Profissional não encontrado"
	DefaultAppointmentType   = "Consulta"
	DefaultAppointmentStatus = "confirmado"
)

type AppointmentReader interface {
	ListTodayAppointments(ctx context.Context, userID string, from, to time.Time) ([]model.AppointmentRow, error)
}

// TodayAppointments keeps the formatted list of the current user's
// appointments for today. It refreshes itself when the auth state resolves
// to a signed-in user and empties when the user signs out. Query failures
// are logged, never toasted.
type TodayAppointments struct {
	store AppointmentReader
	auth  *authstate.Tracker
	log   *zap.Logger
	loc   *time.Location
	now   func() time.Time

	mu       sync.Mutex
	items    []model.TodayAppointment
	loading  bool
	lastUser string
	unsub    func()
}

func NewTodayAppointments(store AppointmentReader, auth *authstate.Tracker, log *zap.Logger, loc *time.Location) *TodayAppointments {
	a := &TodayAppointments{
		store: store,
		auth:  auth,
		log:   log,
		loc:   loc,
		now:   time.Now,
	}
	a.unsub = auth.Subscribe(a.onAuthChange)
	return a
}

// Close detaches the adapter from the auth tracker.
func (a *TodayAppointments) Close() {
	a.unsub()
}

func (a *TodayAppointments) Items() []model.TodayAppointment {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]model.TodayAppointment, len(a.items))
	copy(out, a.items)
	return out
}

func (a *TodayAppointments) Loading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loading
}

func (a *TodayAppointments) onAuthChange(s authstate.State) {
	if s.Loading {
		return
	}
	if s.User == nil {
		// signed out: drop the list, no query
		a.mu.Lock()
		a.items = nil
		a.loading = false
		a.lastUser = ""
		a.mu.Unlock()
		return
	}

	a.mu.Lock()
	changed := s.User.ID != a.lastUser
	a.lastUser = s.User.ID
	a.mu.Unlock()

	if changed {
		a.Refresh(context.Background())
	}
}

// Refresh recomputes today's window, fetches the user's appointments in it
// and replaces the cached list with the formatted projection. On failure
// the list is emptied (silent degradation).
func (a *TodayAppointments) Refresh(ctx context.Context) {
	st := a.auth.Current()
	if !st.Authenticated() {
		return
	}

	a.setLoading(true)
	defer a.setLoading(false)

	from, to := TodayWindow(a.now().In(a.loc))
	rows, err := a.store.ListTodayAppointments(ctx, st.User.ID, from, to)
	if err != nil {
		a.log.Error("carregar agendamentos de hoje", zap.Error(err))
		a.mu.Lock()
		a.items = nil
		a.mu.Unlock()
		return
	}

	items := make([]model.TodayAppointment, 0, len(rows))
	for _, r := range rows {
		items = append(items, formatRow(r, a.loc))
	}

	a.mu.Lock()
	a.items = items
	a.mu.Unlock()
}

func (a *TodayAppointments) setLoading(v bool) {
	a.mu.Lock()
	a.loading = v
	a.mu.Unlock()
}

func formatRow(r model.AppointmentRow, loc *time.Location) model.TodayAppointment {
	out := model.TodayAppointment{
		ID:          r.ID,
		Time:        r.ScheduledAt.In(loc).Format("15:04"),
		PatientName: FallbackPatientName,
		DoctorName:  FallbackProfessionalName,
		Type:        r.Type,
		Status:      r.Status,
	}
	if r.PatientName != nil && *r.PatientName != "" {
		out.PatientName = *r.PatientName
	}
	if r.ProfessionalName != nil && *r.ProfessionalName != "" {
		out.DoctorName = *r.ProfessionalName
	}
	if out.Type == "" {
		out.Type = DefaultAppointmentType
	}
	if out.Status == "" {
		out.Status = DefaultAppointmentStatus
	}
	return out
}
