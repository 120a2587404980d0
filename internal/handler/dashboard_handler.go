package handler

import "net/http"

// TodayAppointments refreshes and returns the formatted view of today's
// appointments. A failed refresh degrades to an empty list, never an
// error response.
func (h *Handler) TodayAppointments(w http.ResponseWriter, r *http.Request) {
	s := h.session(r)
	s.Appointments.Refresh(r.Context())
	writeJSON(w, http.StatusOK, s.Appointments.Items())
}

// DashboardStats refreshes and returns the dashboard counters. On refresh
// failure the previous value is served (stale-on-error).
func (h *Handler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	s := h.session(r)
	s.Stats.Refresh(r.Context())
	writeJSON(w, http.StatusOK, s.Stats.Current())
}

func (h *Handler) RefreshDashboard(w http.ResponseWriter, r *http.Request) {
	s := h.session(r)
	s.Appointments.Refresh(r.Context())
	s.Stats.Refresh(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// Notifications drains the pending toasts for the current user.
func (h *Handler) Notifications(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.session(r).Feed.Drain())
}
