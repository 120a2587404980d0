package handler_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	json "github.com/goccy/go-json"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"clinic-management-api/internal/handler"
	"clinic-management-api/internal/middleware"
	"clinic-management-api/internal/model"
	"clinic-management-api/internal/session"
	"clinic-management-api/internal/store"
)

func setup(t *testing.T) (*httptest.Server, *store.Store) {
	t.Helper()
	_ = godotenv.Load("../../.env")
	dbURL := os.Getenv("DATABASE_URL")
	secret := os.Getenv("JWT_SECRET")
	if dbURL == "" || secret == "" {
		t.Skip("DATABASE_URL or JWT_SECRET not set")
	}

	pool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	t.Cleanup(pool.Close)

	st := store.New(pool)
	sessions := session.NewManager(st, zap.NewNop(), time.UTC)
	h := handler.New(st, sessions, secret, zap.NewNop())

	srv := httptest.NewServer(h.Routes(middleware.NewRateLimiter(100, 200)))
	t.Cleanup(srv.Close)
	return srv, st
}

func postJSON(t *testing.T, url, token string, body any) *http.Response {
	t.Helper()
	b, _ := json.Marshal(body)
	req, _ := http.NewRequest("POST", url, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	return resp
}

func doJSON(t *testing.T, method, url, token string, body any, out any) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req, _ := http.NewRequest(method, url, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	if out != nil {
		defer resp.Body.Close()
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp
}

func registerUser(t *testing.T, srv *httptest.Server) (userID, token string) {
	t.Helper()
	email := fmt.Sprintf("test-%s@test.com", uuid.New().String()[:8])
	var out map[string]string
	resp := doJSON(t, "POST", srv.URL+"/auth/register", "", map[string]string{
		"email": email, "password": "testpass123", "name": "Test User",
	}, &out)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: status %d", resp.StatusCode)
	}
	if out["userId"] == "" || out["token"] == "" {
		t.Fatalf("register: missing fields %v", out)
	}
	return out["userId"], out["token"]
}

// ----- auth -----

func TestRegisterAndLogin(t *testing.T) {
	srv, _ := setup(t)

	email := fmt.Sprintf("test-%s@test.com", uuid.New().String()[:8])
	var reg map[string]string
	resp := doJSON(t, "POST", srv.URL+"/auth/register", "", map[string]string{
		"email": email, "password": "testpass123", "name": "Login User",
	}, &reg)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: %d", resp.StatusCode)
	}

	var login map[string]string
	resp = doJSON(t, "POST", srv.URL+"/auth/login", "", map[string]string{
		"email": email, "password": "testpass123",
	}, &login)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: %d", resp.StatusCode)
	}
	if login["token"] == "" {
		t.Fatal("empty token")
	}
	if login["name"] != "Login User" {
		t.Errorf("name: %q", login["name"])
	}

	var hasAccess, hasRefresh bool
	for _, c := range resp.Cookies() {
		if c.Name == "access_token" && c.HttpOnly {
			hasAccess = true
		}
		if c.Name == "refresh_token" && c.HttpOnly {
			hasRefresh = true
		}
	}
	if !hasAccess || !hasRefresh {
		t.Error("missing httponly auth cookies")
	}
}

func TestRegisterValidation(t *testing.T) {
	srv, _ := setup(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"empty email", map[string]string{"email": "", "password": "testpass123", "name": "X"}},
		{"bad email", map[string]string{"email": "not-an-email", "password": "testpass123", "name": "X"}},
		{"short password", map[string]string{"email": "a@b.com", "password": "short", "name": "X"}},
		{"empty name", map[string]string{"email": "a@b.com", "password": "testpass123", "name": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, srv.URL+"/auth/register", "", tt.body)
			resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", resp.StatusCode)
			}
		})
	}
}

func TestLoginWrongPassword(t *testing.T) {
	srv, _ := setup(t)

	email := fmt.Sprintf("test-%s@test.com", uuid.New().String()[:8])
	doJSON(t, "POST", srv.URL+"/auth/register", "", map[string]string{
		"email": email, "password": "testpass123", "name": "X",
	}, nil)

	resp := postJSON(t, srv.URL+"/auth/login", "", map[string]string{
		"email": email, "password": "wrongpassword",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", resp.StatusCode)
	}
}

func TestUnauthorizedWithoutToken(t *testing.T) {
	srv, _ := setup(t)

	resp, err := http.Get(srv.URL + "/api/professionals")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", resp.StatusCode)
	}
}

// ----- professionals CRUD -----

func TestProfessionalsCRUD(t *testing.T) {
	srv, _ := setup(t)
	_, token := registerUser(t, srv)

	var created model.Professional
	resp := doJSON(t, "POST", srv.URL+"/api/professionals", token, map[string]any{
		"name":               "Dra. Ana Souza",
		"type":               "medico",
		"registrationNumber": "CRM 12345",
		"specialty":          "Cardiologia",
		"phone":              "11 99999-0000",
		"attendanceDays":     []string{"seg", "qua", "sex"},
	}, &created)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: %d", resp.StatusCode)
	}
	if created.ID == "" {
		t.Fatal("empty id")
	}

	var listed []model.Professional
	doJSON(t, "GET", srv.URL+"/api/professionals", token, nil, &listed)
	found := false
	for _, p := range listed {
		if p.ID == created.ID {
			found = true
		}
	}
	if !found {
		t.Error("created professional not in list")
	}

	var got model.Professional
	resp = doJSON(t, "GET", srv.URL+"/api/professionals/"+created.ID, token, nil, &got)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get: %d", resp.StatusCode)
	}
	if got.Specialty != "Cardiologia" {
		t.Errorf("specialty: %q", got.Specialty)
	}

	var updated model.Professional
	resp = doJSON(t, "PUT", srv.URL+"/api/professionals/"+created.ID, token, map[string]any{
		"phone": "11 98888-1111",
	}, &updated)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: %d", resp.StatusCode)
	}
	if updated.Phone != "11 98888-1111" {
		t.Errorf("phone: %q", updated.Phone)
	}
	if updated.Name != "Dra. Ana Souza" {
		t.Errorf("untouched field changed: %q", updated.Name)
	}

	resp = doJSON(t, "DELETE", srv.URL+"/api/professionals/"+created.ID, token, nil, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete: %d", resp.StatusCode)
	}

	resp = doJSON(t, "GET", srv.URL+"/api/professionals/"+created.ID, token, nil, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", resp.StatusCode)
	}
}

func TestProfessionalsValidation(t *testing.T) {
	srv, _ := setup(t)
	_, token := registerUser(t, srv)

	resp := postJSON(t, srv.URL+"/api/professionals", token, map[string]string{
		"name": "", "type": "medico",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestProfessionalsOwnership(t *testing.T) {
	srv, _ := setup(t)
	_, token1 := registerUser(t, srv)
	_, token2 := registerUser(t, srv)

	var created model.Professional
	doJSON(t, "POST", srv.URL+"/api/professionals", token1, map[string]any{
		"name": "Dr. Bruno", "type": "medico", "registrationNumber": "CRM 99",
	}, &created)

	// user2 can't see user1's professional
	resp := doJSON(t, "GET", srv.URL+"/api/professionals/"+created.ID, token2, nil, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for foreign record, got %d", resp.StatusCode)
	}

	var listed []model.Professional
	doJSON(t, "GET", srv.URL+"/api/professionals", token2, nil, &listed)
	for _, p := range listed {
		if p.ID == created.ID {
			t.Error("foreign professional visible in list")
		}
	}
}

// ----- dashboard -----

func TestDashboard(t *testing.T) {
	srv, st := setup(t)
	uid, token := registerUser(t, srv)
	ctx := context.Background()

	patient := &model.Patient{ID: uuid.New().String(), UserID: uid, Name: "Maria Silva"}
	if err := st.CreatePatient(ctx, patient); err != nil {
		t.Fatalf("seed patient: %v", err)
	}

	var prof model.Professional
	doJSON(t, "POST", srv.URL+"/api/professionals", token, map[string]any{
		"name": "Dra. Ana Souza", "type": "medico", "registrationNumber": "CRM 12345",
	}, &prof)

	// one appointment later today (empty type/status to exercise defaults)
	at := time.Now().UTC().Truncate(time.Minute)
	appt := &model.Appointment{
		ID:             uuid.New().String(),
		UserID:         uid,
		PatientID:      &patient.ID,
		ProfessionalID: &prof.ID,
		ScheduledAt:    at,
	}
	if err := st.CreateAppointment(ctx, appt); err != nil {
		t.Fatalf("seed appointment: %v", err)
	}

	if err := st.CreateConsultation(ctx, &model.Consultation{
		ID: uuid.New().String(), UserID: uid, PatientID: &patient.ID,
	}); err != nil {
		t.Fatalf("seed consultation: %v", err)
	}

	var today []model.TodayAppointment
	resp := doJSON(t, "GET", srv.URL+"/api/dashboard/appointments/today", token, nil, &today)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("today: %d", resp.StatusCode)
	}
	if len(today) != 1 {
		t.Fatalf("expected 1 appointment, got %d", len(today))
	}
	if today[0].PatientName != "Maria Silva" {
		t.Errorf("patient name: %q", today[0].PatientName)
	}
	if today[0].DoctorName != "Dra. Ana Souza" {
		t.Errorf("doctor name: %q", today[0].DoctorName)
	}
	if today[0].Type != "Consulta" || today[0].Status != "confirmado" {
		t.Errorf("defaults not applied: %+v", today[0])
	}
	if today[0].Time != at.Format("15:04") {
		t.Errorf("time: %q", today[0].Time)
	}

	var stats model.DashboardStats
	resp = doJSON(t, "GET", srv.URL+"/api/dashboard/stats", token, nil, &stats)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("stats: %d", resp.StatusCode)
	}
	if stats.PatientsRegistered != 1 || stats.AppointmentsToday != 1 || stats.ConsultationsThisMonth != 1 {
		t.Errorf("counts: %+v", stats)
	}
	if stats.OccupancyRate != 10 {
		t.Errorf("occupancy: %d", stats.OccupancyRate)
	}
	if stats.Limits.Patients != 50 || stats.Limits.Appointments != 10 || stats.Limits.Consultations != 100 {
		t.Errorf("limits: %+v", stats.Limits)
	}
}

func TestNotificationsDrain(t *testing.T) {
	srv, _ := setup(t)
	_, token := registerUser(t, srv)

	doJSON(t, "POST", srv.URL+"/api/professionals", token, map[string]any{
		"name": "Dr. Caio", "type": "medico", "registrationNumber": "CRM 1",
	}, nil)

	var toasts []map[string]string
	doJSON(t, "GET", srv.URL+"/api/notifications", token, nil, &toasts)
	if len(toasts) == 0 {
		t.Fatal("expected at least one toast")
	}

	var again []map[string]string
	doJSON(t, "GET", srv.URL+"/api/notifications", token, nil, &again)
	if len(again) != 0 {
		t.Errorf("feed not drained: %d left", len(again))
	}
}
