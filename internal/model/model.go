package model

import "time"

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Professional is a clinic staff member. Every professional belongs to
// exactly one user account and is only visible through that account.
type Professional struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"-"`
	Name               string    `json:"name"`
	Type               string    `json:"type"`
	RegistrationNumber string    `json:"registrationNumber"`
	Specialty          string    `json:"specialty"`
	Phone              string    `json:"phone"`
	Email              string    `json:"email"`
	StartTime          string    `json:"startTime,omitempty"`
	EndTime            string    `json:"endTime,omitempty"`
	AttendanceDays     []string  `json:"attendanceDays,omitempty"`
	Notes              string    `json:"notes,omitempty"`
	Status             string    `json:"status,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// ProfessionalPatch is a partial update: nil fields are left untouched.
type ProfessionalPatch struct {
	Name               *string   `json:"name"`
	Type               *string   `json:"type"`
	RegistrationNumber *string   `json:"registrationNumber"`
	Specialty          *string   `json:"specialty"`
	Phone              *string   `json:"phone"`
	Email              *string   `json:"email"`
	StartTime          *string   `json:"startTime"`
	EndTime            *string   `json:"endTime"`
	AttendanceDays     *[]string `json:"attendanceDays"`
	Notes              *string   `json:"notes"`
	Status             *string   `json:"status"`
}

type Patient struct {
	ID        string
	UserID    string
	Name      string
	Phone     string
	Email     string
	BirthDate string
	CreatedAt time.Time
}

type Appointment struct {
	ID             string
	UserID         string
	PatientID      *string
	ProfessionalID *string
	ScheduledAt    time.Time
	Type           string
	Status         string
	CreatedAt      time.Time
}

type Consultation struct {
	ID        string
	UserID    string
	PatientID *string
	Notes     string
	CreatedAt time.Time
}

// TodayAppointment is the formatted projection shown on the dashboard:
// an appointment joined with its patient and professional names, the
// scheduled timestamp reduced to a local HH:MM string. Never persisted.
type TodayAppointment struct {
	ID          string `json:"id"`
	Time        string `json:"time"`
	PatientName string `json:"patientName"`
	DoctorName  string `json:"doctorName"`
	Type        string `json:"type"`
	Status      string `json:"status"`
}

// AppointmentRow is what the store returns for the today view: the raw
// timestamp plus nullable related names, before any formatting.
type AppointmentRow struct {
	ID               string
	ScheduledAt      time.Time
	PatientName      *string
	ProfessionalName *string
	Type             string
	Status           string
}

type PlanLimits struct {
	Patients      int `json:"patients"`
	Appointments  int `json:"appointments"`
	Consultations int `json:"consultations"`
}

type DashboardStats struct {
	PatientsRegistered     int        `json:"patientsRegistered"`
	AppointmentsToday      int        `json:"appointmentsToday"`
	ConsultationsThisMonth int        `json:"consultationsThisMonth"`
	OccupancyRate          int        `json:"occupancyRate"`
	Limits                 PlanLimits `json:"limits"`
}
