package store

import (
	"context"
	"time"

	"clinic-management-api/internal/model"
)

// ListTodayAppointments returns the appointments inside [from, to), scoped
// to userID and ordered by scheduled time, with the related patient and
// professional names expanded. Names come back nil when the related row is
// missing; the caller decides the fallback.
func (s *Store) ListTodayAppointments(ctx context.Context, userID string, from, to time.Time) ([]model.AppointmentRow, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT a.id, a.scheduled_at, p.name, pr.name,
		        COALESCE(a.type, ''), COALESCE(a.status, '')
		 FROM appointments a
		 LEFT JOIN patients p       ON p.id = a.patient_id
		 LEFT JOIN professionals pr ON pr.id = a.professional_id
		 WHERE a.user_id = $1
		   AND a.scheduled_at >= $2 AND a.scheduled_at < $3
		 ORDER BY a.scheduled_at`, userID, from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.AppointmentRow
	for rows.Next() {
		var r model.AppointmentRow
		if err := rows.Scan(
			&r.ID, &r.ScheduledAt, &r.PatientName, &r.ProfessionalName,
			&r.Type, &r.Status,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO appointments (id, user_id, patient_id, professional_id, scheduled_at, type, status)
		 VALUES ($1,$2,$3,$4,$5,NULLIF($6,''),NULLIF($7,''))`,
		a.ID, a.UserID, a.PatientID, a.ProfessionalID, a.ScheduledAt, a.Type, a.Status,
	)
	return err
}

func (s *Store) CountAppointments(ctx context.Context, userID string, from, to time.Time) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM appointments
		 WHERE user_id = $1 AND scheduled_at >= $2 AND scheduled_at < $3`,
		userID, from, to,
	).Scan(&n)
	return n, err
}
