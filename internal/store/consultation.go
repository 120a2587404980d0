package store

import (
	"context"
	"time"

	"clinic-management-api/internal/model"
)

func (s *Store) CreateConsultation(ctx context.Context, c *model.Consultation) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO consultations (id, user_id, patient_id, notes)
		 VALUES ($1,$2,$3,$4)`,
		c.ID, c.UserID, c.PatientID, c.Notes,
	)
	return err
}

// CountConsultationsSince counts consultations created at or after the
// given instant, normally the first day of the current month.
func (s *Store) CountConsultationsSince(ctx context.Context, userID string, since time.Time) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM consultations
		 WHERE user_id = $1 AND created_at >= $2`, userID, since,
	).Scan(&n)
	return n, err
}
